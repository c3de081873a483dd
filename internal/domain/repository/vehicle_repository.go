package repository

import "github.com/tu-usuario/logistica-api/internal/domain/entity"

// VehicleRepository define el puerto de persistencia para vehículos.
type VehicleRepository interface {
	Create(v *entity.Vehicle) error
	GetByID(id string) (*entity.Vehicle, error)
	Update(v *entity.Vehicle) error
	List(limit, offset int) ([]*entity.Vehicle, error)
	Delete(id string) error
}
