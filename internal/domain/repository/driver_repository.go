package repository

import "github.com/tu-usuario/logistica-api/internal/domain/entity"

// DriverRepository define el puerto de persistencia para conductores.
type DriverRepository interface {
	Create(d *entity.Driver) error
	GetByID(id string) (*entity.Driver, error)
	Update(d *entity.Driver) error
	List(limit, offset int) ([]*entity.Driver, error)
	Delete(id string) error
}
