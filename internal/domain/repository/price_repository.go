package repository

import "github.com/tu-usuario/logistica-api/internal/domain/entity"

// PriceRepository define el puerto de persistencia para filas de tarifa.
type PriceRepository interface {
	Create(p *entity.PriceRow) error
	GetByID(id string) (*entity.PriceRow, error)
	Update(p *entity.PriceRow) error
	List(limit, offset int) ([]*entity.PriceRow, error)
	Delete(id string) error
	// Upsert por (origin, destination, vehicle_type); usado por el seed de tarifas.
	Upsert(p *entity.PriceRow) error
}
