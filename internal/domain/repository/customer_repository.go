package repository

import "github.com/tu-usuario/logistica-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para clientes.
type CustomerRepository interface {
	Create(c *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	Update(c *entity.Customer) error
	List(limit, offset int) ([]*entity.Customer, error)
	Delete(id string) error
}
