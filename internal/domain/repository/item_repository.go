package repository

import "github.com/tu-usuario/logistica-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para artículos de bodega.
//
// ApplyQuantityChange es la actualización condicional que serializa las
// transiciones de cantidad: escribe newQuantity y los campos derivados solo si
// la cantidad actual coincide con expectedQuantity (compare-and-swap). Si no
// coincide devuelve domain.ErrPreconditionFailed; si el artículo no existe,
// domain.ErrItemNotFound. Con expectedQuantity nil escribe sin precondición.
type ItemRepository interface {
	Create(item *entity.WarehouseItem) error
	GetByID(id string) (*entity.WarehouseItem, error)
	ApplyQuantityChange(itemID string, expectedQuantity *int, newQuantity int, derived entity.ItemDerived) (*entity.WarehouseItem, error)
	List(limit, offset int) ([]*entity.WarehouseItem, error)
	ListByCustomer(customerID string, limit, offset int) ([]*entity.WarehouseItem, error)
	Delete(id string) (bool, error)
}
