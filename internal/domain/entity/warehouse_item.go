package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WarehouseItem representa mercancía de un cliente en bodega. Quantity es el
// conteo actual y nunca puede ser negativo; se muta únicamente a través del
// libro de movimientos (ItemLedger) con actualización condicional en el store.
type WarehouseItem struct {
	ID                string
	CustomerID        string
	Description       string
	Quantity          int
	DailyStoragePrice decimal.Decimal // >= 0, precio de almacenaje por día

	// ArrivedAt: primera fecha con cantidad positiva. DepartedAt: fecha del
	// último retorno exacto a cero; se limpia cuando la cantidad vuelve a ser
	// positiva. Ambas son fechas calendario YYYY-MM-DD.
	ArrivedAt  *string
	DepartedAt *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItemDerived agrupa los campos derivados que acompañan una transición de
// cantidad y se escriben atómicamente junto con ella.
type ItemDerived struct {
	ArrivedAt  *string
	DepartedAt *string
}
