package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	CustomerID        string          `json:"customer_id" validate:"required"`
	Description       string          `json:"description" validate:"required"`
	InitialQuantity   int             `json:"initial_quantity" validate:"min=0"`
	DailyStoragePrice decimal.Decimal `json:"daily_storage_price"`
	ArrivedAt         string          `json:"arrived_at,omitempty" validate:"omitempty,datetime=2006-01-02"`
	// BookingID: reserva origen. Si ya existe un movimiento IN para esa
	// reserva, la creación es idempotente y devuelve el artículo existente.
	BookingID string `json:"booking_id,omitempty"`
	Note      string `json:"note,omitempty"`
}

// RecordMovementRequest body para POST /api/items/:id/movements.
type RecordMovementRequest struct {
	Type     string `json:"type" validate:"required,oneof=IN OUT ADJUST"`
	Quantity int    `json:"quantity"`
	Date     string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Note     string `json:"note,omitempty"`
}

// ItemResponse artículo de bodega en respuestas.
type ItemResponse struct {
	ID                string          `json:"id"`
	CustomerID        string          `json:"customer_id"`
	Description       string          `json:"description"`
	Quantity          int             `json:"quantity"`
	DailyStoragePrice decimal.Decimal `json:"daily_storage_price"`
	ArrivedAt         *string         `json:"arrived_at,omitempty"`
	DepartedAt        *string         `json:"departed_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// MovementResponse movimiento en respuestas.
type MovementResponse struct {
	ID         string    `json:"id"`
	ItemID     string    `json:"item_id"`
	CustomerID string    `json:"customer_id"`
	Type       string    `json:"type"`
	Quantity   int       `json:"quantity"`
	Date       string    `json:"date"`
	Note       string    `json:"note,omitempty"`
	BookingID  string    `json:"booking_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ItemWithMovementResponse respuesta de operaciones que devuelven ambos.
type ItemWithMovementResponse struct {
	Item     ItemResponse      `json:"item"`
	Movement *MovementResponse `json:"movement,omitempty"`
}

// ItemListResponse listado paginado de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// EstimateResponse estimación de costo de almacenaje de un artículo.
type EstimateResponse struct {
	ItemID       string          `json:"item_id"`
	DurationDays int             `json:"duration_days"`
	Cost         decimal.Decimal `json:"cost"`
}
