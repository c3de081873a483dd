package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePriceRowRequest body para POST /api/prices.
type CreatePriceRowRequest struct {
	Origin          string          `json:"origin" validate:"required"`
	Destination     string          `json:"destination" validate:"required"`
	VehicleType     string          `json:"vehicle_type" validate:"required"`
	BasePrice       decimal.Decimal `json:"base_price"`
	DMTSurchargePct decimal.Decimal `json:"dmt_surcharge_pct"`
}

// UpdatePriceRowRequest actualización parcial de una fila de tarifa.
type UpdatePriceRowRequest struct {
	BasePrice       *decimal.Decimal `json:"base_price,omitempty"`
	DMTSurchargePct *decimal.Decimal `json:"dmt_surcharge_pct,omitempty"`
}

// PriceRowResponse fila de tarifa en respuestas.
type PriceRowResponse struct {
	ID              string          `json:"id"`
	Origin          string          `json:"origin"`
	Destination     string          `json:"destination"`
	VehicleType     string          `json:"vehicle_type"`
	BasePrice       decimal.Decimal `json:"base_price"`
	DMTSurchargePct decimal.Decimal `json:"dmt_surcharge_pct"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// PriceRowListResponse listado paginado de tarifas.
type PriceRowListResponse struct {
	Items []PriceRowResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
