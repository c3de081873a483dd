package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceRow es una fila de la tabla de tarifas: precio base por trayecto y tipo
// de vehículo, más el porcentaje de recargo DMT vigente. El cálculo del precio
// de una reserva no vive en este sistema; aquí solo se mantienen las filas.
type PriceRow struct {
	ID              string
	Origin          string
	Destination     string
	VehicleType     string
	BasePrice       decimal.Decimal
	DMTSurchargePct decimal.Decimal // porcentaje, p.ej. 12.5
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
