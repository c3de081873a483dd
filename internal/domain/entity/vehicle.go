package entity

import "time"

// Vehicle representa un vehículo de la flota.
type Vehicle struct {
	ID           string
	Plate        string // placa, única
	Type         string // turbo, sencillo, dobletroque, tractomula
	CapacityTons float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
