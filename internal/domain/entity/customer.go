package entity

import "time"

// Customer representa un cliente del operador logístico.
type Customer struct {
	ID        string
	Name      string
	TaxID     string // NIT o cédula
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
