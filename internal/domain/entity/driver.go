package entity

import "time"

// Driver representa un conductor.
type Driver struct {
	ID         string
	Name       string
	DocumentID string // cédula, única
	Phone      string
	LicenseNo  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
