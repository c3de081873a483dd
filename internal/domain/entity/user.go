package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador"
)

// User representa un usuario del back office.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, operador
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
