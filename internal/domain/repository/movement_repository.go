package repository

import "github.com/tu-usuario/logistica-api/internal/domain/entity"

// MovementRepository define el puerto de persistencia del libro de movimientos.
// Append-only: no hay update ni delete. El par (booking_id, type) tiene índice
// único en el store para la creación idempotente por reserva.
type MovementRepository interface {
	Append(m *entity.Movement) error
	ListByItem(itemID string, limit, offset int) ([]*entity.Movement, error)
	CountByItem(itemID string) (int, error)
	FindByBookingAndType(bookingID, movementType string) (*entity.Movement, error)
}
