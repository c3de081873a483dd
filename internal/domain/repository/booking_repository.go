package repository

import "github.com/tu-usuario/logistica-api/internal/domain/entity"

// BookingRepository define el puerto de persistencia para reservas.
//
// InsertIfAbsent es el primitivo de idempotencia del generador: inserta solo
// si no existe otra reserva con la misma RecurringKey y reporta si insertó.
// La atomicidad la garantiza el índice único del store (nunca un chequeo
// previo en el caller: check-then-act no es seguro bajo concurrencia).
type BookingRepository interface {
	Create(b *entity.Booking) error
	GetByID(id string) (*entity.Booking, error)
	Update(b *entity.Booking) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Booking, error)
	ListByRule(ruleID string) ([]*entity.Booking, error)

	// InsertIfAbsent inserta la reserva si su RecurringKey está libre.
	// Devuelve false (sin error) cuando la clave ya existía.
	InsertIfAbsent(b *entity.Booking) (bool, error)
}
