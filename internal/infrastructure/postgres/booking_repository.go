package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/logistica-api/internal/domain"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

var _ repository.BookingRepository = (*BookingRepo)(nil)

const bookingColumns = `id, booking_number, customer_id, vehicle_id, driver_id, pickup_date, delivery_date,
		pickup_address, delivery_address, cargo_description, notes,
		recurring_rule_id, recurring_date, recurring_key, extra, created_at, updated_at`

// BookingRepo implementación de BookingRepository sobre PostgreSQL (usable con pool o tx).
type BookingRepo struct {
	q Querier
}

// NewBookingRepository construye el adaptador de reservas. Pasar pool o tx (Querier).
func NewBookingRepository(q Querier) *BookingRepo {
	return &BookingRepo{q: q}
}

const insertBookingSQL = `
	INSERT INTO bookings (` + bookingColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

// Create persiste una nueva reserva.
func (r *BookingRepo) Create(b *entity.Booking) error {
	_, err := r.q.Exec(context.Background(), insertBookingSQL, bookingArgs(b)...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// InsertIfAbsent inserta la reserva solo si su RecurringKey está libre; el
// índice único parcial sobre recurring_key hace el arbitraje en el store
// (ON CONFLICT DO NOTHING), nunca un chequeo previo aquí. Devuelve si insertó.
func (r *BookingRepo) InsertIfAbsent(b *entity.Booking) (bool, error) {
	query := insertBookingSQL + `
	ON CONFLICT (recurring_key) WHERE recurring_key <> '' DO NOTHING`
	cmd, err := r.q.Exec(context.Background(), query, bookingArgs(b)...)
	if err != nil {
		return false, fmt.Errorf("insert booking if absent: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// GetByID obtiene una reserva por ID. Devuelve (nil, nil) si no existe.
func (r *BookingRepo) GetByID(id string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// Update actualiza una reserva existente. Los campos de trazabilidad de
// recurrencia no se tocan: quedaron fijados al crear.
func (r *BookingRepo) Update(b *entity.Booking) error {
	query := `
		UPDATE bookings SET vehicle_id = $2, driver_id = $3, pickup_date = $4, delivery_date = $5,
			pickup_address = $6, delivery_address = $7, cargo_description = $8, notes = $9,
			extra = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.VehicleID, b.DriverID, b.PickupDate, b.DeliveryDate,
		b.PickupAddress, b.DeliveryAddress, b.CargoDescription, b.Notes,
		b.Extra, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	return nil
}

// Delete elimina una reserva por ID.
func (r *BookingRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}

// List lista reservas con paginación.
func (r *BookingRepo) List(limit, offset int) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()
	return collectBookings(rows)
}

// ListByRule lista las reservas materializadas por una regla de recurrencia,
// en orden de fecha de ocurrencia.
func (r *BookingRepo) ListByRule(ruleID string) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE recurring_rule_id = $1 ORDER BY recurring_date`
	rows, err := r.q.Query(context.Background(), query, ruleID)
	if err != nil {
		return nil, fmt.Errorf("list bookings by rule: %w", err)
	}
	defer rows.Close()
	return collectBookings(rows)
}

func bookingArgs(b *entity.Booking) []any {
	return []any{
		b.ID, b.BookingNumber, b.CustomerID, b.VehicleID, b.DriverID,
		b.PickupDate, b.DeliveryDate, b.PickupAddress, b.DeliveryAddress,
		b.CargoDescription, b.Notes, b.RecurringRuleID, b.RecurringDate,
		b.RecurringKey, b.Extra, b.CreatedAt, b.UpdatedAt,
	}
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID, &b.BookingNumber, &b.CustomerID, &b.VehicleID, &b.DriverID,
		&b.PickupDate, &b.DeliveryDate, &b.PickupAddress, &b.DeliveryAddress,
		&b.CargoDescription, &b.Notes, &b.RecurringRuleID, &b.RecurringDate,
		&b.RecurringKey, &b.Extra, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	var list []*entity.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
