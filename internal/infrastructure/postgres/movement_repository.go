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

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, item_id, customer_id, type, quantity, date, note, booking_id, created_at`

// MovementRepo implementación de MovementRepository sobre PostgreSQL (usable
// con pool o tx). El libro es append-only: no hay UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador del libro de movimientos. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append registra un movimiento. El índice único parcial sobre
// (booking_id, type) convierte la carrera de creación idempotente por reserva
// en domain.ErrDuplicate.
func (r *MovementRepo) Append(m *entity.Movement) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ItemID, m.CustomerID, m.Type, m.Quantity, m.Date, m.Note, m.BookingID, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListByItem lista los movimientos de un artículo, más recientes primero.
func (r *MovementRepo) ListByItem(itemID string, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE item_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// CountByItem cuenta los movimientos de un artículo.
func (r *MovementRepo) CountByItem(itemID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM movements WHERE item_id = $1`, itemID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return count, nil
}

// FindByBookingAndType busca el movimiento de una reserva por tipo.
// Devuelve (nil, nil) si no existe.
func (r *MovementRepo) FindByBookingAndType(bookingID, movementType string) (*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE booking_id = $1 AND type = $2`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, bookingID, movementType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find movement by booking: %w", err)
	}
	return m, nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(
		&m.ID, &m.ItemID, &m.CustomerID, &m.Type, &m.Quantity, &m.Date, &m.Note, &m.BookingID, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
