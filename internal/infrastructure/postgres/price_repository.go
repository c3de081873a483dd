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

var _ repository.PriceRepository = (*PriceRepo)(nil)

const priceColumns = `id, origin, destination, vehicle_type, base_price, dmt_surcharge_pct, created_at, updated_at`

// PriceRepo implementación de PriceRepository sobre PostgreSQL (usable con pool o tx).
type PriceRepo struct {
	q Querier
}

// NewPriceRepository construye el adaptador de tarifas. Pasar pool o tx (Querier).
func NewPriceRepository(q Querier) *PriceRepo {
	return &PriceRepo{q: q}
}

// Create persiste una fila de tarifa. (origin, destination, vehicle_type) tiene índice único.
func (r *PriceRepo) Create(p *entity.PriceRow) error {
	query := `
		INSERT INTO price_rows (` + priceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Origin, p.Destination, p.VehicleType, p.BasePrice, p.DMTSurchargePct, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert price row: %w", err)
	}
	return nil
}

// Upsert inserta o actualiza la fila por (origin, destination, vehicle_type).
// Es la vía del seed masivo de tarifas: correr el seed dos veces no duplica.
func (r *PriceRepo) Upsert(p *entity.PriceRow) error {
	query := `
		INSERT INTO price_rows (` + priceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (origin, destination, vehicle_type)
		DO UPDATE SET base_price = EXCLUDED.base_price, dmt_surcharge_pct = EXCLUDED.dmt_surcharge_pct, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Origin, p.Destination, p.VehicleType, p.BasePrice, p.DMTSurchargePct, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert price row: %w", err)
	}
	return nil
}

// GetByID obtiene una fila de tarifa por ID. Devuelve (nil, nil) si no existe.
func (r *PriceRepo) GetByID(id string) (*entity.PriceRow, error) {
	query := `SELECT ` + priceColumns + ` FROM price_rows WHERE id = $1`
	var p entity.PriceRow
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Origin, &p.Destination, &p.VehicleType, &p.BasePrice, &p.DMTSurchargePct, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get price row: %w", err)
	}
	return &p, nil
}

// Update actualiza precio base y recargo de una fila.
func (r *PriceRepo) Update(p *entity.PriceRow) error {
	query := `UPDATE price_rows SET base_price = $2, dmt_surcharge_pct = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, p.ID, p.BasePrice, p.DMTSurchargePct, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update price row: %w", err)
	}
	return nil
}

// List lista filas de tarifa con paginación.
func (r *PriceRepo) List(limit, offset int) ([]*entity.PriceRow, error) {
	query := `SELECT ` + priceColumns + ` FROM price_rows ORDER BY origin, destination, vehicle_type LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list price rows: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceRow
	for rows.Next() {
		var p entity.PriceRow
		if err := rows.Scan(&p.ID, &p.Origin, &p.Destination, &p.VehicleType, &p.BasePrice, &p.DMTSurchargePct, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan price row: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina una fila de tarifa por ID.
func (r *PriceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM price_rows WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete price row: %w", err)
	}
	return nil
}
