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

var _ repository.DriverRepository = (*DriverRepo)(nil)

// DriverRepo implementación de DriverRepository sobre PostgreSQL (usable con pool o tx).
type DriverRepo struct {
	q Querier
}

// NewDriverRepository construye el adaptador de conductores. Pasar pool o tx (Querier).
func NewDriverRepository(q Querier) *DriverRepo {
	return &DriverRepo{q: q}
}

// Create persiste un conductor. La cédula tiene índice único.
func (r *DriverRepo) Create(d *entity.Driver) error {
	query := `
		INSERT INTO drivers (id, name, document_id, phone, license_no, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.Name, d.DocumentID, d.Phone, d.LicenseNo, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert driver: %w", err)
	}
	return nil
}

// GetByID obtiene un conductor por ID. Devuelve (nil, nil) si no existe.
func (r *DriverRepo) GetByID(id string) (*entity.Driver, error) {
	query := `SELECT id, name, document_id, phone, license_no, created_at, updated_at FROM drivers WHERE id = $1`
	var d entity.Driver
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.Name, &d.DocumentID, &d.Phone, &d.LicenseNo, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver: %w", err)
	}
	return &d, nil
}

// Update actualiza un conductor existente (la cédula no cambia).
func (r *DriverRepo) Update(d *entity.Driver) error {
	query := `UPDATE drivers SET name = $2, phone = $3, license_no = $4, updated_at = $5 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, d.ID, d.Name, d.Phone, d.LicenseNo, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update driver: %w", err)
	}
	return nil
}

// List lista conductores con paginación.
func (r *DriverRepo) List(limit, offset int) ([]*entity.Driver, error) {
	query := `SELECT id, name, document_id, phone, license_no, created_at, updated_at FROM drivers ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Driver
	for rows.Next() {
		var d entity.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.DocumentID, &d.Phone, &d.LicenseNo, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Delete elimina un conductor por ID.
func (r *DriverRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete driver: %w", err)
	}
	return nil
}
