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

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

// VehicleRepo implementación de VehicleRepository sobre PostgreSQL (usable con pool o tx).
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador de vehículos. Pasar pool o tx (Querier).
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

// Create persiste un vehículo. La placa tiene índice único.
func (r *VehicleRepo) Create(v *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, plate, type, capacity_tons, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.Plate, v.Type, v.CapacityTons, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetByID obtiene un vehículo por ID. Devuelve (nil, nil) si no existe.
func (r *VehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	query := `SELECT id, plate, type, capacity_tons, created_at, updated_at FROM vehicles WHERE id = $1`
	var v entity.Vehicle
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.Plate, &v.Type, &v.CapacityTons, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return &v, nil
}

// Update actualiza un vehículo existente.
func (r *VehicleRepo) Update(v *entity.Vehicle) error {
	query := `UPDATE vehicles SET plate = $2, type = $3, capacity_tons = $4, updated_at = $5 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, v.ID, v.Plate, v.Type, v.CapacityTons, v.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update vehicle: %w", err)
	}
	return nil
}

// List lista vehículos con paginación.
func (r *VehicleRepo) List(limit, offset int) ([]*entity.Vehicle, error) {
	query := `SELECT id, plate, type, capacity_tons, created_at, updated_at FROM vehicles ORDER BY plate LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vehicle
	for rows.Next() {
		var v entity.Vehicle
		if err := rows.Scan(&v.ID, &v.Plate, &v.Type, &v.CapacityTons, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Delete elimina un vehículo por ID.
func (r *VehicleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	return nil
}
