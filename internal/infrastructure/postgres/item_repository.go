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

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, customer_id, description, quantity, daily_storage_price, arrived_at, departed_at, created_at, updated_at`

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de artículos de bodega. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo artículo.
func (r *ItemRepo) Create(item *entity.WarehouseItem) error {
	query := `
		INSERT INTO warehouse_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CustomerID, item.Description, item.Quantity, item.DailyStoragePrice,
		item.ArrivedAt, item.DepartedAt, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID. Devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetByID(id string) (*entity.WarehouseItem, error) {
	query := `SELECT ` + itemColumns + ` FROM warehouse_items WHERE id = $1`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse item: %w", err)
	}
	return item, nil
}

// ApplyQuantityChange escribe la nueva cantidad y los campos derivados solo si
// la cantidad actual coincide con expectedQuantity (compare-and-swap a nivel
// de fila). Cero filas afectadas se desambigua con una consulta de existencia:
// artículo ausente -> ErrItemNotFound; cantidad distinta -> ErrPreconditionFailed.
func (r *ItemRepo) ApplyQuantityChange(itemID string, expectedQuantity *int, newQuantity int, derived entity.ItemDerived) (*entity.WarehouseItem, error) {
	query := `
		UPDATE warehouse_items
		SET quantity = $2, arrived_at = $3, departed_at = $4, updated_at = now()
		WHERE id = $1 AND ($5::int IS NULL OR quantity = $5)
		RETURNING ` + itemColumns
	item, err := scanItem(r.q.QueryRow(context.Background(), query,
		itemID, newQuantity, derived.ArrivedAt, derived.DepartedAt, expectedQuantity,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if err := r.q.QueryRow(context.Background(),
				`SELECT EXISTS (SELECT 1 FROM warehouse_items WHERE id = $1)`, itemID,
			).Scan(&exists); err != nil {
				return nil, fmt.Errorf("check warehouse item: %w", err)
			}
			if !exists {
				return nil, domain.ErrItemNotFound
			}
			return nil, domain.ErrPreconditionFailed
		}
		return nil, fmt.Errorf("apply quantity change: %w", err)
	}
	return item, nil
}

// List lista artículos con paginación.
func (r *ItemRepo) List(limit, offset int) ([]*entity.WarehouseItem, error) {
	query := `SELECT ` + itemColumns + ` FROM warehouse_items ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouse items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// ListByCustomer lista artículos de un cliente con paginación.
func (r *ItemRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.WarehouseItem, error) {
	query := `SELECT ` + itemColumns + ` FROM warehouse_items WHERE customer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouse items by customer: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// Delete elimina un artículo. Devuelve si alguna fila fue borrada; la guardia
// de movimientos vive en el caso de uso, dentro de la misma transacción.
func (r *ItemRepo) Delete(id string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM warehouse_items WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete warehouse item: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanItem(row pgx.Row) (*entity.WarehouseItem, error) {
	var it entity.WarehouseItem
	err := row.Scan(
		&it.ID, &it.CustomerID, &it.Description, &it.Quantity, &it.DailyStoragePrice,
		&it.ArrivedAt, &it.DepartedAt, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func collectItems(rows pgx.Rows) ([]*entity.WarehouseItem, error) {
	var list []*entity.WarehouseItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan warehouse item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
