package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo agregados de solo lectura para el tablero, calculados en la DB.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador de estadísticas. Pasar pool o tx (Querier).
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// Dashboard calcula los agregados del tablero en una sola consulta.
func (r *StatsRepo) Dashboard(today string) (*repository.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM bookings),
			(SELECT COUNT(*) FROM bookings WHERE pickup_date >= $1),
			(SELECT COUNT(*) FROM recurrence_rules),
			(SELECT COUNT(*) FROM warehouse_items WHERE quantity > 0),
			(SELECT COUNT(*) FROM customers)`
	var s repository.DashboardStats
	err := r.q.QueryRow(context.Background(), query, today).Scan(
		&s.TotalBookings, &s.UpcomingPickups, &s.ActiveRules, &s.ItemsInStorage, &s.TotalCustomers,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &s, nil
}
