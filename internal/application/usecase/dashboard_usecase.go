package usecase

import (
	"time"

	"github.com/tu-usuario/logistica-api/internal/application/dto"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

// DashboardUseCase agregados de solo lectura para el tablero del back office.
type DashboardUseCase struct {
	repo repository.StatsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.StatsRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// Get calcula los agregados del tablero al día de hoy.
func (uc *DashboardUseCase) Get() (*dto.DashboardResponse, error) {
	today := time.Now().Format("2006-01-02")
	stats, err := uc.repo.Dashboard(today)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		TotalBookings:   stats.TotalBookings,
		UpcomingPickups: stats.UpcomingPickups,
		ActiveRules:     stats.ActiveRules,
		ItemsInStorage:  stats.ItemsInStorage,
		TotalCustomers:  stats.TotalCustomers,
	}, nil
}
