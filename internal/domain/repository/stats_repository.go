package repository

// DashboardStats agrupa los agregados del tablero del back office.
type DashboardStats struct {
	TotalBookings   int
	UpcomingPickups int // reservas con pickup_date >= hoy
	ActiveRules     int
	ItemsInStorage  int // artículos con cantidad > 0
	TotalCustomers  int
}

// StatsRepository expone agregados de solo lectura para el tablero.
type StatsRepository interface {
	Dashboard(today string) (*DashboardStats, error)
}
