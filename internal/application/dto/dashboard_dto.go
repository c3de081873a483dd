package dto

// DashboardResponse agregados del tablero del back office.
type DashboardResponse struct {
	TotalBookings   int `json:"total_bookings"`
	UpcomingPickups int `json:"upcoming_pickups"`
	ActiveRules     int `json:"active_rules"`
	ItemsInStorage  int `json:"items_in_storage"`
	TotalCustomers  int `json:"total_customers"`
}
