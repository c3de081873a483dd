package dto

import "time"

// BookingPayload campos de una reserva tal como viajan por la API; también es
// la forma de la plantilla dentro de una regla de recurrencia.
type BookingPayload struct {
	CustomerID       string         `json:"customer_id" validate:"required"`
	VehicleID        string         `json:"vehicle_id,omitempty"`
	DriverID         string         `json:"driver_id,omitempty"`
	PickupDate       string         `json:"pickup_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DeliveryDate     string         `json:"delivery_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PickupAddress    string         `json:"pickup_address,omitempty"`
	DeliveryAddress  string         `json:"delivery_address,omitempty"`
	CargoDescription string         `json:"cargo_description,omitempty"`
	Notes            string         `json:"notes,omitempty"`
	Extra            map[string]any `json:"extra,omitempty"`
}

// UpdateBookingRequest actualización parcial de una reserva.
type UpdateBookingRequest struct {
	VehicleID        *string        `json:"vehicle_id,omitempty"`
	DriverID         *string        `json:"driver_id,omitempty"`
	PickupDate       *string        `json:"pickup_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DeliveryDate     *string        `json:"delivery_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PickupAddress    *string        `json:"pickup_address,omitempty"`
	DeliveryAddress  *string        `json:"delivery_address,omitempty"`
	CargoDescription *string        `json:"cargo_description,omitempty"`
	Notes            *string        `json:"notes,omitempty"`
	Extra            map[string]any `json:"extra,omitempty"`
}

// BookingResponse reserva en respuestas.
type BookingResponse struct {
	ID               string         `json:"id"`
	BookingNumber    string         `json:"booking_number"`
	CustomerID       string         `json:"customer_id"`
	VehicleID        string         `json:"vehicle_id,omitempty"`
	DriverID         string         `json:"driver_id,omitempty"`
	PickupDate       string         `json:"pickup_date,omitempty"`
	DeliveryDate     string         `json:"delivery_date,omitempty"`
	PickupAddress    string         `json:"pickup_address,omitempty"`
	DeliveryAddress  string         `json:"delivery_address,omitempty"`
	CargoDescription string         `json:"cargo_description,omitempty"`
	Notes            string         `json:"notes,omitempty"`
	RecurringRuleID  string         `json:"recurring_rule_id,omitempty"`
	RecurringDate    string         `json:"recurring_date,omitempty"`
	RecurringKey     string         `json:"recurring_key,omitempty"`
	Extra            map[string]any `json:"extra,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// BookingListResponse listado paginado de reservas.
type BookingListResponse struct {
	Items []BookingResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
