package dto

import "time"

// ── Clientes ──────────────────────────────────────────────────────────────────

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	TaxID   string `json:"tax_id,omitempty"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// UpdateCustomerRequest actualización parcial de un cliente.
type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty"`
	TaxID   *string `json:"tax_id,omitempty"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerListResponse listado paginado de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ── Vehículos ─────────────────────────────────────────────────────────────────

// CreateVehicleRequest body para POST /api/vehicles.
type CreateVehicleRequest struct {
	Plate        string  `json:"plate" validate:"required"`
	Type         string  `json:"type" validate:"required"`
	CapacityTons float64 `json:"capacity_tons" validate:"min=0"`
}

// UpdateVehicleRequest actualización parcial de un vehículo.
type UpdateVehicleRequest struct {
	Plate        *string  `json:"plate,omitempty"`
	Type         *string  `json:"type,omitempty"`
	CapacityTons *float64 `json:"capacity_tons,omitempty" validate:"omitempty,min=0"`
}

// VehicleResponse vehículo en respuestas.
type VehicleResponse struct {
	ID           string    `json:"id"`
	Plate        string    `json:"plate"`
	Type         string    `json:"type"`
	CapacityTons float64   `json:"capacity_tons"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// VehicleListResponse listado paginado de vehículos.
type VehicleListResponse struct {
	Items []VehicleResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ── Conductores ───────────────────────────────────────────────────────────────

// CreateDriverRequest body para POST /api/drivers.
type CreateDriverRequest struct {
	Name       string `json:"name" validate:"required"`
	DocumentID string `json:"document_id" validate:"required"`
	Phone      string `json:"phone,omitempty"`
	LicenseNo  string `json:"license_no,omitempty"`
}

// UpdateDriverRequest actualización parcial de un conductor.
type UpdateDriverRequest struct {
	Name      *string `json:"name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	LicenseNo *string `json:"license_no,omitempty"`
}

// DriverResponse conductor en respuestas.
type DriverResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	DocumentID string    `json:"document_id"`
	Phone      string    `json:"phone,omitempty"`
	LicenseNo  string    `json:"license_no,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DriverListResponse listado paginado de conductores.
type DriverListResponse struct {
	Items []DriverResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
