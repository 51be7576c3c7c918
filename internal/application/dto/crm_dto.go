package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Clientes ──────────────────────────────────────────────────────────────────

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	FirstName              string `json:"first_name" validate:"required,max=100"`
	LastName               string `json:"last_name" validate:"required,max=100"`
	Email                  string `json:"email" validate:"omitempty,email"`
	Phone                  string `json:"phone" validate:"required,max=20"`
	AlternatePhone         string `json:"alternate_phone" validate:"omitempty,max=20"`
	AddressLine1           string `json:"address_line1" validate:"required,max=255"`
	AddressLine2           string `json:"address_line2" validate:"omitempty,max=255"`
	City                   string `json:"city" validate:"required,max=100"`
	State                  string `json:"state" validate:"required,max=100"`
	PostalCode             string `json:"postal_code" validate:"required,max=20"`
	Country                string `json:"country" validate:"omitempty,max=100"`
	CompanyName            string `json:"company_name" validate:"omitempty,max=200"`
	TaxID                  string `json:"tax_id" validate:"omitempty,max=50"`
	Notes                  string `json:"notes"`
	PreferredContactMethod string `json:"preferred_contact_method" validate:"omitempty,oneof=phone email sms"`
}

// UpdateCustomerRequest actualización parcial de un cliente.
type UpdateCustomerRequest struct {
	FirstName              *string `json:"first_name" validate:"omitempty,max=100"`
	LastName               *string `json:"last_name" validate:"omitempty,max=100"`
	Email                  *string `json:"email" validate:"omitempty,email"`
	Phone                  *string `json:"phone" validate:"omitempty,max=20"`
	AlternatePhone         *string `json:"alternate_phone" validate:"omitempty,max=20"`
	AddressLine1           *string `json:"address_line1" validate:"omitempty,max=255"`
	AddressLine2           *string `json:"address_line2" validate:"omitempty,max=255"`
	City                   *string `json:"city" validate:"omitempty,max=100"`
	State                  *string `json:"state" validate:"omitempty,max=100"`
	PostalCode             *string `json:"postal_code" validate:"omitempty,max=20"`
	Country                *string `json:"country" validate:"omitempty,max=100"`
	CompanyName            *string `json:"company_name" validate:"omitempty,max=200"`
	TaxID                  *string `json:"tax_id" validate:"omitempty,max=50"`
	Notes                  *string `json:"notes"`
	PreferredContactMethod *string `json:"preferred_contact_method" validate:"omitempty,oneof=phone email sms"`
	IsActive               *bool   `json:"is_active"`
}

// CustomerListRequest filtros de GET /api/customers.
type CustomerListRequest struct {
	PageRequest
	Search string `query:"search"`
	Active string `query:"is_active"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID                     string    `json:"id"`
	FirstName              string    `json:"first_name"`
	LastName               string    `json:"last_name"`
	FullName               string    `json:"full_name"`
	Email                  string    `json:"email,omitempty"`
	Phone                  string    `json:"phone"`
	AlternatePhone         string    `json:"alternate_phone,omitempty"`
	AddressLine1           string    `json:"address_line1"`
	AddressLine2           string    `json:"address_line2,omitempty"`
	City                   string    `json:"city"`
	State                  string    `json:"state"`
	PostalCode             string    `json:"postal_code"`
	Country                string    `json:"country"`
	CompanyName            string    `json:"company_name,omitempty"`
	TaxID                  string    `json:"tax_id,omitempty"`
	Notes                  string    `json:"notes,omitempty"`
	PreferredContactMethod string    `json:"preferred_contact_method"`
	IsActive               bool      `json:"is_active"`
	CreatedBy              *string   `json:"created_by"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// CreateCommunicationRequest body para POST /api/customers/:id/communications.
type CreateCommunicationRequest struct {
	CommunicationType string     `json:"communication_type" validate:"required,oneof=call email sms visit other"`
	Subject           string     `json:"subject" validate:"required,max=200"`
	Message           string     `json:"message" validate:"required"`
	Direction         string     `json:"direction" validate:"required,oneof=inbound outbound"`
	CommunicationDate *time.Time `json:"communication_date"`
}

// CommunicationResponse contacto registrado.
type CommunicationResponse struct {
	ID                string    `json:"id"`
	CustomerID        string    `json:"customer_id"`
	CommunicationType string    `json:"communication_type"`
	Subject           string    `json:"subject"`
	Message           string    `json:"message"`
	Direction         string    `json:"direction"`
	CommunicationDate time.Time `json:"communication_date"`
	CreatedBy         *string   `json:"created_by"`
}

// CreateAppointmentRequest body para POST /api/appointments.
type CreateAppointmentRequest struct {
	CustomerID      string    `json:"customer_id" validate:"required"`
	AppointmentDate time.Time `json:"appointment_date" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"omitempty,min=1"`
	ServiceType     string    `json:"service_type" validate:"required,max=100"`
	Description     string    `json:"description"`
	Status          string    `json:"status" validate:"omitempty,oneof=scheduled confirmed in_progress completed cancelled no_show"`
	Notes           string    `json:"notes"`
	AssignedTo      *string   `json:"assigned_to"`
}

// UpdateAppointmentRequest actualización parcial de una cita.
type UpdateAppointmentRequest struct {
	AppointmentDate *time.Time `json:"appointment_date"`
	DurationMinutes *int       `json:"duration_minutes" validate:"omitempty,min=1"`
	ServiceType     *string    `json:"service_type" validate:"omitempty,max=100"`
	Description     *string    `json:"description"`
	Status          *string    `json:"status" validate:"omitempty,oneof=scheduled confirmed in_progress completed cancelled no_show"`
	Notes           *string    `json:"notes"`
	AssignedTo      *string    `json:"assigned_to"`
}

// AppointmentListRequest filtros de GET /api/appointments.
type AppointmentListRequest struct {
	PageRequest
	CustomerID string `query:"customer_id"`
	Status     string `query:"status"`
	DateFrom   string `query:"date_from"` // YYYY-MM-DD
	DateTo     string `query:"date_to"`
}

// AppointmentResponse cita en respuestas.
type AppointmentResponse struct {
	ID              string    `json:"id"`
	CustomerID      string    `json:"customer_id"`
	AppointmentDate time.Time `json:"appointment_date"`
	DurationMinutes int       `json:"duration_minutes"`
	ServiceType     string    `json:"service_type"`
	Description     string    `json:"description,omitempty"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	AssignedTo      *string   `json:"assigned_to"`
	CreatedBy       *string   `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CustomerStatsResponse salida de GET /api/customers/stats.
type CustomerStatsResponse struct {
	TotalCustomers      int `json:"total_customers"`
	ActiveCustomers     int `json:"active_customers"`
	TotalAppointments   int `json:"total_appointments"`
	PendingAppointments int `json:"pending_appointments"`
}

// ── Vehículos ─────────────────────────────────────────────────────────────────

// CreateVehicleRequest body para POST /api/vehicles.
type CreateVehicleRequest struct {
	Make             string     `json:"make" validate:"required,max=50"`
	Model            string     `json:"model" validate:"required,max=50"`
	Year             int        `json:"year" validate:"required,min=1900,max=2100"`
	VIN              string     `json:"vin" validate:"required,len=17"`
	LicensePlate     string     `json:"license_plate" validate:"required,max=20"`
	Color            string     `json:"color" validate:"omitempty,max=30"`
	EngineSize       string     `json:"engine_size" validate:"omitempty,max=20"`
	FuelType         string     `json:"fuel_type" validate:"omitempty,oneof=gasoline diesel hybrid electric lpg cng"`
	Transmission     string     `json:"transmission" validate:"omitempty,oneof=manual automatic cvt semi_automatic"`
	Mileage          int        `json:"mileage" validate:"min=0"`
	EngineNumber     string     `json:"engine_number" validate:"omitempty,max=50"`
	CustomerID       string     `json:"customer_id" validate:"required"`
	RegistrationDate *time.Time `json:"registration_date"`
	InsuranceExpiry  *time.Time `json:"insurance_expiry"`
	Notes            string     `json:"notes"`
}

// UpdateVehicleRequest actualización parcial; cambiar customer_id reasigna el dueño.
type UpdateVehicleRequest struct {
	Make             *string    `json:"make" validate:"omitempty,max=50"`
	Model            *string    `json:"model" validate:"omitempty,max=50"`
	Year             *int       `json:"year" validate:"omitempty,min=1900,max=2100"`
	VIN              *string    `json:"vin" validate:"omitempty,len=17"`
	LicensePlate     *string    `json:"license_plate" validate:"omitempty,max=20"`
	Color            *string    `json:"color" validate:"omitempty,max=30"`
	EngineSize       *string    `json:"engine_size" validate:"omitempty,max=20"`
	FuelType         *string    `json:"fuel_type" validate:"omitempty,oneof=gasoline diesel hybrid electric lpg cng"`
	Transmission     *string    `json:"transmission" validate:"omitempty,oneof=manual automatic cvt semi_automatic"`
	Mileage          *int       `json:"mileage" validate:"omitempty,min=0"`
	EngineNumber     *string    `json:"engine_number" validate:"omitempty,max=50"`
	CustomerID       *string    `json:"customer_id"`
	RegistrationDate *time.Time `json:"registration_date"`
	InsuranceExpiry  *time.Time `json:"insurance_expiry"`
	Notes            *string    `json:"notes"`
	IsActive         *bool      `json:"is_active"`
}

// VehicleListRequest filtros de GET /api/vehicles.
type VehicleListRequest struct {
	PageRequest
	CustomerID string `query:"customer_id"`
	Make       string `query:"make"`
	Search     string `query:"search"`
	Active     string `query:"is_active"`
}

// VehicleResponse vehículo en respuestas.
type VehicleResponse struct {
	ID               string     `json:"id"`
	Make             string     `json:"make"`
	Model            string     `json:"model"`
	Year             int        `json:"year"`
	VIN              string     `json:"vin"`
	LicensePlate     string     `json:"license_plate"`
	Color            string     `json:"color,omitempty"`
	EngineSize       string     `json:"engine_size,omitempty"`
	FuelType         string     `json:"fuel_type"`
	Transmission     string     `json:"transmission"`
	Mileage          int        `json:"mileage"`
	EngineNumber     string     `json:"engine_number,omitempty"`
	CustomerID       string     `json:"customer_id"`
	RegistrationDate *time.Time `json:"registration_date"`
	InsuranceExpiry  *time.Time `json:"insurance_expiry"`
	Notes            string     `json:"notes,omitempty"`
	IsActive         bool       `json:"is_active"`
	CreatedBy        *string    `json:"created_by"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// CreateVehicleHistoryRequest body para POST /api/vehicles/:id/history.
type CreateVehicleHistoryRequest struct {
	ServiceDate      time.Time        `json:"service_date" validate:"required"`
	ServiceType      string           `json:"service_type" validate:"required,max=100"`
	Description      string           `json:"description" validate:"required"`
	MileageAtService int              `json:"mileage_at_service" validate:"min=0"`
	Cost             *decimal.Decimal `json:"cost"`
	ServiceProvider  string           `json:"service_provider" validate:"omitempty,max=200"`
}

// VehicleHistoryResponse servicio histórico.
type VehicleHistoryResponse struct {
	ID               string           `json:"id"`
	VehicleID        string           `json:"vehicle_id"`
	ServiceDate      time.Time        `json:"service_date"`
	ServiceType      string           `json:"service_type"`
	Description      string           `json:"description"`
	MileageAtService int              `json:"mileage_at_service"`
	Cost             *decimal.Decimal `json:"cost"`
	ServiceProvider  string           `json:"service_provider,omitempty"`
	CreatedBy        *string          `json:"created_by"`
	CreatedAt        time.Time        `json:"created_at"`
}

// LabelCountDTO par etiqueta/conteo.
type LabelCountDTO struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// VehicleStatsResponse salida de GET /api/vehicles/stats.
type VehicleStatsResponse struct {
	TotalVehicles  int             `json:"total_vehicles"`
	ActiveVehicles int             `json:"active_vehicles"`
	VehiclesByMake []LabelCountDTO `json:"vehicles_by_make"`
	VehiclesByYear []LabelCountDTO `json:"vehicles_by_year"`
}
