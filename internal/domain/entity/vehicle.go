package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// VINLength longitud exacta del número de identificación vehicular.
const VINLength = 17

// Vehicle pertenece a exactamente un Customer; el cambio de dueño es una reasignación.
type Vehicle struct {
	ID               string
	Make             string
	Model            string
	Year             int
	VIN              string
	LicensePlate     string
	Color            string
	EngineSize       string
	FuelType         string // gasoline, diesel, hybrid, electric, lpg, cng
	Transmission     string // manual, automatic, cvt, semi_automatic
	Mileage          int
	EngineNumber     string
	CustomerID       string
	RegistrationDate *time.Time
	InsuranceExpiry  *time.Time
	Notes            string
	IsActive         bool
	CreatedBy        *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// VehicleHistory servicio realizado al vehículo (dentro o fuera del taller).
type VehicleHistory struct {
	ID               string
	VehicleID        string
	ServiceDate      time.Time
	ServiceType      string
	Description      string
	MileageAtService int
	Cost             *decimal.Decimal
	ServiceProvider  string
	CreatedBy        *string
	CreatedAt        time.Time
}
