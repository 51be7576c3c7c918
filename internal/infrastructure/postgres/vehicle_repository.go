package postgres

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var (
	_ repository.VehicleRepository        = (*VehicleRepo)(nil)
	_ repository.VehicleHistoryRepository = (*VehicleHistoryRepo)(nil)
)

const vehicleColumns = `id, make, model, year, vin, license_plate, color, engine_size, fuel_type, transmission,
	mileage, engine_number, customer_id, registration_date, insurance_expiry, notes, is_active,
	created_by, created_at, updated_at`

// VehicleRepo vehículos; VIN y placa únicos cuando no están vacíos.
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador.
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

func scanVehicle(s scanner) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := s.Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.VIN, &v.LicensePlate, &v.Color, &v.EngineSize,
		&v.FuelType, &v.Transmission, &v.Mileage, &v.EngineNumber, &v.CustomerID, &v.RegistrationDate,
		&v.InsuranceExpiry, &v.Notes, &v.IsActive, &v.CreatedBy, &v.CreatedAt, &v.UpdatedAt)
	return &v, err
}

// Create inserta un vehículo.
func (r *VehicleRepo) Create(ctx context.Context, v *entity.Vehicle) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO vehicles (`+vehicleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		v.ID, v.Make, v.Model, v.Year, v.VIN, v.LicensePlate, v.Color, v.EngineSize, v.FuelType, v.Transmission,
		v.Mileage, v.EngineNumber, v.CustomerID, v.RegistrationDate, v.InsuranceExpiry, v.Notes, v.IsActive,
		v.CreatedBy, v.CreatedAt, v.UpdatedAt,
	)
	return writeErr("insert vehicle", err)
}

// GetByID obtiene un vehículo.
func (r *VehicleRepo) GetByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id), "get vehicle", scanVehicle)
}

// Update actualiza un vehículo; customer_id se reasigna como cualquier otro campo.
func (r *VehicleRepo) Update(ctx context.Context, v *entity.Vehicle) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE vehicles SET make = $2, model = $3, year = $4, vin = $5, license_plate = $6, color = $7,
		       engine_size = $8, fuel_type = $9, transmission = $10, mileage = $11, engine_number = $12,
		       customer_id = $13, registration_date = $14, insurance_expiry = $15, notes = $16, is_active = $17,
		       updated_at = $18
		WHERE id = $1`,
		v.ID, v.Make, v.Model, v.Year, v.VIN, v.LicensePlate, v.Color, v.EngineSize, v.FuelType, v.Transmission,
		v.Mileage, v.EngineNumber, v.CustomerID, v.RegistrationDate, v.InsuranceExpiry, v.Notes, v.IsActive,
		v.UpdatedAt,
	)
	return mustAffect(tag, "update vehicle", err)
}

// Delete elimina un vehículo.
func (r *VehicleRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	return mustAffect(tag, "delete vehicle", err)
}

// List por cliente, marca exacta (sin distinguir mayúsculas) y texto libre.
func (r *VehicleRepo) List(ctx context.Context, f repository.VehicleFilter) ([]*entity.Vehicle, error) {
	var w where
	w.addIf("customer_id = ?", f.CustomerID)
	w.addIf("lower(make) = lower(?)", f.Make)
	if f.IsActive != nil {
		w.add("is_active = ?", *f.IsActive)
	}
	w.search("(license_plate ILIKE ? OR vin ILIKE ? OR make ILIKE ? OR model ILIKE ?)", f.Search)
	query := `SELECT ` + vehicleColumns + ` FROM vehicles` + w.sql() + ` ORDER BY make, model, year DESC` + w.page(f.Page)
	rows, err := r.q.Query(ctx, query, w.args...)
	return many(rows, err, "list vehicles", scanVehicle)
}

// VehicleHistoryRepo servicios históricos.
type VehicleHistoryRepo struct {
	q Querier
}

// NewVehicleHistoryRepository construye el adaptador.
func NewVehicleHistoryRepository(q Querier) *VehicleHistoryRepo {
	return &VehicleHistoryRepo{q: q}
}

// Create inserta un servicio.
func (r *VehicleHistoryRepo) Create(ctx context.Context, h *entity.VehicleHistory) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO vehicle_history (id, vehicle_id, service_date, service_type, description, mileage_at_service,
		       cost, service_provider, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		h.ID, h.VehicleID, h.ServiceDate, h.ServiceType, h.Description, h.MileageAtService, h.Cost,
		h.ServiceProvider, h.CreatedBy, h.CreatedAt,
	)
	return writeErr("insert vehicle history", err)
}

// ListByVehicle más recientes primero.
func (r *VehicleHistoryRepo) ListByVehicle(ctx context.Context, vehicleID string) ([]*entity.VehicleHistory, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, vehicle_id, service_date, service_type, description, mileage_at_service, cost,
		       service_provider, created_by, created_at
		FROM vehicle_history WHERE vehicle_id = $1 ORDER BY service_date DESC`, vehicleID)
	return many(rows, err, "list vehicle history", func(s scanner) (*entity.VehicleHistory, error) {
		var h entity.VehicleHistory
		err := s.Scan(&h.ID, &h.VehicleID, &h.ServiceDate, &h.ServiceType, &h.Description, &h.MileageAtService,
			&h.Cost, &h.ServiceProvider, &h.CreatedBy, &h.CreatedAt)
		return &h, err
	})
}
