package crm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/access"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// VehicleUseCase vehículos de clientes y su historial de servicio.
type VehicleUseCase struct {
	vehicles  repository.VehicleRepository
	history   repository.VehicleHistoryRepository
	customers repository.CustomerRepository
	stats     repository.StatsRepository
}

// NewVehicleUseCase construye el caso de uso.
func NewVehicleUseCase(
	vehicles repository.VehicleRepository,
	history repository.VehicleHistoryRepository,
	customers repository.CustomerRepository,
	stats repository.StatsRepository,
) *VehicleUseCase {
	return &VehicleUseCase{vehicles: vehicles, history: history, customers: customers, stats: stats}
}

// List vehículos filtrados; vacío sin acceso a CRM.
func (uc *VehicleUseCase) List(ctx context.Context, actor entity.Actor, in dto.VehicleListRequest) (dto.ListResponse[dto.VehicleResponse], error) {
	in.DefaultPage()
	if !access.Can(actor.Role, access.CRM) {
		return dto.NewList[dto.VehicleResponse](nil, in.PageRequest), nil
	}
	rows, err := uc.vehicles.List(ctx, repository.VehicleFilter{
		CustomerID: in.CustomerID,
		Make:       in.Make,
		Search:     strings.TrimSpace(in.Search),
		IsActive:   dto.ParseActive(in.Active),
		Page:       repository.Page{Limit: in.Limit, Offset: in.Offset},
	})
	if err != nil {
		return dto.ListResponse[dto.VehicleResponse]{}, fmt.Errorf("crm: listar vehículos: %w", err)
	}
	items := make([]dto.VehicleResponse, 0, len(rows))
	for _, v := range rows {
		items = append(items, toVehicleResponse(v))
	}
	return dto.NewList(items, in.PageRequest), nil
}

// Create registra un vehículo. VIN y placa repetidos: ErrDuplicate desde persistencia.
func (uc *VehicleUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	if err := access.Check(actor.Role, access.CRM); err != nil {
		return nil, err
	}
	vin := strings.ToUpper(strings.TrimSpace(in.VIN))
	if len(vin) != entity.VINLength {
		return nil, domain.NewValidationError("vin", "debe tener 17 caracteres")
	}
	if err := uc.ensureCustomer(ctx, in.CustomerID); err != nil {
		return nil, err
	}
	fuel := in.FuelType
	if fuel == "" {
		fuel = "gasoline"
	}
	transmission := in.Transmission
	if transmission == "" {
		transmission = "manual"
	}
	now := time.Now()
	v := &entity.Vehicle{
		ID:               uuid.New().String(),
		Make:             in.Make,
		Model:            in.Model,
		Year:             in.Year,
		VIN:              vin,
		LicensePlate:     strings.ToUpper(strings.TrimSpace(in.LicensePlate)),
		Color:            in.Color,
		EngineSize:       in.EngineSize,
		FuelType:         fuel,
		Transmission:     transmission,
		Mileage:          in.Mileage,
		EngineNumber:     in.EngineNumber,
		CustomerID:       in.CustomerID,
		RegistrationDate: in.RegistrationDate,
		InsuranceExpiry:  in.InsuranceExpiry,
		Notes:            in.Notes,
		IsActive:         true,
		CreatedBy:        actor.Ref(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.vehicles.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("crm: crear vehículo: %w", err)
	}
	log.Info().Str("vehicle_id", v.ID).Str("vin", v.VIN).Msg("vehículo registrado")
	out := toVehicleResponse(v)
	return &out, nil
}

// GetByID detalle del vehículo.
func (uc *VehicleUseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.VehicleResponse, error) {
	v, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	out := toVehicleResponse(v)
	return &out, nil
}

// Update aplica los campos informados; customer_id reasigna el dueño.
func (uc *VehicleUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateVehicleRequest) (*dto.VehicleResponse, error) {
	if err := access.Check(actor.Role, access.CRM); err != nil {
		return nil, err
	}
	v, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.CustomerID != nil && *in.CustomerID != v.CustomerID {
		if err := uc.ensureCustomer(ctx, *in.CustomerID); err != nil {
			return nil, err
		}
		v.CustomerID = *in.CustomerID
	}
	if in.VIN != nil {
		vin := strings.ToUpper(strings.TrimSpace(*in.VIN))
		if len(vin) != entity.VINLength {
			return nil, domain.NewValidationError("vin", "debe tener 17 caracteres")
		}
		v.VIN = vin
	}
	if in.LicensePlate != nil {
		v.LicensePlate = strings.ToUpper(strings.TrimSpace(*in.LicensePlate))
	}
	setString(&v.Make, in.Make)
	setString(&v.Model, in.Model)
	if in.Year != nil {
		v.Year = *in.Year
	}
	setString(&v.Color, in.Color)
	setString(&v.EngineSize, in.EngineSize)
	setString(&v.FuelType, in.FuelType)
	setString(&v.Transmission, in.Transmission)
	if in.Mileage != nil {
		v.Mileage = *in.Mileage
	}
	setString(&v.EngineNumber, in.EngineNumber)
	if in.RegistrationDate != nil {
		v.RegistrationDate = in.RegistrationDate
	}
	if in.InsuranceExpiry != nil {
		v.InsuranceExpiry = in.InsuranceExpiry
	}
	setString(&v.Notes, in.Notes)
	if in.IsActive != nil {
		v.IsActive = *in.IsActive
	}
	v.UpdatedAt = time.Now()
	if err := uc.vehicles.Update(ctx, v); err != nil {
		return nil, fmt.Errorf("crm: actualizar vehículo: %w", err)
	}
	out := toVehicleResponse(v)
	return &out, nil
}

// Delete elimina el vehículo.
func (uc *VehicleUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if err := access.Check(actor.Role, access.CRM); err != nil {
		return err
	}
	if _, err := uc.load(ctx, actor, id); err != nil {
		return err
	}
	return uc.vehicles.Delete(ctx, id)
}

// History servicios registrados del vehículo; vacío sin acceso.
func (uc *VehicleUseCase) History(ctx context.Context, actor entity.Actor, vehicleID string) ([]dto.VehicleHistoryResponse, error) {
	out := []dto.VehicleHistoryResponse{}
	if !access.Can(actor.Role, access.CRM) {
		return out, nil
	}
	if _, err := uc.load(ctx, actor, vehicleID); err != nil {
		return nil, err
	}
	rows, err := uc.history.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("crm: historial de vehículo: %w", err)
	}
	for _, h := range rows {
		out = append(out, toVehicleHistoryResponse(h))
	}
	return out, nil
}

// AddHistory registra un servicio (propio o de otro taller).
func (uc *VehicleUseCase) AddHistory(ctx context.Context, actor entity.Actor, vehicleID string, in dto.CreateVehicleHistoryRequest) (*dto.VehicleHistoryResponse, error) {
	if err := access.Check(actor.Role, access.CRM); err != nil {
		return nil, err
	}
	if _, err := uc.load(ctx, actor, vehicleID); err != nil {
		return nil, err
	}
	h := &entity.VehicleHistory{
		ID:               uuid.New().String(),
		VehicleID:        vehicleID,
		ServiceDate:      in.ServiceDate,
		ServiceType:      in.ServiceType,
		Description:      in.Description,
		MileageAtService: in.MileageAtService,
		Cost:             in.Cost,
		ServiceProvider:  in.ServiceProvider,
		CreatedBy:        actor.Ref(),
		CreatedAt:        time.Now(),
	}
	if err := uc.history.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("crm: crear historial: %w", err)
	}
	out := toVehicleHistoryResponse(h)
	return &out, nil
}

// Stats totales, 5 marcas más frecuentes y 5 años de modelo más recientes. ErrForbidden sin acceso.
func (uc *VehicleUseCase) Stats(ctx context.Context, actor entity.Actor) (*dto.VehicleStatsResponse, error) {
	if err := access.Check(actor.Role, access.CRM); err != nil {
		return nil, err
	}
	s, err := uc.stats.VehicleStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("crm: estadísticas de vehículos: %w", err)
	}
	return &dto.VehicleStatsResponse{
		TotalVehicles:  s.TotalVehicles,
		ActiveVehicles: s.ActiveVehicles,
		VehiclesByMake: toLabelCounts(s.ByMake),
		VehiclesByYear: toLabelCounts(s.ByYear),
	}, nil
}

func (uc *VehicleUseCase) ensureCustomer(ctx context.Context, customerID string) error {
	c, err := uc.customers.GetByID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("crm: obtener cliente: %w", err)
	}
	if c == nil {
		return domain.NewValidationError("customer_id", "cliente inexistente")
	}
	return nil
}

func (uc *VehicleUseCase) load(ctx context.Context, actor entity.Actor, id string) (*entity.Vehicle, error) {
	if !access.Can(actor.Role, access.CRM) {
		return nil, domain.ErrNotFound
	}
	v, err := uc.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("crm: obtener vehículo: %w", err)
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return v, nil
}
