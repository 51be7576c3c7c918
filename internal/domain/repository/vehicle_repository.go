package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// VehicleFilter filtros de vehículos.
type VehicleFilter struct {
	CustomerID string
	Make       string
	Search     string // placa, VIN, marca o modelo
	IsActive   *bool
	Page
}

// VehicleRepository define el puerto de persistencia para Vehicle.
type VehicleRepository interface {
	Create(ctx context.Context, v *entity.Vehicle) error
	GetByID(ctx context.Context, id string) (*entity.Vehicle, error)
	Update(ctx context.Context, v *entity.Vehicle) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f VehicleFilter) ([]*entity.Vehicle, error)
}

// VehicleHistoryRepository servicios históricos del vehículo.
type VehicleHistoryRepository interface {
	Create(ctx context.Context, h *entity.VehicleHistory) error
	ListByVehicle(ctx context.Context, vehicleID string) ([]*entity.VehicleHistory, error)
}
