package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// JobOrderFilter filtros de órdenes de trabajo.
type JobOrderFilter struct {
	Status       string
	Priority     string
	TechnicianID string
	CustomerID   string
	VehicleID    string
	Search       string // número, tipo de servicio o descripción
	Page
}

// JobOrderRepository define el puerto de persistencia para JobOrder.
type JobOrderRepository interface {
	Create(ctx context.Context, jo *entity.JobOrder) error
	GetByID(ctx context.Context, id string) (*entity.JobOrder, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); usar dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.JobOrder, error)
	Update(ctx context.Context, jo *entity.JobOrder) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f JobOrderFilter) ([]*entity.JobOrder, error)
}

// JobOrderItemRepository líneas de la orden.
type JobOrderItemRepository interface {
	Create(ctx context.Context, item *entity.JobOrderItem) error
	GetByID(ctx context.Context, id string) (*entity.JobOrderItem, error)
	Update(ctx context.Context, item *entity.JobOrderItem) error
	Delete(ctx context.Context, id string) error
	ListByJobOrder(ctx context.Context, jobOrderID string) ([]*entity.JobOrderItem, error)
}

// TechnicianTimeRepository registros de tiempo.
type TechnicianTimeRepository interface {
	Create(ctx context.Context, tt *entity.TechnicianTime) error
	GetByID(ctx context.Context, id string) (*entity.TechnicianTime, error)
	Update(ctx context.Context, tt *entity.TechnicianTime) error
	Delete(ctx context.Context, id string) error
	ListByJobOrder(ctx context.Context, jobOrderID string) ([]*entity.TechnicianTime, error)
}

// StatusHistoryRepository historial de estados (solo inserción).
type StatusHistoryRepository interface {
	Create(ctx context.Context, h *entity.StatusHistory) error
	ListByJobOrder(ctx context.Context, jobOrderID string) ([]*entity.StatusHistory, error)
}
