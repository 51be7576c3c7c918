// Package workshop casos de uso de órdenes de trabajo, sus ítems, tiempos de técnico e historial.
package workshop

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/application/sequence"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/access"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/numbering"
	"github.com/jhoicas/taller-api/internal/domain/repository"
	wsrules "github.com/jhoicas/taller-api/internal/domain/workshop"
)

// CreatedNote nota del registro de historial inicial.
const CreatedNote = "Job order created"

// Repositories puertos que usa el módulo de taller fuera de las transacciones.
type Repositories struct {
	JobOrders       repository.JobOrderRepository
	Items           repository.JobOrderItemRepository
	TechnicianTimes repository.TechnicianTimeRepository
	StatusHistory   repository.StatusHistoryRepository
	Customers       repository.CustomerRepository
	Vehicles        repository.VehicleRepository
	Stats           repository.StatsRepository
}

// JobOrderUseCase ciclo de vida de la orden de trabajo.
type JobOrderUseCase struct {
	repos Repositories
	tx    ports.TxRunner
	seq   *sequence.Generator
}

// NewJobOrderUseCase construye el caso de uso.
func NewJobOrderUseCase(repos Repositories, tx ports.TxRunner, seq *sequence.Generator) *JobOrderUseCase {
	return &JobOrderUseCase{repos: repos, tx: tx, seq: seq}
}

// List órdenes filtradas; vacío sin acceso al taller.
func (uc *JobOrderUseCase) List(ctx context.Context, actor entity.Actor, in dto.JobOrderListRequest) (dto.ListResponse[dto.JobOrderResponse], error) {
	in.DefaultPage()
	if !access.Can(actor.Role, access.Workshop) {
		return dto.NewList[dto.JobOrderResponse](nil, in.PageRequest), nil
	}
	rows, err := uc.repos.JobOrders.List(ctx, repository.JobOrderFilter{
		Status:       in.Status,
		Priority:     in.Priority,
		TechnicianID: in.TechnicianID,
		CustomerID:   in.CustomerID,
		VehicleID:    in.VehicleID,
		Search:       strings.TrimSpace(in.Search),
		Page:         repository.Page{Limit: in.Limit, Offset: in.Offset},
	})
	if err != nil {
		return dto.ListResponse[dto.JobOrderResponse]{}, fmt.Errorf("workshop: listar órdenes: %w", err)
	}
	items := make([]dto.JobOrderResponse, 0, len(rows))
	for _, jo := range rows {
		items = append(items, toJobOrderResponse(jo))
	}
	return dto.NewList(items, in.PageRequest), nil
}

// Create asigna el número JO, fija received_date y registra el historial inicial en la misma transacción.
func (uc *JobOrderUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateJobOrderRequest) (*dto.JobOrderResponse, error) {
	if err := access.Check(actor.Role, access.Workshop); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.JobStatusReceived
	}
	if !wsrules.IsValidStatus(status) {
		return nil, domain.NewValidationError("status", "estado desconocido")
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityNormal
	}
	if !wsrules.IsValidPriority(priority) {
		return nil, domain.NewValidationError("priority", "prioridad desconocida")
	}
	if err := uc.ensureVehicle(ctx, in.CustomerID, in.VehicleID); err != nil {
		return nil, err
	}

	now := time.Now()
	jo := &entity.JobOrder{
		ID:                   uuid.New().String(),
		CustomerID:           in.CustomerID,
		VehicleID:            in.VehicleID,
		ServiceType:          in.ServiceType,
		Description:          in.Description,
		CustomerComplaint:    in.CustomerComplaint,
		Status:               status,
		Priority:             priority,
		ReceivedDate:         now,
		EstimatedCompletion:  in.EstimatedCompletion,
		AssignedTechnicianID: emptyToNil(in.AssignedTechnicianID),
		EstimatedCost:        in.EstimatedCost,
		Notes:                in.Notes,
		InternalNotes:        in.InternalNotes,
		CreatedBy:            actor.Ref(),
		UpdatedAt:            now,
	}
	err := uc.seq.Issue(ctx, numbering.JobOrder, func(number string, r ports.Repos) error {
		jo.JobNumber = number
		if err := r.JobOrders.Create(ctx, jo); err != nil {
			return err
		}
		return r.StatusHistory.Create(ctx, wsrules.InitialHistory(jo, uuid.New().String(), CreatedNote, actor.Ref(), now))
	})
	if err != nil {
		return nil, fmt.Errorf("workshop: crear orden: %w", err)
	}
	log.Info().Str("job_order_id", jo.ID).Str("job_number", jo.JobNumber).Msg("orden de trabajo creada")
	out := toJobOrderResponse(jo)
	return &out, nil
}

// GetByID detalle con ítems, tiempos e historial.
func (uc *JobOrderUseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.JobOrderResponse, error) {
	jo, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.repos.Items.ListByJobOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("workshop: ítems: %w", err)
	}
	times, err := uc.repos.TechnicianTimes.ListByJobOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("workshop: tiempos: %w", err)
	}
	history, err := uc.repos.StatusHistory.ListByJobOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("workshop: historial: %w", err)
	}
	out := toJobOrderResponse(jo)
	for _, it := range items {
		out.Items = append(out.Items, toItemResponse(it))
	}
	for _, tt := range times {
		out.TechnicianTimes = append(out.TechnicianTimes, toTimeResponse(tt))
	}
	for _, h := range history {
		out.StatusHistory = append(out.StatusHistory, toHistoryResponse(h))
	}
	return &out, nil
}

// Update aplica los campos informados. Si el estado cambia se agrega un registro de historial.
func (uc *JobOrderUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateJobOrderRequest) (*dto.JobOrderResponse, error) {
	if err := access.Check(actor.Role, access.Workshop); err != nil {
		return nil, err
	}
	if in.Priority != nil && !wsrules.IsValidPriority(*in.Priority) {
		return nil, domain.NewValidationError("priority", "prioridad desconocida")
	}
	return uc.mutate(ctx, id, func(jo *entity.JobOrder, r ports.Repos, now time.Time) error {
		setString(&jo.ServiceType, in.ServiceType)
		setString(&jo.Description, in.Description)
		setString(&jo.CustomerComplaint, in.CustomerComplaint)
		setString(&jo.Priority, in.Priority)
		if in.EstimatedCompletion != nil {
			jo.EstimatedCompletion = in.EstimatedCompletion
		}
		if in.ActualCompletion != nil {
			jo.ActualCompletion = in.ActualCompletion
		}
		if in.AssignedTechnicianID != nil {
			jo.AssignedTechnicianID = emptyToNil(in.AssignedTechnicianID)
		}
		if in.EstimatedCost != nil {
			jo.EstimatedCost = in.EstimatedCost
		}
		if in.ActualCost != nil {
			jo.ActualCost = in.ActualCost
		}
		setString(&jo.Notes, in.Notes)
		setString(&jo.InternalNotes, in.InternalNotes)
		if in.Status == nil {
			jo.UpdatedAt = now
			return r.JobOrders.Update(ctx, jo)
		}
		return uc.changeStatus(ctx, r, actor, jo, *in.Status, in.StatusNotes, now)
	})
}

// UpdateStatus endpoint dedicado de cambio de estado.
func (uc *JobOrderUseCase) UpdateStatus(ctx context.Context, actor entity.Actor, id string, in dto.UpdateStatusRequest) (*dto.JobOrderResponse, error) {
	if err := access.Check(actor.Role, access.Workshop); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Status) == "" {
		return nil, domain.NewValidationError("status", "es obligatorio")
	}
	return uc.mutate(ctx, id, func(jo *entity.JobOrder, r ports.Repos, now time.Time) error {
		return uc.changeStatus(ctx, r, actor, jo, in.Status, in.Notes, now)
	})
}

// Delete elimina la orden (y en cascada sus ítems, tiempos e historial).
func (uc *JobOrderUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if err := access.Check(actor.Role, access.Workshop); err != nil {
		return err
	}
	if _, err := uc.load(ctx, actor, id); err != nil {
		return err
	}
	return uc.repos.JobOrders.Delete(ctx, id)
}

// History registros de cambio de estado en orden cronológico.
func (uc *JobOrderUseCase) History(ctx context.Context, actor entity.Actor, id string) ([]dto.StatusHistoryResponse, error) {
	out := []dto.StatusHistoryResponse{}
	if !access.Can(actor.Role, access.Workshop) {
		return out, nil
	}
	if _, err := uc.load(ctx, actor, id); err != nil {
		return nil, err
	}
	rows, err := uc.repos.StatusHistory.ListByJobOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("workshop: historial: %w", err)
	}
	for _, h := range rows {
		out = append(out, toHistoryResponse(h))
	}
	return out, nil
}

// Stats conteos por estado. pending = received + inspection.
func (uc *JobOrderUseCase) Stats(ctx context.Context, actor entity.Actor) (*dto.JobOrderStatsResponse, error) {
	if err := access.Check(actor.Role, access.Workshop); err != nil {
		return nil, err
	}
	s, err := uc.repos.Stats.JobOrderStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("workshop: estadísticas: %w", err)
	}
	out := &dto.JobOrderStatsResponse{
		TotalJobOrders:    s.Total,
		PendingJobOrders:  s.Pending,
		InRepairJobOrders: s.InRepair,
		ReadyJobOrders:    s.Ready,
		JobOrdersByStatus: make([]dto.LabelCountDTO, 0, len(s.ByStatus)),
	}
	for _, c := range s.ByStatus {
		out.JobOrdersByStatus = append(out.JobOrdersByStatus, dto.LabelCountDTO{Label: c.Label, Count: c.Count})
	}
	return out, nil
}

// mutate bloquea la orden, aplica fn y devuelve el estado persistido.
func (uc *JobOrderUseCase) mutate(ctx context.Context, id string, fn func(jo *entity.JobOrder, r ports.Repos, now time.Time) error) (*dto.JobOrderResponse, error) {
	var updated *entity.JobOrder
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		jo, err := r.JobOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if jo == nil {
			return domain.ErrNotFound
		}
		if err := fn(jo, r, time.Now()); err != nil {
			return err
		}
		updated = jo
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := toJobOrderResponse(updated)
	return &out, nil
}

func (uc *JobOrderUseCase) changeStatus(ctx context.Context, r ports.Repos, actor entity.Actor, jo *entity.JobOrder, status, notes string, now time.Time) error {
	h, err := wsrules.ChangeStatus(jo, status, uuid.New().String(), notes, actor.Ref(), now)
	if err != nil {
		return err
	}
	jo.UpdatedAt = now
	if err := r.JobOrders.Update(ctx, jo); err != nil {
		return err
	}
	if h == nil {
		return nil
	}
	if err := r.StatusHistory.Create(ctx, h); err != nil {
		return err
	}
	log.Info().Str("job_number", jo.JobNumber).Str("old_status", *h.OldStatus).Str("new_status", h.NewStatus).Msg("cambio de estado")
	return nil
}

func (uc *JobOrderUseCase) ensureVehicle(ctx context.Context, customerID, vehicleID string) error {
	c, err := uc.repos.Customers.GetByID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("workshop: obtener cliente: %w", err)
	}
	if c == nil {
		return domain.NewValidationError("customer_id", "cliente inexistente")
	}
	v, err := uc.repos.Vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return fmt.Errorf("workshop: obtener vehículo: %w", err)
	}
	if v == nil {
		return domain.NewValidationError("vehicle_id", "vehículo inexistente")
	}
	return nil
}

func (uc *JobOrderUseCase) load(ctx context.Context, actor entity.Actor, id string) (*entity.JobOrder, error) {
	return loadJobOrder(ctx, uc.repos.JobOrders, actor, id)
}

func loadJobOrder(ctx context.Context, repo repository.JobOrderRepository, actor entity.Actor, id string) (*entity.JobOrder, error) {
	if !access.Can(actor.Role, access.Workshop) {
		return nil, domain.ErrNotFound
	}
	jo, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("workshop: obtener orden: %w", err)
	}
	if jo == nil {
		return nil, domain.ErrNotFound
	}
	return jo, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
