package workshop

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/access"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/pricing"
)

// ItemUseCase líneas de la orden y registros de tiempo de técnicos.
// Los totales (total_price, hours_worked) se derivan en cada guardado.
type ItemUseCase struct {
	repos Repositories
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repos Repositories) *ItemUseCase {
	return &ItemUseCase{repos: repos}
}

// ── Ítems ─────────────────────────────────────────────────────────────────────

// ListItems líneas de la orden; vacío sin acceso.
func (uc *ItemUseCase) ListItems(ctx context.Context, actor entity.Actor, jobOrderID string) ([]dto.JobOrderItemResponse, error) {
	out := []dto.JobOrderItemResponse{}
	if !access.Can(actor.Role, access.Workshop) {
		return out, nil
	}
	if _, err := loadJobOrder(ctx, uc.repos.JobOrders, actor, jobOrderID); err != nil {
		return nil, err
	}
	rows, err := uc.repos.Items.ListByJobOrder(ctx, jobOrderID)
	if err != nil {
		return nil, fmt.Errorf("workshop: ítems: %w", err)
	}
	for _, it := range rows {
		out = append(out, toItemResponse(it))
	}
	return out, nil
}

// AddItem agrega una línea con su total calculado.
func (uc *ItemUseCase) AddItem(ctx context.Context, actor entity.Actor, jobOrderID string, in dto.JobOrderItemRequest) (*dto.JobOrderItemResponse, error) {
	if err := access.Check(actor.Role, access.Workshop); err != nil {
		return nil, err
	}
	if _, err := loadJobOrder(ctx, uc.repos.JobOrders, actor, jobOrderID); err != nil {
		return nil, err
	}
	if err := validateItem(in); err != nil {
		return nil, err
	}
	now := time.Now()
	it := &entity.JobOrderItem{
		ID:         uuid.New().String(),
		JobOrderID: jobOrderID,
		CreatedAt:  now,
	}
	applyItem(it, in, now)
	if err := uc.repos.Items.Create(ctx, it); err != nil {
		return nil, fmt.Errorf("workshop: crear ítem: %w", err)
	}
	out := toItemResponse(it)
	return &out, nil
}

// UpdateItem reemplaza la línea y recalcula su total.
func (uc *ItemUseCase) UpdateItem(ctx context.Context, actor entity.Actor, jobOrderID, itemID string, in dto.JobOrderItemRequest) (*dto.JobOrderItemResponse, error) {
	if err := access.Check(actor.Role, access.Workshop); err != nil {
		return nil, err
	}
	it, err := uc.loadItem(ctx, actor, jobOrderID, itemID)
	if err != nil {
		return nil, err
	}
	if err := validateItem(in); err != nil {
		return nil, err
	}
	applyItem(it, in, time.Now())
	if err := uc.repos.Items.Update(ctx, it); err != nil {
		return nil, fmt.Errorf("workshop: actualizar ítem: %w", err)
	}
	out := toItemResponse(it)
	return &out, nil
}

// DeleteItem elimina la línea.
func (uc *ItemUseCase) DeleteItem(ctx context.Context, actor entity.Actor, jobOrderID, itemID string) error {
	if err := access.Check(actor.Role, access.Workshop); err != nil {
		return err
	}
	if _, err := uc.loadItem(ctx, actor, jobOrderID, itemID); err != nil {
		return err
	}
	return uc.repos.Items.Delete(ctx, itemID)
}

func (uc *ItemUseCase) loadItem(ctx context.Context, actor entity.Actor, jobOrderID, itemID string) (*entity.JobOrderItem, error) {
	if _, err := loadJobOrder(ctx, uc.repos.JobOrders, actor, jobOrderID); err != nil {
		return nil, err
	}
	it, err := uc.repos.Items.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("workshop: obtener ítem: %w", err)
	}
	if it == nil || it.JobOrderID != jobOrderID {
		return nil, domain.ErrNotFound
	}
	return it, nil
}

func validateItem(in dto.JobOrderItemRequest) error {
	switch in.ItemType {
	case entity.ItemTypePart, entity.ItemTypeLabor, entity.ItemTypeService, entity.ItemTypeOther:
	default:
		return domain.NewValidationError("item_type", "tipo desconocido")
	}
	if in.Quantity.IsNegative() {
		return domain.NewValidationError("quantity", "no puede ser negativa")
	}
	if in.UnitPrice.IsNegative() {
		return domain.NewValidationError("unit_price", "no puede ser negativo")
	}
	return nil
}

func applyItem(it *entity.JobOrderItem, in dto.JobOrderItemRequest, now time.Time) {
	it.ItemType = in.ItemType
	it.Name = in.Name
	it.Description = in.Description
	it.SKU = in.SKU
	it.Quantity = in.Quantity
	it.UnitPrice = in.UnitPrice
	it.HoursWorked = in.HoursWorked
	it.HourlyRate = in.HourlyRate
	it.UpdatedAt = now
	pricing.ApplyJobItem(it)
}

// ── Tiempos de técnico ────────────────────────────────────────────────────────

// ListTimes registros de tiempo de la orden; vacío sin acceso.
func (uc *ItemUseCase) ListTimes(ctx context.Context, actor entity.Actor, jobOrderID string) ([]dto.TechnicianTimeResponse, error) {
	out := []dto.TechnicianTimeResponse{}
	if !access.Can(actor.Role, access.Workshop) {
		return out, nil
	}
	if _, err := loadJobOrder(ctx, uc.repos.JobOrders, actor, jobOrderID); err != nil {
		return nil, err
	}
	rows, err := uc.repos.TechnicianTimes.ListByJobOrder(ctx, jobOrderID)
	if err != nil {
		return nil, fmt.Errorf("workshop: tiempos: %w", err)
	}
	for _, tt := range rows {
		out = append(out, toTimeResponse(tt))
	}
	return out, nil
}

// AddTime registra tiempo trabajado; sin technician_id se usa el actor.
func (uc *ItemUseCase) AddTime(ctx context.Context, actor entity.Actor, jobOrderID string, in dto.TechnicianTimeRequest) (*dto.TechnicianTimeResponse, error) {
	if err := access.Check(actor.Role, access.Workshop); err != nil {
		return nil, err
	}
	if _, err := loadJobOrder(ctx, uc.repos.JobOrders, actor, jobOrderID); err != nil {
		return nil, err
	}
	now := time.Now()
	tt := &entity.TechnicianTime{
		ID:         uuid.New().String(),
		JobOrderID: jobOrderID,
		CreatedAt:  now,
	}
	if err := applyTime(tt, in, actor, now); err != nil {
		return nil, err
	}
	if err := uc.repos.TechnicianTimes.Create(ctx, tt); err != nil {
		return nil, fmt.Errorf("workshop: crear tiempo: %w", err)
	}
	out := toTimeResponse(tt)
	return &out, nil
}

// UpdateTime reemplaza el registro y recalcula las horas.
func (uc *ItemUseCase) UpdateTime(ctx context.Context, actor entity.Actor, jobOrderID, timeID string, in dto.TechnicianTimeRequest) (*dto.TechnicianTimeResponse, error) {
	if err := access.Check(actor.Role, access.Workshop); err != nil {
		return nil, err
	}
	tt, err := uc.loadTime(ctx, actor, jobOrderID, timeID)
	if err != nil {
		return nil, err
	}
	if in.TechnicianID == "" {
		in.TechnicianID = tt.TechnicianID
	}
	if err := applyTime(tt, in, actor, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.repos.TechnicianTimes.Update(ctx, tt); err != nil {
		return nil, fmt.Errorf("workshop: actualizar tiempo: %w", err)
	}
	out := toTimeResponse(tt)
	return &out, nil
}

// DeleteTime elimina el registro.
func (uc *ItemUseCase) DeleteTime(ctx context.Context, actor entity.Actor, jobOrderID, timeID string) error {
	if err := access.Check(actor.Role, access.Workshop); err != nil {
		return err
	}
	if _, err := uc.loadTime(ctx, actor, jobOrderID, timeID); err != nil {
		return err
	}
	return uc.repos.TechnicianTimes.Delete(ctx, timeID)
}

func (uc *ItemUseCase) loadTime(ctx context.Context, actor entity.Actor, jobOrderID, timeID string) (*entity.TechnicianTime, error) {
	if _, err := loadJobOrder(ctx, uc.repos.JobOrders, actor, jobOrderID); err != nil {
		return nil, err
	}
	tt, err := uc.repos.TechnicianTimes.GetByID(ctx, timeID)
	if err != nil {
		return nil, fmt.Errorf("workshop: obtener tiempo: %w", err)
	}
	if tt == nil || tt.JobOrderID != jobOrderID {
		return nil, domain.ErrNotFound
	}
	return tt, nil
}

func applyTime(tt *entity.TechnicianTime, in dto.TechnicianTimeRequest, actor entity.Actor, now time.Time) error {
	if in.EndTime != nil && in.EndTime.Before(in.StartTime) {
		return domain.NewValidationError("end_time", "anterior a start_time")
	}
	tech := in.TechnicianID
	if tech == "" {
		tech = actor.UserID
	}
	tt.TechnicianID = tech
	tt.StartTime = in.StartTime
	tt.EndTime = in.EndTime
	tt.WorkDescription = in.WorkDescription
	tt.PartsUsed = in.PartsUsed
	tt.Notes = in.Notes
	tt.UpdatedAt = now
	pricing.ApplyTechnicianTime(tt)
	return nil
}
