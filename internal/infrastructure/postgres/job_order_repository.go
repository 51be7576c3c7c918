package postgres

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var (
	_ repository.JobOrderRepository       = (*JobOrderRepo)(nil)
	_ repository.JobOrderItemRepository   = (*JobOrderItemRepo)(nil)
	_ repository.TechnicianTimeRepository = (*TechnicianTimeRepo)(nil)
	_ repository.StatusHistoryRepository  = (*StatusHistoryRepo)(nil)
)

const jobOrderColumns = `id, job_number, customer_id, vehicle_id, service_type, description, customer_complaint,
	status, priority, received_date, estimated_completion, actual_completion, assigned_technician_id,
	estimated_cost, actual_cost, notes, internal_notes, created_by, updated_at`

// JobOrderRepo órdenes de trabajo (usable con pool o tx).
type JobOrderRepo struct {
	q Querier
}

// NewJobOrderRepository construye el adaptador.
func NewJobOrderRepository(q Querier) *JobOrderRepo {
	return &JobOrderRepo{q: q}
}

func scanJobOrder(s scanner) (*entity.JobOrder, error) {
	var jo entity.JobOrder
	err := s.Scan(&jo.ID, &jo.JobNumber, &jo.CustomerID, &jo.VehicleID, &jo.ServiceType, &jo.Description,
		&jo.CustomerComplaint, &jo.Status, &jo.Priority, &jo.ReceivedDate, &jo.EstimatedCompletion,
		&jo.ActualCompletion, &jo.AssignedTechnicianID, &jo.EstimatedCost, &jo.ActualCost, &jo.Notes,
		&jo.InternalNotes, &jo.CreatedBy, &jo.UpdatedAt)
	return &jo, err
}

// Create inserta la orden con su número ya emitido.
func (r *JobOrderRepo) Create(ctx context.Context, jo *entity.JobOrder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO job_orders (`+jobOrderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		jo.ID, jo.JobNumber, jo.CustomerID, jo.VehicleID, jo.ServiceType, jo.Description, jo.CustomerComplaint,
		jo.Status, jo.Priority, jo.ReceivedDate, jo.EstimatedCompletion, jo.ActualCompletion,
		jo.AssignedTechnicianID, jo.EstimatedCost, jo.ActualCost, jo.Notes, jo.InternalNotes, jo.CreatedBy,
		jo.UpdatedAt,
	)
	return writeErr("insert job order", err)
}

// GetByID obtiene una orden.
func (r *JobOrderRepo) GetByID(ctx context.Context, id string) (*entity.JobOrder, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+jobOrderColumns+` FROM job_orders WHERE id = $1`, id), "get job order", scanJobOrder)
}

// GetForUpdate obtiene la orden y bloquea la fila (SELECT FOR UPDATE).
func (r *JobOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.JobOrder, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+jobOrderColumns+` FROM job_orders WHERE id = $1 FOR UPDATE`, id), "get job order for update", scanJobOrder)
}

// Update no modifica job_number ni received_date.
func (r *JobOrderRepo) Update(ctx context.Context, jo *entity.JobOrder) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE job_orders SET customer_id = $2, vehicle_id = $3, service_type = $4, description = $5,
		       customer_complaint = $6, status = $7, priority = $8, estimated_completion = $9,
		       actual_completion = $10, assigned_technician_id = $11, estimated_cost = $12, actual_cost = $13,
		       notes = $14, internal_notes = $15, updated_at = $16
		WHERE id = $1`,
		jo.ID, jo.CustomerID, jo.VehicleID, jo.ServiceType, jo.Description, jo.CustomerComplaint, jo.Status,
		jo.Priority, jo.EstimatedCompletion, jo.ActualCompletion, jo.AssignedTechnicianID, jo.EstimatedCost,
		jo.ActualCost, jo.Notes, jo.InternalNotes, jo.UpdatedAt,
	)
	return mustAffect(tag, "update job order", err)
}

// Delete elimina la orden; ítems, tiempos e historial caen en cascada.
func (r *JobOrderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM job_orders WHERE id = $1`, id)
	return mustAffect(tag, "delete job order", err)
}

// List órdenes más recientes primero.
func (r *JobOrderRepo) List(ctx context.Context, f repository.JobOrderFilter) ([]*entity.JobOrder, error) {
	var w where
	w.addIf("status = ?", f.Status)
	w.addIf("priority = ?", f.Priority)
	w.addIf("assigned_technician_id = ?", f.TechnicianID)
	w.addIf("customer_id = ?", f.CustomerID)
	w.addIf("vehicle_id = ?", f.VehicleID)
	w.search("(job_number ILIKE ? OR service_type ILIKE ? OR description ILIKE ?)", f.Search)
	query := `SELECT ` + jobOrderColumns + ` FROM job_orders` + w.sql() + ` ORDER BY received_date DESC` + w.page(f.Page)
	rows, err := r.q.Query(ctx, query, w.args...)
	return many(rows, err, "list job orders", scanJobOrder)
}

// ── Ítems ─────────────────────────────────────────────────────────────────────

const jobOrderItemColumns = `id, job_order_id, item_type, name, description, sku, quantity, unit_price, total_price,
	hours_worked, hourly_rate, created_at, updated_at`

// JobOrderItemRepo líneas de la orden.
type JobOrderItemRepo struct {
	q Querier
}

// NewJobOrderItemRepository construye el adaptador.
func NewJobOrderItemRepository(q Querier) *JobOrderItemRepo {
	return &JobOrderItemRepo{q: q}
}

func scanJobOrderItem(s scanner) (*entity.JobOrderItem, error) {
	var it entity.JobOrderItem
	err := s.Scan(&it.ID, &it.JobOrderID, &it.ItemType, &it.Name, &it.Description, &it.SKU, &it.Quantity,
		&it.UnitPrice, &it.TotalPrice, &it.HoursWorked, &it.HourlyRate, &it.CreatedAt, &it.UpdatedAt)
	return &it, err
}

// Create inserta una línea con su total ya derivado.
func (r *JobOrderItemRepo) Create(ctx context.Context, it *entity.JobOrderItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO job_order_items (`+jobOrderItemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		it.ID, it.JobOrderID, it.ItemType, it.Name, it.Description, it.SKU, it.Quantity, it.UnitPrice,
		it.TotalPrice, it.HoursWorked, it.HourlyRate, it.CreatedAt, it.UpdatedAt,
	)
	return writeErr("insert job order item", err)
}

// GetByID obtiene una línea.
func (r *JobOrderItemRepo) GetByID(ctx context.Context, id string) (*entity.JobOrderItem, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+jobOrderItemColumns+` FROM job_order_items WHERE id = $1`, id), "get job order item", scanJobOrderItem)
}

// Update actualiza una línea.
func (r *JobOrderItemRepo) Update(ctx context.Context, it *entity.JobOrderItem) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE job_order_items SET item_type = $2, name = $3, description = $4, sku = $5, quantity = $6,
		       unit_price = $7, total_price = $8, hours_worked = $9, hourly_rate = $10, updated_at = $11
		WHERE id = $1`,
		it.ID, it.ItemType, it.Name, it.Description, it.SKU, it.Quantity, it.UnitPrice, it.TotalPrice,
		it.HoursWorked, it.HourlyRate, it.UpdatedAt,
	)
	return mustAffect(tag, "update job order item", err)
}

// Delete elimina una línea.
func (r *JobOrderItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM job_order_items WHERE id = $1`, id)
	return mustAffect(tag, "delete job order item", err)
}

// ListByJobOrder en orden de alta.
func (r *JobOrderItemRepo) ListByJobOrder(ctx context.Context, jobOrderID string) ([]*entity.JobOrderItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+jobOrderItemColumns+` FROM job_order_items WHERE job_order_id = $1 ORDER BY created_at`, jobOrderID)
	return many(rows, err, "list job order items", scanJobOrderItem)
}

// ── Tiempos de técnicos ───────────────────────────────────────────────────────

const technicianTimeColumns = `id, job_order_id, technician_id, start_time, end_time, hours_worked, work_description,
	parts_used, notes, created_at, updated_at`

// TechnicianTimeRepo registros de tiempo.
type TechnicianTimeRepo struct {
	q Querier
}

// NewTechnicianTimeRepository construye el adaptador.
func NewTechnicianTimeRepository(q Querier) *TechnicianTimeRepo {
	return &TechnicianTimeRepo{q: q}
}

func scanTechnicianTime(s scanner) (*entity.TechnicianTime, error) {
	var tt entity.TechnicianTime
	err := s.Scan(&tt.ID, &tt.JobOrderID, &tt.TechnicianID, &tt.StartTime, &tt.EndTime, &tt.HoursWorked,
		&tt.WorkDescription, &tt.PartsUsed, &tt.Notes, &tt.CreatedAt, &tt.UpdatedAt)
	return &tt, err
}

// Create inserta un registro.
func (r *TechnicianTimeRepo) Create(ctx context.Context, tt *entity.TechnicianTime) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO technician_times (`+technicianTimeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		tt.ID, tt.JobOrderID, tt.TechnicianID, tt.StartTime, tt.EndTime, tt.HoursWorked, tt.WorkDescription,
		tt.PartsUsed, tt.Notes, tt.CreatedAt, tt.UpdatedAt,
	)
	return writeErr("insert technician time", err)
}

// GetByID obtiene un registro.
func (r *TechnicianTimeRepo) GetByID(ctx context.Context, id string) (*entity.TechnicianTime, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+technicianTimeColumns+` FROM technician_times WHERE id = $1`, id), "get technician time", scanTechnicianTime)
}

// Update actualiza un registro.
func (r *TechnicianTimeRepo) Update(ctx context.Context, tt *entity.TechnicianTime) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE technician_times SET technician_id = $2, start_time = $3, end_time = $4, hours_worked = $5,
		       work_description = $6, parts_used = $7, notes = $8, updated_at = $9
		WHERE id = $1`,
		tt.ID, tt.TechnicianID, tt.StartTime, tt.EndTime, tt.HoursWorked, tt.WorkDescription, tt.PartsUsed,
		tt.Notes, tt.UpdatedAt,
	)
	return mustAffect(tag, "update technician time", err)
}

// Delete elimina un registro.
func (r *TechnicianTimeRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM technician_times WHERE id = $1`, id)
	return mustAffect(tag, "delete technician time", err)
}

// ListByJobOrder por hora de inicio.
func (r *TechnicianTimeRepo) ListByJobOrder(ctx context.Context, jobOrderID string) ([]*entity.TechnicianTime, error) {
	rows, err := r.q.Query(ctx, `SELECT `+technicianTimeColumns+` FROM technician_times WHERE job_order_id = $1 ORDER BY start_time`, jobOrderID)
	return many(rows, err, "list technician times", scanTechnicianTime)
}

// ── Historial de estados ──────────────────────────────────────────────────────

// StatusHistoryRepo registro de solo inserción.
type StatusHistoryRepo struct {
	q Querier
}

// NewStatusHistoryRepository construye el adaptador.
func NewStatusHistoryRepository(q Querier) *StatusHistoryRepo {
	return &StatusHistoryRepo{q: q}
}

// Create inserta un cambio de estado.
func (r *StatusHistoryRepo) Create(ctx context.Context, h *entity.StatusHistory) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO job_order_status_history (id, job_order_id, old_status, new_status, notes, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		h.ID, h.JobOrderID, h.OldStatus, h.NewStatus, h.Notes, h.ChangedBy, h.ChangedAt,
	)
	return writeErr("insert status history", err)
}

// ListByJobOrder en orden cronológico.
func (r *StatusHistoryRepo) ListByJobOrder(ctx context.Context, jobOrderID string) ([]*entity.StatusHistory, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, job_order_id, old_status, new_status, notes, changed_by, changed_at
		FROM job_order_status_history WHERE job_order_id = $1 ORDER BY changed_at, id`, jobOrderID)
	return many(rows, err, "list status history", func(s scanner) (*entity.StatusHistory, error) {
		var h entity.StatusHistory
		err := s.Scan(&h.ID, &h.JobOrderID, &h.OldStatus, &h.NewStatus, &h.Notes, &h.ChangedBy, &h.ChangedAt)
		return &h, err
	})
}
