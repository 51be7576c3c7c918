package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateJobOrderRequest body para POST /api/job-orders. El número y received_date los asigna el sistema.
type CreateJobOrderRequest struct {
	CustomerID           string           `json:"customer_id" validate:"required"`
	VehicleID            string           `json:"vehicle_id" validate:"required"`
	ServiceType          string           `json:"service_type" validate:"required,max=100"`
	Description          string           `json:"description" validate:"required"`
	CustomerComplaint    string           `json:"customer_complaint"`
	Status               string           `json:"status" validate:"omitempty,oneof=received inspection waiting_parts in_repair ready delivered cancelled"`
	Priority             string           `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	EstimatedCompletion  *time.Time       `json:"estimated_completion"`
	AssignedTechnicianID *string          `json:"assigned_technician_id"`
	EstimatedCost        *decimal.Decimal `json:"estimated_cost"`
	Notes                string           `json:"notes"`
	InternalNotes        string           `json:"internal_notes"`
}

// UpdateJobOrderRequest actualización parcial. job_number y received_date no son editables.
type UpdateJobOrderRequest struct {
	ServiceType          *string          `json:"service_type" validate:"omitempty,max=100"`
	Description          *string          `json:"description"`
	CustomerComplaint    *string          `json:"customer_complaint"`
	Status               *string          `json:"status" validate:"omitempty,oneof=received inspection waiting_parts in_repair ready delivered cancelled"`
	Priority             *string          `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	EstimatedCompletion  *time.Time       `json:"estimated_completion"`
	ActualCompletion     *time.Time       `json:"actual_completion"`
	AssignedTechnicianID *string          `json:"assigned_technician_id"`
	EstimatedCost        *decimal.Decimal `json:"estimated_cost"`
	ActualCost           *decimal.Decimal `json:"actual_cost"`
	Notes                *string          `json:"notes"`
	InternalNotes        *string          `json:"internal_notes"`
	StatusNotes          string           `json:"status_notes"` // nota para el historial si cambia el estado
}

// UpdateStatusRequest body para POST /api/job-orders/:id/update-status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes"`
}

// JobOrderListRequest filtros de GET /api/job-orders.
type JobOrderListRequest struct {
	PageRequest
	Status       string `query:"status"`
	Priority     string `query:"priority"`
	TechnicianID string `query:"assigned_technician"`
	CustomerID   string `query:"customer_id"`
	VehicleID    string `query:"vehicle_id"`
	Search       string `query:"search"`
}

// JobOrderResponse orden de trabajo. Items, tiempos e historial solo en el detalle.
type JobOrderResponse struct {
	ID                   string                   `json:"id"`
	JobNumber            string                   `json:"job_number"`
	CustomerID           string                   `json:"customer_id"`
	VehicleID            string                   `json:"vehicle_id"`
	ServiceType          string                   `json:"service_type"`
	Description          string                   `json:"description"`
	CustomerComplaint    string                   `json:"customer_complaint,omitempty"`
	Status               string                   `json:"status"`
	Priority             string                   `json:"priority"`
	ReceivedDate         time.Time                `json:"received_date"`
	EstimatedCompletion  *time.Time               `json:"estimated_completion"`
	ActualCompletion     *time.Time               `json:"actual_completion"`
	AssignedTechnicianID *string                  `json:"assigned_technician_id"`
	EstimatedCost        *decimal.Decimal         `json:"estimated_cost"`
	ActualCost           *decimal.Decimal         `json:"actual_cost"`
	Notes                string                   `json:"notes,omitempty"`
	InternalNotes        string                   `json:"internal_notes,omitempty"`
	CreatedBy            *string                  `json:"created_by"`
	UpdatedAt            time.Time                `json:"updated_at"`
	Items                []JobOrderItemResponse   `json:"items,omitempty"`
	TechnicianTimes      []TechnicianTimeResponse `json:"technician_times,omitempty"`
	StatusHistory        []StatusHistoryResponse  `json:"status_history,omitempty"`
}

// JobOrderItemRequest alta o edición de una línea. total_price se calcula siempre.
type JobOrderItemRequest struct {
	ItemType    string           `json:"item_type" validate:"required,oneof=part labor service other"`
	Name        string           `json:"name" validate:"required,max=200"`
	Description string           `json:"description"`
	SKU         string           `json:"sku" validate:"omitempty,max=100"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	HoursWorked *decimal.Decimal `json:"hours_worked"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate"`
}

// JobOrderItemResponse línea de la orden.
type JobOrderItemResponse struct {
	ID          string           `json:"id"`
	JobOrderID  string           `json:"job_order_id"`
	ItemType    string           `json:"item_type"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	SKU         string           `json:"sku,omitempty"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	TotalPrice  decimal.Decimal  `json:"total_price"`
	HoursWorked *decimal.Decimal `json:"hours_worked"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// TechnicianTimeRequest alta o edición de un registro de tiempo. hours_worked se calcula.
type TechnicianTimeRequest struct {
	TechnicianID    string     `json:"technician_id"` // vacío = usuario autenticado
	StartTime       time.Time  `json:"start_time" validate:"required"`
	EndTime         *time.Time `json:"end_time"`
	WorkDescription string     `json:"work_description" validate:"required"`
	PartsUsed       string     `json:"parts_used"`
	Notes           string     `json:"notes"`
}

// TechnicianTimeResponse registro de tiempo.
type TechnicianTimeResponse struct {
	ID              string           `json:"id"`
	JobOrderID      string           `json:"job_order_id"`
	TechnicianID    string           `json:"technician_id"`
	StartTime       time.Time        `json:"start_time"`
	EndTime         *time.Time       `json:"end_time"`
	HoursWorked     *decimal.Decimal `json:"hours_worked"`
	WorkDescription string           `json:"work_description"`
	PartsUsed       string           `json:"parts_used,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// StatusHistoryResponse registro de cambio de estado.
type StatusHistoryResponse struct {
	ID         string    `json:"id"`
	JobOrderID string    `json:"job_order_id"`
	OldStatus  *string   `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	Notes      string    `json:"notes,omitempty"`
	ChangedBy  *string   `json:"changed_by"`
	ChangedAt  time.Time `json:"changed_at"`
}

// JobOrderStatsResponse salida de GET /api/job-orders/stats.
type JobOrderStatsResponse struct {
	TotalJobOrders    int             `json:"total_job_orders"`
	PendingJobOrders  int             `json:"pending_job_orders"`
	InRepairJobOrders int             `json:"in_repair_job_orders"`
	ReadyJobOrders    int             `json:"ready_job_orders"`
	JobOrdersByStatus []LabelCountDTO `json:"job_orders_by_status"`
}
