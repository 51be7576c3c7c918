package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la orden de trabajo. No existe tabla de transiciones: cualquier estado puede seguir a cualquier otro.
const (
	JobStatusReceived     = "received"
	JobStatusInspection   = "inspection"
	JobStatusWaitingParts = "waiting_parts"
	JobStatusInRepair     = "in_repair"
	JobStatusReady        = "ready"
	JobStatusDelivered    = "delivered"
	JobStatusCancelled    = "cancelled"
)

// JobStatuses catálogo de estados válidos.
var JobStatuses = []string{
	JobStatusReceived, JobStatusInspection, JobStatusWaitingParts, JobStatusInRepair,
	JobStatusReady, JobStatusDelivered, JobStatusCancelled,
}

// Prioridades.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// JobOrder ticket de reparación de un vehículo desde la recepción hasta la entrega.
type JobOrder struct {
	ID                   string
	JobNumber            string // inmutable una vez asignado
	CustomerID           string
	VehicleID            string
	ServiceType          string
	Description          string
	CustomerComplaint    string
	Status               string
	Priority             string
	ReceivedDate         time.Time // se fija una sola vez, al crear
	EstimatedCompletion  *time.Time
	ActualCompletion     *time.Time
	AssignedTechnicianID *string
	EstimatedCost        *decimal.Decimal
	ActualCost           *decimal.Decimal
	Notes                string
	InternalNotes        string
	CreatedBy            *string
	UpdatedAt            time.Time
}

// Tipos de ítem de una orden.
const (
	ItemTypePart    = "part"
	ItemTypeLabor   = "labor"
	ItemTypeService = "service"
	ItemTypeOther   = "other"
)

// JobOrderItem línea de la orden. TotalPrice es derivado; nunca se fija directamente.
type JobOrderItem struct {
	ID          string
	JobOrderID  string
	ItemType    string
	Name        string
	Description string
	SKU         string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	HoursWorked *decimal.Decimal
	HourlyRate  *decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TechnicianTime registro de tiempo trabajado. HoursWorked queda nil sin EndTime.
type TechnicianTime struct {
	ID              string
	JobOrderID      string
	TechnicianID    string
	StartTime       time.Time
	EndTime         *time.Time
	HoursWorked     *decimal.Decimal
	WorkDescription string
	PartsUsed       string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// StatusHistory registro inmutable de un cambio de estado. OldStatus es nil en la creación.
type StatusHistory struct {
	ID         string
	JobOrderID string
	OldStatus  *string
	NewStatus  string
	Notes      string
	ChangedBy  *string
	ChangedAt  time.Time
}
