// Package workshop contiene las reglas de la orden de trabajo: el historial de estados
// es un registro de auditoría de solo inserción, no una máquina de estados.
package workshop

import (
	"time"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// IsValidStatus indica si el estado pertenece al catálogo. Cualquier estado válido
// puede seguir a cualquier otro.
func IsValidStatus(status string) bool {
	for _, s := range entity.JobStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidPriority indica si la prioridad es conocida.
func IsValidPriority(p string) bool {
	switch p {
	case entity.PriorityLow, entity.PriorityNormal, entity.PriorityHigh, entity.PriorityUrgent:
		return true
	}
	return false
}

// InitialHistory registro de creación: old_status nulo.
func InitialHistory(jo *entity.JobOrder, id, notes string, changedBy *string, at time.Time) *entity.StatusHistory {
	return &entity.StatusHistory{
		ID:         id,
		JobOrderID: jo.ID,
		OldStatus:  nil,
		NewStatus:  jo.Status,
		Notes:      notes,
		ChangedBy:  changedBy,
		ChangedAt:  at,
	}
}

// ChangeStatus aplica newStatus a la orden y devuelve el registro de historial si el estado
// persistido difiere del entrante; nil si es el mismo.
func ChangeStatus(jo *entity.JobOrder, newStatus, id, notes string, changedBy *string, at time.Time) (*entity.StatusHistory, error) {
	if !IsValidStatus(newStatus) {
		return nil, domain.NewValidationError("status", "estado desconocido")
	}
	old := jo.Status
	if old == newStatus {
		return nil, nil
	}
	jo.Status = newStatus
	jo.UpdatedAt = at
	return &entity.StatusHistory{
		ID:         id,
		JobOrderID: jo.ID,
		OldStatus:  &old,
		NewStatus:  newStatus,
		Notes:      notes,
		ChangedBy:  changedBy,
		ChangedAt:  at,
	}, nil
}
