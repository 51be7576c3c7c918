package workshop

import (
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

func toJobOrderResponse(jo *entity.JobOrder) dto.JobOrderResponse {
	return dto.JobOrderResponse{
		ID:                   jo.ID,
		JobNumber:            jo.JobNumber,
		CustomerID:           jo.CustomerID,
		VehicleID:            jo.VehicleID,
		ServiceType:          jo.ServiceType,
		Description:          jo.Description,
		CustomerComplaint:    jo.CustomerComplaint,
		Status:               jo.Status,
		Priority:             jo.Priority,
		ReceivedDate:         jo.ReceivedDate,
		EstimatedCompletion:  jo.EstimatedCompletion,
		ActualCompletion:     jo.ActualCompletion,
		AssignedTechnicianID: jo.AssignedTechnicianID,
		EstimatedCost:        jo.EstimatedCost,
		ActualCost:           jo.ActualCost,
		Notes:                jo.Notes,
		InternalNotes:        jo.InternalNotes,
		CreatedBy:            jo.CreatedBy,
		UpdatedAt:            jo.UpdatedAt,
	}
}

func toItemResponse(it *entity.JobOrderItem) dto.JobOrderItemResponse {
	return dto.JobOrderItemResponse{
		ID:          it.ID,
		JobOrderID:  it.JobOrderID,
		ItemType:    it.ItemType,
		Name:        it.Name,
		Description: it.Description,
		SKU:         it.SKU,
		Quantity:    it.Quantity,
		UnitPrice:   it.UnitPrice,
		TotalPrice:  it.TotalPrice,
		HoursWorked: it.HoursWorked,
		HourlyRate:  it.HourlyRate,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

func toTimeResponse(tt *entity.TechnicianTime) dto.TechnicianTimeResponse {
	return dto.TechnicianTimeResponse{
		ID:              tt.ID,
		JobOrderID:      tt.JobOrderID,
		TechnicianID:    tt.TechnicianID,
		StartTime:       tt.StartTime,
		EndTime:         tt.EndTime,
		HoursWorked:     tt.HoursWorked,
		WorkDescription: tt.WorkDescription,
		PartsUsed:       tt.PartsUsed,
		Notes:           tt.Notes,
		CreatedAt:       tt.CreatedAt,
		UpdatedAt:       tt.UpdatedAt,
	}
}

func toHistoryResponse(h *entity.StatusHistory) dto.StatusHistoryResponse {
	return dto.StatusHistoryResponse{
		ID:         h.ID,
		JobOrderID: h.JobOrderID,
		OldStatus:  h.OldStatus,
		NewStatus:  h.NewStatus,
		Notes:      h.Notes,
		ChangedBy:  h.ChangedBy,
		ChangedAt:  h.ChangedAt,
	}
}
