package crm

import (
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

func toCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:                     c.ID,
		FirstName:              c.FirstName,
		LastName:               c.LastName,
		FullName:               c.FullName(),
		Email:                  c.Email,
		Phone:                  c.Phone,
		AlternatePhone:         c.AlternatePhone,
		AddressLine1:           c.AddressLine1,
		AddressLine2:           c.AddressLine2,
		City:                   c.City,
		State:                  c.State,
		PostalCode:             c.PostalCode,
		Country:                c.Country,
		CompanyName:            c.CompanyName,
		TaxID:                  c.TaxID,
		Notes:                  c.Notes,
		PreferredContactMethod: c.PreferredContactMethod,
		IsActive:               c.IsActive,
		CreatedBy:              c.CreatedBy,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}
}

func toCommunicationResponse(c *entity.Communication) dto.CommunicationResponse {
	return dto.CommunicationResponse{
		ID:                c.ID,
		CustomerID:        c.CustomerID,
		CommunicationType: c.CommunicationType,
		Subject:           c.Subject,
		Message:           c.Message,
		Direction:         c.Direction,
		CommunicationDate: c.CommunicationDate,
		CreatedBy:         c.CreatedBy,
	}
}

func toAppointmentResponse(a *entity.Appointment) dto.AppointmentResponse {
	return dto.AppointmentResponse{
		ID:              a.ID,
		CustomerID:      a.CustomerID,
		AppointmentDate: a.AppointmentDate,
		DurationMinutes: a.DurationMinutes,
		ServiceType:     a.ServiceType,
		Description:     a.Description,
		Status:          a.Status,
		Notes:           a.Notes,
		AssignedTo:      a.AssignedTo,
		CreatedBy:       a.CreatedBy,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func toVehicleResponse(v *entity.Vehicle) dto.VehicleResponse {
	return dto.VehicleResponse{
		ID:               v.ID,
		Make:             v.Make,
		Model:            v.Model,
		Year:             v.Year,
		VIN:              v.VIN,
		LicensePlate:     v.LicensePlate,
		Color:            v.Color,
		EngineSize:       v.EngineSize,
		FuelType:         v.FuelType,
		Transmission:     v.Transmission,
		Mileage:          v.Mileage,
		EngineNumber:     v.EngineNumber,
		CustomerID:       v.CustomerID,
		RegistrationDate: v.RegistrationDate,
		InsuranceExpiry:  v.InsuranceExpiry,
		Notes:            v.Notes,
		IsActive:         v.IsActive,
		CreatedBy:        v.CreatedBy,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func toVehicleHistoryResponse(h *entity.VehicleHistory) dto.VehicleHistoryResponse {
	return dto.VehicleHistoryResponse{
		ID:               h.ID,
		VehicleID:        h.VehicleID,
		ServiceDate:      h.ServiceDate,
		ServiceType:      h.ServiceType,
		Description:      h.Description,
		MileageAtService: h.MileageAtService,
		Cost:             h.Cost,
		ServiceProvider:  h.ServiceProvider,
		CreatedBy:        h.CreatedBy,
		CreatedAt:        h.CreatedAt,
	}
}

func toLabelCounts(rows []repository.LabelCount) []dto.LabelCountDTO {
	out := make([]dto.LabelCountDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LabelCountDTO{Label: r.Label, Count: r.Count})
	}
	return out
}
