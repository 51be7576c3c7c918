package crm

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/access"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// DefaultAppointmentMinutes duración de una cita si no se informa.
const DefaultAppointmentMinutes = 60

// AppointmentUseCase agenda de citas.
type AppointmentUseCase struct {
	appointments repository.AppointmentRepository
	customers    repository.CustomerRepository
}

// NewAppointmentUseCase construye el caso de uso.
func NewAppointmentUseCase(appointments repository.AppointmentRepository, customers repository.CustomerRepository) *AppointmentUseCase {
	return &AppointmentUseCase{appointments: appointments, customers: customers}
}

// List citas por cliente, estado y rango de fechas (date_to inclusive).
func (uc *AppointmentUseCase) List(ctx context.Context, actor entity.Actor, in dto.AppointmentListRequest) (dto.ListResponse[dto.AppointmentResponse], error) {
	in.DefaultPage()
	if !access.Can(actor.Role, access.CRM) {
		return dto.NewList[dto.AppointmentResponse](nil, in.PageRequest), nil
	}
	from, err := dto.ParseDate(in.DateFrom)
	if err != nil {
		return dto.ListResponse[dto.AppointmentResponse]{}, domain.NewValidationError("date_from", "formato YYYY-MM-DD")
	}
	to, err := dto.ParseDate(in.DateTo)
	if err != nil {
		return dto.ListResponse[dto.AppointmentResponse]{}, domain.NewValidationError("date_to", "formato YYYY-MM-DD")
	}
	if to != nil {
		next := to.AddDate(0, 0, 1)
		to = &next
	}
	rows, err := uc.appointments.List(ctx, repository.AppointmentFilter{
		CustomerID: in.CustomerID,
		Status:     in.Status,
		From:       from,
		To:         to,
		Page:       repository.Page{Limit: in.Limit, Offset: in.Offset},
	})
	if err != nil {
		return dto.ListResponse[dto.AppointmentResponse]{}, fmt.Errorf("crm: listar citas: %w", err)
	}
	items := make([]dto.AppointmentResponse, 0, len(rows))
	for _, a := range rows {
		items = append(items, toAppointmentResponse(a))
	}
	return dto.NewList(items, in.PageRequest), nil
}

// Create agenda una cita (estado scheduled y 60 minutos por defecto).
func (uc *AppointmentUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := access.Check(actor.Role, access.CRM); err != nil {
		return nil, err
	}
	customer, err := uc.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("crm: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, domain.NewValidationError("customer_id", "cliente inexistente")
	}
	duration := in.DurationMinutes
	if duration <= 0 {
		duration = DefaultAppointmentMinutes
	}
	status := in.Status
	if status == "" {
		status = entity.AppointmentScheduled
	}
	now := time.Now()
	a := &entity.Appointment{
		ID:              uuid.New().String(),
		CustomerID:      in.CustomerID,
		AppointmentDate: in.AppointmentDate,
		DurationMinutes: duration,
		ServiceType:     in.ServiceType,
		Description:     in.Description,
		Status:          status,
		Notes:           in.Notes,
		AssignedTo:      in.AssignedTo,
		CreatedBy:       actor.Ref(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.appointments.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("crm: crear cita: %w", err)
	}
	out := toAppointmentResponse(a)
	return &out, nil
}

// GetByID detalle de la cita.
func (uc *AppointmentUseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.AppointmentResponse, error) {
	a, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	out := toAppointmentResponse(a)
	return &out, nil
}

// Update reprograma o cambia el estado de la cita.
func (uc *AppointmentUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := access.Check(actor.Role, access.CRM); err != nil {
		return nil, err
	}
	a, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.AppointmentDate != nil {
		a.AppointmentDate = *in.AppointmentDate
	}
	if in.DurationMinutes != nil {
		a.DurationMinutes = *in.DurationMinutes
	}
	setString(&a.ServiceType, in.ServiceType)
	setString(&a.Description, in.Description)
	setString(&a.Status, in.Status)
	setString(&a.Notes, in.Notes)
	if in.AssignedTo != nil {
		a.AssignedTo = in.AssignedTo
		if *in.AssignedTo == "" {
			a.AssignedTo = nil
		}
	}
	a.UpdatedAt = time.Now()
	if err := uc.appointments.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("crm: actualizar cita: %w", err)
	}
	out := toAppointmentResponse(a)
	return &out, nil
}

// Delete cancela definitivamente (borra) la cita.
func (uc *AppointmentUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if err := access.Check(actor.Role, access.CRM); err != nil {
		return err
	}
	if _, err := uc.load(ctx, actor, id); err != nil {
		return err
	}
	return uc.appointments.Delete(ctx, id)
}

func (uc *AppointmentUseCase) load(ctx context.Context, actor entity.Actor, id string) (*entity.Appointment, error) {
	if !access.Can(actor.Role, access.CRM) {
		return nil, domain.ErrNotFound
	}
	a, err := uc.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("crm: obtener cita: %w", err)
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}
