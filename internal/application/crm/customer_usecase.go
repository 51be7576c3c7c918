// Package crm casos de uso de clientes, comunicaciones, citas y vehículos.
package crm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/access"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// PhoneNormalizer normaliza teléfonos a E.164 (pkg/phone).
type PhoneNormalizer interface {
	Normalize(raw string) (string, error)
}

// CustomerUseCase clientes y su historial de comunicaciones.
type CustomerUseCase struct {
	customers      repository.CustomerRepository
	communications repository.CommunicationRepository
	stats          repository.StatsRepository
	phones         PhoneNormalizer
}

// NewCustomerUseCase construye el caso de uso. phones puede ser nil (se guarda tal cual).
func NewCustomerUseCase(
	customers repository.CustomerRepository,
	communications repository.CommunicationRepository,
	stats repository.StatsRepository,
	phones PhoneNormalizer,
) *CustomerUseCase {
	return &CustomerUseCase{customers: customers, communications: communications, stats: stats, phones: phones}
}

// List clientes. Sin acceso a CRM devuelve una lista vacía.
func (uc *CustomerUseCase) List(ctx context.Context, actor entity.Actor, in dto.CustomerListRequest) (dto.ListResponse[dto.CustomerResponse], error) {
	in.DefaultPage()
	if !access.Can(actor.Role, access.CRM) {
		return dto.NewList[dto.CustomerResponse](nil, in.PageRequest), nil
	}
	rows, err := uc.customers.List(ctx, repository.CustomerFilter{
		Search:   strings.TrimSpace(in.Search),
		IsActive: dto.ParseActive(in.Active),
		Page:     repository.Page{Limit: in.Limit, Offset: in.Offset},
	})
	if err != nil {
		return dto.ListResponse[dto.CustomerResponse]{}, fmt.Errorf("crm: listar clientes: %w", err)
	}
	items := make([]dto.CustomerResponse, 0, len(rows))
	for _, c := range rows {
		items = append(items, toCustomerResponse(c))
	}
	return dto.NewList(items, in.PageRequest), nil
}

// Create registra un cliente con teléfonos normalizados.
func (uc *CustomerUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := access.Check(actor.Role, access.CRM); err != nil {
		return nil, err
	}
	phone, err := uc.normalize("phone", in.Phone)
	if err != nil {
		return nil, err
	}
	alt, err := uc.normalize("alternate_phone", in.AlternatePhone)
	if err != nil {
		return nil, err
	}
	country := in.Country
	if country == "" {
		country = "USA"
	}
	contact := in.PreferredContactMethod
	if contact == "" {
		contact = entity.ContactPhone
	}
	now := time.Now()
	c := &entity.Customer{
		ID:                     uuid.New().String(),
		FirstName:              in.FirstName,
		LastName:               in.LastName,
		Email:                  strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:                  phone,
		AlternatePhone:         alt,
		AddressLine1:           in.AddressLine1,
		AddressLine2:           in.AddressLine2,
		City:                   in.City,
		State:                  in.State,
		PostalCode:             in.PostalCode,
		Country:                country,
		CompanyName:            in.CompanyName,
		TaxID:                  in.TaxID,
		Notes:                  in.Notes,
		PreferredContactMethod: contact,
		IsActive:               true,
		CreatedBy:              actor.Ref(),
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := uc.customers.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("crm: crear cliente: %w", err)
	}
	log.Info().Str("customer_id", c.ID).Msg("cliente creado")
	out := toCustomerResponse(c)
	return &out, nil
}

// GetByID detalle; sin acceso se comporta como inexistente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.CustomerResponse, error) {
	c, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	out := toCustomerResponse(c)
	return &out, nil
}

// Update aplica los campos informados.
func (uc *CustomerUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := access.Check(actor.Role, access.CRM); err != nil {
		return nil, err
	}
	c, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Phone != nil {
		if c.Phone, err = uc.normalize("phone", *in.Phone); err != nil {
			return nil, err
		}
	}
	if in.AlternatePhone != nil {
		if c.AlternatePhone, err = uc.normalize("alternate_phone", *in.AlternatePhone); err != nil {
			return nil, err
		}
	}
	setString(&c.FirstName, in.FirstName)
	setString(&c.LastName, in.LastName)
	if in.Email != nil {
		c.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	setString(&c.AddressLine1, in.AddressLine1)
	setString(&c.AddressLine2, in.AddressLine2)
	setString(&c.City, in.City)
	setString(&c.State, in.State)
	setString(&c.PostalCode, in.PostalCode)
	setString(&c.Country, in.Country)
	setString(&c.CompanyName, in.CompanyName)
	setString(&c.TaxID, in.TaxID)
	setString(&c.Notes, in.Notes)
	setString(&c.PreferredContactMethod, in.PreferredContactMethod)
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	c.UpdatedAt = time.Now()
	if err := uc.customers.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("crm: actualizar cliente: %w", err)
	}
	out := toCustomerResponse(c)
	return &out, nil
}

// Delete elimina el cliente.
func (uc *CustomerUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if err := access.Check(actor.Role, access.CRM); err != nil {
		return err
	}
	if _, err := uc.load(ctx, actor, id); err != nil {
		return err
	}
	return uc.customers.Delete(ctx, id)
}

// Communications historial de contactos del cliente; vacío sin acceso.
func (uc *CustomerUseCase) Communications(ctx context.Context, actor entity.Actor, customerID string) ([]dto.CommunicationResponse, error) {
	out := []dto.CommunicationResponse{}
	if !access.Can(actor.Role, access.CRM) {
		return out, nil
	}
	if _, err := uc.load(ctx, actor, customerID); err != nil {
		return nil, err
	}
	rows, err := uc.communications.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("crm: comunicaciones: %w", err)
	}
	for _, c := range rows {
		out = append(out, toCommunicationResponse(c))
	}
	return out, nil
}

// AddCommunication registra un contacto. Sin fecha se usa el momento actual.
func (uc *CustomerUseCase) AddCommunication(ctx context.Context, actor entity.Actor, customerID string, in dto.CreateCommunicationRequest) (*dto.CommunicationResponse, error) {
	if err := access.Check(actor.Role, access.CRM); err != nil {
		return nil, err
	}
	if _, err := uc.load(ctx, actor, customerID); err != nil {
		return nil, err
	}
	at := time.Now()
	if in.CommunicationDate != nil {
		at = *in.CommunicationDate
	}
	c := &entity.Communication{
		ID:                uuid.New().String(),
		CustomerID:        customerID,
		CommunicationType: in.CommunicationType,
		Subject:           in.Subject,
		Message:           in.Message,
		Direction:         in.Direction,
		CommunicationDate: at,
		CreatedBy:         actor.Ref(),
	}
	if err := uc.communications.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("crm: crear comunicación: %w", err)
	}
	out := toCommunicationResponse(c)
	return &out, nil
}

// Stats totales de clientes y citas. Endpoint dedicado: sin acceso es ErrForbidden.
func (uc *CustomerUseCase) Stats(ctx context.Context, actor entity.Actor) (*dto.CustomerStatsResponse, error) {
	if err := access.Check(actor.Role, access.CRM); err != nil {
		return nil, err
	}
	now := time.Now()
	s, err := uc.stats.CustomerStats(ctx, time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()))
	if err != nil {
		return nil, fmt.Errorf("crm: estadísticas de clientes: %w", err)
	}
	return &dto.CustomerStatsResponse{
		TotalCustomers:      s.TotalCustomers,
		ActiveCustomers:     s.ActiveCustomers,
		TotalAppointments:   s.TotalAppointments,
		PendingAppointments: s.PendingAppointments,
	}, nil
}

func (uc *CustomerUseCase) load(ctx context.Context, actor entity.Actor, id string) (*entity.Customer, error) {
	if !access.Can(actor.Role, access.CRM) {
		return nil, domain.ErrNotFound
	}
	c, err := uc.customers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("crm: obtener cliente: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (uc *CustomerUseCase) normalize(field, raw string) (string, error) {
	if uc.phones == nil || raw == "" {
		return raw, nil
	}
	out, err := uc.phones.Normalize(raw)
	if err != nil {
		return "", domain.NewValidationError(field, "teléfono inválido")
	}
	return out, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
