package repository

import (
	"context"
	"time"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// CustomerFilter búsqueda por nombre, email o teléfono.
type CustomerFilter struct {
	Search   string
	IsActive *bool
	Page
}

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, c *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	Update(ctx context.Context, c *entity.Customer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f CustomerFilter) ([]*entity.Customer, error)
}

// CommunicationRepository historial de contactos con el cliente (solo inserción).
type CommunicationRepository interface {
	Create(ctx context.Context, c *entity.Communication) error
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.Communication, error)
}

// AppointmentFilter filtros de citas.
type AppointmentFilter struct {
	CustomerID string
	Status     string
	From, To   *time.Time // To exclusivo
	Page
}

// AppointmentRepository define el puerto de persistencia para Appointment.
type AppointmentRepository interface {
	Create(ctx context.Context, a *entity.Appointment) error
	GetByID(ctx context.Context, id string) (*entity.Appointment, error)
	Update(ctx context.Context, a *entity.Appointment) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f AppointmentFilter) ([]*entity.Appointment, error)
}
