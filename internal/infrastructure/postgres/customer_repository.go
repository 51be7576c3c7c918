package postgres

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var (
	_ repository.CustomerRepository      = (*CustomerRepo)(nil)
	_ repository.CommunicationRepository = (*CommunicationRepo)(nil)
	_ repository.AppointmentRepository   = (*AppointmentRepo)(nil)
)

const customerColumns = `id, first_name, last_name, email, phone, alternate_phone, address_line1, address_line2,
	city, state, postal_code, country, company_name, tax_id, notes, preferred_contact_method, is_active,
	created_by, created_at, updated_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(s scanner) (*entity.Customer, error) {
	var c entity.Customer
	err := s.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.AlternatePhone,
		&c.AddressLine1, &c.AddressLine2, &c.City, &c.State, &c.PostalCode, &c.Country,
		&c.CompanyName, &c.TaxID, &c.Notes, &c.PreferredContactMethod, &c.IsActive,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO customers (`+customerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.AlternatePhone, c.AddressLine1, c.AddressLine2,
		c.City, c.State, c.PostalCode, c.Country, c.CompanyName, c.TaxID, c.Notes, c.PreferredContactMethod,
		c.IsActive, c.CreatedBy, c.CreatedAt, c.UpdatedAt,
	)
	return writeErr("insert customer", err)
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id), "get customer", scanCustomer)
}

// Update actualiza un cliente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE customers SET first_name = $2, last_name = $3, email = $4, phone = $5, alternate_phone = $6,
		       address_line1 = $7, address_line2 = $8, city = $9, state = $10, postal_code = $11, country = $12,
		       company_name = $13, tax_id = $14, notes = $15, preferred_contact_method = $16, is_active = $17,
		       updated_at = $18
		WHERE id = $1`,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.AlternatePhone, c.AddressLine1, c.AddressLine2,
		c.City, c.State, c.PostalCode, c.Country, c.CompanyName, c.TaxID, c.Notes, c.PreferredContactMethod,
		c.IsActive, c.UpdatedAt,
	)
	return mustAffect(tag, "update customer", err)
}

// Delete elimina un cliente; vehículos, citas y comunicaciones caen en cascada.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	return mustAffect(tag, "delete customer", err)
}

// List busca por nombre, email o teléfono.
func (r *CustomerRepo) List(ctx context.Context, f repository.CustomerFilter) ([]*entity.Customer, error) {
	var w where
	w.search("(first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR phone ILIKE ?)", f.Search)
	if f.IsActive != nil {
		w.add("is_active = ?", *f.IsActive)
	}
	query := `SELECT ` + customerColumns + ` FROM customers` + w.sql() + ` ORDER BY last_name, first_name` + w.page(f.Page)
	rows, err := r.q.Query(ctx, query, w.args...)
	return many(rows, err, "list customers", scanCustomer)
}

// ── Comunicaciones ────────────────────────────────────────────────────────────

// CommunicationRepo historial de contactos.
type CommunicationRepo struct {
	q Querier
}

// NewCommunicationRepository construye el adaptador.
func NewCommunicationRepository(q Querier) *CommunicationRepo {
	return &CommunicationRepo{q: q}
}

// Create inserta una comunicación.
func (r *CommunicationRepo) Create(ctx context.Context, c *entity.Communication) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO customer_communications (id, customer_id, communication_type, subject, message, direction,
		       communication_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.CustomerID, c.CommunicationType, c.Subject, c.Message, c.Direction, c.CommunicationDate, c.CreatedBy,
	)
	return writeErr("insert communication", err)
}

// ListByCustomer más recientes primero.
func (r *CommunicationRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Communication, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, customer_id, communication_type, subject, message, direction, communication_date, created_by
		FROM customer_communications WHERE customer_id = $1 ORDER BY communication_date DESC`, customerID)
	return many(rows, err, "list communications", func(s scanner) (*entity.Communication, error) {
		var c entity.Communication
		err := s.Scan(&c.ID, &c.CustomerID, &c.CommunicationType, &c.Subject, &c.Message, &c.Direction,
			&c.CommunicationDate, &c.CreatedBy)
		return &c, err
	})
}

// ── Citas ─────────────────────────────────────────────────────────────────────

const appointmentColumns = `id, customer_id, appointment_date, duration_minutes, service_type, description, status,
	notes, assigned_to, created_by, created_at, updated_at`

// AppointmentRepo citas agendadas.
type AppointmentRepo struct {
	q Querier
}

// NewAppointmentRepository construye el adaptador.
func NewAppointmentRepository(q Querier) *AppointmentRepo {
	return &AppointmentRepo{q: q}
}

func scanAppointment(s scanner) (*entity.Appointment, error) {
	var a entity.Appointment
	err := s.Scan(&a.ID, &a.CustomerID, &a.AppointmentDate, &a.DurationMinutes, &a.ServiceType, &a.Description,
		&a.Status, &a.Notes, &a.AssignedTo, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

// Create inserta una cita.
func (r *AppointmentRepo) Create(ctx context.Context, a *entity.Appointment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		a.ID, a.CustomerID, a.AppointmentDate, a.DurationMinutes, a.ServiceType, a.Description, a.Status,
		a.Notes, a.AssignedTo, a.CreatedBy, a.CreatedAt, a.UpdatedAt,
	)
	return writeErr("insert appointment", err)
}

// GetByID obtiene una cita.
func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (*entity.Appointment, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id), "get appointment", scanAppointment)
}

// Update actualiza una cita.
func (r *AppointmentRepo) Update(ctx context.Context, a *entity.Appointment) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE appointments SET customer_id = $2, appointment_date = $3, duration_minutes = $4, service_type = $5,
		       description = $6, status = $7, notes = $8, assigned_to = $9, updated_at = $10
		WHERE id = $1`,
		a.ID, a.CustomerID, a.AppointmentDate, a.DurationMinutes, a.ServiceType, a.Description, a.Status,
		a.Notes, a.AssignedTo, a.UpdatedAt,
	)
	return mustAffect(tag, "update appointment", err)
}

// Delete elimina una cita.
func (r *AppointmentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	return mustAffect(tag, "delete appointment", err)
}

// List por cliente, estado y rango de fechas [From, To).
func (r *AppointmentRepo) List(ctx context.Context, f repository.AppointmentFilter) ([]*entity.Appointment, error) {
	var w where
	w.addIf("customer_id = ?", f.CustomerID)
	w.addIf("status = ?", f.Status)
	if f.From != nil {
		w.add("appointment_date >= ?", *f.From)
	}
	if f.To != nil {
		w.add("appointment_date < ?", *f.To)
	}
	query := `SELECT ` + appointmentColumns + ` FROM appointments` + w.sql() + ` ORDER BY appointment_date` + w.page(f.Page)
	rows, err := r.q.Query(ctx, query, w.args...)
	return many(rows, err, "list appointments", scanAppointment)
}
