package entity

import "time"

// Métodos de contacto preferidos.
const (
	ContactPhone = "phone"
	ContactEmail = "email"
	ContactSMS   = "sms"
)

// Customer representa un cliente del taller.
type Customer struct {
	ID                     string
	FirstName              string
	LastName               string
	Email                  string
	Phone                  string // E.164 tras normalizar
	AlternatePhone         string
	AddressLine1           string
	AddressLine2           string
	City                   string
	State                  string
	PostalCode             string
	Country                string
	CompanyName            string
	TaxID                  string
	Notes                  string
	PreferredContactMethod string
	IsActive               bool
	CreatedBy              *string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// FullName nombre y apellido.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Tipos y dirección de comunicación con el cliente.
const (
	CommunicationCall  = "call"
	CommunicationEmail = "email"
	CommunicationSMS   = "sms"
	CommunicationVisit = "visit"
	CommunicationOther = "other"

	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

// Communication registra un contacto con el cliente.
type Communication struct {
	ID                string
	CustomerID        string
	CommunicationType string
	Subject           string
	Message           string
	Direction         string
	CommunicationDate time.Time
	CreatedBy         *string
}

// Estados de cita.
const (
	AppointmentScheduled  = "scheduled"
	AppointmentConfirmed  = "confirmed"
	AppointmentInProgress = "in_progress"
	AppointmentCompleted  = "completed"
	AppointmentCancelled  = "cancelled"
	AppointmentNoShow     = "no_show"
)

// Appointment cita agendada para un cliente.
type Appointment struct {
	ID              string
	CustomerID      string
	AppointmentDate time.Time
	DurationMinutes int
	ServiceType     string
	Description     string
	Status          string
	Notes           string
	AssignedTo      *string
	CreatedBy       *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
