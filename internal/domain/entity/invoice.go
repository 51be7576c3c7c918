package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de factura.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// Condiciones de pago.
const (
	TermsDueOnReceipt = "due_on_receipt"
	TermsNet15        = "net_15"
	TermsNet30        = "net_30"
	TermsNet45        = "net_45"
	TermsNet60        = "net_60"
)

// Invoice cabecera de factura. Los montos están desnormalizados y se recalculan
// siempre con billing.Recalculate antes de persistir.
type Invoice struct {
	ID              string
	InvoiceNumber   string
	CustomerID      string
	JobOrderID      *string
	Status          string
	PaymentTerms    string
	InvoiceDate     time.Time
	DueDate         *time.Time
	PaidDate        *time.Time
	Subtotal        decimal.Decimal
	TaxRate         decimal.Decimal // porcentaje
	TaxAmount       decimal.Decimal
	DiscountAmount  decimal.Decimal
	TotalAmount     decimal.Decimal
	PaidAmount      decimal.Decimal
	BalanceDue      decimal.Decimal
	Notes           string
	TermsConditions string
	CreatedBy       *string
	UpdatedAt       time.Time
}

// InvoiceItem línea de factura. TotalPrice = Quantity × UnitPrice.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	Description string
	PartID      *string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}
