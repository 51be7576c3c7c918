package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago.
const (
	PaymentCash         = "cash"
	PaymentCreditCard   = "credit_card"
	PaymentDebitCard    = "debit_card"
	PaymentBankTransfer = "bank_transfer"
	PaymentCheck        = "check"
	PaymentOther        = "other"
)

// Estados de pago. Los pagos se registran como hechos ya liquidados.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"
)

// Payment cobro a cliente aplicado a una factura.
type Payment struct {
	ID              string
	PaymentNumber   string
	InvoiceID       string
	CustomerID      string
	Amount          decimal.Decimal
	PaymentMethod   string
	Status          string
	TransactionID   string
	ReferenceNumber string
	PaymentDate     time.Time
	ProcessedDate   *time.Time
	Notes           string
	CreatedBy       *string
	ProcessedBy     *string
}

// SupplierPayment pago a proveedor, opcionalmente ligado a una orden de compra.
type SupplierPayment struct {
	ID              string
	PaymentNumber   string
	SupplierID      string
	PurchaseOrderID *string
	Amount          decimal.Decimal
	PaymentMethod   string
	Status          string
	TransactionID   string
	ReferenceNumber string
	CheckNumber     string
	PaymentDate     time.Time
	DueDate         *time.Time
	ProcessedDate   *time.Time
	Notes           string
	CreatedBy       *string
	ProcessedBy     *string
}
