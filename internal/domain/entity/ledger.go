package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountReceivable saldo que un cliente debe por una factura.
type AccountReceivable struct {
	ID             string
	CustomerID     string
	InvoiceID      string
	OriginalAmount decimal.Decimal
	CurrentAmount  decimal.Decimal
	DueDate        time.Time
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AccountPayable saldo que el taller debe a un proveedor por una orden de compra.
type AccountPayable struct {
	ID              string
	SupplierID      string
	PurchaseOrderID string
	OriginalAmount  decimal.Decimal
	CurrentAmount   decimal.Decimal
	DueDate         time.Time
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
