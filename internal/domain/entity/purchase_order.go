package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de orden de compra.
const (
	POStatusDraft     = "draft"
	POStatusSent      = "sent"
	POStatusConfirmed = "confirmed"
	POStatusReceived  = "received"
	POStatusCancelled = "cancelled"
)

// PurchaseOrder pedido a proveedor.
type PurchaseOrder struct {
	ID               string
	PONumber         string
	SupplierID       string
	Status           string
	OrderDate        time.Time
	ExpectedDelivery *time.Time
	ActualDelivery   *time.Time
	Subtotal         decimal.Decimal
	TaxAmount        decimal.Decimal
	ShippingCost     decimal.Decimal
	TotalAmount      decimal.Decimal
	Notes            string
	TermsConditions  string
	CreatedBy        *string
	UpdatedAt        time.Time
}

// PurchaseOrderItem línea del pedido. TotalCost = QuantityOrdered × UnitCost.
type PurchaseOrderItem struct {
	ID               string
	PurchaseOrderID  string
	PartID           string
	QuantityOrdered  decimal.Decimal
	QuantityReceived decimal.Decimal
	UnitCost         decimal.Decimal
	TotalCost        decimal.Decimal
}
