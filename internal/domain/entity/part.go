package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida de un repuesto.
const (
	UnitPiece = "piece"
	UnitKg    = "kg"
	UnitLiter = "liter"
	UnitMeter = "meter"
	UnitBox   = "box"
	UnitSet   = "set"
	UnitOther = "other"
)

// Supplier proveedor de repuestos.
type Supplier struct {
	ID            string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	AddressLine1  string
	AddressLine2  string
	City          string
	State         string
	PostalCode    string
	Country       string
	TaxID         string
	Website       string
	PaymentTerms  string
	CreditLimit   *decimal.Decimal
	Notes         string
	IsActive      bool
	CreatedBy     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Part repuesto en inventario. CurrentStock solo cambia a través del libro de movimientos.
type Part struct {
	ID              string
	SKU             string // único
	Name            string
	Description     string
	Brand           string
	Model           string
	PartNumber      string
	CategoryID      *string
	SupplierID      *string
	CostPrice       decimal.Decimal
	SellingPrice    decimal.Decimal
	CurrentStock    decimal.Decimal
	MinimumStock    decimal.Decimal
	MaximumStock    *decimal.Decimal
	ReorderPoint    decimal.Decimal
	ReorderQuantity decimal.Decimal
	Unit            string
	Location        string
	Notes           string
	IsActive        bool
	CreatedBy       *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsLowStock stock actual en o por debajo del mínimo (<=, no <).
func (p *Part) IsLowStock() bool {
	return p.CurrentStock.LessThanOrEqual(p.MinimumStock)
}

// NeedsReorder stock actual en o por debajo del punto de reorden.
func (p *Part) NeedsReorder() bool {
	return p.CurrentStock.LessThanOrEqual(p.ReorderPoint)
}

// ProfitMargin margen porcentual sobre el costo; cero si el costo no es positivo.
func (p *Part) ProfitMargin() decimal.Decimal {
	if !p.CostPrice.IsPositive() {
		return decimal.Zero
	}
	return p.SellingPrice.Sub(p.CostPrice).Div(p.CostPrice).Mul(decimal.NewFromInt(100)).Round(2)
}
