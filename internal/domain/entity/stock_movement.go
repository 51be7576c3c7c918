package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementPurchase   = "purchase"
	MovementSale       = "sale"
	MovementReturn     = "return"
	MovementAdjustment = "adjustment"
	MovementDamage     = "damage"
	MovementTransfer   = "transfer"
	MovementOther      = "other"
)

// StockMovement registro inmutable de un delta de inventario.
// PreviousStock/NewStock son una foto del momento; no se recalculan si el stock se corrige después.
type StockMovement struct {
	ID            string
	PartID        string
	MovementType  string
	Quantity      decimal.Decimal
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	ReferenceType string // purchase_order, job_order, manual...
	ReferenceID   *string
	Notes         string
	CreatedBy     *string
	CreatedAt     time.Time
}
