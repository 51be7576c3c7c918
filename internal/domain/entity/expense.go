package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de gasto.
const (
	ExpenseUtilities      = "utilities"
	ExpenseRent           = "rent"
	ExpenseSalaries       = "salaries"
	ExpenseEquipment      = "equipment"
	ExpenseMaintenance    = "maintenance"
	ExpenseMarketing      = "marketing"
	ExpenseTravel         = "travel"
	ExpenseOfficeSupplies = "office_supplies"
	ExpenseInsurance      = "insurance"
	ExpenseOther          = "other"
)

// Estados de gasto.
const (
	ExpenseStatusPending  = "pending"
	ExpenseStatusApproved = "approved"
	ExpenseStatusPaid     = "paid"
	ExpenseStatusRejected = "rejected"
)

// Expense gasto operativo del taller.
type Expense struct {
	ID            string
	ExpenseNumber string
	Category      string
	Description   string
	Amount        decimal.Decimal
	Status        string
	ExpenseDate   time.Time
	ApprovedDate  *time.Time
	PaidDate      *time.Time
	Notes         string
	CreatedBy     *string
	ApprovedBy    *string
}
