package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Facturas ──────────────────────────────────────────────────────────────────

// InvoiceItemRequest línea de factura (total_price se calcula).
type InvoiceItemRequest struct {
	Description string          `json:"description" validate:"required,max=255"`
	PartID      *string         `json:"part_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// UpdateInvoiceItemRequest edición parcial de una línea.
type UpdateInvoiceItemRequest struct {
	Description *string          `json:"description" validate:"omitempty,max=255"`
	PartID      *string          `json:"part_id"`
	Quantity    *decimal.Decimal `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// CreateInvoiceRequest body para POST /api/invoices. Subtotal solo se usa si no hay items.
type CreateInvoiceRequest struct {
	CustomerID      string               `json:"customer_id" validate:"required"`
	JobOrderID      *string              `json:"job_order_id"`
	Status          string               `json:"status" validate:"omitempty,oneof=draft sent"`
	PaymentTerms    string               `json:"payment_terms" validate:"omitempty,oneof=due_on_receipt net_15 net_30 net_45 net_60"`
	InvoiceDate     *time.Time           `json:"invoice_date"`
	DueDate         *time.Time           `json:"due_date"`
	Subtotal        decimal.Decimal      `json:"subtotal"`
	TaxRate         decimal.Decimal      `json:"tax_rate"`
	DiscountAmount  decimal.Decimal      `json:"discount_amount"`
	Notes           string               `json:"notes"`
	TermsConditions string               `json:"terms_conditions"`
	Items           []InvoiceItemRequest `json:"items" validate:"dive"`
}

// UpdateInvoiceRequest actualización parcial; los montos derivados se recalculan.
type UpdateInvoiceRequest struct {
	Status          *string          `json:"status" validate:"omitempty,oneof=draft sent paid overdue cancelled"`
	PaymentTerms    *string          `json:"payment_terms" validate:"omitempty,oneof=due_on_receipt net_15 net_30 net_45 net_60"`
	DueDate         *time.Time       `json:"due_date"`
	Subtotal        *decimal.Decimal `json:"subtotal"`
	TaxRate         *decimal.Decimal `json:"tax_rate"`
	DiscountAmount  *decimal.Decimal `json:"discount_amount"`
	Notes           *string          `json:"notes"`
	TermsConditions *string          `json:"terms_conditions"`
}

// InvoiceListRequest filtros de GET /api/invoices.
type InvoiceListRequest struct {
	PageRequest
	CustomerID string `query:"customer_id"`
	Status     string `query:"status"`
	Search     string `query:"search"`
}

// InvoiceItemResponse línea de factura.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	PartID      *string         `json:"part_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// InvoiceResponse factura con detalle.
type InvoiceResponse struct {
	ID              string                `json:"id"`
	InvoiceNumber   string                `json:"invoice_number"`
	CustomerID      string                `json:"customer_id"`
	JobOrderID      *string               `json:"job_order_id"`
	Status          string                `json:"status"`
	PaymentTerms    string                `json:"payment_terms"`
	InvoiceDate     time.Time             `json:"invoice_date"`
	DueDate         *time.Time            `json:"due_date"`
	PaidDate        *time.Time            `json:"paid_date"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	TaxRate         decimal.Decimal       `json:"tax_rate"`
	TaxAmount       decimal.Decimal       `json:"tax_amount"`
	DiscountAmount  decimal.Decimal       `json:"discount_amount"`
	TotalAmount     decimal.Decimal       `json:"total_amount"`
	PaidAmount      decimal.Decimal       `json:"paid_amount"`
	BalanceDue      decimal.Decimal       `json:"balance_due"`
	Notes           string                `json:"notes,omitempty"`
	TermsConditions string                `json:"terms_conditions,omitempty"`
	CreatedBy       *string               `json:"created_by"`
	UpdatedAt       time.Time             `json:"updated_at"`
	Items           []InvoiceItemResponse `json:"items,omitempty"`
}

// ── Pagos ─────────────────────────────────────────────────────────────────────

// CreatePaymentRequest body para POST /api/payments. El cliente se toma de la factura.
type CreatePaymentRequest struct {
	InvoiceID       string          `json:"invoice_id" validate:"required"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method" validate:"required,oneof=cash credit_card debit_card bank_transfer check other"`
	Status          string          `json:"status" validate:"omitempty,oneof=pending completed failed cancelled"`
	TransactionID   string          `json:"transaction_id" validate:"omitempty,max=100"`
	ReferenceNumber string          `json:"reference_number" validate:"omitempty,max=100"`
	PaymentDate     *time.Time      `json:"payment_date"`
	Notes           string          `json:"notes"`
}

// UpdatePaymentRequest body para PUT /api/payments/:id. Monto y método solo cambian
// mientras el cobro no está completed.
type UpdatePaymentRequest struct {
	Amount          *decimal.Decimal `json:"amount"`
	PaymentMethod   *string          `json:"payment_method" validate:"omitempty,oneof=cash credit_card debit_card bank_transfer check other"`
	Status          *string          `json:"status" validate:"omitempty,oneof=pending completed failed cancelled"`
	TransactionID   *string          `json:"transaction_id" validate:"omitempty,max=100"`
	ReferenceNumber *string          `json:"reference_number" validate:"omitempty,max=100"`
	PaymentDate     *time.Time       `json:"payment_date"`
	Notes           *string          `json:"notes"`
}

// PaymentListRequest filtros de GET /api/payments.
type PaymentListRequest struct {
	PageRequest
	InvoiceID     string `query:"invoice_id"`
	CustomerID    string `query:"customer_id"`
	PaymentMethod string `query:"payment_method"`
	Status        string `query:"status"`
}

// PaymentResponse cobro registrado.
type PaymentResponse struct {
	ID              string          `json:"id"`
	PaymentNumber   string          `json:"payment_number"`
	InvoiceID       string          `json:"invoice_id"`
	CustomerID      string          `json:"customer_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method"`
	Status          string          `json:"status"`
	TransactionID   string          `json:"transaction_id,omitempty"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	PaymentDate     time.Time       `json:"payment_date"`
	ProcessedDate   *time.Time      `json:"processed_date"`
	Notes           string          `json:"notes,omitempty"`
	CreatedBy       *string         `json:"created_by"`
	ProcessedBy     *string         `json:"processed_by"`
}

// ProcessPaymentResponse pago aplicado y factura resultante.
type ProcessPaymentResponse struct {
	Payment PaymentResponse `json:"payment"`
	Invoice InvoiceResponse `json:"invoice"`
}

// CreateSupplierPaymentRequest body para POST /api/supplier-payments.
type CreateSupplierPaymentRequest struct {
	SupplierID      string          `json:"supplier_id" validate:"required"`
	PurchaseOrderID *string         `json:"purchase_order_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method" validate:"required,oneof=cash credit_card debit_card bank_transfer check other"`
	Status          string          `json:"status" validate:"omitempty,oneof=pending completed failed cancelled"`
	TransactionID   string          `json:"transaction_id" validate:"omitempty,max=100"`
	ReferenceNumber string          `json:"reference_number" validate:"omitempty,max=100"`
	CheckNumber     string          `json:"check_number" validate:"omitempty,max=50"`
	PaymentDate     *time.Time      `json:"payment_date"`
	DueDate         *time.Time      `json:"due_date"`
	Notes           string          `json:"notes"`
}

// SupplierPaymentListRequest filtros de GET /api/supplier-payments.
type SupplierPaymentListRequest struct {
	PageRequest
	SupplierID      string `query:"supplier_id"`
	PurchaseOrderID string `query:"purchase_order_id"`
	Status          string `query:"status"`
}

// SupplierPaymentResponse pago a proveedor.
type SupplierPaymentResponse struct {
	ID              string          `json:"id"`
	PaymentNumber   string          `json:"payment_number"`
	SupplierID      string          `json:"supplier_id"`
	PurchaseOrderID *string         `json:"purchase_order_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method"`
	Status          string          `json:"status"`
	TransactionID   string          `json:"transaction_id,omitempty"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	CheckNumber     string          `json:"check_number,omitempty"`
	PaymentDate     time.Time       `json:"payment_date"`
	DueDate         *time.Time      `json:"due_date"`
	ProcessedDate   *time.Time      `json:"processed_date"`
	Notes           string          `json:"notes,omitempty"`
	CreatedBy       *string         `json:"created_by"`
	ProcessedBy     *string         `json:"processed_by"`
}

// ── Gastos ────────────────────────────────────────────────────────────────────

// CreateExpenseRequest body para POST /api/expenses.
type CreateExpenseRequest struct {
	Category    string          `json:"category" validate:"required,oneof=utilities rent salaries equipment maintenance marketing travel office_supplies insurance other"`
	Description string          `json:"description" validate:"required,max=255"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate *time.Time      `json:"expense_date"`
	Notes       string          `json:"notes"`
}

// UpdateExpenseRequest actualización parcial; status approved/paid fija sus fechas.
type UpdateExpenseRequest struct {
	Category    *string          `json:"category" validate:"omitempty,oneof=utilities rent salaries equipment maintenance marketing travel office_supplies insurance other"`
	Description *string          `json:"description" validate:"omitempty,max=255"`
	Amount      *decimal.Decimal `json:"amount"`
	Status      *string          `json:"status" validate:"omitempty,oneof=pending approved paid rejected"`
	ExpenseDate *time.Time       `json:"expense_date"`
	Notes       *string          `json:"notes"`
}

// ExpenseListRequest filtros de GET /api/expenses.
type ExpenseListRequest struct {
	PageRequest
	Category string `query:"category"`
	Status   string `query:"status"`
}

// ExpenseResponse gasto.
type ExpenseResponse struct {
	ID            string          `json:"id"`
	ExpenseNumber string          `json:"expense_number"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	ExpenseDate   time.Time       `json:"expense_date"`
	ApprovedDate  *time.Time      `json:"approved_date"`
	PaidDate      *time.Time      `json:"paid_date"`
	Notes         string          `json:"notes,omitempty"`
	CreatedBy     *string         `json:"created_by"`
	ApprovedBy    *string         `json:"approved_by"`
}

// ── Cuentas por cobrar / pagar ────────────────────────────────────────────────

// ReceivableResponse cuenta por cobrar.
type ReceivableResponse struct {
	ID             string          `json:"id"`
	CustomerID     string          `json:"customer_id"`
	InvoiceID      string          `json:"invoice_id"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	CurrentAmount  decimal.Decimal `json:"current_amount"`
	DueDate        time.Time       `json:"due_date"`
	IsOverdue      bool            `json:"is_overdue"`
	Notes          string          `json:"notes,omitempty"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// PayableResponse cuenta por pagar.
type PayableResponse struct {
	ID              string          `json:"id"`
	SupplierID      string          `json:"supplier_id"`
	PurchaseOrderID string          `json:"purchase_order_id"`
	OriginalAmount  decimal.Decimal `json:"original_amount"`
	CurrentAmount   decimal.Decimal `json:"current_amount"`
	DueDate         time.Time       `json:"due_date"`
	IsOverdue       bool            `json:"is_overdue"`
	Notes           string          `json:"notes,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// AccountingStatsResponse salida de GET /api/accounting/stats.
type AccountingStatsResponse struct {
	Invoices struct {
		Total   int `json:"total"`
		Pending int `json:"pending"`
		Paid    int `json:"paid"`
		Overdue int `json:"overdue"`
	} `json:"invoices"`
	Payments struct {
		TotalCount  int             `json:"total_count"`
		TotalAmount decimal.Decimal `json:"total_amount"`
	} `json:"payments"`
	Receivables decimal.Decimal `json:"receivables"`
	Payables    decimal.Decimal `json:"payables"`
	Expenses    struct {
		Total    int `json:"total"`
		Pending  int `json:"pending"`
		Approved int `json:"approved"`
	} `json:"expenses"`
}
