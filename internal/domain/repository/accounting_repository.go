package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// InvoiceFilter filtros de facturas.
type InvoiceFilter struct {
	CustomerID string
	Status     string
	Search     string // número o nombre del cliente
	Page
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// GetForUpdate bloquea la factura; los pagos se aplican con la fila tomada.
	GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	Update(ctx context.Context, inv *entity.Invoice) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f InvoiceFilter) ([]*entity.Invoice, error)

	CreateItem(ctx context.Context, item *entity.InvoiceItem) error
	UpdateItem(ctx context.Context, item *entity.InvoiceItem) error
	DeleteItem(ctx context.Context, id string) error
	ListItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error)
}

// PaymentFilter filtros de pagos.
type PaymentFilter struct {
	InvoiceID     string
	CustomerID    string
	PaymentMethod string
	Status        string
	Page
}

// PaymentRepository cobros a clientes.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	Update(ctx context.Context, p *entity.Payment) error
	List(ctx context.Context, f PaymentFilter) ([]*entity.Payment, error)
}

// SupplierPaymentFilter filtros de pagos a proveedor.
type SupplierPaymentFilter struct {
	SupplierID      string
	PurchaseOrderID string
	Status          string
	Page
}

// SupplierPaymentRepository pagos a proveedores.
type SupplierPaymentRepository interface {
	Create(ctx context.Context, p *entity.SupplierPayment) error
	GetByID(ctx context.Context, id string) (*entity.SupplierPayment, error)
	List(ctx context.Context, f SupplierPaymentFilter) ([]*entity.SupplierPayment, error)
}

// ExpenseFilter filtros de gastos.
type ExpenseFilter struct {
	Category string
	Status   string
	Page
}

// ExpenseRepository gastos operativos.
type ExpenseRepository interface {
	Create(ctx context.Context, e *entity.Expense) error
	GetByID(ctx context.Context, id string) (*entity.Expense, error)
	Update(ctx context.Context, e *entity.Expense) error
	List(ctx context.Context, f ExpenseFilter) ([]*entity.Expense, error)
}

// ReceivableRepository cuentas por cobrar (una por factura).
type ReceivableRepository interface {
	Create(ctx context.Context, ar *entity.AccountReceivable) error
	GetByInvoice(ctx context.Context, invoiceID string) (*entity.AccountReceivable, error)
	Update(ctx context.Context, ar *entity.AccountReceivable) error
	List(ctx context.Context, customerID string, p Page) ([]*entity.AccountReceivable, error)
}

// PayableRepository cuentas por pagar (una por orden de compra).
type PayableRepository interface {
	Create(ctx context.Context, ap *entity.AccountPayable) error
	GetByPurchaseOrder(ctx context.Context, purchaseOrderID string) (*entity.AccountPayable, error)
	Update(ctx context.Context, ap *entity.AccountPayable) error
	List(ctx context.Context, supplierID string, p Page) ([]*entity.AccountPayable, error)
}
