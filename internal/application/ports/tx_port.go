package ports

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción de BD.
type Repos struct {
	Sequences        repository.SequenceRepository
	JobOrders        repository.JobOrderRepository
	StatusHistory    repository.StatusHistoryRepository
	Parts            repository.PartRepository
	StockMovements   repository.StockMovementRepository
	PurchaseOrders   repository.PurchaseOrderRepository
	Invoices         repository.InvoiceRepository
	Payments         repository.PaymentRepository
	SupplierPayments repository.SupplierPaymentRepository
	Expenses         repository.ExpenseRepository
	Receivables      repository.ReceivableRepository
	Payables         repository.PayableRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; Rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
