package postgres

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var (
	_ repository.ReceivableRepository = (*ReceivableRepo)(nil)
	_ repository.PayableRepository    = (*PayableRepo)(nil)
)

const receivableColumns = `id, customer_id, invoice_id, original_amount, current_amount, due_date, notes, created_at, updated_at`

// ReceivableRepo cuentas por cobrar, una por factura (invoice_id único).
type ReceivableRepo struct {
	q Querier
}

// NewReceivableRepository construye el adaptador.
func NewReceivableRepository(q Querier) *ReceivableRepo {
	return &ReceivableRepo{q: q}
}

func scanReceivable(s scanner) (*entity.AccountReceivable, error) {
	var ar entity.AccountReceivable
	err := s.Scan(&ar.ID, &ar.CustomerID, &ar.InvoiceID, &ar.OriginalAmount, &ar.CurrentAmount, &ar.DueDate,
		&ar.Notes, &ar.CreatedAt, &ar.UpdatedAt)
	return &ar, err
}

// Create abre la cuenta.
func (r *ReceivableRepo) Create(ctx context.Context, ar *entity.AccountReceivable) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO accounts_receivable (`+receivableColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		ar.ID, ar.CustomerID, ar.InvoiceID, ar.OriginalAmount, ar.CurrentAmount, ar.DueDate, ar.Notes,
		ar.CreatedAt, ar.UpdatedAt,
	)
	return writeErr("insert receivable", err)
}

// GetByInvoice cuenta de la factura; nil si no existe.
func (r *ReceivableRepo) GetByInvoice(ctx context.Context, invoiceID string) (*entity.AccountReceivable, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+receivableColumns+` FROM accounts_receivable WHERE invoice_id = $1`, invoiceID), "get receivable", scanReceivable)
}

// Update saldos y vencimiento.
func (r *ReceivableRepo) Update(ctx context.Context, ar *entity.AccountReceivable) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE accounts_receivable SET original_amount = $2, current_amount = $3, due_date = $4, notes = $5, updated_at = $6
		WHERE id = $1`,
		ar.ID, ar.OriginalAmount, ar.CurrentAmount, ar.DueDate, ar.Notes, ar.UpdatedAt,
	)
	return mustAffect(tag, "update receivable", err)
}

// List por vencimiento.
func (r *ReceivableRepo) List(ctx context.Context, customerID string, p repository.Page) ([]*entity.AccountReceivable, error) {
	var w where
	w.addIf("customer_id = ?", customerID)
	query := `SELECT ` + receivableColumns + ` FROM accounts_receivable` + w.sql() + ` ORDER BY due_date` + w.page(p)
	rows, err := r.q.Query(ctx, query, w.args...)
	return many(rows, err, "list receivables", scanReceivable)
}

const payableColumns = `id, supplier_id, purchase_order_id, original_amount, current_amount, due_date, notes, created_at, updated_at`

// PayableRepo cuentas por pagar, una por orden de compra.
type PayableRepo struct {
	q Querier
}

// NewPayableRepository construye el adaptador.
func NewPayableRepository(q Querier) *PayableRepo {
	return &PayableRepo{q: q}
}

func scanPayable(s scanner) (*entity.AccountPayable, error) {
	var ap entity.AccountPayable
	err := s.Scan(&ap.ID, &ap.SupplierID, &ap.PurchaseOrderID, &ap.OriginalAmount, &ap.CurrentAmount, &ap.DueDate,
		&ap.Notes, &ap.CreatedAt, &ap.UpdatedAt)
	return &ap, err
}

// Create abre la cuenta.
func (r *PayableRepo) Create(ctx context.Context, ap *entity.AccountPayable) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO accounts_payable (`+payableColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		ap.ID, ap.SupplierID, ap.PurchaseOrderID, ap.OriginalAmount, ap.CurrentAmount, ap.DueDate, ap.Notes,
		ap.CreatedAt, ap.UpdatedAt,
	)
	return writeErr("insert payable", err)
}

// GetByPurchaseOrder cuenta de la orden; nil si no existe.
func (r *PayableRepo) GetByPurchaseOrder(ctx context.Context, purchaseOrderID string) (*entity.AccountPayable, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+payableColumns+` FROM accounts_payable WHERE purchase_order_id = $1`, purchaseOrderID), "get payable", scanPayable)
}

// Update saldos y vencimiento.
func (r *PayableRepo) Update(ctx context.Context, ap *entity.AccountPayable) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE accounts_payable SET original_amount = $2, current_amount = $3, due_date = $4, notes = $5, updated_at = $6
		WHERE id = $1`,
		ap.ID, ap.OriginalAmount, ap.CurrentAmount, ap.DueDate, ap.Notes, ap.UpdatedAt,
	)
	return mustAffect(tag, "update payable", err)
}

// List por vencimiento.
func (r *PayableRepo) List(ctx context.Context, supplierID string, p repository.Page) ([]*entity.AccountPayable, error) {
	var w where
	w.addIf("supplier_id = ?", supplierID)
	query := `SELECT ` + payableColumns + ` FROM accounts_payable` + w.sql() + ` ORDER BY due_date` + w.page(p)
	rows, err := r.q.Query(ctx, query, w.args...)
	return many(rows, err, "list payables", scanPayable)
}
