package postgres

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, invoice_number, customer_id, job_order_id, status, payment_terms, invoice_date, due_date,
	paid_date, subtotal, tax_rate, tax_amount, discount_amount, total_amount, paid_amount, balance_due, notes,
	terms_conditions, created_by, updated_at`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

func scanInvoice(s scanner) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := s.Scan(&inv.ID, &inv.InvoiceNumber, &inv.CustomerID, &inv.JobOrderID, &inv.Status, &inv.PaymentTerms,
		&inv.InvoiceDate, &inv.DueDate, &inv.PaidDate, &inv.Subtotal, &inv.TaxRate, &inv.TaxAmount,
		&inv.DiscountAmount, &inv.TotalAmount, &inv.PaidAmount, &inv.BalanceDue, &inv.Notes,
		&inv.TermsConditions, &inv.CreatedBy, &inv.UpdatedAt)
	return &inv, err
}

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		inv.ID, inv.InvoiceNumber, inv.CustomerID, inv.JobOrderID, inv.Status, inv.PaymentTerms, inv.InvoiceDate,
		inv.DueDate, inv.PaidDate, inv.Subtotal, inv.TaxRate, inv.TaxAmount, inv.DiscountAmount, inv.TotalAmount,
		inv.PaidAmount, inv.BalanceDue, inv.Notes, inv.TermsConditions, inv.CreatedBy, inv.UpdatedAt,
	)
	return writeErr("insert invoice", err)
}

// GetByID obtiene la cabecera.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id), "get invoice", scanInvoice)
}

// GetForUpdate bloquea la fila de la factura hasta el fin de la transacción.
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, id), "get invoice for update", scanInvoice)
}

// Update reescribe estado y montos; invoice_number no cambia.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE invoices SET customer_id = $2, job_order_id = $3, status = $4, payment_terms = $5, invoice_date = $6,
		       due_date = $7, paid_date = $8, subtotal = $9, tax_rate = $10, tax_amount = $11, discount_amount = $12,
		       total_amount = $13, paid_amount = $14, balance_due = $15, notes = $16, terms_conditions = $17,
		       updated_at = $18
		WHERE id = $1`,
		inv.ID, inv.CustomerID, inv.JobOrderID, inv.Status, inv.PaymentTerms, inv.InvoiceDate, inv.DueDate,
		inv.PaidDate, inv.Subtotal, inv.TaxRate, inv.TaxAmount, inv.DiscountAmount, inv.TotalAmount,
		inv.PaidAmount, inv.BalanceDue, inv.Notes, inv.TermsConditions, inv.UpdatedAt,
	)
	return mustAffect(tag, "update invoice", err)
}

// Delete elimina la factura con sus líneas, pagos y cuenta por cobrar.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	return mustAffect(tag, "delete invoice", err)
}

// List más recientes primero. Search compara número y nombre del cliente.
func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var w where
	w.addIf("customer_id = ?", f.CustomerID)
	w.addIf("status = ?", f.Status)
	w.search(`(invoice_number ILIKE ? OR customer_id IN (
		SELECT id FROM customers WHERE first_name ILIKE ? OR last_name ILIKE ?))`, f.Search)
	query := `SELECT ` + invoiceColumns + ` FROM invoices` + w.sql() + ` ORDER BY invoice_date DESC, invoice_number DESC` + w.page(f.Page)
	rows, err := r.q.Query(ctx, query, w.args...)
	return many(rows, err, "list invoices", scanInvoice)
}

const invoiceItemColumns = `id, invoice_id, description, part_id, quantity, unit_price, total_price`

// CreateItem inserta una línea.
func (r *InvoiceRepo) CreateItem(ctx context.Context, it *entity.InvoiceItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO invoice_items (`+invoiceItemColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		it.ID, it.InvoiceID, it.Description, it.PartID, it.Quantity, it.UnitPrice, it.TotalPrice,
	)
	return writeErr("insert invoice item", err)
}

// UpdateItem reescribe descripción, cantidades y total de una línea.
func (r *InvoiceRepo) UpdateItem(ctx context.Context, it *entity.InvoiceItem) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE invoice_items SET description = $2, part_id = $3, quantity = $4, unit_price = $5, total_price = $6
		WHERE id = $1`,
		it.ID, it.Description, it.PartID, it.Quantity, it.UnitPrice, it.TotalPrice,
	)
	return mustAffect(tag, "update invoice item", err)
}

// DeleteItem elimina una línea.
func (r *InvoiceRepo) DeleteItem(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoice_items WHERE id = $1`, id)
	return mustAffect(tag, "delete invoice item", err)
}

// ListItems líneas de la factura.
func (r *InvoiceRepo) ListItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+invoiceItemColumns+` FROM invoice_items WHERE invoice_id = $1 ORDER BY id`, invoiceID)
	return many(rows, err, "list invoice items", func(s scanner) (*entity.InvoiceItem, error) {
		var it entity.InvoiceItem
		err := s.Scan(&it.ID, &it.InvoiceID, &it.Description, &it.PartID, &it.Quantity, &it.UnitPrice, &it.TotalPrice)
		return &it, err
	})
}
