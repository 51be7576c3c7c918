package postgres

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var (
	_ repository.PaymentRepository         = (*PaymentRepo)(nil)
	_ repository.SupplierPaymentRepository = (*SupplierPaymentRepo)(nil)
	_ repository.ExpenseRepository         = (*ExpenseRepo)(nil)
)

const paymentColumns = `id, payment_number, invoice_id, customer_id, amount, payment_method, status, transaction_id,
	reference_number, payment_date, processed_date, notes, created_by, processed_by`

// PaymentRepo cobros a clientes.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func scanPayment(s scanner) (*entity.Payment, error) {
	var p entity.Payment
	err := s.Scan(&p.ID, &p.PaymentNumber, &p.InvoiceID, &p.CustomerID, &p.Amount, &p.PaymentMethod, &p.Status,
		&p.TransactionID, &p.ReferenceNumber, &p.PaymentDate, &p.ProcessedDate, &p.Notes, &p.CreatedBy, &p.ProcessedBy)
	return &p, err
}

// Create inserta el pago.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		p.ID, p.PaymentNumber, p.InvoiceID, p.CustomerID, p.Amount, p.PaymentMethod, p.Status, p.TransactionID,
		p.ReferenceNumber, p.PaymentDate, p.ProcessedDate, p.Notes, p.CreatedBy, p.ProcessedBy,
	)
	return writeErr("insert payment", err)
}

// GetByID obtiene un pago.
func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id), "get payment", scanPayment)
}

// Update estado y datos de la transacción; payment_number e invoice_id no cambian.
func (r *PaymentRepo) Update(ctx context.Context, p *entity.Payment) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE payments SET amount = $2, payment_method = $3, status = $4, transaction_id = $5,
		       reference_number = $6, payment_date = $7, processed_date = $8, notes = $9, processed_by = $10
		WHERE id = $1`,
		p.ID, p.Amount, p.PaymentMethod, p.Status, p.TransactionID, p.ReferenceNumber, p.PaymentDate,
		p.ProcessedDate, p.Notes, p.ProcessedBy,
	)
	return mustAffect(tag, "update payment", err)
}

// List más recientes primero.
func (r *PaymentRepo) List(ctx context.Context, f repository.PaymentFilter) ([]*entity.Payment, error) {
	var w where
	w.addIf("invoice_id = ?", f.InvoiceID)
	w.addIf("customer_id = ?", f.CustomerID)
	w.addIf("payment_method = ?", f.PaymentMethod)
	w.addIf("status = ?", f.Status)
	query := `SELECT ` + paymentColumns + ` FROM payments` + w.sql() + ` ORDER BY payment_date DESC` + w.page(f.Page)
	rows, err := r.q.Query(ctx, query, w.args...)
	return many(rows, err, "list payments", scanPayment)
}

const supplierPaymentColumns = `id, payment_number, supplier_id, purchase_order_id, amount, payment_method, status,
	transaction_id, reference_number, check_number, payment_date, due_date, processed_date, notes, created_by,
	processed_by`

// SupplierPaymentRepo pagos a proveedores.
type SupplierPaymentRepo struct {
	q Querier
}

// NewSupplierPaymentRepository construye el adaptador.
func NewSupplierPaymentRepository(q Querier) *SupplierPaymentRepo {
	return &SupplierPaymentRepo{q: q}
}

func scanSupplierPayment(s scanner) (*entity.SupplierPayment, error) {
	var p entity.SupplierPayment
	err := s.Scan(&p.ID, &p.PaymentNumber, &p.SupplierID, &p.PurchaseOrderID, &p.Amount, &p.PaymentMethod,
		&p.Status, &p.TransactionID, &p.ReferenceNumber, &p.CheckNumber, &p.PaymentDate, &p.DueDate,
		&p.ProcessedDate, &p.Notes, &p.CreatedBy, &p.ProcessedBy)
	return &p, err
}

// Create inserta el pago a proveedor.
func (r *SupplierPaymentRepo) Create(ctx context.Context, p *entity.SupplierPayment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO supplier_payments (`+supplierPaymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		p.ID, p.PaymentNumber, p.SupplierID, p.PurchaseOrderID, p.Amount, p.PaymentMethod, p.Status,
		p.TransactionID, p.ReferenceNumber, p.CheckNumber, p.PaymentDate, p.DueDate, p.ProcessedDate, p.Notes,
		p.CreatedBy, p.ProcessedBy,
	)
	return writeErr("insert supplier payment", err)
}

// GetByID obtiene un pago a proveedor.
func (r *SupplierPaymentRepo) GetByID(ctx context.Context, id string) (*entity.SupplierPayment, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+supplierPaymentColumns+` FROM supplier_payments WHERE id = $1`, id), "get supplier payment", scanSupplierPayment)
}

// List más recientes primero.
func (r *SupplierPaymentRepo) List(ctx context.Context, f repository.SupplierPaymentFilter) ([]*entity.SupplierPayment, error) {
	var w where
	w.addIf("supplier_id = ?", f.SupplierID)
	w.addIf("purchase_order_id = ?", f.PurchaseOrderID)
	w.addIf("status = ?", f.Status)
	query := `SELECT ` + supplierPaymentColumns + ` FROM supplier_payments` + w.sql() + ` ORDER BY payment_date DESC` + w.page(f.Page)
	rows, err := r.q.Query(ctx, query, w.args...)
	return many(rows, err, "list supplier payments", scanSupplierPayment)
}

const expenseColumns = `id, expense_number, category, description, amount, status, expense_date, approved_date,
	paid_date, notes, created_by, approved_by`

// ExpenseRepo gastos.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador.
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

func scanExpense(s scanner) (*entity.Expense, error) {
	var e entity.Expense
	err := s.Scan(&e.ID, &e.ExpenseNumber, &e.Category, &e.Description, &e.Amount, &e.Status, &e.ExpenseDate,
		&e.ApprovedDate, &e.PaidDate, &e.Notes, &e.CreatedBy, &e.ApprovedBy)
	return &e, err
}

// Create inserta un gasto.
func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO expenses (`+expenseColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		e.ID, e.ExpenseNumber, e.Category, e.Description, e.Amount, e.Status, e.ExpenseDate, e.ApprovedDate,
		e.PaidDate, e.Notes, e.CreatedBy, e.ApprovedBy,
	)
	return writeErr("insert expense", err)
}

// GetByID obtiene un gasto.
func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*entity.Expense, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id), "get expense", scanExpense)
}

// Update estado, aprobación y pago; expense_number no cambia.
func (r *ExpenseRepo) Update(ctx context.Context, e *entity.Expense) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE expenses SET category = $2, description = $3, amount = $4, status = $5, expense_date = $6,
		       approved_date = $7, paid_date = $8, notes = $9, approved_by = $10
		WHERE id = $1`,
		e.ID, e.Category, e.Description, e.Amount, e.Status, e.ExpenseDate, e.ApprovedDate, e.PaidDate, e.Notes, e.ApprovedBy,
	)
	return mustAffect(tag, "update expense", err)
}

// List más recientes primero.
func (r *ExpenseRepo) List(ctx context.Context, f repository.ExpenseFilter) ([]*entity.Expense, error) {
	var w where
	w.addIf("category = ?", f.Category)
	w.addIf("status = ?", f.Status)
	query := `SELECT ` + expenseColumns + ` FROM expenses` + w.sql() + ` ORDER BY expense_date DESC, expense_number DESC` + w.page(f.Page)
	rows, err := r.q.Query(ctx, query, w.args...)
	return many(rows, err, "list expenses", scanExpense)
}
