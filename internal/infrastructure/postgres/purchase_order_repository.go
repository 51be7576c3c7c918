package postgres

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const purchaseOrderColumns = `id, po_number, supplier_id, status, order_date, expected_delivery, actual_delivery,
	subtotal, tax_amount, shipping_cost, total_amount, notes, terms_conditions, created_by, updated_at`

// PurchaseOrderRepo órdenes de compra y sus líneas.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

func scanPurchaseOrder(s scanner) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := s.Scan(&po.ID, &po.PONumber, &po.SupplierID, &po.Status, &po.OrderDate, &po.ExpectedDelivery,
		&po.ActualDelivery, &po.Subtotal, &po.TaxAmount, &po.ShippingCost, &po.TotalAmount, &po.Notes,
		&po.TermsConditions, &po.CreatedBy, &po.UpdatedAt)
	return &po, err
}

// Create inserta la cabecera.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_orders (`+purchaseOrderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		po.ID, po.PONumber, po.SupplierID, po.Status, po.OrderDate, po.ExpectedDelivery, po.ActualDelivery,
		po.Subtotal, po.TaxAmount, po.ShippingCost, po.TotalAmount, po.Notes, po.TermsConditions,
		po.CreatedBy, po.UpdatedAt,
	)
	return writeErr("insert purchase order", err)
}

// GetByID obtiene la cabecera.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1`, id), "get purchase order", scanPurchaseOrder)
}

// GetForUpdate bloquea la cabecera.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id), "get purchase order for update", scanPurchaseOrder)
}

// Update no modifica po_number.
func (r *PurchaseOrderRepo) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE purchase_orders SET supplier_id = $2, status = $3, order_date = $4, expected_delivery = $5,
		       actual_delivery = $6, subtotal = $7, tax_amount = $8, shipping_cost = $9, total_amount = $10,
		       notes = $11, terms_conditions = $12, updated_at = $13
		WHERE id = $1`,
		po.ID, po.SupplierID, po.Status, po.OrderDate, po.ExpectedDelivery, po.ActualDelivery, po.Subtotal,
		po.TaxAmount, po.ShippingCost, po.TotalAmount, po.Notes, po.TermsConditions, po.UpdatedAt,
	)
	return mustAffect(tag, "update purchase order", err)
}

// Delete elimina la orden; líneas y cuenta por pagar caen en cascada.
func (r *PurchaseOrderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id)
	return mustAffect(tag, "delete purchase order", err)
}

// List más recientes primero.
func (r *PurchaseOrderRepo) List(ctx context.Context, f repository.PurchaseOrderFilter) ([]*entity.PurchaseOrder, error) {
	var w where
	w.addIf("supplier_id = ?", f.SupplierID)
	w.addIf("status = ?", f.Status)
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders` + w.sql() + ` ORDER BY order_date DESC, po_number DESC` + w.page(f.Page)
	rows, err := r.q.Query(ctx, query, w.args...)
	return many(rows, err, "list purchase orders", scanPurchaseOrder)
}

const purchaseOrderItemColumns = `id, purchase_order_id, part_id, quantity_ordered, quantity_received, unit_cost, total_cost`

func scanPurchaseOrderItem(s scanner) (*entity.PurchaseOrderItem, error) {
	var it entity.PurchaseOrderItem
	err := s.Scan(&it.ID, &it.PurchaseOrderID, &it.PartID, &it.QuantityOrdered, &it.QuantityReceived,
		&it.UnitCost, &it.TotalCost)
	return &it, err
}

// CreateItem inserta una línea.
func (r *PurchaseOrderRepo) CreateItem(ctx context.Context, it *entity.PurchaseOrderItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_order_items (`+purchaseOrderItemColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		it.ID, it.PurchaseOrderID, it.PartID, it.QuantityOrdered, it.QuantityReceived, it.UnitCost, it.TotalCost,
	)
	return writeErr("insert purchase order item", err)
}

// UpdateItem actualiza cantidades y costos de una línea.
func (r *PurchaseOrderRepo) UpdateItem(ctx context.Context, it *entity.PurchaseOrderItem) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE purchase_order_items SET quantity_ordered = $2, quantity_received = $3, unit_cost = $4, total_cost = $5
		WHERE id = $1`,
		it.ID, it.QuantityOrdered, it.QuantityReceived, it.UnitCost, it.TotalCost,
	)
	return mustAffect(tag, "update purchase order item", err)
}

// DeleteItem elimina una línea.
func (r *PurchaseOrderRepo) DeleteItem(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM purchase_order_items WHERE id = $1`, id)
	return mustAffect(tag, "delete purchase order item", err)
}

// ListItems líneas de la orden.
func (r *PurchaseOrderRepo) ListItems(ctx context.Context, purchaseOrderID string) ([]*entity.PurchaseOrderItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+purchaseOrderItemColumns+` FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY id`, purchaseOrderID)
	return many(rows, err, "list purchase order items", scanPurchaseOrderItem)
}
