// Package billing concentra el recálculo de los montos desnormalizados de facturas
// y de los saldos de cuentas por cobrar/pagar. Toda ruta de escritura pasa por aquí.
package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/pricing"
)

var hundred = decimal.NewFromInt(100)

// Recalculate normaliza la factura. Si items no está vacío el subtotal pasa a ser la suma
// de sus líneas (recalculadas); si está vacío se conserva el subtotal guardado.
//
//	tax_amount  = subtotal × tax_rate / 100
//	total       = subtotal + tax_amount − discount
//	balance_due = total − paid_amount
func Recalculate(inv *entity.Invoice, items []*entity.InvoiceItem) {
	if len(items) > 0 {
		sum := decimal.Zero
		for _, it := range items {
			pricing.ApplyInvoiceItem(it)
			sum = sum.Add(it.TotalPrice)
		}
		inv.Subtotal = sum
	}
	inv.TaxAmount = inv.Subtotal.Mul(inv.TaxRate).Div(hundred).Round(2)
	inv.TotalAmount = inv.Subtotal.Add(inv.TaxAmount).Sub(inv.DiscountAmount)
	inv.BalanceDue = inv.TotalAmount.Sub(inv.PaidAmount)
}

// EnsureDueDate fija el vencimiento según la condición de pago si no viene informado.
func EnsureDueDate(inv *entity.Invoice) {
	if inv.DueDate == nil && inv.PaymentTerms != "" {
		d := pricing.DueDate(inv.InvoiceDate, inv.PaymentTerms)
		inv.DueDate = &d
	}
}

// ApplyPayment suma el pago a la factura. Si el saldo queda en cero o negativo la factura
// pasa a paid con la fecha del pago. No hay piso: un sobrepago deja saldo negativo.
func ApplyPayment(inv *entity.Invoice, amount decimal.Decimal, at time.Time) error {
	if !amount.IsPositive() {
		return domain.NewValidationError("amount", "debe ser mayor que cero")
	}
	inv.PaidAmount = inv.PaidAmount.Add(amount)
	Recalculate(inv, nil)
	if !inv.BalanceDue.IsPositive() {
		inv.Status = entity.InvoiceStatusPaid
		paid := at
		inv.PaidDate = &paid
	}
	inv.UpdatedAt = at
	return nil
}

// ReceivableFor abre la cuenta por cobrar de una factura.
func ReceivableFor(inv *entity.Invoice, id string, at time.Time) *entity.AccountReceivable {
	ar := &entity.AccountReceivable{
		ID:             id,
		CustomerID:     inv.CustomerID,
		InvoiceID:      inv.ID,
		OriginalAmount: inv.TotalAmount,
		CreatedAt:      at,
	}
	SyncReceivable(ar, inv, at)
	return ar
}

// SyncReceivable alinea el saldo de la cuenta por cobrar con balance_due (sin negativos).
func SyncReceivable(ar *entity.AccountReceivable, inv *entity.Invoice, at time.Time) {
	ar.CurrentAmount = nonNegative(inv.BalanceDue)
	if inv.DueDate != nil {
		ar.DueDate = *inv.DueDate
	} else {
		ar.DueDate = inv.InvoiceDate
	}
	ar.UpdatedAt = at
}

// PayableFor abre la cuenta por pagar de una orden de compra.
func PayableFor(po *entity.PurchaseOrder, dueDate time.Time, id string, at time.Time) *entity.AccountPayable {
	return &entity.AccountPayable{
		ID:              id,
		SupplierID:      po.SupplierID,
		PurchaseOrderID: po.ID,
		OriginalAmount:  po.TotalAmount,
		CurrentAmount:   po.TotalAmount,
		DueDate:         dueDate,
		CreatedAt:       at,
		UpdatedAt:       at,
	}
}

// ApplySupplierPayment descuenta un pago a proveedor del saldo pendiente (sin negativos).
func ApplySupplierPayment(ap *entity.AccountPayable, amount decimal.Decimal, at time.Time) {
	ap.CurrentAmount = nonNegative(ap.CurrentAmount.Sub(amount))
	ap.UpdatedAt = at
}

// SyncPayable ajusta la cuenta por pagar al nuevo total de la orden conservando lo ya pagado.
func SyncPayable(ap *entity.AccountPayable, po *entity.PurchaseOrder, at time.Time) {
	paid := ap.OriginalAmount.Sub(ap.CurrentAmount)
	ap.OriginalAmount = po.TotalAmount
	ap.CurrentAmount = nonNegative(po.TotalAmount.Sub(paid))
	ap.UpdatedAt = at
}

// ClosePayable deja sin saldo la cuenta de una orden cancelada.
func ClosePayable(ap *entity.AccountPayable, at time.Time) {
	ap.CurrentAmount = decimal.Zero
	ap.UpdatedAt = at
}

// PayableDueDate vencimiento de la cuenta por pagar: la entrega esperada o, sin ella,
// 30 días desde la fecha del pedido.
func PayableDueDate(po *entity.PurchaseOrder) time.Time {
	if po.ExpectedDelivery != nil {
		return *po.ExpectedDelivery
	}
	return po.OrderDate.AddDate(0, 0, 30)
}

// RecalculatePurchaseOrder subtotal = Σ líneas; total = subtotal + impuesto + envío.
func RecalculatePurchaseOrder(po *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) {
	if len(items) > 0 {
		sum := decimal.Zero
		for _, it := range items {
			pricing.ApplyPurchaseItem(it)
			sum = sum.Add(it.TotalCost)
		}
		po.Subtotal = sum
	}
	po.TotalAmount = po.Subtotal.Add(po.TaxAmount).Add(po.ShippingCost)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
