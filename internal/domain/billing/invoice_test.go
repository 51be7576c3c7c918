package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/domain/billing"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func invoiceOf(subtotal string) *entity.Invoice {
	inv := &entity.Invoice{
		ID:           "inv-1",
		CustomerID:   "c-1",
		Status:       entity.InvoiceStatusSent,
		PaymentTerms: entity.TermsNet30,
		InvoiceDate:  time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		Subtotal:     dec(subtotal),
	}
	billing.Recalculate(inv, nil)
	return inv
}

// ──────────────────────────────────────────────────────────────────────────────
// Recalculate
// ──────────────────────────────────────────────────────────────────────────────

func TestRecalculate_SubtotalDesdeLineas(t *testing.T) {
	inv := &entity.Invoice{TaxRate: dec("10"), DiscountAmount: dec("5")}
	items := []*entity.InvoiceItem{
		{Quantity: dec("3"), UnitPrice: dec("19.99")},
		{Quantity: dec("1"), UnitPrice: dec("40.03")},
	}
	billing.Recalculate(inv, items)

	assert.Equal(t, "59.97", items[0].TotalPrice.StringFixed(2))
	assert.Equal(t, "100.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "10.00", inv.TaxAmount.StringFixed(2))
	assert.Equal(t, "105.00", inv.TotalAmount.StringFixed(2))
	assert.Equal(t, "105.00", inv.BalanceDue.StringFixed(2))
}

func TestRecalculate_EditarDescuentoRecalculaSaldo(t *testing.T) {
	inv := invoiceOf("200")
	inv.PaidAmount = dec("50")
	inv.DiscountAmount = dec("20")
	billing.Recalculate(inv, nil)
	assert.Equal(t, "130.00", inv.BalanceDue.StringFixed(2), "balance_due = total − paid tras editar")
}

func TestEnsureDueDate_Net30(t *testing.T) {
	inv := invoiceOf("10")
	billing.EnsureDueDate(inv)
	require.NotNil(t, inv.DueDate)
	assert.Equal(t, "2024-07-01", inv.DueDate.Format("2006-01-02"))
}

func TestEnsureDueDate_RespetaFechaExplicita(t *testing.T) {
	inv := invoiceOf("10")
	explicit := time.Date(2024, time.December, 24, 0, 0, 0, 0, time.UTC)
	inv.DueDate = &explicit
	billing.EnsureDueDate(inv)
	assert.True(t, inv.DueDate.Equal(explicit))
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyPayment
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyPayment_PagoTotalMarcaPagada(t *testing.T) {
	inv := invoiceOf("500")
	require.True(t, inv.TotalAmount.Equal(dec("500")))

	at := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, billing.ApplyPayment(inv, dec("500"), at))

	assert.True(t, inv.BalanceDue.IsZero())
	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)
	require.NotNil(t, inv.PaidDate)
	assert.True(t, inv.PaidDate.Equal(at))
}

func TestApplyPayment_PagoParcialNoCambiaEstado(t *testing.T) {
	inv := invoiceOf("500")
	require.NoError(t, billing.ApplyPayment(inv, dec("120.50"), time.Now()))
	assert.Equal(t, "379.50", inv.BalanceDue.StringFixed(2))
	assert.Equal(t, entity.InvoiceStatusSent, inv.Status)
	assert.Nil(t, inv.PaidDate)
}

func TestApplyPayment_SobrepagoDejaSaldoNegativo(t *testing.T) {
	inv := invoiceOf("100")
	require.NoError(t, billing.ApplyPayment(inv, dec("150"), time.Now()))
	assert.Equal(t, "-50.00", inv.BalanceDue.StringFixed(2))
	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)
}

func TestApplyPayment_MontoInvalido(t *testing.T) {
	inv := invoiceOf("100")
	assert.Error(t, billing.ApplyPayment(inv, decimal.Zero, time.Now()))
	assert.True(t, inv.PaidAmount.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Cuentas por cobrar / pagar
// ──────────────────────────────────────────────────────────────────────────────

func TestReceivable_SigueAlSaldo(t *testing.T) {
	inv := invoiceOf("300")
	billing.EnsureDueDate(inv)
	ar := billing.ReceivableFor(inv, "ar-1", time.Now())
	assert.Equal(t, "300.00", ar.CurrentAmount.StringFixed(2))

	require.NoError(t, billing.ApplyPayment(inv, dec("350"), time.Now()))
	billing.SyncReceivable(ar, inv, time.Now())
	assert.True(t, ar.CurrentAmount.IsZero(), "la cuenta por cobrar no queda negativa")
	assert.Equal(t, "300.00", ar.OriginalAmount.StringFixed(2))
}

func TestPayable_DescuentaPagosAProveedor(t *testing.T) {
	po := &entity.PurchaseOrder{ID: "po-1", SupplierID: "s-1", TaxAmount: dec("5"), ShippingCost: dec("10")}
	billing.RecalculatePurchaseOrder(po, []*entity.PurchaseOrderItem{{QuantityOrdered: dec("2"), UnitCost: dec("42.50")}})
	assert.Equal(t, "100.00", po.TotalAmount.StringFixed(2))

	ap := billing.PayableFor(po, time.Now(), "ap-1", time.Now())
	billing.ApplySupplierPayment(ap, dec("60"), time.Now())
	assert.Equal(t, "40.00", ap.CurrentAmount.StringFixed(2))
	billing.ApplySupplierPayment(ap, dec("60"), time.Now())
	assert.True(t, ap.CurrentAmount.IsZero())
}

func TestSyncPayable_ConservaLoPagado(t *testing.T) {
	po := &entity.PurchaseOrder{ID: "po-1", Subtotal: dec("100")}
	billing.RecalculatePurchaseOrder(po, nil)
	ap := billing.PayableFor(po, time.Now(), "ap-1", time.Now())
	billing.ApplySupplierPayment(ap, dec("30"), time.Now())

	po.ShippingCost = dec("20")
	billing.RecalculatePurchaseOrder(po, nil)
	billing.SyncPayable(ap, po, time.Now())
	assert.Equal(t, "120.00", ap.OriginalAmount.StringFixed(2))
	assert.Equal(t, "90.00", ap.CurrentAmount.StringFixed(2))
}

func TestPayableDueDate_EntregaEsperadaOTreintaDias(t *testing.T) {
	po := &entity.PurchaseOrder{OrderDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2024-07-01", billing.PayableDueDate(po).Format("2006-01-02"))

	expected := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	po.ExpectedDelivery = &expected
	assert.True(t, billing.PayableDueDate(po).Equal(expected))
}
