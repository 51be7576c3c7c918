package accounting_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/accounting"
	"github.com/jhoicas/taller-api/internal/application/apptest"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/sequence"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/billing"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var (
	accountant   = entity.Actor{UserID: "acc-1", Role: entity.RoleAccountant}
	receptionist = entity.Actor{UserID: "rec-1", Role: entity.RoleReceptionist}
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store    *apptest.Store
	invoices *accounting.InvoiceUseCase
	payments *accounting.PaymentUseCase
	expenses *accounting.ExpenseUseCase
	ledger   *accounting.LedgerUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := apptest.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Customers.Create(ctx, &entity.Customer{ID: "c-1", FirstName: "Ana", LastName: "Soto", IsActive: true}))
	require.NoError(t, store.Suppliers.Create(ctx, &entity.Supplier{ID: "s-1", Name: "AutoParts", IsActive: true}))

	repos := accounting.Repositories{
		Invoices:         store.Invoices,
		Payments:         store.Payments,
		SupplierPayments: store.SupplierPayments,
		Expenses:         store.Expenses,
		Receivables:      store.Receivables,
		Payables:         store.Payables,
		Customers:        store.Customers,
		Suppliers:        store.Suppliers,
		Stats:            store.Stats,
	}
	gen := sequence.NewGenerator(store, nil).WithClock(func() time.Time {
		return time.Date(2024, time.June, 15, 8, 0, 0, 0, time.UTC)
	})
	return &fixture{
		store:    store,
		invoices: accounting.NewInvoiceUseCase(repos, store, gen),
		payments: accounting.NewPaymentUseCase(repos, store, gen),
		expenses: accounting.NewExpenseUseCase(store.Expenses, gen),
		ledger:   accounting.NewLedgerUseCase(repos),
	}
}

func (f *fixture) createInvoice(t *testing.T, subtotal string) *dto.InvoiceResponse {
	t.Helper()
	invoiceDate := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	inv, err := f.invoices.Create(context.Background(), accountant, dto.CreateInvoiceRequest{
		CustomerID:  "c-1",
		Status:      entity.InvoiceStatusSent,
		InvoiceDate: &invoiceDate,
		Subtotal:    dec(subtotal),
	})
	require.NoError(t, err)
	return inv
}

// ──────────────────────────────────────────────────────────────────────────────
// Facturas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateInvoice_NumeroVencimientoYCuentaPorCobrar(t *testing.T) {
	f := newFixture(t)
	inv := f.createInvoice(t, "500")

	assert.Equal(t, "INV2024060001", inv.InvoiceNumber)
	assert.Equal(t, entity.TermsNet30, inv.PaymentTerms)
	require.NotNil(t, inv.DueDate)
	assert.Equal(t, "2024-07-01", inv.DueDate.Format(dto.DateLayout))
	assert.Equal(t, "500.00", inv.BalanceDue.StringFixed(2))

	ar, err := f.store.Receivables.GetByInvoice(context.Background(), inv.ID)
	require.NoError(t, err)
	require.NotNil(t, ar)
	assert.Equal(t, "500.00", ar.CurrentAmount.StringFixed(2))
	assert.Equal(t, "2024-07-01", ar.DueDate.Format(dto.DateLayout))
}

func TestCreateInvoice_SubtotalDesdeLineas(t *testing.T) {
	f := newFixture(t)
	inv, err := f.invoices.Create(context.Background(), accountant, dto.CreateInvoiceRequest{
		CustomerID: "c-1",
		Subtotal:   dec("999"),
		TaxRate:    dec("10"),
		Items: []dto.InvoiceItemRequest{
			{Description: "Aceite", Quantity: dec("3"), UnitPrice: dec("19.99")},
			{Description: "Mano de obra", Quantity: dec("1"), UnitPrice: dec("40.03")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "100.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "110.00", inv.TotalAmount.StringFixed(2))
	require.Len(t, inv.Items, 2)
	assert.Equal(t, "59.97", inv.Items[0].TotalPrice.StringFixed(2))
	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status)
}

func TestCreateInvoice_ClienteInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.invoices.Create(context.Background(), accountant, dto.CreateInvoiceRequest{CustomerID: "nope"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestUpdateInvoice_DescuentoRecalculaSaldoYCuenta(t *testing.T) {
	f := newFixture(t)
	inv := f.createInvoice(t, "200")
	discount := dec("20")

	got, err := f.invoices.Update(context.Background(), accountant, inv.ID, dto.UpdateInvoiceRequest{DiscountAmount: &discount})
	require.NoError(t, err)
	assert.Equal(t, "180.00", got.TotalAmount.StringFixed(2))
	assert.Equal(t, "180.00", got.BalanceDue.StringFixed(2))

	ar, _ := f.store.Receivables.GetByInvoice(context.Background(), inv.ID)
	assert.Equal(t, "180.00", ar.CurrentAmount.StringFixed(2))
}

func TestUpdateInvoice_CambioDeCondicionesRecalculaVencimiento(t *testing.T) {
	f := newFixture(t)
	inv := f.createInvoice(t, "100")
	terms := entity.TermsNet15
	got, err := f.invoices.Update(context.Background(), accountant, inv.ID, dto.UpdateInvoiceRequest{PaymentTerms: &terms})
	require.NoError(t, err)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, "2024-06-16", got.DueDate.Format(dto.DateLayout))
}

func TestAddItem_SubtotalPasaASerSumaDeLineas(t *testing.T) {
	f := newFixture(t)
	inv := f.createInvoice(t, "0")
	got, err := f.invoices.AddItem(context.Background(), accountant, inv.ID, dto.InvoiceItemRequest{
		Description: "Pastillas", Quantity: dec("2"), UnitPrice: dec("45"),
	})
	require.NoError(t, err)
	assert.Equal(t, "90.00", got.Subtotal.StringFixed(2))
	assert.Equal(t, "90.00", got.BalanceDue.StringFixed(2))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "90.00", got.Items[0].TotalPrice.StringFixed(2))
}

func (f *fixture) invoiceWithLines(t *testing.T) *dto.InvoiceResponse {
	t.Helper()
	inv, err := f.invoices.Create(context.Background(), accountant, dto.CreateInvoiceRequest{
		CustomerID: "c-1",
		Status:     entity.InvoiceStatusSent,
		TaxRate:    dec("10"),
		Items: []dto.InvoiceItemRequest{
			{Description: "Aceite", Quantity: dec("2"), UnitPrice: dec("25")},
			{Description: "Mano de obra", Quantity: dec("1"), UnitPrice: dec("50")},
		},
	})
	require.NoError(t, err)
	require.Len(t, inv.Items, 2)
	return inv
}

func TestUpdateInvoiceItem_RecalculaLineaFacturaYCuenta(t *testing.T) {
	f := newFixture(t)
	inv := f.invoiceWithLines(t)
	qty := dec("4")

	got, err := f.invoices.UpdateItem(context.Background(), accountant, inv.ID, inv.Items[0].ID, dto.UpdateInvoiceItemRequest{Quantity: &qty})
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	for _, it := range got.Items {
		if it.ID == inv.Items[0].ID {
			assert.Equal(t, "100.00", it.TotalPrice.StringFixed(2))
		}
	}
	assert.Equal(t, "150.00", got.Subtotal.StringFixed(2))
	assert.Equal(t, "165.00", got.TotalAmount.StringFixed(2))

	ar, _ := f.store.Receivables.GetByInvoice(context.Background(), inv.ID)
	assert.Equal(t, "165.00", ar.CurrentAmount.StringFixed(2))
}

func TestUpdateInvoiceItem_Errores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.invoiceWithLines(t)
	other := f.createInvoice(t, "10")

	zero := decimal.Zero
	_, err := f.invoices.UpdateItem(ctx, accountant, inv.ID, inv.Items[0].ID, dto.UpdateInvoiceItemRequest{Quantity: &zero})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.invoices.UpdateItem(ctx, accountant, other.ID, inv.Items[0].ID, dto.UpdateInvoiceItemRequest{})
	assert.True(t, errors.Is(err, domain.ErrNotFound), "la línea no pertenece a la factura")

	_, err = f.invoices.UpdateItem(ctx, receptionist, inv.ID, inv.Items[0].ID, dto.UpdateInvoiceItemRequest{})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestDeleteInvoiceItem_RecalculaHastaCero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.invoiceWithLines(t)

	got, err := f.invoices.DeleteItem(ctx, accountant, inv.ID, inv.Items[0].ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "50.00", got.Subtotal.StringFixed(2))
	assert.Equal(t, "55.00", got.BalanceDue.StringFixed(2))

	got, err = f.invoices.DeleteItem(ctx, accountant, inv.ID, inv.Items[1].ID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.True(t, got.Subtotal.IsZero())
	assert.True(t, got.TotalAmount.IsZero())
}

func TestInvoices_SinAcceso(t *testing.T) {
	f := newFixture(t)
	inv := f.createInvoice(t, "10")

	list, err := f.invoices.List(context.Background(), receptionist, dto.InvoiceListRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	_, err = f.invoices.GetByID(context.Background(), receptionist, inv.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = f.invoices.Create(context.Background(), receptionist, dto.CreateInvoiceRequest{CustomerID: "c-1"})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

// ──────────────────────────────────────────────────────────────────────────────
// Cobros
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessPayment_PagoTotalMarcaPagada(t *testing.T) {
	f := newFixture(t)
	inv := f.createInvoice(t, "500")

	out, err := f.payments.ProcessPayment(context.Background(), accountant, dto.CreatePaymentRequest{
		InvoiceID: inv.ID, Amount: dec("500"), PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)
	assert.Equal(t, "PAY2024060001", out.Payment.PaymentNumber)
	assert.Equal(t, "c-1", out.Payment.CustomerID)
	assert.Equal(t, entity.PaymentStatusCompleted, out.Payment.Status)
	require.NotNil(t, out.Payment.ProcessedDate)
	assert.True(t, out.Invoice.BalanceDue.IsZero())
	assert.Equal(t, entity.InvoiceStatusPaid, out.Invoice.Status)
	require.NotNil(t, out.Invoice.PaidDate)

	ar, _ := f.store.Receivables.GetByInvoice(context.Background(), inv.ID)
	assert.True(t, ar.CurrentAmount.IsZero())
}

func TestProcessPayment_ParcialesAcumulan(t *testing.T) {
	f := newFixture(t)
	inv := f.createInvoice(t, "300")
	ctx := context.Background()
	for _, amount := range []string{"100", "50.50"} {
		_, err := f.payments.ProcessPayment(ctx, accountant, dto.CreatePaymentRequest{
			InvoiceID: inv.ID, Amount: dec(amount), PaymentMethod: entity.PaymentCreditCard,
		})
		require.NoError(t, err)
	}
	got, err := f.invoices.GetByID(ctx, accountant, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "150.50", got.PaidAmount.StringFixed(2))
	assert.Equal(t, "149.50", got.BalanceDue.StringFixed(2))
	assert.Equal(t, entity.InvoiceStatusSent, got.Status)

	list, err := f.payments.List(ctx, accountant, dto.PaymentListRequest{InvoiceID: inv.ID})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "PAY2024060002", list.Items[1].PaymentNumber)
}

func TestProcessPayment_PendienteNoAplica(t *testing.T) {
	f := newFixture(t)
	inv := f.createInvoice(t, "300")
	out, err := f.payments.ProcessPayment(context.Background(), accountant, dto.CreatePaymentRequest{
		InvoiceID: inv.ID, Amount: dec("300"), PaymentMethod: entity.PaymentCheck, Status: entity.PaymentStatusPending,
	})
	require.NoError(t, err)
	assert.Nil(t, out.Payment.ProcessedDate)
	assert.Equal(t, "300.00", out.Invoice.BalanceDue.StringFixed(2))
}

func TestProcessPayment_Errores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.createInvoice(t, "100")

	_, err := f.payments.ProcessPayment(ctx, accountant, dto.CreatePaymentRequest{InvoiceID: inv.ID, Amount: decimal.Zero, PaymentMethod: entity.PaymentCash})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.payments.ProcessPayment(ctx, accountant, dto.CreatePaymentRequest{InvoiceID: "nope", Amount: dec("1"), PaymentMethod: entity.PaymentCash})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.payments.ProcessPayment(ctx, receptionist, dto.CreatePaymentRequest{InvoiceID: inv.ID, Amount: dec("1"), PaymentMethod: entity.PaymentCash})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestProcessInvoicePayment_FacturaInexistenteEsNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.payments.ProcessInvoicePayment(context.Background(), accountant, "nope", dto.CreatePaymentRequest{
		Amount: dec("1"), PaymentMethod: entity.PaymentCash,
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.False(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestUpdatePayment_PendienteACompletadoAplica(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.createInvoice(t, "300")
	created, err := f.payments.ProcessPayment(ctx, accountant, dto.CreatePaymentRequest{
		InvoiceID: inv.ID, Amount: dec("300"), PaymentMethod: entity.PaymentCheck, Status: entity.PaymentStatusPending,
	})
	require.NoError(t, err)

	completed := entity.PaymentStatusCompleted
	out, err := f.payments.Update(ctx, accountant, created.Payment.ID, dto.UpdatePaymentRequest{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusCompleted, out.Payment.Status)
	require.NotNil(t, out.Payment.ProcessedDate)
	assert.True(t, out.Invoice.BalanceDue.IsZero())
	assert.Equal(t, entity.InvoiceStatusPaid, out.Invoice.Status)

	ar, _ := f.store.Receivables.GetByInvoice(ctx, inv.ID)
	assert.True(t, ar.CurrentAmount.IsZero())

	// repetir el estado no vuelve a aplicar el monto
	_, err = f.payments.Update(ctx, accountant, created.Payment.ID, dto.UpdatePaymentRequest{Status: &completed})
	require.NoError(t, err)
	got, err := f.invoices.GetByID(ctx, accountant, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "300.00", got.PaidAmount.StringFixed(2))
}

func TestUpdatePayment_CompletadoNoCambiaMonto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.createInvoice(t, "100")
	created, err := f.payments.ProcessPayment(ctx, accountant, dto.CreatePaymentRequest{
		InvoiceID: inv.ID, Amount: dec("40"), PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)

	amount := dec("90")
	_, err = f.payments.Update(ctx, accountant, created.Payment.ID, dto.UpdatePaymentRequest{Amount: &amount})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	notes := "recibo 123"
	out, err := f.payments.Update(ctx, accountant, created.Payment.ID, dto.UpdatePaymentRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "recibo 123", out.Payment.Notes)
	assert.Equal(t, "60.00", out.Invoice.BalanceDue.StringFixed(2))

	_, err = f.payments.Update(ctx, accountant, "nope", dto.UpdatePaymentRequest{Notes: &notes})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDeleteInvoice_ConCobrosEsConflicto(t *testing.T) {
	f := newFixture(t)
	inv := f.createInvoice(t, "100")
	_, err := f.payments.ProcessPayment(context.Background(), accountant, dto.CreatePaymentRequest{
		InvoiceID: inv.ID, Amount: dec("10"), PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)
	assert.True(t, errors.Is(f.invoices.Delete(context.Background(), accountant, inv.ID), domain.ErrConflict))
}

// ──────────────────────────────────────────────────────────────────────────────
// Pagos a proveedor
// ──────────────────────────────────────────────────────────────────────────────

func seedPurchaseOrder(t *testing.T, store *apptest.Store, total string) *entity.PurchaseOrder {
	t.Helper()
	ctx := context.Background()
	po := &entity.PurchaseOrder{ID: "po-1", PONumber: "PO2024060001", SupplierID: "s-1", Status: entity.POStatusSent, Subtotal: dec(total), OrderDate: time.Now()}
	billing.RecalculatePurchaseOrder(po, nil)
	require.NoError(t, store.PurchaseOrders.Create(ctx, po))
	require.NoError(t, store.Payables.Create(ctx, billing.PayableFor(po, billing.PayableDueDate(po), "ap-1", time.Now())))
	return po
}

func TestCreateSupplierPayment_DescuentaCuentaPorPagar(t *testing.T) {
	f := newFixture(t)
	po := seedPurchaseOrder(t, f.store, "100")

	p, err := f.payments.CreateSupplierPayment(context.Background(), accountant, dto.CreateSupplierPaymentRequest{
		SupplierID: "s-1", PurchaseOrderID: &po.ID, Amount: dec("60"), PaymentMethod: entity.PaymentBankTransfer,
	})
	require.NoError(t, err)
	assert.Equal(t, "SPAY2024060001", p.PaymentNumber)

	ap, _ := f.store.Payables.GetByPurchaseOrder(context.Background(), po.ID)
	assert.Equal(t, "40.00", ap.CurrentAmount.StringFixed(2))

	_, err = f.payments.CreateSupplierPayment(context.Background(), accountant, dto.CreateSupplierPaymentRequest{
		SupplierID: "s-1", PurchaseOrderID: &po.ID, Amount: dec("60"), PaymentMethod: entity.PaymentBankTransfer,
	})
	require.NoError(t, err)
	ap, _ = f.store.Payables.GetByPurchaseOrder(context.Background(), po.ID)
	assert.True(t, ap.CurrentAmount.IsZero(), "sin saldo negativo")
}

func TestCreateSupplierPayment_PendienteNoDescuenta(t *testing.T) {
	f := newFixture(t)
	po := seedPurchaseOrder(t, f.store, "100")
	_, err := f.payments.CreateSupplierPayment(context.Background(), accountant, dto.CreateSupplierPaymentRequest{
		SupplierID: "s-1", PurchaseOrderID: &po.ID, Amount: dec("60"), PaymentMethod: entity.PaymentCheck, Status: entity.PaymentStatusPending,
	})
	require.NoError(t, err)
	ap, _ := f.store.Payables.GetByPurchaseOrder(context.Background(), po.ID)
	assert.Equal(t, "100.00", ap.CurrentAmount.StringFixed(2))
}

func TestCreateSupplierPayment_OrdenDeOtroProveedor(t *testing.T) {
	f := newFixture(t)
	po := seedPurchaseOrder(t, f.store, "100")
	require.NoError(t, f.store.Suppliers.Create(context.Background(), &entity.Supplier{ID: "s-2", Name: "Otro"}))
	_, err := f.payments.CreateSupplierPayment(context.Background(), accountant, dto.CreateSupplierPaymentRequest{
		SupplierID: "s-2", PurchaseOrderID: &po.ID, Amount: dec("10"), PaymentMethod: entity.PaymentCash,
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ──────────────────────────────────────────────────────────────────────────────
// Gastos
// ──────────────────────────────────────────────────────────────────────────────

func TestExpense_AprobarYPagarFijanFechas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e, err := f.expenses.Create(ctx, accountant, dto.CreateExpenseRequest{
		Category: entity.ExpenseRent, Description: "Alquiler junio", Amount: dec("1500"),
	})
	require.NoError(t, err)
	assert.Equal(t, "EXP2024060001", e.ExpenseNumber)
	assert.Equal(t, entity.ExpenseStatusPending, e.Status)

	approved := entity.ExpenseStatusApproved
	e, err = f.expenses.Update(ctx, accountant, e.ID, dto.UpdateExpenseRequest{Status: &approved})
	require.NoError(t, err)
	require.NotNil(t, e.ApprovedDate)
	require.NotNil(t, e.ApprovedBy)
	assert.Equal(t, accountant.UserID, *e.ApprovedBy)
	assert.Nil(t, e.PaidDate)

	paid := entity.ExpenseStatusPaid
	e, err = f.expenses.Update(ctx, accountant, e.ID, dto.UpdateExpenseRequest{Status: &paid})
	require.NoError(t, err)
	assert.NotNil(t, e.PaidDate)
	assert.NotNil(t, e.ApprovedDate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cuentas y estadísticas
// ──────────────────────────────────────────────────────────────────────────────

func TestReceivables_MarcaVencidas(t *testing.T) {
	f := newFixture(t)
	f.createInvoice(t, "100")
	list, err := f.ledger.Receivables(context.Background(), accountant, "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.True(t, list.Items[0].IsOverdue, "vencía el 2024-07-01")

	list, err = f.ledger.Receivables(context.Background(), receptionist, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestAccountingStats_DenegadoYMapeo(t *testing.T) {
	f := newFixture(t)
	f.store.Stats.Accounting = repository.AccountingStats{TotalInvoices: 7, PaidInvoices: 3, Receivables: dec("420.50")}
	out, err := f.ledger.Stats(context.Background(), accountant)
	require.NoError(t, err)
	assert.Equal(t, 7, out.Invoices.Total)
	assert.Equal(t, 3, out.Invoices.Paid)
	assert.Equal(t, "420.5", out.Receivables.String())

	_, err = f.ledger.Stats(context.Background(), receptionist)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}
