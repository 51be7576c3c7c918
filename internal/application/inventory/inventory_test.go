package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/apptest"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/application/sequence"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
	"github.com/jhoicas/taller-api/pkg/phone"
)

var (
	manager      = entity.Actor{UserID: "inv-1", Role: entity.RoleInventoryManager}
	receptionist = entity.Actor{UserID: "rec-1", Role: entity.RoleReceptionist}
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store   *apptest.Store
	catalog *inventory.CatalogUseCase
	stock   *inventory.StockUseCase
	orders  *inventory.PurchaseOrderUseCase
	alerts  *inventory.ReplenishmentUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := apptest.NewStore()
	gen := sequence.NewGenerator(store, nil).WithClock(func() time.Time {
		return time.Date(2024, time.June, 15, 8, 0, 0, 0, time.UTC)
	})
	return &fixture{
		store:   store,
		catalog: inventory.NewCatalogUseCase(store.Categories, store.Suppliers, store.Parts, store, phone.NewNormalizer(phone.DefaultRegion)),
		stock:   inventory.NewStockUseCase(store.StockMovements, store),
		orders:  inventory.NewPurchaseOrderUseCase(store.PurchaseOrders, store.Suppliers, store.Parts, store, gen),
		alerts:  inventory.NewReplenishmentUseCase(store.Stats),
	}
}

func (f *fixture) createPart(t *testing.T, sku string, initial string) *dto.PartResponse {
	t.Helper()
	p, err := f.catalog.CreatePart(context.Background(), manager, dto.CreatePartRequest{
		SKU:          sku,
		Name:         "Filtro de aceite",
		CostPrice:    dec("8"),
		SellingPrice: dec("10"),
		InitialStock: dec(initial),
		MinimumStock: dec("5"),
		ReorderPoint: dec("8"),
	})
	require.NoError(t, err)
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePart_StockInicialComoAjuste(t *testing.T) {
	f := newFixture(t)
	p := f.createPart(t, "OF-100", "12")

	assert.Equal(t, "12", p.CurrentStock.String())
	assert.Equal(t, entity.UnitPiece, p.Unit)
	assert.Equal(t, "25", p.ProfitMargin.String())
	require.Equal(t, 1, f.store.StockMovements.Len())

	movs, err := f.stock.ListMovements(context.Background(), manager, dto.StockMovementListRequest{PartID: p.ID})
	require.NoError(t, err)
	require.Len(t, movs.Items, 1)
	m := movs.Items[0]
	assert.Equal(t, entity.MovementAdjustment, m.MovementType)
	assert.True(t, m.PreviousStock.IsZero())
	assert.Equal(t, "12", m.NewStock.String())
	assert.Equal(t, inventory.InitialStockNote, m.Notes)
}

func TestCreatePart_SinStockInicialNoGeneraMovimiento(t *testing.T) {
	f := newFixture(t)
	p := f.createPart(t, "OF-101", "0")
	assert.True(t, p.CurrentStock.IsZero())
	assert.True(t, p.IsLowStock, "0 <= mínimo")
	assert.Equal(t, 0, f.store.StockMovements.Len())
}

func TestCreatePart_SKUDuplicado(t *testing.T) {
	f := newFixture(t)
	f.createPart(t, "OF-100", "0")
	_, err := f.catalog.CreatePart(context.Background(), manager, dto.CreatePartRequest{SKU: "OF-100", Name: "Otro"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestCreatePart_PrecioNegativo(t *testing.T) {
	f := newFixture(t)
	_, err := f.catalog.CreatePart(context.Background(), manager, dto.CreatePartRequest{SKU: "X", Name: "X", CostPrice: dec("-1")})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "cost_price", verr.Field)
}

func TestUpdatePart_NoTocaElStock(t *testing.T) {
	f := newFixture(t)
	p := f.createPart(t, "OF-100", "12")
	name := "Filtro premium"
	price := dec("15")
	got, err := f.catalog.UpdatePart(context.Background(), manager, p.ID, dto.UpdatePartRequest{Name: &name, SellingPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.Equal(t, "12", got.CurrentStock.String())
	assert.Equal(t, "87.5", got.ProfitMargin.String())
}

func TestListParts_FiltroStockBajo(t *testing.T) {
	f := newFixture(t)
	f.createPart(t, "A", "20")
	low := f.createPart(t, "B", "5")

	out, err := f.catalog.ListParts(context.Background(), manager, dto.PartListRequest{LowStock: true})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, low.ID, out.Items[0].ID)
	assert.True(t, out.Items[0].NeedsReorder)
}

func TestListParts_SinAccesoDevuelveVacio(t *testing.T) {
	f := newFixture(t)
	f.createPart(t, "A", "1")
	out, err := f.catalog.ListParts(context.Background(), receptionist, dto.PartListRequest{})
	require.NoError(t, err)
	assert.Empty(t, out.Items)

	_, err = f.catalog.CreatePart(context.Background(), receptionist, dto.CreatePartRequest{SKU: "Z", Name: "Z"})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestCategorias_NombreUnico(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.catalog.CreateCategory(ctx, manager, dto.CategoryRequest{Name: "Filtros"})
	require.NoError(t, err)
	_, err = f.catalog.CreateCategory(ctx, manager, dto.CategoryRequest{Name: "Filtros"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestCategorias_PadreInexistente(t *testing.T) {
	f := newFixture(t)
	missing := "nope"
	_, err := f.catalog.CreateCategory(context.Background(), manager, dto.CategoryRequest{Name: "Frenos", ParentID: &missing})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCreateSupplier_NormalizaTelefono(t *testing.T) {
	f := newFixture(t)
	s, err := f.catalog.CreateSupplier(context.Background(), manager, dto.SupplierRequest{
		Name:  "AutoParts Inc",
		Email: " Ventas@AutoParts.com ",
		Phone: "(415) 555-2671",
	})
	require.NoError(t, err)
	assert.Equal(t, "+14155552671", s.Phone)
	assert.Equal(t, "ventas@autoparts.com", s.Email)
	assert.Equal(t, "USA", s.Country)
	assert.True(t, s.IsActive)

	_, err = f.catalog.CreateSupplier(context.Background(), manager, dto.SupplierRequest{Name: "X", Phone: "no es un teléfono"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ──────────────────────────────────────────────────────────────────────────────
// Libro de movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_VentaDescuentaYGuardaFoto(t *testing.T) {
	f := newFixture(t)
	p := f.createPart(t, "OF-100", "10")

	m, err := f.stock.RecordMovement(context.Background(), manager, dto.RecordMovementRequest{
		PartID: p.ID, MovementType: entity.MovementSale, Quantity: dec("3"),
	})
	require.NoError(t, err)
	assert.Equal(t, "10", m.PreviousStock.String())
	assert.Equal(t, "7", m.NewStock.String())
	assert.Equal(t, "manual", m.ReferenceType)

	got, err := f.catalog.GetPart(context.Background(), manager, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "7", got.CurrentStock.String())
	assert.True(t, got.NeedsReorder)
}

func TestRecordMovement_TransferenciaNoMueveStock(t *testing.T) {
	f := newFixture(t)
	p := f.createPart(t, "OF-100", "10")
	m, err := f.stock.RecordMovement(context.Background(), manager, dto.RecordMovementRequest{
		PartID: p.ID, MovementType: entity.MovementTransfer, Quantity: dec("4"),
	})
	require.NoError(t, err)
	assert.True(t, m.PreviousStock.Equal(m.NewStock))
}

func TestRecordMovement_PermiteStockNegativo(t *testing.T) {
	f := newFixture(t)
	p := f.createPart(t, "OF-100", "2")
	m, err := f.stock.RecordMovement(context.Background(), manager, dto.RecordMovementRequest{
		PartID: p.ID, MovementType: entity.MovementDamage, Quantity: dec("5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "-3", m.NewStock.String())
}

func TestRecordMovement_Errores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPart(t, "OF-100", "2")

	_, err := f.stock.RecordMovement(ctx, manager, dto.RecordMovementRequest{PartID: p.ID, MovementType: entity.MovementSale, Quantity: decimal.Zero})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.stock.RecordMovement(ctx, manager, dto.RecordMovementRequest{PartID: "nope", MovementType: entity.MovementSale, Quantity: dec("1")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = f.stock.RecordMovement(ctx, receptionist, dto.RecordMovementRequest{PartID: p.ID, MovementType: entity.MovementSale, Quantity: dec("1")})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de compra
// ──────────────────────────────────────────────────────────────────────────────

func (f *fixture) createOrder(t *testing.T, partID string) *dto.PurchaseOrderResponse {
	t.Helper()
	ctx := context.Background()
	s, err := f.catalog.CreateSupplier(ctx, manager, dto.SupplierRequest{Name: "AutoParts"})
	require.NoError(t, err)
	po, err := f.orders.Create(ctx, manager, dto.CreatePurchaseOrderRequest{
		SupplierID:   s.ID,
		TaxAmount:    dec("5"),
		ShippingCost: dec("10"),
		Items:        []dto.PurchaseOrderItemRequest{{PartID: partID, QuantityOrdered: dec("10"), UnitCost: dec("8.50")}},
	})
	require.NoError(t, err)
	return po
}

func TestCreatePurchaseOrder_NumeroTotalesYCuentaPorPagar(t *testing.T) {
	f := newFixture(t)
	p := f.createPart(t, "OF-100", "0")
	po := f.createOrder(t, p.ID)

	assert.Equal(t, "PO2024060001", po.PONumber)
	assert.Equal(t, entity.POStatusDraft, po.Status)
	assert.Equal(t, "85.00", po.Subtotal.StringFixed(2))
	assert.Equal(t, "100.00", po.TotalAmount.StringFixed(2))
	require.Len(t, po.Items, 1)

	ap, err := f.store.Payables.GetByPurchaseOrder(context.Background(), po.ID)
	require.NoError(t, err)
	require.NotNil(t, ap)
	assert.Equal(t, "100.00", ap.CurrentAmount.StringFixed(2))
	assert.Equal(t, po.OrderDate.AddDate(0, 0, 30).Format(dto.DateLayout), ap.DueDate.Format(dto.DateLayout))
}

func TestCreatePurchaseOrder_ProveedorInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.orders.Create(context.Background(), manager, dto.CreatePurchaseOrderRequest{SupplierID: "nope"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestUpdatePurchaseOrder_AjustaCuentaPorPagar(t *testing.T) {
	f := newFixture(t)
	p := f.createPart(t, "OF-100", "0")
	po := f.createOrder(t, p.ID)

	shipping := dec("30")
	got, err := f.orders.Update(context.Background(), manager, po.ID, dto.UpdatePurchaseOrderRequest{ShippingCost: &shipping})
	require.NoError(t, err)
	assert.Equal(t, "120.00", got.TotalAmount.StringFixed(2))

	ap, _ := f.store.Payables.GetByPurchaseOrder(context.Background(), po.ID)
	assert.Equal(t, "120.00", ap.OriginalAmount.StringFixed(2))
	assert.Equal(t, "120.00", ap.CurrentAmount.StringFixed(2))

	cancelled := entity.POStatusCancelled
	_, err = f.orders.Update(context.Background(), manager, po.ID, dto.UpdatePurchaseOrderRequest{Status: &cancelled})
	require.NoError(t, err)
	ap, _ = f.store.Payables.GetByPurchaseOrder(context.Background(), po.ID)
	assert.True(t, ap.CurrentAmount.IsZero())

	_, err = f.orders.Update(context.Background(), manager, po.ID, dto.UpdatePurchaseOrderRequest{ShippingCost: &shipping})
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestUpdatePurchaseOrderItem_RecalculaTotalYCuenta(t *testing.T) {
	f := newFixture(t)
	p := f.createPart(t, "OF-100", "0")
	po := f.createOrder(t, p.ID)

	cost := dec("9")
	got, err := f.orders.UpdateItem(context.Background(), manager, po.ID, po.Items[0].ID, dto.UpdatePurchaseOrderItemRequest{UnitCost: &cost})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "90.00", got.Items[0].TotalCost.StringFixed(2))
	assert.Equal(t, "90.00", got.Subtotal.StringFixed(2))
	assert.Equal(t, "105.00", got.TotalAmount.StringFixed(2))

	ap, _ := f.store.Payables.GetByPurchaseOrder(context.Background(), po.ID)
	assert.Equal(t, "105.00", ap.CurrentAmount.StringFixed(2))
}

func TestUpdatePurchaseOrderItem_NoBajaDeLoRecibido(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPart(t, "OF-100", "0")
	po := f.createOrder(t, p.ID)
	itemID := po.Items[0].ID
	_, err := f.orders.Receive(ctx, manager, po.ID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: itemID, Quantity: dec("4")}},
	})
	require.NoError(t, err)

	qty := dec("3")
	_, err = f.orders.UpdateItem(ctx, manager, po.ID, itemID, dto.UpdatePurchaseOrderItemRequest{QuantityOrdered: &qty})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.orders.DeleteItem(ctx, manager, po.ID, itemID)
	assert.True(t, errors.Is(err, domain.ErrConflict), "una línea con recepciones no se borra")

	_, err = f.orders.UpdateItem(ctx, manager, po.ID, "otra", dto.UpdatePurchaseOrderItemRequest{QuantityOrdered: &qty})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestPurchaseOrderItems_AgregarYQuitar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPart(t, "OF-100", "0")
	po := f.createOrder(t, p.ID)

	got, err := f.orders.AddItem(ctx, manager, po.ID, dto.PurchaseOrderItemRequest{PartID: p.ID, QuantityOrdered: dec("2"), UnitCost: dec("5")})
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "110.00", got.TotalAmount.StringFixed(2))

	got, err = f.orders.DeleteItem(ctx, manager, po.ID, got.Items[1].ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "100.00", got.TotalAmount.StringFixed(2))

	ap, _ := f.store.Payables.GetByPurchaseOrder(ctx, po.ID)
	assert.Equal(t, "100.00", ap.CurrentAmount.StringFixed(2))

	_, err = f.orders.AddItem(ctx, receptionist, po.ID, dto.PurchaseOrderItemRequest{PartID: p.ID, QuantityOrdered: dec("1")})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestReceivePurchaseOrder_ParcialYLuegoTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPart(t, "OF-100", "2")
	po := f.createOrder(t, p.ID)
	itemID := po.Items[0].ID

	got, err := f.orders.Receive(ctx, manager, po.ID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: itemID, Quantity: dec("4")}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusDraft, got.Status, "recepción parcial no cierra la orden")
	assert.Equal(t, "4", got.Items[0].QuantityReceived.String())

	got, err = f.orders.Receive(ctx, manager, po.ID, dto.ReceivePurchaseOrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusReceived, got.Status)
	require.NotNil(t, got.ActualDelivery)
	assert.Equal(t, "10", got.Items[0].QuantityReceived.String())

	part, err := f.catalog.GetPart(ctx, manager, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "12", part.CurrentStock.String())

	movs, err := f.stock.ListMovements(ctx, manager, dto.StockMovementListRequest{MovementType: entity.MovementPurchase})
	require.NoError(t, err)
	require.Len(t, movs.Items, 2)
	for _, m := range movs.Items {
		assert.Equal(t, inventory.PurchaseOrderReference, m.ReferenceType)
		require.NotNil(t, m.ReferenceID)
		assert.Equal(t, po.ID, *m.ReferenceID)
	}

	_, err = f.orders.Receive(ctx, manager, po.ID, dto.ReceivePurchaseOrderRequest{})
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestReceivePurchaseOrder_LineaAjena(t *testing.T) {
	f := newFixture(t)
	p := f.createPart(t, "OF-100", "0")
	po := f.createOrder(t, p.ID)
	_, err := f.orders.Receive(context.Background(), manager, po.ID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: "otra", Quantity: dec("1")}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestDeletePurchaseOrder_SoloBorrador(t *testing.T) {
	f := newFixture(t)
	p := f.createPart(t, "OF-100", "0")
	po := f.createOrder(t, p.ID)
	sent := entity.POStatusSent
	_, err := f.orders.Update(context.Background(), manager, po.ID, dto.UpdatePurchaseOrderRequest{Status: &sent})
	require.NoError(t, err)
	assert.True(t, errors.Is(f.orders.Delete(context.Background(), manager, po.ID), domain.ErrConflict))
}

// ──────────────────────────────────────────────────────────────────────────────
// Estadísticas y alertas
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStockAlerts_MarcaReorden(t *testing.T) {
	f := newFixture(t)
	f.store.Stats.LowStock = []repository.LowStockItem{
		{PartID: "p-1", Name: "Pastillas", CurrentStock: dec("2"), MinimumStock: dec("5"), ReorderPoint: dec("3")},
		{PartID: "p-2", Name: "Bujías", CurrentStock: dec("4"), MinimumStock: dec("5"), ReorderPoint: dec("3")},
	}
	out, err := f.alerts.LowStockAlerts(context.Background(), manager)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.True(t, out.Alerts[0].NeedsReorder)
	assert.False(t, out.Alerts[1].NeedsReorder)
}

func TestInventoryStats_MapeaConteos(t *testing.T) {
	f := newFixture(t)
	f.store.Stats.Inventory = repository.InventoryStats{
		TotalParts: 40, LowStockParts: 3, OutOfStockParts: 1, ActiveSuppliers: 6,
		ByCategory: []repository.LabelCount{{Label: "Filtros", Count: 12}},
	}
	out, err := f.alerts.Stats(context.Background(), manager)
	require.NoError(t, err)
	assert.Equal(t, 40, out.TotalParts)
	assert.Equal(t, 6, out.TotalSuppliers)
	require.Len(t, out.PartsByCategory, 1)
	assert.Equal(t, "Filtros", out.PartsByCategory[0].Label)
	assert.NotNil(t, out.LowStockItems)

	_, err = f.alerts.Stats(context.Background(), receptionist)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}
