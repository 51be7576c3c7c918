package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/accounting"
	"github.com/jhoicas/taller-api/internal/application/apptest"
	"github.com/jhoicas/taller-api/internal/application/auth"
	"github.com/jhoicas/taller-api/internal/application/crm"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/application/reports"
	"github.com/jhoicas/taller-api/internal/application/sequence"
	"github.com/jhoicas/taller-api/internal/application/workshop"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/infrastructure/export"
	apphttp "github.com/jhoicas/taller-api/internal/interfaces/http"
	"github.com/jhoicas/taller-api/pkg/phone"
)

// ──────────────────────────────────────────────────────────────────────────────
// Aplicación completa sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminEmail    = "admin@taller.test"
	adminPassword = "clave-segura-123"
)

type testAPI struct {
	app   *fiber.App
	store *apptest.Store
}

// newTestAPI arma el router con los casos de uso reales y un usuario super_admin.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := apptest.NewStore()
	seq := sequence.NewGenerator(store, nil)
	phones := phone.NewNormalizer(phone.DefaultRegion)

	wsRepos := workshop.Repositories{
		JobOrders:       store.JobOrders,
		Items:           store.JobOrderItems,
		TechnicianTimes: store.TechnicianTimes,
		StatusHistory:   store.StatusHistory,
		Customers:       store.Customers,
		Vehicles:        store.Vehicles,
		Stats:           store.Stats,
	}
	accRepos := accounting.Repositories{
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
	dashboard := reports.NewDashboardUseCase(store.Stats)
	renderers := map[string]ports.Renderer{"csv": export.NewCSVRenderer()}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:          auth.NewAuthUseCase(store.Users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		UserUC:          auth.NewUserUseCase(store.Users),
		CustomerUC:      crm.NewCustomerUseCase(store.Customers, store.Communications, store.Stats, phones),
		AppointmentUC:   crm.NewAppointmentUseCase(store.Appointments, store.Customers),
		VehicleUC:       crm.NewVehicleUseCase(store.Vehicles, store.VehicleHistory, store.Customers, store.Stats),
		JobOrderUC:      workshop.NewJobOrderUseCase(wsRepos, store, seq),
		JobOrderItemUC:  workshop.NewItemUseCase(wsRepos),
		CatalogUC:       inventory.NewCatalogUseCase(store.Categories, store.Suppliers, store.Parts, store, phones),
		StockUC:         inventory.NewStockUseCase(store.StockMovements, store),
		PurchaseOrderUC: inventory.NewPurchaseOrderUseCase(store.PurchaseOrders, store.Suppliers, store.Parts, store, seq),
		Replenishment:   inventory.NewReplenishmentUseCase(store.Stats),
		InvoiceUC:       accounting.NewInvoiceUseCase(accRepos, store, seq),
		PaymentUC:       accounting.NewPaymentUseCase(accRepos, store, seq),
		ExpenseUC:       accounting.NewExpenseUseCase(store.Expenses, seq),
		LedgerUC:        accounting.NewLedgerUseCase(accRepos),
		DashboardUC:     dashboard,
		ReportUC:        reports.NewReportUseCase(store.Reports, dashboard, renderers, t.TempDir()),
		JWTSecret:       testJWTSecret,
	})

	hash, err := auth.HashPassword(adminPassword)
	require.NoError(t, err)
	require.NoError(t, store.Users.Create(context.Background(), &entity.User{
		ID:           testUserID,
		Email:        adminEmail,
		PasswordHash: hash,
		FirstName:    "Ana",
		LastName:     "Admin",
		Role:         entity.RoleSuperAdmin,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}))
	return &testAPI{app: app, store: store}
}

// call envía la petición con el token del rol indicado ("" = sin token).
func (a *testAPI) call(t *testing.T, method, path, role string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func validCustomer() map[string]any {
	return map[string]any{
		"first_name":    "Marta",
		"last_name":     "Ríos",
		"phone":         "(415) 555-2671",
		"address_line1": "Main St 100",
		"city":          "Springfield",
		"state":         "IL",
		"postal_code":   "62701",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidas_DevuelveToken(t *testing.T) {
	api := newTestAPI(t)
	resp := api.call(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": adminEmail, "password": adminPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	assert.NotEmpty(t, body["token"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, entity.RoleSuperAdmin, user["role"])
}

func TestLogin_PasswordIncorrecto_Retorna401(t *testing.T) {
	api := newTestAPI(t)
	resp := api.call(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": adminEmail, "password": "otra"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decode(t, resp)["code"])
}

func TestLogin_SinPassword_ErrorDeValidacionConCampo(t *testing.T) {
	api := newTestAPI(t)
	resp := api.call(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": adminEmail})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Equal(t, "password", body["field"])
}

func TestMe_DevuelveUsuarioDelToken(t *testing.T) {
	api := newTestAPI(t)
	resp := api.call(t, http.MethodGet, "/api/auth/me", entity.RoleSuperAdmin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, adminEmail, decode(t, resp)["email"])
}

// receptionist no administra usuarios: listado vacío, detalle 404 y escrituras 403.
func TestUsuarios_RecepcionistaSinAcceso(t *testing.T) {
	api := newTestAPI(t)
	resp := api.call(t, http.MethodGet, "/api/users", entity.RoleReceptionist, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items, ok := decode(t, resp)["items"].([]any)
	require.True(t, ok, "items nunca es null")
	assert.Empty(t, items)

	resp = api.call(t, http.MethodGet, "/api/users/"+testUserID, entity.RoleReceptionist, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = api.call(t, http.MethodPost, "/api/users", entity.RoleReceptionist, map[string]string{
		"email": "nuevo@taller.test", "password": "clave-segura-123", "first_name": "N", "last_name": "N", "role": entity.RoleTechnician,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = api.call(t, http.MethodGet, "/api/users", entity.RoleSuperAdmin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items, _ = decode(t, resp)["items"].([]any)
	assert.Len(t, items, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// CRM
// ──────────────────────────────────────────────────────────────────────────────

func TestClientes_CrearYConsultar(t *testing.T) {
	api := newTestAPI(t)
	resp := api.call(t, http.MethodPost, "/api/customers", entity.RoleReceptionist, validCustomer())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode(t, resp)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "USA", created["country"], "país por defecto")

	resp = api.call(t, http.MethodGet, "/api/customers/"+id, entity.RoleReceptionist, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Marta", decode(t, resp)["first_name"])
}

func TestClientes_IDMalformado_Retorna404(t *testing.T) {
	api := newTestAPI(t)
	resp := api.call(t, http.MethodGet, "/api/customers/no-es-uuid", entity.RoleReceptionist, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode(t, resp)["code"])
}

func TestClientes_JSONInvalido_Retorna400InvalidBody(t *testing.T) {
	api := newTestAPI(t)
	resp := api.call(t, http.MethodPost, "/api/customers", entity.RoleReceptionist, "{no es json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode(t, resp)["code"])
}

// technician no tiene CRM: el listado sale vacío y las estadísticas con 403.
func TestClientes_TecnicoSinAcceso(t *testing.T) {
	api := newTestAPI(t)
	resp := api.call(t, http.MethodPost, "/api/customers", entity.RoleReceptionist, validCustomer())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = api.call(t, http.MethodGet, "/api/customers", entity.RoleTechnician, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items, ok := decode(t, resp)["items"].([]any)
	require.True(t, ok, "items nunca es null")
	assert.Empty(t, items)

	resp = api.call(t, http.MethodGet, "/api/customers/stats", entity.RoleTechnician, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Taller
// ──────────────────────────────────────────────────────────────────────────────

func TestOrdenes_CrearCambiarEstadoEHistorial(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()
	customerID := "11111111-1111-1111-1111-111111111111"
	vehicleID := "22222222-2222-2222-2222-222222222222"
	require.NoError(t, api.store.Customers.Create(ctx, &entity.Customer{ID: customerID, FirstName: "Luis", LastName: "Mora", IsActive: true}))
	require.NoError(t, api.store.Vehicles.Create(ctx, &entity.Vehicle{ID: vehicleID, Make: "Toyota", Model: "Corolla", Year: 2018, CustomerID: customerID, IsActive: true}))

	resp := api.call(t, http.MethodPost, "/api/job-orders", entity.RoleReceptionist, map[string]any{
		"customer_id":  customerID,
		"vehicle_id":   vehicleID,
		"service_type": "Frenos",
		"description":  "Cambio de pastillas",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	order := decode(t, resp)
	id, _ := order["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, entity.JobStatusReceived, order["status"])
	assert.Regexp(t, `^JO\d{6}0001$`, order["job_number"])

	resp = api.call(t, http.MethodPost, "/api/job-orders/"+id+"/update-status", entity.RoleTechnician, map[string]string{"status": "in_repair", "notes": "desarme"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "in_repair", decode(t, resp)["status"])

	resp = api.call(t, http.MethodGet, "/api/job-orders/"+id+"/history", entity.RoleTechnician, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	var history []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&history))
	require.Len(t, history, 2)
	assert.Nil(t, history[0]["old_status"], "el registro inicial no tiene estado previo")
	assert.Equal(t, "received", history[1]["old_status"])
	assert.Equal(t, "in_repair", history[1]["new_status"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Contabilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestPagos_MontoCero_ErrorDeValidacion(t *testing.T) {
	api := newTestAPI(t)
	resp := api.call(t, http.MethodPost, "/api/payments", entity.RoleAccountant, map[string]any{
		"invoice_id":     "33333333-3333-3333-3333-333333333333",
		"amount":         "0",
		"payment_method": "cash",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Equal(t, "amount", body["field"])
}

const (
	customerID = "44444444-4444-4444-4444-444444444444"
	supplierID = "55555555-5555-5555-5555-555555555555"
	partID     = "66666666-6666-6666-6666-666666666666"
)

func amount(t *testing.T, v any) string {
	t.Helper()
	raw, ok := v.(string)
	require.True(t, ok, "los montos viajan como string: %v", v)
	return decimal.RequireFromString(raw).StringFixed(2)
}

func itemIDs(t *testing.T, body map[string]any) []string {
	t.Helper()
	items, _ := body["items"].([]any)
	ids := make([]string, 0, len(items))
	for _, raw := range items {
		it, ok := raw.(map[string]any)
		require.True(t, ok)
		ids = append(ids, it["id"].(string))
	}
	return ids
}

func (a *testAPI) createInvoice(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	require.NoError(t, a.store.Customers.Create(context.Background(), &entity.Customer{ID: customerID, FirstName: "Ana", LastName: "Soto", IsActive: true}))
	body["customer_id"] = customerID
	resp := a.call(t, http.MethodPost, "/api/invoices", entity.RoleAccountant, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode(t, resp)
}

func TestFacturas_EditarYBorrarLinea(t *testing.T) {
	api := newTestAPI(t)
	inv := api.createInvoice(t, map[string]any{
		"status": "sent",
		"items": []map[string]any{
			{"description": "Pastillas", "quantity": "2", "unit_price": "45"},
			{"description": "Mano de obra", "quantity": "1", "unit_price": "60"},
		},
	})
	id := inv["id"].(string)
	ids := itemIDs(t, inv)
	require.Len(t, ids, 2)
	assert.Equal(t, "150.00", amount(t, inv["total_amount"]))

	resp := api.call(t, http.MethodPut, "/api/invoices/"+id+"/items/"+ids[0], entity.RoleAccountant, map[string]any{"quantity": "3"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "195.00", amount(t, body["subtotal"]))
	assert.Equal(t, "195.00", amount(t, body["balance_due"]))

	resp = api.call(t, http.MethodDelete, "/api/invoices/"+id+"/items/"+ids[1], entity.RoleAccountant, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decode(t, resp)
	assert.Equal(t, "135.00", amount(t, body["total_amount"]))
	assert.Len(t, itemIDs(t, body), 1)

	resp = api.call(t, http.MethodPut, "/api/invoices/"+id+"/items/"+ids[1], entity.RoleAccountant, map[string]any{"quantity": "1"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestPagos_PendienteLuegoCompletado(t *testing.T) {
	api := newTestAPI(t)
	inv := api.createInvoice(t, map[string]any{"status": "sent", "subtotal": "300"})

	resp := api.call(t, http.MethodPost, "/api/payments", entity.RoleAccountant, map[string]any{
		"invoice_id":     inv["id"],
		"amount":         "300",
		"payment_method": "check",
		"status":         "pending",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode(t, resp)
	payment, ok := created["payment"].(map[string]any)
	require.True(t, ok)
	invoice, _ := created["invoice"].(map[string]any)
	assert.Equal(t, "300.00", amount(t, invoice["balance_due"]))

	resp = api.call(t, http.MethodPut, "/api/payments/"+payment["id"].(string), entity.RoleAccountant, map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	invoice, _ = body["invoice"].(map[string]any)
	assert.Equal(t, entity.InvoiceStatusPaid, invoice["status"])
	assert.Equal(t, "0.00", amount(t, invoice["balance_due"]))
}

func TestCobrarFactura_Inexistente_Retorna404(t *testing.T) {
	api := newTestAPI(t)
	resp := api.call(t, http.MethodPost, "/api/invoices/77777777-7777-7777-7777-777777777777/process-payment", entity.RoleAccountant, map[string]any{
		"amount":         "10",
		"payment_method": "cash",
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode(t, resp)["code"])
}

func TestOrdenesDeCompra_EditarYBorrarLinea(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()
	require.NoError(t, api.store.Suppliers.Create(ctx, &entity.Supplier{ID: supplierID, Name: "AutoParts", IsActive: true}))
	require.NoError(t, api.store.Parts.Create(ctx, &entity.Part{ID: partID, SKU: "BRK-1", Name: "Pastillas", IsActive: true}))

	resp := api.call(t, http.MethodPost, "/api/purchase-orders", entity.RoleInventoryManager, map[string]any{
		"supplier_id": supplierID,
		"items":       []map[string]any{{"part_id": partID, "quantity_ordered": "10", "unit_cost": "8.50"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	po := decode(t, resp)
	id := po["id"].(string)
	ids := itemIDs(t, po)
	require.Len(t, ids, 1)

	resp = api.call(t, http.MethodPut, "/api/purchase-orders/"+id+"/items/"+ids[0], entity.RoleInventoryManager, map[string]any{"unit_cost": "9"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "90.00", amount(t, decode(t, resp)["total_amount"]))

	resp = api.call(t, http.MethodPost, "/api/purchase-orders/"+id+"/items", entity.RoleInventoryManager, map[string]any{"part_id": partID, "quantity_ordered": "2", "unit_cost": "5"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "100.00", amount(t, decode(t, resp)["total_amount"]))

	resp = api.call(t, http.MethodDelete, "/api/purchase-orders/"+id+"/items/"+ids[0], entity.RoleInventoryManager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "10.00", amount(t, decode(t, resp)["total_amount"]))

	resp = api.call(t, http.MethodPut, "/api/purchase-orders/"+id+"/items/"+ids[0], entity.RoleAccountant, map[string]any{"unit_cost": "1"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestReportes_GenerarCSVYDescargar(t *testing.T) {
	api := newTestAPI(t)
	resp := api.call(t, http.MethodPost, "/api/reports/generate", entity.RoleSuperAdmin, map[string]string{"report_type": "inventory", "format": "csv"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	report, ok := decode(t, resp)["report"].(map[string]any)
	require.True(t, ok)
	id, _ := report["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, entity.ReportCompleted, report["generation_status"])

	resp = api.call(t, http.MethodGet, "/api/reports/"+id+"/download", entity.RoleSuperAdmin, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestReportes_JSONNoTieneArchivo(t *testing.T) {
	api := newTestAPI(t)
	resp := api.call(t, http.MethodPost, "/api/reports/generate", entity.RoleSuperAdmin, map[string]string{"report_type": "inventory"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	report, _ := decode(t, resp)["report"].(map[string]any)
	id, _ := report["id"].(string)

	resp = api.call(t, http.MethodGet, "/api/reports/"+id+"/download", entity.RoleSuperAdmin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReportes_FormatoDesconocido_ErrorDeValidacion(t *testing.T) {
	api := newTestAPI(t)
	resp := api.call(t, http.MethodPost, "/api/reports/generate", entity.RoleSuperAdmin, map[string]string{"report_type": "inventory", "format": "pdf"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "format", decode(t, resp)["field"])
}
