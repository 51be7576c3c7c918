package reports_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/apptest"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/application/reports"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var (
	accountant   = entity.Actor{UserID: "acc-1", Role: entity.RoleAccountant}
	receptionist = entity.Actor{UserID: "rec-1", Role: entity.RoleReceptionist}
	clock        = func() time.Time { return time.Date(2024, time.June, 15, 8, 0, 0, 0, time.UTC) }
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakeRenderer guarda el último documento y devuelve un cuerpo fijo.
type fakeRenderer struct {
	err  error
	last ports.Document
}

func (r *fakeRenderer) Render(doc ports.Document) ([]byte, error) {
	r.last = doc
	if r.err != nil {
		return nil, r.err
	}
	return []byte("fecha,total\n"), nil
}
func (r *fakeRenderer) Extension() string   { return "csv" }
func (r *fakeRenderer) ContentType() string { return "text/csv" }

type fixture struct {
	stats     *apptest.StatsRepo
	reportsDB *apptest.ReportRepo
	csv       *fakeRenderer
	dashboard *reports.DashboardUseCase
	reports   *reports.ReportUseCase
	dir       string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := apptest.NewStore()
	stats := &apptest.StatsRepo{
		Customer:  repository.CustomerStats{TotalCustomers: 12, ActiveCustomers: 10, NewCustomers: 3},
		Vehicle:   repository.VehicleStats{TotalVehicles: 15, ActiveVehicles: 14},
		JobOrder:  repository.JobOrderStats{Total: 9, Pending: 2, InRepair: 3, Delivered: 4, AvgRepairHours: dec("5.256")},
		Revenue:   repository.RevenueStats{TotalRevenue: dec("1500"), PeriodRevenue: dec("420.5"), TotalInvoices: 6, PendingInvoices: 2, AvgInvoiceValue: dec("250")},
		Inventory: repository.InventoryStats{TotalParts: 40, LowStockParts: 5, OutOfStockParts: 1},
		Daily: []repository.DailySales{
			{Day: time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), TotalAmount: dec("300"), PaymentCount: 2},
		},
		Top:     []repository.CustomerSpend{{CustomerID: "c-1", FirstName: "Ana", LastName: "Soto", TotalSpent: dec("300"), PaymentCount: 2}},
		Methods: []repository.MethodTotal{{PaymentMethod: entity.PaymentCash, TotalAmount: dec("300"), Count: 2}},
		LowStock: []repository.LowStockItem{
			{PartID: "p-1", Name: "Filtro", SKU: "FLT-1", CurrentStock: dec("2"), MinimumStock: dec("5"), ReorderPoint: dec("3")},
			{PartID: "p-2", Name: "Bujía", SKU: "BUJ-1", CurrentStock: dec("4"), MinimumStock: dec("5"), ReorderPoint: dec("3")},
		},
		Technicians: []repository.TechnicianJobs{{TechnicianID: "t-1", FirstName: "Luis", LastName: "Pérez", TotalJobs: 4, CompletedJobs: 3}},
		Hours:       []repository.TechnicianHours{{TechnicianID: "t-1", FirstName: "Luis", TotalHours: dec("12.5"), JobsCount: 3}},
	}
	dir := t.TempDir()
	csv := &fakeRenderer{}
	dashboard := reports.NewDashboardUseCase(stats).WithClock(clock)
	return &fixture{
		stats:     stats,
		reportsDB: store.Reports,
		csv:       csv,
		dashboard: dashboard,
		reports:   reports.NewReportUseCase(store.Reports, dashboard, map[string]ports.Renderer{entity.FormatCSV: csv}, dir).WithClock(clock),
		dir:       dir,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_ConsolidaBloques(t *testing.T) {
	f := newFixture(t)
	out, err := f.dashboard.Dashboard(context.Background(), accountant)
	require.NoError(t, err)

	assert.Equal(t, "2024-06-01", f.stats.LastSince.Format(dto.DateLayout), "nuevos del mes desde el día 1")
	assert.Equal(t, "June 2024", out.DateLabel)
	assert.Equal(t, 3, out.Customers.NewThisMonth)
	assert.Equal(t, 14, out.Vehicles.Active)
	assert.Equal(t, 4, out.JobOrders.Completed)
	assert.Equal(t, "420.5", out.Financial.MonthlyRevenue.String())
	assert.Equal(t, "5.26", out.Performance.AvgRepairTimeHours.String())
	assert.Equal(t, 1, out.Inventory.OutOfStockParts)
	assert.EqualValues(t, 5, f.stats.Calls.Load())
}

func TestDashboard_SinAcceso(t *testing.T) {
	f := newFixture(t)
	_, err := f.dashboard.Dashboard(context.Background(), receptionist)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestDashboard_PropagaError(t *testing.T) {
	f := newFixture(t)
	f.stats.Err = errors.New("conexión perdida")
	_, err := f.dashboard.Dashboard(context.Background(), accountant)
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes de consulta
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesReport_UltimosTreintaDiasPorDefecto(t *testing.T) {
	f := newFixture(t)
	out, err := f.dashboard.SalesReport(context.Background(), accountant, dto.SalesReportRequest{})
	require.NoError(t, err)

	assert.Equal(t, "2024-05-16", out.Period.StartDate)
	assert.Equal(t, "2024-06-15", out.Period.EndDate)
	assert.Equal(t, "2024-05-16", f.stats.LastFrom.Format(dto.DateLayout))
	assert.Equal(t, "2024-06-15 23:59:59", f.stats.LastTo.Format("2006-01-02 15:04:05"), "end_date inclusivo")

	require.Len(t, out.SalesData, 1)
	assert.Equal(t, "2024-06-10", out.SalesData[0].Date)
	require.Len(t, out.TopCustomers, 1)
	assert.Equal(t, "Ana Soto", out.TopCustomers[0].CustomerName)
	require.Len(t, out.PaymentMethods, 1)
	assert.Equal(t, entity.PaymentCash, out.PaymentMethods[0].PaymentMethod)
}

func TestSalesReport_FechasExplicitas(t *testing.T) {
	f := newFixture(t)
	out, err := f.dashboard.SalesReport(context.Background(), accountant, dto.SalesReportRequest{StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", out.Period.StartDate)
	assert.Equal(t, "2024-01-31", f.stats.LastTo.Format(dto.DateLayout))
}

func TestSalesReport_FechasInvalidas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.dashboard.SalesReport(ctx, accountant, dto.SalesReportRequest{StartDate: "15/06/2024"})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "start_date", verr.Field)

	_, err = f.dashboard.SalesReport(ctx, accountant, dto.SalesReportRequest{StartDate: "2024-06-10", EndDate: "2024-06-01"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Zero(t, f.stats.Calls.Load(), "no consulta con período inválido")
}

func TestInventoryReport_MarcaReorden(t *testing.T) {
	f := newFixture(t)
	out, err := f.dashboard.InventoryReport(context.Background(), accountant)
	require.NoError(t, err)
	require.Len(t, out.LowStockItems, 2)
	assert.True(t, out.LowStockItems[0].NeedsReorder)
	assert.False(t, out.LowStockItems[1].NeedsReorder)
	assert.NotNil(t, out.MostUsedParts, "listas vacías, no nulas")
}

func TestTechnicianReport_NombresCompletos(t *testing.T) {
	f := newFixture(t)
	out, err := f.dashboard.TechnicianReport(context.Background(), accountant)
	require.NoError(t, err)
	require.Len(t, out.TechnicianStats, 1)
	assert.Equal(t, "Luis Pérez", out.TechnicianStats[0].TechnicianName)
	assert.Nil(t, out.TechnicianStats[0].AvgCompletionTimeHours)
	require.Len(t, out.TimeTracking, 1)
	assert.Equal(t, "Luis", out.TimeTracking[0].TechnicianName)
}

// ──────────────────────────────────────────────────────────────────────────────
// Generate
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerate_VentasJSON(t *testing.T) {
	f := newFixture(t)
	out, err := f.reports.Generate(context.Background(), accountant, dto.GenerateReportRequest{
		ReportType: entity.ReportSales,
		Parameters: json.RawMessage(`{"start_date":"2024-06-01","end_date":"2024-06-15"}`),
	})
	require.NoError(t, err)

	assert.Equal(t, "Report generated successfully", out.Message)
	assert.Equal(t, "Sales Report - 2024-06-15 08:00", out.Report.Name)
	assert.Equal(t, entity.FormatJSON, out.Report.Format)
	assert.Equal(t, entity.ReportCompleted, out.Report.GenerationStatus)
	assert.True(t, out.Report.IsGenerated)
	assert.False(t, out.Report.HasFile)
	require.NotNil(t, out.Report.CreatedBy)
	assert.Equal(t, accountant.UserID, *out.Report.CreatedBy)

	sales, ok := out.Data.(*dto.SalesReportDTO)
	require.True(t, ok)
	assert.Equal(t, "2024-06-01", sales.Period.StartDate)
}

func TestGenerate_CSVEscribeArchivo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	out, err := f.reports.Generate(ctx, accountant, dto.GenerateReportRequest{ReportType: entity.ReportInventory, Format: entity.FormatCSV})
	require.NoError(t, err)
	assert.True(t, out.Report.HasFile)
	assert.Equal(t, out.Report.Name, f.csv.last.Title)
	assert.Len(t, f.csv.last.Tables, 4)

	file, err := f.reports.Download(ctx, accountant, out.Report.ID)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "Inventory Report - 2024-06-15 08:00.csv", file.FileName)
	body, err := os.ReadFile(file.Path)
	require.NoError(t, err)
	assert.Equal(t, "fecha,total\n", string(body))
}

func TestGenerate_TipoSinConsultaPropiaUsaDashboard(t *testing.T) {
	f := newFixture(t)
	out, err := f.reports.Generate(context.Background(), accountant, dto.GenerateReportRequest{ReportType: entity.ReportFinancial})
	require.NoError(t, err)
	_, ok := out.Data.(*dto.DashboardStatsDTO)
	assert.True(t, ok)
}

func TestGenerate_FalloMarcaFailed(t *testing.T) {
	f := newFixture(t)
	f.stats.Err = errors.New("timeout")
	ctx := context.Background()

	_, err := f.reports.Generate(ctx, accountant, dto.GenerateReportRequest{ReportType: entity.ReportTechnician})
	assert.True(t, errors.Is(err, domain.ErrReportFailed))

	list, err := f.reports.List(ctx, accountant, dto.ReportListRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, entity.ReportFailed, list.Items[0].GenerationStatus)
	assert.False(t, list.Items[0].IsGenerated)
}

func TestGenerate_FalloDeRenderMarcaFailed(t *testing.T) {
	f := newFixture(t)
	f.csv.err = errors.New("sin fuentes")
	_, err := f.reports.Generate(context.Background(), accountant, dto.GenerateReportRequest{ReportType: entity.ReportSales, Format: entity.FormatCSV})
	assert.True(t, errors.Is(err, domain.ErrReportFailed))
}

// completionFails rechaza solo la escritura que marca el reporte como completed.
type completionFails struct {
	*apptest.ReportRepo
}

func (r completionFails) Update(ctx context.Context, rep *entity.Report) error {
	if rep.GenerationStatus == entity.ReportCompleted {
		return errors.New("conexión perdida")
	}
	return r.ReportRepo.Update(ctx, rep)
}

func TestGenerate_FalloAlCompletarMarcaFailedYBorraArchivo(t *testing.T) {
	f := newFixture(t)
	uc := reports.NewReportUseCase(completionFails{f.reportsDB}, f.dashboard,
		map[string]ports.Renderer{entity.FormatCSV: f.csv}, f.dir).WithClock(clock)
	ctx := context.Background()

	_, err := uc.Generate(ctx, accountant, dto.GenerateReportRequest{ReportType: entity.ReportInventory, Format: entity.FormatCSV})
	assert.True(t, errors.Is(err, domain.ErrReportFailed))

	list, err := f.reports.List(ctx, accountant, dto.ReportListRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, entity.ReportFailed, list.Items[0].GenerationStatus)
	assert.False(t, list.Items[0].HasFile)

	entries, err := os.ReadDir(f.dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no debe quedar archivo huérfano")
}

func TestGenerate_ParametrosInvalidosMarcaFailed(t *testing.T) {
	f := newFixture(t)
	_, err := f.reports.Generate(context.Background(), accountant, dto.GenerateReportRequest{
		ReportType: entity.ReportSales,
		Parameters: json.RawMessage(`{"start_date":"ayer"}`),
	})
	assert.True(t, errors.Is(err, domain.ErrReportFailed))
}

func TestGenerate_FormatoSinRenderer(t *testing.T) {
	f := newFixture(t)
	_, err := f.reports.Generate(context.Background(), accountant, dto.GenerateReportRequest{ReportType: entity.ReportSales, Format: entity.FormatPDF})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	rows, _ := f.reportsDB.List(context.Background(), "", repository.Page{Limit: 10})
	assert.Empty(t, rows, "no se crea registro")
}

func TestGenerate_SinAcceso(t *testing.T) {
	f := newFixture(t)
	_, err := f.reports.Generate(context.Background(), receptionist, dto.GenerateReportRequest{ReportType: entity.ReportSales})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

// ──────────────────────────────────────────────────────────────────────────────
// Consulta de registros
// ──────────────────────────────────────────────────────────────────────────────

func TestDownload_SinArchivo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	out, err := f.reports.Generate(ctx, accountant, dto.GenerateReportRequest{ReportType: entity.ReportSales})
	require.NoError(t, err)

	_, err = f.reports.Download(ctx, accountant, out.Report.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "un reporte json no tiene archivo")

	_, err = f.reports.Download(ctx, receptionist, out.Report.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestList_FiltraPorTipoYVacioSinAcceso(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.reports.Generate(ctx, accountant, dto.GenerateReportRequest{ReportType: entity.ReportSales})
	require.NoError(t, err)
	_, err = f.reports.Generate(ctx, accountant, dto.GenerateReportRequest{ReportType: entity.ReportInventory})
	require.NoError(t, err)

	list, err := f.reports.List(ctx, accountant, dto.ReportListRequest{ReportType: entity.ReportInventory})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, entity.ReportInventory, list.Items[0].ReportType)

	got, err := f.reports.GetByID(ctx, accountant, list.Items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, list.Items[0].Name, got.Name)

	denied, err := f.reports.List(ctx, receptionist, dto.ReportListRequest{})
	require.NoError(t, err)
	assert.Empty(t, denied.Items)
}
