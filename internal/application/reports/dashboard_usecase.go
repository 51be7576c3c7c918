// Package reports contiene el dashboard, los reportes de ventas, inventario y técnicos,
// y la generación de reportes a archivo.
package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/access"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

const (
	salesDefaultDays  = 30 // período por defecto del reporte de ventas
	salesTopCustomers = 10
	inventoryMostUsed = 10
)

// DashboardUseCase consultas agregadas de solo lectura sobre el estado actual.
//
// Fuente de datos: StatsRepository. No accede a las tablas directamente.
type DashboardUseCase struct {
	stats repository.StatsRepository
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(stats repository.StatsRepository) *DashboardUseCase {
	return &DashboardUseCase{stats: stats, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

type result[T any] struct {
	v   T
	err error
}

// async ejecuta fn en una goroutine y entrega su resultado por un canal con buffer.
func async[T any](fn func() (T, error)) <-chan result[T] {
	ch := make(chan result[T], 1)
	go func() {
		v, err := fn()
		ch <- result[T]{v, err}
	}()
	return ch
}

// Dashboard construye el resumen general. Las cinco consultas corren en paralelo;
// "del mes" significa desde el día 1 del mes en curso.
func (uc *DashboardUseCase) Dashboard(ctx context.Context, actor entity.Actor) (*dto.DashboardStatsDTO, error) {
	if err := access.Check(actor.Role, access.Reports); err != nil {
		return nil, err
	}
	now := uc.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	customersCh := async(func() (repository.CustomerStats, error) { return uc.stats.CustomerStats(ctx, monthStart) })
	vehiclesCh := async(func() (repository.VehicleStats, error) { return uc.stats.VehicleStats(ctx) })
	jobsCh := async(func() (repository.JobOrderStats, error) { return uc.stats.JobOrderStats(ctx) })
	revenueCh := async(func() (repository.RevenueStats, error) { return uc.stats.RevenueStats(ctx, monthStart) })
	inventoryCh := async(func() (repository.InventoryStats, error) { return uc.stats.InventoryStats(ctx) })

	customers := <-customersCh
	vehicles := <-vehiclesCh
	jobs := <-jobsCh
	revenue := <-revenueCh
	inventory := <-inventoryCh

	for _, err := range []error{customers.err, vehicles.err, jobs.err, revenue.err, inventory.err} {
		if err != nil {
			return nil, fmt.Errorf("reports: dashboard: %w", err)
		}
	}

	out := &dto.DashboardStatsDTO{DateLabel: now.Format("January 2006")}
	out.Customers.Total = customers.v.TotalCustomers
	out.Customers.Active = customers.v.ActiveCustomers
	out.Customers.NewThisMonth = customers.v.NewCustomers
	out.Vehicles.Total = vehicles.v.TotalVehicles
	out.Vehicles.Active = vehicles.v.ActiveVehicles
	out.JobOrders.Total = jobs.v.Total
	out.JobOrders.Pending = jobs.v.Pending
	out.JobOrders.InRepair = jobs.v.InRepair
	out.JobOrders.Completed = jobs.v.Delivered
	out.Financial.TotalRevenue = revenue.v.TotalRevenue.Round(2)
	out.Financial.MonthlyRevenue = revenue.v.PeriodRevenue.Round(2)
	out.Financial.TotalInvoices = revenue.v.TotalInvoices
	out.Financial.PendingInvoices = revenue.v.PendingInvoices
	out.Financial.AvgInvoiceValue = revenue.v.AvgInvoiceValue.Round(2)
	out.Inventory.TotalParts = inventory.v.TotalParts
	out.Inventory.LowStockParts = inventory.v.LowStockParts
	out.Inventory.OutOfStockParts = inventory.v.OutOfStockParts
	out.Performance.AvgRepairTimeHours = jobs.v.AvgRepairHours.Round(2)
	return out, nil
}

// SalesReport cobros completed del período agrupados por día, top clientes y medios de pago.
// Sin fechas se toman los últimos 30 días hasta hoy; ambos extremos son inclusivos.
func (uc *DashboardUseCase) SalesReport(ctx context.Context, actor entity.Actor, in dto.SalesReportRequest) (*dto.SalesReportDTO, error) {
	if err := access.Check(actor.Role, access.Reports); err != nil {
		return nil, err
	}
	start, end, err := uc.parsePeriod(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	// fin del día para que end_date sea inclusivo
	to := end.Add(24*time.Hour - time.Nanosecond)

	dailyCh := async(func() ([]repository.DailySales, error) { return uc.stats.SalesByDay(ctx, start, to) })
	topCh := async(func() ([]repository.CustomerSpend, error) {
		return uc.stats.TopCustomers(ctx, start, to, salesTopCustomers)
	})
	methodsCh := async(func() ([]repository.MethodTotal, error) { return uc.stats.PaymentMethods(ctx, start, to) })

	daily, top, methods := <-dailyCh, <-topCh, <-methodsCh
	if daily.err != nil {
		return nil, fmt.Errorf("reports: ventas por día: %w", daily.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("reports: top clientes: %w", top.err)
	}
	if methods.err != nil {
		return nil, fmt.Errorf("reports: medios de pago: %w", methods.err)
	}

	out := &dto.SalesReportDTO{
		Period:         dto.PeriodDTO{StartDate: start.Format(dto.DateLayout), EndDate: end.Format(dto.DateLayout)},
		SalesData:      make([]dto.DailySalesDTO, 0, len(daily.v)),
		TopCustomers:   make([]dto.TopCustomerDTO, 0, len(top.v)),
		PaymentMethods: make([]dto.PaymentMethodDTO, 0, len(methods.v)),
	}
	for _, d := range daily.v {
		out.SalesData = append(out.SalesData, dto.DailySalesDTO{
			Date:         d.Day.Format(dto.DateLayout),
			TotalAmount:  d.TotalAmount,
			PaymentCount: d.PaymentCount,
		})
	}
	for _, c := range top.v {
		out.TopCustomers = append(out.TopCustomers, dto.TopCustomerDTO{
			CustomerID:   c.CustomerID,
			CustomerName: fullName(c.FirstName, c.LastName),
			TotalSpent:   c.TotalSpent,
			PaymentCount: c.PaymentCount,
		})
	}
	for _, m := range methods.v {
		out.PaymentMethods = append(out.PaymentMethods, dto.PaymentMethodDTO{
			PaymentMethod: m.PaymentMethod,
			TotalAmount:   m.TotalAmount,
			Count:         m.Count,
		})
	}
	return out, nil
}

// InventoryReport valor de stock por categoría y proveedor, stock bajo y repuestos más usados.
func (uc *DashboardUseCase) InventoryReport(ctx context.Context, actor entity.Actor) (*dto.InventoryReportDTO, error) {
	if err := access.Check(actor.Role, access.Reports); err != nil {
		return nil, err
	}
	categoriesCh := async(func() ([]repository.CategoryValue, error) { return uc.stats.PartsByCategory(ctx) })
	lowCh := async(func() ([]repository.LowStockItem, error) { return uc.stats.LowStockItems(ctx, 0) })
	usedCh := async(func() ([]repository.PartUsage, error) { return uc.stats.MostUsedParts(ctx, inventoryMostUsed) })
	suppliersCh := async(func() ([]repository.SupplierValue, error) { return uc.stats.SupplierPerformance(ctx) })

	categories, low, used, suppliers := <-categoriesCh, <-lowCh, <-usedCh, <-suppliersCh
	for _, err := range []error{categories.err, low.err, used.err, suppliers.err} {
		if err != nil {
			return nil, fmt.Errorf("reports: inventario: %w", err)
		}
	}

	out := &dto.InventoryReportDTO{
		PartsByCategory:     make([]dto.CategoryValueDTO, 0, len(categories.v)),
		LowStockItems:       make([]dto.LowStockItemDTO, 0, len(low.v)),
		MostUsedParts:       make([]dto.PartUsageDTO, 0, len(used.v)),
		SupplierPerformance: make([]dto.SupplierValueDTO, 0, len(suppliers.v)),
	}
	for _, c := range categories.v {
		out.PartsByCategory = append(out.PartsByCategory, dto.CategoryValueDTO{Category: c.Category, Count: c.Count, TotalValue: c.TotalValue})
	}
	for _, l := range low.v {
		out.LowStockItems = append(out.LowStockItems, dto.LowStockItemDTO{
			PartID:       l.PartID,
			PartName:     l.Name,
			SKU:          l.SKU,
			CurrentStock: l.CurrentStock,
			MinimumStock: l.MinimumStock,
			Category:     l.Category,
			Supplier:     l.Supplier,
			NeedsReorder: l.CurrentStock.LessThanOrEqual(l.ReorderPoint),
		})
	}
	for _, u := range used.v {
		out.MostUsedParts = append(out.MostUsedParts, dto.PartUsageDTO{Name: u.Name, TotalQuantity: u.TotalQuantity, TotalValue: u.TotalValue})
	}
	for _, s := range suppliers.v {
		out.SupplierPerformance = append(out.SupplierPerformance, dto.SupplierValueDTO{Supplier: s.Supplier, PartsCount: s.PartsCount, TotalValue: s.TotalValue})
	}
	return out, nil
}

// TechnicianReport órdenes asignadas y horas registradas por técnico.
func (uc *DashboardUseCase) TechnicianReport(ctx context.Context, actor entity.Actor) (*dto.TechnicianReportDTO, error) {
	if err := access.Check(actor.Role, access.Reports); err != nil {
		return nil, err
	}
	jobsCh := async(func() ([]repository.TechnicianJobs, error) { return uc.stats.TechnicianJobStats(ctx) })
	hoursCh := async(func() ([]repository.TechnicianHours, error) { return uc.stats.TimeTracking(ctx) })
	jobs, hours := <-jobsCh, <-hoursCh
	if jobs.err != nil {
		return nil, fmt.Errorf("reports: técnicos: %w", jobs.err)
	}
	if hours.err != nil {
		return nil, fmt.Errorf("reports: horas: %w", hours.err)
	}

	out := &dto.TechnicianReportDTO{
		TechnicianStats: make([]dto.TechnicianStatDTO, 0, len(jobs.v)),
		TimeTracking:    make([]dto.TimeTrackingDTO, 0, len(hours.v)),
	}
	for _, j := range jobs.v {
		out.TechnicianStats = append(out.TechnicianStats, dto.TechnicianStatDTO{
			TechnicianID:           j.TechnicianID,
			TechnicianName:         fullName(j.FirstName, j.LastName),
			TotalJobs:              j.TotalJobs,
			CompletedJobs:          j.CompletedJobs,
			AvgCompletionTimeHours: j.AvgCompletionHours,
		})
	}
	for _, h := range hours.v {
		out.TimeTracking = append(out.TimeTracking, dto.TimeTrackingDTO{
			TechnicianID:   h.TechnicianID,
			TechnicianName: fullName(h.FirstName, h.LastName),
			TotalHours:     h.TotalHours,
			JobsCount:      h.JobsCount,
		})
	}
	return out, nil
}

// parsePeriod fechas YYYY-MM-DD en la zona del reloj. Devuelve el inicio de ambos días.
func (uc *DashboardUseCase) parsePeriod(startStr, endStr string) (start, end time.Time, err error) {
	now := uc.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	end = today
	if endStr != "" {
		end, err = time.ParseInLocation(dto.DateLayout, endStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, domain.NewValidationError("end_date", "formato esperado YYYY-MM-DD")
		}
	}
	start = today.AddDate(0, 0, -salesDefaultDays)
	if startStr != "" {
		start, err = time.ParseInLocation(dto.DateLayout, startStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, domain.NewValidationError("start_date", "formato esperado YYYY-MM-DD")
		}
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, domain.NewValidationError("start_date", "no puede ser posterior a end_date")
	}
	return start, end, nil
}

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
