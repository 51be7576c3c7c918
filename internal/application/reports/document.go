package reports

import (
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/ports"
)

func salesDocument(r *dto.SalesReportDTO) ports.Document {
	daily := ports.Table{Title: "Ventas por día", Headers: []string{"Fecha", "Total", "Pagos"}}
	for _, d := range r.SalesData {
		daily.Rows = append(daily.Rows, []any{d.Date, d.TotalAmount, d.PaymentCount})
	}
	top := ports.Table{Title: "Top clientes", Headers: []string{"Cliente", "Total gastado", "Pagos"}}
	for _, c := range r.TopCustomers {
		top.Rows = append(top.Rows, []any{c.CustomerName, c.TotalSpent, c.PaymentCount})
	}
	methods := ports.Table{Title: "Medios de pago", Headers: []string{"Medio", "Total", "Cantidad"}}
	for _, m := range r.PaymentMethods {
		methods.Rows = append(methods.Rows, []any{m.PaymentMethod, m.TotalAmount, m.Count})
	}
	return ports.Document{
		Subtitle: r.Period.StartDate + " a " + r.Period.EndDate,
		Tables:   []ports.Table{daily, top, methods},
	}
}

func inventoryDocument(r *dto.InventoryReportDTO) ports.Document {
	categories := ports.Table{Title: "Stock por categoría", Headers: []string{"Categoría", "Repuestos", "Valor"}}
	for _, c := range r.PartsByCategory {
		categories.Rows = append(categories.Rows, []any{orDash(c.Category), c.Count, c.TotalValue})
	}
	low := ports.Table{Title: "Stock bajo", Headers: []string{"SKU", "Repuesto", "Actual", "Mínimo", "Proveedor"}}
	for _, l := range r.LowStockItems {
		low.Rows = append(low.Rows, []any{l.SKU, l.PartName, l.CurrentStock, l.MinimumStock, orDash(l.Supplier)})
	}
	used := ports.Table{Title: "Más usados", Headers: []string{"Repuesto", "Cantidad", "Valor"}}
	for _, u := range r.MostUsedParts {
		used.Rows = append(used.Rows, []any{u.Name, u.TotalQuantity, u.TotalValue})
	}
	suppliers := ports.Table{Title: "Proveedores", Headers: []string{"Proveedor", "Repuestos", "Valor"}}
	for _, s := range r.SupplierPerformance {
		suppliers.Rows = append(suppliers.Rows, []any{orDash(s.Supplier), s.PartsCount, s.TotalValue})
	}
	return ports.Document{Tables: []ports.Table{categories, low, used, suppliers}}
}

func technicianDocument(r *dto.TechnicianReportDTO) ports.Document {
	jobs := ports.Table{Title: "Órdenes por técnico", Headers: []string{"Técnico", "Asignadas", "Entregadas", "Horas promedio"}}
	for _, s := range r.TechnicianStats {
		avg := any("-")
		if s.AvgCompletionTimeHours != nil {
			avg = s.AvgCompletionTimeHours.Round(2)
		}
		jobs.Rows = append(jobs.Rows, []any{s.TechnicianName, s.TotalJobs, s.CompletedJobs, avg})
	}
	hours := ports.Table{Title: "Horas registradas", Headers: []string{"Técnico", "Horas", "Órdenes"}}
	for _, h := range r.TimeTracking {
		hours.Rows = append(hours.Rows, []any{h.TechnicianName, h.TotalHours, h.JobsCount})
	}
	return ports.Document{Tables: []ports.Table{jobs, hours}}
}

func dashboardDocument(r *dto.DashboardStatsDTO) ports.Document {
	summary := ports.Table{
		Title:   "Resumen",
		Headers: []string{"Indicador", "Valor"},
		Rows: [][]any{
			{"Clientes", r.Customers.Total},
			{"Clientes activos", r.Customers.Active},
			{"Clientes nuevos del mes", r.Customers.NewThisMonth},
			{"Vehículos", r.Vehicles.Total},
			{"Órdenes de trabajo", r.JobOrders.Total},
			{"Órdenes pendientes", r.JobOrders.Pending},
			{"Órdenes en reparación", r.JobOrders.InRepair},
			{"Órdenes entregadas", r.JobOrders.Completed},
			{"Ingresos totales", r.Financial.TotalRevenue},
			{"Ingresos del mes", r.Financial.MonthlyRevenue},
			{"Facturas pendientes", r.Financial.PendingInvoices},
			{"Repuestos con stock bajo", r.Inventory.LowStockParts},
			{"Repuestos sin stock", r.Inventory.OutOfStockParts},
			{"Horas promedio de reparación", r.Performance.AvgRepairTimeHours},
		},
	}
	return ports.Document{Subtitle: r.DateLabel, Tables: []ports.Table{summary}}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
