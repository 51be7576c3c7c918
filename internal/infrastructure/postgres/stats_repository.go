package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas de solo lectura para estadísticas, dashboard y reportes.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador de estadísticas.
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// labelCounts agrupa (etiqueta, conteo) en el orden de la consulta.
func (r *StatsRepo) labelCounts(ctx context.Context, op, query string, args ...any) ([]repository.LabelCount, error) {
	rows, err := r.q.Query(ctx, query, args...)
	list, err := many(rows, err, op, func(s scanner) (*repository.LabelCount, error) {
		var lc repository.LabelCount
		err := s.Scan(&lc.Label, &lc.Count)
		return &lc, err
	})
	if err != nil {
		return nil, err
	}
	return deref(list), nil
}

func deref[T any](list []*T) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		out = append(out, *v)
	}
	return out
}

// collect recorre rows con scan y devuelve valores; cierra el cursor.
func collect[T any](rows pgx.Rows, err error, op string, scan func(scanner, *T) error) ([]T, error) {
	list, err := many(rows, err, op, func(s scanner) (*T, error) {
		var v T
		return &v, scan(s, &v)
	})
	if err != nil {
		return nil, err
	}
	return deref(list), nil
}

// CustomerStats conteos de clientes y citas.
func (r *StatsRepo) CustomerStats(ctx context.Context, since time.Time) (repository.CustomerStats, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM customers)                                 AS total_customers,
	    (SELECT COUNT(*) FROM customers WHERE is_active)                 AS active_customers,
	    (SELECT COUNT(*) FROM customers WHERE created_at >= $1)          AS new_customers,
	    (SELECT COUNT(*) FROM appointments)                              AS total_appointments,
	    (SELECT COUNT(*) FROM appointments WHERE status = 'scheduled')   AS pending_appointments`

	var s repository.CustomerStats
	err := r.q.QueryRow(ctx, query, since).Scan(
		&s.TotalCustomers,
		&s.ActiveCustomers,
		&s.NewCustomers,
		&s.TotalAppointments,
		&s.PendingAppointments,
	)
	if err != nil {
		return s, fmt.Errorf("stats.CustomerStats: %w", err)
	}
	return s, nil
}

// VehicleStats conteos, top 5 marcas y los 5 años de modelo más recientes.
func (r *StatsRepo) VehicleStats(ctx context.Context) (repository.VehicleStats, error) {
	var s repository.VehicleStats
	err := r.q.QueryRow(ctx, `
	SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM vehicles`).Scan(&s.TotalVehicles, &s.ActiveVehicles)
	if err != nil {
		return s, fmt.Errorf("stats.VehicleStats: %w", err)
	}

	s.ByMake, err = r.labelCounts(ctx, "stats.VehicleStats: by make", `
	SELECT make, COUNT(*) AS n FROM vehicles GROUP BY make ORDER BY n DESC, make LIMIT 5`)
	if err != nil {
		return s, err
	}
	s.ByYear, err = r.labelCounts(ctx, "stats.VehicleStats: by year", `
	SELECT year::TEXT, COUNT(*) FROM vehicles GROUP BY year ORDER BY year DESC LIMIT 5`)
	if err != nil {
		return s, err
	}
	return s, nil
}

// JobOrderStats conteos por estado y tiempo medio de reparación en horas.
func (r *StatsRepo) JobOrderStats(ctx context.Context) (repository.JobOrderStats, error) {
	const query = `
	SELECT
	    COUNT(*)                                                          AS total,
	    COUNT(*) FILTER (WHERE status IN ('received', 'inspection'))      AS pending,
	    COUNT(*) FILTER (WHERE status = 'in_repair')                      AS in_repair,
	    COUNT(*) FILTER (WHERE status = 'ready')                          AS ready,
	    COUNT(*) FILTER (WHERE status = 'delivered')                      AS delivered,
	    COALESCE(
	        (EXTRACT(EPOCH FROM AVG(actual_completion - received_date)
	            FILTER (WHERE actual_completion IS NOT NULL)) / 3600)::NUMERIC,
	        0)                                                            AS avg_repair_hours
	FROM job_orders`

	var s repository.JobOrderStats
	err := r.q.QueryRow(ctx, query).Scan(
		&s.Total,
		&s.Pending,
		&s.InRepair,
		&s.Ready,
		&s.Delivered,
		&s.AvgRepairHours,
	)
	if err != nil {
		return s, fmt.Errorf("stats.JobOrderStats: %w", err)
	}
	s.ByStatus, err = r.labelCounts(ctx, "stats.JobOrderStats: by status", `
	SELECT status, COUNT(*) FROM job_orders GROUP BY status ORDER BY status`)
	if err != nil {
		return s, err
	}
	return s, nil
}

// InventoryStats conteos de repuestos y proveedores activos; top 5 categorías.
func (r *StatsRepo) InventoryStats(ctx context.Context) (repository.InventoryStats, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM parts)                                      AS total_parts,
	    (SELECT COUNT(*) FROM parts WHERE current_stock <= minimum_stock) AS low_stock_parts,
	    (SELECT COUNT(*) FROM parts WHERE current_stock = 0)              AS out_of_stock_parts,
	    (SELECT COUNT(*) FROM suppliers WHERE is_active)                  AS active_suppliers`

	var s repository.InventoryStats
	err := r.q.QueryRow(ctx, query).Scan(
		&s.TotalParts,
		&s.LowStockParts,
		&s.OutOfStockParts,
		&s.ActiveSuppliers,
	)
	if err != nil {
		return s, fmt.Errorf("stats.InventoryStats: %w", err)
	}
	s.ByCategory, err = r.labelCounts(ctx, "stats.InventoryStats: by category", `
	SELECT COALESCE(c.name, '') AS category, COUNT(*) AS n
	FROM parts p
	LEFT JOIN categories c ON c.id = p.category_id
	GROUP BY c.name
	ORDER BY n DESC, category
	LIMIT 5`)
	if err != nil {
		return s, err
	}
	return s, nil
}

// AccountingStats conteos de facturas, pagos y gastos; saldos abiertos.
func (r *StatsRepo) AccountingStats(ctx context.Context) (repository.AccountingStats, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM invoices)                                        AS total_invoices,
	    (SELECT COUNT(*) FROM invoices WHERE status = 'sent')                  AS pending_invoices,
	    (SELECT COUNT(*) FROM invoices WHERE status = 'paid')                  AS paid_invoices,
	    (SELECT COUNT(*) FROM invoices WHERE status = 'overdue')               AS overdue_invoices,
	    (SELECT COUNT(*) FROM payments)                                        AS total_payments,
	    (SELECT COALESCE(SUM(amount), 0) FROM payments)                        AS payments_amount,
	    (SELECT COALESCE(SUM(current_amount), 0) FROM accounts_receivable)     AS receivables,
	    (SELECT COALESCE(SUM(current_amount), 0) FROM accounts_payable)        AS payables,
	    (SELECT COUNT(*) FROM expenses)                                        AS total_expenses,
	    (SELECT COUNT(*) FROM expenses WHERE status = 'pending')               AS pending_expenses,
	    (SELECT COUNT(*) FROM expenses WHERE status = 'approved')              AS approved_expenses`

	var s repository.AccountingStats
	err := r.q.QueryRow(ctx, query).Scan(
		&s.TotalInvoices,
		&s.PendingInvoices,
		&s.PaidInvoices,
		&s.OverdueInvoices,
		&s.TotalPayments,
		&s.PaymentsAmount,
		&s.Receivables,
		&s.Payables,
		&s.TotalExpenses,
		&s.PendingExpenses,
		&s.ApprovedExpenses,
	)
	if err != nil {
		return s, fmt.Errorf("stats.AccountingStats: %w", err)
	}
	return s, nil
}

// RevenueStats ingresos totales y del período, y valor medio de factura.
func (r *StatsRepo) RevenueStats(ctx context.Context, since time.Time) (repository.RevenueStats, error) {
	const query = `
	SELECT
	    (SELECT COALESCE(SUM(amount), 0) FROM payments)                         AS total_revenue,
	    (SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payment_date >= $1) AS period_revenue,
	    (SELECT COUNT(*) FROM invoices)                                         AS total_invoices,
	    (SELECT COUNT(*) FROM invoices WHERE status = 'sent')                   AS pending_invoices,
	    (SELECT COALESCE(AVG(total_amount), 0) FROM invoices)                   AS avg_invoice_value`

	var s repository.RevenueStats
	err := r.q.QueryRow(ctx, query, since).Scan(
		&s.TotalRevenue,
		&s.PeriodRevenue,
		&s.TotalInvoices,
		&s.PendingInvoices,
		&s.AvgInvoiceValue,
	)
	if err != nil {
		return s, fmt.Errorf("stats.RevenueStats: %w", err)
	}
	return s, nil
}

// SalesByDay pagos completed agrupados por día, en orden cronológico.
func (r *StatsRepo) SalesByDay(ctx context.Context, from, to time.Time) ([]repository.DailySales, error) {
	const query = `
	SELECT payment_date::DATE AS day, SUM(amount) AS total_amount, COUNT(*) AS payment_count
	FROM payments
	WHERE status = 'completed' AND payment_date BETWEEN $1 AND $2
	GROUP BY day
	ORDER BY day`

	rows, err := r.q.Query(ctx, query, from, to)
	return collect(rows, err, "stats.SalesByDay", func(s scanner, d *repository.DailySales) error {
		return s.Scan(&d.Day, &d.TotalAmount, &d.PaymentCount)
	})
}

// TopCustomers clientes con mayor gasto cobrado en el período.
func (r *StatsRepo) TopCustomers(ctx context.Context, from, to time.Time, limit int) ([]repository.CustomerSpend, error) {
	const query = `
	SELECT c.id, c.first_name, c.last_name, SUM(p.amount) AS total_spent, COUNT(*) AS payment_count
	FROM payments p
	JOIN customers c ON c.id = p.customer_id
	WHERE p.status = 'completed' AND p.payment_date BETWEEN $1 AND $2
	GROUP BY c.id, c.first_name, c.last_name
	ORDER BY total_spent DESC
	LIMIT $3`

	rows, err := r.q.Query(ctx, query, from, to, limit)
	return collect(rows, err, "stats.TopCustomers", func(s scanner, c *repository.CustomerSpend) error {
		return s.Scan(&c.CustomerID, &c.FirstName, &c.LastName, &c.TotalSpent, &c.PaymentCount)
	})
}

// PaymentMethods totales por medio de pago en el período.
func (r *StatsRepo) PaymentMethods(ctx context.Context, from, to time.Time) ([]repository.MethodTotal, error) {
	const query = `
	SELECT payment_method, SUM(amount) AS total_amount, COUNT(*) AS n
	FROM payments
	WHERE status = 'completed' AND payment_date BETWEEN $1 AND $2
	GROUP BY payment_method
	ORDER BY total_amount DESC`

	rows, err := r.q.Query(ctx, query, from, to)
	return collect(rows, err, "stats.PaymentMethods", func(s scanner, m *repository.MethodTotal) error {
		return s.Scan(&m.PaymentMethod, &m.TotalAmount, &m.Count)
	})
}

// PartsByCategory cantidad de repuestos y valor de stock por categoría.
func (r *StatsRepo) PartsByCategory(ctx context.Context) ([]repository.CategoryValue, error) {
	const query = `
	SELECT COALESCE(c.name, '')                       AS category,
	       COUNT(p.id)                                AS n,
	       COALESCE(SUM(p.current_stock * p.cost_price), 0) AS total_value
	FROM parts p
	LEFT JOIN categories c ON c.id = p.category_id
	GROUP BY c.name
	ORDER BY n DESC, category`

	rows, err := r.q.Query(ctx, query)
	return collect(rows, err, "stats.PartsByCategory", func(s scanner, v *repository.CategoryValue) error {
		return s.Scan(&v.Category, &v.Count, &v.TotalValue)
	})
}

// LowStockItems repuestos en o por debajo del mínimo, los más críticos primero.
func (r *StatsRepo) LowStockItems(ctx context.Context, limit int) ([]repository.LowStockItem, error) {
	query := `
	SELECT p.id, p.name, p.sku, p.current_stock, p.minimum_stock, p.reorder_point,
	       COALESCE(c.name, ''), COALESCE(s.name, '')
	FROM parts p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN suppliers  s ON s.id = p.supplier_id
	WHERE p.current_stock <= p.minimum_stock
	ORDER BY p.current_stock - p.minimum_stock, p.name`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	return collect(rows, err, "stats.LowStockItems", func(s scanner, it *repository.LowStockItem) error {
		return s.Scan(&it.PartID, &it.Name, &it.SKU, &it.CurrentStock, &it.MinimumStock, &it.ReorderPoint,
			&it.Category, &it.Supplier)
	})
}

// MostUsedParts ítems tipo part de las órdenes agrupados por nombre.
func (r *StatsRepo) MostUsedParts(ctx context.Context, limit int) ([]repository.PartUsage, error) {
	const query = `
	SELECT name, SUM(quantity) AS total_quantity, SUM(total_price) AS total_value
	FROM job_order_items
	WHERE item_type = 'part'
	GROUP BY name
	ORDER BY total_quantity DESC
	LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	return collect(rows, err, "stats.MostUsedParts", func(s scanner, u *repository.PartUsage) error {
		return s.Scan(&u.Name, &u.TotalQuantity, &u.TotalValue)
	})
}

// SupplierPerformance repuestos y valor de stock por proveedor.
func (r *StatsRepo) SupplierPerformance(ctx context.Context) ([]repository.SupplierValue, error) {
	const query = `
	SELECT COALESCE(s.name, '')                        AS supplier,
	       COUNT(p.id)                                 AS parts_count,
	       COALESCE(SUM(p.current_stock * p.cost_price), 0) AS total_value
	FROM parts p
	LEFT JOIN suppliers s ON s.id = p.supplier_id
	GROUP BY s.name
	ORDER BY parts_count DESC, supplier`

	rows, err := r.q.Query(ctx, query)
	return collect(rows, err, "stats.SupplierPerformance", func(s scanner, v *repository.SupplierValue) error {
		return s.Scan(&v.Supplier, &v.PartsCount, &v.TotalValue)
	})
}

// TechnicianJobStats órdenes asignadas, entregadas y tiempo medio por técnico.
func (r *StatsRepo) TechnicianJobStats(ctx context.Context) ([]repository.TechnicianJobs, error) {
	const query = `
	SELECT u.id, u.first_name, u.last_name,
	       COUNT(j.id)                                       AS total_jobs,
	       COUNT(j.id) FILTER (WHERE j.status = 'delivered') AS completed_jobs,
	       (EXTRACT(EPOCH FROM AVG(j.actual_completion - j.received_date)
	           FILTER (WHERE j.actual_completion IS NOT NULL)) / 3600)::NUMERIC(10,2) AS avg_completion_hours
	FROM job_orders j
	JOIN users u ON u.id = j.assigned_technician_id
	GROUP BY u.id, u.first_name, u.last_name
	ORDER BY total_jobs DESC`

	rows, err := r.q.Query(ctx, query)
	return collect(rows, err, "stats.TechnicianJobStats", func(s scanner, t *repository.TechnicianJobs) error {
		return s.Scan(&t.TechnicianID, &t.FirstName, &t.LastName, &t.TotalJobs, &t.CompletedJobs, &t.AvgCompletionHours)
	})
}

// TimeTracking horas registradas y órdenes distintas por técnico.
func (r *StatsRepo) TimeTracking(ctx context.Context) ([]repository.TechnicianHours, error) {
	const query = `
	SELECT u.id, u.first_name, u.last_name,
	       COALESCE(SUM(t.hours_worked), 0) AS total_hours,
	       COUNT(DISTINCT t.job_order_id)   AS jobs_count
	FROM technician_times t
	JOIN users u ON u.id = t.technician_id
	GROUP BY u.id, u.first_name, u.last_name
	ORDER BY total_hours DESC`

	rows, err := r.q.Query(ctx, query)
	return collect(rows, err, "stats.TimeTracking", func(s scanner, h *repository.TechnicianHours) error {
		return s.Scan(&h.TechnicianID, &h.FirstName, &h.LastName, &h.TotalHours, &h.JobsCount)
	})
}
