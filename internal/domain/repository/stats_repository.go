package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LabelCount conteo agrupado por una etiqueta (estado, marca, año, categoría).
type LabelCount struct {
	Label string
	Count int
}

// CustomerStats resultado crudo de los conteos de CRM.
type CustomerStats struct {
	TotalCustomers      int
	ActiveCustomers     int
	NewCustomers        int // creados desde la fecha pedida
	TotalAppointments   int
	PendingAppointments int // status = scheduled
}

// VehicleStats conteos de vehículos.
type VehicleStats struct {
	TotalVehicles  int
	ActiveVehicles int
	ByMake         []LabelCount // top 5 por cantidad
	ByYear         []LabelCount // 5 años más recientes
}

// JobOrderStats conteos de órdenes de trabajo.
type JobOrderStats struct {
	Total     int
	Pending   int // received + inspection
	InRepair  int
	Ready     int
	Delivered int
	ByStatus  []LabelCount
	// AvgRepairHours promedio actual_completion − received_date; cero si no hay órdenes cerradas.
	AvgRepairHours decimal.Decimal
}

// InventoryStats conteos de inventario.
type InventoryStats struct {
	TotalParts      int
	LowStockParts   int // current_stock <= minimum_stock
	OutOfStockParts int // current_stock = 0
	ActiveSuppliers int
	ByCategory      []LabelCount // top 5
}

// AccountingStats conteos y saldos contables.
type AccountingStats struct {
	TotalInvoices    int
	PendingInvoices  int // status = sent
	PaidInvoices     int
	OverdueInvoices  int
	TotalPayments    int
	PaymentsAmount   decimal.Decimal
	Receivables      decimal.Decimal // Σ current_amount
	Payables         decimal.Decimal
	TotalExpenses    int
	PendingExpenses  int
	ApprovedExpenses int
}

// RevenueStats métricas financieras del dashboard.
type RevenueStats struct {
	TotalRevenue    decimal.Decimal // Σ pagos
	PeriodRevenue   decimal.Decimal // Σ pagos desde la fecha pedida
	TotalInvoices   int
	PendingInvoices int
	AvgInvoiceValue decimal.Decimal
}

// DailySales ventas cobradas de un día.
type DailySales struct {
	Day          time.Time
	TotalAmount  decimal.Decimal
	PaymentCount int
}

// CustomerSpend gasto de un cliente en el período.
type CustomerSpend struct {
	CustomerID   string
	FirstName    string
	LastName     string
	TotalSpent   decimal.Decimal
	PaymentCount int
}

// MethodTotal total por medio de pago.
type MethodTotal struct {
	PaymentMethod string
	TotalAmount   decimal.Decimal
	Count         int
}

// CategoryValue repuestos y valor de stock (current_stock × cost_price) por categoría.
type CategoryValue struct {
	Category   string // "" si el repuesto no tiene categoría
	Count      int
	TotalValue decimal.Decimal
}

// LowStockItem repuesto en o por debajo del mínimo.
type LowStockItem struct {
	PartID       string
	Name         string
	SKU          string
	CurrentStock decimal.Decimal
	MinimumStock decimal.Decimal
	ReorderPoint decimal.Decimal
	Category     string
	Supplier     string
}

// PartUsage consumo de un repuesto en órdenes de trabajo (ítems tipo part).
type PartUsage struct {
	Name          string
	TotalQuantity decimal.Decimal
	TotalValue    decimal.Decimal
}

// SupplierValue repuestos y valor de stock por proveedor.
type SupplierValue struct {
	Supplier   string
	PartsCount int
	TotalValue decimal.Decimal
}

// TechnicianJobs desempeño de un técnico sobre órdenes asignadas.
type TechnicianJobs struct {
	TechnicianID       string
	FirstName          string
	LastName           string
	TotalJobs          int
	CompletedJobs      int              // status = delivered
	AvgCompletionHours *decimal.Decimal // nil si no hay órdenes cerradas
}

// TechnicianHours horas registradas por técnico.
type TechnicianHours struct {
	TechnicianID string
	FirstName    string
	LastName     string
	TotalHours   decimal.Decimal
	JobsCount    int // órdenes distintas
}

// StatsRepository define las consultas de lectura para estadísticas y reportes.
// Las implementaciones son read-only y se calculan sobre el estado actual, sin caché.
type StatsRepository interface {
	// CustomerStats NewCustomers cuenta los clientes creados desde since.
	CustomerStats(ctx context.Context, since time.Time) (CustomerStats, error)
	VehicleStats(ctx context.Context) (VehicleStats, error)
	JobOrderStats(ctx context.Context) (JobOrderStats, error)
	InventoryStats(ctx context.Context) (InventoryStats, error)
	AccountingStats(ctx context.Context) (AccountingStats, error)
	// RevenueStats PeriodRevenue suma los pagos con payment_date >= since.
	RevenueStats(ctx context.Context, since time.Time) (RevenueStats, error)

	// ── Reporte de ventas (pagos completed en [from, to]) ─────────────────────
	SalesByDay(ctx context.Context, from, to time.Time) ([]DailySales, error)
	TopCustomers(ctx context.Context, from, to time.Time, limit int) ([]CustomerSpend, error)
	PaymentMethods(ctx context.Context, from, to time.Time) ([]MethodTotal, error)

	// ── Reporte de inventario ─────────────────────────────────────────────────
	PartsByCategory(ctx context.Context) ([]CategoryValue, error)
	// LowStockItems limit <= 0 devuelve todos.
	LowStockItems(ctx context.Context, limit int) ([]LowStockItem, error)
	MostUsedParts(ctx context.Context, limit int) ([]PartUsage, error)
	SupplierPerformance(ctx context.Context) ([]SupplierValue, error)

	// ── Desempeño de técnicos ─────────────────────────────────────────────────
	TechnicianJobStats(ctx context.Context) ([]TechnicianJobs, error)
	TimeTracking(ctx context.Context) ([]TechnicianHours, error)
}
