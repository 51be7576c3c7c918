package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ── Dashboard ─────────────────────────────────────────────────────────────────

// DashboardStatsDTO respuesta de GET /api/reports/dashboard.
// Los bloques se calculan en paralelo sobre el estado actual.
type DashboardStatsDTO struct {
	Customers struct {
		Total        int `json:"total"`
		Active       int `json:"active"`
		NewThisMonth int `json:"new_this_month"`
	} `json:"customers"`
	Vehicles struct {
		Total  int `json:"total"`
		Active int `json:"active"`
	} `json:"vehicles"`
	JobOrders struct {
		Total     int `json:"total"`
		Pending   int `json:"pending"`
		InRepair  int `json:"in_repair"`
		Completed int `json:"completed"`
	} `json:"job_orders"`
	Financial struct {
		TotalRevenue    decimal.Decimal `json:"total_revenue"`
		MonthlyRevenue  decimal.Decimal `json:"monthly_revenue"`
		TotalInvoices   int             `json:"total_invoices"`
		PendingInvoices int             `json:"pending_invoices"`
		AvgInvoiceValue decimal.Decimal `json:"avg_invoice_value"`
	} `json:"financial"`
	Inventory struct {
		TotalParts      int `json:"total_parts"`
		LowStockParts   int `json:"low_stock_parts"`
		OutOfStockParts int `json:"out_of_stock_parts"`
	} `json:"inventory"`
	Performance struct {
		AvgRepairTimeHours decimal.Decimal `json:"avg_repair_time_hours"`
	} `json:"performance"`
	DateLabel string `json:"date_label"` // ej: "October 2026"
}

// ── Ventas ────────────────────────────────────────────────────────────────────

// SalesReportRequest parámetros de GET /api/reports/sales.
type SalesReportRequest struct {
	StartDate string `query:"start_date" json:"start_date"` // YYYY-MM-DD; por defecto hoy − 30 días
	EndDate   string `query:"end_date" json:"end_date"`     // YYYY-MM-DD; por defecto hoy
}

// PeriodDTO rango de fechas del reporte.
type PeriodDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// DailySalesDTO cobros de un día.
type DailySalesDTO struct {
	Date         string          `json:"date"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaymentCount int             `json:"payment_count"`
}

// TopCustomerDTO cliente con mayor gasto.
type TopCustomerDTO struct {
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	TotalSpent   decimal.Decimal `json:"total_spent"`
	PaymentCount int             `json:"payment_count"`
}

// PaymentMethodDTO total por medio de pago.
type PaymentMethodDTO struct {
	PaymentMethod string          `json:"payment_method"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Count         int             `json:"count"`
}

// SalesReportDTO respuesta de GET /api/reports/sales.
type SalesReportDTO struct {
	Period         PeriodDTO          `json:"period"`
	SalesData      []DailySalesDTO    `json:"sales_data"`
	TopCustomers   []TopCustomerDTO   `json:"top_customers"`
	PaymentMethods []PaymentMethodDTO `json:"payment_methods"`
}

// ── Inventario ────────────────────────────────────────────────────────────────

// CategoryValueDTO repuestos y valor de stock por categoría.
type CategoryValueDTO struct {
	Category   string          `json:"category"`
	Count      int             `json:"count"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// PartUsageDTO consumo de repuestos en órdenes.
type PartUsageDTO struct {
	Name          string          `json:"name"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// SupplierValueDTO repuestos por proveedor.
type SupplierValueDTO struct {
	Supplier   string          `json:"supplier"`
	PartsCount int             `json:"parts_count"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// InventoryReportDTO respuesta de GET /api/reports/inventory.
type InventoryReportDTO struct {
	PartsByCategory     []CategoryValueDTO `json:"parts_by_category"`
	LowStockItems       []LowStockItemDTO  `json:"low_stock_items"`
	MostUsedParts       []PartUsageDTO     `json:"most_used_parts"`
	SupplierPerformance []SupplierValueDTO `json:"supplier_performance"`
}

// ── Técnicos ──────────────────────────────────────────────────────────────────

// TechnicianStatDTO desempeño por técnico.
type TechnicianStatDTO struct {
	TechnicianID           string           `json:"technician_id"`
	TechnicianName         string           `json:"technician_name"`
	TotalJobs              int              `json:"total_jobs"`
	CompletedJobs          int              `json:"completed_jobs"`
	AvgCompletionTimeHours *decimal.Decimal `json:"avg_completion_time_hours"`
}

// TimeTrackingDTO horas registradas por técnico.
type TimeTrackingDTO struct {
	TechnicianID   string          `json:"technician_id"`
	TechnicianName string          `json:"technician_name"`
	TotalHours     decimal.Decimal `json:"total_hours"`
	JobsCount      int             `json:"jobs_count"`
}

// TechnicianReportDTO respuesta de GET /api/reports/technicians.
type TechnicianReportDTO struct {
	TechnicianStats []TechnicianStatDTO `json:"technician_stats"`
	TimeTracking    []TimeTrackingDTO   `json:"time_tracking"`
}

// ── Reportes generados ────────────────────────────────────────────────────────

// GenerateReportRequest body para POST /api/reports/generate.
type GenerateReportRequest struct {
	ReportType  string          `json:"report_type" validate:"required,oneof=sales inventory customer technician financial custom"`
	Format      string          `json:"format" validate:"omitempty,oneof=json pdf excel csv"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters" swaggertype:"object"`
}

// ReportResponse registro de reporte.
type ReportResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	ReportType       string          `json:"report_type"`
	Format           string          `json:"format"`
	Parameters       json.RawMessage `json:"parameters,omitempty" swaggertype:"object"`
	IsGenerated      bool            `json:"is_generated"`
	GenerationStatus string          `json:"generation_status"`
	GeneratedAt      *time.Time      `json:"generated_at"`
	HasFile          bool            `json:"has_file"`
	CreatedBy        *string         `json:"created_by"`
	CreatedAt        time.Time       `json:"created_at"`
}

// GenerateReportResponse registro más los datos calculados.
type GenerateReportResponse struct {
	Message string         `json:"message"`
	Report  ReportResponse `json:"report"`
	Data    any            `json:"data"`
}

// ReportListRequest filtros de GET /api/reports.
type ReportListRequest struct {
	PageRequest
	ReportType string `query:"report_type"`
}
