package entity

import (
	"encoding/json"
	"time"
)

// Tipos de reporte.
const (
	ReportSales      = "sales"
	ReportInventory  = "inventory"
	ReportCustomer   = "customer"
	ReportTechnician = "technician"
	ReportFinancial  = "financial"
	ReportCustom     = "custom"
)

// Formatos de salida.
const (
	FormatJSON  = "json"
	FormatPDF   = "pdf"
	FormatExcel = "excel"
	FormatCSV   = "csv"
)

// Estados de generación.
const (
	ReportPending    = "pending"
	ReportProcessing = "processing"
	ReportCompleted  = "completed"
	ReportFailed     = "failed"
)

// Report registro de un reporte generado bajo demanda.
type Report struct {
	ID               string
	Name             string
	Description      string
	ReportType       string
	Format           string
	Parameters       json.RawMessage
	IsGenerated      bool
	GenerationStatus string
	GeneratedAt      *time.Time
	FilePath         string
	CreatedBy        *string
	CreatedAt        time.Time
}
