package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/reports"
)

// DashboardHandler indicadores y reportes calculados al vuelo (sin registro).
type DashboardHandler struct {
	uc *reports.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *reports.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats devuelve los indicadores del tablero.
// GET /api/reports/dashboard-stats
//
// Respuesta: DashboardStatsDTO (clientes, vehículos, órdenes, inventario, ingresos
// del día y del mes). Las fechas se calculan en el servidor.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sales godoc
// @Summary      Reporte de ventas
// @Description  Sin fechas toma los últimos 30 días; end_date es inclusive.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.SalesReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/sales-report [get]
func (h *DashboardHandler) Sales(c *fiber.Ctx) error {
	var in dto.SalesReportRequest
	if err := parseQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SalesReport(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Inventory GET /api/reports/inventory-report
func (h *DashboardHandler) Inventory(c *fiber.Ctx) error {
	out, err := h.uc.InventoryReport(c.Context(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Technicians GET /api/reports/technician-performance
func (h *DashboardHandler) Technicians(c *fiber.Ctx) error {
	out, err := h.uc.TechnicianReport(c.Context(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
