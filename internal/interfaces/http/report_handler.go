package http

import (
	"errors"
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/reports"
	"github.com/jhoicas/taller-api/internal/domain"
)

// ReportHandler registros de reportes: generar, consultar y descargar.
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Generate godoc
// @Summary      Generar reporte
// @Description  Crea el registro en processing, calcula los datos y, para pdf, excel o csv, escribe el archivo.
// @Description  Ante cualquier fallo el registro queda en failed y la respuesta es "report generation failed".
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.GenerateReportRequest  true  "report_type, format, parameters"
// @Success      201   {object}  dto.GenerateReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse  "REPORT_FAILED"
// @Router       /api/reports/generate [post]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateReportRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Generate(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/reports?report_type=
func (h *ReportHandler) List(c *fiber.Ctx) error {
	var in dto.ReportListRequest
	if err := parseQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/reports/:id
func (h *ReportHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Descargar archivo del reporte
// @Tags         reports
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del reporte"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse  "inexistente o sin archivo"
// @Router       /api/reports/{id}/download [get]
func (h *ReportHandler) Download(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	file, err := h.uc.Download(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	data, err := os.ReadFile(file.Path)
	if errors.Is(err, os.ErrNotExist) {
		return writeError(c, domain.ErrNotFound)
	}
	if err != nil {
		return writeError(c, fmt.Errorf("reports: leer archivo: %w", err))
	}
	c.Attachment(file.FileName)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(data)
}
