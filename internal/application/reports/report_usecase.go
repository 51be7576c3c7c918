package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/access"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// ReportFile archivo generado listo para descargar.
type ReportFile struct {
	Path        string
	FileName    string
	ContentType string
}

// ReportUseCase registros de reportes generados bajo demanda.
type ReportUseCase struct {
	reports   repository.ReportRepository
	queries   *DashboardUseCase
	renderers map[string]ports.Renderer // por formato: pdf, excel, csv
	dir       string
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso. dir es la carpeta donde se escriben los archivos.
func NewReportUseCase(reports repository.ReportRepository, queries *DashboardUseCase, renderers map[string]ports.Renderer, dir string) *ReportUseCase {
	return &ReportUseCase{reports: reports, queries: queries, renderers: renderers, dir: dir, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// Generate crea el registro en processing, calcula los datos según el tipo y, si el formato
// lo pide, escribe el archivo. Cualquier fallo deja el registro en failed y devuelve
// ErrReportFailed sin exponer la causa.
func (uc *ReportUseCase) Generate(ctx context.Context, actor entity.Actor, in dto.GenerateReportRequest) (*dto.GenerateReportResponse, error) {
	if err := access.Check(actor.Role, access.Reports); err != nil {
		return nil, err
	}
	format := in.Format
	if format == "" {
		format = entity.FormatJSON
	}
	if format != entity.FormatJSON {
		if _, ok := uc.renderers[format]; !ok {
			return nil, domain.NewValidationError("format", "formato no soportado")
		}
	}
	params := in.Parameters
	if len(params) == 0 {
		params = json.RawMessage(`{}`)
	}

	now := uc.now()
	rep := &entity.Report{
		ID:               uuid.New().String(),
		Name:             fmt.Sprintf("%s Report - %s", cases.Title(language.English).String(in.ReportType), now.Format("2006-01-02 15:04")),
		Description:      in.Description,
		ReportType:       in.ReportType,
		Format:           format,
		Parameters:       params,
		GenerationStatus: entity.ReportProcessing,
		CreatedBy:        actor.Ref(),
		CreatedAt:        now,
	}
	if err := uc.reports.Create(ctx, rep); err != nil {
		return nil, fmt.Errorf("reports: crear registro: %w", err)
	}

	data, err := uc.produce(ctx, actor, rep)
	if err != nil {
		return nil, uc.fail(ctx, rep, err)
	}

	generatedAt := uc.now()
	rep.IsGenerated = true
	rep.GenerationStatus = entity.ReportCompleted
	rep.GeneratedAt = &generatedAt
	if err := uc.reports.Update(ctx, rep); err != nil {
		return nil, uc.fail(ctx, rep, fmt.Errorf("completar registro: %w", err))
	}
	log.Info().Str("report_id", rep.ID).Str("type", rep.ReportType).Str("format", rep.Format).Msg("reporte generado")

	return &dto.GenerateReportResponse{
		Message: "Report generated successfully",
		Report:  toReportResponse(rep),
		Data:    data,
	}, nil
}

// fail marca el registro como failed, borra el archivo que haya quedado y devuelve
// ErrReportFailed.
func (uc *ReportUseCase) fail(ctx context.Context, rep *entity.Report, cause error) error {
	if rep.FilePath != "" {
		if err := os.Remove(rep.FilePath); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", rep.FilePath).Msg("no se pudo borrar el archivo del reporte")
		}
		rep.FilePath = ""
	}
	rep.IsGenerated = false
	rep.GeneratedAt = nil
	rep.GenerationStatus = entity.ReportFailed
	if err := uc.reports.Update(context.WithoutCancel(ctx), rep); err != nil {
		log.Error().Err(err).Str("report_id", rep.ID).Msg("no se pudo marcar el reporte como fallido")
	}
	log.Error().Err(cause).Str("report_id", rep.ID).Str("type", rep.ReportType).Msg("generación de reporte fallida")
	return domain.ErrReportFailed
}

// produce calcula los datos y escribe el archivo si corresponde. Fija rep.FilePath.
func (uc *ReportUseCase) produce(ctx context.Context, actor entity.Actor, rep *entity.Report) (any, error) {
	var (
		data any
		doc  ports.Document
	)
	switch rep.ReportType {
	case entity.ReportSales:
		var req dto.SalesReportRequest
		if err := json.Unmarshal(rep.Parameters, &req); err != nil {
			return nil, fmt.Errorf("parámetros: %w", err)
		}
		sales, err := uc.queries.SalesReport(ctx, actor, req)
		if err != nil {
			return nil, err
		}
		data, doc = sales, salesDocument(sales)
	case entity.ReportInventory:
		inv, err := uc.queries.InventoryReport(ctx, actor)
		if err != nil {
			return nil, err
		}
		data, doc = inv, inventoryDocument(inv)
	case entity.ReportTechnician:
		tech, err := uc.queries.TechnicianReport(ctx, actor)
		if err != nil {
			return nil, err
		}
		data, doc = tech, technicianDocument(tech)
	default:
		dash, err := uc.queries.Dashboard(ctx, actor)
		if err != nil {
			return nil, err
		}
		data, doc = dash, dashboardDocument(dash)
	}

	if rep.Format == entity.FormatJSON {
		return data, nil
	}
	renderer := uc.renderers[rep.Format]
	doc.Title = rep.Name
	body, err := renderer.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", rep.Format, err)
	}
	if err := os.MkdirAll(uc.dir, 0o755); err != nil {
		return nil, fmt.Errorf("carpeta de reportes: %w", err)
	}
	path := filepath.Join(uc.dir, rep.ID+"."+renderer.Extension())
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return nil, fmt.Errorf("escribir archivo: %w", err)
	}
	rep.FilePath = path
	return data, nil
}

// List registros de reportes; vacío sin acceso.
func (uc *ReportUseCase) List(ctx context.Context, actor entity.Actor, in dto.ReportListRequest) (dto.ListResponse[dto.ReportResponse], error) {
	in.DefaultPage()
	if !access.Can(actor.Role, access.Reports) {
		return dto.NewList[dto.ReportResponse](nil, in.PageRequest), nil
	}
	rows, err := uc.reports.List(ctx, in.ReportType, repository.Page{Limit: in.Limit, Offset: in.Offset})
	if err != nil {
		return dto.ListResponse[dto.ReportResponse]{}, fmt.Errorf("reports: listar: %w", err)
	}
	items := make([]dto.ReportResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, toReportResponse(r))
	}
	return dto.NewList(items, in.PageRequest), nil
}

// GetByID detalle de un registro.
func (uc *ReportUseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.ReportResponse, error) {
	rep, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	out := toReportResponse(rep)
	return &out, nil
}

// Download ubica el archivo de un reporte generado. NotFound si el reporte no tiene archivo.
func (uc *ReportUseCase) Download(ctx context.Context, actor entity.Actor, id string) (*ReportFile, error) {
	rep, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	renderer, ok := uc.renderers[rep.Format]
	if !rep.IsGenerated || rep.FilePath == "" || !ok {
		return nil, domain.ErrNotFound
	}
	if _, err := os.Stat(rep.FilePath); err != nil {
		return nil, domain.ErrNotFound
	}
	return &ReportFile{
		Path:        rep.FilePath,
		FileName:    rep.Name + "." + renderer.Extension(),
		ContentType: renderer.ContentType(),
	}, nil
}

func (uc *ReportUseCase) load(ctx context.Context, actor entity.Actor, id string) (*entity.Report, error) {
	if !access.Can(actor.Role, access.Reports) {
		return nil, domain.ErrNotFound
	}
	rep, err := uc.reports.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reports: obtener: %w", err)
	}
	if rep == nil {
		return nil, domain.ErrNotFound
	}
	return rep, nil
}

func toReportResponse(r *entity.Report) dto.ReportResponse {
	return dto.ReportResponse{
		ID:               r.ID,
		Name:             r.Name,
		Description:      r.Description,
		ReportType:       r.ReportType,
		Format:           r.Format,
		Parameters:       r.Parameters,
		IsGenerated:      r.IsGenerated,
		GenerationStatus: r.GenerationStatus,
		GeneratedAt:      r.GeneratedAt,
		HasFile:          r.FilePath != "",
		CreatedBy:        r.CreatedBy,
		CreatedAt:        r.CreatedAt,
	}
}
