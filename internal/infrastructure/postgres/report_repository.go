package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/numbering"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var (
	_ repository.ReportRepository   = (*ReportRepo)(nil)
	_ repository.SequenceRepository = (*SequenceRepo)(nil)
)

const reportColumns = `id, name, description, report_type, format, parameters, is_generated, generation_status,
	generated_at, file_path, created_by, created_at`

// ReportRepo registros de reportes; parameters se guarda como JSONB.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

func scanReport(s scanner) (*entity.Report, error) {
	var rep entity.Report
	var params []byte
	err := s.Scan(&rep.ID, &rep.Name, &rep.Description, &rep.ReportType, &rep.Format, &params, &rep.IsGenerated,
		&rep.GenerationStatus, &rep.GeneratedAt, &rep.FilePath, &rep.CreatedBy, &rep.CreatedAt)
	rep.Parameters = params
	return &rep, err
}

func jsonbParam(raw []byte) string {
	if len(raw) == 0 {
		return "{}"
	}
	return string(raw)
}

// Create inserta el registro.
func (r *ReportRepo) Create(ctx context.Context, rep *entity.Report) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO reports (`+reportColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8, $9, $10, $11, $12)`,
		rep.ID, rep.Name, rep.Description, rep.ReportType, rep.Format, jsonbParam(rep.Parameters), rep.IsGenerated,
		rep.GenerationStatus, rep.GeneratedAt, rep.FilePath, rep.CreatedBy, rep.CreatedAt,
	)
	return writeErr("insert report", err)
}

// GetByID obtiene el registro.
func (r *ReportRepo) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, id), "get report", scanReport)
}

// Update estado de generación y archivo.
func (r *ReportRepo) Update(ctx context.Context, rep *entity.Report) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE reports SET name = $2, description = $3, parameters = $4::jsonb, is_generated = $5,
		       generation_status = $6, generated_at = $7, file_path = $8
		WHERE id = $1`,
		rep.ID, rep.Name, rep.Description, jsonbParam(rep.Parameters), rep.IsGenerated, rep.GenerationStatus,
		rep.GeneratedAt, rep.FilePath,
	)
	return mustAffect(tag, "update report", err)
}

// List más recientes primero.
func (r *ReportRepo) List(ctx context.Context, reportType string, p repository.Page) ([]*entity.Report, error) {
	var w where
	w.addIf("report_type = ?", reportType)
	query := `SELECT ` + reportColumns + ` FROM reports` + w.sql() + ` ORDER BY created_at DESC` + w.page(p)
	rows, err := r.q.Query(ctx, query, w.args...)
	return many(rows, err, "list reports", scanReport)
}

// sequenceColumns tabla y columna donde vive cada identificador.
var sequenceColumns = map[numbering.Prefix][2]string{
	numbering.Invoice:         {"invoices", "invoice_number"},
	numbering.Payment:         {"payments", "payment_number"},
	numbering.SupplierPayment: {"supplier_payments", "payment_number"},
	numbering.Expense:         {"expenses", "expense_number"},
	numbering.PurchaseOrder:   {"purchase_orders", "po_number"},
	numbering.JobOrder:        {"job_orders", "job_number"},
}

// SequenceRepo lectura del último identificador por alcance. Solo tiene sentido dentro de una tx.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// LockScope toma un advisory lock transaccional sobre el alcance.
func (r *SequenceRepo) LockScope(ctx context.Context, scope string) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, scope); err != nil {
		return fmt.Errorf("lock sequence scope: %w", err)
	}
	return nil
}

// LastNumber identificador más alto con el prefijo del alcance; "" si no hay.
func (r *SequenceRepo) LastNumber(ctx context.Context, prefix numbering.Prefix, scope string) (string, error) {
	target, ok := sequenceColumns[prefix]
	if !ok {
		return "", fmt.Errorf("last number: prefijo desconocido %q", prefix)
	}
	query := fmt.Sprintf(`SELECT %[2]s FROM %[1]s WHERE %[2]s LIKE $1 || '%%' ORDER BY %[2]s DESC LIMIT 1`, target[0], target[1])
	last, err := one(r.q.QueryRow(ctx, query, scope), "last number", func(s scanner) (*string, error) {
		var v string
		err := s.Scan(&v)
		return &v, err
	})
	if err != nil || last == nil {
		return "", err
	}
	return *last, nil
}
