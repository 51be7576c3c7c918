package postgres

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const stockMovementColumns = `id, part_id, movement_type, quantity, previous_stock, new_stock, reference_type,
	reference_id, notes, created_by, created_at`

// StockMovementRepo libro de movimientos de solo inserción (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimiento con la foto del stock anterior y posterior.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_movements (`+stockMovementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.ID, m.PartID, m.MovementType, m.Quantity, m.PreviousStock, m.NewStock, m.ReferenceType,
		m.ReferenceID, m.Notes, m.CreatedBy, m.CreatedAt,
	)
	return writeErr("insert stock movement", err)
}

// List movimientos más recientes primero.
func (r *StockMovementRepo) List(ctx context.Context, f repository.StockMovementFilter) ([]*entity.StockMovement, error) {
	var w where
	w.addIf("part_id = ?", f.PartID)
	w.addIf("movement_type = ?", f.MovementType)
	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements` + w.sql() + ` ORDER BY created_at DESC` + w.page(f.Page)
	rows, err := r.q.Query(ctx, query, w.args...)
	return many(rows, err, "list stock movements", func(s scanner) (*entity.StockMovement, error) {
		var m entity.StockMovement
		err := s.Scan(&m.ID, &m.PartID, &m.MovementType, &m.Quantity, &m.PreviousStock, &m.NewStock,
			&m.ReferenceType, &m.ReferenceID, &m.Notes, &m.CreatedBy, &m.CreatedAt)
		return &m, err
	})
}
