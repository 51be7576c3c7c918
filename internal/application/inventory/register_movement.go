package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/access"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	domaininv "github.com/jhoicas/taller-api/internal/domain/inventory"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// StockUseCase libro de movimientos: la única ruta que modifica current_stock.
type StockUseCase struct {
	movements repository.StockMovementRepository
	tx        ports.TxRunner
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(movements repository.StockMovementRepository, tx ports.TxRunner) *StockUseCase {
	return &StockUseCase{movements: movements, tx: tx}
}

// RecordMovement registra un movimiento de forma atómica:
//  1. bloquea la fila del repuesto (SELECT … FOR UPDATE)
//  2. calcula el nuevo stock según el tipo de movimiento
//  3. persiste el stock y luego inserta el movimiento con la foto previous/new.
//
// Si cualquier paso falla se hace rollback y el stock queda intacto.
func (uc *StockUseCase) RecordMovement(ctx context.Context, actor entity.Actor, in dto.RecordMovementRequest) (*dto.StockMovementResponse, error) {
	if err := access.Check(actor.Role, access.Inventory); err != nil {
		return nil, err
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.NewValidationError("quantity", "debe ser mayor que cero")
	}
	refType := in.ReferenceType
	if refType == "" {
		refType = "manual"
	}

	var mov *entity.StockMovement
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		part, err := r.Parts.GetForUpdate(ctx, in.PartID)
		if err != nil {
			return err
		}
		if part == nil {
			return domain.ErrNotFound
		}
		mov, err = domaininv.Apply(part, domaininv.MovementInput{
			MovementType:  in.MovementType,
			Quantity:      in.Quantity,
			ReferenceType: refType,
			ReferenceID:   in.ReferenceID,
			Notes:         in.Notes,
			CreatedBy:     actor.Ref(),
		}, uuid.New().String(), time.Now())
		if err != nil {
			return err
		}
		if err := r.Parts.UpdateStock(ctx, part); err != nil {
			return err
		}
		return r.StockMovements.Create(ctx, mov)
	})
	if err != nil {
		return nil, fmt.Errorf("inventory: registrar movimiento: %w", err)
	}

	log.Info().
		Str("part_id", mov.PartID).
		Str("type", mov.MovementType).
		Str("previous", mov.PreviousStock.String()).
		Str("new", mov.NewStock.String()).
		Msg("movimiento de stock registrado")
	out := toMovementResponse(mov)
	return &out, nil
}

// ListMovements movimientos más recientes primero; vacío sin acceso.
func (uc *StockUseCase) ListMovements(ctx context.Context, actor entity.Actor, in dto.StockMovementListRequest) (dto.ListResponse[dto.StockMovementResponse], error) {
	in.DefaultPage()
	if !access.Can(actor.Role, access.Inventory) {
		return dto.NewList[dto.StockMovementResponse](nil, in.PageRequest), nil
	}
	rows, err := uc.movements.List(ctx, repository.StockMovementFilter{
		PartID:       in.PartID,
		MovementType: in.MovementType,
		Page:         repository.Page{Limit: in.Limit, Offset: in.Offset},
	})
	if err != nil {
		return dto.ListResponse[dto.StockMovementResponse]{}, fmt.Errorf("inventory: listar movimientos: %w", err)
	}
	items := make([]dto.StockMovementResponse, 0, len(rows))
	for _, m := range rows {
		items = append(items, toMovementResponse(m))
	}
	return dto.NewList(items, in.PageRequest), nil
}
