package accounting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/application/sequence"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/access"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/numbering"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// ExpenseUseCase gastos operativos.
type ExpenseUseCase struct {
	expenses repository.ExpenseRepository
	seq      *sequence.Generator
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(expenses repository.ExpenseRepository, seq *sequence.Generator) *ExpenseUseCase {
	return &ExpenseUseCase{expenses: expenses, seq: seq}
}

// List gastos filtrados; vacío sin acceso.
func (uc *ExpenseUseCase) List(ctx context.Context, actor entity.Actor, in dto.ExpenseListRequest) (dto.ListResponse[dto.ExpenseResponse], error) {
	in.DefaultPage()
	if !access.Can(actor.Role, access.Accounting) {
		return dto.NewList[dto.ExpenseResponse](nil, in.PageRequest), nil
	}
	rows, err := uc.expenses.List(ctx, repository.ExpenseFilter{
		Category: in.Category,
		Status:   in.Status,
		Page:     repository.Page{Limit: in.Limit, Offset: in.Offset},
	})
	if err != nil {
		return dto.ListResponse[dto.ExpenseResponse]{}, fmt.Errorf("accounting: listar gastos: %w", err)
	}
	items := make([]dto.ExpenseResponse, 0, len(rows))
	for _, e := range rows {
		items = append(items, toExpenseResponse(e))
	}
	return dto.NewList(items, in.PageRequest), nil
}

// Create registra el gasto con número EXP en estado pending.
func (uc *ExpenseUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if err := access.Check(actor.Role, access.Accounting); err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, domain.NewValidationError("amount", "debe ser mayor que cero")
	}
	e := &entity.Expense{
		ID:          uuid.New().String(),
		Category:    in.Category,
		Description: in.Description,
		Amount:      in.Amount,
		Status:      entity.ExpenseStatusPending,
		ExpenseDate: time.Now(),
		Notes:       in.Notes,
		CreatedBy:   actor.Ref(),
	}
	if in.ExpenseDate != nil {
		e.ExpenseDate = *in.ExpenseDate
	}
	err := uc.seq.Issue(ctx, numbering.Expense, func(number string, r ports.Repos) error {
		e.ExpenseNumber = number
		return r.Expenses.Create(ctx, e)
	})
	if err != nil {
		return nil, fmt.Errorf("accounting: crear gasto: %w", err)
	}
	log.Info().Str("expense_number", e.ExpenseNumber).Str("amount", e.Amount.String()).Msg("gasto registrado")
	out := toExpenseResponse(e)
	return &out, nil
}

// GetByID detalle del gasto.
func (uc *ExpenseUseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.ExpenseResponse, error) {
	e, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	out := toExpenseResponse(e)
	return &out, nil
}

// Update edición parcial. Pasar a approved fija fecha y aprobador; pasar a paid fija la fecha de pago.
func (uc *ExpenseUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	if err := access.Check(actor.Role, access.Accounting); err != nil {
		return nil, err
	}
	e, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	setString(&e.Category, in.Category)
	setString(&e.Description, in.Description)
	setString(&e.Notes, in.Notes)
	if in.Amount != nil {
		if !in.Amount.IsPositive() {
			return nil, domain.NewValidationError("amount", "debe ser mayor que cero")
		}
		e.Amount = *in.Amount
	}
	if in.ExpenseDate != nil {
		e.ExpenseDate = *in.ExpenseDate
	}
	if in.Status != nil && *in.Status != e.Status {
		now := time.Now()
		e.Status = *in.Status
		switch e.Status {
		case entity.ExpenseStatusApproved:
			e.ApprovedDate = &now
			e.ApprovedBy = actor.Ref()
		case entity.ExpenseStatusPaid:
			e.PaidDate = &now
		}
	}
	if err := uc.expenses.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("accounting: actualizar gasto: %w", err)
	}
	out := toExpenseResponse(e)
	return &out, nil
}

func (uc *ExpenseUseCase) load(ctx context.Context, actor entity.Actor, id string) (*entity.Expense, error) {
	if !access.Can(actor.Role, access.Accounting) {
		return nil, domain.ErrNotFound
	}
	e, err := uc.expenses.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("accounting: obtener gasto: %w", err)
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return e, nil
}
