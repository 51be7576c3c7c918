package accounting

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain/access"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// LedgerUseCase cuentas por cobrar/pagar y estadísticas contables.
type LedgerUseCase struct {
	repos Repositories
	now   func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(repos Repositories) *LedgerUseCase {
	return &LedgerUseCase{repos: repos, now: time.Now}
}

// Receivables cuentas por cobrar, opcionalmente de un cliente.
func (uc *LedgerUseCase) Receivables(ctx context.Context, actor entity.Actor, customerID string, page dto.PageRequest) (dto.ListResponse[dto.ReceivableResponse], error) {
	page.DefaultPage()
	if !access.Can(actor.Role, access.Accounting) {
		return dto.NewList[dto.ReceivableResponse](nil, page), nil
	}
	rows, err := uc.repos.Receivables.List(ctx, customerID, repository.Page{Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return dto.ListResponse[dto.ReceivableResponse]{}, fmt.Errorf("accounting: cuentas por cobrar: %w", err)
	}
	today := uc.now()
	items := make([]dto.ReceivableResponse, 0, len(rows))
	for _, ar := range rows {
		items = append(items, dto.ReceivableResponse{
			ID:             ar.ID,
			CustomerID:     ar.CustomerID,
			InvoiceID:      ar.InvoiceID,
			OriginalAmount: ar.OriginalAmount,
			CurrentAmount:  ar.CurrentAmount,
			DueDate:        ar.DueDate,
			IsOverdue:      ar.CurrentAmount.IsPositive() && ar.DueDate.Before(today),
			Notes:          ar.Notes,
			UpdatedAt:      ar.UpdatedAt,
		})
	}
	return dto.NewList(items, page), nil
}

// Payables cuentas por pagar, opcionalmente de un proveedor.
func (uc *LedgerUseCase) Payables(ctx context.Context, actor entity.Actor, supplierID string, page dto.PageRequest) (dto.ListResponse[dto.PayableResponse], error) {
	page.DefaultPage()
	if !access.Can(actor.Role, access.Accounting) {
		return dto.NewList[dto.PayableResponse](nil, page), nil
	}
	rows, err := uc.repos.Payables.List(ctx, supplierID, repository.Page{Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return dto.ListResponse[dto.PayableResponse]{}, fmt.Errorf("accounting: cuentas por pagar: %w", err)
	}
	today := uc.now()
	items := make([]dto.PayableResponse, 0, len(rows))
	for _, ap := range rows {
		items = append(items, dto.PayableResponse{
			ID:              ap.ID,
			SupplierID:      ap.SupplierID,
			PurchaseOrderID: ap.PurchaseOrderID,
			OriginalAmount:  ap.OriginalAmount,
			CurrentAmount:   ap.CurrentAmount,
			DueDate:         ap.DueDate,
			IsOverdue:       ap.CurrentAmount.IsPositive() && ap.DueDate.Before(today),
			Notes:           ap.Notes,
			UpdatedAt:       ap.UpdatedAt,
		})
	}
	return dto.NewList(items, page), nil
}

// Stats conteos de facturas, pagos y gastos con los saldos abiertos.
func (uc *LedgerUseCase) Stats(ctx context.Context, actor entity.Actor) (*dto.AccountingStatsResponse, error) {
	if err := access.Check(actor.Role, access.Accounting); err != nil {
		return nil, err
	}
	s, err := uc.repos.Stats.AccountingStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("accounting: estadísticas: %w", err)
	}
	out := &dto.AccountingStatsResponse{Receivables: s.Receivables, Payables: s.Payables}
	out.Invoices.Total = s.TotalInvoices
	out.Invoices.Pending = s.PendingInvoices
	out.Invoices.Paid = s.PaidInvoices
	out.Invoices.Overdue = s.OverdueInvoices
	out.Payments.TotalCount = s.TotalPayments
	out.Payments.TotalAmount = s.PaymentsAmount
	out.Expenses.Total = s.TotalExpenses
	out.Expenses.Pending = s.PendingExpenses
	out.Expenses.Approved = s.ApprovedExpenses
	return out, nil
}
