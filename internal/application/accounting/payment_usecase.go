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
	"github.com/jhoicas/taller-api/internal/domain/billing"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/numbering"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// PaymentUseCase cobros a clientes y pagos a proveedores.
type PaymentUseCase struct {
	repos Repositories
	tx    ports.TxRunner
	seq   *sequence.Generator
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(repos Repositories, tx ports.TxRunner, seq *sequence.Generator) *PaymentUseCase {
	return &PaymentUseCase{repos: repos, tx: tx, seq: seq}
}

// List cobros filtrados; vacío sin acceso.
func (uc *PaymentUseCase) List(ctx context.Context, actor entity.Actor, in dto.PaymentListRequest) (dto.ListResponse[dto.PaymentResponse], error) {
	in.DefaultPage()
	if !access.Can(actor.Role, access.Accounting) {
		return dto.NewList[dto.PaymentResponse](nil, in.PageRequest), nil
	}
	rows, err := uc.repos.Payments.List(ctx, repository.PaymentFilter{
		InvoiceID:     in.InvoiceID,
		CustomerID:    in.CustomerID,
		PaymentMethod: in.PaymentMethod,
		Status:        in.Status,
		Page:          repository.Page{Limit: in.Limit, Offset: in.Offset},
	})
	if err != nil {
		return dto.ListResponse[dto.PaymentResponse]{}, fmt.Errorf("accounting: listar pagos: %w", err)
	}
	items := make([]dto.PaymentResponse, 0, len(rows))
	for _, p := range rows {
		items = append(items, toPaymentResponse(p))
	}
	return dto.NewList(items, in.PageRequest), nil
}

// ProcessPayment registra el cobro con número PAY. Un cobro completed se aplica a la factura
// con la fila bloqueada: suma paid_amount, recalcula balance_due, marca paid si el saldo
// llega a cero y ajusta la cuenta por cobrar. Otros estados solo quedan registrados.
// La factura viene en el body: si no existe es un error de validación de invoice_id.
func (uc *PaymentUseCase) ProcessPayment(ctx context.Context, actor entity.Actor, in dto.CreatePaymentRequest) (*dto.ProcessPaymentResponse, error) {
	return uc.process(ctx, actor, in, domain.NewValidationError("invoice_id", "factura inexistente"))
}

// ProcessInvoicePayment cobra la factura indicada en la ruta; si no existe, ErrNotFound.
func (uc *PaymentUseCase) ProcessInvoicePayment(ctx context.Context, actor entity.Actor, invoiceID string, in dto.CreatePaymentRequest) (*dto.ProcessPaymentResponse, error) {
	in.InvoiceID = invoiceID
	return uc.process(ctx, actor, in, domain.ErrNotFound)
}

func (uc *PaymentUseCase) process(ctx context.Context, actor entity.Actor, in dto.CreatePaymentRequest, missing error) (*dto.ProcessPaymentResponse, error) {
	if err := access.Check(actor.Role, access.Accounting); err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, domain.NewValidationError("amount", "debe ser mayor que cero")
	}
	now := time.Now()
	status := in.Status
	if status == "" {
		status = entity.PaymentStatusCompleted
	}
	p := &entity.Payment{
		ID:              uuid.New().String(),
		InvoiceID:       in.InvoiceID,
		Amount:          in.Amount,
		PaymentMethod:   in.PaymentMethod,
		Status:          status,
		TransactionID:   in.TransactionID,
		ReferenceNumber: in.ReferenceNumber,
		PaymentDate:     now,
		Notes:           in.Notes,
		CreatedBy:       actor.Ref(),
	}
	if in.PaymentDate != nil {
		p.PaymentDate = *in.PaymentDate
	}

	var inv *entity.Invoice
	err := uc.seq.Issue(ctx, numbering.Payment, func(number string, r ports.Repos) error {
		var err error
		inv, err = r.Invoices.GetForUpdate(ctx, in.InvoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return missing
		}
		if inv.Status == entity.InvoiceStatusCancelled {
			return domain.ErrConflict
		}
		p.PaymentNumber = number
		p.CustomerID = inv.CustomerID
		if status == entity.PaymentStatusCompleted {
			if err := applyToInvoice(ctx, r, actor, p, inv, now); err != nil {
				return err
			}
		}
		return r.Payments.Create(ctx, p)
	})
	if err != nil {
		return nil, fmt.Errorf("accounting: procesar pago: %w", err)
	}

	log.Info().
		Str("payment_number", p.PaymentNumber).
		Str("invoice_id", inv.ID).
		Str("amount", p.Amount.String()).
		Str("balance_due", inv.BalanceDue.String()).
		Msg("pago registrado")
	return &dto.ProcessPaymentResponse{
		Payment: toPaymentResponse(p),
		Invoice: toInvoiceResponse(inv, nil),
	}, nil
}

// GetByID detalle del cobro.
func (uc *PaymentUseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.PaymentResponse, error) {
	if !access.Can(actor.Role, access.Accounting) {
		return nil, domain.ErrNotFound
	}
	p, err := uc.repos.Payments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("accounting: obtener pago: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	out := toPaymentResponse(p)
	return &out, nil
}

// Update edita un cobro. Pasar a completed aplica el monto a la factura igual que al crearlo;
// un cobro ya completed solo admite cambios de referencia y notas.
func (uc *PaymentUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdatePaymentRequest) (*dto.ProcessPaymentResponse, error) {
	if err := access.Check(actor.Role, access.Accounting); err != nil {
		return nil, err
	}
	var (
		p   *entity.Payment
		inv *entity.Invoice
	)
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		var err error
		p, err = r.Payments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		wasCompleted := p.Status == entity.PaymentStatusCompleted
		if wasCompleted && changesAppliedPayment(p, in) {
			return domain.ErrConflict
		}

		if in.Amount != nil {
			if !in.Amount.IsPositive() {
				return domain.NewValidationError("amount", "debe ser mayor que cero")
			}
			p.Amount = *in.Amount
		}
		if in.PaymentMethod != nil {
			p.PaymentMethod = *in.PaymentMethod
		}
		if in.Status != nil {
			p.Status = *in.Status
		}
		if in.PaymentDate != nil {
			p.PaymentDate = *in.PaymentDate
		}
		setString(&p.TransactionID, in.TransactionID)
		setString(&p.ReferenceNumber, in.ReferenceNumber)
		setString(&p.Notes, in.Notes)

		inv, err = r.Invoices.GetForUpdate(ctx, p.InvoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if !wasCompleted && p.Status == entity.PaymentStatusCompleted {
			if inv.Status == entity.InvoiceStatusCancelled {
				return domain.ErrConflict
			}
			if err := applyToInvoice(ctx, r, actor, p, inv, time.Now()); err != nil {
				return err
			}
		}
		return r.Payments.Update(ctx, p)
	})
	if err != nil {
		return nil, fmt.Errorf("accounting: actualizar pago: %w", err)
	}
	log.Info().Str("payment_number", p.PaymentNumber).Str("status", p.Status).Str("balance_due", inv.BalanceDue.String()).Msg("pago actualizado")
	return &dto.ProcessPaymentResponse{
		Payment: toPaymentResponse(p),
		Invoice: toInvoiceResponse(inv, nil),
	}, nil
}

// applyToInvoice suma el cobro a la factura bloqueada y deja el cobro como procesado.
func applyToInvoice(ctx context.Context, r ports.Repos, actor entity.Actor, p *entity.Payment, inv *entity.Invoice, now time.Time) error {
	if err := billing.ApplyPayment(inv, p.Amount, p.PaymentDate); err != nil {
		return err
	}
	if err := r.Invoices.Update(ctx, inv); err != nil {
		return err
	}
	if err := syncReceivable(ctx, r, inv, now); err != nil {
		return err
	}
	processed := now
	p.ProcessedDate = &processed
	p.ProcessedBy = actor.Ref()
	return nil
}

// changesAppliedPayment true si la edición tocaría un monto ya aplicado a la factura.
func changesAppliedPayment(p *entity.Payment, in dto.UpdatePaymentRequest) bool {
	if in.Amount != nil && !in.Amount.Equal(p.Amount) {
		return true
	}
	if in.Status != nil && *in.Status != entity.PaymentStatusCompleted {
		return true
	}
	return in.PaymentMethod != nil && *in.PaymentMethod != p.PaymentMethod
}

// ListSupplierPayments pagos a proveedores; vacío sin acceso.
func (uc *PaymentUseCase) ListSupplierPayments(ctx context.Context, actor entity.Actor, in dto.SupplierPaymentListRequest) (dto.ListResponse[dto.SupplierPaymentResponse], error) {
	in.DefaultPage()
	if !access.Can(actor.Role, access.Accounting) {
		return dto.NewList[dto.SupplierPaymentResponse](nil, in.PageRequest), nil
	}
	rows, err := uc.repos.SupplierPayments.List(ctx, repository.SupplierPaymentFilter{
		SupplierID:      in.SupplierID,
		PurchaseOrderID: in.PurchaseOrderID,
		Status:          in.Status,
		Page:            repository.Page{Limit: in.Limit, Offset: in.Offset},
	})
	if err != nil {
		return dto.ListResponse[dto.SupplierPaymentResponse]{}, fmt.Errorf("accounting: listar pagos a proveedor: %w", err)
	}
	items := make([]dto.SupplierPaymentResponse, 0, len(rows))
	for _, p := range rows {
		items = append(items, toSupplierPaymentResponse(p))
	}
	return dto.NewList(items, in.PageRequest), nil
}

// CreateSupplierPayment registra el pago con número SPAY. Completed y ligado a una orden de
// compra descuenta la cuenta por pagar de esa orden.
func (uc *PaymentUseCase) CreateSupplierPayment(ctx context.Context, actor entity.Actor, in dto.CreateSupplierPaymentRequest) (*dto.SupplierPaymentResponse, error) {
	if err := access.Check(actor.Role, access.Accounting); err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, domain.NewValidationError("amount", "debe ser mayor que cero")
	}
	supplier, err := uc.repos.Suppliers.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("accounting: obtener proveedor: %w", err)
	}
	if supplier == nil {
		return nil, domain.NewValidationError("supplier_id", "proveedor inexistente")
	}

	now := time.Now()
	status := in.Status
	if status == "" {
		status = entity.PaymentStatusCompleted
	}
	p := &entity.SupplierPayment{
		ID:              uuid.New().String(),
		SupplierID:      supplier.ID,
		PurchaseOrderID: emptyToNil(in.PurchaseOrderID),
		Amount:          in.Amount,
		PaymentMethod:   in.PaymentMethod,
		Status:          status,
		TransactionID:   in.TransactionID,
		ReferenceNumber: in.ReferenceNumber,
		CheckNumber:     in.CheckNumber,
		PaymentDate:     now,
		DueDate:         in.DueDate,
		Notes:           in.Notes,
		CreatedBy:       actor.Ref(),
	}
	if in.PaymentDate != nil {
		p.PaymentDate = *in.PaymentDate
	}
	if status == entity.PaymentStatusCompleted {
		processed := now
		p.ProcessedDate = &processed
		p.ProcessedBy = actor.Ref()
	}

	err = uc.seq.Issue(ctx, numbering.SupplierPayment, func(number string, r ports.Repos) error {
		p.PaymentNumber = number
		if p.PurchaseOrderID != nil {
			po, err := r.PurchaseOrders.GetByID(ctx, *p.PurchaseOrderID)
			if err != nil {
				return err
			}
			if po == nil {
				return domain.NewValidationError("purchase_order_id", "orden de compra inexistente")
			}
			if po.SupplierID != p.SupplierID {
				return domain.NewValidationError("purchase_order_id", "la orden es de otro proveedor")
			}
			if status == entity.PaymentStatusCompleted {
				ap, err := r.Payables.GetByPurchaseOrder(ctx, po.ID)
				if err != nil {
					return err
				}
				if ap != nil {
					billing.ApplySupplierPayment(ap, p.Amount, now)
					if err := r.Payables.Update(ctx, ap); err != nil {
						return err
					}
				}
			}
		}
		return r.SupplierPayments.Create(ctx, p)
	})
	if err != nil {
		return nil, fmt.Errorf("accounting: registrar pago a proveedor: %w", err)
	}
	log.Info().Str("payment_number", p.PaymentNumber).Str("supplier_id", p.SupplierID).Str("amount", p.Amount.String()).Msg("pago a proveedor registrado")
	out := toSupplierPaymentResponse(p)
	return &out, nil
}
