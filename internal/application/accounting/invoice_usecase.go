// Package accounting casos de uso de facturación, cobros, pagos a proveedores, gastos
// y cuentas por cobrar/pagar. Todo cambio de montos pasa por el paquete billing.
package accounting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/application/sequence"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/access"
	"github.com/jhoicas/taller-api/internal/domain/billing"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/numbering"
	"github.com/jhoicas/taller-api/internal/domain/pricing"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// Repositories puertos de lectura del módulo contable.
type Repositories struct {
	Invoices         repository.InvoiceRepository
	Payments         repository.PaymentRepository
	SupplierPayments repository.SupplierPaymentRepository
	Expenses         repository.ExpenseRepository
	Receivables      repository.ReceivableRepository
	Payables         repository.PayableRepository
	Customers        repository.CustomerRepository
	Suppliers        repository.SupplierRepository
	Stats            repository.StatsRepository
}

// InvoiceUseCase facturas y sus líneas.
type InvoiceUseCase struct {
	repos Repositories
	tx    ports.TxRunner
	seq   *sequence.Generator
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(repos Repositories, tx ports.TxRunner, seq *sequence.Generator) *InvoiceUseCase {
	return &InvoiceUseCase{repos: repos, tx: tx, seq: seq}
}

// List facturas filtradas; vacío sin acceso.
func (uc *InvoiceUseCase) List(ctx context.Context, actor entity.Actor, in dto.InvoiceListRequest) (dto.ListResponse[dto.InvoiceResponse], error) {
	in.DefaultPage()
	if !access.Can(actor.Role, access.Accounting) {
		return dto.NewList[dto.InvoiceResponse](nil, in.PageRequest), nil
	}
	rows, err := uc.repos.Invoices.List(ctx, repository.InvoiceFilter{
		CustomerID: in.CustomerID,
		Status:     in.Status,
		Search:     strings.TrimSpace(in.Search),
		Page:       repository.Page{Limit: in.Limit, Offset: in.Offset},
	})
	if err != nil {
		return dto.ListResponse[dto.InvoiceResponse]{}, fmt.Errorf("accounting: listar facturas: %w", err)
	}
	items := make([]dto.InvoiceResponse, 0, len(rows))
	for _, inv := range rows {
		items = append(items, toInvoiceResponse(inv, nil))
	}
	return dto.NewList(items, in.PageRequest), nil
}

// Create asigna el número INV, fija el vencimiento según las condiciones de pago, recalcula
// los montos y abre la cuenta por cobrar en la misma transacción.
func (uc *InvoiceUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := access.Check(actor.Role, access.Accounting); err != nil {
		return nil, err
	}
	customer, err := uc.repos.Customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("accounting: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, domain.NewValidationError("customer_id", "cliente inexistente")
	}
	if in.Subtotal.IsNegative() || in.TaxRate.IsNegative() || in.DiscountAmount.IsNegative() {
		return nil, domain.NewValidationError("amount", "los montos no pueden ser negativos")
	}

	now := time.Now()
	status := in.Status
	if status == "" {
		status = entity.InvoiceStatusDraft
	}
	terms := in.PaymentTerms
	if terms == "" {
		terms = entity.TermsNet30
	}
	inv := &entity.Invoice{
		ID:              uuid.New().String(),
		CustomerID:      customer.ID,
		JobOrderID:      emptyToNil(in.JobOrderID),
		Status:          status,
		PaymentTerms:    terms,
		InvoiceDate:     now,
		DueDate:         in.DueDate,
		Subtotal:        in.Subtotal,
		TaxRate:         in.TaxRate,
		DiscountAmount:  in.DiscountAmount,
		Notes:           in.Notes,
		TermsConditions: in.TermsConditions,
		CreatedBy:       actor.Ref(),
		UpdatedAt:       now,
	}
	if in.InvoiceDate != nil {
		inv.InvoiceDate = *in.InvoiceDate
	}

	items := make([]*entity.InvoiceItem, 0, len(in.Items))
	for i, it := range in.Items {
		item, err := newInvoiceItem(inv.ID, it, i)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	billing.EnsureDueDate(inv)
	billing.Recalculate(inv, items)

	err = uc.seq.Issue(ctx, numbering.Invoice, func(number string, r ports.Repos) error {
		inv.InvoiceNumber = number
		if err := r.Invoices.Create(ctx, inv); err != nil {
			return err
		}
		for _, it := range items {
			if err := r.Invoices.CreateItem(ctx, it); err != nil {
				return err
			}
		}
		return r.Receivables.Create(ctx, billing.ReceivableFor(inv, uuid.New().String(), now))
	})
	if err != nil {
		return nil, fmt.Errorf("accounting: crear factura: %w", err)
	}
	log.Info().Str("invoice_id", inv.ID).Str("invoice_number", inv.InvoiceNumber).Str("total", inv.TotalAmount.String()).Msg("factura creada")
	out := toInvoiceResponse(inv, items)
	return &out, nil
}

// GetByID factura con sus líneas.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.InvoiceResponse, error) {
	if !access.Can(actor.Role, access.Accounting) {
		return nil, domain.ErrNotFound
	}
	inv, err := uc.repos.Invoices.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("accounting: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.repos.Invoices.ListItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("accounting: líneas de factura: %w", err)
	}
	out := toInvoiceResponse(inv, items)
	return &out, nil
}

// Update aplica la edición parcial y recalcula: editar el descuento o la tasa mueve
// total y balance_due. Cambiar las condiciones sin vencimiento explícito lo recalcula.
func (uc *InvoiceUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := access.Check(actor.Role, access.Accounting); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, id, func(_ ports.Repos, inv *entity.Invoice) error {
		if in.Status != nil {
			inv.Status = *in.Status
		}
		if in.PaymentTerms != nil && *in.PaymentTerms != inv.PaymentTerms {
			inv.PaymentTerms = *in.PaymentTerms
			if in.DueDate == nil {
				inv.DueDate = nil
			}
		}
		if in.DueDate != nil {
			inv.DueDate = in.DueDate
		}
		if in.Subtotal != nil {
			inv.Subtotal = *in.Subtotal
		}
		if in.TaxRate != nil {
			inv.TaxRate = *in.TaxRate
		}
		if in.DiscountAmount != nil {
			inv.DiscountAmount = *in.DiscountAmount
		}
		if inv.Subtotal.IsNegative() || inv.TaxRate.IsNegative() || inv.DiscountAmount.IsNegative() {
			return domain.NewValidationError("amount", "los montos no pueden ser negativos")
		}
		setString(&inv.Notes, in.Notes)
		setString(&inv.TermsConditions, in.TermsConditions)
		return nil
	})
}

// AddItem agrega una línea; el subtotal pasa a ser la suma de las líneas.
func (uc *InvoiceUseCase) AddItem(ctx context.Context, actor entity.Actor, invoiceID string, in dto.InvoiceItemRequest) (*dto.InvoiceResponse, error) {
	if err := access.Check(actor.Role, access.Accounting); err != nil {
		return nil, err
	}
	item, err := newInvoiceItem(invoiceID, in, 0)
	if err != nil {
		return nil, err
	}
	return uc.mutate(ctx, invoiceID, func(r ports.Repos, _ *entity.Invoice) error {
		return r.Invoices.CreateItem(ctx, item)
	})
}

// UpdateItem edita una línea; total_price y los montos de la factura se recalculan.
func (uc *InvoiceUseCase) UpdateItem(ctx context.Context, actor entity.Actor, invoiceID, itemID string, in dto.UpdateInvoiceItemRequest) (*dto.InvoiceResponse, error) {
	if err := access.Check(actor.Role, access.Accounting); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, invoiceID, func(r ports.Repos, _ *entity.Invoice) error {
		item, err := findInvoiceItem(ctx, r, invoiceID, itemID)
		if err != nil {
			return err
		}
		if in.Description != nil {
			item.Description = *in.Description
		}
		if in.PartID != nil {
			item.PartID = emptyToNil(in.PartID)
		}
		if in.Quantity != nil {
			if !in.Quantity.IsPositive() {
				return domain.NewValidationError("quantity", "debe ser mayor que cero")
			}
			item.Quantity = *in.Quantity
		}
		if in.UnitPrice != nil {
			if in.UnitPrice.IsNegative() {
				return domain.NewValidationError("unit_price", "no puede ser negativo")
			}
			item.UnitPrice = *in.UnitPrice
		}
		pricing.ApplyInvoiceItem(item)
		return r.Invoices.UpdateItem(ctx, item)
	})
}

// DeleteItem quita una línea. Sin líneas restantes el subtotal queda en lo que no venía de ellas.
func (uc *InvoiceUseCase) DeleteItem(ctx context.Context, actor entity.Actor, invoiceID, itemID string) (*dto.InvoiceResponse, error) {
	if err := access.Check(actor.Role, access.Accounting); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, invoiceID, func(r ports.Repos, inv *entity.Invoice) error {
		item, err := findInvoiceItem(ctx, r, invoiceID, itemID)
		if err != nil {
			return err
		}
		if err := r.Invoices.DeleteItem(ctx, item.ID); err != nil {
			return err
		}
		inv.Subtotal = inv.Subtotal.Sub(item.TotalPrice)
		if inv.Subtotal.IsNegative() {
			inv.Subtotal = decimal.Zero
		}
		return nil
	})
}

// Delete elimina una factura sin cobros aplicados.
func (uc *InvoiceUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if err := access.Check(actor.Role, access.Accounting); err != nil {
		return err
	}
	inv, err := uc.repos.Invoices.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("accounting: obtener factura: %w", err)
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	if inv.PaidAmount.IsPositive() {
		return domain.ErrConflict
	}
	return uc.repos.Invoices.Delete(ctx, id)
}

// mutate toma la factura con bloqueo, aplica edit, recalcula desde las líneas y sincroniza
// la cuenta por cobrar. Es la única ruta de edición de facturas.
func (uc *InvoiceUseCase) mutate(ctx context.Context, id string, edit func(r ports.Repos, inv *entity.Invoice) error) (*dto.InvoiceResponse, error) {
	var (
		inv   *entity.Invoice
		items []*entity.InvoiceItem
	)
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		var err error
		inv, err = r.Invoices.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if err := edit(r, inv); err != nil {
			return err
		}
		items, err = r.Invoices.ListItems(ctx, id)
		if err != nil {
			return err
		}
		now := time.Now()
		billing.EnsureDueDate(inv)
		billing.Recalculate(inv, items)
		inv.UpdatedAt = now
		if err := r.Invoices.Update(ctx, inv); err != nil {
			return err
		}
		return syncReceivable(ctx, r, inv, now)
	})
	if err != nil {
		return nil, fmt.Errorf("accounting: actualizar factura: %w", err)
	}
	out := toInvoiceResponse(inv, items)
	return &out, nil
}

// findInvoiceItem línea de la factura; una línea de otra factura cuenta como inexistente.
func findInvoiceItem(ctx context.Context, r ports.Repos, invoiceID, itemID string) (*entity.InvoiceItem, error) {
	items, err := r.Invoices.ListItems(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.ID == itemID {
			return it, nil
		}
	}
	return nil, domain.ErrNotFound
}

func syncReceivable(ctx context.Context, r ports.Repos, inv *entity.Invoice, now time.Time) error {
	ar, err := r.Receivables.GetByInvoice(ctx, inv.ID)
	if err != nil {
		return err
	}
	if ar == nil {
		return r.Receivables.Create(ctx, billing.ReceivableFor(inv, uuid.New().String(), now))
	}
	ar.OriginalAmount = inv.TotalAmount
	billing.SyncReceivable(ar, inv, now)
	return r.Receivables.Update(ctx, ar)
}

func newInvoiceItem(invoiceID string, in dto.InvoiceItemRequest, idx int) (*entity.InvoiceItem, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.NewValidationError(fmt.Sprintf("items[%d].quantity", idx), "debe ser mayor que cero")
	}
	if in.UnitPrice.IsNegative() {
		return nil, domain.NewValidationError(fmt.Sprintf("items[%d].unit_price", idx), "no puede ser negativo")
	}
	item := &entity.InvoiceItem{
		ID:          uuid.New().String(),
		InvoiceID:   invoiceID,
		Description: in.Description,
		PartID:      emptyToNil(in.PartID),
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
	}
	pricing.ApplyInvoiceItem(item)
	return item, nil
}
