package inventory

import (
	"context"
	"fmt"
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
	domaininv "github.com/jhoicas/taller-api/internal/domain/inventory"
	"github.com/jhoicas/taller-api/internal/domain/numbering"
	"github.com/jhoicas/taller-api/internal/domain/pricing"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// PurchaseOrderReference reference_type de los movimientos generados al recibir.
const PurchaseOrderReference = "purchase_order"

// PurchaseOrderUseCase pedidos a proveedor, su recepción y la cuenta por pagar asociada.
type PurchaseOrderUseCase struct {
	orders    repository.PurchaseOrderRepository
	suppliers repository.SupplierRepository
	parts     repository.PartRepository
	tx        ports.TxRunner
	seq       *sequence.Generator
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	orders repository.PurchaseOrderRepository,
	suppliers repository.SupplierRepository,
	parts repository.PartRepository,
	tx ports.TxRunner,
	seq *sequence.Generator,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{orders: orders, suppliers: suppliers, parts: parts, tx: tx, seq: seq}
}

// List pedidos filtrados; vacío sin acceso.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, actor entity.Actor, in dto.PurchaseOrderListRequest) (dto.ListResponse[dto.PurchaseOrderResponse], error) {
	in.DefaultPage()
	if !access.Can(actor.Role, access.Inventory) {
		return dto.NewList[dto.PurchaseOrderResponse](nil, in.PageRequest), nil
	}
	rows, err := uc.orders.List(ctx, repository.PurchaseOrderFilter{
		SupplierID: in.SupplierID,
		Status:     in.Status,
		Page:       repository.Page{Limit: in.Limit, Offset: in.Offset},
	})
	if err != nil {
		return dto.ListResponse[dto.PurchaseOrderResponse]{}, fmt.Errorf("inventory: listar órdenes de compra: %w", err)
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(rows))
	for _, po := range rows {
		items = append(items, toPurchaseOrderResponse(po, nil))
	}
	return dto.NewList(items, in.PageRequest), nil
}

// Create asigna el número PO, calcula totales desde las líneas y abre la cuenta por pagar,
// todo en la transacción de la numeración.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if err := access.Check(actor.Role, access.Inventory); err != nil {
		return nil, err
	}
	supplier, err := uc.suppliers.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("inventory: obtener proveedor: %w", err)
	}
	if supplier == nil {
		return nil, domain.NewValidationError("supplier_id", "proveedor inexistente")
	}
	if in.TaxAmount.IsNegative() || in.ShippingCost.IsNegative() {
		return nil, domain.NewValidationError("amount", "los montos no pueden ser negativos")
	}

	now := time.Now()
	status := in.Status
	if status == "" {
		status = entity.POStatusDraft
	}
	po := &entity.PurchaseOrder{
		ID:               uuid.New().String(),
		SupplierID:       supplier.ID,
		Status:           status,
		OrderDate:        now,
		ExpectedDelivery: in.ExpectedDelivery,
		TaxAmount:        in.TaxAmount,
		ShippingCost:     in.ShippingCost,
		Notes:            in.Notes,
		TermsConditions:  in.TermsConditions,
		CreatedBy:        actor.Ref(),
		UpdatedAt:        now,
	}
	if in.OrderDate != nil {
		po.OrderDate = *in.OrderDate
	}

	items := make([]*entity.PurchaseOrderItem, 0, len(in.Items))
	for i, it := range in.Items {
		if !it.QuantityOrdered.IsPositive() {
			return nil, domain.NewValidationError(fmt.Sprintf("items[%d].quantity_ordered", i), "debe ser mayor que cero")
		}
		if it.UnitCost.IsNegative() {
			return nil, domain.NewValidationError(fmt.Sprintf("items[%d].unit_cost", i), "no puede ser negativo")
		}
		part, err := uc.parts.GetByID(ctx, it.PartID)
		if err != nil {
			return nil, fmt.Errorf("inventory: obtener repuesto: %w", err)
		}
		if part == nil {
			return nil, domain.NewValidationError(fmt.Sprintf("items[%d].part_id", i), "repuesto inexistente")
		}
		items = append(items, &entity.PurchaseOrderItem{
			ID:              uuid.New().String(),
			PurchaseOrderID: po.ID,
			PartID:          part.ID,
			QuantityOrdered: it.QuantityOrdered,
			UnitCost:        it.UnitCost,
		})
	}
	billing.RecalculatePurchaseOrder(po, items)

	err = uc.seq.Issue(ctx, numbering.PurchaseOrder, func(number string, r ports.Repos) error {
		po.PONumber = number
		if err := r.PurchaseOrders.Create(ctx, po); err != nil {
			return err
		}
		for _, it := range items {
			if err := r.PurchaseOrders.CreateItem(ctx, it); err != nil {
				return err
			}
		}
		return r.Payables.Create(ctx, billing.PayableFor(po, billing.PayableDueDate(po), uuid.New().String(), now))
	})
	if err != nil {
		return nil, fmt.Errorf("inventory: crear orden de compra: %w", err)
	}
	log.Info().Str("purchase_order_id", po.ID).Str("po_number", po.PONumber).Str("total", po.TotalAmount.String()).Msg("orden de compra creada")
	out := toPurchaseOrderResponse(po, items)
	return &out, nil
}

// GetByID detalle con líneas.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.PurchaseOrderResponse, error) {
	if !access.Can(actor.Role, access.Inventory) {
		return nil, domain.ErrNotFound
	}
	po, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("inventory: obtener orden de compra: %w", err)
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orders.ListItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("inventory: líneas de la orden: %w", err)
	}
	out := toPurchaseOrderResponse(po, items)
	return &out, nil
}

// Update edita la cabecera, recalcula el total y ajusta la cuenta por pagar.
// Cancelar deja la cuenta sin saldo. Una orden recibida o cancelada no se edita.
func (uc *PurchaseOrderUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if err := access.Check(actor.Role, access.Inventory); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, id, func(_ ports.Repos, po *entity.PurchaseOrder) error {
		if in.Status != nil {
			po.Status = *in.Status
		}
		if in.ExpectedDelivery != nil {
			po.ExpectedDelivery = in.ExpectedDelivery
		}
		if in.TaxAmount != nil {
			po.TaxAmount = *in.TaxAmount
		}
		if in.ShippingCost != nil {
			po.ShippingCost = *in.ShippingCost
		}
		if po.TaxAmount.IsNegative() || po.ShippingCost.IsNegative() {
			return domain.NewValidationError("amount", "los montos no pueden ser negativos")
		}
		setString(&po.Notes, in.Notes)
		setString(&po.TermsConditions, in.TermsConditions)
		return nil
	})
}

// AddItem agrega una línea al pedido abierto.
func (uc *PurchaseOrderUseCase) AddItem(ctx context.Context, actor entity.Actor, id string, in dto.PurchaseOrderItemRequest) (*dto.PurchaseOrderResponse, error) {
	if err := access.Check(actor.Role, access.Inventory); err != nil {
		return nil, err
	}
	if !in.QuantityOrdered.IsPositive() {
		return nil, domain.NewValidationError("quantity_ordered", "debe ser mayor que cero")
	}
	if in.UnitCost.IsNegative() {
		return nil, domain.NewValidationError("unit_cost", "no puede ser negativo")
	}
	part, err := uc.parts.GetByID(ctx, in.PartID)
	if err != nil {
		return nil, fmt.Errorf("inventory: obtener repuesto: %w", err)
	}
	if part == nil {
		return nil, domain.NewValidationError("part_id", "repuesto inexistente")
	}
	return uc.mutate(ctx, id, func(r ports.Repos, po *entity.PurchaseOrder) error {
		return r.PurchaseOrders.CreateItem(ctx, &entity.PurchaseOrderItem{
			ID:              uuid.New().String(),
			PurchaseOrderID: po.ID,
			PartID:          part.ID,
			QuantityOrdered: in.QuantityOrdered,
			UnitCost:        in.UnitCost,
		})
	})
}

// UpdateItem edita cantidad pedida y costo; total_cost, el total del pedido y la cuenta por
// pagar se recalculan. No se puede pedir menos de lo ya recibido.
func (uc *PurchaseOrderUseCase) UpdateItem(ctx context.Context, actor entity.Actor, id, itemID string, in dto.UpdatePurchaseOrderItemRequest) (*dto.PurchaseOrderResponse, error) {
	if err := access.Check(actor.Role, access.Inventory); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, id, func(r ports.Repos, _ *entity.PurchaseOrder) error {
		it, err := findPurchaseOrderItem(ctx, r, id, itemID)
		if err != nil {
			return err
		}
		if in.QuantityOrdered != nil {
			if !in.QuantityOrdered.IsPositive() {
				return domain.NewValidationError("quantity_ordered", "debe ser mayor que cero")
			}
			if in.QuantityOrdered.LessThan(it.QuantityReceived) {
				return domain.NewValidationError("quantity_ordered", "menor que lo ya recibido")
			}
			it.QuantityOrdered = *in.QuantityOrdered
		}
		if in.UnitCost != nil {
			if in.UnitCost.IsNegative() {
				return domain.NewValidationError("unit_cost", "no puede ser negativo")
			}
			it.UnitCost = *in.UnitCost
		}
		pricing.ApplyPurchaseItem(it)
		return r.PurchaseOrders.UpdateItem(ctx, it)
	})
}

// DeleteItem quita una línea sin recepciones.
func (uc *PurchaseOrderUseCase) DeleteItem(ctx context.Context, actor entity.Actor, id, itemID string) (*dto.PurchaseOrderResponse, error) {
	if err := access.Check(actor.Role, access.Inventory); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, id, func(r ports.Repos, po *entity.PurchaseOrder) error {
		it, err := findPurchaseOrderItem(ctx, r, id, itemID)
		if err != nil {
			return err
		}
		if it.QuantityReceived.IsPositive() {
			return domain.ErrConflict
		}
		if err := r.PurchaseOrders.DeleteItem(ctx, it.ID); err != nil {
			return err
		}
		po.Subtotal = po.Subtotal.Sub(it.TotalCost)
		if po.Subtotal.IsNegative() {
			po.Subtotal = decimal.Zero
		}
		return nil
	})
}

// mutate toma el pedido con bloqueo, rechaza los cerrados, aplica edit, recalcula desde las
// líneas y sincroniza la cuenta por pagar.
func (uc *PurchaseOrderUseCase) mutate(ctx context.Context, id string, edit func(r ports.Repos, po *entity.PurchaseOrder) error) (*dto.PurchaseOrderResponse, error) {
	var (
		po    *entity.PurchaseOrder
		items []*entity.PurchaseOrderItem
	)
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		var err error
		po, err = r.PurchaseOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if isClosed(po) {
			return domain.ErrConflict
		}
		if err := edit(r, po); err != nil {
			return err
		}
		items, err = r.PurchaseOrders.ListItems(ctx, id)
		if err != nil {
			return err
		}
		now := time.Now()
		billing.RecalculatePurchaseOrder(po, items)
		po.UpdatedAt = now
		if err := r.PurchaseOrders.Update(ctx, po); err != nil {
			return err
		}
		return uc.syncPayable(ctx, r, po, now)
	})
	if err != nil {
		return nil, fmt.Errorf("inventory: actualizar orden de compra: %w", err)
	}
	out := toPurchaseOrderResponse(po, items)
	return &out, nil
}

func findPurchaseOrderItem(ctx context.Context, r ports.Repos, poID, itemID string) (*entity.PurchaseOrderItem, error) {
	items, err := r.PurchaseOrders.ListItems(ctx, poID)
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

// Receive ingresa al stock lo recibido: un movimiento purchase por línea con la orden como
// referencia. Sin líneas en la entrada se recibe el saldo pendiente de cada una.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, actor entity.Actor, id string, in dto.ReceivePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if err := access.Check(actor.Role, access.Inventory); err != nil {
		return nil, err
	}
	var (
		po    *entity.PurchaseOrder
		items []*entity.PurchaseOrderItem
	)
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		var err error
		po, err = r.PurchaseOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if isClosed(po) {
			return domain.ErrConflict
		}
		items, err = r.PurchaseOrders.ListItems(ctx, id)
		if err != nil {
			return err
		}
		quantities, err := receiveQuantities(items, in.Items)
		if err != nil {
			return err
		}

		now := time.Now()
		ref := po.ID
		notes := in.Notes
		if notes == "" {
			notes = "Received " + po.PONumber
		}
		for _, it := range items {
			qty, ok := quantities[it.ID]
			if !ok || !qty.IsPositive() {
				continue
			}
			part, err := r.Parts.GetForUpdate(ctx, it.PartID)
			if err != nil {
				return err
			}
			if part == nil {
				return domain.ErrNotFound
			}
			mov, err := domaininv.Apply(part, domaininv.MovementInput{
				MovementType:  entity.MovementPurchase,
				Quantity:      qty,
				ReferenceType: PurchaseOrderReference,
				ReferenceID:   &ref,
				Notes:         notes,
				CreatedBy:     actor.Ref(),
			}, uuid.New().String(), now)
			if err != nil {
				return err
			}
			if err := r.Parts.UpdateStock(ctx, part); err != nil {
				return err
			}
			if err := r.StockMovements.Create(ctx, mov); err != nil {
				return err
			}
			it.QuantityReceived = it.QuantityReceived.Add(qty)
			if err := r.PurchaseOrders.UpdateItem(ctx, it); err != nil {
				return err
			}
		}

		if fullyReceived(items) {
			po.Status = entity.POStatusReceived
			delivered := now
			po.ActualDelivery = &delivered
		}
		po.UpdatedAt = now
		return r.PurchaseOrders.Update(ctx, po)
	})
	if err != nil {
		return nil, fmt.Errorf("inventory: recibir orden de compra: %w", err)
	}
	log.Info().Str("purchase_order_id", po.ID).Str("status", po.Status).Msg("orden de compra recibida")
	out := toPurchaseOrderResponse(po, items)
	return &out, nil
}

// Delete elimina una orden en borrador.
func (uc *PurchaseOrderUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if err := access.Check(actor.Role, access.Inventory); err != nil {
		return err
	}
	po, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("inventory: obtener orden de compra: %w", err)
	}
	if po == nil {
		return domain.ErrNotFound
	}
	if po.Status != entity.POStatusDraft {
		return domain.ErrConflict
	}
	return uc.orders.Delete(ctx, id)
}

func (uc *PurchaseOrderUseCase) syncPayable(ctx context.Context, r ports.Repos, po *entity.PurchaseOrder, now time.Time) error {
	ap, err := r.Payables.GetByPurchaseOrder(ctx, po.ID)
	if err != nil {
		return err
	}
	if ap == nil {
		if po.Status == entity.POStatusCancelled {
			return nil
		}
		return r.Payables.Create(ctx, billing.PayableFor(po, billing.PayableDueDate(po), uuid.New().String(), now))
	}
	if po.Status == entity.POStatusCancelled {
		billing.ClosePayable(ap, now)
	} else {
		billing.SyncPayable(ap, po, now)
		ap.DueDate = billing.PayableDueDate(po)
	}
	return r.Payables.Update(ctx, ap)
}

func isClosed(po *entity.PurchaseOrder) bool {
	return po.Status == entity.POStatusReceived || po.Status == entity.POStatusCancelled
}

// receiveQuantities cantidad a recibir por línea. Sin entrada explícita se toma el pendiente.
func receiveQuantities(items []*entity.PurchaseOrderItem, req []dto.ReceiveItemRequest) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(items))
	if len(req) == 0 {
		for _, it := range items {
			out[it.ID] = it.QuantityOrdered.Sub(it.QuantityReceived)
		}
		return out, nil
	}
	known := make(map[string]bool, len(items))
	for _, it := range items {
		known[it.ID] = true
	}
	for i, r := range req {
		if !known[r.ItemID] {
			return nil, domain.NewValidationError(fmt.Sprintf("items[%d].item_id", i), "la línea no pertenece a la orden")
		}
		if !r.Quantity.IsPositive() {
			return nil, domain.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "debe ser mayor que cero")
		}
		out[r.ItemID] = out[r.ItemID].Add(r.Quantity)
	}
	return out, nil
}

func fullyReceived(items []*entity.PurchaseOrderItem) bool {
	for _, it := range items {
		if it.QuantityReceived.LessThan(it.QuantityOrdered) {
			return false
		}
	}
	return true
}
