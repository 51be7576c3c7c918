package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ParentID:    c.ParentID,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}

func toSupplierResponse(s *entity.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		AddressLine1:  s.AddressLine1,
		AddressLine2:  s.AddressLine2,
		City:          s.City,
		State:         s.State,
		PostalCode:    s.PostalCode,
		Country:       s.Country,
		TaxID:         s.TaxID,
		Website:       s.Website,
		PaymentTerms:  s.PaymentTerms,
		CreditLimit:   s.CreditLimit,
		Notes:         s.Notes,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func toPartResponse(p *entity.Part) dto.PartResponse {
	return dto.PartResponse{
		ID:              p.ID,
		SKU:             p.SKU,
		Name:            p.Name,
		Description:     p.Description,
		Brand:           p.Brand,
		Model:           p.Model,
		PartNumber:      p.PartNumber,
		CategoryID:      p.CategoryID,
		SupplierID:      p.SupplierID,
		CostPrice:       p.CostPrice,
		SellingPrice:    p.SellingPrice,
		CurrentStock:    p.CurrentStock,
		MinimumStock:    p.MinimumStock,
		MaximumStock:    p.MaximumStock,
		ReorderPoint:    p.ReorderPoint,
		ReorderQuantity: p.ReorderQuantity,
		Unit:            p.Unit,
		Location:        p.Location,
		Notes:           p.Notes,
		IsActive:        p.IsActive,
		IsLowStock:      p.IsLowStock(),
		NeedsReorder:    p.NeedsReorder(),
		ProfitMargin:    p.ProfitMargin(),
		CreatedBy:       p.CreatedBy,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:            m.ID,
		PartID:        m.PartID,
		MovementType:  m.MovementType,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		Notes:         m.Notes,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}

func toPurchaseOrderResponse(po *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) dto.PurchaseOrderResponse {
	out := dto.PurchaseOrderResponse{
		ID:               po.ID,
		PONumber:         po.PONumber,
		SupplierID:       po.SupplierID,
		Status:           po.Status,
		OrderDate:        po.OrderDate,
		ExpectedDelivery: po.ExpectedDelivery,
		ActualDelivery:   po.ActualDelivery,
		Subtotal:         po.Subtotal,
		TaxAmount:        po.TaxAmount,
		ShippingCost:     po.ShippingCost,
		TotalAmount:      po.TotalAmount,
		Notes:            po.Notes,
		TermsConditions:  po.TermsConditions,
		CreatedBy:        po.CreatedBy,
		UpdatedAt:        po.UpdatedAt,
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.PurchaseOrderItemResponse{
			ID:               it.ID,
			PartID:           it.PartID,
			QuantityOrdered:  it.QuantityOrdered,
			QuantityReceived: it.QuantityReceived,
			UnitCost:         it.UnitCost,
			TotalCost:        it.TotalCost,
		})
	}
	return out
}

func validatePrices(cost, selling decimal.Decimal) error {
	if cost.IsNegative() {
		return domain.NewValidationError("cost_price", "no puede ser negativo")
	}
	if selling.IsNegative() {
		return domain.NewValidationError("selling_price", "no puede ser negativo")
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
