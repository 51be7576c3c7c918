package accounting

import (
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

func toInvoiceResponse(inv *entity.Invoice, items []*entity.InvoiceItem) dto.InvoiceResponse {
	out := dto.InvoiceResponse{
		ID:              inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerID:      inv.CustomerID,
		JobOrderID:      inv.JobOrderID,
		Status:          inv.Status,
		PaymentTerms:    inv.PaymentTerms,
		InvoiceDate:     inv.InvoiceDate,
		DueDate:         inv.DueDate,
		PaidDate:        inv.PaidDate,
		Subtotal:        inv.Subtotal,
		TaxRate:         inv.TaxRate,
		TaxAmount:       inv.TaxAmount,
		DiscountAmount:  inv.DiscountAmount,
		TotalAmount:     inv.TotalAmount,
		PaidAmount:      inv.PaidAmount,
		BalanceDue:      inv.BalanceDue,
		Notes:           inv.Notes,
		TermsConditions: inv.TermsConditions,
		CreatedBy:       inv.CreatedBy,
		UpdatedAt:       inv.UpdatedAt,
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.InvoiceItemResponse{
			ID:          it.ID,
			Description: it.Description,
			PartID:      it.PartID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
		})
	}
	return out
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:              p.ID,
		PaymentNumber:   p.PaymentNumber,
		InvoiceID:       p.InvoiceID,
		CustomerID:      p.CustomerID,
		Amount:          p.Amount,
		PaymentMethod:   p.PaymentMethod,
		Status:          p.Status,
		TransactionID:   p.TransactionID,
		ReferenceNumber: p.ReferenceNumber,
		PaymentDate:     p.PaymentDate,
		ProcessedDate:   p.ProcessedDate,
		Notes:           p.Notes,
		CreatedBy:       p.CreatedBy,
		ProcessedBy:     p.ProcessedBy,
	}
}

func toSupplierPaymentResponse(p *entity.SupplierPayment) dto.SupplierPaymentResponse {
	return dto.SupplierPaymentResponse{
		ID:              p.ID,
		PaymentNumber:   p.PaymentNumber,
		SupplierID:      p.SupplierID,
		PurchaseOrderID: p.PurchaseOrderID,
		Amount:          p.Amount,
		PaymentMethod:   p.PaymentMethod,
		Status:          p.Status,
		TransactionID:   p.TransactionID,
		ReferenceNumber: p.ReferenceNumber,
		CheckNumber:     p.CheckNumber,
		PaymentDate:     p.PaymentDate,
		DueDate:         p.DueDate,
		ProcessedDate:   p.ProcessedDate,
		Notes:           p.Notes,
		CreatedBy:       p.CreatedBy,
		ProcessedBy:     p.ProcessedBy,
	}
}

func toExpenseResponse(e *entity.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:            e.ID,
		ExpenseNumber: e.ExpenseNumber,
		Category:      e.Category,
		Description:   e.Description,
		Amount:        e.Amount,
		Status:        e.Status,
		ExpenseDate:   e.ExpenseDate,
		ApprovedDate:  e.ApprovedDate,
		PaidDate:      e.PaidDate,
		Notes:         e.Notes,
		CreatedBy:     e.CreatedBy,
		ApprovedBy:    e.ApprovedBy,
	}
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
