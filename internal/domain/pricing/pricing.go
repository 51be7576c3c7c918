// Package pricing reúne los campos derivados que se recalculan en cada guardado:
// totales de línea, fecha de vencimiento por condición de pago y horas trabajadas.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// moneyPlaces decimales con que se persisten montos y horas (NUMERIC(x,2)).
const moneyPlaces = 2

// termDays tabla fija de días por condición de pago.
var termDays = map[string]int{
	entity.TermsDueOnReceipt: 0,
	entity.TermsNet15:        15,
	entity.TermsNet30:        30,
	entity.TermsNet45:        45,
	entity.TermsNet60:        60,
}

// LineTotal cantidad × precio unitario.
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Round(moneyPlaces)
}

// JobItemTotal total de un ítem de orden de trabajo. Para mano de obra con horas y tarifa
// informadas (distintas de cero) es horas × tarifa; en cualquier otro caso cantidad × precio.
func JobItemTotal(item *entity.JobOrderItem) decimal.Decimal {
	if item.ItemType == entity.ItemTypeLabor &&
		item.HoursWorked != nil && !item.HoursWorked.IsZero() &&
		item.HourlyRate != nil && !item.HourlyRate.IsZero() {
		return item.HoursWorked.Mul(*item.HourlyRate).Round(moneyPlaces)
	}
	return LineTotal(item.Quantity, item.UnitPrice)
}

// IsValidTerms indica si la condición de pago está en la tabla.
func IsValidTerms(terms string) bool {
	_, ok := termDays[terms]
	return ok
}

// DueDate fecha de factura + días de la condición. Una condición desconocida suma 0 días.
func DueDate(invoiceDate time.Time, terms string) time.Time {
	return invoiceDate.AddDate(0, 0, termDays[terms])
}

// HoursBetween horas fraccionarias entre inicio y fin. Devuelve nil si falta el fin.
func HoursBetween(start time.Time, end *time.Time) *decimal.Decimal {
	if end == nil || start.IsZero() {
		return nil
	}
	h := decimal.NewFromFloat(end.Sub(start).Seconds()).Div(decimal.NewFromInt(3600)).Round(moneyPlaces)
	return &h
}

// ApplyJobItem recalcula TotalPrice sobre el ítem.
func ApplyJobItem(item *entity.JobOrderItem) {
	item.TotalPrice = JobItemTotal(item)
}

// ApplyTechnicianTime recalcula HoursWorked sobre el registro de tiempo.
func ApplyTechnicianTime(tt *entity.TechnicianTime) {
	tt.HoursWorked = HoursBetween(tt.StartTime, tt.EndTime)
}

// ApplyInvoiceItem recalcula TotalPrice de la línea de factura.
func ApplyInvoiceItem(item *entity.InvoiceItem) {
	item.TotalPrice = LineTotal(item.Quantity, item.UnitPrice)
}

// ApplyPurchaseItem recalcula TotalCost de la línea de compra.
func ApplyPurchaseItem(item *entity.PurchaseOrderItem) {
	item.TotalCost = LineTotal(item.QuantityOrdered, item.UnitCost)
}
