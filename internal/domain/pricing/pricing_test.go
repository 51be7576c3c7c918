package pricing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/pricing"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales de línea
// ──────────────────────────────────────────────────────────────────────────────

func TestJobItemTotal_ManoDeObraUsaHorasPorTarifa(t *testing.T) {
	item := &entity.JobOrderItem{
		ItemType:    entity.ItemTypeLabor,
		Quantity:    dec("7"),
		UnitPrice:   dec("999"),
		HoursWorked: decPtr("2"),
		HourlyRate:  decPtr("50"),
	}
	pricing.ApplyJobItem(item)
	assert.True(t, item.TotalPrice.Equal(dec("100")), "got %s", item.TotalPrice)
}

func TestJobItemTotal_ManoDeObraSinTarifaUsaCantidad(t *testing.T) {
	item := &entity.JobOrderItem{
		ItemType:    entity.ItemTypeLabor,
		Quantity:    dec("1.5"),
		UnitPrice:   dec("40"),
		HoursWorked: decPtr("3"),
	}
	pricing.ApplyJobItem(item)
	assert.True(t, item.TotalPrice.Equal(dec("60")), "got %s", item.TotalPrice)
}

func TestJobItemTotal_RepuestoIgnoraHoras(t *testing.T) {
	item := &entity.JobOrderItem{
		ItemType:    entity.ItemTypePart,
		Quantity:    dec("2"),
		UnitPrice:   dec("12.50"),
		HoursWorked: decPtr("4"),
		HourlyRate:  decPtr("80"),
	}
	assert.True(t, pricing.JobItemTotal(item).Equal(dec("25")))
}

func TestApplyJobItem_RecalculaAlCambiarCantidad(t *testing.T) {
	item := &entity.JobOrderItem{ItemType: entity.ItemTypeService, Quantity: dec("1"), UnitPrice: dec("30")}
	pricing.ApplyJobItem(item)
	require.True(t, item.TotalPrice.Equal(dec("30")))

	item.Quantity = dec("3")
	pricing.ApplyJobItem(item)
	assert.True(t, item.TotalPrice.Equal(dec("90")))
}

func TestInvoiceItem_TresPor1999(t *testing.T) {
	item := &entity.InvoiceItem{Quantity: dec("3"), UnitPrice: dec("19.99")}
	pricing.ApplyInvoiceItem(item)
	assert.Equal(t, "59.97", item.TotalPrice.StringFixed(2))
}

func TestPurchaseItem_TotalCosto(t *testing.T) {
	item := &entity.PurchaseOrderItem{QuantityOrdered: dec("4"), UnitCost: dec("7.25")}
	pricing.ApplyPurchaseItem(item)
	assert.Equal(t, "29.00", item.TotalCost.StringFixed(2))
}

// ──────────────────────────────────────────────────────────────────────────────
// Vencimientos y horas
// ──────────────────────────────────────────────────────────────────────────────

func TestDueDate_TablaDeCondiciones(t *testing.T) {
	base := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	cases := map[string]time.Time{
		entity.TermsDueOnReceipt: base,
		entity.TermsNet15:        time.Date(2024, time.June, 16, 9, 0, 0, 0, time.UTC),
		entity.TermsNet30:        time.Date(2024, time.July, 1, 9, 0, 0, 0, time.UTC),
		entity.TermsNet45:        time.Date(2024, time.July, 16, 9, 0, 0, 0, time.UTC),
		entity.TermsNet60:        time.Date(2024, time.July, 31, 9, 0, 0, 0, time.UTC),
	}
	for terms, want := range cases {
		assert.True(t, want.Equal(pricing.DueDate(base, terms)), "terms %s", terms)
	}
	assert.False(t, pricing.IsValidTerms("net_90"))
}

func TestHoursBetween_Fraccionarias(t *testing.T) {
	start := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(2*time.Hour + 30*time.Minute)
	h := pricing.HoursBetween(start, &end)
	require.NotNil(t, h)
	assert.Equal(t, "2.50", h.StringFixed(2))
}

func TestHoursBetween_SinFinQuedaNil(t *testing.T) {
	tt := &entity.TechnicianTime{StartTime: time.Now(), HoursWorked: decPtr("9")}
	pricing.ApplyTechnicianTime(tt)
	assert.Nil(t, tt.HoursWorked, "sin hora de fin no se deriva (ni se deja en cero)")
}
