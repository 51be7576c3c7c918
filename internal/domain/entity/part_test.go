package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

func TestPart_StockBajoUsaMenorOIgual(t *testing.T) {
	p := &entity.Part{CurrentStock: decimal.NewFromInt(5), MinimumStock: decimal.NewFromInt(5)}
	assert.True(t, p.IsLowStock())

	p.CurrentStock = decimal.NewFromInt(6)
	assert.False(t, p.IsLowStock())
}

func TestPart_NecesitaReorden(t *testing.T) {
	p := &entity.Part{CurrentStock: decimal.NewFromInt(8), ReorderPoint: decimal.NewFromInt(8)}
	assert.True(t, p.NeedsReorder())
	p.ReorderPoint = decimal.NewFromInt(2)
	assert.False(t, p.NeedsReorder())
}

func TestPart_MargenDeGanancia(t *testing.T) {
	p := &entity.Part{CostPrice: decimal.NewFromInt(80), SellingPrice: decimal.NewFromInt(100)}
	assert.Equal(t, "25.00", p.ProfitMargin().StringFixed(2))

	p.CostPrice = decimal.Zero
	assert.True(t, p.ProfitMargin().IsZero(), "sin costo no hay margen")
}
