package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/inventory"
)

func part(stock int64) *entity.Part {
	return &entity.Part{ID: "p1", CurrentStock: decimal.NewFromInt(stock)}
}

func TestApply_VentaDescuentaYGuardaFoto(t *testing.T) {
	p := part(10)
	mov, err := inventory.Apply(p, inventory.MovementInput{
		MovementType: entity.MovementSale,
		Quantity:     decimal.NewFromInt(3),
	}, "m1", time.Now())
	require.NoError(t, err)

	assert.True(t, mov.PreviousStock.Equal(decimal.NewFromInt(10)))
	assert.True(t, mov.NewStock.Equal(decimal.NewFromInt(7)))
	assert.True(t, p.CurrentStock.Equal(decimal.NewFromInt(7)), "el repuesto queda en 7")
	assert.True(t, mov.NewStock.Equal(p.CurrentStock))
}

func TestApply_TiposQueSuman(t *testing.T) {
	for _, mt := range []string{entity.MovementPurchase, entity.MovementReturn, entity.MovementAdjustment} {
		p := part(5)
		mov, err := inventory.Apply(p, inventory.MovementInput{MovementType: mt, Quantity: decimal.NewFromInt(2)}, "m", time.Now())
		require.NoError(t, err, mt)
		assert.True(t, mov.NewStock.Sub(mov.PreviousStock).Equal(decimal.NewFromInt(2)), mt)
	}
}

func TestApply_TiposNeutrosNoMuevenStock(t *testing.T) {
	for _, mt := range []string{entity.MovementTransfer, entity.MovementOther} {
		p := part(5)
		mov, err := inventory.Apply(p, inventory.MovementInput{MovementType: mt, Quantity: decimal.NewFromInt(4)}, "m", time.Now())
		require.NoError(t, err, mt)
		assert.True(t, mov.NewStock.Equal(mov.PreviousStock), mt)
		assert.True(t, p.CurrentStock.Equal(decimal.NewFromInt(5)), mt)
	}
}

func TestApply_SinPisoEnCero(t *testing.T) {
	p := part(1)
	mov, err := inventory.Apply(p, inventory.MovementInput{MovementType: entity.MovementDamage, Quantity: decimal.NewFromInt(3)}, "m", time.Now())
	require.NoError(t, err)
	assert.True(t, mov.NewStock.Equal(decimal.NewFromInt(-2)), "el stock puede quedar negativo")
}

func TestApply_TipoDesconocido(t *testing.T) {
	p := part(1)
	_, err := inventory.Apply(p, inventory.MovementInput{MovementType: "theft", Quantity: decimal.NewFromInt(1)}, "m", time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.True(t, p.CurrentStock.Equal(decimal.NewFromInt(1)), "un error no modifica el repuesto")
}

func TestNextStock_CantidadNoPositiva(t *testing.T) {
	_, err := inventory.NextStock(decimal.NewFromInt(3), entity.MovementPurchase, decimal.Zero)
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "quantity", vErr.Field)
}
