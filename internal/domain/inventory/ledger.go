package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// Direction efecto de un tipo de movimiento sobre el stock.
type Direction int

const (
	// Neutral se registra pero no mueve stock (transfer, other).
	Neutral Direction = iota
	Increase
	Decrease
)

// DirectionOf clasifica el tipo de movimiento. ok es false para tipos desconocidos.
func DirectionOf(movementType string) (Direction, bool) {
	switch movementType {
	case entity.MovementPurchase, entity.MovementReturn, entity.MovementAdjustment:
		return Increase, true
	case entity.MovementSale, entity.MovementDamage:
		return Decrease, true
	case entity.MovementTransfer, entity.MovementOther:
		return Neutral, true
	}
	return Neutral, false
}

// NextStock calcula el stock resultante (servicio de dominio). Sin piso en cero:
// una salida mayor al stock deja el saldo negativo.
func NextStock(current decimal.Decimal, movementType string, quantity decimal.Decimal) (decimal.Decimal, error) {
	dir, ok := DirectionOf(movementType)
	if !ok {
		return current, domain.NewValidationError("movement_type", "tipo de movimiento desconocido")
	}
	if !quantity.IsPositive() {
		return current, domain.NewValidationError("quantity", "debe ser mayor que cero")
	}
	switch dir {
	case Increase:
		return current.Add(quantity), nil
	case Decrease:
		return current.Sub(quantity), nil
	default:
		return current, nil
	}
}

// MovementInput datos de un movimiento a registrar.
type MovementInput struct {
	MovementType  string
	Quantity      decimal.Decimal
	ReferenceType string
	ReferenceID   *string
	Notes         string
	CreatedBy     *string
}

// Apply actualiza primero el stock del repuesto y luego arma el movimiento con la foto
// previous_stock/new_stock de esa transición. Devuelve el movimiento listo para persistir.
func Apply(part *entity.Part, in MovementInput, id string, at time.Time) (*entity.StockMovement, error) {
	previous := part.CurrentStock
	next, err := NextStock(previous, in.MovementType, in.Quantity)
	if err != nil {
		return nil, err
	}
	part.CurrentStock = next
	part.UpdatedAt = at
	return &entity.StockMovement{
		ID:            id,
		PartID:        part.ID,
		MovementType:  in.MovementType,
		Quantity:      in.Quantity,
		PreviousStock: previous,
		NewStock:      next,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		Notes:         in.Notes,
		CreatedBy:     in.CreatedBy,
		CreatedAt:     at,
	}, nil
}
