// Package sequence emite los identificadores de negocio ({PREFIJO}{AAAA}{MM}{NNNN}) dentro
// de la misma transacción que inserta el registro numerado.
package sequence

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/domain/numbering"
)

// lockTTL tiempo máximo que un alcance queda retenido si el proceso muere.
const lockTTL = 10 * time.Second

// Generator serializa la emisión por alcance. La lectura del último número, el cálculo del
// siguiente y el insert del llamador ocurren en una sola transacción con el alcance bloqueado.
type Generator struct {
	tx     ports.TxRunner
	locker ports.Locker // opcional; nil = solo el bloqueo de BD
	now    func() time.Time
}

// NewGenerator construye el generador. locker puede ser nil.
func NewGenerator(tx ports.TxRunner, locker ports.Locker) *Generator {
	return &Generator{tx: tx, locker: locker, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Issue calcula el siguiente número del prefijo y ejecuta fn con ese número y los repositorios
// de la transacción. Si fn falla no se consume ningún número.
func (g *Generator) Issue(ctx context.Context, prefix numbering.Prefix, fn func(number string, r ports.Repos) error) error {
	at := g.now()
	scope := numbering.Scope(prefix, at)

	if g.locker != nil {
		lock, err := g.locker.Obtain(ctx, "seq:"+scope, lockTTL)
		if err != nil {
			return fmt.Errorf("sequence: obtain %s: %w", scope, err)
		}
		defer func() {
			if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
				log.Warn().Err(err).Str("scope", scope).Msg("sequence: release lock")
			}
		}()
	}

	return g.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Sequences.LockScope(ctx, scope); err != nil {
			return fmt.Errorf("sequence: lock %s: %w", scope, err)
		}
		last, err := r.Sequences.LastNumber(ctx, prefix, scope)
		if err != nil {
			return fmt.Errorf("sequence: last %s: %w", scope, err)
		}
		number, err := numbering.Next(prefix, at, last)
		if err != nil {
			return err
		}
		return fn(number, r)
	})
}
