package ports

import (
	"context"
	"time"
)

// Locker candado distribuido por clave (p. ej. el alcance de una numeración).
// Cualquier adaptador (Redis, en memoria) debe implementar esta interfaz.
type Locker interface {
	// Obtain espera el candado hasta que ctx expire. ttl acota cuánto puede retenerse.
	Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error)
}

// Lock candado obtenido.
type Lock interface {
	Release(ctx context.Context) error
}
