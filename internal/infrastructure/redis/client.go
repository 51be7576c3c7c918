// Package redis conecta con Redis y expone el candado distribuido que serializa la
// numeración entre instancias de la API.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/pkg/config"
)

// retryInterval pausa entre intentos mientras otro proceso retiene el alcance.
const retryInterval = 50 * time.Millisecond

// NewClient abre el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

var _ ports.Locker = (*Locker)(nil)

// Locker implementa ports.Locker sobre redislock.
type Locker struct {
	client *redislock.Client
}

// NewLocker construye el candado sobre un cliente ya conectado.
func NewLocker(rdb *goredis.Client) *Locker {
	return &Locker{client: redislock.New(rdb)}
}

// Obtain reintenta hasta obtener la clave o hasta que ctx expire.
func (l *Locker) Obtain(ctx context.Context, key string, ttl time.Duration) (ports.Lock, error) {
	lock, err := l.client.Obtain(ctx, key, ttl, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(retryInterval),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("redis: %s ocupado: %w", key, domain.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("redis: obtain %s: %w", key, err)
	}
	return lock, nil
}
