package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/huzi29/crmsystemdesign/internal/reliability/circuitbreaker"
)

// BreakerCache wraps a SnapshotCache with a circuit breaker so a failing
// redis stops adding latency to stats requests. While the circuit is
// open both Get and Set become no-ops and stats are recomputed.
type BreakerCache struct {
	inner   SnapshotCache
	breaker *circuitbreaker.CircuitBreaker
	logger  *slog.Logger
}

// NewBreakerCache creates a breaker-guarded snapshot cache
func NewBreakerCache(inner SnapshotCache, logger *slog.Logger) *BreakerCache {
	if logger == nil {
		logger = slog.Default()
	}

	return &BreakerCache{
		inner:   inner,
		breaker: circuitbreaker.New(5, 2, 30*time.Second),
		logger:  logger,
	}
}

func (b *BreakerCache) Get(ctx context.Context, key string) (string, error) {
	if !b.breaker.AllowRequest() {
		return "", nil
	}

	val, err := b.inner.Get(ctx, key)
	if err != nil {
		b.breaker.RecordFailure()
		b.logger.Warn("snapshot cache get failed", slog.String("error", err.Error()))
		return "", nil
	}

	b.breaker.RecordSuccess()
	return val, nil
}

func (b *BreakerCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !b.breaker.AllowRequest() {
		return nil
	}

	if err := b.inner.Set(ctx, key, value, ttl); err != nil {
		b.breaker.RecordFailure()
		return err
	}

	b.breaker.RecordSuccess()
	return nil
}
