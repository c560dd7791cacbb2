package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/huzi29/crmsystemdesign/internal/domain"
	"github.com/huzi29/crmsystemdesign/internal/observability/metrics"
	"github.com/huzi29/crmsystemdesign/internal/reliability/retry"
)

// TokenCleanupWorker periodically purges refresh tokens older than the
// refresh TTL. Logout removes tokens eagerly; this catches sessions that
// were simply abandoned.
type TokenCleanupWorker struct {
	tokens   domain.RefreshTokenRepository
	maxAge   time.Duration
	interval time.Duration
	retryCfg *retry.Config
	logger   *slog.Logger
}

// NewTokenCleanupWorker creates a new cleanup worker. maxAge should match
// the refresh token TTL.
func NewTokenCleanupWorker(
	tokens domain.RefreshTokenRepository,
	maxAge time.Duration,
	interval time.Duration,
	logger *slog.Logger,
) *TokenCleanupWorker {
	if logger == nil {
		logger = slog.Default()
	}

	return &TokenCleanupWorker{
		tokens:   tokens,
		maxAge:   maxAge,
		interval: interval,
		retryCfg: retry.DefaultConfig(),
		logger:   logger,
	}
}

// Start begins the cleanup loop and blocks until ctx is cancelled.
func (w *TokenCleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("token cleanup worker started",
		slog.Duration("interval", w.interval),
		slog.Duration("max_age", w.maxAge),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("token cleanup worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single purge pass.
func (w *TokenCleanupWorker) RunOnce(ctx context.Context) {
	cutoff := time.Now().Add(-w.maxAge)

	removed, err := retry.Do(ctx, w.retryCfg, w.logger, "purge expired refresh tokens",
		func(ctx context.Context) (int, error) {
			return w.tokens.DeleteCreatedBefore(ctx, cutoff)
		},
	)
	if err != nil {
		w.logger.Error("failed to purge expired refresh tokens", slog.String("error", err.Error()))
		return
	}

	if removed > 0 {
		metrics.ObserveTokensPurged(removed)
		w.logger.Info("purged expired refresh tokens", slog.Int("count", removed))
	}
}
