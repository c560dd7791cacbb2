package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/huzi29/crmsystemdesign/internal/domain"
	"github.com/huzi29/crmsystemdesign/pkg/cache"
)

const statsCacheKey = "stats:snapshot"

// SnapshotCache is the minimal cache surface the stats service needs.
// The redis client wrapper satisfies it directly.
type SnapshotCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// StatsService serves the dashboard summary, caching the snapshot
// briefly since it aggregates over every collection.
type StatsService struct {
	stats    domain.StatsRepository
	cache    SnapshotCache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewStatsService creates a new stats service. cache may be nil, in
// which case every call recomputes the snapshot.
func NewStatsService(stats domain.StatsRepository, snapshotCache SnapshotCache, logger *slog.Logger) *StatsService {
	if logger == nil {
		logger = slog.Default()
	}

	return &StatsService{
		stats:    stats,
		cache:    snapshotCache,
		cacheTTL: 30 * time.Second,
		logger:   logger,
	}
}

// Get returns the dashboard snapshot, from cache when fresh.
func (s *StatsService) Get(ctx context.Context) (*domain.Stats, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, statsCacheKey); err == nil && raw != "" {
			stats := &domain.Stats{}
			if err := json.Unmarshal([]byte(raw), stats); err == nil {
				return stats, nil
			}
		}
	}

	stats, err := s.stats.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, string(raw), s.cacheTTL); err != nil {
				s.logger.Warn("failed to cache stats snapshot", slog.String("error", err.Error()))
			}
		}
	}

	return stats, nil
}

// MemorySnapshotCache adapts the in-process TTL cache to SnapshotCache
// for deployments without redis.
type MemorySnapshotCache struct {
	c *cache.Cache
}

func NewMemorySnapshotCache() *MemorySnapshotCache {
	return &MemorySnapshotCache{c: cache.New()}
}

func (m *MemorySnapshotCache) Get(_ context.Context, key string) (string, error) {
	if v, ok := m.c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s, nil
		}
	}
	return "", nil
}

func (m *MemorySnapshotCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	m.c.Set(key, value, ttl)
	return nil
}
