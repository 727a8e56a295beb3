package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/zainulsyai/eko-hajj/internal/analytics"
	"github.com/zainulsyai/eko-hajj/internal/monitoring"
	"github.com/zainulsyai/eko-hajj/internal/platform/cache"
)

// OpenRedis connects to Redis when it is enabled. A nil client means every
// Redis-backed component runs in its in-process fallback.
func OpenRedis(ctx context.Context, cfg *Config) (*redis.Client, error) {
	if cfg == nil || !cfg.RedisEnabled {
		return nil, nil
	}
	return cache.New(ctx, cfg.RedisAddr)
}

// StoreOptions tune OpenStore for the calling process.
type StoreOptions struct {
	// Attach reuses records already persisted by another process.
	Attach bool
	// SkipLoadDelay marks the store ready immediately.
	SkipLoadDelay bool
}

// OpenStore builds the record store on the configured backend.
func OpenStore(ctx context.Context, cfg *Config, client *redis.Client, logger *slog.Logger, opts StoreOptions) (*monitoring.Store, error) {
	var repo monitoring.Repository
	switch cfg.StoreBackend {
	case StoreBackendRedis:
		if client == nil {
			return nil, errors.New("store backend redis requires a redis client")
		}
		repo = monitoring.NewRedisRepository(client)
	default:
		repo = monitoring.NewMemoryRepository()
	}
	delay := cfg.StoreLoadDelay
	if opts.SkipLoadDelay {
		delay = 0
	}
	return monitoring.Open(ctx, monitoring.Options{
		Repository: repo,
		Seed:       monitoring.DefaultSeed(cfg.SeedRandom),
		LoadDelay:  delay,
		Attach:     opts.Attach,
		Logger:     logger,
	})
}

// NewAnalytics builds the aggregation service with its Redis cache.
func NewAnalytics(cfg *Config, store *monitoring.Store, client *redis.Client, logger *slog.Logger) (*analytics.Service, *analytics.Cache) {
	var aggCache *analytics.Cache
	if client != nil {
		aggCache = analytics.NewCache(client, cfg.CacheTTL).WithLogger(logger)
	}
	return analytics.NewService(store, aggCache, analytics.NewJitter(cfg.MockJitterSeed)), aggCache
}
