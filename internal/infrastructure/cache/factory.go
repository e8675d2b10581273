package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/salescrm/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ReportCache is implemented by MemoryReportCache and RedisReportCache
type ReportCache interface {
	Get(ctx context.Context, workspaceID uuid.UUID, key string, dest any) (bool, error)
	Set(ctx context.Context, workspaceID uuid.UUID, key string, value any) error
	Invalidate(ctx context.Context, workspaceID uuid.UUID) error
}

// Caches bundles the stores the application needs
type Caches struct {
	Idempotency shared.IdempotencyStore
	Reports     ReportCache
	RateLimits  RateLimiter

	client *redis.Client
	memory *MemoryStore
}

// Option configures New
type Option func(*options)

type options struct {
	logger        *zap.Logger
	allowFallback bool
	reportTTL     time.Duration
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to process memory.
// Default is true.
func WithInMemoryFallback(allow bool) Option {
	return func(o *options) { o.allowFallback = allow }
}

// WithReportTTL sets how long report results are cached
func WithReportTTL(ttl time.Duration) Option {
	return func(o *options) { o.reportTTL = ttl }
}

// New builds Redis-backed caches when Redis is configured and reachable, otherwise in-memory ones
func New(ctx context.Context, cfg config.RedisConfig, opts ...Option) (*Caches, error) {
	o := options{logger: zap.NewNop(), allowFallback: true, reportTTL: DefaultReportTTL}
	for _, opt := range opts {
		opt(&o)
	}

	if cfg.Enabled() {
		client, err := NewRedisClient(ctx, cfg)
		if err == nil {
			o.logger.Info("using Redis caches", zap.String("addr", cfg.Addr()))
			return &Caches{
				Idempotency: NewRedisIdempotencyStore(client),
				Reports:     NewRedisReportCache(client, o.reportTTL),
				RateLimits:  NewRedisRateLimiter(client),
				client:      client,
			}, nil
		}
		if !o.allowFallback {
			return nil, err
		}
		o.logger.Warn("Redis unavailable, falling back to in-memory caches. "+
			"Emails may be delivered twice when several workers run.", zap.Error(err))
	}

	return NewMemory(o.reportTTL), nil
}

// NewMemory builds process-local caches sharing one MemoryStore
func NewMemory(reportTTL time.Duration) *Caches {
	store := NewMemoryStore(0)
	return &Caches{
		Idempotency: &MemoryIdempotencyStore{store: store},
		Reports:     NewMemoryReportCache(store, reportTTL),
		RateLimits:  NewMemoryRateLimiter(),
		memory:      store,
	}
}

// Close releases the Redis client or stops the memory janitor
func (c *Caches) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	if c.memory != nil {
		return c.memory.Close()
	}
	return nil
}

// Ping checks the Redis connection. In-memory caches are always healthy.
func (c *Caches) Ping(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}
