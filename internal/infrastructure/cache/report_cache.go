package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultReportTTL applies when no TTL is configured
const DefaultReportTTL = 2 * time.Minute

func reportPrefix(workspaceID uuid.UUID) string {
	return "crm:report:" + workspaceID.String() + ":"
}

// MemoryReportCache caches report results per workspace in process memory
type MemoryReportCache struct {
	store *MemoryStore
	ttl   time.Duration
}

// NewMemoryReportCache creates a report cache on the given store
func NewMemoryReportCache(store *MemoryStore, ttl time.Duration) *MemoryReportCache {
	if ttl <= 0 {
		ttl = DefaultReportTTL
	}
	return &MemoryReportCache{store: store, ttl: ttl}
}

// Get decodes the cached value into dest. It reports false on a miss.
func (c *MemoryReportCache) Get(ctx context.Context, workspaceID uuid.UUID, key string, dest any) (bool, error) {
	raw, ok := c.store.Get(ctx, reportPrefix(workspaceID)+key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached report %s: %w", key, err)
	}
	return true, nil
}

func (c *MemoryReportCache) Set(ctx context.Context, workspaceID uuid.UUID, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode report %s: %w", key, err)
	}
	c.store.Set(ctx, reportPrefix(workspaceID)+key, raw, c.ttl)
	return nil
}

// Invalidate drops every cached report of the workspace
func (c *MemoryReportCache) Invalidate(ctx context.Context, workspaceID uuid.UUID) error {
	c.store.DeletePrefix(ctx, reportPrefix(workspaceID))
	return nil
}

// RedisReportCache caches report results in Redis.
// Each workspace has a generation counter that is part of every key; invalidation bumps it
// and the stale keys age out through their TTL.
type RedisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisReportCache(client *redis.Client, ttl time.Duration) *RedisReportCache {
	if ttl <= 0 {
		ttl = DefaultReportTTL
	}
	return &RedisReportCache{client: client, ttl: ttl}
}

func (c *RedisReportCache) generation(ctx context.Context, workspaceID uuid.UUID) (int64, error) {
	gen, err := c.client.Get(ctx, reportPrefix(workspaceID)+"gen").Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read report generation: %w", err)
	}
	return gen, nil
}

func (c *RedisReportCache) key(ctx context.Context, workspaceID uuid.UUID, key string) (string, error) {
	gen, err := c.generation(ctx, workspaceID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d:%s", reportPrefix(workspaceID), gen, key), nil
}

func (c *RedisReportCache) Get(ctx context.Context, workspaceID uuid.UUID, key string, dest any) (bool, error) {
	full, err := c.key(ctx, workspaceID, key)
	if err != nil {
		return false, err
	}
	raw, err := c.client.Get(ctx, full).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cached report %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached report %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisReportCache) Set(ctx context.Context, workspaceID uuid.UUID, key string, value any) error {
	full, err := c.key(ctx, workspaceID, key)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode report %s: %w", key, err)
	}
	if err := c.client.Set(ctx, full, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report %s: %w", key, err)
	}
	return nil
}

func (c *RedisReportCache) Invalidate(ctx context.Context, workspaceID uuid.UUID) error {
	if err := c.client.Incr(ctx, reportPrefix(workspaceID)+"gen").Err(); err != nil {
		return fmt.Errorf("failed to invalidate reports: %w", err)
	}
	return nil
}
