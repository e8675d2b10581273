package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/salescrm/backend/internal/domain/shared"
)

const idempotencyPrefix = "crm:idempotency:"

// RedisIdempotencyStore shares processed keys across server and worker instances
type RedisIdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewRedisIdempotencyStore wraps an existing client. The client is not closed by the store.
func NewRedisIdempotencyStore(client *redis.Client) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{client: client, prefix: idempotencyPrefix}
}

// MarkProcessed uses SET NX so that concurrent workers agree on a single winner
func (s *RedisIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.prefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark %s as processed: %w", key, err)
	}
	return ok, nil
}

func (s *RedisIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.prefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", key, err)
	}
	return n > 0, nil
}

func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release %s: %w", key, err)
	}
	return nil
}

func (s *RedisIdempotencyStore) Close() error {
	return nil
}

// MemoryIdempotencyStore keeps processed keys in process memory.
// Keys are not shared between instances.
type MemoryIdempotencyStore struct {
	store *MemoryStore
	owned bool
}

// NewMemoryIdempotencyStore creates a store with its own MemoryStore
func NewMemoryIdempotencyStore() *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{store: NewMemoryStore(0), owned: true}
}

func (s *MemoryIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.store.SetNX(ctx, idempotencyPrefix+key, nil, ttl), nil
}

func (s *MemoryIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	_, ok := s.store.Get(ctx, idempotencyPrefix+key)
	return ok, nil
}

func (s *MemoryIdempotencyStore) Release(ctx context.Context, key string) error {
	s.store.Delete(ctx, idempotencyPrefix+key)
	return nil
}

func (s *MemoryIdempotencyStore) Close() error {
	if s.owned {
		return s.store.Close()
	}
	return nil
}

var (
	_ shared.IdempotencyStore = (*RedisIdempotencyStore)(nil)
	_ shared.IdempotencyStore = (*MemoryIdempotencyStore)(nil)
)
