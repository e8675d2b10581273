package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type item struct {
	value     []byte
	expiresAt time.Time
}

func (i item) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

// MemoryStore is a process-local TTL key/value store.
// It backs the idempotency store and the report cache when Redis is not configured.
type MemoryStore struct {
	mu        sync.RWMutex
	items     map[string]item
	now       func() time.Time
	stop      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewMemoryStore creates a store and starts a janitor that evicts expired keys every interval
func NewMemoryStore(interval time.Duration) *MemoryStore {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	s := &MemoryStore{
		items: make(map[string]item),
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	s.wg.Add(1)
	go s.janitor(interval)
	return s
}

// Get returns the value stored under key
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[key]
	if !ok || it.expired(s.now()) {
		return nil, false
	}
	return it.value, true
}

// Set stores value under key. A zero ttl never expires.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = s.newItem(value, ttl)
}

// SetNX stores value only when key is absent or expired. It reports whether the value was stored.
func (s *MemoryStore) SetNX(_ context.Context, key string, value []byte, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if it, ok := s.items[key]; ok && !it.expired(s.now()) {
		return false
	}
	s.items[key] = s.newItem(value, ttl)
	return true
}

// Delete removes key
func (s *MemoryStore) Delete(_ context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

// DeletePrefix removes every key starting with prefix and returns how many were removed
func (s *MemoryStore) DeletePrefix(_ context.Context, prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for key := range s.items {
		if strings.HasPrefix(key, prefix) {
			delete(s.items, key)
			n++
		}
	}
	return n
}

// Len returns the number of live keys
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.now()
	n := 0
	for _, it := range s.items {
		if !it.expired(now) {
			n++
		}
	}
	return n
}

// Close stops the janitor. Safe to call more than once.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		s.wg.Wait()
	})
	return nil
}

func (s *MemoryStore) newItem(value []byte, ttl time.Duration) item {
	it := item{value: value}
	if ttl > 0 {
		it.expiresAt = s.now().Add(ttl)
	}
	return it
}

func (s *MemoryStore) janitor(interval time.Duration) {
	defer s.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.evict()
		}
	}
}

func (s *MemoryStore) evict() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for key, it := range s.items {
		if it.expired(now) {
			delete(s.items, key)
		}
	}
}
