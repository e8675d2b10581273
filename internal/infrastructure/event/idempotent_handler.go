package event

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/salescrm/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// IdempotencyStats counts what wrapped handlers did
type IdempotencyStats struct {
	Processed int64 `json:"processed"`
	Duplicate int64 `json:"duplicate"`
	Failed    int64 `json:"failed"`
}

// IdempotencyMetrics is shared by handlers that should report together
type IdempotencyMetrics struct {
	processed atomic.Int64
	duplicate atomic.Int64
	failed    atomic.Int64
}

func (m *IdempotencyMetrics) Stats() IdempotencyStats {
	return IdempotencyStats{
		Processed: m.processed.Load(),
		Duplicate: m.duplicate.Load(),
		Failed:    m.failed.Load(),
	}
}

// IdempotentHandler runs the wrapped handler at most once per event ID.
// Keys are namespaced by handler name so two handlers can both see the same event.
type IdempotentHandler struct {
	name    string
	handler shared.EventHandler
	store   shared.IdempotencyStore
	ttl     time.Duration
	logger  *zap.Logger
	metrics *IdempotencyMetrics
}

type IdempotentOption func(*IdempotentHandler)

func WithTTL(ttl time.Duration) IdempotentOption {
	return func(h *IdempotentHandler) {
		if ttl > 0 {
			h.ttl = ttl
		}
	}
}

func WithMetrics(m *IdempotencyMetrics) IdempotentOption {
	return func(h *IdempotentHandler) {
		h.metrics = m
	}
}

func NewIdempotentHandler(name string, handler shared.EventHandler, store shared.IdempotencyStore, log *zap.Logger, opts ...IdempotentOption) *IdempotentHandler {
	h := &IdempotentHandler{
		name:    name,
		handler: handler,
		store:   store,
		ttl:     shared.DefaultIdempotencyTTL,
		logger:  log,
		metrics: &IdempotencyMetrics{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *IdempotentHandler) EventTypes() []string {
	return h.handler.EventTypes()
}

func (h *IdempotentHandler) Handle(ctx context.Context, ev shared.DomainEvent) error {
	key := h.name + ":" + ev.EventID().String()

	isNew, err := h.store.MarkProcessed(ctx, key, h.ttl)
	switch {
	case err != nil:
		// store outage: a duplicate is preferable to a dropped event
		h.logger.Warn("idempotency check failed, handling anyway",
			zap.String("key", key), zap.Error(err))
	case !isNew:
		h.metrics.duplicate.Add(1)
		h.logger.Debug("duplicate event skipped", zap.String("key", key))
		return nil
	}

	if err := h.handler.Handle(ctx, ev); err != nil {
		h.metrics.failed.Add(1)
		if isNew {
			if relErr := h.store.Release(context.WithoutCancel(ctx), key); relErr != nil {
				h.logger.Warn("failed to release idempotency key",
					zap.String("key", key), zap.Error(relErr))
			}
		}
		return err
	}
	h.metrics.processed.Add(1)
	return nil
}

func (h *IdempotentHandler) Metrics() *IdempotencyMetrics {
	return h.metrics
}

var _ shared.EventHandler = (*IdempotentHandler)(nil)
