package event

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/salescrm/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// InMemoryEventBus delivers domain events to in-process handlers.
// Each handler gets a context scoped to the event's workspace, so repository calls made by
// handlers pass the workspace guard.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
	async    bool
	running  atomic.Bool
	wg       sync.WaitGroup
}

// BusOption configures the bus
type BusOption func(*InMemoryEventBus)

// WithAsyncDelivery runs handlers in background goroutines after Publish returns.
// Stop waits for in-flight deliveries.
func WithAsyncDelivery() BusOption {
	return func(b *InMemoryEventBus) {
		b.async = true
	}
}

func NewInMemoryEventBus(log *zap.Logger, opts ...BusOption) *InMemoryEventBus {
	b := &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   log,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.running.Store(true)
	return b
}

// Publish hands each event to its handlers. Handler failures are logged, never returned:
// the write that raised the event has already committed.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if !b.running.Load() {
		return fmt.Errorf("event bus stopped, dropping %d events", len(events))
	}
	for _, ev := range events {
		handlers := b.registry.Handlers(ev.EventType())
		if len(handlers) == 0 {
			continue
		}
		evCtx := logger.WithWorkspaceID(ctx, ev.WorkspaceID().String())
		if !b.async {
			b.deliver(evCtx, handlers, ev)
			continue
		}
		b.wg.Add(1)
		go func(ctx context.Context, ev shared.DomainEvent) {
			defer b.wg.Done()
			b.deliver(ctx, handlers, ev)
		}(context.WithoutCancel(evCtx), ev)
	}
	return nil
}

func (b *InMemoryEventBus) deliver(ctx context.Context, handlers []shared.EventHandler, ev shared.DomainEvent) {
	for _, h := range handlers {
		if err := b.dispatch(ctx, h, ev); err != nil {
			b.logger.Error("event handler failed",
				zap.String("event_type", ev.EventType()),
				zap.String("event_id", ev.EventID().String()),
				zap.String("workspace_id", ev.WorkspaceID().String()),
				zap.Error(err),
			)
		}
	}
}

func (b *InMemoryEventBus) dispatch(ctx context.Context, h shared.EventHandler, ev shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h.Handle(ctx, ev)
}

// Subscribe registers handler for eventTypes, or for the handler's own EventTypes when none are given
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("event handler subscribed", zap.Strings("event_types", eventTypes))
}

func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
}

func (b *InMemoryEventBus) Start(ctx context.Context) error {
	b.running.Store(true)
	b.logger.Info("event bus started", zap.Bool("async", b.async), zap.Int("handlers", b.registry.Len()))
	return nil
}

// Stop rejects new events and waits for in-flight async deliveries or ctx expiry
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.running.Store(false)
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		b.logger.Info("event bus stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("event bus stop: %w", ctx.Err())
	}
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
