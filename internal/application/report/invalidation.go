package report

import (
	"context"

	"github.com/salescrm/backend/internal/domain/engagement"
	"github.com/salescrm/backend/internal/domain/sales"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/salescrm/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// CacheInvalidationHandler drops a workspace's cached reports when its deals, pipelines or tasks change
type CacheInvalidationHandler struct {
	cache Cache
}

// NewCacheInvalidationHandler creates a CacheInvalidationHandler
func NewCacheInvalidationHandler(cache Cache) *CacheInvalidationHandler {
	return &CacheInvalidationHandler{cache: cache}
}

// EventTypes returns every deal event plus pipeline and task changes
func (h *CacheInvalidationHandler) EventTypes() []string {
	return append(sales.DealEventTypes(),
		sales.EventTypePipelineChanged,
		engagement.EventTypeTaskCompleted,
		engagement.EventTypeTaskChanged,
	)
}

// Handle invalidates the event's workspace
func (h *CacheInvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := h.cache.Invalidate(ctx, event.WorkspaceID()); err != nil {
		logger.L(ctx).Warn("report cache invalidation failed",
			zap.String("event_type", event.EventType()),
			zap.String("workspace_id", event.WorkspaceID().String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

var _ shared.EventHandler = (*CacheInvalidationHandler)(nil)
