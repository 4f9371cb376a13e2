package report

import (
	"context"

	"github.com/agro/backend/internal/domain/producer"
	"github.com/agro/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CacheInvalidationHandler drops the cached dashboard whenever producer data changes
type CacheInvalidationHandler struct {
	service *DashboardService
	logger  *zap.Logger
}

// NewCacheInvalidationHandler creates a new CacheInvalidationHandler
func NewCacheInvalidationHandler(service *DashboardService, logger *zap.Logger) *CacheInvalidationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheInvalidationHandler{service: service, logger: logger}
}

// EventTypes returns the producer events that affect the dashboard
func (h *CacheInvalidationHandler) EventTypes() []string {
	return producer.AllEventTypes()
}

// Handle invalidates the cached summary
func (h *CacheInvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := h.service.Invalidate(ctx); err != nil {
		return err
	}
	h.logger.Debug("Dashboard cache invalidated",
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_id", event.AggregateID().String()))
	return nil
}

var _ shared.EventHandler = (*CacheInvalidationHandler)(nil)
