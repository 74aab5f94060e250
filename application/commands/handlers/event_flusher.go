package handlers

import (
	"context"

	"go.uber.org/zap"

	"graphd/application/ports"
)

// eventFlusher publishes what the graph recorded and refreshes the size
// gauges. Runs after the graph lock is released. The mutation has already
// happened, so publish failures are logged rather than returned.
type eventFlusher struct {
	store     ports.GraphStore
	publisher ports.EventPublisher
	metrics   ports.Metrics
	logger    *zap.Logger
}

func (f eventFlusher) flush(ctx context.Context) {
	pending := f.store.DrainEvents()
	if len(pending) > 0 {
		if err := f.publisher.PublishBatch(ctx, pending); err != nil {
			f.logger.Warn("Failed to publish events",
				zap.Int("count", len(pending)),
				zap.Error(err),
			)
		}
	}
	f.metrics.SetGraphSize(f.store.Len(), f.store.EdgeCount())
}
