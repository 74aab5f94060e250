package handlers

import (
	"context"

	"go.uber.org/zap"

	"graphd/application/commands"
	"graphd/application/ports"
)

// DeleteNodeHandler handles node deletion. Edges pointing at the node are kept.
type DeleteNodeHandler struct {
	eventFlusher
}

// NewDeleteNodeHandler creates a new delete node handler
func NewDeleteNodeHandler(
	store ports.GraphStore,
	publisher ports.EventPublisher,
	metrics ports.Metrics,
	logger *zap.Logger,
) *DeleteNodeHandler {
	return &DeleteNodeHandler{eventFlusher{store: store, publisher: publisher, metrics: metrics, logger: logger}}
}

// Handle executes the delete node command
func (h *DeleteNodeHandler) Handle(ctx context.Context, cmd commands.DeleteNodeCommand) (struct{}, error) {
	if err := h.store.DeleteNode(cmd.NodeID); err != nil {
		return struct{}{}, err
	}
	h.flush(ctx)

	h.logger.Info("Node deleted", zap.Int("nodeID", cmd.NodeID.Int()))
	return struct{}{}, nil
}
