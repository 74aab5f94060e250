package handlers

import (
	"context"

	"go.uber.org/zap"

	"graphd/application/commands"
	"graphd/application/ports"
	"graphd/domain/core/entities"
)

// UpdateNodeHandler handles node update commands
type UpdateNodeHandler struct {
	eventFlusher
}

// NewUpdateNodeHandler creates a new update node handler
func NewUpdateNodeHandler(
	store ports.GraphStore,
	publisher ports.EventPublisher,
	metrics ports.Metrics,
	logger *zap.Logger,
) *UpdateNodeHandler {
	return &UpdateNodeHandler{eventFlusher{store: store, publisher: publisher, metrics: metrics, logger: logger}}
}

// Handle executes the update node command
func (h *UpdateNodeHandler) Handle(ctx context.Context, cmd commands.UpdateNodeCommand) (*entities.Node, error) {
	node, err := h.store.UpdateNode(cmd.NodeID, cmd.ToUpdate())
	if err != nil {
		return nil, err
	}
	h.flush(ctx)

	h.logger.Info("Node updated", zap.Int("nodeID", cmd.NodeID.Int()))
	return node, nil
}
