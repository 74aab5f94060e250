package handlers

import (
	"context"

	"go.uber.org/zap"

	"graphd/application/commands"
	"graphd/application/ports"
	"graphd/domain/core/entities"
)

// CreateNodeHandler handles the CreateNodeCommand
type CreateNodeHandler struct {
	eventFlusher
}

// NewCreateNodeHandler creates a new handler instance
func NewCreateNodeHandler(
	store ports.GraphStore,
	publisher ports.EventPublisher,
	metrics ports.Metrics,
	logger *zap.Logger,
) *CreateNodeHandler {
	return &CreateNodeHandler{eventFlusher{store: store, publisher: publisher, metrics: metrics, logger: logger}}
}

// Handle executes the create node command
func (h *CreateNodeHandler) Handle(ctx context.Context, cmd commands.CreateNodeCommand) (*entities.Node, error) {
	node, err := h.store.CreateNode(cmd.Title, cmd.Description, cmd.Condition)
	if err != nil {
		return nil, err
	}
	h.flush(ctx)

	h.logger.Info("Node created", zap.Int("nodeID", node.ID().Int()))
	return node, nil
}
