package handlers

import (
	"context"

	"go.uber.org/zap"

	"graphd/application/commands"
	"graphd/application/ports"
	"graphd/domain/core/entities"
)

// ConnectNodesHandler adds directed edges
type ConnectNodesHandler struct {
	eventFlusher
}

// NewConnectNodesHandler creates a new connect handler
func NewConnectNodesHandler(
	store ports.GraphStore,
	publisher ports.EventPublisher,
	metrics ports.Metrics,
	logger *zap.Logger,
) *ConnectNodesHandler {
	return &ConnectNodesHandler{eventFlusher{store: store, publisher: publisher, metrics: metrics, logger: logger}}
}

// Handle returns the source node with its new edge
func (h *ConnectNodesHandler) Handle(ctx context.Context, cmd commands.ConnectNodesCommand) (*entities.Node, error) {
	source, err := h.store.Connect(cmd.SourceID, cmd.TargetID)
	if err != nil {
		return nil, err
	}
	h.flush(ctx)

	h.logger.Info("Nodes connected",
		zap.Int("sourceID", cmd.SourceID.Int()),
		zap.Int("targetID", cmd.TargetID.Int()),
	)
	return source, nil
}

// DisconnectNodesHandler removes directed edges
type DisconnectNodesHandler struct {
	eventFlusher
}

// NewDisconnectNodesHandler creates a new disconnect handler
func NewDisconnectNodesHandler(
	store ports.GraphStore,
	publisher ports.EventPublisher,
	metrics ports.Metrics,
	logger *zap.Logger,
) *DisconnectNodesHandler {
	return &DisconnectNodesHandler{eventFlusher{store: store, publisher: publisher, metrics: metrics, logger: logger}}
}

// Handle executes the disconnect command
func (h *DisconnectNodesHandler) Handle(ctx context.Context, cmd commands.DisconnectNodesCommand) (struct{}, error) {
	if err := h.store.Disconnect(cmd.SourceID, cmd.TargetID); err != nil {
		return struct{}{}, err
	}
	h.flush(ctx)

	h.logger.Info("Nodes disconnected",
		zap.Int("sourceID", cmd.SourceID.Int()),
		zap.Int("targetID", cmd.TargetID.Int()),
	)
	return struct{}{}, nil
}
