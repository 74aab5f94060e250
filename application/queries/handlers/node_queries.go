package handlers

import (
	"context"

	"graphd/application/ports"
	"graphd/application/queries"
	"graphd/domain/core/entities"
)

// GetNodeHandler handles single node lookups
type GetNodeHandler struct {
	store ports.GraphStore
}

// NewGetNodeHandler creates a new get node handler
func NewGetNodeHandler(store ports.GraphStore) *GetNodeHandler {
	return &GetNodeHandler{store: store}
}

// Handle executes the get node query
func (h *GetNodeHandler) Handle(ctx context.Context, query queries.GetNodeQuery) (*entities.Node, error) {
	return h.store.GetNode(query.NodeID)
}

// ListNodesHandler returns every node
type ListNodesHandler struct {
	store ports.GraphStore
}

// NewListNodesHandler creates a new list nodes handler
func NewListNodesHandler(store ports.GraphStore) *ListNodesHandler {
	return &ListNodesHandler{store: store}
}

// Handle executes the list nodes query
func (h *ListNodesHandler) Handle(ctx context.Context, query queries.ListNodesQuery) ([]*entities.Node, error) {
	return h.store.ListNodes(), nil
}
