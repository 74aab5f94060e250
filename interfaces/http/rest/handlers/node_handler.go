package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"graphd/application/commands"
	"graphd/application/commands/bus"
	"graphd/application/queries"
	querybus "graphd/application/queries/bus"
	"graphd/domain/core/entities"
	"graphd/pkg/common"
	pkgerrors "graphd/pkg/errors"
)

// NodeHandler handles node-related HTTP requests
type NodeHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *NodeHandler {
	return &NodeHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errorHandler,
		logger:     logger,
	}
}

// CreateNode handles POST /nodes
func (h *NodeHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req CreateNodeRequest
	if err := common.ParseJSONBody(w, r, &req); err != nil {
		h.errors.Handle(w, r, invalidBody(err))
		return
	}
	if err := req.validate(); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	node, err := bus.SendAs[*entities.Node](r.Context(), h.commandBus, commands.CreateNodeCommand{
		Title:       req.Titre,
		Description: req.Description,
		Condition:   req.Condition,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v2/nodes/%d", node.ID()))
	h.respond(w, http.StatusCreated, node)
}

// ListNodes handles GET /nodes?page=&page_size=
func (h *NodeHandler) ListNodes(w http.ResponseWriter, r *http.Request) {
	nodes, err := querybus.AskAs[[]*entities.Node](r.Context(), h.queryBus, queries.ListNodesQuery{})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.respond(w, http.StatusOK, common.Paginate(nodes, common.ExtractPaginationParams(r)))
}

// GetNode handles GET /nodes/{nodeID}
func (h *NodeHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	id, err := pathNodeID(r, chi.URLParam, "nodeID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	node, err := querybus.AskAs[*entities.Node](r.Context(), h.queryBus, queries.GetNodeQuery{NodeID: id})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.respond(w, http.StatusOK, node)
}

// UpdateNode handles PUT /nodes/{nodeID}
func (h *NodeHandler) UpdateNode(w http.ResponseWriter, r *http.Request) {
	id, err := pathNodeID(r, chi.URLParam, "nodeID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var req UpdateNodeRequest
	if err := common.ParseJSONBody(w, r, &req); err != nil {
		h.errors.Handle(w, r, invalidBody(err))
		return
	}
	if err := req.validate(); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	node, err := bus.SendAs[*entities.Node](r.Context(), h.commandBus, commands.UpdateNodeCommand{
		NodeID:      id,
		Title:       req.Titre,
		Description: req.Description,
		Condition:   req.Condition,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.respond(w, http.StatusOK, node)
}

// DeleteNode handles DELETE /nodes/{nodeID}
func (h *NodeHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	id, err := pathNodeID(r, chi.URLParam, "nodeID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if _, err := h.commandBus.Send(r.Context(), commands.DeleteNodeCommand{NodeID: id}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondNoContent(w)
}

func (h *NodeHandler) respond(w http.ResponseWriter, status int, data interface{}) {
	if err := common.RespondJSON(w, status, data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
