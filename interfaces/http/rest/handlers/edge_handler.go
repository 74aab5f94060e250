package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"graphd/application/commands"
	"graphd/application/commands/bus"
	"graphd/domain/core/entities"
	"graphd/domain/core/valueobjects"
	"graphd/pkg/common"
	pkgerrors "graphd/pkg/errors"
)

// EdgeHandler handles edge-related HTTP requests
type EdgeHandler struct {
	commandBus *bus.CommandBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewEdgeHandler creates a new edge handler
func NewEdgeHandler(commandBus *bus.CommandBus, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *EdgeHandler {
	return &EdgeHandler{
		commandBus: commandBus,
		errors:     errorHandler,
		logger:     logger,
	}
}

// CreateEdge handles PUT /nodes/{nodeID}/edges/{targetID} and returns the source node
func (h *EdgeHandler) CreateEdge(w http.ResponseWriter, r *http.Request) {
	src, dst, err := h.endpoints(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	node, err := bus.SendAs[*entities.Node](r.Context(), h.commandBus, commands.ConnectNodesCommand{SourceID: src, TargetID: dst})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if err := common.RespondJSON(w, http.StatusOK, node); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// DeleteEdge handles DELETE /nodes/{nodeID}/edges/{targetID}
func (h *EdgeHandler) DeleteEdge(w http.ResponseWriter, r *http.Request) {
	src, dst, err := h.endpoints(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if _, err := h.commandBus.Send(r.Context(), commands.DisconnectNodesCommand{SourceID: src, TargetID: dst}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondNoContent(w)
}

func (h *EdgeHandler) endpoints(r *http.Request) (src, dst valueobjects.NodeID, err error) {
	if src, err = pathNodeID(r, chi.URLParam, "nodeID"); err != nil {
		return 0, 0, err
	}
	if dst, err = pathNodeID(r, chi.URLParam, "targetID"); err != nil {
		return 0, 0, err
	}
	return src, dst, nil
}
