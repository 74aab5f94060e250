package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"graphd/application/commands"
	"graphd/application/commands/bus"
	"graphd/application/queries"
	querybus "graphd/application/queries/bus"
	"graphd/domain/core/aggregates"
	"graphd/domain/core/entities"
	"graphd/domain/core/valueobjects"
	"graphd/pkg/common"
	pkgerrors "graphd/pkg/errors"
)

// Messages of the legacy API. Clients match on them, so they stay verbatim.
const (
	msgNodeMissing       = "le noeud demandé n'existe pas"
	msgInvalidData       = "les données entrées ne sont pas valides"
	msgConnectMissing    = "l'un des noeuds demandé n'existe pas"
	msgEdgeExists        = "un lien entre ces deux noeuds existe déjà"
	msgDisconnectMissing = "l'un des noeuds n'existe pas"
	msgEdgeMissing       = "ce lien n'existe pas"
	msgPathMissing       = "l'un des noeuds demandés n'existe pas"
	msgNoPath            = "il n'existe aucun chemin entre les deux noeuds"
	msgInternal          = "internal error"
)

// LegacyError is the error body of the legacy API
type LegacyError struct {
	Error string `json:"error"`
}

// LegacyHandler serves the original /api layout: 200 on every success,
// {"error": ...} bodies and the original status codes. A path id that is
// not a number is an unknown node.
type LegacyHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	param      func(*http.Request, string) string
	logger     *zap.Logger
}

// NewLegacyHandler creates a legacy handler. param extracts a path variable
// for whichever router mounts it.
func NewLegacyHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	param func(*http.Request, string) string,
	logger *zap.Logger,
) *LegacyHandler {
	return &LegacyHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		param:      param,
		logger:     logger,
	}
}

// GetNode handles GET /api/node/{id}
func (h *LegacyHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	id, ok := h.nodeID(r, "id")
	if !ok {
		h.fail(w, http.StatusNotFound, msgNodeMissing)
		return
	}

	node, err := querybus.AskAs[*entities.Node](r.Context(), h.queryBus, queries.GetNodeQuery{NodeID: id})
	switch {
	case err == nil:
		h.ok(w, node)
	case pkgerrors.IsNotFound(err):
		h.fail(w, http.StatusNotFound, msgNodeMissing)
	default:
		h.internal(w, err)
	}
}

// CreateNode handles POST /api/node
func (h *LegacyHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req CreateNodeRequest
	if err := common.ParseJSONBody(w, r, &req); err != nil {
		h.fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.validate(); err != nil {
		h.fail(w, http.StatusBadRequest, pkgerrors.GetAppError(err).Message)
		return
	}

	node, err := bus.SendAs[*entities.Node](r.Context(), h.commandBus, commands.CreateNodeCommand{
		Title:       req.Titre,
		Description: req.Description,
		Condition:   req.Condition,
	})
	switch {
	case err == nil:
		h.ok(w, node)
	case pkgerrors.IsValidation(err):
		h.fail(w, http.StatusBadRequest, pkgerrors.GetAppError(err).Message)
	default:
		h.internal(w, err)
	}
}

// UpdateNode handles PUT /api/node/{id}. Unknown body fields are ignored.
func (h *LegacyHandler) UpdateNode(w http.ResponseWriter, r *http.Request) {
	id, ok := h.nodeID(r, "id")
	if !ok {
		h.fail(w, http.StatusNotFound, msgNodeMissing)
		return
	}

	var req UpdateNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, msgInvalidData)
		return
	}

	if req.Condition != nil && *req.Condition == "" {
		// Existence is reported before validity
		if _, err := h.queryBus.Ask(r.Context(), queries.GetNodeQuery{NodeID: id}); pkgerrors.IsNotFound(err) {
			h.fail(w, http.StatusNotFound, msgNodeMissing)
			return
		}
		h.fail(w, http.StatusBadRequest, msgInvalidData)
		return
	}

	node, err := bus.SendAs[*entities.Node](r.Context(), h.commandBus, commands.UpdateNodeCommand{
		NodeID:      id,
		Title:       req.Titre,
		Description: req.Description,
		Condition:   req.Condition,
	})
	switch {
	case err == nil:
		h.ok(w, node)
	case pkgerrors.IsNotFound(err):
		h.fail(w, http.StatusNotFound, msgNodeMissing)
	case pkgerrors.IsValidation(err):
		h.fail(w, http.StatusBadRequest, msgInvalidData)
	default:
		h.internal(w, err)
	}
}

// DeleteNode handles DELETE /api/node/{id}
func (h *LegacyHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	id, ok := h.nodeID(r, "id")
	if !ok {
		h.fail(w, http.StatusNotFound, msgNodeMissing)
		return
	}

	_, err := h.commandBus.Send(r.Context(), commands.DeleteNodeCommand{NodeID: id})
	switch {
	case err == nil:
		w.WriteHeader(http.StatusOK)
	case pkgerrors.IsNotFound(err):
		h.fail(w, http.StatusNotFound, msgNodeMissing)
	default:
		h.internal(w, err)
	}
}

// Connect handles GET /api/connect/{src}/{dst}
func (h *LegacyHandler) Connect(w http.ResponseWriter, r *http.Request) {
	src, dst, ok := h.endpoints(r)
	if !ok {
		h.fail(w, http.StatusBadRequest, msgConnectMissing)
		return
	}

	node, err := bus.SendAs[*entities.Node](r.Context(), h.commandBus, commands.ConnectNodesCommand{SourceID: src, TargetID: dst})
	switch {
	case err == nil:
		h.ok(w, node)
	case pkgerrors.IsNotFound(err):
		h.fail(w, http.StatusBadRequest, msgConnectMissing)
	case errors.Is(err, aggregates.ErrEdgeExists):
		h.fail(w, http.StatusBadRequest, msgEdgeExists)
	case pkgerrors.IsConflict(err):
		h.fail(w, http.StatusBadRequest, pkgerrors.GetAppError(err).Message)
	default:
		h.internal(w, err)
	}
}

// Disconnect handles DELETE /api/connect/{src}/{dst}
func (h *LegacyHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	src, dst, ok := h.endpoints(r)
	if !ok {
		h.fail(w, http.StatusBadRequest, msgDisconnectMissing)
		return
	}

	_, err := h.commandBus.Send(r.Context(), commands.DisconnectNodesCommand{SourceID: src, TargetID: dst})
	switch {
	case err == nil:
		w.WriteHeader(http.StatusOK)
	case pkgerrors.IsNotFound(err):
		h.fail(w, http.StatusBadRequest, msgDisconnectMissing)
	case errors.Is(err, aggregates.ErrEdgeNotFound):
		h.fail(w, http.StatusBadRequest, msgEdgeMissing)
	default:
		h.internal(w, err)
	}
}

// ShortestPath handles GET /api/shortest-path/{src}/{dst}
func (h *LegacyHandler) ShortestPath(w http.ResponseWriter, r *http.Request) {
	src, dst, ok := h.endpoints(r)
	if !ok {
		h.fail(w, http.StatusBadRequest, msgPathMissing)
		return
	}

	result, err := querybus.AskAs[queries.ShortestPathResult](r.Context(), h.queryBus, queries.ShortestPathQuery{SourceID: src, TargetID: dst})
	switch {
	case err == nil:
		h.ok(w, result)
	case pkgerrors.IsNotFound(err):
		h.fail(w, http.StatusBadRequest, msgPathMissing)
	case pkgerrors.IsUnreachable(err):
		h.fail(w, http.StatusBadRequest, msgNoPath)
	default:
		h.internal(w, err)
	}
}

// FindCycles handles GET /api/cycles
func (h *LegacyHandler) FindCycles(w http.ResponseWriter, r *http.Request) {
	cycles, err := querybus.AskAs[[][]valueobjects.NodeID](r.Context(), h.queryBus, queries.FindCyclesQuery{Mode: queries.CycleModeDFS})
	if err != nil {
		h.internal(w, err)
		return
	}
	if cycles == nil {
		cycles = [][]valueobjects.NodeID{}
	}
	h.ok(w, cycles)
}

func (h *LegacyHandler) nodeID(r *http.Request, name string) (valueobjects.NodeID, bool) {
	id, err := valueobjects.ParseNodeID(h.param(r, name))
	return id, err == nil
}

func (h *LegacyHandler) endpoints(r *http.Request) (src, dst valueobjects.NodeID, ok bool) {
	if src, ok = h.nodeID(r, "src"); !ok {
		return 0, 0, false
	}
	if dst, ok = h.nodeID(r, "dst"); !ok {
		return 0, 0, false
	}
	return src, dst, true
}

func (h *LegacyHandler) ok(w http.ResponseWriter, data interface{}) {
	if err := common.RespondJSON(w, http.StatusOK, data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *LegacyHandler) fail(w http.ResponseWriter, status int, message string) {
	if err := common.RespondJSON(w, status, LegacyError{Error: message}); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *LegacyHandler) internal(w http.ResponseWriter, err error) {
	h.logger.Error("Legacy request failed", zap.Error(err))
	h.fail(w, http.StatusInternalServerError, msgInternal)
}
