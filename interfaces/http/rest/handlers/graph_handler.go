package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"graphd/application/queries"
	querybus "graphd/application/queries/bus"
	"graphd/domain/core/valueobjects"
	"graphd/pkg/common"
	pkgerrors "graphd/pkg/errors"
)

// GraphHandler serves whole-graph queries: paths, cycles and exports
type GraphHandler struct {
	queryBus *querybus.QueryBus
	errors   *pkgerrors.ErrorHandler
	logger   *zap.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(queryBus *querybus.QueryBus, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{
		queryBus: queryBus,
		errors:   errorHandler,
		logger:   logger,
	}
}

// ShortestPath handles GET /paths/{sourceID}/{targetID}
func (h *GraphHandler) ShortestPath(w http.ResponseWriter, r *http.Request) {
	src, err := pathNodeID(r, chi.URLParam, "sourceID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	dst, err := pathNodeID(r, chi.URLParam, "targetID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := querybus.AskAs[queries.ShortestPathResult](r.Context(), h.queryBus, queries.ShortestPathQuery{SourceID: src, TargetID: dst})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.respond(w, result)
}

// FindCycles handles GET /cycles?mode=dfs|all
func (h *GraphHandler) FindCycles(w http.ResponseWriter, r *http.Request) {
	cycles, err := querybus.AskAs[[][]valueobjects.NodeID](r.Context(), h.queryBus, queries.FindCyclesQuery{Mode: r.URL.Query().Get("mode")})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if cycles == nil {
		cycles = [][]valueobjects.NodeID{}
	}

	h.respond(w, cycles)
}

// ExportDOT handles GET /graph.dot
func (h *GraphHandler) ExportDOT(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, queries.FormatDOT)
}

// ExportSVG handles GET /graph.svg
func (h *GraphHandler) ExportSVG(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, queries.FormatSVG)
}

func (h *GraphHandler) export(w http.ResponseWriter, r *http.Request, format string) {
	result, err := querybus.AskAs[queries.ExportResult](r.Context(), h.queryBus, queries.ExportGraphQuery{Format: format})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if err := common.RespondBytes(w, http.StatusOK, result.ContentType, result.Body); err != nil {
		h.logger.Warn("Failed to write export", zap.String("format", format), zap.Error(err))
	}
}

func (h *GraphHandler) respond(w http.ResponseWriter, data interface{}) {
	if err := common.RespondJSON(w, http.StatusOK, data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
