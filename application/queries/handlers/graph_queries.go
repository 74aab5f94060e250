package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"graphd/application/ports"
	"graphd/application/queries"
	"graphd/domain/core/analysis"
	"graphd/domain/core/valueobjects"
)

// ShortestPathHandler answers distance queries
type ShortestPathHandler struct {
	store ports.GraphStore
}

// NewShortestPathHandler creates a new shortest path handler
func NewShortestPathHandler(store ports.GraphStore) *ShortestPathHandler {
	return &ShortestPathHandler{store: store}
}

// Handle executes the shortest path query
func (h *ShortestPathHandler) Handle(ctx context.Context, query queries.ShortestPathQuery) (queries.ShortestPathResult, error) {
	distance, err := h.store.ShortestPath(query.SourceID, query.TargetID)
	if err != nil {
		return queries.ShortestPathResult{}, err
	}
	return queries.ShortestPathResult{Distance: distance}, nil
}

// FindCyclesHandler lists cycles with the requested algorithm
type FindCyclesHandler struct {
	store ports.GraphStore
}

// NewFindCyclesHandler creates a new cycles handler
func NewFindCyclesHandler(store ports.GraphStore) *FindCyclesHandler {
	return &FindCyclesHandler{store: store}
}

// Handle executes the find cycles query
func (h *FindCyclesHandler) Handle(ctx context.Context, query queries.FindCyclesQuery) ([][]valueobjects.NodeID, error) {
	if query.Mode == queries.CycleModeAll {
		return analysis.AllCycles(h.store.ListNodes()), nil
	}
	return h.store.FindCycles(), nil
}

// ExportGraphHandler renders the graph. SVG output is cached per graph version.
type ExportGraphHandler struct {
	store    ports.GraphStore
	cache    ports.Cache
	cacheTTL int
	logger   *zap.Logger
}

// NewExportGraphHandler creates a new export handler
func NewExportGraphHandler(store ports.GraphStore, cache ports.Cache, cacheTTL int, logger *zap.Logger) *ExportGraphHandler {
	return &ExportGraphHandler{
		store:    store,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Handle executes the export query
func (h *ExportGraphHandler) Handle(ctx context.Context, query queries.ExportGraphQuery) (queries.ExportResult, error) {
	nodes, version := h.store.Snapshot()
	dot := analysis.ToDOT(nodes)

	if query.Format == queries.FormatDOT {
		return queries.ExportResult{ContentType: "text/vnd.graphviz", Body: []byte(dot)}, nil
	}

	key := fmt.Sprintf("graph.svg:%d", version)
	if cached, ok := h.cache.Get(ctx, key); ok {
		if svg, ok := cached.([]byte); ok {
			return queries.ExportResult{ContentType: "image/svg+xml", Body: svg}, nil
		}
	}

	svg, err := analysis.RenderSVG(ctx, dot)
	if err != nil {
		return queries.ExportResult{}, fmt.Errorf("render svg: %w", err)
	}
	if err := h.cache.Set(ctx, key, svg, h.cacheTTL); err != nil {
		h.logger.Warn("Failed to cache rendered graph", zap.String("key", key), zap.Error(err))
	}
	return queries.ExportResult{ContentType: "image/svg+xml", Body: svg}, nil
}
