package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"graphd/application/commands/bus"
	"graphd/application/ports"
	querybus "graphd/application/queries/bus"
	"graphd/interfaces/http/rest/handlers"
	"graphd/interfaces/http/rest/middleware"
	v1 "graphd/interfaces/http/rest/v1"
	"graphd/pkg/common"
	pkgerrors "graphd/pkg/errors"
	"graphd/pkg/observability"
	"graphd/pkg/utils"
)

// Options selects the optional parts of the HTTP surface
type Options struct {
	Debug          bool
	EnableMetrics  bool
	EnableCORS     bool
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	Version        string
}

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	graph      ports.GraphStore
	metrics    *observability.Collector
	logger     *zap.Logger
	opts       Options
}

// NewRouter creates a new router instance
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	graph ports.GraphStore,
	metrics *observability.Collector,
	logger *zap.Logger,
	opts Options,
) *Router {
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		graph:      graph,
		metrics:    metrics,
		logger:     logger,
		opts:       opts,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	errorHandler := pkgerrors.NewErrorHandler(rt.logger, rt.opts.Debug)
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Logger(rt.logger))
	router.Use(errorHandler.Middleware)
	if rt.opts.EnableMetrics {
		router.Use(middleware.Metrics(rt.metrics))
	}
	if rt.opts.RateLimitRPS > 0 {
		limiter := middleware.NewIPRateLimiter(rt.opts.RateLimitRPS, rt.opts.RateLimitBurst)
		router.Use(middleware.RateLimit(limiter, errorHandler))
	}
	router.Use(middleware.Version)

	if rt.opts.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: rt.opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID", "Location"},
			MaxAge:         300,
		}))
	}

	// Operational endpoints
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.opts.EnableMetrics {
		router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	// Legacy layout, served by its own router on full paths
	legacy := v1.NewRouter(handlers.NewLegacyHandler(rt.commandBus, rt.queryBus, v1.Param, rt.logger))
	for _, prefix := range v1.Prefixes {
		router.Handle(prefix, legacy)
		router.Handle(prefix+"/*", legacy)
	}

	// API v2 routes (current)
	router.Route("/api/v2", func(r chi.Router) {
		nodeHandler := handlers.NewNodeHandler(rt.commandBus, rt.queryBus, errorHandler, rt.logger)
		edgeHandler := handlers.NewEdgeHandler(rt.commandBus, errorHandler, rt.logger)
		graphHandler := handlers.NewGraphHandler(rt.queryBus, errorHandler, rt.logger)

		r.Route("/nodes", func(r chi.Router) {
			r.Post("/", nodeHandler.CreateNode)
			r.Get("/", nodeHandler.ListNodes)
			r.Get("/{nodeID}", nodeHandler.GetNode)
			r.Put("/{nodeID}", nodeHandler.UpdateNode)
			r.Delete("/{nodeID}", nodeHandler.DeleteNode)

			r.Put("/{nodeID}/edges/{targetID}", edgeHandler.CreateEdge)
			r.Delete("/{nodeID}/edges/{targetID}", edgeHandler.DeleteEdge)
		})

		r.Get("/paths/{sourceID}/{targetID}", graphHandler.ShortestPath)
		r.Get("/cycles", graphHandler.FindCycles)
		r.Get("/graph.dot", graphHandler.ExportDOT)
		r.Get("/graph.svg", graphHandler.ExportSVG)

		r.NotFound(func(w http.ResponseWriter, req *http.Request) {
			errorHandler.Handle(w, req, pkgerrors.NewNotFoundError("route "+req.URL.Path))
		})
	})

	return router
}

type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version,omitempty"`
	Timestamp string `json:"timestamp"`
	Nodes     *int   `json:"nodes,omitempty"`
	Edges     *int   `json:"edges,omitempty"`
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	rt.respond(w, healthResponse{
		Status:    "healthy",
		Version:   rt.opts.Version,
		Timestamp: utils.NowRFC3339(),
	})
}

// readinessCheck reports ready once the graph is wired, with its size
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	nodes, edges := rt.graph.Len(), rt.graph.EdgeCount()
	rt.respond(w, healthResponse{
		Status:    "ready",
		Timestamp: utils.NowRFC3339(),
		Nodes:     &nodes,
		Edges:     &edges,
	})
}

func (rt *Router) respond(w http.ResponseWriter, data interface{}) {
	if err := common.RespondJSON(w, http.StatusOK, data); err != nil {
		rt.logger.Error("Failed to encode response", zap.Error(err))
	}
}
