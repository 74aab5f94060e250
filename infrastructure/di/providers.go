package di

import (
	"context"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"graphd/application/commands"
	"graphd/application/commands/bus"
	commandhandlers "graphd/application/commands/handlers"
	"graphd/application/ports"
	"graphd/application/queries"
	querybus "graphd/application/queries/bus"
	queryhandlers "graphd/application/queries/handlers"
	domainconfig "graphd/domain/config"
	"graphd/domain/core/aggregates"
	"graphd/infrastructure/config"
	"graphd/infrastructure/messaging/eventbridge"
	"graphd/infrastructure/messaging/logging"
	"graphd/pkg/observability"
)

// cacheCleanupInterval is how often expired exports are swept
const cacheCleanupInterval = time.Minute

// ProvideLogLevel creates the runtime adjustable log level
func ProvideLogLevel(cfg *config.Config) (zap.AtomicLevel, error) {
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return zap.AtomicLevel{}, err
	}
	return zap.NewAtomicLevelAt(level), nil
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config, level zap.AtomicLevel) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = level

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("environment", cfg.Environment)), nil
}

// ProvideDomainConfig extracts the graph rules from the application config
func ProvideDomainConfig(cfg *config.Config) *domainconfig.DomainConfig {
	return &domainconfig.DomainConfig{
		MinTitleLength:       cfg.MinTitleLength,
		AllowSelfConnections: cfg.AllowSelfConnections,
	}
}

// ProvideGraph creates the process wide graph
func ProvideGraph(domainCfg *domainconfig.DomainConfig) ports.GraphStore {
	return aggregates.NewGraphWithConfig(domainCfg)
}

// ProvideMetrics creates the Prometheus collector
func ProvideMetrics(cfg *config.Config) *observability.Collector {
	return observability.NewCollector(cfg.MetricsNamespace)
}

// ProvideTracerProvider initializes tracing and hands back its shutdown
func ProvideTracerProvider(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*observability.TracerProvider, func(), error) {
	tp, err := observability.InitTracing(ctx, observability.TracingConfig{
		Enabled:        cfg.EnableTracing,
		ServiceName:    "graphd",
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		Endpoint:       cfg.OTLPEndpoint,
		Insecure:       cfg.OTLPInsecure,
		SampleRate:     cfg.TraceSampleRate,
	})
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Failed to flush traces", zap.Error(err))
		}
	}
	return tp, cleanup, nil
}

// ProvideTracer exposes the service tracer
func ProvideTracer(tp *observability.TracerProvider) trace.Tracer {
	return tp.Tracer()
}

// ProvideEventPublisher publishes to EventBridge when a bus is configured
// and to the log otherwise.
func ProvideEventPublisher(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.EventPublisher, error) {
	if cfg.EventBusName == "" {
		logger.Info("No event bus configured, logging domain events")
		return logging.NewPublisher(logger), nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return eventbridge.NewPublisher(
		awseventbridge.NewFromConfig(awsCfg),
		cfg.EventBusName,
		cfg.EventSource,
		logger,
	), nil
}

// ProvideInMemoryCache creates the export cache and stops its sweeper on cleanup
func ProvideInMemoryCache() (*InMemoryCache, func()) {
	cache := NewInMemoryCache(cacheCleanupInterval)
	return cache, cache.Close
}

// ProvideConfigWatcher creates the config file watcher
func ProvideConfigWatcher(cfg *config.Config, level zap.AtomicLevel, logger *zap.Logger) *config.Watcher {
	return config.NewWatcher(cfg, level, logger)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	store ports.GraphStore,
	publisher ports.EventPublisher,
	metrics ports.Metrics,
	tracer trace.Tracer,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(
		bus.TracingMiddleware(tracer),
		bus.LoggingMiddleware(&zapLoggerAdapter{logger}),
		bus.MetricsMiddleware(metrics),
	)

	createNode := commandhandlers.NewCreateNodeHandler(store, publisher, metrics, logger)
	updateNode := commandhandlers.NewUpdateNodeHandler(store, publisher, metrics, logger)
	deleteNode := commandhandlers.NewDeleteNodeHandler(store, publisher, metrics, logger)
	connect := commandhandlers.NewConnectNodesHandler(store, publisher, metrics, logger)
	disconnect := commandhandlers.NewDisconnectNodesHandler(store, publisher, metrics, logger)

	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{commands.CreateNodeCommand{}, bus.Typed(createNode.Handle)},
		{commands.UpdateNodeCommand{}, bus.Typed(updateNode.Handle)},
		{commands.DeleteNodeCommand{}, bus.Typed(deleteNode.Handle)},
		{commands.ConnectNodesCommand{}, bus.Typed(connect.Handle)},
		{commands.DisconnectNodesCommand{}, bus.Typed(disconnect.Handle)},
	}
	for _, r := range registrations {
		if err := commandBus.Register(r.cmd, r.handler); err != nil {
			return nil, err
		}
	}

	return commandBus, nil
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	store ports.GraphStore,
	cache ports.Cache,
	metrics ports.Metrics,
	tracer trace.Tracer,
	cfg *config.Config,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(
		querybus.TracingMiddleware(tracer),
		querybus.MetricsMiddleware(metrics),
	)

	getNode := queryhandlers.NewGetNodeHandler(store)
	listNodes := queryhandlers.NewListNodesHandler(store)
	shortestPath := queryhandlers.NewShortestPathHandler(store)
	findCycles := queryhandlers.NewFindCyclesHandler(store)
	export := queryhandlers.NewExportGraphHandler(store, cache, cfg.ExportCacheTTL, logger)

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.GetNodeQuery{}, querybus.Typed(getNode.Handle)},
		{queries.ListNodesQuery{}, querybus.Typed(listNodes.Handle)},
		{queries.ShortestPathQuery{}, querybus.Typed(shortestPath.Handle)},
		{queries.FindCyclesQuery{}, querybus.Typed(findCycles.Handle)},
		{queries.ExportGraphQuery{}, querybus.Typed(export.Handle)},
	}
	for _, r := range registrations {
		if err := queryBus.Register(r.query, r.handler); err != nil {
			return nil, err
		}
	}

	return queryBus, nil
}

// zapLoggerAdapter adapts zap.Logger to the bus.Logger interface
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Debug(msg string, fields ...interface{}) {
	a.logger.Debug(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) Info(msg string, fields ...interface{}) {
	a.logger.Info(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) Error(msg string, fields ...interface{}) {
	a.logger.Error(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) fieldsToZap(fields ...interface{}) []zap.Field {
	var zapFields []zap.Field
	for i := 0; i+1 < len(fields); i += 2 {
		key, _ := fields[i].(string)
		zapFields = append(zapFields, zap.Any(key, fields[i+1]))
	}
	return zapFields
}
