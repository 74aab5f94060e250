package di

import (
	"go.uber.org/zap"

	"graphd/application/commands/bus"
	"graphd/application/ports"
	querybus "graphd/application/queries/bus"
	"graphd/infrastructure/config"
	"graphd/pkg/observability"
)

// Version is stamped at build time with -ldflags "-X graphd/infrastructure/di.Version=..."
var Version = "dev"

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	LogLevel      zap.AtomicLevel
	Graph         ports.GraphStore
	EventBus      ports.EventPublisher
	Cache         *InMemoryCache
	Metrics       *observability.Collector
	Tracing       *observability.TracerProvider
	ConfigWatcher *config.Watcher
	CommandBus    *bus.CommandBus
	QueryBus      *querybus.QueryBus
}
