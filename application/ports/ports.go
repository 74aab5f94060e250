package ports

import (
	"context"
	"time"

	"graphd/domain/core/aggregates"
	"graphd/domain/core/entities"
	"graphd/domain/core/valueobjects"
	"graphd/domain/events"
)

// GraphStore is the graph the application operates on. Every method is
// atomic with respect to the others.
type GraphStore interface {
	CreateNode(title, description, condition string) (*entities.Node, error)
	GetNode(id valueobjects.NodeID) (*entities.Node, error)
	UpdateNode(id valueobjects.NodeID, update aggregates.NodeUpdate) (*entities.Node, error)
	DeleteNode(id valueobjects.NodeID) error
	Connect(src, dst valueobjects.NodeID) (*entities.Node, error)
	Disconnect(src, dst valueobjects.NodeID) error
	ShortestPath(src, dst valueobjects.NodeID) (int, error)
	FindCycles() [][]valueobjects.NodeID
	ListNodes() []*entities.Node
	Snapshot() ([]*entities.Node, uint64)
	Len() int
	EdgeCount() int

	// DrainEvents hands over the events recorded by mutations since the last call
	DrainEvents() []events.DomainEvent
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// Cache defines the interface for caching
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set stores a value in cache with TTL in seconds
	Set(ctx context.Context, key string, value interface{}, ttl int) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error
}

// Metrics records application level measurements
type Metrics interface {
	RecordOperation(operation string, err error, duration time.Duration)
	SetGraphSize(nodes, edges int)
}

var _ GraphStore = (*aggregates.Graph)(nil)
