package events

import (
	"time"

	"github.com/google/uuid"

	"graphd/domain/core/valueobjects"
)

// Event types
const (
	TypeNodeCreated = "node.created"
	TypeNodeUpdated = "node.updated"
	TypeNodeDeleted = "node.deleted"
	TypeEdgeCreated = "edge.created"
	TypeEdgeDeleted = "edge.deleted"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetEventID() string
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	EventID     string    `json:"event_id"`
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func newBaseEvent(aggregateID valueobjects.NodeID, eventType string, timestamp time.Time) BaseEvent {
	return BaseEvent{
		EventID:     uuid.New().String(),
		AggregateID: aggregateID.String(),
		EventType:   eventType,
		Timestamp:   timestamp,
		Version:     1,
	}
}

func (e BaseEvent) GetEventID() string      { return e.EventID }
func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// Node Events

// NodeCreated is raised when a new node is created
type NodeCreated struct {
	BaseEvent
	NodeID      valueobjects.NodeID `json:"node_id"`
	Title       string              `json:"titre"`
	Description string              `json:"description"`
	Condition   string              `json:"condition"`
}

// NewNodeCreated creates a NodeCreated event
func NewNodeCreated(nodeID valueobjects.NodeID, title, description, condition string, timestamp time.Time) NodeCreated {
	return NodeCreated{
		BaseEvent:   newBaseEvent(nodeID, TypeNodeCreated, timestamp),
		NodeID:      nodeID,
		Title:       title,
		Description: description,
		Condition:   condition,
	}
}

// NodeUpdated is raised when any field of a node changes. Only the fields
// that were part of the update are listed.
type NodeUpdated struct {
	BaseEvent
	NodeID        valueobjects.NodeID `json:"node_id"`
	ChangedFields []string            `json:"changed_fields"`
}

// NewNodeUpdated creates a NodeUpdated event
func NewNodeUpdated(nodeID valueobjects.NodeID, changedFields []string, timestamp time.Time) NodeUpdated {
	return NodeUpdated{
		BaseEvent:     newBaseEvent(nodeID, TypeNodeUpdated, timestamp),
		NodeID:        nodeID,
		ChangedFields: changedFields,
	}
}

// NodeDeleted is raised when a node is removed from the graph. Edges
// pointing at it are left in place.
type NodeDeleted struct {
	BaseEvent
	NodeID valueobjects.NodeID `json:"node_id"`
}

// NewNodeDeleted creates a NodeDeleted event
func NewNodeDeleted(nodeID valueobjects.NodeID, timestamp time.Time) NodeDeleted {
	return NodeDeleted{
		BaseEvent: newBaseEvent(nodeID, TypeNodeDeleted, timestamp),
		NodeID:    nodeID,
	}
}

// Edge Events

// EdgeCreated is raised when a directed edge is added
type EdgeCreated struct {
	BaseEvent
	SourceID valueobjects.NodeID `json:"source_id"`
	TargetID valueobjects.NodeID `json:"target_id"`
}

// NewEdgeCreated creates an EdgeCreated event
func NewEdgeCreated(sourceID, targetID valueobjects.NodeID, timestamp time.Time) EdgeCreated {
	return EdgeCreated{
		BaseEvent: newBaseEvent(sourceID, TypeEdgeCreated, timestamp),
		SourceID:  sourceID,
		TargetID:  targetID,
	}
}

// EdgeDeleted is raised when a directed edge is removed
type EdgeDeleted struct {
	BaseEvent
	SourceID valueobjects.NodeID `json:"source_id"`
	TargetID valueobjects.NodeID `json:"target_id"`
}

// NewEdgeDeleted creates an EdgeDeleted event
func NewEdgeDeleted(sourceID, targetID valueobjects.NodeID, timestamp time.Time) EdgeDeleted {
	return EdgeDeleted{
		BaseEvent: newBaseEvent(sourceID, TypeEdgeDeleted, timestamp),
		SourceID:  sourceID,
		TargetID:  targetID,
	}
}
