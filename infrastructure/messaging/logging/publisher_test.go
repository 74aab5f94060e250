package logging

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"graphd/domain/events"
)

func TestPublisher_PublishBatch(t *testing.T) {
	// Arrange
	core, logs := observer.New(zap.InfoLevel)
	p := NewPublisher(zap.New(core))
	ts := time.Now()

	// Act
	err := p.PublishBatch(context.Background(), []events.DomainEvent{
		events.NewEdgeCreated(1, 2, ts),
		events.NewNodeDeleted(3, ts),
	})

	// Assert
	require.NoError(t, err)
	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "events", entries[0].LoggerName)
	assert.Equal(t, events.TypeEdgeCreated, entries[0].ContextMap()["eventType"])
	assert.Equal(t, "1", entries[0].ContextMap()["aggregateID"])
	assert.Equal(t, events.TypeNodeDeleted, entries[1].ContextMap()["eventType"])
}
