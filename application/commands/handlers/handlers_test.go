package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"graphd/application/commands"
	"graphd/application/ports/mocks"
	"graphd/domain/core/aggregates"
	"graphd/domain/core/valueobjects"
	"graphd/domain/events"
	pkgerrors "graphd/pkg/errors"
)

func eventTypes(batch []events.DomainEvent) []string {
	types := make([]string, 0, len(batch))
	for _, e := range batch {
		types = append(types, e.GetEventType())
	}
	return types
}

func TestCreateNodeHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	graph := aggregates.NewGraph()
	mockPublisher := new(mocks.MockEventPublisher)
	mockMetrics := new(mocks.MockMetrics)

	mockPublisher.On("PublishBatch", ctx, mock.MatchedBy(func(batch []events.DomainEvent) bool {
		return assert.ObjectsAreEqual([]string{events.TypeNodeCreated}, eventTypes(batch))
	})).Return(nil)
	mockMetrics.On("SetGraphSize", 1, 0).Return()

	handler := NewCreateNodeHandler(graph, mockPublisher, mockMetrics, zap.NewNop())

	// Act
	node, err := handler.Handle(ctx, commands.CreateNodeCommand{
		Title:       "first title",
		Description: "first description",
		Condition:   "$var",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, valueobjects.NodeID(0), node.ID())
	mockPublisher.AssertExpectations(t)
	mockMetrics.AssertExpectations(t)
}

func TestCreateNodeHandler_Handle_InvalidConditionPublishesNothing(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockPublisher := new(mocks.MockEventPublisher)
	mockMetrics := new(mocks.MockMetrics)
	handler := NewCreateNodeHandler(aggregates.NewGraph(), mockPublisher, mockMetrics, zap.NewNop())

	// Act
	_, err := handler.Handle(ctx, commands.CreateNodeCommand{
		Title:       "first",
		Description: "first description",
		Condition:   "$var $var2",
	})

	// Assert
	assert.True(t, pkgerrors.IsValidation(err))
	mockPublisher.AssertNotCalled(t, "PublishBatch", mock.Anything, mock.Anything)
	mockMetrics.AssertNotCalled(t, "SetGraphSize", mock.Anything, mock.Anything)
}

func TestCreateNodeHandler_Handle_PublishFailureIsNotFatal(t *testing.T) {
	// Arrange
	ctx := context.Background()
	graph := aggregates.NewGraph()
	mockPublisher := new(mocks.MockEventPublisher)
	mockMetrics := new(mocks.MockMetrics)
	mockPublisher.On("PublishBatch", ctx, mock.Anything).Return(errors.New("bus unavailable"))
	mockMetrics.On("SetGraphSize", 1, 0).Return()

	handler := NewCreateNodeHandler(graph, mockPublisher, mockMetrics, zap.NewNop())

	// Act
	_, err := handler.Handle(ctx, commands.CreateNodeCommand{Title: "abc", Description: "d", Condition: "$x"})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 1, graph.Len())
}

func TestUpdateNodeHandler_Handle(t *testing.T) {
	ctx := context.Background()
	title := "updated title"
	empty := ""

	tests := []struct {
		name      string
		cmd       commands.UpdateNodeCommand
		wantTitle string
		wantErr   func(error) bool
	}{
		{
			name:      "title only",
			cmd:       commands.UpdateNodeCommand{NodeID: 0, Title: &title},
			wantTitle: "updated title",
		},
		{
			name:      "invalid title",
			cmd:       commands.UpdateNodeCommand{NodeID: 0, Title: &empty},
			wantTitle: "first title",
			wantErr:   pkgerrors.IsValidation,
		},
		{
			name:      "unknown node",
			cmd:       commands.UpdateNodeCommand{NodeID: 42, Title: &title},
			wantTitle: "first title",
			wantErr:   pkgerrors.IsNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			graph := aggregates.NewGraph()
			_, err := graph.CreateNode("first title", "first description", "$var")
			require.NoError(t, err)
			graph.DrainEvents()

			mockPublisher := new(mocks.MockEventPublisher)
			mockMetrics := new(mocks.MockMetrics)
			mockPublisher.On("PublishBatch", ctx, mock.Anything).Return(nil).Maybe()
			mockMetrics.On("SetGraphSize", 1, 0).Return().Maybe()

			handler := NewUpdateNodeHandler(graph, mockPublisher, mockMetrics, zap.NewNop())
			_, err = handler.Handle(ctx, tt.cmd)

			if tt.wantErr != nil {
				assert.True(t, tt.wantErr(err), "unexpected error %v", err)
				mockPublisher.AssertNotCalled(t, "PublishBatch", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				mockPublisher.AssertNumberOfCalls(t, "PublishBatch", 1)
			}

			stored, err := graph.GetNode(0)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, stored.Title())
		})
	}
}

func TestEdgeHandlers(t *testing.T) {
	// Arrange
	ctx := context.Background()
	graph := aggregates.NewGraph()
	for i := 0; i < 2; i++ {
		_, err := graph.CreateNode("title", "description", "$x")
		require.NoError(t, err)
	}
	graph.DrainEvents()

	mockPublisher := new(mocks.MockEventPublisher)
	mockMetrics := new(mocks.MockMetrics)
	mockPublisher.On("PublishBatch", ctx, mock.Anything).Return(nil)
	mockMetrics.On("SetGraphSize", 2, 1).Return().Once()
	mockMetrics.On("SetGraphSize", 2, 0).Return().Once()

	connect := NewConnectNodesHandler(graph, mockPublisher, mockMetrics, zap.NewNop())
	disconnect := NewDisconnectNodesHandler(graph, mockPublisher, mockMetrics, zap.NewNop())

	// Act
	source, err := connect.Handle(ctx, commands.ConnectNodesCommand{SourceID: 0, TargetID: 1})
	require.NoError(t, err)
	_, dupErr := connect.Handle(ctx, commands.ConnectNodesCommand{SourceID: 0, TargetID: 1})
	_, err = disconnect.Handle(ctx, commands.DisconnectNodesCommand{SourceID: 0, TargetID: 1})
	require.NoError(t, err)
	_, missingErr := disconnect.Handle(ctx, commands.DisconnectNodesCommand{SourceID: 0, TargetID: 1})

	// Assert
	assert.Equal(t, []valueobjects.NodeID{1}, source.Adjacency())
	assert.True(t, pkgerrors.IsConflict(dupErr))
	assert.True(t, pkgerrors.IsConflict(missingErr))
	mockPublisher.AssertNumberOfCalls(t, "PublishBatch", 2)
	mockMetrics.AssertExpectations(t)
}

func TestDeleteNodeHandler_Handle(t *testing.T) {
	// Arrange
	ctx := context.Background()
	graph := aggregates.NewGraph()
	_, err := graph.CreateNode("title", "description", "$x")
	require.NoError(t, err)
	graph.DrainEvents()

	mockPublisher := new(mocks.MockEventPublisher)
	mockMetrics := new(mocks.MockMetrics)
	mockPublisher.On("PublishBatch", ctx, mock.MatchedBy(func(batch []events.DomainEvent) bool {
		return len(batch) == 1 && batch[0].GetEventType() == events.TypeNodeDeleted
	})).Return(nil)
	mockMetrics.On("SetGraphSize", 0, 0).Return()

	handler := NewDeleteNodeHandler(graph, mockPublisher, mockMetrics, zap.NewNop())

	// Act
	_, err = handler.Handle(ctx, commands.DeleteNodeCommand{NodeID: 0})
	_, secondErr := handler.Handle(ctx, commands.DeleteNodeCommand{NodeID: 0})

	// Assert
	require.NoError(t, err)
	assert.True(t, pkgerrors.IsNotFound(secondErr))
	mockPublisher.AssertExpectations(t)
}
