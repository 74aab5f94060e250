package aggregates

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphd/domain/config"
	"graphd/domain/core/valueobjects"
	"graphd/domain/events"
	pkgerrors "graphd/pkg/errors"
)

func strPtr(s string) *string { return &s }

// newTestGraph creates n valid nodes with ids 0..n-1
func newTestGraph(t *testing.T, n int) *Graph {
	t.Helper()
	g := NewGraph()
	for i := 0; i < n; i++ {
		_, err := g.CreateNode("title", "description", "$var")
		require.NoError(t, err)
	}
	return g
}

func connectAll(t *testing.T, g *Graph, edges [][2]valueobjects.NodeID) {
	t.Helper()
	for _, e := range edges {
		_, err := g.Connect(e[0], e[1])
		require.NoError(t, err)
	}
}

func TestGraph_CreateNode(t *testing.T) {
	g := NewGraph()

	first, err := g.CreateNode("first title", "first description", "$var")
	require.NoError(t, err)
	second, err := g.CreateNode("second title", "second description", "$a AND $b")
	require.NoError(t, err)

	assert.Equal(t, valueobjects.NodeID(0), first.ID())
	assert.Equal(t, valueobjects.NodeID(1), second.ID())
	assert.Empty(t, first.Adjacency())
	assert.Equal(t, "first title", first.Title())
	assert.Equal(t, "$a AND $b", second.Condition())
}

func TestGraph_CreateNode_Validation(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		condition   string
	}{
		{"empty title", "", "description", "$var"},
		{"short title", "ab", "description", "$var"},
		{"empty description", "title", "", "$var"},
		{"even token count", "title", "description", "$var $var2"},
		{"missing dollar", "title", "description", "var AND $x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGraph()
			_, err := g.CreateNode(tt.title, tt.description, tt.condition)
			assert.True(t, pkgerrors.IsValidation(err))
			assert.Equal(t, 0, g.Len())
		})
	}
}

func TestGraph_IDsAreNeverReused(t *testing.T) {
	g := newTestGraph(t, 2)

	require.NoError(t, g.DeleteNode(1))
	node, err := g.CreateNode("title", "description", "$x")
	require.NoError(t, err)

	assert.Equal(t, valueobjects.NodeID(2), node.ID())
}

func TestGraph_GetNode(t *testing.T) {
	g := newTestGraph(t, 1)

	first, err := g.GetNode(0)
	require.NoError(t, err)
	second, err := g.GetNode(0)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = g.GetNode(100)
	assert.True(t, errors.Is(err, ErrNodeNotFound))
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestGraph_ReturnedNodesAreCopies(t *testing.T) {
	g := newTestGraph(t, 2)

	node, err := g.GetNode(0)
	require.NoError(t, err)
	node.SetTitle("mutated outside")
	node.AddEdge(1)

	stored, err := g.GetNode(0)
	require.NoError(t, err)
	assert.Equal(t, "title", stored.Title())
	assert.Empty(t, stored.Adjacency())
}

func TestGraph_UpdateNode(t *testing.T) {
	tests := []struct {
		name     string
		update   NodeUpdate
		wantErr  bool
		wantNode [3]string
	}{
		{
			name:     "title only",
			update:   NodeUpdate{Title: strPtr("updated title")},
			wantNode: [3]string{"updated title", "description", "$var"},
		},
		{
			name:     "all fields",
			update:   NodeUpdate{Title: strPtr("new"), Description: strPtr("new desc"), Condition: strPtr("$a OR $b")},
			wantNode: [3]string{"new", "new desc", "$a OR $b"},
		},
		{
			name:     "invalid title keeps valid condition out",
			update:   NodeUpdate{Title: strPtr(""), Condition: strPtr("$a")},
			wantErr:  true,
			wantNode: [3]string{"title", "description", "$var"},
		},
		{
			name:     "invalid condition keeps valid title out",
			update:   NodeUpdate{Title: strPtr("valid title"), Condition: strPtr("$a $b")},
			wantErr:  true,
			wantNode: [3]string{"title", "description", "$var"},
		},
		{
			name:     "empty description rejected",
			update:   NodeUpdate{Description: strPtr("")},
			wantErr:  true,
			wantNode: [3]string{"title", "description", "$var"},
		},
		{
			name:     "empty update",
			update:   NodeUpdate{},
			wantNode: [3]string{"title", "description", "$var"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGraph(t, 1)

			updated, err := g.UpdateNode(0, tt.update)
			if tt.wantErr {
				assert.True(t, pkgerrors.IsValidation(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantNode[0], updated.Title())
			}

			stored, err := g.GetNode(0)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNode, [3]string{stored.Title(), stored.Description(), stored.Condition()})
		})
	}
}

func TestGraph_UpdateNode_NotFound(t *testing.T) {
	g := newTestGraph(t, 1)

	_, err := g.UpdateNode(100000000000, NodeUpdate{Condition: strPtr("$var AND $var2")})
	assert.True(t, errors.Is(err, ErrNodeNotFound))
}

func TestGraph_DeleteNode(t *testing.T) {
	g := newTestGraph(t, 2)
	connectAll(t, g, [][2]valueobjects.NodeID{{0, 1}})

	require.NoError(t, g.DeleteNode(1))
	assert.Equal(t, 1, g.Len())

	// no cascade
	node, err := g.GetNode(0)
	require.NoError(t, err)
	assert.Equal(t, []valueobjects.NodeID{1}, node.Adjacency())

	assert.True(t, errors.Is(g.DeleteNode(1), ErrNodeNotFound))
}

func TestGraph_Connect(t *testing.T) {
	g := newTestGraph(t, 3)

	source, err := g.Connect(1, 2)
	require.NoError(t, err)
	assert.Equal(t, valueobjects.NodeID(1), source.ID())
	assert.Equal(t, []valueobjects.NodeID{2}, source.Adjacency())

	_, err = g.Connect(1, 2)
	assert.True(t, errors.Is(err, ErrEdgeExists))
	assert.True(t, pkgerrors.IsConflict(err))

	node, err := g.GetNode(1)
	require.NoError(t, err)
	assert.Equal(t, []valueobjects.NodeID{2}, node.Adjacency(), "edge must be stored once")

	_, err = g.Connect(100, 101)
	assert.True(t, errors.Is(err, ErrNodeNotFound))
	_, err = g.Connect(1, 101)
	assert.True(t, errors.Is(err, ErrNodeNotFound))

	assert.Equal(t, 1, g.EdgeCount())
}

func TestGraph_Connect_SelfLoop(t *testing.T) {
	g := newTestGraph(t, 1)
	node, err := g.Connect(0, 0)
	require.NoError(t, err)
	assert.Equal(t, []valueobjects.NodeID{0}, node.Adjacency())

	strict := NewGraphWithConfig(&config.DomainConfig{MinTitleLength: 3})
	_, err = strict.CreateNode("title", "description", "$x")
	require.NoError(t, err)
	_, err = strict.Connect(0, 0)
	assert.True(t, errors.Is(err, ErrSelfLoop))
}

func TestGraph_Disconnect(t *testing.T) {
	g := newTestGraph(t, 4)
	connectAll(t, g, [][2]valueobjects.NodeID{{1, 2}, {1, 3}})

	require.NoError(t, g.Disconnect(1, 2))
	node, err := g.GetNode(1)
	require.NoError(t, err)
	assert.Equal(t, []valueobjects.NodeID{3}, node.Adjacency())

	err = g.Disconnect(1, 2)
	assert.True(t, errors.Is(err, ErrEdgeNotFound))
	assert.True(t, pkgerrors.IsConflict(err))

	assert.True(t, errors.Is(g.Disconnect(100, 101), ErrNodeNotFound))
	assert.Equal(t, 1, g.EdgeCount())
}

func TestGraph_ListNodesInIDOrder(t *testing.T) {
	g := newTestGraph(t, 4)
	require.NoError(t, g.DeleteNode(2))

	var ids []valueobjects.NodeID
	for _, n := range g.ListNodes() {
		ids = append(ids, n.ID())
	}
	assert.Equal(t, []valueobjects.NodeID{0, 1, 3}, ids)
}

func TestGraph_DrainEvents(t *testing.T) {
	g := newTestGraph(t, 2)
	connectAll(t, g, [][2]valueobjects.NodeID{{0, 1}})
	require.NoError(t, g.Disconnect(0, 1))
	_, err := g.UpdateNode(0, NodeUpdate{Title: strPtr("renamed")})
	require.NoError(t, err)
	require.NoError(t, g.DeleteNode(1))
	_, err = g.UpdateNode(0, NodeUpdate{Title: strPtr("x")})
	require.Error(t, err)

	var types []string
	for _, e := range g.DrainEvents() {
		types = append(types, e.GetEventType())
		assert.NotEmpty(t, e.GetEventID())
	}
	assert.Equal(t, []string{
		events.TypeNodeCreated,
		events.TypeNodeCreated,
		events.TypeEdgeCreated,
		events.TypeEdgeDeleted,
		events.TypeNodeUpdated,
		events.TypeNodeDeleted,
	}, types)
	assert.Empty(t, g.DrainEvents())
}

func TestGraph_ConcurrentCreateAssignsUniqueIDs(t *testing.T) {
	g := NewGraph()
	const workers, perWorker = 8, 50

	var wg sync.WaitGroup
	ids := make(chan valueobjects.NodeID, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				node, err := g.CreateNode("title", "description", "$x")
				if err == nil {
					ids <- node.ID()
				}
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[valueobjects.NodeID]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers*perWorker)
	assert.Equal(t, workers*perWorker, g.Len())
}

func TestGraph_VersionTracksMutations(t *testing.T) {
	g := NewGraph()
	assert.Equal(t, uint64(0), g.Version())

	_, err := g.CreateNode("title", "description", "$x")
	require.NoError(t, err)
	_, err = g.CreateNode("ab", "description", "$x")
	require.Error(t, err)
	_, err = g.GetNode(0)
	require.NoError(t, err)

	nodes, version := g.Snapshot()
	assert.Len(t, nodes, 1)
	assert.Equal(t, uint64(1), version)
}
