package aggregates

import (
	"sync"
	"time"

	"github.com/tidwall/btree"

	"graphd/domain/config"
	"graphd/domain/core/entities"
	"graphd/domain/core/validators"
	"graphd/domain/core/valueobjects"
	"graphd/domain/events"
)

// Graph is the aggregate root owning every node. All operations hold one
// exclusive lock for their whole duration, so no caller ever observes a
// partially applied change. Nodes handed out are copies.
type Graph struct {
	mu        sync.Mutex
	nodes     btree.Map[valueobjects.NodeID, *entities.Node]
	nextID    valueobjects.NodeID
	edgeCount int
	version   uint64
	validator *validators.NodeValidator
	cfg       *config.DomainConfig
	events    []events.DomainEvent
	now       func() time.Time
}

// NodeUpdate lists the fields to change. Nil fields are left untouched.
type NodeUpdate struct {
	Title       *string
	Description *string
	Condition   *string
}

// Empty reports whether the update carries no field
func (u NodeUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Condition == nil
}

// NewGraph creates an empty graph with the default domain rules
func NewGraph() *Graph {
	return NewGraphWithConfig(config.DefaultDomainConfig())
}

// NewGraphWithConfig creates an empty graph with the given domain rules
func NewGraphWithConfig(cfg *config.DomainConfig) *Graph {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &Graph{
		validator: validators.NewNodeValidatorWithConfig(cfg),
		cfg:       cfg,
		events:    []events.DomainEvent{},
		now:       time.Now,
	}
}

// CreateNode validates the fields, assigns the next id and stores a node with
// no edges.
func (g *Graph) CreateNode(title, description, condition string) (*entities.Node, error) {
	if err := g.validator.ValidateNode(title, description, condition); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	node := entities.NewNode(g.nextID, title, description, condition)
	g.nextID++
	g.nodes.Set(node.ID(), node)

	g.addEvent(events.NewNodeCreated(node.ID(), title, description, condition, g.now()))
	return node.Clone(), nil
}

// GetNode returns a copy of the node
func (g *Graph) GetNode(id valueobjects.NodeID) (*entities.Node, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	node, ok := g.nodes.Get(id)
	if !ok {
		return nil, nodeNotFound(id)
	}
	return node.Clone(), nil
}

// HasNode reports whether id is present
func (g *Graph) HasNode(id valueobjects.NodeID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.nodes.Get(id)
	return ok
}

// UpdateNode applies the present fields of update. Every present field is
// validated (title, then description, then condition) before any of them is
// written; one failure leaves the node untouched.
func (g *Graph) UpdateNode(id valueobjects.NodeID, update NodeUpdate) (*entities.Node, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	node, ok := g.nodes.Get(id)
	if !ok {
		return nil, nodeNotFound(id)
	}

	if update.Title != nil {
		if err := g.validator.ValidateTitle(*update.Title); err != nil {
			return nil, err
		}
	}
	if update.Description != nil {
		if err := g.validator.ValidateDescription(*update.Description); err != nil {
			return nil, err
		}
	}
	if update.Condition != nil {
		if err := g.validator.ValidateCondition(*update.Condition); err != nil {
			return nil, err
		}
	}

	var changed []string
	if update.Title != nil {
		node.SetTitle(*update.Title)
		changed = append(changed, "titre")
	}
	if update.Description != nil {
		node.SetDescription(*update.Description)
		changed = append(changed, "description")
	}
	if update.Condition != nil {
		node.SetCondition(*update.Condition)
		changed = append(changed, "condition")
	}

	if len(changed) > 0 {
		g.addEvent(events.NewNodeUpdated(id, changed, g.now()))
	}
	return node.Clone(), nil
}

// DeleteNode removes the node. Edges from other nodes to it are kept and
// become dangling.
func (g *Graph) DeleteNode(id valueobjects.NodeID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	node, ok := g.nodes.Delete(id)
	if !ok {
		return nodeNotFound(id)
	}
	g.edgeCount -= len(node.Neighbors())

	g.addEvent(events.NewNodeDeleted(id, g.now()))
	return nil
}

// Connect adds the edge src -> dst and returns the updated source node
func (g *Graph) Connect(src, dst valueobjects.NodeID) (*entities.Node, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	source, ok := g.nodes.Get(src)
	if !ok {
		return nil, nodeNotFound(src)
	}
	if _, ok := g.nodes.Get(dst); !ok {
		return nil, nodeNotFound(dst)
	}
	if src == dst && !g.cfg.AllowSelfConnections {
		return nil, selfLoop(src)
	}
	if !source.AddEdge(dst) {
		return nil, edgeExists(src, dst)
	}
	g.edgeCount++

	g.addEvent(events.NewEdgeCreated(src, dst, g.now()))
	return source.Clone(), nil
}

// Disconnect removes the edge src -> dst
func (g *Graph) Disconnect(src, dst valueobjects.NodeID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	source, ok := g.nodes.Get(src)
	if !ok {
		return nodeNotFound(src)
	}
	if _, ok := g.nodes.Get(dst); !ok {
		return nodeNotFound(dst)
	}
	if !source.RemoveEdge(dst) {
		return edgeNotFound(src, dst)
	}
	g.edgeCount--

	g.addEvent(events.NewEdgeDeleted(src, dst, g.now()))
	return nil
}

// ListNodes returns copies of all nodes in id order
func (g *Graph) ListNodes() []*entities.Node {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.listLocked()
}

func (g *Graph) listLocked() []*entities.Node {
	nodes := make([]*entities.Node, 0, g.nodes.Len())
	g.nodes.Scan(func(_ valueobjects.NodeID, node *entities.Node) bool {
		nodes = append(nodes, node.Clone())
		return true
	})
	return nodes
}

// Len returns the number of nodes
func (g *Graph) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.nodes.Len()
}

// EdgeCount returns the number of stored edges, dangling ones included
func (g *Graph) EdgeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.edgeCount
}

// Version increases with every successful mutation
func (g *Graph) Version() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.version
}

// Snapshot returns copies of all nodes in id order together with the version
// they belong to.
func (g *Graph) Snapshot() ([]*entities.Node, uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.listLocked(), g.version
}

// DrainEvents returns the events recorded since the last call and clears them
func (g *Graph) DrainEvents() []events.DomainEvent {
	g.mu.Lock()
	defer g.mu.Unlock()

	pending := g.events
	g.events = []events.DomainEvent{}
	return pending
}

// addEvent records a mutation. Must be called with g.mu held.
func (g *Graph) addEvent(event events.DomainEvent) {
	g.version++
	g.events = append(g.events, event)
}

// lookup resolves an adjacency entry. Must be called with g.mu held.
func (g *Graph) lookup(id valueobjects.NodeID) (*entities.Node, bool) {
	return g.nodes.Get(id)
}
