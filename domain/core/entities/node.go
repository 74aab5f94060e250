package entities

import (
	"encoding/json"
	"slices"

	"graphd/domain/core/valueobjects"
)

// Node is a labelled vertex of the graph together with its outgoing edges.
// Adjacency keeps insertion order and never holds the same target twice.
type Node struct {
	id          valueobjects.NodeID
	title       string
	description string
	condition   string
	adjacency   []valueobjects.NodeID
}

// NewNode creates a node with an empty adjacency list. Field validation is
// the graph's job.
func NewNode(id valueobjects.NodeID, title, description, condition string) *Node {
	return &Node{
		id:          id,
		title:       title,
		description: description,
		condition:   condition,
		adjacency:   []valueobjects.NodeID{},
	}
}

// ReconstructNode rebuilds a node including its edges, e.g. from a snapshot or in tests
func ReconstructNode(id valueobjects.NodeID, title, description, condition string, adjacency []valueobjects.NodeID) *Node {
	n := NewNode(id, title, description, condition)
	n.adjacency = append(n.adjacency, adjacency...)
	return n
}

// ID returns the node's identifier
func (n *Node) ID() valueobjects.NodeID {
	return n.id
}

// Title returns the node's title
func (n *Node) Title() string {
	return n.title
}

// Description returns the node's description
func (n *Node) Description() string {
	return n.description
}

// Condition returns the node's condition expression
func (n *Node) Condition() string {
	return n.condition
}

// Adjacency returns a copy of the outgoing edge targets in insertion order
func (n *Node) Adjacency() []valueobjects.NodeID {
	return slices.Clone(n.adjacency)
}

// Neighbors returns the stored adjacency without copying. Callers must not modify it.
func (n *Node) Neighbors() []valueobjects.NodeID {
	return n.adjacency
}

// SetTitle replaces the title
func (n *Node) SetTitle(title string) {
	n.title = title
}

// SetDescription replaces the description
func (n *Node) SetDescription(description string) {
	n.description = description
}

// SetCondition replaces the condition
func (n *Node) SetCondition(condition string) {
	n.condition = condition
}

// HasEdgeTo reports whether target is in the adjacency list
func (n *Node) HasEdgeTo(target valueobjects.NodeID) bool {
	return slices.Contains(n.adjacency, target)
}

// AddEdge appends target. It returns false if the edge already exists.
func (n *Node) AddEdge(target valueobjects.NodeID) bool {
	if n.HasEdgeTo(target) {
		return false
	}
	n.adjacency = append(n.adjacency, target)
	return true
}

// RemoveEdge removes target. It returns false if there was no such edge.
func (n *Node) RemoveEdge(target valueobjects.NodeID) bool {
	i := slices.Index(n.adjacency, target)
	if i < 0 {
		return false
	}
	n.adjacency = slices.Delete(n.adjacency, i, i+1)
	return true
}

// Clone returns a deep copy that shares no memory with n
func (n *Node) Clone() *Node {
	return ReconstructNode(n.id, n.title, n.description, n.condition, n.adjacency)
}

// nodeJSON is the wire representation of a node
type nodeJSON struct {
	ID          valueobjects.NodeID   `json:"id"`
	Title       string                `json:"titre"`
	Description string                `json:"description"`
	Condition   string                `json:"condition"`
	Adjacency   []valueobjects.NodeID `json:"list_adj"`
}

// MarshalJSON implements json.Marshaler
func (n *Node) MarshalJSON() ([]byte, error) {
	adjacency := n.adjacency
	if adjacency == nil {
		adjacency = []valueobjects.NodeID{}
	}
	return json.Marshal(nodeJSON{
		ID:          n.id,
		Title:       n.title,
		Description: n.description,
		Condition:   n.condition,
		Adjacency:   adjacency,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw nodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = *ReconstructNode(raw.ID, raw.Title, raw.Description, raw.Condition, raw.Adjacency)
	return nil
}
