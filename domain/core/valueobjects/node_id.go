package valueobjects

import (
	"errors"
	"strconv"
)

// NodeID identifies a node within a graph. Ids are assigned by the graph in
// increasing order starting at zero and are never reused.
type NodeID int

// ParseNodeID parses the decimal form used in URLs
func ParseNodeID(s string) (NodeID, error) {
	if s == "" {
		return 0, errors.New("node ID cannot be empty")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("node ID must be an integer")
	}
	if n < 0 {
		return 0, errors.New("node ID cannot be negative")
	}
	return NodeID(n), nil
}

// String returns the decimal representation of the NodeID
func (id NodeID) String() string {
	return strconv.Itoa(int(id))
}

// Int returns the NodeID as a plain int
func (id NodeID) Int() int {
	return int(id)
}
