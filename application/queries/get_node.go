package queries

import "graphd/domain/core/valueobjects"

// GetNodeQuery represents a query to get a single node
type GetNodeQuery struct {
	NodeID valueobjects.NodeID
}

func (GetNodeQuery) QueryName() string { return "get_node" }
func (GetNodeQuery) Validate() error   { return nil }

// ListNodesQuery returns every node in id order
type ListNodesQuery struct{}

func (ListNodesQuery) QueryName() string { return "list_nodes" }
func (ListNodesQuery) Validate() error   { return nil }
