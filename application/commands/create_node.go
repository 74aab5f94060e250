package commands

import (
	"graphd/domain/core/aggregates"
	"graphd/domain/core/valueobjects"
)

// CreateNodeCommand represents the command to create a new node
type CreateNodeCommand struct {
	Title       string
	Description string
	Condition   string
}

func (CreateNodeCommand) CommandName() string { return "create_node" }

// Validate is a no-op: field rules belong to the graph
func (CreateNodeCommand) Validate() error { return nil }

// UpdateNodeCommand changes the fields that are set
type UpdateNodeCommand struct {
	NodeID      valueobjects.NodeID
	Title       *string
	Description *string
	Condition   *string
}

func (UpdateNodeCommand) CommandName() string { return "update_node" }
func (UpdateNodeCommand) Validate() error     { return nil }

// ToUpdate converts the command into the aggregate's update description
func (c UpdateNodeCommand) ToUpdate() aggregates.NodeUpdate {
	return aggregates.NodeUpdate{
		Title:       c.Title,
		Description: c.Description,
		Condition:   c.Condition,
	}
}

// DeleteNodeCommand removes a node
type DeleteNodeCommand struct {
	NodeID valueobjects.NodeID
}

func (DeleteNodeCommand) CommandName() string { return "delete_node" }
func (DeleteNodeCommand) Validate() error     { return nil }
