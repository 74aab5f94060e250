package commands

import "graphd/domain/core/valueobjects"

// ConnectNodesCommand adds the directed edge SourceID -> TargetID
type ConnectNodesCommand struct {
	SourceID valueobjects.NodeID
	TargetID valueobjects.NodeID
}

func (ConnectNodesCommand) CommandName() string { return "connect_nodes" }
func (ConnectNodesCommand) Validate() error     { return nil }

// DisconnectNodesCommand removes the directed edge SourceID -> TargetID
type DisconnectNodesCommand struct {
	SourceID valueobjects.NodeID
	TargetID valueobjects.NodeID
}

func (DisconnectNodesCommand) CommandName() string { return "disconnect_nodes" }
func (DisconnectNodesCommand) Validate() error     { return nil }
