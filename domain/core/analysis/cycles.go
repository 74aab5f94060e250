// Package analysis holds read-only algorithms over graph snapshots that go
// beyond the aggregate's own traversals.
package analysis

import (
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"graphd/domain/core/entities"
	"graphd/domain/core/valueobjects"
)

// AllCycles enumerates every elementary cycle of the snapshot with Johnson's
// algorithm. Unlike Graph.FindCycles it also reports cycles that a single DFS
// forest misses. Each cycle starts at its smallest id and is closed, e.g.
// [0 2 0]. Cycles are ordered by length, then lexicographically.
func AllCycles(nodes []*entities.Node) [][]valueobjects.NodeID {
	g := simple.NewDirectedGraph()
	live := make(map[valueobjects.NodeID]bool, len(nodes))
	for _, n := range nodes {
		live[n.ID()] = true
		g.AddNode(simple.Node(int64(n.ID())))
	}

	cycles := [][]valueobjects.NodeID{}
	for _, n := range nodes {
		for _, target := range n.Neighbors() {
			if !live[target] {
				continue
			}
			// simple graphs reject self edges
			if target == n.ID() {
				cycles = append(cycles, []valueobjects.NodeID{target, target})
				continue
			}
			g.SetEdge(g.NewEdge(simple.Node(int64(n.ID())), simple.Node(int64(target))))
		}
	}

	for _, found := range topo.DirectedCyclesIn(g) {
		ids := make([]valueobjects.NodeID, 0, len(found))
		for _, node := range found {
			ids = append(ids, valueobjects.NodeID(node.ID()))
		}
		cycles = append(cycles, normalize(ids))
	}

	slices.SortFunc(cycles, func(a, b []valueobjects.NodeID) int {
		if len(a) != len(b) {
			return len(a) - len(b)
		}
		return slices.Compare(a, b)
	})
	return cycles
}

// normalize rotates a cycle to start at its smallest id and closes it
func normalize(cycle []valueobjects.NodeID) []valueobjects.NodeID {
	if len(cycle) > 1 && cycle[0] == cycle[len(cycle)-1] {
		cycle = cycle[:len(cycle)-1]
	}
	start := 0
	for i, id := range cycle {
		if id < cycle[start] {
			start = i
		}
	}
	out := make([]valueobjects.NodeID, 0, len(cycle)+1)
	out = append(out, cycle[start:]...)
	out = append(out, cycle[:start]...)
	return append(out, out[0])
}
