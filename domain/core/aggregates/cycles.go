package aggregates

import (
	"slices"

	"graphd/domain/core/entities"
	"graphd/domain/core/valueobjects"
)

type visitState uint8

const (
	unvisited visitState = iota
	inProgress
	done
)

// dfsFrame is one level of the explicit DFS stack: the node and the index of
// the next adjacency entry to examine.
type dfsFrame struct {
	id        valueobjects.NodeID
	adjacency []valueobjects.NodeID
	next      int
}

// FindCycles runs a depth-first search from every unvisited node in id order
// and records a cycle for each edge that points back to a node still on the
// current path. Each cycle is returned closed, e.g. [1 2 1].
//
// Only back edges within one DFS forest are reported: a cycle reachable
// solely through an already finished node is not found. See
// analysis.AllCycles for a complete enumeration.
func (g *Graph) FindCycles() [][]valueobjects.NodeID {
	g.mu.Lock()
	defer g.mu.Unlock()

	cycles := [][]valueobjects.NodeID{}
	state := make(map[valueobjects.NodeID]visitState, g.nodes.Len())

	var roots []valueobjects.NodeID
	g.nodes.Scan(func(id valueobjects.NodeID, _ *entities.Node) bool {
		roots = append(roots, id)
		return true
	})

	for _, root := range roots {
		if state[root] != unvisited {
			continue
		}
		cycles = g.walk(root, state, cycles)
	}
	return cycles
}

func (g *Graph) walk(root valueobjects.NodeID, state map[valueobjects.NodeID]visitState, cycles [][]valueobjects.NodeID) [][]valueobjects.NodeID {
	var path []valueobjects.NodeID
	var stack []*dfsFrame

	enter := func(id valueobjects.NodeID) {
		node, _ := g.lookup(id)
		state[id] = inProgress
		path = append(path, id)
		stack = append(stack, &dfsFrame{id: id, adjacency: node.Neighbors()})
	}
	enter(root)

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		if frame.next == len(frame.adjacency) {
			stack = stack[:len(stack)-1]
			path = path[:len(path)-1]
			state[frame.id] = done
			continue
		}

		target := frame.adjacency[frame.next]
		frame.next++

		if _, ok := g.lookup(target); !ok {
			continue
		}
		switch state[target] {
		case inProgress:
			cycles = append(cycles, closeCycle(path, target))
		case unvisited:
			enter(target)
		}
	}
	return cycles
}

// closeCycle builds the cycle ending in the back edge to target: the path
// from target to the top of the stack, followed by target again.
func closeCycle(path []valueobjects.NodeID, target valueobjects.NodeID) []valueobjects.NodeID {
	cycle := []valueobjects.NodeID{target}
	for i := len(path) - 1; path[i] != target; i-- {
		cycle = append(cycle, path[i])
	}
	cycle = append(cycle, target)
	slices.Reverse(cycle)
	return cycle
}
