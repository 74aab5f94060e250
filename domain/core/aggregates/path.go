package aggregates

import "graphd/domain/core/valueobjects"

type queueItem struct {
	id   valueobjects.NodeID
	dist int
}

// ShortestPath returns the number of edges on a shortest path from src to
// dst. Both nodes must exist. Edges to deleted nodes are ignored.
func (g *Graph) ShortestPath(src, dst valueobjects.NodeID) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.lookup(src); !ok {
		return 0, nodeNotFound(src)
	}
	if _, ok := g.lookup(dst); !ok {
		return 0, nodeNotFound(dst)
	}
	if src == dst {
		return 0, nil
	}

	visited := make(map[valueobjects.NodeID]bool, g.nodes.Len())
	queue := []queueItem{{id: src, dist: 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node, ok := g.lookup(current.id)
		if !ok {
			continue
		}
		for _, next := range node.Neighbors() {
			if _, ok := g.lookup(next); !ok {
				continue
			}
			if !visited[next] {
				visited[next] = true
				queue = append(queue, queueItem{id: next, dist: current.dist + 1})
			}
			// BFS discovers dst first along a shortest path
			if next == dst {
				return current.dist + 1, nil
			}
		}
	}

	return 0, unreachable(src, dst)
}
