package layout

import "github.com/flowgrid/flowgrid/pkg/flow"

// AssignLevels assigns every node an integer hierarchy level by breadth-first
// traversal from the graph's start nodes.
//
// # Algorithm
//
// All start nodes are seeded at level 0. Visiting a node for the first time
// settles its level permanently: a node reachable via multiple paths is
// leveled by whichever BFS frontier reaches it first (shortest hop distance
// from a start node), and the assignment is never revised. This
// earliest-settlement policy yields a deterministic, acyclic-looking layering
// even when the underlying graph has cycles.
//
// # Cycles and disconnected nodes
//
// The visited set guarantees each node is enqueued at most once, so cycles
// and self-loops terminate. Nodes never reached by the traversal
// (disconnected components beyond the start set) are assigned level 0 within
// their own component rather than being omitted.
//
// # Totality
//
// Every node in g.Nodes has exactly one entry in the returned map. The
// function cannot fail: dangling edges were already filtered by [Analyze].
func AssignLevels(g flow.Graph, adj Adjacency) map[string]int {
	levels := make(map[string]int, len(g.Nodes))
	visited := make(map[string]bool, len(g.Nodes))

	queue := make([]string, 0, len(adj.Starts))
	for _, n := range adj.Starts {
		if visited[n.ID] {
			continue
		}
		visited[n.ID] = true
		levels[n.ID] = 0
		queue = append(queue, n.ID)
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, next := range adj.Outgoing[curr] {
			if visited[next] {
				continue
			}
			visited[next] = true
			levels[next] = levels[curr] + 1
			queue = append(queue, next)
		}
	}

	// Disconnected components: level 0, never omitted.
	for _, n := range g.Nodes {
		if !visited[n.ID] {
			levels[n.ID] = 0
		}
	}

	return levels
}
