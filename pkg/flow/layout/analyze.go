package layout

import "github.com/flowgrid/flowgrid/pkg/flow"

// Adjacency is the analyzed structure of a workflow graph: adjacency lists
// for every node plus the root/leaf/start classification used by the level
// assigner.
type Adjacency struct {
	// Outgoing maps a node ID to the IDs of its forward neighbors. Every
	// node in the input has an entry, possibly empty.
	Outgoing map[string][]string

	// Incoming maps a node ID to the IDs of nodes with an edge into it.
	// Every node in the input has an entry, possibly empty.
	Incoming map[string][]string

	// Roots are nodes with no incoming edges, in input order.
	Roots []flow.Node

	// Leaves are nodes with no outgoing edges, in input order.
	Leaves []flow.Node

	// Starts are the traversal entry points: the roots when any exist,
	// otherwise the single node with the greatest outgoing-edge count
	// (first encountered wins ties). A non-empty graph always has at least
	// one start, even when fully cyclic.
	Starts []flow.Node
}

// Analyze builds adjacency lists and classifies nodes from a node+edge list.
//
// Edges whose source or target is missing from the node set are silently
// skipped: a dangling edge is an absence in the output, never an error.
// Self-loops are recorded in both adjacency directions like any other edge.
//
// Analyze is a pure function and runs in O(N+E).
func Analyze(g flow.Graph) Adjacency {
	adj := Adjacency{
		Outgoing: make(map[string][]string, len(g.Nodes)),
		Incoming: make(map[string][]string, len(g.Nodes)),
	}

	for _, n := range g.Nodes {
		adj.Outgoing[n.ID] = nil
		adj.Incoming[n.ID] = nil
	}

	for _, e := range g.Edges {
		if _, ok := adj.Outgoing[e.Source]; !ok {
			continue
		}
		if _, ok := adj.Outgoing[e.Target]; !ok {
			continue
		}
		adj.Outgoing[e.Source] = append(adj.Outgoing[e.Source], e.Target)
		adj.Incoming[e.Target] = append(adj.Incoming[e.Target], e.Source)
	}

	for _, n := range g.Nodes {
		if len(adj.Incoming[n.ID]) == 0 {
			adj.Roots = append(adj.Roots, n)
		}
		if len(adj.Outgoing[n.ID]) == 0 {
			adj.Leaves = append(adj.Leaves, n)
		}
	}

	adj.Starts = adj.Roots
	if len(adj.Starts) == 0 && len(g.Nodes) > 0 {
		// Fully cyclic graph: pick the busiest node so traversal still has
		// an entry point. Input order breaks ties.
		best := g.Nodes[0]
		for _, n := range g.Nodes[1:] {
			if len(adj.Outgoing[n.ID]) > len(adj.Outgoing[best.ID]) {
				best = n
			}
		}
		adj.Starts = []flow.Node{best}
	}

	return adj
}
