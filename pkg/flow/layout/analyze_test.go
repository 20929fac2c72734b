package layout

import (
	"testing"

	"github.com/flowgrid/flowgrid/pkg/flow"
)

func node(id string) flow.Node { return flow.Node{ID: id, Kind: flow.KindState} }

func edge(id, src, dst string) flow.Edge {
	return flow.Edge{ID: id, Source: src, Target: dst}
}

func TestAnalyzeAdjacency(t *testing.T) {
	g := flow.Graph{
		Nodes: []flow.Node{node("a"), node("b"), node("c"), node("isolated")},
		Edges: []flow.Edge{edge("e1", "a", "b"), edge("e2", "b", "c")},
	}

	adj := Analyze(g)

	if len(adj.Outgoing) != 4 || len(adj.Incoming) != 4 {
		t.Fatalf("every node should have adjacency entries, got %d/%d", len(adj.Outgoing), len(adj.Incoming))
	}
	if got := adj.Outgoing["a"]; len(got) != 1 || got[0] != "b" {
		t.Errorf("Outgoing[a] = %v, want [b]", got)
	}
	if got := adj.Incoming["c"]; len(got) != 1 || got[0] != "b" {
		t.Errorf("Incoming[c] = %v, want [b]", got)
	}
	if got := adj.Outgoing["isolated"]; len(got) != 0 {
		t.Errorf("isolated node should have empty outgoing list, got %v", got)
	}
}

func TestAnalyzeRootsAndLeaves(t *testing.T) {
	g := flow.Graph{
		Nodes: []flow.Node{node("root"), node("mid"), node("leaf")},
		Edges: []flow.Edge{edge("e1", "root", "mid"), edge("e2", "mid", "leaf")},
	}

	adj := Analyze(g)

	if len(adj.Roots) != 1 || adj.Roots[0].ID != "root" {
		t.Errorf("Roots = %v, want [root]", adj.Roots)
	}
	if len(adj.Leaves) != 1 || adj.Leaves[0].ID != "leaf" {
		t.Errorf("Leaves = %v, want [leaf]", adj.Leaves)
	}
	if len(adj.Starts) != 1 || adj.Starts[0].ID != "root" {
		t.Errorf("Starts = %v, want [root]", adj.Starts)
	}
}

func TestAnalyzeSkipsDanglingEdges(t *testing.T) {
	g := flow.Graph{
		Nodes: []flow.Node{node("a"), node("b")},
		Edges: []flow.Edge{
			edge("e1", "a", "b"),
			edge("e2", "a", "ghost"),
			edge("e3", "ghost", "b"),
		},
	}

	adj := Analyze(g)

	if got := adj.Outgoing["a"]; len(got) != 1 {
		t.Errorf("dangling edge should be skipped, Outgoing[a] = %v", got)
	}
	if got := adj.Incoming["b"]; len(got) != 1 {
		t.Errorf("dangling edge should be skipped, Incoming[b] = %v", got)
	}
	if _, exists := adj.Outgoing["ghost"]; exists {
		t.Error("missing endpoint must not create an adjacency entry")
	}
}

func TestAnalyzeFullyCyclicGraphHasStart(t *testing.T) {
	// No roots exist; the busiest node (b, two outgoing) becomes the start.
	g := flow.Graph{
		Nodes: []flow.Node{node("a"), node("b"), node("c")},
		Edges: []flow.Edge{
			edge("e1", "a", "b"),
			edge("e2", "b", "c"),
			edge("e3", "b", "a"),
			edge("e4", "c", "b"),
		},
	}

	adj := Analyze(g)

	if len(adj.Roots) != 0 {
		t.Fatalf("expected no roots, got %v", adj.Roots)
	}
	if len(adj.Starts) != 1 || adj.Starts[0].ID != "b" {
		t.Errorf("Starts = %v, want [b] (greatest out-degree)", adj.Starts)
	}
}

func TestAnalyzeCyclicTieBreakByInputOrder(t *testing.T) {
	g := flow.Graph{
		Nodes: []flow.Node{node("x"), node("y")},
		Edges: []flow.Edge{edge("e1", "x", "y"), edge("e2", "y", "x")},
	}

	adj := Analyze(g)

	if len(adj.Starts) != 1 || adj.Starts[0].ID != "x" {
		t.Errorf("Starts = %v, want [x] (first encountered on equal out-degree)", adj.Starts)
	}
}

func TestAnalyzeEmptyGraph(t *testing.T) {
	adj := Analyze(flow.Graph{})
	if len(adj.Starts) != 0 || len(adj.Roots) != 0 || len(adj.Leaves) != 0 {
		t.Errorf("empty graph should analyze to empty classification: %+v", adj)
	}
}
