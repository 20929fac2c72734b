package layout

import (
	"testing"

	"github.com/flowgrid/flowgrid/pkg/flow"
)

func assignLevels(g flow.Graph) map[string]int {
	return AssignLevels(g, Analyze(g))
}

func TestAssignLevelsChain(t *testing.T) {
	g := flow.Graph{
		Nodes: []flow.Node{
			{ID: "S1", Kind: flow.KindState},
			{ID: "Ev1", Kind: flow.KindEvent},
			{ID: "S2", Kind: flow.KindState},
		},
		Edges: []flow.Edge{edge("e1", "S1", "Ev1"), edge("e2", "Ev1", "S2")},
	}

	levels := assignLevels(g)

	want := map[string]int{"S1": 0, "Ev1": 1, "S2": 2}
	for id, lvl := range want {
		if levels[id] != lvl {
			t.Errorf("level(%s) = %d, want %d", id, levels[id], lvl)
		}
	}
}

func TestAssignLevelsTotality(t *testing.T) {
	g := flow.Graph{
		Nodes: []flow.Node{node("a"), node("b"), node("c"), node("off1"), node("off2")},
		Edges: []flow.Edge{edge("e1", "a", "b"), edge("e2", "b", "c"), edge("e3", "off1", "off2")},
	}

	levels := assignLevels(g)

	if len(levels) != len(g.Nodes) {
		t.Fatalf("got %d level entries, want %d (every node leveled)", len(levels), len(g.Nodes))
	}
	for _, n := range g.Nodes {
		if lvl, ok := levels[n.ID]; !ok || lvl < 0 {
			t.Errorf("node %s: level %d, ok=%v", n.ID, lvl, ok)
		}
	}
}

func TestAssignLevelsCycleTerminates(t *testing.T) {
	g := flow.Graph{
		Nodes: []flow.Node{node("A"), node("B"), node("C")},
		Edges: []flow.Edge{edge("e1", "A", "B"), edge("e2", "B", "C"), edge("e3", "C", "A")},
	}

	levels := assignLevels(g)

	if len(levels) != 3 {
		t.Fatalf("cycle: got %d levels, want 3", len(levels))
	}
	// A is the only start (no roots, equal degree, first in input order).
	if levels["A"] != 0 || levels["B"] != 1 || levels["C"] != 2 {
		t.Errorf("levels = %v, want A:0 B:1 C:2", levels)
	}
}

func TestAssignLevelsSelfLoop(t *testing.T) {
	g := flow.Graph{
		Nodes: []flow.Node{node("a"), node("b")},
		Edges: []flow.Edge{edge("e1", "a", "a"), edge("e2", "a", "b")},
	}

	levels := assignLevels(g)

	if levels["a"] != 0 || levels["b"] != 1 {
		t.Errorf("levels = %v, want a:0 b:1", levels)
	}
}

func TestAssignLevelsEarliestSettlementWins(t *testing.T) {
	// b is reachable in one hop from the root and in two hops via c.
	// The one-hop frontier reaches it first and the level is never revised.
	g := flow.Graph{
		Nodes: []flow.Node{node("root"), node("c"), node("b")},
		Edges: []flow.Edge{
			edge("e1", "root", "c"),
			edge("e2", "root", "b"),
			edge("e3", "c", "b"),
		},
	}

	levels := assignLevels(g)

	if levels["b"] != 1 {
		t.Errorf("level(b) = %d, want 1 (shortest hop distance)", levels["b"])
	}
}

func TestAssignLevelsDisconnectedComponents(t *testing.T) {
	g := flow.Graph{
		Nodes: []flow.Node{node("a"), node("b"), node("lone")},
		Edges: []flow.Edge{edge("e1", "a", "b")},
	}

	levels := assignLevels(g)

	if levels["lone"] != 0 {
		t.Errorf("disconnected node level = %d, want 0", levels["lone"])
	}
}

func TestAssignLevelsUnreachableCycleComponent(t *testing.T) {
	// x and y form a cycle unreachable from the root, so BFS never visits
	// them. They must still be leveled (at 0), never omitted.
	g := flow.Graph{
		Nodes: []flow.Node{node("root"), node("child"), node("x"), node("y")},
		Edges: []flow.Edge{
			edge("e1", "root", "child"),
			edge("e2", "x", "y"),
			edge("e3", "y", "x"),
		},
	}

	levels := assignLevels(g)

	if len(levels) != 4 {
		t.Fatalf("got %d level entries, want 4", len(levels))
	}
	if levels["x"] != 0 || levels["y"] != 0 {
		t.Errorf("unreached cycle nodes should default to level 0, got x:%d y:%d", levels["x"], levels["y"])
	}
}
