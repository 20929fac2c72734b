package layout

import (
	"testing"

	"github.com/flowgrid/flowgrid/pkg/flow"
)

func TestClassifyBackward(t *testing.T) {
	g := flow.Graph{
		Nodes: []flow.Node{node("A"), node("B")},
		Edges: []flow.Edge{edge("fwd", "A", "B"), edge("back", "B", "A")},
	}
	levels := assignLevels(g) // A:0, B:1

	classes := Classify(g.Edges, levels)

	if classes["fwd"].Backward {
		t.Error("A→B flows to a deeper level and must be forward")
	}
	if !classes["back"].Backward {
		t.Error("B→A flows to a shallower level and must be backward")
	}
}

func TestClassifyRootLevelLateralEdgeIsForward(t *testing.T) {
	// Both endpoints at level 0: there is no "up" to flow against at the
	// root, so the edge is forward despite level(target) <= level(source).
	levels := map[string]int{"r1": 0, "r2": 0}
	edges := []flow.Edge{edge("e1", "r1", "r2")}

	classes := Classify(edges, levels)

	if classes["e1"].Backward {
		t.Error("level-0 lateral edge must classify as forward")
	}
}

func TestClassifySameLevelDeepEdgeIsBackward(t *testing.T) {
	levels := map[string]int{"a": 2, "b": 2}
	classes := Classify([]flow.Edge{edge("e1", "a", "b")}, levels)

	if !classes["e1"].Backward {
		t.Error("same-level edge below the root must classify as backward")
	}
}

func TestClassifyGroups(t *testing.T) {
	levels := map[string]int{"a": 0, "b": 1, "c": 1}
	edges := []flow.Edge{
		edge("e1", "a", "b"),
		edge("e2", "a", "c"),
		edge("e3", "a", "b"),
		edge("e4", "a", "b"),
	}

	classes := Classify(edges, levels)

	wantIdx := map[string]int{"e1": 0, "e3": 1, "e4": 2, "e2": 0}
	wantSize := map[string]int{"e1": 3, "e3": 3, "e4": 3, "e2": 1}
	for id, idx := range wantIdx {
		if classes[id].GroupIndex != idx {
			t.Errorf("%s: GroupIndex = %d, want %d", id, classes[id].GroupIndex, idx)
		}
		if classes[id].GroupSize != wantSize[id] {
			t.Errorf("%s: GroupSize = %d, want %d", id, classes[id].GroupSize, wantSize[id])
		}
	}
	if classes["e1"].GroupKey != (GroupKey{Source: "a", Target: "b"}) {
		t.Errorf("GroupKey = %+v", classes["e1"].GroupKey)
	}
}

func TestClassifySelfLoop(t *testing.T) {
	levels := map[string]int{"a": 1}
	classes := Classify([]flow.Edge{edge("loop", "a", "a")}, levels)

	if !classes["loop"].Backward {
		t.Error("self-loop below the root flows to the same level and is backward")
	}
}
