package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/flowgrid/flowgrid/pkg/flow"
)

const legacyDoc = `{
	"nodes": [
		{"nodeId": "draft", "type": "status", "name": "Draft"},
		{"nodeId": "submit", "type": "event", "name": "Submit"},
		{"nodeId": "review", "type": "status", "name": "Review"}
	],
	"edges": [
		{"from": "draft", "to": "submit"},
		{"from": "submit", "to": "review"},
		{"from": "review", "to": "ghost"}
	]
}`

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, log.FatalLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

func TestAdaptCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "workflow.json")
	if err := os.WriteFile(input, []byte(legacyDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	output := filepath.Join(dir, "graph.json")
	if err := runCommand(t, "adapt", input, "-o", output); err != nil {
		t.Fatalf("adapt: %v", err)
	}

	g, err := flow.ReadGraphFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(g.Nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(g.Nodes))
	}
	// The dangling edge must have been dropped.
	if len(g.Edges) != 2 {
		t.Errorf("edges = %d, want 2", len(g.Edges))
	}
}

func TestAdaptCommandMissingInput(t *testing.T) {
	if err := runCommand(t, "adapt", filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("missing input should fail")
	}
}

func TestLayoutCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "graph.json")
	g := flow.Graph{
		Nodes: []flow.Node{
			{ID: "a", Kind: flow.KindState},
			{ID: "b", Kind: flow.KindEvent},
		},
		Edges: []flow.Edge{{ID: "e1", Source: "a", Target: "b"}},
	}
	if err := flow.WriteGraphFile(g, input); err != nil {
		t.Fatal(err)
	}

	output := filepath.Join(dir, "out.layout.json")
	if err := runCommand(t, "layout", input, "-o", output, "--no-cache"); err != nil {
		t.Fatalf("layout: %v", err)
	}

	l, err := flow.ReadLayoutFile(output)
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	if len(l.Placed) != 2 {
		t.Errorf("placed = %d, want 2", len(l.Placed))
	}
	if len(l.Routes) != 1 {
		t.Errorf("routes = %d, want 1", len(l.Routes))
	}
}

func TestLayoutCommandVertical(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "graph.json")
	g := flow.Graph{
		Nodes: []flow.Node{{ID: "a"}, {ID: "b"}},
		Edges: []flow.Edge{{ID: "e1", Source: "a", Target: "b"}},
	}
	if err := flow.WriteGraphFile(g, input); err != nil {
		t.Fatal(err)
	}

	output := filepath.Join(dir, "v.layout.json")
	if err := runCommand(t, "layout", input, "-o", output, "--no-cache", "--orientation", "vertical"); err != nil {
		t.Fatalf("layout: %v", err)
	}

	l, err := flow.ReadLayoutFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if l.Orientation != "vertical" {
		t.Errorf("orientation = %q, want vertical", l.Orientation)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "graph.json")
	g := flow.Graph{
		Nodes: []flow.Node{
			{ID: "a", Kind: flow.KindState, Label: "A"},
			{ID: "b", Kind: flow.KindEvent, Label: "B"},
		},
		Edges: []flow.Edge{{ID: "e1", Source: "a", Target: "b"}},
	}
	if err := flow.WriteGraphFile(g, input); err != nil {
		t.Fatal(err)
	}

	if err := runCommand(t, "render", input, "-f", "svg,dot,json", "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}

	base := strings.TrimSuffix(input, ".json")
	for _, ext := range []string{"svg", "dot", "json"} {
		data, err := os.ReadFile(base + "." + ext)
		if err != nil {
			t.Fatalf("read %s artifact: %v", ext, err)
		}
		if len(data) == 0 {
			t.Errorf("%s artifact is empty", ext)
		}
	}
}

func TestRenderCommandLegacy(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "workflow.json")
	if err := os.WriteFile(input, []byte(legacyDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	output := filepath.Join(dir, "out.svg")
	if err := runCommand(t, "render", input, "--legacy", "-o", output, "--no-cache"); err != nil {
		t.Fatalf("render --legacy: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "<svg") {
		t.Error("output should be an SVG document")
	}
}

func TestRenderCommandRejectsBadFormat(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "graph.json")
	g := flow.Graph{Nodes: []flow.Node{{ID: "a"}}}
	if err := flow.WriteGraphFile(g, input); err != nil {
		t.Fatal(err)
	}

	if err := runCommand(t, "render", input, "-f", "gif", "--no-cache"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output string
		input  string
		want   string
	}{
		{"", "graph.json", "graph"},
		{"out.svg", "graph.json", "out"},
		{"out", "graph.json", "out"},
		{"diagrams/wf.png", "graph.json", "diagrams/wf"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}
