package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/flowgrid/flowgrid/pkg/cache"
	"github.com/flowgrid/flowgrid/pkg/flow"
)

func testGraph() flow.Graph {
	return flow.Graph{
		Nodes: []flow.Node{
			{ID: "draft", Kind: flow.KindState, Label: "Draft"},
			{ID: "submit", Kind: flow.KindEvent, Label: "Submit"},
			{ID: "review", Kind: flow.KindState, Label: "Review"},
		},
		Edges: []flow.Edge{
			{ID: "t1", Source: "draft", Target: "submit"},
			{ID: "t2", Source: "submit", Target: "review"},
			{ID: "t3", Source: "review", Target: "draft"},
		},
	}
}

func TestOptionsValidate(t *testing.T) {
	g := testGraph()
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"graph input", Options{Graph: &g}, false},
		{"source input", Options{Source: []byte(`{"nodes":[],"edges":[]}`)}, false},
		{"no input", Options{}, true},
		{"both inputs", Options{Graph: &g, Source: []byte(`{}`)}, true},
		{"bad format", Options{Graph: &g, Formats: []string{"gif"}}, true},
		{"bad style", Options{Graph: &g, Style: "neon"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAndSetDefaults() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsDefaultFormat(t *testing.T) {
	g := testGraph()
	opts := Options{Graph: &g}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "svg" {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
}

func TestLayoutKeyOptsNormalized(t *testing.T) {
	// Explicit defaults and absent fields must share one cache entry.
	var a, b Options
	b.Width = 1000
	b.Orientation = "horizontal"

	if a.LayoutKeyOpts() != b.LayoutKeyOpts() {
		t.Error("defaulted and explicit-default options should produce equal key opts")
	}

	var c Options
	c.Orientation = "vertical"
	if a.LayoutKeyOpts() == c.LayoutKeyOpts() {
		t.Error("different orientation should change key opts")
	}
}

func TestExecuteWithGraph(t *testing.T) {
	g := testGraph()
	r := NewRunner(nil, nil, nil)

	res, err := r.Execute(context.Background(), Options{
		Graph:   &g,
		Formats: []string{"svg", "json", "dot"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Stats.NodeCount != 3 || res.Stats.EdgeCount != 3 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.GraphHash == "" {
		t.Error("GraphHash should be set")
	}
	if len(res.Layout.Placed) != 3 {
		t.Errorf("placed = %d, want 3", len(res.Layout.Placed))
	}
	for _, format := range []string{"svg", "json", "dot"} {
		if len(res.Artifacts[format]) == 0 {
			t.Errorf("missing %s artifact", format)
		}
	}
	if !strings.HasPrefix(string(res.Artifacts["svg"]), "<svg") {
		t.Error("svg artifact should be an SVG document")
	}
	if !strings.HasPrefix(string(res.Artifacts["dot"]), "digraph") {
		t.Error("dot artifact should be a DOT document")
	}
}

func TestExecuteWithLegacySource(t *testing.T) {
	source := []byte(`{
		"nodes": [
			{"nodeId": "a", "type": "status", "name": "Open"},
			{"nodeId": "b", "type": "event", "name": "Close"}
		],
		"edges": [
			{"from": "a", "to": "b"},
			{"from": "a", "to": "ghost"}
		]
	}`)

	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Source: source})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Stats.NodeCount != 2 {
		t.Errorf("NodeCount = %d, want 2", res.Stats.NodeCount)
	}
	if res.Report.DroppedEdges != 1 {
		t.Errorf("DroppedEdges = %d, want 1", res.Report.DroppedEdges)
	}
	if res.Report.GeneratedEdgeIDs != 1 {
		t.Errorf("GeneratedEdgeIDs = %d, want 1", res.Report.GeneratedEdgeIDs)
	}
}

func TestExecuteRejectsInvalidGraph(t *testing.T) {
	g := flow.Graph{Nodes: []flow.Node{{ID: "a"}, {ID: "a"}}}
	r := NewRunner(nil, nil, nil)

	if _, err := r.Execute(context.Background(), Options{Graph: &g}); err == nil {
		t.Error("duplicate node IDs should fail the pipeline")
	}
}

func TestLayoutCaching(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	g := testGraph()

	l1, hit1, err := r.ComputeLayoutWithCacheInfo(ctx, g, Options{})
	if err != nil {
		t.Fatalf("first layout: %v", err)
	}
	if hit1 {
		t.Error("first run should miss the cache")
	}

	l2, hit2, err := r.ComputeLayoutWithCacheInfo(ctx, g, Options{})
	if err != nil {
		t.Fatalf("second layout: %v", err)
	}
	if !hit2 {
		t.Error("second run should hit the cache")
	}

	d1, _ := flow.MarshalLayout(l1)
	d2, _ := flow.MarshalLayout(l2)
	if !bytes.Equal(d1, d2) {
		t.Error("cached layout should round trip identically")
	}
}

func TestLayoutCacheKeyedOnGeometry(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	g := testGraph()
	if _, _, err := r.ComputeLayoutWithCacheInfo(ctx, g, Options{}); err != nil {
		t.Fatal(err)
	}

	// A different orientation must not reuse the horizontal entry.
	_, hit, err := r.ComputeLayoutWithCacheInfo(ctx, g, Options{Orientation: "vertical"})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("changed geometry should miss the cache")
	}
}

func TestRefreshBypassesCache(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	g := testGraph()
	if _, _, err := r.ComputeLayoutWithCacheInfo(ctx, g, Options{}); err != nil {
		t.Fatal(err)
	}

	_, hit, err := r.ComputeLayoutWithCacheInfo(ctx, g, Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("refresh should bypass the cache read")
	}
}

func TestRenderCaching(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	g := testGraph()
	l, err := r.ComputeLayout(ctx, g, Options{})
	if err != nil {
		t.Fatal(err)
	}

	opts := Options{Formats: []string{"svg"}}
	a1, hit1, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	if hit1 {
		t.Error("first render should miss")
	}

	a2, hit2, err := r.RenderWithCacheInfo(ctx, l, Options{Formats: []string{"svg"}})
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !hit2 {
		t.Error("second render should hit")
	}
	if !bytes.Equal(a1["svg"], a2["svg"]) {
		t.Error("cached artifact should match the rendered one")
	}

	// A different style is a different artifact.
	_, hit3, err := r.RenderWithCacheInfo(ctx, l, Options{Formats: []string{"svg"}, Style: "dark"})
	if err != nil {
		t.Fatal(err)
	}
	if hit3 {
		t.Error("changed style should miss the artifact cache")
	}
}
