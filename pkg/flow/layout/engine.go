package layout

import "github.com/flowgrid/flowgrid/pkg/flow"

// Result holds the three derived structures of one layout run. All maps are
// freshly allocated per call; nothing is shared between invocations.
type Result struct {
	// Levels maps every input node ID to its hierarchy level.
	Levels map[string]int

	// Positions maps every input node ID to its center position.
	Positions map[string]flow.Point

	// Routes holds one routed path per layoutable edge, in input order.
	Routes []flow.EdgeRoute
}

// Compute runs the full engine: analyze → assign levels → position →
// classify → route. It is deterministic (identical input yields bit-identical
// output), side-effect free, and total: it returns a structurally valid,
// renderable result for any structurally valid graph, including cyclic,
// disconnected, and empty inputs.
func Compute(g flow.Graph, cfg Config) Result {
	cfg = cfg.WithDefaults()

	adj := Analyze(g)
	levels := AssignLevels(g, adj)
	positions := Positions(g, levels, cfg)
	classes := Classify(g.Edges, levels)
	routes := Route(g, positions, classes, cfg)

	return Result{
		Levels:    levels,
		Positions: positions,
		Routes:    routes,
	}
}

// Export converts a Result to the serialization format, carrying the graph
// structure alongside the geometry. Placed nodes follow the input node order.
func (r Result) Export(g flow.Graph, cfg Config) flow.Layout {
	cfg = cfg.WithDefaults()

	placed := make([]flow.PlacedNode, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		p := r.Positions[n.ID]
		placed = append(placed, flow.PlacedNode{
			ID:    n.ID,
			Level: r.Levels[n.ID],
			X:     p.X,
			Y:     p.Y,
		})
	}

	return flow.Layout{
		Width:       cfg.CanvasWidth,
		Height:      cfg.CanvasHeight,
		Orientation: string(cfg.Orientation),
		Routing:     string(cfg.Routing),
		Nodes:       g.Nodes,
		Edges:       g.Edges,
		Placed:      placed,
		Routes:      r.Routes,
		NodeSizes:   flow.BoxSize{Width: cfg.NodeWidth, Height: cfg.NodeHeight},
	}
}
