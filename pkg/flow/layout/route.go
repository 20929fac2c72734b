package layout

import (
	"math"

	"github.com/flowgrid/flowgrid/pkg/flow"
)

// Route computes a control-point path for every edge whose endpoints are
// positioned.
//
// Forward edges connect the source anchor to the target anchor in the main
// flow direction (right→left sides under horizontal orientation, bottom→top
// under vertical). Backward edges leave and enter through the sides facing
// away from the main flow and detour through a clearance lane beyond the
// deepest node box, so cyclic flow stays visually separate from forward flow
// regardless of styling.
//
// Parallel edges - members of one (source, target) group - are displaced
// perpendicular to the source→target direction by (index-(size-1)/2)*unit,
// where the unit shrinks for large groups but never below a readable floor.
// Members of the same group therefore never produce identical paths.
//
// Edges with an endpoint missing from pos are excluded from the output, and
// self-loops route as a small loop beside the node. Output order follows
// input edge order.
func Route(g flow.Graph, pos map[string]flow.Point, classes map[string]EdgeClass, cfg Config) []flow.EdgeRoute {
	cfg = cfg.WithDefaults()
	routes := make([]flow.EdgeRoute, 0, len(g.Edges))

	for _, e := range g.Edges {
		src, ok := pos[e.Source]
		if !ok {
			continue
		}
		dst, ok := pos[e.Target]
		if !ok {
			continue
		}

		cls := classes[e.ID]
		route := flow.EdgeRoute{
			EdgeID:     e.ID,
			Backward:   cls.Backward,
			GroupIndex: cls.GroupIndex,
			GroupSize:  cls.GroupSize,
		}

		switch {
		case e.IsSelfLoop():
			route.Points = selfLoopPath(src, cls, cfg)
		case cls.Backward:
			route.Points = backwardPath(src, dst, cls, cfg)
		default:
			route.Points = forwardPath(src, dst, cls, cfg)
		}

		routes = append(routes, route)
	}

	return routes
}

// offsetUnit returns the lateral spacing unit for a parallel group. The unit
// shrinks as the group grows so large fan-outs stay inside the canvas, but
// is bounded below so neighbors remain distinguishable.
func offsetUnit(size int) float64 {
	if size < 1 {
		size = 1
	}
	unit := 100.0 / float64(size)
	if unit < 12 {
		unit = 12
	}
	if unit > 25 {
		unit = 25
	}
	return unit
}

// groupOffset returns the signed lateral displacement for one group member,
// centered so the group straddles the direct line.
func groupOffset(cls EdgeClass) float64 {
	if cls.GroupSize <= 1 {
		return 0
	}
	return (float64(cls.GroupIndex) - float64(cls.GroupSize-1)/2) * offsetUnit(cls.GroupSize)
}

// laneShift returns the non-negative lane displacement for backward-edge and
// self-loop group members. Unlike groupOffset it only grows outward, so no
// member's detour lane cuts back into the node boxes.
func laneShift(cls EdgeClass) float64 {
	return float64(cls.GroupIndex) * offsetUnit(cls.GroupSize)
}

func forwardPath(src, dst flow.Point, cls EdgeClass, cfg Config) []flow.Point {
	var start, end flow.Point
	if cfg.Orientation == Vertical {
		start = flow.Point{X: src.X, Y: src.Y + cfg.NodeHeight/2}
		end = flow.Point{X: dst.X, Y: dst.Y - cfg.NodeHeight/2}
	} else {
		start = flow.Point{X: src.X + cfg.NodeWidth/2, Y: src.Y}
		end = flow.Point{X: dst.X - cfg.NodeWidth/2, Y: dst.Y}
	}

	offset := groupOffset(cls)

	if cfg.Routing == RoutingOrthogonal {
		return orthogonalPath(start, end, offset, cfg.Orientation)
	}

	if offset == 0 {
		return []flow.Point{start, end}
	}
	// Displaced midpoint: renderers treat three points as a smooth curve
	// rather than a kinked polyline.
	return []flow.Point{start, displacedMidpoint(start, end, offset), end}
}

// orthogonalPath routes axis-aligned segments. The middle segment is shifted
// by the group offset, which keeps parallel orthogonal edges apart even when
// their anchors coincide on the secondary axis.
func orthogonalPath(start, end flow.Point, offset float64, o Orientation) []flow.Point {
	if o == Vertical {
		midY := (start.Y+end.Y)/2 + offset
		return []flow.Point{
			start,
			{X: start.X, Y: midY},
			{X: end.X, Y: midY},
			end,
		}
	}
	midX := (start.X+end.X)/2 + offset
	return []flow.Point{
		start,
		{X: midX, Y: start.Y},
		{X: midX, Y: end.Y},
		end,
	}
}

// displacedMidpoint returns the midpoint of start→end pushed perpendicular
// to the direction vector by offset. Coincident anchors displace straight
// down so the path is still non-degenerate.
func displacedMidpoint(start, end flow.Point, offset float64) flow.Point {
	dx, dy := end.X-start.X, end.Y-start.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return flow.Point{X: start.X, Y: start.Y + offset}
	}
	return flow.Point{
		X: (start.X+end.X)/2 - dy/length*offset,
		Y: (start.Y+end.Y)/2 + dx/length*offset,
	}
}

// backwardPath detours through a lane beyond the deepest node box on the
// side facing away from the main flow: below the nodes under horizontal
// orientation, right of them under vertical.
func backwardPath(src, dst flow.Point, cls EdgeClass, cfg Config) []flow.Point {
	shift := laneShift(cls)

	if cfg.Orientation == Vertical {
		wall := math.Max(src.X, dst.X) + cfg.NodeWidth/2 + cfg.BackEdgeGap + shift
		return []flow.Point{
			{X: src.X + cfg.NodeWidth/2, Y: src.Y},
			{X: wall, Y: src.Y},
			{X: wall, Y: dst.Y},
			{X: dst.X + cfg.NodeWidth/2, Y: dst.Y},
		}
	}

	lane := math.Max(src.Y, dst.Y) + cfg.NodeHeight/2 + cfg.BackEdgeGap + shift
	return []flow.Point{
		{X: src.X, Y: src.Y + cfg.NodeHeight/2},
		{X: src.X, Y: lane},
		{X: dst.X, Y: lane},
		{X: dst.X, Y: dst.Y + cfg.NodeHeight/2},
	}
}

// selfLoopPath routes a loop out of the node's trailing side and back in
// through the bottom. Group members extend further out so stacked self-loops
// stay distinct.
func selfLoopPath(p flow.Point, cls EdgeClass, cfg Config) []flow.Point {
	ext := cfg.BackEdgeGap + laneShift(cls)
	right := p.X + cfg.NodeWidth/2
	bottom := p.Y + cfg.NodeHeight/2
	return []flow.Point{
		{X: right, Y: p.Y},
		{X: right + ext, Y: p.Y},
		{X: right + ext, Y: bottom + ext},
		{X: p.X, Y: bottom + ext},
		{X: p.X, Y: bottom},
	}
}
