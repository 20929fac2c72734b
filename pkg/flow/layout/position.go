package layout

import (
	"slices"

	"github.com/flowgrid/flowgrid/pkg/flow"
)

// Positions maps every node to a 2-D center position in canvas coordinates.
//
// Nodes are grouped into level buckets (bucket order = input order, for
// determinism). The primary axis (x when horizontal, y when vertical) places
// level L at padding + L*spacing, where spacing divides the available canvas
// extent across the levels and is capped at cfg.MaxLevelSpacing so shallow
// graphs stay compact. On the secondary axis each bucket is centered as a
// group around the canvas midline and spread by at least cfg.MinSpacing; a
// single-node bucket sits exactly on the midline.
//
// Every node in g.Nodes receives exactly one position. A node missing from
// the level map (which AssignLevels never produces) falls back to level 0
// rather than being dropped. Divisions are floored at 1, so degenerate
// configurations cannot yield NaN or infinite coordinates.
func Positions(g flow.Graph, levels map[string]int, cfg Config) map[string]flow.Point {
	cfg = cfg.WithDefaults()
	pos := make(map[string]flow.Point, len(g.Nodes))
	if len(g.Nodes) == 0 {
		return pos
	}

	// Bucket nodes by level, preserving input order within a bucket.
	buckets := make(map[int][]string)
	var levelIDs []int
	for _, n := range g.Nodes {
		lvl := levels[n.ID] // missing entries fall back to level 0
		if _, seen := buckets[lvl]; !seen {
			levelIDs = append(levelIDs, lvl)
		}
		buckets[lvl] = append(buckets[lvl], n.ID)
	}
	slices.Sort(levelIDs)

	primaryExtent, secondaryExtent := cfg.CanvasWidth, cfg.CanvasHeight
	if cfg.Orientation == Vertical {
		primaryExtent, secondaryExtent = cfg.CanvasHeight, cfg.CanvasWidth
	}

	levelSpacing := interLevelSpacing(primaryExtent, cfg.Padding, len(levelIDs), cfg.MaxLevelSpacing)
	midline := secondaryExtent / 2

	for rank, lvl := range levelIDs {
		primary := cfg.Padding + float64(rank)*levelSpacing

		ids := buckets[lvl]
		spread := bucketSpread(secondaryExtent, cfg.Padding, len(ids), cfg.MinSpacing)
		first := midline - float64(len(ids)-1)*spread/2

		for i, id := range ids {
			secondary := first + float64(i)*spread
			if cfg.Orientation == Vertical {
				pos[id] = flow.Point{X: secondary, Y: primary}
			} else {
				pos[id] = flow.Point{X: primary, Y: secondary}
			}
		}
	}

	return pos
}

// interLevelSpacing derives the primary-axis distance between consecutive
// levels. The divisor is floored at 1 so single-level graphs never divide
// by zero.
func interLevelSpacing(extent, padding float64, levelCount int, maxSpacing float64) float64 {
	gaps := levelCount - 1
	if gaps < 1 {
		gaps = 1
	}
	spacing := (extent - 2*padding) / float64(gaps)
	if spacing > maxSpacing {
		spacing = maxSpacing
	}
	if spacing < 0 {
		spacing = 0
	}
	return spacing
}

// bucketSpread derives the secondary-axis distance between neighbors within
// one level bucket, floored at minSpacing.
func bucketSpread(extent, padding float64, count int, minSpacing float64) float64 {
	gaps := count - 1
	if gaps < 1 {
		gaps = 1
	}
	spread := (extent - 2*padding) / float64(gaps)
	if spread < minSpacing {
		spread = minSpacing
	}
	return spread
}
