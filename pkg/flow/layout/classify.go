package layout

import "github.com/flowgrid/flowgrid/pkg/flow"

// GroupKey identifies a parallel-edge group: the ordered (source, target)
// pair. Duplicate edges between the same pair belong to one group and are
// laid out with lateral separation so each stays individually visible.
type GroupKey struct {
	Source string
	Target string
}

// EdgeClass is the per-edge annotation produced by [Classify]: the
// forward/backward flag and the edge's slot within its parallel group.
type EdgeClass struct {
	// Backward marks edges flowing toward the same or a shallower level.
	// An edge leaving a level-0 node is always forward: there is no "up"
	// to flow against at the root.
	Backward bool

	GroupKey   GroupKey
	GroupIndex int // 0-based slot, assigned by input order
	GroupSize  int // total edges sharing the group key
}

// Classify annotates every edge with its flow direction and parallel group.
// The result is keyed by edge ID; edge IDs are assumed unique (enforced by
// flow.Graph.Validate upstream).
//
// This is a pure annotation pass with no failure modes: edges with endpoints
// missing from the level map classify as forward and are excluded later by
// the router.
func Classify(edges []flow.Edge, levels map[string]int) map[string]EdgeClass {
	classes := make(map[string]EdgeClass, len(edges))
	sizes := make(map[GroupKey]int)

	for _, e := range edges {
		key := GroupKey{Source: e.Source, Target: e.Target}
		classes[e.ID] = EdgeClass{
			Backward:   levels[e.Target] <= levels[e.Source] && levels[e.Source] > 0,
			GroupKey:   key,
			GroupIndex: sizes[key],
		}
		sizes[key]++
	}

	for id, c := range classes {
		c.GroupSize = sizes[c.GroupKey]
		classes[id] = c
	}

	return classes
}
