package flow

import "errors"

var (
	// ErrInvalidNodeID is returned by [Graph.Validate] when a node has an
	// empty ID. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.Validate] when two nodes share
	// an ID. Node identity is the ID, so IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrInvalidEdgeID is returned by [Graph.Validate] when an edge has an
	// empty ID.
	ErrInvalidEdgeID = errors.New("edge ID must not be empty")

	// ErrDuplicateEdgeID is returned by [Graph.Validate] when two edges share
	// an ID.
	ErrDuplicateEdgeID = errors.New("duplicate edge ID")
)

// Kind classifies a workflow node. The set is extensible: renderers map
// unknown kinds to a default visual treatment, and the layout engine is
// agnostic to kind beyond box-size lookup.
type Kind string

// Known node kinds.
const (
	KindState Kind = "state"
	KindEvent Kind = "event"
)

// Node is a vertex in the workflow graph. Identity is the ID; no two nodes
// may share one. Nodes are plain values - the engine never mutates them.
type Node struct {
	ID    string `json:"id" bson:"id"`
	Kind  Kind   `json:"kind,omitempty" bson:"kind,omitempty"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a directed transition between two nodes. Self-loops
// (Source == Target) are permitted. An edge whose endpoints are missing from
// the node set is tolerated everywhere and silently ignored by the engine.
type Edge struct {
	ID     string `json:"id" bson:"id"`
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
}

// IsSelfLoop reports whether the edge starts and ends on the same node.
func (e Edge) IsSelfLoop() bool { return e.Source == e.Target }

// Graph is the engine input: a node list and an edge list.
// The zero value is a valid empty graph.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// NodeSet returns the set of node IDs present in the graph.
func (g Graph) NodeSet() map[string]struct{} {
	set := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		set[n.ID] = struct{}{}
	}
	return set
}

// Node returns the node with the given ID and true, or a zero Node and false.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// DanglingEdges returns the edges referencing a node ID absent from Nodes.
// These edges are excluded from layout but their presence is not an error.
func (g Graph) DanglingEdges() []Edge {
	set := g.NodeSet()
	var dangling []Edge
	for _, e := range g.Edges {
		if _, ok := set[e.Source]; !ok {
			dangling = append(dangling, e)
			continue
		}
		if _, ok := set[e.Target]; !ok {
			dangling = append(dangling, e)
		}
	}
	return dangling
}

// Validate checks the identity invariants: non-empty, unique node IDs and
// non-empty, unique edge IDs. Dangling edges are not a validation failure -
// they are reported by [Graph.DanglingEdges] and skipped during layout.
func (g Graph) Validate() error {
	nodeIDs := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return ErrInvalidNodeID
		}
		if _, exists := nodeIDs[n.ID]; exists {
			return ErrDuplicateNodeID
		}
		nodeIDs[n.ID] = struct{}{}
	}

	edgeIDs := make(map[string]struct{}, len(g.Edges))
	for _, e := range g.Edges {
		if e.ID == "" {
			return ErrInvalidEdgeID
		}
		if _, exists := edgeIDs[e.ID]; exists {
			return ErrDuplicateEdgeID
		}
		edgeIDs[e.ID] = struct{}{}
	}

	return nil
}
