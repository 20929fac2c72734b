// Package adapt translates legacy workflow documents into the canonical
// flow.Graph shape.
//
// Backend exports and older frontend payloads disagree on field names
// (node IDs arrive as id, nodeId, or node_id; edge endpoints as source/from
// or target/to) and on kind vocabulary (status vs state). This package owns
// that normalization with a fixed priority list of known legacy names, so the
// layout engine only ever sees the canonical shape. It is validated and
// tested independently of layout.
package adapt

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/flowgrid/flowgrid/pkg/flow"
)

// Field-name priority lists. First match wins; names further down the list
// only apply when every earlier name is absent.
var (
	nodeIDFields   = []string{"id", "nodeId", "node_id", "key"}
	nodeKindFields = []string{"kind", "type", "nodeType", "node_type", "category"}
	labelFields    = []string{"label", "name", "title", "text"}
	edgeIDFields   = []string{"id", "edgeId", "edge_id", "key"}
	sourceFields   = []string{"source", "from", "sourceId", "source_id", "src"}
	targetFields   = []string{"target", "to", "targetId", "target_id", "dst"}
)

// legacyKinds maps legacy kind vocabulary to canonical tags. Unknown kinds
// pass through unchanged: the tag set is extensible and the engine only uses
// kind for box-size lookup.
var legacyKinds = map[string]flow.Kind{
	"status": flow.KindState,
	"state":  flow.KindState,
	"event":  flow.KindEvent,
}

// Document is a legacy workflow export: arbitrary node and edge objects.
type Document struct {
	Nodes []map[string]json.RawMessage `json:"nodes"`
	Edges []map[string]json.RawMessage `json:"edges"`
}

// Report describes what the adapter had to repair.
type Report struct {
	// DroppedEdges counts edges removed because an endpoint was missing
	// from the node set after translation.
	DroppedEdges int

	// GeneratedEdgeIDs counts edges that arrived without an ID and were
	// assigned a generated one.
	GeneratedEdgeIDs int

	// UnknownKinds lists kind tags that had no legacy mapping and were
	// passed through as-is.
	UnknownKinds []string
}

// Graph translates a legacy document into a canonical, validated Graph.
//
// Nodes without any recognizable ID field are an error: identity cannot be
// invented. Edges without an ID get a generated UUID. Edges referencing
// unknown node IDs are dropped and counted in the report, matching the
// engine's contract that dangling edges are filtered before layout.
func Graph(doc Document) (flow.Graph, Report, error) {
	var g flow.Graph
	var rep Report

	seenKinds := make(map[string]bool)
	for i, raw := range doc.Nodes {
		id := firstString(raw, nodeIDFields)
		if id == "" {
			return flow.Graph{}, Report{}, fmt.Errorf("node %d: no recognizable ID field", i)
		}

		kindTag := firstString(raw, nodeKindFields)
		kind, known := legacyKinds[kindTag]
		if !known {
			kind = flow.Kind(kindTag)
			if kindTag != "" && !seenKinds[kindTag] {
				seenKinds[kindTag] = true
				rep.UnknownKinds = append(rep.UnknownKinds, kindTag)
			}
		}

		g.Nodes = append(g.Nodes, flow.Node{
			ID:    id,
			Kind:  kind,
			Label: firstString(raw, labelFields),
		})
	}

	nodeSet := g.NodeSet()
	for _, raw := range doc.Edges {
		source := firstString(raw, sourceFields)
		target := firstString(raw, targetFields)
		if _, ok := nodeSet[source]; !ok {
			rep.DroppedEdges++
			continue
		}
		if _, ok := nodeSet[target]; !ok {
			rep.DroppedEdges++
			continue
		}

		id := firstString(raw, edgeIDFields)
		if id == "" {
			id = uuid.NewString()
			rep.GeneratedEdgeIDs++
		}

		g.Edges = append(g.Edges, flow.Edge{
			ID:     id,
			Source: source,
			Target: target,
			Label:  firstString(raw, labelFields),
		})
	}

	if err := g.Validate(); err != nil {
		return flow.Graph{}, Report{}, fmt.Errorf("adapted graph invalid: %w", err)
	}

	return g, rep, nil
}

// Parse decodes a legacy JSON document and translates it in one step.
func Parse(data []byte) (flow.Graph, Report, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return flow.Graph{}, Report{}, fmt.Errorf("decode legacy document: %w", err)
	}
	return Graph(doc)
}

// firstString returns the value of the first field in the priority list that
// holds a non-empty JSON string.
func firstString(raw map[string]json.RawMessage, fields []string) string {
	for _, f := range fields {
		v, ok := raw[f]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			continue
		}
		if s != "" {
			return s
		}
	}
	return ""
}
