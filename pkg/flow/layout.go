package flow

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// Layout - Serialized Layout Format
// =============================================================================

// Layout is the serialization format for a computed layout. It is the wire
// shape shared by file output, API responses, and the layout cache.
//
// Positions and routes are pure geometry: the rendering side consumes them
// read-only and never feeds coordinates back into the engine.
type Layout struct {
	Width       float64 `json:"width" bson:"width"`
	Height      float64 `json:"height" bson:"height"`
	Orientation string  `json:"orientation,omitempty" bson:"orientation,omitempty"`
	Routing     string  `json:"routing,omitempty" bson:"routing,omitempty"`

	Nodes     []Node       `json:"nodes,omitempty" bson:"nodes,omitempty"`
	Edges     []Edge       `json:"edges,omitempty" bson:"edges,omitempty"`
	Placed    []PlacedNode `json:"placed" bson:"placed"`
	Routes    []EdgeRoute  `json:"routes,omitempty" bson:"routes,omitempty"`
	NodeSizes BoxSize      `json:"node_sizes,omitempty" bson:"node_sizes,omitempty"`
}

// BoxSize is the node bounding-box size used during layout.
type BoxSize struct {
	Width  float64 `json:"width,omitempty" bson:"width,omitempty"`
	Height float64 `json:"height,omitempty" bson:"height,omitempty"`
}

// PlacedNode is a node with its computed hierarchy level and 2-D position.
// X and Y address the node's center in canvas coordinates.
type PlacedNode struct {
	ID    string  `json:"id" bson:"id"`
	Level int     `json:"level" bson:"level"`
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
}

// Point is a 2-D coordinate in canvas space.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// EdgeRoute is the routed path for one edge: an ordered control-point
// sequence (at least two points), the forward/backward classification, and
// the edge's position within its parallel group.
type EdgeRoute struct {
	EdgeID     string  `json:"edge_id" bson:"edge_id"`
	Points     []Point `json:"points" bson:"points"`
	Backward   bool    `json:"backward,omitempty" bson:"backward,omitempty"`
	GroupIndex int     `json:"group_index,omitempty" bson:"group_index,omitempty"`
	GroupSize  int     `json:"group_size,omitempty" bson:"group_size,omitempty"`
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// A layout without placed nodes is rejected unless it also has no routes,
// since routes cannot exist without positioned endpoints.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if len(l.Placed) == 0 && len(l.Routes) > 0 {
		return Layout{}, fmt.Errorf("layout has routes but no placed nodes")
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
