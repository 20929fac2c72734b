package layout

// Orientation selects the primary axis of the hierarchy: horizontal lays
// levels out left-to-right, vertical top-to-bottom.
type Orientation string

// Supported orientations.
const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// Routing selects the shape of routed edge paths.
type Routing string

// Supported routing styles.
const (
	// RoutingStraight connects anchors directly, inserting a single displaced
	// midpoint when a parallel-group offset applies.
	RoutingStraight Routing = "straight"
	// RoutingOrthogonal routes edges as axis-aligned segments.
	RoutingOrthogonal Routing = "orthogonal"
	// RoutingCurved emits control points intended for smooth curve rendering.
	RoutingCurved Routing = "curved"
)

// Default configuration values, applied by [Config.WithDefaults].
const (
	DefaultCanvasWidth     = 1000.0
	DefaultCanvasHeight    = 600.0
	DefaultNodeWidth       = 120.0
	DefaultNodeHeight      = 48.0
	DefaultPadding         = 40.0
	DefaultMinSpacing      = 60.0
	DefaultMaxLevelSpacing = 220.0
	DefaultBackEdgeGap     = 30.0
)

// Config holds the layout policy: canvas extents, node box size, padding,
// spacing bounds, orientation, and routing style. The zero value is usable -
// every field has a sane default and absent fields never crash the engine.
type Config struct {
	CanvasWidth  float64 `json:"canvas_width,omitempty"`
	CanvasHeight float64 `json:"canvas_height,omitempty"`

	NodeWidth  float64 `json:"node_width,omitempty"`
	NodeHeight float64 `json:"node_height,omitempty"`

	// Padding is the margin between the canvas border and the outermost
	// node centers, on both axes.
	Padding float64 `json:"padding,omitempty"`

	// MinSpacing is the minimum center-to-center distance between nodes
	// within one level bucket.
	MinSpacing float64 `json:"min_spacing,omitempty"`

	// MaxLevelSpacing caps the distance between consecutive levels so that
	// shallow graphs do not spread across the whole canvas.
	MaxLevelSpacing float64 `json:"max_level_spacing,omitempty"`

	// BackEdgeGap is the clearance between node boxes and the detour lane
	// used by backward edges.
	BackEdgeGap float64 `json:"back_edge_gap,omitempty"`

	Orientation Orientation `json:"orientation,omitempty"`
	Routing     Routing     `json:"routing,omitempty"`
}

// WithDefaults returns a copy of the config with every zero or invalid field
// replaced by its default. The engine calls this on entry, so callers may
// pass a partially filled (or zero) Config.
func (c Config) WithDefaults() Config {
	if c.CanvasWidth <= 0 {
		c.CanvasWidth = DefaultCanvasWidth
	}
	if c.CanvasHeight <= 0 {
		c.CanvasHeight = DefaultCanvasHeight
	}
	if c.NodeWidth <= 0 {
		c.NodeWidth = DefaultNodeWidth
	}
	if c.NodeHeight <= 0 {
		c.NodeHeight = DefaultNodeHeight
	}
	if c.Padding < 0 {
		c.Padding = 0
	}
	if c.Padding == 0 {
		c.Padding = DefaultPadding
	}
	if c.MinSpacing <= 0 {
		c.MinSpacing = DefaultMinSpacing
	}
	if c.MaxLevelSpacing <= 0 {
		c.MaxLevelSpacing = DefaultMaxLevelSpacing
	}
	if c.BackEdgeGap <= 0 {
		c.BackEdgeGap = DefaultBackEdgeGap
	}
	switch c.Orientation {
	case Horizontal, Vertical:
	default:
		c.Orientation = Horizontal
	}
	switch c.Routing {
	case RoutingStraight, RoutingOrthogonal, RoutingCurved:
	default:
		c.Routing = RoutingCurved
	}
	return c
}
