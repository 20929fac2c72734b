// Package pipeline provides the core layout pipeline for Flowgrid.
//
// This package implements the complete adapt → layout → render pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Adapt: Translate a legacy workflow document into the canonical graph
//  2. Layout: Compute node positions and edge routes for the graph
//  3. Render: Generate output in various formats (SVG, PNG, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
// The layout engine itself is pure; memoization lives here, keyed on content
// hashes of the canonical graph and the geometry options.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Graph:   &g,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout with existing graph
//	l, err := runner.ComputeLayout(ctx, g, opts)
//
//	// Render with existing layout
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flowgrid/flowgrid/pkg/cache"
	"github.com/flowgrid/flowgrid/pkg/flow"
	"github.com/flowgrid/flowgrid/pkg/flow/adapt"
	"github.com/flowgrid/flowgrid/pkg/flow/layout"
	"github.com/flowgrid/flowgrid/pkg/render"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input: exactly one of Graph or Source must be set. Source is a legacy
	// workflow document that goes through the adapt stage first.
	Graph  *flow.Graph `json:"graph,omitempty"`
	Source []byte      `json:"source,omitempty"`

	// Layout options
	Orientation     string  `json:"orientation,omitempty"`
	Routing         string  `json:"routing,omitempty"`
	Width           float64 `json:"width,omitempty"`
	Height          float64 `json:"height,omitempty"`
	NodeWidth       float64 `json:"node_width,omitempty"`
	NodeHeight      float64 `json:"node_height,omitempty"`
	Padding         float64 `json:"padding,omitempty"`
	MinSpacing      float64 `json:"min_spacing,omitempty"`
	MaxLevelSpacing float64 `json:"max_level_spacing,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Style      string   `json:"style,omitempty"`
	HideLabels bool     `json:"hide_labels,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"`

	// Refresh bypasses cache reads (results are still written back).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the canonical workflow graph that was laid out.
	Graph flow.Graph

	// GraphHash is the content hash of the canonical graph.
	GraphHash string

	// Report describes repairs made by the adapt stage (zero value when the
	// input was already canonical).
	Report adapt.Report

	// Layout is the computed layout.
	Layout flow.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	AdaptTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateInput(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateInput checks that the pipeline has exactly one input.
func (o *Options) ValidateInput() error {
	if o.Graph == nil && len(o.Source) == 0 {
		return fmt.Errorf("graph or source is required")
	}
	if o.Graph != nil && len(o.Source) > 0 {
		return fmt.Errorf("graph and source are mutually exclusive")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
// Geometry defaults are owned by the engine config; only the logger is
// filled in here.
func (o *Options) SetLayoutDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{string(render.FormatSVG)}
	}
	for _, f := range o.Formats {
		if _, err := render.ParseFormat(f); err != nil {
			return err
		}
	}
	if _, err := render.StyleByName(o.Style); err != nil {
		return err
	}
	return nil
}

// LayoutConfig converts the options into an engine config. Zero fields stay
// zero; the engine applies its own defaults.
func (o *Options) LayoutConfig() layout.Config {
	return layout.Config{
		CanvasWidth:     o.Width,
		CanvasHeight:    o.Height,
		NodeWidth:       o.NodeWidth,
		NodeHeight:      o.NodeHeight,
		Padding:         o.Padding,
		MinSpacing:      o.MinSpacing,
		MaxLevelSpacing: o.MaxLevelSpacing,
		Orientation:     layout.Orientation(o.Orientation),
		Routing:         layout.Routing(o.Routing),
	}
}

// LayoutKeyOpts returns cache key options for layout computation. The key is
// built from the defaulted config so that explicit defaults and absent fields
// share one cache entry.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	cfg := o.LayoutConfig().WithDefaults()
	return cache.LayoutKeyOpts{
		CanvasWidth:     cfg.CanvasWidth,
		CanvasHeight:    cfg.CanvasHeight,
		NodeWidth:       cfg.NodeWidth,
		NodeHeight:      cfg.NodeHeight,
		Padding:         cfg.Padding,
		MinSpacing:      cfg.MinSpacing,
		MaxLevelSpacing: cfg.MaxLevelSpacing,
		Orientation:     string(cfg.Orientation),
		Routing:         string(cfg.Routing),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Style:      o.Style,
		ShowLabels: !o.HideLabels,
	}
}
