// Package pkg provides the core libraries for Flowgrid workflow layout.
//
// # Overview
//
// Flowgrid computes hierarchical layouts for workflow graphs - directed
// graphs of states and events - and routes their edges around the resulting
// grid. The pkg directory is organized into a few areas:
//
//  1. [flow] - Graph model, serialization types, and the layout engine
//  2. [pipeline] - Orchestration (adapt → layout → render) with caching
//  3. [render] - Output formats (SVG, PNG, DOT, JSON)
//  4. [cache], [store] - Infrastructure (content-hash cache, workflow store)
//
// # Architecture
//
// The typical data flow through Flowgrid:
//
//	Workflow document (legacy or canonical JSON)
//	         ↓
//	    [flow/adapt] package (repair and canonicalize)
//	         ↓
//	    [flow/layout] package (levels → positions → classify → route)
//	         ↓
//	    [render] package (SVG/PNG/DOT/JSON output)
//
// # Quick Start
//
// Compute a layout and render it:
//
//	import (
//	    "github.com/flowgrid/flowgrid/pkg/flow"
//	    "github.com/flowgrid/flowgrid/pkg/flow/layout"
//	    "github.com/flowgrid/flowgrid/pkg/render"
//	)
//
//	// 1. Build or load a graph
//	g := flow.Graph{
//	    Nodes: []flow.Node{{ID: "draft"}, {ID: "submit"}},
//	    Edges: []flow.Edge{{ID: "t1", Source: "draft", Target: "submit"}},
//	}
//
//	// 2. Compute the layout
//	res := layout.Compute(g, layout.Config{})
//	l := res.Export(g, layout.Config{})
//
//	// 3. Render to SVG
//	svg := render.RenderSVG(l)
//
// # Main Packages
//
// [flow] - The canonical graph model (nodes, edges, layouts) plus JSON
// serialization. [flow/adapt] repairs legacy workflow documents;
// [flow/layout] is the pure, deterministic layout engine.
//
// [pipeline] - Complete pipeline (adapt → layout → render) used by the CLI
// and the HTTP service. Memoizes layouts and artifacts on content hashes.
//
// [render] - Native SVG renderer plus Graphviz-based DOT/PNG output.
//
// [cache] - Content-addressed cache with file and Redis backends.
//
// [store] - Workflow persistence with MongoDB and in-memory backends.
//
// [config] - TOML configuration with defaults for every field.
//
// [errors] - Structured, code-bearing errors shared across entry points.
//
// [observability] - Hook registry for pipeline, cache, and store events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...        # All tests
//	go test ./pkg/flow/...   # Engine only
//	go test -run Example     # Examples only
//
// Mongo and Redis integration tests are gated behind environment variables
// (FLOWGRID_MONGO_URL, FLOWGRID_REDIS_URL) and skip otherwise.
//
// [flow]: https://pkg.go.dev/github.com/flowgrid/flowgrid/pkg/flow
// [flow/adapt]: https://pkg.go.dev/github.com/flowgrid/flowgrid/pkg/flow/adapt
// [flow/layout]: https://pkg.go.dev/github.com/flowgrid/flowgrid/pkg/flow/layout
// [pipeline]: https://pkg.go.dev/github.com/flowgrid/flowgrid/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/flowgrid/flowgrid/pkg/render
// [cache]: https://pkg.go.dev/github.com/flowgrid/flowgrid/pkg/cache
// [store]: https://pkg.go.dev/github.com/flowgrid/flowgrid/pkg/store
// [config]: https://pkg.go.dev/github.com/flowgrid/flowgrid/pkg/config
// [errors]: https://pkg.go.dev/github.com/flowgrid/flowgrid/pkg/errors
// [observability]: https://pkg.go.dev/github.com/flowgrid/flowgrid/pkg/observability
package pkg
