// Package render turns computed layouts into visual outputs.
//
// # Overview
//
// This package consumes the serialized layout shape ([flow.Layout]) produced
// by the layout engine and never recomputes geometry: positions and routes
// are taken as-is, so the same layout renders identically everywhere.
//
// Two rendering paths are provided:
//
//   - Native SVG ([RenderSVG]): draws nodes and routed edges exactly where
//     the engine placed them. This is the primary output format.
//   - Graphviz ([ToDOT], [RenderGraphvizSVG], [RenderGraphvizPNG]): exports
//     the graph structure to DOT and lets Graphviz lay it out, for users who
//     want a second opinion on the topology or a quick PNG.
//
// # Styles
//
// Styles are named color palettes ([StyleByName]). They change fills and
// strokes only, never geometry, so switching styles is cache-friendly: the
// layout cache entry stays valid.
package render
