package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/flowgrid/flowgrid/pkg/flow"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style      Style
	showLabels bool
}

// WithSVGStyle selects the color palette.
func WithSVGStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithoutSVGLabels suppresses node and edge labels (drawn by default).
func WithoutSVGLabels() SVGOption { return func(r *svgRenderer) { r.showLabels = false } }

// RenderSVG draws a computed layout as a standalone SVG document.
//
// Geometry comes entirely from the layout: node centers from Placed, edge
// paths from Routes. Nodes and routes are emitted in layout order, so the
// output bytes are deterministic for a given layout.
//
// Backward edges are drawn dashed to make feedback transitions visually
// distinct from the main flow direction.
func RenderSVG(l flow.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{style: Simple, showLabels: true}
	for _, opt := range opts {
		opt(&r)
	}

	nodes := make(map[string]flow.Node, len(l.Nodes))
	for _, n := range l.Nodes {
		nodes[n.ID] = n
	}
	labels := edgeLabels(l)

	w, h := l.Width, l.Height
	nw, nh := nodeBox(l)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	renderDefs(&buf, r.style)
	fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="%s"/>`+"\n", w, h, r.style.Background)

	// Edges first so node boxes cover the route endpoints.
	for _, route := range l.Routes {
		renderRoute(&buf, route, l.Routing, r.style)
		if r.showLabels {
			renderEdgeLabel(&buf, route, labels[route.EdgeID], r.style)
		}
	}

	for _, p := range l.Placed {
		n := nodes[p.ID]
		if n.ID == "" {
			n = flow.Node{ID: p.ID}
		}
		renderNode(&buf, p, n, nw, nh, r.style, r.showLabels)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func nodeBox(l flow.Layout) (w, h float64) {
	w, h = l.NodeSizes.Width, l.NodeSizes.Height
	if w <= 0 {
		w = 120
	}
	if h <= 0 {
		h = 48
	}
	return w, h
}

func edgeLabels(l flow.Layout) map[string]string {
	m := make(map[string]string, len(l.Edges))
	for _, e := range l.Edges {
		if e.Label != "" {
			m[e.ID] = e.Label
		}
	}
	return m
}

func renderDefs(buf *bytes.Buffer, s Style) {
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, `    <marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z" fill="%s"/></marker>`+"\n", s.EdgeStroke)
	fmt.Fprintf(buf, `    <marker id="arrow-back" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z" fill="%s"/></marker>`+"\n", s.BackStroke)
	buf.WriteString("  </defs>\n")
}

func renderNode(buf *bytes.Buffer, p flow.PlacedNode, n flow.Node, w, h float64, s Style, label bool) {
	fill := s.StateFill
	rx := 6.0
	if n.Kind == flow.KindEvent {
		fill = s.EventFill
		rx = h / 2 // pill shape for events
	}

	fmt.Fprintf(buf, `  <rect id="node-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		xmlEscape(p.ID), p.X-w/2, p.Y-h/2, w, h, rx, fill, s.NodeStroke)

	if label {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-family="sans-serif" font-size="13" fill="%s">%s</text>`+"\n",
			p.X, p.Y, s.Text, xmlEscape(n.DisplayLabel()))
	}
}

func renderRoute(buf *bytes.Buffer, r flow.EdgeRoute, routing string, s Style) {
	if len(r.Points) < 2 {
		return
	}

	stroke := s.EdgeStroke
	marker := "arrow"
	dash := ""
	if r.Backward {
		stroke = s.BackStroke
		marker = "arrow-back"
		dash = ` stroke-dasharray="6 4"`
	}

	if routing == "curved" {
		fmt.Fprintf(buf, `  <path id="edge-%s" d="%s" fill="none" stroke="%s" stroke-width="1.5"%s marker-end="url(#%s)"/>`+"\n",
			xmlEscape(r.EdgeID), curvedPath(r.Points), stroke, dash, marker)
		return
	}

	fmt.Fprintf(buf, `  <polyline id="edge-%s" points="%s" fill="none" stroke="%s" stroke-width="1.5"%s marker-end="url(#%s)"/>`+"\n",
		xmlEscape(r.EdgeID), polylinePoints(r.Points), stroke, dash, marker)
}

func renderEdgeLabel(buf *bytes.Buffer, r flow.EdgeRoute, label string, s Style) {
	if label == "" || len(r.Points) < 2 {
		return
	}
	mid := r.Points[len(r.Points)/2]
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="11" fill="%s">%s</text>`+"\n",
		mid.X, mid.Y-5, s.Text, xmlEscape(label))
}

func polylinePoints(pts []flow.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%.1f,%.1f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

// curvedPath builds a smooth path through the control points: quadratic
// segments aimed at successive midpoints, so the curve passes near every
// control point without overshooting.
func curvedPath(pts []flow.Point) string {
	var b strings.Builder
	fmt.Fprintf(&b, "M %.1f %.1f", pts[0].X, pts[0].Y)
	if len(pts) == 2 {
		fmt.Fprintf(&b, " L %.1f %.1f", pts[1].X, pts[1].Y)
		return b.String()
	}
	for i := 1; i < len(pts)-1; i++ {
		mx := (pts[i].X + pts[i+1].X) / 2
		my := (pts[i].Y + pts[i+1].Y) / 2
		fmt.Fprintf(&b, " Q %.1f %.1f %.1f %.1f", pts[i].X, pts[i].Y, mx, my)
	}
	last := pts[len(pts)-1]
	fmt.Fprintf(&b, " L %.1f %.1f", last.X, last.Y)
	return b.String()
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func xmlEscape(s string) string { return xmlReplacer.Replace(s) }
