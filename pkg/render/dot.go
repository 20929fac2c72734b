package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/flowgrid/flowgrid/pkg/flow"
)

// DOTOptions configures DOT export.
type DOTOptions struct {
	// Detailed includes computed levels in node labels.
	Detailed bool
}

// ToDOT converts a laid-out workflow to Graphviz DOT format. The rank
// direction follows the layout orientation so Graphviz's own placement
// reads the same way as the native renderer. Event nodes are drawn as
// ovals, states as rounded boxes; backward edges are dashed.
func ToDOT(l flow.Layout, opts DOTOptions) string {
	rankdir := "LR"
	if l.Orientation == "vertical" {
		rankdir = "TB"
	}

	levels := make(map[string]int, len(l.Placed))
	for _, p := range l.Placed {
		levels[p.ID] = p.Level
	}
	backward := make(map[string]bool, len(l.Routes))
	for _, r := range l.Routes {
		if r.Backward {
			backward[r.EdgeID] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range l.Nodes {
		label := n.DisplayLabel()
		if opts.Detailed {
			label = fmt.Sprintf("%s\nlevel: %d", label, levels[n.ID])
		}
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if n.Kind == flow.KindEvent {
			attrs = append(attrs, "shape=oval", "fillcolor=lightyellow")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		var attrs []string
		if e.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
		}
		if backward[e.ID] {
			attrs = append(attrs, "style=dashed", "constraint=false")
		}
		if len(attrs) > 0 {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderGraphvizSVG renders a DOT graph to SVG using Graphviz.
func RenderGraphvizSVG(ctx context.Context, dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderGraphviz(ctx, dot, graphviz.SVG, &buf); err != nil {
		return nil, err
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// RenderGraphvizPNG renders a DOT graph to PNG using Graphviz.
func RenderGraphvizPNG(ctx context.Context, dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderGraphviz(ctx, dot, graphviz.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderGraphviz(ctx context.Context, dot string, format graphviz.Format, buf *bytes.Buffer) error {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	if err := gv.Render(ctx, g, format, buf); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
