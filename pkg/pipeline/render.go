package pipeline

import (
	"context"
	"time"

	"github.com/flowgrid/flowgrid/pkg/flow"
	"github.com/flowgrid/flowgrid/pkg/observability"
	"github.com/flowgrid/flowgrid/pkg/render"
)

// renderArtifacts renders the layout into every requested format.
//
// SVG and JSON come straight from the layout geometry. DOT and PNG go
// through Graphviz: DOT is the export itself, PNG is Graphviz's rasterized
// rendering of it.
func renderArtifacts(ctx context.Context, l flow.Layout, opts Options) (map[string][]byte, error) {
	style, err := render.StyleByName(opts.Style)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		observability.Pipeline().OnRenderStart(ctx, format)
		start := time.Now()

		data, err := renderOne(ctx, l, format, style, opts)
		observability.Pipeline().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderOne(ctx context.Context, l flow.Layout, format string, style render.Style, opts Options) ([]byte, error) {
	switch render.Format(format) {
	case render.FormatSVG:
		return renderNativeSVG(l, style, opts), nil

	case render.FormatJSON:
		return flow.MarshalLayout(l)

	case render.FormatDOT:
		return []byte(render.ToDOT(l, render.DOTOptions{Detailed: opts.Detailed})), nil

	case render.FormatPNG:
		dot := render.ToDOT(l, render.DOTOptions{Detailed: opts.Detailed})
		return render.RenderGraphvizPNG(ctx, dot)

	default:
		// ValidateForRender rejects unknown formats before we get here.
		_, err := render.ParseFormat(format)
		return nil, err
	}
}

func renderNativeSVG(l flow.Layout, style render.Style, opts Options) []byte {
	svgOpts := []render.SVGOption{render.WithSVGStyle(style)}
	if opts.HideLabels {
		svgOpts = append(svgOpts, render.WithoutSVGLabels())
	}
	return render.RenderSVG(l, svgOpts...)
}
