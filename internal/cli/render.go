package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowgrid/flowgrid/pkg/flow"
	"github.com/flowgrid/flowgrid/pkg/pipeline"
)

// renderCommand creates the render command, the end-to-end shortcut from a
// graph (or legacy workflow document) to rendered artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		legacy     bool
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a workflow graph to SVG, PNG, DOT, or JSON",
		Long: `Render a workflow graph to SVG, PNG, DOT, or JSON.

The render command runs the full pipeline: it loads the graph, computes the
layout, and writes one artifact per requested format. Pass --legacy when the
input is a raw workflow document that still needs adapting.

Both the layout and the rendered artifacts are cached locally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), args[0], opts, output, legacy, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "treat the input as a legacy workflow document")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached results exist")

	// Render flags
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: simple (default), dark")
	cmd.Flags().BoolVar(&opts.HideLabels, "hide-labels", false, "omit node and edge labels")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include level annotations in DOT output")

	registerGeometryFlags(cmd, &opts)

	return cmd
}

// runRender executes the full pipeline and writes one file per artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, legacy, noCache bool) error {
	if legacy {
		source, err := os.ReadFile(input)
		if err != nil {
			return fmt.Errorf("read %s: %w", input, err)
		}
		opts.Source = source
	} else {
		g, err := flow.ReadGraphFile(input)
		if err != nil {
			return fmt.Errorf("load graph %s: %w", input, err)
		}
		opts.Graph = &g
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyCanvasConfig(cfg.Canvas, &opts)

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if res.Report.DroppedEdges > 0 {
		printWarning("Dropped %d edges referencing unknown nodes", res.Report.DroppedEdges)
	}

	if err := writeArtifacts(res.Artifacts, opts.Formats, input, output); err != nil {
		return err
	}

	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes each rendered artifact to disk. With a single format
// the output path is used as-is; with several, the format extension is
// appended to the base path.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	base := basePath(output, input)

	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}

		path := base + "." + format
		if output != "" && len(formats) == 1 {
			path = output
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printSuccess("Generated %s", format)
		printFile(path)
	}
	return nil
}

// knownExtensions is the set of format extensions stripped when deriving a
// base path from an explicit output path.
var knownExtensions = map[string]bool{"svg": true, "png": true, "dot": true, "json": true}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input. If output carries a
// format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if knownExtensions[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
