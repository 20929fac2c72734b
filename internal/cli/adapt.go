package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowgrid/flowgrid/pkg/flow"
	"github.com/flowgrid/flowgrid/pkg/flow/adapt"
)

// adaptCommand creates the adapt command for translating legacy workflow
// documents into the canonical graph format.
func (c *CLI) adaptCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "adapt [workflow.json]",
		Short: "Translate a legacy workflow document into a canonical graph",
		Long: `Translate a legacy workflow document into a canonical graph.

The adapt command reads a workflow document using any of the known legacy
field spellings (nodeId/node_id, from/source, type/kind, ...), repairs what
it can, and writes a canonical graph.json. Edges referencing unknown nodes
are dropped and reported; edges without IDs get generated ones.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAdapt(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.graph.json)")

	return cmd
}

func (c *CLI) runAdapt(input, output string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	prog := newProgress(c.Logger)
	g, report, err := adapt.Parse(data)
	if err != nil {
		return fmt.Errorf("adapt %s: %w", input, err)
	}
	prog.done(fmt.Sprintf("Adapted %d nodes, %d edges", len(g.Nodes), len(g.Edges)))

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".graph.json"
	}

	if err := flow.WriteGraphFile(g, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Graph adapted")
	printFile(outputPath)
	if report.DroppedEdges > 0 {
		printWarning("Dropped %d edges referencing unknown nodes", report.DroppedEdges)
	}
	if report.GeneratedEdgeIDs > 0 {
		printDetail("Generated %d edge IDs", report.GeneratedEdgeIDs)
	}
	printStats(len(g.Nodes), len(g.Edges), false)
	printNewline()
	printNextStep("Layout", appName+" layout "+outputPath)

	return nil
}
