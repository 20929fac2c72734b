package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/flowgrid/flowgrid/pkg/flow"
	"github.com/flowgrid/flowgrid/pkg/flow/layout"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command, an interactive level inspector.
func (c *CLI) inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [graph.json]",
		Short: "Interactively inspect levels and positions of a graph",
		Long: `Interactively inspect levels and positions of a graph.

The inspect command loads a graph, computes its layout, and shows every node
with its assigned level and center position. Toggle the orientation with 'o'
and cycle the routing style with 'r'; the layout is recomputed on the fly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0])
		},
	}

	return cmd
}

func (c *CLI) runInspect(input string) error {
	g, err := flow.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	model := newInspectModel(g, layout.Config{
		CanvasWidth:  cfg.Canvas.Width,
		CanvasHeight: cfg.Canvas.Height,
		Orientation:  layout.Orientation(cfg.Canvas.Orientation),
		Routing:      layout.Routing(cfg.Canvas.Routing),
	})

	_, err = tea.NewProgram(model).Run()
	return err
}

// =============================================================================
// InspectModel - Interactive level inspector
// =============================================================================

// InspectModel is the bubbletea model for the level inspector.
type InspectModel struct {
	Graph  flow.Graph
	Config layout.Config
	Result layout.Result

	Cursor int
	Height int
	Offset int
}

// newInspectModel computes the initial layout and returns a ready model.
func newInspectModel(g flow.Graph, cfg layout.Config) InspectModel {
	cfg = cfg.WithDefaults()
	return InspectModel{
		Graph:  g,
		Config: cfg,
		Result: layout.Compute(g, cfg),
		Height: 15,
	}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Graph.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "o":
			m = m.toggleOrientation()
		case "r":
			m = m.cycleRouting()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m InspectModel) toggleOrientation() InspectModel {
	if m.Config.Orientation == layout.Horizontal {
		m.Config.Orientation = layout.Vertical
	} else {
		m.Config.Orientation = layout.Horizontal
	}
	m.Result = layout.Compute(m.Graph, m.Config)
	return m
}

func (m InspectModel) cycleRouting() InspectModel {
	switch m.Config.Routing {
	case layout.RoutingCurved:
		m.Config.Routing = layout.RoutingStraight
	case layout.RoutingStraight:
		m.Config.Routing = layout.RoutingOrthogonal
	default:
		m.Config.Routing = layout.RoutingCurved
	}
	m.Result = layout.Compute(m.Graph, m.Config)
	return m
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layout Inspector"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  o orientation  r routing  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Graph.Nodes) {
		end = len(m.Graph.Nodes)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Graph.Nodes[i]
		p := m.Result.Positions[n.ID]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{
			cursor,
			n.DisplayLabel(),
			string(n.Kind),
			fmt.Sprintf("%d", m.Result.Levels[n.ID]),
			fmt.Sprintf("%.0f", p.X),
			fmt.Sprintf("%.0f", p.Y),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Kind", "Level", "X", "Y").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s · %s · %d edges routed  [%d/%d]",
		m.Config.Orientation, m.Config.Routing, len(m.Result.Routes),
		m.Cursor+1, len(m.Graph.Nodes))))

	return b.String()
}
