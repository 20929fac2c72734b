package render

import "github.com/flowgrid/flowgrid/pkg/errors"

// Format identifies a render output format.
type Format string

// Supported output formats.
const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatSVG, FormatPNG, FormatDOT, FormatJSON:
		return Format(s), nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"unknown format %q (valid: svg, png, dot, json)", s)
	}
}

// Style is a named color palette.
type Style struct {
	Name       string
	Background string
	StateFill  string
	EventFill  string
	NodeStroke string
	EdgeStroke string
	BackStroke string
	Text       string
}

// Built-in styles.
var (
	Simple = Style{
		Name:       "simple",
		Background: "#ffffff",
		StateFill:  "#dbeafe",
		EventFill:  "#fef3c7",
		NodeStroke: "#1e3a5f",
		EdgeStroke: "#475569",
		BackStroke: "#b45309",
		Text:       "#0f172a",
	}

	Dark = Style{
		Name:       "dark",
		Background: "#0f172a",
		StateFill:  "#1e3a5f",
		EventFill:  "#57430f",
		NodeStroke: "#94a3b8",
		EdgeStroke: "#94a3b8",
		BackStroke: "#f59e0b",
		Text:       "#e2e8f0",
	}
)

// StyleByName resolves a style name. Empty selects the simple style.
func StyleByName(name string) (Style, error) {
	switch name {
	case "", "simple":
		return Simple, nil
	case "dark":
		return Dark, nil
	default:
		return Style{}, errors.New(errors.ErrCodeInvalidStyle,
			"unknown style %q (valid: simple, dark)", name)
	}
}
