package cli

import (
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/flowgrid/flowgrid/pkg/config"
	"github.com/flowgrid/flowgrid/pkg/pipeline"
)

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	want := []string{"adapt", "layout", "render", "inspect", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg,png,dot", []string{"svg", "png", "dot"}},
	}

	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestApplyCanvasConfig(t *testing.T) {
	canvas := config.Default().Canvas

	// Config fills empty fields.
	var opts pipeline.Options
	applyCanvasConfig(canvas, &opts)
	if opts.Width != canvas.Width || opts.Orientation != canvas.Orientation {
		t.Errorf("defaults not applied: %+v", opts)
	}

	// Explicit flags win over config.
	opts = pipeline.Options{Width: 500, Orientation: "vertical"}
	applyCanvasConfig(canvas, &opts)
	if opts.Width != 500 {
		t.Errorf("Width = %v, want 500", opts.Width)
	}
	if opts.Orientation != "vertical" {
		t.Errorf("Orientation = %q, want vertical", opts.Orientation)
	}
	if opts.Height != canvas.Height {
		t.Errorf("Height should still come from config, got %v", opts.Height)
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	c.SetLogLevel(log.DebugLevel)
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}
