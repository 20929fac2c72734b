// Package cli implements the flowgrid command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/flowgrid/flowgrid/pkg/buildinfo"
	"github.com/flowgrid/flowgrid/pkg/cache"
	"github.com/flowgrid/flowgrid/pkg/config"
	"github.com/flowgrid/flowgrid/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "flowgrid"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath overrides the default config file location (--config).
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Flowgrid lays out workflow graphs",
		Long:         `Flowgrid computes hierarchical layouts for workflow graphs of states and events: level assignment, position calculation, and edge routing around the grid.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default: "+appName+"/config.toml under the user config dir)")

	// Register all subcommands
	root.AddCommand(c.adaptCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config
// =============================================================================

// loadConfig reads the TOML config, honoring --config. A missing file yields
// the built-in defaults.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.ConfigPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

// applyCanvasConfig copies configured canvas geometry into pipeline options,
// leaving fields the user already set on the command line untouched.
func applyCanvasConfig(canvas config.CanvasConfig, opts *pipeline.Options) {
	if opts.Width == 0 {
		opts.Width = canvas.Width
	}
	if opts.Height == 0 {
		opts.Height = canvas.Height
	}
	if opts.NodeWidth == 0 {
		opts.NodeWidth = canvas.NodeWidth
	}
	if opts.NodeHeight == 0 {
		opts.NodeHeight = canvas.NodeHeight
	}
	if opts.Padding == 0 {
		opts.Padding = canvas.Padding
	}
	if opts.Orientation == "" {
		opts.Orientation = canvas.Orientation
	}
	if opts.Routing == "" {
		opts.Routing = canvas.Routing
	}
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The cache backend follows
// the config file; --no-cache forces the null cache.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func newCache(ctx context.Context, cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	if cfg.Backend == "redis" {
		return cache.NewRedisCache(ctx, cfg.RedisURL)
	}
	dir := cfg.Dir
	if dir == "" {
		var err error
		dir, err = cache.DefaultDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Options Helpers
// =============================================================================

// registerGeometryFlags adds the layout geometry flags shared by the layout,
// render, and inspect commands.
func registerGeometryFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVar(&opts.Orientation, "orientation", opts.Orientation, "layout orientation: horizontal (default), vertical")
	cmd.Flags().StringVar(&opts.Routing, "routing", opts.Routing, "edge routing: curved (default), straight, orthogonal")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "canvas height")
	cmd.Flags().Float64Var(&opts.NodeWidth, "node-width", opts.NodeWidth, "node box width")
	cmd.Flags().Float64Var(&opts.NodeHeight, "node-height", opts.NodeHeight, "node box height")
	cmd.Flags().Float64Var(&opts.Padding, "padding", opts.Padding, "canvas padding")
	cmd.Flags().Float64Var(&opts.MinSpacing, "min-spacing", opts.MinSpacing, "minimum spacing between nodes in a level")
	cmd.Flags().Float64Var(&opts.MaxLevelSpacing, "max-level-spacing", opts.MaxLevelSpacing, "maximum spacing between levels")
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}

// cacheDir resolves the effective cache directory for the cache subcommands.
func (c *CLI) cacheDir() (string, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return dir, nil
}
