// Package cli implements the callsheet command-line interface.
//
// # Commands
//
//   - layout: compute the page plan of a call-sheet document
//   - render: write the sheet as json, xlsx, txt or png
//   - preview: browse the pages of a plan in the terminal
//   - cache: inspect or clear the plan and artifact cache
//
// Defaults come from the config file (see internal/config); flags override
// them. All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/callsheet/internal/config"
	"github.com/matzehuels/callsheet/pkg/cache"
	"github.com/matzehuels/callsheet/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "callsheet"

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

	// ConfigPath is the config file to read; a missing file means defaults.
	ConfigPath string

	cfg *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:     newLogger(w, level),
		ConfigPath: config.DefaultPath(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig loads the configuration once per process.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded config", "path", c.ConfigPath, "cache", cfg.Cache.Backend)
	c.cfg = cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. An unreachable cache is
// reported and replaced by the null cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := cfg.OpenCache(ctx, noCache)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "backend", cfg.Cache.Backend, "err", err)
		store = cache.NewNullCache()
	}
	return pipeline.NewRunner(store, cfg.Keyer(), c.Logger), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// pageFlags are the layout flags shared by layout, render and preview.
type pageFlags struct {
	format      string
	orientation string
	editing     bool
	noCache     bool
	refresh     bool
}

func (f *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "page-format", "p", "", "page format: 2-page, 4-page (default: document or config)")
	cmd.Flags().StringVar(&f.orientation, "orientation", "", "orientation: landscape, portrait (default: document or config)")
	cmd.Flags().BoolVar(&f.editing, "editing", false, "keep hidden boxes and empty pages")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even if cached")
}

// options builds pipeline options from the config with flags on top.
func (f *pageFlags) options(cfg *config.Config, input string) pipeline.Options {
	opts := pipeline.Options{
		Input:       input,
		PageFormat:  cfg.Layout.Format,
		Orientation: cfg.Layout.Orientation,
		Editing:     f.editing,
		Refresh:     f.refresh,
		Formats:     append([]string(nil), cfg.Output.Formats...),
		Print:       cfg.Output.Print,
		Scale:       cfg.Output.Scale,
	}
	if f.format != "" {
		opts.PageFormat = f.format
	}
	if f.orientation != "" {
		opts.Orientation = f.orientation
	}
	return opts
}

// parseFormats parses a comma-separated format list. Empty means "use the
// configured formats".
func parseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// basePath returns output if set, otherwise input without its extension.
func basePath(output, input string) string {
	if output != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}
