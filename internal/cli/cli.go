// Package cli implements the canvashtml command-line interface.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/canvaskit/canvashtml/pkg/buildinfo"
	"github.com/canvaskit/canvashtml/pkg/cache"
	"github.com/canvaskit/canvashtml/pkg/config"
	"github.com/canvaskit/canvashtml/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

// canvasExt is the file extension of JSON Canvas documents.
const canvasExt = ".canvas"

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
		Use:          "canvashtml",
		Short:        "Canvashtml converts JSON Canvas files to interactive HTML",
		Long:         `Canvashtml converts JSON Canvas files (as used by Obsidian Canvas) into self-contained interactive HTML pages with pan, zoom, and embedded assets.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache builds the artifact cache selected by the configuration.
// Unknown backends and unreachable file cache directories degrade to the
// null cache rather than failing the command.
func newCache(ctx context.Context, cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case "redis":
		return cache.NewRedisCache(ctx, cfg.RedisAddr)
	case "file", "":
		dir, err := config.CacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend: %s", cfg.Backend)
	}
}

// =============================================================================
// Format Helpers
// =============================================================================

// validFormats is the set of supported convert output formats.
var validFormats = map[string]bool{"html": true, "svg": true}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{"html"}
	}
	return strings.Split(s, ",")
}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'html' or 'svg')", f)
		}
	}
	return nil
}
