// Package cli implements the gviz command-line interface.
//
// This package provides commands for loading documents from the
// supported datasource formats, printing and rendering the resulting
// graphs, browsing them interactively, and running the HTTP server.
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - print: Parse a document and list its nodes and edges
//   - render: Generate DOT, SVG, PNG, or HTML visualizations
//   - browse: Explore a graph interactively in the terminal
//   - sources, visualizers: List registered plugins
//   - serve: Run the HTTP server
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/buildinfo"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/cache"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/pipeline"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/source/sources"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/viz/visualizers"
)

// appName is the application name used for directories and display.
const appName = "gviz"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "gviz turns structured documents into explorable graphs",
		Long:         `gviz loads JSON, XML, and CSV documents, normalizes them into a directed graph that preserves shared references and cycles, and renders the result with pluggable visualizers.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.printCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.sourcesCommand())
	root.AddCommand(c.visualizersCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(newCache(noCache), c.Logger, sources.All, visualizers.All)
}

func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory using the XDG convention
// (~/.cache/gviz/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
