package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/pipeline"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/viz/visualizers"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string // output file path (derived from input if empty)
	visualizer string // visualizer id: text, dot, svg, html
	format     string // datasource format override
	maxDepth   int
	maxNodes   int
	noCache    bool // disable the artifact cache
	refresh    bool // bypass cached entries
}

// renderCommand creates the render command for generating
// visualizations from documents.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{visualizer: "svg"}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a document with a visualizer",
		Long: `Parse a document and render it with one of the registered
visualizers.

Examples:
  gviz render data.json                      # SVG next to the input
  gviz render -t dot data.json -o graph.dot
  gviz render -t html catalog.xml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			runner := c.newRunner(opts.noCache)
			defer runner.Close()

			spinner := newSpinnerWithContext(cmd.Context(), "rendering "+filepath.Base(args[0]))
			spinner.Start()

			res, err := runner.Execute(cmd.Context(), data, pipeline.Options{
				Format:     opts.format,
				Path:       args[0],
				Visualizer: opts.visualizer,
				MaxDepth:   opts.maxDepth,
				MaxNodes:   opts.maxNodes,
				Refresh:    opts.refresh,
				Logger:     c.Logger,
			})
			if err != nil {
				spinner.StopWithError("render failed")
				return err
			}
			spinner.Stop()

			out := opts.output
			if out == "" {
				out = outputPath(args[0], opts.visualizer)
			}
			if err := os.WriteFile(out, res.Artifact, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			printSuccess("Rendered %s", filepath.Base(args[0]))
			printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.RenderHit)
			printFile(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (derived from the input name if empty)")
	cmd.Flags().StringVarP(&opts.visualizer, "visualizer", "t", opts.visualizer,
		"visualizer id ("+strings.Join(visualizers.IDs(), ", ")+")")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "datasource format; detected from the file extension if empty")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "maximum nesting depth")
	cmd.Flags().IntVar(&opts.maxNodes, "max-nodes", 0, "maximum graph size")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached entries")

	return cmd
}

// outputPath derives the output file name from the input and the
// visualizer's usual extension.
func outputPath(input, vizID string) string {
	ext := map[string]string{
		"text": ".txt",
		"dot":  ".dot",
		"svg":  ".svg",
		"png":  ".png",
		"html": ".html",
	}[vizID]
	if ext == "" {
		ext = "." + vizID
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + ext
}
