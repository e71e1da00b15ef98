package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/pipeline"
)

// printOpts holds the command-line flags for the print command.
type printOpts struct {
	format   string // datasource format override (detected from extension if empty)
	maxDepth int    // maximum nesting depth
	maxNodes int    // maximum graph size
}

// printCommand creates the print command. It parses a document and
// writes the node listing followed by the edge listing to stdout.
// Without a file argument it prints a built-in sample document.
func (c *CLI) printCommand() *cobra.Command {
	var opts printOpts

	cmd := &cobra.Command{
		Use:   "print [file]",
		Short: "Parse a document and list its nodes and edges",
		Long: `Parse a document and print the resulting graph as a plain listing,
nodes first, then edges. Without a file argument a built-in sample
document is printed.

Examples:
  gviz print data.json
  gviz print --format xml exported.dat
  gviz print`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data := []byte(sampleDocument)
			popts := pipeline.Options{
				Format:     opts.format,
				Visualizer: "text",
				MaxDepth:   opts.maxDepth,
				MaxNodes:   opts.maxNodes,
				Logger:     c.Logger,
			}
			if len(args) == 1 {
				var err error
				data, err = os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read %s: %w", args[0], err)
				}
				popts.Path = args[0]
			} else if opts.format == "" {
				popts.Format = "json"
			}

			runner := c.newRunner(true)
			defer runner.Close()

			res, err := runner.Execute(cmd.Context(), data, popts)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(res.Artifact)
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "datasource format (json, xml, csv); detected from the file extension if empty")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "maximum nesting depth")
	cmd.Flags().IntVar(&opts.maxNodes, "max-nodes", 0, "maximum graph size")

	return cmd
}
