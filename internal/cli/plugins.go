package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/source/sources"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/viz/visualizers"
)

// sourcesCommand lists the registered datasource plugins.
func (c *CLI) sourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List registered datasource plugins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := pluginTable("NAME", "FORMAT")
			for _, ds := range sources.All {
				t.Row(ds.Name(), ds.Format())
			}
			fmt.Println(t)
			return nil
		},
	}
}

// visualizersCommand lists the registered visualizer plugins.
func (c *CLI) visualizersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "visualizers",
		Short: "List registered visualizer plugins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := pluginTable("NAME", "ID", "CONTENT TYPE")
			for _, v := range visualizers.All {
				t.Row(v.Name(), v.ID(), v.ContentType())
			}
			fmt.Println(t)
			return nil
		},
	}
}

func pluginTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleTitle
			}
			return StyleValue
		}).
		Headers(headers...)
}
