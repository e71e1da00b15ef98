package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/graph"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/graph/query"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/pipeline"
)

// List styles for the browser.
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command: an interactive terminal
// view over a parsed graph.
func (c *CLI) browseCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "browse <file>",
		Short: "Explore a graph interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			runner := c.newRunner(true)
			defer runner.Close()

			p := newProgress(loggerFromContext(cmd.Context()))
			g, err := runner.Parse(cmd.Context(), data, pipeline.Options{
				Format: format,
				Path:   args[0],
				Logger: loggerFromContext(cmd.Context()),
			})
			if err != nil {
				return err
			}
			p.done(fmt.Sprintf("Parsed %d nodes", g.NodeCount()))

			model := newGraphBrowserModel(g)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "datasource format; detected from the file extension if empty")
	return cmd
}

// GraphBrowserModel is the bubbletea model for graph exploration.
// Up/down move through the node list, enter follows the node's first
// outgoing edge, / searches node labels and attributes.
type GraphBrowserModel struct {
	graph  *graph.Graph
	cursor int
	offset int
	height int

	searching bool
	query     string
	matches   []int
}

func newGraphBrowserModel(g *graph.Graph) GraphBrowserModel {
	return GraphBrowserModel{graph: g, height: 15}
}

func (m GraphBrowserModel) Init() tea.Cmd {
	return nil
}

func (m GraphBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg), nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "/":
			m.searching = true
			m.query = ""
		case "n":
			m.jumpToMatch()
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < m.graph.NodeCount()-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			children := m.graph.Children(graph.NodeID(m.cursor))
			if len(children) > 0 {
				m.cursor = int(children[0])
				m.clampOffset()
			}
		case "g":
			m.cursor = int(m.graph.Root())
			m.clampOffset()
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

// updateSearch handles keys while the search prompt is open.
func (m GraphBrowserModel) updateSearch(msg tea.KeyMsg) GraphBrowserModel {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.searching = false
		m.query = ""
		m.matches = nil
	case tea.KeyEnter:
		m.searching = false
		m.matches = m.matches[:0]
		if m.query == "" {
			return m
		}
		for _, n := range m.graph.Nodes() {
			if query.MatchesSearch(n, m.query) {
				m.matches = append(m.matches, int(n.ID))
			}
		}
		m.jumpToMatch()
	case tea.KeyBackspace:
		if len(m.query) > 0 {
			m.query = m.query[:len(m.query)-1]
		}
	case tea.KeyRunes, tea.KeySpace:
		m.query += string(msg.Runes)
	}
	return m
}

// jumpToMatch moves the cursor to the next search match after it,
// wrapping around.
func (m *GraphBrowserModel) jumpToMatch() {
	if len(m.matches) == 0 {
		return
	}
	for _, id := range m.matches {
		if id > m.cursor {
			m.cursor = id
			m.clampOffset()
			return
		}
	}
	m.cursor = m.matches[0]
	m.clampOffset()
}

func (m *GraphBrowserModel) clampOffset() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m GraphBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Graph Browser"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ follow edge  g root  / search  n next match  q quit"))
	b.WriteString("\n")
	switch {
	case m.searching:
		b.WriteString(listNormalStyle.Render("/" + m.query))
		b.WriteString("\n")
	case m.query != "":
		b.WriteString(listDimStyle.Render(fmt.Sprintf("/%s  %d match(es)", m.query, len(m.matches))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	nodes := m.graph.Nodes()
	end := m.offset + m.height
	if end > len(nodes) {
		end = len(nodes)
	}
	for i := m.offset; i < end; i++ {
		n := nodes[i]
		line := fmt.Sprintf("n%-4d %s", n.ID, n.Label)
		if v, ok := n.Attr(graph.AttrValue); ok {
			line += listDimStyle.Render(fmt.Sprintf(" = %v", v))
		}
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render("> " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detailView())
	return b.String()
}

// detailView shows the cursor node's attributes and outgoing edges.
func (m GraphBrowserModel) detailView() string {
	id := graph.NodeID(m.cursor)
	n, ok := m.graph.Node(id)
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleHighlight.Render(fmt.Sprintf("n%d %s", n.ID, n.Label)))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  in %d · out %d", m.graph.InDegree(id), m.graph.OutDegree(id))))
	b.WriteString("\n")
	for _, a := range n.Attrs {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s = %v\n", a.Key, a.Val)))
	}
	for _, e := range m.graph.Edges() {
		if e.From != id {
			continue
		}
		label := e.Label
		if label != "" {
			label = " [" + label + "]"
		}
		b.WriteString(listNormalStyle.Render(fmt.Sprintf("  %s n%d%s\n", iconArrow, e.To, label)))
	}
	return b.String()
}
