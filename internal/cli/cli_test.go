package cli

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/graph"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/graph/query"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/pipeline"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/source/sources"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/viz/visualizers"
)

func TestRootCommand_Subcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"print", "render", "browse", "sources", "visualizers", "serve", "cache", "completion"}
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

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input string
		viz   string
		want  string
	}{
		{"data.json", "svg", "data.svg"},
		{"data.json", "png", "data.png"},
		{"data.json", "dot", "data.dot"},
		{"dir/catalog.xml", "html", "dir/catalog.html"},
		{"plain", "text", "plain.txt"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.input, tt.viz); got != tt.want {
			t.Errorf("outputPath(%q, %q) = %q, want %q", tt.input, tt.viz, got, tt.want)
		}
	}
}

func TestSampleDocument_Parses(t *testing.T) {
	runner := pipeline.NewRunner(nil, nil, sources.All, visualizers.All)
	g, err := runner.Parse(t.Context(), []byte(sampleDocument), pipeline.Options{Format: "json"})
	if err != nil {
		t.Fatalf("sample document does not parse: %v", err)
	}
	if g.NodeCount() == 0 {
		t.Fatal("sample graph is empty")
	}

	// Both $ref projects resolve to the shared team object.
	shared := 0
	for _, n := range g.Nodes() {
		if g.InDegree(n.ID) > 1 {
			shared++
		}
	}
	if shared == 0 {
		t.Error("sample document should produce a shared node")
	}
}

func TestGraphBrowserModel_Navigation(t *testing.T) {
	runner := pipeline.NewRunner(nil, nil, sources.All, visualizers.All)
	g, err := runner.Parse(t.Context(), []byte(sampleDocument), pipeline.Options{Format: "json"})
	if err != nil {
		t.Fatal(err)
	}

	m := newGraphBrowserModel(g)
	if m.cursor != 0 {
		t.Fatalf("initial cursor = %d", m.cursor)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(GraphBrowserModel)
	if m.cursor != 1 {
		t.Errorf("cursor after down = %d", m.cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(GraphBrowserModel)
	if m.cursor != 0 {
		t.Errorf("cursor after up = %d", m.cursor)
	}

	// enter follows the root's first edge
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(GraphBrowserModel)
	children := g.Children(g.Root())
	if len(children) == 0 || m.cursor != int(children[0]) {
		t.Errorf("cursor after enter = %d, want %v", m.cursor, children)
	}

	if m.View() == "" {
		t.Error("empty view")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestGraphBrowserModel_Search(t *testing.T) {
	runner := pipeline.NewRunner(nil, nil, sources.All, visualizers.All)
	g, err := runner.Parse(t.Context(), []byte(sampleDocument), pipeline.Options{Format: "json"})
	if err != nil {
		t.Fatal(err)
	}

	key := func(m GraphBrowserModel, msg tea.KeyMsg) GraphBrowserModel {
		t.Helper()
		next, _ := m.Update(msg)
		return next.(GraphBrowserModel)
	}

	m := newGraphBrowserModel(g)
	m = key(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if !m.searching {
		t.Fatal("/ did not open the search prompt")
	}

	// While the prompt is open, q is input rather than quit.
	m = key(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = key(m, tea.KeyMsg{Type: tea.KeyBackspace})
	for _, r := range "core" {
		m = key(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m = key(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.searching {
		t.Error("enter did not close the search prompt")
	}
	if len(m.matches) == 0 {
		t.Fatal("no matches for a term present in the sample")
	}
	want := m.matches[0]
	if m.cursor != want {
		t.Errorf("cursor = %d, want first match %d", m.cursor, want)
	}
	node, _ := g.Node(graph.NodeID(m.cursor))
	if !query.MatchesSearch(node, "core") {
		t.Errorf("cursor node n%d does not match the term", m.cursor)
	}

	// n advances through matches and wraps.
	if len(m.matches) > 1 {
		m = key(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
		if m.cursor != m.matches[1] {
			t.Errorf("cursor after n = %d, want %d", m.cursor, m.matches[1])
		}
	}

	// esc cancels a new search without moving the cursor.
	before := m.cursor
	m = key(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = key(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.searching || m.cursor != before {
		t.Error("esc did not cancel the search prompt")
	}
}
