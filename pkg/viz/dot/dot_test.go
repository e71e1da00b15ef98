package dot

import (
	"strings"
	"testing"

	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/graph"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/viz"
)

func buildGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	root, err := g.AddNode(graph.LabelObject, nil)
	if err != nil {
		t.Fatal(err)
	}
	leaf, err := g.AddNode(graph.LabelScalar, []graph.Attr{{Key: graph.AttrValue, Val: "x"}})
	if err != nil {
		t.Fatal(err)
	}
	empty, err := g.AddNode(graph.LabelScalar, []graph.Attr{{Key: graph.AttrEmpty, Val: true}})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge(root, leaf, "name"); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge(root, empty, "gap"); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge(root, root, "self"); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	got := ToDOT(buildGraph(t), Options{})

	for _, want := range []string{
		"digraph G {",
		`n0 [label="object"]`,
		`n1 [label="x"]`,
		`n0 -> n1 [label="name"];`,
		`n0 -> n0 [label="self"];`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("DOT missing %q\n%s", want, got)
		}
	}
}

func TestToDOT_EmptyMarkerStyled(t *testing.T) {
	got := ToDOT(buildGraph(t), Options{})
	if !strings.Contains(got, "dashed") {
		t.Errorf("empty marker node not styled\n%s", got)
	}
}

func TestToDOT_Detailed(t *testing.T) {
	got := ToDOT(buildGraph(t), Options{Detailed: true})
	if !strings.Contains(got, "scalar (n1)") {
		t.Errorf("detailed label missing node id\n%s", got)
	}
	if !strings.Contains(got, "value: x") {
		t.Errorf("detailed label missing attribute\n%s", got)
	}
}

func TestToDOT_LabelEscaping(t *testing.T) {
	g := graph.New()
	if _, err := g.AddNode(graph.LabelScalar, []graph.Attr{{Key: graph.AttrValue, Val: `say "hi"`}}); err != nil {
		t.Fatal(err)
	}
	got := ToDOT(g, Options{})
	if !strings.Contains(got, `label="say \"hi\""`) {
		t.Errorf("quotes not escaped\n%s", got)
	}
}

func TestVisualizer(t *testing.T) {
	v := New()
	if v.ID() != "dot" {
		t.Errorf("ID() = %s", v.ID())
	}
	out, err := v.Render(buildGraph(t))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(string(out), "digraph G {") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestImageVisualizerMetadata(t *testing.T) {
	tests := []struct {
		v           viz.Visualizer
		id, content string
	}{
		{NewSVG(), "svg", "image/svg+xml"},
		{NewPNG(), "png", "image/png"},
	}
	for _, tt := range tests {
		if tt.v.ID() != tt.id {
			t.Errorf("ID() = %s, want %s", tt.v.ID(), tt.id)
		}
		if tt.v.ContentType() != tt.content {
			t.Errorf("%s ContentType() = %s, want %s", tt.id, tt.v.ContentType(), tt.content)
		}
	}
}
