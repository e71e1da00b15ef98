package jsonds

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/errors"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/graph"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/source"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/walk"
)

func load(t *testing.T, name string) *graph.Graph {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	g, err := New().Parse(data, source.Options{})
	if err != nil {
		t.Fatalf("Parse(%s) error = %v", name, err)
	}
	return g
}

func TestSupports(t *testing.T) {
	ds := New()
	if !ds.Supports("data.json") || !ds.Supports("DATA.JSON") {
		t.Error("Supports(.json) = false, want true")
	}
	if ds.Supports("data.xml") {
		t.Error("Supports(.xml) = true, want false")
	}
}

func TestParse_SimpleGraph(t *testing.T) {
	g := load(t, "test_simple_graph.json")

	// A small tree: N nodes, N-1 edges, exactly one node without parents.
	if g.NodeCount() != 7 {
		t.Errorf("NodeCount() = %d, want 7", g.NodeCount())
	}
	if g.EdgeCount() != g.NodeCount()-1 {
		t.Errorf("EdgeCount() = %d, want %d", g.EdgeCount(), g.NodeCount()-1)
	}
	if roots := g.Sources(); len(roots) != 1 || roots[0] != g.Root() {
		t.Errorf("Sources() = %v, want exactly the root", roots)
	}
	if n, _ := g.Node(g.Root()); n.Label != graph.LabelObject {
		t.Errorf("root label = %q, want %q", n.Label, graph.LabelObject)
	}
}

func TestParse_CyclicGraph(t *testing.T) {
	g := load(t, "test_cyclic_graph.json")

	// One node per distinct composite: root, the list, three cycle
	// members, and one $id scalar each.
	if g.NodeCount() != 8 {
		t.Errorf("NodeCount() = %d, want 8", g.NodeCount())
	}

	// Following "next" edges from the cycle's entry returns to it after 3 hops.
	next := func(id graph.NodeID) graph.NodeID {
		t.Helper()
		for _, e := range g.Edges() {
			if e.From == id && e.Label == "next" {
				return e.To
			}
		}
		t.Fatalf("node %d has no next edge", id)
		return 0
	}

	var entry graph.NodeID
	for _, e := range g.Edges() {
		if e.Label == "0" {
			entry = e.To
			break
		}
	}
	cur := entry
	for range 3 {
		cur = next(cur)
	}
	if cur != entry {
		t.Errorf("after 3 hops at node %d, want back at entry %d", cur, entry)
	}
}

func TestParse_ComplexGraph(t *testing.T) {
	g := load(t, "test_complex_graph.json")

	if g.NodeCount() != 12 {
		t.Errorf("NodeCount() = %d, want 12", g.NodeCount())
	}
	if g.EdgeCount() != 13 {
		t.Errorf("EdgeCount() = %d, want 13", g.EdgeCount())
	}

	// The $id target is one node regardless of how many places reference it.
	var lib graph.NodeID = -1
	for _, e := range g.Edges() {
		if e.Label == "library" {
			lib = e.To
		}
	}
	if lib < 0 {
		t.Fatal("library edge not found")
	}
	if g.InDegree(lib) != 3 {
		t.Errorf("InDegree(library) = %d, want 3 (declaration + two $refs)", g.InDegree(lib))
	}
	parents := 0
	for _, e := range g.Edges() {
		if e.Label == "parent" && e.To == lib {
			parents++
		}
	}
	if parents != 2 {
		t.Errorf("parent edges into library = %d, want 2", parents)
	}

	// Array elements keep their original order as index labels.
	var tags graph.NodeID = -1
	for _, e := range g.Edges() {
		if e.Label == "tags" {
			tags = e.To
		}
	}
	var labels []string
	for _, e := range g.Edges() {
		if e.From == tags {
			labels = append(labels, e.Label)
		}
	}
	if len(labels) != 2 || labels[0] != "0" || labels[1] != "1" {
		t.Errorf("tag edge labels = %v, want [0 1]", labels)
	}
}

func TestParse_Determinism(t *testing.T) {
	a := load(t, "test_complex_graph.json")
	b := load(t, "test_complex_graph.json")

	if a.NodeCount() != b.NodeCount() || a.EdgeCount() != b.EdgeCount() {
		t.Fatal("repeated parses produced different sizes")
	}
	for i := range a.Nodes() {
		if a.Nodes()[i].Label != b.Nodes()[i].Label {
			t.Errorf("node %d label differs between parses", i)
		}
	}
	for i := range a.Edges() {
		if a.Edges()[i] != b.Edges()[i] {
			t.Errorf("edge %d differs between parses", i)
		}
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := New().Parse([]byte("{\n  \"name\": }\n"), source.Options{})
	if !errors.Is(err, errors.ErrCodeParse) {
		t.Fatalf("Parse() error = %v, want DATASOURCE_PARSE", err)
	}

	var pe *errors.ParseError
	if !stderrors.As(err, &pe) {
		t.Fatal("error is not a ParseError")
	}
	if pe.Line != 2 {
		t.Errorf("error line = %d, want 2", pe.Line)
	}
}

func TestParse_TrailingContent(t *testing.T) {
	_, err := New().Parse([]byte(`{"a": 1} {"b": 2}`), source.Options{})
	if !errors.Is(err, errors.ErrCodeParse) {
		t.Errorf("Parse() error = %v, want DATASOURCE_PARSE", err)
	}
}

func TestParse_UnknownRef(t *testing.T) {
	_, err := New().Parse([]byte(`{"a": {"$ref": "nowhere"}}`), source.Options{})
	if !errors.Is(err, errors.ErrCodeParse) {
		t.Errorf("Parse() error = %v, want DATASOURCE_PARSE", err)
	}
}

func TestParse_RefWithSiblingsIsNotAReference(t *testing.T) {
	g, err := New().Parse([]byte(`{"a": {"$ref": "x", "note": "kept"}}`), source.Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	// root, inner object, and two scalars.
	if g.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4", g.NodeCount())
	}
}

func TestParse_IdenticalContentStaysDistinct(t *testing.T) {
	g, err := New().Parse([]byte(`{"a": {"v": 1}, "b": {"v": 1}}`), source.Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if g.NodeCount() != 5 {
		t.Errorf("NodeCount() = %d, want 5 (two equal literals stay two nodes)", g.NodeCount())
	}
}

func TestParse_NodeLimit(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "test_complex_graph.json"))
	if err != nil {
		t.Fatal(err)
	}
	_, parseErr := New().Parse(data, source.Options{Limits: walk.Limits{MaxNodes: 3}})
	if !errors.Is(parseErr, errors.ErrCodeTooLarge) {
		t.Errorf("Parse() error = %v, want GRAPH_TOO_LARGE", parseErr)
	}
}
