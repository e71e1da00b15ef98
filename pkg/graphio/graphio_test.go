package graphio

import (
	"bytes"
	"strings"
	"testing"

	gverrors "github.com/NikolaOgnjenovic/Graph-visualizer/pkg/errors"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/graph"
)

func buildGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	root, err := g.AddNode(graph.LabelObject, nil)
	if err != nil {
		t.Fatal(err)
	}
	leaf, err := g.AddNode(graph.LabelScalar, []graph.Attr{{Key: graph.AttrValue, Val: "hello"}})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge(root, leaf, "greeting"); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge(leaf, root, "back"); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestRoundTrip(t *testing.T) {
	g := buildGraph(t)

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if got.NodeCount() != g.NodeCount() || got.EdgeCount() != g.EdgeCount() {
		t.Fatalf("round trip changed size: %d/%d, want %d/%d",
			got.NodeCount(), got.EdgeCount(), g.NodeCount(), g.EdgeCount())
	}
	if got.Root() != g.Root() {
		t.Errorf("root = %d, want %d", got.Root(), g.Root())
	}
	for i, n := range got.Nodes() {
		orig := g.Nodes()[i]
		if n.Label != orig.Label || len(n.Attrs) != len(orig.Attrs) {
			t.Errorf("node %d = %+v, want %+v", i, n, orig)
		}
	}
	for i, e := range got.Edges() {
		if e != g.Edges()[i] {
			t.Errorf("edge %d = %+v, want %+v", i, e, g.Edges()[i])
		}
	}
}

func TestReadJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  gverrors.Code
	}{
		{
			name:  "malformed json",
			input: `{"nodes": [`,
			code:  gverrors.ErrCodeMalformedValue,
		},
		{
			name:  "handle mismatch",
			input: `{"root": 0, "nodes": [{"id": 5, "label": "object"}], "edges": []}`,
			code:  gverrors.ErrCodeMalformedValue,
		},
		{
			name:  "unknown edge endpoint",
			input: `{"root": 0, "nodes": [{"id": 0, "label": "object"}], "edges": [{"from": 0, "to": 9}]}`,
			code:  gverrors.ErrCodeUnknownNode,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !gverrors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v", gverrors.GetCode(err), tt.code)
			}
		})
	}
}

func TestExportImportJSON(t *testing.T) {
	g := buildGraph(t)
	path := t.TempDir() + "/graph.json"

	if err := ExportJSON(g, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if got.NodeCount() != 2 || got.EdgeCount() != 2 {
		t.Errorf("imported %d nodes %d edges", got.NodeCount(), got.EdgeCount())
	}
}

func TestImportJSON_Missing(t *testing.T) {
	_, err := ImportJSON(t.TempDir() + "/absent.json")
	if !gverrors.Is(err, gverrors.ErrCodeFileNotFound) {
		t.Errorf("code = %v, want FILE_NOT_FOUND", gverrors.GetCode(err))
	}
}
