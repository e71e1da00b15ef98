// Package graphio provides JSON import and export for graphs.
//
// The format is a flat object with "nodes" and "edges" arrays plus the
// root handle:
//
//	{
//	  "root": 0,
//	  "nodes": [{"id": 0, "label": "object"}, {"id": 1, "label": "scalar", "attrs": [{"key": "value", "val": 7}]}],
//	  "edges": [{"from": 0, "to": 1, "label": "count"}]
//	}
//
// Node handles are arena indices, so a well-formed file lists node n at
// array position n. Export preserves insertion order; a graph survives
// an export/import round trip node for node and edge for edge.
package graphio

import (
	"encoding/json"
	"io"
	"os"

	gverrors "github.com/NikolaOgnjenovic/Graph-visualizer/pkg/errors"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/graph"
)

type document struct {
	Root  graph.NodeID `json:"root"`
	Nodes []graph.Node `json:"nodes"`
	Edges []graph.Edge `json:"edges"`
}

// WriteJSON encodes the graph as indented JSON and writes it to w.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	doc := document{
		Root:  g.Root(),
		Nodes: g.Nodes(),
		Edges: g.Edges(),
	}
	if doc.Nodes == nil {
		doc.Nodes = []graph.Node{}
	}
	if doc.Edges == nil {
		doc.Edges = []graph.Edge{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return gverrors.Wrap(gverrors.ErrCodeInternal, err, "encode graph")
	}
	return nil
}

// ReadJSON decodes a JSON graph from r.
//
// Node handles must match their array position and attribute values
// must be scalars; violations fail with MALFORMED_VALUE. Edges that
// reference unknown handles fail with UNKNOWN_NODE. ReadJSON does not
// close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, gverrors.Wrap(gverrors.ErrCodeMalformedValue, err, "decode graph")
	}

	g := graph.New()
	for i, n := range doc.Nodes {
		if int(n.ID) != i {
			return nil, gverrors.New(gverrors.ErrCodeMalformedValue,
				"node at position %d carries handle %d", i, n.ID)
		}
		if _, err := g.AddNode(n.Label, n.Attrs); err != nil {
			return nil, err
		}
	}
	for _, e := range doc.Edges {
		if err := g.AddEdge(e.From, e.To, e.Label); err != nil {
			return nil, err
		}
	}
	if len(doc.Nodes) > 0 {
		g.SetRoot(doc.Root)
	}
	return g, nil
}

// ExportJSON writes the graph to a file at path, creating or
// truncating it.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return gverrors.Wrap(gverrors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	if err := WriteJSON(g, f); err != nil {
		return err
	}
	return f.Close()
}

// ImportJSON reads a JSON graph file at path.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, gverrors.Wrap(gverrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
