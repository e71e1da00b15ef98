// Package text renders a graph as a plain-text listing.
//
// The output is deterministic: nodes in insertion order, then edges in
// insertion order. It is the format the print command ships to stdout
// and the one golden tests diff against.
package text

import (
	"bytes"
	"fmt"

	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/graph"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/viz"
)

// Visualizer renders graphs as plain text.
type Visualizer struct{}

// New returns the plain-text visualizer.
func New() *Visualizer { return &Visualizer{} }

var _ viz.Visualizer = (*Visualizer)(nil)

func (*Visualizer) Name() string        { return "Plain Text" }
func (*Visualizer) ID() string          { return "text" }
func (*Visualizer) ContentType() string { return "text/plain; charset=utf-8" }

// Render writes the node listing followed by the edge listing.
func (*Visualizer) Render(g *graph.Graph) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "graph: %d nodes, %d edges\n", g.NodeCount(), g.EdgeCount())

	buf.WriteString("\nnodes:\n")
	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  n%d %s", n.ID, n.Label)
		for _, a := range n.Attrs {
			fmt.Fprintf(&buf, " %s=%v", a.Key, a.Val)
		}
		buf.WriteByte('\n')
	}

	buf.WriteString("\nedges:\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  n%d -> n%d", e.From, e.To)
		if e.Label != "" {
			fmt.Fprintf(&buf, " [%s]", e.Label)
		}
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}
