// Package viz defines the visualizer plugin contract.
//
// A visualizer consumes a finished graph and produces a rendering in
// some output format. It never inspects source documents and never
// mutates the graph. Implementations must tolerate anything the graph
// model permits: self-loops, parallel edges, and isolated nodes.
//
// Concrete visualizers live in subpackages (text, dot, html) and are
// registered at startup through pkg/viz/visualizers.
package viz

import (
	"strings"

	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/graph"
)

// Visualizer renders a graph into one output format.
type Visualizer interface {
	// Name returns the human-readable plugin name.
	Name() string
	// ID returns the stable identifier used for registry lookup
	// (e.g., "dot").
	ID() string
	// ContentType returns the MIME type of the rendered output.
	ContentType() string
	// Render produces the output bytes for the graph.
	Render(g *graph.Graph) ([]byte, error)
}

// Lookup finds a visualizer by identifier, case-insensitively.
func Lookup(id string, vizs ...Visualizer) (Visualizer, bool) {
	for _, v := range vizs {
		if strings.EqualFold(v.ID(), id) {
			return v, true
		}
	}
	return nil, false
}
