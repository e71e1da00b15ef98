// Package visualizers registers all built-in visualizer plugins.
//
// The slice is the process-wide lookup table: CLI and server resolve
// visualizer identifiers against it at startup.
package visualizers

import (
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/viz"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/viz/dot"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/viz/html"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/viz/text"
)

// All lists every registered visualizer in a stable order.
var All = []viz.Visualizer{
	text.New(),
	dot.New(),
	dot.NewSVG(),
	dot.NewPNG(),
	html.New(),
}

// Lookup finds a registered visualizer by identifier.
func Lookup(id string) (viz.Visualizer, bool) {
	return viz.Lookup(id, All...)
}

// IDs returns the identifiers of all registered visualizers.
func IDs() []string {
	out := make([]string, len(All))
	for i, v := range All {
		out[i] = v.ID()
	}
	return out
}
