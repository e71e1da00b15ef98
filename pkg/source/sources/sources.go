// Package sources registers all built-in datasource plugins.
//
// The slice is the process-wide lookup table: CLI and server resolve
// format names and file extensions against it at startup. Out-of-tree
// datasources can be added by appending to All before first use.
package sources

import (
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/source"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/source/csvds"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/source/jsonds"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/source/xmlds"
)

// All lists every registered datasource in a stable order.
var All = []source.DataSource{
	jsonds.New(),
	xmlds.New(),
	csvds.New(),
}

// Lookup finds a registered datasource by format identifier.
func Lookup(format string) (source.DataSource, bool) {
	return source.Lookup(format, All...)
}

// Detect finds a registered datasource that supports the file path.
func Detect(path string) (source.DataSource, error) {
	return source.Detect(path, All...)
}

// Formats returns the identifiers of all registered datasources.
func Formats() []string {
	out := make([]string, len(All))
	for i, s := range All {
		out[i] = s.Format()
	}
	return out
}
