// Package source defines the datasource plugin contract.
//
// A datasource owns exactly two responsibilities: syntactic parsing of
// its format into the generic value tree (pkg/value), and supplying the
// structural walker with a source-identity notion appropriate to the
// format. Everything downstream - cycle collapse, node/edge emission,
// resource guards - lives in pkg/walk and is shared by all formats.
//
// Concrete datasources live in subpackages (jsonds, xmlds, csvds) and
// are registered at startup through pkg/source/sources.
package source

import (
	"path/filepath"
	"strings"

	gverrors "github.com/NikolaOgnjenovic/Graph-visualizer/pkg/errors"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/graph"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/walk"
)

// Options configures a single parse.
type Options struct {
	// Limits bounds the walk; zero values mean the walk defaults.
	Limits walk.Limits
}

// DataSource loads one document format into a graph.
type DataSource interface {
	// Name returns the human-readable plugin name.
	Name() string
	// Format returns the stable identifier used for registry lookup
	// (e.g., "json").
	Format() string
	// Supports reports whether this datasource handles the given filename.
	Supports(filename string) bool
	// Parse turns raw document bytes into a graph. Malformed syntax
	// fails with a DATASOURCE_PARSE error; oversized documents with
	// GRAPH_TOO_LARGE. A failed parse returns no graph.
	Parse(data []byte, opts Options) (*graph.Graph, error)
}

// Detect finds a datasource that supports the given file path.
// Returns an error if none matches.
func Detect(path string, sources ...DataSource) (DataSource, error) {
	name := filepath.Base(path)
	for _, s := range sources {
		if s.Supports(name) {
			return s, nil
		}
	}
	return nil, gverrors.New(gverrors.ErrCodeUnknownFormat, "no datasource supports %s", name)
}

// Lookup finds a datasource by format identifier, case-insensitively.
func Lookup(format string, sources ...DataSource) (DataSource, bool) {
	for _, s := range sources {
		if strings.EqualFold(s.Format(), format) {
			return s, true
		}
	}
	return nil, false
}
