// Package csvds loads CSV documents into graphs.
//
// The first record names the columns. Each following record becomes a
// row mapping under a synthetic rows sequence, with one entry per
// column. Empty cells become null leaves so edges pointing at them stay
// well-formed.
//
// Cross-references use the id/ref column pair: a cell in a column named
// "ref" whose value matches another row's "id" cell aliases that row.
// CSV has no nesting of its own, so unmatched ref values stay plain
// scalars instead of failing the parse.
package csvds

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"

	gverrors "github.com/NikolaOgnjenovic/Graph-visualizer/pkg/errors"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/graph"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/source"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/value"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/walk"
)

const (
	idColumn  = "id"
	refColumn = "ref"

	rowsLabel = "rows"
	rowLabel  = "row"
)

// DataSource is the CSV datasource plugin.
type DataSource struct{}

// New creates the CSV datasource.
func New() *DataSource { return &DataSource{} }

// Name returns the human-readable plugin name.
func (*DataSource) Name() string { return "CSV to graph loader" }

// Format returns the registry identifier.
func (*DataSource) Format() string { return "csv" }

// Supports reports whether the filename looks like a CSV document.
func (*DataSource) Supports(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".csv")
}

// Parse decodes the document, aliases ref cells to their target rows,
// and walks the resulting value tree into a graph.
func (d *DataSource) Parse(data []byte, opts source.Options) (*graph.Graph, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, syntaxErr(err)
	}
	if len(records) == 0 {
		return nil, gverrors.NewParseError("csv", nil, "document has no header record")
	}

	header := records[0]
	rows := &value.Sequence{Name: rowsLabel}
	byID := make(map[string]*value.Mapping)

	for _, rec := range records[1:] {
		row := &value.Mapping{Name: rowLabel}
		for i, col := range header {
			cell := ""
			if i < len(rec) {
				cell = rec[i]
			}
			var v value.Value = value.String(cell)
			if cell == "" {
				v = value.Null()
			}
			row.Entries = append(row.Entries, value.Entry{Key: col, Val: v})
			if strings.EqualFold(col, idColumn) && cell != "" {
				byID[cell] = row
			}
		}
		rows.Items = append(rows.Items, row)
	}

	// Alias ref cells after all ids are known; forward references are
	// legal and rows may form cycles.
	for _, item := range rows.Items {
		row := item.(*value.Mapping)
		for i, e := range row.Entries {
			if !strings.EqualFold(e.Key, refColumn) {
				continue
			}
			s, ok := e.Val.(*value.Scalar)
			if !ok || s.Kind != value.KindString {
				continue
			}
			if target, ok := byID[s.Str]; ok {
				row.Entries[i].Val = target
			}
		}
	}

	return walk.Graph(rows, opts.Limits)
}

func syntaxErr(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &gverrors.ParseError{
			Format: "csv", Line: pe.Line, Column: pe.Column,
			Message: "invalid CSV", Cause: errors.New(pe.Err.Error()),
		}
	}
	return gverrors.NewParseError("csv", err, "invalid CSV")
}

// Ensure DataSource implements the plugin contract.
var _ source.DataSource = (*DataSource)(nil)
