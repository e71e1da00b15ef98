// Package jsonds loads JSON documents into graphs.
//
// Decoding goes through json.Decoder tokens rather than Unmarshal: Go
// maps would lose both the key order and the per-literal instance
// identity the walker depends on. Every object and array literal becomes
// its own composite instance.
//
// Cross-references use explicit "$id"/"$ref" keys: a mapping whose only
// entry is "$ref" is replaced by the instance carrying the matching
// "$id", so shared targets and reference cycles reach the walker as
// genuinely shared composite instances. A "$ref" to an unknown id is a
// parse error.
package jsonds

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	gverrors "github.com/NikolaOgnjenovic/Graph-visualizer/pkg/errors"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/graph"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/source"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/value"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/walk"
)

const (
	idKey  = "$id"
	refKey = "$ref"
)

// DataSource is the JSON datasource plugin.
type DataSource struct{}

// New creates the JSON datasource.
func New() *DataSource { return &DataSource{} }

// Name returns the human-readable plugin name.
func (*DataSource) Name() string { return "JSON to graph loader" }

// Format returns the registry identifier.
func (*DataSource) Format() string { return "json" }

// Supports reports whether the filename looks like a JSON document.
func (*DataSource) Supports(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".json")
}

// Parse decodes the document, resolves $ref aliases, and walks the
// resulting value tree into a graph.
func (d *DataSource) Parse(data []byte, opts source.Options) (*graph.Graph, error) {
	root, err := decode(data)
	if err != nil {
		return nil, err
	}
	root, err = resolveRefs(root)
	if err != nil {
		return nil, err
	}
	return walk.Graph(root, opts.Limits)
}

func decode(data []byte) (value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, syntaxErr(data, err)
	}

	// A document is exactly one value.
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("trailing content after top-level value")
		}
		return nil, syntaxErr(data, err)
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (value.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (value.Value, error) {
	switch tok := tok.(type) {
	case json.Delim:
		switch tok {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, errors.New("unbalanced delimiter")
	case string:
		return value.String(tok), nil
	case json.Number:
		f, err := tok.Float64()
		if err != nil {
			return nil, err
		}
		return value.Number(f), nil
	case bool:
		return value.Bool(tok), nil
	case nil:
		return value.Null(), nil
	}
	return nil, errors.New("unexpected token")
}

func decodeObject(dec *json.Decoder) (*value.Mapping, error) {
	m := &value.Mapping{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.New("object key is not a string")
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		m.Entries = append(m.Entries, value.Entry{Key: key, Val: val})
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return nil, err
	}
	return m, nil
}

func decodeArray(dec *json.Decoder) (*value.Sequence, error) {
	s := &value.Sequence{}
	for dec.More() {
		item, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		s.Items = append(s.Items, item)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return nil, err
	}
	return s, nil
}

// syntaxErr converts a decoder failure into a located ParseError.
func syntaxErr(data []byte, err error) error {
	var se *json.SyntaxError
	if errors.As(err, &se) {
		line, col := lineCol(data, se.Offset)
		return &gverrors.ParseError{
			Format: "json", Line: line, Column: col,
			Message: "invalid JSON", Cause: errors.New(se.Error()),
		}
	}
	return gverrors.NewParseError("json", err, "invalid JSON")
}

// lineCol converts a byte offset into 1-based line/column numbers.
func lineCol(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	head := data[:offset]
	line := bytes.Count(head, []byte{'\n'}) + 1
	col := int(offset) - bytes.LastIndexByte(head, '\n')
	return line, col
}

// resolveRefs indexes $id declarations and replaces every reference
// mapping with the declared instance. The input tree is acyclic (fresh
// from the decoder); the output may contain cycles and sharing.
func resolveRefs(root value.Value) (value.Value, error) {
	ids := make(map[string]*value.Mapping)
	collectIDs(root, ids)

	if target, isRef, err := deref(root, ids); err != nil {
		return nil, err
	} else if isRef {
		return target, nil
	}

	if err := substitute(root, ids); err != nil {
		return nil, err
	}
	return root, nil
}

func collectIDs(v value.Value, ids map[string]*value.Mapping) {
	switch v := v.(type) {
	case *value.Mapping:
		if ev, ok := v.Entry(idKey); ok {
			if s, ok := ev.(*value.Scalar); ok && s.Kind == value.KindString {
				ids[s.Str] = v
			}
		}
		for _, e := range v.Entries {
			collectIDs(e.Val, ids)
		}
	case *value.Sequence:
		for _, item := range v.Items {
			collectIDs(item, ids)
		}
	}
}

// deref reports whether v is a reference mapping and, if so, resolves it.
// Only a mapping whose single entry is $ref counts; a mapping that also
// declares other keys keeps $ref as an ordinary child.
func deref(v value.Value, ids map[string]*value.Mapping) (*value.Mapping, bool, error) {
	m, ok := v.(*value.Mapping)
	if !ok || len(m.Entries) != 1 || m.Entries[0].Key != refKey {
		return nil, false, nil
	}
	s, ok := m.Entries[0].Val.(*value.Scalar)
	if !ok || s.Kind != value.KindString {
		return nil, false, gverrors.NewParseError("json", nil, "$ref must hold a string id")
	}
	target, ok := ids[s.Str]
	if !ok {
		return nil, false, gverrors.NewParseError("json", nil, "$ref to unknown id %q", s.Str)
	}
	return target, true, nil
}

// substitute rewrites reference slots in place. Substituted targets are
// not descended into from their new location; each composite of the
// original tree is visited exactly once at its declaration site, which
// keeps the pass linear even when substitution introduces cycles.
func substitute(v value.Value, ids map[string]*value.Mapping) error {
	switch v := v.(type) {
	case *value.Mapping:
		for i, e := range v.Entries {
			if target, isRef, err := deref(e.Val, ids); err != nil {
				return err
			} else if isRef {
				v.Entries[i].Val = target
				continue
			}
			if err := substitute(e.Val, ids); err != nil {
				return err
			}
		}
	case *value.Sequence:
		for i, item := range v.Items {
			if target, isRef, err := deref(item, ids); err != nil {
				return err
			} else if isRef {
				v.Items[i] = target
				continue
			}
			if err := substitute(item, ids); err != nil {
				return err
			}
		}
	}
	return nil
}

// Ensure DataSource implements the plugin contract.
var _ source.DataSource = (*DataSource)(nil)
