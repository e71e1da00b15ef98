// Package xmlds loads XML documents into graphs.
//
// Each element becomes a mapping named after its tag. Element attributes
// become node attributes, trimmed text content becomes a "value"
// attribute, and child elements become ordered children keyed by their
// tag.
//
// Cross-references use the id/ref attribute pair: an element carrying a
// ref attribute with no children and no text aliases the element whose
// id attribute matches, so the walker sees one shared instance. A ref to
// an unknown id is a parse error.
package xmlds

import (
	"bytes"
	"encoding/xml"
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
	idAttr  = "id"
	refAttr = "ref"
)

// DataSource is the XML datasource plugin.
type DataSource struct{}

// New creates the XML datasource.
func New() *DataSource { return &DataSource{} }

// Name returns the human-readable plugin name.
func (*DataSource) Name() string { return "XML to graph loader" }

// Format returns the registry identifier.
func (*DataSource) Format() string { return "xml" }

// Supports reports whether the filename looks like an XML document.
func (*DataSource) Supports(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xml")
}

// Parse decodes the document, resolves ref attributes, and walks the
// resulting value tree into a graph.
func (d *DataSource) Parse(data []byte, opts source.Options) (*graph.Graph, error) {
	root, err := decode(data)
	if err != nil {
		return nil, err
	}
	b := builder{
		ids:  make(map[string]*value.Mapping),
		refs: make(map[*value.Mapping]string),
	}
	tree := b.mapping(root)
	if refID, isRef := b.refs[tree]; isRef {
		target, ok := b.ids[refID]
		if !ok {
			return nil, gverrors.NewParseError("xml", nil, "ref to unknown id %q", refID)
		}
		tree = target
	}
	if err := b.resolve(tree); err != nil {
		return nil, err
	}
	return walk.Graph(tree, opts.Limits)
}

// element is the raw parse tree before conversion to the value model.
type element struct {
	tag      string
	attrs    []xml.Attr
	text     strings.Builder
	children []*element
}

func decode(data []byte) (*element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var root *element
	var stack []*element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, syntaxErr(err)
		}

		switch tok := tok.(type) {
		case xml.StartElement:
			el := &element{tag: tok.Name.Local, attrs: tok.Copy().Attr}
			if len(stack) == 0 {
				if root != nil {
					return nil, gverrors.NewParseError("xml", nil, "multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(tok)
			}
		}
	}

	if root == nil {
		return nil, gverrors.NewParseError("xml", nil, "document has no root element")
	}
	return root, nil
}

func syntaxErr(err error) error {
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return &gverrors.ParseError{
			Format: "xml", Line: se.Line,
			Message: "invalid XML", Cause: errors.New(se.Msg),
		}
	}
	return gverrors.NewParseError("xml", err, "invalid XML")
}

// builder converts the raw element tree into the generic value model,
// indexing id declarations and remembering unresolved ref placeholders.
type builder struct {
	ids  map[string]*value.Mapping
	refs map[*value.Mapping]string
}

func (b *builder) mapping(el *element) *value.Mapping {
	m := &value.Mapping{Name: el.tag}

	isRef := false
	for _, a := range el.attrs {
		m.Attrs = append(m.Attrs, value.Field{Key: a.Name.Local, Val: value.String(a.Value)})
		switch a.Name.Local {
		case idAttr:
			b.ids[a.Value] = m
		case refAttr:
			isRef = true
		}
	}

	text := strings.TrimSpace(el.text.String())
	if text != "" {
		m.Attrs = append(m.Attrs, value.Field{Key: graph.AttrValue, Val: value.String(text)})
	}

	for _, child := range el.children {
		m.Entries = append(m.Entries, value.Entry{Key: child.tag, Val: b.mapping(child)})
	}

	// A bare ref element stands for its target; one with content of its
	// own is a regular element that happens to carry a ref attribute.
	if isRef && len(el.children) == 0 && text == "" {
		for _, a := range el.attrs {
			if a.Name.Local == refAttr {
				b.refs[m] = a.Value
			}
		}
	}
	return m
}

// resolve replaces every ref placeholder slot with its target instance.
// Substituted targets are not descended into again; each mapping of the
// original tree is visited once, keeping the pass linear even when the
// substitution introduces cycles.
func (b *builder) resolve(m *value.Mapping) error {
	for i, e := range m.Entries {
		child, ok := e.Val.(*value.Mapping)
		if !ok {
			continue
		}
		if refID, isRef := b.refs[child]; isRef {
			target, ok := b.ids[refID]
			if !ok {
				return gverrors.NewParseError("xml", nil, "ref to unknown id %q", refID)
			}
			m.Entries[i].Val = target
			continue
		}
		if err := b.resolve(child); err != nil {
			return err
		}
	}
	return nil
}

// Ensure DataSource implements the plugin contract.
var _ source.DataSource = (*DataSource)(nil)
