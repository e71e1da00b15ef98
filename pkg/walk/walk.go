// Package walk turns a generic value tree into a graph.
//
// The walker decomposes any value.Value into nodes and edges: scalars
// become leaf nodes, composites become inner nodes with one labeled edge
// per child. A reference tracker keyed by composite instance identity
// makes the traversal terminate on cyclic input and collapses shared
// substructures into single nodes with several incoming edges.
//
// Each walk owns its own tracker and graph; concurrent walks share no
// state.
package walk

import (
	"strconv"

	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/errors"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/graph"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/value"
)

// Default resource guards against pathological documents.
const (
	DefaultMaxDepth = 500    // maximum nesting depth
	DefaultMaxNodes = 100000 // maximum nodes per graph
)

// Limits bounds a single walk. Zero values mean the defaults.
type Limits struct {
	MaxDepth int // maximum nesting depth before GRAPH_TOO_LARGE
	MaxNodes int // maximum node count before GRAPH_TOO_LARGE
}

// WithDefaults returns a copy of Limits with zero values replaced by defaults.
func (l Limits) WithDefaults() Limits {
	out := l
	if out.MaxDepth <= 0 {
		out.MaxDepth = DefaultMaxDepth
	}
	if out.MaxNodes <= 0 {
		out.MaxNodes = DefaultMaxNodes
	}
	return out
}

// Graph walks root and returns the resulting graph. It is the one-shot
// convenience wrapper around a single-use Walker.
func Graph(root value.Value, limits Limits) (*graph.Graph, error) {
	return newWalker(limits).walk(root)
}

type walker struct {
	g      *graph.Graph
	seen   *Tracker
	limits Limits
}

func newWalker(limits Limits) *walker {
	return &walker{
		g:      graph.New(),
		seen:   NewTracker(),
		limits: limits.WithDefaults(),
	}
}

func (w *walker) walk(root value.Value) (*graph.Graph, error) {
	id, err := w.visit(root, 0)
	if err != nil {
		return nil, err
	}
	w.g.SetRoot(id)
	return w.g, nil
}

// visit returns the node for v, creating it if this is the first
// encounter of v's identity.
func (w *walker) visit(v value.Value, depth int) (graph.NodeID, error) {
	if depth > w.limits.MaxDepth {
		return 0, errors.New(errors.ErrCodeTooLarge,
			"document nesting exceeds the depth limit of %d", w.limits.MaxDepth)
	}

	switch v := v.(type) {
	case *value.Scalar:
		return w.leaf(v)
	case *value.Sequence:
		if id, ok := w.seen.Lookup(v); ok {
			return id, nil
		}
		return w.sequence(v, depth)
	case *value.Mapping:
		if id, ok := w.seen.Lookup(v); ok {
			return id, nil
		}
		return w.mapping(v, depth)
	}
	// Unreachable while value.Value stays closed.
	return 0, errors.New(errors.ErrCodeMalformedValue, "unsupported value shape %T", v)
}

func (w *walker) leaf(s *value.Scalar) (graph.NodeID, error) {
	var attrs []graph.Attr
	if s == nil || s.Kind == value.KindNull {
		attrs = []graph.Attr{{Key: graph.AttrEmpty, Val: true}}
	} else {
		attrs = []graph.Attr{{Key: graph.AttrValue, Val: s.Go()}}
	}
	return w.addNode(graph.LabelScalar, attrs)
}

// sequence registers the node before descending into the items. The
// pre-registration is what terminates cycles: an item that leads back to
// this sequence resolves through the tracker instead of recursing again.
func (w *walker) sequence(s *value.Sequence, depth int) (graph.NodeID, error) {
	label := s.Name
	if label == "" {
		label = graph.LabelArray
	}
	id, err := w.addNode(label, nil)
	if err != nil {
		return 0, err
	}
	if err := w.seen.Register(s, id); err != nil {
		return 0, err
	}

	for i, item := range s.Items {
		child, err := w.visit(item, depth+1)
		if err != nil {
			return 0, err
		}
		if err := w.g.AddEdge(id, child, strconv.Itoa(i)); err != nil {
			return 0, err
		}
	}
	return id, nil
}

func (w *walker) mapping(m *value.Mapping, depth int) (graph.NodeID, error) {
	label := m.Name
	if label == "" {
		label = graph.LabelObject
	}
	attrs := make([]graph.Attr, 0, len(m.Attrs))
	for _, f := range m.Attrs {
		attrs = append(attrs, graph.Attr{Key: f.Key, Val: f.Val.Go()})
	}
	id, err := w.addNode(label, attrs)
	if err != nil {
		return 0, err
	}
	if err := w.seen.Register(m, id); err != nil {
		return 0, err
	}

	for _, e := range m.Entries {
		child, err := w.visit(e.Val, depth+1)
		if err != nil {
			return 0, err
		}
		if err := w.g.AddEdge(id, child, e.Key); err != nil {
			return 0, err
		}
	}
	return id, nil
}

func (w *walker) addNode(label string, attrs []graph.Attr) (graph.NodeID, error) {
	if w.g.NodeCount() >= w.limits.MaxNodes {
		return 0, errors.New(errors.ErrCodeTooLarge,
			"document exceeds the node limit of %d", w.limits.MaxNodes)
	}
	return w.g.AddNode(label, attrs)
}
