// Package graph provides the canonical node/edge model produced by
// datasource plugins and consumed by visualizer plugins.
//
// A Graph is a directed multigraph: self-loops, parallel edges, and cycles
// are all permitted. Nodes and edges live in graph-owned arenas and are
// addressed by integer handles, so cyclic structures never need reference
// counting or manual cycle breaking. Iteration order is insertion order,
// which makes output reproducible for identical input.
//
// A Graph is built during a single parse and is not safe for concurrent
// mutation. Once the parse returns it, the graph is treated as immutable.
package graph

import (
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/errors"
)

// Common node labels emitted by the structural walker.
const (
	LabelScalar = "scalar"
	LabelArray  = "array"
	LabelObject = "object"
)

// Attribute keys used on scalar leaf nodes.
const (
	AttrValue = "value" // the scalar's value
	AttrEmpty = "empty" // marker for null/absent values
)

// NodeID is an opaque handle into a graph's node arena.
// IDs are only meaningful within the graph that issued them.
type NodeID int

// Attr is one ordered name/value attribute of a node.
// Value is restricted to scalars: string, bool, nil, or one of the
// numeric kinds accepted by AddNode.
type Attr struct {
	Key string `json:"key"`
	Val any    `json:"val"`
}

// Node is a vertex of the graph. Label is a type tag such as "object",
// "array", or "scalar" (datasources may use richer labels, e.g. XML tags).
// Attrs preserve the order in which attributes were attached.
type Node struct {
	ID    NodeID `json:"id"`
	Label string `json:"label"`
	Attrs []Attr `json:"attrs,omitempty"`
}

// Attr returns the value of the named attribute and whether it exists.
func (n Node) Attr(key string) (any, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return nil, false
}

// Edge is a directed connection between two nodes. Label disambiguates
// multiple edges leaving the same source (field name or array index);
// it may be empty.
type Edge struct {
	From  NodeID `json:"from"`
	To    NodeID `json:"to"`
	Label string `json:"label,omitempty"`
}

// Graph is the set of nodes and edges produced from one parse.
// The zero value is not usable - use New.
type Graph struct {
	nodes []Node
	edges []Edge
	in    []int // per-node incoming edge count
	out   []int // per-node outgoing edge count
	root  NodeID
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{root: -1}
}

// scalarAttr reports whether v is a value the graph can store as a node
// attribute. Composites must become their own nodes, never attributes.
func scalarAttr(v any) bool {
	switch v.(type) {
	case nil, string, bool, int, int64, float64:
		return true
	}
	return false
}

// AddNode creates a new uniquely-identified node and returns its handle.
// Attribute values must be scalars; anything else fails with a
// MALFORMED_VALUE error and the node is not added.
func (g *Graph) AddNode(label string, attrs []Attr) (NodeID, error) {
	for _, a := range attrs {
		if !scalarAttr(a.Val) {
			return 0, errors.New(errors.ErrCodeMalformedValue,
				"attribute %q of node %q holds a non-scalar %T", a.Key, label, a.Val)
		}
	}
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, Node{ID: id, Label: label, Attrs: attrs})
	g.in = append(g.in, 0)
	g.out = append(g.out, 0)
	if g.root < 0 {
		g.root = id
	}
	return id, nil
}

// AddEdge appends a directed edge. Both endpoints must have been returned
// by AddNode on this graph; an unknown endpoint fails with an
// UNKNOWN_NODE error, which callers should treat as a programming error
// rather than a recoverable condition.
func (g *Graph) AddEdge(from, to NodeID, label string) error {
	if !g.has(from) {
		return errors.New(errors.ErrCodeUnknownNode, "edge source %d does not exist", from)
	}
	if !g.has(to) {
		return errors.New(errors.ErrCodeUnknownNode, "edge target %d does not exist", to)
	}
	g.edges = append(g.edges, Edge{From: from, To: to, Label: label})
	g.out[from]++
	g.in[to]++
	return nil
}

func (g *Graph) has(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// Node returns the node with the given handle and true, or a zero Node
// and false if the handle was never issued by this graph.
func (g *Graph) Node(id NodeID) (Node, bool) {
	if !g.has(id) {
		return Node{}, false
	}
	return g.nodes[id], true
}

// Nodes returns all nodes in insertion order.
// The returned slice is the graph's own storage; treat it as read-only.
func (g *Graph) Nodes() []Node { return g.nodes }

// Edges returns all edges in insertion order.
// The returned slice is the graph's own storage; treat it as read-only.
func (g *Graph) Edges() []Edge { return g.edges }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// InDegree returns the number of incoming edges of the node.
// Returns 0 for unknown handles.
func (g *Graph) InDegree(id NodeID) int {
	if !g.has(id) {
		return 0
	}
	return g.in[id]
}

// OutDegree returns the number of outgoing edges of the node.
// Returns 0 for unknown handles.
func (g *Graph) OutDegree(id NodeID) int {
	if !g.has(id) {
		return 0
	}
	return g.out[id]
}

// SetRoot designates the entry node of the graph.
func (g *Graph) SetRoot(id NodeID) {
	if g.has(id) {
		g.root = id
	}
}

// Root returns the designated entry node. For a graph built by the
// structural walker this is the node of the document's root value.
// Returns -1 for an empty graph.
func (g *Graph) Root() NodeID { return g.root }

// Children returns the targets of all edges leaving the node, in edge
// insertion order.
func (g *Graph) Children(id NodeID) []NodeID {
	if !g.has(id) || g.out[id] == 0 {
		return nil
	}
	out := make([]NodeID, 0, g.out[id])
	for _, e := range g.edges {
		if e.From == id {
			out = append(out, e.To)
		}
	}
	return out
}

// Sources returns the handles of all nodes with no incoming edges, in
// insertion order. For a well-formed single-document parse this is
// exactly the root.
func (g *Graph) Sources() []NodeID {
	var out []NodeID
	for i := range g.nodes {
		if g.in[i] == 0 {
			out = append(out, NodeID(i))
		}
	}
	return out
}
