// Package query narrows a finished graph by attribute filters or a
// free-text search term.
//
// Both operations return a new induced subgraph: matching nodes keep
// their insertion order under fresh handles, and an edge survives only
// when both of its endpoints do. The input graph is never modified.
package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	gverrors "github.com/NikolaOgnjenovic/Graph-visualizer/pkg/errors"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/graph"
)

// Condition is one attribute comparison of a filter expression.
type Condition struct {
	Attr  string
	Op    string
	Value string
}

func (c Condition) String() string {
	return fmt.Sprintf("%s %s %s", c.Attr, c.Op, c.Value)
}

// condPattern matches one "attr op value" clause. Values may be quoted
// to include whitespace.
var condPattern = regexp.MustCompile(`(\w+)\s*(==|!=|<=|>=|<|>|=)\s*("[^"]+"|'[^']+'|\S+)`)

// ParseConditions parses a filter expression such as
//
//	status == active count >= 2
//
// into its conditions. The single = is accepted as an alias for ==.
// An expression with no valid clause fails with INVALID_INPUT.
func ParseConditions(expr string) ([]Condition, error) {
	matches := condPattern.FindAllStringSubmatch(expr, -1)
	if len(matches) == 0 {
		return nil, gverrors.New(gverrors.ErrCodeInvalidInput, "invalid filter expression %q", expr)
	}

	conds := make([]Condition, 0, len(matches))
	for _, m := range matches {
		attr, op, val := m[1], m[2], m[3]
		if op == "=" {
			op = "=="
		}
		if len(val) >= 2 && (val[0] == '"' || val[0] == '\'') && val[len(val)-1] == val[0] {
			val = val[1 : len(val)-1]
		}
		conds = append(conds, Condition{Attr: attr, Op: op, Value: val})
	}
	return conds, nil
}

// Filter returns the subgraph of nodes satisfying every condition.
// A node missing the named attribute does not satisfy the condition.
func Filter(g *graph.Graph, conds []Condition) *graph.Graph {
	return subgraph(g, func(n graph.Node) bool {
		for _, c := range conds {
			if !Matches(n, c) {
				return false
			}
		}
		return true
	})
}

// Search returns the subgraph of nodes whose label, attribute names, or
// attribute values contain the term, case-insensitively.
func Search(g *graph.Graph, term string) *graph.Graph {
	return subgraph(g, func(n graph.Node) bool {
		return MatchesSearch(n, term)
	})
}

// MatchesSearch reports whether the term occurs in the node's label or
// in any attribute name or value, case-insensitively.
func MatchesSearch(n graph.Node, term string) bool {
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(n.Label), term) {
		return true
	}
	for _, a := range n.Attrs {
		if strings.Contains(strings.ToLower(a.Key), term) {
			return true
		}
		if strings.Contains(strings.ToLower(fmt.Sprintf("%v", a.Val)), term) {
			return true
		}
	}
	return false
}

// Matches reports whether the node satisfies one condition. A numeric
// condition value compares numerically and never matches a non-numeric
// attribute; anything else compares lexically.
func Matches(n graph.Node, c Condition) bool {
	v, ok := n.Attr(c.Attr)
	if !ok {
		return false
	}
	have := fmt.Sprintf("%v", v)

	if wn, err := strconv.ParseFloat(c.Value, 64); err == nil {
		hn, err := strconv.ParseFloat(have, 64)
		if err != nil {
			return false
		}
		return compare(hn, wn, c.Op)
	}
	return compare(have, c.Value, c.Op)
}

func compare[T string | float64](have, want T, op string) bool {
	switch op {
	case "==":
		return have == want
	case "!=":
		return have != want
	case "<":
		return have < want
	case ">":
		return have > want
	case "<=":
		return have <= want
	case ">=":
		return have >= want
	}
	return false
}

func subgraph(g *graph.Graph, keep func(graph.Node) bool) *graph.Graph {
	out := graph.New()
	remap := make(map[graph.NodeID]graph.NodeID)

	for _, n := range g.Nodes() {
		if !keep(n) {
			continue
		}
		// Attrs were validated when the node was first added.
		id, _ := out.AddNode(n.Label, n.Attrs)
		remap[n.ID] = id
	}
	for _, e := range g.Edges() {
		from, okF := remap[e.From]
		to, okT := remap[e.To]
		if okF && okT {
			_ = out.AddEdge(from, to, e.Label)
		}
	}
	if root, ok := remap[g.Root()]; ok {
		out.SetRoot(root)
	}
	return out
}
