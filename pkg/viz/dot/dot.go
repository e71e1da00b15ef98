// Package dot renders graphs in Graphviz DOT format and, through the
// embedded Graphviz engine, as SVG and PNG images.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	gverrors "github.com/NikolaOgnjenovic/Graph-visualizer/pkg/errors"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/graph"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/viz"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes node ids and all attributes in node labels.
	// When false, only the label and the value attribute are shown.
	Detailed bool
}

// ToDOT converts a graph to Graphviz DOT. The resulting string can be
// rendered with [RenderSVG] or [RenderPNG]. Parallel edges and
// self-loops come out as distinct DOT edges, which Graphviz handles
// natively.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if e.Label != "" {
			fmt.Fprintf(&buf, "  n%d -> n%d [label=%q];\n", e.From, e.To, e.Label)
		} else {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", e.From, e.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n graph.Node, detailed bool) string {
	if !detailed {
		if v, ok := n.Attr(graph.AttrValue); ok {
			return fmt.Sprintf("%v", v)
		}
		return n.Label
	}

	parts := []string{fmt.Sprintf("%s (n%d)", n.Label, n.ID)}
	for _, a := range n.Attrs {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Key, a.Val))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n graph.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if _, empty := n.Attr(graph.AttrEmpty); empty {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using the embedded Graphviz
// engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using the embedded Graphviz
// engine.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, gverrors.Wrap(gverrors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, gverrors.Wrap(gverrors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, gverrors.Wrap(gverrors.ErrCodeInternal, err, "render graph")
	}
	return buf.Bytes(), nil
}

// Visualizer renders graphs as DOT text.
type Visualizer struct {
	opts Options
}

// New returns the DOT text visualizer.
func New() *Visualizer { return &Visualizer{} }

var _ viz.Visualizer = (*Visualizer)(nil)

func (*Visualizer) Name() string        { return "Graphviz DOT" }
func (*Visualizer) ID() string          { return "dot" }
func (*Visualizer) ContentType() string { return "text/vnd.graphviz" }

func (v *Visualizer) Render(g *graph.Graph) ([]byte, error) {
	return []byte(ToDOT(g, v.opts)), nil
}

// SVGVisualizer renders graphs as SVG images via Graphviz layout.
type SVGVisualizer struct {
	opts Options
}

// NewSVG returns the SVG visualizer.
func NewSVG() *SVGVisualizer { return &SVGVisualizer{} }

var _ viz.Visualizer = (*SVGVisualizer)(nil)

func (*SVGVisualizer) Name() string        { return "Graphviz SVG" }
func (*SVGVisualizer) ID() string          { return "svg" }
func (*SVGVisualizer) ContentType() string { return "image/svg+xml" }

func (v *SVGVisualizer) Render(g *graph.Graph) ([]byte, error) {
	return RenderSVG(context.Background(), ToDOT(g, v.opts))
}

// PNGVisualizer renders graphs as PNG images via Graphviz layout.
type PNGVisualizer struct {
	opts Options
}

// NewPNG returns the PNG visualizer.
func NewPNG() *PNGVisualizer { return &PNGVisualizer{} }

var _ viz.Visualizer = (*PNGVisualizer)(nil)

func (*PNGVisualizer) Name() string        { return "Graphviz PNG" }
func (*PNGVisualizer) ID() string          { return "png" }
func (*PNGVisualizer) ContentType() string { return "image/png" }

func (v *PNGVisualizer) Render(g *graph.Graph) ([]byte, error) {
	return RenderPNG(context.Background(), ToDOT(g, v.opts))
}
