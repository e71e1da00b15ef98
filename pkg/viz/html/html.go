// Package html renders a graph as a standalone HTML page.
//
// Nodes come out as cards carrying their attributes, edges as a
// separate listing. The page is self-contained (inline CSS, no
// scripts) so it can be written to disk and opened directly.
package html

import (
	"bytes"
	"html/template"

	gverrors "github.com/NikolaOgnjenovic/Graph-visualizer/pkg/errors"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/graph"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/viz"
)

// Visualizer renders graphs as HTML documents.
type Visualizer struct {
	tmpl *template.Template
}

// New returns the HTML visualizer.
func New() *Visualizer {
	return &Visualizer{tmpl: template.Must(template.New("graph").Parse(page))}
}

var _ viz.Visualizer = (*Visualizer)(nil)

func (*Visualizer) Name() string        { return "Simple HTML" }
func (*Visualizer) ID() string          { return "html" }
func (*Visualizer) ContentType() string { return "text/html; charset=utf-8" }

func (v *Visualizer) Render(g *graph.Graph) ([]byte, error) {
	var buf bytes.Buffer
	data := pageData{
		Nodes: g.Nodes(),
		Edges: g.Edges(),
	}
	if err := v.tmpl.Execute(&buf, data); err != nil {
		return nil, gverrors.Wrap(gverrors.ErrCodeInternal, err, "render html")
	}
	return buf.Bytes(), nil
}

type pageData struct {
	Nodes []graph.Node
	Edges []graph.Edge
}

const page = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Graph</title>
<style>
body { font-family: sans-serif; margin: 2em; }
.node { border: 1px solid #888; border-radius: 6px; padding: 0.5em 1em; margin: 0.5em 0; }
.node .id { color: #888; font-size: 0.8em; }
.attr { margin-left: 1em; color: #444; }
.edge { margin: 0.2em 0; }
.edge .label { color: #888; }
</style>
</head>
<body>
<h1>Graph</h1>
<h2>Nodes ({{len .Nodes}})</h2>
{{range .Nodes}}<div class="node">
  <span class="id">n{{.ID}}</span> <strong>{{.Label}}</strong>
  {{range .Attrs}}<div class="attr">{{.Key}} = {{.Val}}</div>
  {{end}}</div>
{{end}}
<h2>Edges ({{len .Edges}})</h2>
{{range .Edges}}<div class="edge">n{{.From}} &rarr; n{{.To}}{{if .Label}} <span class="label">({{.Label}})</span>{{end}}</div>
{{end}}
</body>
</html>
`
