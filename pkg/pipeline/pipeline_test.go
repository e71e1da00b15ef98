package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/cache"
	gverrors "github.com/NikolaOgnjenovic/Graph-visualizer/pkg/errors"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/source"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/source/jsonds"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/viz"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/viz/text"
)

const sampleDoc = `{"name": "demo", "items": [1, 2]}`

func newRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(c, nil,
		[]source.DataSource{jsonds.New()},
		[]viz.Visualizer{text.New()})
}

func TestExecute(t *testing.T) {
	r := newRunner(t)
	defer r.Close()

	res, err := r.Execute(context.Background(), []byte(sampleDoc), Options{Format: "json"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	// object + name scalar + items array + two number scalars
	if res.Stats.NodeCount != 5 || res.Stats.EdgeCount != 4 {
		t.Errorf("stats = %d nodes %d edges", res.Stats.NodeCount, res.Stats.EdgeCount)
	}
	if res.ContentType != "text/plain; charset=utf-8" {
		t.Errorf("content type = %q", res.ContentType)
	}
	if !strings.Contains(string(res.Artifact), "graph: 5 nodes, 4 edges") {
		t.Errorf("artifact = %s", res.Artifact)
	}
	if res.DocHash == "" {
		t.Error("empty document hash")
	}
	if res.CacheInfo.ParseHit || res.CacheInfo.RenderHit {
		t.Error("first run should not hit cache")
	}
}

func TestExecute_CacheHit(t *testing.T) {
	r := newRunner(t)
	defer r.Close()
	ctx := context.Background()

	first, err := r.Execute(ctx, []byte(sampleDoc), Options{Format: "json"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Execute(ctx, []byte(sampleDoc), Options{Format: "json"})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.ParseHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v", second.CacheInfo)
	}
	if string(first.Artifact) != string(second.Artifact) {
		t.Error("cached artifact differs from rendered artifact")
	}
}

func TestExecute_Refresh(t *testing.T) {
	r := newRunner(t)
	defer r.Close()
	ctx := context.Background()

	if _, err := r.Execute(ctx, []byte(sampleDoc), Options{Format: "json"}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, []byte(sampleDoc), Options{Format: "json", Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.ParseHit || res.CacheInfo.RenderHit {
		t.Error("refresh run should bypass cache")
	}
}

func TestExecute_DetectFromPath(t *testing.T) {
	r := newRunner(t)
	defer r.Close()

	res, err := r.Execute(context.Background(), []byte(sampleDoc), Options{Path: "sample.json"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.NodeCount != 5 {
		t.Errorf("nodes = %d", res.Stats.NodeCount)
	}
}

func TestExecute_Errors(t *testing.T) {
	r := newRunner(t)
	defer r.Close()
	ctx := context.Background()

	tests := []struct {
		name string
		data string
		opts Options
		code gverrors.Code
	}{
		{"unknown format", sampleDoc, Options{Format: "yaml"}, gverrors.ErrCodeUnknownFormat},
		{"no format or path", sampleDoc, Options{}, gverrors.ErrCodeInvalidInput},
		{"unknown visualizer", sampleDoc, Options{Format: "json", Visualizer: "hologram"}, gverrors.ErrCodeUnknownViz},
		{"malformed document", `{"a":`, Options{Format: "json"}, gverrors.ErrCodeParse},
		{"node limit", sampleDoc, Options{Format: "json", MaxNodes: 2}, gverrors.ErrCodeTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(ctx, []byte(tt.data), tt.opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if !gverrors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v", gverrors.GetCode(err), tt.code)
			}
		})
	}
}

func TestRender_Standalone(t *testing.T) {
	r := newRunner(t)
	defer r.Close()
	ctx := context.Background()

	g, err := r.Parse(ctx, []byte(sampleDoc), Options{Format: "json"})
	if err != nil {
		t.Fatal(err)
	}
	out, contentType, err := r.Render(ctx, g, "", Options{Format: "json"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if contentType == "" || len(out) == 0 {
		t.Errorf("Render = %q, %q", out, contentType)
	}
}
