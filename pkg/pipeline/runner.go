package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/cache"
	gverrors "github.com/NikolaOgnjenovic/Graph-visualizer/pkg/errors"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/graph"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/graphio"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/source"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/viz"
)

// Runner executes the pipeline with caching. It is stateless apart
// from the cache and logger, so one Runner can serve concurrent runs
// with different options.
type Runner struct {
	Cache       cache.Cache
	Logger      *log.Logger
	Sources     []source.DataSource
	Visualizers []viz.Visualizer
}

// NewRunner creates a runner over the given plugin sets.
// A nil cache disables caching; a nil logger discards output.
func NewRunner(c cache.Cache, logger *log.Logger, srcs []source.DataSource, vizs []viz.Visualizer) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = discard()
	}
	return &Runner{Cache: c, Logger: logger, Sources: srcs, Visualizers: vizs}
}

// Execute runs parse then render for one document.
func (r *Runner) Execute(ctx context.Context, data []byte, opts Options) (*Result, error) {
	result := &Result{DocHash: cache.Hash(data)}
	logger := r.logger(opts)

	parseStart := time.Now()
	g, parseHit, err := r.parseCached(ctx, data, result.DocHash, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.CacheInfo.ParseHit = parseHit

	logger.Info("parsed document",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"cached", parseHit,
		"duration", result.Stats.ParseTime)

	renderStart := time.Now()
	artifact, contentType, renderHit, err := r.renderCached(ctx, g, result.DocHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifact = artifact
	result.ContentType = contentType
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered artifact",
		"visualizer", r.vizID(opts),
		"bytes", len(artifact),
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Parse runs only the parse stage.
func (r *Runner) Parse(ctx context.Context, data []byte, opts Options) (*graph.Graph, error) {
	g, _, err := r.parseCached(ctx, data, cache.Hash(data), opts)
	return g, err
}

// Render runs only the render stage over an already-parsed graph.
// docHash scopes the artifact cache; pass an empty string to skip
// caching.
func (r *Runner) Render(ctx context.Context, g *graph.Graph, docHash string, opts Options) ([]byte, string, error) {
	if docHash == "" {
		opts.Refresh = true
	}
	artifact, contentType, _, err := r.renderCached(ctx, g, docHash, opts)
	return artifact, contentType, err
}

func (r *Runner) parseCached(ctx context.Context, data []byte, docHash string, opts Options) (*graph.Graph, bool, error) {
	ds, err := r.resolveSource(opts)
	if err != nil {
		return nil, false, err
	}

	limits := opts.Limits()
	key := "graph:" + ds.Format() + ":" + docHash
	if !opts.Refresh {
		if raw, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if g, err := graphio.ReadJSON(bytes.NewReader(raw)); err == nil && g.NodeCount() <= limits.MaxNodes {
				return g, true, nil
			}
		}
	}

	g, err := ds.Parse(data, source.Options{Limits: limits})
	if err != nil {
		return nil, false, err
	}

	if !opts.Refresh {
		var buf bytes.Buffer
		if err := graphio.WriteJSON(g, &buf); err == nil {
			_ = r.Cache.Set(ctx, key, buf.Bytes(), TTLGraph)
		}
	}
	return g, false, nil
}

func (r *Runner) renderCached(ctx context.Context, g *graph.Graph, docHash string, opts Options) ([]byte, string, bool, error) {
	v, ok := viz.Lookup(r.vizID(opts), r.Visualizers...)
	if !ok {
		return nil, "", false, gverrors.New(gverrors.ErrCodeUnknownViz, "unknown visualizer %q", opts.Visualizer)
	}

	format := opts.Format
	if format == "" {
		if ds, err := r.resolveSource(opts); err == nil {
			format = ds.Format()
		}
	}
	key := cache.ArtifactKey(docHash, format, v.ID())
	if !opts.Refresh {
		if raw, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			return raw, v.ContentType(), true, nil
		}
	}

	artifact, err := v.Render(g)
	if err != nil {
		return nil, "", false, err
	}

	if !opts.Refresh {
		_ = r.Cache.Set(ctx, key, artifact, TTLArtifact)
	}
	return artifact, v.ContentType(), false, nil
}

func (r *Runner) vizID(opts Options) string {
	if opts.Visualizer == "" {
		return DefaultVisualizer
	}
	return opts.Visualizer
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
