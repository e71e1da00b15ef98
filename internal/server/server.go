// Package server exposes the parse and render pipeline over HTTP.
//
// Routes:
//
//	GET    /healthz                     liveness probe
//	GET    /api/sources                 registered datasources
//	GET    /api/visualizers             registered visualizers
//	POST   /api/parse                   parse a document, return the graph
//	POST   /api/render                  parse and render, return the artifact
//	GET    /api/workspaces              list workspaces
//	POST   /api/workspaces              create a workspace
//	GET    /api/workspaces/{id}         fetch a workspace
//	DELETE /api/workspaces/{id}         delete a workspace
//	GET    /api/workspaces/{id}/render  render a workspace document
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/config"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/pipeline"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/workspace"
)

// Server wires the pipeline and workspace store into an HTTP handler.
type Server struct {
	runner *pipeline.Runner
	store  workspace.Store
	logger *log.Logger
	cfg    config.ServerConfig
}

// New creates a server over the given runner and store.
func New(runner *pipeline.Runner, store workspace.Store, logger *log.Logger, cfg config.ServerConfig) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: store, logger: logger, cfg: cfg}
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/sources", s.handleListSources)
		r.Get("/visualizers", s.handleListVisualizers)
		r.Post("/parse", s.handleParse)
		r.Post("/render", s.handleRender)

		r.Route("/workspaces", func(r chi.Router) {
			r.Get("/", s.handleListWorkspaces)
			r.Post("/", s.handleCreateWorkspace)
			r.Get("/{id}", s.handleGetWorkspace)
			r.Delete("/{id}", s.handleDeleteWorkspace)
			r.Get("/{id}/render", s.handleRenderWorkspace)
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.ReadTimeout.Std(),
		WriteTimeout: s.cfg.WriteTimeout.Std(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}
