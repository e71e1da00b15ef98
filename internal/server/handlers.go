package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	gverrors "github.com/NikolaOgnjenovic/Graph-visualizer/pkg/errors"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/graph/query"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/graphio"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/pipeline"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/workspace"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type sourceInfo struct {
	Name   string `json:"name"`
	Format string `json:"format"`
}

func (s *Server) handleListSources(w http.ResponseWriter, r *http.Request) {
	out := make([]sourceInfo, len(s.runner.Sources))
	for i, ds := range s.runner.Sources {
		out[i] = sourceInfo{Name: ds.Name(), Format: ds.Format()}
	}
	writeJSON(w, http.StatusOK, out)
}

type visualizerInfo struct {
	Name        string `json:"name"`
	ID          string `json:"id"`
	ContentType string `json:"content_type"`
}

func (s *Server) handleListVisualizers(w http.ResponseWriter, r *http.Request) {
	out := make([]visualizerInfo, len(s.runner.Visualizers))
	for i, v := range s.runner.Visualizers {
		out[i] = visualizerInfo{Name: v.Name(), ID: v.ID(), ContentType: v.ContentType()}
	}
	writeJSON(w, http.StatusOK, out)
}

// parseRequest is the body of /api/parse and /api/render.
type parseRequest struct {
	pipeline.Options
	Document string `json:"document"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, gverrors.Wrap(gverrors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	g, err := s.runner.Parse(r.Context(), []byte(req.Document), req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = graphio.WriteJSON(g, w)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, gverrors.Wrap(gverrors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	res, err := s.runner.Execute(r.Context(), []byte(req.Document), req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", res.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifact)
}

type createWorkspaceRequest struct {
	Name     string `json:"name"`
	Format   string `json:"format"`
	Document string `json:"document"`
}

func (s *Server) handleCreateWorkspace(w http.ResponseWriter, r *http.Request) {
	var req createWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, gverrors.Wrap(gverrors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if req.Name == "" || req.Format == "" {
		s.writeError(w, gverrors.New(gverrors.ErrCodeInvalidInput, "name and format are required"))
		return
	}

	// Reject documents the pipeline cannot parse before storing them.
	if _, err := s.runner.Parse(r.Context(), []byte(req.Document), pipeline.Options{Format: req.Format}); err != nil {
		s.writeError(w, err)
		return
	}

	ws := workspace.New(req.Name, req.Format, []byte(req.Document))
	if err := s.store.Put(r.Context(), ws); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ws)
}

func (s *Server) handleListWorkspaces(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if list == nil {
		list = []*workspace.Workspace{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetWorkspace(w http.ResponseWriter, r *http.Request) {
	ws, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

func (s *Server) handleDeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRenderWorkspace(w http.ResponseWriter, r *http.Request) {
	ws, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	q := r.URL.Query()
	opts := pipeline.Options{
		Format:     ws.Format,
		Visualizer: q.Get("visualizer"),
	}

	// A plain render goes through the cached pipeline. With a search or
	// filter the graph is narrowed first and rendered uncached, since
	// the artifact no longer corresponds to the stored document.
	search, filter := q.Get("search"), q.Get("filter")
	if search == "" && filter == "" {
		res, err := s.runner.Execute(r.Context(), ws.Document, opts)
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", res.ContentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.Artifact)
		return
	}

	g, err := s.runner.Parse(r.Context(), ws.Document, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if search != "" {
		g = query.Search(g, search)
	}
	if filter != "" {
		conds, err := query.ParseConditions(filter)
		if err != nil {
			s.writeError(w, err)
			return
		}
		g = query.Filter(g, conds)
	}

	artifact, contentType, err := s.runner.Render(r.Context(), g, "", opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := gverrors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: string(code)})
}

func statusFor(code gverrors.Code) int {
	switch code {
	case gverrors.ErrCodeParse, gverrors.ErrCodeMalformedValue,
		gverrors.ErrCodeInvalidInput, gverrors.ErrCodeUnknownFormat,
		gverrors.ErrCodeUnknownViz:
		return http.StatusBadRequest
	case gverrors.ErrCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case gverrors.ErrCodeNotFound, gverrors.ErrCodeFileNotFound,
		gverrors.ErrCodeWorkspaceNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, `{"error":"encode response","code":"INTERNAL"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
