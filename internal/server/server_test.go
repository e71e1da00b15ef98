package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/config"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/graphio"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/pipeline"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/source/sources"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/viz/visualizers"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/workspace/memstore"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	runner := pipeline.NewRunner(nil, nil, sources.All, visualizers.All)
	srv := New(runner, memstore.NewStore(), nil, config.Default().Server)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	var e errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	return e
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestListSources(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/sources")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var got []sourceInfo
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d sources", len(got))
	}
	formats := map[string]bool{}
	for _, s := range got {
		if s.Name == "" {
			t.Errorf("source %q has no name", s.Format)
		}
		formats[s.Format] = true
	}
	for _, f := range []string{"json", "xml", "csv"} {
		if !formats[f] {
			t.Errorf("missing format %q", f)
		}
	}
}

func TestListVisualizers(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/visualizers")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var got []visualizerInfo
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 5 {
		t.Errorf("got %d visualizers", len(got))
	}
}

func TestParse(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/api/parse", map[string]any{
		"format":   "json",
		"document": `{"name": "demo", "items": [1, 2]}`,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	g, err := graphio.ReadJSON(resp.Body)
	if err != nil {
		t.Fatalf("decode graph: %v", err)
	}
	if g.NodeCount() != 5 || g.EdgeCount() != 4 {
		t.Errorf("graph = %d nodes %d edges", g.NodeCount(), g.EdgeCount())
	}
}

func TestParse_Errors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{
			name:   "malformed document",
			body:   map[string]any{"format": "json", "document": `{"a":`},
			status: http.StatusBadRequest,
			code:   "DATASOURCE_PARSE",
		},
		{
			name:   "unknown format",
			body:   map[string]any{"format": "yaml", "document": `{}`},
			status: http.StatusBadRequest,
			code:   "UNKNOWN_FORMAT",
		},
		{
			name:   "too large",
			body:   map[string]any{"format": "json", "document": `{"a": 1, "b": 2}`, "max_nodes": 2},
			status: http.StatusRequestEntityTooLarge,
			code:   "GRAPH_TOO_LARGE",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.URL+"/api/parse", tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if e := decodeError(t, resp); e.Code != tt.code {
				t.Errorf("code = %s, want %s", e.Code, tt.code)
			}
		})
	}
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/api/render", map[string]any{
		"format":     "json",
		"visualizer": "dot",
		"document":   `{"a": 1}`,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("content type = %q", ct)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "digraph G {") {
		t.Errorf("body = %s", buf.String())
	}
}

func TestWorkspaceLifecycle(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/workspaces", map[string]any{
		"name":     "demo",
		"format":   "json",
		"document": `{"a": 1}`,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if created.ID == "" {
		t.Fatal("created workspace has no id")
	}

	// list contains it
	listResp, err := http.Get(ts.URL + "/api/workspaces")
	if err != nil {
		t.Fatal(err)
	}
	var list []map[string]any
	if err := json.NewDecoder(listResp.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	listResp.Body.Close()
	if len(list) != 1 {
		t.Fatalf("list has %d workspaces", len(list))
	}

	// render it
	renderResp, err := http.Get(ts.URL + "/api/workspaces/" + created.ID + "/render?visualizer=text")
	if err != nil {
		t.Fatal(err)
	}
	var body bytes.Buffer
	_, _ = body.ReadFrom(renderResp.Body)
	renderResp.Body.Close()
	if renderResp.StatusCode != http.StatusOK {
		t.Fatalf("render status = %d", renderResp.StatusCode)
	}
	if !strings.Contains(body.String(), "nodes:") {
		t.Errorf("render body = %s", body.String())
	}

	// delete it
	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/workspaces/"+created.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", delResp.StatusCode)
	}

	// gone
	getResp, err := http.Get(ts.URL + "/api/workspaces/" + created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if getResp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete = %d", getResp.StatusCode)
	}
	getResp.Body.Close()
}

func TestRenderWorkspace_SearchAndFilter(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/workspaces", map[string]any{
		"name":     "queried",
		"format":   "json",
		"document": `{"name": "demo", "items": [1, 2]}`,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	render := func(t *testing.T, params url.Values) (int, string) {
		t.Helper()
		params.Set("visualizer", "text")
		r, err := http.Get(ts.URL + "/api/workspaces/" + created.ID + "/render?" + params.Encode())
		if err != nil {
			t.Fatal(err)
		}
		var body bytes.Buffer
		_, _ = body.ReadFrom(r.Body)
		r.Body.Close()
		return r.StatusCode, body.String()
	}

	// Only the scalar holding "demo" matches the search term.
	status, body := render(t, url.Values{"search": {"demo"}})
	if status != http.StatusOK {
		t.Fatalf("search render status = %d", status)
	}
	if !strings.Contains(body, "graph: 1 nodes, 0 edges") {
		t.Errorf("search render body = %s", body)
	}

	// Both numeric scalars pass the filter; their edges from the array
	// do not survive, since the array node is dropped.
	status, body = render(t, url.Values{"filter": {"value >= 1"}})
	if status != http.StatusOK {
		t.Fatalf("filter render status = %d", status)
	}
	if !strings.Contains(body, "graph: 2 nodes, 0 edges") {
		t.Errorf("filter render body = %s", body)
	}

	status, _ = render(t, url.Values{"filter": {"?!"}})
	if status != http.StatusBadRequest {
		t.Errorf("bad filter status = %d", status)
	}
}

func TestCreateWorkspace_RejectsBadDocument(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/api/workspaces", map[string]any{
		"name":     "broken",
		"format":   "json",
		"document": `{"a":`,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if e := decodeError(t, resp); e.Code != "DATASOURCE_PARSE" {
		t.Errorf("code = %s", e.Code)
	}
}

func TestCreateWorkspace_RequiresName(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/api/workspaces", map[string]any{
		"format":   "json",
		"document": `{}`,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", resp.StatusCode)
	}
	resp.Body.Close()
}
