package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sunswarm/internal/model"
)

type stubProvider struct {
	state   model.WorldState
	reports []model.EpochReport
}

func (p *stubProvider) WorldState() model.WorldState      { return p.state }
func (p *stubProvider) EpochReports() []model.EpochReport { return p.reports }

func testProvider() *stubProvider {
	return &stubProvider{
		state: model.WorldState{
			RunID:     "run-1",
			Epoch:     3,
			HourOfDay: 12.5,
			Alive:     2,
			Nodes: []model.NodeState{
				{ID: "node-e3-i0", Status: "alive", BatteryWh: 8.8},
				{ID: "node-e3-i1", Status: "dead"},
			},
		},
		reports: []model.EpochReport{{Epoch: 2, Survivors: 40}},
	}
}

func get(t *testing.T, p Provider, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	NewHandler(p, nil).Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, testProvider(), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandleStateOmitsNodeList(t *testing.T) {
	rec := get(t, testProvider(), "/api/v1/state")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	var state model.WorldState
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if state.RunID != "run-1" || state.Epoch != 3 || state.Alive != 2 {
		t.Fatalf("state = %+v", state)
	}
	if len(state.Nodes) != 0 {
		t.Fatalf("state endpoint leaked %d nodes", len(state.Nodes))
	}
}

func TestHandleNodes(t *testing.T) {
	rec := get(t, testProvider(), "/api/v1/nodes")
	var nodes []model.NodeState
	if err := json.Unmarshal(rec.Body.Bytes(), &nodes); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(nodes) != 2 || nodes[0].ID != "node-e3-i0" {
		t.Fatalf("nodes = %+v", nodes)
	}
}

func TestHandleNodeByID(t *testing.T) {
	rec := get(t, testProvider(), "/api/v1/nodes/node-e3-i1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var node model.NodeState
	if err := json.Unmarshal(rec.Body.Bytes(), &node); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if node.ID != "node-e3-i1" || node.Status != "dead" {
		t.Fatalf("node = %+v", node)
	}

	if rec := get(t, testProvider(), "/api/v1/nodes/missing"); rec.Code != http.StatusNotFound {
		t.Fatalf("missing node status = %d, want 404", rec.Code)
	}
}

func TestHandleReports(t *testing.T) {
	rec := get(t, testProvider(), "/api/v1/reports")
	var reports []model.EpochReport
	if err := json.Unmarshal(rec.Body.Bytes(), &reports); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(reports) != 1 || reports[0].Epoch != 2 {
		t.Fatalf("reports = %+v", reports)
	}

	empty := &stubProvider{}
	rec = get(t, empty, "/api/v1/reports")
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("empty reports body = %q, want []", body)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/state", nil)
	NewHandler(testProvider(), nil).Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST status = %d, want 405", rec.Code)
	}
}
