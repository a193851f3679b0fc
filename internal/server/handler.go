// Package server exposes a read-only HTTP view of a running simulation.
// External renderers poll it for world snapshots; nothing here mutates
// simulation state.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"

	"sunswarm/internal/model"
)

// Provider supplies consistent snapshots of the live simulation.
type Provider interface {
	WorldState() model.WorldState
	EpochReports() []model.EpochReport
}

// Handler serves the JSON API.
type Handler struct {
	logger   hclog.Logger
	provider Provider
}

// NewHandler wires a provider into the API handler.
func NewHandler(provider Provider, logger hclog.Logger) *Handler {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Handler{logger: logger, provider: provider}
}

// Router builds the route table.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/state", h.handleState).Methods(http.MethodGet)
	api.HandleFunc("/nodes", h.handleNodes).Methods(http.MethodGet)
	api.HandleFunc("/nodes/{id}", h.handleNode).Methods(http.MethodGet)
	api.HandleFunc("/reports", h.handleReports).Methods(http.MethodGet)
	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleState(w http.ResponseWriter, _ *http.Request) {
	state := h.provider.WorldState()
	// The full node list has its own endpoint; the state endpoint stays
	// small enough to poll every frame.
	state.Nodes = nil
	h.writeJSON(w, http.StatusOK, state)
}

func (h *Handler) handleNodes(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.provider.WorldState().Nodes)
}

func (h *Handler) handleNode(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	for _, n := range h.provider.WorldState().Nodes {
		if n.ID == id {
			h.writeJSON(w, http.StatusOK, n)
			return
		}
	}
	h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "node not found", "id": id})
}

func (h *Handler) handleReports(w http.ResponseWriter, _ *http.Request) {
	reports := h.provider.EpochReports()
	if reports == nil {
		reports = []model.EpochReport{}
	}
	h.writeJSON(w, http.StatusOK, reports)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("writing response", "error", err)
	}
}
