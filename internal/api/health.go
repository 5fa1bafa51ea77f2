package api

import (
	"net/http"

	"github.com/carelink/care-coordination/internal/coordination"
)

type HealthHandler struct {
	store   *coordination.Store
	env     string
	version string
}

func NewHealthHandler(store *coordination.Store, env, version string) *HealthHandler {
	return &HealthHandler{
		store:   store,
		env:     env,
		version: version,
	}
}

type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Env     string `json:"env,omitempty"`
}

type ReadinessResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version,omitempty"`
	Env          string `json:"env,omitempty"`
	LiveSessions int    `json:"live_sessions"`
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	resp := LivenessResponse{
		Status:  "ok",
		Version: h.version,
		Env:     h.env,
	}
	writeJSON(w, http.StatusOK, resp)
}

// Readiness has no external dependencies to probe; state lives in process
// memory, so ready means the store is wired up.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	resp := ReadinessResponse{
		Status:       "ok",
		Version:      h.version,
		Env:          h.env,
		LiveSessions: h.store.Count(),
	}
	writeJSON(w, http.StatusOK, resp)
}
