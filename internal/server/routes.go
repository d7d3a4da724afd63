package server

import (
	"encoding/json"
	"net/http"
)

// registerRoutes sets up routes served by the server itself rather than an
// endpoint.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /ready", s.handleReady)
}

// ReadyResponse is the response for the readiness endpoint.
type ReadyResponse struct {
	Status   string `json:"status"`
	Sessions string `json:"sessions,omitempty"`
}

// handleReady returns readiness status. The session store is created before
// the listener starts, so an initialized store means requests can be served.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	resp := ReadyResponse{Status: "ok", Sessions: "ok"}

	if s.sessions == nil {
		resp.Status = "degraded"
		resp.Sessions = "not_initialized"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
