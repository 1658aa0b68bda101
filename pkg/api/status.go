// Package api exposes the supervisor's state over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/psantana5/procwatch/internal/supervisor"
	"github.com/psantana5/procwatch/pkg/hostinfo"
)

// StatusProvider is the read side of the supervisor consumed by the API.
type StatusProvider interface {
	Snapshot() []supervisor.SlotStatus
}

// Server serves /healthz, /api/v1/status, and /metrics.
type Server struct {
	provider  StatusProvider
	metrics   http.Handler
	host      hostinfo.Info
	startTime time.Time
}

// NewServer creates a status server. metrics may be nil to disable the
// /metrics route.
func NewServer(provider StatusProvider, metrics http.Handler, host hostinfo.Info) *Server {
	return &Server{
		provider:  provider,
		metrics:   metrics,
		host:      host,
		startTime: time.Now(),
	}
}

// Router builds the HTTP router.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	router.HandleFunc("/api/v1/status", s.handleStatus).Methods("GET")
	if s.metrics != nil {
		router.Handle("/metrics", s.metrics).Methods("GET")
	}
	return router
}

type statusResponse struct {
	UptimeSeconds int64                   `json:"uptime_seconds"`
	Host          hostinfo.Info           `json:"host"`
	Slots         []supervisor.SlotStatus `json:"slots"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		Host:          s.host,
		Slots:         s.provider.Snapshot(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
