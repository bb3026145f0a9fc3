// Package api provides the HTTP server for the guided diagnosis flow.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mkotula/petscope/internal/dashboard"
	"github.com/mkotula/petscope/internal/wizard"
	"github.com/mkotula/petscope/pkg/models"
)

// Requester performs the two sequential oracle exchanges. Implemented by
// oracle.Client; tests substitute a stub.
type Requester interface {
	Diagnose(ctx context.Context, responses map[string]string) (*models.DiagnosisResult, error)
	VeterinaryDetails(ctx context.Context, diagnosis, species, breed string) (*models.VeterinaryDetail, error)
	Configured() bool
}

// Server is the API server.
type Server struct {
	oracle Requester
	store  *wizard.Store
	mux    *http.ServeMux
}

// Config holds API server configuration.
type Config struct {
	Oracle     Requester
	SessionTTL time.Duration
}

// NewServer creates a new API server.
func NewServer(cfg Config) *Server {
	s := &Server{
		oracle: cfg.Oracle,
		store:  wizard.NewStore(cfg.SessionTTL),
		mux:    http.NewServeMux(),
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("GET /api/questions", s.handleListQuestions)
	s.mux.HandleFunc("GET /api/breeds", s.handleListBreeds)

	s.mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	s.mux.HandleFunc("GET /api/sessions/{sessionID}", s.handleGetSession)
	s.mux.HandleFunc("POST /api/sessions/{sessionID}/answers", s.handleSubmitAnswer)
	s.mux.HandleFunc("POST /api/sessions/{sessionID}/reset", s.handleResetSession)
	s.mux.HandleFunc("POST /api/sessions/{sessionID}/diagnose", s.handleSessionDiagnose)

	// Direct endpoints mirroring the upstream service contract.
	s.mux.HandleFunc("POST /api/diagnose", s.handleDiagnose)
	s.mux.HandleFunc("POST /api/veterinary-details", s.handleVeterinaryDetails)

	s.mux.Handle("GET /", dashboard.NewHandler())
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Keep the diagnosis pages out of search indexes.
	w.Header().Set("X-Robots-Tag", "noindex")

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.oracle.Configured() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":       "error",
			"message":      "Service cannot function - no API key configured",
			"missing_keys": []string{"OPENROUTER_API_KEY"},
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "Service is up and running with an oracle API key configured",
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
