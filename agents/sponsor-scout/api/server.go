package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"sponsor-scout/agents/sponsor-scout/transcript"
	"sponsor-scout/internal/models"
	"sponsor-scout/shared/monitoring"
)

// PitchService is the part of the agent the HTTP layer needs.
type PitchService interface {
	GeneratePitch(ctx context.Context, urls []string, opts transcript.Options) (*models.PitchReport, error)
	Monitor() *monitoring.Monitor
}

// Server exposes the pitch pipeline over HTTP for the serve mode.
type Server struct {
	service PitchService
	router  *mux.Router
}

type pitchRequest struct {
	URLs       []string `json:"urls"`
	UseCookies bool     `json:"use_cookies"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewServer(service PitchService) *Server {
	s := &Server{
		service: service,
		router:  mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/api/pitch", s.handlePitch).Methods("POST")
	s.router.HandleFunc("/health", monitoring.HealthHandler(s.service.Monitor())).Methods("GET")
	s.router.HandleFunc("/status", monitoring.StatusHandler(s.service.Monitor())).Methods("GET")
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe blocks until the context is cancelled, then drains with a
// short grace period.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on port %d", port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handlePitch(w http.ResponseWriter, r *http.Request) {
	var req pitchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if len(req.URLs) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "at least one video URL is required"})
		return
	}

	report, err := s.service.GeneratePitch(r.Context(), req.URLs, transcript.Options{UseCookies: req.UseCookies})
	if err != nil {
		log.Printf("Pitch request failed: %v", err)
		status := http.StatusBadGateway
		if report != nil && report.Failed == len(report.Videos) {
			// Every video failed; nothing upstream to blame beyond the inputs
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
