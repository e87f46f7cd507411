package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/awerner3/mathscribe/internal/config"
	"github.com/awerner3/mathscribe/internal/pipeline"
	"github.com/awerner3/mathscribe/internal/store"
	"github.com/awerner3/mathscribe/internal/transcribe"
)

// Server is the HTTP API server for mathscribe.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	vlm          *transcribe.Client
	artifacts    *store.Store
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, vlm *transcribe.Client, artifacts *store.Store, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		vlm:          vlm,
		artifacts:    artifacts,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/transcriptions", s.handleSubmit)
		r.Get("/api/transcriptions/{jobID}/status", s.handleStatus)
		r.Get("/api/transcriptions/{jobID}/transcript", s.handleTranscript)
		r.Get("/api/transcriptions/{jobID}/outline", s.handleOutline)
		r.Get("/api/transcriptions/{jobID}/tex", s.handleTeX)
		r.Get("/api/transcriptions/{jobID}/pdf", s.handlePDF)
		r.Get("/api/stats/vlm", s.handleVLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
