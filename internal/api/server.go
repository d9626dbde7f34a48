package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cargohub/cargokb/internal/chat"
	"github.com/cargohub/cargokb/internal/config"
	"github.com/cargohub/cargokb/internal/rag"
	"github.com/cargohub/cargokb/internal/store"
)

// Server is the HTTP API for the cargo support service.
type Server struct {
	router    chi.Router
	chat      *chat.Service
	responder *rag.Responder
	store     *store.Store
	log       *slog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(chatSvc *chat.Service, responder *rag.Responder, st *store.Store, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		chat:      chatSvc,
		responder: responder,
		store:     st,
		log:       log,
		cfg:       cfg,
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

		r.Post("/api/query", s.handleQuery)
		r.Post("/api/chat", s.handleChat)
		r.Get("/api/corpus/stats", s.handleCorpusStats)

		r.Get("/api/cargo/{trackingNumber}", s.handleGetCargo)
		r.Post("/api/cargo/{trackingNumber}/return", s.handleReturnCargo)
		r.Post("/api/cargo/{trackingNumber}/cancel", s.handleCancelCargo)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
