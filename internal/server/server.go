package server

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dcruz/phasegen/internal/config"
	"github.com/dcruz/phasegen/internal/store"
)

// Server holds the API's collaborators. The mapping tables are the only
// mutable state (PUT /api/config swaps them); everything handed to the
// generation core is a snapshot taken under the read lock.
type Server struct {
	log        *slog.Logger
	store      *store.Store
	configPath string

	mu     sync.RWMutex
	tables config.Tables
}

// New creates a server backed by the given store, loading the mapping
// tables from configPath (defaults apply when the file does not exist).
func New(log *slog.Logger, st *store.Store, configPath string) (*Server, error) {
	tables, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return &Server{
		log:        log,
		store:      st,
		configPath: configPath,
		tables:     tables,
	}, nil
}

// Tables returns a snapshot of the current mapping tables.
func (s *Server) Tables() config.Tables {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tables
}

// Router builds the API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", s.handleHealth)
		r.Get("/config", s.handleGetConfig)
		r.Put("/config", s.handleUpdateConfig)
		r.Get("/phases", s.handleListPhases)
		r.Post("/generate", s.handleGenerate)
		r.Post("/generate/preview", s.handlePreview)
	})

	return r
}

// requestLogger tags each request with an id and logs method, path, and
// duration on completion.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			"id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}
