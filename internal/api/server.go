// Package api provides the HTTP API server and handlers for the instructor
// ratings lookup service.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/emilyynorton/NotreDameRMP/internal/search"
	"github.com/emilyynorton/NotreDameRMP/internal/service"
	"github.com/emilyynorton/NotreDameRMP/internal/store"
	"github.com/emilyynorton/NotreDameRMP/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store     *store.Store
	lookups   *service.LookupService
	index     *search.Index
	validator *validation.Validator
	router    *chi.Mux
	api       huma.API
	logger    *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, lookups *service.LookupService, index *search.Index, logger *slog.Logger) *Server {
	s := &Server{
		store:     st,
		lookups:   lookups,
		index:     index,
		validator: validation.New(),
		router:    chi.NewRouter(),
		logger:    logger,
	}

	s.setupMiddleware()

	config := huma.DefaultConfig("NotreDameRMP API", "1.0.0")
	config.Info.Description = "Instructor ratings lookup for Notre Dame class search"
	s.api = humachi.New(s.router, config)

	RegisterErrorHandler()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	// The browser extension calls us from class search pages, so we need
	// permissive CORS on the lookup endpoints.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes registers all API operations.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerLookupRoutes()
	s.registerExtractRoutes()
	s.registerInstructorRoutes()
}
