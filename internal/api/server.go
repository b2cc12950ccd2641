// Package api provides the HTTP server and handlers for the podfeed application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/podfeedapp/podfeed-server/internal/config"
	"github.com/podfeedapp/podfeed-server/internal/http/response"
	"github.com/podfeedapp/podfeed-server/internal/ratelimit"
	"github.com/podfeedapp/podfeed-server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	feeds           *service.FeedService
	limiter         *ratelimit.KeyedRateLimiter
	officialWebsite string
	router          *chi.Mux
	logger          *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, feeds *service.FeedService, limiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) *Server {
	s := &Server{
		feeds:           feeds,
		limiter:         limiter,
		officialWebsite: cfg.Server.OfficialWebsite,
		router:          chi.NewRouter(),
		logger:          logger,
	}

	s.setupMiddleware()
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
	s.router.Use(s.canonicalURL)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// Public JSON-free API for feed URL discovery.
	s.router.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet},
		}))
		r.Use(s.rateLimit)

		r.Get("/", s.handleAPIHelp)
		r.Get("/url/", s.handleAPIURLHelp)
		r.Get("/url/{show}", s.handleAPIURL)
		r.Get("/slug/", s.handleAPISlugHelp)
		r.Get("/slug/{name}", s.handleAPISlug)
	})

	// Redirect endpoints embedded in published feeds.
	s.router.Get("/episode/{show}/{episode}", s.handleEpisodeRedirect)
	s.router.Get("/artikkel/{show}/{article}", s.handleArticleRedirect)

	// Feed stylesheet for humans opening feed URLs in browsers.
	s.router.Get("/static/style.xsl", s.handleStylesheet)

	// Homepage and feeds.
	s.router.Get("/", s.handleHomepage)
	s.router.Get("/{show}", s.handleFeed)
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
