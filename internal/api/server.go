// Package api provides the HTTP API server and handlers for the setup viewer.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/accsetupsviewer/server/internal/http/response"
	"github.com/accsetupsviewer/server/internal/store"
)

// Options configures the HTTP surface.
type Options struct {
	Version     string
	CORSOrigins []string

	// Auth endpoints allow AuthRate requests per AuthInterval per client IP.
	AuthRate     int
	AuthInterval time.Duration
	AuthBurst    int
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		Version:      "dev",
		CORSOrigins:  []string{"*"},
		AuthRate:     20,
		AuthInterval: time.Minute,
		AuthBurst:    10,
	}
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           store.Store
	services        *Services
	router          *chi.Mux
	api             huma.API
	logger          *slog.Logger
	authRateLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.AuthRate <= 0 || opts.AuthInterval <= 0 {
		defaults := DefaultOptions()
		opts.AuthRate, opts.AuthInterval, opts.AuthBurst = defaults.AuthRate, defaults.AuthInterval, defaults.AuthBurst
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(authMiddleware(services.Auth))

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "route not found", logger)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.MethodNotAllowed(w, "method not allowed", logger)
	})

	s := &Server{
		store:           st,
		services:        services,
		router:          router,
		api:             humachi.New(router, NewHumaConfig(opts.Version)),
		logger:          logger,
		authRateLimiter: NewRateLimiter(opts.AuthRate, opts.AuthInterval, opts.AuthBurst),
	}
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerCatalogRoutes()
	s.registerSetupRoutes()
	s.registerAuthRoutes()
	s.registerProfileRoutes()
	s.registerDashboardRoutes()

	return s
}

// NewHumaConfig returns the huma configuration shared by the server and its tests.
func NewHumaConfig(version string) huma.Config {
	cfg := huma.DefaultConfig("ACC Setups Viewer API", version)
	cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	cfg.Transformers = append(cfg.Transformers, EnvelopeTransformer)
	return cfg
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mainly for OpenAPI generation.
func (s *Server) API() huma.API {
	return s.api
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	s.authRateLimiter.Stop()
}

var bearerSecurity = []map[string][]string{{"bearer": {}}}
