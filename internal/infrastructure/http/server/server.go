// Package server provides the JSON API HTTP server for the solver service
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/wastenot/solver/internal/infrastructure/config"
	"github.com/wastenot/solver/internal/infrastructure/http/handlers"
	"github.com/wastenot/solver/internal/infrastructure/http/middleware"
	"github.com/wastenot/solver/internal/infrastructure/monitoring"
	"github.com/wastenot/solver/internal/ports/inbound"
	"go.uber.org/zap"
)

// Server is the HTTP boundary of the solver: request parsing, validation and
// JSON shaping live here, the optimization core stays behind the planner port.
type Server struct {
	config   *config.Config
	logger   *zap.Logger
	server   *http.Server
	router   *chi.Mux
	handlers *handlers.PlanHandlers
	metrics  *monitoring.MetricsCollector
	gatherer prometheus.Gatherer
}

// NewServer creates a new HTTP server instance.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	planner inbound.PlannerService,
	metrics *monitoring.MetricsCollector,
	gatherer prometheus.Gatherer,
) *Server {
	s := &Server{
		config:   cfg,
		logger:   logger,
		handlers: handlers.NewPlanHandlers(planner, logger),
		metrics:  metrics,
		gatherer: gatherer,
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// setupRoutes configures the JSON API routes.
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger, s.metrics))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	if s.config.Server.EnableCORS {
		r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	}
	r.Use(chimiddleware.Timeout(s.config.Server.RequestTimeout))
	r.Use(middleware.JSONOnly())

	// Liveness probe, independent of the core
	r.Get(s.config.Monitoring.HealthPath, s.handlers.HealthCheck)

	if s.config.Monitoring.EnableMetrics {
		r.Method(http.MethodGet, s.config.Monitoring.MetricsPath, monitoring.Handler(s.gatherer))
	}

	// The historic frontend calls POST /solve directly; the versioned path
	// is the documented one.
	r.Post("/solve", s.handlers.SolvePlan)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/solve", s.handlers.SolvePlan)
	})

	return r
}

// Start begins listening for requests.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Router exposes the underlying handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
