// Package container provides dependency injection using Uber FX
package container

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	appplanning "github.com/wastenot/solver/internal/application/planning"
	"github.com/wastenot/solver/internal/domain/planning"
	"github.com/wastenot/solver/internal/infrastructure/config"
	"github.com/wastenot/solver/internal/infrastructure/http/server"
	"github.com/wastenot/solver/internal/infrastructure/monitoring"
	"github.com/wastenot/solver/internal/infrastructure/solver"
	"github.com/wastenot/solver/internal/ports/inbound"
	"github.com/wastenot/solver/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	MonitoringModule,
	SolverModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// MonitoringModule provides the Prometheus registry and collectors
var MonitoringModule = fx.Provide(
	func() *prometheus.Registry {
		return prometheus.NewRegistry()
	},
	func(reg *prometheus.Registry) prometheus.Gatherer {
		return reg
	},
	func(reg *prometheus.Registry) *monitoring.MetricsCollector {
		return monitoring.NewMetricsCollector(reg)
	},
)

// SolverModule provides the HiGHS-backed mixed-integer solver
var SolverModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) planning.Solver {
		return solver.NewHiGHSSolver(cfg.Solver, log)
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	func(s planning.Solver, metrics *monitoring.MetricsCollector, log *zap.Logger) inbound.PlannerService {
		return appplanning.NewPlannerService(s, metrics, log)
	},
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	func(
		cfg *config.Config,
		log *zap.Logger,
		planner inbound.PlannerService,
		metrics *monitoring.MetricsCollector,
		gatherer prometheus.Gatherer,
	) *server.Server {
		return server.NewServer(cfg, log, planner, metrics, gatherer)
	},
)

// LifecycleModule wires server start and graceful shutdown into the fx app
var LifecycleModule = fx.Invoke(
	func(lc fx.Lifecycle, srv *server.Server, log *zap.Logger) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				go func() {
					if err := srv.Start(); err != nil {
						log.Error("HTTP server stopped unexpectedly", zap.Error(err))
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return srv.Shutdown(ctx)
			},
		})
	},
)
