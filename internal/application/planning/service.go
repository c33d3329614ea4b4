// Package planning provides the application layer for meal-plan solving
// This implements the use case defined in the inbound ports
package planning

import (
	"context"
	"time"

	"github.com/wastenot/solver/internal/domain/planning"
	"github.com/wastenot/solver/internal/infrastructure/monitoring"
	"github.com/wastenot/solver/internal/ports/inbound"
	"github.com/wastenot/solver/pkg/errors"
	"go.uber.org/zap"
)

// PlannerService implements the meal-plan solving use case.
type PlannerService struct {
	controller *planning.Controller
	metrics    *monitoring.MetricsCollector
	logger     *zap.Logger
}

// NewPlannerService creates a new planner service backed by the given solver.
func NewPlannerService(
	solver planning.Solver,
	metrics *monitoring.MetricsCollector,
	logger *zap.Logger,
) inbound.PlannerService {
	return &PlannerService{
		controller: planning.NewController(solver),
		metrics:    metrics,
		logger:     logger.Named("planner-service"),
	}
}

// SolvePlan runs the relaxation controller over the request and records the
// outcome. A solver backend failure is wrapped as a solver error; every other
// outcome, including infeasibility, is a regular result.
func (s *PlannerService) SolvePlan(ctx context.Context, cmd inbound.SolvePlanCommand) (*planning.Result, error) {
	s.logger.Info("Solving meal plan",
		zap.Int("days", cmd.Days),
		zap.Strings("meals", cmd.Meals),
		zap.Int("inventory_items", len(cmd.Inventory)),
		zap.Int("recipes", len(cmd.Recipes)),
	)

	start := time.Now()
	result, err := s.controller.Plan(ctx, cmd.Inventory, cmd.Recipes, cmd.Days, cmd.Meals)
	duration := time.Since(start)

	if err != nil {
		s.metrics.RecordPlan(planning.StatusError.String(), duration)
		s.logger.Error("Solver backend failed", zap.Error(err), zap.Duration("duration", duration))
		return nil, errors.NewSolverError(err)
	}

	s.recordTrace(result)
	s.metrics.RecordPlan(result.Status.String(), duration)

	for _, w := range result.Warnings {
		s.logger.Warn("Model warning", zap.String("warning", w))
	}

	s.logger.Info("Plan solved",
		zap.String("status", result.Status.String()),
		zap.Int("attempts", len(result.Trace)),
		zap.Int("effective_days", result.EffectiveDays),
		zap.Duration("duration", duration),
	)

	return result, nil
}

// recordTrace turns the controller's attempt trace into metrics: one counter
// per solver invocation plus markers for plans that needed relaxation or a
// shrunken horizon.
func (s *PlannerService) recordTrace(result *planning.Result) {
	for _, outcome := range result.Trace {
		s.metrics.RecordSolveAttempt(outcome.Attempt.Label(), outcome.Status.String())
		s.logger.Debug("Solve attempt",
			zap.String("tier", outcome.Attempt.Label()),
			zap.Int("horizon", outcome.Attempt.Horizon),
			zap.String("status", outcome.Status.String()),
		)
	}

	if !result.Status.Solved() {
		return
	}
	if len(result.Trace) > 1 {
		s.metrics.RecordRelaxation()
	}
	if len(result.Trace) > 2 {
		s.metrics.RecordHorizonReduction()
	}
}
