// Package solver adapts the domain's Solver port to the HiGHS mixed-integer
// backend via gohighs. The adapter translates a built planning model into the
// matrix form HiGHS expects, runs one synchronous solve, and maps the backend
// status onto the domain status enum.
package solver

import (
	"context"
	"fmt"

	highs "github.com/bartolsthoorn/gohighs/highs"
	"github.com/wastenot/solver/internal/domain/planning"
	"github.com/wastenot/solver/internal/infrastructure/config"
	"go.uber.org/zap"
)

// HiGHSSolver implements planning.Solver on top of the HiGHS branch-and-bound
// solver. It is stateless: every Solve builds a fresh backend instance.
type HiGHSSolver struct {
	cfg    config.SolverConfig
	logger *zap.Logger
}

// NewHiGHSSolver creates a solver adapter with the given options.
func NewHiGHSSolver(cfg config.SolverConfig, logger *zap.Logger) *HiGHSSolver {
	return &HiGHSSolver{
		cfg:    cfg,
		logger: logger.Named("highs"),
	}
}

// Solve submits the model and reads back per-variable binary values plus a
// status. Binary decision variables are expressed as integer columns bounded
// to [0,1]. A backend failure is returned as an error and is fatal for the
// request; infeasibility comes back through the status instead.
func (s *HiGHSSolver) Solve(ctx context.Context, m *planning.Model) (*planning.Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := m.NumVars()
	model := &highs.Model{
		Maximize: true,
		ColCosts: m.Objective,
		ColLower: make([]float64, n),
		ColUpper: make([]float64, n),
		VarTypes: make([]highs.VariableType, n),
	}
	for i := 0; i < n; i++ {
		model.ColUpper[i] = 1
		model.VarTypes[i] = highs.Integer
	}

	for _, c := range m.Constraints {
		model.AddSparseRow(c.Lower, c.Cols, c.Coeffs, c.Upper)
	}

	opts := []highs.SolveOption{
		highs.WithOutput(s.cfg.LogOutput),
		highs.WithThreads(s.cfg.Threads),
	}
	if s.cfg.TimeLimit > 0 {
		opts = append(opts, highs.WithTimeLimit(s.cfg.TimeLimit.Seconds()))
	}
	if s.cfg.MIPRelGap > 0 {
		opts = append(opts, highs.WithMIPRelGap(s.cfg.MIPRelGap))
	}

	sol, err := model.Solve(opts...)
	if err != nil {
		return nil, fmt.Errorf("highs solve: %w", err)
	}

	status := mapStatus(sol.Status, len(sol.ColValues) > 0)
	s.logger.Debug("Solve finished",
		zap.Int("vars", n),
		zap.Int("constraints", len(m.Constraints)),
		zap.String("status", status.String()),
	)

	values := sol.ColValues
	if !status.Solved() {
		values = nil
	}
	return &planning.Solution{
		Status:    status,
		Values:    values,
		Objective: sol.Objective,
	}, nil
}

// mapStatus converts a HiGHS model status to the domain status. A solve cut
// short by a time or iteration limit still counts as Feasible when an
// incumbent assignment exists; without one it is reported as infeasible for
// this attempt so the relaxation ladder can move on.
func mapStatus(s highs.ModelStatus, hasValues bool) planning.Status {
	switch s {
	case highs.ModelStatusOptimal:
		return planning.StatusOptimal
	case highs.ModelStatusInfeasible:
		return planning.StatusInfeasible
	case highs.ModelStatusUnbounded:
		return planning.StatusUnbounded
	case highs.ModelStatusUnboundedOrInfeasible:
		return planning.StatusInfeasible
	case highs.ModelStatusTimeLimit, highs.ModelStatusIterationLimit:
		if hasValues {
			return planning.StatusFeasible
		}
		return planning.StatusInfeasible
	default:
		return planning.StatusError
	}
}
