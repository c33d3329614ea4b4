package planning

import (
	"context"
	"fmt"
)

// Attempt is one (constraint-profile, horizon) pair in the relaxation ladder.
type Attempt struct {
	Profile ConstraintProfile
	Horizon int
}

// Label names the attempt for logs and traces.
func (a Attempt) Label() string {
	if a.Profile.AntiRepetition {
		return "full"
	}
	return fmt.Sprintf("relaxed_%dd", a.Horizon)
}

// Attempts returns the full relaxation ladder for the requested horizon, in
// the order they are tried:
//
//  1. every constraint family, full horizon;
//  2. anti-repetition dropped, full horizon;
//  3. anti-repetition dropped, horizon shrunk one day at a time down to 1.
//
// Capacity and expiry constraints are never relaxed; if the ladder is
// exhausted the plan is infeasible by design.
func Attempts(days int) []Attempt {
	attempts := []Attempt{
		{Profile: FullProfile(), Horizon: days},
		{Profile: RelaxedProfile(), Horizon: days},
	}
	for h := days - 1; h >= 1; h-- {
		attempts = append(attempts, Attempt{Profile: RelaxedProfile(), Horizon: h})
	}
	return attempts
}

// AttemptOutcome records the solver status of one ladder step.
type AttemptOutcome struct {
	Attempt Attempt
	Status  Status
}

// Result is the terminal outcome of a planning request.
type Result struct {
	Status   Status
	Schedule Schedule

	// EffectiveDays is the horizon of the attempt that produced the
	// schedule; it is smaller than the requested horizon when the
	// controller had to shrink it.
	EffectiveDays int

	// Trace lists every attempt made and its status, first to last.
	Trace []AttemptOutcome

	// Warnings carries non-fatal model-building issues from the winning
	// attempt, such as skipped expiry cutoffs.
	Warnings []string
}

// Controller walks the relaxation ladder until a solve succeeds. It holds no
// mutable state across calls; every attempt builds a fresh model from the
// immutable inputs.
type Controller struct {
	solver Solver
}

// NewController returns a Controller backed by the given solver.
func NewController(solver Solver) *Controller {
	return &Controller{solver: solver}
}

// Plan runs the ladder and returns the first Optimal/Feasible result, or an
// Infeasible result when every attempt fails. A solver error aborts the whole
// request immediately: the controller retries across infeasibility, never
// across solver failures.
func (c *Controller) Plan(ctx context.Context, inv Inventory, recipes []Recipe, days int, meals []string) (*Result, error) {
	var trace []AttemptOutcome

	for _, attempt := range Attempts(days) {
		m := Build(inv, recipes, attempt.Horizon, meals, attempt.Profile)

		sol, err := c.solver.Solve(ctx, m)
		if err != nil {
			return nil, fmt.Errorf("solve attempt %s: %w", attempt.Label(), err)
		}

		trace = append(trace, AttemptOutcome{Attempt: attempt, Status: sol.Status})
		if !sol.Status.Solved() {
			continue
		}

		return &Result{
			Status:        sol.Status,
			Schedule:      Extract(m, sol),
			EffectiveDays: attempt.Horizon,
			Trace:         trace,
			Warnings:      m.Warnings,
		}, nil
	}

	return &Result{Status: StatusInfeasible, Trace: trace}, nil
}
