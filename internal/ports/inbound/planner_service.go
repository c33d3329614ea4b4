// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"

	"github.com/wastenot/solver/internal/domain/planning"
)

// PlannerService defines the meal-plan optimization use case. This is the
// primary port that HTTP handlers and other driving adapters use.
type PlannerService interface {
	// SolvePlan builds and solves the assignment model for the command's
	// horizon, applying progressive relaxation when the fully-constrained
	// model is infeasible. An error return means the solver backend itself
	// failed; an infeasible plan is a regular result, not an error.
	SolvePlan(ctx context.Context, cmd SolvePlanCommand) (*planning.Result, error)
}

// SolvePlanCommand carries one validated planning request. The boundary has
// already checked that inventory, recipes and meals are non-empty and that
// Days is in [1,7].
type SolvePlanCommand struct {
	Inventory planning.Inventory
	Recipes   []planning.Recipe
	Days      int
	Meals     []string
}
