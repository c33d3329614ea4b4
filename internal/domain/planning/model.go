package planning

import "context"

// Status is the terminal outcome of a solve attempt. Optimal certifies a
// global optimum, Feasible only certifies constraint satisfaction under a
// bounded search; both are acceptable results.
type Status int

const (
	StatusOptimal Status = iota
	StatusFeasible
	StatusInfeasible
	StatusUnbounded
	StatusError
)

// String returns the wire representation of the status.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "Optimal"
	case StatusFeasible:
		return "Feasible"
	case StatusInfeasible:
		return "Infeasible"
	case StatusUnbounded:
		return "Unbounded"
	default:
		return "Error"
	}
}

// Solved reports whether the status carries a usable variable assignment.
func (s Status) Solved() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// Constraint is one named linear inequality Lower <= sum(Coeffs*x[Cols]) <= Upper
// over the model's binary variables. Equalities use Lower == Upper.
type Constraint struct {
	Name   string
	Cols   []int
	Coeffs []float64
	Lower  float64
	Upper  float64
}

// Model is one binary-assignment optimization instance. It is built fresh per
// solve attempt from the immutable request inputs and shares no state with
// other attempts or requests.
type Model struct {
	Days      int
	Meals     []string
	Recipes   []Recipe
	Inventory Inventory

	// Objective holds one coefficient per variable; the solver maximizes
	// the weighted sum.
	Objective []float64

	Constraints []Constraint

	// Warnings collects non-fatal issues found while building, such as a
	// malformed expiry value whose cutoff constraint was skipped.
	Warnings []string

	Profile ConstraintProfile
}

// NumVars returns the number of binary decision variables, one per
// (day, meal, recipe) triple.
func (m *Model) NumVars() int {
	return m.Days * len(m.Meals) * len(m.Recipes)
}

// VarIndex returns the column index of the variable meaning "recipe r fills
// meal slot (day d, meal mi)".
func (m *Model) VarIndex(d, mi, r int) int {
	return (d*len(m.Meals)+mi)*len(m.Recipes) + r
}

// Solution carries the solver's status and, when Solved, a value for every
// variable in the model.
type Solution struct {
	Status    Status
	Values    []float64
	Objective float64
}

// Solver is the contract of the external mixed-integer backend. A solve is a
// single bounded synchronous call; an error return means the solver itself
// failed and aborts the whole request, while infeasibility is reported
// through the solution status.
type Solver interface {
	Solve(ctx context.Context, m *Model) (*Solution, error)
}
