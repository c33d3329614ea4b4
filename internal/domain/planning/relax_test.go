package planning

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSolver replays a fixed status sequence and records every model it
// was handed, so tests can inspect the exact relaxation ladder.
type scriptedSolver struct {
	statuses []Status
	models   []*Model
	errAt    int // 1-based call index that fails; 0 = never
}

func (s *scriptedSolver) Solve(_ context.Context, m *Model) (*Solution, error) {
	s.models = append(s.models, m)
	call := len(s.models)
	if s.errAt != 0 && call == s.errAt {
		return nil, errors.New("solver backend unavailable")
	}
	status := s.statuses[call-1]
	sol := &Solution{Status: status}
	if status.Solved() {
		sol.Values = make([]float64, m.NumVars())
	}
	return sol, nil
}

func TestAttemptsLadder(t *testing.T) {
	attempts := Attempts(3)

	require.Len(t, attempts, 4)

	assert.True(t, attempts[0].Profile.AntiRepetition)
	assert.Equal(t, 3, attempts[0].Horizon)
	assert.Equal(t, "full", attempts[0].Label())

	for i, a := range attempts[1:] {
		assert.False(t, a.Profile.AntiRepetition)
		assert.Equal(t, 3-i, a.Horizon)
		// Capacity and expiry are never relaxed.
		assert.True(t, a.Profile.Capacity)
		assert.True(t, a.Profile.ExpiryCutoff)
		assert.True(t, a.Profile.Exclusivity)
		assert.True(t, a.Profile.NoDuplicatePerDay)
	}

	assert.Len(t, Attempts(1), 2, "a one-day horizon still tries full then relaxed")
}

func TestPlanFullModelWins(t *testing.T) {
	solver := &scriptedSolver{statuses: []Status{StatusOptimal}}
	c := NewController(solver)

	result, err := c.Plan(context.Background(), testInventory(), testRecipes(), 3, []string{"Breakfast"})
	require.NoError(t, err)

	assert.Equal(t, StatusOptimal, result.Status)
	assert.Equal(t, 3, result.EffectiveDays)
	require.Len(t, result.Trace, 1)
	assert.Equal(t, "full", result.Trace[0].Attempt.Label())

	require.Len(t, solver.models, 1)
	assert.Greater(t, countPrefix(solver.models[0], "NoConsecutive_"), 0)
}

func TestPlanRelaxesAntiRepetition(t *testing.T) {
	solver := &scriptedSolver{statuses: []Status{StatusInfeasible, StatusFeasible}}
	c := NewController(solver)

	result, err := c.Plan(context.Background(), testInventory(), testRecipes(), 3, []string{"Breakfast"})
	require.NoError(t, err)

	assert.Equal(t, StatusFeasible, result.Status)
	assert.Equal(t, 3, result.EffectiveDays, "horizon untouched at the relaxed tier")

	require.Len(t, solver.models, 2)
	assert.Zero(t, countPrefix(solver.models[1], "NoConsecutive_"))
	// Everything else survives relaxation.
	assert.Greater(t, countPrefix(solver.models[1], "InventoryLimit_"), 0)
	assert.Greater(t, countPrefix(solver.models[1], "AtMostOneRecipePerMeal_"), 0)

	require.Len(t, result.Trace, 2)
	assert.Equal(t, StatusInfeasible, result.Trace[0].Status)
	assert.Equal(t, StatusFeasible, result.Trace[1].Status)
}

func TestPlanShrinksHorizon(t *testing.T) {
	// full(3), relaxed(3) and relaxed(2) fail; relaxed(1) succeeds.
	solver := &scriptedSolver{statuses: []Status{StatusInfeasible, StatusInfeasible, StatusInfeasible, StatusOptimal}}
	c := NewController(solver)

	result, err := c.Plan(context.Background(), testInventory(), testRecipes(), 3, []string{"Breakfast"})
	require.NoError(t, err)

	assert.Equal(t, StatusOptimal, result.Status)
	assert.Equal(t, 1, result.EffectiveDays)

	require.Len(t, solver.models, 4)
	assert.Equal(t, []int{3, 3, 2, 1}, []int{
		solver.models[0].Days, solver.models[1].Days, solver.models[2].Days, solver.models[3].Days,
	})

	// The reduced model's objective is recomputed against its own horizon:
	// day 0 of a 1-day model carries bonus 10000*(1-0+1)^2.
	reduced := solver.models[3]
	assert.InDelta(t, 10000*4, reduced.Objective[reduced.VarIndex(0, 0, 2)], 1e-9)
}

func TestPlanExpiryRecomputedPerHorizon(t *testing.T) {
	one := 1.0
	inv := Inventory{"milk": {Quantity: 5, ExpiryWeight: 1, DaysUntilExpiry: &one}}
	recipes := []Recipe{{ID: 0, Ingredients: map[string]float64{"milk": 1}}}

	solver := &scriptedSolver{statuses: []Status{StatusInfeasible, StatusInfeasible, StatusInfeasible, StatusOptimal}}
	c := NewController(solver)

	_, err := c.Plan(context.Background(), inv, recipes, 3, []string{"Breakfast"})
	require.NoError(t, err)

	// 3-day models ban days 1 and 2; the 1-day model has no banned day.
	assert.Equal(t, 2, countPrefix(solver.models[0], "ExpiredItem_"))
	assert.Equal(t, 1, countPrefix(solver.models[2], "ExpiredItem_"))
	assert.Zero(t, countPrefix(solver.models[3], "ExpiredItem_"))
}

func TestPlanExhaustionIsInfeasible(t *testing.T) {
	solver := &scriptedSolver{statuses: []Status{
		StatusInfeasible, StatusInfeasible, StatusInfeasible, StatusInfeasible,
	}}
	c := NewController(solver)

	result, err := c.Plan(context.Background(), testInventory(), testRecipes(), 3, []string{"Breakfast"})
	require.NoError(t, err)

	assert.Equal(t, StatusInfeasible, result.Status)
	assert.Nil(t, result.Schedule)
	assert.Len(t, result.Trace, 4, "every ladder step was tried")
}

// A solver runtime failure aborts immediately: no weaker attempt may mask it.
func TestPlanSolverErrorAborts(t *testing.T) {
	solver := &scriptedSolver{statuses: []Status{StatusInfeasible, StatusInfeasible}, errAt: 2}
	c := NewController(solver)

	result, err := c.Plan(context.Background(), testInventory(), testRecipes(), 3, []string{"Breakfast"})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "relaxed_3d")
	require.Len(t, solver.models, 2, "no further attempts after the failure")
}
