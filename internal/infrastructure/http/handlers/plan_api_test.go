package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wastenot/solver/internal/domain/planning"
	"github.com/wastenot/solver/internal/ports/inbound"
	apperrors "github.com/wastenot/solver/pkg/errors"
)

type stubPlanner struct {
	result *planning.Result
	err    error
	got    inbound.SolvePlanCommand
}

func (s *stubPlanner) SolvePlan(_ context.Context, cmd inbound.SolvePlanCommand) (*planning.Result, error) {
	s.got = cmd
	return s.result, s.err
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"inventory": map[string]interface{}{
			"eggs": map[string]interface{}{"qty": 4.0, "expiryWeight": 5.0},
		},
		"recipes": []map[string]interface{}{
			{"id": 0, "title": "Omelet", "ingredients": map[string]float64{"eggs": 2}},
		},
		"days":  2,
		"meals": []string{"Breakfast"},
	}
}

func postSolve(t *testing.T, h *PlanHandlers, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/solve", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.SolvePlan(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) SolveResponse {
	t.Helper()
	var resp SolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSolvePlanOK(t *testing.T) {
	planner := &stubPlanner{result: &planning.Result{
		Status: planning.StatusOptimal,
		Schedule: planning.Schedule{
			{Day: "Day 1", Meals: []planning.MealAssignment{{Type: "Breakfast", RecipeID: 0}}},
		},
		EffectiveDays: 2,
	}}
	h := NewPlanHandlers(planner, zap.NewNop())

	rec := postSolve(t, h, validBody())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decodeResponse(t, rec)
	assert.Equal(t, "Optimal", resp.Status)
	assert.Empty(t, resp.Message)
	require.Len(t, resp.Schedule, 1)
	assert.Equal(t, "Day 1", resp.Schedule[0].Day)
	assert.Equal(t, 0, resp.Schedule[0].Meals[0].RecipeID)

	// Wire defaults reached the command untouched.
	assert.Equal(t, 2, planner.got.Days)
	assert.Equal(t, 5.0, planner.got.Inventory["eggs"].ExpiryWeight)
}

func TestSolvePlanExpiryWeightDefault(t *testing.T) {
	planner := &stubPlanner{result: &planning.Result{Status: planning.StatusOptimal}}
	h := NewPlanHandlers(planner, zap.NewNop())

	body := validBody()
	body["inventory"] = map[string]interface{}{
		"eggs": map[string]interface{}{"qty": 4.0},
	}
	postSolve(t, h, body)

	assert.Equal(t, 1.0, planner.got.Inventory["eggs"].ExpiryWeight)
	assert.Nil(t, planner.got.Inventory["eggs"].DaysUntilExpiry)
}

func TestSolvePlanInfeasible(t *testing.T) {
	planner := &stubPlanner{result: &planning.Result{Status: planning.StatusInfeasible}}
	h := NewPlanHandlers(planner, zap.NewNop())

	rec := postSolve(t, h, validBody())
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "Infeasible", resp.Status)
	assert.Equal(t, "Solver status: Infeasible. No feasible solution found.", resp.Message)
	assert.Nil(t, resp.Schedule)
}

func TestSolvePlanBackendError(t *testing.T) {
	planner := &stubPlanner{err: apperrors.NewSolverError(assert.AnError)}
	h := NewPlanHandlers(planner, zap.NewNop())

	rec := postSolve(t, h, validBody())
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "Error", resp.Status)
	assert.Contains(t, resp.Message, "Server error")
}

func TestSolvePlanBadJSON(t *testing.T) {
	h := NewPlanHandlers(&stubPlanner{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/solve", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.SolvePlan(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "Error", resp.Status)
	assert.Contains(t, resp.Message, "Invalid JSON body")
}

func TestSolvePlanValidation(t *testing.T) {
	mutate := func(f func(body map[string]interface{})) map[string]interface{} {
		body := validBody()
		f(body)
		return body
	}

	tests := []struct {
		name    string
		body    map[string]interface{}
		message string
	}{
		{
			"empty inventory",
			mutate(func(b map[string]interface{}) { b["inventory"] = map[string]interface{}{} }),
			"Invalid or empty inventory. Received 0 items",
		},
		{
			"empty recipes",
			mutate(func(b map[string]interface{}) { b["recipes"] = []map[string]interface{}{} }),
			"Invalid or empty recipes list. Received 0 recipes",
		},
		{
			"empty meals",
			mutate(func(b map[string]interface{}) { b["meals"] = []string{} }),
			"Invalid or empty meals list. Received 0 meals",
		},
		{
			"days too low",
			mutate(func(b map[string]interface{}) { b["days"] = 0 }),
			"Days must be an integer between 1 and 7. Received: 0",
		},
		{
			"days too high",
			mutate(func(b map[string]interface{}) { b["days"] = 8 }),
			"Days must be an integer between 1 and 7. Received: 8",
		},
		{
			"negative quantity",
			mutate(func(b map[string]interface{}) {
				b["inventory"] = map[string]interface{}{
					"eggs": map[string]interface{}{"qty": -1.0},
				}
			}),
			`Invalid inventory item "eggs"`,
		},
		{
			"missing quantity",
			mutate(func(b map[string]interface{}) {
				b["inventory"] = map[string]interface{}{
					"eggs": map[string]interface{}{"expiryWeight": 2.0},
				}
			}),
			`Invalid inventory item "eggs"`,
		},
		{
			"recipe without id",
			mutate(func(b map[string]interface{}) {
				b["recipes"] = []map[string]interface{}{{"title": "Mystery"}}
			}),
			"Invalid recipe at index 0",
		},
		{
			"duplicate recipe id",
			mutate(func(b map[string]interface{}) {
				b["recipes"] = []map[string]interface{}{
					{"id": 7, "title": "A"},
					{"id": 7, "title": "B"},
				}
			}),
			"Duplicate recipe id 7",
		},
		{
			"blank meal type",
			mutate(func(b map[string]interface{}) { b["meals"] = []string{"Breakfast", ""} }),
			"Meal type at index 1 is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planner := &stubPlanner{}
			h := NewPlanHandlers(planner, zap.NewNop())

			rec := postSolve(t, h, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			resp := decodeResponse(t, rec)
			assert.Equal(t, "Error", resp.Status)
			assert.Contains(t, resp.Message, tt.message)
			assert.Nil(t, planner.got.Recipes, "invalid requests must not reach the service")
		})
	}
}

func TestHealthCheck(t *testing.T) {
	h := NewPlanHandlers(&stubPlanner{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.HealthCheck(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "Solver server is running", body["message"])
	assert.Contains(t, body, "timestamp")
}
