// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wastenot/solver/internal/domain/planning"
	"github.com/wastenot/solver/internal/ports/inbound"
	apperrors "github.com/wastenot/solver/pkg/errors"
	"go.uber.org/zap"
)

// PlanHandlers handles meal-plan API requests.
type PlanHandlers struct {
	planner  inbound.PlannerService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewPlanHandlers creates a new plan handlers instance.
func NewPlanHandlers(planner inbound.PlannerService, logger *zap.Logger) *PlanHandlers {
	return &PlanHandlers{
		planner:  planner,
		validate: validator.New(),
		logger:   logger.Named("plan-api"),
	}
}

// InventoryItemRequest is one inventory entry on the wire. ExpiryWeight
// defaults to 1.0 when absent; DaysUntilExpiry absent means the item never
// expires within the horizon.
type InventoryItemRequest struct {
	Qty             *float64 `json:"qty" validate:"required,gte=0"`
	ExpiryWeight    *float64 `json:"expiryWeight" validate:"omitempty,gte=0"`
	DaysUntilExpiry *float64 `json:"daysUntilExpiry"`
}

// RecipeRequest is one catalog entry on the wire. Ingredients may be empty;
// such recipes compete purely on the slot-fill bonus.
type RecipeRequest struct {
	ID          *int               `json:"id" validate:"required"`
	Title       string             `json:"title"`
	Ingredients map[string]float64 `json:"ingredients"`
}

// SolveRequest is the planning request body.
type SolveRequest struct {
	Inventory map[string]InventoryItemRequest `json:"inventory"`
	Recipes   []RecipeRequest                 `json:"recipes"`
	Days      int                             `json:"days"`
	Meals     []string                        `json:"meals"`
}

// SolveResponse is the planning response body. Message and Schedule are
// mutually exclusive: solved plans carry a schedule, failures a message.
type SolveResponse struct {
	Status   string            `json:"status"`
	Message  string            `json:"message,omitempty"`
	Schedule planning.Schedule `json:"schedule,omitempty"`
}

// SolvePlan handles POST /api/v1/solve.
func (h *PlanHandlers) SolvePlan(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid JSON body: %v", err))
		return
	}

	if msg := h.validateRequest(&req); msg != "" {
		h.writeError(w, http.StatusBadRequest, msg)
		return
	}

	result, err := h.planner.SolvePlan(r.Context(), toCommand(&req))
	if err != nil {
		h.logger.Error("Solve failed", zap.Error(err))
		status := http.StatusInternalServerError
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			status = appErr.StatusCode()
		}
		h.writeError(w, status, fmt.Sprintf("Server error: %v", err))
		return
	}

	if !result.Status.Solved() {
		h.writeJSON(w, http.StatusBadRequest, SolveResponse{
			Status:  result.Status.String(),
			Message: fmt.Sprintf("Solver status: %s. No feasible solution found.", result.Status),
		})
		return
	}

	h.writeJSON(w, http.StatusOK, SolveResponse{
		Status:   result.Status.String(),
		Schedule: result.Schedule,
	})
}

// HealthCheck handles GET /health. It is a static liveness probe,
// independent of the solver backend.
func (h *PlanHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"message":   "Solver server is running",
		"timestamp": time.Now().Unix(),
	})
}

// validateRequest enforces the boundary contract the core relies on:
// non-empty inventory, recipes and meals, and a horizon in [1,7]. Messages
// stay descriptive so callers can fix their payloads without guesswork.
func (h *PlanHandlers) validateRequest(req *SolveRequest) string {
	if len(req.Inventory) == 0 {
		return fmt.Sprintf("Invalid or empty inventory. Received %d items", len(req.Inventory))
	}
	if len(req.Recipes) == 0 {
		return fmt.Sprintf("Invalid or empty recipes list. Received %d recipes", len(req.Recipes))
	}
	if len(req.Meals) == 0 {
		return fmt.Sprintf("Invalid or empty meals list. Received %d meals", len(req.Meals))
	}
	if req.Days < 1 || req.Days > 7 {
		return fmt.Sprintf("Days must be an integer between 1 and 7. Received: %d", req.Days)
	}

	for name, item := range req.Inventory {
		if err := h.validate.Struct(item); err != nil {
			return fmt.Sprintf("Invalid inventory item %q: %v", name, err)
		}
	}
	seen := make(map[int]bool, len(req.Recipes))
	for i, recipe := range req.Recipes {
		if err := h.validate.Struct(recipe); err != nil {
			return fmt.Sprintf("Invalid recipe at index %d: %v", i, err)
		}
		if seen[*recipe.ID] {
			return fmt.Sprintf("Duplicate recipe id %d", *recipe.ID)
		}
		seen[*recipe.ID] = true
	}
	for i, meal := range req.Meals {
		if meal == "" {
			return fmt.Sprintf("Meal type at index %d is empty", i)
		}
	}
	return ""
}

// toCommand converts the wire request into the domain command, applying wire
// defaults (expiry weight 1.0).
func toCommand(req *SolveRequest) inbound.SolvePlanCommand {
	inv := make(planning.Inventory, len(req.Inventory))
	for name, item := range req.Inventory {
		weight := 1.0
		if item.ExpiryWeight != nil {
			weight = *item.ExpiryWeight
		}
		inv[name] = planning.InventoryItem{
			Quantity:        *item.Qty,
			ExpiryWeight:    weight,
			DaysUntilExpiry: item.DaysUntilExpiry,
		}
	}

	recipes := make([]planning.Recipe, len(req.Recipes))
	for i, r := range req.Recipes {
		recipes[i] = planning.Recipe{
			ID:          *r.ID,
			Title:       r.Title,
			Ingredients: r.Ingredients,
		}
	}

	return inbound.SolvePlanCommand{
		Inventory: inv,
		Recipes:   recipes,
		Days:      req.Days,
		Meals:     req.Meals,
	}
}

func (h *PlanHandlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, SolveResponse{Status: planning.StatusError.String(), Message: message})
}

func (h *PlanHandlers) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
