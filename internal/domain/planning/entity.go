// Package planning contains the core domain logic for meal-plan optimization:
// the binary assignment model, its constraint families, the progressive
// relaxation strategy, and schedule extraction from solved models.
package planning

// InventoryItem is a consumable stock entry, keyed by name in an Inventory.
type InventoryItem struct {
	// Quantity is the available stock, consumed by scheduled recipes.
	Quantity float64

	// ExpiryWeight is the urgency multiplier used to bias the objective
	// toward consuming soon-to-expire stock. Callers default it to 1.0.
	ExpiryWeight float64

	// DaysUntilExpiry bounds the last day (exclusive, 0-indexed) on which
	// the item may be consumed. Nil means the item does not expire within
	// the planning horizon. Non-integral values are rounded; values that
	// cannot be rounded (NaN, ±Inf) disable the cutoff with a warning.
	DaysUntilExpiry *float64
}

// Inventory maps item names to their stock entries. It is supplied whole per
// request and is immutable during solving.
type Inventory map[string]InventoryItem

// Recipe is a catalog entry identified by an integer id unique per request.
type Recipe struct {
	ID          int
	Title       string
	Ingredients map[string]float64
}

// Value returns the expiry-urgency value of the recipe against the given
// inventory: the sum of expiryWeight*amount over all ingredients that exist
// in the inventory. Ingredients with no matching inventory entry contribute
// nothing. An empty-ingredient recipe has value zero and competes purely on
// the slot-fill bonus.
func (r Recipe) Value(inv Inventory) float64 {
	var v float64
	for name, amount := range r.Ingredients {
		if item, ok := inv[name]; ok {
			v += item.ExpiryWeight * amount
		}
	}
	return v
}

// MealAssignment pairs a meal type with the recipe scheduled for it.
type MealAssignment struct {
	Type     string `json:"type"`
	RecipeID int    `json:"recipeId"`
}

// DayPlan holds the assignments of a single day. Days with zero assigned
// meals are omitted from the schedule entirely.
type DayPlan struct {
	Day   string           `json:"day"`
	Meals []MealAssignment `json:"meals"`
}

// Schedule is the ordered per-day output of a solved plan.
type Schedule []DayPlan
