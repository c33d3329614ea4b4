package planning

import (
	"fmt"
	"math"
)

// ConstraintProfile selects which constraint families a built model carries.
// Families are independent; each derives purely from the request inputs.
type ConstraintProfile struct {
	Exclusivity       bool
	NoDuplicatePerDay bool
	Capacity          bool
	ExpiryCutoff      bool
	AntiRepetition    bool
}

// FullProfile enables every constraint family.
func FullProfile() ConstraintProfile {
	return ConstraintProfile{
		Exclusivity:       true,
		NoDuplicatePerDay: true,
		Capacity:          true,
		ExpiryCutoff:      true,
		AntiRepetition:    true,
	}
}

// RelaxedProfile is FullProfile without anti-repetition. Inventory capacity
// and expiry cutoffs are hard constraints and are never relaxed.
func RelaxedProfile() ConstraintProfile {
	p := FullProfile()
	p.AntiRepetition = false
	return p
}

// addExclusivity emits, for every meal slot, sum over recipes <= 1. Slots may
// stay empty when inventory runs out; the slot-fill bonus in the objective
// fills them whenever the constraints allow it.
func (m *Model) addExclusivity() {
	for d := 0; d < m.Days; d++ {
		for mi, meal := range m.Meals {
			cols := make([]int, len(m.Recipes))
			coeffs := make([]float64, len(m.Recipes))
			for r := range m.Recipes {
				cols[r] = m.VarIndex(d, mi, r)
				coeffs[r] = 1
			}
			m.Constraints = append(m.Constraints, Constraint{
				Name:   fmt.Sprintf("AtMostOneRecipePerMeal_%d_%s", d, meal),
				Cols:   cols,
				Coeffs: coeffs,
				Lower:  math.Inf(-1),
				Upper:  1,
			})
		}
	}
}

// addNoDuplicatePerDay emits, for every (day, recipe), sum over meal types
// <= 1, so one recipe never occupies two slots of the same day.
func (m *Model) addNoDuplicatePerDay() {
	for d := 0; d < m.Days; d++ {
		for r, recipe := range m.Recipes {
			cols := make([]int, len(m.Meals))
			coeffs := make([]float64, len(m.Meals))
			for mi := range m.Meals {
				cols[mi] = m.VarIndex(d, mi, r)
				coeffs[mi] = 1
			}
			m.Constraints = append(m.Constraints, Constraint{
				Name:   fmt.Sprintf("NoDuplicateRecipe_%d_%d", d, recipe.ID),
				Cols:   cols,
				Coeffs: coeffs,
				Lower:  math.Inf(-1),
				Upper:  1,
			})
		}
	}
}

// addCapacity emits, for every inventory item, total consumption across all
// slots <= available quantity. Recipe ingredients that name no inventory item
// are ignored here and everywhere else.
func (m *Model) addCapacity() {
	for name, item := range m.Inventory {
		var cols []int
		var coeffs []float64
		for d := 0; d < m.Days; d++ {
			for mi := range m.Meals {
				for r, recipe := range m.Recipes {
					amount, ok := recipe.Ingredients[name]
					if !ok || amount == 0 {
						continue
					}
					cols = append(cols, m.VarIndex(d, mi, r))
					coeffs = append(coeffs, amount)
				}
			}
		}
		m.Constraints = append(m.Constraints, Constraint{
			Name:   fmt.Sprintf("InventoryLimit_%s", name),
			Cols:   cols,
			Coeffs: coeffs,
			Lower:  math.Inf(-1),
			Upper:  item.Quantity,
		})
	}
}

// addExpiryCutoff forces to zero every variable that would consume an item on
// or after its expiry day. An already-expired item (cutoff <= 0) is banned on
// all days. A malformed cutoff disables the family for that one item with a
// warning; solving continues.
func (m *Model) addExpiryCutoff() {
	for name, item := range m.Inventory {
		if item.DaysUntilExpiry == nil {
			continue
		}
		cutoff, ok := roundCutoff(*item.DaysUntilExpiry)
		if !ok {
			m.Warnings = append(m.Warnings, fmt.Sprintf(
				"invalid daysUntilExpiry %v for %q: expiry cutoff skipped", *item.DaysUntilExpiry, name))
			continue
		}
		firstBanned := cutoff
		if firstBanned < 0 {
			firstBanned = 0
		}
		if firstBanned >= m.Days {
			continue
		}
		for d := firstBanned; d < m.Days; d++ {
			for mi, meal := range m.Meals {
				for r, recipe := range m.Recipes {
					if _, uses := recipe.Ingredients[name]; !uses {
						continue
					}
					m.Constraints = append(m.Constraints, Constraint{
						Name:   fmt.Sprintf("ExpiredItem_%s_Day%d_Meal%s_Recipe%d", name, d, meal, recipe.ID),
						Cols:   []int{m.VarIndex(d, mi, r)},
						Coeffs: []float64{1},
						Lower:  0,
						Upper:  0,
					})
				}
			}
		}
	}
}

// addAntiRepetition emits, for every (meal type, recipe, consecutive day
// pair), x(d) + x(d+1) <= 1. The scope is deliberately narrow: only the same
// recipe for the same meal type on consecutive days is forbidden. Reuse on
// non-consecutive days, or across different meal types, is allowed (the
// same-day case is covered separately by NoDuplicatePerDay).
func (m *Model) addAntiRepetition() {
	for d := 0; d < m.Days-1; d++ {
		for mi, meal := range m.Meals {
			for r, recipe := range m.Recipes {
				m.Constraints = append(m.Constraints, Constraint{
					Name:   fmt.Sprintf("NoConsecutive_%d_%s_%d", d, meal, recipe.ID),
					Cols:   []int{m.VarIndex(d, mi, r), m.VarIndex(d+1, mi, r)},
					Coeffs: []float64{1, 1},
					Lower:  math.Inf(-1),
					Upper:  1,
				})
			}
		}
	}
}

// roundCutoff rounds a raw expiry value to whole days. It reports false for
// values with no meaningful rounding (NaN, ±Inf); callers treat those as
// "no cutoff" rather than failing the request.
func roundCutoff(raw float64) (int, bool) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, false
	}
	return int(math.Round(raw)), true
}
