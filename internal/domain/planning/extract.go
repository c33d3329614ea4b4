package planning

import "fmt"

// selectionTolerance guards against MIP backends reporting binaries as
// 0.9999…; any value above it counts as selected.
const selectionTolerance = 0.5

// Extract reconstructs the human-facing schedule from a solved model. For
// each day, meal types are visited in caller order and the first recipe (in
// recipe list order) whose variable is selected fills the slot. Exclusivity
// guarantees at most one selected recipe per slot; on a degenerate numeric
// tie the first match wins, which is the documented tie-break. Days with no
// assigned meals are dropped from the output.
func Extract(m *Model, sol *Solution) Schedule {
	var schedule Schedule
	for d := 0; d < m.Days; d++ {
		var dayMeals []MealAssignment
		for mi, meal := range m.Meals {
			for r, recipe := range m.Recipes {
				if sol.Values[m.VarIndex(d, mi, r)] > selectionTolerance {
					dayMeals = append(dayMeals, MealAssignment{Type: meal, RecipeID: recipe.ID})
					break
				}
			}
		}
		if len(dayMeals) > 0 {
			schedule = append(schedule, DayPlan{
				Day:   fmt.Sprintf("Day %d", d+1),
				Meals: dayMeals,
			})
		}
	}
	return schedule
}
