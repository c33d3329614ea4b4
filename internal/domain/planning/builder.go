package planning

const (
	// slotFillBonus dwarfs any plausible scaled recipe value, so the solver
	// fills every slot it can before optimizing expiry urgency among the
	// filled ones.
	slotFillBonus = 10000.0

	// valueScale keeps expiry urgency competitive as a tie-breaker within a
	// day's priority tier without ever overturning slot-fill or day-order
	// priority. The three magnitude tiers (slot bonus, day-priority spread,
	// expiry value) must keep this relative ordering; changing the ratios
	// changes which slots get filled first under scarcity.
	valueScale = 100.0
)

// Build constructs one optimization instance from the immutable request
// inputs. Inputs are pre-validated by the boundary: inventory, recipes and
// meals are non-empty and days is in [1,7] (or a reduced horizon chosen by
// the relaxation controller).
func Build(inv Inventory, recipes []Recipe, days int, meals []string, profile ConstraintProfile) *Model {
	m := &Model{
		Days:      days,
		Meals:     meals,
		Recipes:   recipes,
		Inventory: inv,
		Profile:   profile,
	}

	m.buildObjective()

	if profile.Exclusivity {
		m.addExclusivity()
	}
	if profile.NoDuplicatePerDay {
		m.addNoDuplicatePerDay()
	}
	if profile.Capacity {
		m.addCapacity()
	}
	if profile.ExpiryCutoff {
		m.addExpiryCutoff()
	}
	if profile.AntiRepetition {
		m.addAntiRepetition()
	}

	return m
}

// buildObjective assigns every variable the weight
//
//	recipeValue*100 + 10000*(days-d+1)^2
//
// Earlier days get a quadratically larger slot bonus, so under scarcity the
// solver fills day 0 before day days-1.
func (m *Model) buildObjective() {
	m.Objective = make([]float64, m.NumVars())

	// Recipe values do not depend on the slot; compute them once.
	values := make([]float64, len(m.Recipes))
	for r, recipe := range m.Recipes {
		values[r] = recipe.Value(m.Inventory) * valueScale
	}

	for d := 0; d < m.Days; d++ {
		dayPriority := float64((m.Days - d + 1) * (m.Days - d + 1))
		slotBonus := slotFillBonus * dayPriority
		for mi := range m.Meals {
			for r := range m.Recipes {
				m.Objective[m.VarIndex(d, mi, r)] = values[r] + slotBonus
			}
		}
	}
}
