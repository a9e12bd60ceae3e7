package models

// FoodItem is a single food inside a meal, with a household-measure quantity.
type FoodItem struct {
	Item     string `json:"item"`
	Quantity string `json:"quantity"`
	Calories int    `json:"calories"`
}

// Meal is one meal slot of the day. Meals keep generation order because the
// plan is chronological.
type Meal struct {
	Name     string     `json:"name"`
	Time     string     `json:"time"`
	Calories int        `json:"calories"`
	Foods    []FoodItem `json:"foods"`
}

// MealPlan is the structured plan produced by the planner model.
type MealPlan struct {
	TotalCalories int            `json:"totalCalories"`
	Macros        MacroBreakdown `json:"macros"`
	Meals         []Meal         `json:"meals"`
	Notes         string         `json:"notes,omitempty"`
}

// MealCalorieSum adds up the per-meal calories. The total is generative
// output, so it only approximates TotalCalories; callers compare the two to
// flag large deviations.
func (p MealPlan) MealCalorieSum() int {
	sum := 0
	for _, m := range p.Meals {
		sum += m.Calories
	}
	return sum
}
