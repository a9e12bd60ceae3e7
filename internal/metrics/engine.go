// Package metrics derives daily energy and macro targets from a validated
// biometric profile. Everything here is pure computation: no I/O, no model
// calls, reproducible output for identical input.
package metrics

import (
	"fmt"
	"math"

	"github.com/alvesarel/shapeplan/internal/models"
)

// macroSplit is the fixed calorie allocation per goal.
type macroSplit struct {
	protein float64
	carbs   float64
	fat     float64
}

var macroSplits = map[models.Goal]macroSplit{
	models.GoalCutting:     {protein: 0.35, carbs: 0.35, fat: 0.30},
	models.GoalMaintenance: {protein: 0.30, carbs: 0.40, fat: 0.30},
	models.GoalBulking:     {protein: 0.25, carbs: 0.50, fat: 0.25},
}

// BMR estimates basal metabolic rate with the sex-specific linear formula,
// rounded to the nearest kcal.
func BMR(p models.BiometricProfile) int {
	weight := float64(p.Weight)
	height := float64(p.Height)
	age := float64(p.Age)

	var base float64
	if p.Sex == models.SexFemale {
		base = 655 + 9.6*weight + 1.8*height - 4.7*age
	} else {
		base = 66 + 13.7*weight + 5*height - 6.8*age
	}
	return round(base)
}

// TDEE scales BMR by the activity multiplier, rounded to the nearest kcal.
func TDEE(bmr int, level models.ActivityLevel) int {
	factor, ok := level.Multiplier()
	if !ok {
		panic(fmt.Sprintf("metrics: unknown activity level %q", level))
	}
	return round(float64(bmr) * factor)
}

// AdjustForGoal applies the goal multiplier to the maintenance TDEE. The
// result is the daily energy target the rest of the pipeline works from.
func AdjustForGoal(tdee int, goal models.Goal) int {
	switch goal {
	case models.GoalCutting:
		return round(float64(tdee) * 0.85)
	case models.GoalBulking:
		return round(float64(tdee) * 1.15)
	default:
		return tdee
	}
}

// Macros converts the energy target into gram targets using the goal's fixed
// split. Protein and fat round independently; carbs absorb whatever calories
// remain, which keeps the macro-to-calorie round trip within 2 kcal of the
// target instead of letting three independent roundings drift apart.
func Macros(calories int, goal models.Goal) models.MacroBreakdown {
	split, ok := macroSplits[goal]
	if !ok {
		panic(fmt.Sprintf("metrics: unknown goal %q", goal))
	}
	c := float64(calories)
	protein := round(c * split.protein / 4)
	fat := round(c * split.fat / 9)
	carbs := round((c - float64(4*protein) - float64(9*fat)) / 4)
	return models.MacroBreakdown{
		Protein: protein,
		Carbs:   carbs,
		Fat:     fat,
	}
}

// Compute runs the full derivation: BMR, maintenance TDEE, goal adjustment,
// macro split — rounding after each step, in that order. The profile must
// already be validated; an out-of-range profile is a caller bug and panics.
func Compute(p models.BiometricProfile) models.MetricsResult {
	if err := p.Validate(); err != nil {
		panic(fmt.Sprintf("metrics: profile failed validation: %v", err))
	}

	bmr := BMR(p)
	maintenance := TDEE(bmr, p.ActivityLevel)
	target := AdjustForGoal(maintenance, p.Goal)

	return models.MetricsResult{
		BMR:    bmr,
		TDEE:   target,
		Macros: Macros(target, p.Goal),
	}
}

// round is round-half-away-from-zero, which is what math.Round implements.
func round(v float64) int {
	return int(math.Round(v))
}
