package metrics

import (
	"testing"

	"github.com/alvesarel/shapeplan/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() models.BiometricProfile {
	return models.BiometricProfile{
		Age:           38,
		Height:        165,
		Weight:        68,
		Sex:           models.SexFemale,
		ActivityLevel: models.ActivityLight,
		Goal:          models.GoalCutting,
	}
}

func TestComputeReferenceCase(t *testing.T) {
	// 38y female, 165cm, 68kg, light activity, cutting.
	result := Compute(validProfile())

	// 655 + 9.6*68 + 1.8*165 - 4.7*38 = 1426.2, rounded per step after that.
	assert.Equal(t, 1426, result.BMR)
	assert.Equal(t, 1667, result.TDEE)
	assert.Equal(t, 146, result.Macros.Protein)
	assert.Equal(t, 145, result.Macros.Carbs)
	assert.Equal(t, 56, result.Macros.Fat)
}

func TestComputeIntermediateSteps(t *testing.T) {
	p := validProfile()

	bmr := BMR(p)
	require.Equal(t, 1426, bmr)

	maintenance := TDEE(bmr, p.ActivityLevel)
	require.Equal(t, 1961, maintenance)

	assert.Equal(t, 1667, AdjustForGoal(maintenance, models.GoalCutting))
	assert.Equal(t, 1961, AdjustForGoal(maintenance, models.GoalMaintenance))
	assert.Equal(t, 2255, AdjustForGoal(maintenance, models.GoalBulking))
}

func TestComputeIsDeterministic(t *testing.T) {
	p := validProfile()

	first := Compute(p)
	second := Compute(p)

	assert.Equal(t, first, second)
}

func TestMacroCalorieRoundTrip(t *testing.T) {
	goals := []models.Goal{models.GoalCutting, models.GoalMaintenance, models.GoalBulking}

	for _, goal := range goals {
		p := validProfile()
		p.Goal = goal
		result := Compute(p)

		total := 4*result.Macros.Protein + 4*result.Macros.Carbs + 9*result.Macros.Fat
		diff := total - result.TDEE
		if diff < 0 {
			diff = -diff
		}
		assert.LessOrEqualf(t, diff, 3, "goal %s: macro calories %d vs target %d", goal, total, result.TDEE)
	}
}

func TestMacroCalorieRoundTripAcrossProfiles(t *testing.T) {
	// Sweep a range of valid profiles; the ±3 kcal tolerance must hold for
	// every goal, not just the reference case.
	for age := 18; age <= 80; age += 31 {
		for weight := 35; weight <= 180; weight += 29 {
			for height := 140; height <= 200; height += 20 {
				for _, sex := range []models.Sex{models.SexFemale, models.SexMale} {
					for _, level := range models.ActivityLevels() {
						for _, goal := range []models.Goal{models.GoalCutting, models.GoalMaintenance, models.GoalBulking} {
							p := models.BiometricProfile{
								Age: age, Weight: weight, Height: height,
								Sex: sex, ActivityLevel: level, Goal: goal,
							}
							r := Compute(p)
							total := 4*r.Macros.Protein + 4*r.Macros.Carbs + 9*r.Macros.Fat
							diff := total - r.TDEE
							if diff < 0 {
								diff = -diff
							}
							require.LessOrEqualf(t, diff, 3, "profile %+v", p)
						}
					}
				}
			}
		}
	}
}

func TestActivityMultipliersInjectiveAndIncreasing(t *testing.T) {
	levels := models.ActivityLevels()
	require.Len(t, levels, 5)

	prev := 0.0
	for _, level := range levels {
		factor, ok := level.Multiplier()
		require.Truef(t, ok, "level %s has no multiplier", level)
		assert.Greaterf(t, factor, prev, "multipliers must strictly increase with intensity (%s)", level)
		prev = factor
	}
}

func TestActivityMultiplierValues(t *testing.T) {
	expected := map[models.ActivityLevel]float64{
		models.ActivitySedentary:  1.2,
		models.ActivityLight:      1.375,
		models.ActivityModerate:   1.55,
		models.ActivityActive:     1.725,
		models.ActivityVeryActive: 1.9,
	}
	for level, want := range expected {
		got, ok := level.Multiplier()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestComputePanicsOnInvalidProfile(t *testing.T) {
	p := validProfile()
	p.Age = 12

	assert.Panics(t, func() { Compute(p) })
}
