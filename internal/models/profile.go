package models

// Sex is the biological sex category used by the BMR formula.
type Sex string

const (
	SexFemale Sex = "female"
	SexMale   Sex = "male"
)

// Goal is the training goal driving calorie adjustment and macro split.
type Goal string

const (
	GoalCutting     Goal = "cutting"
	GoalMaintenance Goal = "maintenance"
	GoalBulking     Goal = "bulking"
)

// ActivityLevel is one of the fixed weekly-activity categories.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "veryActive"
)

// activityLevels keeps the levels in increasing-intensity order;
// activityFactors maps each to its TDEE multiplier.
var activityLevels = []ActivityLevel{
	ActivitySedentary,
	ActivityLight,
	ActivityModerate,
	ActivityActive,
	ActivityVeryActive,
}

var activityFactors = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// ActivityLevels returns all levels ordered from least to most intense.
func ActivityLevels() []ActivityLevel {
	out := make([]ActivityLevel, len(activityLevels))
	copy(out, activityLevels)
	return out
}

// Multiplier returns the TDEE factor for the level, or false when the level
// is not one of the fixed categories.
func (a ActivityLevel) Multiplier() (float64, bool) {
	f, ok := activityFactors[a]
	return f, ok
}

// BiometricProfile is the immutable intake record. All derived computation
// requires a profile that passed Validate.
type BiometricProfile struct {
	Age           int           `json:"age"`
	Height        int           `json:"height"` // cm
	Weight        int           `json:"weight"` // kg
	Sex           Sex           `json:"gender"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Goal          Goal          `json:"goal"`
}

// Validate checks every intake field against its allowed range. Messages are
// user-facing.
func (p BiometricProfile) Validate() error {
	if p.Age < 18 || p.Age > 80 {
		return &ValidationError{Field: "age", Message: "Informe uma idade válida entre 18 e 80 anos."}
	}
	if p.Weight < 35 || p.Weight > 180 {
		return &ValidationError{Field: "weight", Message: "Informe um peso entre 35kg e 180kg."}
	}
	if p.Height < 140 || p.Height > 200 {
		return &ValidationError{Field: "height", Message: "Informe uma altura entre 140cm e 200cm."}
	}
	if p.Sex != SexFemale && p.Sex != SexMale {
		return &ValidationError{Field: "gender", Message: "Informe o sexo biológico (female ou male)."}
	}
	if _, ok := p.ActivityLevel.Multiplier(); !ok {
		return &ValidationError{Field: "activityLevel", Message: "Informe um nível de atividade válido."}
	}
	if p.Goal != GoalCutting && p.Goal != GoalMaintenance && p.Goal != GoalBulking {
		return &ValidationError{Field: "goal", Message: "Informe um objetivo válido (cutting, maintenance ou bulking)."}
	}
	return nil
}

// Label is the user-facing pt-BR name of the goal.
func (g Goal) Label() string {
	switch g {
	case GoalCutting:
		return "definição"
	case GoalBulking:
		return "hipertrofia"
	default:
		return "manutenção"
	}
}
