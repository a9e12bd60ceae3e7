package models

// MacroBreakdown holds the daily macro targets in grams.
type MacroBreakdown struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

// MetricsResult is the output of the metrics engine. TDEE carries the
// goal-adjusted daily energy target, not the maintenance value.
type MetricsResult struct {
	BMR    int            `json:"bmr"`
	TDEE   int            `json:"tdee"`
	Macros MacroBreakdown `json:"macros"`
}
