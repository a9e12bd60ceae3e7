package models

// TokenUsage is the optional usage metadata reported by the model provider.
type TokenUsage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// VisualAssessment is the model's body-composition analysis, paired with the
// biometric values it was generated against. Analysis is never empty; an
// empty model response surfaces as an error, not as an empty assessment.
type VisualAssessment struct {
	Analysis string      `json:"analysis"`
	Weight   float64     `json:"weight"`
	Height   float64     `json:"height"`
	Usage    *TokenUsage `json:"usage,omitempty"`
}
