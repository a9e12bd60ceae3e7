package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alvesarel/shapeplan/internal/ai"
	"github.com/alvesarel/shapeplan/internal/models"
	"github.com/alvesarel/shapeplan/internal/vision"
	"github.com/alvesarel/shapeplan/pkg/logger"
)

type fakeAnalyzer struct {
	groups     vision.ImageGroups
	assessment *models.VisualAssessment
	err        error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, groups vision.ImageGroups, weight, height float64) (*models.VisualAssessment, error) {
	f.groups = groups
	if f.err != nil {
		return nil, f.err
	}
	out := *f.assessment
	out.Weight = weight
	out.Height = height
	return &out, nil
}

type fakeGenerator struct {
	metrics models.MetricsResult
	plan    *models.MealPlan
	err     error
}

func (f *fakeGenerator) Generate(_ context.Context, _ models.BiometricProfile, m models.MetricsResult, _, _ []string) (*models.MealPlan, error) {
	f.metrics = m
	if f.err != nil {
		return nil, f.err
	}
	return f.plan, nil
}

type fakeChatCaller struct {
	reply string
	err   error
}

func (f *fakeChatCaller) Complete(_ context.Context, _ ai.Request) (ai.Result, error) {
	if f.err != nil {
		return ai.Result{}, f.err
	}
	return ai.Result{Text: f.reply}, nil
}

func newTestHandlers(analyzer *fakeAnalyzer, generator *fakeGenerator, chatCaller *fakeChatCaller) *Handlers {
	return NewHandlers(analyzer, generator, chatCaller, "chat-model", logger.NewNop())
}

func multipartBody(t *testing.T, weight, height string, currentCount, goalCount int) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	require.NoError(t, writer.WriteField("weight", weight))
	require.NoError(t, writer.WriteField("height", height))

	for i := 0; i < currentCount; i++ {
		part, err := writer.CreateFormFile("currentPhotos", "current.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("current-bytes"))
		require.NoError(t, err)
	}
	for i := 0; i < goalCount; i++ {
		part, err := writer.CreateFormFile("goalPhotos", "goal.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("goal-bytes"))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestHandleAnalyzeSuccess(t *testing.T) {
	analyzer := &fakeAnalyzer{assessment: &models.VisualAssessment{
		Analysis: "análise detalhada",
		Usage:    &models.TokenUsage{TotalTokens: 120},
	}}
	h := newTestHandlers(analyzer, &fakeGenerator{}, &fakeChatCaller{})

	body, contentType := multipartBody(t, "68.5", "165", 2, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.HandleAnalyze(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "análise detalhada", resp.Analysis)
	assert.Equal(t, 68.5, resp.Weight)
	assert.Equal(t, 165.0, resp.Height)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, 120, resp.Usage.TotalTokens)

	// Photos landed in the right groups with their roles tagged.
	require.Len(t, analyzer.groups.Current, 2)
	require.Len(t, analyzer.groups.Goal, 1)
	assert.Equal(t, models.RoleCurrentPhysique, analyzer.groups.Current[0].Role)
	assert.Equal(t, models.RoleGoalPhysique, analyzer.groups.Goal[0].Role)
}

func TestHandleAnalyzeRejectsBadBiometrics(t *testing.T) {
	h := newTestHandlers(&fakeAnalyzer{}, &fakeGenerator{}, &fakeChatCaller{})

	for _, tc := range []struct{ weight, height string }{
		{"", "165"},
		{"abc", "165"},
		{"-10", "165"},
		{"68", ""},
		{"68", "0"},
	} {
		body, contentType := multipartBody(t, tc.weight, tc.height, 1, 1)
		req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.HandleAnalyze(rec, req)
		assert.Equalf(t, http.StatusBadRequest, rec.Code, "weight=%q height=%q", tc.weight, tc.height)
	}
}

func TestHandleAnalyzeErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{ai.ErrModelBlocked, http.StatusUnprocessableEntity},
		{ai.ErrEmptyModelOutput, http.StatusBadGateway},
		{ai.ErrUpstream, http.StatusBadGateway},
	}

	for _, tc := range cases {
		h := newTestHandlers(&fakeAnalyzer{err: tc.err}, &fakeGenerator{}, &fakeChatCaller{})

		body, contentType := multipartBody(t, "68", "165", 1, 1)
		req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.HandleAnalyze(rec, req)

		assert.Equal(t, tc.status, rec.Code)
		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Error)
		assert.NotEmpty(t, resp.Details)
	}
}

func validProfileJSON() string {
	return `{"age": 38, "height": 165, "weight": 68, "gender": "female", "activityLevel": "light", "goal": "cutting"}`
}

func TestHandleMealPlanSuccess(t *testing.T) {
	plan := &models.MealPlan{
		TotalCalories: 1667,
		Macros:        models.MacroBreakdown{Protein: 146, Carbs: 145, Fat: 56},
		Meals: []models.Meal{{
			Name: "Almoço", Time: "12h30", Calories: 1667,
			Foods: []models.FoodItem{{Item: "Frango", Quantity: "150g", Calories: 1667}},
		}},
	}
	generator := &fakeGenerator{plan: plan}
	h := newTestHandlers(&fakeAnalyzer{}, generator, &fakeChatCaller{})

	payload := `{"userInput": ` + validProfileJSON() + `, "metrics": {"bmr": 1426, "tdee": 1667, "macros": {"protein": 146, "carbs": 145, "fat": 56}}}`
	req := httptest.NewRequest(http.MethodPost, "/api/meal-plan", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	h.HandleMealPlan(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp mealPlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.MealPlan)
	assert.Equal(t, 1667, resp.MealPlan.TotalCalories)

	// The generator received engine-computed targets.
	assert.Equal(t, 1426, generator.metrics.BMR)
	assert.Equal(t, 1667, generator.metrics.TDEE)
}

func TestHandleMealPlanRecomputesClientMetrics(t *testing.T) {
	generator := &fakeGenerator{plan: &models.MealPlan{
		TotalCalories: 1667,
		Meals: []models.Meal{{
			Name: "Almoço", Foods: []models.FoodItem{{Item: "Frango"}},
		}},
	}}
	h := newTestHandlers(&fakeAnalyzer{}, generator, &fakeChatCaller{})

	// Client sends fabricated metrics; the planner must still run from the
	// engine's numbers for this profile.
	payload := `{"userInput": ` + validProfileJSON() + `, "metrics": {"bmr": 9999, "tdee": 9999, "macros": {"protein": 1, "carbs": 1, "fat": 1}}}`
	req := httptest.NewRequest(http.MethodPost, "/api/meal-plan", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	h.HandleMealPlan(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1667, generator.metrics.TDEE)
	assert.Equal(t, 146, generator.metrics.Macros.Protein)
}

func TestHandleMealPlanMissingFieldsIsClientError(t *testing.T) {
	h := newTestHandlers(&fakeAnalyzer{}, &fakeGenerator{}, &fakeChatCaller{})

	for _, payload := range []string{
		`{}`,
		`{"userInput": ` + validProfileJSON() + `}`,
		`{"metrics": {"bmr": 1426, "tdee": 1667, "macros": {"protein": 146, "carbs": 145, "fat": 56}}}`,
		`not json`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/meal-plan", strings.NewReader(payload))
		rec := httptest.NewRecorder()

		h.HandleMealPlan(rec, req)
		assert.Equalf(t, http.StatusBadRequest, rec.Code, "payload %s", payload)
	}
}

func TestHandleMealPlanSchemaFailure(t *testing.T) {
	h := newTestHandlers(&fakeAnalyzer{}, &fakeGenerator{err: ai.ErrSchemaValidation}, &fakeChatCaller{})

	payload := `{"userInput": ` + validProfileJSON() + `, "metrics": {"bmr": 1426, "tdee": 1667, "macros": {"protein": 146, "carbs": 145, "fat": 56}}}`
	req := httptest.NewRequest(http.MethodPost, "/api/meal-plan", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	h.HandleMealPlan(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleChatReturnsAssistantTurn(t *testing.T) {
	h := newTestHandlers(&fakeAnalyzer{}, &fakeGenerator{}, &fakeChatCaller{reply: "vamos lá"})

	payload := `{"messages": [{"role": "user", "content": [{"type": "text", "text": "olá"}]}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	h.HandleChat(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.RoleAssistant, resp.Message.Role)
	assert.Equal(t, "vamos lá", resp.Message.Text())
}

func TestHandleChatRequiresMessages(t *testing.T) {
	h := newTestHandlers(&fakeAnalyzer{}, &fakeGenerator{}, &fakeChatCaller{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"messages": []}`))
	rec := httptest.NewRecorder()

	h.HandleChat(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
