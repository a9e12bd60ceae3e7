// Package pipeline sequences the personalization stages: intake, metrics,
// visual assessment, conversation, plan generation. The coordinator owns the
// mutable stage state; every stage result is written exactly once and is
// immutable afterwards.
//
// The HTTP layer in internal/server does not use the coordinator: each
// endpoint is stateless and the client holds the session, so stage order is
// enforced there by the request contracts. The coordinator is for embedding
// callers that drive a whole session in-process (a bot loop, a CLI run) and
// need the ordering guarded on the server side.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alvesarel/shapeplan/internal/chat"
	"github.com/alvesarel/shapeplan/internal/mealplan"
	"github.com/alvesarel/shapeplan/internal/metrics"
	"github.com/alvesarel/shapeplan/internal/models"
	"github.com/alvesarel/shapeplan/internal/vision"
)

// Stage is the furthest completed step of the pipeline. Transitions are
// one-way and guarded by the operation preconditions below.
type Stage int

const (
	StageIntake Stage = iota
	StageMetricsComputed
	StageVisualAssessed
	StageConversing
	StagePlanGenerated
)

func (s Stage) String() string {
	switch s {
	case StageIntake:
		return "intake"
	case StageMetricsComputed:
		return "metrics-computed"
	case StageVisualAssessed:
		return "visual-assessed"
	case StageConversing:
		return "conversing"
	case StagePlanGenerated:
		return "plan-generated"
	default:
		return "unknown"
	}
}

// ErrStageOrder is returned when an operation runs before its prerequisite
// stage has completed.
var ErrStageOrder = errors.New("etapa anterior do pipeline ainda não foi concluída")

// VisualAnalyzer and PlanGenerator are the model-backed stages the
// coordinator drives. They are interfaces so the sequencing logic is
// testable without a model provider.
type VisualAnalyzer interface {
	Analyze(ctx context.Context, groups vision.ImageGroups, weight, height float64) (*models.VisualAssessment, error)
}

type PlanGenerator interface {
	Generate(ctx context.Context, profile models.BiometricProfile, metrics models.MetricsResult, preferences, restrictions []string) (*models.MealPlan, error)
}

var (
	_ VisualAnalyzer = (*vision.Analyzer)(nil)
	_ PlanGenerator  = (*mealplan.Generator)(nil)
)

type Coordinator struct {
	analyzer     VisualAnalyzer
	generator    PlanGenerator
	conversation *chat.Conversation

	mu         sync.Mutex
	stage      Stage
	profile    *models.BiometricProfile
	metrics    *models.MetricsResult
	assessment *models.VisualAssessment
	plan       *models.MealPlan
}

func NewCoordinator(analyzer VisualAnalyzer, generator PlanGenerator, conversation *chat.Conversation) *Coordinator {
	return &Coordinator{
		analyzer:     analyzer,
		generator:    generator,
		conversation: conversation,
		stage:        StageIntake,
	}
}

// Stage reports the furthest completed stage.
func (c *Coordinator) Stage() Stage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stage
}

// SubmitIntake validates the profile and computes metrics in one step.
// Validation failures block progression; nothing is committed. Resubmitting
// replaces both the profile and metrics slots entirely.
func (c *Coordinator) SubmitIntake(profile models.BiometricProfile) (models.MetricsResult, error) {
	if err := profile.Validate(); err != nil {
		return models.MetricsResult{}, err
	}

	result := metrics.Compute(profile)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile = &profile
	c.metrics = &result
	if c.stage < StageMetricsComputed {
		c.stage = StageMetricsComputed
	}
	return result, nil
}

// RequestVisualAssessment runs the vision stage. It requires a validated
// intake. The assessment slot is written only after the call fully resolves;
// an abandoned or failed call leaves prior stage results untouched.
func (c *Coordinator) RequestVisualAssessment(ctx context.Context, groups vision.ImageGroups) (*models.VisualAssessment, error) {
	c.mu.Lock()
	if c.stage < StageMetricsComputed || c.profile == nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: envie seus dados antes da análise visual", ErrStageOrder)
	}
	weight := float64(c.profile.Weight)
	height := float64(c.profile.Height)
	c.mu.Unlock()

	assessment, err := c.analyzer.Analyze(ctx, groups, weight, height)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.assessment = assessment
	if c.stage < StageVisualAssessed {
		c.stage = StageVisualAssessed
	}
	return assessment, nil
}

// SendChatTurn appends one user turn to the conversation and returns the
// assistant reply. The first turn moves the pipeline into Conversing. The
// conversation itself serializes outstanding calls per transcript.
func (c *Coordinator) SendChatTurn(ctx context.Context, content string) (models.ConversationMessage, error) {
	c.mu.Lock()
	if c.stage < StageVisualAssessed {
		c.mu.Unlock()
		return models.ConversationMessage{}, fmt.Errorf("%w: a conversa começa após a análise visual", ErrStageOrder)
	}
	c.mu.Unlock()

	reply, err := c.conversation.Send(ctx, content)
	if err != nil {
		return models.ConversationMessage{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stage < StageConversing {
		c.stage = StageConversing
	}
	return reply, nil
}

// RequestMealPlan runs the plan stage from the computed metrics — the
// metrics engine always feeds the planner. A retry replaces the whole plan
// slot; nothing merges into a previous failed attempt.
func (c *Coordinator) RequestMealPlan(ctx context.Context, preferences, restrictions []string) (*models.MealPlan, error) {
	c.mu.Lock()
	if c.stage < StageMetricsComputed || c.profile == nil || c.metrics == nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: envie seus dados antes de gerar o plano alimentar", ErrStageOrder)
	}
	profile := *c.profile
	metricsResult := *c.metrics
	c.mu.Unlock()

	plan, err := c.generator.Generate(ctx, profile, metricsResult, preferences, restrictions)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.plan = plan
	if c.stage < StagePlanGenerated {
		c.stage = StagePlanGenerated
	}
	return plan, nil
}

// Metrics returns the computed metrics, if the intake stage completed.
func (c *Coordinator) Metrics() (models.MetricsResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.metrics == nil {
		return models.MetricsResult{}, false
	}
	return *c.metrics, true
}

// Assessment returns the visual assessment, if that stage completed.
func (c *Coordinator) Assessment() (*models.VisualAssessment, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.assessment == nil {
		return nil, false
	}
	out := *c.assessment
	return &out, true
}

// Plan returns the generated meal plan, if that stage completed.
func (c *Coordinator) Plan() (*models.MealPlan, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.plan == nil {
		return nil, false
	}
	out := *c.plan
	return &out, true
}
