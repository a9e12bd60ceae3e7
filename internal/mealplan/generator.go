// Package mealplan builds the directive planner prompt and turns the model's
// schema-constrained output into a validated MealPlan.
package mealplan

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alvesarel/shapeplan/internal/ai"
	"github.com/alvesarel/shapeplan/internal/models"
	"github.com/alvesarel/shapeplan/pkg/logger"
)

type Generator struct {
	caller ai.Caller
	model  string
	logger *logger.Logger
}

func NewGenerator(caller ai.Caller, model string, log *logger.Logger) *Generator {
	return &Generator{caller: caller, model: model, logger: log}
}

// Generate requests one structured plan. Any shape mismatch in the model's
// output is ErrSchemaValidation; the generator never retries on its own,
// since resubmitting an identical prompt to a non-deterministic model is not
// a reliability mechanism. Resubmission is the caller's call.
func (g *Generator) Generate(ctx context.Context, profile models.BiometricProfile, metrics models.MetricsResult, preferences, restrictions []string) (*models.MealPlan, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	prompt := buildPrompt(profile, metrics, preferences, restrictions)

	result, err := g.caller.Complete(ctx, ai.Request{
		Model:       g.model,
		System:      ai.SystemPromptPlanner,
		Messages:    []ai.Message{ai.TextMessage(models.RoleUser, prompt)},
		Temperature: 0.7,
		SchemaName:  "meal_plan",
		Schema:      &planSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("meal plan: %w", err)
	}

	plan, err := decodePlan(result.Text)
	if err != nil {
		return nil, err
	}

	// Per-meal calories only approximate the total; a large gap is worth a
	// log line but not a failure.
	if drift := calorieDrift(plan); drift > 0.10 {
		g.logger.Warnw("meal calories drift from plan total",
			"total", plan.TotalCalories,
			"mealSum", plan.MealCalorieSum(),
		)
	}

	return plan, nil
}

// decodePlan parses and shape-checks the model output. Unknown fields,
// missing meals and meals without food items all reject the plan.
func decodePlan(raw string) (*models.MealPlan, error) {
	cleaned := stripCodeFence(raw)

	decoder := json.NewDecoder(strings.NewReader(cleaned))
	decoder.DisallowUnknownFields()

	var plan models.MealPlan
	if err := decoder.Decode(&plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrSchemaValidation, err)
	}

	if err := validatePlan(plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func validatePlan(plan models.MealPlan) error {
	if plan.TotalCalories <= 0 {
		return fmt.Errorf("%w: totalCalories ausente ou inválido", ai.ErrSchemaValidation)
	}
	if len(plan.Meals) == 0 {
		return fmt.Errorf("%w: plano sem refeições", ai.ErrSchemaValidation)
	}
	for i, meal := range plan.Meals {
		if strings.TrimSpace(meal.Name) == "" {
			return fmt.Errorf("%w: refeição %d sem nome", ai.ErrSchemaValidation, i+1)
		}
		if len(meal.Foods) == 0 {
			return fmt.Errorf("%w: refeição %q sem alimentos", ai.ErrSchemaValidation, meal.Name)
		}
		for _, food := range meal.Foods {
			if strings.TrimSpace(food.Item) == "" {
				return fmt.Errorf("%w: refeição %q contém alimento sem nome", ai.ErrSchemaValidation, meal.Name)
			}
		}
	}
	return nil
}

func calorieDrift(plan *models.MealPlan) float64 {
	if plan.TotalCalories == 0 {
		return 0
	}
	diff := float64(plan.MealCalorieSum() - plan.TotalCalories)
	if diff < 0 {
		diff = -diff
	}
	return diff / float64(plan.TotalCalories)
}

// stripCodeFence removes a markdown ```json fence when the model wraps its
// output in one.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func buildPrompt(profile models.BiometricProfile, metrics models.MetricsResult, preferences, restrictions []string) string {
	sexLabel := "masculino"
	if profile.Sex == models.SexFemale {
		sexLabel = "feminino"
	}

	goalDescriptions := map[models.Goal]string{
		models.GoalCutting:     "definição muscular e perda de gordura",
		models.GoalMaintenance: "manutenção do peso corporal",
		models.GoalBulking:     "ganho de massa muscular (hipertrofia)",
	}
	goalText := goalDescriptions[profile.Goal]

	var b strings.Builder
	fmt.Fprintf(&b, "Crie um plano alimentar detalhado e personalizado para uma pessoa com o seguinte perfil:\n\n")
	fmt.Fprintf(&b, "**Dados Pessoais:**\n")
	fmt.Fprintf(&b, "- Idade: %d anos\n", profile.Age)
	fmt.Fprintf(&b, "- Sexo: %s\n", sexLabel)
	fmt.Fprintf(&b, "- Altura: %d cm\n", profile.Height)
	fmt.Fprintf(&b, "- Peso: %d kg\n", profile.Weight)
	fmt.Fprintf(&b, "- Nível de atividade: %s\n", profile.ActivityLevel)
	fmt.Fprintf(&b, "- Objetivo: %s\n\n", goalText)

	fmt.Fprintf(&b, "**Metas Nutricionais:**\n")
	fmt.Fprintf(&b, "- Calorias diárias: %d kcal\n", metrics.TDEE)
	fmt.Fprintf(&b, "- Proteínas: %dg\n", metrics.Macros.Protein)
	fmt.Fprintf(&b, "- Carboidratos: %dg\n", metrics.Macros.Carbs)
	fmt.Fprintf(&b, "- Gorduras: %dg\n\n", metrics.Macros.Fat)

	if len(preferences) > 0 {
		fmt.Fprintf(&b, "**Preferências alimentares:** %s\n", strings.Join(preferences, ", "))
	}
	if len(restrictions) > 0 {
		fmt.Fprintf(&b, "**Restrições alimentares:** %s\n", strings.Join(restrictions, ", "))
	}
	b.WriteString("\n")

	b.WriteString(`**Requisitos do plano:**
1. Distribua as calorias em 5-6 refeições ao longo do dia
2. Use alimentos comuns e acessíveis no Brasil
3. Inclua horários específicos para cada refeição
4. Especifique porções em medidas caseiras (xícara, colher, unidade, etc)
5. Calcule os macronutrientes de forma precisa
6. Considere praticidade no preparo
7. Inclua variedade nutricional
8. Forneça dicas de preparo quando relevante

**Estrutura sugerida:**
- Café da manhã (7h00)
- Lanche da manhã (10h00)
- Almoço (12h30)
- Lanche da tarde (15h30)
- Jantar (19h00)
- Ceia (21h30) - opcional

`)
	fmt.Fprintf(&b, "Crie um plano equilibrado, prático e adequado ao objetivo de %s.", goalText)

	return b.String()
}
