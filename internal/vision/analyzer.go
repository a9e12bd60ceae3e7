// Package vision turns submitted physique photos plus biometric context into
// a single multi-modal model request and validates the textual result.
package vision

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/alvesarel/shapeplan/internal/ai"
	"github.com/alvesarel/shapeplan/internal/models"
	"github.com/alvesarel/shapeplan/pkg/logger"
)

// ImageGroups holds the two photo sets. Current photos always come before
// goal photos in the request; the prompt tells the model which is which by
// position.
type ImageGroups struct {
	Current []models.ImageAsset
	Goal    []models.ImageAsset
}

type Analyzer struct {
	caller ai.Caller
	model  string
	logger *logger.Logger
}

func NewAnalyzer(caller ai.Caller, model string, log *logger.Logger) *Analyzer {
	return &Analyzer{caller: caller, model: model, logger: log}
}

// Analyze issues one synchronous vision call and returns the validated
// assessment. Image bytes are consumed here and never retained.
func (a *Analyzer) Analyze(ctx context.Context, groups ImageGroups, weight, height float64) (*models.VisualAssessment, error) {
	if len(groups.Current) == 0 {
		return nil, &models.ValidationError{Field: "currentPhotos", Message: "Envie pelo menos uma foto do físico atual."}
	}
	if len(groups.Goal) == 0 {
		return nil, &models.ValidationError{Field: "goalPhotos", Message: "Envie pelo menos uma foto do físico objetivo."}
	}

	// The two group conversions are independent pure transformations, so
	// they run side by side; the model call itself stays single.
	var wg sync.WaitGroup
	var currentParts, goalParts []ai.Part
	wg.Add(2)
	go func() {
		defer wg.Done()
		currentParts = convertGroup(groups.Current)
	}()
	go func() {
		defer wg.Done()
		goalParts = convertGroup(groups.Goal)
	}()
	wg.Wait()

	parts := make([]ai.Part, 0, 1+len(currentParts)+len(goalParts))
	parts = append(parts, ai.TextPart(buildInstruction(len(groups.Current), len(groups.Goal), weight, height)))
	parts = append(parts, currentParts...)
	parts = append(parts, goalParts...)

	a.logger.Infow("requesting visual assessment",
		"currentPhotos", len(groups.Current),
		"goalPhotos", len(groups.Goal),
	)

	result, err := a.caller.Complete(ctx, ai.Request{
		Model:       a.model,
		System:      ai.SystemPromptVision,
		Messages:    []ai.Message{{Role: models.RoleUser, Parts: parts}},
		MaxTokens:   2000,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("visual assessment: %w", err)
	}

	// The caller already rejects empty text, but the non-empty postcondition
	// is this component's contract, so it is enforced here as well.
	if strings.TrimSpace(result.Text) == "" {
		return nil, fmt.Errorf("visual assessment: %w", ai.ErrEmptyModelOutput)
	}

	return &models.VisualAssessment{
		Analysis: result.Text,
		Weight:   weight,
		Height:   height,
		Usage:    result.Usage,
	}, nil
}

func convertGroup(assets []models.ImageAsset) []ai.Part {
	parts := make([]ai.Part, 0, len(assets))
	for _, asset := range assets {
		parts = append(parts, ai.ImagePart(asset.Data, asset.ContentType()))
	}
	return parts
}

// buildInstruction states the image ordering explicitly: the model grounds
// its comparison on "first N current, next M goal".
func buildInstruction(currentCount, goalCount int, weight, height float64) string {
	return fmt.Sprintf(`Analise detalhadamente estas imagens de composição corporal.

**Dados fornecidos:**
- Peso atual: %gkg
- Altura: %gcm

**Fotos do físico atual:**
As primeiras %d imagens mostram o físico atual da pessoa.

**Fotos do físico objetivo:**
As próximas %d imagens mostram o físico que a pessoa deseja alcançar.

Por favor, forneça uma análise completa incluindo:
1. Avaliação da composição corporal atual (distribuição de gordura, massa muscular aparente, postura)
2. Comparação detalhada entre o físico atual e o físico objetivo
3. Identificação das principais diferenças e áreas que precisam de foco
4. Recomendações específicas e realistas para atingir o objetivo
5. Estimativa de tempo necessário e nível de esforço
6. Sugestões de próximos passos e se seria benéfico agendar uma consulta profissional

Seja empática, motivadora e profissional na sua análise.`, weight, height, currentCount, goalCount)
}
