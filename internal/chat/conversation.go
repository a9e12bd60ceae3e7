// Package chat builds the conversational context from prior pipeline stages
// and manages the turn-by-turn exchange with the chat model.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/alvesarel/shapeplan/internal/ai"
	"github.com/alvesarel/shapeplan/internal/models"
)

// BuildIntroMessage formats the intake data and computed metrics into the
// first user turn. Pure formatting: the numbers are embedded verbatim so the
// chat model never re-derives them.
func BuildIntroMessage(profile models.BiometricProfile, metrics models.MetricsResult) string {
	sexLabel := "masculino"
	if profile.Sex == models.SexFemale {
		sexLabel = "feminino"
	}

	lines := []string{
		"Aqui estão meus dados para personalizar o acompanhamento:",
		fmt.Sprintf("- Idade: %d anos", profile.Age),
		fmt.Sprintf("- Sexo: %s", sexLabel),
		fmt.Sprintf("- Altura: %d cm", profile.Height),
		fmt.Sprintf("- Peso: %d kg", profile.Weight),
		fmt.Sprintf("- Nível de atividade: %s", profile.ActivityLevel),
		fmt.Sprintf("- Objetivo: %s", profile.Goal.Label()),
		"",
		"Resultados calculados:",
		fmt.Sprintf("- TMB estimada: %d kcal", metrics.BMR),
		fmt.Sprintf("- Calorias diárias recomendadas para o objetivo: %d kcal", metrics.TDEE),
		fmt.Sprintf("- Distribuição de macros (g/dia): %d proteínas / %d carboidratos / %d gorduras",
			metrics.Macros.Protein, metrics.Macros.Carbs, metrics.Macros.Fat),
		"",
		"Com base nisso, gostaria de receber uma análise corporal e sugestões personalizadas.",
	}
	return strings.Join(lines, "\n")
}

// Reply runs one stateless exchange: the full ordered message list goes to
// the model, the assistant turn comes back. No streaming.
func Reply(ctx context.Context, caller ai.Caller, model string, messages []models.ConversationMessage) (models.ConversationMessage, error) {
	aiMessages := make([]ai.Message, 0, len(messages))
	for _, m := range messages {
		aiMessages = append(aiMessages, ai.TextMessage(m.Role, m.Text()))
	}

	result, err := caller.Complete(ctx, ai.Request{
		Model:       model,
		System:      ai.SystemPromptChat,
		Messages:    aiMessages,
		MaxTokens:   1000,
		Temperature: 0.7,
	})
	if err != nil {
		return models.ConversationMessage{}, fmt.Errorf("chat turn: %w", err)
	}

	return models.TextMessage(models.RoleAssistant, result.Text), nil
}

// Conversation is an append-only transcript bound to one chat model. The
// mutex keeps at most one model call outstanding per transcript; turns are
// appended in receipt order and never edited or dropped.
type Conversation struct {
	caller ai.Caller
	model  string

	mu       sync.Mutex
	messages []models.ConversationMessage
}

func NewConversation(caller ai.Caller, model string) *Conversation {
	return &Conversation{caller: caller, model: model}
}

// Send submits one user turn and appends both it and the assistant reply to
// the transcript. On failure nothing is appended, so a failed turn can be
// resubmitted without duplicating the user message.
func (c *Conversation) Send(ctx context.Context, content string) (models.ConversationMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	userTurn := models.TextMessage(models.RoleUser, content)
	pending := append(c.snapshotLocked(), userTurn)

	reply, err := Reply(ctx, c.caller, c.model, pending)
	if err != nil {
		return models.ConversationMessage{}, err
	}

	c.messages = append(c.messages, userTurn, reply)
	return reply, nil
}

// Messages returns a copy of the transcript in append order.
func (c *Conversation) Messages() []models.ConversationMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Conversation) snapshotLocked() []models.ConversationMessage {
	out := make([]models.ConversationMessage, len(c.messages))
	copy(out, c.messages)
	return out
}
