package chat

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alvesarel/shapeplan/internal/ai"
	"github.com/alvesarel/shapeplan/internal/models"
)

type fakeCaller struct {
	lastRequest ai.Request
	replies     []string
	calls       int
	err         error
}

func (f *fakeCaller) Complete(_ context.Context, req ai.Request) (ai.Result, error) {
	f.lastRequest = req
	f.calls++
	if f.err != nil {
		return ai.Result{}, f.err
	}
	reply := "ok"
	if len(f.replies) > 0 {
		reply = f.replies[0]
		f.replies = f.replies[1:]
	}
	return ai.Result{Text: reply}, nil
}

func testMetrics() models.MetricsResult {
	return models.MetricsResult{
		BMR:  1426,
		TDEE: 1667,
		Macros: models.MacroBreakdown{
			Protein: 146,
			Carbs:   145,
			Fat:     56,
		},
	}
}

func testProfile() models.BiometricProfile {
	return models.BiometricProfile{
		Age:           38,
		Height:        165,
		Weight:        68,
		Sex:           models.SexFemale,
		ActivityLevel: models.ActivityLight,
		Goal:          models.GoalCutting,
	}
}

func TestBuildIntroMessageEmbedsNumbersVerbatim(t *testing.T) {
	msg := BuildIntroMessage(testProfile(), testMetrics())

	for _, want := range []string{
		"Idade: 38 anos",
		"Sexo: feminino",
		"Altura: 165 cm",
		"Peso: 68 kg",
		"Nível de atividade: light",
		"Objetivo: definição",
		"TMB estimada: 1426 kcal",
		"Calorias diárias recomendadas para o objetivo: 1667 kcal",
		"146 proteínas / 145 carboidratos / 56 gorduras",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestBuildIntroMessageIsDeterministic(t *testing.T) {
	first := BuildIntroMessage(testProfile(), testMetrics())
	second := BuildIntroMessage(testProfile(), testMetrics())
	assert.Equal(t, first, second)
}

func TestReplySendsFullOrderedTranscript(t *testing.T) {
	caller := &fakeCaller{replies: []string{"resposta"}}

	history := []models.ConversationMessage{
		models.TextMessage(models.RoleUser, "primeira"),
		models.TextMessage(models.RoleAssistant, "segunda"),
		models.TextMessage(models.RoleUser, "terceira"),
	}

	reply, err := Reply(context.Background(), caller, "chat-model", history)
	require.NoError(t, err)

	assert.Equal(t, models.RoleAssistant, reply.Role)
	assert.Equal(t, "resposta", reply.Text())
	assert.Equal(t, ai.SystemPromptChat, caller.lastRequest.System)

	require.Len(t, caller.lastRequest.Messages, 3)
	assert.Equal(t, "primeira", caller.lastRequest.Messages[0].Parts[0].Text)
	assert.Equal(t, "segunda", caller.lastRequest.Messages[1].Parts[0].Text)
	assert.Equal(t, "terceira", caller.lastRequest.Messages[2].Parts[0].Text)
}

func TestConversationAppendsInReceiptOrder(t *testing.T) {
	caller := &fakeCaller{replies: []string{"r1", "r2", "r3"}}
	conv := NewConversation(caller, "chat-model")

	for i := 1; i <= 3; i++ {
		_, err := conv.Send(context.Background(), "pergunta "+strconv.Itoa(i))
		require.NoError(t, err)
	}

	messages := conv.Messages()
	require.Len(t, messages, 6)
	assert.Equal(t, "pergunta 1", messages[0].Text())
	assert.Equal(t, "r1", messages[1].Text())
	assert.Equal(t, "pergunta 2", messages[2].Text())
	assert.Equal(t, "r2", messages[3].Text())
	assert.Equal(t, "pergunta 3", messages[4].Text())
	assert.Equal(t, "r3", messages[5].Text())
}

func TestConversationFailedTurnLeavesTranscriptIntact(t *testing.T) {
	caller := &fakeCaller{replies: []string{"r1"}}
	conv := NewConversation(caller, "chat-model")

	_, err := conv.Send(context.Background(), "pergunta")
	require.NoError(t, err)

	caller.err = ai.ErrUpstream
	_, err = conv.Send(context.Background(), "falha")
	assert.ErrorIs(t, err, ai.ErrUpstream)

	// The failed exchange committed nothing.
	messages := conv.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "pergunta", messages[0].Text())
	assert.Equal(t, "r1", messages[1].Text())
}

func TestConversationMessagesReturnsCopy(t *testing.T) {
	caller := &fakeCaller{replies: []string{"r1"}}
	conv := NewConversation(caller, "chat-model")

	_, err := conv.Send(context.Background(), "pergunta")
	require.NoError(t, err)

	messages := conv.Messages()
	messages[0] = models.TextMessage(models.RoleUser, "alterada")

	assert.Equal(t, "pergunta", conv.Messages()[0].Text())
}
