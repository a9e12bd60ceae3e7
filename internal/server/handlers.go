package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/alvesarel/shapeplan/internal/ai"
	"github.com/alvesarel/shapeplan/internal/chat"
	"github.com/alvesarel/shapeplan/internal/metrics"
	"github.com/alvesarel/shapeplan/internal/models"
	"github.com/alvesarel/shapeplan/internal/vision"
	"github.com/alvesarel/shapeplan/pkg/logger"
)

const maxUploadBytes = 32 << 20

// VisualAnalyzer and PlanGenerator are the stage contracts the handlers
// drive; tests substitute fakes.
type VisualAnalyzer interface {
	Analyze(ctx context.Context, groups vision.ImageGroups, weight, height float64) (*models.VisualAssessment, error)
}

type PlanGenerator interface {
	Generate(ctx context.Context, profile models.BiometricProfile, metrics models.MetricsResult, preferences, restrictions []string) (*models.MealPlan, error)
}

// Handlers are stateless: every request carries the full session state
// (profile, transcript, images), nothing is retained between calls, and
// stage ordering is the client's responsibility. Callers that want
// server-side stage guarding embed pipeline.Coordinator instead of going
// through HTTP.
type Handlers struct {
	analyzer   VisualAnalyzer
	generator  PlanGenerator
	chatCaller ai.Caller
	chatModel  string
	logger     *logger.Logger
}

func NewHandlers(analyzer VisualAnalyzer, generator PlanGenerator, chatCaller ai.Caller, chatModel string, log *logger.Logger) *Handlers {
	return &Handlers{
		analyzer:   analyzer,
		generator:  generator,
		chatCaller: chatCaller,
		chatModel:  chatModel,
		logger:     log,
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type analyzeResponse struct {
	Analysis string             `json:"analysis"`
	Weight   float64            `json:"weight"`
	Height   float64            `json:"height"`
	Usage    *models.TokenUsage `json:"usage,omitempty"`
}

type chatRequest struct {
	Messages []models.ConversationMessage `json:"messages"`
}

type chatResponse struct {
	Message models.ConversationMessage `json:"message"`
}

type mealPlanRequest struct {
	UserInput    *models.BiometricProfile `json:"userInput"`
	Metrics      *models.MetricsResult    `json:"metrics"`
	Preferences  []string                 `json:"preferences,omitempty"`
	Restrictions []string                 `json:"restrictions,omitempty"`
}

type mealPlanResponse struct {
	Success  bool             `json:"success"`
	MealPlan *models.MealPlan `json:"mealPlan"`
}

// HandleAnalyze accepts the multipart intake (weight, height, current and
// goal photos) and returns the visual assessment. The photo bytes live only
// inside this request.
func (h *Handlers) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.writeError(w, &models.ValidationError{Field: "body", Message: "Envie o formulário multipart com fotos e medidas."})
		return
	}

	weight, err := strconv.ParseFloat(r.FormValue("weight"), 64)
	if err != nil || weight <= 0 {
		h.writeError(w, &models.ValidationError{Field: "weight", Message: "Informe um peso válido."})
		return
	}
	height, err := strconv.ParseFloat(r.FormValue("height"), 64)
	if err != nil || height <= 0 {
		h.writeError(w, &models.ValidationError{Field: "height", Message: "Informe uma altura válida."})
		return
	}

	currentPhotos, err := readImageGroup(r.MultipartForm.File["currentPhotos"], models.RoleCurrentPhysique)
	if err != nil {
		h.writeError(w, err)
		return
	}
	goalPhotos, err := readImageGroup(r.MultipartForm.File["goalPhotos"], models.RoleGoalPhysique)
	if err != nil {
		h.writeError(w, err)
		return
	}

	assessment, err := h.analyzer.Analyze(r.Context(), vision.ImageGroups{
		Current: currentPhotos,
		Goal:    goalPhotos,
	}, weight, height)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		Analysis: assessment.Analysis,
		Weight:   assessment.Weight,
		Height:   assessment.Height,
		Usage:    assessment.Usage,
	})
}

// HandleChat runs one conversational turn over the full ordered message list
// supplied by the client and returns the assistant reply.
func (h *Handlers) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, &models.ValidationError{Field: "body", Message: "Corpo da requisição inválido."})
		return
	}
	if len(req.Messages) == 0 {
		h.writeError(w, &models.ValidationError{Field: "messages", Message: "Envie pelo menos uma mensagem."})
		return
	}

	reply, err := chat.Reply(r.Context(), h.chatCaller, h.chatModel, req.Messages)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Message: reply})
}

// HandleMealPlan validates the intake payload and generates the structured
// plan. The metrics engine always feeds the planner: targets are recomputed
// from the profile rather than trusted from the client.
func (h *Handlers) HandleMealPlan(w http.ResponseWriter, r *http.Request) {
	var req mealPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, &models.ValidationError{Field: "body", Message: "Corpo da requisição inválido."})
		return
	}
	if req.UserInput == nil || req.Metrics == nil {
		h.writeError(w, &models.ValidationError{Field: "body", Message: "Dados de usuário e métricas são obrigatórios."})
		return
	}
	if err := req.UserInput.Validate(); err != nil {
		h.writeError(w, err)
		return
	}

	computed := metrics.Compute(*req.UserInput)
	if computed != *req.Metrics {
		h.logger.Warnw("client metrics differ from engine output, using engine values",
			"clientTDEE", req.Metrics.TDEE,
			"engineTDEE", computed.TDEE,
		)
	}

	plan, err := h.generator.Generate(r.Context(), *req.UserInput, computed, req.Preferences, req.Restrictions)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mealPlanResponse{Success: true, MealPlan: plan})
}

func readImageGroup(headers []*multipart.FileHeader, role models.ImageRole) ([]models.ImageAsset, error) {
	assets := make([]models.ImageAsset, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, &models.ValidationError{Field: string(role), Message: "Não foi possível ler a imagem enviada."}
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, &models.ValidationError{Field: string(role), Message: "Não foi possível ler a imagem enviada."}
		}
		assets = append(assets, models.ImageAsset{
			Data: data,
			MIME: header.Header.Get("Content-Type"),
			Role: role,
		})
	}
	return assets, nil
}

// writeError maps the failure taxonomy onto HTTP statuses and user-facing
// messages: bad input, policy block and transient upstream failures each get
// a distinct explanation.
func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	var vErr *models.ValidationError

	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Dados inválidos",
			Details: vErr.Message,
		})
	case errors.Is(err, ai.ErrModelBlocked):
		h.logger.Warnw("model output blocked by content filter", "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:   "Conteúdo bloqueado",
			Details: "A análise foi bloqueada pelo filtro de segurança do modelo. Tente enviar outras imagens.",
		})
	case errors.Is(err, ai.ErrSchemaValidation):
		h.logger.Errorw("structured output failed validation", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error:   "Não foi possível gerar o plano alimentar",
			Details: "O modelo retornou um plano em formato inesperado. Tente novamente.",
		})
	case errors.Is(err, ai.ErrEmptyModelOutput):
		h.logger.Errorw("model returned empty output", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error:   "O modelo de IA retornou uma resposta vazia",
			Details: "Tente novamente em instantes.",
		})
	case errors.Is(err, ai.ErrUpstream):
		h.logger.Errorw("upstream model call failed", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error:   "Erro de comunicação com o provedor de IA",
			Details: "Falha temporária. Tente novamente.",
		})
	default:
		h.logger.Errorw("unexpected error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Erro interno",
			Details: "Tente novamente.",
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
