package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/alvesarel/shapeplan/internal/models"
)

// Client calls an OpenAI-compatible endpoint (the AI gateway in production).
// It implements Caller.
type Client struct {
	apiKey  string
	client  *openai.Client
	timeout time.Duration
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		client:  openai.NewClient(apiKey),
		timeout: 90 * time.Second,
	}
}

// WithBaseURL points the client at a different OpenAI-compatible endpoint.
func (c *Client) WithBaseURL(baseURL string) *Client {
	cfg := openai.DefaultConfig(c.apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	c.client = openai.NewClientWithConfig(cfg)
	return c
}

// WithTimeout bounds each Complete call. Zero disables the bound.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.timeout = d
	return c
}

// Complete issues one synchronous chat completion and classifies failures
// into the package sentinels. An empty or whitespace-only response is always
// ErrEmptyModelOutput, regardless of the reported finish reason.
func (c *Client) Complete(ctx context.Context, req Request) (Result, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    buildMessages(req),
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	if req.Schema != nil {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.SchemaName,
				Schema: req.Schema,
				Strict: true,
			},
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if len(resp.Choices) == 0 {
		return Result{}, fmt.Errorf("%w: sem escolhas na resposta", ErrEmptyModelOutput)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return Result{}, ErrModelBlocked
	}

	text := choice.Message.Content
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyModelOutput
	}

	return Result{
		Text: text,
		Usage: &models.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

func buildMessages(req Request) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)

	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}

	for _, m := range req.Messages {
		messages = append(messages, toChatMessage(m))
	}
	return messages
}

func toChatMessage(m Message) openai.ChatCompletionMessage {
	// Plain text turns use the simple content field; anything with images
	// goes through multi-part content in the original part order.
	if len(m.Parts) == 1 && m.Parts[0].ImageURL == "" {
		return openai.ChatCompletionMessage{Role: m.Role, Content: m.Parts[0].Text}
	}

	parts := make([]openai.ChatMessagePart, 0, len(m.Parts))
	for _, p := range m.Parts {
		if p.ImageURL != "" {
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    p.ImageURL,
					Detail: openai.ImageURLDetailAuto,
				},
			})
			continue
		}
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeText,
			Text: p.Text,
		})
	}

	return openai.ChatCompletionMessage{Role: m.Role, MultiContent: parts}
}
