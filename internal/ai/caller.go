// Package ai wraps the generative-model provider behind a small capability
// interface so pipeline logic stays testable with a fake implementation.
package ai

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/alvesarel/shapeplan/internal/models"
)

// Part is one piece of a message: text, or an image referenced by URL
// (typically a data URL built with ImageDataURL).
type Part struct {
	Text     string
	ImageURL string
}

// Message is one turn sent to the model. Parts keep their order; for vision
// requests that order is part of the contract.
type Message struct {
	Role  string
	Parts []Part
}

// Request describes a single synchronous model call. When Schema is set the
// call asks for schema-constrained JSON output instead of free text.
type Request struct {
	Model       string
	System      string
	Messages    []Message
	Temperature float32
	MaxTokens   int
	SchemaName  string
	Schema      *jsonschema.Definition
}

// Result is the complete (non-streamed) model output.
type Result struct {
	Text  string
	Usage *models.TokenUsage
}

// Caller is the capability this core needs from any model provider.
// Implementations classify failures into the package's sentinel errors.
type Caller interface {
	Complete(ctx context.Context, req Request) (Result, error)
}

// TextPart builds a text part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// ImagePart builds an image part from raw bytes, encoding them into an
// inline data URL.
func ImagePart(data []byte, mimeType string) Part {
	return Part{ImageURL: ImageDataURL(data, mimeType)}
}

// ImageDataURL encodes raw image bytes as a base64 data URL.
func ImageDataURL(data []byte, mimeType string) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// TextMessage builds a single-part text message.
func TextMessage(role, text string) Message {
	return Message{Role: role, Parts: []Part{TextPart(text)}}
}
