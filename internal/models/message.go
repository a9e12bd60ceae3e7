package models

import "strings"

// Message roles exchanged with the conversational model.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// MessagePart is one ordered piece of a message. Only text parts are
// produced by this core; the type field leaves room for media parts coming
// from the presentation layer.
type MessagePart struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// ConversationMessage is one turn of the transcript. Transcripts are
// append-only: a message is never edited or removed once appended.
type ConversationMessage struct {
	Role    string        `json:"role"`
	Content []MessagePart `json:"content"`
}

// TextMessage builds a single-part text message.
func TextMessage(role, text string) ConversationMessage {
	return ConversationMessage{
		Role:    role,
		Content: []MessagePart{{Type: "text", Text: text}},
	}
}

// Text joins the message's text parts in order.
func (m ConversationMessage) Text() string {
	var b strings.Builder
	for _, p := range m.Content {
		if p.Type == "text" {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}
