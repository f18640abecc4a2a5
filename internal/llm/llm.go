package llm

import (
	"context"
	"time"
)

// TokenUsage tracks the tokens consumed by a request.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   TokenUsage
}

// TextGenerator is an interface for generating text from a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (ContentResponse, error)
}

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ChatMessage is a single turn of the assistant dialogue. Messages live in
// session memory only and are never persisted.
type ChatMessage struct {
	Role      Role
	Content   string
	Timestamp time.Time
}

// Chatter is an interface for multi-turn conversations with a model.
type Chatter interface {
	SendChat(ctx context.Context, history []ChatMessage, message string) (ContentResponse, error)
}
