package driven

import "context"

// LLMService answers free-form questions about a chart.
// It is optional: without one, questions are refused and deterministic
// reports are still produced.
//
// Adapters exist for OpenAI-compatible servers, Anthropic, Gemini and Ollama.
type LLMService interface {
	// Chat sends a conversation and returns the model's reply.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the configured model.
	ModelName() string

	// Ping checks the provider is reachable with a cheap request.
	Ping(ctx context.Context) error

	Close() error
}

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	// Role is RoleSystem, RoleUser or RoleAssistant.
	Role    string
	Content string
}

// ChatOptions bounds a reply. Zero values leave the provider default.
type ChatOptions struct {
	MaxTokens   int
	Temperature float64
	StopWords   []string
}
