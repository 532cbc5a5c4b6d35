package llm

import "context"

// Provider defines the interface for hosted LLM chat providers. Complete
// sends the full message history and blocks until the reply text is available.
type Provider interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Message is a single turn in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat roles understood by all providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
