package llm

import (
	"context"
	"strings"
)

// OllamaProvider talks to a local Ollama daemon through its
// OpenAI-compatible endpoint.
type OllamaProvider struct {
	openai *OpenAIProvider
}

func NewOllamaProvider(cfg Config) *OllamaProvider {
	cfgCopy := cfg
	if strings.TrimSpace(cfgCopy.APIURL) == "" {
		cfgCopy.APIURL = "http://localhost:11434/v1"
	}
	if strings.TrimSpace(cfgCopy.APIKey) == "" {
		cfgCopy.APIKey = "ollama"
	}
	provider, _ := NewOpenAIProvider(cfgCopy)
	return &OllamaProvider{openai: provider}
}

func (p *OllamaProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	return p.openai.Complete(ctx, messages)
}
