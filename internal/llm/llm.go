// Package llm talks to chat-completion models and turns their free-form output
// into categories and comment text.
package llm

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/ibeckermayer/syndicate/internal/config"
)

var tracer = otel.Tracer("github.com/ibeckermayer/syndicate/internal/llm")

// Role values for Message
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat turn
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a provider-neutral completion request. Zero values use provider defaults.
type ChatRequest struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Provider defines the interface for LLM providers
type Provider interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// New creates the provider named in cfg. baseURL overrides cfg.BaseURL when set.
func New(cfg config.LLMConfig, baseURL string, recorder *Recorder, logger *slog.Logger) (Provider, error) {
	if baseURL == "" {
		baseURL = cfg.BaseURL
	}

	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		return NewOpenAI(OpenAIOptions{
			BaseURL:     baseURL,
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		}, recorder, logger), nil
	case config.ProviderAnthropic:
		return NewAnthropic(cfg.APIKey, cfg.Model, cfg.MaxTokens, recorder, logger), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}
}
