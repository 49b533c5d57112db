package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.opentelemetry.io/otel/codes"
)

// Anthropic implements the Provider interface using Anthropic's Claude API
type Anthropic struct {
	client    *anthropic.Client
	model     string
	maxTokens int
	recorder  *Recorder
	logger    *slog.Logger
}

// NewAnthropic creates a new Anthropic provider
func NewAnthropic(apiKey, model string, maxTokens int, recorder *Recorder, logger *slog.Logger) *Anthropic {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &Anthropic{
		client:    &client,
		model:     model,
		maxTokens: maxTokens,
		recorder:  recorder,
		logger:    logger.With("component", "llm", "provider", "anthropic"),
	}
}

// Complete sends the chat to Claude. System messages become the system prompt.
func (a *Anthropic) Complete(ctx context.Context, req ChatRequest) (string, error) {
	ctx, span := tracer.Start(ctx, "Anthropic.Complete")
	defer span.End()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(a.maxTokens),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = int64(req.MaxTokens)
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			params.System = append(params.System, anthropic.TextBlockParam{Text: m.Content})
		case RoleAssistant:
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	message, err := a.client.Messages.New(ctx, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "claude request failed")
		a.recorder.Record(Exchange{Provider: "anthropic", Model: a.model, Messages: req.Messages, Error: err.Error()})
		return "", fmt.Errorf("failed to call Claude API: %w", err)
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}
	a.recorder.Record(Exchange{Provider: "anthropic", Model: a.model, Messages: req.Messages, Response: responseText})

	if responseText == "" {
		return "", fmt.Errorf("Claude returned empty response")
	}
	return responseText, nil
}
