package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// OpenAIOptions configures an OpenAI-compatible chat endpoint
type OpenAIOptions struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// OpenAI calls POST {base}/v1/chat/completions, as served by OpenAI, vLLM,
// llama.cpp and similar local model servers.
type OpenAI struct {
	client   *resty.Client
	opts     OpenAIOptions
	recorder *Recorder
	logger   *slog.Logger
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// NewOpenAI creates a new OpenAI-compatible provider
func NewOpenAI(opts OpenAIOptions, recorder *Recorder, logger *slog.Logger) *OpenAI {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(opts.BaseURL, "/"))
	client.SetTimeout(time.Second * 90)
	client.SetHeader("content-type", "application/json")
	if opts.APIKey != "" {
		client.SetAuthToken(opts.APIKey)
	}

	return &OpenAI{
		client:   client,
		opts:     opts,
		recorder: recorder,
		logger:   logger.With("component", "llm", "provider", "openai"),
	}
}

// Complete sends the chat and returns the first choice's content
func (o *OpenAI) Complete(ctx context.Context, req ChatRequest) (string, error) {
	ctx, span := tracer.Start(ctx, "OpenAI.Complete")
	defer span.End()
	span.SetAttributes(attribute.String("llm.model", o.opts.Model))

	body := chatCompletionRequest{
		Model:       o.opts.Model,
		Messages:    req.Messages,
		Temperature: o.opts.Temperature,
		MaxTokens:   o.opts.MaxTokens,
	}
	if req.Temperature != 0 {
		body.Temperature = req.Temperature
	}
	if req.MaxTokens != 0 {
		body.MaxTokens = req.MaxTokens
	}

	var out chatCompletionResponse
	res, err := o.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post("/v1/chat/completions")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "chat completion request failed")
		return "", fmt.Errorf("failed to call chat completions: %w", err)
	}
	if res.IsError() {
		err := fmt.Errorf("chat completions returned %s: %s", res.Status(), res.String())
		span.RecordError(err)
		span.SetStatus(codes.Error, "chat completion rejected")
		o.recorder.Record(Exchange{Provider: "openai", Model: o.opts.Model, Messages: req.Messages, Error: err.Error()})
		return "", err
	}

	var text string
	if len(out.Choices) > 0 {
		text = out.Choices[0].Message.Content
	}
	o.recorder.Record(Exchange{Provider: "openai", Model: o.opts.Model, Messages: req.Messages, Response: text})

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("chat completions returned empty response")
	}

	o.logger.Debug("chat completion", "chars", len(text))
	return text, nil
}
