// Package chat implements a Generator for OpenAI-compatible chat completion
// endpoints, including proxies that answer with an event stream.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/thomas-vilte/aigit/internal/ai"
	domainErrors "github.com/thomas-vilte/aigit/internal/errors"
	"github.com/thomas-vilte/aigit/internal/logger"
	"github.com/thomas-vilte/aigit/internal/models"
	"github.com/thomas-vilte/aigit/internal/textutil"
)

const defaultTimeout = 60 * time.Second

var _ ai.Generator = (*Generator)(nil)

type Generator struct {
	httpClient  *http.Client
	url         string
	apiKey      string
	model       string
	maxTokens   int
	temperature float32
}

type Options struct {
	URL         string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
	HTTPClient  *http.Client
}

func New(opts Options) (*Generator, error) {
	if opts.APIKey == "" {
		return nil, domainErrors.ErrMissingCredential.
			WithMessage("LLM_API_KEY not set").
			WithContext("provider", "chat")
	}
	if opts.URL == "" {
		return nil, domainErrors.ErrInvalidConfig.WithMessage("LLM_API_URL must not be empty")
	}

	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &Generator{
		httpClient:  client,
		url:         opts.URL,
		apiKey:      opts.APIKey,
		model:       opts.Model,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
	}, nil
}

func (g *Generator) Name() string {
	return "chat"
}

func (g *Generator) Generate(ctx context.Context, prompt string) (models.AIResponse, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
		Stream:      false,
	}

	body, err := g.doRequest(ctx, req)
	if err != nil {
		return models.AIResponse{}, err
	}

	return ai.DecodeResponse(body)
}

func (g *Generator) doRequest(ctx context.Context, req openai.ChatCompletionRequest) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, domainErrors.NewAppError(domainErrors.TypeInternal, "failed to marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return nil, domainErrors.ErrInvalidConfig.WithMessage("failed to create request").WithError(err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	start := time.Now()
	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, domainErrors.ErrTransientCallFailure.WithMessage("request failed").WithError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domainErrors.ErrTransientCallFailure.
			WithMessage("failed to read response").
			WithError(err).
			WithContext("status", resp.StatusCode)
	}

	logger.Debug(ctx, "chat completion response received",
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"body_size", len(respBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domainErrors.ErrTransientCallFailure.
			WithMessage(fmt.Sprintf("LLM call failed with status %d", resp.StatusCode)).
			WithContext("status", resp.StatusCode).
			WithContext("body", textutil.Preview(string(respBody), 500))
	}

	return respBody, nil
}
