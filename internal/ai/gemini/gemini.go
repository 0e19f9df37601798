// Package gemini implements a Generator backed by the Gemini API.
package gemini

import (
	"context"
	"strings"

	"github.com/thomas-vilte/aigit/internal/ai"
	domainErrors "github.com/thomas-vilte/aigit/internal/errors"
	"github.com/thomas-vilte/aigit/internal/logger"
	"github.com/thomas-vilte/aigit/internal/models"
	"google.golang.org/genai"
)

const defaultMaxOutputTokens = 800

var _ ai.Generator = (*Generator)(nil)

// contentGenerator is the subset of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Generator struct {
	models      contentGenerator
	model       string
	temperature float32
	maxTokens   int32
}

type Options struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
}

func New(ctx context.Context, opts Options) (*Generator, error) {
	if opts.APIKey == "" {
		return nil, domainErrors.ErrMissingCredential.
			WithMessage("GEMINI_API_KEY is not set").
			WithSuggestion("Export GEMINI_API_KEY or add it to your .env file")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, domainErrors.NewAppError(domainErrors.TypeAI, "error creating AI client", err)
	}

	return newGenerator(client.Models, opts), nil
}

func newGenerator(models contentGenerator, opts Options) *Generator {
	maxTokens := int32(opts.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultMaxOutputTokens
	}
	return &Generator{
		models:      models,
		model:       opts.Model,
		temperature: opts.Temperature,
		maxTokens:   maxTokens,
	}
}

func (g *Generator) Name() string {
	return "gemini"
}

func (g *Generator) Generate(ctx context.Context, prompt string) (models.AIResponse, error) {
	log := logger.FromContext(ctx)

	genConfig := GetGenerateConfig(g.model, g.temperature, g.maxTokens)
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), genConfig)
	if err != nil {
		log.Debug("gemini API call failed",
			"error", err,
			"model", g.model)

		appErr := domainErrors.ErrTransientCallFailure.WithError(err).WithContext("model", g.model)
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "quota") ||
			strings.Contains(errMsg, "rate limit") ||
			strings.Contains(errMsg, "resource exhausted") {
			appErr = appErr.WithSuggestion("Gemini quota exceeded, wait a moment or switch AI_*_PROVIDER")
		}
		return models.AIResponse{}, appErr
	}

	text := extractText(resp)
	if strings.TrimSpace(text) == "" {
		return models.AIResponse{}, domainErrors.ErrMalformedResponse.
			WithMessage("gemini response contains no text").
			WithContext("model", g.model)
	}

	return models.AIResponse{Text: text, Usage: extractUsage(resp)}, nil
}
