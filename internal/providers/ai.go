package providers

import (
	"context"
	"fmt"

	"github.com/thomas-vilte/aigit/internal/ai"
	"github.com/thomas-vilte/aigit/internal/ai/bedrock"
	"github.com/thomas-vilte/aigit/internal/ai/chat"
	"github.com/thomas-vilte/aigit/internal/ai/gemini"
	"github.com/thomas-vilte/aigit/internal/config"
	domainErrors "github.com/thomas-vilte/aigit/internal/errors"
)

// NewGenerator creates the Generator for the named provider. Missing
// credentials fail here, before any prompt is built.
func NewGenerator(ctx context.Context, cfg *config.Config, provider config.Provider) (ai.Generator, error) {
	switch provider {
	case config.ProviderBedrock:
		gen, err := bedrock.New(ctx, bedrock.Options{
			AccessKeyID:     cfg.Bedrock.AccessKeyID,
			SecretAccessKey: cfg.Bedrock.SecretAccessKey,
			Region:          cfg.Bedrock.Region,
			ModelID:         cfg.Bedrock.ModelID,
			MaxTokens:       cfg.Chat.MaxTokens,
			Temperature:     cfg.Chat.Temperature,
		})
		if err != nil {
			return nil, err
		}
		return gen, nil
	case config.ProviderChat:
		gen, err := chat.New(chat.Options{
			URL:         cfg.Chat.APIURL,
			APIKey:      cfg.Chat.APIKey,
			Model:       cfg.Chat.Model,
			MaxTokens:   cfg.Chat.MaxTokens,
			Temperature: cfg.Chat.Temperature,
			Timeout:     cfg.AI.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return gen, nil
	case config.ProviderGemini:
		gen, err := gemini.New(ctx, gemini.Options{
			APIKey:      cfg.Gemini.APIKey,
			Model:       cfg.Gemini.Model,
			Temperature: cfg.Chat.Temperature,
			MaxTokens:   cfg.Chat.MaxTokens,
		})
		if err != nil {
			return nil, err
		}
		return gen, nil
	default:
		return nil, domainErrors.ErrUnknownProvider.
			WithMessage(fmt.Sprintf("AI provider '%s' not supported", provider))
	}
}

// NewInvoker wraps the provider's Generator in the configured retry policy.
func NewInvoker(ctx context.Context, cfg *config.Config, provider config.Provider) (*ai.Invoker, error) {
	gen, err := NewGenerator(ctx, cfg, provider)
	if err != nil {
		return nil, err
	}
	return ai.NewInvoker(gen, cfg.AI.MaxRetries, cfg.AI.RetryDelay), nil
}
