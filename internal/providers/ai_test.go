package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/aigit/internal/config"
	domainErrors "github.com/thomas-vilte/aigit/internal/errors"
)

func baseConfig() *config.Config {
	return &config.Config{
		Chat: config.ChatConfig{
			APIURL:      "https://llm.example.com/v1/chat/completions",
			Model:       "gpt-4o-mini",
			MaxTokens:   800,
			Temperature: 0.2,
		},
		Bedrock: config.BedrockConfig{Region: "us-east-1", ModelID: "anthropic.claude-3-5-sonnet-20240620-v1:0"},
		Gemini:  config.GeminiConfig{Model: "gemini-2.5-flash"},
		AI:      config.AIConfig{MaxRetries: 3, RetryDelay: time.Second, Timeout: time.Minute},
	}
}

func TestNewGenerator_TypedNilCheck(t *testing.T) {
	for _, p := range config.SupportedProviders() {
		t.Run(string(p), func(t *testing.T) {
			gen, err := NewGenerator(context.Background(), baseConfig(), p)

			assert.Error(t, err)
			assert.True(t, errors.Is(err, domainErrors.ErrMissingCredential))
			assert.True(t, gen == nil, "Generator interface should be truly nil, not a typed nil")
		})
	}
}

func TestNewGenerator_UnknownProvider(t *testing.T) {
	gen, err := NewGenerator(context.Background(), baseConfig(), "copilot")

	assert.True(t, gen == nil)
	assert.True(t, errors.Is(err, domainErrors.ErrUnknownProvider))
}

func TestNewGenerator_Chat(t *testing.T) {
	cfg := baseConfig()
	cfg.Chat.APIKey = "sk-test"

	gen, err := NewGenerator(context.Background(), cfg, config.ProviderChat)

	require.NoError(t, err)
	assert.Equal(t, "chat", gen.Name())
}

func TestNewInvoker(t *testing.T) {
	cfg := baseConfig()
	cfg.Chat.APIKey = "sk-test"

	inv, err := NewInvoker(context.Background(), cfg, config.ProviderChat)
	require.NoError(t, err)
	assert.NotNil(t, inv)

	inv, err = NewInvoker(context.Background(), baseConfig(), config.ProviderChat)
	assert.Error(t, err)
	assert.Nil(t, inv)
}

func TestInvokerFactory_DefersCredentialCheck(t *testing.T) {
	factory := InvokerFactory(baseConfig(), config.ProviderChat)

	inv, err := factory(context.Background())

	assert.True(t, inv == nil)
	assert.True(t, errors.Is(err, domainErrors.ErrMissingCredential))
}

func TestPromptOptions(t *testing.T) {
	cfg := baseConfig()
	cfg.Language = "es"
	cfg.Commit.Types = []string{"feat", "fix"}
	cfg.Commit.MaxLength = 72
	cfg.MaxPromptLength = 16000

	opts := PromptOptions(cfg)

	assert.Equal(t, "es", opts.Language)
	assert.Equal(t, []string{"feat", "fix"}, opts.CommitTypes)
	assert.Equal(t, 72, opts.MaxCommitLength)
	assert.Equal(t, 16000, opts.MaxPromptLength)
}
