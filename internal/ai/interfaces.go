package ai

import (
	"context"

	"github.com/thomas-vilte/aigit/internal/models"
)

// Generator is one inference backend. Generate sends prompt as a single
// user-role text turn and returns the generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (models.AIResponse, error)

	// Name returns the provider name (e.g.: "bedrock", "chat", "gemini")
	Name() string
}

// TextGenerator is what the pipelines depend on: a Generator call wrapped in
// the retry policy.
type TextGenerator interface {
	Invoke(ctx context.Context, prompt string) (models.AIResponse, error)
}
