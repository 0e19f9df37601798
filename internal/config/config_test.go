package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/aigit/internal/errors"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "us-east-1", cfg.Bedrock.Region)
	assert.Equal(t, "gpt-4o-mini", cfg.Chat.Model)
	assert.Equal(t, 800, cfg.Chat.MaxTokens)
	assert.InDelta(t, 0.2, cfg.Chat.Temperature, 0.0001)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)

	assert.Equal(t, "bedrock", cfg.AI.CommitProvider)
	assert.Equal(t, "chat", cfg.AI.ReviewProvider)
	assert.Equal(t, 3, cfg.AI.MaxRetries)
	assert.Equal(t, time.Second, cfg.AI.RetryDelay)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)

	assert.Equal(t, 8000, cfg.Diff.MaxSize)
	assert.Equal(t, 3000, cfg.Diff.SummarySize)
	assert.Equal(t, 9000, cfg.Diff.MaxForPR)
	assert.Equal(t, 8000, cfg.Analyzer.MaxOutput)
	assert.Equal(t, 16000, cfg.MaxPromptLength)

	assert.Equal(t, 72, cfg.Commit.MaxLength)
	assert.Equal(t, []string{"feat", "fix", "docs", "style", "refactor", "test", "chore"}, cfg.Commit.Types)
	assert.Equal(t, "origin/main", cfg.Review.BaseRef)
	assert.Equal(t, "HEAD", cfg.Review.HeadRef)
	assert.Equal(t, LangEN, cfg.Language)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIAEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("AI_REVIEW_PROVIDER", "gemini")
	t.Setenv("AI_RETRY_DELAY", "250ms")
	t.Setenv("DIFF_MAX_SIZE", "100")
	t.Setenv("COMMIT_TYPES", "feat,fix")
	t.Setenv("ANALYZER_COMMAND", "")
	t.Setenv("GITHUB_REPOSITORY", "thomas-vilte/aigit")
	t.Setenv("AIGIT_LANG", "ES")

	cfg, err := LoadConfig(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "AKIAEXAMPLE", cfg.Bedrock.AccessKeyID)
	assert.Equal(t, "secret", cfg.Bedrock.SecretAccessKey)
	assert.Equal(t, "eu-west-1", cfg.Bedrock.Region)
	assert.Equal(t, "sk-test", cfg.Chat.APIKey)
	assert.Equal(t, "gemini", cfg.AI.ReviewProvider)
	assert.Equal(t, 250*time.Millisecond, cfg.AI.RetryDelay)
	assert.Equal(t, 100, cfg.Diff.MaxSize)
	assert.Equal(t, []string{"feat", "fix"}, cfg.Commit.Types)
	assert.Empty(t, cfg.Analyzer.Command, "an explicitly empty command disables the analyzer")
	assert.Equal(t, "thomas-vilte/aigit", cfg.GitHub.Repository)
	assert.Equal(t, LangES, cfg.Language)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("LLM_MODEL=from-dotenv\nAI_MAX_RETRIES=5\n"), 0o600))

	t.Setenv("AI_MAX_RETRIES", "2")
	t.Cleanup(func() { _ = os.Unsetenv("LLM_MODEL") })

	cfg, err := LoadConfig(envPath)
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.Chat.Model)
	assert.Equal(t, 2, cfg.AI.MaxRetries, "the environment wins over the .env file")
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr *domainErrors.AppError
	}{
		{
			name:    "zero retries",
			env:     map[string]string{"AI_MAX_RETRIES": "0"},
			wantErr: domainErrors.ErrInvalidConfig,
		},
		{
			name:    "negative threshold",
			env:     map[string]string{"DIFF_MAX_SIZE": "-1"},
			wantErr: domainErrors.ErrInvalidConfig,
		},
		{
			name:    "not a number",
			env:     map[string]string{"MAX_PROMPT_LENGTH": "lots"},
			wantErr: domainErrors.ErrInvalidConfig,
		},
		{
			name:    "unknown commit provider",
			env:     map[string]string{"AI_COMMIT_PROVIDER": "copilot"},
			wantErr: domainErrors.ErrUnknownProvider,
		},
		{
			name:    "malformed repository",
			env:     map[string]string{"GITHUB_REPOSITORY": "just-a-name"},
			wantErr: domainErrors.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(missingEnvFile(t))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestConfig_Budgets(t *testing.T) {
	cfg := &Config{Diff: DiffConfig{MaxSize: 10, SummarySize: 4, MaxForPR: 20}}

	assert.Equal(t, 10, cfg.CommitBudget().Threshold)
	assert.Equal(t, 4, cfg.CommitBudget().SummaryPrefixLength)
	assert.Equal(t, 20, cfg.ReviewBudget().Threshold)
	assert.Equal(t, 4, cfg.ReviewBudget().SummaryPrefixLength)
}

func TestNormalizeLanguage(t *testing.T) {
	assert.Equal(t, LangEN, NormalizeLanguage("en"))
	assert.Equal(t, LangES, NormalizeLanguage(" es "))
	assert.Equal(t, LangEN, NormalizeLanguage("fr"))
	assert.Equal(t, LangEN, NormalizeLanguage(""))
}

func TestIsSupportedProvider(t *testing.T) {
	for _, p := range SupportedProviders() {
		assert.True(t, IsSupportedProvider(p))
	}
	assert.False(t, IsSupportedProvider("openai"))
}
