// Package config loads the typed runtime configuration from an optional .env
// file and the process environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	domainErrors "github.com/thomas-vilte/aigit/internal/errors"
	"github.com/thomas-vilte/aigit/internal/models"
)

type (
	Config struct {
		Bedrock  BedrockConfig  `envconfig:"AWS"`
		Chat     ChatConfig     `envconfig:"LLM"`
		Gemini   GeminiConfig   `envconfig:"GEMINI"`
		AI       AIConfig       `envconfig:"AI"`
		Diff     DiffConfig     `envconfig:"DIFF"`
		Commit   CommitConfig   `envconfig:"COMMIT"`
		Review   ReviewConfig   `envconfig:"REVIEW"`
		Analyzer AnalyzerConfig `envconfig:"ANALYZER"`
		GitHub   GitHubConfig   `envconfig:"GITHUB"`

		// PRNumber overrides the pull request detected from GITHUB_REF.
		PRNumber string `envconfig:"PR_NUMBER"`

		MaxPromptLength int    `envconfig:"MAX_PROMPT_LENGTH" default:"16000"`
		Language        string `envconfig:"AIGIT_LANG" default:"en"`
		LogLevel        string `envconfig:"AIGIT_LOG_LEVEL" default:"warn"`
	}

	// BedrockConfig configures the AWS Bedrock Converse provider.
	BedrockConfig struct {
		AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
		SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
		Region          string `envconfig:"REGION" default:"us-east-1"`
		ModelID         string `envconfig:"BEDROCK_MODEL_ID" default:"anthropic.claude-3-5-sonnet-20240620-v1:0"`
	}

	// ChatConfig configures an OpenAI-compatible chat completions endpoint.
	ChatConfig struct {
		APIURL      string  `envconfig:"API_URL" default:"https://labs-ai-proxy.acloud.guru/openai/chatgpt-4o/v1/chat/completions"`
		APIKey      string  `envconfig:"API_KEY"`
		Model       string  `envconfig:"MODEL" default:"gpt-4o-mini"`
		MaxTokens   int     `envconfig:"MAX_TOKENS" default:"800"`
		Temperature float32 `envconfig:"TEMPERATURE" default:"0.2"`
	}

	GeminiConfig struct {
		APIKey string `envconfig:"API_KEY"`
		Model  string `envconfig:"MODEL" default:"gemini-2.5-flash"`
	}

	// AIConfig holds provider selection and the retry policy shared by all providers.
	AIConfig struct {
		CommitProvider string        `envconfig:"COMMIT_PROVIDER" default:"bedrock"`
		ReviewProvider string        `envconfig:"REVIEW_PROVIDER" default:"chat"`
		MaxRetries     int           `envconfig:"MAX_RETRIES" default:"3"`
		RetryDelay     time.Duration `envconfig:"RETRY_DELAY" default:"1s"`
		Timeout        time.Duration `envconfig:"TIMEOUT" default:"60s"`
	}

	DiffConfig struct {
		MaxSize     int `envconfig:"MAX_SIZE" default:"8000"`
		SummarySize int `envconfig:"SUMMARY_SIZE" default:"3000"`
		MaxForPR    int `envconfig:"MAX_FOR_PR" default:"9000"`
	}

	// CommitConfig is passed to the model as guidance only; generated
	// messages are not validated against it.
	CommitConfig struct {
		MaxLength int      `envconfig:"MAX_LENGTH" default:"72"`
		Types     []string `envconfig:"TYPES" default:"feat,fix,docs,style,refactor,test,chore"`
	}

	ReviewConfig struct {
		BaseRef string `envconfig:"BASE_REF" default:"origin/main"`
		HeadRef string `envconfig:"HEAD_REF" default:"HEAD"`
	}

	// AnalyzerConfig configures the optional static analyzer. An empty
	// command disables it.
	AnalyzerConfig struct {
		Command   string `envconfig:"COMMAND" default:"npx eslint . -f json --no-error-on-unmatched-pattern"`
		MaxOutput int    `envconfig:"MAX_OUTPUT" default:"8000"`
	}

	GitHubConfig struct {
		Token      string `envconfig:"TOKEN"`
		Repository string `envconfig:"REPOSITORY"`
		Ref        string `envconfig:"REF"`
		APIURL     string `envconfig:"API_URL"`
	}
)

// LoadDotEnv loads variables from a .env file without overriding the
// environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// LoadConfig reads the optional .env file at envPath, then the environment,
// and validates the result.
func LoadConfig(envPath string) (*Config, error) {
	if err := LoadDotEnv(envPath); err != nil {
		return nil, domainErrors.ErrInvalidConfig.WithMessage("failed to read env file").WithError(err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, domainErrors.ErrInvalidConfig.WithError(err)
	}

	cfg.Language = NormalizeLanguage(cfg.Language)

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// CommitBudget is the budget applied to staged diffs.
func (c *Config) CommitBudget() models.Budget {
	return models.Budget{Threshold: c.Diff.MaxSize, SummaryPrefixLength: c.Diff.SummarySize}
}

// ReviewBudget is the budget applied to pull request diffs.
func (c *Config) ReviewBudget() models.Budget {
	return models.Budget{Threshold: c.Diff.MaxForPR, SummaryPrefixLength: c.Diff.SummarySize}
}

func validateConfig(cfg *Config) error {
	positive := map[string]int{
		"DIFF_MAX_SIZE":       cfg.Diff.MaxSize,
		"DIFF_SUMMARY_SIZE":   cfg.Diff.SummarySize,
		"DIFF_MAX_FOR_PR":     cfg.Diff.MaxForPR,
		"MAX_PROMPT_LENGTH":   cfg.MaxPromptLength,
		"AI_MAX_RETRIES":      cfg.AI.MaxRetries,
		"ANALYZER_MAX_OUTPUT": cfg.Analyzer.MaxOutput,
		"COMMIT_MAX_LENGTH":   cfg.Commit.MaxLength,
	}
	for name, v := range positive {
		if v <= 0 {
			return domainErrors.ErrInvalidConfig.
				WithMessage(fmt.Sprintf("%s must be greater than 0", name)).
				WithContext("value", v)
		}
	}

	if cfg.AI.RetryDelay < 0 {
		return domainErrors.ErrInvalidConfig.WithMessage("AI_RETRY_DELAY must not be negative")
	}

	for name, p := range map[string]string{
		"AI_COMMIT_PROVIDER": cfg.AI.CommitProvider,
		"AI_REVIEW_PROVIDER": cfg.AI.ReviewProvider,
	} {
		if !IsSupportedProvider(Provider(p)) {
			return domainErrors.ErrUnknownProvider.
				WithMessage(fmt.Sprintf("%s: provider '%s' not supported", name, p))
		}
	}

	if cfg.GitHub.Repository != "" && strings.Count(cfg.GitHub.Repository, "/") != 1 {
		return domainErrors.ErrInvalidConfig.
			WithMessage("GITHUB_REPOSITORY must have the form owner/repo").
			WithContext("value", cfg.GitHub.Repository)
	}

	return nil
}
