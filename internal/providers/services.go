package providers

import (
	"context"

	"github.com/thomas-vilte/aigit/internal/ai"
	"github.com/thomas-vilte/aigit/internal/analyzer"
	"github.com/thomas-vilte/aigit/internal/budget"
	"github.com/thomas-vilte/aigit/internal/config"
	"github.com/thomas-vilte/aigit/internal/git"
	"github.com/thomas-vilte/aigit/internal/services"
	"github.com/thomas-vilte/aigit/internal/vcs"
)

// PromptOptions returns the prompt settings shared by both pipelines.
func PromptOptions(cfg *config.Config) ai.PromptOptions {
	return ai.PromptOptions{
		Language:        cfg.Language,
		CommitTypes:     cfg.Commit.Types,
		MaxCommitLength: cfg.Commit.MaxLength,
		MaxPromptLength: cfg.MaxPromptLength,
	}
}

// InvokerFactory defers provider construction, and its credential checks,
// until the pipeline asks for it.
func InvokerFactory(cfg *config.Config, provider config.Provider) services.InvokerFactory {
	return func(ctx context.Context) (ai.TextGenerator, error) {
		inv, err := NewInvoker(ctx, cfg, provider)
		if err != nil {
			return nil, err
		}
		return inv, nil
	}
}

func NewCommitService(cfg *config.Config, gitService *git.GitService, provider config.Provider) *services.CommitService {
	return services.NewCommitService(
		gitService,
		gitService.StagedStats(),
		InvokerFactory(cfg, provider),
		cfg.CommitBudget(),
		PromptOptions(cfg),
	)
}

func NewReviewService(cfg *config.Config, gitService *git.GitService, provider config.Provider) *services.ReviewService {
	return services.NewReviewService(
		gitService,
		analyzer.New(cfg.Analyzer.Command, cfg.Analyzer.MaxOutput),
		func(base, head string) budget.StatSource {
			return gitService.RangeStats(base, head)
		},
		InvokerFactory(cfg, provider),
		func(ctx context.Context) (vcs.CommentPoster, error) {
			return NewCommentPoster(ctx, cfg, gitService)
		},
		cfg.ReviewBudget(),
		PromptOptions(cfg),
	)
}
