package services

import (
	"context"
	"strings"

	"github.com/thomas-vilte/aigit/internal/ai"
	"github.com/thomas-vilte/aigit/internal/budget"
	"github.com/thomas-vilte/aigit/internal/errors"
	"github.com/thomas-vilte/aigit/internal/logger"
	"github.com/thomas-vilte/aigit/internal/models"
	"github.com/thomas-vilte/aigit/internal/regex"
	"github.com/thomas-vilte/aigit/internal/scrub"
)

// CommitGit is the slice of git the commit pipeline needs.
type CommitGit interface {
	HasStagedChanges(ctx context.Context) (bool, error)
	StagedDiff(ctx context.Context) (string, error)
	CreateCommit(ctx context.Context, message string) error
}

// InvokerFactory builds the AI invoker on demand, after the pre-flight checks
// have passed.
type InvokerFactory func(ctx context.Context) (ai.TextGenerator, error)

type CommitOptions struct {
	DryRun bool
}

type CommitService struct {
	git        CommitGit
	stats      budget.StatSource
	newInvoker InvokerFactory
	budget     models.Budget
	prompt     ai.PromptOptions
}

func NewCommitService(git CommitGit, stats budget.StatSource, newInvoker InvokerFactory, b models.Budget, prompt ai.PromptOptions) *CommitService {
	return &CommitService{
		git:        git,
		stats:      stats,
		newInvoker: newInvoker,
		budget:     b,
		prompt:     prompt,
	}
}

// Run generates a message for the staged changes and commits them. When the
// commit itself fails the returned Outcome still carries the generated message.
func (s *CommitService) Run(ctx context.Context, opts CommitOptions) (models.Outcome, error) {
	log := logger.FromContext(ctx)

	staged, err := s.git.HasStagedChanges(ctx)
	if err != nil {
		return models.Outcome{}, err
	}
	if !staged {
		return models.Outcome{}, errors.ErrNoStagedChanges
	}

	invoker, err := s.newInvoker(ctx)
	if err != nil {
		return models.Outcome{}, err
	}

	diff, err := s.git.StagedDiff(ctx)
	if err != nil {
		return models.Outcome{}, err
	}
	cs := models.ChangeSet{Raw: scrub.Scrub(diff)}
	if cs.IsEmpty() {
		return models.Outcome{}, errors.ErrNoStagedChanges
	}

	content := budget.NewBudgeter(s.budget, s.stats).Summarize(ctx, cs)
	prompt, err := ai.BuildPrompt(ai.PromptCommit, content, s.prompt)
	if err != nil {
		return models.Outcome{}, errors.NewAppError(errors.TypeInternal, "failed to build prompt", err)
	}

	log.Debug("requesting commit message",
		"diff_size", cs.Len(),
		"prompt_length", len(prompt))

	resp, err := invoker.Invoke(ctx, prompt)
	if err != nil {
		return models.Outcome{}, err
	}

	outcome := models.Outcome{
		Kind:    models.OutcomePreview,
		Message: SanitizeCommitMessage(resp.Text),
		Usage:   resp.Usage,
	}
	if outcome.Message == "" {
		return models.Outcome{}, errors.ErrMalformedResponse.WithMessage("generated commit message is empty")
	}

	if opts.DryRun {
		return outcome, nil
	}

	if err := s.git.CreateCommit(ctx, outcome.Message); err != nil {
		return outcome, err
	}

	outcome.Kind = models.OutcomeCommit
	log.Info("commit created", "message", outcome.Message)
	return outcome, nil
}

// SanitizeCommitMessage collapses line breaks into single spaces and trims the
// result, so the message is a single subject line.
func SanitizeCommitMessage(text string) string {
	return strings.TrimSpace(regex.LineBreaks.ReplaceAllString(strings.TrimSpace(text), " "))
}
