package services

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/thomas-vilte/aigit/internal/ai"
	"github.com/thomas-vilte/aigit/internal/budget"
	"github.com/thomas-vilte/aigit/internal/errors"
	"github.com/thomas-vilte/aigit/internal/logger"
	"github.com/thomas-vilte/aigit/internal/models"
	"github.com/thomas-vilte/aigit/internal/regex"
	"github.com/thomas-vilte/aigit/internal/scrub"
	"github.com/thomas-vilte/aigit/internal/vcs"
	"github.com/thomas-vilte/aigit/internal/vcs/github"
	"golang.org/x/sync/errgroup"
)

// ReviewGit is the slice of git the review pipeline needs.
type ReviewGit interface {
	RangeDiff(ctx context.Context, base, head string) (string, error)
}

// StaticAnalyzer produces the analyzer report. It never fails; unavailable
// analysis is reported as placeholder text.
type StaticAnalyzer interface {
	Run(ctx context.Context) string
}

// StatSourceFactory returns the statistics source for a ref range.
type StatSourceFactory func(base, head string) budget.StatSource

// PosterFactory builds the comment client once a thread is known.
type PosterFactory func(ctx context.Context) (vcs.CommentPoster, error)

type ReviewOptions struct {
	Base string
	Head string
	// GitHubRef is the ref that triggered the workflow, e.g. refs/pull/12/merge.
	GitHubRef string
	// PRNumber is used when GitHubRef names no pull request.
	PRNumber string
	DryRun   bool
}

type ReviewService struct {
	git        ReviewGit
	analyzer   StaticAnalyzer
	stats      StatSourceFactory
	newInvoker InvokerFactory
	newPoster  PosterFactory
	budget     models.Budget
	prompt     ai.PromptOptions
}

func NewReviewService(
	git ReviewGit,
	analyzer StaticAnalyzer,
	stats StatSourceFactory,
	newInvoker InvokerFactory,
	newPoster PosterFactory,
	b models.Budget,
	prompt ai.PromptOptions,
) *ReviewService {
	return &ReviewService{
		git:        git,
		analyzer:   analyzer,
		stats:      stats,
		newInvoker: newInvoker,
		newPoster:  newPoster,
		budget:     b,
		prompt:     prompt,
	}
}

// Run generates a review of base...head and posts it on the pull request.
// Without a resolvable pull request the review is returned as a preview and no
// error is reported. Errors after generation still return the review text.
func (s *ReviewService) Run(ctx context.Context, opts ReviewOptions) (models.Outcome, error) {
	log := logger.FromContext(ctx)

	invoker, err := s.newInvoker(ctx)
	if err != nil {
		return models.Outcome{}, err
	}

	var diff, analysis string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := s.git.RangeDiff(gctx, opts.Base, opts.Head)
		if err != nil {
			return err
		}
		diff = d
		return nil
	})
	g.Go(func() error {
		analysis = s.analyzer.Run(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.Outcome{}, err
	}

	cs := models.ChangeSet{Raw: scrub.Scrub(diff)}
	if cs.IsEmpty() {
		log.Warn("no changes between refs", "base", opts.Base, "head", opts.Head)
	}

	var stats budget.StatSource
	if s.stats != nil {
		stats = s.stats(opts.Base, opts.Head)
	}
	content := budget.NewBudgeter(s.budget, stats).Summarize(ctx, cs)

	promptOpts := s.prompt
	promptOpts.AnalyzerOutput = analysis
	prompt, err := ai.BuildPrompt(ai.PromptReview, content, promptOpts)
	if err != nil {
		return models.Outcome{}, errors.NewAppError(errors.TypeInternal, "failed to build prompt", err)
	}

	log.Debug("requesting review",
		"diff_size", cs.Len(),
		"analysis_length", len(analysis),
		"prompt_length", len(prompt))

	resp, err := invoker.Invoke(ctx, prompt)
	if err != nil {
		return models.Outcome{}, err
	}

	outcome := models.Outcome{
		Kind:    models.OutcomePreview,
		Message: strings.TrimSpace(resp.Text),
		Usage:   resp.Usage,
	}
	if opts.DryRun {
		return outcome, nil
	}

	number, ok := ResolveThread(opts.GitHubRef, opts.PRNumber)
	if !ok {
		log.Warn("pull request number not found, printing review locally",
			"github_ref", opts.GitHubRef,
			"error", errors.ErrThreadNotResolvable)
		return outcome, nil
	}
	outcome.ThreadNumber = number

	poster, err := s.newPoster(ctx)
	if err != nil {
		return outcome, err
	}

	url, err := poster.PostComment(ctx, number, github.FormatReviewComment(outcome.Message))
	if err != nil {
		return outcome, err
	}

	outcome.Kind = models.OutcomeComment
	outcome.CommentURL = url
	log.Info("review posted", "pr_number", number, "url", url)
	return outcome, nil
}

// ResolveThread finds the pull request number in ref, trying the merge ref
// form first, then falls back to prNumber.
func ResolveThread(ref, prNumber string) (int, bool) {
	for _, re := range []*regexp.Regexp{regex.PullRequestMergeRef, regex.PullRequestRef} {
		if m := re.FindStringSubmatch(ref); len(m) == 2 {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				return n, true
			}
		}
	}

	n, err := strconv.Atoi(strings.TrimSpace(prNumber))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
