package review

import (
	"context"
	"strconv"

	"github.com/thomas-vilte/aigit/internal/commands/completion_helper"
	"github.com/thomas-vilte/aigit/internal/config"
	"github.com/thomas-vilte/aigit/internal/i18n"
	"github.com/thomas-vilte/aigit/internal/logger"
	"github.com/thomas-vilte/aigit/internal/models"
	"github.com/thomas-vilte/aigit/internal/services"
	"github.com/thomas-vilte/aigit/internal/ui"
	"github.com/urfave/cli/v3"
)

// Service runs the review pipeline.
type Service interface {
	Run(ctx context.Context, opts services.ReviewOptions) (models.Outcome, error)
}

// ServiceBuilder returns a review service bound to provider.
type ServiceBuilder func(provider config.Provider) Service

type ReviewCommandFactory struct {
	build ServiceBuilder
}

func NewReviewCommandFactory(build ServiceBuilder) *ReviewCommandFactory {
	return &ReviewCommandFactory{build: build}
}

func (f *ReviewCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "review",
		Aliases:       []string{"r"},
		Usage:         t.GetMessage("review_command_usage", 0, nil),
		Flags:         f.createFlags(cfg, t),
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action:        f.createAction(cfg, t),
	}
}

func (f *ReviewCommandFactory) createFlags(cfg *config.Config, t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "base",
			Value: cfg.Review.BaseRef,
			Usage: t.GetMessage("flag_base", 0, nil),
		},
		&cli.StringFlag{
			Name:  "head",
			Value: cfg.Review.HeadRef,
			Usage: t.GetMessage("flag_head", 0, nil),
		},
		&cli.IntFlag{
			Name:  "pr",
			Usage: t.GetMessage("flag_pr", 0, nil),
		},
		&cli.StringFlag{
			Name:    "provider",
			Aliases: []string{"p"},
			Value:   cfg.AI.ReviewProvider,
			Usage:   t.GetMessage("flag_provider", 0, nil),
		},
		&cli.BoolFlag{
			Name:    "dry-run",
			Aliases: []string{"n"},
			Usage:   t.GetMessage("flag_dry_run", 0, nil),
		},
	}
}

func (f *ReviewCommandFactory) createAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		log := logger.FromContext(ctx)
		out := command.Root().Writer
		errOut := command.Root().ErrWriter

		provider, err := completion_helper.ResolveProvider(command.String("provider"), cfg.AI.ReviewProvider)
		if err != nil {
			ui.HandleAppError(errOut, err, t)
			return err
		}

		opts := services.ReviewOptions{
			Base:      command.String("base"),
			Head:      command.String("head"),
			GitHubRef: cfg.GitHub.Ref,
			PRNumber:  cfg.PRNumber,
			DryRun:    command.Bool("dry-run"),
		}
		if pr := command.Int("pr"); pr > 0 {
			// an explicit flag beats whatever the workflow ref says
			opts.GitHubRef = ""
			opts.PRNumber = strconv.FormatInt(pr, 10)
		}

		log.Info("executing review command",
			"provider", provider,
			"base", opts.Base,
			"head", opts.Head,
			"dry_run", opts.DryRun)

		svc := f.build(provider)

		var outcome models.Outcome
		err = ui.WithSpinner(t.GetMessage("generating_review", 0, nil), func() error {
			var runErr error
			outcome, runErr = svc.Run(ctx, opts)
			return runErr
		})

		if outcome.Message != "" && outcome.Kind != models.OutcomeComment {
			if err == nil && !opts.DryRun && outcome.ThreadNumber == 0 {
				ui.PrintWarning(errOut, t.GetMessage("no_pr_detected", 0, nil))
			}
			ui.PrintGenerated(out, t.GetMessage("review_preview_header", 0, nil), outcome.Message)
		}
		if err != nil {
			log.Error("review pipeline failed", "error", err)
			ui.HandleAppError(errOut, err, t)
			return err
		}

		if outcome.Kind == models.OutcomeComment {
			ui.PrintSuccess(out, t.GetMessage("review_posted", 0, map[string]interface{}{
				"Number": outcome.ThreadNumber,
				"URL":    outcome.CommentURL,
			}))
		}
		ui.PrintTokenUsage(errOut, outcome.Usage, t)
		return nil
	}
}
