package commit

import (
	"context"
	"fmt"

	"github.com/thomas-vilte/aigit/internal/commands/completion_helper"
	"github.com/thomas-vilte/aigit/internal/config"
	"github.com/thomas-vilte/aigit/internal/i18n"
	"github.com/thomas-vilte/aigit/internal/logger"
	"github.com/thomas-vilte/aigit/internal/models"
	"github.com/thomas-vilte/aigit/internal/services"
	"github.com/thomas-vilte/aigit/internal/ui"
	"github.com/urfave/cli/v3"
)

// Service runs the commit pipeline.
type Service interface {
	Run(ctx context.Context, opts services.CommitOptions) (models.Outcome, error)
}

// ServiceBuilder returns a commit service bound to provider.
type ServiceBuilder func(provider config.Provider) Service

type CommitCommandFactory struct {
	build ServiceBuilder
}

func NewCommitCommandFactory(build ServiceBuilder) *CommitCommandFactory {
	return &CommitCommandFactory{build: build}
}

func (f *CommitCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "commit",
		Aliases:       []string{"c"},
		Usage:         t.GetMessage("commit_command_usage", 0, nil),
		Flags:         f.createFlags(cfg, t),
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action:        f.createAction(cfg, t),
	}
}

func (f *CommitCommandFactory) createFlags(cfg *config.Config, t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "dry-run",
			Aliases: []string{"n"},
			Usage:   t.GetMessage("flag_dry_run", 0, nil),
		},
		&cli.StringFlag{
			Name:    "provider",
			Aliases: []string{"p"},
			Value:   cfg.AI.CommitProvider,
			Usage:   t.GetMessage("flag_provider", 0, nil),
		},
	}
}

func (f *CommitCommandFactory) createAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		log := logger.FromContext(ctx)
		out := command.Root().Writer
		errOut := command.Root().ErrWriter

		provider, err := completion_helper.ResolveProvider(command.String("provider"), cfg.AI.CommitProvider)
		if err != nil {
			ui.HandleAppError(errOut, err, t)
			return err
		}
		dryRun := command.Bool("dry-run")

		log.Info("executing commit command",
			"provider", provider,
			"dry_run", dryRun)

		svc := f.build(provider)

		var outcome models.Outcome
		err = ui.WithSpinner(t.GetMessage("analyzing_changes", 0, nil), func() error {
			var runErr error
			outcome, runErr = svc.Run(ctx, services.CommitOptions{DryRun: dryRun})
			return runErr
		})

		if err != nil {
			if outcome.Message != "" {
				ui.PrintGenerated(out, t.GetMessage("commit_preview_header", 0, nil), outcome.Message)
			}
			log.Error("commit pipeline failed", "error", err)
			ui.HandleAppError(errOut, err, t)
			return err
		}

		switch outcome.Kind {
		case models.OutcomeCommit:
			ui.PrintSuccess(out, t.GetMessage("commit_created", 0, nil))
			_, _ = fmt.Fprintln(out, outcome.Message)
		default:
			ui.PrintGenerated(out, t.GetMessage("commit_preview_header", 0, nil), outcome.Message)
		}
		ui.PrintTokenUsage(errOut, outcome.Usage, t)
		return nil
	}
}
