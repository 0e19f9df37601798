package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/thomas-vilte/aigit/internal/commands/commit"
	"github.com/thomas-vilte/aigit/internal/commands/hook"
	"github.com/thomas-vilte/aigit/internal/commands/registry"
	"github.com/thomas-vilte/aigit/internal/commands/review"
	"github.com/thomas-vilte/aigit/internal/config"
	"github.com/thomas-vilte/aigit/internal/git"
	"github.com/thomas-vilte/aigit/internal/i18n"
	"github.com/thomas-vilte/aigit/internal/logger"
	"github.com/thomas-vilte/aigit/internal/providers"
	"github.com/thomas-vilte/aigit/internal/ui"
	"github.com/thomas-vilte/aigit/internal/version"
	"github.com/urfave/cli/v3"
)

const defaultEnvFile = ".env"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app, err := initializeApp(os.Args)
	if err != nil {
		ui.HandleAppError(os.Stderr, err, nil)
		stop()
		os.Exit(1)
	}

	err = app.Run(ctx, os.Args)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func initializeApp(args []string) (*cli.Command, error) {
	cfg, err := config.LoadConfig(envFileArg(args))
	if err != nil {
		return nil, err
	}

	translations, err := i18n.NewTranslations(cfg.Language)
	if err != nil {
		return nil, fmt.Errorf("error loading translations: %w", err)
	}

	gitService := git.NewGitService()

	registerCommand := registry.NewRegistry(cfg, translations)

	if err := registerCommand.Register("commit", commit.NewCommitCommandFactory(func(p config.Provider) commit.Service {
		return providers.NewCommitService(cfg, gitService, p)
	})); err != nil {
		return nil, err
	}

	if err := registerCommand.Register("review", review.NewReviewCommandFactory(func(p config.Provider) review.Service {
		return providers.NewReviewService(cfg, gitService, p)
	})); err != nil {
		return nil, err
	}

	if err := registerCommand.Register("hook", hook.NewHookCommandFactory(gitService, "")); err != nil {
		return nil, err
	}

	return &cli.Command{
		Name:                  "aigit",
		Usage:                 translations.GetMessage("app_usage", 0, nil),
		Version:               version.FullVersion(),
		Commands:              registerCommand.CreateCommands(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: translations.GetMessage("flag_debug", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: translations.GetMessage("flag_verbose", 0, nil),
			},
			&cli.StringFlag{
				Name:  "env-file",
				Value: defaultEnvFile,
				Usage: translations.GetMessage("flag_env_file", 0, nil),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			l := logger.Initialize(cmd.Root().ErrWriter, logger.ParseLevel(cfg.LogLevel), cmd.Bool("debug"), cmd.Bool("verbose"))
			return logger.WithLogger(ctx, l), nil
		},
	}, nil
}

// envFileArg finds --env-file among the global flags. The environment has to
// be loaded before the commands, and their defaults, can be built.
func envFileArg(args []string) string {
	for i := 1; i < len(args); i++ {
		arg := args[i]
		if arg == "--" || !strings.HasPrefix(arg, "-") {
			break
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if name != "env-file" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return defaultEnvFile
}
