package hook

import (
	"context"
	"os"

	"github.com/thomas-vilte/aigit/internal/commands/completion_helper"
	"github.com/thomas-vilte/aigit/internal/config"
	hookinstaller "github.com/thomas-vilte/aigit/internal/hook"
	"github.com/thomas-vilte/aigit/internal/i18n"
	"github.com/thomas-vilte/aigit/internal/logger"
	"github.com/thomas-vilte/aigit/internal/ui"
	"github.com/urfave/cli/v3"
)

type gitService interface {
	HooksDir(ctx context.Context) (string, error)
}

type HookCommandFactory struct {
	gitService gitService
	binary     string
}

// NewHookCommandFactory creates the hook command. binary is the command the
// installed hook invokes; empty means the running executable.
func NewHookCommandFactory(gitSvc gitService, binary string) *HookCommandFactory {
	return &HookCommandFactory{
		gitService: gitSvc,
		binary:     binary,
	}
}

func (f *HookCommandFactory) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "hook",
		Usage: t.GetMessage("hook_command_usage", 0, nil),
		Commands: []*cli.Command{
			{
				Name:  "install",
				Usage: t.GetMessage("hook_install_usage", 0, nil),
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   t.GetMessage("flag_force", 0, nil),
					},
				},
				ShellComplete: completion_helper.DefaultFlagComplete,
				Action:        f.installAction(t),
			},
		},
	}
}

func (f *HookCommandFactory) installAction(t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		errOut := command.Root().ErrWriter

		dir, err := f.gitService.HooksDir(ctx)
		if err != nil {
			ui.HandleAppError(errOut, err, t)
			return err
		}

		binary := f.binary
		if binary == "" {
			if exe, err := os.Executable(); err == nil {
				binary = exe
			}
		}

		path, err := hookinstaller.Install(dir, binary, command.Bool("force"))
		if err != nil {
			ui.HandleAppError(errOut, err, t)
			return err
		}

		logger.Info(ctx, "hook installed", "path", path, "binary", binary)
		ui.PrintSuccess(command.Root().Writer, t.GetMessage("hook_installed", 0, map[string]interface{}{
			"Path": path,
		}))
		return nil
	}
}
