// Package analyzer runs the project's static analysis tool and captures its
// report for the review prompt.
package analyzer

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/thomas-vilte/aigit/internal/ai"
	domainErrors "github.com/thomas-vilte/aigit/internal/errors"
	"github.com/thomas-vilte/aigit/internal/logger"
	"github.com/thomas-vilte/aigit/internal/textutil"
)

// DefaultMaxOutput caps the captured report in bytes.
const DefaultMaxOutput = 8000

type Analyzer struct {
	Command   string
	MaxOutput int
	Dir       string
}

func New(command string, maxOutput int) *Analyzer {
	if maxOutput <= 0 {
		maxOutput = DefaultMaxOutput
	}
	return &Analyzer{Command: command, MaxOutput: maxOutput}
}

// Run executes the analyzer and returns its stdout. Linters exit non-zero when
// they report findings, so the output is kept regardless of the exit status.
// Run never fails: any problem yields the placeholder text.
func (a *Analyzer) Run(ctx context.Context) string {
	out, err := a.run(ctx)
	if err != nil {
		logger.Warn(ctx, "static analysis skipped", "command", a.Command, "error", err)
		return ai.AnalyzerPlaceholder
	}

	out = strings.TrimSpace(out)
	if out == "" {
		logger.Debug(ctx, "static analysis produced no output", "command", a.Command)
		return ai.AnalyzerPlaceholder
	}

	limit := a.MaxOutput
	if limit <= 0 {
		limit = DefaultMaxOutput
	}
	return textutil.Truncate(out, limit)
}

func (a *Analyzer) run(ctx context.Context) (string, error) {
	if strings.TrimSpace(a.Command) == "" {
		return "", domainErrors.ErrAnalyzerUnavailable.WithMessage("no analyzer command configured")
	}

	argv, err := shellquote.Split(a.Command)
	if err != nil {
		return "", domainErrors.ErrAnalyzerUnavailable.WithError(err).WithContext("command", a.Command)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = a.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return "", domainErrors.ErrAnalyzerUnavailable.
			WithError(err).
			WithContext("command", argv[0])
	}
	if err != nil {
		logger.Debug(ctx, "analyzer exited with findings",
			"exit_code", exitErr.ExitCode(),
			"stderr", textutil.Preview(strings.TrimSpace(stderr.String()), 200))
	}
	return stdout.String(), nil
}
