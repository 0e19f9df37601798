package hook

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/aigit/internal/config"
	domainErrors "github.com/thomas-vilte/aigit/internal/errors"
	"github.com/thomas-vilte/aigit/internal/i18n"
	"github.com/urfave/cli/v3"
)

type MockGitService struct {
	mock.Mock
}

func (m *MockGitService) HooksDir(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func init() {
	color.NoColor = true
}

func runInstall(t *testing.T, gitSvc gitService, args ...string) (string, error) {
	t.Helper()
	translations, err := i18n.NewTranslations("en")
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	root := &cli.Command{
		Name:      "aigit",
		Writer:    &out,
		ErrWriter: &errOut,
		Commands:  []*cli.Command{NewHookCommandFactory(gitSvc, "aigit").CreateCommand(translations, &config.Config{})},
	}
	err = root.Run(context.Background(), append([]string{"aigit", "hook", "install"}, args...))
	return out.String() + errOut.String(), err
}

func TestHookInstallCommand(t *testing.T) {
	t.Run("installs into the hooks directory", func(t *testing.T) {
		dir := t.TempDir()
		mockGit := &MockGitService{}
		mockGit.On("HooksDir", mock.Anything).Return(dir, nil).Once()

		out, err := runInstall(t, mockGit)

		require.NoError(t, err)
		assert.Contains(t, out, filepath.Join(dir, "pre-push"))
		_, statErr := os.Stat(filepath.Join(dir, "pre-push"))
		assert.NoError(t, statErr)
	})

	t.Run("foreign hook needs force", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "pre-push"), []byte("#!/bin/sh\nmake test\n"), 0o755))
		mockGit := &MockGitService{}
		mockGit.On("HooksDir", mock.Anything).Return(dir, nil)

		_, err := runInstall(t, mockGit)
		assert.True(t, errors.Is(err, domainErrors.ErrHookExists))

		_, err = runInstall(t, mockGit, "--force")
		assert.NoError(t, err)
	})

	t.Run("outside a repository", func(t *testing.T) {
		mockGit := &MockGitService{}
		mockGit.On("HooksDir", mock.Anything).Return("", domainErrors.ErrGetRepoRoot).Once()

		_, err := runInstall(t, mockGit)

		assert.True(t, errors.Is(err, domainErrors.ErrGetRepoRoot))
	})
}
