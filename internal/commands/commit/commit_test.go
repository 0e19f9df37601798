package commit

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/aigit/internal/config"
	domainErrors "github.com/thomas-vilte/aigit/internal/errors"
	"github.com/thomas-vilte/aigit/internal/i18n"
	"github.com/thomas-vilte/aigit/internal/models"
	"github.com/thomas-vilte/aigit/internal/services"
	"github.com/urfave/cli/v3"
)

type MockCommitService struct {
	mock.Mock
}

func (m *MockCommitService) Run(ctx context.Context, opts services.CommitOptions) (models.Outcome, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(models.Outcome), args.Error(1)
}

func init() {
	color.NoColor = true
}

func setupTestEnv(t *testing.T) (*config.Config, *i18n.Translations) {
	t.Helper()
	cfg := &config.Config{}
	cfg.AI.CommitProvider = "bedrock"

	translations, err := i18n.NewTranslations("en")
	require.NoError(t, err)
	return cfg, translations
}

func runCommand(t *testing.T, svc Service, args ...string) (string, string, config.Provider, error) {
	t.Helper()
	cfg, translations := setupTestEnv(t)

	var used config.Provider
	factory := NewCommitCommandFactory(func(p config.Provider) Service {
		used = p
		return svc
	})

	var out, errOut bytes.Buffer
	root := &cli.Command{
		Name:      "aigit",
		Writer:    &out,
		ErrWriter: &errOut,
		Commands:  []*cli.Command{factory.CreateCommand(translations, cfg)},
	}
	err := root.Run(context.Background(), append([]string{"aigit", "commit"}, args...))
	return out.String(), errOut.String(), used, err
}

func TestCommitCommand(t *testing.T) {
	t.Run("commits and prints the message", func(t *testing.T) {
		mockService := new(MockCommitService)
		mockService.On("Run", mock.Anything, services.CommitOptions{}).
			Return(models.Outcome{Kind: models.OutcomeCommit, Message: "fix: typo"}, nil).Once()

		out, _, provider, err := runCommand(t, mockService)

		require.NoError(t, err)
		assert.Equal(t, config.ProviderBedrock, provider)
		assert.Contains(t, out, "Commit created successfully")
		assert.Contains(t, out, "fix: typo")
		mockService.AssertExpectations(t)
	})

	t.Run("dry run and provider flags", func(t *testing.T) {
		mockService := new(MockCommitService)
		mockService.On("Run", mock.Anything, services.CommitOptions{DryRun: true}).
			Return(models.Outcome{Kind: models.OutcomePreview, Message: "feat: add x"}, nil).Once()

		out, _, provider, err := runCommand(t, mockService, "--dry-run", "--provider", "chat")

		require.NoError(t, err)
		assert.Equal(t, config.ProviderChat, provider)
		assert.Contains(t, out, "Generated commit message (dry run):")
		assert.Contains(t, out, "feat: add x")
	})

	t.Run("no staged changes", func(t *testing.T) {
		mockService := new(MockCommitService)
		mockService.On("Run", mock.Anything, mock.Anything).
			Return(models.Outcome{}, domainErrors.ErrNoStagedChanges).Once()

		out, errOut, _, err := runCommand(t, mockService)

		assert.True(t, errors.Is(err, domainErrors.ErrNoStagedChanges))
		assert.Empty(t, out)
		assert.Contains(t, errOut, "No staged changes found")
	})

	t.Run("commit failure prints the message first", func(t *testing.T) {
		mockService := new(MockCommitService)
		mockService.On("Run", mock.Anything, mock.Anything).
			Return(models.Outcome{Kind: models.OutcomePreview, Message: "fix: a"}, domainErrors.ErrCreateCommit).Once()

		out, errOut, _, err := runCommand(t, mockService)

		assert.True(t, errors.Is(err, domainErrors.ErrCreateCommit))
		assert.Contains(t, out, "fix: a")
		assert.Contains(t, errOut, "Failed to create commit")
	})

	t.Run("unknown provider never builds a service", func(t *testing.T) {
		mockService := new(MockCommitService)

		_, _, provider, err := runCommand(t, mockService, "--provider", "copilot")

		assert.True(t, errors.Is(err, domainErrors.ErrUnknownProvider))
		assert.Empty(t, provider)
		mockService.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
	})
}
