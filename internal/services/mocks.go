package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/aigit/internal/models"
)

type (
	MockGitService struct {
		mock.Mock
	}

	MockInvoker struct {
		mock.Mock
	}

	MockAnalyzer struct {
		mock.Mock
	}

	MockCommentPoster struct {
		mock.Mock
	}
)

func (m *MockGitService) HasStagedChanges(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockGitService) StagedDiff(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGitService) CreateCommit(ctx context.Context, message string) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockGitService) RangeDiff(ctx context.Context, base, head string) (string, error) {
	args := m.Called(ctx, base, head)
	return args.String(0), args.Error(1)
}

func (m *MockInvoker) Invoke(ctx context.Context, prompt string) (models.AIResponse, error) {
	args := m.Called(ctx, prompt)
	return args.Get(0).(models.AIResponse), args.Error(1)
}

func (m *MockAnalyzer) Run(ctx context.Context) string {
	args := m.Called(ctx)
	return args.String(0)
}

func (m *MockCommentPoster) PostComment(ctx context.Context, number int, body string) (string, error) {
	args := m.Called(ctx, number, body)
	return args.String(0), args.Error(1)
}
