package github

import (
	"context"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/mock"
)

type MockIssuesService struct {
	mock.Mock
}

func (m *MockIssuesService) CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, comment)
	var c *github.IssueComment
	if v := args.Get(0); v != nil {
		c = v.(*github.IssueComment)
	}
	var r *github.Response
	if v := args.Get(1); v != nil {
		r = v.(*github.Response)
	}
	return c, r, args.Error(2)
}
