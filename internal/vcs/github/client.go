package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/thomas-vilte/aigit/internal/errors"
	"github.com/thomas-vilte/aigit/internal/logger"
	"github.com/thomas-vilte/aigit/internal/vcs"
	"golang.org/x/oauth2"
)

var _ vcs.CommentPoster = (*GitHubClient)(nil)

type IssuesService interface {
	CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error)
}

type GitHubClient struct {
	issuesService IssuesService
	owner         string
	repo          string
}

// NewGitHubClient builds a token-authenticated client. A non-empty apiURL
// points it at a GitHub Enterprise (or test) API root.
func NewGitHubClient(owner, repo, token, apiURL string) (*GitHubClient, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	if apiURL != "" && strings.TrimRight(apiURL, "/") != "https://api.github.com" {
		base, err := url.Parse(strings.TrimRight(apiURL, "/") + "/")
		if err != nil {
			return nil, domainErrors.ErrInvalidConfig.
				WithMessage("GITHUB_API_URL is not a valid URL").
				WithError(err)
		}
		client.BaseURL = base
	}

	return NewGitHubClientWithServices(client.Issues, owner, repo), nil
}

func NewGitHubClientWithServices(issuesService IssuesService, owner, repo string) *GitHubClient {
	return &GitHubClient{
		issuesService: issuesService,
		owner:         owner,
		repo:          repo,
	}
}

// PostComment creates one issue comment on the pull request. Pull requests
// share the issue comment endpoint.
func (ghc *GitHubClient) PostComment(ctx context.Context, number int, body string) (string, error) {
	log := logger.FromContext(ctx)
	log.Debug("posting pull request comment",
		"repo", fmt.Sprintf("%s/%s", ghc.owner, ghc.repo),
		"pr_number", number,
		"body_length", len(body))

	comment, resp, err := ghc.issuesService.CreateComment(ctx, ghc.owner, ghc.repo, number, &github.IssueComment{
		Body: github.Ptr(body),
	})
	if err != nil {
		return "", ghc.wrapError(err, resp, number)
	}

	return comment.GetHTMLURL(), nil
}

func (ghc *GitHubClient) wrapError(err error, resp *github.Response, number int) error {
	repo := fmt.Sprintf("%s/%s", ghc.owner, ghc.repo)

	var cause error = err
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	switch {
	case errors.As(err, &rateErr), errors.As(err, &abuseErr):
		cause = domainErrors.ErrGitHubRateLimit.WithError(err)
	case resp != nil && resp.StatusCode == http.StatusTooManyRequests:
		cause = domainErrors.ErrGitHubRateLimit.
			WithError(err).
			WithContext("retry_after", resp.Header.Get("Retry-After"))
	case resp != nil && resp.StatusCode == http.StatusNotFound:
		cause = domainErrors.ErrRepositoryNotFound.WithError(err).WithContext("repo", repo)
	}

	appErr := domainErrors.ErrPostFailure.
		WithError(cause).
		WithContext("repo", repo).
		WithContext("pr_number", number)
	if resp != nil {
		appErr = appErr.WithContext("status", resp.StatusCode)
	}
	return appErr
}
