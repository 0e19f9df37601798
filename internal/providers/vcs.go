package providers

import (
	"context"
	"strings"

	"github.com/thomas-vilte/aigit/internal/config"
	"github.com/thomas-vilte/aigit/internal/errors"
	"github.com/thomas-vilte/aigit/internal/logger"
	"github.com/thomas-vilte/aigit/internal/vcs"
	"github.com/thomas-vilte/aigit/internal/vcs/github"
)

// RepoInfoSource resolves the hosting repository of the working tree.
type RepoInfoSource interface {
	GetRepoInfo(ctx context.Context) (string, string, string, error)
}

// NewCommentPoster builds the pull request comment client. The repository comes
// from GITHUB_REPOSITORY when set, otherwise from the origin remote.
func NewCommentPoster(ctx context.Context, cfg *config.Config, repoSource RepoInfoSource) (vcs.CommentPoster, error) {
	if cfg.GitHub.Token == "" {
		return nil, errors.ErrMissingCredential.
			WithMessage("GITHUB_TOKEN not set").
			WithContext("variable", "GITHUB_TOKEN")
	}

	owner, repo, err := resolveRepository(ctx, cfg, repoSource)
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "using github repository", "owner", owner, "repo", repo)

	client, err := github.NewGitHubClient(owner, repo, cfg.GitHub.Token, cfg.GitHub.APIURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func resolveRepository(ctx context.Context, cfg *config.Config, repoSource RepoInfoSource) (string, string, error) {
	if cfg.GitHub.Repository != "" {
		owner, repo, _ := strings.Cut(cfg.GitHub.Repository, "/")
		return owner, repo, nil
	}

	if repoSource == nil {
		return "", "", errors.ErrInvalidConfig.WithMessage("GITHUB_REPOSITORY not set")
	}

	owner, repo, provider, err := repoSource.GetRepoInfo(ctx)
	if err != nil {
		return "", "", err
	}
	if provider != "github" {
		return "", "", errors.ErrInvalidConfig.
			WithMessage("origin remote is not hosted on GitHub").
			WithContext("provider", provider).
			WithSuggestion("Set GITHUB_REPOSITORY=owner/repo")
	}
	return owner, repo, nil
}
