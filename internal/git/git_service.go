package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/thomas-vilte/aigit/internal/errors"
	"github.com/thomas-vilte/aigit/internal/logger"
	"github.com/thomas-vilte/aigit/internal/models"
	"github.com/thomas-vilte/aigit/internal/regex"
)

type GitService struct{}

func NewGitService() *GitService {
	return &GitService{}
}

// run executes git with args and returns stdout. On failure the returned
// error carries the trimmed stderr.
func (s *GitService) run(ctx context.Context, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug(ctx, "running git", "args", strings.Join(args, " "))

	err := cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

// HasStagedChanges checks if there are changes in the staging area. Any git
// failure other than "index differs" is reported, not treated as a clean index.
func (s *GitService) HasStagedChanges(ctx context.Context) (bool, error) {
	_, stderr, err := s.run(ctx, "diff", "--cached", "--quiet")
	if err == nil {
		return false, nil
	}

	// exit status 1 means the index differs from HEAD
	if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
		return true, nil
	}
	return false, errors.ErrGetRepoRoot.WithError(err).WithContext("stderr", stderr)
}

// StagedDiff returns the unified diff of the staging area.
func (s *GitService) StagedDiff(ctx context.Context) (string, error) {
	out, stderr, err := s.run(ctx, "--no-pager", "diff", "--cached")
	if err != nil {
		return "", errors.ErrGetDiff.WithError(err).WithContext("stderr", stderr)
	}
	return out, nil
}

// RangeDiff returns the zero-context diff of head against its merge base with base.
func (s *GitService) RangeDiff(ctx context.Context, base, head string) (string, error) {
	out, stderr, err := s.run(ctx, "--no-pager", "diff", rangeSpec(base, head), "--unified=0")
	if err != nil {
		return "", errors.ErrGetDiff.
			WithError(err).
			WithContext("range", rangeSpec(base, head)).
			WithContext("stderr", stderr)
	}
	return out, nil
}

func (s *GitService) StagedNumStat(ctx context.Context) ([]models.FileStat, error) {
	return s.numStat(ctx, "--cached")
}

func (s *GitService) RangeNumStat(ctx context.Context, base, head string) ([]models.FileStat, error) {
	return s.numStat(ctx, rangeSpec(base, head))
}

func (s *GitService) StagedStat(ctx context.Context) (string, error) {
	return s.stat(ctx, "--cached")
}

func (s *GitService) RangeStat(ctx context.Context, base, head string) (string, error) {
	return s.stat(ctx, rangeSpec(base, head))
}

func (s *GitService) numStat(ctx context.Context, spec string) ([]models.FileStat, error) {
	out, stderr, err := s.run(ctx, "--no-pager", "diff", spec, "--numstat")
	if err != nil {
		return nil, errors.ErrGetStats.WithError(err).WithContext("stderr", stderr)
	}
	return parseNumStat(out), nil
}

func (s *GitService) stat(ctx context.Context, spec string) (string, error) {
	out, stderr, err := s.run(ctx, "--no-pager", "diff", spec, "--stat")
	if err != nil {
		return "", errors.ErrGetStats.WithError(err).WithContext("stderr", stderr)
	}
	return strings.TrimRight(out, "\n"), nil
}

// parseNumStat parses `git diff --numstat` output. Binary files report "-"
// for both counters.
func parseNumStat(out string) []models.FileStat {
	var stats []models.FileStat
	for _, line := range strings.Split(out, "\n") {
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) < 3 {
			continue
		}

		fs := models.FileStat{Path: parts[2]}
		if parts[0] == "-" && parts[1] == "-" {
			fs.Binary = true
		} else {
			fs.Insertions, _ = strconv.Atoi(parts[0])
			fs.Deletions, _ = strconv.Atoi(parts[1])
		}
		stats = append(stats, fs)
	}
	return stats
}

// CreateCommit commits the staged changes with message. The message is passed
// as a single argument, so no quoting is applied.
func (s *GitService) CreateCommit(ctx context.Context, message string) error {
	staged, err := s.HasStagedChanges(ctx)
	if err != nil {
		return err
	}
	if !staged {
		return errors.ErrNoStagedChanges
	}

	_, stderr, err := s.run(ctx, "commit", "-m", message)
	if err != nil {
		return errors.ErrCreateCommit.WithError(err).WithContext("stderr", stderr)
	}
	return nil
}

// GetRepoInfo returns the owner, repository name and hosting provider of the origin remote.
func (s *GitService) GetRepoInfo(ctx context.Context) (string, string, string, error) {
	out, stderr, err := s.run(ctx, "remote", "get-url", "origin")
	if err != nil {
		return "", "", "", errors.ErrGetRepoURL.WithError(err).WithContext("stderr", stderr)
	}

	url := strings.TrimSpace(out)
	return parseRepoURL(url)
}

// HooksDir returns the absolute path of the repository hooks directory,
// honoring core.hooksPath.
func (s *GitService) HooksDir(ctx context.Context) (string, error) {
	out, stderr, err := s.run(ctx, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", errors.ErrGetRepoRoot.WithError(err).WithContext("stderr", stderr)
	}

	dir := strings.TrimSpace(out)
	if filepath.IsAbs(dir) {
		return dir, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.ErrGetRepoRoot.WithError(err)
	}
	return abs, nil
}

func parseRepoURL(url string) (string, string, string, error) {
	var matches []string
	if regex.SSHRepo.MatchString(url) {
		matches = regex.SSHRepo.FindStringSubmatch(url)
	} else if regex.HTTPSRepo.MatchString(url) {
		matches = regex.HTTPSRepo.FindStringSubmatch(url)
	}

	if len(matches) >= 4 {
		provider := detectProvider(matches[1])
		repoName := strings.TrimSuffix(matches[3], ".git")
		return matches[2], repoName, provider, nil
	}

	return "", "", "", errors.ErrExtractRepoInfo.WithContext("url", url)
}

func detectProvider(host string) string {
	if strings.Contains(host, "github") {
		return "github"
	}
	if strings.Contains(host, "gitlab") {
		return "gitlab"
	}
	return "unknown"
}

func rangeSpec(base, head string) string {
	return fmt.Sprintf("%s...%s", base, head)
}
