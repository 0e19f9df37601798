package regex

import "regexp"

var (
	// Commit patterns
	ConventionalCommit = regexp.MustCompile(`^(feat|fix|docs|style|refactor|perf|test|build|ci|chore|revert)(\(([^)]+)\))?(!)?:\s*(.+)`)
	LineBreaks         = regexp.MustCompile(`[\r\n]+`)

	// Credential-shaped substrings
	AWSAccessKey  = regexp.MustCompile(`AKIA[0-9A-Z]{16}`)
	SSHPublicKey  = regexp.MustCompile(`(?:ssh-rsa|ssh-ed25519)\s+[A-Za-z0-9+/=]+`)
	GitHubToken   = regexp.MustCompile(`gh[pousr]_[A-Za-z0-9]{36,}`)
	PEMPrivateKey = regexp.MustCompile(`(?s)-----BEGIN [A-Z ]*PRIVATE KEY-----.*?-----END [A-Z ]*PRIVATE KEY-----`)

	// GitHub linkage patterns
	PullRequestMergeRef = regexp.MustCompile(`refs/pull/(\d+)/merge`)
	PullRequestRef      = regexp.MustCompile(`pull/(\d+)`)

	// Git and Repo patterns
	SSHRepo   = regexp.MustCompile(`git@([^:]+):([^/]+)/(.+)\.git$`)
	HTTPSRepo = regexp.MustCompile(`https://([^/]+)/([^/]+)/(.+?)(?:\.git)?$`)

	// Unified diff patterns
	DiffFileHeader = regexp.MustCompile(`^diff --git a/(.+) b/(.+)$`)
)
