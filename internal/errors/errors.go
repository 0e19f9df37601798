package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeAI            ErrorType = "AI"
	TypeVCS           ErrorType = "VCS"
	TypeGit           ErrorType = "GIT"
	TypeAnalyzer      ErrorType = "ANALYZER"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Code       string
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if stderr, ok := e.Context["stderr"].(string); ok && stderr != "" {
			msg += fmt.Sprintf(" - %s", stderr)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError of the same kind. Builders return
// copies, so pointer identity with the sentinels is not enough.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if e.Code != "" || t.Code != "" {
		return e.Code == t.Code
	}
	return e.Type == t.Type && e.Message == t.Message
}

func (e *AppError) clone() *AppError {
	return &AppError{
		Type:       e.Type,
		Code:       e.Code,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	c := e.clone()
	c.Err = err
	return c
}

// WithMessage creates a new AppError of the same kind with a more specific message
func (e *AppError) WithMessage(msg string) *AppError {
	c := e.clone()
	c.Message = msg
	return c
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	c := e.clone()
	c.Context = ctx
	return c
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	c := e.clone()
	c.Suggestion = suggestion
	return c
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

func newKind(t ErrorType, code, msg string) *AppError {
	return &AppError{
		Type:    t,
		Code:    code,
		Message: msg,
	}
}

// Git errors
var (
	ErrNoStagedChanges = newKind(TypeGit, "no_staged_changes", "No staged changes found").
				WithSuggestion("Stage your changes first with: git add <files>")

	ErrGetDiff = newKind(TypeGit, "get_diff", "Failed to get diff").
			WithSuggestion("Check that the refs exist: git fetch origin")

	ErrGetStats = newKind(TypeGit, "get_stats", "Failed to get diff statistics")

	ErrCreateCommit = newKind(TypeGit, "create_commit", "Failed to create commit").
			WithSuggestion("Ensure git user is configured:\n   git config --global user.name \"Your Name\"\n   git config --global user.email \"your@email.com\"")

	ErrGetRepoURL = newKind(TypeGit, "get_repo_url", "Failed to get repository URL").
			WithSuggestion("Add a remote: git remote add origin <url>")

	ErrExtractRepoInfo = newKind(TypeGit, "extract_repo_info", "Failed to extract repository info")

	ErrGetRepoRoot = newKind(TypeGit, "get_repo_root", "Failed to get repository root").
			WithSuggestion("Make sure you are inside a git repository")

	ErrHookExists = newKind(TypeGit, "hook_exists", "A pre-push hook is already installed").
			WithSuggestion("Re-run with --force to replace it")

	ErrInstallHook = newKind(TypeGit, "install_hook", "Failed to install hook")
)

// Configuration errors
var (
	ErrMissingCredential = newKind(TypeConfiguration, "missing_credential", "Required credential is missing").
				WithSuggestion("Export the variable or add it to your .env file")

	ErrInvalidConfig = newKind(TypeConfiguration, "invalid_config", "Configuration is invalid")

	ErrUnknownProvider = newKind(TypeConfiguration, "unknown_provider", "AI provider not supported").
				WithSuggestion("Use one of: bedrock, chat, gemini")
)

// AI errors
var (
	ErrTransientCallFailure = newKind(TypeAI, "transient_call_failure", "AI call failed")

	ErrMalformedResponse = newKind(TypeAI, "malformed_response", "Invalid AI response structure")

	ErrAICallExhausted = newKind(TypeAI, "ai_call_exhausted", "AI call failed after all attempts").
				WithSuggestion("Check your network connection and credentials, then try again")
)

// Analyzer errors
var (
	ErrAnalyzerUnavailable = newKind(TypeAnalyzer, "analyzer_unavailable", "Static analyzer unavailable")
)

// VCS errors
var (
	ErrThreadNotResolvable = newKind(TypeVCS, "thread_not_resolvable", "Pull request number not found").
				WithSuggestion("Set PR_NUMBER or pass --pr to post the review")

	ErrPostFailure = newKind(TypeVCS, "post_failure", "Failed to post comment").
			WithSuggestion("Ensure GITHUB_TOKEN has \"pull-requests: write\" or \"issues: write\" permission in the workflow")

	ErrRepositoryNotFound = newKind(TypeVCS, "repository_not_found", "Repository not found").
				WithSuggestion("Check GITHUB_REPOSITORY (owner/repo) and token access")

	ErrGitHubRateLimit = newKind(TypeVCS, "github_rate_limit", "GitHub API rate limit exceeded").
				WithSuggestion("Wait a few minutes or use a personal access token for higher limits")
)
