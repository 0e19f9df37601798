package models

// OutcomeKind identifies what a pipeline run left behind.
type OutcomeKind string

const (
	OutcomeCommit  OutcomeKind = "commit"
	OutcomeComment OutcomeKind = "comment"
	// OutcomePreview means the text was only printed locally.
	OutcomePreview OutcomeKind = "preview"
)

// Outcome is the terminal artifact of a run.
type Outcome struct {
	Kind         OutcomeKind
	Message      string
	ThreadNumber int
	CommentURL   string
	Usage        *TokenUsage
}
