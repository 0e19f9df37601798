package vcs

import "context"

// CommentPoster publishes a comment on a pull request thread.
type CommentPoster interface {
	// PostComment adds body as a new comment on thread number and returns the
	// comment URL.
	PostComment(ctx context.Context, number int, body string) (string, error)
}
