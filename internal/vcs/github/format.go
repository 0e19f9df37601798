package github

import "fmt"

const reviewCommentFormat = "**AI Review (automated):**\n\n%s\n\n_AI suggestion - review required._"

// FormatReviewComment wraps review text in the header and footer that mark it
// as machine generated.
func FormatReviewComment(text string) string {
	return fmt.Sprintf(reviewCommentFormat, text)
}
