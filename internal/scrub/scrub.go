// Package scrub redacts credential-shaped substrings from text before it is
// sent to a remote service. Matching is best effort and will miss things.
package scrub

import (
	"regexp"

	"github.com/thomas-vilte/aigit/internal/regex"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Replacement tokens must never match any pattern, otherwise Scrub stops being idempotent.
var rules = []rule{
	{regex.PEMPrivateKey, "[REDACTED_PRIVATE_KEY]"},
	{regex.AWSAccessKey, "[REDACTED_AWS_KEY]"},
	{regex.SSHPublicKey, "[REDACTED_SSH_KEY]"},
	{regex.GitHubToken, "[REDACTED_GITHUB_TOKEN]"},
}

// Scrub applies every redaction rule in order and returns the result.
func Scrub(text string) string {
	for _, r := range rules {
		text = r.pattern.ReplaceAllLiteralString(text, r.replacement)
	}
	return text
}
