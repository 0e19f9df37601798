package github

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatReviewComment(t *testing.T) {
	got := FormatReviewComment("Looks good.\n- nit: rename foo")

	assert.True(t, strings.HasPrefix(got, "**AI Review (automated):**\n\n"))
	assert.True(t, strings.HasSuffix(got, "\n\n_AI suggestion - review required._"))
	assert.Contains(t, got, "Looks good.\n- nit: rename foo")
}
