// Package textutil holds the byte-budget helpers shared by the diff and prompt stages.
package textutil

import "unicode/utf8"

// Truncate returns the longest prefix of s that fits in max bytes without
// splitting a UTF-8 sequence. A non-positive max yields "".
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// Preview shortens s for log and error output.
func Preview(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return Truncate(s, max) + "..."
}
