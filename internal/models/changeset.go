package models

import "strings"

type (
	// ChangeSet is the raw text of a diff plus whatever per-file statistics
	// were collected alongside it.
	ChangeSet struct {
		Raw   string
		Files []FileStat
		Stat  string
	}

	// FileStat holds insertion and deletion counts for one file.
	FileStat struct {
		Path       string
		Insertions int
		Deletions  int
		Binary     bool
	}

	// Budget bounds how much of a diff is sent to the model.
	Budget struct {
		// Threshold is the largest diff (in bytes) passed through unchanged.
		Threshold int
		// SummaryPrefixLength is how much of an oversized diff is kept verbatim.
		SummaryPrefixLength int
	}
)

func (c ChangeSet) Len() int {
	return len(c.Raw)
}

func (c ChangeSet) IsEmpty() bool {
	return strings.TrimSpace(c.Raw) == ""
}
