// Package budget decides whether a diff is sent to the model verbatim or
// replaced by a bounded summary of what changed.
package budget

import (
	"context"
	"fmt"
	"strings"

	"github.com/thomas-vilte/aigit/internal/logger"
	"github.com/thomas-vilte/aigit/internal/models"
	"github.com/thomas-vilte/aigit/internal/regex"
	"github.com/thomas-vilte/aigit/internal/textutil"
)

const (
	// MaxListedFiles caps the per-file lines of a summary.
	MaxListedFiles = 50
	// MaxFileListLength caps the rendered file list in bytes.
	MaxFileListLength = 4000
	// MaxStatLength caps the stat block in bytes.
	MaxStatLength = 2000

	summaryFormat = "Files changed:\n%s\n\nStats:\n%s\n\nKey changes:\n%s"
)

// SummaryOverhead is the constant number of bytes a summary adds besides its three sections.
var SummaryOverhead = len(fmt.Sprintf(summaryFormat, "", "", ""))

// StatSource supplies per-file statistics for the diff being summarized.
type StatSource interface {
	NumStat(ctx context.Context) ([]models.FileStat, error)
	Stat(ctx context.Context) (string, error)
}

type Budgeter struct {
	budget models.Budget
	source StatSource
}

// NewBudgeter creates a Budgeter. source may be nil, in which case statistics
// are computed from the diff text itself.
func NewBudgeter(b models.Budget, source StatSource) *Budgeter {
	return &Budgeter{budget: b, source: source}
}

// Summarize returns the raw diff when it fits the threshold, or a summary of
// file statistics plus a prefix of the diff otherwise. Missing statistics
// degrade the summary but never fail it.
func (b *Budgeter) Summarize(ctx context.Context, cs models.ChangeSet) string {
	log := logger.FromContext(ctx)

	if cs.Len() <= b.budget.Threshold {
		return cs.Raw
	}

	log.Info("diff exceeds budget, summarizing",
		"diff_size", cs.Len(),
		"threshold", b.budget.Threshold)

	files := cs.Files
	stat := cs.Stat

	if b.source != nil {
		if len(files) == 0 {
			fetched, err := b.source.NumStat(ctx)
			if err != nil {
				log.Warn("numstat unavailable, computing from diff", "error", err)
			} else {
				files = fetched
			}
		}
		if stat == "" {
			fetched, err := b.source.Stat(ctx)
			if err != nil {
				log.Warn("stat unavailable, computing from diff", "error", err)
			} else {
				stat = fetched
			}
		}
	}

	if len(files) == 0 {
		files = ParseFileStats(cs.Raw)
	}
	if strings.TrimSpace(stat) == "" {
		stat = FormatStat(files)
	}

	return fmt.Sprintf(summaryFormat,
		textutil.Truncate(FormatFileList(files), MaxFileListLength),
		textutil.Truncate(strings.TrimRight(stat, "\n"), MaxStatLength),
		textutil.Truncate(cs.Raw, b.budget.SummaryPrefixLength))
}

// FormatFileList renders one line per file, at most MaxListedFiles of them.
func FormatFileList(files []models.FileStat) string {
	if len(files) == 0 {
		return "(no file information available)"
	}

	var sb strings.Builder
	for i, f := range files {
		if i == MaxListedFiles {
			fmt.Fprintf(&sb, "... and %d more files\n", len(files)-MaxListedFiles)
			break
		}
		if f.Binary {
			fmt.Fprintf(&sb, "- %s (binary)\n", f.Path)
			continue
		}
		fmt.Fprintf(&sb, "- %s (+%d/-%d)\n", f.Path, f.Insertions, f.Deletions)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatStat renders a git-style summary line for files.
func FormatStat(files []models.FileStat) string {
	var ins, del int
	for _, f := range files {
		ins += f.Insertions
		del += f.Deletions
	}
	return fmt.Sprintf("%d files changed, %d insertions(+), %d deletions(-)", len(files), ins, del)
}

// ParseFileStats counts added and removed lines per file in a unified diff.
func ParseFileStats(diff string) []models.FileStat {
	var (
		files  []models.FileStat
		inHunk bool
	)

	for _, line := range strings.Split(diff, "\n") {
		if m := regex.DiffFileHeader.FindStringSubmatch(line); m != nil {
			files = append(files, models.FileStat{Path: m[2]})
			inHunk = false
			continue
		}
		if len(files) == 0 {
			continue
		}
		cur := &files[len(files)-1]

		switch {
		case strings.HasPrefix(line, "Binary files "):
			cur.Binary = true
		case strings.HasPrefix(line, "@@"):
			inHunk = true
		case !inHunk:
			// file header lines (index, ---, +++, mode changes)
		case strings.HasPrefix(line, "+"):
			cur.Insertions++
		case strings.HasPrefix(line, "-"):
			cur.Deletions++
		}
	}
	return files
}
