package git

import (
	"context"

	"github.com/thomas-vilte/aigit/internal/models"
)

// DiffStats exposes the statistics of one diff scope (the index, or a ref
// range) to the size budgeter.
type DiffStats struct {
	svc    *GitService
	staged bool
	base   string
	head   string
}

func (s *GitService) StagedStats() *DiffStats {
	return &DiffStats{svc: s, staged: true}
}

func (s *GitService) RangeStats(base, head string) *DiffStats {
	return &DiffStats{svc: s, base: base, head: head}
}

func (d *DiffStats) NumStat(ctx context.Context) ([]models.FileStat, error) {
	if d.staged {
		return d.svc.StagedNumStat(ctx)
	}
	return d.svc.RangeNumStat(ctx, d.base, d.head)
}

func (d *DiffStats) Stat(ctx context.Context) (string, error) {
	if d.staged {
		return d.svc.StagedStat(ctx)
	}
	return d.svc.RangeStat(ctx, d.base, d.head)
}
