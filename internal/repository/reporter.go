package repository

import (
	"context"

	"github.com/SuFxGIT/scoutarr-sub000/internal/models"
)

// Reporter bundles run-log and stats persistence behind the scheduler's
// reporting interface.
type Reporter struct {
	runs  *RunRepository
	stats *StatRepository
}

func NewReporter(runs *RunRepository, stats *StatRepository) *Reporter {
	return &Reporter{runs: runs, stats: stats}
}

func (r *Reporter) RecordRun(ctx context.Context, rec models.RunRecord) error {
	return r.runs.Save(ctx, rec)
}

func (r *Reporter) RecordSearch(ctx context.Context, service string, targetID uint, res models.SearchResult) error {
	return r.stats.Record(ctx, service, targetID, res)
}
