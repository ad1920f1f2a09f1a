package scheduler

import (
	"context"
	"math/rand"

	"go.uber.org/zap"

	"github.com/SuFxGIT/scoutarr-sub000/internal/arr"
	"github.com/SuFxGIT/scoutarr-sub000/internal/models"
)

// AdapterFactory resolves the service adapter for a target.
type AdapterFactory func(t *models.Target) (arr.Searcher, error)

// Orchestrator executes one search pass for one target: fetch, filter,
// unattended fallback, sample, trigger, tag.
type Orchestrator struct {
	factory           AdapterFactory
	defaultUnattended bool
	log               *zap.Logger
}

func NewOrchestrator(factory AdapterFactory, defaultUnattended bool, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		factory:           factory,
		defaultUnattended: defaultUnattended,
		log:               log,
	}
}

// Run never returns an error: adapter failures are folded into a failed
// SearchResult so a broken target cannot abort its siblings in a fan-out.
func (o *Orchestrator) Run(ctx context.Context, t *models.Target) models.SearchResult {
	searcher, err := o.factory(t)
	if err != nil {
		return o.failed(t, err)
	}

	candidates, err := searcher.FetchCandidates(ctx, t)
	if err != nil {
		return o.failed(t, err)
	}

	filtered := searcher.Filter(t, candidates, false)

	if len(filtered) == 0 && t.UnattendedOr(o.defaultUnattended) {
		filtered, err = o.recycle(ctx, searcher, t, candidates)
		if err != nil {
			return o.failed(t, err)
		}
	}

	if len(filtered) == 0 {
		o.log.Info("nothing to search",
			zap.String("target", t.Key()),
		)
		return models.SearchResult{Success: true, Searched: 0}
	}

	selected := sample(filtered, t)
	if len(selected) == 0 {
		return models.SearchResult{Success: true, Searched: 0}
	}

	ids := make([]int64, len(selected))
	items := make([]models.SearchedItem, len(selected))
	for i, c := range selected {
		ids[i] = c.ID
		items[i] = models.SearchedItem{ID: c.ID, Title: c.Title}
	}

	if searcher.SearchesOneAtATime() {
		for _, id := range ids {
			if err := searcher.TriggerSearch(ctx, t, []int64{id}); err != nil {
				return o.failed(t, err)
			}
		}
	} else {
		if err := searcher.TriggerSearch(ctx, t, ids); err != nil {
			return o.failed(t, err)
		}
	}

	tagID, err := searcher.EnsureTag(ctx, t, t.TagName)
	if err != nil {
		return o.failed(t, err)
	}
	if err := searcher.AddTag(ctx, t, tagID, ids); err != nil {
		return o.failed(t, err)
	}

	o.log.Info("search pass complete",
		zap.String("target", t.Key()),
		zap.Int("searched", len(ids)),
	)
	return models.SearchResult{Success: true, Searched: len(ids), Items: items}
}

// recycle implements the unattended fallback: strip the processed tag from
// monitored-matching items that already carry it, re-fetch and re-filter
// with the attended-only clauses disabled. A missing tag means nothing was
// ever processed, so there is nothing to recycle.
func (o *Orchestrator) recycle(ctx context.Context, searcher arr.Searcher, t *models.Target, candidates []models.Candidate) ([]models.Candidate, error) {
	tagID, ok, err := searcher.ResolveTagID(ctx, t, t.TagName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var processed []int64
	for _, c := range candidates {
		if t.Monitored != nil && c.Monitored != *t.Monitored {
			continue
		}
		if arr.HasTag(c, t.TagName) {
			processed = append(processed, c.ID)
		}
	}
	if len(processed) == 0 {
		return nil, nil
	}

	o.log.Info("recycling processed items",
		zap.String("target", t.Key()),
		zap.Int("count", len(processed)),
	)
	if err := searcher.RemoveTag(ctx, t, tagID, processed); err != nil {
		return nil, err
	}

	refreshed, err := searcher.FetchCandidates(ctx, t)
	if err != nil {
		return nil, err
	}
	return searcher.Filter(t, refreshed, true), nil
}

// sample draws the target's bounded random selection. Count "all" keeps
// the whole set; otherwise an unbiased shuffle picks min(count, len) items.
func sample(filtered []models.Candidate, t *models.Target) []models.Candidate {
	if t.WantsAll() {
		return filtered
	}
	limit := t.CountLimit()
	if limit <= 0 {
		return nil
	}
	if limit >= len(filtered) {
		return filtered
	}
	shuffled := make([]models.Candidate, len(filtered))
	copy(shuffled, filtered)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:limit]
}

func (o *Orchestrator) failed(t *models.Target, err error) models.SearchResult {
	o.log.Error("search pass failed",
		zap.String("target", t.Key()),
		zap.Error(err),
	)
	return models.SearchResult{Success: false, Searched: 0, Error: err.Error()}
}
