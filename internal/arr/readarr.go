package arr

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/SuFxGIT/scoutarr-sub000/internal/cache"
	"github.com/SuFxGIT/scoutarr-sub000/internal/models"
)

// ReadarrClient implements Searcher for Readarr (API v1). AuthorSearch takes
// a single author id, so searches are triggered one item at a time.
type ReadarrClient struct {
	restClient
}

func NewReadarrClient(tags cache.TagCache, log *zap.Logger) Searcher {
	return &ReadarrClient{restClient: newRESTClient("/api/v1", tags, log)}
}

func (r *ReadarrClient) ServiceType() string      { return ServiceReadarr }
func (r *ReadarrClient) SearchesOneAtATime() bool { return true }

type authorResource struct {
	ID               int64   `json:"id"`
	AuthorName       string  `json:"authorName"`
	Monitored        bool    `json:"monitored"`
	Tags             []int64 `json:"tags"`
	QualityProfileID int64   `json:"qualityProfileId"`
	Status           string  `json:"status"`
}

func (r *ReadarrClient) FetchCandidates(ctx context.Context, t *models.Target) ([]models.Candidate, error) {
	tagNames, err := r.tagNames(ctx, t)
	if err != nil {
		return nil, err
	}
	profiles, err := r.profileNames(ctx, t)
	if err != nil {
		return nil, err
	}

	var authors []authorResource
	if err := r.client(t).GetJSON(ctx, r.url(t, "/author"), r.headers(t), &authors); err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}

	out := make([]models.Candidate, 0, len(authors))
	for _, a := range authors {
		names := make([]string, 0, len(a.Tags))
		for _, id := range a.Tags {
			if name, ok := tagNames[id]; ok {
				names = append(names, name)
			}
		}
		out = append(out, models.Candidate{
			ID:             a.ID,
			Title:          a.AuthorName,
			Monitored:      a.Monitored,
			Tags:           names,
			QualityProfile: profiles[a.QualityProfileID],
			Status:         a.Status,
		})
	}
	return out, nil
}

func (r *ReadarrClient) Filter(t *models.Target, candidates []models.Candidate, recycled bool) []models.Candidate {
	return filterCandidates(t, candidates, recycled)
}

func (r *ReadarrClient) ResolveTagID(ctx context.Context, t *models.Target, label string) (int64, bool, error) {
	return r.resolveTagID(ctx, r.ServiceType(), t, label)
}

func (r *ReadarrClient) EnsureTag(ctx context.Context, t *models.Target, label string) (int64, error) {
	return r.ensureTag(ctx, r.ServiceType(), t, label)
}

func (r *ReadarrClient) TriggerSearch(ctx context.Context, t *models.Target, ids []int64) error {
	for _, id := range ids {
		if err := r.command(ctx, t, map[string]interface{}{
			"name":     "AuthorSearch",
			"authorId": id,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (r *ReadarrClient) AddTag(ctx context.Context, t *models.Target, tagID int64, ids []int64) error {
	return r.editTags(ctx, t, "/author/editor", "authorIds", ids, tagID, "add")
}

func (r *ReadarrClient) RemoveTag(ctx context.Context, t *models.Target, tagID int64, ids []int64) error {
	return r.editTags(ctx, t, "/author/editor", "authorIds", ids, tagID, "remove")
}
