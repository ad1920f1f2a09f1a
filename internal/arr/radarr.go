package arr

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/SuFxGIT/scoutarr-sub000/internal/cache"
	"github.com/SuFxGIT/scoutarr-sub000/internal/models"
)

// RadarrClient implements Searcher for Radarr (API v3). Radarr accepts a
// batch of movie ids in a single MoviesSearch command.
type RadarrClient struct {
	restClient
}

func NewRadarrClient(tags cache.TagCache, log *zap.Logger) Searcher {
	return &RadarrClient{restClient: newRESTClient("/api/v3", tags, log)}
}

func (r *RadarrClient) ServiceType() string      { return ServiceRadarr }
func (r *RadarrClient) SearchesOneAtATime() bool { return false }

type movieResource struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Monitored        bool    `json:"monitored"`
	Tags             []int64 `json:"tags"`
	QualityProfileID int64   `json:"qualityProfileId"`
	Status           string  `json:"status"`
}

func (r *RadarrClient) FetchCandidates(ctx context.Context, t *models.Target) ([]models.Candidate, error) {
	tagNames, err := r.tagNames(ctx, t)
	if err != nil {
		return nil, err
	}
	profiles, err := r.profileNames(ctx, t)
	if err != nil {
		return nil, err
	}

	var movies []movieResource
	if err := r.client(t).GetJSON(ctx, r.url(t, "/movie"), r.headers(t), &movies); err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	out := make([]models.Candidate, 0, len(movies))
	for _, m := range movies {
		names := make([]string, 0, len(m.Tags))
		for _, id := range m.Tags {
			if name, ok := tagNames[id]; ok {
				names = append(names, name)
			}
		}
		out = append(out, models.Candidate{
			ID:             m.ID,
			Title:          m.Title,
			Monitored:      m.Monitored,
			Tags:           names,
			QualityProfile: profiles[m.QualityProfileID],
			Status:         m.Status,
		})
	}
	return out, nil
}

func (r *RadarrClient) Filter(t *models.Target, candidates []models.Candidate, recycled bool) []models.Candidate {
	return filterCandidates(t, candidates, recycled)
}

func (r *RadarrClient) ResolveTagID(ctx context.Context, t *models.Target, label string) (int64, bool, error) {
	return r.resolveTagID(ctx, r.ServiceType(), t, label)
}

func (r *RadarrClient) EnsureTag(ctx context.Context, t *models.Target, label string) (int64, error) {
	return r.ensureTag(ctx, r.ServiceType(), t, label)
}

func (r *RadarrClient) TriggerSearch(ctx context.Context, t *models.Target, ids []int64) error {
	return r.command(ctx, t, map[string]interface{}{
		"name":     "MoviesSearch",
		"movieIds": ids,
	})
}

func (r *RadarrClient) AddTag(ctx context.Context, t *models.Target, tagID int64, ids []int64) error {
	return r.editTags(ctx, t, "/movie/editor", "movieIds", ids, tagID, "add")
}

func (r *RadarrClient) RemoveTag(ctx context.Context, t *models.Target, tagID int64, ids []int64) error {
	return r.editTags(ctx, t, "/movie/editor", "movieIds", ids, tagID, "remove")
}
