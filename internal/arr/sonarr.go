package arr

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/SuFxGIT/scoutarr-sub000/internal/cache"
	"github.com/SuFxGIT/scoutarr-sub000/internal/models"
)

// SonarrClient implements Searcher for Sonarr (API v3). SeriesSearch takes
// a single series id, so searches are triggered one item at a time.
type SonarrClient struct {
	restClient
}

func NewSonarrClient(tags cache.TagCache, log *zap.Logger) Searcher {
	return &SonarrClient{restClient: newRESTClient("/api/v3", tags, log)}
}

func (s *SonarrClient) ServiceType() string      { return ServiceSonarr }
func (s *SonarrClient) SearchesOneAtATime() bool { return true }

type seriesResource struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Monitored        bool    `json:"monitored"`
	Tags             []int64 `json:"tags"`
	QualityProfileID int64   `json:"qualityProfileId"`
	Status           string  `json:"status"` // continuing, ended, upcoming, deleted
}

func (s *SonarrClient) FetchCandidates(ctx context.Context, t *models.Target) ([]models.Candidate, error) {
	tagNames, err := s.tagNames(ctx, t)
	if err != nil {
		return nil, err
	}
	profiles, err := s.profileNames(ctx, t)
	if err != nil {
		return nil, err
	}

	var series []seriesResource
	if err := s.client(t).GetJSON(ctx, s.url(t, "/series"), s.headers(t), &series); err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}

	out := make([]models.Candidate, 0, len(series))
	for _, item := range series {
		names := make([]string, 0, len(item.Tags))
		for _, id := range item.Tags {
			if name, ok := tagNames[id]; ok {
				names = append(names, name)
			}
		}
		out = append(out, models.Candidate{
			ID:             item.ID,
			Title:          item.Title,
			Monitored:      item.Monitored,
			Tags:           names,
			QualityProfile: profiles[item.QualityProfileID],
			Status:         item.Status,
		})
	}
	return out, nil
}

func (s *SonarrClient) Filter(t *models.Target, candidates []models.Candidate, recycled bool) []models.Candidate {
	return filterCandidates(t, candidates, recycled)
}

func (s *SonarrClient) ResolveTagID(ctx context.Context, t *models.Target, label string) (int64, bool, error) {
	return s.resolveTagID(ctx, s.ServiceType(), t, label)
}

func (s *SonarrClient) EnsureTag(ctx context.Context, t *models.Target, label string) (int64, error) {
	return s.ensureTag(ctx, s.ServiceType(), t, label)
}

// TriggerSearch queues one SeriesSearch per id; callers hand it single-id
// slices because SearchesOneAtATime is true.
func (s *SonarrClient) TriggerSearch(ctx context.Context, t *models.Target, ids []int64) error {
	for _, id := range ids {
		if err := s.command(ctx, t, map[string]interface{}{
			"name":     "SeriesSearch",
			"seriesId": id,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *SonarrClient) AddTag(ctx context.Context, t *models.Target, tagID int64, ids []int64) error {
	return s.editTags(ctx, t, "/series/editor", "seriesIds", ids, tagID, "add")
}

func (s *SonarrClient) RemoveTag(ctx context.Context, t *models.Target, tagID int64, ids []int64) error {
	return s.editTags(ctx, t, "/series/editor", "seriesIds", ids, tagID, "remove")
}
