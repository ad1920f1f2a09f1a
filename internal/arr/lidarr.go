package arr

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/SuFxGIT/scoutarr-sub000/internal/cache"
	"github.com/SuFxGIT/scoutarr-sub000/internal/models"
)

// LidarrClient implements Searcher for Lidarr (API v1). ArtistSearch takes
// a single artist id, so searches are triggered one item at a time.
type LidarrClient struct {
	restClient
}

func NewLidarrClient(tags cache.TagCache, log *zap.Logger) Searcher {
	return &LidarrClient{restClient: newRESTClient("/api/v1", tags, log)}
}

func (l *LidarrClient) ServiceType() string      { return ServiceLidarr }
func (l *LidarrClient) SearchesOneAtATime() bool { return true }

type artistResource struct {
	ID               int64   `json:"id"`
	ArtistName       string  `json:"artistName"`
	Monitored        bool    `json:"monitored"`
	Tags             []int64 `json:"tags"`
	QualityProfileID int64   `json:"qualityProfileId"`
	Status           string  `json:"status"`
}

func (l *LidarrClient) FetchCandidates(ctx context.Context, t *models.Target) ([]models.Candidate, error) {
	tagNames, err := l.tagNames(ctx, t)
	if err != nil {
		return nil, err
	}
	profiles, err := l.profileNames(ctx, t)
	if err != nil {
		return nil, err
	}

	var artists []artistResource
	if err := l.client(t).GetJSON(ctx, l.url(t, "/artist"), l.headers(t), &artists); err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}

	out := make([]models.Candidate, 0, len(artists))
	for _, a := range artists {
		names := make([]string, 0, len(a.Tags))
		for _, id := range a.Tags {
			if name, ok := tagNames[id]; ok {
				names = append(names, name)
			}
		}
		out = append(out, models.Candidate{
			ID:             a.ID,
			Title:          a.ArtistName,
			Monitored:      a.Monitored,
			Tags:           names,
			QualityProfile: profiles[a.QualityProfileID],
			Status:         a.Status,
		})
	}
	return out, nil
}

func (l *LidarrClient) Filter(t *models.Target, candidates []models.Candidate, recycled bool) []models.Candidate {
	return filterCandidates(t, candidates, recycled)
}

func (l *LidarrClient) ResolveTagID(ctx context.Context, t *models.Target, label string) (int64, bool, error) {
	return l.resolveTagID(ctx, l.ServiceType(), t, label)
}

func (l *LidarrClient) EnsureTag(ctx context.Context, t *models.Target, label string) (int64, error) {
	return l.ensureTag(ctx, l.ServiceType(), t, label)
}

func (l *LidarrClient) TriggerSearch(ctx context.Context, t *models.Target, ids []int64) error {
	for _, id := range ids {
		if err := l.command(ctx, t, map[string]interface{}{
			"name":     "ArtistSearch",
			"artistId": id,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (l *LidarrClient) AddTag(ctx context.Context, t *models.Target, tagID int64, ids []int64) error {
	return l.editTags(ctx, t, "/artist/editor", "artistIds", ids, tagID, "add")
}

func (l *LidarrClient) RemoveTag(ctx context.Context, t *models.Target, tagID int64, ids []int64) error {
	return l.editTags(ctx, t, "/artist/editor", "artistIds", ids, tagID, "remove")
}
