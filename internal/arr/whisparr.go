package arr

import (
	"context"

	"go.uber.org/zap"

	"github.com/SuFxGIT/scoutarr-sub000/internal/cache"
	"github.com/SuFxGIT/scoutarr-sub000/internal/models"
)

// WhisparrClient implements Searcher for Whisparr, which exposes the same
// movie-shaped API as Radarr under /api/v3.
type WhisparrClient struct {
	RadarrClient
}

func NewWhisparrClient(tags cache.TagCache, log *zap.Logger) Searcher {
	return &WhisparrClient{RadarrClient{restClient: newRESTClient("/api/v3", tags, log)}}
}

func (w *WhisparrClient) ServiceType() string { return ServiceWhisparr }

func (w *WhisparrClient) ResolveTagID(ctx context.Context, t *models.Target, label string) (int64, bool, error) {
	return w.resolveTagID(ctx, w.ServiceType(), t, label)
}

func (w *WhisparrClient) EnsureTag(ctx context.Context, t *models.Target, label string) (int64, error) {
	return w.ensureTag(ctx, w.ServiceType(), t, label)
}
