package arr

import (
	"context"

	"github.com/SuFxGIT/scoutarr-sub000/internal/models"
)

// Supported service-type tags.
const (
	ServiceSonarr   = "sonarr"
	ServiceRadarr   = "radarr"
	ServiceLidarr   = "lidarr"
	ServiceReadarr  = "readarr"
	ServiceWhisparr = "whisparr"
)

// Searcher defines the per-service adapter consumed by the search
// orchestrator. Each *arr service type implements this interface; the
// target carries the connection parameters so one adapter serves every
// configured instance of its type.
type Searcher interface {
	// ServiceType returns the service-type tag ("sonarr", "radarr", ...).
	ServiceType() string

	// SearchesOneAtATime reports whether the service accepts only a single
	// item id per search command.
	SearchesOneAtATime() bool

	// FetchCandidates lists every library item of the target with tag and
	// quality-profile ids already resolved to names.
	FetchCandidates(ctx context.Context, t *models.Target) ([]models.Candidate, error)

	// Filter applies the selection pipeline's filter clauses. When recycled
	// is true the status and ignore-tag clauses are skipped (unattended
	// fallback pass).
	Filter(t *models.Target, candidates []models.Candidate, recycled bool) []models.Candidate

	// ResolveTagID looks up the id of an existing tag by label. The second
	// return value is false when no such tag exists yet.
	ResolveTagID(ctx context.Context, t *models.Target, label string) (int64, bool, error)

	// EnsureTag resolves the tag id for label, creating the tag when absent.
	EnsureTag(ctx context.Context, t *models.Target, label string) (int64, error)

	// TriggerSearch queues a search command for the given item ids.
	TriggerSearch(ctx context.Context, t *models.Target, ids []int64) error

	// AddTag applies tagID to the given item ids.
	AddTag(ctx context.Context, t *models.Target, tagID int64, ids []int64) error

	// RemoveTag strips tagID from the given item ids.
	RemoveTag(ctx context.Context, t *models.Target, tagID int64, ids []int64) error
}
