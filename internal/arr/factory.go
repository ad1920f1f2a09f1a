package arr

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/SuFxGIT/scoutarr-sub000/internal/cache"
	"github.com/SuFxGIT/scoutarr-sub000/internal/models"
)

// Factory hands out one Searcher per service type. Adapters are stateless
// beyond their HTTP client, so a single instance serves every target of
// its type.
type Factory struct {
	mu        sync.Mutex
	searchers map[string]Searcher
	tags      cache.TagCache
	log       *zap.Logger
}

func NewFactory(tags cache.TagCache, log *zap.Logger) *Factory {
	return &Factory{
		searchers: make(map[string]Searcher),
		tags:      tags,
		log:       log,
	}
}

// ForTarget returns the Searcher matching the target's service type.
func (f *Factory) ForTarget(t *models.Target) (Searcher, error) {
	service := strings.ToLower(strings.TrimSpace(t.Service))

	f.mu.Lock()
	defer f.mu.Unlock()

	if s, ok := f.searchers[service]; ok {
		return s, nil
	}

	var s Searcher
	switch service {
	case ServiceSonarr:
		s = NewSonarrClient(f.tags, f.log)
	case ServiceRadarr:
		s = NewRadarrClient(f.tags, f.log)
	case ServiceLidarr:
		s = NewLidarrClient(f.tags, f.log)
	case ServiceReadarr:
		s = NewReadarrClient(f.tags, f.log)
	case ServiceWhisparr:
		s = NewWhisparrClient(f.tags, f.log)
	default:
		return nil, fmt.Errorf("unsupported service type %q", t.Service)
	}

	f.searchers[service] = s
	return s, nil
}
