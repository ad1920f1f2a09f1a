package arr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SuFxGIT/scoutarr-sub000/internal/cache"
	"github.com/SuFxGIT/scoutarr-sub000/internal/models"
	"github.com/SuFxGIT/scoutarr-sub000/internal/pkg/httpclient"
)

// restClient carries the plumbing shared by every *arr adapter: the HTTP
// clients, the API path prefix ("/api/v3" or "/api/v1") and the tag cache.
// TLS verification is on by default; targets behind self-signed proxies
// opt out individually and are routed to the insecure client.
type restClient struct {
	prefix   string
	http     *httpclient.Client
	insecure *httpclient.Client
	tags     cache.TagCache
	log      *zap.Logger
}

func newRESTClient(prefix string, tags cache.TagCache, log *zap.Logger) restClient {
	return restClient{
		prefix:   prefix,
		http:     httpclient.New().WithTimeout(60 * time.Second),
		insecure: httpclient.New().WithTimeout(60 * time.Second).WithInsecureSkipVerify(),
		tags:     tags,
		log:      log,
	}
}

// client picks the HTTP client matching the target's TLS setting.
func (c *restClient) client(t *models.Target) *httpclient.Client {
	if t.SkipTLSVerify {
		return c.insecure
	}
	return c.http
}

func (c *restClient) url(t *models.Target, path string) string {
	return strings.TrimRight(strings.TrimSpace(t.URL), "/") + c.prefix + path
}

func (c *restClient) headers(t *models.Target) map[string]string {
	return map[string]string{"X-Api-Key": t.APIKey}
}

type tagResource struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

type profileResource struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// tagNames returns an id -> label map for the target's tags.
func (c *restClient) tagNames(ctx context.Context, t *models.Target) (map[int64]string, error) {
	var tags []tagResource
	if err := c.client(t).GetJSON(ctx, c.url(t, "/tag"), c.headers(t), &tags); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	out := make(map[int64]string, len(tags))
	for _, tag := range tags {
		out[tag.ID] = tag.Label
	}
	return out, nil
}

// profileNames returns an id -> name map for the target's quality profiles.
func (c *restClient) profileNames(ctx context.Context, t *models.Target) (map[int64]string, error) {
	var profiles []profileResource
	if err := c.client(t).GetJSON(ctx, c.url(t, "/qualityprofile"), c.headers(t), &profiles); err != nil {
		return nil, fmt.Errorf("list quality profiles: %w", err)
	}
	out := make(map[int64]string, len(profiles))
	for _, p := range profiles {
		out[p.ID] = p.Name
	}
	return out, nil
}

func (c *restClient) resolveTagID(ctx context.Context, service string, t *models.Target, label string) (int64, bool, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0, false, nil
	}
	if id, ok := c.tags.Get(ctx, service, t.ID, label); ok {
		return id, true, nil
	}

	var tags []tagResource
	if err := c.client(t).GetJSON(ctx, c.url(t, "/tag"), c.headers(t), &tags); err != nil {
		return 0, false, fmt.Errorf("list tags: %w", err)
	}
	for _, tag := range tags {
		if strings.EqualFold(tag.Label, label) {
			c.tags.Put(ctx, service, t.ID, label, tag.ID)
			return tag.ID, true, nil
		}
	}
	return 0, false, nil
}

func (c *restClient) ensureTag(ctx context.Context, service string, t *models.Target, label string) (int64, error) {
	id, ok, err := c.resolveTagID(ctx, service, t, label)
	if err != nil {
		return 0, err
	}
	if ok {
		return id, nil
	}

	var created tagResource
	body := map[string]string{"label": strings.ToLower(strings.TrimSpace(label))}
	if err := c.client(t).PostJSON(ctx, c.url(t, "/tag"), c.headers(t), body, &created); err != nil {
		return 0, fmt.Errorf("create tag %q: %w", label, err)
	}
	c.tags.Put(ctx, service, t.ID, label, created.ID)
	return created.ID, nil
}

// editTags drives the bulk editor endpoint shared by all *arr services.
// idsField differs per resource kind ("movieIds", "seriesIds", ...).
func (c *restClient) editTags(ctx context.Context, t *models.Target, path, idsField string, ids []int64, tagID int64, apply string) error {
	if len(ids) == 0 {
		return nil
	}
	body := map[string]interface{}{
		idsField:    ids,
		"tags":      []int64{tagID},
		"applyTags": apply,
	}
	if err := c.client(t).PutJSON(ctx, c.url(t, path), c.headers(t), body); err != nil {
		return fmt.Errorf("%s tag %d: %w", apply, tagID, err)
	}
	return nil
}

func (c *restClient) command(ctx context.Context, t *models.Target, body map[string]interface{}) error {
	if err := c.client(t).PostJSON(ctx, c.url(t, "/command"), c.headers(t), body, nil); err != nil {
		return fmt.Errorf("command %v: %w", body["name"], err)
	}
	return nil
}
