package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TagCache memoizes resolved tag ids per target so a search pass does not
// need a tag-listing round trip against the *arr instance on every run.
// Entries expire so renames on the remote side heal themselves.
type TagCache interface {
	Get(ctx context.Context, service string, targetID uint, label string) (int64, bool)
	Put(ctx context.Context, service string, targetID uint, label string, id int64)
	Forget(ctx context.Context, service string, targetID uint, label string)
}

type redisTagCache struct {
	client *redis.Client
	ttl    time.Duration
}

func tagKey(service string, targetID uint, label string) string {
	return fmt.Sprintf("arr:tag:%s:%d:%s", service, targetID, label)
}

func (c *redisTagCache) Get(ctx context.Context, service string, targetID uint, label string) (int64, bool) {
	val, err := c.client.Get(ctx, tagKey(service, targetID, label)).Result()
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (c *redisTagCache) Put(ctx context.Context, service string, targetID uint, label string, id int64) {
	_ = c.client.Set(ctx, tagKey(service, targetID, label), strconv.FormatInt(id, 10), c.ttl).Err()
}

func (c *redisTagCache) Forget(ctx context.Context, service string, targetID uint, label string) {
	_ = c.client.Del(ctx, tagKey(service, targetID, label)).Err()
}

type memoryTagCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

type memoryEntry struct {
	id  int64
	exp time.Time
}

func newMemoryTagCache(ttl time.Duration) *memoryTagCache {
	return &memoryTagCache{entries: make(map[string]memoryEntry), ttl: ttl}
}

func (c *memoryTagCache) Get(_ context.Context, service string, targetID uint, label string) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[tagKey(service, targetID, label)]
	if !ok || time.Now().After(e.exp) {
		return 0, false
	}
	return e.id, true
}

func (c *memoryTagCache) Put(_ context.Context, service string, targetID uint, label string, id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	// opportunistic sweep; the map stays tiny (one entry per target tag)
	for k, e := range c.entries {
		if now.After(e.exp) {
			delete(c.entries, k)
		}
	}
	c.entries[tagKey(service, targetID, label)] = memoryEntry{id: id, exp: now.Add(c.ttl)}
}

func (c *memoryTagCache) Forget(_ context.Context, service string, targetID uint, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, tagKey(service, targetID, label))
}

// NewTagCache builds a Redis-backed cache and falls back to in-memory when
// Redis is unreachable or not configured. The returned error reports the
// fallback reason; the cache is always usable.
func NewTagCache(addr, pass string, db int, ttl time.Duration) (TagCache, error) {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if addr == "" {
		return newMemoryTagCache(ttl), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return newMemoryTagCache(ttl), err
	}

	return &redisTagCache{client: client, ttl: ttl}, nil
}
