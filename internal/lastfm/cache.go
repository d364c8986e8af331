package lastfm

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis key pattern for cached provider responses:
// cratedig:cache:{method}:{encoded lookup params}
//
// Keys are derived from the lookup arguments only, never from credentials,
// so a cache can be shared between sessions with different API keys.

// CacheKey returns the Redis key for a provider lookup.
func CacheKey(method string, params url.Values) string {
	return fmt.Sprintf("cratedig:cache:%s:%s", method, params.Encode())
}

// Cache is an optional Redis-backed store for raw provider responses.
// A nil *Cache disables caching entirely. Cache failures are soft: a Redis
// error is treated as a miss on read and ignored on write, so a broken
// cache can never break a lookup.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache creates a response cache. Entries expire after ttl; a zero ttl
// keeps them forever.
func NewCache(opts *redis.Options, ttl time.Duration) *Cache {
	return &Cache{
		rdb: redis.NewClient(opts),
		ttl: ttl,
	}
}

// Close closes the Redis connection. Implements io.Closer.
func (c *Cache) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity. Useful at startup so a misconfigured
// cache is reported before the first lookup silently bypasses it.
func (c *Cache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Get returns the cached response body for key, if present.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	body, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return body, true
}

// Set stores a response body under key.
func (c *Cache) Set(ctx context.Context, key string, body []byte) {
	c.rdb.Set(ctx, key, body, c.ttl)
}
