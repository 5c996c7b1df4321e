// internal/resolver/cache.go
package resolver

import (
	"context"
	"fmt"
	"time"

	"assistant-engine/internal/common/database"
	"assistant-engine/internal/contextmap"

	"github.com/redis/go-redis/v9"
)

// CachedResolver decorates another resolver with a Redis read-through
// cache. Cache keys include the hint value the lookup depends on, so
// two customers never share an entry. Cache failures degrade to the
// underlying resolver instead of failing the request.
type CachedResolver struct {
	inner   Resolver
	cache   *database.RedisClient
	ttl     time.Duration
	hintFor func(key string) string // which hint scopes the cache entry for this key
}

// NewCachedResolver wraps inner. hintFor maps a context key to the
// hint name that scopes its cached value; keys mapping to "" are not
// cached.
func NewCachedResolver(inner Resolver, cache *database.RedisClient, ttl time.Duration, hintFor func(key string) string) *CachedResolver {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if hintFor == nil {
		hintFor = func(string) string { return "" }
	}
	return &CachedResolver{inner: inner, cache: cache, ttl: ttl, hintFor: hintFor}
}

func (r *CachedResolver) Source() contextmap.Source {
	return r.inner.Source()
}

func (r *CachedResolver) Resolve(ctx context.Context, keys []string, hints Hints) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	var misses []string

	for _, key := range keys {
		cacheKey, cacheable := r.cacheKey(key, hints)
		if !cacheable {
			misses = append(misses, key)
			continue
		}
		val, err := r.cache.Get(ctx, cacheKey)
		if err == redis.Nil {
			misses = append(misses, key)
			continue
		}
		if err != nil {
			// Degraded cache: fall through to the backend.
			misses = append(misses, key)
			continue
		}
		out[key] = val
	}

	if len(misses) == 0 {
		return out, nil
	}

	fetched, err := r.inner.Resolve(ctx, misses, hints)
	if err != nil {
		return nil, err
	}
	for key, val := range fetched {
		out[key] = val
		if cacheKey, cacheable := r.cacheKey(key, hints); cacheable {
			// Best effort write; a failed Set only costs a future miss.
			_ = r.cache.Set(ctx, cacheKey, val, r.ttl)
		}
	}
	return out, nil
}

func (r *CachedResolver) cacheKey(key string, hints Hints) (string, bool) {
	hintName := r.hintFor(key)
	if hintName == "" {
		return "", false
	}
	hintVal, ok := hints[hintName]
	if !ok || hintVal == "" {
		return "", false
	}
	return fmt.Sprintf("ctx:%s:%s:%s", r.inner.Source(), key, hintVal), true
}

// DefaultCacheHints scopes the shipped database lookups by the hint
// each depends on.
func DefaultCacheHints() func(string) string {
	scopes := map[string]string{
		"customer_id":   "customer_name",
		"channel":       "customer_id",
		"address":       "customer_id",
		"quote_status":  "quote_id",
		"quote_total":   "quote_id",
		"invoice_total": "invoice_id",
	}
	return func(key string) string { return scopes[key] }
}
