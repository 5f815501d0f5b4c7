package core

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/streampulse/pulse/internal/contract"
	"github.com/streampulse/pulse/internal/logging"
	"github.com/streampulse/pulse/internal/metrics"
	"github.com/streampulse/pulse/schema"
)

// currentCacheVersion defines the version of the cached payload layout.
// Bump it whenever a cached schema type changes shape.
const currentCacheVersion = 1

// CachedSource wraps a Source with a response cache. Entries are reused while
// their version matches and they are younger than the TTL.
type CachedSource struct {
	src   contract.Source
	store contract.CacheStore
	ttl   time.Duration
	now   func() time.Time
}

var _ contract.Source = &CachedSource{} // Compile-time check

// NewCachedSource wraps src with the response store of mgr. A nil manager,
// a nil store or a non-positive TTL turns the cache off.
func NewCachedSource(src contract.Source, mgr contract.CacheManager, ttl time.Duration) *CachedSource {
	cs := &CachedSource{src: src, ttl: ttl, now: time.Now}
	if mgr != nil && ttl > 0 {
		cs.store = mgr.GetResponseStore()
	}
	return cs
}

// Live implements the Source interface.
func (c *CachedSource) Live(ctx context.Context) ([]schema.LiveTraffic, error) {
	return cachedFetch(ctx, c, "live", nil, c.src.Live)
}

// Events implements the Source interface.
func (c *CachedSource) Events(ctx context.Context) ([]schema.EventItem, error) {
	return cachedFetch(ctx, c, "events", nil, c.src.Events)
}

// Trend implements the Source interface.
func (c *CachedSource) Trend(ctx context.Context, category string, hours int, explicit *schema.DateRange) ([]schema.Sample, error) {
	params := []string{category, strconv.Itoa(hours)}
	if explicit != nil {
		params = append(params, explicit.Start, explicit.End)
	}
	return cachedFetch(ctx, c, "trend", params, func(ctx context.Context) ([]schema.Sample, error) {
		return c.src.Trend(ctx, category, hours, explicit)
	})
}

// Volatility implements the Source interface.
func (c *CachedSource) Volatility(ctx context.Context) ([]schema.VolatilityEntry, error) {
	return cachedFetch(ctx, c, "volatility", nil, c.src.Volatility)
}

// DailyTop implements the Source interface.
func (c *CachedSource) DailyTop(ctx context.Context) ([]schema.DailyTop, error) {
	return cachedFetch(ctx, c, "daily-top", nil, c.src.DailyTop)
}

// King implements the Source interface.
func (c *CachedSource) King(ctx context.Context) ([]schema.KingStreamer, error) {
	return cachedFetch(ctx, c, "king", nil, c.src.King)
}

// Flash implements the Source interface.
func (c *CachedSource) Flash(ctx context.Context) ([]schema.FlashCategory, error) {
	return cachedFetch(ctx, c, "flash", nil, c.src.Flash)
}

// cachedFetch serves op from the cache when possible, otherwise calls fetch and stores the result.
// Cache failures are logged and never fail the request.
func cachedFetch[T any](ctx context.Context, c *CachedSource, op string, params []string, fetch func(context.Context) (T, error)) (T, error) {
	if c.store == nil {
		return fetch(ctx)
	}

	key := generateCacheKey(op, params)
	if result, ok := checkCacheHit[T](c, key); ok {
		return result, nil
	}

	result, err := fetch(ctx)
	if err != nil {
		return result, err
	}

	data, err := json.Marshal(result)
	if err != nil {
		metrics.RecordCacheLookup(metrics.CacheError)
		contract.LogWarn("Cannot encode response for cache", err)
		return result, nil
	}
	if err := c.store.Set(key, data, currentCacheVersion, c.now().Unix()); err != nil {
		metrics.RecordCacheLookup(metrics.CacheError)
		contract.LogWarn("Cannot write response cache", err)
	}
	return result, nil
}

// checkCacheHit attempts to retrieve and validate a cached result.
func checkCacheHit[T any](c *CachedSource, key string) (T, bool) {
	var result T
	data, version, ts, err := c.store.Get(key)
	if err != nil {
		metrics.RecordCacheLookup(metrics.CacheMiss)
		return result, false
	}

	// Validate version and staleness
	if version != currentCacheVersion || c.now().Sub(time.Unix(ts, 0)) > c.ttl {
		metrics.RecordCacheLookup(metrics.CacheStale)
		logging.Debug().Str("key", key).Int("version", version).Msg("stale cache entry")
		return result, false
	}
	if err := json.Unmarshal(data, &result); err != nil {
		metrics.RecordCacheLookup(metrics.CacheError)
		contract.LogWarn("Cannot decode cached response", err)
		return result, false
	}

	metrics.RecordCacheLookup(metrics.CacheHit)
	return result, true
}

// generateCacheKey creates a unique key from the operation and its parameters.
func generateCacheKey(op string, params []string) string {
	key := op + "\x00" + strings.Join(params, "\x00")
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
