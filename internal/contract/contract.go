// Package contract provides interfaces and shared utilities for pulse's internal architecture.
package contract

import (
	"context"

	"github.com/streampulse/pulse/schema"
)

// Source defines the upstream data operations the core consumes.
// This allows the executors to be tested without a live dashboard API.
type Source interface {
	// Live returns the current per-category snapshot.
	Live(ctx context.Context) ([]schema.LiveTraffic, error)

	// Events returns already-classified traffic events.
	Events(ctx context.Context) ([]schema.EventItem, error)

	// Trend returns raw samples for one category over the resolved window.
	// The explicit range, when non-nil, is forwarded alongside hours.
	Trend(ctx context.Context, category string, hours int, explicit *schema.DateRange) ([]schema.Sample, error)

	// Volatility returns per-category volatility measurements.
	Volatility(ctx context.Context) ([]schema.VolatilityEntry, error)

	// DailyTop returns the daily category leaderboard.
	DailyTop(ctx context.Context) ([]schema.DailyTop, error)

	// King returns streamers ordered by their peak viewer count.
	King(ctx context.Context) ([]schema.KingStreamer, error)

	// Flash returns categories that peaked briefly and are now quiet.
	Flash(ctx context.Context) ([]schema.FlashCategory, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetResponseStore() CacheStore
}

// CacheStore defines the interface for cached upstream payloads.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}
