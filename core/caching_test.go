package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/streampulse/pulse/internal/contract"
	"github.com/streampulse/pulse/internal/iocache"
	"github.com/streampulse/pulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestCachedSource(src contract.Source, store contract.CacheStore) *CachedSource {
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetResponseStore").Return(store)
	cs := NewCachedSource(src, mgr, 10*time.Minute)
	cs.now = func() time.Time { return fixedNow }
	return cs
}

func TestCachedSourceHit(t *testing.T) {
	cached := []schema.LiveTraffic{{Platform: "SOOP", CategoryName: "cached", Viewers: 5}}
	data, err := json.Marshal(cached)
	require.NoError(t, err)

	store := &iocache.MockCacheStore{}
	store.On("Get", generateCacheKey("live", nil)).
		Return(data, currentCacheVersion, fixedNow.Add(-time.Minute).Unix(), nil)
	src := &contract.MockSource{}

	rows, err := newTestCachedSource(src, store).Live(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cached, rows)
	src.AssertNotCalled(t, "Live", mock.Anything)
}

func TestCachedSourceMissStores(t *testing.T) {
	fresh := []schema.VolatilityEntry{{Platform: "SOOP", Category: "a", Score: score(0)}}
	key := generateCacheKey("volatility", nil)

	store := &iocache.MockCacheStore{}
	store.On("Get", key).Return(nil, 0, int64(0), errors.New("no rows"))
	store.On("Set", key, mock.Anything, currentCacheVersion, fixedNow.Unix()).Return(nil)
	src := &contract.MockSource{}
	src.On("Volatility", mock.Anything).Return(fresh, nil)

	rows, err := newTestCachedSource(src, store).Volatility(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fresh, rows)
	store.AssertExpectations(t)
}

func TestCachedSourceStaleEntries(t *testing.T) {
	tests := []struct {
		name    string
		version int
		age     time.Duration
	}{
		{"expired", currentCacheVersion, time.Hour},
		{"old version", currentCacheVersion + 1, time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := generateCacheKey("daily-top", nil)
			store := &iocache.MockCacheStore{}
			store.On("Get", key).Return([]byte(`[]`), tt.version, fixedNow.Add(-tt.age).Unix(), nil)
			store.On("Set", key, mock.Anything, currentCacheVersion, fixedNow.Unix()).Return(nil)
			src := &contract.MockSource{}
			src.On("DailyTop", mock.Anything).Return([]schema.DailyTop{{CategoryName: "fresh"}}, nil)

			rows, err := newTestCachedSource(src, store).DailyTop(context.Background())
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, "fresh", rows[0].CategoryName)
		})
	}
}

func TestCachedSourceWriteFailureIsNonFatal(t *testing.T) {
	store := &iocache.MockCacheStore{}
	store.On("Get", mock.Anything).Return(nil, 0, int64(0), errors.New("miss"))
	store.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))
	src := &contract.MockSource{}
	src.On("Events", mock.Anything).Return([]schema.EventItem{{EventID: 9}}, nil)

	rows, err := newTestCachedSource(src, store).Events(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestCachedSourceInsightsKeys(t *testing.T) {
	store := &iocache.MockCacheStore{}
	store.On("Get", generateCacheKey("king", nil)).
		Return([]byte(`[{"platform":"SOOP","streamer":"kim","category":"Talk","viewers":900,"timestamp":""}]`), currentCacheVersion, fixedNow.Unix(), nil)
	store.On("Get", generateCacheKey("flash", nil)).Return(nil, 0, int64(0), errors.New("miss"))
	store.On("Set", generateCacheKey("flash", nil), mock.Anything, currentCacheVersion, fixedNow.Unix()).Return(nil)
	src := &contract.MockSource{}
	src.On("Flash", mock.Anything).Return([]schema.FlashCategory{{CategoryName: "Palworld"}}, nil)

	cs := newTestCachedSource(src, store)
	kings, err := cs.King(context.Background())
	require.NoError(t, err)
	require.Len(t, kings, 1)
	assert.Equal(t, "kim", kings[0].Streamer)
	src.AssertNotCalled(t, "King", mock.Anything)

	flash, err := cs.Flash(context.Background())
	require.NoError(t, err)
	require.Len(t, flash, 1)
	store.AssertCalled(t, "Set", generateCacheKey("flash", nil), mock.Anything, currentCacheVersion, fixedNow.Unix())
}

func TestCachedSourceUpstreamErrorIsNotStored(t *testing.T) {
	store := &iocache.MockCacheStore{}
	store.On("Get", mock.Anything).Return(nil, 0, int64(0), errors.New("miss"))
	src := &contract.MockSource{}
	upstreamErr := errors.New("502")
	src.On("Trend", mock.Anything, "x", 24, noRange).Return(nil, upstreamErr)

	_, err := newTestCachedSource(src, store).Trend(context.Background(), "x", 24, nil)
	assert.ErrorIs(t, err, upstreamErr)
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCachedSourceDisabled(t *testing.T) {
	src := &contract.MockSource{}
	src.On("Live", mock.Anything).Return([]schema.LiveTraffic{}, nil)

	cs := NewCachedSource(src, nil, time.Minute)
	_, err := cs.Live(context.Background())
	require.NoError(t, err)

	mgr := &iocache.MockCacheManager{}
	cs = NewCachedSource(src, mgr, 0)
	_, err = cs.Live(context.Background())
	require.NoError(t, err)
	mgr.AssertNotCalled(t, "GetResponseStore")
	src.AssertNumberOfCalls(t, "Live", 2)
}

func TestGenerateCacheKey(t *testing.T) {
	a := generateCacheKey("trend", []string{"x", "24"})
	assert.Len(t, a, 64)
	assert.Equal(t, a, generateCacheKey("trend", []string{"x", "24"}))
	assert.NotEqual(t, a, generateCacheKey("trend", []string{"x", "48"}))
	assert.NotEqual(t, generateCacheKey("trend", []string{"a:b", "1"}), generateCacheKey("trend", []string{"a", "b:1"}))
}
