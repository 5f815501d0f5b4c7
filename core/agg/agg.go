// Package agg has bucketing, aggregation and alignment logic for viewer samples.
package agg

import (
	"sort"
	"time"

	"github.com/streampulse/pulse/schema"
)

// NormalizeTimestamp floors ts to its 5-minute UTC bucket. Seconds and sub-seconds
// are zeroed. When ts does not parse, it is returned unchanged so that callers
// can still group by it; such keys only compare by string order.
func NormalizeTimestamp(ts string) schema.BucketKey {
	t, err := schema.ParseInstant(ts)
	if err != nil {
		return schema.BucketKey(ts)
	}
	t = t.UTC().Truncate(schema.BucketWidth)
	if y := t.Year(); y < 1 || y > 9999 {
		// Outside the fixed-width key layout.
		return schema.BucketKey(ts)
	}
	return schema.BucketKey(t.Format(schema.BucketKeyFormat))
}

// AggregateSeries buckets samples and sums the viewers that land in the same bucket.
// Samples with an empty timestamp are skipped. The result holds one point per
// populated bucket, ascending by instant; empty buckets are never emitted.
func AggregateSeries(samples []schema.Sample) schema.Series {
	sums := make(map[schema.BucketKey]float64)
	var keys []schema.BucketKey
	for _, s := range samples {
		if s.TsUTC == "" {
			continue
		}
		key := NormalizeTimestamp(s.TsUTC)
		if _, seen := sums[key]; !seen {
			keys = append(keys, key)
		}
		sums[key] += s.Viewers.Float64()
	}

	sortBucketKeys(keys)

	series := make(schema.Series, 0, len(keys))
	for _, key := range keys {
		series = append(series, schema.Point{Bucket: key, Viewers: sums[key]})
	}
	return series
}

// sortBucketKeys orders keys by instant, falling back to string order for any
// pair where a key is a raw passthrough value.
func sortBucketKeys(keys []schema.BucketKey) {
	instants := make(map[schema.BucketKey]time.Time, len(keys))
	for _, k := range keys {
		if t, err := schema.ParseInstant(string(k)); err == nil {
			instants[k] = t
		}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		ti, okI := instants[keys[i]]
		tj, okJ := instants[keys[j]]
		if okI && okJ {
			return ti.Before(tj)
		}
		return keys[i] < keys[j]
	})
}
