package algo

import (
	"testing"
	"time"

	"github.com/streampulse/pulse/schema"
	"github.com/stretchr/testify/assert"
)

func buildSeries(start time.Time, n int, skip func(i int) bool) schema.Series {
	var s schema.Series
	for i := range n {
		if skip != nil && skip(i) {
			continue
		}
		ts := start.Add(time.Duration(i) * schema.BucketWidth)
		s = append(s, schema.Point{Bucket: schema.BucketKey(ts.Format(schema.BucketKeyFormat)), Viewers: float64(i)})
	}
	return s
}

func TestTickStep(t *testing.T) {
	assert.Equal(t, 48, TickStep(1))
	assert.Equal(t, 48, TickStep(24))
	assert.Equal(t, 72, TickStep(25))
	assert.Equal(t, 72, TickStep(720))
}

func TestSampleTicks(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, SampleTicks(nil, 24))
	})

	t.Run("dense day", func(t *testing.T) {
		series := buildSeries(start, 288, nil)
		ticks := SampleTicks(series, 24)
		assert.Len(t, ticks, 6)
		assert.Equal(t, schema.BucketKey("2024-01-01T00:00:00.000Z"), ticks[0])
		assert.Equal(t, schema.BucketKey("2024-01-01T04:00:00.000Z"), ticks[1])
	})

	t.Run("long range uses wider step", func(t *testing.T) {
		series := buildSeries(start, 145, nil)
		ticks := SampleTicks(series, 48)
		assert.Equal(t, []schema.BucketKey{series[0].Bucket, series[72].Bucket, series[144].Bucket}, ticks)
	})

	t.Run("gaps shift ticks", func(t *testing.T) {
		// Dropping the first ten buckets moves the second tick ten buckets later in time.
		series := buildSeries(start, 100, func(i int) bool { return i > 0 && i <= 10 })
		ticks := SampleTicks(series, 24)
		assert.Len(t, ticks, 2)
		assert.Equal(t, schema.BucketKey("2024-01-01T04:50:00.000Z"), ticks[1])
	})
}

func BenchmarkSampleTicks(b *testing.B) {
	series := buildSeries(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 720*12, nil)
	for b.Loop() {
		SampleTicks(series, 720)
	}
}
