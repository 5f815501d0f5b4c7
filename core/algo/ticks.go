package algo

import "github.com/streampulse/pulse/schema"

// Tick steps per range size.
const (
	shortRangeTickStep = 48
	longRangeTickStep  = 72
)

// TickStep returns the axis label stride for a range of the given hours.
func TickStep(hours int) int {
	if hours <= 24 {
		return shortRangeTickStep
	}
	return longRangeTickStep
}

// SampleTicks picks every TickStep(hours)-th bucket of series, starting at the first.
// The stride is positional: a sparse series with gaps yields ticks that are not
// evenly spaced in time.
func SampleTicks(series schema.Series, hours int) []schema.BucketKey {
	step := TickStep(hours)
	ticks := make([]schema.BucketKey, 0, len(series)/step+1)
	for i := 0; i < len(series); i += step {
		ticks = append(ticks, series[i].Bucket)
	}
	return ticks
}
