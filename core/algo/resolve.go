package algo

import (
	"math"

	"github.com/streampulse/pulse/schema"
)

// ResolveHours returns the number of hours to request for a chart.
// See ResolveRange for the rules.
func ResolveHours(preset schema.Preset, explicit *schema.DateRange) int {
	hours, _ := ResolveRange(preset, explicit)
	return hours
}

// ResolveRange turns a preset and an optional explicit range into an hour count.
//
// When both explicit bounds parse and end is after start, the span is rounded up
// to whole hours and clamped to [schema.MinRangeHours, schema.MaxRangeHours].
// Otherwise the preset's hours are returned as-is. fellBack is true only when an
// explicit range was supplied but could not be used.
func ResolveRange(preset schema.Preset, explicit *schema.DateRange) (hours int, fellBack bool) {
	if explicit.IsZero() {
		return preset.Hours, false
	}
	start, err := schema.ParseInstant(explicit.Start)
	if err != nil {
		return preset.Hours, true
	}
	end, err := schema.ParseInstant(explicit.End)
	if err != nil {
		return preset.Hours, true
	}
	if !end.After(start) {
		return preset.Hours, true
	}
	return clampHours(math.Ceil(end.Sub(start).Hours())), false
}

func clampHours(h float64) int {
	switch {
	case h < schema.MinRangeHours:
		return schema.MinRangeHours
	case h > schema.MaxRangeHours:
		return schema.MaxRangeHours
	default:
		return int(h)
	}
}
