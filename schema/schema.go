// Package schema has the models, constants and wire shapes shared by all parts of pulse.
package schema

// Sample is one raw viewer-count observation as returned by the upstream trend endpoint.
// Timestamps are kept as strings so that malformed values can pass through untouched.
type Sample struct {
	TsUTC        string     `json:"ts_utc"`
	Viewers      Number     `json:"viewers"`
	Platform     string     `json:"platform,omitempty"`
	CategoryName string     `json:"category_name,omitempty"`
	TopStreamers []Streamer `json:"top_streamers_detail,omitempty"`
}

// Streamer is a single broadcaster mentioned in live rows or event clues.
type Streamer struct {
	Name    string `json:"name"`
	Title   string `json:"title,omitempty"`
	Viewers Number `json:"viewers,omitempty"`
}

// BucketKey is a timestamp floored to a 5-minute UTC bucket, or the raw input
// when it could not be parsed.
type BucketKey string

// Point is one populated bucket of an aggregated series.
type Point struct {
	Bucket  BucketKey `json:"ts_utc"`
	Viewers float64   `json:"viewers"`
}

// Series is a sparse, ascending sequence of populated buckets.
type Series []Point

// CategorySeries is the raw sample list fetched for one category.
type CategorySeries struct {
	Category string   `json:"category"`
	Points   []Sample `json:"points"`
}

// AlignedRow holds one timestamp and the value of every category present at it.
// Categories without data at the timestamp are absent from Values.
type AlignedRow struct {
	Timestamp BucketKey
	Values    map[string]float64
}

// Preset is a named, fixed-duration range choice.
type Preset struct {
	Label string `json:"label"`
	Hours int    `json:"hours"`
}

// DateRange is an explicit start/end pair, usually in YYYY-MM-DD form.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// IsZero reports whether neither bound is set.
func (r *DateRange) IsZero() bool {
	return r == nil || (r.Start == "" && r.End == "")
}
