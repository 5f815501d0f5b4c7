package schema

// TrendResult is the chart-ready output for one category.
type TrendResult struct {
	Category string      `json:"category"`
	Preset   string      `json:"preset"`
	Hours    int         `json:"hours"`
	Range    *DateRange  `json:"range,omitempty"`
	FellBack bool        `json:"fell_back"`
	Series   Series      `json:"series"`
	Ticks    []BucketKey `json:"ticks"`
}

// CompareResult holds aligned rows for each requested platform.
type CompareResult struct {
	Categories []string                `json:"categories"`
	Hours      int                     `json:"hours"`
	Platforms  []string                `json:"platforms"`
	Rows       map[string][]AlignedRow `json:"rows"`
	Ticks      map[string][]BucketKey  `json:"ticks"`
}

// VolatilityResult wraps the ranking views with the limit used to build them.
type VolatilityResult struct {
	Limit int          `json:"limit"`
	Views RankingViews `json:"views"`
}

// LiveResult summarizes one live snapshot.
type LiveResult struct {
	Totals     PlatformTotals `json:"totals"`
	Categories []string       `json:"categories"`
	Sorted     []string       `json:"sorted_categories"`
	Filter     string         `json:"filter,omitempty"`
	Matches    []string       `json:"matches"`
}

// EventsResult bundles the event split and the per-platform daily leaders.
type EventsResult struct {
	Split    EventSplit            `json:"split"`
	DailyTop map[string][]DailyTop `json:"daily_top"`
}

// InsightsResult holds the peak-viewer streamers and the flash categories.
type InsightsResult struct {
	Kings []KingStreamer  `json:"kings"`
	Flash []FlashCategory `json:"flash"`
}

// ResolveResult reports how a preset and explicit range resolve.
type ResolveResult struct {
	Preset   Preset     `json:"preset"`
	Range    *DateRange `json:"range,omitempty"`
	Hours    int        `json:"hours"`
	FellBack bool       `json:"fell_back"`
	TickStep int        `json:"tick_step"`
}
