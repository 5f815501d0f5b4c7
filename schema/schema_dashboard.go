package schema

import "github.com/goccy/go-json"

// LiveTraffic is one category snapshot from the live endpoint.
type LiveTraffic struct {
	Platform     string     `json:"platform"`
	CategoryName string     `json:"category_name"`
	Viewers      Number     `json:"viewers"`
	TopStreamers []Streamer `json:"top_streamers_detail,omitempty"`
	TsUTC        string     `json:"ts_utc"`
}

// EventItem is an already-classified traffic event. CauseDetail arrives either
// as a JSON object or as a JSON-encoded string holding one.
type EventItem struct {
	EventID      int64           `json:"event_id"`
	CreatedAt    string          `json:"created_at"`
	Platform     string          `json:"platform"`
	CategoryName string          `json:"category_name"`
	EventType    string          `json:"event_type"`
	GrowthRate   *float64        `json:"growth_rate"`
	CauseDetail  json.RawMessage `json:"cause_detail,omitempty"`
}

// CauseDetail is the decoded form of EventItem.CauseDetail.
type CauseDetail struct {
	Clues  []Streamer   `json:"clues,omitempty"`
	Stats  CauseStats   `json:"stats"`
	Market MarketDetail `json:"market"`
}

// CauseStats carries the raw viewer delta behind an event.
type CauseStats struct {
	Delta Number `json:"delta"`
}

// MarketDetail carries market-structure signals. Nil fields were not reported.
type MarketDetail struct {
	DominanceIndex *float64 `json:"dominance_index,omitempty"`
	OpenLivesDelta *float64 `json:"open_lives_delta,omitempty"`
	Top2To5Delta   *float64 `json:"top2_5_delta,omitempty"`
}

// Primary returns the first clue, or nil when there is none.
func (d CauseDetail) Primary() *Streamer {
	if len(d.Clues) == 0 {
		return nil
	}
	s := d.Clues[0]
	return &s
}

// DailyTop is one row of the per-day category leaderboard.
type DailyTop struct {
	Platform     string `json:"platform"`
	CategoryName string `json:"category_name"`
	AvgViewers   Number `json:"avg_viewers"`
	PeakViewers  Number `json:"peak_viewers"`
}

// PlatformTotals sums live viewers overall and per platform.
type PlatformTotals struct {
	Total      float64            `json:"total"`
	ByPlatform map[string]float64 `json:"by_platform"`
}

// EventSplit separates category-adoption events from market spikes.
type EventSplit struct {
	Adoptions []EventItem `json:"adoptions"`
	Spikes    []EventItem `json:"spikes"`
}

// KingStreamer is a streamer's peak viewer count within one category.
type KingStreamer struct {
	Platform  string `json:"platform"`
	Streamer  string `json:"streamer"`
	Category  string `json:"category"`
	Title     string `json:"title,omitempty"`
	Viewers   Number `json:"viewers"`
	Timestamp string `json:"timestamp"`
}

// FlashCategory is a category that spiked and has since dropped off.
type FlashCategory struct {
	Platform           string `json:"platform"`
	CategoryName       string `json:"category_name"`
	PeakViewers        Number `json:"peak_viewers"`
	ActiveDays         Number `json:"active_days"`
	PeakContributor    string `json:"peak_contributor"`
	CurrViewers        Number `json:"curr_viewers"`
	CurrentBroadcaster string `json:"current_broadcaster"`
}
