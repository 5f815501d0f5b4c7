package schema

// VolatilityEntry is one category's stability measurement. A nil Score means the
// upstream did not report one; a zero Score is a valid, perfectly steady reading.
type VolatilityEntry struct {
	Platform     string   `json:"platform"`
	Category     string   `json:"category_name"`
	AverageValue Number   `json:"avg_v"`
	Score        *float64 `json:"volatility_index"`
}

// RankingViews holds the two bounded per-platform views produced by the ranker.
type RankingViews struct {
	Stable        map[string][]VolatilityEntry `json:"stable"`
	Rollercoaster map[string][]VolatilityEntry `json:"rollercoaster"`
}

// RankedVolatility adds presentation data to a VolatilityEntry.
type RankedVolatility struct {
	View  RankingView `json:"view"`
	Rank  int         `json:"rank"`
	Label string      `json:"label"`
	VolatilityEntry
}

// ScoreValue returns the score or 0 when missing.
func (e VolatilityEntry) ScoreValue() float64 {
	if e.Score == nil {
		return 0
	}
	return *e.Score
}
