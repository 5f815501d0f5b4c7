package algo

import (
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/streampulse/pulse/schema"
)

// RankVolatility builds the stable and rollercoaster views for every platform.
//
// Entries are grouped by trimmed platform; entries without a platform or without a
// usable score are dropped. The stable view sorts ascending by score and the
// rollercoaster view descending, both stable so ties keep their input order, and
// both truncated to limit. A non-positive limit means schema.RankingLimit.
// The input is never modified and the views share no memory with it.
func RankVolatility(entries []schema.VolatilityEntry, limit int) schema.RankingViews {
	if limit <= 0 {
		limit = schema.RankingLimit
	}

	groups := make(map[string][]schema.VolatilityEntry)
	for _, e := range entries {
		platform := strings.TrimSpace(e.Platform)
		if platform == "" || e.Score == nil || math.IsNaN(*e.Score) {
			continue
		}
		groups[platform] = append(groups[platform], copyEntry(e))
	}

	views := schema.RankingViews{
		Stable:        make(map[string][]schema.VolatilityEntry, len(groups)),
		Rollercoaster: make(map[string][]schema.VolatilityEntry, len(groups)),
	}
	for platform, group := range groups {
		asc := slices.Clone(group)
		sort.SliceStable(asc, func(i, j int) bool {
			return *asc[i].Score < *asc[j].Score
		})
		desc := cloneEntries(group)
		sort.SliceStable(desc, func(i, j int) bool {
			return *desc[i].Score > *desc[j].Score
		})
		views.Stable[platform] = truncate(asc, limit)
		views.Rollercoaster[platform] = truncate(desc, limit)
	}
	return views
}

// FlattenViews lists the ranked entries of both views for the given platforms,
// stable view first, numbering ranks from 1 within each platform and view.
// Platforms missing from views are skipped.
func FlattenViews(views schema.RankingViews, platforms []string) []schema.RankedVolatility {
	var out []schema.RankedVolatility
	for _, v := range []struct {
		name    schema.RankingView
		entries map[string][]schema.VolatilityEntry
	}{
		{schema.StableView, views.Stable},
		{schema.RollercoasterView, views.Rollercoaster},
	} {
		for _, platform := range platforms {
			for i, e := range v.entries[strings.TrimSpace(platform)] {
				out = append(out, schema.RankedVolatility{
					View:            v.name,
					Rank:            i + 1,
					VolatilityEntry: copyEntry(e),
				})
			}
		}
	}
	return out
}

// TopByPlatform keeps the first limit rows for platform in upstream order.
// A non-positive limit means schema.DailyTopLimit.
func TopByPlatform(rows []schema.DailyTop, platform string, limit int) []schema.DailyTop {
	if limit <= 0 {
		limit = schema.DailyTopLimit
	}
	target := strings.TrimSpace(platform)
	out := make([]schema.DailyTop, 0, limit)
	for _, r := range rows {
		if strings.TrimSpace(r.Platform) != target {
			continue
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out
}

// TopKings keeps the first limit streamers from the listed platforms in upstream
// order, which is already descending by peak viewers. An empty platform list keeps
// every platform. A non-positive limit means schema.KingLimit.
func TopKings(rows []schema.KingStreamer, platforms []string, limit int) []schema.KingStreamer {
	if limit <= 0 {
		limit = schema.KingLimit
	}
	out := make([]schema.KingStreamer, 0, min(limit, len(rows)))
	for _, r := range rows {
		if !platformListed(r.Platform, platforms) {
			continue
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out
}

// FilterFlash keeps flash categories from the listed platforms in upstream order.
func FilterFlash(rows []schema.FlashCategory, platforms []string) []schema.FlashCategory {
	out := make([]schema.FlashCategory, 0, len(rows))
	for _, r := range rows {
		if platformListed(r.Platform, platforms) {
			out = append(out, r)
		}
	}
	return out
}

func platformListed(platform string, platforms []string) bool {
	if len(platforms) == 0 {
		return true
	}
	return slices.Contains(platforms, strings.TrimSpace(platform))
}

func copyEntry(e schema.VolatilityEntry) schema.VolatilityEntry {
	if e.Score != nil {
		score := *e.Score
		e.Score = &score
	}
	return e
}

func cloneEntries(entries []schema.VolatilityEntry) []schema.VolatilityEntry {
	out := make([]schema.VolatilityEntry, len(entries))
	for i, e := range entries {
		out[i] = copyEntry(e)
	}
	return out
}

func truncate(entries []schema.VolatilityEntry, limit int) []schema.VolatilityEntry {
	if len(entries) > limit {
		return entries[:limit:limit]
	}
	return entries
}
