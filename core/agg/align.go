package agg

import (
	"sort"
	"strings"

	"github.com/streampulse/pulse/schema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// AlignSeries merges category series into rows keyed by timestamp for one platform.
//
// Only points whose trimmed platform matches are kept. Points are keyed by their raw
// timestamp string, with no re-bucketing, so upstream data must already be bucketed.
// A category seen twice at the same timestamp keeps the later value. Rows are
// returned in lexicographic timestamp order, which matches chronological order
// only for the fixed-width ISO layout the upstream emits.
// At most schema.MaxCompareCategories series are considered.
func AlignSeries(series []schema.CategorySeries, platform string) []schema.AlignedRow {
	if len(series) > schema.MaxCompareCategories {
		series = series[:schema.MaxCompareCategories]
	}
	target := strings.TrimSpace(platform)

	rows := orderedmap.New[string, map[string]float64]()
	for _, s := range series {
		for _, p := range s.Points {
			if strings.TrimSpace(p.Platform) != target {
				continue
			}
			values, ok := rows.Get(p.TsUTC)
			if !ok {
				values = make(map[string]float64, len(series))
				rows.Set(p.TsUTC, values)
			}
			values[s.Category] = p.Viewers.Float64()
		}
	}

	out := make([]schema.AlignedRow, 0, rows.Len())
	for pair := rows.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, schema.AlignedRow{Timestamp: schema.BucketKey(pair.Key), Values: pair.Value})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

// SelectCategories trims, dedupes and drops empty names, keeping at most limit
// entries in their original order. A non-positive limit means schema.MaxCompareCategories.
func SelectCategories(selected []string, limit int) []string {
	if limit <= 0 {
		limit = schema.MaxCompareCategories
	}
	seen := make(map[string]struct{}, len(selected))
	out := make([]string, 0, min(len(selected), limit))
	for _, name := range selected {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
		if len(out) == limit {
			break
		}
	}
	return out
}
