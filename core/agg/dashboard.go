package agg

import (
	"slices"
	"strings"

	"github.com/streampulse/pulse/schema"
)

// SummarizeLive totals viewers overall and per trimmed platform name.
// Rows without a platform count toward the total only.
func SummarizeLive(rows []schema.LiveTraffic) schema.PlatformTotals {
	totals := schema.PlatformTotals{ByPlatform: make(map[string]float64)}
	for _, r := range rows {
		v := r.Viewers.Float64()
		totals.Total += v
		if p := strings.TrimSpace(r.Platform); p != "" {
			totals.ByPlatform[p] += v
		}
	}
	return totals
}

// ListCategories returns unique, non-empty category names in first-seen order,
// truncated to limit. A non-positive limit means schema.CategoryListLimit.
func ListCategories(rows []schema.LiveTraffic, limit int) []string {
	if limit <= 0 {
		limit = schema.CategoryListLimit
	}
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.CategoryName)
	}
	unique := uniqueNames(names)
	if len(unique) > limit {
		unique = unique[:limit]
	}
	return unique
}

// SortedCategories returns the unique, non-empty names in ascending order.
func SortedCategories(names []string) []string {
	unique := uniqueNames(names)
	slices.Sort(unique)
	return unique
}

// DefaultSelection picks the first schema.MaxCompareCategories unique names.
func DefaultSelection(categories []string) []string {
	return SelectCategories(categories, schema.MaxCompareCategories)
}

// FilterCategories keeps names containing query, ignoring case.
// An empty query returns a copy of the input.
func FilterCategories(categories []string, query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		if q == "" || strings.Contains(strings.ToLower(c), q) {
			out = append(out, c)
		}
	}
	return out
}

// SplitEvents separates category-adoption events from every other event type,
// preserving input order within each group.
func SplitEvents(events []schema.EventItem) schema.EventSplit {
	split := schema.EventSplit{
		Adoptions: []schema.EventItem{},
		Spikes:    []schema.EventItem{},
	}
	for _, e := range events {
		if e.IsAdoption() {
			split.Adoptions = append(split.Adoptions, e)
		} else {
			split.Spikes = append(split.Spikes, e)
		}
	}
	return split
}

// uniqueNames trims names and drops empties and duplicates, keeping first-seen order.
func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
