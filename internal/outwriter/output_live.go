package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/streampulse/pulse/internal/contract"
	"github.com/streampulse/pulse/schema"
)

// PrintLiveResults outputs live totals and the matching categories.
// Live snapshots have no parquet form.
func PrintLiveResults(result *schema.LiveResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)
	return render(cfg, "live summary", renderers{
		json:  func(w io.Writer) error { return writeJSON(w, result) },
		csv:   func(w io.Writer) error { return writeCSVResultsForLive(w, result, fmtFloat) },
		table: func(w io.Writer) error { return writeLiveTable(w, result, cfg, fmtFloat, duration) },
	})
}

// writeCSVResultsForLive writes platform totals followed by the total row.
func writeCSVResultsForLive(w io.Writer, result *schema.LiveResult, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, []string{"platform", "viewers"}, func(cw *csv.Writer) error {
		for _, p := range livePlatforms(result) {
			if err := cw.Write([]string{p, fmtFloat(result.Totals.ByPlatform[p])}); err != nil {
				return err
			}
		}
		return cw.Write([]string{"TOTAL", fmtFloat(result.Totals.Total)})
	})
}

func writeLiveTable(w io.Writer, result *schema.LiveResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := newTable(w, "Platform", "Viewers")
	var data [][]string
	for _, p := range livePlatforms(result) {
		data = append(data, []string{p, fmtFloat(result.Totals.ByPlatform[p])})
	}
	data = append(data, []string{"TOTAL", fmtFloat(result.Totals.Total)})
	if err := renderTable(table, data); err != nil {
		return err
	}

	shown := result.Matches
	if result.Filter == "" {
		shown = result.Categories
	}
	maxWidth := GetMaxCategoryWidth(cfg, 0)
	for _, c := range shown {
		if _, err := fmt.Fprintf(w, "  %s\n", contract.TruncateText(c, maxWidth)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Live snapshot with %d categories (%d shown) fetched in %v. Cache backend: %s\n",
		len(result.Categories), len(shown), duration, cfg.CacheBackend)
	return err
}

// livePlatforms lists the known platforms first, then any others in sorted order.
func livePlatforms(result *schema.LiveResult) []string {
	out := make([]string, 0, len(result.Totals.ByPlatform))
	seen := make(map[string]struct{}, len(result.Totals.ByPlatform))
	for _, p := range schema.AllPlatforms {
		if _, ok := result.Totals.ByPlatform[p]; ok {
			out = append(out, p)
			seen[p] = struct{}{}
		}
	}
	var rest []string
	for p := range result.Totals.ByPlatform {
		if _, ok := seen[p]; !ok {
			rest = append(rest, p)
		}
	}
	slices.Sort(rest)
	return append(out, rest...)
}
