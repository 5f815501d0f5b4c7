package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/streampulse/pulse/internal/contract"
	"github.com/streampulse/pulse/internal/parquet"
	"github.com/streampulse/pulse/schema"
)

// PrintTrendResults outputs a trend series, dispatching based on the output format configured.
func PrintTrendResults(result *schema.TrendResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)
	return render(cfg, "trend results", renderers{
		json:  func(w io.Writer) error { return writeJSONResultsForTrend(w, result) },
		csv:   func(w io.Writer) error { return writeCSVResultsForTrend(w, result, fmtFloat) },
		table: func(w io.Writer) error { return writeTrendTable(w, result, cfg, fmtFloat, duration) },
		parquet: func(path string) error {
			return parquet.WriteSeriesParquet(parquet.ConvertTrend(result), path)
		},
	})
}

// writeTrendTable prints the series with a tick marker on the buckets that get an axis label.
func writeTrendTable(w io.Writer, result *schema.TrendResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	ticks := make(map[schema.BucketKey]struct{}, len(result.Ticks))
	for _, t := range result.Ticks {
		ticks[t] = struct{}{}
	}

	table := newTable(w, "Bucket (UTC)", "Viewers", "Tick")
	data := make([][]string, 0, len(result.Series))
	for _, p := range result.Series {
		mark := ""
		if _, ok := ticks[p.Bucket]; ok {
			mark = "●"
		}
		data = append(data, []string{string(p.Bucket), fmtFloat(p.Viewers), mark})
	}
	if err := renderTable(table, data); err != nil {
		return err
	}

	rangeDesc := result.Preset
	if result.Range != nil && !result.FellBack {
		rangeDesc = fmt.Sprintf("%s..%s", result.Range.Start, result.Range.End)
	}
	_, err := fmt.Fprintf(w, "Trend for %q over %s (%dh, %d buckets) completed in %v. Cache backend: %s\n",
		result.Category, rangeDesc, result.Hours, len(result.Series), duration, cfg.CacheBackend)
	return err
}
