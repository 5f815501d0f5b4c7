package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/streampulse/pulse/internal/contract"
	"github.com/streampulse/pulse/internal/parquet"
	"github.com/streampulse/pulse/schema"
)

// PrintVolatilityResults outputs both ranking views, dispatching based on the output format configured.
func PrintVolatilityResults(result *schema.VolatilityResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)
	ranked := contract.LabelRanked(result.Views, cfg.Platforms, cfg.Labels)
	return render(cfg, "volatility rankings", renderers{
		json:  func(w io.Writer) error { return writeJSONResultsForVolatility(w, ranked) },
		csv:   func(w io.Writer) error { return writeCSVResultsForVolatility(w, ranked, fmtFloat) },
		table: func(w io.Writer) error { return writeVolatilityTable(w, ranked, cfg, fmtFloat, duration) },
		parquet: func(path string) error {
			return parquet.WriteRankingParquet(parquet.ConvertRanking(ranked), path)
		},
	})
}

// writeVolatilityTable prints the stable view followed by the rollercoaster view.
func writeVolatilityTable(w io.Writer, ranked []schema.RankedVolatility, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	maxWidth := GetMaxCategoryWidth(cfg, 6)
	table := newTable(w, "View", "Platform", "Rank", "Category", "Avg Viewers", "Score", "Label")

	data := make([][]string, 0, len(ranked))
	for _, r := range ranked {
		data = append(data, []string{
			string(r.View),
			r.Platform,
			fmt.Sprintf("%d", r.Rank),
			contract.TruncateText(r.Category, maxWidth),
			fmtFloat(r.AverageValue.Float64()),
			fmtFloat(r.ScoreValue()),
			labelFor(r.ScoreValue(), cfg),
		})
	}
	if err := renderTable(table, data); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Ranked %d entries across %d platforms in %v. Cache backend: %s\n",
		len(ranked), len(cfg.Platforms), duration, cfg.CacheBackend)
	return err
}
