package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/streampulse/pulse/internal/contract"
	"github.com/streampulse/pulse/schema"
)

// PrintInsightsResults outputs the peak-viewer streamers followed by the flash categories.
// Insights have no parquet form.
func PrintInsightsResults(result *schema.InsightsResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)
	return render(cfg, "insights", renderers{
		json:  func(w io.Writer) error { return writeJSON(w, result) },
		csv:   func(w io.Writer) error { return writeCSVResultsForInsights(w, result, fmtFloat) },
		table: func(w io.Writer) error { return writeInsightsTables(w, result, cfg, fmtFloat, duration) },
	})
}

// writeCSVResultsForInsights writes king rows then flash rows in one long table.
// For flash rows the streamer column holds the peak contributor.
func writeCSVResultsForInsights(w io.Writer, result *schema.InsightsResult, fmtFloat func(float64) string) error {
	header := []string{"kind", "platform", "category", "streamer", "viewers", "current_viewers", "timestamp"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, k := range result.Kings {
			row := []string{"king", k.Platform, k.Category, k.Streamer, fmtFloat(k.Viewers.Float64()), "", k.Timestamp}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		for _, f := range result.Flash {
			row := []string{
				"flash",
				f.Platform,
				f.CategoryName,
				f.PeakContributor,
				fmtFloat(f.PeakViewers.Float64()),
				fmtFloat(f.CurrViewers.Float64()),
				"",
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeInsightsTables(w io.Writer, result *schema.InsightsResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	maxWidth := GetMaxCategoryWidth(cfg, 5)

	if _, err := fmt.Fprintln(w, "Kings by peak viewers"); err != nil {
		return err
	}
	kings := newTable(w, "Rank", "Platform", "Streamer", "Category", "Peak Viewers", "When")
	data := make([][]string, 0, len(result.Kings))
	for i, k := range result.Kings {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			k.Platform,
			k.Streamer,
			contract.TruncateText(k.Category, maxWidth),
			fmtFloat(k.Viewers.Float64()),
			k.Timestamp,
		})
	}
	if err := renderTable(kings, data); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "Flash categories"); err != nil {
		return err
	}
	flash := newTable(w, "Platform", "Category", "Peak", "Peak Contributor", "Current", "Current Broadcaster")
	data = make([][]string, 0, len(result.Flash))
	for _, f := range result.Flash {
		data = append(data, []string{
			f.Platform,
			contract.TruncateText(f.CategoryName, maxWidth),
			fmtFloat(f.PeakViewers.Float64()),
			f.PeakContributor,
			fmtFloat(f.CurrViewers.Float64()),
			f.CurrentBroadcaster,
		})
	}
	if err := renderTable(flash, data); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%d kings and %d flash categories fetched in %v. Cache backend: %s\n",
		len(result.Kings), len(result.Flash), duration, cfg.CacheBackend)
	return err
}
