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

// PrintEventsResults outputs the adoption and spike events followed by the daily leaders.
// Events have no parquet form.
func PrintEventsResults(result *schema.EventsResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)
	return render(cfg, "events", renderers{
		json:  func(w io.Writer) error { return writeJSON(w, result) },
		csv:   func(w io.Writer) error { return writeCSVResultsForEvents(w, result, fmtFloat) },
		table: func(w io.Writer) error { return writeEventsTables(w, result, cfg, fmtFloat, duration) },
	})
}

// writeCSVResultsForEvents writes one row per event, adoptions first.
func writeCSVResultsForEvents(w io.Writer, result *schema.EventsResult, fmtFloat func(float64) string) error {
	header := []string{"event_id", "created_at", "platform", "category", "event_type", "growth_rate", "primary", "delta"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, e := range allEvents(result) {
			detail := e.Detail()
			primary := ""
			if s := detail.Primary(); s != nil {
				primary = s.Name
			}
			growth := ""
			if e.GrowthRate != nil {
				growth = fmtFloat(*e.GrowthRate)
			}
			row := []string{
				strconv.FormatInt(e.EventID, 10),
				e.CreatedAt,
				e.Platform,
				e.CategoryName,
				e.EventType,
				growth,
				primary,
				fmtFloat(detail.Stats.Delta.Float64()),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeEventsTables(w io.Writer, result *schema.EventsResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	maxWidth := GetMaxCategoryWidth(cfg, 5)

	events := newTable(w, "Created", "Platform", "Category", "Type", "Growth", "Primary")
	var data [][]string
	for _, e := range allEvents(result) {
		primary := "-"
		if s := e.Detail().Primary(); s != nil {
			primary = s.Name
		}
		data = append(data, []string{
			e.CreatedAt,
			e.Platform,
			contract.TruncateText(e.CategoryName, maxWidth),
			e.EventType,
			fmtOptional(e.GrowthRate, fmtFloat),
			primary,
		})
	}
	if err := renderTable(events, data); err != nil {
		return err
	}

	for _, platform := range cfg.Platforms {
		rows := result.DailyTop[platform]
		if len(rows) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "Daily top on %s\n", platform); err != nil {
			return err
		}
		table := newTable(w, "Rank", "Category", "Avg Viewers", "Peak Viewers")
		data := make([][]string, 0, len(rows))
		for i, r := range rows {
			data = append(data, []string{
				strconv.Itoa(i + 1),
				contract.TruncateText(r.CategoryName, maxWidth),
				fmtFloat(r.AvgViewers.Float64()),
				fmtFloat(r.PeakViewers.Float64()),
			})
		}
		if err := renderTable(table, data); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%d adoptions and %d spikes fetched in %v. Cache backend: %s\n",
		len(result.Split.Adoptions), len(result.Split.Spikes), duration, cfg.CacheBackend)
	return err
}

func allEvents(result *schema.EventsResult) []schema.EventItem {
	out := make([]schema.EventItem, 0, len(result.Split.Adoptions)+len(result.Split.Spikes))
	out = append(out, result.Split.Adoptions...)
	return append(out, result.Split.Spikes...)
}
