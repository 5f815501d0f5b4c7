package outwriter

import (
	"encoding/csv"
	"io"

	"github.com/streampulse/pulse/schema"
)

// writeJSONResultsForTrend marshals the schema.TrendResult to JSON and writes it.
func writeJSONResultsForTrend(w io.Writer, result *schema.TrendResult) error {
	return writeJSON(w, result)
}

// writeCSVResultsForTrend writes one row per populated bucket.
func writeCSVResultsForTrend(w io.Writer, result *schema.TrendResult, fmtFloat func(float64) string) error {
	header := []string{"category", "ts_utc", "viewers"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, p := range result.Series {
			if err := cw.Write([]string{result.Category, string(p.Bucket), fmtFloat(p.Viewers)}); err != nil {
				return err
			}
		}
		return nil
	})
}
