package outwriter

import (
	"encoding/csv"
	"io"

	"github.com/streampulse/pulse/internal/parquet"
	"github.com/streampulse/pulse/schema"
)

// writeJSONResultsForCompare marshals the schema.CompareResult to JSON and writes it.
func writeJSONResultsForCompare(w io.Writer, result *schema.CompareResult) error {
	return writeJSON(w, result)
}

// writeCSVResultsForCompare writes the comparison in long format, matching the parquet layout.
func writeCSVResultsForCompare(w io.Writer, result *schema.CompareResult, fmtFloat func(float64) string) error {
	header := []string{"platform", "ts_utc", "category", "viewers"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range parquet.ConvertCompare(result) {
			if err := cw.Write([]string{r.Platform, r.TsUTC, r.Category, fmtFloat(r.Viewers)}); err != nil {
				return err
			}
		}
		return nil
	})
}
