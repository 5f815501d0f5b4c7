package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/streampulse/pulse/internal/contract"
	"github.com/streampulse/pulse/internal/parquet"
	"github.com/streampulse/pulse/schema"
)

// PrintCompareResults outputs aligned comparison rows, dispatching based on the output format configured.
func PrintCompareResults(result *schema.CompareResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)
	return render(cfg, "comparison results", renderers{
		json:  func(w io.Writer) error { return writeJSONResultsForCompare(w, result) },
		csv:   func(w io.Writer) error { return writeCSVResultsForCompare(w, result, fmtFloat) },
		table: func(w io.Writer) error { return writeCompareTables(w, result, cfg, fmtFloat, duration) },
		parquet: func(path string) error {
			return parquet.WriteAlignedParquet(parquet.ConvertCompare(result), path)
		},
	})
}

// writeCompareTables prints one table per platform with a column for every
// selected category. Categories absent at a timestamp show as "-".
func writeCompareTables(w io.Writer, result *schema.CompareResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	maxWidth := GetMaxCategoryWidth(cfg, 1)
	headers := []string{"Bucket (UTC)"}
	for _, c := range result.Categories {
		headers = append(headers, contract.TruncateText(c, maxWidth))
	}

	for _, platform := range result.Platforms {
		rows := result.Rows[platform]
		if _, err := fmt.Fprintf(w, "%s (%d rows)\n", platform, len(rows)); err != nil {
			return err
		}
		table := newTable(w, headers...)
		data := make([][]string, 0, len(rows))
		for _, r := range rows {
			line := []string{string(r.Timestamp)}
			for _, c := range result.Categories {
				if v, ok := r.Values[c]; ok {
					line = append(line, fmtFloat(v))
				} else {
					line = append(line, "-")
				}
			}
			data = append(data, line)
		}
		if err := renderTable(table, data); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Comparison of %d categories over %dh completed in %v. Cache backend: %s\n",
		len(result.Categories), result.Hours, duration, cfg.CacheBackend)
	return err
}
