package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/streampulse/pulse/schema"
)

// writeJSONResultsForVolatility writes the flattened, labeled ranking.
func writeJSONResultsForVolatility(w io.Writer, ranked []schema.RankedVolatility) error {
	return writeJSON(w, ranked)
}

// writeCSVResultsForVolatility writes one row per ranked entry.
func writeCSVResultsForVolatility(w io.Writer, ranked []schema.RankedVolatility, fmtFloat func(float64) string) error {
	header := []string{"view", "platform", "rank", "category", "avg_v", "volatility_index", "label"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range ranked {
			row := []string{
				string(r.View),
				r.Platform,
				strconv.Itoa(r.Rank),
				r.Category,
				fmtFloat(r.AverageValue.Float64()),
				fmtFloat(r.ScoreValue()),
				r.Label,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
