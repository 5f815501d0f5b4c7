// Package parquet exports chart and ranking data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/streampulse/pulse/schema"
)

// SeriesRow is one populated bucket of an aggregated trend series.
type SeriesRow struct {
	// Category is the category the series was fetched for
	Category string `parquet:"category,snappy,dict"`

	// Bucket is the bucket key exactly as emitted by the aggregator
	Bucket string `parquet:"bucket,snappy"`

	// BucketTime is the parsed bucket instant (nullable for passthrough keys)
	BucketTime *time.Time `parquet:"bucket_time,optional,snappy"`

	// Viewers is the summed viewer count of the bucket
	Viewers float64 `parquet:"viewers,snappy"`
}

// AlignedRow is one category value of an aligned comparison row, in long format.
type AlignedRow struct {
	Platform string  `parquet:"platform,snappy,dict"`
	TsUTC    string  `parquet:"ts_utc,snappy"`
	Category string  `parquet:"category,snappy,dict"`
	Viewers  float64 `parquet:"viewers,snappy"`
}

// RankingRow is one entry of a volatility ranking view.
type RankingRow struct {
	View     string  `parquet:"view,snappy,dict"`
	Platform string  `parquet:"platform,snappy,dict"`
	Rank     int32   `parquet:"rank,snappy"`
	Category string  `parquet:"category,snappy"`
	AvgV     float64 `parquet:"avg_v,snappy"`
	Score    float64 `parquet:"score,snappy"`
	Label    string  `parquet:"label,snappy,dict"`
}

// WriteSeriesParquet writes trend series rows to a Parquet file.
func WriteSeriesParquet(data []SeriesRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteAlignedParquet writes aligned comparison rows to a Parquet file.
func WriteAlignedParquet(data []AlignedRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteRankingParquet writes ranking rows to a Parquet file.
func WriteRankingParquet(data []RankingRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// writeRows writes rows using the schema inferred from T's struct tags.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertTrend flattens a trend result into series rows.
func ConvertTrend(result *schema.TrendResult) []SeriesRow {
	rows := make([]SeriesRow, 0, len(result.Series))
	for _, p := range result.Series {
		row := SeriesRow{Category: result.Category, Bucket: string(p.Bucket), Viewers: p.Viewers}
		if t, err := schema.ParseInstant(string(p.Bucket)); err == nil {
			row.BucketTime = &t
		}
		rows = append(rows, row)
	}
	return rows
}

// ConvertCompare flattens aligned rows into long format, one row per present
// category value. Platforms follow result.Platforms and categories are sorted.
func ConvertCompare(result *schema.CompareResult) []AlignedRow {
	var rows []AlignedRow
	for _, platform := range result.Platforms {
		for _, r := range result.Rows[platform] {
			for _, c := range r.Categories() {
				rows = append(rows, AlignedRow{
					Platform: platform,
					TsUTC:    string(r.Timestamp),
					Category: c,
					Viewers:  r.Values[c],
				})
			}
		}
	}
	return rows
}

// ConvertRanking maps ranked entries into ranking rows.
func ConvertRanking(ranked []schema.RankedVolatility) []RankingRow {
	rows := make([]RankingRow, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, RankingRow{
			View:     string(r.View),
			Platform: r.Platform,
			Rank:     int32(r.Rank),
			Category: r.Category,
			AvgV:     r.AverageValue.Float64(),
			Score:    r.ScoreValue(),
			Label:    r.Label,
		})
	}
	return rows
}
