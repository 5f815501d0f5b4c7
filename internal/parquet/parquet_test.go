package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/streampulse/pulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readBack[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	return rows[:n]
}

func TestStructTags(t *testing.T) {
	for name, tc := range map[string]struct {
		model   any
		columns []string
	}{
		"series":  {SeriesRow{}, []string{"category", "bucket", "bucket_time", "viewers"}},
		"aligned": {AlignedRow{}, []string{"platform", "ts_utc", "category", "viewers"}},
		"ranking": {RankingRow{}, []string{"view", "platform", "rank", "category", "avg_v", "score", "label"}},
	} {
		t.Run(name, func(t *testing.T) {
			s := parquet.SchemaOf(tc.model)
			for _, col := range tc.columns {
				_, ok := s.Lookup(col)
				assert.True(t, ok, "column %s should exist", col)
			}
		})
	}
}

func TestWriteSeriesParquet(t *testing.T) {
	result := &schema.TrendResult{
		Category: "Talk",
		Series: schema.Series{
			{Bucket: "2024-01-01T10:05:00.000Z", Viewers: 12},
			{Bucket: "garbage", Viewers: 3},
		},
	}
	rows := ConvertTrend(result)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].BucketTime)
	assert.Nil(t, rows[1].BucketTime)

	path := filepath.Join(t.TempDir(), "series.parquet")
	require.NoError(t, WriteSeriesParquet(rows, path))

	read := readBack[SeriesRow](t, path)
	require.Len(t, read, 2)
	assert.Equal(t, "Talk", read[0].Category)
	assert.Equal(t, 12.0, read[0].Viewers)
	require.NotNil(t, read[0].BucketTime)
	assert.True(t, rows[0].BucketTime.Equal(*read[0].BucketTime))
	assert.Nil(t, read[1].BucketTime)
	assert.Equal(t, "garbage", read[1].Bucket)
}

func TestWriteAlignedParquet(t *testing.T) {
	result := &schema.CompareResult{
		Platforms: []string{"SOOP", "CHZZK"},
		Rows: map[string][]schema.AlignedRow{
			"SOOP": {
				{Timestamp: "2024-01-01T10:05:00.000Z", Values: map[string]float64{"B": 2, "A": 1}},
				{Timestamp: "2024-01-01T10:10:00.000Z", Values: map[string]float64{"A": 5}},
			},
			"CHZZK": {},
		},
	}
	rows := ConvertCompare(result)
	require.Len(t, rows, 3)
	assert.Equal(t, AlignedRow{Platform: "SOOP", TsUTC: "2024-01-01T10:05:00.000Z", Category: "A", Viewers: 1}, rows[0])
	assert.Equal(t, "B", rows[1].Category)

	path := filepath.Join(t.TempDir(), "aligned.parquet")
	require.NoError(t, WriteAlignedParquet(rows, path))
	assert.Equal(t, rows, readBack[AlignedRow](t, path))
}

func TestWriteRankingParquet(t *testing.T) {
	score := 0.25
	ranked := []schema.RankedVolatility{
		{View: schema.StableView, Rank: 1, Label: "Moderate", VolatilityEntry: schema.VolatilityEntry{
			Platform: "SOOP", Category: "Talk", AverageValue: 100, Score: &score,
		}},
	}
	rows := ConvertRanking(ranked)
	require.Len(t, rows, 1)
	assert.Equal(t, RankingRow{View: "stable", Platform: "SOOP", Rank: 1, Category: "Talk", AvgV: 100, Score: 0.25, Label: "Moderate"}, rows[0])

	path := filepath.Join(t.TempDir(), "ranking.parquet")
	require.NoError(t, WriteRankingParquet(rows, path))
	assert.Equal(t, rows, readBack[RankingRow](t, path))
}

func TestWriteParquet_EmptyData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteRankingParquet(nil, path))
	assert.Empty(t, readBack[RankingRow](t, path))
}

func TestWriteParquet_InvalidPath(t *testing.T) {
	err := WriteSeriesParquet(nil, "/nonexistent/dir/file.parquet")
	assert.ErrorContains(t, err, "failed to create output file")
}
