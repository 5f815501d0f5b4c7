package outwriter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/streampulse/pulse/internal/contract"
	"github.com/streampulse/pulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func testConfig() *contract.Config {
	return &contract.Config{
		Precision:    1,
		Output:       schema.TextOut,
		Width:        120,
		Platforms:    []string{schema.PlatformSOOP, schema.PlatformCHZZK},
		Labels:       contract.DefaultLabelThresholds,
		CacheBackend: schema.NoneBackend,
	}
}

func sampleTrend() *schema.TrendResult {
	return &schema.TrendResult{
		Category: "Just Chatting",
		Preset:   "24h",
		Hours:    24,
		Series: schema.Series{
			{Bucket: "2024-01-01T10:00:00.000Z", Viewers: 100},
			{Bucket: "2024-01-01T10:05:00.000Z", Viewers: 150.25},
		},
		Ticks: []schema.BucketKey{"2024-01-01T10:00:00.000Z"},
	}
}

func sampleCompare() *schema.CompareResult {
	return &schema.CompareResult{
		Categories: []string{"alpha", "beta"},
		Hours:      24,
		Platforms:  []string{schema.PlatformSOOP},
		Rows: map[string][]schema.AlignedRow{
			schema.PlatformSOOP: {
				{Timestamp: "t1", Values: map[string]float64{"alpha": 1, "beta": 2}},
				{Timestamp: "t2", Values: map[string]float64{"beta": 3}},
			},
		},
	}
}

func readCSV(t *testing.T, data string) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteCSVResultsForTrend(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSVResultsForTrend(&buf, sampleTrend(), createFormatter(2)))

	records := readCSV(t, buf.String())
	require.Len(t, records, 3)
	assert.Equal(t, []string{"category", "ts_utc", "viewers"}, records[0])
	assert.Equal(t, []string{"Just Chatting", "2024-01-01T10:05:00.000Z", "150.25"}, records[2])
}

func TestWriteJSONResultsForTrend(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSONResultsForTrend(&buf, sampleTrend()))

	var decoded schema.TrendResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Just Chatting", decoded.Category)
	assert.Len(t, decoded.Series, 2)
}

func TestWriteTrendTable(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()
	require.NoError(t, writeTrendTable(&buf, sampleTrend(), cfg, createFormatter(1), time.Second))

	out := buf.String()
	assert.Contains(t, out, "150.2")
	assert.Contains(t, out, "●")
	assert.Contains(t, out, `Trend for "Just Chatting" over 24h`)
}

func TestWriteTrendTableShowsExplicitRange(t *testing.T) {
	var buf bytes.Buffer
	result := sampleTrend()
	result.Range = &schema.DateRange{Start: "2024-01-01", End: "2024-01-03"}
	require.NoError(t, writeTrendTable(&buf, result, testConfig(), createFormatter(1), 0))
	assert.Contains(t, buf.String(), "2024-01-01..2024-01-03")
}

func TestWriteCSVResultsForCompare(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSVResultsForCompare(&buf, sampleCompare(), createFormatter(0)))

	records := readCSV(t, buf.String())
	assert.Equal(t, [][]string{
		{"platform", "ts_utc", "category", "viewers"},
		{"SOOP", "t1", "alpha", "1"},
		{"SOOP", "t1", "beta", "2"},
		{"SOOP", "t2", "beta", "3"},
	}, records)
}

func TestWriteCompareTablesMarksAbsentValues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCompareTables(&buf, sampleCompare(), testConfig(), createFormatter(0), 0))

	out := buf.String()
	assert.Contains(t, out, "SOOP (2 rows)")
	assert.Contains(t, out, "-")
	assert.Contains(t, out, "Comparison of 2 categories over 24h")
}

func TestWriteVolatilityOutputs(t *testing.T) {
	views := schema.RankingViews{
		Stable: map[string][]schema.VolatilityEntry{
			schema.PlatformSOOP: {{Platform: "SOOP", Category: "calm", AverageValue: 500, Score: ptr(0.05)}},
		},
		Rollercoaster: map[string][]schema.VolatilityEntry{
			schema.PlatformSOOP: {{Platform: "SOOP", Category: "wild", AverageValue: 800, Score: ptr(0.9)}},
		},
	}
	cfg := testConfig()
	ranked := contract.LabelRanked(views, cfg.Platforms, cfg.Labels)

	var csvBuf bytes.Buffer
	require.NoError(t, writeCSVResultsForVolatility(&csvBuf, ranked, createFormatter(2)))
	records := readCSV(t, csvBuf.String())
	require.Len(t, records, 3)
	assert.Equal(t, []string{"stable", "SOOP", "1", "calm", "500.00", "0.05", "Steady"}, records[1])
	assert.Equal(t, []string{"rollercoaster", "SOOP", "1", "wild", "800.00", "0.90", "Erratic"}, records[2])

	var tableBuf bytes.Buffer
	require.NoError(t, writeVolatilityTable(&tableBuf, ranked, cfg, createFormatter(2), 0))
	assert.Contains(t, tableBuf.String(), "Ranked 2 entries across 2 platforms")
}

func TestWriteLiveOutputs(t *testing.T) {
	result := &schema.LiveResult{
		Totals: schema.PlatformTotals{
			Total:      30,
			ByPlatform: map[string]float64{"CHZZK": 10, "SOOP": 15, "OTHER": 5},
		},
		Categories: []string{"a", "b"},
		Filter:     "a",
		Matches:    []string{"a"},
	}

	assert.Equal(t, []string{"SOOP", "CHZZK", "OTHER"}, livePlatforms(result))

	var csvBuf bytes.Buffer
	require.NoError(t, writeCSVResultsForLive(&csvBuf, result, createFormatter(0)))
	records := readCSV(t, csvBuf.String())
	assert.Equal(t, []string{"TOTAL", "30"}, records[len(records)-1])

	var tableBuf bytes.Buffer
	require.NoError(t, writeLiveTable(&tableBuf, result, testConfig(), createFormatter(0), 0))
	assert.Contains(t, tableBuf.String(), "2 categories (1 shown)")
}

func TestWriteEventsOutputs(t *testing.T) {
	result := &schema.EventsResult{
		Split: schema.EventSplit{
			Adoptions: []schema.EventItem{{
				EventID:      1,
				Platform:     "SOOP",
				CategoryName: "new game",
				EventType:    schema.EventCategoryAdoption,
				CauseDetail:  json.RawMessage(`{"clues":[{"name":"streamer1"}],"stats":{"delta":1200}}`),
			}},
			Spikes: []schema.EventItem{{
				EventID:      2,
				Platform:     "CHZZK",
				CategoryName: "spiky",
				EventType:    "MARKET_SPIKE",
				GrowthRate:   ptr(0.5),
				CauseDetail:  json.RawMessage(`"not json"`),
			}},
		},
		DailyTop: map[string][]schema.DailyTop{
			"SOOP": {{Platform: "SOOP", CategoryName: "leader", AvgViewers: 100, PeakViewers: 200}},
		},
	}

	var csvBuf bytes.Buffer
	require.NoError(t, writeCSVResultsForEvents(&csvBuf, result, createFormatter(1)))
	records := readCSV(t, csvBuf.String())
	require.Len(t, records, 3)
	assert.Equal(t, "streamer1", records[1][6])
	assert.Equal(t, "1200.0", records[1][7])
	assert.Equal(t, "0.5", records[2][5])
	assert.Equal(t, "", records[2][6])

	var tableBuf bytes.Buffer
	require.NoError(t, writeEventsTables(&tableBuf, result, testConfig(), createFormatter(1), 0))
	out := tableBuf.String()
	assert.Contains(t, out, "Daily top on SOOP")
	assert.NotContains(t, out, "Daily top on CHZZK")
	assert.Contains(t, out, "1 adoptions and 1 spikes")
}

func TestWriteInsightsOutputs(t *testing.T) {
	result := &schema.InsightsResult{
		Kings: []schema.KingStreamer{
			{Platform: "SOOP", Streamer: "kim", Category: "Talk", Viewers: 5400, Timestamp: "2024-01-01T10:00:00"},
			{Platform: "CHZZK", Streamer: "lee", Category: "LoL", Viewers: 3100, Timestamp: "2024-01-01T11:00:00"},
		},
		Flash: []schema.FlashCategory{
			{Platform: "SOOP", CategoryName: "Palworld", PeakViewers: 8000, PeakContributor: "park", CurrViewers: 120, CurrentBroadcaster: "-"},
		},
	}

	var csvBuf bytes.Buffer
	require.NoError(t, writeCSVResultsForInsights(&csvBuf, result, createFormatter(0)))
	records := readCSV(t, csvBuf.String())
	require.Len(t, records, 4)
	assert.Equal(t, []string{"king", "SOOP", "Talk", "kim", "5400", "", "2024-01-01T10:00:00"}, records[1])
	assert.Equal(t, []string{"flash", "SOOP", "Palworld", "park", "8000", "120", ""}, records[3])

	var tableBuf bytes.Buffer
	require.NoError(t, writeInsightsTables(&tableBuf, result, testConfig(), createFormatter(0), 0))
	out := tableBuf.String()
	assert.Contains(t, out, "Kings by peak viewers")
	assert.Contains(t, out, "Flash categories")
	assert.Contains(t, out, "park")
	assert.Contains(t, out, "2 kings and 1 flash categories")

	var jsonBuf bytes.Buffer
	require.NoError(t, writeJSON(&jsonBuf, result))
	assert.Contains(t, jsonBuf.String(), `"peak_contributor": "park"`)
}

func TestWriteResolveOutputs(t *testing.T) {
	result := &schema.ResolveResult{
		Preset:   schema.Preset{Label: "24h", Hours: 24},
		Range:    &schema.DateRange{Start: "2024-01-02", End: "2024-01-01"},
		Hours:    24,
		FellBack: true,
		TickStep: 48,
	}

	var csvBuf bytes.Buffer
	require.NoError(t, writeCSVResultsForResolve(&csvBuf, result))
	records := readCSV(t, csvBuf.String())
	assert.Equal(t, []string{"24h", "24", "2024-01-02", "2024-01-01", "24", "true", "48"}, records[1])

	var tableBuf bytes.Buffer
	require.NoError(t, writeResolveTable(&tableBuf, result))
	assert.Contains(t, tableBuf.String(), "24h (24h)")
}

func TestRenderParquet(t *testing.T) {
	t.Run("unsupported result", func(t *testing.T) {
		cfg := testConfig()
		cfg.Output = schema.ParquetOut
		cfg.OutputFile = filepath.Join(t.TempDir(), "live.parquet")
		err := PrintLiveResults(&schema.LiveResult{}, cfg, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not supported")
	})

	t.Run("missing output file", func(t *testing.T) {
		cfg := testConfig()
		cfg.Output = schema.ParquetOut
		err := PrintTrendResults(sampleTrend(), cfg, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires --output-file")
	})

	t.Run("writes trend file", func(t *testing.T) {
		cfg := testConfig()
		cfg.Output = schema.ParquetOut
		cfg.OutputFile = filepath.Join(t.TempDir(), "trend.parquet")
		require.NoError(t, PrintTrendResults(sampleTrend(), cfg, 0))

		info, err := os.Stat(cfg.OutputFile)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	})
}

func TestPrintToOutputFile(t *testing.T) {
	cfg := testConfig()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "compare.json")
	require.NoError(t, PrintCompareResults(sampleCompare(), cfg, 0))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var decoded schema.CompareResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []string{"alpha", "beta"}, decoded.Categories)
}

func TestGetMaxCategoryWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		fixed    int
		expected int
	}{
		{"narrow clamps to minimum", 40, 6, 12},
		{"wide clamps to maximum", 400, 1, 48},
		{"in between", 100, 4, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width}
			assert.Equal(t, tt.expected, GetMaxCategoryWidth(cfg, tt.fixed))
		})
	}
}

func TestFmtOptional(t *testing.T) {
	f := createFormatter(2)
	assert.Equal(t, "-", fmtOptional(nil, f))
	assert.Equal(t, "0.00", fmtOptional(ptr(0), f))
}
