// Package core turns upstream dashboard payloads into chart-ready results.
package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/streampulse/pulse/core/agg"
	"github.com/streampulse/pulse/core/algo"
	"github.com/streampulse/pulse/internal/contract"
	"github.com/streampulse/pulse/internal/logging"
	"github.com/streampulse/pulse/internal/outwriter"
	"github.com/streampulse/pulse/schema"
	"golang.org/x/sync/errgroup"
)

// ErrNoCategories is returned when a trend or comparison has nothing to fetch,
// neither configured nor available in the live snapshot.
var ErrNoCategories = errors.New("at least one category is required")

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, src contract.Source) error

// effectiveRange returns the explicit range to forward upstream, or nil when
// the preset is in charge.
func effectiveRange(cfg *contract.Config, fellBack bool) *schema.DateRange {
	if fellBack || cfg.Range.IsZero() {
		return nil
	}
	return cfg.Range
}

// resolveWindow resolves the configured preset and range, logging a fallback.
func resolveWindow(cfg *contract.Config) (hours int, fellBack bool) {
	hours, fellBack = algo.ResolveRange(cfg.Preset, cfg.Range)
	if fellBack {
		logging.Debug().
			Str("start", cfg.Range.Start).
			Str("end", cfg.Range.End).
			Str("preset", cfg.Preset.Label).
			Msg("explicit range is invalid, using preset")
	}
	return hours, fellBack
}

// filterPlatforms keeps samples whose trimmed platform is listed. Samples without
// a platform are kept since the trend endpoint may omit it.
func filterPlatforms(samples []schema.Sample, platforms []string) []schema.Sample {
	if len(platforms) == 0 {
		return samples
	}
	out := make([]schema.Sample, 0, len(samples))
	for _, s := range samples {
		p := strings.TrimSpace(s.Platform)
		if p == "" || slices.Contains(platforms, p) {
			out = append(out, s)
		}
	}
	return out
}

// defaultCategories picks up to n categories from the live snapshot, in the order
// the snapshot lists them. It returns ErrNoCategories when the snapshot is empty.
func defaultCategories(ctx context.Context, src contract.Source, n int) ([]string, error) {
	rows, err := src.Live(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching live traffic for default categories: %w", err)
	}
	picked := agg.DefaultSelection(agg.ListCategories(rows, schema.CategoryListLimit))
	if len(picked) > n {
		picked = picked[:n]
	}
	if len(picked) == 0 {
		return nil, ErrNoCategories
	}
	logging.Debug().Strs("categories", picked).Msg("no categories configured, using live defaults")
	return picked, nil
}

// GetTrendResults fetches one category and builds its bucketed series and ticks.
func GetTrendResults(ctx context.Context, cfg *contract.Config, src contract.Source) (*schema.TrendResult, error) {
	category := strings.TrimSpace(cfg.Category)
	if category == "" {
		picked, err := defaultCategories(ctx, src, 1)
		if err != nil {
			return nil, err
		}
		category = picked[0]
	}
	hours, fellBack := resolveWindow(cfg)
	explicit := effectiveRange(cfg, fellBack)

	samples, err := src.Trend(ctx, category, hours, explicit)
	if err != nil {
		return nil, fmt.Errorf("fetching trend for %q: %w", category, err)
	}

	series := agg.AggregateSeries(filterPlatforms(samples, cfg.Platforms))
	return &schema.TrendResult{
		Category: category,
		Preset:   cfg.Preset.Label,
		Hours:    hours,
		Range:    explicit,
		FellBack: fellBack,
		Series:   series,
		Ticks:    algo.SampleTicks(series, hours),
	}, nil
}

// GetCompareResults fetches up to three categories concurrently and aligns them
// per platform. Alignment starts only after every fetch has finished.
func GetCompareResults(ctx context.Context, cfg *contract.Config, src contract.Source) (*schema.CompareResult, error) {
	categories := agg.SelectCategories(cfg.Categories, schema.MaxCompareCategories)
	if len(categories) == 0 {
		picked, err := defaultCategories(ctx, src, schema.MaxCompareCategories)
		if err != nil {
			return nil, err
		}
		categories = picked
	}
	hours, fellBack := resolveWindow(cfg)
	explicit := effectiveRange(cfg, fellBack)

	series := make([]schema.CategorySeries, len(categories))
	g, gctx := errgroup.WithContext(ctx)
	for i, category := range categories {
		g.Go(func() error {
			points, err := src.Trend(gctx, category, hours, explicit)
			if err != nil {
				return fmt.Errorf("fetching trend for %q: %w", category, err)
			}
			series[i] = schema.CategorySeries{Category: category, Points: points}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	platforms := cfg.Platforms
	if len(platforms) == 0 {
		platforms = schema.AllPlatforms
	}
	result := &schema.CompareResult{
		Categories: categories,
		Hours:      hours,
		Platforms:  slices.Clone(platforms),
		Rows:       make(map[string][]schema.AlignedRow, len(platforms)),
		Ticks:      make(map[string][]schema.BucketKey, len(platforms)),
	}
	for _, p := range platforms {
		rows := agg.AlignSeries(series, p)
		result.Rows[p] = rows
		result.Ticks[p] = algo.SampleTicks(rowSeries(rows), hours)
	}
	return result, nil
}

// rowSeries projects aligned rows onto their timestamps for tick sampling.
func rowSeries(rows []schema.AlignedRow) schema.Series {
	out := make(schema.Series, len(rows))
	for i, r := range rows {
		out[i] = schema.Point{Bucket: r.Timestamp}
	}
	return out
}

// GetVolatilityResults ranks every platform's categories into the two views.
func GetVolatilityResults(ctx context.Context, cfg *contract.Config, src contract.Source) (*schema.VolatilityResult, error) {
	entries, err := src.Volatility(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching volatility: %w", err)
	}
	limit := cfg.RankLimit
	if limit <= 0 {
		limit = schema.RankingLimit
	}
	return &schema.VolatilityResult{
		Limit: limit,
		Views: algo.RankVolatility(entries, limit),
	}, nil
}

// GetLiveResults totals the live snapshot and applies the category filter.
func GetLiveResults(ctx context.Context, cfg *contract.Config, src contract.Source) (*schema.LiveResult, error) {
	rows, err := src.Live(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching live traffic: %w", err)
	}
	categories := agg.ListCategories(rows, schema.CategoryListLimit)
	return &schema.LiveResult{
		Totals:     agg.SummarizeLive(rows),
		Categories: categories,
		Sorted:     agg.SortedCategories(categories),
		Filter:     cfg.Filter,
		Matches:    agg.FilterCategories(categories, cfg.Filter),
	}, nil
}

// GetEventsResults fetches events and daily leaders concurrently.
func GetEventsResults(ctx context.Context, cfg *contract.Config, src contract.Source) (*schema.EventsResult, error) {
	var (
		events []schema.EventItem
		tops   []schema.DailyTop
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if events, err = src.Events(gctx); err != nil {
			return fmt.Errorf("fetching events: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if tops, err = src.DailyTop(gctx); err != nil {
			return fmt.Errorf("fetching daily top: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	platforms := cfg.Platforms
	if len(platforms) == 0 {
		platforms = schema.AllPlatforms
	}
	daily := make(map[string][]schema.DailyTop, len(platforms))
	for _, p := range platforms {
		daily[p] = algo.TopByPlatform(tops, p, cfg.TopLimit)
	}
	return &schema.EventsResult{Split: agg.SplitEvents(events), DailyTop: daily}, nil
}

// GetInsightsResults fetches the peak-viewer streamers and the flash categories
// concurrently, keeping only the configured platforms.
func GetInsightsResults(ctx context.Context, cfg *contract.Config, src contract.Source) (*schema.InsightsResult, error) {
	var (
		kings []schema.KingStreamer
		flash []schema.FlashCategory
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if kings, err = src.King(gctx); err != nil {
			return fmt.Errorf("fetching kings: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if flash, err = src.Flash(gctx); err != nil {
			return fmt.Errorf("fetching flash categories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &schema.InsightsResult{
		Kings: algo.TopKings(kings, cfg.Platforms, schema.KingLimit),
		Flash: algo.FilterFlash(flash, cfg.Platforms),
	}, nil
}

// GetResolveResult resolves the configured preset and range without any I/O.
func GetResolveResult(cfg *contract.Config) *schema.ResolveResult {
	hours, fellBack := resolveWindow(cfg)
	var r *schema.DateRange
	if !cfg.Range.IsZero() {
		clone := *cfg.Range
		r = &clone
	}
	return &schema.ResolveResult{
		Preset:   cfg.Preset,
		Range:    r,
		Hours:    hours,
		FellBack: fellBack,
		TickStep: algo.TickStep(hours),
	}
}

// logHeader announces a run unless the context suppresses it.
func logHeader(ctx context.Context, cfg *contract.Config, command string) {
	if shouldSuppressHeader(ctx) {
		return
	}
	logging.Info().
		Str("command", command).
		Str("api", cfg.APIBase).
		Str("preset", cfg.Preset.Label).
		Strs("platforms", cfg.Platforms).
		Msg("🔎 Fetching dashboard data")
}

// ExecuteTrend runs the trend command and prints the result.
func ExecuteTrend(ctx context.Context, cfg *contract.Config, src contract.Source) error {
	logHeader(ctx, cfg, "trend")
	start := time.Now()
	result, err := GetTrendResults(ctx, cfg, src)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteTrend(result, cfg, time.Since(start))
}

// ExecuteCompare runs the compare command and prints the result.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, src contract.Source) error {
	logHeader(ctx, cfg, "compare")
	start := time.Now()
	result, err := GetCompareResults(ctx, cfg, src)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteCompare(result, cfg, time.Since(start))
}

// ExecuteVolatility runs the volatility command and prints the result.
func ExecuteVolatility(ctx context.Context, cfg *contract.Config, src contract.Source) error {
	logHeader(ctx, cfg, "volatility")
	start := time.Now()
	result, err := GetVolatilityResults(ctx, cfg, src)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteVolatility(result, cfg, time.Since(start))
}

// ExecuteLive runs the live command and prints the result.
func ExecuteLive(ctx context.Context, cfg *contract.Config, src contract.Source) error {
	logHeader(ctx, cfg, "live")
	start := time.Now()
	result, err := GetLiveResults(ctx, cfg, src)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteLive(result, cfg, time.Since(start))
}

// ExecuteEvents runs the events command and prints the result.
func ExecuteEvents(ctx context.Context, cfg *contract.Config, src contract.Source) error {
	logHeader(ctx, cfg, "events")
	start := time.Now()
	result, err := GetEventsResults(ctx, cfg, src)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteEvents(result, cfg, time.Since(start))
}

// ExecuteInsights runs the insights command and prints the result.
func ExecuteInsights(ctx context.Context, cfg *contract.Config, src contract.Source) error {
	logHeader(ctx, cfg, "insights")
	start := time.Now()
	result, err := GetInsightsResults(ctx, cfg, src)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteInsights(result, cfg, time.Since(start))
}

// ExecuteResolve prints how the configured range resolves. The source is unused.
func ExecuteResolve(_ context.Context, cfg *contract.Config, _ contract.Source) error {
	return outwriter.NewOutWriter().WriteResolve(GetResolveResult(cfg), cfg)
}
