package cmd

import (
	"github.com/spf13/cobra"
	"github.com/streampulse/pulse/core"
	"github.com/streampulse/pulse/internal/contract"
)

// trendCmd shows the bucketed series of one category.
var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show the 5-minute viewer series of one category.",
	Long: `Fetch raw viewer samples for a category and fold them into 5-minute UTC buckets.

Every sample is floored to its bucket and summed, so several platforms or
duplicate observations collapse into one value per bucket. Axis ticks mark
every 48th bucket for ranges up to a day and every 72nd bucket beyond that.

An explicit --start/--end pair overrides the preset. When the pair cannot be
parsed or the end is not after the start, the preset is used instead.
Without --category the first category of the live snapshot is charted.

Examples:
  # Last 24 hours of a category
  pulse trend --category "Just Chatting"

  # A week, as JSON
  pulse trend --category "League of Legends" --preset 7D --output json

  # An explicit two-day window written to parquet
  pulse trend --category Minecraft --start 2024-01-01 --end 2024-01-03 --output parquet --output-file mc.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runExecutor(rootCtx, core.ExecuteTrend, cfg, newSource()); err != nil {
			contract.LogFatal("Cannot run trend", err)
		}
	},
}
