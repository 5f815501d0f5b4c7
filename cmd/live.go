package cmd

import (
	"github.com/spf13/cobra"
	"github.com/streampulse/pulse/core"
	"github.com/streampulse/pulse/internal/contract"
)

// liveCmd summarizes the current snapshot.
var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Summarize live viewers and list active categories.",
	Long: `Total the current live snapshot per platform and list active categories.

Examples:
  # Current totals
  pulse live

  # Only categories containing "craft", refreshed every 30 seconds
  pulse live --filter craft --every 30s`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runExecutor(rootCtx, core.ExecuteLive, cfg, newSource()); err != nil {
			contract.LogFatal("Cannot run live summary", err)
		}
	},
}
