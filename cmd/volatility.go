package cmd

import (
	"github.com/spf13/cobra"
	"github.com/streampulse/pulse/core"
	"github.com/streampulse/pulse/internal/contract"
)

// volatilityCmd ranks categories by stability.
var volatilityCmd = &cobra.Command{
	Use:   "volatility",
	Short: "Rank the steadiest and most volatile categories per platform.",
	Long: `Rank categories by their volatility index into two views per platform.

The stable view lists the lowest scores first and the rollercoaster view the
highest. Entries without a score are left out, while a score of exactly zero
is ranked. Labels follow the configured thresholds (Steady, Moderate,
Volatile, Erratic).

Examples:
  # Top 20 per view and platform
  pulse volatility

  # Top 5 with custom label thresholds
  pulse volatility --limit 5 --label-thresholds steady:0.05,moderate:0.2,volatile:0.5`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runExecutor(rootCtx, core.ExecuteVolatility, cfg, newSource()); err != nil {
			contract.LogFatal("Cannot run volatility ranking", err)
		}
	},
}
