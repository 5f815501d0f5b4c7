package cmd

import (
	"github.com/spf13/cobra"
	"github.com/streampulse/pulse/core"
	"github.com/streampulse/pulse/internal/contract"
)

// insightsCmd lists peak-viewer streamers and flash categories.
var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "List the top streamers by peak viewers and the flash-in-the-pan categories.",
	Long: `Fetch the streamer peak leaderboard and the categories that spiked and then faded.

At most 20 streamers are listed, in the upstream order of their peak viewers.
Both lists honor --platforms.

Examples:
  pulse insights
  pulse insights --platforms CHZZK --output csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runExecutor(rootCtx, core.ExecuteInsights, cfg, newSource()); err != nil {
			contract.LogFatal("Cannot run insights", err)
		}
	},
}
