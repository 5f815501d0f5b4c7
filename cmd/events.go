package cmd

import (
	"github.com/spf13/cobra"
	"github.com/streampulse/pulse/core"
	"github.com/streampulse/pulse/internal/contract"
)

// eventsCmd lists traffic events and daily leaders.
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List category adoptions, market spikes and the daily leaders.",
	Long: `Fetch classified traffic events and the daily category leaderboard.

Category adoptions are listed before every other event type. The daily
leaders are shown per platform, limited by --top.

Examples:
  pulse events
  pulse events --top 5 --platforms SOOP`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runExecutor(rootCtx, core.ExecuteEvents, cfg, newSource()); err != nil {
			contract.LogFatal("Cannot run events", err)
		}
	},
}
