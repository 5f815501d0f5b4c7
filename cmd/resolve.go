package cmd

import (
	"github.com/spf13/cobra"
	"github.com/streampulse/pulse/core"
	"github.com/streampulse/pulse/internal/contract"
)

// resolveCmd shows how a range resolves without calling upstream.
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Show the hours and tick step a preset or range resolves to.",
	Long: `Resolve a preset and an optional explicit range into whole hours.

Explicit ranges are rounded up to whole hours and clamped to 1..720. An
invalid range falls back to the preset. This command works offline.

Examples:
  pulse resolve --preset 7D
  pulse resolve --start 2024-01-01 --end 2024-01-02T06:30:00Z`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteResolve(rootCtx, cfg, nil); err != nil {
			contract.LogFatal("Cannot resolve range", err)
		}
	},
}
