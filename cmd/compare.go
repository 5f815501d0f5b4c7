package cmd

import (
	"github.com/spf13/cobra"
	"github.com/streampulse/pulse/core"
	"github.com/streampulse/pulse/internal/contract"
)

// compareCmd aligns several category series per platform.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Align up to three category series per platform.",
	Long: `Fetch up to three categories concurrently and align them on shared timestamps.

Each platform gets its own table with one column per category. A category
without data at a timestamp is shown as "-" rather than zero. Without
--categories the first three categories of the live snapshot are compared.

Examples:
  # Compare three categories on both platforms
  pulse compare --categories "Just Chatting,League of Legends,Minecraft"

  # Only one platform, over 30 days
  pulse compare --categories "a,b" --platforms CHZZK --preset 30D

  # Long-format CSV for spreadsheets
  pulse compare --categories "a,b" --output csv --output-file compare.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runExecutor(rootCtx, core.ExecuteCompare, cfg, newSource()); err != nil {
			contract.LogFatal("Cannot run compare", err)
		}
	},
}
