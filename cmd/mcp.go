package cmd

import (
	"github.com/spf13/cobra"
	"github.com/streampulse/pulse/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the pulse MCP server",
	Long:  `Launch an MCP server over stdio so AI agents can query trends, comparisons, rankings and live data as tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Logs go to stderr, so stdout stays clean for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, newSource(), version)
	},
}
