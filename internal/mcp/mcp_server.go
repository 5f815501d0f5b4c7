// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/streampulse/pulse/internal/contract"
)

// NewMCPServer initializes and configures the pulse MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, src contract.Source, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"Pulse Streaming Analytics Server",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		src:     src,
	}

	rangeOptions := []mcp.ToolOption{
		mcp.WithString("preset", mcp.Description("Range preset such as 12h, 24h, 72h, 1D, 7D, 30D or <n>h/<n>d.")),
		mcp.WithString("start", mcp.Description("Explicit range start (YYYY-MM-DD or ISO-8601).")),
		mcp.WithString("end", mcp.Description("Explicit range end. An invalid range falls back to the preset.")),
	}

	// --- 1. Tool: get_trend ---
	s.AddTool(mcp.NewTool("get_trend", append([]mcp.ToolOption{
		mcp.WithDescription("Get the 5-minute bucketed viewer series of one category, with axis ticks."),
		mcp.WithString("category", mcp.Description("Category name. Defaults to the first live category.")),
		mcp.WithString("platform", mcp.Description("Restrict samples to one platform."), mcp.Enum("SOOP", "CHZZK")),
	}, rangeOptions...)...), h.handleGetTrend)

	// --- 2. Tool: compare_trends ---
	s.AddTool(mcp.NewTool("compare_trends", append([]mcp.ToolOption{
		mcp.WithDescription("Align up to three category series per platform for comparison."),
		mcp.WithString("categories", mcp.Description("Comma-separated category names (at most 3 are used). Defaults to the first three live categories.")),
		mcp.WithString("platform", mcp.Description("Only align this platform."), mcp.Enum("SOOP", "CHZZK")),
	}, rangeOptions...)...), h.handleCompareTrends)

	// --- 3. Tool: rank_volatility ---
	s.AddTool(mcp.NewTool("rank_volatility",
		mcp.WithDescription("Rank categories into the most stable and most volatile per platform."),
		mcp.WithNumber("limit", mcp.Description("Entries per view and platform. Defaults to 20.")),
		mcp.WithString("platform", mcp.Description("Only rank this platform."), mcp.Enum("SOOP", "CHZZK")),
	), h.handleRankVolatility)

	// --- 4. Tool: get_live ---
	s.AddTool(mcp.NewTool("get_live",
		mcp.WithDescription("Summarize live viewers per platform and list active categories."),
		mcp.WithString("filter", mcp.Description("Case-insensitive substring filter for category names.")),
	), h.handleGetLive)

	// --- 5. Tool: get_insights ---
	s.AddTool(mcp.NewTool("get_insights",
		mcp.WithDescription("List the top streamers by peak viewers and the categories that spiked and then faded."),
		mcp.WithString("platform", mcp.Description("Only include this platform."), mcp.Enum("SOOP", "CHZZK")),
	), h.handleGetInsights)

	// --- 6. Tool: resolve_hours ---
	s.AddTool(mcp.NewTool("resolve_hours", append([]mcp.ToolOption{
		mcp.WithDescription("Resolve a preset and optional explicit range into whole hours and a tick step."),
	}, rangeOptions...)...), h.handleResolveHours)

	return s
}

// StartMCPServer starts the pulse MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, src contract.Source, version string) error {
	s := NewMCPServer(baseCfg, src, version)
	return server.ServeStdio(s)
}
