package mcp

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/streampulse/pulse/core"
	"github.com/streampulse/pulse/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	src     contract.Source
}

// requestConfig clones the base config and applies the tool arguments.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	err := contract.RevalidateRequest(cfg, contract.RequestParams{
		Preset:     request.GetString("preset", ""),
		Start:      request.GetString("start", ""),
		End:        request.GetString("end", ""),
		Category:   request.GetString("category", ""),
		Categories: request.GetString("categories", ""),
		Platform:   request.GetString("platform", ""),
		Filter:     request.GetString("filter", ""),
		Limit:      request.GetInt("limit", 0),
	})
	return cfg, err
}

// jsonResult encodes v as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTrend(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid trend parameters: %v", err)), nil
	}

	result, err := core.GetTrendResults(core.WithSuppressHeader(ctx), cfg, h.src)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("trend failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleCompareTrends(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid comparison parameters: %v", err)), nil
	}

	result, err := core.GetCompareResults(core.WithSuppressHeader(ctx), cfg, h.src)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleRankVolatility(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid ranking parameters: %v", err)), nil
	}

	result, err := core.GetVolatilityResults(core.WithSuppressHeader(ctx), cfg, h.src)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}
	return jsonResult(contract.LabelRanked(result.Views, cfg.Platforms, cfg.Labels))
}

func (h *toolHandler) handleGetLive(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid live parameters: %v", err)), nil
	}

	result, err := core.GetLiveResults(core.WithSuppressHeader(ctx), cfg, h.src)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("live snapshot failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleGetInsights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid insights parameters: %v", err)), nil
	}

	result, err := core.GetInsightsResults(core.WithSuppressHeader(ctx), cfg, h.src)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("insights failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleResolveHours(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid range parameters: %v", err)), nil
	}
	return jsonResult(core.GetResolveResult(cfg))
}
