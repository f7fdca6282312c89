package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/soccerboard/core"
	"github.com/huangsam/soccerboard/internal/contract"
	"github.com/huangsam/soccerboard/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// jsonResult renders v as an indented JSON text result.
func jsonResult(v any) *mcp.CallToolResult {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleGetStandings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := contract.RevalidateQuery(cfg, request.GetString("sort", ""), request.GetInt("limit", 0)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if f := request.GetString("owner_filter", ""); f != "" {
		cfg.OwnerFilter = f
	}

	standings, _, err := core.GetStandingsResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("standings failed: %v", err)), nil
	}
	return jsonResult(standings), nil
}

func (h *toolHandler) handleGetTeamResults(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	teamID := strings.TrimSpace(request.GetString("team_id", ""))
	if teamID == "" {
		return mcp.NewToolResultError("team_id is required"), nil
	}
	cfg := h.baseCfg.CloneWithTeam(teamID)
	if err := contract.RevalidateQuery(cfg, "", request.GetInt("limit", 0)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	profile, _, err := core.GetTeamProfileResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("team results failed: %v", err)), nil
	}
	return jsonResult(profile), nil
}

func (h *toolHandler) handleGetCompetitionStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view, _, err := core.GetCompetitionResults(core.WithSuppressHeader(ctx), h.baseCfg.Clone(), h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("competition stats failed: %v", err)), nil
	}
	if view.Series == nil {
		view.Series = []schema.DailyCount{}
	}
	return jsonResult(view), nil
}

func (h *toolHandler) handleListTeams(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if f := request.GetString("owner_filter", ""); f != "" {
		cfg.OwnerFilter = f
	}

	teams, _, err := core.GetTeamsResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list teams failed: %v", err)), nil
	}
	if teams == nil {
		teams = []string{}
	}
	return jsonResult(teams), nil
}
