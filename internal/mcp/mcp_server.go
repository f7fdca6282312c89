// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/soccerboard/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the soccerboard MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Soccerboard Match Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	s.AddTool(mcp.NewTool("get_standings",
		mcp.WithDescription("Win, draw and loss record with win rate for every SoccerTwos model."),
		mcp.WithString("sort", mcp.Description("Ordering of the table. Defaults to 'team'."), mcp.Enum("team", "winpct", "wins", "played")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of teams returned.")),
		mcp.WithString("owner_filter", mcp.Description("Only keep teams whose owner contains this text (case-insensitive).")),
	), h.handleGetStandings)

	s.AddTool(mcp.NewTool("get_team_results",
		mcp.WithDescription("Every match of one team, newest first, with outcomes from that team's side."),
		mcp.WithString("team_id", mcp.Description("Team identifier in the form owner/model."), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Limit the number of matches returned.")),
	), h.handleGetTeamResults)

	s.AddTool(mcp.NewTool("get_competition_stats",
		mcp.WithDescription("Total matches, live models, season countdown and the cumulative matches per day."),
	), h.handleGetCompetitionStats)

	s.AddTool(mcp.NewTool("list_teams",
		mcp.WithDescription("List every team identifier present in the match feed."),
		mcp.WithString("owner_filter", mcp.Description("Only keep teams whose owner contains this text.")),
	), h.handleListTeams)

	return s
}

// StartMCPServer serves the MCP tools over stdio until the client disconnects.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
