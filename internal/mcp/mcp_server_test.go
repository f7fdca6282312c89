package mcp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/huangsam/soccerboard/internal/contract"
	mcp_internal "github.com/huangsam/soccerboard/internal/mcp"
	"github.com/huangsam/soccerboard/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(source string) *server.MCPServer {
	baseCfg := &contract.Config{
		Source:         source,
		HTTPTimeout:    5 * time.Second,
		Sort:           schema.SortByTeam,
		Location:       time.UTC,
		SeasonEnd:      time.Date(2023, time.April, 30, 0, 0, 0, 0, time.UTC),
		ClampCountdown: true,
	}

	// No cache manager, every call reads the local feed
	var mgr contract.CacheManager
	return mcp_internal.NewMCPServer(baseCfg, mgr)
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	s := newTestServer("../feed/testdata/soccer_history.csv")

	t.Run("get_team_results missing team_id", func(t *testing.T) {
		res := callTool(t, s, "get_team_results", map[string]any{"team_id": ""})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, resultText(t, res), "team_id is required")
	})

	t.Run("get_standings invalid sort", func(t *testing.T) {
		res := callTool(t, s, "get_standings", map[string]any{"sort": "elo"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "invalid sort")
	})

	t.Run("get_standings negative limit", func(t *testing.T) {
		res := callTool(t, s, "get_standings", map[string]any{"limit": -1.0})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "limit must be between")
	})
}

func TestMCPServerHandlers_Results(t *testing.T) {
	s := newTestServer("../feed/testdata/soccer_history.csv")

	t.Run("get_standings", func(t *testing.T) {
		res := callTool(t, s, "get_standings", map[string]any{"sort": "wins", "limit": 2.0})
		require.False(t, res.IsError, resultText(t, res))

		var standings []schema.TeamStanding
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &standings))
		require.Len(t, standings, 2)
		assert.GreaterOrEqual(t, standings[0].Wins, standings[1].Wins)
	})

	t.Run("get_team_results", func(t *testing.T) {
		res := callTool(t, s, "get_team_results", map[string]any{"team_id": "cool/agent"})
		require.False(t, res.IsError, resultText(t, res))

		var profile schema.TeamProfile
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &profile))
		assert.Equal(t, "cool/agent", profile.Standing.TeamID)
		require.Len(t, profile.Results, 4)
		assert.True(t, profile.Results[0].Timestamp.After(profile.Results[1].Timestamp))
	})

	t.Run("get_competition_stats", func(t *testing.T) {
		res := callTool(t, s, "get_competition_stats", map[string]any{})
		require.False(t, res.IsError, resultText(t, res))

		var view schema.CompetitionView
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &view))
		assert.Equal(t, 5, view.Summary.TotalMatches)
		require.NotEmpty(t, view.Series)
		assert.Equal(t, 5, view.Series[len(view.Series)-1].Cumulative)
	})

	t.Run("list_teams", func(t *testing.T) {
		res := callTool(t, s, "list_teams", map[string]any{"owner_filter": "cool"})
		require.False(t, res.IsError, resultText(t, res))

		var teams []string
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &teams))
		assert.Equal(t, []string{"cool/agent"}, teams)
	})
}

func TestMCPServerHandlers_SourceUnavailable(t *testing.T) {
	s := newTestServer("testdata/does-not-exist.csv")

	res := callTool(t, s, "get_competition_stats", map[string]any{})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "competition stats failed")
}
