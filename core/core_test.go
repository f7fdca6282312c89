package core

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/soccerboard/internal/contract"
	"github.com/huangsam/soccerboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// leagueFeed has three teams from two owners across two days.
const leagueFeed = "home,away,timestamp,result\n" +
	"alpha/one,beta/one,1676300000,1\n" + // 2023-02-13
	"beta/one,alpha/one,1676303600,0.5\n" + // 2023-02-13
	"alpha/two,alpha/one,1676390000,0\n" + // 2023-02-14
	"beta/one,alpha/two,1676400000,1\n" // 2023-02-14

func testContext(t *testing.T, body string) context.Context {
	t.Helper()
	src := &contract.MockMatchSource{}
	src.On("Fetch", mock.Anything, "league.csv").Return([]byte(body), nil)
	return WithSuppressHeader(WithMatchSource(context.Background(), src))
}

func testConfig() *contract.Config {
	return &contract.Config{
		Source:         "league.csv",
		Sort:           schema.SortByTeam,
		Output:         schema.JSONOut,
		Location:       time.UTC,
		SeasonEnd:      time.Now().UTC().AddDate(0, 0, 10),
		ClampCountdown: true,
	}
}

func TestGetStandingsResults(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *contract.Config)
		wantIDs []string
	}{
		{name: "all teams by id", mutate: func(*contract.Config) {}, wantIDs: []string{"alpha/one", "alpha/two", "beta/one"}},
		{name: "owner filter", mutate: func(c *contract.Config) { c.OwnerFilter = "ALPHA" }, wantIDs: []string{"alpha/one", "alpha/two"}},
		{name: "by wins with limit", mutate: func(c *contract.Config) { c.Sort = schema.SortByWins; c.ResultLimit = 2 }, wantIDs: []string{"alpha/one", "beta/one"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)

			standings, cached, err := GetStandingsResults(testContext(t, leagueFeed), cfg, nil)
			require.NoError(t, err)
			assert.False(t, cached)

			ids := make([]string, 0, len(standings))
			for _, s := range standings {
				ids = append(ids, s.TeamID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestGetTeamProfileResults(t *testing.T) {
	cfg := testConfig()
	cfg.TeamID = "alpha/one"

	profile, _, err := GetTeamProfileResults(testContext(t, leagueFeed), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, profile.Standing.Wins)
	assert.Equal(t, 1, profile.Standing.Draws)
	require.Len(t, profile.Results, 3)
	assert.Equal(t, "alpha/two", profile.Results[0].Opponent, "newest first")
	assert.Len(t, profile.Daily, 2)

	cfg.ResultLimit = 1
	limited, _, err := GetTeamProfileResults(testContext(t, leagueFeed), cfg, nil)
	require.NoError(t, err)
	assert.Len(t, limited.Results, 1)
	assert.Equal(t, 3, limited.Standing.Played, "standing is not limited")
}

func TestGetTeamProfileResultsUnknownTeam(t *testing.T) {
	cfg := testConfig()
	cfg.TeamID = "nobody/here"

	profile, _, err := GetTeamProfileResults(testContext(t, leagueFeed), cfg, nil)
	require.NoError(t, err)
	assert.Empty(t, profile.Results)
	assert.False(t, profile.Standing.HasData)
}

func TestGetTeamProfileResultsRequiresTeam(t *testing.T) {
	_, _, err := GetTeamProfileResults(testContext(t, leagueFeed), testConfig(), nil)
	assert.ErrorIs(t, err, ErrTeamRequired)
}

func TestGetCompetitionResults(t *testing.T) {
	view, _, err := GetCompetitionResults(testContext(t, leagueFeed), testConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, 4, view.Summary.TotalMatches)
	assert.Equal(t, 3, view.Summary.DistinctTeams)
	assert.Equal(t, 10, view.Summary.DaysLeft)
	assert.False(t, view.Summary.SeasonEnded)

	require.Len(t, view.Series, 2)
	assert.Equal(t, 2, view.Series[0].Count)
	assert.Equal(t, 4, view.Series[1].Cumulative)
}

func TestGetCompetitionResultsEmptyFeed(t *testing.T) {
	view, _, err := GetCompetitionResults(testContext(t, "home,away,timestamp,result\n"), testConfig(), nil)
	require.NoError(t, err)
	assert.Zero(t, view.Summary.TotalMatches)
	assert.Empty(t, view.Series)
}

func TestGetTeamsResults(t *testing.T) {
	teams, _, err := GetTeamsResults(testContext(t, leagueFeed), testConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha/one", "alpha/two", "beta/one"}, teams)

	cfg := testConfig()
	cfg.OwnerFilter = "beta"
	teams, _, err = GetTeamsResults(testContext(t, leagueFeed), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"beta/one"}, teams)
}

func TestResultsPropagateFeedErrors(t *testing.T) {
	src := &contract.MockMatchSource{}
	src.On("Fetch", mock.Anything, "league.csv").Return(nil, schema.ErrSourceUnavailable)
	ctx := WithSuppressHeader(WithMatchSource(context.Background(), src))

	_, _, err := GetStandingsResults(ctx, testConfig(), nil)
	assert.ErrorIs(t, err, schema.ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "league.csv")

	_, _, err = GetStandingsResults(testContext(t, "home,away,timestamp,result\na/b,c/d,1,2\n"), testConfig(), nil)
	assert.ErrorIs(t, err, schema.ErrInvalidResultCode)
}

func TestExecutors(t *testing.T) {
	tests := []struct {
		name   string
		exec   ExecutorFunc
		teamID string
		check  func(t *testing.T, data []byte)
	}{
		{
			name: "standings",
			exec: ExecuteStandings,
			check: func(t *testing.T, data []byte) {
				var got []map[string]any
				require.NoError(t, json.Unmarshal(data, &got))
				assert.Len(t, got, 3)
			},
		},
		{
			name:   "team",
			exec:   ExecuteTeam,
			teamID: "beta/one",
			check: func(t *testing.T, data []byte) {
				var got schema.TeamProfile
				require.NoError(t, json.Unmarshal(data, &got))
				assert.Equal(t, "beta/one", got.Standing.TeamID)
				assert.Len(t, got.Results, 3)
			},
		},
		{
			name: "competition",
			exec: ExecuteCompetition,
			check: func(t *testing.T, data []byte) {
				var got schema.CompetitionView
				require.NoError(t, json.Unmarshal(data, &got))
				assert.Equal(t, 4, got.Summary.TotalMatches)
				assert.Len(t, got.Series, 2)
			},
		},
		{
			name: "teams",
			exec: ExecuteTeams,
			check: func(t *testing.T, data []byte) {
				var got []string
				require.NoError(t, json.Unmarshal(data, &got))
				assert.Equal(t, []string{"alpha/one", "alpha/two", "beta/one"}, got)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.TeamID = tt.teamID
			cfg.OutputFile = filepath.Join(t.TempDir(), tt.name+".json")

			require.NoError(t, tt.exec(testContext(t, leagueFeed), cfg, nil))

			data, err := os.ReadFile(cfg.OutputFile)
			require.NoError(t, err)
			tt.check(t, data)
		})
	}
}
