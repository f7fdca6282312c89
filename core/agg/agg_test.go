package agg

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/huangsam/soccerboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleRecords is the two-match example used throughout the docs.
func sampleRecords() []schema.MatchRecord {
	return []schema.MatchRecord{
		{Home: "A/x", Away: "B/y", Timestamp: time.Unix(100, 0).UTC(), Result: schema.HomeWin},
		{Home: "B/y", Away: "A/x", Timestamp: time.Unix(200, 0).UTC(), Result: schema.Draw},
	}
}

// randomRecords builds a deterministic pseudo-random match history.
func randomRecords(seed uint64, n int) []schema.MatchRecord {
	rng := rand.New(rand.NewPCG(seed, seed*31+7))
	teams := []string{"alpha/one", "Alpha/two", "beta/one", "gamma/x", "delta", "eps/ilon"}
	codes := []schema.ResultCode{schema.HomeWin, schema.Draw, schema.AwayWin}
	base := time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC)

	records := make([]schema.MatchRecord, 0, n)
	for i := range n {
		h := rng.IntN(len(teams))
		a := (h + 1 + rng.IntN(len(teams)-1)) % len(teams)
		records = append(records, schema.MatchRecord{
			Home:      teams[h],
			Away:      teams[a],
			Timestamp: base.Add(time.Duration(rng.IntN(30*24)) * time.Hour),
			Result:    codes[rng.IntN(len(codes))],
			Row:       i + 1,
		})
	}
	return records
}

func TestComputeStandingsExample(t *testing.T) {
	standings, err := ComputeStandings(sampleRecords())
	require.NoError(t, err)
	require.Len(t, standings, 2)

	a := standings["A/x"]
	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 1, a.Draws)
	assert.Equal(t, 0, a.Losses)
	assert.Equal(t, 2, a.Played)
	assert.InDelta(t, 66.67, a.WinPct, 0.01)
	assert.True(t, a.HasData)
	assert.Equal(t, "A", a.Owner)
	assert.Equal(t, "x", a.Team)

	b := standings["B/y"]
	assert.Equal(t, 0, b.Wins)
	assert.Equal(t, 1, b.Draws)
	assert.Equal(t, 1, b.Losses)
	assert.InDelta(t, 0.0, b.WinPct, 1e-9)
}

func TestComputeStandingsRoles(t *testing.T) {
	records := []schema.MatchRecord{
		{Home: "home/only", Away: "away/only", Timestamp: time.Unix(1, 0), Result: schema.AwayWin},
	}
	standings, err := ComputeStandings(records)
	require.NoError(t, err)

	assert.Equal(t, schema.TeamStanding{TeamID: "home/only", Owner: "home", Team: "only", Losses: 1, Played: 1, HasData: true}, standings["home/only"])
	assert.Equal(t, schema.TeamStanding{TeamID: "away/only", Owner: "away", Team: "only", Wins: 1, Played: 1, WinPct: 100, HasData: true}, standings["away/only"])
}

func TestComputeStandingsMalformedIdentifier(t *testing.T) {
	records := []schema.MatchRecord{
		{Home: "noseparator", Away: "ok/team", Timestamp: time.Unix(1, 0), Result: schema.HomeWin},
	}
	standings, err := ComputeStandings(records)
	require.NoError(t, err)
	assert.Equal(t, "noseparator", standings["noseparator"].Owner)
	assert.Equal(t, "", standings["noseparator"].Team)
}

func TestInvalidResultCode(t *testing.T) {
	records := append(sampleRecords(), schema.MatchRecord{Home: "A/x", Away: "C/z", Timestamp: time.Unix(300, 0), Result: 2})

	standings, err := ComputeStandings(records)
	assert.ErrorIs(t, err, schema.ErrInvalidResultCode)
	assert.Nil(t, standings)
	assert.Contains(t, err.Error(), "row 3")

	views, err := ComputeTeamResultView(records, "A/x")
	assert.ErrorIs(t, err, schema.ErrInvalidResultCode)
	assert.Nil(t, views)

	series, err := MatchesPerDay(records, nil)
	assert.ErrorIs(t, err, schema.ErrInvalidResultCode)
	assert.Nil(t, series)

	_, err = Summarize(records, time.Now(), time.Now(), true)
	assert.ErrorIs(t, err, schema.ErrInvalidResultCode)

	_, err = BuildTeamProfile(records, "A/x", nil)
	assert.ErrorIs(t, err, schema.ErrInvalidResultCode)
}

func TestInvalidResultCodeUsesSourceRow(t *testing.T) {
	records := []schema.MatchRecord{{Home: "a/b", Away: "c/d", Result: 0.7, Row: 42}}
	_, err := ComputeStandings(records)

	var rerr *schema.RecordError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, 42, rerr.Row)
	assert.Equal(t, "0.7", rerr.Value)
}

func TestEmptyInput(t *testing.T) {
	standings, err := ComputeStandings(nil)
	require.NoError(t, err)
	assert.Empty(t, standings)
	assert.NotNil(t, standings)

	views, err := ComputeTeamResultView(nil, "A/x")
	require.NoError(t, err)
	assert.Empty(t, views)
	assert.NotNil(t, views)

	series, err := MatchesPerDay(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, series)

	assert.Empty(t, Teams(nil))

	summary, err := Summarize(nil, time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, 4, 30, 0, 0, 0, 0, time.UTC), true)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalMatches)
	assert.Equal(t, 0, summary.DistinctTeams)
	assert.True(t, summary.FirstMatch.IsZero())
}

func TestComputeTeamResultViewExample(t *testing.T) {
	views, err := ComputeTeamResultView(sampleRecords(), "A/x")
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "B/y", views[0].Opponent)
	assert.Equal(t, schema.OutcomeDraw, views[0].Outcome)
	assert.Equal(t, int64(200), views[0].Timestamp.Unix())
	assert.False(t, views[0].Home)

	assert.Equal(t, "B/y", views[1].Opponent)
	assert.Equal(t, schema.OutcomeWin, views[1].Outcome)
	assert.Equal(t, int64(100), views[1].Timestamp.Unix())
	assert.True(t, views[1].Home)
	assert.Equal(t, "B", views[1].OpponentOwner)
	assert.Equal(t, "y", views[1].OpponentTeam)
}

func TestComputeTeamResultViewUnknownTeam(t *testing.T) {
	views, err := ComputeTeamResultView(sampleRecords(), "nobody/here")
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestComputeTeamResultViewStableTies(t *testing.T) {
	ts := time.Unix(500, 0)
	records := []schema.MatchRecord{
		{Home: "t/1", Away: "o/first", Timestamp: ts, Result: schema.HomeWin},
		{Home: "o/second", Away: "t/1", Timestamp: ts, Result: schema.HomeWin},
		{Home: "t/1", Away: "o/newest", Timestamp: ts.Add(time.Second), Result: schema.Draw},
		{Home: "t/1", Away: "o/third", Timestamp: ts, Result: schema.AwayWin},
	}
	views, err := ComputeTeamResultView(records, "t/1")
	require.NoError(t, err)

	var got []string
	for _, v := range views {
		got = append(got, v.Opponent)
	}
	assert.Equal(t, []string{"o/newest", "o/first", "o/second", "o/third"}, got)
	assert.Equal(t, []schema.Outcome{schema.OutcomeDraw, schema.OutcomeWin, schema.OutcomeLoss, schema.OutcomeLoss},
		[]schema.Outcome{views[0].Outcome, views[1].Outcome, views[2].Outcome, views[3].Outcome})
}

func TestMatchesPerDay(t *testing.T) {
	day := func(d, h int) time.Time { return time.Date(2023, time.March, d, h, 0, 0, 0, time.UTC) }
	records := []schema.MatchRecord{
		{Home: "a/a", Away: "b/b", Timestamp: day(3, 10), Result: schema.Draw},
		{Home: "a/a", Away: "b/b", Timestamp: day(1, 23), Result: schema.Draw},
		{Home: "a/a", Away: "b/b", Timestamp: day(3, 1), Result: schema.HomeWin},
		{Home: "a/a", Away: "b/b", Timestamp: day(1, 0), Result: schema.AwayWin},
		{Home: "a/a", Away: "b/b", Timestamp: day(1, 12), Result: schema.AwayWin},
	}
	series, err := MatchesPerDay(records, nil)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, schema.DailyCount{Date: day(1, 0), Count: 3, Cumulative: 3}, series[0])
	assert.Equal(t, schema.DailyCount{Date: day(3, 0), Count: 2, Cumulative: 5}, series[1])
}

func TestMatchesPerDayTimezone(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	records := []schema.MatchRecord{
		{Home: "a/a", Away: "b/b", Timestamp: time.Date(2023, 3, 1, 23, 0, 0, 0, time.UTC), Result: schema.Draw},
		{Home: "a/a", Away: "b/b", Timestamp: time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC), Result: schema.Draw},
	}

	utc, err := MatchesPerDay(records, time.UTC)
	require.NoError(t, err)
	assert.Len(t, utc, 1)

	shifted, err := MatchesPerDay(records, loc)
	require.NoError(t, err)
	require.Len(t, shifted, 2)
	assert.Equal(t, time.Date(2023, 3, 1, 0, 0, 0, 0, loc), shifted[0].Date)
	assert.Equal(t, time.Date(2023, 3, 2, 0, 0, 0, 0, loc), shifted[1].Date)
}

func TestTeamsCaseInsensitive(t *testing.T) {
	records := []schema.MatchRecord{
		{Home: "bob/z", Away: "Alice/a", Result: schema.Draw},
		{Home: "alice/b", Away: "Bob/z", Result: schema.Draw},
		{Home: "bob/z", Away: "carol/c", Result: schema.Draw},
	}
	assert.Equal(t, []string{"Alice/a", "alice/b", "Bob/z", "bob/z", "carol/c"}, Teams(records))
}

func TestOutcomesPerDay(t *testing.T) {
	d1 := time.Date(2023, 3, 1, 9, 0, 0, 0, time.UTC)
	d2 := time.Date(2023, 3, 2, 9, 0, 0, 0, time.UTC)
	records := []schema.MatchRecord{
		{Home: "t/1", Away: "o/o", Timestamp: d2, Result: schema.HomeWin},
		{Home: "o/o", Away: "t/1", Timestamp: d1, Result: schema.HomeWin},
		{Home: "o/o", Away: "t/1", Timestamp: d1.Add(time.Hour), Result: schema.AwayWin},
		{Home: "t/1", Away: "o/o", Timestamp: d1.Add(2 * time.Hour), Result: schema.Draw},
		{Home: "x/x", Away: "o/o", Timestamp: d1, Result: schema.Draw},
	}
	daily, err := OutcomesPerDay(records, "t/1", nil)
	require.NoError(t, err)
	require.Len(t, daily, 2)
	assert.Equal(t, schema.DailyOutcome{Date: time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), Wins: 1, Draws: 1, Losses: 1}, daily[0])
	assert.Equal(t, schema.DailyOutcome{Date: time.Date(2023, 3, 2, 0, 0, 0, 0, time.UTC), Wins: 1}, daily[1])
	assert.Equal(t, 3, daily[0].Total())
}

func TestBuildTeamProfile(t *testing.T) {
	profile, err := BuildTeamProfile(sampleRecords(), "A/x", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, profile.Standing.Wins)
	assert.Equal(t, 1, profile.Standing.Draws)
	assert.InDelta(t, 66.67, profile.Standing.WinPct, 0.01)
	assert.Len(t, profile.Results, 2)
	assert.Len(t, profile.Daily, 1)
	assert.Equal(t, int64(100), profile.CompetingSince.Unix())

	empty, err := BuildTeamProfile(sampleRecords(), "ghost/team", nil)
	require.NoError(t, err)
	assert.False(t, empty.Standing.HasData)
	assert.Zero(t, empty.Standing.WinPct)
	assert.True(t, empty.CompetingSince.IsZero())
	assert.Empty(t, empty.Results)
}

func TestStandingsInvariants(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3, 42, 1337} {
		records := randomRecords(seed, 250)

		standings, err := ComputeStandings(records)
		require.NoError(t, err)

		decisive, drawn := 0, 0
		for _, r := range records {
			if r.Result.Decisive() {
				decisive++
			} else {
				drawn++
			}
		}

		wins, draws, losses := 0, 0, 0
		for _, s := range standings {
			wins += s.Wins
			draws += s.Draws
			losses += s.Losses
			assert.Equal(t, s.Wins+s.Draws+s.Losses, s.Played)
			assert.GreaterOrEqual(t, s.WinPct, 0.0)
			assert.LessOrEqual(t, s.WinPct, 100.0)
		}
		assert.Equal(t, decisive, wins, "seed %d", seed)
		assert.Equal(t, decisive, losses, "seed %d", seed)
		assert.Equal(t, 2*drawn, draws, "seed %d", seed)
		assert.Len(t, standings, len(Teams(records)))
	}
}

func TestResultViewInvariants(t *testing.T) {
	for _, seed := range []uint64{5, 8, 13} {
		records := randomRecords(seed, 200)
		standings, err := ComputeStandings(records)
		require.NoError(t, err)

		for _, team := range Teams(records) {
			views, err := ComputeTeamResultView(records, team)
			require.NoError(t, err)

			appearances := 0
			for _, r := range records {
				if r.Home == team || r.Away == team {
					appearances++
				}
			}
			assert.Len(t, views, appearances)
			for i := 1; i < len(views); i++ {
				assert.False(t, views[i].Timestamp.After(views[i-1].Timestamp), "views must be newest first")
			}

			profile, err := BuildTeamProfile(records, team, nil)
			require.NoError(t, err)
			assert.Equal(t, standings[team], profile.Standing)
		}
	}
}

func TestMatchesPerDayInvariants(t *testing.T) {
	for _, seed := range []uint64{7, 9, 11} {
		records := randomRecords(seed, 300)
		series, err := MatchesPerDay(records, nil)
		require.NoError(t, err)
		require.NotEmpty(t, series)

		for i := 1; i < len(series); i++ {
			assert.True(t, series[i].Date.After(series[i-1].Date))
			assert.GreaterOrEqual(t, series[i].Cumulative, series[i-1].Cumulative)
			assert.Equal(t, series[i-1].Cumulative+series[i].Count, series[i].Cumulative)
		}
		assert.Equal(t, len(records), series[len(series)-1].Cumulative)
	}
}
