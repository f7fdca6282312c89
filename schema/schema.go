// Package schema has models, constants and errors for all parts of soccerboard.
package schema

import "time"

// MatchRecord is a single played match from the source feed.
// Records are treated as immutable values once parsed.
type MatchRecord struct {
	Home      string     `json:"home"`      // Home team identifier (owner/team)
	Away      string     `json:"away"`      // Away team identifier (owner/team)
	Timestamp time.Time  `json:"timestamp"` // When the match was played
	Result    ResultCode `json:"result"`    // Encoded result from the home team's point of view
	Row       int        `json:"row"`       // 1-based data row in the source feed (0 when unknown)
}

// TeamStanding is the aggregate win/draw/loss record for one team.
type TeamStanding struct {
	TeamID  string  `json:"team_id"`
	Owner   string  `json:"owner"`
	Team    string  `json:"team"`
	Wins    int     `json:"wins"`
	Draws   int     `json:"draws"`
	Losses  int     `json:"losses"`
	Played  int     `json:"played"`
	WinPct  float64 `json:"win_pct"`  // 0-100, zero when nothing was played
	HasData bool    `json:"has_data"` // False when Played is zero and WinPct carries no meaning
}

// TeamResultView is one match seen from a single team's perspective.
type TeamResultView struct {
	Opponent      string    `json:"opponent"`
	OpponentOwner string    `json:"opponent_owner"`
	OpponentTeam  string    `json:"opponent_team"`
	Outcome       Outcome   `json:"outcome"`
	Timestamp     time.Time `json:"timestamp"`
	Home          bool      `json:"home"` // True when the team played at home
}

// DailyCount is the number of matches on one calendar day plus the running total.
type DailyCount struct {
	Date       time.Time `json:"date"`
	Count      int       `json:"count"`
	Cumulative int       `json:"cumulative"`
}

// DailyOutcome is one team's results grouped by calendar day.
type DailyOutcome struct {
	Date   time.Time `json:"date"`
	Wins   int       `json:"wins"`
	Draws  int       `json:"draws"`
	Losses int       `json:"losses"`
}

// Total returns the number of matches on that day.
func (d DailyOutcome) Total() int {
	return d.Wins + d.Draws + d.Losses
}

// TeamProfile bundles everything shown for a single team.
type TeamProfile struct {
	Standing       TeamStanding     `json:"standing"`
	Results        []TeamResultView `json:"results"`
	Daily          []DailyOutcome   `json:"daily"`
	CompetingSince time.Time        `json:"competing_since"` // Zero when the team has no matches
}

// CompetitionSummary holds the headline scalars of the whole competition.
type CompetitionSummary struct {
	TotalMatches  int       `json:"total_matches"`
	DistinctTeams int       `json:"distinct_teams"`
	SeasonEnd     time.Time `json:"season_end"`
	DaysLeft      int       `json:"days_left"`     // Display value, clamped at zero when clamping is on
	RawDaysLeft   int       `json:"raw_days_left"` // Signed day difference, negative once the season is over
	SeasonEnded   bool      `json:"season_ended"`
	FirstMatch    time.Time `json:"first_match"`
	LastMatch     time.Time `json:"last_match"`
}

// CompetitionView pairs the competition summary with the cumulative per-day series.
type CompetitionView struct {
	Summary CompetitionSummary `json:"summary"`
	Series  []DailyCount       `json:"series"`
}
