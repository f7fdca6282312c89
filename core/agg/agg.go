// Package agg has aggregation logic for SoccerTwos match records.
// Every function here is a pure pass over the record slice: results are
// recomputed from scratch on each call and inputs are never mutated.
package agg

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/soccerboard/schema"
)

// validateRecords checks every result code up front so that no caller ever
// sees partial output from a feed containing an unknown code.
func validateRecords(records []schema.MatchRecord) error {
	for i, r := range records {
		if r.Result.Valid() {
			continue
		}
		row := r.Row
		if row == 0 {
			row = i + 1
		}
		return &schema.RecordError{
			Row:   row,
			Field: "result",
			Value: strconv.FormatFloat(float64(r.Result), 'g', -1, 64),
			Err:   schema.ErrInvalidResultCode,
		}
	}
	return nil
}

// ComputeStandings builds the win/draw/loss table for every team seen as
// either home or away. Teams that only ever played one role are still
// included with zero counts for the other.
func ComputeStandings(records []schema.MatchRecord) (map[string]schema.TeamStanding, error) {
	if err := validateRecords(records); err != nil {
		return nil, err
	}

	// 1. Single pass over the records
	table := make(map[string]*schema.TeamStanding)
	get := func(id string) *schema.TeamStanding {
		s, ok := table[id]
		if !ok {
			zero := schema.NewStanding(id)
			s = &zero
			table[id] = s
		}
		return s
	}
	for _, r := range records {
		home, away := get(r.Home), get(r.Away)
		switch r.Result {
		case schema.HomeWin:
			home.Wins++
			away.Losses++
		case schema.AwayWin:
			home.Losses++
			away.Wins++
		default:
			home.Draws++
			away.Draws++
		}
	}

	// 2. Derived fields once all counts are final
	out := make(map[string]schema.TeamStanding, len(table))
	for id, s := range table {
		finalizeStanding(s)
		out[id] = *s
	}
	return out, nil
}

// finalizeStanding fills in Played, WinPct and HasData.
// A team with no matches gets a zero WinPct and HasData=false instead of NaN.
func finalizeStanding(s *schema.TeamStanding) {
	s.Played = s.Wins + s.Draws + s.Losses
	if s.Played == 0 {
		s.WinPct = 0
		s.HasData = false
		return
	}
	s.WinPct = float64(s.Wins) / float64(s.Played) * 100
	s.HasData = true
}

// ComputeTeamResultView returns the matches of one team from its own
// perspective, newest first. Matches sharing a timestamp keep input order.
// An unknown team yields an empty slice.
func ComputeTeamResultView(records []schema.MatchRecord, teamID string) ([]schema.TeamResultView, error) {
	if err := validateRecords(records); err != nil {
		return nil, err
	}

	views := make([]schema.TeamResultView, 0)
	for _, r := range records {
		var opponent string
		var home bool
		switch teamID {
		case r.Home:
			opponent, home = r.Away, true
		case r.Away:
			opponent, home = r.Home, false
		default:
			continue
		}
		owner, team, _ := schema.ParseTeamID(opponent)
		views = append(views, schema.TeamResultView{
			Opponent:      opponent,
			OpponentOwner: owner,
			OpponentTeam:  team,
			Outcome:       schema.OutcomeFor(r.Result, home),
			Timestamp:     r.Timestamp,
			Home:          home,
		})
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Timestamp.After(views[j].Timestamp)
	})
	return views, nil
}

// MatchesPerDay counts matches per calendar day in loc and carries a running
// total, ordered by date ascending. Days without matches are omitted.
// A nil loc means UTC.
func MatchesPerDay(records []schema.MatchRecord, loc *time.Location) ([]schema.DailyCount, error) {
	if err := validateRecords(records); err != nil {
		return nil, err
	}

	counts := make(map[time.Time]int)
	for _, r := range records {
		counts[dayOf(r.Timestamp, loc)]++
	}

	days := sortedDays(counts)
	series := make([]schema.DailyCount, 0, len(days))
	running := 0
	for _, d := range days {
		running += counts[d]
		series = append(series, schema.DailyCount{Date: d, Count: counts[d], Cumulative: running})
	}
	return series, nil
}

// OutcomesPerDay groups the results of one team by calendar day, ascending.
func OutcomesPerDay(records []schema.MatchRecord, teamID string, loc *time.Location) ([]schema.DailyOutcome, error) {
	views, err := ComputeTeamResultView(records, teamID)
	if err != nil {
		return nil, err
	}
	return outcomesFromViews(views, loc), nil
}

// outcomesFromViews buckets an already computed result view by day.
func outcomesFromViews(views []schema.TeamResultView, loc *time.Location) []schema.DailyOutcome {
	byDay := make(map[time.Time]*schema.DailyOutcome)
	for _, v := range views {
		d := dayOf(v.Timestamp, loc)
		bucket, ok := byDay[d]
		if !ok {
			bucket = &schema.DailyOutcome{Date: d}
			byDay[d] = bucket
		}
		switch v.Outcome {
		case schema.OutcomeWin:
			bucket.Wins++
		case schema.OutcomeLoss:
			bucket.Losses++
		default:
			bucket.Draws++
		}
	}

	out := make([]schema.DailyOutcome, 0, len(byDay))
	for _, b := range byDay {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Teams returns every distinct team id sorted case-insensitively.
// Ids that differ only by case are ordered by their raw bytes.
func Teams(records []schema.MatchRecord) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[r.Home] = struct{}{}
		seen[r.Away] = struct{}{}
	}
	teams := make([]string, 0, len(seen))
	for id := range seen {
		teams = append(teams, id)
	}
	SortTeamIDs(teams)
	return teams
}

// SortTeamIDs sorts ids in place by case-folded value, then by raw value.
func SortTeamIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		return LessTeamID(ids[i], ids[j])
	})
}

// LessTeamID orders team ids case-insensitively with a deterministic tie-break.
func LessTeamID(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

// BuildTeamProfile composes everything shown for a single team.
// A team absent from the records gets an empty profile with HasData=false.
func BuildTeamProfile(records []schema.MatchRecord, teamID string, loc *time.Location) (schema.TeamProfile, error) {
	views, err := ComputeTeamResultView(records, teamID)
	if err != nil {
		return schema.TeamProfile{}, err
	}

	standing := schema.NewStanding(teamID)
	var since time.Time
	for _, v := range views {
		switch v.Outcome {
		case schema.OutcomeWin:
			standing.Wins++
		case schema.OutcomeLoss:
			standing.Losses++
		default:
			standing.Draws++
		}
		if since.IsZero() || v.Timestamp.Before(since) {
			since = v.Timestamp
		}
	}
	finalizeStanding(&standing)

	return schema.TeamProfile{
		Standing:       standing,
		Results:        views,
		Daily:          outcomesFromViews(views, loc),
		CompetingSince: since,
	}, nil
}

// dayOf truncates t to midnight of its calendar date in loc.
func dayOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// sortedDays returns the keys of a per-day map in ascending order.
func sortedDays[V any](m map[time.Time]V) []time.Time {
	days := make([]time.Time, 0, len(m))
	for d := range m {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})
	return days
}
