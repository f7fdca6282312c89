// Package algo has ordering and selection logic for computed standings.
package algo

import (
	"sort"
	"strings"

	"github.com/huangsam/soccerboard/core/agg"
	"github.com/huangsam/soccerboard/schema"
)

// RankStandings flattens the standings map and orders it by mode, then
// returns the top 'limit' teams. A limit of zero or less keeps every team.
// Ties always fall back to the case-insensitive team id.
func RankStandings(standings map[string]schema.TeamStanding, mode schema.SortMode, limit int) []schema.TeamStanding {
	list := make([]schema.TeamStanding, 0, len(standings))
	for _, s := range standings {
		list = append(list, s)
	}

	byTeam := func(i, j int) bool { return agg.LessTeamID(list[i].TeamID, list[j].TeamID) }
	switch mode {
	case schema.SortByWinPct:
		sort.Slice(list, func(i, j int) bool {
			if list[i].WinPct != list[j].WinPct {
				return list[i].WinPct > list[j].WinPct
			}
			if list[i].Wins != list[j].Wins {
				return list[i].Wins > list[j].Wins
			}
			return byTeam(i, j)
		})
	case schema.SortByWins:
		sort.Slice(list, func(i, j int) bool {
			if list[i].Wins != list[j].Wins {
				return list[i].Wins > list[j].Wins
			}
			return byTeam(i, j)
		})
	case schema.SortByPlayed:
		sort.Slice(list, func(i, j int) bool {
			if list[i].Played != list[j].Played {
				return list[i].Played > list[j].Played
			}
			return byTeam(i, j)
		})
	default:
		sort.Slice(list, byTeam)
	}

	if limit > 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}

// FilterByOwner keeps standings whose owner contains the given text, ignoring case.
// An empty filter returns the input unchanged.
func FilterByOwner(standings map[string]schema.TeamStanding, filter string) map[string]schema.TeamStanding {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return standings
	}
	out := make(map[string]schema.TeamStanding)
	for id, s := range standings {
		if strings.Contains(strings.ToLower(s.Owner), filter) {
			out[id] = s
		}
	}
	return out
}

// LimitResults trims a result view to the newest 'limit' matches.
func LimitResults(views []schema.TeamResultView, limit int) []schema.TeamResultView {
	if limit > 0 && len(views) > limit {
		return views[:limit]
	}
	return views
}
