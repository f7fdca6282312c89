// Package core has core logic for loading the match feed and building every view.
package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/soccerboard/core/agg"
	"github.com/huangsam/soccerboard/core/algo"
	"github.com/huangsam/soccerboard/internal/contract"
	"github.com/huangsam/soccerboard/internal/outwriter"
	"github.com/huangsam/soccerboard/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ErrTeamRequired is returned when a team view is requested without a team identifier.
var ErrTeamRequired = errors.New("team identifier is required")

// loadRecords fetches the feed through the cache and prints the run header.
func loadRecords(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.MatchRecord, bool, error) {
	records, cached, err := LoadMatches(ctx, cfg, mgr, matchSourceFrom(ctx, cfg))
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", cfg.Source, err)
	}
	if !shouldSuppressHeader(ctx) {
		outwriter.NewOutWriter().Header(cfg, cached)
	}
	return records, cached, nil
}

// GetStandingsResults returns the ranked standings after owner filtering and limiting.
func GetStandingsResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.TeamStanding, bool, error) {
	records, cached, err := loadRecords(ctx, cfg, mgr)
	if err != nil {
		return nil, cached, err
	}
	standings, err := agg.ComputeStandings(records)
	if err != nil {
		return nil, cached, err
	}
	filtered := algo.FilterByOwner(standings, cfg.OwnerFilter)
	return algo.RankStandings(filtered, cfg.Sort, cfg.ResultLimit), cached, nil
}

// GetTeamProfileResults returns the profile of cfg.TeamID.
// An unknown team yields an empty profile rather than an error.
func GetTeamProfileResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.TeamProfile, bool, error) {
	if cfg.TeamID == "" {
		return schema.TeamProfile{}, false, ErrTeamRequired
	}
	records, cached, err := loadRecords(ctx, cfg, mgr)
	if err != nil {
		return schema.TeamProfile{}, cached, err
	}
	profile, err := agg.BuildTeamProfile(records, cfg.TeamID, cfg.Location)
	if err != nil {
		return schema.TeamProfile{}, cached, err
	}
	profile.Results = algo.LimitResults(profile.Results, cfg.ResultLimit)
	return profile, cached, nil
}

// GetCompetitionResults returns the headline summary and the cumulative per-day series.
func GetCompetitionResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.CompetitionView, bool, error) {
	records, cached, err := loadRecords(ctx, cfg, mgr)
	if err != nil {
		return schema.CompetitionView{}, cached, err
	}
	summary, err := agg.Summarize(records, cfg.Now(), cfg.SeasonEnd, cfg.ClampCountdown)
	if err != nil {
		return schema.CompetitionView{}, cached, err
	}
	series, err := agg.MatchesPerDay(records, cfg.Location)
	if err != nil {
		return schema.CompetitionView{}, cached, err
	}
	return schema.CompetitionView{Summary: summary, Series: series}, cached, nil
}

// GetTeamsResults returns every team identifier in the feed, optionally filtered by owner.
func GetTeamsResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]string, bool, error) {
	records, cached, err := loadRecords(ctx, cfg, mgr)
	if err != nil {
		return nil, cached, err
	}
	if cfg.OwnerFilter == "" {
		return agg.Teams(records), cached, nil
	}
	standings, err := agg.ComputeStandings(records)
	if err != nil {
		return nil, cached, err
	}
	filtered := algo.FilterByOwner(standings, cfg.OwnerFilter)
	teams := make([]string, 0, len(filtered))
	for id := range filtered {
		teams = append(teams, id)
	}
	agg.SortTeamIDs(teams)
	return teams, cached, nil
}

// ExecuteStandings prints the league table.
// It serves as the main entry point for the 'standings' command.
func ExecuteStandings(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	standings, _, err := GetStandingsResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteStandings(standings, cfg)
}

// ExecuteTeam prints the profile of a single team.
func ExecuteTeam(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	profile, _, err := GetTeamProfileResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteTeamProfile(profile, cfg, cfg.Now())
}

// ExecuteCompetition prints the competition summary and daily series.
func ExecuteCompetition(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	view, _, err := GetCompetitionResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteCompetition(view.Summary, view.Series, cfg)
}

// ExecuteTeams prints every team identifier.
func ExecuteTeams(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	teams, _, err := GetTeamsResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteTeams(teams, cfg)
}
