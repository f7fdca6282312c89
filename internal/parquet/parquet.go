// Package parquet provides data structures and functions for exporting soccerboard
// aggregates to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/soccerboard/schema"
	"github.com/parquet-go/parquet-go"
)

// StandingRow is one team's line in the league table.
type StandingRow struct {
	Rank   int32  `parquet:"rank,snappy"`
	TeamID string `parquet:"team_id,snappy"`
	Owner  string `parquet:"owner,snappy"`

	// Team is null when the identifier has no separator
	Team *string `parquet:"team,optional,snappy"`

	Wins   int32 `parquet:"wins,snappy"`
	Draws  int32 `parquet:"draws,snappy"`
	Losses int32 `parquet:"losses,snappy"`
	Played int32 `parquet:"played,snappy"`

	// WinPct is null when the team has not played
	WinPct *float64 `parquet:"win_pct,optional,snappy"`
}

// TeamResultRow is one match from a single team's point of view.
type TeamResultRow struct {
	TeamID        string    `parquet:"team_id,snappy"`
	Opponent      string    `parquet:"opponent,snappy"`
	OpponentOwner string    `parquet:"opponent_owner,snappy"`
	OpponentTeam  *string   `parquet:"opponent_team,optional,snappy"`
	Outcome       string    `parquet:"outcome,snappy,dict"`
	Home          bool      `parquet:"home,snappy"`
	PlayedAt      time.Time `parquet:"played_at,snappy"`
}

// DailyCountRow is one day of the cumulative match series.
type DailyCountRow struct {
	Date       time.Time `parquet:"date,snappy"`
	Count      int32     `parquet:"count,snappy"`
	Cumulative int32     `parquet:"cumulative,snappy"`
}

// optionalString maps an empty string to a null column value.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StandingRows converts ranked standings into Parquet rows.
func StandingRows(standings []schema.TeamStanding) []StandingRow {
	rows := make([]StandingRow, len(standings))
	for i, s := range standings {
		row := StandingRow{
			Rank:   int32(i + 1),
			TeamID: s.TeamID,
			Owner:  s.Owner,
			Team:   optionalString(s.Team),
			Wins:   int32(s.Wins),
			Draws:  int32(s.Draws),
			Losses: int32(s.Losses),
			Played: int32(s.Played),
		}
		if s.HasData {
			pct := s.WinPct
			row.WinPct = &pct
		}
		rows[i] = row
	}
	return rows
}

// TeamResultRows converts a team's result view into Parquet rows.
func TeamResultRows(teamID string, views []schema.TeamResultView) []TeamResultRow {
	rows := make([]TeamResultRow, len(views))
	for i, v := range views {
		rows[i] = TeamResultRow{
			TeamID:        teamID,
			Opponent:      v.Opponent,
			OpponentOwner: v.OpponentOwner,
			OpponentTeam:  optionalString(v.OpponentTeam),
			Outcome:       string(v.Outcome),
			Home:          v.Home,
			PlayedAt:      v.Timestamp.UTC(),
		}
	}
	return rows
}

// DailyCountRows converts the per-day series into Parquet rows.
func DailyCountRows(series []schema.DailyCount) []DailyCountRow {
	rows := make([]DailyCountRow, len(series))
	for i, d := range series {
		rows[i] = DailyCountRow{
			Date:       d.Date.UTC(),
			Count:      int32(d.Count),
			Cumulative: int32(d.Cumulative),
		}
	}
	return rows
}

// WriteStandingsParquet writes standings rows to a Parquet file.
func WriteStandingsParquet(data []StandingRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteTeamResultsParquet writes team result rows to a Parquet file.
func WriteTeamResultsParquet(data []TeamResultRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteDailyCountsParquet writes daily count rows to a Parquet file.
func WriteDailyCountsParquet(data []DailyCountRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet creates outputPath and writes rows using the schema inferred from T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	// Close flushes the footer, so its error matters
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
