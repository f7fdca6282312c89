package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/soccerboard/internal/contract"
	"github.com/huangsam/soccerboard/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteStandings writes the league table to w, dispatching on the configured output format.
func WriteStandings(w io.Writer, standings []schema.TeamStanding, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeStandingsJSON(w, standings); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeStandingsCSV(w, standings, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeStandingsTable(w, standings, cfg, fmtFloat, intFmt)
	}
	return nil
}

// writeStandingsTable generates and writes the human-readable table.
func writeStandingsTable(w io.Writer, standings []schema.TeamStanding, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Owner", "Team", "W", "D", "L", "Win%"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	var wins, draws, losses int
	for i, s := range standings {
		winPct := "n/a"
		if s.HasData {
			winPct = fmtFloat(s.WinPct)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			truncateName(s.Owner, cfg),
			truncateName(s.Team, cfg),
			fmt.Sprintf(intFmt, s.Wins),
			fmt.Sprintf(intFmt, s.Draws),
			fmt.Sprintf(intFmt, s.Losses),
			winPct,
		})
		wins += s.Wins
		draws += s.Draws
		losses += s.Losses
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d teams (wins: %d, draws: %d, losses: %d). Sorted by %s\n",
		len(standings), wins, draws, losses, cfg.Sort)
	return err
}

// writeStandingsCSV writes the standings in CSV format.
func writeStandingsCSV(w io.Writer, standings []schema.TeamStanding, fmtFloat func(float64) string, intFmt string) error {
	header := []string{"rank", "team_id", "owner", "team", "wins", "draws", "losses", "played", "win_pct"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, s := range standings {
			winPct := ""
			if s.HasData {
				winPct = fmtFloat(s.WinPct)
			}
			rec := []string{
				strconv.Itoa(i + 1),
				s.TeamID,
				s.Owner,
				s.Team,
				fmt.Sprintf(intFmt, s.Wins),
				fmt.Sprintf(intFmt, s.Draws),
				fmt.Sprintf(intFmt, s.Losses),
				fmt.Sprintf(intFmt, s.Played),
				winPct,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeStandingsJSON writes the standings as a JSON array with rank added.
func writeStandingsJSON(w io.Writer, standings []schema.TeamStanding) error {
	type JSONStanding struct {
		Rank int `json:"rank"`
		schema.TeamStanding
	}

	output := make([]JSONStanding, len(standings))
	for i, s := range standings {
		output[i] = JSONStanding{Rank: i + 1, TeamStanding: s}
	}
	return writeJSON(w, output)
}
