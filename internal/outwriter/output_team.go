package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/soccerboard/internal/contract"
	"github.com/huangsam/soccerboard/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteTeamProfile writes one team's metrics and results to w.
func WriteTeamProfile(w io.Writer, profile schema.TeamProfile, cfg *contract.Config, now time.Time) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, profile); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeTeamResultsCSV(w, profile); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeTeamProfileText(w, profile, cfg, now)
	}
	return nil
}

// outcomeLabel picks the colored or plain outcome depending on --color.
func outcomeLabel(o schema.Outcome, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorOutcome(o)
	}
	return contract.GetPlainOutcome(o)
}

// sideLabel names the side the team played on.
func sideLabel(home bool) string {
	if home {
		return "home"
	}
	return "away"
}

func writeTeamProfileText(w io.Writer, profile schema.TeamProfile, cfg *contract.Config, now time.Time) error {
	s := profile.Standing
	team := s.Team
	if team == "" {
		team = "-"
	}

	title := s.TeamID
	if cfg.UseColors {
		title = contract.MetaColor.Sprint(title)
	}

	lines := []string{
		fmt.Sprintf("Team: %s (owner: %s, model: %s)", title, s.Owner, team),
		fmt.Sprintf("Wins: %d  Draws: %d  Losses: %d  Win rate: %s",
			s.Wins, s.Draws, s.Losses, contract.GetWinPctLabel(s, cfg.Precision)),
		fmt.Sprintf("Competing since: %s", contract.FormatTimeAgo(profile.CompetingSince, now)),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if len(profile.Results) == 0 {
		_, err := fmt.Fprintln(w, "No matches played.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Opponent Owner", "Opponent Team", "Side", "Outcome", "Played"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, r := range profile.Results {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			truncateName(r.OpponentOwner, cfg),
			truncateName(r.OpponentTeam, cfg),
			sideLabel(r.Home),
			outcomeLabel(r.Outcome, cfg),
			contract.FormatTimeAgo(r.Timestamp, now),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d of %d matches\n", len(profile.Results), s.Played)
	return err
}

// writeTeamResultsCSV writes the team's result stream in CSV format.
func writeTeamResultsCSV(w io.Writer, profile schema.TeamProfile) error {
	header := []string{"team_id", "opponent", "opponent_owner", "opponent_team", "side", "outcome", "timestamp"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range profile.Results {
			rec := []string{
				profile.Standing.TeamID,
				r.Opponent,
				r.OpponentOwner,
				r.OpponentTeam,
				sideLabel(r.Home),
				contract.GetPlainOutcome(r.Outcome),
				r.Timestamp.Format(contract.DateTimeFormat),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
