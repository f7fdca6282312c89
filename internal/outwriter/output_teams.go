package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/soccerboard/internal/contract"
	"github.com/huangsam/soccerboard/schema"
)

// WriteTeams writes the known team identifiers, one per line in text mode.
func WriteTeams(w io.Writer, teams []string, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if teams == nil {
			teams = []string{}
		}
		return writeJSON(w, teams)
	case schema.CSVOut:
		return writeCSVWithHeader(w, []string{"team_id", "owner", "team"}, func(cw *csv.Writer) error {
			for _, id := range teams {
				owner, team, _ := schema.ParseTeamID(id)
				if err := cw.Write([]string{id, owner, team}); err != nil {
					return err
				}
			}
			return nil
		})
	default:
		for _, id := range teams {
			if _, err := fmt.Fprintln(w, id); err != nil {
				return err
			}
		}
		return nil
	}
}
