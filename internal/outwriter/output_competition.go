package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/soccerboard/internal/contract"
	"github.com/huangsam/soccerboard/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteCompetition writes the competition summary and per-day series to w.
func WriteCompetition(w io.Writer, summary schema.CompetitionSummary, series []schema.DailyCount, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if series == nil {
			series = []schema.DailyCount{}
		}
		if err := writeJSON(w, schema.CompetitionView{Summary: summary, Series: series}); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeDailyCountsCSV(w, series); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeCompetitionText(w, summary, series)
	}
	return nil
}

// CountdownLabel renders the season countdown.
func CountdownLabel(summary schema.CompetitionSummary) string {
	switch {
	case summary.SeasonEnded && summary.DaysLeft < 0:
		return fmt.Sprintf("season ended %d days ago", -summary.DaysLeft)
	case summary.SeasonEnded:
		return "season ended"
	case summary.DaysLeft == 0:
		return "season ends today"
	case summary.DaysLeft == 1:
		return "season ends in 1 day"
	default:
		return fmt.Sprintf("season ends in %d days", summary.DaysLeft)
	}
}

func writeCompetitionText(w io.Writer, summary schema.CompetitionSummary, series []schema.DailyCount) error {
	if _, err := fmt.Fprintf(w, "Matches played: %d | Live models: %d | %s\n",
		summary.TotalMatches, summary.DistinctTeams, CountdownLabel(summary)); err != nil {
		return err
	}
	if len(series) == 0 {
		_, err := fmt.Fprintln(w, "No matches played.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Date", "Matches", "Cumulative"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(series))
	for _, d := range series {
		data = append(data, []string{
			d.Date.Format(contract.DateFormat),
			fmt.Sprintf("%d", d.Count),
			fmt.Sprintf("%d", d.Cumulative),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeDailyCountsCSV writes the per-day series in CSV format.
func writeDailyCountsCSV(w io.Writer, series []schema.DailyCount) error {
	header := []string{"date", "count", "cumulative"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, d := range series {
			rec := []string{
				d.Date.Format(contract.DateFormat),
				fmt.Sprintf("%d", d.Count),
				fmt.Sprintf("%d", d.Cumulative),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
