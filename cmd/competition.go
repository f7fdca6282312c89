package cmd

import (
	"github.com/huangsam/soccerboard/core"
	"github.com/huangsam/soccerboard/internal/contract"
	"github.com/spf13/cobra"
)

// competitionCmd prints headline stats and the cumulative matches per day.
var competitionCmd = &cobra.Command{
	Use:   "competition",
	Short: "Show total matches, live models, the season countdown and matches per day.",
	Long: `Summarize the whole competition.

Prints the number of matches played, the number of distinct models, the
days left until --season-end and the cumulative number of matches per day.
Days are grouped in --timezone.

Examples:
  soccerboard competition
  soccerboard competition --season-end 2023-06-30 --timezone Europe/Paris
  soccerboard competition --output parquet --output-file daily.parquet`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompetition(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot summarize competition", err)
		}
	},
}
