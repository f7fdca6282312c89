package cmd

import (
	"github.com/huangsam/soccerboard/core"
	"github.com/huangsam/soccerboard/internal/contract"
	"github.com/spf13/cobra"
)

// standingsCmd prints the league table.
var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show wins, draws, losses and win rate for every team.",
	Long: `Compute the league table from the full match history.

Every team that appears as home or away gets a row. Teams that never
finished a match show "n/a" as win rate.

Examples:
  # Whole table ordered by team id
  soccerboard standings

  # Top 10 by win rate
  soccerboard standings --sort winpct --limit 10

  # Only models from one owner, as CSV
  soccerboard standings --owner-filter ThomasSimonini --output csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStandings(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot compute standings", err)
		}
	},
}
