package cmd

import (
	"github.com/huangsam/soccerboard/core"
	"github.com/huangsam/soccerboard/internal/contract"
	"github.com/huangsam/soccerboard/schema"
	"github.com/spf13/cobra"
)

// teamCmd prints one team's profile.
var teamCmd = &cobra.Command{
	Use:   "team <owner/model>",
	Short: "Show one team's record and match history, newest first.",
	Long: `Show a single team's wins, draws and losses followed by every match it
played, newest first. Outcomes are from the team's side.

Examples:
  # Full history
  soccerboard team ThomasSimonini/SoccerTwos

  # Last 20 matches as JSON
  soccerboard team ThomasSimonini/SoccerTwos --limit 20 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := schema.ValidateTeamID(cfg.TeamID); err != nil {
			contract.LogWarn("Unusual team id", err)
		}
		if err := core.ExecuteTeam(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot build team profile", err)
		}
	},
}
