package cmd

import (
	"github.com/huangsam/soccerboard/core"
	"github.com/huangsam/soccerboard/internal/contract"
	"github.com/spf13/cobra"
)

// teamsCmd lists team identifiers.
var teamsCmd = &cobra.Command{
	Use:     "teams",
	Short:   "List every team id in the match history.",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTeams(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot list teams", err)
		}
	},
}
