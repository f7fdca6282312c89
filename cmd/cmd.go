// Package cmd defines the command-line interface for soccerboard.
package cmd

import (
	"github.com/huangsam/soccerboard/internal/contract"
	"github.com/huangsam/soccerboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(competitionCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	flags := rootCmd.PersistentFlags()
	flags.String("source", contract.DefaultSource, "URL or local path of the match history CSV")
	flags.String("cache-ttl", contract.DefaultCacheTTL, "How long a fetched feed is reused (e.g. '30 minutes', '2h', '0s' to always refetch)")
	flags.String("http-timeout", contract.DefaultHTTPTimeout, "Timeout for downloading the feed")
	flags.String("season-end", contract.DefaultSeasonEnd, "Last day of the season (YYYY-MM-DD)")
	flags.String("clamp-countdown", "yes", "Show zero days left once the season is over (yes/no)")
	flags.String("timezone", contract.DefaultTimezone, "IANA time zone used to group matches by day")
	flags.String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	flags.String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	flags.String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	flags.String("output-file", "", "Optional path to write output to")
	flags.Int("precision", contract.DefaultPrecision, "Decimal precision for win rates")
	flags.Int("width", 0, "Terminal width override (0 = auto-detect)")
	flags.String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	flags.String("emoji", "no", "Enable emojis in headers (yes/no/true/false/1/0)")
	flags.String("owner-filter", "", "Only keep teams whose owner contains this text (case-insensitive)")
	flags.IntP("limit", "l", contract.DefaultResultLimit, "Number of rows to display (0 = all)")
	flags.String("profile", "", "Enable profiling and write profiles to files with this prefix")
	flags.String("config", "", "Path to config file")
	if err := viper.BindPFlags(flags); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of standingsCmd to Viper
	standingsCmd.Flags().String("sort", string(schema.SortByTeam), "Sort order: team or winpct or wins or played")
	if err := viper.BindPFlags(standingsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding standings flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultAddr, "Listen address for the dashboard")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of cacheMigrateCmd to Viper
	cacheMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(cacheMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding cache migrate flags", err)
	}
}
