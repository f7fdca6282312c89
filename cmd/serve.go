package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/soccerboard/internal/web"
	"github.com/spf13/cobra"
)

// serveCmd runs the browser dashboard.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the standings dashboard and JSON API over HTTP.",
	Long: `Start a local web dashboard.

Pages:
  /              standings table
  /team/<id>     team profile with per-day results chart
  /competition   headline stats with cumulative matches chart

API:
  /api/standings, /api/teams, /api/teams/<id>/results, /api/competition

Every request reads the feed through the cache, so --cache-ttl decides
how fresh the numbers are.

Examples:
  soccerboard serve --addr :8080`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return web.NewServer(cfg, cacheManager).ListenAndServe(ctx)
	},
}
