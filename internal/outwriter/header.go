package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/soccerboard/internal/contract"
)

// writeHeader prints a concise, 2-line header describing where the data came from.
func writeHeader(w io.Writer, cfg *contract.Config, cached bool) {
	origin := "fetched"
	if cached {
		origin = "cached"
	}
	source := contract.TruncatePath(cfg.Source, 60)
	seasonEnd := cfg.SeasonEnd.Format(contract.DateFormat)

	if cfg.UseEmojis {
		_, _ = fmt.Fprintf(w, "⚽ Source: %s (%s)\n", source, origin)
		_, _ = fmt.Fprintf(w, "📅 Season ends: %s (%s)\n", seasonEnd, cfg.Location)
		return
	}
	_, _ = fmt.Fprintf(w, "Source: %s (%s)\n", source, origin)
	_, _ = fmt.Fprintf(w, "Season ends: %s (%s)\n", seasonEnd, cfg.Location)
}
