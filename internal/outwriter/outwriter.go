// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/soccerboard/internal/contract"
	"github.com/huangsam/soccerboard/internal/parquet"
	"github.com/huangsam/soccerboard/schema"
)

// OutWriter provides a unified interface for all output operations.
// It resolves the destination (stdout or --output-file) and dispatches on format.
type OutWriter struct {
	stdout io.Writer
	stderr io.Writer
}

// NewOutWriter creates a new instance of the output writer bound to the process streams.
func NewOutWriter() *OutWriter {
	return &OutWriter{stdout: os.Stdout, stderr: os.Stderr}
}

// NewOutWriterTo creates an output writer that uses the given streams instead of stdout/stderr.
func NewOutWriterTo(stdout, stderr io.Writer) *OutWriter {
	return &OutWriter{stdout: stdout, stderr: stderr}
}

// WriteStandings prints the league table using the configured output format.
func (ow *OutWriter) WriteStandings(standings []schema.TeamStanding, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return ow.writeParquet(cfg.OutputFile, "standings", func() error {
			return parquet.WriteStandingsParquet(parquet.StandingRows(standings), cfg.OutputFile)
		})
	}
	return ow.writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteStandings(w, standings, cfg)
	}, "Wrote standings")
}

// WriteTeamProfile prints a single team's profile using the configured output format.
func (ow *OutWriter) WriteTeamProfile(profile schema.TeamProfile, cfg *contract.Config, now time.Time) error {
	if cfg.Output == schema.ParquetOut {
		return ow.writeParquet(cfg.OutputFile, "team results", func() error {
			return parquet.WriteTeamResultsParquet(parquet.TeamResultRows(profile.Standing.TeamID, profile.Results), cfg.OutputFile)
		})
	}
	return ow.writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteTeamProfile(w, profile, cfg, now)
	}, "Wrote team profile")
}

// WriteCompetition prints the competition summary and daily series using the configured output format.
func (ow *OutWriter) WriteCompetition(summary schema.CompetitionSummary, series []schema.DailyCount, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return ow.writeParquet(cfg.OutputFile, "daily counts", func() error {
			return parquet.WriteDailyCountsParquet(parquet.DailyCountRows(series), cfg.OutputFile)
		})
	}
	return ow.writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteCompetition(w, summary, series, cfg)
	}, "Wrote competition summary")
}

// WriteTeams prints the list of team identifiers.
func (ow *OutWriter) WriteTeams(teams []string, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return fmt.Errorf("parquet output is not supported for the team list")
	}
	return ow.writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteTeams(w, teams, cfg)
	}, "Wrote team list")
}

// WriteCacheStatus prints cache status information to stdout.
func (ow *OutWriter) WriteCacheStatus(status schema.CacheStatus, cfg *contract.Config) error {
	return WriteCacheStatus(ow.stdout, status, cfg)
}

// Header prints the run header to stderr unless suppressed.
func (ow *OutWriter) Header(cfg *contract.Config, cached bool) {
	writeHeader(ow.stderr, cfg, cached)
}
