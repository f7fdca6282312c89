package schema

import "math"

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string

	// SortMode represents how standings are ordered.
	SortMode string

	// Outcome is a match result from one team's perspective.
	Outcome string
)

// ResultCode is the numeric match result as encoded by the source feed.
type ResultCode float64

// All result codes supported.
const (
	AwayWin ResultCode = 0
	Draw    ResultCode = 0.5
	HomeWin ResultCode = 1
)

// Valid reports whether the code is one of the three recognized results.
func (r ResultCode) Valid() bool {
	f := float64(r)
	if math.IsNaN(f) {
		return false
	}
	return r == AwayWin || r == Draw || r == HomeWin
}

// Decisive reports whether the code is a win for either side.
func (r ResultCode) Decisive() bool {
	return r == HomeWin || r == AwayWin
}

// All outcomes supported.
const (
	OutcomeWin  Outcome = "Win"
	OutcomeDraw Outcome = "Draw"
	OutcomeLoss Outcome = "Loss"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All sort modes supported.
const (
	SortByTeam   SortMode = "team" // default
	SortByWinPct SortMode = "winpct"
	SortByWins   SortMode = "wins"
	SortByPlayed SortMode = "played"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid cache backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidSortModes lists all valid sort modes.
var ValidSortModes = map[SortMode]struct{}{
	SortByTeam:   {},
	SortByWinPct: {},
	SortByWins:   {},
	SortByPlayed: {},
}

// AllSortModes returns the sort modes in display order.
var AllSortModes = []SortMode{SortByTeam, SortByWinPct, SortByWins, SortByPlayed}
