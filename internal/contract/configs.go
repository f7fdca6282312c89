package contract

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/huangsam/soccerboard/schema"
)

// Default values for configuration.
const (
	DefaultSource      = "https://huggingface.co/datasets/huggingface-projects/bot-fight-data/raw/main/soccer_history.csv"
	DefaultCacheTTL    = "30 minutes"
	DefaultSeasonEnd   = "2023-04-30"
	DefaultTimezone    = "UTC"
	DefaultAddr        = ":8080"
	DefaultHTTPTimeout = "30s"
	DefaultResultLimit = 0 // Zero shows every row
	MaxResultLimit     = 10000
	DefaultPrecision   = 2
)

// DateFormat is the calendar date representation used for flags and output.
const DateFormat = time.DateOnly

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for every command.
// This struct is the "final, validated" config.
type Config struct {
	Source      string        // URL or local path of the match feed
	CacheTTL    time.Duration // How long a fetched feed stays fresh
	HTTPTimeout time.Duration

	SeasonEnd      time.Time
	ClampCountdown bool
	Location       *time.Location // Calendar used for per-day grouping and the countdown

	TeamID      string
	OwnerFilter string
	Sort        schema.SortMode
	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	Addr string // Listen address for the dashboard

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
	TargetVersion  int    // Migration target, -1 means latest

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	TeamArg string

	// --- Fields from rootCmd.PersistentFlags() ---
	Source         string `mapstructure:"source"`
	CacheTTL       string `mapstructure:"cache-ttl"`
	HTTPTimeout    string `mapstructure:"http-timeout"`
	SeasonEnd      string `mapstructure:"season-end"`
	ClampCountdown string `mapstructure:"clamp-countdown"`
	Timezone       string `mapstructure:"timezone"`
	OutputFile     string `mapstructure:"output-file"`
	Limit          int    `mapstructure:"limit"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	Width          int    `mapstructure:"width"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`

	// --- Fields from standingsCmd.Flags() ---
	Sort        string `mapstructure:"sort"`
	OwnerFilter string `mapstructure:"owner-filter"`

	// --- Fields from serveCmd.Flags() ---
	Addr string `mapstructure:"addr"`

	// --- Fields from cacheMigrateCmd.Flags() ---
	TargetVersion int `mapstructure:"target-version"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// CloneWithTeam returns a copy of the Config scoped to a single team.
func (c *Config) CloneWithTeam(teamID string) *Config {
	clone := c.Clone()
	clone.TeamID = teamID
	return clone
}

// Now returns the current time in the configured calendar location.
func (c *Config) Now() time.Time {
	if c.Location == nil {
		return time.Now().UTC()
	}
	return time.Now().In(c.Location)
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processSource(cfg, input); err != nil {
		return err
	}
	if err := processSeason(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the cache backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	backend := input.CacheBackend
	if backend == "" {
		backend = string(schema.SQLiteBackend)
	}
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(backend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	return ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect)
}

// validateSimpleInputs processes and validates all output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.OwnerFilter = strings.TrimSpace(input.OwnerFilter)
	cfg.TeamID = strings.TrimSpace(input.TeamArg)
	cfg.TargetVersion = input.TargetVersion
	cfg.Addr = input.Addr
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	// Parse emoji flag
	emojis, err := parseBoolDefault(input.Emoji, false)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := parseBoolDefault(input.Color, true)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 and %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Sort Validation ---
	sortMode := input.Sort
	if sortMode == "" {
		sortMode = string(schema.SortByTeam)
	}
	cfg.Sort = schema.SortMode(strings.ToLower(sortMode))
	if _, ok := schema.ValidSortModes[cfg.Sort]; !ok {
		return fmt.Errorf("invalid sort '%s'. must be team, winpct, wins, played", input.Sort)
	}

	// --- 3. Precision and Output Validation ---
	if input.Precision < 0 || input.Precision > 4 {
		return fmt.Errorf("precision must be between 0 and 4 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	output := input.Output
	if output == "" {
		output = string(schema.TextOut)
	}
	cfg.Output = schema.OutputMode(strings.ToLower(output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	return nil
}

// processSource validates the feed location and the fetch timings.
func processSource(cfg *Config, input *ConfigRawInput) error {
	cfg.Source = strings.TrimSpace(input.Source)
	if cfg.Source == "" {
		cfg.Source = DefaultSource
	}
	if strings.Contains(cfg.Source, "://") {
		u, err := url.Parse(cfg.Source)
		if err != nil {
			return fmt.Errorf("invalid source %q: %w", cfg.Source, err)
		}
		switch u.Scheme {
		case "http", "https", "file":
		default:
			return fmt.Errorf("unsupported source scheme %q. must be http, https, file or a local path", u.Scheme)
		}
	}

	ttl := input.CacheTTL
	if ttl == "" {
		ttl = DefaultCacheTTL
	}
	d, err := ParseLookbackDuration(ttl)
	if err != nil {
		return fmt.Errorf("invalid cache-ttl: %w", err)
	}
	cfg.CacheTTL = d

	timeout := input.HTTPTimeout
	if timeout == "" {
		timeout = DefaultHTTPTimeout
	}
	d, err = ParseLookbackDuration(timeout)
	if err != nil {
		return fmt.Errorf("invalid http-timeout: %w", err)
	}
	cfg.HTTPTimeout = d
	return nil
}

// processSeason resolves the calendar location and the season end date.
func processSeason(cfg *Config, input *ConfigRawInput) error {
	tz := input.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	cfg.Location = loc

	end := input.SeasonEnd
	if end == "" {
		end = DefaultSeasonEnd
	}
	seasonEnd, err := ParseDate(end, loc)
	if err != nil {
		return fmt.Errorf("invalid season-end: %w", err)
	}
	cfg.SeasonEnd = seasonEnd

	clamp, err := parseBoolDefault(input.ClampCountdown, true)
	if err != nil {
		return fmt.Errorf("invalid --clamp-countdown value: %w", err)
	}
	cfg.ClampCountdown = clamp
	return nil
}

// RevalidateQuery applies per-request overrides coming from the MCP tools
// and the dashboard API. Empty values keep the base config.
func RevalidateQuery(cfg *Config, sort string, limit int) error {
	if sort != "" {
		mode := schema.SortMode(strings.ToLower(strings.TrimSpace(sort)))
		if _, ok := schema.ValidSortModes[mode]; !ok {
			return fmt.Errorf("invalid sort '%s'. must be team, winpct, wins, played", sort)
		}
		cfg.Sort = mode
	}
	if limit < 0 || limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 and %d (received %d)", MaxResultLimit, limit)
	}
	if limit > 0 {
		cfg.ResultLimit = limit
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// parseBoolDefault is ParseBoolString with a fallback for unset values.
func parseBoolDefault(s string, fallback bool) (bool, error) {
	if strings.TrimSpace(s) == "" {
		return fallback, nil
	}
	return ParseBoolString(s)
}
