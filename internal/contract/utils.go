package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/soccerboard/schema"
)

// Color variables for console output.
var (
	WinColor  = color.New(color.FgGreen, color.Bold) // WinColor marks a won match.
	DrawColor = color.New(color.FgYellow)            // DrawColor marks a drawn match, not bold.
	LossColor = color.New(color.FgRed)               // LossColor marks a lost match.
	MetaColor = color.New(color.FgCyan)              // MetaColor is used for informational labels.
)

// GetPlainOutcome returns the outcome text used for CSV, JSON and uncolored tables.
func GetPlainOutcome(o schema.Outcome) string {
	return string(o)
}

// GetColorOutcome returns a colored outcome label for console output (table).
func GetColorOutcome(o schema.Outcome) string {
	text := GetPlainOutcome(o)

	switch o {
	case schema.OutcomeWin:
		return WinColor.Sprint(text)
	case schema.OutcomeDraw:
		return DrawColor.Sprint(text)
	case schema.OutcomeLoss:
		return LossColor.Sprint(text)
	default:
		return text
	}
}

// GetWinPctLabel returns a plain label describing a win rate, or "n/a" when no matches were played.
func GetWinPctLabel(s schema.TeamStanding, precision int) string {
	if !s.HasData {
		return "n/a"
	}
	return fmt.Sprintf("%.*f%%", precision, s.WinPct)
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// LogInfo logs an informational message to stderr so stdout stays machine readable.
func LogInfo(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".soccerboard_cache.db"
	}
	return filepath.Join(homeDir, ".soccerboard_cache.db")
}

// TruncatePath truncates a string to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and at least one character of content.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
