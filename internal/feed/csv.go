package feed

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/soccerboard/schema"
)

// Columns lists the canonical feed columns in the order they must appear.
var Columns = []string{"home", "away", "timestamp", "result"}

// columnAliases maps each canonical column to the header names accepted for it.
var columnAliases = map[string][]string{
	"home":      {"home", "home_team", "hometeam"},
	"away":      {"away", "away_team", "awayteam"},
	"timestamp": {"timestamp", "time", "ts"},
	"result":    {"result", "score", "outcome"},
}

// ParseCSVBytes is ParseCSV over an in-memory feed.
func ParseCSVBytes(data []byte) ([]schema.MatchRecord, error) {
	return ParseCSV(bytes.NewReader(data))
}

// ParseCSV reads a match history feed and validates its schema explicitly:
// exactly four columns named home, away, timestamp, result in that order.
// An empty body or a header without rows yields no records and no error.
func ParseCSV(r io.Reader) ([]schema.MatchRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Counted below to report friendlier errors
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []schema.MatchRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable header: %v", schema.ErrSchemaMismatch, err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	records := make([]schema.MatchRecord, 0)
	for row := 1; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &schema.RecordError{Row: row, Err: fmt.Errorf("%w: %v", schema.ErrSchemaMismatch, err)}
		}
		if len(fields) != len(Columns) {
			return nil, &schema.RecordError{
				Row: row,
				Err: fmt.Errorf("%w: expected %d fields, got %d", schema.ErrSchemaMismatch, len(Columns), len(fields)),
			}
		}
		rec, err := parseRecord(row, fields)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// validateHeader checks column count, names and order.
func validateHeader(header []string) error {
	if len(header) != len(Columns) {
		return fmt.Errorf("%w: expected %d columns (%s), got %d (%s)",
			schema.ErrSchemaMismatch, len(Columns), strings.Join(Columns, ","), len(header), strings.Join(header, ","))
	}
	for i, want := range Columns {
		got := normalizeHeader(header[i])
		if !isAlias(want, got) {
			return fmt.Errorf("%w: column %d must be %q, got %q", schema.ErrSchemaMismatch, i+1, want, header[i])
		}
	}
	return nil
}

// normalizeHeader lowercases a header cell and strips a UTF-8 BOM and spaces.
func normalizeHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.ToLower(strings.TrimSpace(s))
}

// isAlias reports whether got is an accepted name for the canonical column.
func isAlias(column, got string) bool {
	for _, alias := range columnAliases[column] {
		if got == alias {
			return true
		}
	}
	return false
}

// parseRecord converts one CSV row into a MatchRecord.
func parseRecord(row int, fields []string) (schema.MatchRecord, error) {
	home := strings.TrimSpace(fields[0])
	away := strings.TrimSpace(fields[1])
	if home == "" {
		return schema.MatchRecord{}, &schema.RecordError{Row: row, Field: "home", Value: fields[0], Err: schema.ErrMalformedRecord}
	}
	if away == "" {
		return schema.MatchRecord{}, &schema.RecordError{Row: row, Field: "away", Value: fields[1], Err: schema.ErrMalformedRecord}
	}

	ts, err := ParseUnixSeconds(fields[2])
	if err != nil {
		return schema.MatchRecord{}, &schema.RecordError{Row: row, Field: "timestamp", Value: fields[2], Err: schema.ErrInvalidTimestamp}
	}

	code, err := ParseResultCode(fields[3])
	if err != nil {
		return schema.MatchRecord{}, &schema.RecordError{Row: row, Field: "result", Value: fields[3], Err: schema.ErrInvalidResultCode}
	}

	return schema.MatchRecord{Home: home, Away: away, Timestamp: ts, Result: code, Row: row}, nil
}

// Timestamps must land in years 0 through 9999 so they survive JSON encoding.
var (
	minUnixSeconds = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxUnixSeconds = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC).Unix()
)

// ParseUnixSeconds parses an integer or fractional count of seconds since the epoch.
func ParseUnixSeconds(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < minUnixSeconds || n > maxUnixSeconds {
			return time.Time{}, fmt.Errorf("unix timestamp out of range: %q", s)
		}
		return time.Unix(n, 0).UTC(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, fmt.Errorf("not a unix timestamp: %q", s)
	}
	if f < float64(minUnixSeconds) || f > float64(maxUnixSeconds) {
		return time.Time{}, fmt.Errorf("unix timestamp out of range: %q", s)
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC(), nil
}

// ParseResultCode parses the numeric result and rejects anything outside {0, 0.5, 1}.
func ParseResultCode(s string) (schema.ResultCode, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not numeric: %q", s)
	}
	code := schema.ResultCode(f)
	if !code.Valid() {
		return 0, fmt.Errorf("unknown result code %v", f)
	}
	return code, nil
}
