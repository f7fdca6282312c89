package schema

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the feed parser and the aggregator.
var (
	ErrInvalidResultCode   = errors.New("invalid result code")
	ErrMalformedIdentifier = errors.New("malformed team identifier")
	ErrSchemaMismatch      = errors.New("feed schema mismatch")
	ErrInvalidTimestamp    = errors.New("invalid timestamp")
	ErrMalformedRecord     = errors.New("malformed match record")
	ErrSourceUnavailable   = errors.New("match source unavailable")
)

// RecordError pinpoints a problem with a single record of the feed.
type RecordError struct {
	Row   int    // 1-based data row, 0 when unknown
	Field string // Column name or field that failed
	Value string // Offending raw value
	Err   error  // One of the sentinel errors above
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	switch {
	case e.Row > 0 && e.Field != "":
		return fmt.Sprintf("row %d: %s %q: %v", e.Row, e.Field, e.Value, e.Err)
	case e.Row > 0:
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
	default:
		return e.Err.Error()
	}
}

// Unwrap exposes the sentinel error for errors.Is.
func (e *RecordError) Unwrap() error {
	return e.Err
}
