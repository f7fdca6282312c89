package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/soccerboard/internal/contract"
	"github.com/huangsam/soccerboard/schema"
)

// WriteCacheStatus writes cache status information to w.
func WriteCacheStatus(w io.Writer, status schema.CacheStatus, cfg *contract.Config) error {
	if cfg != nil && cfg.Output == schema.JSONOut {
		return writeJSON(w, status)
	}

	lines := []string{
		fmt.Sprintf("Cache Backend: %s", status.Backend),
		fmt.Sprintf("Connected: %t", status.Connected),
	}
	if status.Connected {
		lines = append(lines, fmt.Sprintf("Schema Version: %d", status.SchemaVersion))
		if status.SchemaDirty {
			lines = append(lines, "Schema Dirty: true")
		}
		lines = append(lines, fmt.Sprintf("Total Entries: %d", status.TotalEntries))
		if status.TotalEntries > 0 {
			lines = append(lines,
				fmt.Sprintf("Last Entry: %s", status.LastEntryTime.Format("2006-01-02 15:04:05")),
				fmt.Sprintf("Oldest Entry: %s", status.OldestEntryTime.Format("2006-01-02 15:04:05")),
			)
		}
		lines = append(lines, fmt.Sprintf("Table Size: %d bytes", status.TableSizeBytes))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
