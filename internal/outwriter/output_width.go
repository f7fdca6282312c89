package outwriter

import (
	"os"

	"github.com/huangsam/soccerboard/internal/contract"
	"golang.org/x/term"
)

// Bounds for the owner and team name columns.
const (
	minNameWidth = 10
	maxNameWidth = 40
)

// terminalWidth returns the --width override, the detected terminal width or 80.
func terminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// getMaxTableNameWidth calculates how wide each of the two name columns may be
// given the terminal width and the fixed numeric columns around them.
func getMaxTableNameWidth(cfg *contract.Config) int {
	// Rank + W + D + L + Win% with borders and padding
	fixed := 45

	available := (terminalWidth(cfg) - fixed) / 2
	if available < minNameWidth {
		return minNameWidth
	}
	if available > maxNameWidth {
		return maxNameWidth
	}
	return available
}

// truncateName shortens long names so tables stay within the terminal.
func truncateName(name string, cfg *contract.Config) string {
	return contract.TruncatePath(name, getMaxTableNameWidth(cfg))
}
