package outwriter

import (
	"os"

	"github.com/streampulse/pulse/internal/contract"
	"golang.org/x/term"
)

// GetMaxCategoryWidth calculates the maximum width for category names in table output
// based on terminal width and the fixed columns around them.
func GetMaxCategoryWidth(cfg *contract.Config, fixedColumns int) int {
	termWidth := cfg.Width

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Each fixed column takes roughly 14 cells with borders and padding
	available := termWidth - fixedColumns*14 - 4
	if available < 12 {
		return 12
	}
	if available > 48 {
		return 48
	}
	return available
}
