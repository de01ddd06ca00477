package outwriter

import (
	"os"

	"github.com/huangsam/metricviz/internal/contract"
	"golang.org/x/term"
)

// getMaxTableLabelWidth calculates the maximum width for labels in table output
// based on terminal width.
func getMaxTableLabelWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Index + Value + Timestamp columns, plus borders and padding
	available := termWidth - 60
	if available < 10 {
		return 10
	}
	if available > 50 {
		return 50
	}
	return available
}
