package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/dayekim/devprep/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar with an optional
// "current/total" counter, used for interview question progress.
type ProgressBar struct {
	Label   string
	Current int
	Total   int
	Width   int
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	counter := ""
	if p.Total > 0 {
		counter = fmt.Sprintf("  %d/%d", p.Current, p.Total)
	}

	barWidth := p.Width - lipgloss.Width(result) - lipgloss.Width(counter)
	if barWidth < 4 {
		barWidth = 4
	}

	ratio := 0.0
	if p.Total > 0 {
		ratio = float64(p.Current) / float64(p.Total)
	}
	filled := int(float64(barWidth) * ratio)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	result += lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	if counter != "" {
		result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(counter)
	}

	return result
}
