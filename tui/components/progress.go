package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/clipper/tui/styles"
)

// RunProgressState holds the state for the clip progress display.
type RunProgressState struct {
	Total     int
	Done      int
	Skipped   int
	Failed    int
	Current   string
	Finished  bool
	Cancelled bool
}

// RunProgress renders a bordered info box with a progress bar, a clip
// counter and the clip currently being cut.
func RunProgress(state RunProgressState, width int) string {
	if width < 10 {
		return ""
	}

	greenStyle := lipgloss.NewStyle().Foreground(styles.Green)
	amberStyle := lipgloss.NewStyle().Foreground(styles.Amber)
	redStyle := lipgloss.NewStyle().Foreground(styles.Red)
	textStyle := styles.PrimaryText

	// box border = 2, plus 1 space padding each side
	innerW := width - 4
	if innerW < 6 {
		innerW = 6
	}

	var lines []string

	var pct int
	if state.Total > 0 {
		pct = state.Done * 100 / state.Total
	}

	// " XXX%" label plus 1 space padding
	barWidth := innerW - 6
	if barWidth < 4 {
		barWidth = 4
	}
	filled := 0
	if state.Total > 0 {
		filled = barWidth * state.Done / state.Total
	}
	if filled > barWidth {
		filled = barWidth
	}

	bar := greenStyle.Render(strings.Repeat("█", filled)) + amberStyle.Render(strings.Repeat("░", barWidth-filled))
	lines = append(lines, " "+bar+textStyle.Render(fmt.Sprintf(" %3d%%", pct)))

	counter := textStyle.Render(fmt.Sprintf(" %d/%d clips", state.Done, state.Total))
	if state.Skipped > 0 {
		counter += "  " + amberStyle.Render(fmt.Sprintf("%d skipped", state.Skipped))
	}
	if state.Failed > 0 {
		counter += "  " + redStyle.Render(fmt.Sprintf("%d failed", state.Failed))
	}
	lines = append(lines, counter)

	switch {
	case state.Cancelled:
		lines = append(lines, " "+redStyle.Render("Cancelling..."))
	case state.Finished:
		lines = append(lines, " "+greenStyle.Render("Run complete"))
	case state.Current != "":
		current := state.Current
		if lipgloss.Width(current) > innerW-2 {
			current = ansi.Truncate(current, innerW-5, "...")
		}
		lines = append(lines, " "+styles.Path.Render(current))
	}

	return RenderInfoBox("Clips", lines, width)
}
