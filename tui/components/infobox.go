// Package components provides reusable TUI components.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/clipper/tui/styles"
)

// RenderInfoBox renders content lines inside a rounded box with a tab header:
//
//	╭─ Title ─────╮
//	│content      │
//	╰─────────────╯
//
// Lines wider than the box are truncated.
func RenderInfoBox(title string, contentLines []string, width int) string {
	if width < 4 {
		return ""
	}

	innerWidth := width - 2

	borderStyle := lipgloss.NewStyle().Foreground(styles.Purple)
	headerText := styles.Header.Render(" " + title + " ")

	fillWidth := innerWidth - 1 - lipgloss.Width(headerText)
	if fillWidth < 0 {
		fillWidth = 0
	}
	topLine := borderStyle.Render("╭─") + headerText + borderStyle.Render(strings.Repeat("─", fillWidth)+"╮")

	rendered := make([]string, 0, len(contentLines)+2)
	rendered = append(rendered, topLine)
	for _, line := range contentLines {
		rendered = append(rendered, borderStyle.Render("│")+PadToWidth(line, innerWidth)+borderStyle.Render("│"))
	}
	rendered = append(rendered, borderStyle.Render("╰"+strings.Repeat("─", innerWidth)+"╯"))

	return strings.Join(rendered, "\n")
}

// PadToWidth pads or truncates a string to exactly the specified width.
// Uses ansi.Truncate for ANSI-aware, grapheme-aware truncation that correctly
// handles double-width characters.
func PadToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	currentWidth := lipgloss.Width(s)
	if currentWidth > width {
		s = ansi.Truncate(s, width, "")
		currentWidth = lipgloss.Width(s)
	}
	if currentWidth < width {
		return s + strings.Repeat(" ", width-currentWidth)
	}
	return s
}
