// Package components provides reusable TUI components.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/ytui/tui/styles"
)

// RenderInfoBox renders a bordered box with a tab-style header and content lines.
// Content lines are rendered as-is (caller handles styling). A focused box
// gets a pink border.
func RenderInfoBox(title string, contentLines []string, width int, focused ...bool) string {
	if width < 4 {
		return ""
	}
	innerWidth := width - 2

	borderColor := styles.Purple
	if len(focused) > 0 && focused[0] {
		borderColor = styles.Pink
	}
	border := lipgloss.NewStyle().Foreground(borderColor)
	headerStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)

	// Tab header: ╭─ Title ─────╮
	headerText := headerStyle.Render(" " + title + " ")
	fill := innerWidth - 1 - lipgloss.Width(headerText)
	if fill < 0 {
		fill = 0
	}
	lines := []string{border.Render("╭─") + headerText + border.Render(strings.Repeat("─", fill)+"╮")}

	for _, line := range contentLines {
		pad := innerWidth - lipgloss.Width(line)
		if pad < 0 {
			pad = 0
		}
		lines = append(lines, border.Render("│")+line+strings.Repeat(" ", pad)+border.Render("│"))
	}

	// Bottom border: ╰──────────────╯
	lines = append(lines, border.Render("╰"+strings.Repeat("─", innerWidth)+"╯"))
	return strings.Join(lines, "\n")
}
