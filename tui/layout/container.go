package layout

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/ytui/tui/styles"
)

// Container fits content into an exact Width x Height box. Lines that do
// not fit are replaced by a "↓ n more" indicator on the last row.
type Container struct {
	Width  int
	Height int
}

// Render returns the content constrained to exactly Width columns and Height lines.
func (c Container) Render(content string) string {
	if c.Height <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")

	if len(lines) > c.Height {
		hidden := len(lines) - c.Height + 1
		lines = lines[:c.Height]
		indicator := lipgloss.NewStyle().Foreground(styles.Purple).Render(fmt.Sprintf("↓ %d more", hidden))
		lines[c.Height-1] = indicator
	}
	lines = NormalizeLines(lines, c.Height)

	for i, line := range lines {
		lines[i] = PadToWidth(line, c.Width)
	}
	return strings.Join(lines, "\n")
}
