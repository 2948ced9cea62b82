package components

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/ytui/tui/styles"
)

// HelpOverlay renders the key bindings as a centered panel. Each group of
// bindings becomes one column.
func HelpOverlay(groups [][]key.Binding, width, height int) string {
	h := help.New()
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(styles.Lavender).Bold(true)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(styles.LightLavender)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(styles.Purple)
	h.FullSeparator = "   "

	title := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true).
		Render("Keybindings")
	footer := lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Italic(true).
		Render("Press any key to close")

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", h.FullHelpView(groups), "", footer)

	panel := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BrightPurple).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}
