package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/ytui/tui/styles"
)

// StatusBarState holds what the top bar shows.
type StatusBarState struct {
	// Breadcrumbs are the titles of the pages on the stack, root first
	Breadcrumbs []string
	// Mode is the input state name, e.g. "BROWSE"
	Mode string
	// Notice is a transient message; it replaces the mode when set
	Notice string
	// NoticeIsError colours the notice as a warning
	NoticeIsError bool
}

// StatusBar renders breadcrumbs on the left and the mode or notice on the
// right. Breadcrumbs are dropped from the front when space runs out.
func StatusBar(state StatusBarState, width int) string {
	var right string
	switch {
	case state.Notice != "" && state.NoticeIsError:
		right = lipgloss.NewStyle().Foreground(styles.Red).Bold(true).Render(state.Notice) + " "
	case state.Notice != "":
		right = lipgloss.NewStyle().Foreground(styles.Green).Bold(true).Render(state.Notice) + " "
	default:
		right = lipgloss.NewStyle().Foreground(styles.Cyan).Render(state.Mode) + " "
	}

	sep := lipgloss.NewStyle().Foreground(styles.Purple).Render(" › ")
	crumbs := state.Breadcrumbs
	left := " " + strings.Join(crumbs, sep)
	for len(crumbs) > 1 && lipgloss.Width(left)+lipgloss.Width(right)+1 > width {
		crumbs = crumbs[1:]
		left = " …" + sep + strings.Join(crumbs, sep)
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Foreground(styles.LightLavender).
		Bold(true).
		Width(width).
		Render(left + strings.Repeat(" ", padding) + right)
}
