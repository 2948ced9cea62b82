package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/ytui/tui/styles"
)

// DownloadProgressState holds the state for the download progress display.
type DownloadProgressState struct {
	Active  bool
	Title   string
	Percent float64
	// Path is set once the download finished
	Path string
	Err  error
}

// Done reports whether the download has finished, successfully or not.
func (s DownloadProgressState) Done() bool {
	return s.Path != "" || s.Err != nil
}

// DownloadProgress renders a bordered box with a progress bar, the video
// title and, once finished, where the file went or why it failed.
func DownloadProgress(state DownloadProgressState, width int) string {
	if !state.Active || width < 10 {
		return ""
	}

	greenStyle := lipgloss.NewStyle().Foreground(styles.Green)
	amberStyle := lipgloss.NewStyle().Foreground(styles.Amber)
	redStyle := lipgloss.NewStyle().Foreground(styles.Red)
	textStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)

	// Inner width for content (box border = 2, plus 1 space padding each side)
	innerW := width - 4
	if innerW < 6 {
		innerW = 6
	}
	fit := func(s string) string {
		if lipgloss.Width(s) > innerW {
			return ansi.Truncate(s, innerW-3, "...")
		}
		return s
	}

	pct := int(state.Percent)
	if pct > 100 {
		pct = 100
	}
	// Bar width: innerW minus " XXX%" label (5 chars) minus 1 space padding
	barWidth := innerW - 6
	if barWidth < 4 {
		barWidth = 4
	}
	filled := barWidth * pct / 100
	bar := greenStyle.Render(strings.Repeat("█", filled)) + amberStyle.Render(strings.Repeat("░", barWidth-filled))

	lines := []string{
		" " + bar + textStyle.Render(fmt.Sprintf(" %3d%%", pct)),
		" " + textStyle.Render(fit(state.Title)),
	}
	switch {
	case state.Err != nil:
		lines = append(lines, " "+redStyle.Render(fit(state.Err.Error())))
	case state.Path != "":
		lines = append(lines, " "+greenStyle.Render(fit("Saved "+state.Path)))
	}

	return RenderInfoBox("Download", lines, width)
}
