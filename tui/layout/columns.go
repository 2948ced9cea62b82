package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/ytui/tui/styles"
)

// Responsive layout constants.
const (
	MinTerminalWidth = 40 // below this only a warning is shown
	DetailThreshold  = 90 // below this the detail pane is hidden
	DetailMinWidth   = 30
)

// ComputeColumnWidths splits the terminal between the page list and the
// detail pane. At >=120 columns the detail pane gets a third; between the
// threshold and 120 it gets its minimum; below the threshold it is hidden.
func ComputeColumnWidths(termWidth int) (list, detail int, showDetail bool) {
	showDetail = termWidth >= DetailThreshold
	if !showDetail {
		return termWidth, 0, false
	}

	usable := termWidth - 1 // one border character
	if termWidth >= 120 {
		detail = usable / 3
	} else {
		detail = DetailMinWidth
	}
	list = usable - detail
	return list, detail, true
}

// JoinColumns joins pre-rendered column strings side by side with border separators.
// Each column is normalized to the given height and padded to its width.
func JoinColumns(columns []string, widths []int, height int) string {
	border := lipgloss.NewStyle().Foreground(styles.Purple).Render("│")

	colLines := make([][]string, len(columns))
	for i, col := range columns {
		colLines[i] = NormalizeLines(strings.Split(col, "\n"), height)
	}

	rows := make([]string, 0, height)
	for row := 0; row < height; row++ {
		parts := make([]string, len(colLines))
		for i, lines := range colLines {
			parts[i] = PadToWidth(lines[row], widths[i])
		}
		rows = append(rows, strings.Join(parts, border))
	}
	return strings.Join(rows, "\n")
}
