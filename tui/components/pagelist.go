package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/ytui/content"
	"github.com/user/ytui/nav"
	"github.com/user/ytui/pkg/timeutil"
	"github.com/user/ytui/tui/layout"
	"github.com/user/ytui/tui/styles"
)

// PageListState is what the list needs to draw one page.
type PageListState struct {
	Items       []content.Item
	Cursor      nav.Cursor
	State       nav.LoadState
	Err         error
	LoadingMore bool
	// Spinner is the current spinner frame, shown while loading.
	Spinner string
	// Hint is shown under a failure, e.g. "r to retry".
	Hint string
}

// metaWidth is the width of the right-hand column (durations, counts).
const metaWidth = 10

// PageList renders rows lines of the page starting at the cursor's offset.
func PageList(state PageListState, width, rows int) string {
	if rows < 1 {
		rows = 1
	}

	switch {
	case state.State == nav.Pending && len(state.Items) == 0:
		return " " + state.Spinner + styles.SecondaryText.Render(" Loading…")
	case state.State == nav.Failed:
		reason := "unknown error"
		if state.Err != nil {
			reason = state.Err.Error()
		}
		lines := []string{
			styles.Warning.Render(" Failed to load"),
			styles.SecondaryText.Render(" " + layout.Truncate(reason, width-2)),
		}
		if state.Hint != "" {
			lines = append(lines, "", styles.DimText.Render(" "+layout.Truncate(state.Hint, width-2)))
		}
		return strings.Join(lines, "\n")
	case len(state.Items) == 0:
		return styles.DimText.Render(" Nothing here")
	}

	var lines []string
	end := state.Cursor.Offset + rows
	if end > len(state.Items) {
		end = len(state.Items)
	}
	for i := state.Cursor.Offset; i < end; i++ {
		lines = append(lines, renderRow(state.Items[i], i == state.Cursor.Index, width))
	}
	if state.LoadingMore && end == len(state.Items) && len(lines) < rows {
		lines = append(lines, " "+state.Spinner+styles.DimText.Render(" Loading more…"))
	}
	return strings.Join(lines, "\n")
}

// renderRow renders a badge, the item label and its meta column.
func renderRow(item content.Item, selected bool, width int) string {
	badge, badgeStyle := Badge(item)
	meta := Meta(item)

	labelWidth := width - 4 - metaWidth - 1
	if labelWidth < 5 {
		labelWidth = 5
	}
	label := layout.Truncate(strings.ReplaceAll(item.Label(), "\n", " "), labelWidth)
	label = layout.PadToWidth(label, labelWidth)
	metaStr := fmt.Sprintf("%*s", metaWidth, layout.Truncate(meta, metaWidth))

	if selected {
		return styles.Highlight.Width(width).Render(" " + badge + "  " + label + " " + metaStr)
	}
	row := " " + badgeStyle.Render(badge) + "  " + styles.PrimaryText.Render(label) + " " + styles.Meta.Render(metaStr)
	return lipgloss.NewStyle().Width(width).Render(row)
}

// Badge returns the one-cell marker for an item kind and its style.
func Badge(item content.Item) (string, lipgloss.Style) {
	switch it := item.(type) {
	case content.Header:
		return "§", styles.HeaderBadge
	case content.Video:
		if it.Live {
			return "●", styles.LiveBadge
		}
		return "▶", styles.VideoBadge
	case content.Transcript:
		return "≡", styles.LinkBadge
	case content.Caption:
		return "·", styles.CommentBadge
	case content.CommentSection:
		return "#", styles.LinkBadge
	case content.Comment:
		return "›", styles.CommentBadge
	case content.Channel:
		return "@", styles.LinkBadge
	case content.Playlist:
		return "☰", styles.LinkBadge
	case content.Search:
		return "?", styles.VideoBadge
	case content.Notice:
		return " ", styles.NoticeBadge
	}
	return " ", styles.NoticeBadge
}

// Meta returns the short right-hand annotation of an item.
func Meta(item content.Item) string {
	switch it := item.(type) {
	case content.Video:
		if it.Live {
			return "LIVE"
		}
		if it.Duration > 0 {
			return timeutil.FormatDuration(it.Duration)
		}
	case content.Caption:
		return timeutil.FormatDuration(it.Start)
	case content.Comment:
		switch {
		case it.ReplyCount == 1:
			return "1 reply"
		case it.ReplyCount > 1:
			return fmt.Sprintf("%d replies", it.ReplyCount)
		}
	case content.Channel:
		return it.Subscribers
	case content.Playlist:
		return it.VideoCount
	}
	return ""
}
