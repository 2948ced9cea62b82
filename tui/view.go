package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/ytui/keymap"
	"github.com/user/ytui/nav"
	"github.com/user/ytui/tui/components"
	"github.com/user/ytui/tui/layout"
	"github.com/user/ytui/tui/styles"
)

const (
	// downloadBoxHeight is the height of the download progress box.
	downloadBoxHeight = 5
	// searchBoxHeight is the height of the search prompt box.
	searchBoxHeight = 3
	// helpGroupSize is how many bindings go in one help overlay column.
	helpGroupSize = 6
)

// footerHeight is the number of lines below the page list.
func (m *Model) footerHeight() int {
	h := 1 // key hints
	if m.state == stateSearching {
		h = searchBoxHeight
	}
	if m.download.Active {
		h += downloadBoxHeight
	}
	return h
}

// bodyHeight is the height of the list and detail columns.
func (m *Model) bodyHeight() int {
	h := m.height - 1 - m.footerHeight()
	if h < 3 {
		h = 3
	}
	return h
}

// rows is the number of list rows inside the list box.
func (m *Model) rows() int {
	return m.bodyHeight() - 2
}

// layoutChanged keeps the current cursor inside the window after the
// number of visible rows changed.
func (m *Model) layoutChanged() {
	e := m.stack.Current()
	e.Cursor.Clamp(len(e.Page.Items), m.rows())
}

// View renders the current state. It never modifies the model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	// Minimum width warning
	if m.width > 0 && m.width < layout.MinTerminalWidth {
		return styles.Warning.Render(fmt.Sprintf("Terminal too narrow (%d cols)", m.width)) + "\n" +
			styles.SecondaryText.Render(fmt.Sprintf("Minimum width: %d columns", layout.MinTerminalWidth))
	}

	if m.showHelp {
		return components.HelpOverlay(m.helpGroups(), m.width, m.height)
	}

	status := components.StatusBar(components.StatusBarState{
		Breadcrumbs:   m.stack.Breadcrumbs(),
		Mode:          m.state.String(),
		Notice:        m.notice,
		NoticeIsError: m.noticeIsError,
	}, m.width)

	if m.state == stateConfirmingQuit && m.quitForm != nil {
		return status + "\n" + lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, m.quitForm.View())
	}

	return status + "\n" + m.renderBody() + "\n" + m.renderFooter()
}

// renderBody draws the page list and, on wide terminals, the detail pane.
func (m *Model) renderBody() string {
	height := m.bodyHeight()
	listW, detailW, showDetail := layout.ComputeColumnWidths(m.width)

	e := m.stack.Current()
	list := components.PageList(components.PageListState{
		Items:       e.Page.Items,
		Cursor:      e.Cursor,
		State:       e.Page.State,
		Err:         e.Page.Err,
		LoadingMore: e.Page.LoadingMore,
		Spinner:     m.spinner.View(),
		Hint:        m.failureHint(),
	}, listW-2, m.rows())

	title := e.Page.Title()
	if e.Page.State == nav.Loaded {
		title = fmt.Sprintf("%s (%d)", title, len(e.Page.Items))
	} else if e.Page.InFlight {
		title += " " + m.spinner.View()
	}
	lines := layout.NormalizeLines(strings.Split(list, "\n"), m.rows())
	listCol := layout.Container{Width: listW, Height: height}.Render(components.RenderInfoBox(title, lines, listW))

	if !showDetail {
		return listCol
	}
	detailCol := layout.Container{Width: detailW, Height: height}.Render(components.Detail(m.selected(), detailW))
	return layout.JoinColumns([]string{listCol, detailCol}, []int{listW, detailW}, height)
}

// renderFooter draws the download box and then the search prompt or key hints.
func (m *Model) renderFooter() string {
	var parts []string
	if m.download.Active {
		parts = append(parts, components.DownloadProgress(m.download, m.width))
	}
	if m.state == stateSearching {
		parts = append(parts, components.SearchInput(m.search.View(), m.width))
	} else {
		parts = append(parts, layout.PadToWidth(" "+m.help.ShortHelpView(m.shortHelp()), m.width))
	}
	return strings.Join(parts, "\n")
}

// failureHint names the keys that recover from a failed page.
func (m *Model) failureHint() string {
	var parts []string
	for _, h := range []struct {
		action keymap.Action
		desc   string
	}{
		{keymap.ActionRefresh, "to retry"},
		{keymap.ActionBack, "to go back"},
		{keymap.ActionHome, "for home"},
	} {
		if keys := m.keys.Keys(keymap.ContextBrowsing, h.action); len(keys) > 0 {
			parts = append(parts, keys[0]+" "+h.desc)
		}
	}
	return strings.Join(parts, ", ")
}

// shortHelp is the one-line key hint under the list.
func (m *Model) shortHelp() []key.Binding {
	return m.keys.HelpKeys(keymap.ContextBrowsing, []keymap.Action{
		keymap.ActionActivate, keymap.ActionBack, keymap.ActionOpenSearch,
		keymap.ActionRefresh, keymap.ActionHelp, keymap.ActionQuit,
	})
}

// helpGroups splits the browsing bindings into overlay columns, followed
// by the search prompt bindings.
func (m *Model) helpGroups() [][]key.Binding {
	var groups [][]key.Binding
	browsing := m.keys.HelpKeys(keymap.ContextBrowsing, keymap.BrowsingHelp)
	for len(browsing) > helpGroupSize {
		groups = append(groups, browsing[:helpGroupSize])
		browsing = browsing[helpGroupSize:]
	}
	if len(browsing) > 0 {
		groups = append(groups, browsing)
	}
	if searching := m.keys.HelpKeys(keymap.ContextSearching, keymap.SearchingHelp); len(searching) > 0 {
		groups = append(groups, searching)
	}
	return groups
}
