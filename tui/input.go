package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/user/ytui/content"
	"github.com/user/ytui/keymap"
	"github.com/user/ytui/tui/forms"
)

// inputState is the dispatcher's mode.
type inputState int

const (
	stateBrowsing inputState = iota
	stateSearching
	stateConfirmingQuit
)

func (s inputState) String() string {
	switch s {
	case stateSearching:
		return "SEARCH"
	case stateConfirmingQuit:
		return "QUIT?"
	}
	return "BROWSE"
}

// handleKey routes a key press to the active input state.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	if a, ok := m.keys.Match(keymap.ContextGlobal, k); ok && a == keymap.ActionForceQuit {
		return m, m.quit()
	}

	// Help overlay - any key dismisses it
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch m.state {
	case stateSearching:
		return m.handleSearchKey(msg)
	case stateConfirmingQuit:
		if k == "esc" {
			m.closeQuitForm()
			return m, nil
		}
		return m.updateQuitForm(msg)
	}

	action, ok := m.keys.Match(keymap.ContextBrowsing, k)
	if !ok {
		return m, nil
	}
	return m, m.execute(action)
}

// openSearch starts a search session with an empty buffer.
func (m *Model) openSearch() tea.Cmd {
	m.state = stateSearching
	m.search.SetValue("")
	m.layoutChanged()
	return m.search.Focus()
}

// closeSearch discards the search session.
func (m *Model) closeSearch() {
	m.state = stateBrowsing
	m.search.Blur()
	m.search.SetValue("")
	m.layoutChanged()
}

// handleSearchKey edits the query. Keys without a searching binding are
// typed into the buffer.
func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, _ := m.keys.Match(keymap.ContextSearching, msg.String())
	switch action {
	case keymap.ActionConfirm:
		query := strings.TrimSpace(m.search.Value())
		m.closeSearch()
		if query == "" {
			return m, nil
		}
		return m, m.push(content.SearchKey(query))
	case keymap.ActionCancel:
		m.closeSearch()
		return m, nil
	case keymap.ActionBackspace:
		if r := []rune(m.search.Value()); len(r) > 0 {
			m.search.SetValue(string(r[:len(r)-1]))
			m.search.CursorEnd()
		}
		return m, nil
	}

	if msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace {
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// openQuitForm asks for confirmation before quitting.
func (m *Model) openQuitForm() tea.Cmd {
	m.state = stateConfirmingQuit
	m.quitAnswer = false
	m.quitForm = forms.NewConfirmQuitForm(&m.quitAnswer)
	return m.quitForm.Init()
}

func (m *Model) closeQuitForm() {
	m.state = stateBrowsing
	m.quitForm = nil
}

// updateQuitForm feeds msg to the confirm form and acts once it is answered.
func (m *Model) updateQuitForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitForm == nil {
		m.state = stateBrowsing
		return m, nil
	}
	form, cmd := m.quitForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.quitForm = f
	}

	switch m.quitForm.State {
	case huh.StateCompleted:
		if m.quitAnswer {
			return m, m.quit()
		}
		m.closeQuitForm()
		return m, nil
	case huh.StateAborted:
		m.closeQuitForm()
		return m, nil
	}
	return m, cmd
}
