package forms

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestConfirmQuitFormBindsAnswer(t *testing.T) {
	quit := false
	f := NewConfirmQuitForm(&quit)
	f.Init()

	f.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if !quit {
		t.Error("toggling to Quit did not update the bound value")
	}
}
