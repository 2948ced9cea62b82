// Package forms provides huh-based form components for the TUI.
package forms

import (
	"github.com/charmbracelet/huh"
)

// NewConfirmQuitForm creates a huh confirm form asking whether to leave.
// The answer is bound to quit.
func NewConfirmQuitForm(quit *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Quit ytui?").
				Affirmative("Quit").
				Negative("Stay").
				Value(quit),
		),
	).WithTheme(Theme()).WithShowHelp(false)
}
