// Package styles provides Lipgloss styles for the TUI using the Ciapre colour palette.
package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - Ciapre (warm, earthy) theme from Gogh
const (
	// Background (Ciapre background)
	DeepPurple = lipgloss.Color("#191C27")
	// Status bar and overlay background (Ciapre ANSI 0 black)
	DarkPurple = lipgloss.Color("#181818")
	// Borders and dim text (Ciapre ANSI 6 brown)
	Purple = lipgloss.Color("#5C4F4B")
	// Highlighted row (Ciapre ANSI 5 magenta)
	BrightPurple = lipgloss.Color("#724D7C")
	// Secondary text (Ciapre foreground)
	Lavender = lipgloss.Color("#AEA47A")
	// Primary text (Ciapre ANSI 14 cream)
	LightLavender = lipgloss.Color("#F3DBB2")
	// Headers and box titles (Ciapre ANSI 13 bright magenta)
	Pink = lipgloss.Color("#D33061")
	// Links and prompts (Ciapre ANSI 12 bright blue)
	Cyan = lipgloss.Color("#3097C6")
	// Durations and counts
	Amber = lipgloss.Color("#CC8B3F")
	// Errors and live badges (Ciapre ANSI 1)
	Red = lipgloss.Color("#AC3835")
	// Success notices (Ciapre ANSI 2)
	Green = lipgloss.Color("#A6A75D")
)

// Highlight is the style for the selected row.
var Highlight = lipgloss.NewStyle().
	Background(BrightPurple).
	Foreground(LightLavender).
	Bold(true)

// PrimaryText is the style for primary text content
var PrimaryText = lipgloss.NewStyle().
	Foreground(LightLavender)

// SecondaryText is the style for less prominent text
var SecondaryText = lipgloss.NewStyle().
	Foreground(Lavender)

// DimText is used for placeholders and empty states.
var DimText = lipgloss.NewStyle().
	Foreground(Purple).
	Italic(true)

// Warning is the style for warning messages
var Warning = lipgloss.NewStyle().
	Foreground(Red).
	Bold(true)

// Success is the style for success messages
var Success = lipgloss.NewStyle().
	Foreground(Green).
	Bold(true)

// Item badges, one per content kind.
var (
	HeaderBadge  = lipgloss.NewStyle().Foreground(Pink).Bold(true)
	VideoBadge   = lipgloss.NewStyle().Foreground(Cyan)
	LiveBadge    = lipgloss.NewStyle().Foreground(Red).Bold(true)
	CommentBadge = lipgloss.NewStyle().Foreground(Lavender)
	LinkBadge    = lipgloss.NewStyle().Foreground(Amber)
	NoticeBadge  = lipgloss.NewStyle().Foreground(Purple)
)

// Meta is the right-hand column of a list row (durations, reply counts).
var Meta = lipgloss.NewStyle().
	Foreground(Amber)
