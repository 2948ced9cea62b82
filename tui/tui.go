// Package tui is the interactive browser: a bubbletea model that owns the
// navigation stack, turns key presses into actions and renders the current
// page.
package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/ytui/content"
	"github.com/user/ytui/db"
	"github.com/user/ytui/fetch"
	"github.com/user/ytui/keymap"
	"github.com/user/ytui/nav"
	"github.com/user/ytui/pkg/download"
	"github.com/user/ytui/player"
	"github.com/user/ytui/tui/components"
	"github.com/user/ytui/tui/styles"
)

const (
	// resultDisplayDuration is how long notices stay in the status bar.
	resultDisplayDuration = 3 * time.Second
)

// Player starts external players.
type Player interface {
	PlayVideo(videoID string, start int) (*player.Process, error)
	OpenStream(url string) (*player.Process, error)
}

// PlayRecorder stores playback history.
type PlayRecorder interface {
	RecordPlay(p db.Play) error
}

// Options configures a Model. Backend, Keys and Player are required.
type Options struct {
	Backend fetch.Backend
	// Timeout bounds each backend call; zero selects fetch.DefaultTimeout.
	Timeout time.Duration
	Keys    *keymap.Registry
	Player  Player
	// History may be nil.
	History     PlayRecorder
	ConfirmQuit bool
	DownloadDir string
	// Download defaults to yt-dlp.
	Download DownloadFunc
	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
}

// clearNoticeMsg clears the notice it was scheduled for. seq guards against
// clearing a newer notice.
type clearNoticeMsg struct {
	seq int
}

// playedMsg reports the outcome of starting a player.
type playedMsg struct {
	video content.Video
	err   error
}

// Model is the Bubbletea model for the browser.
// It implements the tea.Model interface with Init, Update, and View methods.
type Model struct {
	stack   *nav.Stack
	coord   *fetch.Coordinator
	keys    *keymap.Registry
	player  Player
	history PlayRecorder

	state       inputState
	confirmQuit bool
	quitForm    *huh.Form
	quitAnswer  bool
	quitting    bool
	showHelp    bool

	// search session buffer, only focused while searching
	search  textinput.Model
	spinner spinner.Model
	help    help.Model

	notice        string
	noticeIsError bool
	noticeSeq     int

	download       components.DownloadProgressState
	downloadCh     <-chan tea.Msg
	downloadCancel context.CancelFunc
	downloadDir    string
	downloadFn     DownloadFunc
	clipboard      func(string) error

	// terminal size
	width  int
	height int
}

// NewModel creates the browser with the home page as the root of the stack.
func NewModel(opts Options) *Model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "search YouTube"
	ti.CharLimit = 200
	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	ti.TextStyle = styles.PrimaryText

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Pink)

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(styles.Lavender).Bold(true)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(styles.Purple)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(styles.Purple)

	m := &Model{
		stack:       nav.NewStack(content.HomeKey),
		coord:       fetch.NewCoordinator(opts.Backend, opts.Timeout),
		keys:        opts.Keys,
		player:      opts.Player,
		history:     opts.History,
		confirmQuit: opts.ConfirmQuit,
		search:      ti,
		spinner:     sp,
		help:        h,
		downloadDir: opts.DownloadDir,
		downloadFn:  opts.Download,
		clipboard:   opts.Clipboard,
	}
	if m.keys == nil {
		m.keys = keymap.NewDefaultRegistry()
	}
	if m.downloadFn == nil {
		m.downloadFn = download.Run
	}
	if m.clipboard == nil {
		m.clipboard = clipboard.WriteAll
	}
	return m
}

// Init requests the root page and starts the spinner.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.coord.Request(m.stack.Root().Page), m.spinner.Tick)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layoutChanged()
		return m, nil

	case fetch.ResultMsg:
		return m, m.applyResult(msg)

	case playedMsg:
		return m, m.handlePlayed(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
			m.noticeIsError = false
		}
		return m, nil

	case downloadProgressMsg, downloadCompleteMsg, downloadErrorMsg, clearDownloadMsg:
		return m, m.handleDownloadMsg(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Anything else belongs to the quit form when it is open.
	if m.state == stateConfirmingQuit {
		return m.updateQuitForm(msg)
	}
	return m, nil
}

// applyResult merges a fetch result into the stack.
func (m *Model) applyResult(msg fetch.ResultMsg) tea.Cmd {
	if !m.coord.Apply(m.stack, msg, m.rows()) {
		return nil
	}
	if msg.Mode == fetch.ModeAppend && msg.Err != nil {
		return m.setNotice("Couldn't load more: "+firstLine(msg.Err.Error()), true)
	}
	return nil
}

// handlePlayed reports whether the player started.
func (m *Model) handlePlayed(msg playedMsg) tea.Cmd {
	if msg.err != nil {
		return m.setNotice(firstLine(msg.err.Error()), true)
	}
	return m.setNotice("Playing "+msg.video.Title, false)
}

// setNotice shows a transient message and schedules its removal.
func (m *Model) setNotice(text string, isError bool) tea.Cmd {
	m.noticeSeq++
	m.notice = text
	m.noticeIsError = isError
	seq := m.noticeSeq
	return tea.Tick(resultDisplayDuration, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}

// quit stops any running download and ends the program.
func (m *Model) quit() tea.Cmd {
	m.quitting = true
	if m.downloadCancel != nil {
		m.downloadCancel()
	}
	return tea.Quit
}

// Stack exposes the navigation state, read-only by convention.
func (m *Model) Stack() *nav.Stack {
	return m.stack
}

// Run starts the Bubbletea program with a model built from opts.
// It returns an error if the program fails to start or run.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
