package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/user/ytui/content"
	"github.com/user/ytui/pkg/download"
	"github.com/user/ytui/tui/components"
)

// DownloadFunc saves a URL into a directory, reporting progress.
type DownloadFunc func(ctx context.Context, url, dir string, progress func(pct float64)) (string, error)

// downloadProgressMsg carries progress updates from the download goroutine.
type downloadProgressMsg struct {
	percent float64
}

// downloadCompleteMsg is sent when the download finishes successfully.
type downloadCompleteMsg struct {
	path string
}

// downloadErrorMsg is sent when the download fails.
type downloadErrorMsg struct {
	err error
}

// clearDownloadMsg hides the finished download box.
type clearDownloadMsg struct{}

// waitForDownloadMsg returns a tea.Cmd that waits for the next message on the channel.
func waitForDownloadMsg(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// startDownloadGoroutine runs fn in the background. Progress, completion and
// failure are sent to the returned channel, which is closed afterwards.
func startDownloadGoroutine(ctx context.Context, fn DownloadFunc, v content.Video, dir string) <-chan tea.Msg {
	ch := make(chan tea.Msg)
	go func() {
		defer close(ch)

		path, err := fn(ctx, content.WatchURL(v.ID), dir, func(pct float64) {
			select {
			case ch <- downloadProgressMsg{percent: pct}:
			case <-ctx.Done():
			}
		})
		var msg tea.Msg = downloadCompleteMsg{path: path}
		if err != nil {
			msg = downloadErrorMsg{err}
		}
		select {
		case ch <- msg:
		case <-ctx.Done():
		}
	}()
	return ch
}

// startDownload begins downloading the highlighted video. Only one
// download runs at a time.
func (m *Model) startDownload() tea.Cmd {
	v, ok := m.selected().(content.Video)
	if !ok {
		return m.setNotice("Select a video to download", true)
	}
	if v.Live {
		return m.setNotice("Live streams can't be downloaded", true)
	}
	if m.download.Active && !m.download.Done() {
		return m.setNotice("A download is already running", true)
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.downloadCancel = cancel
	m.download = components.DownloadProgressState{Active: true, Title: v.Title}
	m.downloadCh = startDownloadGoroutine(ctx, m.downloadFn, v, download.ChannelDir(m.downloadDir, v.Channel))
	m.layoutChanged()
	return waitForDownloadMsg(m.downloadCh)
}

// handleDownloadMsg folds a download message into the progress box and
// keeps listening until the goroutine is done.
func (m *Model) handleDownloadMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case downloadProgressMsg:
		m.download.Percent = msg.percent
		return waitForDownloadMsg(m.downloadCh)
	case downloadCompleteMsg:
		m.download.Percent = 100
		m.download.Path = msg.path
		return tea.Batch(
			m.setNotice("Download complete", false),
			tea.Tick(resultDisplayDuration, func(_ time.Time) tea.Msg { return clearDownloadMsg{} }),
		)
	case downloadErrorMsg:
		m.download.Err = msg.err
		return tea.Batch(
			m.setNotice(fmt.Sprintf("Download failed: %v", firstLine(msg.err.Error())), true),
			tea.Tick(resultDisplayDuration, func(_ time.Time) tea.Msg { return clearDownloadMsg{} }),
		)
	case clearDownloadMsg:
		if m.download.Done() {
			m.download = components.DownloadProgressState{}
			m.downloadCh = nil
			m.layoutChanged()
		}
	}
	return nil
}
