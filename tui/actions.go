package tui

import (
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/user/ytui/content"
	"github.com/user/ytui/db"
	"github.com/user/ytui/keymap"
	"github.com/user/ytui/nav"
	"github.com/user/ytui/player"
)

// execute performs a browsing action.
func (m *Model) execute(a keymap.Action) tea.Cmd {
	e := m.stack.Current()
	n := len(e.Page.Items)

	switch a {
	case keymap.ActionQuit:
		if m.confirmQuit {
			return m.openQuitForm()
		}
		return m.quit()
	case keymap.ActionForceQuit:
		return m.quit()

	case keymap.ActionMoveUp:
		return m.move(-1)
	case keymap.ActionMoveDown:
		return m.move(1)
	case keymap.ActionPageUp:
		return m.move(-m.halfPage())
	case keymap.ActionPageDown:
		return m.move(m.halfPage())
	case keymap.ActionTop:
		e.Cursor.Top(n, m.rows())
		return nil
	case keymap.ActionBottom:
		e.Cursor.Bottom(n, m.rows())
		return m.maybeLoadMore(e)

	case keymap.ActionActivate:
		return m.activate()
	case keymap.ActionBack:
		m.stack.Pop()
		m.layoutChanged()
		return nil
	case keymap.ActionHome:
		root := m.stack.Reset()
		m.layoutChanged()
		if root.Page.State == nav.Failed {
			return m.coord.Request(root.Page)
		}
		return nil
	case keymap.ActionOpenSearch:
		return m.openSearch()
	case keymap.ActionRecommendations:
		id := m.contextVideoID()
		if id == "" {
			return m.setNotice("Select a video first", true)
		}
		return m.push(content.NextKey(id))
	case keymap.ActionRefresh:
		return m.coord.Refresh(e.Page)

	case keymap.ActionCopyLink:
		return m.copyLink()
	case keymap.ActionDownload:
		return m.startDownload()
	case keymap.ActionChannelLive:
		return m.openChannelLive()
	case keymap.ActionHelp:
		m.showHelp = !m.showHelp
		return nil
	}
	return nil
}

// push opens key as a new page and requests it. Pushing the key of a
// page that is still loading on top of the stack is coalesced.
func (m *Model) push(key content.Key) tea.Cmd {
	e, _ := m.stack.Push(key)
	return m.coord.Request(e.Page)
}

// move shifts the highlight and asks for more items once the last one is
// reached.
func (m *Model) move(delta int) tea.Cmd {
	e := m.stack.Current()
	e.Cursor.Move(delta, len(e.Page.Items), m.rows())
	return m.maybeLoadMore(e)
}

func (m *Model) maybeLoadMore(e *nav.Entry) tea.Cmd {
	if !e.Cursor.AtEnd(len(e.Page.Items)) {
		return nil
	}
	return m.coord.LoadMore(e.Page)
}

// halfPage is the PageUp/PageDown step.
func (m *Model) halfPage() int {
	if h := m.rows() / 2; h > 1 {
		return h
	}
	return 1
}

// selected returns the highlighted item of the current page, or nil.
func (m *Model) selected() content.Item {
	e := m.stack.Current()
	i, ok := e.Cursor.Selected(len(e.Page.Items))
	if !ok {
		return nil
	}
	return e.Page.Items[i]
}

// activate resolves the highlighted item by its kind.
func (m *Model) activate() tea.Cmd {
	item := m.selected()
	if item == nil {
		return nil
	}

	switch it := item.(type) {
	case content.Header:
		if it.Link == "" {
			return nil
		}
		return m.push(it.Link)
	case content.Video:
		return m.play(it, 0)
	case content.Caption:
		return m.play(content.Video{ID: it.VideoID, Title: it.Text}, it.Start)
	case content.Transcript, content.CommentSection, content.Search:
		return m.push(it.Key())
	case content.Comment:
		if it.ReplyCount == 0 || it.Replies == "" {
			return nil
		}
		return m.push(it.Replies)
	case content.Channel:
		return m.setNotice("Channels are not supported yet", false)
	case content.Playlist:
		return m.setNotice("Playlists are not supported yet", false)
	case content.Notice:
		return nil
	}
	return nil
}

// play starts the player in the background. Live videos go to the stream
// player. Navigation is never touched.
func (m *Model) play(v content.Video, start int) tea.Cmd {
	p := m.player
	history := m.history
	return func() tea.Msg {
		var err error
		if v.Live {
			_, err = p.OpenStream(player.VideoURL(v.ID, 0))
		} else {
			_, err = p.PlayVideo(v.ID, start)
		}
		if err != nil {
			log.Printf("play %s: %v", v.ID, err)
			return playedMsg{video: v, err: err}
		}
		if history != nil {
			rec := db.Play{VideoID: v.ID, Title: v.Title, Channel: v.Channel, Start: start, Live: v.Live}
			if err := history.RecordPlay(rec); err != nil {
				log.Printf("record play %s: %v", v.ID, err)
			}
		}
		return playedMsg{video: v}
	}
}

// openChannelLive opens the live stream of the highlighted item's channel.
func (m *Model) openChannelLive() tea.Cmd {
	var channelID, name string
	switch it := m.selected().(type) {
	case content.Video:
		channelID, name = it.ChannelID, it.Channel
	case content.Channel:
		channelID, name = it.ID, it.Title
	}
	if channelID == "" {
		return m.setNotice("No channel to open", true)
	}

	p := m.player
	v := content.Video{Title: name + " live"}
	return func() tea.Msg {
		_, err := p.OpenStream(content.LiveURL(channelID))
		if err != nil {
			log.Printf("open live %s: %v", channelID, err)
		}
		return playedMsg{video: v, err: err}
	}
}

// contextVideoID is the highlighted video, or the video the current page
// belongs to (a watch page, its transcript or comments).
func (m *Model) contextVideoID() string {
	switch it := m.selected().(type) {
	case content.Video:
		return it.ID
	case content.Caption:
		return it.VideoID
	}
	scheme, args, err := content.ParseKey(m.stack.Current().Page.Key)
	if err != nil {
		return ""
	}
	switch scheme {
	case content.SchemeNext, content.SchemeTranscript, content.SchemeComments:
		return args[0]
	}
	return ""
}

// copyLink puts the URL of the highlighted item on the clipboard.
func (m *Model) copyLink() tea.Cmd {
	var url string
	switch it := m.selected().(type) {
	case content.Video:
		url = content.WatchURL(it.ID)
	case content.Caption:
		url = player.VideoURL(it.VideoID, it.Start)
	case content.Channel:
		url = "https://www.youtube.com/channel/" + it.ID
	case content.Playlist:
		url = "https://www.youtube.com/playlist?list=" + it.ID
	default:
		if id := m.contextVideoID(); id != "" {
			url = content.WatchURL(id)
		}
	}
	if url == "" {
		return m.setNotice("Nothing to copy", true)
	}
	if err := m.clipboard(url); err != nil {
		log.Printf("copy %s: %v", url, err)
		return m.setNotice(fmt.Sprintf("Copy failed: %v", err), true)
	}
	return m.setNotice("Copied "+url, false)
}

// firstLine trims multi-line error output for the status bar.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
