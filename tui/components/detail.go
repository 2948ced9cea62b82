package components

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/user/ytui/content"
	"github.com/user/ytui/pkg/timeutil"
	"github.com/user/ytui/tui/styles"
)

// Detail renders the highlighted item in full inside an info box.
func Detail(item content.Item, width int) string {
	if item == nil {
		return RenderInfoBox("Details", []string{styles.DimText.Render(" Nothing selected")}, width)
	}

	wrap := width - 4
	if wrap < 10 {
		wrap = 10
	}

	var b detailBuilder
	title := "Details"
	switch it := item.(type) {
	case content.Header:
		title = "Category"
		b.text(it.Title, wrap)
		if it.Link != "" {
			b.dim("Enter opens this category")
		}
	case content.Video:
		title = "Video"
		b.text(it.Title, wrap)
		b.blank()
		b.field("Channel", it.Channel)
		if it.Live {
			b.line(styles.LiveBadge.Render(" ● LIVE"))
		} else if it.Duration > 0 {
			b.field("Length", timeutil.FormatDuration(it.Duration))
		}
		b.field("Views", it.Views)
		b.field("Published", it.Published)
		b.blank()
		b.dim(content.WatchURL(it.ID))
	case content.Transcript:
		title = "Transcript"
		b.text("Captions for this video", wrap)
	case content.Caption:
		title = "Caption"
		b.field("At", timeutil.FormatDuration(it.Start))
		b.blank()
		b.text(it.Text, wrap)
		b.blank()
		b.dim("Enter plays from here")
	case content.CommentSection:
		title = "Comments"
		b.text(it.Label(), wrap)
	case content.Comment:
		title = "Comment"
		b.line(styles.HeaderBadge.Render(" " + it.Author))
		b.field("Likes", it.Likes)
		b.field("Posted", it.Published)
		b.blank()
		b.text(it.Text, wrap)
		if it.ReplyCount > 0 {
			b.blank()
			b.dim(fmt.Sprintf("Enter shows %d replies", it.ReplyCount))
		}
	case content.Channel:
		title = "Channel"
		b.text(it.Title, wrap)
		b.field("Subscribers", it.Subscribers)
		b.blank()
		b.dim("Channels are not supported yet")
	case content.Playlist:
		title = "Playlist"
		b.text(it.Title, wrap)
		b.field("Videos", it.VideoCount)
		b.blank()
		b.dim("Playlists are not supported yet")
	case content.Search:
		title = "Search"
		b.text(it.Query, wrap)
	case content.Notice:
		b.text(it.Text, wrap)
	}
	return RenderInfoBox(title, b.lines, width)
}

type detailBuilder struct {
	lines []string
}

func (b *detailBuilder) line(s string) { b.lines = append(b.lines, s) }

func (b *detailBuilder) blank() { b.lines = append(b.lines, "") }

func (b *detailBuilder) text(s string, width int) {
	for _, l := range strings.Split(wordwrap.String(s, width), "\n") {
		b.line(styles.PrimaryText.Render(" " + l))
	}
}

func (b *detailBuilder) field(name, value string) {
	if value == "" {
		return
	}
	b.line(styles.SecondaryText.Render(fmt.Sprintf(" %s: ", name)) + styles.PrimaryText.Render(value))
}

func (b *detailBuilder) dim(s string) {
	b.line(styles.DimText.Render(" " + s))
}
