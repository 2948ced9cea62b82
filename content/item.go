// Package content defines the items that make up a page of browsable content
// and the keys used to request them.
package content

// Item is one unit of content on a page. The set of implementations is
// closed: only the types in this package satisfy it.
type Item interface {
	// Key returns the content key this item navigates to, or "" if the
	// item has no children.
	Key() Key
	// Label is the single line shown in a page list.
	Label() string
	isItem()
}

// Batch is what a backend returns for one request: an ordered run of items
// and an optional continuation token for fetching more.
type Batch struct {
	Items        []Item
	Continuation string
}

// Header is a category label. Link is set when it leads to a sub-category.
type Header struct {
	Title string
	Link  Key
}

// Video is a playable video.
type Video struct {
	ID        string
	Title     string
	Duration  int // seconds, 0 when unknown or live
	Channel   string
	ChannelID string
	Live      bool
	Views     string
	Published string
}

// Transcript links to the caption track of a video.
type Transcript struct {
	VideoID string
	Params  string
}

// Caption is one line of a transcript.
type Caption struct {
	VideoID string
	Start   int // seconds
	Text    string
}

// CommentSection links to the top-level comments of a video.
type CommentSection struct {
	VideoID string
	Title   string
	Token   string
}

// Comment is a single comment. Replies is the key of its reply thread and is
// only meaningful when ReplyCount > 0.
type Comment struct {
	Author     string
	Text       string
	Likes      string
	Published  string
	ReplyCount int
	Replies    Key
}

// Channel is a channel reference.
type Channel struct {
	ID          string
	Title       string
	Subscribers string
}

// Playlist is a playlist reference.
type Playlist struct {
	ID         string
	Title      string
	VideoCount string
}

// Search is a suggested query, e.g. a search refinement.
type Search struct {
	Query string
}

// Notice is inert text such as a section divider.
type Notice struct {
	Text string
}

func (Header) isItem()         {}
func (Video) isItem()          {}
func (Transcript) isItem()     {}
func (Caption) isItem()        {}
func (CommentSection) isItem() {}
func (Comment) isItem()        {}
func (Channel) isItem()        {}
func (Playlist) isItem()       {}
func (Search) isItem()         {}
func (Notice) isItem()         {}

func (h Header) Key() Key         { return h.Link }
func (v Video) Key() Key          { return NextKey(v.ID) }
func (t Transcript) Key() Key     { return TranscriptKey(t.VideoID, t.Params) }
func (c Caption) Key() Key        { return "" }
func (c CommentSection) Key() Key { return CommentsKey(c.VideoID, c.Token) }
func (c Comment) Key() Key        { return c.Replies }
func (c Channel) Key() Key        { return ChannelKey(c.ID) }
func (p Playlist) Key() Key       { return PlaylistKey(p.ID) }
func (s Search) Key() Key         { return SearchKey(s.Query) }
func (n Notice) Key() Key         { return "" }

func (h Header) Label() string { return h.Title }
func (v Video) Label() string  { return v.Title }
func (Transcript) Label() string {
	return "Transcript"
}
func (c Caption) Label() string { return c.Text }
func (c CommentSection) Label() string {
	if c.Title == "" {
		return "Comments"
	}
	return c.Title
}
func (c Comment) Label() string  { return c.Author + ": " + c.Text }
func (c Channel) Label() string  { return c.Title }
func (p Playlist) Label() string { return p.Title }
func (s Search) Label() string   { return "Search: " + s.Query }
func (n Notice) Label() string   { return n.Text }

// WatchURL returns the page URL players are given for a video.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// LiveURL returns the URL of a channel's current live stream.
func LiveURL(channelID string) string {
	return "https://www.youtube.com/channel/" + channelID + "/live"
}
