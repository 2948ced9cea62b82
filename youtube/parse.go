package youtube

import (
	"strconv"
	"strings"

	"github.com/user/ytui/content"
	"github.com/user/ytui/pkg/timeutil"
)

// parser turns a decoded response into page items, in document order.
type parser struct {
	videoID      string
	items        []content.Item
	continuation string
	seen         map[string]bool
	// comment entities from frameworkUpdates, keyed by entity key
	entities map[string]any
}

func newParser(root any, videoID string) *parser {
	p := &parser{videoID: videoID, seen: make(map[string]bool)}
	p.loadEntities(root)
	return p
}

func (p *parser) batch() content.Batch {
	return content.Batch{Items: p.items, Continuation: p.continuation}
}

func (p *parser) add(it content.Item) {
	p.items = append(p.items, it)
}

func (p *parser) walk(node any) {
	switch n := node.(type) {
	case map[string]any:
		for _, k := range sortedKeys(n) {
			if m, ok := n[k].(map[string]any); ok && p.renderer(k, m) {
				continue
			}
			p.walk(n[k])
		}
	case []any:
		for _, v := range n {
			p.walk(v)
		}
	}
}

// renderer handles one known renderer object and reports whether its
// subtree is fully consumed.
func (p *parser) renderer(kind string, m map[string]any) bool {
	switch kind {
	case "videoRenderer", "compactVideoRenderer", "gridVideoRenderer",
		"videoWithContextRenderer", "playlistVideoRenderer":
		if v, ok := videoFromRenderer(m); ok && !p.seen[v.ID] {
			p.seen[v.ID] = true
			p.add(v)
		}
		return true
	case "channelRenderer", "gridChannelRenderer":
		if id := cleanText(m["channelId"]); id != "" {
			p.add(content.Channel{
				ID:          id,
				Title:       text(m["title"]),
				Subscribers: firstText(m["videoCountText"], m["subscriberCountText"]),
			})
		}
		return true
	case "playlistRenderer", "compactPlaylistRenderer", "gridPlaylistRenderer":
		if id := cleanText(m["playlistId"]); id != "" {
			p.add(content.Playlist{
				ID:         id,
				Title:      text(m["title"]),
				VideoCount: firstText(m["videoCountText"], m["videoCountShortText"], m["videoCount"]),
			})
		}
		return true
	case "chipCloudChipRenderer":
		title := text(m["text"])
		token := cleanText(dig(m, "navigationEndpoint", "continuationCommand", "token"))
		if title != "" && token != "" {
			p.add(content.Header{Title: title, Link: content.CategoryKey(token)})
		}
		return true
	case "searchRefinementCardRenderer":
		if q := text(m["query"]); q != "" {
			p.add(content.Search{Query: q})
		}
		return true
	case "shelfRenderer", "richShelfRenderer":
		if title := text(m["title"]); title != "" {
			p.add(content.Header{Title: title})
		}
		return false
	case "transcriptSegmentRenderer":
		ms, _ := strconv.Atoi(cleanText(m["startMs"]))
		if t := text(m["snippet"]); t != "" {
			p.add(content.Caption{VideoID: p.videoID, Start: ms / 1000, Text: t})
		}
		return true
	case "commentThreadRenderer":
		c, ok := p.commentFromThread(m)
		if ok {
			p.add(c)
		}
		return true
	case "commentRenderer":
		if c, ok := commentFromRenderer(m); ok {
			p.add(c)
		}
		return true
	case "commentViewModel":
		if c, ok := p.commentFromViewModel(m); ok {
			p.add(c)
		}
		return true
	case "continuationItemRenderer":
		if t := continuationToken(m); t != "" {
			p.continuation = t
		}
		return true
	case "reelShelfRenderer", "adSlotRenderer", "promotedSparklesWebRenderer",
		"movingThumbnailRenderer", "commentsHeaderRenderer":
		return true
	}
	return false
}

func videoFromRenderer(m map[string]any) (content.Video, bool) {
	id := cleanText(m["videoId"])
	if id == "" {
		return content.Video{}, false
	}

	v := content.Video{
		ID:    id,
		Title: firstText(m["title"], m["headline"]),
		Channel: firstText(
			m["longBylineText"],
			m["shortBylineText"],
			m["ownerText"],
		),
		Views:     firstText(m["viewCountText"], m["shortViewCountText"]),
		Published: text(m["publishedTimeText"]),
	}
	for _, by := range []string{"longBylineText", "shortBylineText", "ownerText"} {
		if id := cleanText(dig(m, by, "runs", 0, "navigationEndpoint", "browseEndpoint", "browseId")); id != "" {
			v.ChannelID = id
			break
		}
	}

	length := text(m["lengthText"])
	if length == "" {
		length = text(dig(m, "thumbnailOverlays", 0, "thumbnailOverlayTimeStatusRenderer", "text"))
	}
	if secs, err := timeutil.ParseDuration(length); err == nil {
		v.Duration = secs
	} else if secs, err := strconv.Atoi(cleanText(m["lengthSeconds"])); err == nil {
		v.Duration = secs
	}
	v.Live = isLive(m)
	if v.Live {
		v.Duration = 0
	}
	return v, true
}

func isLive(m map[string]any) bool {
	badges, _ := m["badges"].([]any)
	for _, b := range badges {
		if cleanText(dig(b, "metadataBadgeRenderer", "style")) == "BADGE_STYLE_TYPE_LIVE_NOW" {
			return true
		}
	}
	overlays, _ := m["thumbnailOverlays"].([]any)
	for _, o := range overlays {
		if cleanText(dig(o, "thumbnailOverlayTimeStatusRenderer", "style")) == "LIVE" {
			return true
		}
	}
	return false
}

func commentFromRenderer(m map[string]any) (content.Comment, bool) {
	body := text(m["contentText"])
	author := text(m["authorText"])
	if body == "" && author == "" {
		return content.Comment{}, false
	}
	return content.Comment{
		Author:     author,
		Text:       body,
		Likes:      text(m["voteCount"]),
		Published:  text(m["publishedTimeText"]),
		ReplyCount: parseCount(m["replyCount"]),
	}, true
}

func (p *parser) commentFromThread(m map[string]any) (content.Comment, bool) {
	var (
		c  content.Comment
		ok bool
	)
	if r, isMap := dig(m, "comment", "commentRenderer").(map[string]any); isMap {
		c, ok = commentFromRenderer(r)
	} else if vm, isMap := dig(m, "commentViewModel", "commentViewModel").(map[string]any); isMap {
		c, ok = p.commentFromViewModel(vm)
	}
	if !ok {
		return content.Comment{}, false
	}

	if r, isMap := find(m["replies"], "continuationItemRenderer").(map[string]any); isMap {
		if token := continuationToken(r); token != "" {
			c.Replies = content.RepliesKey(token)
			if c.ReplyCount == 0 {
				c.ReplyCount = parseCount(dig(m, "replies", "commentRepliesRenderer", "viewReplies", "buttonRenderer", "text"))
			}
			if c.ReplyCount == 0 {
				c.ReplyCount = 1
			}
		}
	}
	if c.Replies == "" {
		c.ReplyCount = 0
	}
	return c, true
}

// loadEntities indexes the comment payloads newer responses ship in
// frameworkUpdates instead of inline renderers.
func (p *parser) loadEntities(root any) {
	mutations, _ := dig(root, "frameworkUpdates", "entityBatchUpdate", "mutations").([]any)
	for _, mu := range mutations {
		key := cleanText(dig(mu, "entityKey"))
		payload := dig(mu, "payload", "commentEntityPayload")
		if key == "" || payload == nil {
			continue
		}
		if p.entities == nil {
			p.entities = make(map[string]any)
		}
		p.entities[key] = payload
	}
}

func (p *parser) commentFromViewModel(m map[string]any) (content.Comment, bool) {
	e := p.entities[cleanText(m["commentKey"])]
	if e == nil {
		return content.Comment{}, false
	}
	c := content.Comment{
		Author:     cleanText(dig(e, "author", "displayName")),
		Text:       text(dig(e, "properties", "content")),
		Likes:      cleanText(dig(e, "toolbar", "likeCountNotliked")),
		Published:  cleanText(dig(e, "properties", "publishedTime")),
		ReplyCount: parseCount(dig(e, "toolbar", "replyCount")),
	}
	if c.Author == "" && c.Text == "" {
		return content.Comment{}, false
	}
	return c, true
}

// watchPanels returns the transcript and comment section entries of a
// watch page, found in its engagement panels.
func watchPanels(root any, videoID string) []content.Item {
	var (
		transcript content.Item
		comments   content.Item
	)
	panels, _ := dig(root, "engagementPanels").([]any)
	for _, panel := range panels {
		r := dig(panel, "engagementPanelSectionListRenderer")
		id := cleanText(dig(r, "panelIdentifier"))
		if id == "" {
			id = cleanText(dig(r, "targetId"))
		}
		switch {
		case strings.Contains(id, "transcript"):
			params := cleanText(dig(find(r, "getTranscriptEndpoint"), "params"))
			if params != "" && transcript == nil {
				transcript = content.Transcript{VideoID: videoID, Params: params}
			}
		case strings.Contains(id, "comments"):
			cir := find(dig(r, "content"), "continuationItemRenderer")
			token := continuationToken(cir)
			if token == "" || comments != nil {
				continue
			}
			title := text(dig(r, "header", "engagementPanelTitleHeaderRenderer", "title"))
			if count := text(dig(r, "header", "engagementPanelTitleHeaderRenderer", "contextualInfo")); count != "" {
				title = strings.TrimSpace(title + " " + count)
			}
			comments = content.CommentSection{VideoID: videoID, Title: title, Token: token}
		}
	}

	var out []content.Item
	if transcript != nil {
		out = append(out, transcript)
	}
	if comments != nil {
		out = append(out, comments)
	}
	return out
}

// searchRefinements turns the suggested queries of a search response into
// Search items.
func searchRefinements(root any) []content.Item {
	raw, _ := dig(root, "refinements").([]any)
	out := make([]content.Item, 0, len(raw))
	for _, r := range raw {
		if q := cleanText(r); q != "" {
			out = append(out, content.Search{Query: q})
		}
	}
	return out
}
