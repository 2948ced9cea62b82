package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/user/ytui/content"
	"github.com/user/ytui/fetch"
)

const homeHTML = `<!DOCTYPE html><html><head>
<script>ytcfg.set({"VISITOR_DATA":"CgtWaXNpdG9y"});</script>
</head><body>
<script>var ytInitialData = {"contents":{"twoColumnBrowseResultsRenderer":{"tabs":[{"tabRenderer":{"content":{"richGridRenderer":{
"header":{"feedFilterChipBarRenderer":{"contents":[
  {"chipCloudChipRenderer":{"text":{"runs":[{"text":"All"}]}}},
  {"chipCloudChipRenderer":{"text":{"runs":[{"text":"Music"}]},"navigationEndpoint":{"continuationCommand":{"token":"chip-music"}}}}
]}},
"contents":[
  {"richItemRenderer":{"content":{"videoRenderer":{"videoId":"abc123","title":{"runs":[{"text":"Cats"}]},"lengthText":{"simpleText":"3:05"},
    "longBylineText":{"runs":[{"text":"Cat TV","navigationEndpoint":{"browseEndpoint":{"browseId":"UCcat"}}}]},"viewCountText":{"simpleText":"1M views"}}}}},
  {"richItemRenderer":{"content":{"videoRenderer":{"videoId":"live1","title":{"runs":[{"text":"Live now"}]},
    "badges":[{"metadataBadgeRenderer":{"style":"BADGE_STYLE_TYPE_LIVE_NOW"}}]}}}},
  {"richItemRenderer":{"content":{"videoRenderer":{"videoId":"abc123","title":{"runs":[{"text":"Cats again"}]}}}}},
  {"continuationItemRenderer":{"continuationEndpoint":{"continuationCommand":{"token":"home-more"}}}}
]}}}}]}}};</script>
</body></html>`

const searchJSON = `{
 "refinements":["cats funny","cats sleeping"],
 "contents":{"twoColumnSearchResultsRenderer":{"primaryContents":{"sectionListRenderer":{"contents":[
  {"itemSectionRenderer":{"contents":[
    {"videoRenderer":{"videoId":"v1","title":{"runs":[{"text":"First"}]},"lengthText":{"simpleText":"1:00:00"}}},
    {"channelRenderer":{"channelId":"UC1","title":{"simpleText":"Cat Channel"}}},
    {"playlistRenderer":{"playlistId":"PL1","title":{"simpleText":"Cat Mix"},"videoCount":"12"}},
    {"reelShelfRenderer":{"items":[{"videoRenderer":{"videoId":"short1"}}]}},
    {"shelfRenderer":{"title":{"simpleText":"Latest"},"content":{"verticalListRenderer":{"items":[
      {"videoRenderer":{"videoId":"v2","title":{"simpleText":"Second"}}}
    ]}}}}
  ]}},
  {"continuationItemRenderer":{"continuationEndpoint":{"continuationCommand":{"token":"search-more"}}}}
 ]}}}}
}`

const nextJSON = `{
 "engagementPanels":[
  {"engagementPanelSectionListRenderer":{"panelIdentifier":"engagement-panel-comments-section",
    "header":{"engagementPanelTitleHeaderRenderer":{"title":{"runs":[{"text":"Comments"}]},"contextualInfo":{"runs":[{"text":"1.2K"}]}}},
    "content":{"sectionListRenderer":{"contents":[{"itemSectionRenderer":{"contents":[
      {"continuationItemRenderer":{"continuationEndpoint":{"continuationCommand":{"token":"comments-tok"}}}}]}}]}}}},
  {"engagementPanelSectionListRenderer":{"panelIdentifier":"engagement-panel-searchable-transcript",
    "content":{"continuationItemRenderer":{"continuationEndpoint":{"getTranscriptEndpoint":{"params":"tr-params"}}}}}}
 ],
 "contents":{"twoColumnWatchNextResults":{
  "results":{"results":{"contents":[{"continuationItemRenderer":{"continuationEndpoint":{"continuationCommand":{"token":"not-this"}}}}]}},
  "secondaryResults":{"secondaryResults":{"results":[
   {"compactVideoRenderer":{"videoId":"abc123","title":{"simpleText":"Self"}}},
   {"compactVideoRenderer":{"videoId":"rec1","title":{"simpleText":"Recommended"},"shortBylineText":{"runs":[{"text":"Someone"}]}}},
   {"continuationItemRenderer":{"continuationEndpoint":{"continuationCommand":{"token":"next-more"}}}}
  ]}}
 }}
}`

const commentsJSON = `{
 "onResponseReceivedEndpoints":[
  {"reloadContinuationItemsCommand":{"continuationItems":[{"commentsHeaderRenderer":{"countText":{"runs":[{"text":"2 Comments"}]}}}]}},
  {"reloadContinuationItemsCommand":{"continuationItems":[
   {"commentThreadRenderer":{"comment":{"commentRenderer":{"authorText":{"simpleText":"@ann"},"contentText":{"runs":[{"text":"nice "},{"text":"cat"}]},"replyCount":3}},
     "replies":{"commentRepliesRenderer":{"contents":[{"continuationItemRenderer":{"continuationEndpoint":{"continuationCommand":{"token":"replies-tok"}}}}]}}}},
   {"commentThreadRenderer":{"commentViewModel":{"commentViewModel":{"commentKey":"k2"}}}},
   {"continuationItemRenderer":{"continuationEndpoint":{"continuationCommand":{"token":"comments-more"}}}}
  ]}}
 ],
 "frameworkUpdates":{"entityBatchUpdate":{"mutations":[
  {"entityKey":"k2","payload":{"commentEntityPayload":{"author":{"displayName":"@bob"},"properties":{"content":{"content":"meow"},"publishedTime":"1 day ago"},"toolbar":{"replyCount":"","likeCountNotliked":"5"}}}}
 ]}}
}`

const transcriptJSON = `{"actions":[{"updateEngagementPanelAction":{"content":{"transcriptRenderer":{"content":{"transcriptSearchPanelRenderer":{"body":{"transcriptSegmentListRenderer":{"initialSegments":[
 {"transcriptSegmentRenderer":{"startMs":"0","snippet":{"runs":[{"text":"hello"}]}}},
 {"transcriptSegmentRenderer":{"startMs":"61500","snippet":{"runs":[{"text":"world"}]}}}
]}}}}}}}}]}`

type recorded struct {
	path string
	body map[string]any
}

func newTestServer(t *testing.T) (*httptest.Server, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{path: r.URL.Path}
		if r.Method == http.MethodPost {
			data, _ := io.ReadAll(r.Body)
			json.Unmarshal(data, &rec.body)
		}
		calls = append(calls, rec)

		switch r.URL.Path {
		case "/":
			io.WriteString(w, homeHTML)
		case "/youtubei/v1/search":
			io.WriteString(w, searchJSON)
		case "/youtubei/v1/next":
			if _, ok := rec.body["continuation"]; ok {
				io.WriteString(w, commentsJSON)
				return
			}
			io.WriteString(w, nextJSON)
		case "/youtubei/v1/get_transcript":
			io.WriteString(w, transcriptJSON)
		default:
			http.Error(w, "nope", http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestHomeScrapesInitialData(t *testing.T) {
	srv, calls := newTestServer(t)
	c := New(srv.Client(), srv.URL)

	b, err := c.Fetch(context.Background(), fetch.Request{Key: content.HomeKey})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	want := []content.Item{
		content.Header{Title: "Music", Link: content.CategoryKey("chip-music")},
		content.Video{ID: "abc123", Title: "Cats", Duration: 185, Channel: "Cat TV", ChannelID: "UCcat", Views: "1M views"},
		content.Video{ID: "live1", Title: "Live now", Live: true},
	}
	if len(b.Items) != len(want) {
		t.Fatalf("got %d items: %#v", len(b.Items), b.Items)
	}
	for i := range want {
		if b.Items[i] != want[i] {
			t.Errorf("item %d = %#v, want %#v", i, b.Items[i], want[i])
		}
	}
	if b.Continuation != "home-more" {
		t.Errorf("continuation = %q", b.Continuation)
	}

	// Later API calls carry the visitor ID scraped from the page.
	if _, err := c.Fetch(context.Background(), fetch.Request{Key: content.SearchKey("cats")}); err != nil {
		t.Fatal(err)
	}
	last := (*calls)[len(*calls)-1]
	if got := dig(last.body, "context", "client", "visitorData"); got != "CgtWaXNpdG9y" {
		t.Errorf("visitorData = %v", got)
	}
}

func TestSearch(t *testing.T) {
	srv, calls := newTestServer(t)
	c := New(srv.Client(), srv.URL)

	b, err := c.Fetch(context.Background(), fetch.Request{Key: content.SearchKey("cats")})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := (*calls)[0].body["query"]; got != "cats" {
		t.Errorf("query sent = %v", got)
	}

	want := []content.Item{
		content.Video{ID: "v1", Title: "First", Duration: 3600},
		content.Channel{ID: "UC1", Title: "Cat Channel"},
		content.Playlist{ID: "PL1", Title: "Cat Mix", VideoCount: "12"},
		content.Header{Title: "Latest"},
		content.Video{ID: "v2", Title: "Second"},
		content.Search{Query: "cats funny"},
		content.Search{Query: "cats sleeping"},
	}
	if len(b.Items) != len(want) {
		t.Fatalf("got %d items: %#v", len(b.Items), b.Items)
	}
	for i := range want {
		if b.Items[i] != want[i] {
			t.Errorf("item %d = %#v, want %#v", i, b.Items[i], want[i])
		}
	}
	if b.Continuation != "search-more" {
		t.Errorf("continuation = %q", b.Continuation)
	}
}

func TestSearchContinuationPostsToken(t *testing.T) {
	srv, calls := newTestServer(t)
	c := New(srv.Client(), srv.URL)

	if _, err := c.Fetch(context.Background(), fetch.Request{Key: content.SearchKey("cats"), Continuation: "search-more"}); err != nil {
		t.Fatal(err)
	}
	got := (*calls)[0]
	if got.path != "/youtubei/v1/search" || got.body["continuation"] != "search-more" {
		t.Errorf("call = %+v", got)
	}
	if _, ok := got.body["query"]; ok {
		t.Error("continuation request also sent the query")
	}
}

func TestNextListsPanelsThenRecommendations(t *testing.T) {
	srv, _ := newTestServer(t)
	c := New(srv.Client(), srv.URL)

	b, err := c.Fetch(context.Background(), fetch.Request{Key: content.NextKey("abc123")})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	want := []content.Item{
		content.Transcript{VideoID: "abc123", Params: "tr-params"},
		content.CommentSection{VideoID: "abc123", Title: "Comments 1.2K", Token: "comments-tok"},
		content.Video{ID: "rec1", Title: "Recommended", Channel: "Someone"},
	}
	if len(b.Items) != len(want) {
		t.Fatalf("got %d items: %#v", len(b.Items), b.Items)
	}
	for i := range want {
		if b.Items[i] != want[i] {
			t.Errorf("item %d = %#v, want %#v", i, b.Items[i], want[i])
		}
	}
	if b.Continuation != "next-more" {
		t.Errorf("continuation = %q", b.Continuation)
	}
}

func TestComments(t *testing.T) {
	srv, calls := newTestServer(t)
	c := New(srv.Client(), srv.URL)

	b, err := c.Fetch(context.Background(), fetch.Request{Key: content.CommentsKey("abc123", "comments-tok")})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := (*calls)[0].body["continuation"]; got != "comments-tok" {
		t.Errorf("continuation sent = %v", got)
	}
	if len(b.Items) != 2 {
		t.Fatalf("got %d items: %#v", len(b.Items), b.Items)
	}

	first := b.Items[0].(content.Comment)
	if first.Author != "@ann" || first.Text != "nice cat" || first.ReplyCount != 3 || first.Replies != content.RepliesKey("replies-tok") {
		t.Errorf("first comment = %#v", first)
	}
	second := b.Items[1].(content.Comment)
	if second.Author != "@bob" || second.Text != "meow" || second.ReplyCount != 0 || second.Replies != "" {
		t.Errorf("second comment = %#v", second)
	}
	if b.Continuation != "comments-more" {
		t.Errorf("continuation = %q", b.Continuation)
	}
}

func TestTranscript(t *testing.T) {
	srv, calls := newTestServer(t)
	c := New(srv.Client(), srv.URL)

	b, err := c.Fetch(context.Background(), fetch.Request{Key: content.TranscriptKey("abc123", "tr-params")})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := (*calls)[0].body["params"]; got != "tr-params" {
		t.Errorf("params sent = %v", got)
	}
	want := []content.Item{
		content.Caption{VideoID: "abc123", Start: 0, Text: "hello"},
		content.Caption{VideoID: "abc123", Start: 61, Text: "world"},
	}
	if len(b.Items) != 2 || b.Items[0] != want[0] || b.Items[1] != want[1] {
		t.Fatalf("items = %#v", b.Items)
	}
}

func TestUnsupportedKeys(t *testing.T) {
	c := New(nil, "http://127.0.0.1:0")
	for _, k := range []content.Key{content.ChannelKey("UC1"), content.PlaylistKey("PL1")} {
		if _, err := c.Fetch(context.Background(), fetch.Request{Key: k}); !errors.Is(err, ErrUnsupported) {
			t.Errorf("Fetch(%s) error = %v, want ErrUnsupported", k, err)
		}
	}
	if _, err := c.Fetch(context.Background(), fetch.Request{Key: "bogus"}); !errors.Is(err, content.ErrUnknownKey) {
		t.Errorf("Fetch(bogus) error = %v, want ErrUnknownKey", err)
	}
}

func TestHTTPErrorIsReported(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL)
	_, err := c.Fetch(context.Background(), fetch.Request{Key: content.SearchKey("cats")})
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("error = %v, want a 429 failure", err)
	}
}

func TestHomeWithoutInitialData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html><body><script>var x = 1;</script></body></html>")
	}))
	defer srv.Close()

	_, err := New(srv.Client(), srv.URL).Fetch(context.Background(), fetch.Request{Key: content.HomeKey})
	if !errors.Is(err, ErrNoInitialData) {
		t.Fatalf("error = %v, want ErrNoInitialData", err)
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{float64(7), 7},
		{"12", 12},
		{"1,204", 1204},
		{"3.4K", 3400},
		{map[string]any{"runs": []any{map[string]any{"text": "View 12 replies"}}}, 12},
		{"", 0},
		{nil, 0},
	}
	for _, tt := range tests {
		if got := parseCount(tt.in); got != tt.want {
			t.Errorf("parseCount(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
