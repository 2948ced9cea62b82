// Package youtube fetches pages from YouTube's web endpoints and turns them
// into content items.
package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/ytui/content"
	"github.com/user/ytui/fetch"
)

const (
	// DefaultBaseURL is where both the home page and the youtubei API live.
	DefaultBaseURL = "https://www.youtube.com"

	clientName    = "WEB"
	clientVersion = "2.20250101.00.00"
	userAgent     = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"
)

// ErrUnsupported is returned for keys the client has no endpoint for.
var ErrUnsupported = errors.New("youtube: content not supported")

// ErrNoInitialData is returned when the home page carries no ytInitialData.
var ErrNoInitialData = errors.New("youtube: no initial data in page")

var visitorDataRe = regexp.MustCompile(`"VISITOR_DATA":"([^"]+)"`)

// Client implements fetch.Backend against YouTube.
type Client struct {
	httpClient *http.Client
	baseURL    string

	mu          sync.Mutex
	visitorData string
}

// New creates a client. A nil httpClient gets a 15 second timeout and an
// empty baseURL selects DefaultBaseURL.
func New(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{httpClient: httpClient, baseURL: strings.TrimRight(baseURL, "/")}
}

// Fetch resolves a content key to a batch of items.
func (c *Client) Fetch(ctx context.Context, req fetch.Request) (content.Batch, error) {
	scheme, args, err := content.ParseKey(req.Key)
	if err != nil {
		return content.Batch{}, err
	}

	if req.Continuation != "" {
		return c.continuation(ctx, scheme, args, req.Continuation)
	}

	switch scheme {
	case content.SchemeHome:
		return c.home(ctx)
	case content.SchemeCategory:
		return c.continuation(ctx, scheme, args, args[0])
	case content.SchemeSearch:
		return c.search(ctx, args[0])
	case content.SchemeNext:
		return c.next(ctx, args[0])
	case content.SchemeTranscript:
		return c.transcript(ctx, args[0], args[1])
	case content.SchemeComments, content.SchemeReplies:
		return c.continuation(ctx, scheme, args, args[len(args)-1])
	}
	return content.Batch{}, fmt.Errorf("%w: %s", ErrUnsupported, req.Key)
}

// home scrapes the landing page, which embeds its first batch as
// ytInitialData.
func (c *Client) home(ctx context.Context) (content.Batch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return content.Batch{}, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return content.Batch{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return content.Batch{}, fmt.Errorf("home request failed: %s (%s)", resp.Status, string(bodyBytes))
	}

	data, visitor, err := extractInitialData(resp.Body)
	if err != nil {
		return content.Batch{}, err
	}
	if visitor != "" {
		c.mu.Lock()
		c.visitorData = visitor
		c.mu.Unlock()
	}

	p := newParser(data, "")
	p.walk(dig(data, "contents"))
	return p.batch(), nil
}

// extractInitialData pulls the ytInitialData object and the visitor ID out
// of a page's inline scripts.
func extractInitialData(r io.Reader) (map[string]any, string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, "", fmt.Errorf("parse home page: %w", err)
	}

	var (
		data    map[string]any
		visitor string
		decErr  error
	)
	doc.Find("script").EachWithBreak(func(i int, s *goquery.Selection) bool {
		src := s.Text()
		if visitor == "" {
			if m := visitorDataRe.FindStringSubmatch(src); m != nil {
				visitor = m[1]
			}
		}
		if data != nil {
			return visitor == ""
		}
		idx := strings.Index(src, "ytInitialData")
		if idx < 0 {
			return true
		}
		brace := strings.Index(src[idx:], "{")
		if brace < 0 {
			return true
		}
		// The decoder stops after the first value, ignoring the trailing ";".
		if err := json.NewDecoder(strings.NewReader(src[idx+brace:])).Decode(&data); err != nil {
			decErr = err
			data = nil
		}
		return visitor == ""
	})

	if data == nil {
		if decErr != nil {
			return nil, "", fmt.Errorf("decode ytInitialData: %w", decErr)
		}
		return nil, "", ErrNoInitialData
	}
	return data, visitor, nil
}

func (c *Client) search(ctx context.Context, query string) (content.Batch, error) {
	if strings.TrimSpace(query) == "" {
		return content.Batch{}, nil
	}
	decoded, err := c.post(ctx, "search", map[string]any{"query": query})
	if err != nil {
		return content.Batch{}, err
	}

	p := newParser(decoded, "")
	p.walk(dig(decoded, "contents"))
	b := p.batch()
	b.Items = append(b.Items, searchRefinements(decoded)...)
	return b, nil
}

// next loads a watch page: transcript and comment entries first, then the
// recommended videos.
func (c *Client) next(ctx context.Context, videoID string) (content.Batch, error) {
	decoded, err := c.post(ctx, "next", map[string]any{"videoId": videoID})
	if err != nil {
		return content.Batch{}, err
	}

	p := newParser(decoded, videoID)
	p.items = watchPanels(decoded, videoID)
	p.seen[videoID] = true
	p.walk(dig(decoded, "contents", "twoColumnWatchNextResults", "secondaryResults"))
	return p.batch(), nil
}

func (c *Client) transcript(ctx context.Context, videoID, params string) (content.Batch, error) {
	decoded, err := c.post(ctx, "get_transcript", map[string]any{"params": params})
	if err != nil {
		return content.Batch{}, err
	}

	p := newParser(decoded, videoID)
	p.walk(dig(decoded, "actions"))
	return p.batch(), nil
}

// continuation fetches a follow-up batch. Category, comment and reply
// pages are continuations from their very first batch.
func (c *Client) continuation(ctx context.Context, scheme string, args []string, token string) (content.Batch, error) {
	endpoint := "browse"
	videoID := ""
	switch scheme {
	case content.SchemeSearch:
		endpoint = "search"
	case content.SchemeNext, content.SchemeComments, content.SchemeReplies:
		endpoint = "next"
		if scheme != content.SchemeReplies {
			videoID = args[0]
		}
	case content.SchemeTranscript, content.SchemeChannel, content.SchemePlaylist:
		return content.Batch{}, fmt.Errorf("%w: more %s", ErrUnsupported, scheme)
	}

	decoded, err := c.post(ctx, endpoint, map[string]any{"continuation": token})
	if err != nil {
		return content.Batch{}, err
	}

	p := newParser(decoded, videoID)
	if videoID != "" {
		p.seen[videoID] = true
	}
	p.walk(dig(decoded, "onResponseReceivedActions"))
	p.walk(dig(decoded, "onResponseReceivedEndpoints"))
	p.walk(dig(decoded, "onResponseReceivedCommands"))
	return p.batch(), nil
}

func (c *Client) clientContext() map[string]any {
	client := map[string]any{
		"hl":            "en",
		"gl":            "US",
		"clientName":    clientName,
		"clientVersion": clientVersion,
	}
	c.mu.Lock()
	if c.visitorData != "" {
		client["visitorData"] = c.visitorData
	}
	c.mu.Unlock()
	return map[string]any{"client": client}
}

// post calls a youtubei v1 endpoint and decodes the JSON response.
func (c *Client) post(ctx context.Context, endpoint string, body map[string]any) (map[string]any, error) {
	body["context"] = c.clientContext()
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/youtubei/v1/%s?prettyPrint=false", c.baseURL, endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Youtube-Client-Name", "1")
	req.Header.Set("X-Youtube-Client-Version", clientVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("%s request failed: %s (%s)", endpoint, resp.Status, string(bodyBytes))
	}

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return decoded, nil
}
