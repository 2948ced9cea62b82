// Package nav holds the navigation state of the browser: pages, the
// per-page selection cursor and the stack of visited pages.
package nav

import "github.com/user/ytui/content"

// LoadState is the fetch lifecycle of a page.
type LoadState int

const (
	// Pending pages have no items yet and a fetch outstanding.
	Pending LoadState = iota
	// Loaded pages hold the items of their last successful fetch.
	Loaded
	// Failed pages hold the reason in Err and no items.
	Failed
)

func (s LoadState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Page is the ordered set of items produced by one content key.
type Page struct {
	// ID is unique per stack slot, so the same key pushed twice yields two
	// distinct pages.
	ID  uint64
	Key content.Key

	Items        []content.Item
	State        LoadState
	Err          error
	Continuation string

	// Generation is bumped by every refresh. A fetch result carrying an
	// older generation is stale and must be dropped.
	Generation uint64
	// InFlight is set while a replacing fetch (initial load or refresh) is
	// outstanding.
	InFlight bool
	// LoadingMore is set while an appending fetch is outstanding.
	LoadingMore bool
}

// Title is the page heading.
func (p *Page) Title() string {
	return p.Key.Title()
}

// Replace swaps in a new item sequence. The previous slice is left untouched
// so a reader holding it never observes a mix of old and new items.
func (p *Page) Replace(items []content.Item, continuation string) {
	next := make([]content.Item, len(items))
	copy(next, items)
	p.Items = next
	p.Continuation = continuation
	p.State = Loaded
	p.Err = nil
}

// Append adds items fetched with the continuation token.
func (p *Page) Append(items []content.Item, continuation string) {
	next := make([]content.Item, 0, len(p.Items)+len(items))
	next = append(next, p.Items...)
	next = append(next, items...)
	p.Items = next
	p.Continuation = continuation
}

// Fail records a fetch failure.
func (p *Page) Fail(err error) {
	p.Items = nil
	p.Continuation = ""
	p.State = Failed
	p.Err = err
}
