// Package fetch loads pages asynchronously. Requests are issued as bubbletea
// commands and their results come back through the program's message queue,
// so the navigation stack is only ever touched on the event loop.
package fetch

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/user/ytui/content"
	"github.com/user/ytui/nav"
)

// DefaultTimeout bounds a single backend call.
const DefaultTimeout = 15 * time.Second

// Request describes one backend call.
type Request struct {
	Key content.Key
	// Continuation is empty for the first batch of a page.
	Continuation string
	// Refresh asks caching backends to skip their stored copy.
	Refresh bool
}

// Backend produces content for a key.
type Backend interface {
	Fetch(ctx context.Context, req Request) (content.Batch, error)
}

// Mode says how a result is merged into its page.
type Mode int

const (
	// ModeReplace swaps the page's items wholesale.
	ModeReplace Mode = iota
	// ModeAppend adds a continuation batch.
	ModeAppend
)

func (m Mode) String() string {
	if m == ModeAppend {
		return "append"
	}
	return "replace"
}

// ResultMsg carries a finished fetch back to the event loop.
type ResultMsg struct {
	PageID     uint64
	Key        content.Key
	Generation uint64
	Mode       Mode
	Batch      content.Batch
	Err        error
}

// Coordinator issues fetches for pages and merges their results.
// Request, Refresh, LoadMore and Apply must all be called from the event
// loop.
type Coordinator struct {
	backend Backend
	timeout time.Duration
	// pending holds the first-load fetch in flight for each key.
	pending map[content.Key]*pendingFetch
}

// pendingFetch is a first-load fetch other pages with the same key wait on.
type pendingFetch struct {
	origin     uint64
	generation uint64
	waiters    []waiter
}

type waiter struct {
	pageID     uint64
	generation uint64
}

// NewCoordinator creates a coordinator. A non-positive timeout selects
// DefaultTimeout.
func NewCoordinator(backend Backend, timeout time.Duration) *Coordinator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Coordinator{
		backend: backend,
		timeout: timeout,
		pending: make(map[content.Key]*pendingFetch),
	}
}

// Request loads a page that has no items yet, or re-loads a failed one.
// It returns nil when a replacing fetch for the page is already in flight,
// or when another page is already loading the same key; that page's
// result is then shared.
func (c *Coordinator) Request(p *nav.Page) tea.Cmd {
	if p.InFlight {
		return nil
	}
	if p.State == nav.Failed {
		p.State = nav.Pending
		p.Err = nil
	}
	p.InFlight = true

	if pf, ok := c.pending[p.Key]; ok {
		pf.waiters = append(pf.waiters, waiter{pageID: p.ID, generation: p.Generation})
		return nil
	}
	c.pending[p.Key] = &pendingFetch{origin: p.ID, generation: p.Generation}
	return c.fetch(p, ModeReplace, Request{Key: p.Key})
}

// Refresh re-fetches a loaded or failed page. Bumping the generation makes
// any older result for the page stale. Refreshing a pending page is a no-op.
func (c *Coordinator) Refresh(p *nav.Page) tea.Cmd {
	if p.State == nav.Pending {
		return nil
	}
	p.Generation++
	p.InFlight = true
	p.LoadingMore = false
	return c.fetch(p, ModeReplace, Request{Key: p.Key, Refresh: true})
}

// LoadMore fetches the next batch of a loaded page that has a continuation.
func (c *Coordinator) LoadMore(p *nav.Page) tea.Cmd {
	if p.State != nav.Loaded || p.Continuation == "" || p.LoadingMore || p.InFlight {
		return nil
	}
	p.LoadingMore = true
	return c.fetch(p, ModeAppend, Request{Key: p.Key, Continuation: p.Continuation})
}

func (c *Coordinator) fetch(p *nav.Page, mode Mode, req Request) tea.Cmd {
	backend := c.backend
	timeout := c.timeout
	id := p.ID
	gen := p.Generation

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		batch, err := backend.Fetch(ctx, req)
		if err != nil {
			log.Printf("fetch %s (%s): %v", req.Key, mode, err)
		}
		return ResultMsg{
			PageID:     id,
			Key:        req.Key,
			Generation: gen,
			Mode:       mode,
			Batch:      batch,
			Err:        err,
		}
	}
}

// Apply merges a result into its page and reports whether it was used.
// Results for pages no longer on the stack, or from an older generation,
// are dropped. rows is the number of visible list rows, used to keep the
// page's cursor valid.
//
// A failed append leaves the page loaded with its items intact; the caller
// decides how to surface msg.Err.
func (c *Coordinator) Apply(s *nav.Stack, msg ResultMsg, rows int) bool {
	used := false
	if msg.Mode == ModeReplace {
		if pf, ok := c.pending[msg.Key]; ok && pf.origin == msg.PageID && pf.generation == msg.Generation {
			delete(c.pending, msg.Key)
			for _, w := range pf.waiters {
				if c.apply(s, w.pageID, w.generation, msg, rows) {
					used = true
				}
			}
		}
	}
	if c.apply(s, msg.PageID, msg.Generation, msg, rows) {
		used = true
	}
	return used
}

// apply merges msg into the page with the given ID if it is still on the
// stack at the given generation.
func (c *Coordinator) apply(s *nav.Stack, pageID, generation uint64, msg ResultMsg, rows int) bool {
	e := s.Find(pageID)
	if e == nil {
		return false
	}
	p := e.Page
	if generation != p.Generation {
		return false
	}

	switch msg.Mode {
	case ModeReplace:
		if !p.InFlight {
			return false
		}
		p.InFlight = false
		if msg.Err != nil {
			p.Fail(msg.Err)
		} else {
			p.Replace(msg.Batch.Items, msg.Batch.Continuation)
		}
	case ModeAppend:
		if !p.LoadingMore {
			return false
		}
		p.LoadingMore = false
		if msg.Err == nil {
			p.Append(msg.Batch.Items, msg.Batch.Continuation)
		}
	}
	e.Cursor.Clamp(len(p.Items), rows)
	return true
}
