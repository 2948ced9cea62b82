package fetch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/user/ytui/content"
	"github.com/user/ytui/nav"
)

// fakeBackend returns n videos per call, numbered by call count, and
// records every request it sees.
type fakeBackend struct {
	mu    sync.Mutex
	calls map[content.Key]int
	reqs  []Request
	n     int
	err   error
	cont  string
}

func newFakeBackend(n int) *fakeBackend {
	return &fakeBackend{calls: make(map[content.Key]int), n: n}
}

func (f *fakeBackend) Fetch(_ context.Context, req Request) (content.Batch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[req.Key]++
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return content.Batch{}, f.err
	}
	call := f.calls[req.Key]
	items := make([]content.Item, f.n)
	for i := range items {
		items[i] = content.Video{ID: fmt.Sprintf("v%d-%d", call, i)}
	}
	return content.Batch{Items: items, Continuation: f.cont}, nil
}

func (f *fakeBackend) count(k content.Key) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[k]
}

func TestRequestCoalescesWhilePending(t *testing.T) {
	backend := newFakeBackend(3)
	c := NewCoordinator(backend, time.Second)
	s := nav.NewStack(content.HomeKey)
	key := content.NextKey("abc123")

	e, _ := s.Push(key)
	first := c.Request(e.Page)
	if first == nil {
		t.Fatal("first request returned no command")
	}

	again, pushed := s.Push(key)
	if pushed {
		t.Fatal("second push stacked a duplicate")
	}
	if cmd := c.Request(again.Page); cmd != nil {
		t.Fatal("second request while pending issued a command")
	}

	msg := first().(ResultMsg)
	if !c.Apply(s, msg, 10) {
		t.Fatal("result was not applied")
	}
	if got := backend.count(key); got != 1 {
		t.Errorf("backend calls = %d, want 1", got)
	}
	if e.Page.State != nav.Loaded || len(e.Page.Items) != 3 {
		t.Errorf("page = %v with %d items", e.Page.State, len(e.Page.Items))
	}
	if e.Page.InFlight {
		t.Error("page still marked in flight")
	}
}

func TestRequestSharedAcrossPagesWithSameKey(t *testing.T) {
	backend := newFakeBackend(2)
	c := NewCoordinator(backend, time.Second)
	s := nav.NewStack(content.HomeKey)
	key := content.CategoryKey("music")

	first, _ := s.Push(key)
	cmd := c.Request(first.Page)
	if cmd == nil {
		t.Fatal("first request returned no command")
	}
	s.Pop()

	second, _ := s.Push(key)
	if second.Page.ID == first.Page.ID {
		t.Fatal("push after pop reused the popped page")
	}
	if again := c.Request(second.Page); again != nil {
		t.Fatal("request for a key already in flight issued a command")
	}

	if !c.Apply(s, cmd().(ResultMsg), 10) {
		t.Fatal("shared result was not applied")
	}
	if got := backend.count(key); got != 1 {
		t.Errorf("backend calls = %d, want 1", got)
	}
	if second.Page.State != nav.Loaded || len(second.Page.Items) != 2 || second.Page.InFlight {
		t.Errorf("waiting page = %v with %d items, in flight %v",
			second.Page.State, len(second.Page.Items), second.Page.InFlight)
	}

	// Once the shared fetch landed, a new page with the key fetches again.
	third, _ := s.Push(key)
	if third == second {
		t.Fatal("loaded page was coalesced")
	}
	if c.Request(third.Page) == nil {
		t.Error("request after the shared fetch finished issued nothing")
	}
}

func TestFailureMarksPageFailed(t *testing.T) {
	backend := newFakeBackend(0)
	backend.err = errors.New("network down")
	c := NewCoordinator(backend, time.Second)
	s := nav.NewStack(content.HomeKey)

	msg := c.Request(s.Root().Page)().(ResultMsg)
	c.Apply(s, msg, 10)

	p := s.Root().Page
	if p.State != nav.Failed || !errors.Is(p.Err, backend.err) {
		t.Fatalf("state = %v err = %v", p.State, p.Err)
	}
	if _, ok := s.Root().Cursor.Selected(len(p.Items)); ok {
		t.Error("failed page has a selection")
	}

	backend.err = nil
	cmd := c.Request(p)
	if cmd == nil {
		t.Fatal("re-request of failed page issued nothing")
	}
	if p.State != nav.Pending {
		t.Errorf("state during retry = %v, want pending", p.State)
	}
	c.Apply(s, cmd().(ResultMsg), 10)
	if p.State != nav.Loaded {
		t.Errorf("state after retry = %v, want loaded", p.State)
	}
}

func TestStaleRefreshDiscarded(t *testing.T) {
	backend := newFakeBackend(2)
	c := NewCoordinator(backend, time.Second)
	s := nav.NewStack(content.HomeKey)
	p := s.Root().Page
	c.Apply(s, c.Request(p)().(ResultMsg), 10)

	older := c.Refresh(p)
	newer := c.Refresh(p)
	oldMsg := older().(ResultMsg)
	newMsg := newer().(ResultMsg)

	if !c.Apply(s, newMsg, 10) {
		t.Fatal("current result rejected")
	}
	if c.Apply(s, oldMsg, 10) {
		t.Fatal("stale result applied")
	}
	if got := p.Items[0].(content.Video).ID; got != "v3-0" {
		t.Errorf("first item = %s, want v3-0", got)
	}
}

func TestRefreshPendingIsNoop(t *testing.T) {
	c := NewCoordinator(newFakeBackend(1), time.Second)
	s := nav.NewStack(content.HomeKey)
	if cmd := c.Refresh(s.Root().Page); cmd != nil {
		t.Fatal("refresh of a pending page issued a command")
	}
}

func TestRefreshReplacesAndClampsCursor(t *testing.T) {
	backend := newFakeBackend(20)
	c := NewCoordinator(backend, time.Second)
	s := nav.NewStack(content.HomeKey)
	e := s.Root()
	c.Apply(s, c.Request(e.Page)().(ResultMsg), 5)
	e.Cursor.Bottom(20, 5)
	old := e.Page.Items

	backend.n = 4
	c.Apply(s, c.Refresh(e.Page)().(ResultMsg), 5)

	if len(old) != 20 || old[0].(content.Video).ID != "v1-0" {
		t.Fatal("refresh mutated the previous item slice")
	}
	if len(e.Page.Items) != 4 {
		t.Fatalf("got %d items, want 4", len(e.Page.Items))
	}
	if e.Cursor.Index != 3 {
		t.Errorf("cursor index = %d, want 3", e.Cursor.Index)
	}
	if !backend.reqs[len(backend.reqs)-1].Refresh {
		t.Error("refresh request not flagged")
	}
}

func TestResultForPoppedPageIgnored(t *testing.T) {
	c := NewCoordinator(newFakeBackend(1), time.Second)
	s := nav.NewStack(content.HomeKey)
	e, _ := s.Push(content.SearchKey("cats"))
	cmd := c.Request(e.Page)
	s.Pop()

	if c.Apply(s, cmd().(ResultMsg), 10) {
		t.Fatal("result for a popped page was applied")
	}

	e, _ = s.Push(content.SearchKey("cats"))
	if c.Request(e.Page) == nil {
		t.Error("dropped result left the key marked in flight")
	}
}

func TestLoadMore(t *testing.T) {
	backend := newFakeBackend(3)
	backend.cont = "tok"
	c := NewCoordinator(backend, time.Second)
	s := nav.NewStack(content.HomeKey)
	p := s.Root().Page

	if c.LoadMore(p) != nil {
		t.Fatal("load more on a pending page issued a command")
	}
	c.Apply(s, c.Request(p)().(ResultMsg), 10)

	cmd := c.LoadMore(p)
	if cmd == nil {
		t.Fatal("load more issued nothing")
	}
	if c.LoadMore(p) != nil {
		t.Fatal("second load more while one is in flight issued a command")
	}

	backend.cont = ""
	msg := cmd().(ResultMsg)
	if msg.Mode != ModeAppend {
		t.Fatalf("mode = %v, want append", msg.Mode)
	}
	c.Apply(s, msg, 10)
	if len(p.Items) != 6 || p.Continuation != "" {
		t.Fatalf("got %d items, continuation %q", len(p.Items), p.Continuation)
	}
	if got := backend.reqs[len(backend.reqs)-1].Continuation; got != "tok" {
		t.Errorf("continuation sent = %q, want tok", got)
	}
	if c.LoadMore(p) != nil {
		t.Error("load more without continuation issued a command")
	}
}

func TestLoadMoreFailureKeepsPage(t *testing.T) {
	backend := newFakeBackend(3)
	backend.cont = "tok"
	c := NewCoordinator(backend, time.Second)
	s := nav.NewStack(content.HomeKey)
	p := s.Root().Page
	c.Apply(s, c.Request(p)().(ResultMsg), 10)

	cmd := c.LoadMore(p)
	backend.err = errors.New("timeout")
	msg := cmd().(ResultMsg)
	if !c.Apply(s, msg, 10) {
		t.Fatal("append failure not applied")
	}
	if p.State != nav.Loaded || len(p.Items) != 3 || p.LoadingMore {
		t.Fatalf("page = %v, %d items, loadingMore %v", p.State, len(p.Items), p.LoadingMore)
	}
	if p.Continuation != "tok" {
		t.Errorf("continuation = %q, want tok kept for retry", p.Continuation)
	}
}

func TestRefreshSupersedesLoadMore(t *testing.T) {
	backend := newFakeBackend(3)
	backend.cont = "tok"
	c := NewCoordinator(backend, time.Second)
	s := nav.NewStack(content.HomeKey)
	p := s.Root().Page
	c.Apply(s, c.Request(p)().(ResultMsg), 10)

	more := c.LoadMore(p)
	refresh := c.Refresh(p)
	c.Apply(s, refresh().(ResultMsg), 10)
	if c.Apply(s, more().(ResultMsg), 10) {
		t.Fatal("append from before the refresh was applied")
	}
	if len(p.Items) != 3 {
		t.Errorf("got %d items, want 3", len(p.Items))
	}
}

type memStore struct {
	data map[string][]byte
	at   map[string]time.Time
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte), at: make(map[string]time.Time)}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, time.Time, bool, error) {
	d, ok := m.data[key]
	return d, m.at[key], ok, nil
}

func (m *memStore) Put(_ context.Context, key string, data []byte, at time.Time) error {
	m.data[key] = data
	m.at[key] = at
	return nil
}

func TestCachedServesFromMemory(t *testing.T) {
	backend := newFakeBackend(2)
	c, err := NewCached(backend, CacheOptions{TTL: time.Minute})
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	req := Request{Key: content.SearchKey("cats")}

	a, _ := c.Fetch(ctx, req)
	b, _ := c.Fetch(ctx, req)
	if backend.count(req.Key) != 1 {
		t.Fatalf("backend calls = %d, want 1", backend.count(req.Key))
	}
	if a.Items[0] != b.Items[0] {
		t.Error("cached batch differs")
	}

	req.Refresh = true
	if _, err := c.Fetch(ctx, req); err != nil {
		t.Fatal(err)
	}
	if backend.count(req.Key) != 2 {
		t.Errorf("refresh did not reach the backend")
	}
}

func TestCachedFallsBackToStore(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	req := Request{Key: content.NextKey("abc123")}

	first, _ := NewCached(newFakeBackend(2), CacheOptions{Store: store})
	if _, err := first.Fetch(ctx, req); err != nil {
		t.Fatal(err)
	}
	if _, ok := store.data[CacheKey(req)]; !ok {
		t.Fatal("batch not written to the store")
	}

	backend := newFakeBackend(2)
	second, _ := NewCached(backend, CacheOptions{Store: store})
	b, err := second.Fetch(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if backend.count(req.Key) != 0 {
		t.Error("store hit still called the backend")
	}
	if len(b.Items) != 2 {
		t.Errorf("got %d items from store, want 2", len(b.Items))
	}
}

func TestCachedExpires(t *testing.T) {
	backend := newFakeBackend(1)
	c, _ := NewCached(backend, CacheOptions{TTL: time.Minute, Store: newMemStore()})
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }
	ctx := context.Background()
	req := Request{Key: content.HomeKey}

	c.Fetch(ctx, req)
	now = now.Add(2 * time.Minute)
	c.Fetch(ctx, req)
	if got := backend.count(req.Key); got != 2 {
		t.Errorf("backend calls = %d, want 2 after expiry", got)
	}
}

func TestCachedDoesNotStoreErrors(t *testing.T) {
	backend := newFakeBackend(1)
	backend.err = errors.New("boom")
	store := newMemStore()
	c, _ := NewCached(backend, CacheOptions{Store: store})

	if _, err := c.Fetch(context.Background(), Request{Key: content.HomeKey}); err == nil {
		t.Fatal("expected error")
	}
	if len(store.data) != 0 {
		t.Error("failed fetch was stored")
	}
}

func TestCacheKey(t *testing.T) {
	if got := CacheKey(Request{Key: "search:cats"}); got != "search:cats" {
		t.Errorf("got %q", got)
	}
	if got := CacheKey(Request{Key: "search:cats", Continuation: "t"}); got != "search:cats#t" {
		t.Errorf("got %q", got)
	}
}
