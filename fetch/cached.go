package fetch

import (
	"context"
	"log"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/user/ytui/content"
	"golang.org/x/sync/singleflight"
)

// Store is a persistent page cache.
type Store interface {
	// Get returns the encoded batch stored under key and when it was
	// fetched. ok is false when nothing is stored.
	Get(ctx context.Context, key string) (data []byte, fetchedAt time.Time, ok bool, err error)
	Put(ctx context.Context, key string, data []byte, fetchedAt time.Time) error
}

type memEntry struct {
	batch     content.Batch
	fetchedAt time.Time
}

// Cached wraps a backend with an in-memory LRU tier and an optional
// persistent store. Identical concurrent requests share one backend call.
type Cached struct {
	next  Backend
	mem   *lru.Cache[string, memEntry]
	store Store
	ttl   time.Duration
	group singleflight.Group
	now   func() time.Time
}

// CacheOptions configures NewCached.
type CacheOptions struct {
	// MemoryEntries is the LRU capacity. Zero selects 64.
	MemoryEntries int
	// TTL is how long a stored batch is served without refetching. Zero
	// means stored batches never expire.
	TTL time.Duration
	// Store is optional.
	Store Store
}

// NewCached wraps next.
func NewCached(next Backend, opts CacheOptions) (*Cached, error) {
	size := opts.MemoryEntries
	if size <= 0 {
		size = 64
	}
	mem, err := lru.New[string, memEntry](size)
	if err != nil {
		return nil, err
	}
	return &Cached{
		next:  next,
		mem:   mem,
		store: opts.Store,
		ttl:   opts.TTL,
		now:   time.Now,
	}, nil
}

// CacheKey is the storage key of a request. Continuation batches are cached
// separately from the first batch of a page.
func CacheKey(req Request) string {
	if req.Continuation == "" {
		return string(req.Key)
	}
	return string(req.Key) + "#" + req.Continuation
}

// Fetch serves req from cache when a fresh copy exists, otherwise from the
// wrapped backend. Refresh requests skip the cache read but still update it.
func (c *Cached) Fetch(ctx context.Context, req Request) (content.Batch, error) {
	key := CacheKey(req)
	if !req.Refresh {
		if b, ok := c.lookup(ctx, key); ok {
			return b, nil
		}
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		b, err := c.next.Fetch(ctx, req)
		if err != nil {
			return content.Batch{}, err
		}
		c.remember(ctx, key, b)
		return b, nil
	})
	if err != nil {
		return content.Batch{}, err
	}
	return v.(content.Batch), nil
}

func (c *Cached) fresh(at time.Time) bool {
	return c.ttl <= 0 || c.now().Sub(at) < c.ttl
}

func (c *Cached) lookup(ctx context.Context, key string) (content.Batch, bool) {
	if e, ok := c.mem.Get(key); ok {
		if c.fresh(e.fetchedAt) {
			return e.batch, true
		}
		c.mem.Remove(key)
	}
	if c.store == nil {
		return content.Batch{}, false
	}

	data, at, ok, err := c.store.Get(ctx, key)
	if err != nil {
		log.Printf("cache get %s: %v", key, err)
		return content.Batch{}, false
	}
	if !ok || !c.fresh(at) {
		return content.Batch{}, false
	}
	b, err := content.UnmarshalBatch(data)
	if err != nil {
		log.Printf("cache decode %s: %v", key, err)
		return content.Batch{}, false
	}
	c.mem.Add(key, memEntry{batch: b, fetchedAt: at})
	return b, true
}

func (c *Cached) remember(ctx context.Context, key string, b content.Batch) {
	at := c.now()
	c.mem.Add(key, memEntry{batch: b, fetchedAt: at})
	if c.store == nil {
		return
	}
	data, err := content.MarshalBatch(b)
	if err != nil {
		log.Printf("cache encode %s: %v", key, err)
		return
	}
	if err := c.store.Put(ctx, key, data, at); err != nil {
		log.Printf("cache put %s: %v", key, err)
	}
}

// Purge drops the in-memory tier.
func (c *Cached) Purge() {
	c.mem.Purge()
}
