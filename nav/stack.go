package nav

import "github.com/user/ytui/content"

// Entry is one slot of the stack: a page and the cursor it had when it was
// last on top.
type Entry struct {
	Page   *Page
	Cursor Cursor
}

// Stack is the browsing history. It is never empty: the root entry is
// created with the stack and cannot be popped.
type Stack struct {
	entries []*Entry
	nextID  uint64
}

// NewStack creates a stack holding a single pending root page for key.
func NewStack(root content.Key) *Stack {
	s := &Stack{}
	s.entries = []*Entry{{Page: s.newPage(root)}}
	return s
}

func (s *Stack) newPage(key content.Key) *Page {
	s.nextID++
	return &Page{ID: s.nextID, Key: key, State: Pending}
}

// Push appends a pending page for key with a fresh cursor. If the top page
// already has this key and is still pending the existing entry is returned
// and pushed is false.
func (s *Stack) Push(key content.Key) (e *Entry, pushed bool) {
	top := s.Current()
	if top.Page.Key == key && top.Page.State == Pending {
		return top, false
	}
	e = &Entry{Page: s.newPage(key)}
	s.entries = append(s.entries, e)
	return e, true
}

// Pop removes the top entry. It is a no-op at the root.
func (s *Stack) Pop() bool {
	if len(s.entries) <= 1 {
		return false
	}
	s.entries[len(s.entries)-1] = nil
	s.entries = s.entries[:len(s.entries)-1]
	return true
}

// Reset truncates the stack to the root entry and returns it.
func (s *Stack) Reset() *Entry {
	for i := 1; i < len(s.entries); i++ {
		s.entries[i] = nil
	}
	s.entries = s.entries[:1]
	return s.entries[0]
}

// Current returns the top entry.
func (s *Stack) Current() *Entry {
	return s.entries[len(s.entries)-1]
}

// Root returns the bottom entry.
func (s *Stack) Root() *Entry {
	return s.entries[0]
}

// Depth is the number of entries.
func (s *Stack) Depth() int {
	return len(s.entries)
}

// Find returns the entry holding the page with the given ID, or nil if that
// page is no longer on the stack.
func (s *Stack) Find(id uint64) *Entry {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Page.ID == id {
			return s.entries[i]
		}
	}
	return nil
}

// Breadcrumbs returns the page titles from root to top.
func (s *Stack) Breadcrumbs() []string {
	titles := make([]string, len(s.entries))
	for i, e := range s.entries {
		titles[i] = e.Page.Title()
	}
	return titles
}
