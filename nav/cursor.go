package nav

// Cursor is the highlighted row and scroll position within one page.
// When the page is empty the cursor is a sentinel: Selected reports false.
type Cursor struct {
	// Offset is the index of the first visible row
	Offset int
	// Index is the highlighted item
	Index int
}

// Selected returns the highlighted index for a page of n items.
func (c Cursor) Selected(n int) (int, bool) {
	if n <= 0 || c.Index < 0 || c.Index >= n {
		return 0, false
	}
	return c.Index, true
}

// Move shifts the highlight by delta, clamped to [0, n-1], and scrolls so
// the highlight stays inside a window of rows lines.
func (c *Cursor) Move(delta, n, rows int) {
	if n <= 0 {
		*c = Cursor{}
		return
	}
	c.Index += delta
	c.Clamp(n, rows)
}

// Top highlights the first item.
func (c *Cursor) Top(n, rows int) {
	c.Index = 0
	c.Clamp(n, rows)
}

// Bottom highlights the last item.
func (c *Cursor) Bottom(n, rows int) {
	c.Index = n - 1
	c.Clamp(n, rows)
}

// Clamp restores the cursor invariants after the item count or the visible
// row count changed.
func (c *Cursor) Clamp(n, rows int) {
	if n <= 0 {
		*c = Cursor{}
		return
	}
	if rows < 1 {
		rows = 1
	}
	if c.Index < 0 {
		c.Index = 0
	}
	if c.Index > n-1 {
		c.Index = n - 1
	}
	if c.Offset > c.Index {
		c.Offset = c.Index
	}
	if c.Index >= c.Offset+rows {
		c.Offset = c.Index - rows + 1
	}
	// Don't leave blank rows under the last item when the list can fill them.
	if maxOffset := n - rows; maxOffset >= 0 && c.Offset > maxOffset {
		c.Offset = maxOffset
	}
	if c.Offset < 0 {
		c.Offset = 0
	}
}

// AtEnd reports whether the highlight is on the last of n items.
func (c Cursor) AtEnd(n int) bool {
	return n > 0 && c.Index == n-1
}
