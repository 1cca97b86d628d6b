// Package cursor tracks the selected row and scroll offset of a list.
package cursor

// Cursor is a position in a list plus the first visible row. The list
// length and viewport height change independently of the cursor, so every
// method that needs them takes them as arguments.
type Cursor struct {
	pos    int
	offset int
	margin int // rows kept visible above and below pos
}

// New creates a cursor at the top keeping margin rows of context.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

// Pos is the selected row.
func (c Cursor) Pos() int { return c.pos }

// Offset is the first visible row.
func (c Cursor) Offset() int { return c.offset }

// Move moves by delta rows, stopping at either end.
func (c *Cursor) Move(delta, n, height int) {
	c.Jump(c.pos+delta, n, height)
}

// Jump selects row pos, clamped to the list.
func (c *Cursor) Jump(pos, n, height int) {
	if n == 0 {
		return
	}
	c.pos = clamp(pos, n-1)
	c.EnsureVisible(n, height)
}

// JumpStart selects the first row.
func (c *Cursor) JumpStart() {
	c.Reset()
}

// JumpEnd selects the last row.
func (c *Cursor) JumpEnd(n, height int) {
	c.Jump(n-1, n, height)
}

// EnsureVisible scrolls so that pos and its margin are on screen.
func (c *Cursor) EnsureVisible(n, height int) {
	if n == 0 || height <= 0 {
		return
	}
	if c.pos < c.offset+c.margin {
		c.offset = max(c.pos-c.margin, 0)
	}
	if c.pos >= c.offset+height-c.margin {
		c.offset = c.pos - height + c.margin + 1
	}
	c.offset = clamp(c.offset, max(n-height, 0))
}

// ClampToBounds pulls pos back into a list that shrank to n rows.
func (c *Cursor) ClampToBounds(n int) {
	if n == 0 {
		c.Reset()
		return
	}
	c.pos = clamp(c.pos, n-1)
}

// VisibleRange returns the visible rows as [start, end).
func (c Cursor) VisibleRange(n, height int) (start, end int) {
	if n == 0 || height <= 0 {
		return 0, 0
	}
	return c.offset, min(c.offset+height, n)
}

// Reset goes back to the first row.
func (c *Cursor) Reset() {
	c.pos, c.offset = 0, 0
}

// HandleKey applies j/k, arrows, g/G, home/end and half-page ctrl+d/ctrl+u.
// It reports whether the key is a cursor key, moved or not.
func (c *Cursor) HandleKey(key string, n, height int) bool {
	switch key {
	case "j", "down":
		c.Move(1, n, height)
	case "k", "up":
		c.Move(-1, n, height)
	case "g", "home":
		c.JumpStart()
	case "G", "end":
		c.JumpEnd(n, height)
	case "ctrl+d":
		c.Move(max(height/2, 1), n, height)
	case "ctrl+u":
		c.Move(-max(height/2, 1), n, height)
	default:
		return false
	}
	return true
}

func clamp(v, hi int) int {
	return min(max(v, 0), hi)
}
