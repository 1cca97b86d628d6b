package imageviewer

import "time"

// clickTracker detects double clicks: two presses on the same cell within
// the window.
type clickTracker struct {
	now    func() time.Time
	window time.Duration

	last time.Time
	x, y int
}

func newClickTracker(now func() time.Time, window time.Duration) *clickTracker {
	return &clickTracker{now: now, window: window}
}

// press records a press at (x, y) and reports whether it completes a double
// click. A completed double click does not start a new one.
func (c *clickTracker) press(x, y int) bool {
	t := c.now()
	if !c.last.IsZero() && t.Sub(c.last) <= c.window && x == c.x && y == c.y {
		c.last = time.Time{}
		return true
	}
	c.last, c.x, c.y = t, x, y
	return false
}

func (c *clickTracker) reset() {
	c.last = time.Time{}
}
