package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Canvas is a fixed size block of text that blocks are drawn onto at cell
// positions.
type Canvas struct {
	w     int
	lines []string
}

// NewCanvas returns a blank canvas of w x h cells.
func NewCanvas(w, h int) *Canvas {
	lines := make([]string, max(h, 0))
	blank := strings.Repeat(" ", max(w, 0))
	for i := range lines {
		lines[i] = blank
	}
	return &Canvas{w: w, lines: lines}
}

// Draw writes block with its top-left cell at (x, y), clipping whatever
// falls outside the canvas.
func (c *Canvas) Draw(x, y int, block string) {
	if block == "" || x < 0 || x >= c.w {
		return
	}
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= len(c.lines) {
			continue
		}
		width := ansi.StringWidth(line)
		if x+width > c.w {
			line = ansi.Truncate(line, c.w-x, "")
			width = ansi.StringWidth(line)
		}
		base := c.lines[row]
		c.lines[row] = ansi.Cut(base, 0, x) + line + ansi.Cut(base, x+width, c.w)
	}
}

func (c *Canvas) String() string {
	return strings.Join(c.lines, "\n")
}
