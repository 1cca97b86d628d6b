// Package overlay draws one rendered block over another.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Compose draws top over base, line by line. Leading and trailing spaces of
// a top line are transparent, so a centered dialog keeps the page visible
// around it. Lines that are blank in top leave base untouched. The result
// is width columns wide wherever top drew something.
func Compose(base, top string, width, _ int) string {
	baseLines := strings.Split(base, "\n")

	for i, line := range strings.Split(top, "\n") {
		if i >= len(baseLines) {
			break
		}
		plain := ansi.Strip(line)
		trimmed := strings.TrimLeft(plain, " ")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		start := len(plain) - len(trimmed)
		end := start + ansi.StringWidth(strings.TrimRight(trimmed, " "))
		if start >= width {
			continue
		}
		end = min(end, width)

		b := baseLines[i]
		if w := ansi.StringWidth(b); w < width {
			b += strings.Repeat(" ", width-w)
		}

		// Cutting through a wide rune drops it; pad back to the column.
		prefix := ansi.Cut(b, 0, start)
		if w := ansi.StringWidth(prefix); w < start {
			prefix += strings.Repeat(" ", start-w)
		}
		out := prefix + ansi.Cut(line, start, end)
		if end < width {
			suffix := ansi.Cut(b, end, width)
			if w := ansi.StringWidth(suffix); w < width-end {
				suffix = strings.Repeat(" ", width-end-w) + suffix
			}
			out += suffix
		}
		baseLines[i] = out
	}
	return strings.Join(baseLines, "\n")
}
