// Package testutil provides common testing utilities for UI components.
package testutil

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes escape sequences so rendered output can be compared as
// plain text.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// MeasureWidth returns the display width of s, ignoring escape sequences.
func MeasureWidth(s string) int {
	return ansi.StringWidth(s)
}

// ContainsLine checks if any line in the output contains the given substring.
func ContainsLine(output, substr string) bool {
	return LineIndex(output, substr) >= 0
}

// FindLine returns the first line containing the given substring, or empty string.
func FindLine(output, substr string) string {
	for line := range strings.SplitSeq(output, "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	return ""
}

// LineIndex returns the index of the first line containing substr, or -1.
func LineIndex(output, substr string) int {
	for i, line := range strings.Split(output, "\n") {
		if strings.Contains(line, substr) {
			return i
		}
	}
	return -1
}

// CountLines returns the number of non-empty lines in the output.
func CountLines(output string) int {
	count := 0
	for line := range strings.SplitSeq(output, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

// AssertContains returns an error message if output doesn't contain substr,
// or empty string if it does.
func AssertContains(output, substr string) string {
	if !strings.Contains(StripANSI(output), substr) {
		return "expected output to contain " + substr
	}
	return ""
}

// AssertNotContains returns an error message if output contains substr,
// or empty string if it doesn't.
func AssertNotContains(output, substr string) string {
	if strings.Contains(StripANSI(output), substr) {
		return "expected output to NOT contain " + substr
	}
	return ""
}

// Key builds the tea.KeyMsg whose String() is s, for names such as "esc",
// "enter", "tab", "f2", "ctrl+r" or printable runes.
func Key(s string) tea.KeyMsg {
	for t, name := range keyNames {
		if name == s {
			return tea.KeyMsg{Type: t}
		}
	}
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var keyNames = map[tea.KeyType]string{
	tea.KeyEnter:     "enter",
	tea.KeyEsc:       "esc",
	tea.KeyTab:       "tab",
	tea.KeyBackspace: "backspace",
	tea.KeyUp:        "up",
	tea.KeyDown:      "down",
	tea.KeyLeft:      "left",
	tea.KeyRight:     "right",
	tea.KeyShiftUp:   "shift+up",
	tea.KeyHome:      "home",
	tea.KeyEnd:       "end",
	tea.KeyPgUp:      "pgup",
	tea.KeyPgDown:    "pgdown",
	tea.KeyF1:        "f1",
	tea.KeyF2:        "f2",
	tea.KeyF3:        "f3",
	tea.KeyCtrlC:     "ctrl+c",
	tea.KeyCtrlR:     "ctrl+r",
}

// Updater is a bubbletea component with a typed Update.
type Updater[M any] interface {
	Update(msg tea.Msg) (M, tea.Cmd)
}

// Drain runs cmd and feeds the resulting messages back into m until no
// command is left. Batches are followed, spinner ticks and nil messages are
// dropped, and skip reports further messages to drop (ticks, quit).
func Drain[M Updater[M]](m M, cmd tea.Cmd, skip func(tea.Msg) bool) M {
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case nil, spinner.TickMsg:
	case tea.BatchMsg:
		for _, c := range msg {
			m = Drain(m, c, skip)
		}
	default:
		if skip != nil && skip(msg) {
			return m
		}
		var next tea.Cmd
		m, next = m.Update(msg)
		m = Drain(m, next, skip)
	}
	return m
}
