// Package helpbindings provides a scrollable popup listing the key bindings.
package helpbindings

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/storefront/internal/keymap"
	"github.com/llehouerou/storefront/internal/ui"
	"github.com/llehouerou/storefront/internal/ui/popup"
	"github.com/llehouerou/storefront/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// categoryOrder is the display order of binding contexts.
var categoryOrder = []string{
	"global",
	"store",
	"product",
	"tabs",
	"viewer",
	"fullscreen",
}

var categoryLabels = map[string]string{
	"global":     "Global",
	"store":      "Shop",
	"product":    "Product Page",
	"tabs":       "Product Details",
	"viewer":     "Image Gallery",
	"fullscreen": "Fullscreen Gallery",
}

// chrome is the popup height taken by the title, footer and border.
const chrome = 10

// Model is the help popup.
type Model struct {
	ui.Base
	bindings []keymap.Binding
	offset   int
}

// New creates an empty help popup.
func New() Model {
	return Model{}
}

// SetContexts selects the binding contexts to list. They are always shown
// in categoryOrder.
func (m *Model) SetContexts(contexts []string) {
	m.bindings = nil
	for _, ctx := range categoryOrder {
		if slices.Contains(contexts, ctx) {
			m.bindings = append(m.bindings, keymap.ByContext(ctx)...)
		}
	}
	m.offset = 0
}

// Offset returns the first visible content line.
func (m *Model) Offset() int {
	return m.offset
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "?", "esc", "q":
		return m, func() tea.Msg { return ActionMsg(Close{}) }
	case "j", "down":
		m.offset = min(m.offset+1, m.maxOffset())
	case "k", "up":
		m.offset = max(m.offset-1, 0)
	case "g", "home":
		m.offset = 0
	case "G", "end":
		m.offset = m.maxOffset()
	}
	return m, nil
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	s := styles.T().S()

	lines := m.lines()
	width := 0
	for _, l := range lines {
		width = max(width, lipgloss.Width(l))
	}
	end := min(m.offset+m.visibleHeight(), len(lines))
	visible := slices.Clone(lines[min(m.offset, end):end])
	for i, l := range visible {
		if w := lipgloss.Width(l); w < width {
			visible[i] = l + strings.Repeat(" ", width-w)
		}
	}

	footer := "?/esc close"
	if len(lines) > m.visibleHeight() {
		footer = "j/k scroll · " + footer
	}
	return s.Title.Render("Help") + "\n\n" + strings.Join(visible, "\n") + "\n\n" + s.Subtle.Render(footer)
}

// lines renders every category with a header and one line per binding.
func (m *Model) lines() []string {
	s := styles.T().S()
	key := s.Accent
	keyWidth := 0
	for _, b := range m.bindings {
		keyWidth = max(keyWidth, lipgloss.Width(keyLabel(b)))
	}

	var lines []string
	ctx := ""
	for _, b := range m.bindings {
		if b.Context != ctx {
			if ctx != "" {
				lines = append(lines, "")
			}
			label := categoryLabels[b.Context]
			if label == "" {
				label = b.Context
			}
			lines = append(lines,
				s.Warning.Bold(true).Render(label),
				s.Subtle.Render(strings.Repeat("─", keyWidth+24)),
			)
			ctx = b.Context
		}
		k := keyLabel(b)
		lines = append(lines, key.Render(k+strings.Repeat(" ", keyWidth-lipgloss.Width(k)))+"  "+s.Base.Render(b.Description))
	}
	return lines
}

// keyLabel joins the keys of b, naming the space bar.
func keyLabel(b keymap.Binding) string {
	keys := make([]string, len(b.Keys))
	for i, k := range b.Keys {
		if k == " " {
			k = "space"
		}
		keys[i] = k
	}
	return strings.Join(keys, ", ")
}

func (m *Model) visibleHeight() int {
	return max(m.Height()-chrome, 5)
}

func (m *Model) maxOffset() int {
	return max(len(m.lines())-m.visibleHeight(), 0)
}
