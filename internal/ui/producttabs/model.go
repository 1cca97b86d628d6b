// Package producttabs renders the product details accordion: description,
// information and shipping sections, any of which may be expanded.
package producttabs

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/storefront/internal/commerce"
	"github.com/llehouerou/storefront/internal/keymap"
	"github.com/llehouerou/storefront/internal/ui"
	"github.com/llehouerou/storefront/internal/ui/render"
	"github.com/llehouerou/storefront/internal/ui/styles"
)

// Sections in display order.
const (
	SectionDescription = iota
	SectionInformation
	SectionShipping
	sectionCount
)

var titles = [sectionCount]string{
	"Product Description",
	"Product Information",
	"Shipping & Returns",
}

const (
	labelWidth = 19
	bodyIndent = 2
)

// Model is the accordion state.
type Model struct {
	ui.Base
	keys    *keymap.Resolver
	product *commerce.Product
	open    [sectionCount]bool
	cursor  int
}

// New creates an accordion with every section collapsed.
func New() Model {
	return Model{keys: keymap.ForContexts("tabs")}
}

// SetProduct shows another product and collapses every section.
func (m *Model) SetProduct(p *commerce.Product) {
	m.product = p
	m.open = [sectionCount]bool{}
	m.cursor = 0
}

// Toggle expands or collapses a section. Out of range indexes are ignored.
func (m *Model) Toggle(i int) bool {
	if i < 0 || i >= sectionCount {
		return false
	}
	m.open[i] = !m.open[i]
	return true
}

// IsOpen reports whether a section is expanded.
func (m Model) IsOpen(i int) bool {
	return i >= 0 && i < sectionCount && m.open[i]
}

// Cursor returns the highlighted section.
func (m Model) Cursor() int {
	return m.cursor
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles keys while focused.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && m.IsFocused() {
		m.HandleKey(key.String())
	}
	return m, nil
}

// HandleKey applies a key and reports whether it was used.
func (m *Model) HandleKey(key string) bool {
	switch m.keys.Resolve(key) {
	case keymap.ActionMoveUp:
		m.cursor = max(m.cursor-1, 0)
	case keymap.ActionMoveDown:
		m.cursor = min(m.cursor+1, sectionCount-1)
	case keymap.ActionToggleSection:
		m.Toggle(m.cursor)
	case keymap.ActionSection1:
		m.jump(SectionDescription)
	case keymap.ActionSection2:
		m.jump(SectionInformation)
	case keymap.ActionSection3:
		m.jump(SectionShipping)
	default:
		return false
	}
	return true
}

func (m *Model) jump(i int) {
	m.cursor = i
	m.Toggle(i)
}

// ContentHeight returns the number of lines the accordion needs at a width.
func (m Model) ContentHeight(width int) int {
	lines, _ := m.lines(width)
	return len(lines)
}

// View renders the accordion. With a height set, the output is exactly that
// many lines and scrolls so the highlighted section stays in view.
func (m Model) View() string {
	width, height := m.Size()
	if width <= 0 || m.product == nil {
		return ""
	}
	lines, spans := m.lines(width)
	if height <= 0 {
		return strings.Join(lines, "\n")
	}

	offset := m.offset(len(lines), spans, height)
	visible := lines[offset:min(offset+height, len(lines))]
	for len(visible) < height {
		visible = append(visible, "")
	}
	return strings.Join(visible, "\n")
}

// HeaderAt returns the section whose header is on row y of the view.
func (m Model) HeaderAt(y int) (int, bool) {
	width, height := m.Size()
	lines, spans := m.lines(width)
	if height > 0 {
		if y >= height {
			return 0, false
		}
		y += m.offset(len(lines), spans, height)
	}
	for i, span := range spans {
		if len(lines) > 0 && span[0] == y {
			return i, true
		}
	}
	return 0, false
}

// offset is the first visible line: the highlighted section is shown from
// its header, as far as it fits.
func (m Model) offset(total int, spans [sectionCount][2]int, height int) int {
	offset := 0
	if span := spans[m.cursor]; span[1] > height {
		offset = min(span[0], span[1]-height)
	}
	return max(min(offset, total-height), 0)
}

// lines renders every section and returns, per section, the [start, end)
// line span it occupies.
func (m Model) lines(width int) ([]string, [sectionCount][2]int) {
	var (
		lines []string
		spans [sectionCount][2]int
	)
	if m.product == nil || width <= 0 {
		return nil, spans
	}
	for i := range sectionCount {
		if i > 0 {
			lines = append(lines, styles.T().S().Subtle.Render(render.Separator(width)))
		}
		start := len(lines)
		lines = append(lines, m.header(i, width))
		if m.open[i] {
			body := m.body(i, max(width-bodyIndent, 1))
			for _, l := range body {
				lines = append(lines, strings.Repeat(" ", bodyIndent)+l)
			}
			if len(body) > 0 {
				lines = append(lines, "")
			}
		}
		spans[i] = [2]int{start, len(lines)}
	}
	return lines, spans
}

func (m Model) header(i, width int) string {
	marker := "▸"
	if m.open[i] {
		marker = "▾"
	}
	text := render.TruncateAndPadEllipsis(marker+" "+titles[i], width)
	if m.IsFocused() && i == m.cursor {
		return styles.T().S().Cursor.Bold(true).Render(text)
	}
	return styles.T().S().Title.Render(text)
}

func (m Model) body(i, width int) []string {
	s := styles.T().S()
	var out []string
	switch i {
	case SectionDescription:
		for n, p := range paragraphs(m.product.Description) {
			if n > 0 {
				out = append(out, "")
			}
			out = append(out, wrap(p, width, s.Base)...)
		}
	case SectionInformation:
		valueWidth := max(width-labelWidth, 1)
		for _, f := range information(m.product) {
			label := s.Muted.Render(render.Pad(f.label, labelWidth))
			for n, l := range wrap(f.value, valueWidth, s.Base) {
				if n > 0 {
					label = strings.Repeat(" ", labelWidth)
				}
				out = append(out, label+l)
			}
		}
	case SectionShipping:
		for n, sn := range shippingNotices {
			if n > 0 {
				out = append(out, "")
			}
			out = append(out, s.Title.Render(sn.title))
			out = append(out, wrap(sn.text, width, s.Muted)...)
		}
	}
	return out
}

// wrap word-wraps text to width and styles each resulting line.
func wrap(text string, width int, style lipgloss.Style) []string {
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(wrapped, "\n")
	for i, l := range lines {
		lines[i] = style.Render(strings.TrimRight(l, " "))
	}
	return lines
}
