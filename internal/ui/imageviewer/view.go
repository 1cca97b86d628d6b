package imageviewer

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/storefront/internal/ui/overlay"
	"github.com/llehouerou/storefront/internal/ui/render"
	"github.com/llehouerou/storefront/internal/ui/styles"
	"github.com/llehouerou/storefront/internal/ui/termimg"
)

const (
	emptyText  = "No images available"
	hintZoomed = "Drag to move • Double-click to reset"
	hintZoom   = "Double-click to zoom"
)

// View renders the inline gallery: primary display, arrows, thumbnail strip
// and counter.
func (m Model) View() string {
	w, h := m.Size()
	if w <= 0 || h <= 0 {
		return ""
	}
	t := styles.T()

	if m.state.Empty() {
		text := t.S().Subtle.Render(render.Truncate(emptyText, w))
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, text)
	}

	l := m.pageLayout()
	c := render.NewCanvas(w, h)
	c.Draw(l.image.Min.X, l.image.Min.Y, m.renderDisplay(l.image.Dx(), l.image.Dy()))
	drawArrows(c, l.prev, l.next)
	m.drawStrip(c, image.Point{}, l.slots, l.more)
	if !l.counter.Empty() {
		counter := lipgloss.PlaceHorizontal(w, lipgloss.Center, t.S().Muted.Render(m.counter()))
		c.Draw(0, l.counter.Min.Y, counter)
	}
	return c.String()
}

// Overlay composes the fullscreen viewer over base, the rendered page. It
// returns base unchanged while the overlay is closed.
func (m Model) Overlay(base string) string {
	if !m.state.IsFullscreen {
		return base
	}
	l := m.fullscreenLayout()
	if l.panel.Empty() {
		return base
	}
	t := styles.T()
	s := m.state
	in := l.inner
	origin := in.Min
	c := render.NewCanvas(in.Dx(), in.Dy())

	// Top bar: zoom controls, counter, close.
	zoomOut, zoomIn := l.zoomOut.Sub(origin), l.zoomIn.Sub(origin)
	c.Draw(zoomOut.Min.X, zoomOut.Min.Y, controlStyle(s.CanZoomOut()).Render("[-]"))
	label := fmt.Sprintf("%d%%", int(math.Round(s.Scale*100)))
	c.Draw(l.zoomLabel.Min.X-origin.X, 0, lipgloss.PlaceHorizontal(zoomLabelW, lipgloss.Center, t.S().Muted.Render(label)))
	c.Draw(zoomIn.Min.X, zoomIn.Min.Y, controlStyle(s.CanZoomIn()).Render("[+]"))
	if s.Len() > 1 {
		counter := m.counter()
		c.Draw((in.Dx()-ansi.StringWidth(counter))/2, 0, t.S().Muted.Render(counter))
	}
	c.Draw(l.close.Min.X-origin.X, 0, t.S().Title.Render("[x]"))

	img := l.image.Sub(origin)
	c.Draw(img.Min.X, img.Min.Y, m.renderDisplay(img.Dx(), img.Dy()))
	drawArrows(c, l.prev.Sub(origin), l.next.Sub(origin))

	hint := hintZoom
	if s.Zoomed() {
		hint = hintZoomed
	}
	c.Draw(0, l.hintRow-origin.Y, lipgloss.PlaceHorizontal(in.Dx(), lipgloss.Center, t.S().Subtle.Render(hint)))

	m.drawStrip(c, origin, l.slots, l.more)

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Render(c.String())
	content := strings.Repeat("\n", l.panel.Min.Y) + indent(panel, l.panel.Min.X)
	return overlay.Compose(backdrop(base, m.screenW, m.screenH), content, m.screenW, m.screenH)
}

// renderDisplay renders the current image slot at w x h cells.
func (m Model) renderDisplay(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	if text, ok := m.inline(); ok {
		return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, text)
	}
	if m.hasImage {
		return m.protocol.Placeholder(w, h)
	}
	if m.state.IsLoading {
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, m.spinner.View())
	}
	if m.protocol == nil {
		if img, ok := m.state.Current(); ok && img.Alt != "" {
			alt := styles.T().S().Subtle.Render(render.Truncate(img.Alt, w))
			return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, alt)
		}
	}
	return termimg.BlankPlaceholder(w, h)
}

// drawStrip draws the thumbnail slots, translated by -origin, highlighting
// the current one. Images without a loaded source stay blank.
func (m Model) drawStrip(c *render.Canvas, origin image.Point, slots []slot, more image.Rectangle) {
	t := styles.T()
	for _, sl := range slots {
		border := t.Border
		if sl.index == m.state.CurrentIndex {
			border = t.Primary
		}
		thumb, ok := m.thumbs[sl.index]
		if !ok {
			thumb = termimg.BlankPlaceholder(thumbWidth, thumbHeight)
		}
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Width(thumbWidth).
			Height(thumbHeight).
			Render(thumb)
		r := sl.rect.Sub(origin)
		c.Draw(r.Min.X, r.Min.Y, box)
	}
	if !more.Empty() {
		r := more.Sub(origin)
		c.Draw(r.Min.X, r.Min.Y, t.S().Muted.Render("›"))
	}
}

func drawArrows(c *render.Canvas, prev, next image.Rectangle) {
	if prev.Empty() || next.Empty() {
		return
	}
	style := styles.T().S().Title
	mid := prev.Min.Y + prev.Dy()/2
	c.Draw(prev.Min.X, mid, style.Render("‹"))
	c.Draw(next.Max.X-1, mid, style.Render("›"))
}

func (m Model) counter() string {
	return fmt.Sprintf("%d / %d", m.state.CurrentIndex+1, m.state.Len())
}

func controlStyle(enabled bool) lipgloss.Style {
	if enabled {
		return styles.T().S().Title
	}
	return styles.T().S().Subtle
}

// backdrop dims base and sizes it to the screen.
func backdrop(base string, w, h int) string {
	style := styles.T().S().Subtle.Faint(true)
	lines := strings.Split(base, "\n")
	out := make([]string, h)
	for i := range out {
		var line string
		if i < len(lines) {
			line = ansi.Truncate(ansi.Strip(lines[i]), w, "")
		}
		out[i] = style.Render(render.Pad(line, w))
	}
	return strings.Join(out, "\n")
}

func indent(block string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}
