package imageviewer

import (
	"context"
	"image"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/storefront/internal/gallery"
	"github.com/llehouerou/storefront/internal/ui/termimg"
)

const loadTimeout = 30 * time.Second

// LoadedMsg reports the outcome of loading image Index of image set Gen.
// Image is nil when the image has no usable URL or failed to load.
type LoadedMsg struct {
	Gen   uint64
	Index int
	Image image.Image
}

// renderKey identifies what was last prepared for the terminal.
type renderKey struct {
	index      int
	area       image.Rectangle
	fullscreen bool
	scale      float64
	position   gallery.Point
	src        image.Image
}

// loadCmd loads image index. Cached sources complete immediately.
func (m Model) loadCmd(index int) tea.Cmd {
	images := m.state.Images()
	if index < 0 || index >= len(images) {
		return nil
	}
	gen := m.gen
	if src, ok := m.sources[index]; ok {
		return func() tea.Msg { return LoadedMsg{Gen: gen, Index: index, Image: src} }
	}

	img := images[index]
	fetcher := m.fetcher
	if fetcher == nil || !img.Resolvable() {
		return func() tea.Msg { return LoadedMsg{Gen: gen, Index: index} }
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		src, err := fetcher.Fetch(ctx, img.URL)
		if err != nil {
			log.Printf("imageviewer: load %s: %v", img.URL, err)
			return LoadedMsg{Gen: gen, Index: index}
		}
		return LoadedMsg{Gen: gen, Index: index, Image: termimg.Fit(src, maxSourcePixels, maxSourcePixels)}
	}
}

// loadCurrent starts loading the current image and animates the spinner.
func (m Model) loadCurrent() tea.Cmd {
	if !m.state.IsLoading {
		return nil
	}
	return tea.Batch(m.loadCmd(m.state.CurrentIndex), m.spinner.Tick)
}

func (m *Model) applyLoaded(msg LoadedMsg) {
	if msg.Gen != m.gen {
		return
	}
	if msg.Image != nil {
		if _, ok := m.sources[msg.Index]; !ok {
			m.sources[msg.Index] = msg.Image
			m.thumbs[msg.Index] = termimg.Thumbnail(msg.Image, thumbWidth, thumbHeight)
		}
	}
	m.state.ImageLoaded(msg.Index)
	m.syncImage()
}

// displayArea returns the image area in screen coordinates.
func (m Model) displayArea() image.Rectangle {
	if m.state.IsFullscreen {
		return m.fullscreenLayout().image
	}
	return m.pageLayout().image.Add(image.Pt(m.originX, m.originY))
}

// syncImage prepares the current image for the terminal when anything that
// affects its rendering changed.
func (m *Model) syncImage() {
	if m.protocol == nil || m.state == nil {
		return
	}

	area := m.displayArea()
	key := renderKey{
		index:      m.state.CurrentIndex,
		area:       area.Sub(area.Min),
		fullscreen: m.state.IsFullscreen,
		src:        m.sources[m.state.CurrentIndex],
	}
	// The inline display is never transformed.
	if m.state.IsFullscreen {
		key.scale = m.state.Scale
		key.position = m.state.Position
	}
	if key == m.prepared && (m.hasImage || key.src == nil) {
		return
	}

	if key.src == nil || area.Empty() {
		m.clearImage()
		m.prepared = key
		return
	}
	m.prepared = key

	pw, ph := m.protocol.TargetPixelSize(area.Dx(), area.Dy())
	cw, ch := m.protocol.CellSize()
	vp := termimg.Viewport{Width: pw, Height: ph, Scale: 1}
	if key.fullscreen {
		t := m.state.Transform()
		off := t.Offset()
		vp.Scale = t.Scale
		vp.OffsetX = off.X * float64(cw)
		vp.OffsetY = off.Y * float64(ch)
	}

	data, err := m.protocol.Prepare(termimg.Compose(key.src, vp), m.imageID)
	if err != nil {
		log.Printf("imageviewer: prepare image: %v", err)
		m.clearImage()
		return
	}
	m.hasImage = true
	m.queue(data)
}

// clearImage forgets the prepared image and queues its removal.
func (m *Model) clearImage() {
	m.prepared = renderKey{}
	if !m.hasImage {
		return
	}
	m.hasImage = false
	if m.protocol != nil {
		m.queue(m.protocol.Delete(m.imageID))
	}
}

// queue replaces the pending terminal data. Newer data supersedes older data
// for the same image id.
func (m *Model) queue(data string) {
	if data == "" {
		return
	}
	m.pending = data
	m.pendingAt = m.now()
}

// Transmit returns the one-shot terminal data (image transmission or
// removal) to write before the view, or empty string.
func (m Model) Transmit() string { return m.pending }

// AckTransmit marks the pending data as written.
func (m *Model) AckTransmit() {
	m.pending = ""
	m.pendingAt = time.Time{}
}

// ackExpired acknowledges pending data that has been part of the view for
// longer than transmitHold, by which time the renderer has flushed it.
func (m *Model) ackExpired() {
	if m.pending != "" && m.now().Sub(m.pendingAt) >= transmitHold {
		m.AckTransmit()
	}
}

// Placement returns the command displaying the image at its current
// position, or empty string for protocols that render inline.
func (m Model) Placement() string {
	if !m.hasImage || m.protocol == nil {
		return ""
	}
	if _, ok := m.protocol.(termimg.InlineProtocol); ok {
		return ""
	}
	area := m.displayArea()
	if area.Empty() {
		return ""
	}
	return m.protocol.Place(m.imageID, area.Min.Y+1, area.Min.X+1, area.Dx(), area.Dy())
}

// inline returns the inline rendering of the current image, if the protocol
// renders as text.
func (m Model) inline() (string, bool) {
	p, ok := m.protocol.(termimg.InlineProtocol)
	if !ok || !m.hasImage {
		return "", false
	}
	return p.Inline(m.imageID), true
}
