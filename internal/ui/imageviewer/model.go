// Package imageviewer provides the product image gallery component: a
// primary display with a thumbnail strip and a fullscreen overlay with zoom
// and drag.
package imageviewer

import (
	"image"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/storefront/internal/gallery"
	"github.com/llehouerou/storefront/internal/keymap"
	"github.com/llehouerou/storefront/internal/ui"
	"github.com/llehouerou/storefront/internal/ui/styles"
	"github.com/llehouerou/storefront/internal/ui/termimg"
)

const (
	thumbWidth  = 8
	thumbHeight = 3
	slotWidth   = thumbWidth + 2 // rounded border
	slotHeight  = thumbHeight + 2
	thumbGap    = 1

	doubleClickWindow = 400 * time.Millisecond
	transmitHold      = 150 * time.Millisecond

	// Decoded sources are scaled down to this size at most.
	maxSourcePixels = 1600

	panStepX = 2
	panStepY = 1
)

const fullscreenLayer = "fullscreen"

var nextImageID uint32

// Model is the image viewer component.
type Model struct {
	ui.Base
	state *gallery.State
	gen   uint64

	protocol termimg.ImageProtocol
	fetcher  *termimg.Fetcher
	spinner  spinner.Model

	layers     *keymap.Layers
	fullscreen *keymap.Registration
	clicks     *clickTracker

	originX, originY int
	screenW, screenH int

	sources map[int]image.Image
	thumbs  map[int]string

	imageID   uint32
	prepared  renderKey
	hasImage  bool
	pending   string
	pendingAt time.Time

	now func() time.Time
}

// New creates an image viewer. protocol may be nil to disable image display;
// fetcher may be nil, in which case every image renders as a blank slot.
func New(protocol termimg.ImageProtocol, fetcher *termimg.Fetcher) Model {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = styles.T().S().Muted

	return Model{
		state:    gallery.New(nil),
		protocol: protocol,
		fetcher:  fetcher,
		spinner:  s,
		layers:   keymap.NewLayers(keymap.ForContexts("viewer")),
		clicks:   newClickTracker(time.Now, doubleClickWindow),
		sources:  make(map[int]image.Image),
		thumbs:   make(map[int]string),
		imageID:  atomic.AddUint32(&nextImageID, 1),
		now:      time.Now,
	}
}

// SetImages replaces the image set, resetting the view state, and returns
// the commands loading the primary image and the thumbnails.
func (m *Model) SetImages(images gallery.ImageSet) tea.Cmd {
	m.gen++
	m.state = gallery.New(images)
	m.sources = make(map[int]image.Image)
	m.thumbs = make(map[int]string)
	m.syncLayers()
	m.clearImage()

	if m.state.Empty() {
		return nil
	}
	cmds := []tea.Cmd{m.spinner.Tick}
	for i := range m.state.Len() {
		cmds = append(cmds, m.loadCmd(i))
	}
	return tea.Batch(cmds...)
}

// State returns the gallery state. Callers must not mutate it.
func (m Model) State() *gallery.State { return m.state }

// IsFullscreen reports whether the fullscreen overlay is open.
func (m Model) IsFullscreen() bool { return m.state.IsFullscreen }

// SetOrigin sets the 0-based screen position of the component's top-left
// cell, used for mouse hit-testing and image placement.
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

// SetScreenSize sets the terminal size used by the fullscreen overlay.
func (m *Model) SetScreenSize(width, height int) {
	if m.screenW == width && m.screenH == height {
		return
	}
	m.screenW, m.screenH = width, height
	m.syncImage()
}

// SetSize sets the size of the inline display.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.syncImage()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Close releases the overlay key layer and returns the terminal command
// removing the displayed image, if any.
func (m *Model) Close() string {
	if m.fullscreen != nil {
		m.fullscreen.Release()
	}
	m.clearImage()
	out := m.pending
	m.pending = ""
	return out
}
