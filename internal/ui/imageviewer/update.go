package imageviewer

import (
	"image"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/storefront/internal/gallery"
	"github.com/llehouerou/storefront/internal/keymap"
)

// Update handles key, mouse and load messages. Keys are only handled while
// the component is focused or the fullscreen overlay is open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	m.ackExpired()

	switch msg := msg.(type) {
	case LoadedMsg:
		m.applyLoaded(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.state.IsLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if !m.IsFocused() && !m.state.IsFullscreen {
			return m, nil
		}
		_, cmd := m.HandleKey(msg.String())
		return m, cmd

	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		return m, cmd
	}
	return m, nil
}

// HandleKey applies the action bound to key and reports whether the key was
// consumed.
func (m *Model) HandleKey(key string) (bool, tea.Cmd) {
	s := m.state
	var cmd tea.Cmd

	switch m.layers.Resolve(key) {
	case keymap.ActionImagePrev:
		if s.HandleKey(gallery.KeyArrowLeft) {
			cmd = m.loadCurrent()
		}
	case keymap.ActionImageNext:
		if s.HandleKey(gallery.KeyArrowRight) {
			cmd = m.loadCurrent()
		}
	case keymap.ActionZoomIn:
		s.HandleKey(gallery.KeyPlus)
	case keymap.ActionZoomOut:
		s.HandleKey(gallery.KeyMinus)
	case keymap.ActionCloseFullscreen:
		s.HandleKey(gallery.KeyEscape)
	case keymap.ActionToggleFullscreen:
		if s.Empty() {
			return false, nil
		}
		s.ToggleFullscreen()
	case keymap.ActionToggleZoom:
		s.ToggleZoomOnDoubleClick()
	case keymap.ActionPanUp:
		m.pan(0, -panStepY)
	case keymap.ActionPanDown:
		m.pan(0, panStepY)
	case keymap.ActionPanLeft:
		m.pan(-panStepX, 0)
	case keymap.ActionPanRight:
		m.pan(panStepX, 0)
	default:
		return false, nil
	}

	m.afterTransition()
	return true, cmd
}

// pan moves a zoomed image by (dx, dy) cells, as a drag would.
func (m *Model) pan(dx, dy float64) {
	s := m.state
	p := s.Position
	if !s.BeginDrag(p) {
		return
	}
	s.ContinueDrag(p.Add(gallery.Point{X: dx, Y: dy}))
	s.EndDrag()
}

// afterTransition keeps the overlay key layer registered exactly while the
// overlay is open and refreshes the prepared image.
func (m *Model) afterTransition() {
	m.syncLayers()
	m.syncImage()
}

func (m *Model) syncLayers() {
	switch {
	case m.state.IsFullscreen && m.fullscreen.Released():
		m.fullscreen = m.layers.Push(fullscreenLayer, keymap.ForContexts(fullscreenLayer))
		m.clicks.reset()
	case !m.state.IsFullscreen && !m.fullscreen.Released():
		m.fullscreen.Release()
		m.clicks.reset()
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	p := image.Pt(msg.X, msg.Y)
	if m.state.IsFullscreen {
		return m.fullscreenMouse(msg, p)
	}
	return m.pageMouse(msg, p)
}

func (m *Model) pageMouse(msg tea.MouseMsg, p image.Point) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	if m.state.Empty() {
		return nil
	}
	l := m.pageLayout()
	local := p.Sub(image.Pt(m.originX, m.originY))

	var cmd tea.Cmd
	switch {
	case local.In(l.image):
		m.state.ToggleFullscreen()
	case local.In(l.prev):
		m.state.GoToPrevious()
		cmd = m.loadCurrent()
	case local.In(l.next):
		m.state.GoToNext()
		cmd = m.loadCurrent()
	default:
		i, ok := hitSlot(l.slots, local)
		if !ok || !m.state.SelectThumbnail(i) {
			return nil
		}
		cmd = m.loadCurrent()
	}
	m.afterTransition()
	return cmd
}

func (m *Model) fullscreenMouse(msg tea.MouseMsg, p image.Point) tea.Cmd {
	s := m.state
	l := m.fullscreenLayout()
	pt := gallery.Point{X: float64(p.X), Y: float64(p.Y)}

	switch msg.Action {
	case tea.MouseActionMotion:
		if s.ContinueDrag(pt) {
			m.syncImage()
		}
		return nil
	case tea.MouseActionRelease:
		s.EndDrag()
		return nil
	}
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		s.ZoomIn()
		m.syncImage()
		return nil
	case tea.MouseButtonWheelDown:
		s.ZoomOut()
		m.syncImage()
		return nil
	}
	if msg.Button != tea.MouseButtonLeft {
		return nil
	}

	var cmd tea.Cmd
	switch {
	case p.In(l.image):
		if m.clicks.press(p.X, p.Y) {
			s.EndDrag()
			s.ToggleZoomOnDoubleClick()
		} else {
			s.BeginDrag(pt)
		}
	case p.In(l.zoomIn):
		s.ZoomIn()
	case p.In(l.zoomOut):
		s.ZoomOut()
	case p.In(l.close):
		s.CloseFullscreen()
	case p.In(l.prev):
		s.GoToPrevious()
		cmd = m.loadCurrent()
	case p.In(l.next):
		s.GoToNext()
		cmd = m.loadCurrent()
	case p.In(l.zoomLabel), p.In(l.more):
		return nil
	default:
		if i, ok := hitSlot(l.slots, p); ok {
			// Selecting a thumbnail in the overlay always resets the zoom.
			s.SelectThumbnail(i)
			s.Reset()
			cmd = m.loadCurrent()
			break
		}
		s.CloseFullscreen()
	}
	m.afterTransition()
	return cmd
}
