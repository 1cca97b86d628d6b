package producttemplate

import (
	"image"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/storefront/internal/keymap"
)

// Update routes keys to the focused area and everything else to the gallery,
// which owns image loading and the fullscreen overlay.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.IsFocused() {
			return m, nil
		}
		cmd := m.HandleKey(msg.String())
		return m, cmd
	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewer, cmd = m.viewer.Update(msg)
	return m, cmd
}

// HandleKey applies a key. While the fullscreen gallery is open it gets
// every key, so escape closes the overlay instead of leaving the page.
func (m *Model) HandleKey(key string) tea.Cmd {
	if m.viewer.IsFullscreen() {
		_, cmd := m.viewer.HandleKey(key)
		return cmd
	}

	switch m.keys.Resolve(key) {
	case keymap.ActionBack:
		return func() tea.Msg { return ActionMsg(Back{}) }
	case keymap.ActionSwitchFocus:
		if m.Found() {
			m.SetFocus((m.focus + 1) % focusCount)
		}
		return nil
	}
	if !m.Found() {
		return nil
	}

	switch m.focus {
	case FocusGallery:
		_, cmd := m.viewer.HandleKey(key)
		return cmd
	case FocusVariants:
		n, h := len(m.product.Variants), m.variantRows()
		switch m.keys.Resolve(key) {
		case keymap.ActionMoveUp:
			m.variant.Move(-1, n, h)
		case keymap.ActionMoveDown:
			m.variant.Move(1, n, h)
		}
	case FocusTabs:
		m.tabs.HandleKey(key)
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.viewer.IsFullscreen() || !m.Found() {
		var cmd tea.Cmd
		m.viewer, cmd = m.viewer.Update(msg)
		return cmd
	}
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	p := image.Pt(msg.X-m.originX, msg.Y-m.originY)
	r := m.rects

	switch {
	case p.In(r.Viewer):
		m.SetFocus(FocusGallery)
		var cmd tea.Cmd
		m.viewer, cmd = m.viewer.Update(msg)
		return cmd

	case p.In(r.Variants):
		m.SetFocus(FocusVariants)
		row := p.Y - r.Variants.Min.Y - 1
		if msg.Button == tea.MouseButtonLeft && row >= 0 {
			idx := m.variant.Offset() + row
			m.variant.Jump(idx, len(m.product.Variants), m.variantRows())
		}

	case p.In(r.Tabs):
		m.SetFocus(FocusTabs)
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if i, ok := m.tabs.HeaderAt(p.Y - r.Tabs.Min.Y); ok {
			m.tabs.Toggle(i)
		}

	case p.In(r.Related):
		row := p.Y - r.Related.Min.Y - 1
		if msg.Button != tea.MouseButtonLeft || row < 0 || row >= len(m.related) {
			return nil
		}
		handle := m.related[row].Handle
		return func() tea.Msg { return ActionMsg(OpenProduct{Handle: handle}) }
	}
	return nil
}
