package productlist

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/storefront/internal/keymap"
)

// Update handles keys while focused, and cursor blinks of the filter input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.IsFocused() {
			return m, nil
		}
		if m.filtering {
			return m.handleFilterKey(msg)
		}
		cmd := m.HandleKey(msg.String())
		return m, cmd
	default:
		if m.filtering {
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// HandleKey applies a listing key. It returns nil for unbound keys.
func (m *Model) HandleKey(key string) tea.Cmd {
	n := len(m.page.Products)
	h := m.listHeight()

	switch m.keys.Resolve(key) {
	case keymap.ActionMoveUp:
		m.cursor.Move(-1, n, h)
	case keymap.ActionMoveDown:
		m.cursor.Move(1, n, h)
	case keymap.ActionJumpStart:
		m.cursor.JumpStart()
	case keymap.ActionJumpEnd:
		m.cursor.JumpEnd(n, h)
	case keymap.ActionSelect:
		return m.open()
	case keymap.ActionFilter:
		m.filtering = true
		m.filter.SetValue(m.query)
		m.filter.CursorEnd()
		return m.filter.Focus()
	case keymap.ActionCycleSort:
		m.order = (m.order + 1) % len(SortOptions)
		return m.changed(true)
	case keymap.ActionCycleCollection:
		return m.cycleCollection()
	case keymap.ActionNextPage:
		if !m.page.HasNext() {
			return nil
		}
		m.offset += m.pageSize
		return m.changed(false)
	case keymap.ActionPrevPage:
		if m.offset == 0 {
			return nil
		}
		m.offset = max(m.offset-m.pageSize, 0)
		return m.changed(false)
	}
	return nil
}

// HandleClick selects the row at a position relative to the listing and
// opens it when it was already selected.
func (m *Model) HandleClick(x, y int) tea.Cmd {
	if x < 0 || x >= m.Width() {
		return nil
	}
	row := y - (chromeHeight - 1)
	if row < 0 || row >= m.listHeight() {
		return nil
	}
	idx := m.cursor.Offset() + row
	if idx >= len(m.page.Products) {
		return nil
	}
	if idx == m.cursor.Pos() {
		return m.open()
	}
	m.cursor.Jump(idx, len(m.page.Products), m.listHeight())
	return nil
}

// HandleWheel moves the cursor by delta rows.
func (m *Model) HandleWheel(delta int) {
	m.cursor.Move(delta, len(m.page.Products), m.listHeight())
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		query := m.filter.Value()
		if query == m.query {
			return m, nil
		}
		m.query = query
		cmd := m.changed(true)
		return m, cmd
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue(m.query)
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

func (m *Model) cycleCollection() tea.Cmd {
	if len(m.collections) == 0 {
		return nil
	}
	// All products, then each collection in turn.
	next := 0
	for i, c := range m.collections {
		if m.collection != "" && c.ID == m.collection {
			next = i + 1
			break
		}
	}
	id := ""
	if next < len(m.collections) {
		id = m.collections[next].ID
	}
	m.SetCollection(id)
	return m.changed(false)
}

func (m *Model) open() tea.Cmd {
	p, ok := m.Selected()
	if !ok || p.Handle == "" {
		return nil
	}
	return func() tea.Msg {
		return ActionMsg(OpenProduct{Handle: p.Handle})
	}
}

// changed marks the listing as loading and asks for a new fetch.
func (m *Model) changed(restart bool) tea.Cmd {
	if restart {
		m.restart()
	} else {
		m.cursor.Reset()
	}
	m.loading = true
	return func() tea.Msg {
		return ActionMsg(QueryChanged{})
	}
}
