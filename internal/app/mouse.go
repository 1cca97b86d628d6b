package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/storefront/internal/state"
	"github.com/llehouerou/storefront/internal/ui/layout"
	"github.com/llehouerou/storefront/internal/ui/list"
)

// handleMouse routes mouse events to the current page. Popups and the
// startup screen ignore the mouse.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.loadingState != loadingDone || m.popups.ActivePopup() != PopupNone {
		return m, nil
	}

	// The product page knows its screen origin and the fullscreen gallery
	// covers the whole screen, so it gets raw coordinates.
	if m.page == state.PageProduct {
		var cmd tea.Cmd
		m.product, cmd = m.product.Update(msg)
		return m, cmd
	}

	y := msg.Y - layout.ContentRow()
	if delta := wheelDelta(msg); delta != 0 {
		switch m.page {
		case state.PageHome:
			m.home.HandleWheel(delta)
		case state.PageStore:
			m.store.HandleWheel(delta)
		case state.PageCart:
			m.cartList.HandleWheel(delta)
		}
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	var cmd tea.Cmd
	switch m.page {
	case state.PageHome:
		if r := m.home.HandleClick(y - homeChrome); r.Action == list.ActionEnter {
			cmd = m.openCollection(r.Index)
		}
	case state.PageStore:
		cmd = m.store.HandleClick(msg.X, y)
	case state.PageCart:
		m.cartList.HandleClick(y - cartHeader)
	}
	return m, cmd
}

// wheelDelta returns the rows a wheel event scrolls, 0 for other events.
func wheelDelta(msg tea.MouseMsg) int {
	if msg.Action != tea.MouseActionPress {
		return 0
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return -1
	case tea.MouseButtonWheelDown:
		return 1
	default:
		return 0
	}
}
