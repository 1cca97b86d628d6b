package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/storefront/internal/app/handler"
	"github.com/llehouerou/storefront/internal/keymap"
	"github.com/llehouerou/storefront/internal/state"
	"github.com/llehouerou/storefront/internal/ui/list"
)

// handleKeyMsg dispatches a key through the handler chain: popups, the
// startup screen, focused inputs, global keys, then the current page.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	_, cmd := handler.Chain(key,
		func(string) handler.Result { return m.popups.HandleKey(msg) },
		m.handleLoadingKey,
		func(string) handler.Result { return m.handleInputKey(msg) },
		m.handleGlobalKey,
		func(string) handler.Result { return m.handlePageKey(msg) },
	)
	return m, cmd
}

// handleLoadingKey swallows keys until startup completes, except quit.
func (m *Model) handleLoadingKey(key string) handler.Result {
	if m.loadingState == loadingDone {
		return handler.NotHandled
	}
	if m.keys.Resolve(key) == keymap.ActionQuit {
		return handler.Handled(tea.Quit)
	}
	return handler.Handled(nil)
}

// handleInputKey gives every key to the listing filter while it is being
// typed, and to the fullscreen gallery while it is open.
func (m *Model) handleInputKey(msg tea.KeyMsg) handler.Result {
	var cmd tea.Cmd
	switch {
	case m.page == state.PageStore && m.store.Filtering():
		m.store, cmd = m.store.Update(msg)
	case m.page == state.PageProduct && m.product.IsFullscreen():
		m.product, cmd = m.product.Update(msg)
	default:
		return handler.NotHandled
	}
	return handler.Handled(cmd)
}

func (m *Model) handleGlobalKey(key string) handler.Result {
	switch m.keys.Resolve(key) {
	case keymap.ActionQuit:
		return handler.Handled(tea.Quit)
	case keymap.ActionHelp:
		m.popups.ShowHelp(m.helpContexts())
		return handler.Handled(nil)
	case keymap.ActionPageHome:
		return handler.Handled(m.setPage(state.PageHome))
	case keymap.ActionPageShop:
		return handler.Handled(m.setPage(state.PageStore))
	case keymap.ActionPageCart:
		return handler.Handled(m.setPage(state.PageCart))
	case keymap.ActionRefresh:
		m.status.note = "Refreshing catalog..."
		return handler.Handled(m.refresh())
	}
	return handler.NotHandled
}

// handlePageKey gives the key to the current page.
func (m *Model) handlePageKey(msg tea.KeyMsg) handler.Result {
	var cmd tea.Cmd
	switch m.page {
	case state.PageHome:
		if r := m.home.Update(msg); r.Action == list.ActionEnter {
			cmd = m.openCollection(r.Index)
		}
	case state.PageCart:
		m.cartList.Update(msg)
	case state.PageStore:
		m.store, cmd = m.store.Update(msg)
	case state.PageProduct:
		m.product, cmd = m.product.Update(msg)
	}
	return handler.Handled(cmd)
}
