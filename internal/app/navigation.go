package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/storefront/internal/commerce"
	"github.com/llehouerou/storefront/internal/state"
)

// setPage switches to one of the top-level pages.
func (m *Model) setPage(page string) tea.Cmd {
	if page == m.page {
		return nil
	}
	if m.page == state.PageProduct {
		m.leaveProduct()
	}
	m.page = page
	m.focusPage()
	m.saveNavigation()

	if page == state.PageCart {
		return m.loadCart()
	}
	return nil
}

// openProduct shows the product page for handle and starts loading it.
func (m *Model) openProduct(handle string) tea.Cmd {
	if handle == "" {
		return nil
	}
	if m.page == state.PageProduct {
		if handle == m.productHandle {
			return nil
		}
		m.leaveProduct()
	}
	m.page = state.PageProduct
	m.productHandle = handle
	m.productLoading = true
	m.focusPage()
	m.saveNavigation()
	return m.loadProduct(handle)
}

// leaveProduct releases the product page gallery. Its image is removed on
// the next render.
func (m *Model) leaveProduct() {
	m.pendingClear += m.product.Close()
	m.product.SetProduct(nil)
	m.productHandle = ""
	m.productLoading = false
}

// openCollection filters the store by the home page entry at index.
func (m *Model) openCollection(index int) tea.Cmd {
	items := m.home.Items()
	if index < 0 || index >= len(items) {
		return nil
	}
	changed := m.store.SetCollection(items[index].ID)
	cmd := m.setPage(state.PageStore)
	if !changed {
		return cmd
	}
	return tea.Batch(cmd, m.loadListing())
}

// setCollections fills the home page, keeping the active collection under
// the cursor.
func (m *Model) setCollections(collections []commerce.Collection) {
	m.store.SetCollections(collections)
	items := append([]commerce.Collection{allProducts}, collections...)
	m.home.SetItems(items)
	for i, c := range items {
		if c.ID == m.store.CollectionID() {
			m.home.Select(i)
			break
		}
	}
}

// navigationState captures what is restored on the next start.
func (m Model) navigationState() state.NavigationState {
	nav := state.NavigationState{
		Page:          m.page,
		CollectionID:  m.store.CollectionID(),
		RegionID:      m.regionID(),
		ListingOffset: m.store.Offset(),
	}
	if m.page == state.PageProduct {
		nav.ProductHandle = m.productHandle
	}
	return nav
}

// saveNavigation persists the navigation. Nothing is saved before startup
// completes so an early exit keeps the previous state.
func (m Model) saveNavigation() {
	if m.loadingState != loadingDone {
		return
	}
	m.stateMgr.SaveNavigation(m.navigationState())
}
