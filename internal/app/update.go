package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/storefront/internal/commerce"
	"github.com/llehouerou/storefront/internal/errmsg"
	"github.com/llehouerou/storefront/internal/state"
	"github.com/llehouerou/storefront/internal/ui/action"
	"github.com/llehouerou/storefront/internal/ui/helpbindings"
	"github.com/llehouerou/storefront/internal/ui/layout"
	"github.com/llehouerou/storefront/internal/ui/productlist"
	"github.com/llehouerou/storefront/internal/ui/producttemplate"
)

// Update handles messages and returns updated model and commands. Pending
// terminal image output is acknowledged by a flush shortly after it was
// rendered.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	if !m.flushScheduled && (m.pendingClear != "" || m.product.Viewer().Transmit() != "") {
		m.flushScheduled = true
		cmd = tea.Batch(cmd, flushCmd())
	}
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadingMessage:
		return m.handleLoadingMsg(msg)
	case CatalogMessage:
		return m.handleCatalogMsg(msg)
	case action.Msg:
		return m.handleAction(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case flushMsg:
		m.flushScheduled = false
		m.pendingClear = ""
	}

	// Everything else belongs to the page components: filter cursor blinks,
	// gallery image loads, spinner ticks.
	var cmd, pageCmd tea.Cmd
	m.store, cmd = m.store.Update(msg)
	m.product, pageCmd = m.product.Update(msg)
	return m, tea.Batch(cmd, pageCmd)
}

func (m Model) handleLoadingMsg(msg LoadingMessage) (Model, tea.Cmd) {
	switch msg.(type) {
	case ShowLoadingMsg:
		if m.loadingState == loadingWaiting {
			m.loadingState = loadingShowing
			return m, LoadingTickCmd()
		}
	case LoadingTickMsg:
		if m.loadingState == loadingShowing {
			m.loadingFrame++
			return m, LoadingTickCmd()
		}
	}
	return m, nil
}

func (m Model) handleCatalogMsg(msg CatalogMessage) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RegionsLoadedMsg:
		return m.handleRegionsLoaded(msg)

	case CollectionsLoadedMsg:
		if msg.Err != nil {
			m.status.setError(errmsg.Format(errmsg.OpCollectionsLoad, msg.Err))
			return m, nil
		}
		m.setCollections(msg.Collections)

	case ListingLoadedMsg:
		if msg.Gen != m.listingGen {
			return m, nil
		}
		if msg.Err != nil {
			m.store.SetLoading(false)
			m.status.setError(errmsg.Format(errmsg.OpProductsLoad, msg.Err))
			return m, nil
		}
		m.store.SetPage(msg.Page)
		if m.page == state.PageStore {
			m.status.setInfo(msg.Info)
		}

	case ProductLoadedMsg:
		return m.handleProductLoaded(msg)

	case RelatedLoadedMsg:
		p := m.product.Product()
		if p == nil || p.ID != msg.ProductID {
			return m, nil
		}
		if msg.Err != nil {
			m.status.setError(errmsg.Format(errmsg.OpRelatedLoad, msg.Err))
		}
		m.product.SetRelated(msg.Products)

	case CartLoadedMsg:
		if msg.Err != nil {
			m.status.setError(errmsg.Format(errmsg.OpCartLoad, msg.Err))
			return m, nil
		}
		m.cart = msg.Cart
		m.cartKnown = msg.Cart != nil
		if msg.Cart != nil {
			m.cartList.SetItems(msg.Cart.Items)
		}

	case RefreshedMsg:
		m.status.note = ""
		if msg.Err != nil {
			m.status.setError(errmsg.Format(errmsg.OpRefresh, msg.Err))
		}
		cmds := []tea.Cmd{m.loadCollections(), m.loadCart(), m.loadListing()}
		if m.page == state.PageProduct && m.productHandle != "" {
			m.productLoading = true
			cmds = append(cmds, m.loadProduct(m.productHandle))
		}
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

// handleRegionsLoaded completes startup. Without regions the store still
// opens, unpriced, with the failure shown.
func (m Model) handleRegionsLoaded(msg RegionsLoadedMsg) (Model, tea.Cmd) {
	if m.loadingState == loadingDone {
		return m, nil
	}
	m.loadingState = loadingDone
	if msg.Err != nil {
		m.region = nil
		m.popups.ShowOpError(errmsg.OpRegionsLoad, msg.Err)
	} else {
		m.selectRegion(msg.Regions)
	}

	cmds := []tea.Cmd{m.loadListing()}
	if handle := m.restoreHandle; handle != "" {
		m.restoreHandle = ""
		cmds = append(cmds, m.openProduct(handle))
	}
	m.saveNavigation()
	return m, tea.Batch(cmds...)
}

func (m Model) handleProductLoaded(msg ProductLoadedMsg) (Model, tea.Cmd) {
	if m.page != state.PageProduct || msg.Handle != m.productHandle {
		return m, nil
	}
	m.productLoading = false
	if msg.Err != nil {
		m.product.SetProduct(nil)
		if !commerce.IsNotFound(msg.Err) {
			m.status.setError(errmsg.FormatWith(errmsg.OpProductLoad, msg.Handle, msg.Err))
		}
		return m, nil
	}
	m.status.setInfo(msg.Info)
	cmd := m.product.SetProduct(msg.Product)
	if !m.product.Found() {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.loadRelated(msg.Product))
}

func (m Model) handleAction(msg action.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a := msg.Action.(type) {
	case productlist.OpenProduct:
		cmd = m.openProduct(a.Handle)
	case productlist.QueryChanged:
		cmd = m.loadListing()
		m.saveNavigation()
	case producttemplate.OpenProduct:
		cmd = m.openProduct(a.Handle)
	case producttemplate.Back:
		cmd = m.setPage(state.PageStore)
	case helpbindings.Close:
		m.popups.HideHelp()
	}
	return m, cmd
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	h := layout.ContentHeight(m.height)

	m.home.SetSize(m.width, max(h-homeChrome, 0))
	m.store.SetSize(m.width, h)
	m.cartList.SetSize(m.width, max(h-cartChrome, 0))
	m.product.SetSize(m.width, h)
	m.product.SetOrigin(0, layout.ContentRow())
	m.product.SetScreenSize(m.width, m.height)
	m.popups.SetSize(m.width, m.height)
	return m, nil
}
