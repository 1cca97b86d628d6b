// Package app is the root bubbletea model of the storefront. It routes
// between the home, store, product and cart pages and owns the popups.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/storefront/internal/catalog"
	"github.com/llehouerou/storefront/internal/commerce"
	"github.com/llehouerou/storefront/internal/config"
	"github.com/llehouerou/storefront/internal/errmsg"
	"github.com/llehouerou/storefront/internal/keymap"
	"github.com/llehouerou/storefront/internal/state"
	"github.com/llehouerou/storefront/internal/ui"
	"github.com/llehouerou/storefront/internal/ui/list"
	"github.com/llehouerou/storefront/internal/ui/productlist"
	"github.com/llehouerou/storefront/internal/ui/producttemplate"
	"github.com/llehouerou/storefront/internal/ui/termimg"
)

// loadingPhase is the startup screen state.
type loadingPhase int

const (
	loadingWaiting loadingPhase = iota // regions pending, screen still blank
	loadingShowing                     // regions pending past the show delay
	loadingDone
)

// allProducts is the home page entry that clears the collection filter.
var allProducts = commerce.Collection{Title: "All products"}

// statusLine is the bottom line: the last error or note, and where the
// shown data came from.
type statusLine struct {
	err  string
	note string
	info fetchInfo
}

func (s *statusLine) setError(msg string) {
	s.err = msg
	s.note = ""
}

// setInfo records a successful load, which also clears the last error.
func (s *statusLine) setInfo(info fetchInfo) {
	s.info = info
	s.err = ""
}

// Model is the application state.
type Model struct {
	cfg      *config.Config
	stateMgr state.Interface
	catalog  Catalog
	keys     *keymap.Resolver
	now      func() time.Time

	width, height int
	page          string

	loadingState loadingPhase
	loadingFrame int

	regions []commerce.Region
	region  *commerce.Region

	cart      *commerce.Cart
	cartKnown bool

	home           list.Model[commerce.Collection]
	store          productlist.Model
	cartList       list.Model[commerce.CartItem]
	product        producttemplate.Model
	productHandle  string
	productLoading bool

	popups PopupManager
	status statusLine

	listingGen     int
	restoreHandle  string // product page to reopen once regions are known
	pendingClear   string // terminal output removing a closed image
	flushScheduled bool
}

// New creates the application model and restores the saved navigation.
func New(
	cfg *config.Config,
	stateMgr state.Interface,
	cat Catalog,
	protocol termimg.ImageProtocol,
	fetcher *termimg.Fetcher,
) Model {
	m := Model{
		cfg:      cfg,
		stateMgr: stateMgr,
		catalog:  cat,
		keys:     keymap.ForContexts("global"),
		now:      time.Now,
		page:     state.PageStore,
		home:     list.New[commerce.Collection](ui.ScrollMargin),
		store:    productlist.New(cfg.PageSize()),
		cartList: list.New[commerce.CartItem](ui.ScrollMargin),
		product:  producttemplate.New(protocol, fetcher),
		popups:   NewPopupManager(),
	}
	m.home.SetItems([]commerce.Collection{allProducts})

	nav, err := stateMgr.GetNavigation()
	if err != nil {
		m.status.setError(errmsg.Format(errmsg.OpNavigationLoad, err))
	} else if nav != nil {
		m.restoreNavigation(*nav)
	}
	m.focusPage()
	return m
}

// restoreNavigation applies a saved navigation state. The product page is
// reopened only after startup, when its prices can be resolved.
func (m *Model) restoreNavigation(nav state.NavigationState) {
	m.store.SetCollection(nav.CollectionID)
	m.store.SetOffset(nav.ListingOffset)
	switch nav.Page {
	case state.PageHome, state.PageStore, state.PageCart:
		m.page = nav.Page
	case state.PageProduct:
		m.restoreHandle = nav.ProductHandle
	}
	if nav.RegionID != "" {
		m.region = &commerce.Region{ID: nav.RegionID}
	}
}

// Init starts loading the catalog.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadRegions(),
		m.loadCollections(),
		m.loadCart(),
		ShowLoadingAfterDelayCmd(),
	)
}

// regionID is the region prices are requested for.
func (m Model) regionID() string {
	if m.region == nil {
		return ""
	}
	return m.region.ID
}

// currency is the currency of the selected region.
func (m Model) currency() string {
	if m.region == nil {
		return ""
	}
	return m.region.CurrencyCode
}

// selectRegion picks the saved region when it still exists, else the
// region of the configured country.
func (m *Model) selectRegion(regions []commerce.Region) {
	m.regions = regions
	if r := catalog.RegionByID(regions, m.regionID()); r != nil {
		m.region = r
		return
	}
	m.region = catalog.RegionForCountry(regions, m.cfg.CountryCode)
}

// focusPage gives the keyboard to the current page.
func (m *Model) focusPage() {
	m.home.SetFocused(m.page == state.PageHome)
	m.store.SetFocused(m.page == state.PageStore)
	m.cartList.SetFocused(m.page == state.PageCart)
	m.product.SetFocused(m.page == state.PageProduct)
}

// helpContexts are the binding contexts listed by the help popup.
func (m Model) helpContexts() []string {
	switch m.page {
	case state.PageStore:
		return []string{"global", "store"}
	case state.PageProduct:
		return []string{"global", "product", "tabs", "viewer", "fullscreen"}
	}
	return []string{"global"}
}
