package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/storefront/internal/catalog"
	"github.com/llehouerou/storefront/internal/commerce"
	"github.com/llehouerou/storefront/internal/config"
	"github.com/llehouerou/storefront/internal/state"
	"github.com/llehouerou/storefront/internal/ui/testutil"
)

// fakeBackend serves a small fixed catalog.
type fakeBackend struct {
	mu         sync.Mutex
	queries    []commerce.ProductQuery
	regionsErr error
	listErr    error
}

var (
	shirts = commerce.Collection{ID: "col_shirts", Title: "Shirts", Handle: "shirts"}
	shoes  = commerce.Collection{ID: "col_shoes", Title: "Shoes", Handle: "shoes"}

	usRegion = commerce.Region{
		ID:           "reg_us",
		Name:         "North America",
		CurrencyCode: "usd",
		Countries:    []commerce.Country{{ISO2: "us", DisplayName: "United States"}},
	}
	euRegion = commerce.Region{
		ID:           "reg_eu",
		Name:         "Europe",
		CurrencyCode: "eur",
		Countries:    []commerce.Country{{ISO2: "fr", DisplayName: "France"}},
	}
)

func product(id, handle, title string, c *commerce.Collection, amount float64) commerce.Product {
	return commerce.Product{
		ID:         id,
		Handle:     handle,
		Title:      title,
		Collection: c,
		Variants: []commerce.Variant{{
			ID:    id + "_v1",
			Title: "M",
			Price: &commerce.Price{Amount: amount, OriginalAmount: amount, CurrencyCode: "usd"},
		}},
	}
}

var fakeProducts = []commerce.Product{
	product("prod_1", "linen-shirt", "Linen Shirt", &shirts, 45),
	product("prod_2", "oxford-shirt", "Oxford Shirt", &shirts, 60),
	product("prod_3", "runner", "Trail Runner", &shoes, 120),
}

func (f *fakeBackend) ListProducts(_ context.Context, q commerce.ProductQuery) (commerce.ProductPage, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.listErr != nil {
		return commerce.ProductPage{}, f.listErr
	}
	var matched []commerce.Product
	for _, p := range fakeProducts {
		if q.CollectionID == "" || p.Collection.ID == q.CollectionID {
			matched = append(matched, p)
		}
	}
	return commerce.ProductPage{Products: matched, Count: len(matched), Limit: q.Limit}, nil
}

func (f *fakeBackend) ProductByHandle(_ context.Context, handle, _ string) (*commerce.Product, error) {
	for i := range fakeProducts {
		if fakeProducts[i].Handle == handle {
			p := fakeProducts[i]
			return &p, nil
		}
	}
	return nil, commerce.ErrNotFound
}

func (f *fakeBackend) ListRegions(context.Context) ([]commerce.Region, error) {
	if f.regionsErr != nil {
		return nil, f.regionsErr
	}
	return []commerce.Region{euRegion, usRegion}, nil
}

func (f *fakeBackend) ListCollections(context.Context) ([]commerce.Collection, error) {
	return []commerce.Collection{shirts, shoes}, nil
}

func (f *fakeBackend) Cart(_ context.Context, id string) (*commerce.Cart, error) {
	if id != "cart_1" {
		return nil, commerce.ErrNotFound
	}
	return &commerce.Cart{
		ID:           id,
		CurrencyCode: "usd",
		Total:        150,
		Items: []commerce.CartItem{
			{ID: "item_1", ProductTitle: "Linen Shirt", VariantTitle: "M", Quantity: 2, UnitPrice: 45},
			{ID: "item_2", ProductTitle: "Oxford Shirt", VariantTitle: "L", Quantity: 1, UnitPrice: 60},
		},
	}, nil
}

func (f *fakeBackend) lastQuery() commerce.ProductQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queries) == 0 {
		return commerce.ProductQuery{}
	}
	return f.queries[len(f.queries)-1]
}

func testConfig() *config.Config {
	cfg := &config.Config{StoreName: "Acme", CountryCode: "us"}
	cfg.Backend.TimeoutSeconds = 5
	cfg.Listing.PageSize = 12
	return cfg
}

type fixture struct {
	backend *fakeBackend
	state   *state.Mock
	cfg     *config.Config
}

func newFixture() *fixture {
	return &fixture{backend: &fakeBackend{}, state: state.NewMock(), cfg: testConfig()}
}

// model creates the application at 100x30 without running startup.
func (f *fixture) model() Model {
	m := New(f.cfg, f.state, catalog.New(f.backend, nil), nil, nil)
	m, _ = send(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

// start creates the application and completes startup.
func (f *fixture) start(t *testing.T) Model {
	t.Helper()
	m := f.model()
	return drain(t, m, tea.Batch(m.loadRegions(), m.loadCollections(), m.loadCart()))
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// drain runs cmd and feeds the resulting messages back into m. Timers of
// the loading screen and image flushes are dropped.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 1000, "commands do not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, tea.QuitMsg, spinner.TickMsg, flushMsg, ShowLoadingMsg, LoadingTickMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			var next tea.Cmd
			m, next = send(m, msg)
			queue = append(queue, next)
		}
	}
	return m
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = send(m, testutil.Key(k))
		m = drain(t, m, cmd)
	}
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestInit_ReturnsCommands(t *testing.T) {
	m := newFixture().model()
	assert.NotNil(t, m.Init())
}

func TestView_BlankUntilStartupCompletes(t *testing.T) {
	m := newFixture().model()
	assert.Empty(t, m.View())

	m, cmd := send(m, ShowLoadingMsg{})
	assert.NotNil(t, cmd, "loading animation ticks")
	view := testutil.StripANSI(m.View())
	assert.Contains(t, view, "Acme")
	assert.Contains(t, view, "Loading catalog...")

	m, _ = send(m, LoadingTickMsg{})
	assert.Equal(t, 1, m.loadingFrame)
}

func TestStartup_OpensStoreInConfiguredRegion(t *testing.T) {
	f := newFixture()
	m := f.start(t)

	assert.Equal(t, state.PageStore, m.page)
	require.NotNil(t, m.region)
	assert.Equal(t, "reg_us", m.region.ID, "region of the configured country")
	assert.Equal(t, "reg_us", f.backend.lastQuery().RegionID)

	view := testutil.StripANSI(m.View())
	assert.Equal(t, 30, strings.Count(view, "\n")+1)
	assert.Contains(t, view, "Linen Shirt")
	assert.Contains(t, view, "United States · USD")
	assert.Contains(t, view, "updated now")

	saved := f.state.Saved()
	require.NotEmpty(t, saved)
	assert.Equal(t, state.NavigationState{Page: state.PageStore, RegionID: "reg_us"}, saved[len(saved)-1])
}

func TestStartup_LoadingScreenEndsWithRegions(t *testing.T) {
	m := newFixture().model()
	m, _ = send(m, ShowLoadingMsg{})
	m = drain(t, m, m.loadRegions())
	assert.Equal(t, loadingDone, m.loadingState)

	_, cmd := send(m, LoadingTickMsg{})
	assert.Nil(t, cmd, "no more ticks after startup")
}

func TestStartup_RestoresNavigation(t *testing.T) {
	f := newFixture()
	f.state.SetNavigation(&state.NavigationState{
		Page:          state.PageProduct,
		ProductHandle: "oxford-shirt",
		CollectionID:  "col_shirts",
		RegionID:      "reg_eu",
	})
	m := f.start(t)

	assert.Equal(t, state.PageProduct, m.page)
	assert.Equal(t, "oxford-shirt", m.productHandle)
	assert.Equal(t, "reg_eu", m.regionID(), "saved region wins over the country")
	assert.Equal(t, "col_shirts", m.store.CollectionID())
	require.True(t, m.product.Found())
	assert.Equal(t, "prod_2", m.product.Product().ID)
	assert.Contains(t, testutil.StripANSI(m.View()), "Oxford Shirt")
}

func TestStartup_UnknownSavedRegionFallsBack(t *testing.T) {
	f := newFixture()
	f.state.SetNavigation(&state.NavigationState{Page: state.PageHome, RegionID: "reg_gone"})
	m := f.start(t)

	assert.Equal(t, state.PageHome, m.page)
	assert.Equal(t, "reg_us", m.regionID())
}

func TestStartup_RegionsErrorShowsPopup(t *testing.T) {
	f := newFixture()
	f.backend.regionsErr = errors.New("connection refused")
	m := f.start(t)

	assert.Equal(t, loadingDone, m.loadingState, "the store opens anyway")
	assert.Equal(t, PopupError, m.popups.ActivePopup())
	view := testutil.StripANSI(m.View())
	assert.Contains(t, view, "Failed to load regions: connection refused")

	m = press(t, m, "j")
	assert.Equal(t, PopupNone, m.popups.ActivePopup(), "any key dismisses")
	assert.Contains(t, testutil.StripANSI(m.View()), "Linen Shirt")
}

func TestKeys_PageSwitching(t *testing.T) {
	f := newFixture()
	m := f.start(t)

	m = press(t, m, "f1")
	assert.Equal(t, state.PageHome, m.page)
	view := testutil.StripANSI(m.View())
	assert.Contains(t, view, "Shop by Category")
	assert.Contains(t, view, "All products")
	assert.Contains(t, view, "Shoes")

	m = press(t, m, "f3")
	assert.Equal(t, state.PageCart, m.page)
	assert.Contains(t, testutil.StripANSI(m.View()), "No cart configured")

	m = press(t, m, "f2")
	assert.Equal(t, state.PageStore, m.page)

	saved := f.state.Saved()
	assert.Equal(t, state.PageStore, saved[len(saved)-1].Page)
}

func TestKeys_Quit(t *testing.T) {
	m := newFixture().start(t)

	_, cmd := send(m, testutil.Key("q"))
	assert.True(t, isQuit(cmd))

	_, cmd = send(m, testutil.Key("ctrl+c"))
	assert.True(t, isQuit(cmd))
}

func TestKeys_QuitDuringStartup(t *testing.T) {
	m := newFixture().model()

	_, cmd := send(m, testutil.Key("q"))
	assert.True(t, isQuit(cmd))

	m, cmd = send(m, testutil.Key("f1"))
	assert.Nil(t, cmd)
	assert.Equal(t, state.PageStore, m.page, "keys wait for startup")
}

func TestHome_OpenCollection(t *testing.T) {
	f := newFixture()
	m := f.start(t)

	m = press(t, m, "f1", "j", "j", "enter")
	assert.Equal(t, state.PageStore, m.page)
	assert.Equal(t, "col_shoes", m.store.CollectionID())
	assert.Equal(t, "col_shoes", f.backend.lastQuery().CollectionID)

	view := testutil.StripANSI(m.View())
	assert.Contains(t, view, "Trail Runner")
	assert.NotContains(t, view, "Linen Shirt")

	m = press(t, m, "f1")
	assert.Equal(t, 2, m.home.SelectedIndex(), "cursor stays on the active collection")
}

func TestHome_AllProductsClearsFilter(t *testing.T) {
	f := newFixture()
	f.state.SetNavigation(&state.NavigationState{Page: state.PageHome, CollectionID: "col_shoes"})
	m := f.start(t)
	require.Equal(t, 2, m.home.SelectedIndex())

	m = press(t, m, "g", "enter")
	assert.Empty(t, m.store.CollectionID())
	assert.Empty(t, f.backend.lastQuery().CollectionID)
}

func TestStore_OpenProductAndBack(t *testing.T) {
	f := newFixture()
	m := f.start(t)

	m = press(t, m, "j", "enter")
	assert.Equal(t, state.PageProduct, m.page)
	assert.Equal(t, "oxford-shirt", m.productHandle)
	require.True(t, m.product.Found())
	assert.Len(t, m.product.Related(), 1, "the other shirt")

	saved := f.state.Saved()
	assert.Equal(t, "oxford-shirt", saved[len(saved)-1].ProductHandle)

	m = press(t, m, "esc")
	assert.Equal(t, state.PageStore, m.page)
	assert.Empty(t, m.productHandle)
	assert.False(t, m.product.Found())

	saved = f.state.Saved()
	assert.Equal(t, state.NavigationState{Page: state.PageStore, RegionID: "reg_us"}, saved[len(saved)-1])
}

func TestProduct_NotFound(t *testing.T) {
	m := newFixture().start(t)

	cmd := m.openProduct("gone")
	m = drain(t, m, cmd)
	assert.Equal(t, state.PageProduct, m.page)
	assert.False(t, m.productLoading)

	view := testutil.StripANSI(m.View())
	assert.Contains(t, view, "Product not found")
	assert.NotContains(t, view, "Failed", "not found is not an error")
}

func TestProduct_ShowsLoadingUntilLoaded(t *testing.T) {
	m := newFixture().start(t)

	m.openProduct("linen-shirt")
	assert.True(t, m.productLoading)
	assert.Contains(t, testutil.StripANSI(m.View()), "Loading product...")
}

func TestProduct_StaleResultDropped(t *testing.T) {
	m := newFixture().start(t)

	m.openProduct("linen-shirt")
	p := fakeProducts[1]
	m, _ = send(m, ProductLoadedMsg{Handle: "oxford-shirt", Product: &p})
	assert.True(t, m.productLoading, "result for another handle is ignored")
	assert.False(t, m.product.Found())
}

func TestListing_StaleGenerationDropped(t *testing.T) {
	m := newFixture().start(t)
	gen := m.listingGen

	m, _ = send(m, ListingLoadedMsg{Gen: gen - 1, Page: commerce.ProductPage{}})
	assert.Contains(t, testutil.StripANSI(m.View()), "Linen Shirt")
}

func TestListing_ErrorInStatusLine(t *testing.T) {
	f := newFixture()
	f.backend.listErr = errors.New("timeout")
	m := f.start(t)

	view := testutil.StripANSI(m.View())
	assert.Contains(t, view, "Failed to load products: timeout")
}

func TestRefresh(t *testing.T) {
	f := newFixture()
	m := f.start(t)
	before := len(f.backend.queries)

	m, cmd := send(m, testutil.Key("ctrl+r"))
	assert.Contains(t, testutil.StripANSI(m.View()), "Refreshing catalog...")
	m = drain(t, m, cmd)

	assert.Greater(t, len(f.backend.queries), before, "listing reloaded")
	assert.NotContains(t, testutil.StripANSI(m.View()), "Refreshing catalog...")
}

func TestHelpPopup(t *testing.T) {
	m := newFixture().start(t)

	m = press(t, m, "?")
	require.True(t, m.popups.IsHelpVisible())
	view := testutil.StripANSI(m.View())
	assert.Contains(t, view, "Help")
	assert.Contains(t, view, "Filter by title")
	assert.Equal(t, 30, strings.Count(view, "\n")+1)

	m = press(t, m, "f1")
	assert.Equal(t, state.PageStore, m.page, "the popup takes the keys")

	m = press(t, m, "esc")
	assert.False(t, m.popups.IsHelpVisible())
}

func TestCart(t *testing.T) {
	f := newFixture()
	f.cfg.Cart.ID = "cart_1"
	m := f.start(t)

	assert.True(t, m.cartKnown)
	assert.Contains(t, testutil.StripANSI(m.View()), "Cart (3)")

	m = press(t, m, "f3")
	view := testutil.StripANSI(m.View())
	assert.Contains(t, view, "Your Cart (3 items)")
	line := testutil.FindLine(view, "Linen Shirt · M")
	assert.Contains(t, line, "2 × 45.00 USD")
	assert.Contains(t, line, "90.00 USD")
	assert.Contains(t, testutil.FindLine(view, "Total"), "150.00 USD")
}

func TestCart_Empty(t *testing.T) {
	f := newFixture()
	f.cfg.Cart.ID = "cart_1"
	m := f.start(t)

	m = press(t, m, "f3")
	m, _ = send(m, CartLoadedMsg{Cart: &commerce.Cart{ID: "cart_1"}})
	assert.Contains(t, testutil.StripANSI(m.View()), "Your cart is empty.")
}

func TestMouse_StoreWheelAndClick(t *testing.T) {
	m := newFixture().start(t)

	m, _ = send(m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	p, ok := m.store.Selected()
	require.True(t, ok)
	assert.Equal(t, "prod_2", p.ID)

	// Rows start below the navbar and the listing header.
	row := testutil.LineIndex(testutil.StripANSI(m.View()), "Trail Runner")
	require.Positive(t, row)
	click := tea.MouseMsg{X: 5, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}

	m, cmd := send(m, click)
	m = drain(t, m, cmd)
	p, _ = m.store.Selected()
	assert.Equal(t, "prod_3", p.ID, "first click selects")
	assert.Equal(t, state.PageStore, m.page)

	m, cmd = send(m, click)
	m = drain(t, m, cmd)
	assert.Equal(t, state.PageProduct, m.page, "second click opens")
	assert.Equal(t, "runner", m.productHandle)
}

func TestMouse_HomeClick(t *testing.T) {
	m := newFixture().start(t)
	m = press(t, m, "f1")

	row := testutil.LineIndex(testutil.StripANSI(m.View()), "Shirts")
	require.Positive(t, row)
	click := tea.MouseMsg{X: 3, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}

	m, _ = send(m, click)
	assert.Equal(t, 1, m.home.SelectedIndex())

	m, cmd := send(m, click)
	m = drain(t, m, cmd)
	assert.Equal(t, state.PageStore, m.page)
	assert.Equal(t, "col_shirts", m.store.CollectionID())
}

func TestMouse_IgnoredUnderPopup(t *testing.T) {
	m := newFixture().start(t)
	m = press(t, m, "?")

	m, _ = send(m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	p, _ := m.store.Selected()
	assert.Equal(t, "prod_1", p.ID)
}

func TestStatus_CacheAge(t *testing.T) {
	m := newFixture().start(t)
	fetched := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fetched.Add(3 * time.Minute) }

	m.status.setInfo(fetchInfo{FetchedAt: fetched, FromCache: true})
	assert.Contains(t, testutil.StripANSI(m.renderStatus()), "cached 3 minutes ago")

	m.status.setInfo(fetchInfo{FetchedAt: fetched, FromCache: true, Stale: true})
	assert.Contains(t, testutil.StripANSI(m.renderStatus()), "offline copy from 3 minutes ago")
}

func TestEnforceHeight(t *testing.T) {
	tests := []struct {
		name string
		in   string
		h    int
		want string
	}{
		{"pads", "a\nb", 4, "a\nb\n\n"},
		{"truncates", "a\nb\nc", 2, "a\nb"},
		{"exact", "a\nb", 2, "a\nb"},
		{"zero", "a", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := enforceHeight(tt.in, tt.h)
			assert.Equal(t, tt.want, got)
			if tt.h > 0 {
				assert.Equal(t, tt.h, strings.Count(got, "\n")+1)
			}
		})
	}
}
