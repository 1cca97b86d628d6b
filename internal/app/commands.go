package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/storefront/internal/catalog"
	"github.com/llehouerou/storefront/internal/commerce"
	"github.com/llehouerou/storefront/internal/ui/producttemplate"
)

const (
	showLoadingDelay = 400 * time.Millisecond
	loadingTick      = 150 * time.Millisecond
	flushDelay       = 200 * time.Millisecond
)

// ShowLoadingAfterDelayCmd returns a command that sends ShowLoadingMsg after
// a delay, so fast startups don't flash the loading screen.
func ShowLoadingAfterDelayCmd() tea.Cmd {
	return tea.Tick(showLoadingDelay, func(time.Time) tea.Msg {
		return ShowLoadingMsg{}
	})
}

// LoadingTickCmd returns a command that sends LoadingTickMsg for animation.
func LoadingTickCmd() tea.Cmd {
	return tea.Tick(loadingTick, func(time.Time) tea.Msg {
		return LoadingTickMsg{}
	})
}

func flushCmd() tea.Cmd {
	return tea.Tick(flushDelay, func(time.Time) tea.Msg {
		return flushMsg{}
	})
}

func info[T any](r catalog.Result[T]) fetchInfo {
	return fetchInfo{FetchedAt: r.FetchedAt, FromCache: r.FromCache, Stale: r.Stale}
}

// request runs fn in a command with a context bounded by the backend
// timeout.
func (m Model) request(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	timeout := m.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return fn(ctx)
	}
}

func (m Model) loadRegions() tea.Cmd {
	cat := m.catalog
	return m.request(func(ctx context.Context) tea.Msg {
		res, err := cat.Regions(ctx)
		return RegionsLoadedMsg{Regions: res.Value, Err: err}
	})
}

func (m Model) loadCollections() tea.Cmd {
	cat := m.catalog
	return m.request(func(ctx context.Context) tea.Msg {
		res, err := cat.Collections(ctx)
		return CollectionsLoadedMsg{Collections: res.Value, Err: err}
	})
}

func (m Model) loadCart() tea.Cmd {
	if !m.cfg.HasCart() {
		return nil
	}
	cat, id := m.catalog, m.cfg.Cart.ID
	return m.request(func(ctx context.Context) tea.Msg {
		res, err := cat.Cart(ctx, id)
		return CartLoadedMsg{Cart: res.Value, Err: err}
	})
}

// loadListing requests the store page for the current listing query.
func (m *Model) loadListing() tea.Cmd {
	m.listingGen++
	m.store.SetLoading(true)
	cat, gen := m.catalog, m.listingGen
	q := m.store.Query(m.regionID())
	return m.request(func(ctx context.Context) tea.Msg {
		res, err := cat.Products(ctx, q)
		return ListingLoadedMsg{Gen: gen, Page: res.Value, Info: info(res), Err: err}
	})
}

func (m Model) loadProduct(handle string) tea.Cmd {
	cat, region := m.catalog, m.regionID()
	return m.request(func(ctx context.Context) tea.Msg {
		res, err := cat.Product(ctx, handle, region)
		return ProductLoadedMsg{Handle: handle, Product: res.Value, Info: info(res), Err: err}
	})
}

func (m Model) loadRelated(p *commerce.Product) tea.Cmd {
	cat, region := m.catalog, m.regionID()
	return m.request(func(ctx context.Context) tea.Msg {
		related, err := cat.Related(ctx, p, region, producttemplate.RelatedLimit)
		return RelatedLoadedMsg{ProductID: p.ID, Products: related, Err: err}
	})
}

func (m Model) refresh() tea.Cmd {
	cat := m.catalog
	return m.request(func(ctx context.Context) tea.Msg {
		return RefreshedMsg{Err: cat.Refresh(ctx)}
	})
}
