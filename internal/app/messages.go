package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/storefront/internal/commerce"
)

// Message category interfaces for type-based routing in Update().

// LoadingMessage is implemented by messages of the startup screen.
type LoadingMessage interface {
	tea.Msg
	loadingMessage()
}

// CatalogMessage is implemented by results of catalog requests.
type CatalogMessage interface {
	tea.Msg
	catalogMessage()
}

// ShowLoadingMsg is sent after the show delay to display the loading screen.
type ShowLoadingMsg struct{}

func (ShowLoadingMsg) loadingMessage() {}

// LoadingTickMsg advances the loading animation.
type LoadingTickMsg struct{}

func (LoadingTickMsg) loadingMessage() {}

// fetchInfo is the provenance of a catalog result.
type fetchInfo struct {
	FetchedAt time.Time
	FromCache bool
	Stale     bool
}

// RegionsLoadedMsg carries the regions. Startup waits for it.
type RegionsLoadedMsg struct {
	Regions []commerce.Region
	Err     error
}

func (RegionsLoadedMsg) catalogMessage() {}

// CollectionsLoadedMsg carries the collections of the home page.
type CollectionsLoadedMsg struct {
	Collections []commerce.Collection
	Err         error
}

func (CollectionsLoadedMsg) catalogMessage() {}

// ListingLoadedMsg carries a store listing page. Gen identifies the request
// so only the latest listing is applied.
type ListingLoadedMsg struct {
	Gen  int
	Page commerce.ProductPage
	Info fetchInfo
	Err  error
}

func (ListingLoadedMsg) catalogMessage() {}

// ProductLoadedMsg carries the product requested by handle.
type ProductLoadedMsg struct {
	Handle  string
	Product *commerce.Product
	Info    fetchInfo
	Err     error
}

func (ProductLoadedMsg) catalogMessage() {}

// RelatedLoadedMsg carries the related products of ProductID.
type RelatedLoadedMsg struct {
	ProductID string
	Products  []commerce.Product
	Err       error
}

func (RelatedLoadedMsg) catalogMessage() {}

// CartLoadedMsg carries the configured cart.
type CartLoadedMsg struct {
	Cart *commerce.Cart
	Err  error
}

func (CartLoadedMsg) catalogMessage() {}

// RefreshedMsg is sent once the catalog cache has been dropped.
type RefreshedMsg struct {
	Err error
}

func (RefreshedMsg) catalogMessage() {}

// flushMsg is sent after pending terminal image data had time to reach the
// terminal.
type flushMsg struct{}
