// Package productlist is the store page: a paged product listing with a
// collection filter, sort orders and a title filter.
package productlist

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/storefront/internal/commerce"
	"github.com/llehouerou/storefront/internal/keymap"
	"github.com/llehouerou/storefront/internal/ui"
	"github.com/llehouerou/storefront/internal/ui/cursor"
)

// Lines taken by the header, filter line, separator and footer.
const chromeHeight = 4

// DefaultPageSize is used when the configured size is out of range.
const DefaultPageSize = 12

// SortOption is a listing order with its label.
type SortOption struct {
	Label string
	Order string
}

// SortOptions in cycling order.
var SortOptions = []SortOption{
	{"Latest Arrivals", commerce.OrderNewest},
	{"Price: Low -> High", commerce.OrderPriceAsc},
	{"Price: High -> Low", commerce.OrderPriceDesc},
}

// Model is the store listing.
type Model struct {
	ui.Base
	keys   *keymap.Resolver
	cursor cursor.Cursor

	filter    textinput.Model
	filtering bool
	query     string

	collections []commerce.Collection
	collection  string // collection id, empty for all products
	order       int    // index into SortOptions
	offset      int
	pageSize    int

	page    commerce.ProductPage
	loaded  bool
	loading bool
}

// New creates an empty listing.
func New(pageSize int) Model {
	if pageSize < 1 || pageSize > 100 {
		pageSize = DefaultPageSize
	}
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Filter by title..."
	ti.CharLimit = 128
	return Model{
		keys:     keymap.ForContexts("store"),
		cursor:   cursor.New(2),
		filter:   ti,
		pageSize: pageSize,
	}
}

// Query returns the backend query for the current filters and page.
func (m Model) Query(regionID string) commerce.ProductQuery {
	return commerce.ProductQuery{
		RegionID:     regionID,
		CollectionID: m.collection,
		Query:        m.query,
		Order:        SortOptions[m.order].Order,
		Limit:        m.pageSize,
		Offset:       m.offset,
	}
}

// SetPage shows a fetched page.
func (m *Model) SetPage(page commerce.ProductPage) {
	m.page = page
	m.loaded = true
	m.loading = false
	m.cursor.ClampToBounds(len(page.Products))
	m.cursor.EnsureVisible(len(page.Products), m.listHeight())
}

// SetLoading marks the listing as being fetched.
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// SetCollections sets the collections the listing cycles through.
func (m *Model) SetCollections(collections []commerce.Collection) {
	m.collections = collections
}

// Collections returns the known collections.
func (m Model) Collections() []commerce.Collection {
	return m.collections
}

// SetCollection filters by collection id and goes back to the first page.
// It returns false when the filter is unchanged.
func (m *Model) SetCollection(id string) bool {
	if id == m.collection {
		return false
	}
	m.collection = id
	m.restart()
	return true
}

// CollectionID returns the active collection filter.
func (m Model) CollectionID() string {
	return m.collection
}

// CollectionTitle returns the title of the active collection, or "All products".
func (m Model) CollectionTitle() string {
	for _, c := range m.collections {
		if c.ID == m.collection {
			return c.Title
		}
	}
	return "All products"
}

// SetOffset restores a listing offset.
func (m *Model) SetOffset(offset int) {
	m.offset = max(offset, 0)
}

// Offset returns the listing offset.
func (m Model) Offset() int {
	return m.offset
}

// Selected returns the product under the cursor.
func (m Model) Selected() (commerce.Product, bool) {
	pos := m.cursor.Pos()
	if pos < 0 || pos >= len(m.page.Products) {
		return commerce.Product{}, false
	}
	return m.page.Products[pos], true
}

// Filtering reports whether the title filter has keyboard input.
func (m Model) Filtering() bool {
	return m.filtering
}

// SetSize sets the listing dimensions.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.filter.Width = max(width-4, 1)
	m.cursor.EnsureVisible(len(m.page.Products), m.listHeight())
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) listHeight() int {
	return max(m.Height()-chromeHeight, 1)
}

// pages returns the 1-based current page and the page count.
func (m Model) pages() (current, total int) {
	total = max((m.page.Count+m.pageSize-1)/m.pageSize, 1)
	current = min(m.offset/m.pageSize+1, total)
	return current, total
}

func (m *Model) restart() {
	m.offset = 0
	m.cursor.Reset()
}
