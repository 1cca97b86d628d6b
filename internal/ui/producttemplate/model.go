// Package producttemplate is the product page: breadcrumb, image gallery,
// product information, variants, details tabs and related products.
package producttemplate

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/storefront/internal/commerce"
	"github.com/llehouerou/storefront/internal/keymap"
	"github.com/llehouerou/storefront/internal/ui"
	"github.com/llehouerou/storefront/internal/ui/cursor"
	"github.com/llehouerou/storefront/internal/ui/imageviewer"
	"github.com/llehouerou/storefront/internal/ui/layout"
	"github.com/llehouerou/storefront/internal/ui/producttabs"
	"github.com/llehouerou/storefront/internal/ui/termimg"
)

// Focus is the area receiving keys.
type Focus int

// Focus cycle order.
const (
	FocusGallery Focus = iota
	FocusVariants
	FocusTabs
	focusCount
)

const (
	// RelatedLimit is the number of related products requested and shown.
	RelatedLimit        = 4
	maxDescriptionLines = 4
	maxVariantRows      = 6
)

// Model is the product page.
type Model struct {
	ui.Base
	keys *keymap.Resolver

	product *commerce.Product
	viewer  imageviewer.Model
	tabs    producttabs.Model
	variant cursor.Cursor
	focus   Focus

	related        []commerce.Product
	relatedLoading bool

	originX, originY int
	rects            layout.ProductRects
}

// New creates an empty product page.
func New(protocol termimg.ImageProtocol, fetcher *termimg.Fetcher) Model {
	return Model{
		keys:    keymap.ForContexts("product"),
		viewer:  imageviewer.New(protocol, fetcher),
		tabs:    producttabs.New(),
		variant: cursor.New(1),
	}
}

// Found reports whether a product is shown.
func (m Model) Found() bool {
	return m.product != nil && m.product.ID != ""
}

// Product returns the shown product, or nil.
func (m Model) Product() *commerce.Product {
	return m.product
}

// SetProduct shows a product and starts loading its images. Related
// products are marked as loading until SetRelated.
func (m *Model) SetProduct(p *commerce.Product) tea.Cmd {
	m.product = p
	m.tabs.SetProduct(p)
	m.variant.Reset()
	m.related = nil
	m.relatedLoading = p != nil
	m.focus = FocusGallery

	var cmd tea.Cmd
	if m.Found() {
		cmd = m.viewer.SetImages(p.ImageSet())
	} else {
		m.viewer.SetImages(nil)
	}
	m.applyFocus()
	m.relayout()
	return cmd
}

// SetRelated shows the related products.
func (m *Model) SetRelated(products []commerce.Product) {
	if len(products) > RelatedLimit {
		products = products[:RelatedLimit]
	}
	m.related = products
	m.relatedLoading = false
	m.relayout()
}

// Related returns the shown related products.
func (m Model) Related() []commerce.Product {
	return m.related
}

// SelectedVariant returns the highlighted variant.
func (m Model) SelectedVariant() (commerce.Variant, bool) {
	if !m.Found() {
		return commerce.Variant{}, false
	}
	pos := m.variant.Pos()
	if pos < 0 || pos >= len(m.product.Variants) {
		return commerce.Variant{}, false
	}
	return m.product.Variants[pos], true
}

// Focus returns the focused area.
func (m Model) Focus() Focus {
	return m.focus
}

// SetFocus moves the focus to an area.
func (m *Model) SetFocus(f Focus) {
	if f < 0 || f >= focusCount {
		return
	}
	m.focus = f
	m.applyFocus()
}

// SetFocused sets whether the page has the keyboard.
func (m *Model) SetFocused(focused bool) {
	m.Base.SetFocused(focused)
	m.applyFocus()
}

// SetSize sets the page dimensions.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.relayout()
}

// SetOrigin sets the screen cell of the page's top-left corner.
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
	m.relayout()
}

// SetScreenSize sets the terminal size the fullscreen gallery covers.
func (m *Model) SetScreenSize(width, height int) {
	m.viewer.SetScreenSize(width, height)
}

// Viewer gives the application access to the gallery's terminal output.
func (m *Model) Viewer() *imageviewer.Model {
	return &m.viewer
}

// IsFullscreen reports whether the gallery overlay is open.
func (m Model) IsFullscreen() bool {
	return m.viewer.IsFullscreen()
}

// Close releases the gallery and returns the terminal output removing its
// image.
func (m *Model) Close() string {
	return m.viewer.Close()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) applyFocus() {
	focused := m.IsFocused() && m.Found()
	m.viewer.SetFocused(focused && m.focus == FocusGallery)
	m.tabs.SetFocused(focused && m.focus == FocusTabs)
}

func (m *Model) relayout() {
	w, h := m.Size()
	colWidth := w
	if layout.IsWide(w) {
		colWidth = w - w/2 - 2
	}
	m.rects = layout.ProductPage(w, h, layout.ProductOpts{
		InfoHeight:     len(m.infoLines(colWidth)),
		VariantsHeight: m.variantsHeight(),
		RelatedHeight:  1 + max(min(len(m.related), RelatedLimit), 1),
	})

	v := m.rects.Viewer
	m.viewer.SetSize(v.Dx(), v.Dy())
	m.viewer.SetOrigin(m.originX+v.Min.X, m.originY+v.Min.Y)
	m.tabs.SetSize(m.rects.Tabs.Dx(), m.rects.Tabs.Dy())
	if m.Found() {
		m.variant.EnsureVisible(len(m.product.Variants), m.variantRows())
	}
}

// variantsHeight is the heading plus one row per variant, capped.
func (m Model) variantsHeight() int {
	n := 0
	if m.product != nil {
		n = len(m.product.Variants)
	}
	return 1 + max(min(n, maxVariantRows), 1)
}

// variantRows is the number of variant rows that fit the layout.
func (m Model) variantRows() int {
	return max(m.rects.Variants.Dy()-1, 1)
}
