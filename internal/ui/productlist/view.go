package productlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/storefront/internal/catalog"
	"github.com/llehouerou/storefront/internal/commerce"
	"github.com/llehouerou/storefront/internal/ui/render"
	"github.com/llehouerou/storefront/internal/ui/styles"
)

const (
	loadingText = "Loading products..."
	emptyText   = "No products found"
	hintText    = "/ filter • s sort • c collection • n/p page"
)

// View renders the listing at exactly its size.
func (m Model) View() string {
	w, h := m.Size()
	if w <= 0 || h <= 0 {
		return ""
	}
	s := styles.T().S()

	lines := make([]string, 0, h)
	lines = append(lines,
		render.Row(
			s.Title.Render(render.Truncate(m.CollectionTitle(), max(w/2, 1))),
			s.Muted.Render("Sort by: "+SortOptions[m.order].Label),
			w,
		),
		m.filterLine(w),
		s.Subtle.Render(render.Separator(w)),
	)
	lines = append(lines, m.rows(w)...)
	lines = append(lines, s.Muted.Render(m.footer()))

	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) filterLine(w int) string {
	s := styles.T().S()
	switch {
	case m.filtering:
		return m.filter.View()
	case m.query != "":
		return s.Muted.Render(render.Truncate("Filter: "+m.query, w))
	default:
		return s.Subtle.Render(render.Truncate(hintText, w))
	}
}

// rows returns exactly listHeight lines.
func (m Model) rows(w int) []string {
	h := m.listHeight()
	out := make([]string, 0, h)

	switch {
	case m.loading && len(m.page.Products) == 0:
		out = append(out, styles.T().S().Subtle.Render(loadingText))
	case len(m.page.Products) == 0 && m.loaded:
		out = append(out, styles.T().S().Subtle.Render(emptyText))
	default:
		start, end := m.cursor.VisibleRange(len(m.page.Products), h)
		for i := start; i < end; i++ {
			out = append(out, m.row(&m.page.Products[i], w, i == m.cursor.Pos()))
		}
	}

	for len(out) < h {
		out = append(out, "")
	}
	return out[:h]
}

func (m Model) row(p *commerce.Product, w int, selected bool) string {
	s := styles.T().S()

	price := catalog.ListingPrice(p)
	if cheapest := catalog.CheapestPrice(p); cheapest.OnSale() {
		price = s.Badge.Render(fmt.Sprintf("-%d%%", cheapest.DiscountPercent())) + " " + price
	}
	priceWidth := lipgloss.Width(price)

	title := render.Sanitize(p.Title)
	if p.Subtitle != "" {
		title += " · " + render.Sanitize(p.Subtitle)
	}
	title = render.TruncateAndPadEllipsis(" "+title, max(w-priceWidth-2, 1))
	line := title + " " + price + " "

	if selected && m.IsFocused() {
		return s.Cursor.Render(line)
	}
	if selected {
		return s.Accent.Render(line)
	}
	return s.Base.Render(line)
}

func (m Model) footer() string {
	if !m.loaded {
		return ""
	}
	current, total := m.pages()
	noun := "products"
	if m.page.Count == 1 {
		noun = "product"
	}
	footer := fmt.Sprintf("Page %d of %d · %d %s", current, total, m.page.Count, noun)
	if m.loading {
		footer += " · loading"
	}
	return footer
}
