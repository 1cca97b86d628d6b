package producttemplate

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
	notFoundTitle = "Product not found"
	notFoundHint  = "Press esc to go back to the shop"
	relatedTitle  = "Recently Viewed Products"
	loadingText   = "Loading..."
	noVariants    = "No variants available"
)

// View renders the page at exactly its size.
func (m Model) View() string {
	w, h := m.Size()
	if w <= 0 || h <= 0 {
		return ""
	}
	if !m.Found() {
		s := styles.T().S()
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center,
			s.Title.Render(notFoundTitle)+"\n\n"+s.Subtle.Render(notFoundHint))
	}

	r := m.rects
	c := render.NewCanvas(w, h)
	c.Draw(0, 0, m.breadcrumb(w))
	c.Draw(r.Viewer.Min.X, r.Viewer.Min.Y, m.viewer.View())
	c.Draw(r.Info.Min.X, r.Info.Min.Y, clip(m.infoLines(r.Info.Dx()), r.Info.Dy()))
	c.Draw(r.Variants.Min.X, r.Variants.Min.Y, clip(m.variantLines(r.Variants.Dx()), r.Variants.Dy()))
	c.Draw(r.Tabs.Min.X, r.Tabs.Min.Y, m.tabs.View())
	if !r.Related.Empty() {
		c.Draw(r.Related.Min.X, r.Related.Min.Y, clip(m.relatedLines(r.Related.Dx()), r.Related.Dy()))
	}
	return c.String()
}

// breadcrumb is "Home / Shop By Category / <collection> / <title>"; the
// collection is left out when the product has none.
func (m Model) breadcrumb(w int) string {
	s := styles.T().S()
	sep := s.Subtle.Render(" / ")
	parts := []string{s.Muted.Render("Home"), s.Muted.Render("Shop By Category")}
	if title := m.product.CollectionTitle(); title != "" {
		parts = append(parts, s.Muted.Render(render.Sanitize(title)))
	}
	prefix := strings.Join(parts, sep) + sep
	room := w - lipgloss.Width(prefix)
	if room < 4 {
		return s.Base.Render(render.TruncateEllipsis(render.Sanitize(m.product.Title), w))
	}
	return prefix + s.Base.Render(render.TruncateEllipsis(render.Sanitize(m.product.Title), room))
}

// infoLines are the collection, title, subtitle, description and tags.
func (m Model) infoLines(w int) []string {
	if !m.Found() || w <= 0 {
		return nil
	}
	s := styles.T().S()
	p := m.product
	var lines []string

	if title := p.CollectionTitle(); title != "" {
		lines = append(lines, s.Muted.Render(render.Truncate(title, w)))
	}
	lines = append(lines, s.Title.Render(render.TruncateEllipsis(render.Sanitize(p.Title), w)))
	if p.Subtitle != "" {
		lines = append(lines, s.Muted.Render(render.TruncateEllipsis(render.Sanitize(p.Subtitle), w)))
	}

	if desc := strings.TrimSpace(render.Sanitize(strings.ReplaceAll(p.Description, "\n", " "))); desc != "" {
		wrapped := strings.Split(lipgloss.NewStyle().Width(w).Render(desc), "\n")
		if len(wrapped) > maxDescriptionLines {
			wrapped = wrapped[:maxDescriptionLines]
			last := strings.TrimRight(wrapped[maxDescriptionLines-1], " ")
			wrapped[maxDescriptionLines-1] = render.TruncateEllipsis(last+" …", w)
		}
		lines = append(lines, "")
		for _, l := range wrapped {
			lines = append(lines, s.Base.Render(strings.TrimRight(l, " ")))
		}
	}

	if len(p.Tags) > 0 {
		tags := make([]string, 0, len(p.Tags))
		for _, t := range p.Tags {
			tags = append(tags, "#"+render.Sanitize(t.Value))
		}
		lines = append(lines, "", s.Subtle.Render(render.Truncate(strings.Join(tags, " "), w)))
	}
	return lines
}

// variantLines are the heading and the visible variant rows.
func (m Model) variantLines(w int) []string {
	s := styles.T().S()
	focused := m.IsFocused() && m.focus == FocusVariants
	lines := []string{styles.SectionTitle("Variants", focused)}

	variants := m.product.Variants
	if len(variants) == 0 {
		return append(lines, s.Subtle.Render(noVariants))
	}
	start, end := m.variant.VisibleRange(len(variants), m.variantRows())
	for i := start; i < end; i++ {
		lines = append(lines, variantRow(&variants[i], w, i == m.variant.Pos(), focused))
	}
	return lines
}

func variantRow(v *commerce.Variant, w int, selected, focused bool) string {
	s := styles.T().S()

	price := s.Price.Render(catalog.FormatPrice(v.Price))
	if v.Price.OnSale() {
		price = s.Original.Render(catalog.FormatAmount(v.Price.OriginalAmount, v.Price.CurrencyCode)) + " " +
			s.Badge.Render(catalog.FormatPrice(v.Price)) + " " +
			s.Badge.Render(fmt.Sprintf("-%d%%", v.Price.DiscountPercent()))
	}

	marker := "○ "
	if selected {
		marker = "● "
	}
	title := v.Title
	if title == "" {
		title = "Default"
	}
	left := render.TruncateAndPadEllipsis(marker+render.Sanitize(title), max(w-lipgloss.Width(price)-1, 1))
	switch {
	case selected && focused:
		left = s.Cursor.Render(left)
	case selected:
		left = s.Accent.Render(left)
	default:
		left = s.Base.Render(left)
	}
	return left + " " + price
}

// relatedLines are the heading and one row per related product.
func (m Model) relatedLines(w int) []string {
	s := styles.T().S()
	lines := []string{s.Title.Render(relatedTitle)}
	switch {
	case m.relatedLoading:
		lines = append(lines, s.Subtle.Render(loadingText))
	case len(m.related) == 0:
		lines = append(lines, s.Subtle.Render("No related products"))
	default:
		for i := range m.related {
			p := &m.related[i]
			price := catalog.ListingPrice(p)
			lines = append(lines, render.Row(
				s.Base.Render(render.TruncateEllipsis("  "+render.Sanitize(p.Title), max(w-lipgloss.Width(price)-2, 1))),
				s.Muted.Render(price),
				w,
			))
		}
	}
	return lines
}

// clip joins at most n lines.
func clip(lines []string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
