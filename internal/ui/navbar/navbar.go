// Package navbar renders the site navigation bar.
package navbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/storefront/internal/ui/render"
	"github.com/llehouerou/storefront/internal/ui/styles"
)

// Height is the fixed height of the navigation bar (single line).
const Height = 1

// item is a main navigation entry.
type item struct {
	key   string
	name  string
	pages []string // pages for which the item is active
}

var mainItems = []item{
	{"F1", "Home", []string{"home"}},
	{"F2", "Shop", []string{"store", "product"}},
	{"F3", "Cart", []string{"cart"}},
}

// Props is everything the bar shows.
type Props struct {
	StoreName string
	Page      string // "home", "store", "product" or "cart"
	CartCount int
	CartKnown bool   // false while the cart is loading or not configured
	Country   string // display name of the selected country
	Currency  string
	Width     int
}

func activeStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().Primary).Bold(true)
}

func keyStyle() lipgloss.Style { return styles.T().S().Subtle }

func nameStyle() lipgloss.Style { return styles.T().S().Base }

func separator() string { return styles.T().S().Subtle.Render(" │ ") }

// Render returns the navigation bar, or empty string when width < 20.
// Right-hand items are dropped first when the bar does not fit.
func Render(p Props) string {
	if p.Width < 20 {
		return ""
	}

	left := ""
	if p.StoreName != "" {
		t := styles.T()
		left = styles.ApplyBoldGradient(render.Sanitize(p.StoreName), t.Primary, t.Secondary)
	}
	center := renderItems(p.Page)

	right := []string{renderCart(p)}
	if region := renderRegion(p); region != "" {
		right = append(right, region)
	}

	// Drop right-hand items, then the store name, until the bar fits.
	for {
		line, ok := layout(left, center, strings.Join(right, separator()), p.Width)
		if ok {
			return line
		}
		switch {
		case len(right) > 0:
			right = right[:len(right)-1]
		case left != "":
			left = ""
		default:
			return ansi.Truncate(line, p.Width, "…")
		}
	}
}

func renderItems(page string) string {
	parts := make([]string, 0, len(mainItems))
	for _, it := range mainItems {
		ks, ns := keyStyle(), nameStyle()
		for _, pg := range it.pages {
			if pg == page {
				ks, ns = activeStyle(), activeStyle()
			}
		}
		parts = append(parts, ks.Render(it.key)+" "+ns.Render(it.name))
	}
	return strings.Join(parts, separator())
}

func renderCart(p Props) string {
	count := 0
	if p.CartKnown {
		count = p.CartCount
	}
	return nameStyle().Render(fmt.Sprintf("Cart (%d)", count))
}

func renderRegion(p Props) string {
	var parts []string
	if p.Country != "" {
		parts = append(parts, render.Sanitize(p.Country))
	}
	if p.Currency != "" {
		parts = append(parts, strings.ToUpper(p.Currency))
	}
	if len(parts) == 0 {
		return ""
	}
	return styles.T().S().Muted.Render(strings.Join(parts, " · "))
}

// layout places center in the middle of width with left and right at the
// edges. It reports false when the pieces overlap.
func layout(left, center, right string, width int) (string, bool) {
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	gaps := 0
	if lw > 0 {
		gaps++
	}
	if rw > 0 {
		gaps++
	}
	if lw+cw+rw+gaps*2 > width {
		return center, false
	}

	start := (width - cw) / 2
	if start < lw+2 && lw > 0 {
		start = lw + 2
	}
	if start+cw+2 > width-rw && rw > 0 {
		start = width - rw - 2 - cw
	}
	if start < 0 || (lw > 0 && start < lw+2) {
		return center, false
	}

	var sb strings.Builder
	sb.WriteString(left)
	sb.WriteString(strings.Repeat(" ", start-lw))
	sb.WriteString(center)
	if rw > 0 {
		sb.WriteString(strings.Repeat(" ", width-start-cw-rw))
		sb.WriteString(right)
	}
	return sb.String(), true
}
