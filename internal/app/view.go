package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/storefront/internal/catalog"
	"github.com/llehouerou/storefront/internal/commerce"
	"github.com/llehouerou/storefront/internal/keymap"
	"github.com/llehouerou/storefront/internal/state"
	"github.com/llehouerou/storefront/internal/ui/layout"
	"github.com/llehouerou/storefront/internal/ui/navbar"
	"github.com/llehouerou/storefront/internal/ui/popup"
	"github.com/llehouerou/storefront/internal/ui/render"
	"github.com/llehouerou/storefront/internal/ui/styles"
)

// Page chrome around the home and cart lists.
const (
	homeChrome = 2 // title, blank line
	cartHeader = 2 // title, blank line
	cartChrome = cartHeader + 2
)

var loadingFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// View renders the application UI.
func (m Model) View() string {
	switch m.loadingState {
	case loadingWaiting:
		// Blank while waiting to see if the loading screen is needed
		return ""
	case loadingShowing:
		return m.renderLoading()
	case loadingDone:
	}
	if m.width == 0 || m.height == 0 {
		return ""
	}

	content := enforceHeight(m.renderPage(), layout.ContentHeight(m.height))
	view := navbar.Render(m.navbarProps()) + "\n" + content + "\n" + m.renderStatus()

	viewer := m.product.Viewer()
	onProduct := m.page == state.PageProduct
	if onProduct {
		view = viewer.Overlay(view)
	}
	view = m.popups.RenderOverlay(view)
	view = enforceHeight(view, m.height)

	// Image data goes out before the frame, the placement after it, so the
	// image lands on top of its placeholder cells.
	view = m.pendingClear + viewer.Transmit() + view
	if onProduct {
		view += viewer.Placement()
	}
	return view
}

func (m Model) navbarProps() navbar.Props {
	return navbar.Props{
		StoreName: m.cfg.StoreName,
		Page:      m.page,
		CartCount: m.cart.ItemCount(),
		CartKnown: m.cartKnown,
		Country:   catalog.CountryName(m.region, m.cfg.CountryCode),
		Currency:  m.currency(),
		Width:     m.width,
	}
}

func (m Model) renderPage() string {
	switch m.page {
	case state.PageHome:
		return m.renderHome()
	case state.PageCart:
		return m.renderCart()
	case state.PageProduct:
		if m.productLoading {
			return m.renderMessage("Loading product...")
		}
		return m.product.View()
	default:
		return m.store.View()
	}
}

// renderMessage centers a muted line in the content area.
func (m Model) renderMessage(msg string) string {
	return lipgloss.Place(m.width, layout.ContentHeight(m.height), lipgloss.Center, lipgloss.Center,
		styles.T().S().Muted.Render(msg))
}

// renderHome lists the collections. The active filter is accented.
func (m Model) renderHome() string {
	s := styles.T().S()
	lines := []string{" " + s.Title.Render("Shop by Category"), ""}

	items := m.home.Items()
	start, end := m.home.VisibleRange()
	for i := start; i < end; i++ {
		c := items[i]
		prefix := "  "
		if i == m.home.SelectedIndex() {
			prefix = "▸ "
		}
		line := render.TruncateAndPad(prefix+render.Sanitize(c.Title), m.width)
		switch {
		case i == m.home.SelectedIndex():
			line = s.Cursor.Render(line)
		case c.ID == m.store.CollectionID():
			line = s.Accent.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderCart lists the cart lines with their totals.
func (m Model) renderCart() string {
	switch {
	case !m.cfg.HasCart():
		return m.renderMessage("No cart configured. Set [cart] id in config.toml to show one.")
	case m.cart == nil:
		return m.renderMessage("Loading cart...")
	case len(m.cart.Items) == 0:
		return m.renderMessage("Your cart is empty.")
	}

	s := styles.T().S()
	cart := m.cart
	lines := []string{
		" " + s.Title.Render("Your Cart") + s.Muted.Render(fmt.Sprintf(" (%d items)", cart.ItemCount())),
		"",
	}
	start, end := m.cartList.VisibleRange()
	for i := start; i < end; i++ {
		lines = append(lines, m.cartRow(&cart.Items[i], i == m.cartList.SelectedIndex()))
	}
	lines = append(lines, "",
		render.Row(" "+s.Title.Render("Total"), s.Price.Bold(true).Render(catalog.FormatAmount(cart.Total, cart.CurrencyCode))+" ", m.width))
	return strings.Join(lines, "\n")
}

func (m Model) cartRow(item *commerce.CartItem, selected bool) string {
	s := styles.T().S()
	currency := m.cart.CurrencyCode

	right := fmt.Sprintf("%d × %s   %s ",
		item.Quantity,
		catalog.FormatAmount(item.UnitPrice, currency),
		catalog.FormatAmount(item.UnitPrice*float64(item.Quantity), currency))

	title := item.ProductTitle
	if title == "" {
		title = item.Title
	}
	if item.VariantTitle != "" {
		title += " · " + item.VariantTitle
	}
	leftWidth := max(m.width-lipgloss.Width(right)-1, 0)
	left := render.TruncateAndPad("  "+render.Sanitize(title), leftWidth)

	if selected {
		return s.Cursor.Render(left + " " + right)
	}
	return left + " " + s.Price.Render(right)
}

// renderStatus shows the last error, or a note, and the age of the shown
// data.
func (m Model) renderStatus() string {
	s := styles.T().S()

	right := ""
	if info := m.status.info; !info.FetchedAt.IsZero() {
		age := humanize.RelTime(info.FetchedAt, m.now(), "ago", "from now")
		switch {
		case info.Stale:
			right = s.Warning.Render("offline copy from " + age)
		case info.FromCache:
			right = s.Subtle.Render("cached " + age)
		default:
			right = s.Subtle.Render("updated " + age)
		}
		if lipgloss.Width(right)+2 >= m.width {
			right = ""
		}
	}

	text, style := m.helpHint(), s.Subtle
	switch {
	case m.status.err != "":
		text, style = render.Sanitize(m.status.err), s.Error
	case m.status.note != "":
		text, style = m.status.note, s.Muted
	}
	leftWidth := max(m.width-lipgloss.Width(right)-3, 0)
	left := " " + style.Render(render.TruncateEllipsis(text, leftWidth))
	if right == "" {
		return left
	}
	return render.Row(left, right+" ", m.width)
}

func (m Model) helpHint() string {
	if keys := m.keys.KeysFor(keymap.ActionHelp); len(keys) > 0 {
		return keys[0] + " help"
	}
	return ""
}

func (m Model) renderLoading() string {
	// Can't render before we know terminal size
	if m.width == 0 || m.height == 0 {
		return ""
	}
	t := styles.T()

	name := m.cfg.StoreName
	if name == "" {
		name = "Storefront"
	}
	frame := loadingFrames[m.loadingFrame%len(loadingFrames)]
	status := lipgloss.NewStyle().Foreground(t.Secondary).Render(frame) + " " +
		t.S().Muted.Italic(true).Render("Loading catalog...")

	content := lipgloss.JoinVertical(lipgloss.Center,
		styles.ApplyBoldGradient(name, t.Primary, t.Secondary),
		"",
		status,
	)
	return popup.Center(content, m.width, m.height)
}

// enforceHeight ensures the view has exactly the specified number of lines.
func enforceHeight(view string, targetHeight int) string {
	if targetHeight <= 0 {
		return ""
	}
	lines := strings.Split(view, "\n")
	switch {
	case len(lines) < targetHeight:
		lines = append(lines, make([]string, targetHeight-len(lines))...)
	case len(lines) > targetHeight:
		lines = lines[:targetHeight]
	}
	return strings.Join(lines, "\n")
}
