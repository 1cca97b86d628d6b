package producttemplate

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/storefront/internal/commerce"
	"github.com/llehouerou/storefront/internal/ui/action"
	"github.com/llehouerou/storefront/internal/ui/testutil"
)

const originY = 1

func testProduct() *commerce.Product {
	return &commerce.Product{
		ID:          "prod_1",
		Handle:      "linen-shirt",
		Title:       "Linen Shirt",
		Description: "Breathable linen shirt.",
		Collection:  &commerce.Collection{ID: "col_1", Title: "Shirts"},
		Tags:        []commerce.Tag{{Value: "summer"}},
		Images:      []commerce.Image{{ID: "img_1"}, {ID: "img_2"}},
		Variants: []commerce.Variant{
			{ID: "var_s", Title: "S", Price: &commerce.Price{Amount: 10, OriginalAmount: 10, CurrencyCode: "usd"}},
			{ID: "var_m", Title: "M", Price: &commerce.Price{Amount: 15, OriginalAmount: 20, CurrencyCode: "usd"}},
		},
	}
}

func drain(m Model, cmd tea.Cmd) Model {
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = drain(m, c)
		}
	case spinner.TickMsg, nil:
	default:
		m, _ = m.Update(msg)
	}
	return m
}

func newPage(t *testing.T, p *commerce.Product) Model {
	t.Helper()
	m := New(nil, nil)
	m.SetSize(100, 30)
	m.SetOrigin(0, originY)
	m.SetScreenSize(100, 32)
	m.SetFocused(true)
	return drain(m, m.SetProduct(p))
}

func key(m Model, k string) (Model, tea.Cmd) {
	cmd := m.HandleKey(k)
	return m, cmd
}

func click(m Model, x, y int) (Model, tea.Cmd) {
	return m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func actionOf(t *testing.T, cmd tea.Cmd) action.Action {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(action.Msg)
	require.True(t, ok, "expected action.Msg")
	assert.Equal(t, "producttemplate", msg.Source)
	return msg.Action
}

func viewLines(m Model) []string {
	return strings.Split(testutil.StripANSI(m.View()), "\n")
}

func TestNotFound(t *testing.T) {
	for name, p := range map[string]*commerce.Product{
		"nil":   nil,
		"no id": {Title: "Ghost"},
	} {
		t.Run(name, func(t *testing.T) {
			m := newPage(t, p)

			assert.False(t, m.Found())
			view := testutil.StripANSI(m.View())
			assert.Contains(t, view, notFoundTitle)

			_, cmd := key(m, "esc")
			assert.Equal(t, Back{}, actionOf(t, cmd))

			m, cmd = key(m, "tab")
			assert.Nil(t, cmd)
			assert.Equal(t, FocusGallery, m.Focus())
		})
	}
}

func TestView_Layout(t *testing.T) {
	m := newPage(t, testProduct())
	lines := viewLines(m)

	require.Len(t, lines, 30)
	for i, l := range lines {
		assert.Equal(t, 100, testutil.MeasureWidth(l), "line %d", i)
	}
	assert.Equal(t, "Home / Shop By Category / Shirts / Linen Shirt", strings.TrimRight(lines[0], " "))

	w, h := m.Viewer().Size()
	assert.Equal(t, 50, w, "gallery takes at most half the width")
	assert.Equal(t, 25, h)

	view := strings.Join(lines, "\n")
	assert.Contains(t, lines[2][52:], "Shirts")
	assert.Contains(t, lines[3][52:], "Linen Shirt")
	assert.True(t, testutil.ContainsLine(view, "#summer"))
	assert.True(t, testutil.ContainsLine(view, "Variants"))
	assert.True(t, testutil.ContainsLine(view, "● S"))
	assert.True(t, testutil.ContainsLine(view, "20.00 USD 15.00 USD -25%"))
	assert.True(t, testutil.ContainsLine(view, "▸ Product Description"))
	assert.Contains(t, lines[28], relatedTitle)
	assert.Contains(t, lines[29], loadingText)
}

func TestView_BreadcrumbWithoutCollection(t *testing.T) {
	p := testProduct()
	p.Collection = nil
	m := newPage(t, p)

	assert.Equal(t, "Home / Shop By Category / Linen Shirt", strings.TrimRight(viewLines(m)[0], " "))
}

func TestView_Stacked(t *testing.T) {
	m := newPage(t, testProduct())
	m.SetSize(60, 40)

	w, _ := m.Viewer().Size()
	assert.Equal(t, 60, w)
	assert.Len(t, viewLines(m), 40)
}

func TestRelated(t *testing.T) {
	m := newPage(t, testProduct())

	m.SetRelated(nil)
	assert.True(t, testutil.ContainsLine(testutil.StripANSI(m.View()), "No related products"))

	related := make([]commerce.Product, 6)
	for i := range related {
		related[i] = commerce.Product{ID: "p", Handle: "other", Title: "Other product"}
	}
	m.SetRelated(related)
	assert.Len(t, m.Related(), RelatedLimit)
	assert.True(t, testutil.ContainsLine(testutil.StripANSI(m.View()), "Other product"))
}

func TestImagesLoad(t *testing.T) {
	m := newPage(t, testProduct())
	assert.False(t, m.Viewer().State().IsLoading)
	assert.Equal(t, 2, m.Viewer().State().Len())
}

func TestFocusCycle(t *testing.T) {
	m := newPage(t, testProduct())
	assert.Equal(t, FocusGallery, m.Focus())
	assert.True(t, m.Viewer().IsFocused())

	m, _ = key(m, "tab")
	assert.Equal(t, FocusVariants, m.Focus())
	assert.False(t, m.Viewer().IsFocused())

	m, _ = key(m, "tab")
	assert.Equal(t, FocusTabs, m.Focus())

	m, _ = key(m, "tab")
	assert.Equal(t, FocusGallery, m.Focus())
}

func TestEscape_BackUnlessFullscreen(t *testing.T) {
	m := newPage(t, testProduct())

	_, cmd := key(m, "esc")
	assert.Equal(t, Back{}, actionOf(t, cmd))

	m, _ = key(m, "f")
	require.True(t, m.IsFullscreen())

	m, cmd = key(m, "esc")
	assert.False(t, m.IsFullscreen(), "escape closes the overlay")
	assert.Nil(t, cmd)
}

func TestFullscreen_GetsEveryKey(t *testing.T) {
	m := newPage(t, testProduct())
	m, _ = key(m, "f")
	require.True(t, m.IsFullscreen())

	m, _ = key(m, "tab")
	assert.Equal(t, FocusGallery, m.Focus())
	assert.True(t, m.IsFullscreen())
}

func TestGalleryKeys(t *testing.T) {
	m := newPage(t, testProduct())

	m, cmd := key(m, "right")
	m = drain(m, cmd)
	assert.Equal(t, 1, m.Viewer().State().CurrentIndex)
	assert.False(t, m.Viewer().State().IsLoading)
}

func TestVariants(t *testing.T) {
	m := newPage(t, testProduct())
	m, _ = key(m, "tab")

	v, ok := m.SelectedVariant()
	require.True(t, ok)
	assert.Equal(t, "var_s", v.ID)

	m, _ = key(m, "j")
	v, _ = m.SelectedVariant()
	assert.Equal(t, "var_m", v.ID)

	m, _ = key(m, "j")
	v, _ = m.SelectedVariant()
	assert.Equal(t, "var_m", v.ID)

	m, _ = key(m, "k")
	v, _ = m.SelectedVariant()
	assert.Equal(t, "var_s", v.ID)
}

func TestVariants_KeysIgnoredInGallery(t *testing.T) {
	m := newPage(t, testProduct())
	m, _ = key(m, "j")
	v, _ := m.SelectedVariant()
	assert.Equal(t, "var_s", v.ID)
}

func TestVariants_None(t *testing.T) {
	p := testProduct()
	p.Variants = nil
	m := newPage(t, p)

	_, ok := m.SelectedVariant()
	assert.False(t, ok)
	assert.True(t, testutil.ContainsLine(testutil.StripANSI(m.View()), noVariants))
}

func TestTabsKeys(t *testing.T) {
	m := newPage(t, testProduct())
	m, _ = key(m, "tab")
	m, _ = key(m, "tab")
	m, _ = key(m, "2")

	assert.True(t, testutil.ContainsLine(testutil.StripANSI(m.View()), "▾ Product Information"))
}

func TestMouse_ViewerOpensFullscreen(t *testing.T) {
	m := newPage(t, testProduct())
	m.SetFocus(FocusTabs)

	m, _ = click(m, 10, originY+2+5)
	assert.Equal(t, FocusGallery, m.Focus())
	assert.True(t, m.IsFullscreen())
}

func TestMouse_Variant(t *testing.T) {
	m := newPage(t, testProduct())

	// Variants start on page row 9: heading, then one row per variant.
	m, _ = click(m, 60, originY+11)
	assert.Equal(t, FocusVariants, m.Focus())
	v, _ := m.SelectedVariant()
	assert.Equal(t, "var_m", v.ID)
}

func TestMouse_TabsHeader(t *testing.T) {
	m := newPage(t, testProduct())

	m, _ = click(m, 60, originY+13)
	assert.Equal(t, FocusTabs, m.Focus())
	assert.True(t, testutil.ContainsLine(testutil.StripANSI(m.View()), "▾ Product Description"))
}

func TestMouse_Related(t *testing.T) {
	m := newPage(t, testProduct())
	m.SetRelated([]commerce.Product{{ID: "p2", Handle: "other", Title: "Other"}})

	_, cmd := click(m, 5, originY+29)
	assert.Equal(t, OpenProduct{Handle: "other"}, actionOf(t, cmd))

	_, cmd = click(m, 5, originY+28)
	assert.Nil(t, cmd, "heading")
}

func TestClose(t *testing.T) {
	m := newPage(t, testProduct())
	m, _ = key(m, "f")
	require.True(t, m.IsFullscreen())

	assert.Empty(t, m.Close(), "no terminal output without an image protocol")
}
