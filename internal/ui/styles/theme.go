package styles

import "github.com/charmbracelet/lipgloss"

// Theme is the storefront color palette plus the styles built from it.
type Theme struct {
	Primary   lipgloss.Color // accent: active page, selected variant, current thumbnail
	Secondary lipgloss.Color // second gradient stop of the store name

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgCursor lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Sale    lipgloss.Color // discounted prices and badges
	Error   lipgloss.Color
	Warning lipgloss.Color

	styles *Styles
}

// Styles are the prebuilt lipgloss styles of a theme.
type Styles struct {
	Base     lipgloss.Style
	Muted    lipgloss.Style
	Subtle   lipgloss.Style
	Title    lipgloss.Style
	Accent   lipgloss.Style
	Cursor   lipgloss.Style
	Price    lipgloss.Style
	Original lipgloss.Style // struck-through original price
	Badge    lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	BgCursor: lipgloss.Color("#303030"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#a78bfa"),

	Sale:    lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
	Warning: lipgloss.Color("#f1a208"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the styles of the theme, building them on first use.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.build()
	}
	return t.styles
}

func (t *Theme) build() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)
	return &Styles{
		Base:     base,
		Muted:    lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:   lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:    base.Bold(true),
		Accent:   lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Cursor:   lipgloss.NewStyle().Background(t.BgCursor).Foreground(t.FgBase),
		Price:    base,
		Original: lipgloss.NewStyle().Foreground(t.FgSubtle).Strikethrough(true),
		Badge:    lipgloss.NewStyle().Foreground(t.Sale).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(t.Error),
		Warning:  lipgloss.NewStyle().Foreground(t.Warning),
	}
}
