package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/storefront/internal/ui/styles"
)

// Style configures the dialog appearance.
type Style struct {
	Border      lipgloss.Border
	BorderColor lipgloss.Color
	TitleStyle  lipgloss.Style
	FooterStyle lipgloss.Style
}

// DefaultStyle returns the default dialog style.
func DefaultStyle() Style {
	t := styles.T()
	return Style{
		Border:      lipgloss.RoundedBorder(),
		BorderColor: t.Border,
		TitleStyle:  t.S().Title,
		FooterStyle: t.S().Subtle,
	}
}

// ErrorStyle is DefaultStyle with the error color on the border and title.
func ErrorStyle() Style {
	t := styles.T()
	s := DefaultStyle()
	s.BorderColor = t.Error
	s.TitleStyle = t.S().Error.Bold(true)
	return s
}

// Dialog is a centered box with a title, content lines and a footer.
type Dialog struct {
	Title   string
	Content string
	Footer  string
	Width   int // inner width, 0 fits the content
	Style   Style
}

// New creates a dialog with the default style.
func New() *Dialog {
	return &Dialog{Style: DefaultStyle()}
}

// Render returns the dialog centered in a termWidth x termHeight screen,
// ready for overlay.Compose.
func (p *Dialog) Render(termWidth, termHeight int) string {
	style := p.Style

	inner := p.Width
	if inner == 0 {
		inner = max(maxLineWidth(p.Content), lipgloss.Width(p.Title), lipgloss.Width(p.Footer)) + 2
	}
	inner = max(min(inner, termWidth-4), 1)

	lines := make([]string, 0, strings.Count(p.Content, "\n")+5)
	if p.Title != "" {
		lines = append(lines, lipgloss.PlaceHorizontal(inner, lipgloss.Center, style.TitleStyle.Render(p.Title)), "")
	}
	for line := range strings.SplitSeq(p.Content, "\n") {
		if lipgloss.Width(line) > inner {
			line = ansi.Truncate(line, inner, "…")
		}
		lines = append(lines, line)
	}
	if p.Footer != "" {
		lines = append(lines, "", lipgloss.PlaceHorizontal(inner, lipgloss.Center, style.FooterStyle.Render(p.Footer)))
	}

	box := lipgloss.NewStyle().
		Border(style.Border).
		BorderForeground(style.BorderColor).
		Padding(0, 1).
		Width(inner + 2).
		Render(strings.Join(lines, "\n"))
	return Center(box, termWidth, termHeight)
}

// SizeConfig sizes a bordered popup.
type SizeConfig struct {
	WidthPct  int // percentage of the screen width, 0 fits the content
	HeightPct int // percentage of the screen height, 0 fits the content
	MaxWidth  int // 0 = no limit
}

// SizeAuto fits the content.
var SizeAuto = SizeConfig{}

// RenderBordered wraps content in a rounded border and centers it.
func RenderBordered(content string, screenW, screenH int, size SizeConfig) string {
	width, height := dimensions(content, screenW, screenH, size)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Border).
		Width(width-2).
		Height(height-2).
		Padding(1, 2).
		Render(content)
	return Center(box, screenW, screenH)
}

func dimensions(content string, screenW, screenH int, size SizeConfig) (width, height int) {
	if size.WidthPct > 0 {
		return screenW * size.WidthPct / 100, screenH * size.HeightPct / 100
	}
	width = maxLineWidth(content) + 6 // padding + border
	if size.MaxWidth > 0 {
		width = min(width, size.MaxWidth)
	}
	height = strings.Count(content, "\n") + 1 + 4
	return min(width, screenW-4), min(height, screenH-2)
}

// Center places a pre-rendered block in the middle of the screen. Lines
// above the block are blank so overlay.Compose leaves the base visible.
func Center(block string, termWidth, termHeight int) string {
	lines := strings.Split(block, "\n")
	padTop := max((termHeight-len(lines))/2, 0)
	padLeft := max((termWidth-maxLineWidth(block))/2, 0)

	var sb strings.Builder
	sb.WriteString(strings.Repeat("\n", padTop))
	indent := strings.Repeat(" ", padLeft)
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(indent + line)
	}
	return sb.String()
}

func maxLineWidth(s string) int {
	w := 0
	for line := range strings.SplitSeq(s, "\n") {
		w = max(w, lipgloss.Width(line))
	}
	return w
}
