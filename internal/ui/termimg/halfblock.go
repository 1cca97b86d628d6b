package termimg

import (
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

const upperHalf = "▀"

// HalfBlockProtocol renders images as text: each cell shows two vertical
// pixels, the upper one as foreground of "▀" and the lower one as background.
// It works in any true color terminal.
type HalfBlockProtocol struct {
	mu     sync.RWMutex
	images map[uint32]string
}

// NewHalfBlockProtocol creates a half block renderer.
func NewHalfBlockProtocol() *HalfBlockProtocol {
	return &HalfBlockProtocol{images: make(map[uint32]string)}
}

var _ InlineProtocol = (*HalfBlockProtocol)(nil)

func (h *HalfBlockProtocol) Name() string { return "halfblock" }

// Prepare renders img, which must already be sized with TargetPixelSize.
func (h *HalfBlockProtocol) Prepare(img image.Image, id uint32) (string, error) {
	b := img.Bounds()
	text := RenderHalfBlocks(img, b.Dx(), (b.Dy()+1)/2)

	h.mu.Lock()
	h.images[id] = text
	h.mu.Unlock()
	return "", nil
}

func (h *HalfBlockProtocol) Place(uint32, int, int, int, int) string { return "" }

func (h *HalfBlockProtocol) Delete(id uint32) string {
	h.mu.Lock()
	delete(h.images, id)
	h.mu.Unlock()
	return ""
}

// Inline returns the rendered text for id, or empty string.
func (h *HalfBlockProtocol) Inline(id uint32) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.images[id]
}

func (h *HalfBlockProtocol) Placeholder(width, height int) string {
	return BlankPlaceholder(width, height)
}

func (h *HalfBlockProtocol) TargetPixelSize(widthCells, heightCells int) (pixelWidth, pixelHeight int) {
	return widthCells, heightCells * 2
}

func (h *HalfBlockProtocol) CellSize() (width, height int) { return 1, 2 }

// RenderHalfBlocks draws the top-left cols x rows*2 pixels of img as
// half block text. Pixels outside the image are left blank.
func RenderHalfBlocks(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	b := img.Bounds()
	lines := make([]string, rows)
	var sb strings.Builder
	for r := range rows {
		sb.Reset()
		for c := range cols {
			x := b.Min.X + c
			top, topOK := pixelAt(img, x, b.Min.Y+r*2)
			bottom, bottomOK := pixelAt(img, x, b.Min.Y+r*2+1)
			style := lipgloss.NewStyle()
			switch {
			case topOK && bottomOK:
				style = style.Foreground(top).Background(bottom)
			case topOK:
				style = style.Foreground(top)
			case bottomOK:
				// Only the lower pixel: draw it as background of a blank.
				sb.WriteString(lipgloss.NewStyle().Background(bottom).Render(" "))
				continue
			default:
				sb.WriteByte(' ')
				continue
			}
			sb.WriteString(style.Render(upperHalf))
		}
		lines[r] = sb.String()
	}
	return joinLines(lines)
}

// Thumbnail fits img into cols x rows cells and renders it as half blocks,
// centered horizontally.
func Thumbnail(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return BlankPlaceholder(cols, rows)
	}
	fitted := resize.Thumbnail(uint(cols), uint(rows*2), img, resize.Bilinear)
	box := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	copyInto(box, centeredRect(fitted.Bounds().Dx(), fitted.Bounds().Dy(), cols, rows*2), fitted)
	return RenderHalfBlocks(box, cols, rows)
}

// pixelAt returns the color at (x, y) as a lipgloss color, and false for
// transparent or out of range pixels.
func pixelAt(img image.Image, x, y int) (lipgloss.Color, bool) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return "", false
	}
	c := img.At(x, y)
	if _, _, _, a := c.RGBA(); a < 0x8000 {
		return "", false
	}
	cf, ok := colorful.MakeColor(opaque(c))
	if !ok {
		return "", false
	}
	return lipgloss.Color(cf.Hex()), true
}

func opaque(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: 0xffff}
}
