package termimg

import (
	"image"
	"image/draw"
	"math"
	"strings"

	"github.com/nfnt/resize"
)

// Viewport describes how an image is shown inside a box of pixels: fitted
// to the box, scaled by Scale around the box center, then shifted by
// (OffsetX, OffsetY) pixels.
type Viewport struct {
	Width, Height    int
	Scale            float64
	OffsetX, OffsetY float64
}

// Fit scales img down to fit in w x h pixels, keeping its aspect ratio.
func Fit(img image.Image, w, h int) image.Image {
	if w <= 0 || h <= 0 {
		return img
	}
	return resize.Thumbnail(uint(w), uint(h), img, resize.Lanczos3)
}

// VisibleRect returns the destination rectangle the transformed image
// covers inside the box, and the source rectangle that maps onto it.
// Both are empty when the image is panned entirely out of view.
func VisibleRect(src image.Rectangle, v Viewport) (dst, from image.Rectangle) {
	sw, sh := float64(src.Dx()), float64(src.Dy())
	if sw == 0 || sh == 0 || v.Width <= 0 || v.Height <= 0 {
		return image.Rectangle{}, image.Rectangle{}
	}
	scale := math.Max(v.Scale, 1)
	fit := math.Min(float64(v.Width)/sw, float64(v.Height)/sh)
	k := fit * scale
	dw, dh := sw*k, sh*k

	x0 := (float64(v.Width)-dw)/2 + v.OffsetX
	y0 := (float64(v.Height)-dh)/2 + v.OffsetY

	full := image.Rect(
		int(math.Round(x0)), int(math.Round(y0)),
		int(math.Round(x0+dw)), int(math.Round(y0+dh)),
	)
	dst = full.Intersect(image.Rect(0, 0, v.Width, v.Height))
	if dst.Empty() {
		return image.Rectangle{}, image.Rectangle{}
	}

	from = image.Rect(
		src.Min.X+int(math.Floor((float64(dst.Min.X)-x0)/k)),
		src.Min.Y+int(math.Floor((float64(dst.Min.Y)-y0)/k)),
		src.Min.X+int(math.Ceil((float64(dst.Max.X)-x0)/k)),
		src.Min.Y+int(math.Ceil((float64(dst.Max.Y)-y0)/k)),
	).Intersect(src)
	return dst, from
}

// Compose renders img into a Width x Height transparent canvas according to v.
func Compose(img image.Image, v Viewport) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, max(v.Width, 0), max(v.Height, 0)))
	if img == nil {
		return canvas
	}
	dst, from := VisibleRect(img.Bounds(), v)
	if dst.Empty() || from.Empty() {
		return canvas
	}
	part := subImage(img, from)
	scaled := resize.Resize(uint(dst.Dx()), uint(dst.Dy()), part, resize.Bilinear)
	copyInto(canvas, dst, scaled)
	return canvas
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

func subImage(img image.Image, r image.Rectangle) image.Image {
	if s, ok := img.(subImager); ok {
		return s.SubImage(r)
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
	return out
}

func copyInto(dst draw.Image, r image.Rectangle, src image.Image) {
	draw.Draw(dst, r, src, src.Bounds().Min, draw.Over)
}

// centeredRect centers a w x h rectangle in a boxW x boxH box.
func centeredRect(w, h, boxW, boxH int) image.Rectangle {
	x := (boxW - w) / 2
	y := (boxH - h) / 2
	return image.Rect(x, y, x+w, y+h)
}

func spaces(n int) string { return strings.Repeat(" ", n) }

func joinLines(lines []string) string { return strings.Join(lines, "\n") }
