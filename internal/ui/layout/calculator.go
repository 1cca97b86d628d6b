// Package layout provides pure functions for UI dimension calculations.
package layout

import "image"

// WideThreshold is the terminal width from which the product page shows the
// gallery and the product details side by side.
const WideThreshold = 80

// Fixed rows of the application frame.
const (
	NavbarHeight = 1
	StatusHeight = 1
)

const (
	breadcrumbHeight = 2 // breadcrumb and a blank line
	columnGap        = 2
	minBodyHeight    = 12 // below this the related products are hidden
	minViewerHeight  = 6
)

// ContentHeight is the height left for the current page between the
// navigation bar and the status line.
func ContentHeight(windowHeight int) int {
	return max(windowHeight-NavbarHeight-StatusHeight, 0)
}

// ContentRow is the 0-based screen row where the current page starts.
func ContentRow() int {
	return NavbarHeight
}

// IsWide reports whether the product page has room for two columns.
func IsWide(width int) bool {
	return width >= WideThreshold
}

// ProductOpts are the natural heights of the product page sections.
type ProductOpts struct {
	InfoHeight     int
	VariantsHeight int
	RelatedHeight  int // heading and rows, 0 to hide the section
}

// ProductRects are the product page areas, relative to the page origin.
type ProductRects struct {
	Stacked    bool
	Breadcrumb image.Rectangle
	Viewer     image.Rectangle
	Info       image.Rectangle
	Variants   image.Rectangle
	Tabs       image.Rectangle
	Related    image.Rectangle
}

// ProductPage splits a product page of the given size. Wide pages put the
// gallery on the left, at most half the width; narrow pages stack it above
// the details. The tabs take whatever height the details leave.
func ProductPage(width, height int, opts ProductOpts) ProductRects {
	var r ProductRects
	if width <= 0 || height <= 0 {
		return r
	}
	r.Breadcrumb = image.Rect(0, 0, width, 1)

	top := min(breadcrumbHeight, height)
	bottom := height
	if rel := opts.RelatedHeight; rel > 0 && height-top-rel-1 >= minBodyHeight {
		r.Related = image.Rect(0, height-rel, width, height)
		bottom = height - rel - 1
	}

	x := 0
	y := top
	if IsWide(width) {
		left := width / 2
		r.Viewer = image.Rect(0, top, left, bottom)
		x = left + columnGap
	} else {
		r.Stacked = true
		vh := min(max((bottom-top)*2/5, minViewerHeight), bottom-top)
		r.Viewer = image.Rect(0, top, width, top+vh)
		y = top + vh + 1
	}

	column := func(h int) image.Rectangle {
		y0 := min(y, bottom)
		rect := image.Rect(x, y0, width, min(y0+h, bottom))
		y = rect.Max.Y + 1
		return rect
	}
	r.Info = column(opts.InfoHeight)
	r.Variants = column(opts.VariantsHeight)
	r.Tabs = column(bottom)
	return r
}
