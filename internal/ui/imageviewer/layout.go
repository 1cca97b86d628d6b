package imageviewer

import "image"

// Rectangles below are in cells. Page layouts are relative to the component
// origin; fullscreen layouts are screen coordinates.

type slot struct {
	index int
	rect  image.Rectangle
}

type pageLayout struct {
	image      image.Rectangle
	prev, next image.Rectangle
	slots      []slot
	more       image.Rectangle
	counter    image.Rectangle
}

const (
	arrowWidth    = 2
	minMainHeight = 4
	minMainWidth  = 6
)

func (m Model) pageLayout() pageLayout {
	w, h := m.Size()
	var l pageLayout
	if w <= 0 || h <= 0 {
		return l
	}

	n := m.state.Len()
	multi := n > 1
	mainH := h
	switch {
	case multi && h >= slotHeight+1+minMainHeight:
		mainH = h - slotHeight - 1
		strip := image.Rect(0, mainH, w, mainH+slotHeight)
		l.slots, l.more = stripSlots(n, m.state.CurrentIndex, strip)
		l.counter = image.Rect(0, mainH+slotHeight, w, h)
	case multi && h >= 2:
		mainH = h - 1
		l.counter = image.Rect(0, mainH, w, h)
	}

	x0, x1 := 0, w
	if multi && w >= 2*arrowWidth+minMainWidth {
		l.prev = image.Rect(0, 0, arrowWidth, mainH)
		l.next = image.Rect(w-arrowWidth, 0, w, mainH)
		x0, x1 = arrowWidth, w-arrowWidth
	}
	l.image = image.Rect(x0, 0, x1, mainH)
	return l
}

type fullscreenLayout struct {
	panel      image.Rectangle // bordered panel, border included
	inner      image.Rectangle
	zoomOut    image.Rectangle
	zoomLabel  image.Rectangle
	zoomIn     image.Rectangle
	close      image.Rectangle
	image      image.Rectangle
	prev, next image.Rectangle
	hintRow    int
	slots      []slot
	more       image.Rectangle
}

const (
	panelMargin = 1
	zoomLabelW  = 4 // "300%"
)

func (m Model) fullscreenLayout() fullscreenLayout {
	var l fullscreenLayout
	sw, sh := m.screenW, m.screenH
	if sw < 20 || sh < 8 {
		return l
	}

	l.panel = image.Rect(panelMargin, panelMargin, sw-panelMargin, sh-panelMargin)
	l.inner = l.panel.Inset(1)
	in := l.inner

	l.zoomOut = image.Rect(in.Min.X, in.Min.Y, in.Min.X+3, in.Min.Y+1)
	l.zoomLabel = image.Rect(l.zoomOut.Max.X+1, in.Min.Y, l.zoomOut.Max.X+1+zoomLabelW, in.Min.Y+1)
	l.zoomIn = image.Rect(l.zoomLabel.Max.X+1, in.Min.Y, l.zoomLabel.Max.X+4, in.Min.Y+1)
	l.close = image.Rect(in.Max.X-3, in.Min.Y, in.Max.X, in.Min.Y+1)

	n := m.state.Len()
	multi := n > 1
	bottom := in.Max.Y
	if multi && in.Dy() >= slotHeight+2+2+minMainHeight {
		strip := image.Rect(in.Min.X, bottom-slotHeight, in.Max.X, bottom)
		l.slots, l.more = stripSlots(n, m.state.CurrentIndex, strip)
		bottom = strip.Min.Y
	}
	l.hintRow = bottom - 1

	margin := 1
	if multi {
		margin = arrowWidth + 1
	}
	l.image = image.Rect(in.Min.X+margin, in.Min.Y+2, in.Max.X-margin, l.hintRow)
	if multi {
		l.prev = image.Rect(in.Min.X, l.image.Min.Y, in.Min.X+arrowWidth, l.image.Max.Y)
		l.next = image.Rect(in.Max.X-arrowWidth, l.image.Min.Y, in.Max.X, l.image.Max.Y)
	}
	return l
}

// stripSlots lays out as many thumbnail slots as fit in area, centered,
// keeping current visible. When there are more than three images a one cell
// "more" indicator follows the slots.
func stripSlots(n, current int, area image.Rectangle) ([]slot, image.Rectangle) {
	if n <= 1 || area.Dx() < slotWidth {
		return nil, image.Rectangle{}
	}
	moreW := 0
	if n > 3 {
		moreW = thumbGap + 1
	}

	visible := (area.Dx() - moreW + thumbGap) / (slotWidth + thumbGap)
	visible = min(max(visible, 1), n)
	first := 0
	if current >= visible {
		first = current - visible + 1
	}

	total := visible*slotWidth + (visible-1)*thumbGap + moreW
	x := area.Min.X + max((area.Dx()-total)/2, 0)

	slots := make([]slot, 0, visible)
	for i := first; i < first+visible; i++ {
		slots = append(slots, slot{index: i, rect: image.Rect(x, area.Min.Y, x+slotWidth, area.Max.Y)})
		x += slotWidth + thumbGap
	}

	var more image.Rectangle
	if moreW > 0 {
		mid := area.Min.Y + area.Dy()/2
		more = image.Rect(x, mid, x+1, mid+1)
	}
	return slots, more
}

func hitSlot(slots []slot, p image.Point) (int, bool) {
	for _, s := range slots {
		if p.In(s.rect) {
			return s.index, true
		}
	}
	return 0, false
}
