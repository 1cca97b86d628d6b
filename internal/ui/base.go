package ui

// Base carries the size and focus every component needs. Components embed
// it and read their dimensions through Size, Width and Height.
type Base struct {
	width, height int
	focused       bool
}

// SetFocused marks the component as receiving keys.
func (b *Base) SetFocused(focused bool) { b.focused = focused }

// IsFocused reports whether the component receives keys.
func (b Base) IsFocused() bool { return b.focused }

// SetSize records the area the component renders into.
func (b *Base) SetSize(width, height int) {
	b.width, b.height = width, height
}

// Size returns the render area.
func (b Base) Size() (width, height int) { return b.width, b.height }

func (b Base) Width() int  { return b.width }
func (b Base) Height() int { return b.height }
