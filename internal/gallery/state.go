package gallery

// Zoom bounds.
const (
	MinScale         = 1.0
	MaxScale         = 3.0
	ScaleStep        = 0.5
	DoubleClickScale = 2.5
)

// State is the viewer's interaction state.
type State struct {
	CurrentIndex int     `json:"current_index"`
	IsLoading    bool    `json:"is_loading"`
	IsFullscreen bool    `json:"is_fullscreen"`
	Scale        float64 `json:"scale"`
	Position     Point   `json:"position"`
	IsDragging   bool    `json:"is_dragging"`
	DragStart    Point   `json:"drag_start"`

	images ImageSet
}

// New creates the state for images. The set is copied so later changes by
// the caller are not observed.
func New(images ImageSet) *State {
	s := &State{
		Scale:  MinScale,
		images: append(ImageSet(nil), images...),
	}
	s.IsLoading = len(s.images) > 0
	return s
}

// Images returns the image set.
func (s *State) Images() ImageSet { return s.images }

// Len returns the number of images, including ones without a URL.
func (s *State) Len() int { return len(s.images) }

// Empty reports whether there is nothing to show.
func (s *State) Empty() bool { return len(s.images) == 0 }

// Current returns the image at CurrentIndex.
func (s *State) Current() (Image, bool) {
	if s.Empty() {
		return Image{}, false
	}
	return s.images[s.CurrentIndex], true
}

// Zoomed reports whether the image is scaled beyond its fit size.
func (s *State) Zoomed() bool { return s.Scale > MinScale }

// CanZoomIn reports whether ZoomIn would change the scale.
func (s *State) CanZoomIn() bool { return s.Scale < MaxScale }

// CanZoomOut reports whether ZoomOut would change the scale.
func (s *State) CanZoomOut() bool { return s.Scale > MinScale }

// Reset restores scale 1 and a zero position.
func (s *State) Reset() {
	s.Scale = MinScale
	s.Position = Point{}
}

// SelectThumbnail jumps to index. It returns false and leaves the state
// untouched when index is out of range.
func (s *State) SelectThumbnail(index int) bool {
	if index < 0 || index >= len(s.images) {
		return false
	}
	if index != s.CurrentIndex {
		s.Reset()
	}
	s.CurrentIndex = index
	s.IsLoading = true
	return true
}

// GoToPrevious moves to the previous image, wrapping to the last one.
func (s *State) GoToPrevious() bool {
	n := len(s.images)
	if n == 0 {
		return false
	}
	if s.CurrentIndex == 0 {
		s.CurrentIndex = n - 1
	} else {
		s.CurrentIndex--
	}
	s.Reset()
	s.IsLoading = true
	return true
}

// GoToNext moves to the next image, wrapping to the first one.
func (s *State) GoToNext() bool {
	n := len(s.images)
	if n == 0 {
		return false
	}
	if s.CurrentIndex == n-1 {
		s.CurrentIndex = 0
	} else {
		s.CurrentIndex++
	}
	s.Reset()
	s.IsLoading = true
	return true
}

// ToggleFullscreen opens or closes the overlay. Zoom is reset either way and
// any drag in progress ends.
func (s *State) ToggleFullscreen() {
	s.IsFullscreen = !s.IsFullscreen
	s.Reset()
	s.EndDrag()
}

// CloseFullscreen closes the overlay if it is open.
func (s *State) CloseFullscreen() bool {
	if !s.IsFullscreen {
		return false
	}
	s.ToggleFullscreen()
	return true
}

// ZoomIn increases the scale by one step up to MaxScale.
func (s *State) ZoomIn() bool {
	if s.Scale >= MaxScale {
		return false
	}
	s.Scale += ScaleStep
	return true
}

// ZoomOut decreases the scale by one step down to MinScale. The position is
// cleared when the scale before the step is at most 1.5.
func (s *State) ZoomOut() bool {
	if s.Scale <= MinScale {
		return false
	}
	if s.Scale <= MinScale+ScaleStep {
		s.Position = Point{}
	}
	s.Scale -= ScaleStep
	return true
}

// OnImageLoaded clears the loading flag unconditionally.
func (s *State) OnImageLoaded() {
	s.IsLoading = false
}

// ImageLoaded clears the loading flag if index is still the current image.
// A completion for any other index is stale and is ignored.
func (s *State) ImageLoaded(index int) bool {
	if index != s.CurrentIndex {
		return false
	}
	s.OnImageLoaded()
	return true
}

// BeginDrag starts panning at pointer p. Has no effect at scale 1.
func (s *State) BeginDrag(p Point) bool {
	if !s.Zoomed() {
		return false
	}
	s.IsDragging = true
	s.DragStart = p.Sub(s.Position)
	return true
}

// ContinueDrag moves the image so that it follows pointer p.
func (s *State) ContinueDrag(p Point) bool {
	if !s.IsDragging || !s.Zoomed() {
		return false
	}
	s.Position = p.Sub(s.DragStart)
	return true
}

// EndDrag stops panning.
func (s *State) EndDrag() {
	s.IsDragging = false
}

// ToggleZoomOnDoubleClick resets a zoomed image, or zooms an unzoomed one
// to DoubleClickScale.
func (s *State) ToggleZoomOnDoubleClick() {
	if s.Zoomed() {
		s.Reset()
		return
	}
	s.Scale = DoubleClickScale
}
