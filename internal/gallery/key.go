package gallery

// Key is a viewer key, named after the DOM key values the viewer reacts to.
type Key string

// Handled keys.
const (
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyEscape     Key = "Escape"
	KeyPlus       Key = "+"
	KeyEqual      Key = "="
	KeyMinus      Key = "-"
)

// HandleKey applies the transition bound to key and reports whether the key
// was recognized. Escape is only recognized while fullscreen is open.
// Callers deliver keys only while the viewer or its overlay has focus.
func (s *State) HandleKey(key Key) bool {
	switch key {
	case KeyArrowLeft:
		return s.GoToPrevious()
	case KeyArrowRight:
		return s.GoToNext()
	case KeyEscape:
		return s.CloseFullscreen()
	case KeyPlus, KeyEqual:
		s.ZoomIn()
		return true
	case KeyMinus:
		s.ZoomOut()
		return true
	}
	return false
}
