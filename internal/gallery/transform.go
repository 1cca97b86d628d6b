package gallery

// Transform is the display transform of the current image: scale first,
// then a translation in pre-scale units.
type Transform struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// Transform returns the transform for the current state. The translation is
// divided by the scale, so the on-screen offset equals Position.
func (s *State) Transform() Transform {
	scale := s.Scale
	if scale < MinScale {
		scale = MinScale
	}
	return Transform{
		Scale:      scale,
		TranslateX: s.Position.X / scale,
		TranslateY: s.Position.Y / scale,
	}
}

// Offset returns the on-screen offset produced by the transform.
func (t Transform) Offset() Point {
	return Point{X: t.TranslateX * t.Scale, Y: t.TranslateY * t.Scale}
}
