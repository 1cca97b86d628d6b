package styles

// SectionTitle renders a heading, accented when the section holds focus.
func SectionTitle(title string, focused bool) string {
	if focused {
		return T().S().Accent.Render(title)
	}
	return T().S().Title.Render(title)
}
