// Package termimg displays product images in the terminal using the Kitty
// graphics protocol, Sixel, or colored half blocks as a text fallback.
package termimg

import "image"

// ImageProtocol abstracts the terminal image display protocol.
type ImageProtocol interface {
	// Name identifies the protocol ("kitty", "sixel", "halfblock").
	Name() string

	// Prepare encodes the image and returns any one-time terminal command.
	// Kitty: transmits to terminal memory, returns escape sequences.
	// Sixel and half blocks: encode and cache internally, return empty string.
	Prepare(img image.Image, id uint32) (string, error)

	// Place returns the escape sequence to display the image at (row, col),
	// 1-based. Kitty references the image by ID; Sixel emits the full data.
	Place(id uint32, row, col, width, height int) string

	// Delete returns the escape sequence to remove the image and forgets it.
	Delete(id uint32) string

	// Placeholder returns blank space for lipgloss layout measurement.
	Placeholder(width, height int) string

	// TargetPixelSize returns the pixel dimensions to use when resizing an
	// image that will be displayed in the given number of terminal cells.
	TargetPixelSize(widthCells, heightCells int) (pixelWidth, pixelHeight int)

	// CellSize returns the pixel size of one terminal cell.
	CellSize() (width, height int)
}

// InlineProtocol is implemented by protocols whose output is plain styled
// text that goes into the view itself instead of being placed afterwards.
type InlineProtocol interface {
	ImageProtocol
	Inline(id uint32) string
}

// BlankPlaceholder returns a block of spaces for the image area.
func BlankPlaceholder(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	line := spaces(width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return joinLines(lines)
}
