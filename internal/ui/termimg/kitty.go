package termimg

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// Kitty graphics protocol escape sequences
const (
	escStart = "\x1b_G"
	escEnd   = "\x1b\\"

	kittyChunkSize = 4096
)

// KittyProtocol implements ImageProtocol with the Kitty graphics protocol.
type KittyProtocol struct {
	cellW, cellH int
}

// NewKittyProtocol creates a Kitty protocol using the terminal cell size.
func NewKittyProtocol() *KittyProtocol {
	w, h := getCellSize()
	return &KittyProtocol{cellW: w, cellH: h}
}

func (k *KittyProtocol) Name() string { return "kitty" }

func (k *KittyProtocol) Prepare(img image.Image, id uint32) (string, error) {
	return TransmitImage(img, id)
}

func (k *KittyProtocol) Place(id uint32, row, col, width, height int) string {
	return PlaceImage(id, row, col, width, height)
}

func (k *KittyProtocol) Delete(id uint32) string { return DeleteImage(id) }

func (k *KittyProtocol) Placeholder(width, height int) string {
	return BlankPlaceholder(width, height)
}

func (k *KittyProtocol) TargetPixelSize(widthCells, heightCells int) (pixelWidth, pixelHeight int) {
	w, h := k.CellSize()
	return widthCells * w, heightCells * h
}

func (k *KittyProtocol) CellSize() (width, height int) {
	if k.cellW <= 0 || k.cellH <= 0 {
		return 8, 16
	}
	return k.cellW, k.cellH
}

// TransmitImage encodes img as PNG and transmits it without displaying it
// (a=t). The terminal keeps it under id until deleted.
func TransmitImage(img image.Image, id uint32) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return TransmitPNG(buf.Bytes(), id), nil
}

// TransmitPNG transmits pre-encoded PNG data in 4096 byte chunks.
// a=t transmit only, f=100 PNG, q=2 suppress responses.
func TransmitPNG(pngData []byte, id uint32) string {
	encoded := base64.StdEncoding.EncodeToString(pngData)

	var sb strings.Builder
	for i := 0; i < len(encoded) || i == 0; i += kittyChunkSize {
		end := min(i+kittyChunkSize, len(encoded))
		more := 0
		if end < len(encoded) {
			more = 1
		}

		sb.WriteString(escStart)
		if i == 0 {
			fmt.Fprintf(&sb, "a=t,f=100,i=%d,q=2,m=%d;", id, more)
		} else {
			fmt.Fprintf(&sb, "m=%d;", more)
		}
		sb.WriteString(encoded[i:end])
		sb.WriteString(escEnd)
	}

	return sb.String()
}

// PlaceImage displays a transmitted image at 1-based (row, col) over
// width x height cells. The fixed placement id p=1 makes a new placement of
// the same image replace the previous one. C=1 keeps the cursor in place.
func PlaceImage(id uint32, row, col, width, height int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	fmt.Fprintf(&sb, "%sa=p,i=%d,p=1,c=%d,r=%d,C=1,q=2;%s", escStart, id, width, height, escEnd)
	sb.WriteString("\x1b[u")
	return sb.String()
}

// DeleteImage removes a transmitted image and all its placements.
func DeleteImage(id uint32) string {
	return fmt.Sprintf("%sa=d,d=I,i=%d,q=2;%s", escStart, id, escEnd)
}
