// Package gallery holds the interaction state of the product image viewer.
//
// State is a plain value with exported fields so it can be serialized and
// inspected in tests. Every operation is a method that mutates the receiver
// and never performs I/O; loading and rendering live in ui/imageviewer.
package gallery

import (
	"net/url"
	"strings"
)

// Image is one entry of an ImageSet.
type Image struct {
	ID  string `json:"id"`
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// Resolvable reports whether the image has a URL that can be fetched.
// Images that are not resolvable keep their slot but render blank.
func (i Image) Resolvable() bool {
	raw := strings.TrimSpace(i.URL)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ImageSet is an ordered list of images. Order is display order.
type ImageSet []Image

// Resolvable returns the number of images with a fetchable URL.
func (s ImageSet) Resolvable() int {
	n := 0
	for _, img := range s {
		if img.Resolvable() {
			n++
		}
	}
	return n
}

// Point is a 2D offset in terminal cells.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// IsZero reports whether p is the origin.
func (p Point) IsZero() bool { return p.X == 0 && p.Y == 0 }
