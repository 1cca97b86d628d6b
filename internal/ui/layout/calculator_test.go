package layout

import (
	"image"
	"testing"
)

func TestContentHeight(t *testing.T) {
	tests := []struct {
		name         string
		windowHeight int
		want         int
	}{
		{"regular window", 40, 38},
		{"tiny window", 1, 0},
		{"zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContentHeight(tt.windowHeight); got != tt.want {
				t.Errorf("ContentHeight(%d) = %d, want %d", tt.windowHeight, got, tt.want)
			}
		})
	}
}

func TestIsWide(t *testing.T) {
	if IsWide(79) {
		t.Error("IsWide(79) = true, want false")
	}
	if !IsWide(80) {
		t.Error("IsWide(80) = false, want true")
	}
}

func TestProductPage(t *testing.T) {
	opts := ProductOpts{InfoHeight: 5, VariantsHeight: 4, RelatedHeight: 5}

	tests := []struct {
		name   string
		width  int
		height int
		want   ProductRects
	}{
		{
			name:   "wide",
			width:  100,
			height: 40,
			want: ProductRects{
				Breadcrumb: image.Rect(0, 0, 100, 1),
				Viewer:     image.Rect(0, 2, 50, 34),
				Info:       image.Rect(52, 2, 100, 7),
				Variants:   image.Rect(52, 8, 100, 12),
				Tabs:       image.Rect(52, 13, 100, 34),
				Related:    image.Rect(0, 35, 100, 40),
			},
		},
		{
			name:   "stacked",
			width:  60,
			height: 40,
			want: ProductRects{
				Stacked:    true,
				Breadcrumb: image.Rect(0, 0, 60, 1),
				Viewer:     image.Rect(0, 2, 60, 14),
				Info:       image.Rect(0, 15, 60, 20),
				Variants:   image.Rect(0, 21, 60, 25),
				Tabs:       image.Rect(0, 26, 60, 34),
				Related:    image.Rect(0, 35, 60, 40),
			},
		},
		{
			name:   "short page hides related",
			width:  100,
			height: 15,
			want: ProductRects{
				Breadcrumb: image.Rect(0, 0, 100, 1),
				Viewer:     image.Rect(0, 2, 50, 15),
				Info:       image.Rect(52, 2, 100, 7),
				Variants:   image.Rect(52, 8, 100, 12),
				Tabs:       image.Rect(52, 13, 100, 15),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProductPage(tt.width, tt.height, opts)
			if got != tt.want {
				t.Errorf("ProductPage(%d, %d) =\n%+v\nwant\n%+v", tt.width, tt.height, got, tt.want)
			}
		})
	}
}

func TestProductPage_ViewerAtMostHalf(t *testing.T) {
	for _, w := range []int{80, 81, 99, 200} {
		r := ProductPage(w, 40, ProductOpts{})
		if r.Viewer.Dx()*2 > w {
			t.Errorf("width %d: viewer is %d wide", w, r.Viewer.Dx())
		}
	}
}

func TestProductPage_Overflow(t *testing.T) {
	r := ProductPage(100, 8, ProductOpts{InfoHeight: 10, VariantsHeight: 10})
	for name, rect := range map[string]image.Rectangle{
		"info": r.Info, "variants": r.Variants, "tabs": r.Tabs,
	} {
		if rect.Max.Y > 8 || rect.Min.Y > rect.Max.Y {
			t.Errorf("%s = %v, want inside the page", name, rect)
		}
	}
	if !r.Tabs.Empty() {
		t.Errorf("tabs = %v, want empty", r.Tabs)
	}
}

func TestProductPage_Empty(t *testing.T) {
	if got := ProductPage(0, 10, ProductOpts{}); got != (ProductRects{}) {
		t.Errorf("ProductPage(0, 10) = %+v, want zero", got)
	}
}
