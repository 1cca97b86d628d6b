package overlay

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestCompose(t *testing.T) {
	tests := []struct {
		name string
		base string
		top  string
		want string
	}{
		{
			name: "centered block",
			base: "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc",
			top:  "\n   xyz",
			want: "aaaaaaaaaa\nbbbxyzbbbb\ncccccccccc",
		},
		{
			name: "spaces around the block are transparent",
			base: "aaaaaaaaaa",
			top:  "  x y   ",
			want: "aax yaaaaa",
		},
		{
			name: "short base line is padded",
			base: "ab",
			top:  "    z",
			want: "ab  z     ",
		},
		{
			name: "top longer than base",
			base: "one",
			top:  "\nx",
			want: "one",
		},
		{
			name: "clipped at width",
			base: "aaaaaaaaaa",
			top:  "        wxyz",
			want: "aaaaaaaawx",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compose(tt.base, tt.top, 10, 3))
		})
	}
}

func TestCompose_StyledContent(t *testing.T) {
	top := "  " + lipgloss.NewStyle().Bold(true).Render("hi")
	got := Compose("aaaaaaaaaa", top, 10, 1)

	assert.Equal(t, "aahiaaaaaa", ansi.Strip(got))
	assert.Equal(t, 10, ansi.StringWidth(got))
}

func TestCompose_WideRunes(t *testing.T) {
	// Column 3 splits the second wide rune.
	got := Compose("日本語日本", "   x", 10, 1)

	assert.Equal(t, 10, ansi.StringWidth(got))
	assert.Equal(t, "x", string([]rune(ansi.Strip(got))[2]))
}
