package keymap

import "testing"

func TestLayers_TopLayerWins(t *testing.T) {
	l := NewLayers(ForContexts("viewer"))

	if a := l.Resolve("esc"); a != "" {
		t.Fatalf("Resolve(esc) before push = %q, want empty", a)
	}

	reg := l.Push("fullscreen", ForContexts("fullscreen"))

	if a := l.Resolve("esc"); a != ActionCloseFullscreen {
		t.Errorf("Resolve(esc) = %q, want %q", a, ActionCloseFullscreen)
	}
	if a := l.Resolve("right"); a != ActionImageNext {
		t.Errorf("Resolve(right) falls through to base = %q, want %q", a, ActionImageNext)
	}
	if !l.Active("fullscreen") {
		t.Error("fullscreen layer should be active")
	}

	reg.Release()

	if a := l.Resolve("esc"); a != "" {
		t.Errorf("Resolve(esc) after release = %q, want empty", a)
	}
	if l.Active("fullscreen") {
		t.Error("fullscreen layer should be gone")
	}
}

func TestRegistration_ReleaseIdempotent(t *testing.T) {
	l := NewLayers(ForContexts("viewer"))
	reg := l.Push("fullscreen", ForContexts("fullscreen"))

	reg.Release()
	reg.Release()

	if l.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", l.Depth())
	}
	if !reg.Released() {
		t.Error("Released() = false after Release")
	}

	var nilReg *Registration
	nilReg.Release()
	if !nilReg.Released() {
		t.Error("nil registration should report released")
	}
}

func TestRegistration_ReleaseOutOfOrder(t *testing.T) {
	l := NewLayers(nil)
	first := l.Push("first", NewResolver([]Binding{{ActionQuit, []string{"x"}, "", ""}}))
	second := l.Push("second", NewResolver([]Binding{{ActionHelp, []string{"y"}, "", ""}}))

	first.Release()

	if a := l.Resolve("x"); a != "" {
		t.Errorf("Resolve(x) = %q, want empty", a)
	}
	if a := l.Resolve("y"); a != ActionHelp {
		t.Errorf("Resolve(y) = %q, want %q", a, ActionHelp)
	}

	second.Release()
	if l.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", l.Depth())
	}
}
