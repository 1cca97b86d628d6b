package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "store", "product", "tabs", "viewer", "fullscreen"
}

// Bindings contains all key bindings, used both for dispatch and help.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit application", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},
	{ActionPageHome, []string{"f1"}, "Home (collections)", "global"},
	{ActionPageShop, []string{"f2"}, "Shop", "global"},
	{ActionPageCart, []string{"f3"}, "Cart", "global"},
	{ActionRefresh, []string{"ctrl+r"}, "Refresh from backend", "global"},

	// Store listing
	{ActionMoveUp, []string{"k", "up"}, "Move up", "store"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "store"},
	{ActionJumpStart, []string{"g", "home"}, "First product", "store"},
	{ActionJumpEnd, []string{"G", "end"}, "Last product", "store"},
	{ActionSelect, []string{"enter"}, "Open product", "store"},
	{ActionFilter, []string{"/"}, "Filter by title", "store"},
	{ActionCycleSort, []string{"s"}, "Cycle sort order", "store"},
	{ActionCycleCollection, []string{"c"}, "Cycle collection", "store"},
	{ActionNextPage, []string{"n", "pgdown"}, "Next page", "store"},
	{ActionPrevPage, []string{"p", "pgup"}, "Previous page", "store"},

	// Product page
	{ActionSwitchFocus, []string{"tab"}, "Switch focus", "product"},
	{ActionBack, []string{"esc", "backspace"}, "Back to shop", "product"},
	{ActionMoveUp, []string{"k", "up"}, "Previous variant", "product"},
	{ActionMoveDown, []string{"j", "down"}, "Next variant", "product"},

	// Product details
	{ActionMoveUp, []string{"k", "up"}, "Previous section", "tabs"},
	{ActionMoveDown, []string{"j", "down"}, "Next section", "tabs"},
	{ActionToggleSection, []string{"enter", " "}, "Expand/collapse section", "tabs"},
	{ActionSection1, []string{"1"}, "Product description", "tabs"},
	{ActionSection2, []string{"2"}, "Product information", "tabs"},
	{ActionSection3, []string{"3"}, "Shipping & returns", "tabs"},

	// Image viewer
	{ActionImagePrev, []string{"left", "h"}, "Previous image", "viewer"},
	{ActionImageNext, []string{"right", "l"}, "Next image", "viewer"},
	{ActionZoomIn, []string{"+", "="}, "Zoom in", "viewer"},
	{ActionZoomOut, []string{"-"}, "Zoom out", "viewer"},
	{ActionToggleFullscreen, []string{"f", "enter"}, "Toggle fullscreen", "viewer"},
	{ActionToggleZoom, []string{"z"}, "Toggle zoom (double-click)", "viewer"},

	// Fullscreen overlay, active only while it is open
	{ActionCloseFullscreen, []string{"esc"}, "Close fullscreen", "fullscreen"},
	{ActionPanUp, []string{"K", "shift+up"}, "Pan up", "fullscreen"},
	{ActionPanDown, []string{"J", "shift+down"}, "Pan down", "fullscreen"},
	{ActionPanLeft, []string{"H", "shift+left"}, "Pan left", "fullscreen"},
	{ActionPanRight, []string{"L", "shift+right"}, "Pan right", "fullscreen"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
