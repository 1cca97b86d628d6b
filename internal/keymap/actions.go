// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit        Action = "quit"
	ActionHelp        Action = "help"
	ActionSwitchFocus Action = "switch_focus"
	ActionBack        Action = "back"
	ActionRefresh     Action = "refresh"

	// Page switching
	ActionPageHome Action = "page_home"
	ActionPageShop Action = "page_shop"
	ActionPageCart Action = "page_cart"

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionMoveLeft  Action = "move_left"
	ActionMoveRight Action = "move_right"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionSelect    Action = "select"

	// Store listing
	ActionFilter          Action = "filter"
	ActionCycleSort       Action = "cycle_sort"
	ActionCycleCollection Action = "cycle_collection"
	ActionNextPage        Action = "next_page"
	ActionPrevPage        Action = "prev_page"

	// Product details tabs
	ActionToggleSection Action = "toggle_section"
	ActionSection1      Action = "section_1"
	ActionSection2      Action = "section_2"
	ActionSection3      Action = "section_3"

	// Image viewer
	ActionImagePrev        Action = "image_prev"
	ActionImageNext        Action = "image_next"
	ActionZoomIn           Action = "zoom_in"
	ActionZoomOut          Action = "zoom_out"
	ActionToggleFullscreen Action = "toggle_fullscreen"
	ActionToggleZoom       Action = "toggle_zoom"
	ActionCloseFullscreen  Action = "close_fullscreen"
	ActionPanUp            Action = "pan_up"
	ActionPanDown          Action = "pan_down"
	ActionPanLeft          Action = "pan_left"
	ActionPanRight         Action = "pan_right"
)
