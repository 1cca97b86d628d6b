// Package action carries intents from UI components up to the app, so a
// component never imports the model that owns it.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action is an intent such as "open this product". ActionType names it in
// debug logs.
type Action interface {
	ActionType() string
}

// Msg is what a component's command returns. Source is the package name of
// the emitter ("productlist", "producttemplate", ...).
type Msg struct {
	Source string
	Action Action
}

var _ tea.Msg = Msg{}
