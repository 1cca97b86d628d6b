// Package popup renders modal dialogs over the application view.
package popup

import tea "github.com/charmbracelet/bubbletea"

// Popup is a modal component that takes every key while it is open.
type Popup interface {
	Init() tea.Cmd

	Update(msg tea.Msg) (Popup, tea.Cmd)

	// View renders the popup content without the border or centering.
	View() string

	SetSize(width, height int)
}
