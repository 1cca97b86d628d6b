package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/storefront/internal/app/handler"
	"github.com/llehouerou/storefront/internal/errmsg"
	"github.com/llehouerou/storefront/internal/ui/helpbindings"
	"github.com/llehouerou/storefront/internal/ui/overlay"
	"github.com/llehouerou/storefront/internal/ui/popup"
)

// PopupType is the popup receiving keys.
type PopupType int

const (
	PopupNone PopupType = iota
	PopupHelp
	PopupError
)

// PopupManager owns the modal layer: the key help and a blocking error.
// An error sits above the help and is dismissed first.
type PopupManager struct {
	help     helpbindings.Model
	helpOpen bool
	err      string

	width, height int
}

func NewPopupManager() PopupManager {
	return PopupManager{help: helpbindings.New()}
}

func (p *PopupManager) SetSize(width, height int) {
	p.width, p.height = width, height
	p.help.SetSize(width, height)
}

func (p *PopupManager) ActivePopup() PopupType {
	switch {
	case p.err != "":
		return PopupError
	case p.helpOpen:
		return PopupHelp
	default:
		return PopupNone
	}
}

// ShowHelp opens the help listing the bindings of contexts.
func (p *PopupManager) ShowHelp(contexts []string) {
	p.help.SetContexts(contexts)
	p.help.SetSize(p.width, p.height)
	p.helpOpen = true
}

func (p *PopupManager) HideHelp()           { p.helpOpen = false }
func (p *PopupManager) IsHelpVisible() bool { return p.helpOpen }

// ShowOpError opens the error popup for a failed op.
func (p *PopupManager) ShowOpError(op errmsg.Op, err error) {
	p.err = errmsg.Format(op, err)
}

// HandleKey gives the key to the active popup. An error popup closes on
// any key.
func (p *PopupManager) HandleKey(msg tea.KeyMsg) handler.Result {
	switch p.ActivePopup() {
	case PopupError:
		p.err = ""
		return handler.Handled(nil)
	case PopupHelp:
		_, cmd := p.help.Update(msg)
		return handler.Handled(cmd)
	case PopupNone:
	}
	return handler.NotHandled
}

// RenderOverlay composes the open popups over base.
func (p *PopupManager) RenderOverlay(base string) string {
	if p.helpOpen {
		box := popup.RenderBordered(p.help.View(), p.width, p.height, popup.SizeAuto)
		base = overlay.Compose(base, box, p.width, p.height)
	}
	if p.err == "" {
		return base
	}
	d := popup.New()
	d.Title = "Error"
	d.Content = p.err
	d.Footer = "Press any key to continue"
	d.Style = popup.ErrorStyle()
	d.Width = min(max(p.width/2, 30), 70)
	return overlay.Compose(base, d.Render(p.width, p.height), p.width, p.height)
}
