package producttemplate

import (
	"github.com/llehouerou/storefront/internal/ui/action"
)

// Back requests a return to the store listing.
type Back struct{}

// ActionType implements action.Action.
func (a Back) ActionType() string { return "producttemplate.back" }

// OpenProduct requests the page of a related product.
type OpenProduct struct {
	Handle string
}

// ActionType implements action.Action.
func (a OpenProduct) ActionType() string { return "producttemplate.open_product" }

// ActionMsg creates an action.Msg for a producttemplate action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "producttemplate", Action: a}
}
