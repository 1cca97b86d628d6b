package productlist

import (
	"github.com/llehouerou/storefront/internal/ui/action"
)

// OpenProduct requests the product page of a listed product.
type OpenProduct struct {
	Handle string
}

// ActionType implements action.Action.
func (a OpenProduct) ActionType() string { return "productlist.open_product" }

// QueryChanged signals that the listing filters, order or page changed and
// the listing must be fetched again with Query.
type QueryChanged struct{}

// ActionType implements action.Action.
func (a QueryChanged) ActionType() string { return "productlist.query_changed" }

// ActionMsg creates an action.Msg for a productlist action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "productlist", Action: a}
}
