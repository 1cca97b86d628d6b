package helpbindings

import "github.com/llehouerou/storefront/internal/ui/action"

const source = "helpbindings"

// Close is emitted on esc or ?; the app hides the popup.
type Close struct{}

func (Close) ActionType() string { return source + ".close" }

// ActionMsg tags a with this package as its source.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: source, Action: a}
}
