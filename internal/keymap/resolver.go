package keymap

import "slices"

// Resolver looks up the action of a key in one set of contexts.
type Resolver struct {
	actions map[string]Action
	keys    map[Action][]string // for help and hints, in binding order
}

// NewResolver indexes bindings. A key bound twice resolves to its last
// binding.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		actions: make(map[string]Action),
		keys:    make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, k := range b.Keys {
			r.actions[k] = b.Action
			if !slices.Contains(r.keys[b.Action], k) {
				r.keys[b.Action] = append(r.keys[b.Action], k)
			}
		}
	}
	return r
}

// ForContexts resolves over the bindings of contexts, later ones winning.
func ForContexts(contexts ...string) *Resolver {
	var all []Binding
	for _, ctx := range contexts {
		all = append(all, ByContext(ctx)...)
	}
	return NewResolver(all)
}

// Resolve returns the action bound to key, "" when there is none.
func (r *Resolver) Resolve(key string) Action { return r.actions[key] }

// KeysFor lists the keys of action.
func (r *Resolver) KeysFor(action Action) []string { return r.keys[action] }
