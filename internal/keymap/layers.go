package keymap

// Layers is a stack of resolvers. Keys resolve against the most recently
// pushed layer first. A component pushes a layer when it opens a scope that
// should capture extra keys and releases it when the scope closes.
type Layers struct {
	stack []*layer
	seq   int
}

type layer struct {
	id       int
	name     string
	resolver *Resolver
}

// Registration is the handle returned by Push.
type Registration struct {
	layers *Layers
	id     int
	name   string
	done   bool
}

// NewLayers creates a stack with base as its bottom layer. Base may be nil.
func NewLayers(base *Resolver) *Layers {
	l := &Layers{}
	if base != nil {
		l.Push("base", base)
	}
	return l
}

// Push adds a layer on top of the stack.
func (l *Layers) Push(name string, r *Resolver) *Registration {
	l.seq++
	l.stack = append(l.stack, &layer{id: l.seq, name: name, resolver: r})
	return &Registration{layers: l, id: l.seq, name: name}
}

// Resolve searches the stack from the top and returns the first action
// bound to key, or empty string.
func (l *Layers) Resolve(key string) Action {
	for i := len(l.stack) - 1; i >= 0; i-- {
		if a := l.stack[i].resolver.Resolve(key); a != "" {
			return a
		}
	}
	return ""
}

// Active reports whether a layer with the given name is on the stack.
func (l *Layers) Active(name string) bool {
	for _, ly := range l.stack {
		if ly.name == name {
			return true
		}
	}
	return false
}

// Depth returns the number of layers.
func (l *Layers) Depth() int { return len(l.stack) }

// Name returns the layer name.
func (r *Registration) Name() string { return r.name }

// Released reports whether Release has been called.
func (r *Registration) Released() bool { return r == nil || r.done }

// Release removes the layer from its stack. Subsequent calls do nothing.
// Layers pushed after this one stay in place.
func (r *Registration) Release() {
	if r == nil || r.done {
		return
	}
	r.done = true
	s := r.layers.stack
	for i, ly := range s {
		if ly.id == r.id {
			r.layers.stack = append(s[:i], s[i+1:]...)
			return
		}
	}
}
