package fluxbot

import "reflect"

// stateRegistry is a type-keyed store of shared values: one value per
// distinct type, insertion overwrites. It is populated at build time and
// treated as immutable afterwards, so concurrent reads need no lock.
type stateRegistry struct {
	values map[reflect.Type]any
}

func newStateRegistry() *stateRegistry {
	return &stateRegistry{values: make(map[reflect.Type]any)}
}

func (r *stateRegistry) insert(v any) {
	r.values[reflect.TypeOf(v)] = v
}

func (r *stateRegistry) get(t reflect.Type) (any, bool) {
	v, ok := r.values[t]
	return v, ok
}

// StateOf looks up the shared value of type T registered via
// Builder.WithState. Absence is not an error; callers and extractors treat
// it as a non-match.
func StateOf[T any](c *Context) (T, bool) {
	var zero T
	v, ok := c.states.get(reflect.TypeOf((*T)(nil)).Elem())
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
