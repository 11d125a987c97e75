package interp

import "time"

// Native is a built-in callable implemented in Go rather than defined in
// source, such as "clock".
type Native struct {
	name  string
	arity int
	fn    func(it *Interp, args []Value) (Value, error)
}

var _ Callable = (*Native)(nil)

func (n *Native) Name() string       { return n.name }
func (n *Native) SetName(name string) {
	if n.name == "" {
		n.name = name
	}
}
func (n *Native) Arity() int { return n.arity }
func (n *Native) CallInternal(it *Interp, args []Value) (Value, error) {
	return n.fn(it, args)
}

// globals returns the set of native bindings installed into a fresh
// Interp's global scope.
func globals() map[string]*Native {
	return map[string]*Native{
		"clock": {
			name:  "clock",
			arity: 0,
			fn: func(it *Interp, args []Value) (Value, error) {
				return float64(time.Now().UnixNano()) / 1e9, nil
			},
		},
	}
}
