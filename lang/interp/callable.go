package interp

// Callable is any value that may appear on the left of a call expression:
// a user-defined function, a class (construction) or a native built-in.
type Callable interface {
	// Name returns the value's declared name, or "" if it has not yet been
	// bound to one (see env.Define's stamping behavior, I3).
	Name() string
	// SetName stamps the value's declared name. Implementations must be a
	// no-op once a non-empty name has already been set.
	SetName(string)
	// Arity returns the number of arguments the callable expects.
	Arity() int
	// CallInternal invokes the callable with already-evaluated arguments.
	// Callers should go through the evaluator's call protocol (§4.3) rather
	// than calling this directly, since classes and bound methods need
	// extra bookkeeping around this method.
	CallInternal(it *Interp, args []Value) (Value, error)
}
