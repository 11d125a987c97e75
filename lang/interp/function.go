package interp

import (
	"github.com/mna/talus/lang/ast"
	"github.com/mna/talus/lang/env"
)

// Function is a user-defined function or method value: its parameters,
// body, and a handle to the environment that was active when it was
// defined (I4). isInitializer marks a class's "init" method, whose return
// value is always forced to be the bound instance (I8). superclass is the
// superclass of the class that *declared* this method (nil for plain
// functions and for methods of a class with no superclass) — it is fixed
// at class-declaration time and is what `bind` uses to wire up `super`, so
// that an inherited method's `super` always resolves against its own
// defining class's parent, never the runtime class of the instance it is
// later called on (P5).
type Function struct {
	name          string
	params        []string
	body          []ast.Stmt
	closure       *env.Closure
	isInitializer bool
	superclass    *Class
}

var _ Callable = (*Function)(nil)

func (f *Function) Name() string { return f.name }
func (f *Function) SetName(name string) {
	if f.name == "" {
		f.name = name
	}
}
func (f *Function) Arity() int { return len(f.params) }

// CallInternal implements the function branch of the call protocol
// (§4.3.3): mount the captured closure, push a fresh scope, bind
// parameters, run the body as a block, and unwind every step on every exit
// path — normal completion, early return, or error.
func (f *Function) CallInternal(it *Interp, args []Value) (result Value, err error) {
	it.env.MountClosure(f.closure)
	defer func() {
		if uerr := it.env.UnmountClosure(); uerr != nil && err == nil {
			err = uerr
		}
	}()

	it.env.LowerScope()
	defer func() {
		if rerr := it.env.RaiseScope(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	for i, p := range f.params {
		it.env.Define(p, args[i])
	}

	ret, err := it.execBlock(f.body)
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		this, gerr := it.env.Get("this")
		if gerr != nil {
			return nil, gerr
		}
		return this, nil
	}
	if ret != nil {
		return ret.value, nil
	}
	return nil, nil
}

// bind returns a copy of f whose captured environment additionally binds
// `this` to instance and, when f's defining class has one, `super` to that
// class's own superclass — for the duration of calls made through the
// returned function — implementing the method-binding behavior of a Getter
// fetch (I7). `super` is taken from f.superclass, not from instance's
// runtime class, so that a method inherited unchanged down a multi-level
// chain still dispatches `super` against the class that declared it (P5).
func (f *Function) bind(it *Interp, instance *Instance) *Function {
	it.env.MountClosure(f.closure)
	it.env.LowerScope()
	it.env.Define("this", instance)
	if f.superclass != nil {
		it.env.Define("super", f.superclass)
	}
	bound := it.env.SpawnClosure()
	it.env.RaiseScope()
	it.env.UnmountClosure()

	return &Function{
		name:          f.name,
		params:        f.params,
		body:          f.body,
		closure:       bound,
		isInitializer: f.isInitializer,
		superclass:    f.superclass,
	}
}
