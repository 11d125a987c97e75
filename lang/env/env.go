// Package env implements the lexically-scoped environment chain described
// in §4.2 of the language specification: scope push/pop, variable
// resolution up the chain, and the closure capture/mount discipline that
// lets a function body see the variables free in its defining scope
// regardless of where it is later called from.
//
// Values are stored as `any` rather than a concrete Value type to avoid an
// import cycle with the package that defines the runtime value types
// (lang/interp); the one piece of behavior that needs to know about
// function/class values — stamping a freshly-defined callable with its
// declared name (§4.2, I3) — is expressed through the small namedValue
// structural interface below instead.
package env

import (
	"errors"
	"fmt"

	"github.com/dolthub/swiss"
)

// namedValue is implemented by callable values (functions and classes) that
// are created anonymously and then bound to a name by a var/fun/class
// declaration. Define stamps the name into the value the first time it is
// bound, satisfying invariant I3 (function/class values carry their source
// name once defined).
type namedValue interface {
	Name() string
	SetName(string)
}

// scope is one frame in the environment chain: a name→value map plus a
// link to the enclosing frame. The global scope has a nil parent.
type scope struct {
	vars   *swiss.Map[string, any]
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{vars: swiss.NewMap[string, any](8), parent: parent}
}

// Closure is an opaque handle to the scope chain that was active at the
// moment a function or method was defined. It is produced by SpawnClosure
// and consumed by MountClosure.
type Closure struct {
	scope *scope
}

// Environment is the scope stack the evaluator walks while executing a
// program. The zero value is not usable; create one with New.
type Environment struct {
	cur    *scope
	mounts []*scope // stack of scopes to restore, one per active mount
}

// New returns an Environment with a single, empty global frame (I1).
func New() *Environment {
	return &Environment{cur: newScope(nil)}
}

// Define writes name into the current (innermost) frame, shadowing any
// outer binding of the same name (I2). If value is a callable that has not
// yet been given a name, it is stamped with name (I3).
func (e *Environment) Define(name string, value any) {
	if nv, ok := value.(namedValue); ok && nv.Name() == "" {
		nv.SetName(name)
	}
	e.cur.vars.Put(name, value)
}

// Assign walks the chain from innermost to outermost and mutates the first
// frame that already defines name. It returns an error if name is not
// defined anywhere in the chain (I2).
func (e *Environment) Assign(name string, value any) error {
	for s := e.cur; s != nil; s = s.parent {
		if _, ok := s.vars.Get(name); ok {
			s.vars.Put(name, value)
			return nil
		}
	}
	return fmt.Errorf("Undefined variable '%s'.", name)
}

// Get walks the chain from innermost to outermost and returns the value
// bound to name in the first frame that defines it (I2).
func (e *Environment) Get(name string) (any, error) {
	for s := e.cur; s != nil; s = s.parent {
		if v, ok := s.vars.Get(name); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("Undefined variable '%s'.", name)
}

// LowerScope pushes a new, empty frame onto the chain.
func (e *Environment) LowerScope() {
	e.cur = newScope(e.cur)
}

// RaiseScope pops the innermost frame. Popping the global frame is a fatal
// misuse per §4.2 and returns an error rather than panicking, so the
// caller (the evaluator) can turn it into a clean internal-error report.
func (e *Environment) RaiseScope() error {
	if e.cur.parent == nil {
		return errors.New("Attempted to raise past global scope.")
	}
	e.cur = e.cur.parent
	return nil
}

// SpawnClosure returns a handle to an independent copy of the scope chain as
// it exists right now (§4.2): every local frame between the current scope
// and the global frame is copied, so a name defined into one of those
// frames *after* capture (a sibling declaration added later in the same
// block, for instance) is invisible through the handle, which is what makes
// static scoping hold (P1, P2). The global frame itself is never copied —
// it is the one frame shared by every Environment for the lifetime of the
// program, so a top-level declaration added after capture (mutual
// recursion between two top-level functions, say) is still visible through
// every closure, the same way a single persistent global table behaves in
// most tree-walking interpreters. Because the copy happens once, at capture
// time, and the resulting *Closure is mounted again on every subsequent
// call, mutations to variables that already existed at capture time are
// still shared across repeated calls through the same handle.
func (e *Environment) SpawnClosure() *Closure {
	return &Closure{scope: copyChain(e.cur)}
}

// copyChain copies every frame from s up to, but not including, the global
// frame (identified by a nil parent), preserving the parent links between
// the copies. The global frame is returned unmodified and shared.
func copyChain(s *scope) *scope {
	if s == nil || s.parent == nil {
		return s
	}
	cp := newScope(copyChain(s.parent))
	s.vars.Iter(func(k string, v any) bool {
		cp.vars.Put(k, v)
		return false
	})
	return cp
}

// MountClosure pushes the environment's current view onto the mount stack
// and switches to the scope chain captured by c, so that all subsequent
// Define/Assign/Get/LowerScope/RaiseScope calls operate against the
// closure's defining scope instead of the caller's. A nil c is a legal
// self-mount (the callee is defined in the same scope the caller is
// already in) and is tracked on the mount stack like any other mount, so
// that balanced Mount/Unmount pairs nest correctly (§4.2 reentrancy).
func (e *Environment) MountClosure(c *Closure) {
	e.mounts = append(e.mounts, e.cur)
	if c != nil {
		e.cur = c.scope
	}
}

// UnmountClosure pops one mount frame, restoring the view active before
// the matching MountClosure call. It is an internal invariant violation —
// reported as a plain error, never a panic — to unmount more than was
// mounted.
func (e *Environment) UnmountClosure() error {
	if len(e.mounts) == 0 {
		return errors.New("unmount without matching mount")
	}
	e.cur = e.mounts[len(e.mounts)-1]
	e.mounts = e.mounts[:len(e.mounts)-1]
	return nil
}

// Depth returns the number of active mounts, for diagnostics and tests.
func (e *Environment) Depth() int { return len(e.mounts) }
