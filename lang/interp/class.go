package interp

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// Class is a class value: its name, optional superclass, and its method
// table (name → Function). Calling a Class constructs an Instance (§4.3
// call protocol, step 2).
type Class struct {
	name       string
	superclass *Class
	methods    *swiss.Map[string, *Function]
}

var _ Callable = (*Class)(nil)

// NewClass builds a class value from its method declarations.
func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	m := swiss.NewMap[string, *Function](uint32(len(methods)))
	for k, v := range methods {
		m.Put(k, v)
	}
	return &Class{name: name, superclass: superclass, methods: m}
}

func (c *Class) Name() string { return c.name }
func (c *Class) SetName(name string) {
	if c.name == "" {
		c.name = name
	}
}

// findMethod looks up name in c's own method table, then walks the
// superclass chain (I6).
func (c *Class) findMethod(name string) (*Function, bool) {
	if c == nil {
		return nil, false
	}
	if f, ok := c.methods.Get(name); ok {
		return f, true
	}
	return c.superclass.findMethod(name)
}

// Arity is the arity of "init" if the class defines one, else 0 (§4.3
// call protocol).
func (c *Class) Arity() int {
	if init, ok := c.findMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// CallInternal allocates a new Instance of c and, if c (or an ancestor)
// defines "init", binds and calls it with args before returning the
// instance — whatever init returns, per I8 that is always the instance
// itself.
func (c *Class) CallInternal(it *Interp, args []Value) (Value, error) {
	inst := NewInstance(c)
	if init, ok := c.findMethod("init"); ok {
		bound := init.bind(it, inst)
		if _, err := bound.CallInternal(it, args); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

func (c *Class) String() string { return fmt.Sprintf("<class %s>", c.name) }
