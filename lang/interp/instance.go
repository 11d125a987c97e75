package interp

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// Instance is a runtime object: a class plus its own field table. Fields
// and methods share a single namespace from the caller's point of view
// (Get checks fields first, then the class's method chain), but they live
// in separate maps internally (I6).
type Instance struct {
	class  *Class
	fields *swiss.Map[string, Value]
}

// NewInstance allocates a fresh, field-less instance of class.
func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: swiss.NewMap[string, Value](4)}
}

// Get implements the Getter protocol (I7): an instance's own fields shadow
// its class's methods, methods are bound to this (and super, if any) at
// fetch time, and a name that is neither a field nor a method is a runtime
// error.
func (i *Instance) Get(it *Interp, name string) (Value, error) {
	if v, ok := i.fields.Get(name); ok {
		return v, nil
	}
	if m, ok := i.class.findMethod(name); ok {
		return m.bind(it, i), nil
	}
	return nil, fmt.Errorf("Undefined property '%s'.", name)
}

// Set writes name into i's own field table, creating it if absent.
func (i *Instance) Set(name string, value Value) {
	i.fields.Put(name, value)
}

func (i *Instance) String() string { return fmt.Sprintf("<%s instance>", i.class.name) }
