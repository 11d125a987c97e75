// Package interp implements the tree-walking evaluator: runtime values,
// function/class/instance semantics, and the statement/expression
// execution described in §4.3 of the language specification.
package interp

import (
	"fmt"
	"strconv"
	"strings"
)

// Value documents the shape of every runtime value, though most code just
// uses `any` directly (as env does): float64 for numbers, string for
// strings, bool for booleans, nil for the nil value, and the Callable and
// *Instance types below for the rest.
type Value = any

// Truthy implements §4.3's truthiness rule: only false and nil are falsy,
// everything else — including 0 and the empty string — is truthful (P7).
func Truthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// Equal implements structural equality for `==`/`!=`: nil equals only
// nil, numbers and strings compare by value, booleans directly, and
// callables/instances by identity (Go pointer/interface identity).
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case *Instance:
		return av == b
	case Callable:
		bv, ok := b.(Callable)
		return ok && sameCallable(av, bv)
	default:
		return false
	}
}

func sameCallable(a, b Callable) bool {
	switch av := a.(type) {
	case *Function:
		bv, ok := b.(*Function)
		return ok && av == bv
	case *Class:
		bv, ok := b.(*Class)
		return ok && av == bv
	case *Native:
		bv, ok := b.(*Native)
		return ok && av == bv
	default:
		return false
	}
}

// Stringify formats v the way `print` does (§4.3): numbers use the
// shortest round-trip decimal representation with no trailing ".0" for
// integral values, strings print raw, booleans as true/false, nil as Nil,
// callables as "<fn NAME>"/"<class NAME>" and instances as "<NAME
// instance>".
func Stringify(v Value) string {
	switch vv := v.(type) {
	case nil:
		return "Nil"
	case bool:
		if vv {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(vv)
	case string:
		return vv
	case *Function:
		return fmt.Sprintf("<fn %s>", vv.name)
	case *Class:
		return fmt.Sprintf("<class %s>", vv.name)
	case *Native:
		return fmt.Sprintf("<fn %s>", vv.name)
	case *Instance:
		return fmt.Sprintf("<%s instance>", vv.class.name)
	default:
		return fmt.Sprintf("%v", vv)
	}
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) && !strings.ContainsAny(strconv.FormatFloat(f, 'g', -1, 64), "eE") {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// TypeName returns the short, lowercase type name used in diagnostics.
func TypeName(v Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case *Instance:
		return "instance"
	case Callable:
		return "callable"
	default:
		return fmt.Sprintf("%T", v)
	}
}
