package interp

import (
	"fmt"
	"math"
	"strings"

	"github.com/mna/talus/lang/ast"
	"github.com/mna/talus/lang/env"
	"github.com/mna/talus/lang/token"
)

// RuntimeError is a single evaluator failure, carrying the source line when
// one is available (§7, tier 3-6). It aborts the current interpret pass;
// output accumulated before the error is retained by the caller.
type RuntimeError struct {
	Line int
	Msg  string
}

func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[Line %d] %s", e.Line, e.Msg)
	}
	return e.Msg
}

func runtimeErr(line int, format string, args ...any) *RuntimeError {
	return &RuntimeError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// returnSignal is the non-error early-return carrier described in §9: it
// propagates up through execBlock/execStmt (Block and While) until a
// function call's CallInternal consumes it.
type returnSignal struct {
	value Value
}

// Interp is a single evaluator instance: its global/lexical environment and
// the accumulated print output.
type Interp struct {
	env *env.Environment
	out strings.Builder
}

// New returns an Interp with a fresh global scope seeded with the native
// built-ins (currently just "clock").
func New() *Interp {
	it := &Interp{env: env.New()}
	for name, fn := range globals() {
		it.env.Define(name, fn)
	}
	return it
}

// Interpret runs prog to completion or to its first runtime error. The
// returned string is the accumulated print output with its final trailing
// newline trimmed (§6), regardless of whether err is non-nil — partial
// output up to a failure is retained.
func (it *Interp) Interpret(prog *ast.Program) (string, error) {
	it.out.Reset()
	_, err := it.execBlock(prog.Stmts)
	return strings.TrimSuffix(it.out.String(), "\n"), err
}

// execBlock runs stmts in the interpreter's current scope, in order,
// stopping at the first error or early return. It does not itself push or
// pop a scope frame — callers (BlockStmt execution, function calls) own
// that per §4.3.
func (it *Interp) execBlock(stmts []ast.Stmt) (*returnSignal, error) {
	for _, s := range stmts {
		sig, err := it.execStmt(s)
		if err != nil {
			return nil, err
		}
		if sig != nil {
			return sig, nil
		}
	}
	return nil, nil
}

func (it *Interp) execStmt(s ast.Stmt) (*returnSignal, error) {
	switch st := s.(type) {
	case *ast.VarStmt:
		v, err := it.eval(st.Init)
		if err != nil {
			return nil, err
		}
		it.env.Define(st.Name, v)
		return nil, nil

	case *ast.ExprStmt:
		_, err := it.eval(st.Expr)
		return nil, err

	case *ast.PrintStmt:
		v, err := it.eval(st.Expr)
		if err != nil {
			return nil, err
		}
		it.out.WriteString(Stringify(v))
		it.out.WriteByte('\n')
		return nil, nil

	case *ast.BlockStmt:
		it.env.LowerScope()
		sig, err := it.execBlock(st.Stmts)
		if rerr := it.env.RaiseScope(); rerr != nil && err == nil {
			err = rerr
		}
		return sig, err

	case *ast.IfStmt:
		cond, err := it.eval(st.Cond)
		if err != nil {
			return nil, err
		}
		if Truthy(cond) {
			return it.execStmt(st.Then)
		}
		if st.Else != nil {
			return it.execStmt(st.Else)
		}
		return nil, nil

	case *ast.WhileStmt:
		for {
			cond, err := it.eval(st.Cond)
			if err != nil {
				return nil, err
			}
			if !Truthy(cond) {
				return nil, nil
			}
			sig, err := it.execStmt(st.Body)
			if err != nil {
				return nil, err
			}
			if sig != nil {
				return sig, nil
			}
		}

	case *ast.ReturnStmt:
		v, err := it.eval(st.Value)
		if err != nil {
			return nil, err
		}
		return &returnSignal{value: v}, nil

	case *ast.FunStmt:
		f := &Function{name: st.Name, params: st.Params, body: st.Body}
		// SpawnClosure copies the current scope chain (§4.2), so the function's
		// own name has to be defined a second time, inside the captured copy
		// itself, for the function to be able to call itself recursively; it
		// is then defined again in the live scope so the rest of the block can
		// see it too (§4.3).
		f.closure = it.env.SpawnClosure()
		it.env.MountClosure(f.closure)
		it.env.Define(st.Name, f)
		if uerr := it.env.UnmountClosure(); uerr != nil {
			return nil, uerr
		}
		it.env.Define(st.Name, f)
		return nil, nil

	case *ast.ClassStmt:
		return nil, it.execClassStmt(st)

	default:
		return nil, runtimeErr(s.Line(), "Unknown statement type %T.", s)
	}
}

func (it *Interp) execClassStmt(st *ast.ClassStmt) error {
	var superclass *Class
	if st.Superclass != nil {
		v, err := it.eval(st.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return runtimeErr(st.Superclass.Line(), "Superclass must be a class.")
		}
		superclass = sc
	}

	methods := make(map[string]*Function, len(st.Methods))
	for _, m := range st.Methods {
		fn := &Function{
			name:          m.Name,
			params:        m.Params,
			body:          m.Body,
			isInitializer: m.Name == "init",
			superclass:    superclass,
		}
		fn.closure = it.env.SpawnClosure()
		methods[m.Name] = fn
	}

	it.env.Define(st.Name, NewClass(st.Name, superclass, methods))
	return nil
}

func (it *Interp) eval(e ast.Expr) (Value, error) {
	switch ex := e.(type) {
	case *ast.LiteralExpr:
		return ex.Value, nil

	case *ast.GroupingExpr:
		return it.eval(ex.Inner)

	case *ast.IdentExpr:
		v, err := it.env.Get(ex.Name)
		if err != nil {
			return nil, runtimeErr(ex.Ln, "%s", err.Error())
		}
		return v, nil

	case *ast.AssignExpr:
		v, err := it.eval(ex.Value)
		if err != nil {
			return nil, err
		}
		if aerr := it.env.Assign(ex.Name, v); aerr != nil {
			return nil, runtimeErr(ex.Ln, "%s", aerr.Error())
		}
		return v, nil

	case *ast.UnaryExpr:
		return it.evalUnary(ex)

	case *ast.BinaryExpr:
		return it.evalBinary(ex)

	case *ast.LogicalExpr:
		return it.evalLogical(ex)

	case *ast.CallExpr:
		return it.evalCall(ex)

	case *ast.GetExpr:
		return it.evalGet(ex)

	case *ast.SetExpr:
		return it.evalSet(ex)

	case *ast.ThisExpr:
		v, err := it.env.Get("this")
		if err != nil {
			return nil, runtimeErr(ex.Ln, "%s", err.Error())
		}
		return v, nil

	case *ast.SuperExpr:
		return it.evalSuper(ex)

	default:
		return nil, runtimeErr(e.Line(), "Unknown expression type %T.", e)
	}
}

func (it *Interp) evalUnary(ex *ast.UnaryExpr) (Value, error) {
	v, err := it.eval(ex.Operand)
	if err != nil {
		return nil, err
	}
	switch ex.Op {
	case token.MINUS:
		n, ok := v.(float64)
		if !ok {
			return nil, runtimeErr(ex.Ln, "Operand must be a number.")
		}
		return -n, nil
	case token.BANG:
		return !Truthy(v), nil
	default:
		return nil, runtimeErr(ex.Ln, "Unknown unary operator %s.", ex.Op)
	}
}

func (it *Interp) evalBinary(ex *ast.BinaryExpr) (Value, error) {
	l, err := it.eval(ex.Left)
	if err != nil {
		return nil, err
	}
	r, err := it.eval(ex.Right)
	if err != nil {
		return nil, err
	}

	switch ex.Op {
	case token.PLUS:
		if ln, ok := l.(float64); ok {
			if rn, ok := r.(float64); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := l.(string); ok {
			if rs, ok := r.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, runtimeErr(ex.Ln, "Operands must be two numbers or two strings.")

	case token.MINUS, token.STAR, token.SLASH, token.PERCENT:
		ln, lok := l.(float64)
		rn, rok := r.(float64)
		if !lok || !rok {
			return nil, runtimeErr(ex.Ln, "Operands must be numbers.")
		}
		switch ex.Op {
		case token.MINUS:
			return ln - rn, nil
		case token.STAR:
			return ln * rn, nil
		case token.SLASH:
			return ln / rn, nil
		default: // PERCENT
			return math.Mod(ln, rn), nil
		}

	case token.LT, token.LT_EQ, token.GT, token.GT_EQ:
		ln, lok := l.(float64)
		rn, rok := r.(float64)
		if !lok || !rok {
			return nil, runtimeErr(ex.Ln, "Operands must be numbers.")
		}
		switch ex.Op {
		case token.LT:
			return ln < rn, nil
		case token.LT_EQ:
			return ln <= rn, nil
		case token.GT:
			return ln > rn, nil
		default: // GT_EQ
			return ln >= rn, nil
		}

	case token.EQ_EQ:
		return Equal(l, r), nil
	case token.BANG_EQ:
		return !Equal(l, r), nil

	default:
		return nil, runtimeErr(ex.Ln, "Unknown binary operator %s.", ex.Op)
	}
}

func (it *Interp) evalLogical(ex *ast.LogicalExpr) (Value, error) {
	l, err := it.eval(ex.Left)
	if err != nil {
		return nil, err
	}
	if ex.Op == token.OR {
		if Truthy(l) {
			return l, nil
		}
	} else { // AND
		if !Truthy(l) {
			return l, nil
		}
	}
	return it.eval(ex.Right)
}

func (it *Interp) evalCall(ex *ast.CallExpr) (Value, error) {
	callee, err := it.eval(ex.Callee)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(Callable)
	if !ok {
		return nil, runtimeErr(ex.Ln, "Can only call functions and classes.")
	}

	args := make([]Value, len(ex.Args))
	for i, a := range ex.Args {
		v, err := it.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if got, want := len(args), fn.Arity(); got != want {
		return nil, runtimeErr(ex.Ln, "Expected %d arguments but got %d.", want, got)
	}
	return fn.CallInternal(it, args)
}

func (it *Interp) evalGet(ex *ast.GetExpr) (Value, error) {
	obj, err := it.eval(ex.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*Instance)
	if !ok {
		return nil, runtimeErr(ex.Ln, "Only instances have properties.")
	}
	v, err := inst.Get(it, ex.Name)
	if err != nil {
		return nil, runtimeErr(ex.Ln, "%s", err.Error())
	}
	return v, nil
}

func (it *Interp) evalSet(ex *ast.SetExpr) (Value, error) {
	obj, err := it.eval(ex.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*Instance)
	if !ok {
		return nil, runtimeErr(ex.Ln, "Only instances have fields.")
	}
	v, err := it.eval(ex.Value)
	if err != nil {
		return nil, err
	}
	inst.Set(ex.Name, v)
	return v, nil
}

// evalSuper resolves `super.Method` per I7/P5: `super` was bound, at method
// fetch time, to the superclass of the class that defined the *currently
// executing* method — not the runtime class of `this` — so the lookup
// starts there regardless of how far down the chain `this` actually is.
func (it *Interp) evalSuper(ex *ast.SuperExpr) (Value, error) {
	v, err := it.env.Get("super")
	if err != nil {
		return nil, runtimeErr(ex.Ln, "%s", err.Error())
	}
	superclass, ok := v.(*Class)
	if !ok {
		return nil, runtimeErr(ex.Ln, "'super' is not a class.")
	}
	method, ok := superclass.findMethod(ex.Method)
	if !ok {
		return nil, runtimeErr(ex.Ln, "Undefined property '%s'.", ex.Method)
	}
	thisVal, err := it.env.Get("this")
	if err != nil {
		return nil, runtimeErr(ex.Ln, "%s", err.Error())
	}
	inst, ok := thisVal.(*Instance)
	if !ok {
		return nil, runtimeErr(ex.Ln, "'this' is not an instance.")
	}
	return method.bind(it, inst), nil
}
