package interp_test

import (
	"testing"

	"github.com/mna/talus/lang/interp"
	"github.com/mna/talus/lang/parser"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) string {
	t.Helper()
	prog, err := parser.ParseSource([]byte(src))
	require.NoError(t, err)
	out, err := interp.New().Interpret(prog)
	require.NoError(t, err)
	return out
}

// TestCounterClosure is scenario 1 of the end-to-end corpus: each call to
// the returned closure sees and mutates the same captured `i` (P1).
func TestCounterClosure(t *testing.T) {
	src := `
fun makeCounter() { var i=0; fun c(){ i = i+1; print i; } return c; }
var c = makeCounter(); c(); c(); c();
`
	require.Equal(t, "1\n2\n3", run(t, src))
}

// TestStaticScoping is scenario 2: showA closes over the `a` that was live
// when it was defined, not whatever `a` is in scope at the call site.
func TestStaticScoping(t *testing.T) {
	src := `var a="global"; { fun showA(){ print a; } showA(); var a="block"; showA(); }`
	require.Equal(t, "global\nglobal", run(t, src))
}

// TestFibonacci is scenario 3: recursive calls and the for-loop desugaring.
func TestFibonacci(t *testing.T) {
	src := `
fun fib(n){ if (n<=1) return n; return fib(n-2)+fib(n-1); }
for (var i=0;i<10;i=i+1) print fib(i);
`
	require.Equal(t, "0\n1\n1\n2\n3\n5\n8\n13\n21\n34", run(t, src))
}

// TestClassInitAndThis is scenario 4: fields set after construction are
// visible to a later method call via `this`.
func TestClassInitAndThis(t *testing.T) {
	src := `
class Cake { taste(){ print "The "+this.flavor+" cake is delicious!"; } }
var c=Cake(); c.flavor="German chocolate"; c.taste();
`
	require.Equal(t, "The German chocolate cake is delicious!", run(t, src))
}

// TestSuperDispatchThroughChain is scenario 5: C inherits B.test, which
// calls super.m — and super there means A, the superclass of the class
// that *defined* test (B), not C (P5).
func TestSuperDispatchThroughChain(t *testing.T) {
	src := `
class A { m(){ print "A"; } }
class B<A { m(){ print "B"; } test(){ super.m(); } }
class C<B {}
C().test();
`
	require.Equal(t, "A", run(t, src))
}

// TestLogicalShortCircuitValues is scenario 6: `or`/`and` yield the
// deciding operand, not a boolean, and skip evaluating the other side.
func TestLogicalShortCircuitValues(t *testing.T) {
	src := `var i; (i=1) or (i=2); print i; print nil or "fallback";`
	require.Equal(t, "1\nfallback", run(t, src))
}

func TestInitAlwaysReturnsInstance(t *testing.T) {
	src := `
class Point {
  init(x,y) { this.x=x; this.y=y; }
}
var p = Point(1,2);
print p.x; print p.y;
`
	require.Equal(t, "1\n2", run(t, src))
}

func TestRuntimeErrorRetainsPartialOutput(t *testing.T) {
	src := `print "before"; print 1 + "oops";`
	prog, err := parser.ParseSource([]byte(src))
	require.NoError(t, err)
	out, err := interp.New().Interpret(prog)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Operands must be two numbers or two strings.")
	require.Equal(t, "before", out)
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	prog, err := parser.ParseSource([]byte(`print missing;`))
	require.NoError(t, err)
	_, err = interp.New().Interpret(prog)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Undefined variable 'missing'.")
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	prog, err := parser.ParseSource([]byte(`var x = 1; x();`))
	require.NoError(t, err)
	_, err = interp.New().Interpret(prog)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Can only call functions and classes.")
}

func TestArityMismatchIsRuntimeError(t *testing.T) {
	prog, err := parser.ParseSource([]byte(`fun f(a,b){ return a+b; } f(1);`))
	require.NoError(t, err)
	_, err = interp.New().Interpret(prog)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Expected 2 arguments but got 1.")
}

func TestUndefinedPropertyIsRuntimeError(t *testing.T) {
	prog, err := parser.ParseSource([]byte(`class C{} C().nope;`))
	require.NoError(t, err)
	_, err = interp.New().Interpret(prog)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Undefined property 'nope'.")
}

func TestInheritFromSelfIsRejectedAtRuntime(t *testing.T) {
	prog, err := parser.ParseSource([]byte(`class A < A {}`))
	require.NoError(t, err)
	_, err = interp.New().Interpret(prog)
	require.Error(t, err)
}

func TestClock(t *testing.T) {
	prog, err := parser.ParseSource([]byte(`print clock() >= 0;`))
	require.NoError(t, err)
	out, err := interp.New().Interpret(prog)
	require.NoError(t, err)
	require.Equal(t, "true", out)
}
