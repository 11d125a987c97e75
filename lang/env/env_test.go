package env_test

import (
	"testing"

	"github.com/mna/talus/lang/env"
	"github.com/stretchr/testify/require"
)

func TestDefineAndGet(t *testing.T) {
	e := env.New()
	e.Define("x", 1.0)
	v, err := e.Get("x")
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}

func TestGetUndefinedIsError(t *testing.T) {
	e := env.New()
	_, err := e.Get("missing")
	require.Error(t, err)
}

func TestAssignUndefinedIsError(t *testing.T) {
	e := env.New()
	err := e.Assign("missing", 1.0)
	require.Error(t, err)
}

// TestAssignLocality mirrors property P2: a block-local shadow does not
// leak out, but an assignment to an outer variable from an inner block
// does.
func TestAssignLocality(t *testing.T) {
	e := env.New()
	e.Define("x", "a")

	e.LowerScope()
	require.NoError(t, e.Assign("x", "b"))
	require.NoError(t, e.RaiseScope())

	v, err := e.Get("x")
	require.NoError(t, err)
	require.Equal(t, "b", v)

	e.LowerScope()
	e.Define("x", "c") // shadows, does not touch outer x
	require.NoError(t, e.RaiseScope())

	v, err = e.Get("x")
	require.NoError(t, err)
	require.Equal(t, "b", v)
}

func TestRaiseScopePastGlobalIsError(t *testing.T) {
	e := env.New()
	require.Error(t, e.RaiseScope())
}

func TestUnmountWithoutMountIsError(t *testing.T) {
	e := env.New()
	require.Error(t, e.UnmountClosure())
}

// TestClosureCapture mirrors property P1: a closure spawned in one scope
// keeps resolving names against that scope even after the defining scope
// has been exited, and even while some unrelated
// scope is active on the same Environment.
func TestClosureCapture(t *testing.T) {
	e := env.New()
	e.Define("counter", 0.0)

	e.LowerScope()
	closure := e.SpawnClosure()
	e.RaiseScope()

	// mutate an unrelated scope to prove it doesn't leak into the closure
	e.LowerScope()
	e.Define("counter", 999.0)

	e.MountClosure(closure)
	require.NoError(t, e.Assign("counter", 1.0))
	e.UnmountClosure()

	require.NoError(t, e.RaiseScope())

	v, err := e.Get("counter")
	require.NoError(t, err)
	require.Equal(t, 1.0, v) // the outer "counter" was mutated via the closure
}

// TestNestedMountsAreReentrant also mirrors P2: "x" is defined into the
// block scope only *after* the closure captures it, so the closure's own
// (copied) view of that scope never sees it — it keeps resolving "x"
// against the global frame it captured, exactly like static_scope.talus.
func TestNestedMountsAreReentrant(t *testing.T) {
	e := env.New()
	e.Define("x", "global")

	e.LowerScope()
	inner := e.SpawnClosure()
	e.Define("x", "inner")
	e.RaiseScope()

	e.MountClosure(inner)
	e.MountClosure(nil) // self-mount
	v, err := e.Get("x")
	require.NoError(t, err)
	require.Equal(t, "global", v)
	require.Equal(t, 2, e.Depth())

	require.NoError(t, e.UnmountClosure())
	require.NoError(t, e.UnmountClosure())
	require.Equal(t, 0, e.Depth())

	v, err = e.Get("x")
	require.NoError(t, err)
	require.Equal(t, "global", v)
}
