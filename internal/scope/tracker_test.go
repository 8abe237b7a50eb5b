package scope

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrackerEnterExitFunction(t *testing.T) {
	tr := NewTracker()
	tr.EnterLang(FromString("main"))
	require.Equal(t, "main", tr.CurrentScope().Name())

	tr.EnterFunction("foo")
	require.Equal(t, "main.foo", tr.CurrentScope().Name())

	tr.EnterScope("bar")
	require.Equal(t, "main.foo.bar", tr.CurrentScope().Name())

	tr.ExitScope()
	require.Equal(t, "main.foo", tr.CurrentScope().Name())

	tr.ExitFunction()
	require.Equal(t, "main", tr.CurrentScope().Name())

	tr.ExitLang()
	require.Equal(t, 0, tr.Depth())
}

func TestTrackerCurrentScopePanicsWhenEmpty(t *testing.T) {
	tr := NewTracker()
	require.Panics(t, func() { tr.CurrentScope() })
}

func TestTrackerPopPanicsWhenEmpty(t *testing.T) {
	tr := NewTracker()
	require.Panics(t, func() { tr.ExitScope() })
}
