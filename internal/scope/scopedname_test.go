package scope

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromStringRoot(t *testing.T) {
	require.True(t, FromString("").IsEmpty())
	require.Equal(t, 0, FromString("").Len())
}

func TestAppendedAndName(t *testing.T) {
	n := FromString("main").Appended("Args").Appended("SIZE")
	require.Equal(t, "main.Args.SIZE", n.Name())
	require.Equal(t, 3, n.Len())
}

func TestExtended(t *testing.T) {
	base := FromString("main")
	rel := FromString("Args.SIZE")
	require.Equal(t, "main.Args.SIZE", base.Extended(rel).Name())
}

func TestSplit(t *testing.T) {
	n := FromString("a.b.c")
	first, rest, ok := n.Split()
	require.True(t, ok)
	require.Equal(t, "a", first)
	require.Equal(t, "b.c", rest.Name())

	_, _, ok = FromString("").Split()
	require.False(t, ok)
}

func TestRevSplit(t *testing.T) {
	n := FromString("a.b.c")
	prefix, last, ok := n.RevSplit()
	require.True(t, ok)
	require.Equal(t, "a.b", prefix.Name())
	require.Equal(t, "c", last)

	_, _, ok = FromString("").RevSplit()
	require.False(t, ok)
}

func TestHasPrefixAndEqual(t *testing.T) {
	n := FromString("a.b.c")
	require.True(t, n.HasPrefix(FromString("a.b")))
	require.True(t, n.HasPrefix(Root()))
	require.False(t, n.HasPrefix(FromString("a.x")))
	require.True(t, n.Equal(FromString("a.b.c")))
	require.False(t, n.Equal(FromString("a.b")))
}
