package bbcode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// stackTags: 0 sentinel, 1 "b", 2 "i", 3 "\*" (double closes)
func newTestStack() scopeStack {
	return newScopeStack([]TagDefinition{
		{Kind: Start()},
		NewTag("b", "b", Simple()),
		NewTag("i", "i", Simple()),
		NewTag(`\*`, "li", Simple(), WithValueParse(ParseDoubleCloses)),
	})
}

func defsOf(frames []scopeFrame) []int {
	out := make([]int, len(frames))
	for i, f := range frames {
		out[i] = f.def
	}
	return out
}

func TestScopeStack_StartsWithSentinel(t *testing.T) {
	s := newTestStack()
	require.Equal(t, 1, s.depth())
	require.Equal(t, 0, s.top().def)
	require.Equal(t, KindStart, s.topDef().Kind.Type)
}

func TestScopeStack_OpenPushes(t *testing.T) {
	s := newTestStack()

	pushed, closed := s.open(scopeFrame{def: 1, innerStart: 3})
	require.Empty(t, closed)
	require.Equal(t, 1, pushed.def)
	require.Equal(t, 3, pushed.innerStart)

	// same Tag without double closes nests
	_, closed = s.open(scopeFrame{def: 1})
	require.Empty(t, closed)
	require.Equal(t, 3, s.depth())
}

func TestScopeStack_OpenDoubleCloses(t *testing.T) {
	s := newTestStack()

	s.open(scopeFrame{def: 3, innerStart: 3})
	pushed, closed := s.open(scopeFrame{def: 3, innerStart: 10})

	require.Equal(t, []int{3}, defsOf(closed))
	require.Equal(t, 3, closed[0].innerStart)
	require.Equal(t, 10, pushed.innerStart)
	require.Equal(t, 2, s.depth())

	// not at the top: no auto close
	s.open(scopeFrame{def: 1})
	_, closed = s.open(scopeFrame{def: 3})
	require.Empty(t, closed)
	require.Equal(t, 4, s.depth())
}

func TestScopeStack_CloseCollapsesIntermediate(t *testing.T) {
	s := newTestStack()
	s.open(scopeFrame{def: 1})
	s.open(scopeFrame{def: 2})
	s.open(scopeFrame{def: 3})

	popped := s.close(1)
	require.Equal(t, []int{3, 2, 1}, defsOf(popped))
	require.Equal(t, 1, s.depth())
}

func TestScopeStack_CloseNearestMatch(t *testing.T) {
	s := newTestStack()
	s.open(scopeFrame{def: 1, innerStart: 1})
	s.open(scopeFrame{def: 2})
	s.open(scopeFrame{def: 1, innerStart: 2})

	popped := s.close(1)
	require.Equal(t, []int{1}, defsOf(popped))
	require.Equal(t, 2, popped[0].innerStart)
	require.Equal(t, 3, s.depth())
}

func TestScopeStack_CloseUnmatchedIsNoop(t *testing.T) {
	s := newTestStack()
	s.open(scopeFrame{def: 1})

	require.Nil(t, s.close(2))
	require.Equal(t, 2, s.depth())

	// the sentinel is never closed
	require.Nil(t, s.close(0))
	require.Equal(t, 2, s.depth())
}

func TestScopeStack_DumpRemaining(t *testing.T) {
	s := newTestStack()
	s.open(scopeFrame{def: 1})
	s.open(scopeFrame{def: 2})

	require.Equal(t, []int{2, 1, 0}, defsOf(s.dumpRemaining()))
	require.Equal(t, 0, s.depth())
}

func TestScopeStack_PopEmptyPanics(t *testing.T) {
	s := newTestStack()
	s.dumpRemaining()

	require.Panics(t, func() { s.pop() })
}
