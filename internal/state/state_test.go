package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orimarko/sonar-java/internal/cfg"
	"github.com/orimarko/sonar-java/internal/semantic"
	"github.com/orimarko/sonar-java/internal/sv"
)

func TestPutIsPure(t *testing.T) {
	sym := &semantic.Symbol{Name: "x", Kind: semantic.SymbolLocal}
	ps := New()
	next := ps.Put(sym, sv.ID(10))

	_, ok := ps.Get(sym)
	assert.False(t, ok, "original state must be untouched")

	id, ok := next.Get(sym)
	require.True(t, ok)
	assert.Equal(t, sv.ID(10), id)
}

func TestStackValueAndUnstackOrder(t *testing.T) {
	ps := New().StackValue(1).StackValue(2).StackValue(3)
	require.Equal(t, 3, ps.StackLen())

	next, popped := ps.Unstack(2)
	assert.Equal(t, []sv.ID{2, 3}, popped, "popped SVs come back deepest first")
	assert.Equal(t, 1, next.StackLen())
	assert.Equal(t, 3, ps.StackLen(), "original state must be untouched")

	top, ok := next.StackTop()
	require.True(t, ok)
	assert.Equal(t, sv.ID(1), top)
}

func TestUnstackUnderflowPanics(t *testing.T) {
	ps := New().StackValue(1)
	assert.Panics(t, func() { ps.Unstack(2) })
}

func TestPeekAt(t *testing.T) {
	ps := New().StackValue(1).StackValue(2).StackValue(3)

	top, ok := ps.PeekAt(0)
	require.True(t, ok)
	assert.Equal(t, sv.ID(3), top)

	deep, ok := ps.PeekAt(2)
	require.True(t, ok)
	assert.Equal(t, sv.ID(1), deep)

	_, ok = ps.PeekAt(3)
	assert.False(t, ok)
}

func TestClearStack(t *testing.T) {
	ps := New().StackValue(1).StackValue(2)
	cleared := ps.ClearStack()
	assert.Equal(t, 0, cleared.StackLen())
	assert.Equal(t, 2, ps.StackLen())
	assert.Same(t, cleared, cleared.ClearStack(), "clearing an empty stack is a no-op")
}

func TestVisitedCounts(t *testing.T) {
	point := cfg.Point{Block: &cfg.Block{ID: 1}, Index: 0}
	ps := New()
	assert.Equal(t, 0, ps.NumberOfTimesVisited(point))

	next := ps.WithVisited(point, 2)
	assert.Equal(t, 2, next.NumberOfTimesVisited(point))
	assert.Equal(t, 0, ps.NumberOfTimesVisited(point))
}

func TestConstraints(t *testing.T) {
	ps := New()
	next := ps.WithConstraint(7, sv.ConstraintNotNull)

	_, ok := ps.ConstraintOf(7)
	assert.False(t, ok)

	c, ok := next.ConstraintOf(7)
	require.True(t, ok)
	assert.Equal(t, sv.ConstraintNotNull, c)
	assert.Equal(t, 1, next.ConstraintsSize())
}

func TestEqualIsStructuralOverAllFields(t *testing.T) {
	sym := &semantic.Symbol{Name: "x", Kind: semantic.SymbolLocal}
	point := cfg.Point{Block: &cfg.Block{ID: 1}, Index: 2}

	build := func() *PS {
		return New().
			Put(sym, 4).
			WithConstraint(4, sv.ConstraintNull).
			StackValue(4).
			WithVisited(point, 1)
	}

	a := build()
	b := build()
	assert.True(t, a.Equal(b), "independently built identical states compare equal")

	assert.False(t, a.Equal(b.StackValue(5)))
	assert.False(t, a.Equal(b.WithVisited(point, 2)))
	assert.False(t, a.Equal(b.WithConstraint(5, sv.ConstraintNotNull)))
	assert.False(t, a.Equal(b.Put(&semantic.Symbol{Name: "y"}, 4)))
}
