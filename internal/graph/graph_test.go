package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orimarko/sonar-java/internal/cfg"
	"github.com/orimarko/sonar-java/internal/state"
)

func TestGetNodeInternsByValueEquality(t *testing.T) {
	g := New()
	point := cfg.Point{Block: &cfg.Block{ID: 0}, Index: 1}

	first, isNew := g.GetNode(point, state.New().StackValue(1))
	require.True(t, isNew)

	// An independently built but value-equal state must hit the cache.
	second, isNew := g.GetNode(point, state.New().StackValue(1))
	assert.False(t, isNew)
	assert.Same(t, first, second)
	assert.Equal(t, 1, g.Size())
}

func TestGetNodeDistinguishesStates(t *testing.T) {
	g := New()
	point := cfg.Point{Block: &cfg.Block{ID: 0}, Index: 0}

	_, isNew := g.GetNode(point, state.New())
	require.True(t, isNew)

	_, isNew = g.GetNode(point, state.New().StackValue(1))
	assert.True(t, isNew)
	assert.Equal(t, 2, g.Size())
}

func TestGetNodeDistinguishesPoints(t *testing.T) {
	g := New()
	block := &cfg.Block{ID: 0}
	ps := state.New()

	_, isNew := g.GetNode(cfg.Point{Block: block, Index: 0}, ps)
	require.True(t, isNew)

	_, isNew = g.GetNode(cfg.Point{Block: block, Index: 1}, ps)
	assert.True(t, isNew)
}
