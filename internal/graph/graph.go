// Package graph implements the exploded graph: the interned set of
// (program-point, program-state) nodes the walker enqueues into and
// deduplicates against. The engine only ever needs lookup-or-insert here,
// not traversal algorithms, so a plain map plus a collision bucket does
// the job.
package graph

import (
	"github.com/orimarko/sonar-java/internal/cfg"
	"github.com/orimarko/sonar-java/internal/state"
)

// Node is an interned (program-point, program-state) pair.
type Node struct {
	Point cfg.Point
	State *state.PS
}

// Graph is the map from (program-point, program-state) to Node. It exists
// only for the duration of one Walker.execute(procedure) call.
type Graph struct {
	buckets map[cfg.Point][]*Node
}

// New returns an empty exploded graph.
func New() *Graph {
	return &Graph{buckets: make(map[cfg.Point][]*Node)}
}

// GetNode returns the existing node for (point, ps) if one is present
// (isNew=false), or interns and returns a new one (isNew=true). Lookup is
// by value equality on ps, not pointer identity, since two
// independently-produced PS for the same point are interchangeable.
func (g *Graph) GetNode(point cfg.Point, ps *state.PS) (node *Node, isNew bool) {
	for _, n := range g.buckets[point] {
		if n.State.Equal(ps) {
			return n, false
		}
	}
	n := &Node{Point: point, State: ps}
	g.buckets[point] = append(g.buckets[point], n)
	return n, true
}

// Size returns the number of interned nodes, useful for diagnostics and
// tests but not consulted by the "too big" heuristic (that gate looks at
// steps, worklist length, and constraint-store size).
func (g *Graph) Size() int {
	total := 0
	for _, bucket := range g.buckets {
		total += len(bucket)
	}
	return total
}
