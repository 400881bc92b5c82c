// Package state implements the program state: an immutable snapshot of
// variable bindings, the constraint store, the operand stack, and
// per-program-point visit counts, plus pure update operations over all
// four.
package state

import (
	"github.com/orimarko/sonar-java/internal/cfg"
	"github.com/orimarko/sonar-java/internal/semantic"
	"github.com/orimarko/sonar-java/internal/sv"
)

// PS is the program state: four immutable fields. All mutators return a
// new PS; the receiver is never modified. Every mutator copies the values
// and constraints maps; the stack slice and the visited map are shared
// with the receiver until an operation replaces them. Equal compares the
// contents of all four fields.
type PS struct {
	values      map[*semantic.Symbol]sv.ID
	constraints map[sv.ID]sv.Constraint
	stack       []sv.ID
	visited     map[cfg.Point]int
}

// New returns the empty starting program state.
func New() *PS {
	return &PS{
		values:      map[*semantic.Symbol]sv.ID{},
		constraints: map[sv.ID]sv.Constraint{},
	}
}

// Put binds symbol to id in values.
func (ps *PS) Put(symbol *semantic.Symbol, id sv.ID) *PS {
	next := ps.clone()
	next.values[symbol] = id
	return next
}

// Get reads the current binding of symbol, if any.
func (ps *PS) Get(symbol *semantic.Symbol) (sv.ID, bool) {
	id, ok := ps.values[symbol]
	return id, ok
}

// StackValue pushes id onto the stack.
func (ps *PS) StackValue(id sv.ID) *PS {
	next := ps.clone()
	next.stack = append(append([]sv.ID(nil), ps.stack...), id)
	return next
}

// StackTop returns the SV on top of the stack without popping it, used
// by the branch handler to read the condition's result.
func (ps *PS) StackTop() (sv.ID, bool) {
	if len(ps.stack) == 0 {
		return 0, false
	}
	return ps.stack[len(ps.stack)-1], true
}

// PeekAt reads the SV depth positions below the top of the stack (depth 0
// is the top) without popping anything. Used by checkers that need to
// inspect an operand before the statement that will eventually consume it
// has run its own pop.
func (ps *PS) PeekAt(depth int) (sv.ID, bool) {
	idx := len(ps.stack) - 1 - depth
	if idx < 0 || idx >= len(ps.stack) {
		return 0, false
	}
	return ps.stack[idx], true
}

// ClearStack discards every operand on the stack: run after a statement
// whose parent is an expression-statement, to drop temporaries that
// nothing will ever consume.
func (ps *PS) ClearStack() *PS {
	if len(ps.stack) == 0 {
		return ps
	}
	next := ps.clone()
	next.stack = nil
	return next
}

// StackLen reports the current operand-stack depth.
func (ps *PS) StackLen() int {
	return len(ps.stack)
}

// Unstack pops n operands, returning the updated PS and the popped SVs
// deepest-first. Panics if n exceeds the stack depth: that is an internal
// invariant violation the caller turns into errors.InternalError, not a
// value it can recover from.
func (ps *PS) Unstack(n int) (*PS, []sv.ID) {
	if n > len(ps.stack) {
		panic("state: unstack: stack underflow")
	}
	cut := len(ps.stack) - n
	popped := append([]sv.ID(nil), ps.stack[cut:]...)
	next := ps.clone()
	next.stack = append([]sv.ID(nil), ps.stack[:cut]...)
	return next, popped
}

// NumberOfTimesVisited reads visited[point], 0 if absent.
func (ps *PS) NumberOfTimesVisited(point cfg.Point) int {
	return ps.visited[point]
}

// WithVisited returns ps with visited[point] = count.
func (ps *PS) WithVisited(point cfg.Point, count int) *PS {
	next := ps.clone()
	next.visited = cloneVisited(ps.visited)
	next.visited[point] = count
	return next
}

// ConstraintOf reads the constraint currently imposed on id, if any.
// Part of the sv.PSLike interface the constraint operations are written
// against.
func (ps *PS) ConstraintOf(id sv.ID) (sv.Constraint, bool) {
	c, ok := ps.constraints[id]
	return c, ok
}

// WithConstraint returns ps with constraints[id] = c. Part of the
// sv.PSLike interface.
func (ps *PS) WithConstraint(id sv.ID, c sv.Constraint) *PS {
	next := ps.clone()
	next.constraints[id] = c
	return next
}

// ConstraintsSize reports the number of tracked constraints, the input to
// the walker's "too big" heuristic.
func (ps *PS) ConstraintsSize() int {
	return len(ps.constraints)
}

// Equal reports structural equality over all four fields: two value-equal
// PS at the same program point are interchangeable for exploration, which
// is exactly the exploded graph's interning key.
func (ps *PS) Equal(other *PS) bool {
	if ps == other {
		return true
	}
	if len(ps.stack) != len(other.stack) || len(ps.values) != len(other.values) ||
		len(ps.constraints) != len(other.constraints) || len(ps.visited) != len(other.visited) {
		return false
	}
	for i, id := range ps.stack {
		if other.stack[i] != id {
			return false
		}
	}
	for sym, id := range ps.values {
		oid, ok := other.values[sym]
		if !ok || oid != id {
			return false
		}
	}
	for id, c := range ps.constraints {
		oc, ok := other.constraints[id]
		if !ok || oc != c {
			return false
		}
	}
	for p, n := range ps.visited {
		on, ok := other.visited[p]
		if !ok || on != n {
			return false
		}
	}
	return true
}

// Fields exposes every symbol currently bound, for the field reset and
// for checkers that need a read-only view. Iteration order must still be
// made stable by the caller.
func (ps *PS) Fields() map[*semantic.Symbol]sv.ID {
	return ps.values
}

func (ps *PS) clone() *PS {
	next := &PS{
		values:      make(map[*semantic.Symbol]sv.ID, len(ps.values)),
		constraints: make(map[sv.ID]sv.Constraint, len(ps.constraints)),
		stack:       ps.stack,
		visited:     ps.visited,
	}
	for k, v := range ps.values {
		next.values[k] = v
	}
	for k, v := range ps.constraints {
		next.constraints[k] = v
	}
	return next
}

func cloneVisited(m map[cfg.Point]int) map[cfg.Point]int {
	next := make(map[cfg.Point]int, len(m)+1)
	for k, v := range m {
		next[k] = v
	}
	return next
}
