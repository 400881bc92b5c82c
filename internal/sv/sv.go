// Package sv implements symbolic values and their constraint manager:
// opaque value identities, the nullness constraint domain, and the
// factory that mints and splits them. Values live in an id-keyed arena,
// with provenance stored as index tuples, which sidesteps ownership
// cycles in the provenance graph.
package sv

import (
	"github.com/orimarko/sonar-java/internal/ast"
	"github.com/orimarko/sonar-java/internal/token"
)

// ID is a symbolic value's arena identifier. Two SVs are the same value
// iff they have the same ID — identity, not structure, determines
// equality.
type ID uint32

// Distinguished singletons that every Manager shares. Their IDs are fixed so
// that SVs minted by independently-constructed Managers in tests still
// compare equal for these three.
const (
	NullLiteral  ID = 1
	TrueLiteral  ID = 2
	FalseLiteral ID = 3
	firstFreshID ID = 4
)

// Constraint is a tag attached to an SV within a given program state. The
// only required domain is nullness; the type is intentionally an opaque
// string so the lattice stays extensible without the Manager knowing
// about every kind a future checker might add.
type Constraint string

const (
	ConstraintNull    Constraint = "NULL"
	ConstraintNotNull Constraint = "NOT_NULL"
)

// Opposite returns the constraint that can never hold alongside c within the
// same nullness family, or "" if c isn't one this package recognises.
func (c Constraint) Opposite() Constraint {
	switch c {
	case ConstraintNull:
		return ConstraintNotNull
	case ConstraintNotNull:
		return ConstraintNull
	default:
		return ""
	}
}

// entry is the arena record for one minted SV: its origin (for
// diagnostics only) and its recorded provenance.
type entry struct {
	origin       ast.Node
	computedFrom []ID
}

// Manager is the constraint manager: the factory for fresh SVs and the
// operations that impose or split constraints on them. One Manager belongs
// to a single Walker.execute(procedure) call; its arena is discarded with
// the walker's exploded graph.
type Manager struct {
	entries map[ID]*entry
	next    ID
}

// NewManager creates an empty Manager, pre-seeding the three literal
// singletons.
func NewManager() *Manager {
	m := &Manager{entries: make(map[ID]*entry), next: firstFreshID}
	m.entries[NullLiteral] = &entry{}
	m.entries[TrueLiteral] = &entry{}
	m.entries[FalseLiteral] = &entry{}
	return m
}

// NewSV mints a fresh SV with no constraints, recording origin for
// diagnostics only.
func (m *Manager) NewSV(origin ast.Node) ID {
	id := m.next
	m.next++
	m.entries[id] = &entry{origin: origin}
	return id
}

// SupersedeSV mints a fresh SV intended to replace an existing binding:
// "some unknown, non-null value". Callers combine the result with
// ConstraintNotNull as needed — the Manager itself does not impose the
// constraint, since imposing one requires a program state to return an
// unchanged-or-new successor of.
func (m *Manager) SupersedeSV(origin ast.Node) ID {
	return m.NewSV(origin)
}

// EvalLiteral returns the SV a literal expression evaluates to: the shared
// singleton for null/true/false, a fresh SV for anything else.
func (m *Manager) EvalLiteral(lit *ast.LiteralExpr) ID {
	switch lit.Kind {
	case token.NullLiteral:
		return NullLiteral
	case token.BoolLiteral:
		if lit.Value == "true" {
			return TrueLiteral
		}
		return FalseLiteral
	default:
		return m.NewSV(lit)
	}
}

// ComputedFrom records that sv's value was derived from operands. It has
// no semantic effect on the constraint store; it exists so checkers, the
// branch handler, and diagnostics can trace a boolean result back to the
// operands that produced it.
func (m *Manager) ComputedFrom(id ID, operands ...ID) {
	e, ok := m.entries[id]
	if !ok {
		return
	}
	e.computedFrom = append([]ID(nil), operands...)
}

// Operands returns the operands id was computed from, or nil if it has none
// recorded.
func (m *Manager) Operands(id ID) []ID {
	e, ok := m.entries[id]
	if !ok {
		return nil
	}
	return e.computedFrom
}

// Origin returns the syntax node that produced id, for diagnostics.
func (m *Manager) Origin(id ID) ast.Node {
	e, ok := m.entries[id]
	if !ok {
		return nil
	}
	return e.origin
}
