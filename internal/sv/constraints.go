package sv

import (
	"github.com/orimarko/sonar-java/internal/ast"
	"github.com/orimarko/sonar-java/internal/token"
)

// PSLike is the narrow view into a program state that the constraint
// operations below need: read/write access to the constraint store keyed
// by SV. internal/state.PS implements this generically over itself, which
// lets SetConstraint/AssumeDual live in this package without internal/sv
// importing internal/state (state already depends on sv for the
// ID/Constraint types it stores).
type PSLike[S any] interface {
	ConstraintOf(id ID) (Constraint, bool)
	WithConstraint(id ID, c Constraint) S
}

// SetConstraint returns the list of successor states consistent with id
// having constraint kind: empty if the state already implies the opposite
// (infeasible), the state unchanged if it already implies kind, or the
// state with the new constraint added otherwise.
func SetConstraint[S PSLike[S]](state S, id ID, kind Constraint) []S {
	if existing, ok := state.ConstraintOf(id); ok {
		if existing == kind {
			return []S{state}
		}
		if existing == kind.Opposite() {
			return nil
		}
	}
	return []S{state.WithConstraint(id, kind)}
}

// SetSingleConstraint is SetConstraint asserting exactly one successor
// exists.
func SetSingleConstraint[S PSLike[S]](state S, id ID, kind Constraint) S {
	states := SetConstraint(state, id, kind)
	if len(states) != 1 {
		panic("sv: set_single_constraint: expected exactly one successor state")
	}
	return states[0]
}

// AssumeDual inspects top — the SV on top of the stack, which this
// operation does not pop — and splits state into its false-branch-feasible
// and true-branch-feasible successors. The literal singletons are decided
// outright. A top
// whose provenance records a null comparison or a negation imposes the
// constraint on its operand instead — this is how a `x == null` guard
// teaches the store about x. Identical operands of ==/!= decide the
// comparison outright. Any other SV is split by the one constraint domain
// this engine tracks, nullness: NULL is "false-like", NOT_NULL is
// "true-like".
func AssumeDual[S PSLike[S]](m *Manager, state S, top ID) (falseStates, trueStates []S) {
	switch top {
	case TrueLiteral:
		return nil, []S{state}
	case FalseLiteral, NullLiteral:
		return []S{state}, nil
	}

	switch origin := m.Origin(top).(type) {
	case *ast.BinaryExpr:
		if ops := m.Operands(top); len(ops) == 2 && (origin.Op == token.OpEq || origin.Op == token.OpNeq) {
			if f, t, ok := assumeEquality(state, origin.Op == token.OpEq, ops[0], ops[1]); ok {
				return f, t
			}
		}
	case *ast.UnaryExpr:
		if ops := m.Operands(top); origin.Op == token.OpNot && len(ops) == 1 {
			f, t := AssumeDual(m, state, ops[0])
			return t, f
		}
	}

	return SetConstraint(state, top, ConstraintNull), SetConstraint(state, top, ConstraintNotNull)
}

// assumeEquality refines state through an ==/!= whose operands are known.
// Identical SVs compare equal on every path; a comparison against the null
// literal imposes the matching nullness constraint on the other operand.
// Anything else reports ok=false and falls back to the caller's default
// split.
func assumeEquality[S PSLike[S]](state S, isEq bool, a, b ID) (falseStates, trueStates []S, ok bool) {
	if a == b {
		if isEq {
			return nil, []S{state}, true
		}
		return []S{state}, nil, true
	}

	other := ID(0)
	switch {
	case a == NullLiteral:
		other = b
	case b == NullLiteral:
		other = a
	default:
		return nil, nil, false
	}

	isNull := SetConstraint(state, other, ConstraintNull)
	notNull := SetConstraint(state, other, ConstraintNotNull)
	if isEq {
		return notNull, isNull, true
	}
	return isNull, notNull, true
}
