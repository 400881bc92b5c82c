package sv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orimarko/sonar-java/internal/ast"
	"github.com/orimarko/sonar-java/internal/token"
)

// fakeState is a minimal PSLike for exercising the constraint operations
// without pulling in the full program-state package.
type fakeState struct {
	constraints map[ID]Constraint
}

func newFakeState() fakeState {
	return fakeState{constraints: map[ID]Constraint{}}
}

func (f fakeState) ConstraintOf(id ID) (Constraint, bool) {
	c, ok := f.constraints[id]
	return c, ok
}

func (f fakeState) WithConstraint(id ID, c Constraint) fakeState {
	next := make(map[ID]Constraint, len(f.constraints)+1)
	for k, v := range f.constraints {
		next[k] = v
	}
	next[id] = c
	return fakeState{constraints: next}
}

func TestManagerMintsDistinctSVs(t *testing.T) {
	m := NewManager()
	a := m.NewSV(nil)
	b := m.NewSV(nil)
	assert.NotEqual(t, a, b)
	assert.NotContains(t, []ID{NullLiteral, TrueLiteral, FalseLiteral}, a)
}

func TestEvalLiteralSingletons(t *testing.T) {
	m := NewManager()
	assert.Equal(t, NullLiteral, m.EvalLiteral(&ast.LiteralExpr{Kind: token.NullLiteral}))
	assert.Equal(t, TrueLiteral, m.EvalLiteral(&ast.LiteralExpr{Kind: token.BoolLiteral, Value: "true"}))
	assert.Equal(t, FalseLiteral, m.EvalLiteral(&ast.LiteralExpr{Kind: token.BoolLiteral, Value: "false"}))

	i1 := m.EvalLiteral(&ast.LiteralExpr{Kind: token.IntLiteral, Value: "7"})
	i2 := m.EvalLiteral(&ast.LiteralExpr{Kind: token.IntLiteral, Value: "7"})
	assert.NotEqual(t, i1, i2, "non-singleton literals mint fresh SVs each evaluation")
}

func TestComputedFromRecordsProvenance(t *testing.T) {
	m := NewManager()
	a := m.NewSV(nil)
	b := m.NewSV(nil)
	r := m.NewSV(nil)

	m.ComputedFrom(r, a, b)
	assert.Equal(t, []ID{a, b}, m.Operands(r))
	assert.Nil(t, m.Operands(a))
}

func TestSetConstraintAddsRefinesAndPrunes(t *testing.T) {
	m := NewManager()
	id := m.NewSV(nil)
	s0 := newFakeState()

	added := SetConstraint(s0, id, ConstraintNotNull)
	require.Len(t, added, 1)
	c, ok := added[0].ConstraintOf(id)
	require.True(t, ok)
	assert.Equal(t, ConstraintNotNull, c)

	same := SetConstraint(added[0], id, ConstraintNotNull)
	require.Len(t, same, 1, "already-implied constraint returns the state unchanged")

	assert.Empty(t, SetConstraint(added[0], id, ConstraintNull), "opposite constraint is infeasible")
}

func TestSetSingleConstraintPanicsOnInfeasible(t *testing.T) {
	m := NewManager()
	id := m.NewSV(nil)
	s := SetSingleConstraint(newFakeState(), id, ConstraintNull)

	assert.Panics(t, func() { SetSingleConstraint(s, id, ConstraintNotNull) })
}

func TestAssumeDualLiterals(t *testing.T) {
	m := NewManager()
	s := newFakeState()

	f, tr := AssumeDual(m, s, TrueLiteral)
	assert.Empty(t, f)
	assert.Len(t, tr, 1)

	f, tr = AssumeDual(m, s, FalseLiteral)
	assert.Len(t, f, 1)
	assert.Empty(t, tr)

	f, tr = AssumeDual(m, s, NullLiteral)
	assert.Len(t, f, 1)
	assert.Empty(t, tr)
}

func TestAssumeDualUnconstrainedSplitsBothWays(t *testing.T) {
	m := NewManager()
	id := m.NewSV(nil)

	f, tr := AssumeDual(m, newFakeState(), id)
	require.Len(t, f, 1)
	require.Len(t, tr, 1)

	fc, _ := f[0].ConstraintOf(id)
	tc, _ := tr[0].ConstraintOf(id)
	assert.Equal(t, ConstraintNull, fc)
	assert.Equal(t, ConstraintNotNull, tc)

	// Round-trip: re-imposing the complementary constraint on each branch
	// yields the empty set (mutual exclusion).
	assert.Empty(t, SetConstraint(f[0], id, ConstraintNotNull))
	assert.Empty(t, SetConstraint(tr[0], id, ConstraintNull))
}

func TestAssumeDualNullComparisonConstrainsOperand(t *testing.T) {
	m := NewManager()
	x := m.NewSV(nil)

	eq := &ast.BinaryExpr{Op: token.OpEq}
	b := m.NewSV(eq)
	m.ComputedFrom(b, x, NullLiteral)

	f, tr := AssumeDual(m, newFakeState(), b)
	require.Len(t, f, 1)
	require.Len(t, tr, 1)

	fc, _ := f[0].ConstraintOf(x)
	tc, _ := tr[0].ConstraintOf(x)
	assert.Equal(t, ConstraintNotNull, fc, "x == null false means x is not null")
	assert.Equal(t, ConstraintNull, tc, "x == null true means x is null")
}

func TestAssumeDualNotEqualNullPrunesKnownNull(t *testing.T) {
	m := NewManager()
	x := m.NewSV(nil)
	s := SetSingleConstraint(newFakeState(), x, ConstraintNull)

	neq := &ast.BinaryExpr{Op: token.OpNeq}
	b := m.NewSV(neq)
	m.ComputedFrom(b, NullLiteral, x)

	f, tr := AssumeDual(m, s, b)
	assert.Len(t, f, 1, "x != null is false on the known-null path")
	assert.Empty(t, tr, "the true branch is infeasible")
}

func TestAssumeDualIdenticalOperandsDecideOutright(t *testing.T) {
	m := NewManager()
	x := m.NewSV(nil)

	eq := &ast.BinaryExpr{Op: token.OpEq}
	b := m.NewSV(eq)
	m.ComputedFrom(b, x, x)

	f, tr := AssumeDual(m, newFakeState(), b)
	assert.Empty(t, f)
	assert.Len(t, tr, 1, "x == x holds on every path")
}

func TestAssumeDualNegationSwapsBranches(t *testing.T) {
	m := NewManager()
	x := m.NewSV(nil)

	eq := &ast.BinaryExpr{Op: token.OpEq}
	cmp := m.NewSV(eq)
	m.ComputedFrom(cmp, x, NullLiteral)

	not := &ast.UnaryExpr{Op: token.OpNot}
	neg := m.NewSV(not)
	m.ComputedFrom(neg, cmp)

	f, tr := AssumeDual(m, newFakeState(), neg)
	require.Len(t, f, 1)
	require.Len(t, tr, 1)

	fc, _ := f[0].ConstraintOf(x)
	tc, _ := tr[0].ConstraintOf(x)
	assert.Equal(t, ConstraintNull, fc, "!(x == null) false means x is null")
	assert.Equal(t, ConstraintNotNull, tc)
}
