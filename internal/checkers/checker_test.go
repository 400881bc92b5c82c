package checkers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orimarko/sonar-java/internal/ast"
	"github.com/orimarko/sonar-java/internal/errors"
	"github.com/orimarko/sonar-java/internal/state"
	"github.com/orimarko/sonar-java/internal/sv"
)

// recordingContext is a minimal Context for driving checkers directly.
type recordingContext struct {
	ps       *state.PS
	svm      *sv.Manager
	findings []errors.CompilerError
}

func newRecordingContext() *recordingContext {
	return &recordingContext{ps: state.New(), svm: sv.NewManager()}
}

func (c *recordingContext) ProgramState() *state.PS            { return c.ps }
func (c *recordingContext) SetProgramState(ps *state.PS)       { c.ps = ps }
func (c *recordingContext) ConstraintManager() *sv.Manager     { return c.svm }
func (c *recordingContext) ReportIssue(f errors.CompilerError) { c.findings = append(c.findings, f) }

// scriptedChecker records hook invocations and sinks on demand.
type scriptedChecker struct {
	name  string
	sink  bool
	calls *[]string
}

func (s *scriptedChecker) Init() { *s.calls = append(*s.calls, s.name+".init") }

func (s *scriptedChecker) PreStatement(tree ast.Node, ctx Context) bool {
	*s.calls = append(*s.calls, s.name+".pre")
	return !s.sink
}

func (s *scriptedChecker) PostStatement(tree ast.Node, ctx Context) {
	*s.calls = append(*s.calls, s.name+".post")
}

func (s *scriptedChecker) EndOfExecution(report func(errors.CompilerError)) {
	*s.calls = append(*s.calls, s.name+".end")
}

func TestDispatcherRunsCheckersInRegistrationOrder(t *testing.T) {
	var calls []string
	d := NewDispatcher(
		&scriptedChecker{name: "a", calls: &calls},
		&scriptedChecker{name: "b", calls: &calls},
	)

	ctx := newRecordingContext()
	d.Init()
	assert.True(t, d.PreStatement(nil, ctx))
	d.PostStatement(nil, ctx)
	d.EndOfExecution(ctx.ReportIssue)

	assert.Equal(t, []string{"a.init", "b.init", "a.pre", "b.pre", "a.post", "b.post", "a.end", "b.end"}, calls)
}

func TestDispatcherShortCircuitsOnFirstSink(t *testing.T) {
	var calls []string
	d := NewDispatcher(
		&scriptedChecker{name: "a", sink: true, calls: &calls},
		&scriptedChecker{name: "b", calls: &calls},
	)

	assert.False(t, d.PreStatement(nil, newRecordingContext()))
	assert.Equal(t, []string{"a.pre"}, calls, "the second checker's pre hook must not run")
}

func TestConditionCheckerReportsSinglePolarity(t *testing.T) {
	c := NewConditionAlwaysTrueOrFalseChecker()
	c.Init()

	alwaysTrue := &ast.BinaryExpr{Base: ast.Base{Nid: 1}}
	both := &ast.BinaryExpr{Base: ast.Base{Nid: 2}}
	alwaysFalse := &ast.BinaryExpr{Base: ast.Base{Nid: 3}}

	c.ConditionEvaluated(alwaysTrue, true)
	c.ConditionEvaluated(alwaysTrue, true)
	c.ConditionEvaluated(both, true)
	c.ConditionEvaluated(both, false)
	c.ConditionEvaluated(alwaysFalse, false)

	var findings []errors.CompilerError
	c.EndOfExecution(func(f errors.CompilerError) { findings = append(findings, f) })

	require.Len(t, findings, 2)
	assert.Contains(t, findings[0].Message, "true")
	assert.Contains(t, findings[1].Message, "false")
}

func TestConditionCheckerInitResetsAccumulator(t *testing.T) {
	c := NewConditionAlwaysTrueOrFalseChecker()
	c.Init()
	c.ConditionEvaluated(&ast.BinaryExpr{}, true)

	c.Init()
	var findings []errors.CompilerError
	c.EndOfExecution(func(f errors.CompilerError) { findings = append(findings, f) })
	assert.Empty(t, findings, "state must not leak across procedures")
}

func TestNullDereferenceReportsAndSinksOnKnownNull(t *testing.T) {
	c := NewNullDereferenceChecker()
	c.Init()
	ctx := newRecordingContext()

	receiver := ctx.svm.NewSV(nil)
	ctx.ps = sv.SetSingleConstraint(ctx.ps.StackValue(receiver), receiver, sv.ConstraintNull)

	deref := &ast.FieldAccessExpr{Base: ast.Base{Nid: 1}, Name: "y"}
	assert.False(t, c.PreStatement(deref, ctx), "a known-null receiver sinks the path")
	require.Len(t, ctx.findings, 1)
	assert.Equal(t, errors.ErrorNullDereference, ctx.findings[0].Code)

	// A second state reaching the same site must not double-report.
	assert.False(t, c.PreStatement(deref, ctx))
	assert.Len(t, ctx.findings, 1)
}

func TestNullDereferenceNarrowsUnconstrainedReceiver(t *testing.T) {
	c := NewNullDereferenceChecker()
	c.Init()
	ctx := newRecordingContext()

	receiver := ctx.svm.NewSV(nil)
	ctx.ps = ctx.ps.StackValue(receiver)

	deref := &ast.FieldAccessExpr{Base: ast.Base{Nid: 1}, Name: "y"}
	assert.True(t, c.PreStatement(deref, ctx))
	assert.Empty(t, ctx.findings)

	constraint, ok := ctx.ps.ConstraintOf(receiver)
	require.True(t, ok)
	assert.Equal(t, sv.ConstraintNotNull, constraint, "the surviving path is narrowed to NOT_NULL")
}

func TestNullDereferenceUsesMethodReceiverUnderArguments(t *testing.T) {
	c := NewNullDereferenceChecker()
	c.Init()
	ctx := newRecordingContext()

	receiver := ctx.svm.NewSV(nil)
	arg := ctx.svm.NewSV(nil)
	ctx.ps = sv.SetSingleConstraint(ctx.ps, receiver, sv.ConstraintNull).
		StackValue(receiver).
		StackValue(arg)

	call := &ast.MethodInvocationExpr{
		Base:     ast.Base{Nid: 1},
		Receiver: &ast.Ident{},
		Method:   "m",
		Args:     []ast.Expr{&ast.Ident{}},
	}
	assert.False(t, c.PreStatement(call, ctx))
	assert.Len(t, ctx.findings, 1)
}

func TestNullDereferenceIgnoresClassIdiomAndBareCalls(t *testing.T) {
	c := NewNullDereferenceChecker()
	c.Init()
	ctx := newRecordingContext()

	assert.True(t, c.PreStatement(&ast.FieldAccessExpr{Name: "class"}, ctx))
	assert.True(t, c.PreStatement(&ast.MethodInvocationExpr{Method: "m"}, ctx))
	assert.Empty(t, ctx.findings)
}
