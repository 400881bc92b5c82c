package checkers

import (
	"github.com/orimarko/sonar-java/internal/ast"
	"github.com/orimarko/sonar-java/internal/errors"
	"github.com/orimarko/sonar-java/internal/sv"
)

// NullDereferenceChecker splits the receiver on nullness at every
// member-select and method-invocation.
// A receiver the current path has pinned to NULL is reported and sinks;
// any other receiver has the NOT_NULL constraint imposed and the path
// proceeds with the narrowed state. It does NOT report merely-unconstrained
// receivers: a value nothing ever compared against null carries no
// evidence either way, and flagging it would drown real findings.
type NullDereferenceChecker struct {
	// reported dedupes findings per dereference site: several explored
	// states can reach the same tree with the NULL constraint (e.g. the
	// nullable-parameter fan-out), and one issue per site is what the
	// diagnostics sink expects.
	reported map[ast.NodeID]bool
}

// NewNullDereferenceChecker constructs the checker.
func NewNullDereferenceChecker() *NullDereferenceChecker {
	return &NullDereferenceChecker{}
}

func (c *NullDereferenceChecker) Init() {
	c.reported = make(map[ast.NodeID]bool)
}

func (c *NullDereferenceChecker) PreStatement(tree ast.Node, ctx Context) bool {
	depth, ok := receiverStackDepth(tree)
	if !ok {
		return true
	}

	ps := ctx.ProgramState()
	receiver, ok := ps.PeekAt(depth)
	if !ok {
		return true
	}

	if constraint, has := ps.ConstraintOf(receiver); receiver == sv.NullLiteral || (has && constraint == sv.ConstraintNull) {
		if !c.reported[tree.ID()] {
			c.reported[tree.ID()] = true
			ctx.ReportIssue(errors.NullDereference(tree.NodePos()))
		}
		return false
	}

	ctx.SetProgramState(sv.SetSingleConstraint(ps, receiver, sv.ConstraintNotNull))
	return true
}

func (c *NullDereferenceChecker) PostStatement(tree ast.Node, ctx Context) {}

func (c *NullDereferenceChecker) EndOfExecution(report func(errors.CompilerError)) {}

// receiverStackDepth reports how far below the top of the operand stack the
// dereferenced receiver's SV sits, at the moment tree's own pre-statement
// hook fires (i.e. before tree's kind-specific effect has popped anything).
// A field access's target is its only operand (depth 0, the current top).
// A method invocation's receiver was pushed first, before its arguments, so
// it sits len(Args) slots below the top.
func receiverStackDepth(tree ast.Node) (int, bool) {
	switch t := tree.(type) {
	case *ast.FieldAccessExpr:
		if t.Name == "class" {
			return 0, false
		}
		return 0, true
	case *ast.MethodInvocationExpr:
		if t.Receiver == nil {
			return 0, false
		}
		return len(t.Args), true
	default:
		return 0, false
	}
}
