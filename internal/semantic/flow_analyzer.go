// FlowAnalyzer is the unreachable-code / missing-return lint pass that
// runs alongside the engine's own checkers: a structural, single-pass walk
// of the AST rather than an exploded-graph traversal, since these two
// findings need only straight-line reachability, not path-sensitive
// state.
package semantic

import (
	"github.com/orimarko/sonar-java/internal/ast"
	"github.com/orimarko/sonar-java/internal/errors"
)

// FlowAnalyzer performs a single pass per function, independent of the
// symbolic execution engine: it flags code that can never run (it follows
// an unconditional return/throw/break/continue in the same block) and
// functions that declare a non-void return type but have a path that falls
// off the end of the body without returning.
type FlowAnalyzer struct{}

// NewFlowAnalyzer creates a flow analyzer.
func NewFlowAnalyzer() *FlowAnalyzer {
	return &FlowAnalyzer{}
}

// AnalyzeFunction returns the unreachable-code and missing-return findings
// for fn. It does not mutate fn and keeps no state between calls.
func (fa *FlowAnalyzer) AnalyzeFunction(fn *ast.Function) []errors.CompilerError {
	if fn.Body == nil {
		return nil
	}

	var findings []errors.CompilerError
	terminates := fa.walkBlock(fn.Body, &findings)

	if fn.ReturnType != nil && !terminates {
		findings = append(findings, errors.MissingReturn(fn.Name, fn.ReturnType.String(), fn.Body.NodeEndPos()))
	}

	return findings
}

// walkBlock reports unreachable code within block and returns whether every
// path through it terminates (returns, throws, breaks, or continues) —
// which is exactly what a caller needs to know to decide whether code
// following an if/while/for is itself reachable.
func (fa *FlowAnalyzer) walkBlock(block *ast.BlockStmt, findings *[]errors.CompilerError) bool {
	terminated := false
	for _, stmt := range block.Stmts {
		if terminated {
			*findings = append(*findings, errors.NewUnreachableCode(stmt.NodePos()))
			break // first unreachable statement only, to keep the noise down
		}
		if fa.walkStmt(stmt, findings) {
			terminated = true
		}
	}
	return terminated
}

// walkStmt reports unreachable code nested inside stmt and returns whether
// stmt itself unconditionally terminates the block it's in.
func (fa *FlowAnalyzer) walkStmt(stmt ast.Stmt, findings *[]errors.CompilerError) bool {
	switch s := stmt.(type) {
	case *ast.ReturnStmt, *ast.ThrowStmt, *ast.BreakStmt, *ast.ContinueStmt:
		return true

	case *ast.BlockStmt:
		return fa.walkBlock(s, findings)

	case *ast.IfStmt:
		thenTerminates := fa.walkStmt(s.Then, findings)
		if s.Else == nil {
			return false
		}
		elseTerminates := fa.walkStmt(s.Else, findings)
		return thenTerminates && elseTerminates

	case *ast.WhileStmt:
		fa.walkStmt(s.Body, findings)
		// A while loop may execute zero times unless its condition is the
		// literal `true`, so it never guarantees termination of the
		// enclosing block on its own.
		return false

	case *ast.ForStmt:
		fa.walkStmt(s.Body, findings)
		return false

	case *ast.ForEachStmt:
		// An empty iterable means zero iterations, so the loop guarantees
		// nothing to the enclosing block.
		fa.walkStmt(s.Body, findings)
		return false

	case *ast.SynchronizedStmt:
		return fa.walkStmt(s.Body, findings)

	case *ast.TryStmt:
		fa.walkStmt(s.Body, findings)
		if s.Finally != nil {
			return fa.walkStmt(s.Finally, findings)
		}
		return false

	default:
		return false
	}
}
