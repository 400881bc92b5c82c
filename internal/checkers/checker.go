// Package checkers implements the checker dispatcher: the pre/post-
// statement hook protocol that lets pluggable checkers observe state
// transitions and veto further exploration of a path.
//
// Rather than handing checkers a back-reference to the walker, each hook
// call receives an explicit, narrow Context — exposing only the program
// state, the constraint manager, and a report sink — so this package never
// imports internal/engine and the walker never imports a checker's
// internals beyond this interface.
package checkers

import (
	"github.com/orimarko/sonar-java/internal/ast"
	"github.com/orimarko/sonar-java/internal/errors"
	"github.com/orimarko/sonar-java/internal/state"
	"github.com/orimarko/sonar-java/internal/sv"
)

// Context is the engine context passed to every hook call.
// Checkers read the current program state, may replace it (the
// null-dereference checker narrows it to the NOT_NULL-constrained
// successor), and report findings through ReportIssue.
type Context interface {
	ProgramState() *state.PS
	SetProgramState(ps *state.PS)
	ConstraintManager() *sv.Manager
	ReportIssue(finding errors.CompilerError)
}

// Checker is the capability interface every checker implements.
type Checker interface {
	// Init resets any per-procedure accumulator. Called once before
	// exploration of each procedure begins.
	Init()
	// PreStatement runs before the kind-specific transfer effect. Returning
	// false sinks exploration at this node: no successors are enqueued.
	PreStatement(tree ast.Node, ctx Context) bool
	// PostStatement runs after the kind-specific transfer effect. It has no
	// veto.
	PostStatement(tree ast.Node, ctx Context)
	// EndOfExecution is called once exploration of a procedure finishes,
	// successfully or via a bounded abort. report is the same sink
	// ReportIssue delegates to, available here since no single Context
	// (tied to one node) makes sense at end-of-execution.
	EndOfExecution(report func(errors.CompilerError))
}

// ConditionObserver is an optional capability a Checker may additionally
// implement to be notified of handleBranch's evaluatedToTrue/False
// events. It is not part of Checker itself because most checkers
// have no use for it — an optional-interface check at the call site (the
// same pattern net/http and io use for upgrading a Writer) is a better fit
// here than growing the closed Checker interface for one observer.
type ConditionObserver interface {
	ConditionEvaluated(cond ast.Expr, result bool)
}

// Dispatcher wraps an ordered list of checkers and runs them in
// registration order, short-circuiting PreStatement on the first sink.
type Dispatcher struct {
	checkers []Checker
}

// NewDispatcher builds a dispatcher over checkers, in the order their
// hooks will run.
func NewDispatcher(checkers ...Checker) *Dispatcher {
	return &Dispatcher{checkers: checkers}
}

// Init resets every checker for a fresh procedure.
func (d *Dispatcher) Init() {
	for _, c := range d.checkers {
		c.Init()
	}
}

// PreStatement runs each checker's PreStatement hook in order, stopping at
// the first one that sinks.
func (d *Dispatcher) PreStatement(tree ast.Node, ctx Context) bool {
	for _, c := range d.checkers {
		if !c.PreStatement(tree, ctx) {
			return false
		}
	}
	return true
}

// PostStatement runs every checker's PostStatement hook; there is no sink
// at this stage.
func (d *Dispatcher) PostStatement(tree ast.Node, ctx Context) {
	for _, c := range d.checkers {
		c.PostStatement(tree, ctx)
	}
}

// NotifyCondition delivers a branch-handler evaluatedToTrue/False event
// to every checker that implements ConditionObserver.
func (d *Dispatcher) NotifyCondition(cond ast.Expr, result bool) {
	for _, c := range d.checkers {
		if observer, ok := c.(ConditionObserver); ok {
			observer.ConditionEvaluated(cond, result)
		}
	}
}

// EndOfExecution notifies every checker that the procedure finished.
func (d *Dispatcher) EndOfExecution(report func(errors.CompilerError)) {
	for _, c := range d.checkers {
		c.EndOfExecution(report)
	}
}
