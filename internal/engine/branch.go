package engine

import (
	"github.com/orimarko/sonar-java/internal/ast"
	"github.com/orimarko/sonar-java/internal/cfg"
	"github.com/orimarko/sonar-java/internal/errors"
	"github.com/orimarko/sonar-java/internal/state"
	"github.com/orimarko/sonar-java/internal/sv"
)

// handleBlockExit dispatches on the block's terminator kind. Blocks with
// no terminator exit unconditionally, which the main loop already
// identified before calling this.
func (r *run) handleBlockExit(block *cfg.Block, ps *state.PS) error {
	switch term := block.Terminator.(type) {

	case *cfg.IfTerminator, *cfg.CondAndTerminator, *cfg.CondOrTerminator, *cfg.ConditionalTerminator:
		return r.handleBranch(block, ps, true)

	case *cfg.WhileTerminator:
		checkPath := !isBooleanLiteral(term.Cond)
		return r.handleBranch(block, ps, checkPath)

	case *cfg.ForTerminator:
		if term.Cond != nil {
			return r.handleBranch(block, ps, false)
		}
		return r.enqueueAllSuccessors(block, ps)

	case *cfg.SynchronizedTerminator:
		next := resetFields(ps, r.svm)
		return r.enqueueAllSuccessors(block, next)

	default:
		// return, throw, goto, switch, try, break, continue: unconditional
		// fan-out over whatever successors the block has (return/throw have
		// none).
		return r.enqueueAllSuccessors(block, ps)
	}
}

// handleBranch splits on the condition's top-of-stack SV via AssumeDual,
// enqueues each feasible successor with the matching boolean literal
// pushed, and notifies condition observers unless checkPath suppresses
// it.
func (r *run) handleBranch(block *cfg.Block, ps *state.PS, checkPath bool) error {
	top, ok := ps.StackTop()
	if !ok {
		return &errors.EngineError{
			Kind:      errors.InternalError,
			Procedure: r.procedure,
			Detail:    "branch terminator reached with an empty operand stack",
		}
	}

	cond := conditionOf(block.Terminator)
	falseStates, trueStates := sv.AssumeDual(r.svm, ps, top)

	for _, s := range falseStates {
		s2 := s.StackValue(sv.FalseLiteral)
		if err := r.enqueue(cfg.Point{Block: block.FalseSuccessor, Index: 0}, s2); err != nil {
			return err
		}
		if checkPath && cond != nil {
			r.dispatcher.NotifyCondition(cond, false)
		}
	}

	for _, s := range trueStates {
		s2 := s.StackValue(sv.TrueLiteral)
		if err := r.enqueue(cfg.Point{Block: block.TrueSuccessor, Index: 0}, s2); err != nil {
			return err
		}
		if checkPath && cond != nil {
			r.dispatcher.NotifyCondition(cond, true)
		}
	}

	return nil
}

func (r *run) enqueueAllSuccessors(block *cfg.Block, ps *state.PS) error {
	for _, succ := range block.Successors {
		if err := r.enqueue(cfg.Point{Block: succ, Index: 0}, ps); err != nil {
			return err
		}
	}
	return nil
}

// conditionOf extracts the branch condition expression from a terminator,
// for the ConditionObserver notification. Only the conditional terminator
// kinds carry one; handleBranch is never called for any other kind.
func conditionOf(t cfg.Terminator) ast.Expr {
	switch term := t.(type) {
	case *cfg.IfTerminator:
		return term.Cond
	case *cfg.CondAndTerminator:
		return term.Cond
	case *cfg.CondOrTerminator:
		return term.Cond
	case *cfg.ConditionalTerminator:
		return term.Cond
	case *cfg.WhileTerminator:
		return term.Cond
	case *cfg.ForTerminator:
		return term.Cond
	default:
		return nil
	}
}
