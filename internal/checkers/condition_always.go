package checkers

import (
	"github.com/orimarko/sonar-java/internal/ast"
	"github.com/orimarko/sonar-java/internal/errors"
)

// conditionOutcomes tracks which polarities a single condition node was
// observed to evaluate to across an entire procedure's exploration.
type conditionOutcomes struct {
	node     ast.Expr
	sawTrue  bool
	sawFalse bool
}

// ConditionAlwaysTrueOrFalseChecker records evaluatedToTrue /
// evaluatedToFalse per condition node via ConditionEvaluated and, at end
// of execution, reports every condition observed in only one polarity.
type ConditionAlwaysTrueOrFalseChecker struct {
	outcomes map[ast.Expr]*conditionOutcomes
	order    []ast.Expr // insertion order, for deterministic reporting
}

// NewConditionAlwaysTrueOrFalseChecker constructs the checker.
func NewConditionAlwaysTrueOrFalseChecker() *ConditionAlwaysTrueOrFalseChecker {
	return &ConditionAlwaysTrueOrFalseChecker{}
}

// Init resets the accumulator. Required before each procedure: this
// checker's state must not leak across procedures.
func (c *ConditionAlwaysTrueOrFalseChecker) Init() {
	c.outcomes = make(map[ast.Expr]*conditionOutcomes)
	c.order = nil
}

func (c *ConditionAlwaysTrueOrFalseChecker) PreStatement(tree ast.Node, ctx Context) bool {
	return true
}

func (c *ConditionAlwaysTrueOrFalseChecker) PostStatement(tree ast.Node, ctx Context) {}

// ConditionEvaluated implements ConditionObserver: it is the branch
// handler's direct notification channel, not a pre/post-statement hook.
func (c *ConditionAlwaysTrueOrFalseChecker) ConditionEvaluated(cond ast.Expr, result bool) {
	o, ok := c.outcomes[cond]
	if !ok {
		o = &conditionOutcomes{node: cond}
		c.outcomes[cond] = o
		c.order = append(c.order, cond)
	}
	if result {
		o.sawTrue = true
	} else {
		o.sawFalse = true
	}
}

func (c *ConditionAlwaysTrueOrFalseChecker) EndOfExecution(report func(errors.CompilerError)) {
	for _, cond := range c.order {
		o := c.outcomes[cond]
		if o.sawTrue && !o.sawFalse {
			report(errors.ConditionAlwaysConstant(cond.NodePos(), true))
		} else if o.sawFalse && !o.sawTrue {
			report(errors.ConditionAlwaysConstant(cond.NodePos(), false))
		}
	}
}
