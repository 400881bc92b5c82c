// Package cfg builds the per-procedure control-flow graph the walker
// consumes: basic blocks exposing an ordered element list, an optional
// terminator, and an ordered successor list (with true/false successors
// for conditional blocks). Blocks hold source-level ast.Node elements in
// execution order; there is no PHI or dominance tracking, since the
// engine's exploded graph — not SSA — is what merges paths.
package cfg

import (
	"github.com/orimarko/sonar-java/internal/ast"
	"github.com/orimarko/sonar-java/internal/token"
)

// TerminatorKind classifies how a block ends.
type TerminatorKind int

const (
	TermIf TerminatorKind = iota
	TermCondAnd
	TermCondOr
	TermConditional
	TermWhile
	TermFor
	TermSynchronized
	TermReturn
	TermThrow
	TermGoto
	TermSwitch
	TermTry
	TermBreak
	TermContinue
)

// Terminator ends a basic block.
type Terminator interface {
	Kind() TerminatorKind
}

// IfTerminator is an if-statement's condition evaluation.
type IfTerminator struct{ Cond ast.Expr }

func (*IfTerminator) Kind() TerminatorKind { return TermIf }

// CondAndTerminator is the left operand of a short-circuit `&&`: the true
// successor goes on to evaluate the right operand, the false successor
// skips it. Cond is the left operand just evaluated.
type CondAndTerminator struct{ Cond ast.Expr }

func (*CondAndTerminator) Kind() TerminatorKind { return TermCondAnd }

// CondOrTerminator is the left operand of a short-circuit `||`: the false
// successor goes on to evaluate the right operand, the true successor
// skips it.
type CondOrTerminator struct{ Cond ast.Expr }

func (*CondOrTerminator) Kind() TerminatorKind { return TermCondOr }

// ConditionalTerminator is a ternary conditional expression's condition
// evaluation; each successor evaluates one arm.
type ConditionalTerminator struct{ Cond ast.Expr }

func (*ConditionalTerminator) Kind() TerminatorKind { return TermConditional }

// WhileTerminator is a while-loop's condition evaluation.
type WhileTerminator struct{ Cond ast.Expr }

func (*WhileTerminator) Kind() TerminatorKind { return TermWhile }

// ForTerminator is a for-loop's condition evaluation; Cond is nil when the
// loop has no condition clause.
type ForTerminator struct{ Cond ast.Expr }

func (*ForTerminator) Kind() TerminatorKind { return TermFor }

// SynchronizedTerminator marks entry to a synchronized block; the walker
// resets field bindings here before the unconditional fan-out.
type SynchronizedTerminator struct{ Lock ast.Expr }

func (*SynchronizedTerminator) Kind() TerminatorKind { return TermSynchronized }

// ReturnTerminator ends a procedure path; it has no successors.
type ReturnTerminator struct{ Value ast.Expr }

func (*ReturnTerminator) Kind() TerminatorKind { return TermReturn }

// ThrowTerminator ends a procedure path abnormally; it has no successors.
type ThrowTerminator struct{ Value ast.Expr }

func (*ThrowTerminator) Kind() TerminatorKind { return TermThrow }

// GotoTerminator is an unconditional jump (a labelled goto). A goto whose
// target makes it a dead end (no successors) produces a block the walker
// drops silently.
type GotoTerminator struct{}

func (*GotoTerminator) Kind() TerminatorKind { return TermGoto }

// SwitchTerminator, TryTerminator, BreakTerminator, ContinueTerminator
// all fall into the walker's unconditional fan-out bucket.
type SwitchTerminator struct{}

func (*SwitchTerminator) Kind() TerminatorKind { return TermSwitch }

type TryTerminator struct{}

func (*TryTerminator) Kind() TerminatorKind { return TermTry }

type BreakTerminator struct{}

func (*BreakTerminator) Kind() TerminatorKind { return TermBreak }

type ContinueTerminator struct{}

func (*ContinueTerminator) Kind() TerminatorKind { return TermContinue }

// Block is a maximal straight-line run of elements ending in a terminator
// — or, for a plain fallthrough block, no terminator at all, which the
// walker treats as an unconditional exit. Elements are ast.Node in
// execution order: for an expression statement this is the postorder
// emission of its expression tree; for a declaration it is the
// initializer's elements followed by the declaration node itself.
type Block struct {
	ID             int
	Elements       []ast.Node
	Terminator     Terminator
	Successors     []*Block
	TrueSuccessor  *Block
	FalseSuccessor *Block

	// ExprStmtRoots marks which elements are the outermost expression of an
	// expression-statement (as opposed to a sub-expression reached while
	// evaluating one). The walker clears the operand stack after executing
	// one of these: an ExprStmt's expression is always
	// the last element emitted for that statement, so membership here is
	// exactly "this statement's parent is an expression-statement".
	ExprStmtRoots map[ast.Node]bool
}

// Point is a program point: a block and an index into its elements.
// index == len(elements) denotes the block's terminator/exit.
type Point struct {
	Block *Block
	Index int
}

// AtTerminator reports whether p denotes the block's terminator/exit rather
// than one of its elements.
func (p Point) AtTerminator() bool {
	return p.Index >= len(p.Block.Elements)
}

// CFG is one procedure's control-flow graph.
type CFG struct {
	Entry  *Block
	Blocks []*Block
}

// Build constructs the CFG for fn: a "current open block" cursor threads
// through the statement list, with explicit successor wiring and
// break/continue targets passed down.
func Build(fn *ast.Function) *CFG {
	b := &builder{}
	exit := b.newBlock()
	entry := b.newBlock()

	cur := entry
	if fn.Body != nil {
		cur = b.buildStmts(fn.Body.Stmts, cur, exit, nil, nil)
	}
	if cur != nil {
		linkFallthrough(cur, exit)
	}

	return &CFG{Entry: entry, Blocks: b.blocks}
}

type builder struct {
	blocks []*Block
}

func (b *builder) newBlock() *Block {
	blk := &Block{ID: len(b.blocks)}
	b.blocks = append(b.blocks, blk)
	return blk
}

func linkFallthrough(from, to *Block) {
	from.Successors = append(from.Successors, to)
}

// buildStmts threads a statement sequence through cur, returning the still-open
// block that control falls through to after the sequence (nil if every path
// out of the sequence already ended in a terminator with no fallthrough).
func (b *builder) buildStmts(stmts []ast.Stmt, cur, exit, brk, cont *Block) *Block {
	for _, s := range stmts {
		if cur == nil {
			// Code after an unconditional terminator (return/throw/break/
			// continue) is unreachable; the FlowAnalyzer lint pass reports
			// it separately. The CFG simply stops wiring blocks for it.
			break
		}
		cur = b.buildStmt(s, cur, exit, brk, cont)
	}
	return cur
}

func (b *builder) buildStmt(s ast.Stmt, cur, exit, brk, cont *Block) *Block {
	switch st := s.(type) {
	case *ast.BlockStmt:
		return b.buildStmts(st.Stmts, cur, exit, brk, cont)

	case *ast.VarDeclStmt:
		if st.Init != nil {
			cur = b.emitExpr(cur, st.Init)
		}
		cur.Elements = append(cur.Elements, st)
		return cur

	case *ast.ExprStmt:
		cur = b.emitExpr(cur, st.Expr)
		if cur.ExprStmtRoots == nil {
			cur.ExprStmtRoots = make(map[ast.Node]bool)
		}
		cur.ExprStmtRoots[st.Expr] = true
		return cur

	case *ast.ReturnStmt:
		if st.Value != nil {
			cur = b.emitExpr(cur, st.Value)
		}
		cur.Terminator = &ReturnTerminator{Value: st.Value}
		return nil

	case *ast.ThrowStmt:
		if st.Value != nil {
			cur = b.emitExpr(cur, st.Value)
		}
		cur.Terminator = &ThrowTerminator{Value: st.Value}
		return nil

	case *ast.BreakStmt:
		cur.Terminator = &BreakTerminator{}
		if brk != nil {
			cur.Successors = append(cur.Successors, brk)
		}
		return nil

	case *ast.ContinueStmt:
		cur.Terminator = &ContinueTerminator{}
		if cont != nil {
			cur.Successors = append(cur.Successors, cont)
		}
		return nil

	case *ast.IfStmt:
		return b.buildIf(st, cur, exit, brk, cont)

	case *ast.WhileStmt:
		return b.buildWhile(st, cur, exit)

	case *ast.ForStmt:
		return b.buildFor(st, cur, exit, brk, cont)

	case *ast.ForEachStmt:
		return b.buildForEach(st, cur, exit)

	case *ast.SynchronizedStmt:
		return b.buildSynchronized(st, cur, exit, brk, cont)

	case *ast.TryStmt:
		cur = b.buildStmt(st.Body, cur, exit, brk, cont)
		if st.Finally != nil && cur != nil {
			cur = b.buildStmt(st.Finally, cur, exit, brk, cont)
		}
		return cur

	default:
		return cur
	}
}

func (b *builder) buildIf(st *ast.IfStmt, cur, exit, brk, cont *Block) *Block {
	after := b.newBlock()
	thenBlock := b.newBlock()

	falseTarget := after
	var elseBlock *Block
	if st.Else != nil {
		elseBlock = b.newBlock()
		falseTarget = elseBlock
	}

	b.lowerCondition(st.Cond, cur, thenBlock, falseTarget, func(c ast.Expr) Terminator {
		return &IfTerminator{Cond: c}
	})

	if thenOpen := b.buildStmt(st.Then, thenBlock, exit, brk, cont); thenOpen != nil {
		linkFallthrough(thenOpen, after)
	}
	if elseBlock != nil {
		if elseOpen := b.buildStmt(st.Else, elseBlock, exit, brk, cont); elseOpen != nil {
			linkFallthrough(elseOpen, after)
		}
	}

	return after
}

func (b *builder) buildWhile(st *ast.WhileStmt, cur, exit *Block) *Block {
	header := b.newBlock()
	linkFallthrough(cur, header)

	after := b.newBlock()
	body := b.newBlock()
	b.lowerCondition(st.Cond, header, body, after, func(c ast.Expr) Terminator {
		return &WhileTerminator{Cond: c}
	})

	if bodyOpen := b.buildStmt(st.Body, body, exit, after, header); bodyOpen != nil {
		linkFallthrough(bodyOpen, header)
	}

	return after
}

func (b *builder) buildFor(st *ast.ForStmt, cur, exit, brk, cont *Block) *Block {
	if st.Init != nil {
		cur = b.buildStmt(st.Init, cur, exit, brk, cont)
	}

	header := b.newBlock()
	linkFallthrough(cur, header)

	update := b.newBlock()
	after := b.newBlock()
	body := b.newBlock()

	if st.Cond != nil {
		b.lowerCondition(st.Cond, header, body, after, func(c ast.Expr) Terminator {
			return &ForTerminator{Cond: c}
		})
	} else {
		header.Terminator = &ForTerminator{Cond: nil}
		header.Successors = append(header.Successors, body)
	}

	if bodyOpen := b.buildStmt(st.Body, body, exit, after, update); bodyOpen != nil {
		linkFallthrough(bodyOpen, update)
	}

	updateEnd := update
	if st.Update != nil {
		updateEnd = b.emitExpr(update, st.Update)
	}
	linkFallthrough(updateEnd, header)

	return after
}

// buildForEach lowers the enhanced for: the iterable is evaluated once,
// then a header with two unconditional successors models "another element
// or exhausted" — there is no condition expression to branch on. Each body
// entry re-declares the loop variable, binding it to a fresh unknown
// value. The iterable's own value stays on the operand stack; nothing
// consumes a collection, and the visit bound caps the residue.
func (b *builder) buildForEach(st *ast.ForEachStmt, cur, exit *Block) *Block {
	cur = b.emitExpr(cur, st.Iterable)

	header := b.newBlock()
	linkFallthrough(cur, header)

	after := b.newBlock()
	body := b.newBlock()
	header.Successors = append(header.Successors, body, after)

	body.Elements = append(body.Elements, st.Decl)
	if bodyOpen := b.buildStmt(st.Body, body, exit, after, header); bodyOpen != nil {
		linkFallthrough(bodyOpen, header)
	}

	return after
}

func (b *builder) buildSynchronized(st *ast.SynchronizedStmt, cur, exit, brk, cont *Block) *Block {
	cur = b.emitExpr(cur, st.Lock)
	cur.Terminator = &SynchronizedTerminator{Lock: st.Lock}

	body := b.newBlock()
	cur.Successors = append(cur.Successors, body)

	after := b.newBlock()
	if bodyOpen := b.buildStmt(st.Body, body, exit, brk, cont); bodyOpen != nil {
		linkFallthrough(bodyOpen, after)
	}
	return after
}

// lowerCondition threads cond's evaluation starting in cur, wiring the
// branch to trueTarget/falseTarget. Short-circuit operators get their own
// blocks with CondAnd/CondOr terminators so each operand branches
// separately; the rightmost operand's block takes mkTerm's terminator, so the
// construct that owns the condition (if, while, for, ternary) terminates
// the final block.
func (b *builder) lowerCondition(cond ast.Expr, cur, trueTarget, falseTarget *Block, mkTerm func(ast.Expr) Terminator) {
	switch ex := cond.(type) {
	case *ast.ParenExpr:
		b.lowerCondition(ex.Value, cur, trueTarget, falseTarget, mkTerm)
		return

	case *ast.BinaryExpr:
		switch ex.Op {
		case token.OpAndAnd:
			rhs := b.newBlock()
			b.lowerCondition(ex.Left, cur, rhs, falseTarget, func(c ast.Expr) Terminator {
				return &CondAndTerminator{Cond: c}
			})
			b.lowerCondition(ex.Right, rhs, trueTarget, falseTarget, mkTerm)
			return
		case token.OpOrOr:
			rhs := b.newBlock()
			b.lowerCondition(ex.Left, cur, trueTarget, rhs, func(c ast.Expr) Terminator {
				return &CondOrTerminator{Cond: c}
			})
			b.lowerCondition(ex.Right, rhs, trueTarget, falseTarget, mkTerm)
			return
		}
	}

	cur = b.emitExpr(cur, cond)
	cur.Terminator = mkTerm(cond)
	cur.TrueSuccessor = trueTarget
	cur.FalseSuccessor = falseTarget
	cur.Successors = append(cur.Successors, trueTarget, falseTarget)
}

// emitExpr appends e's evaluation to cur in postorder — operands before the
// node that consumes them, matching the deepest-to-top pop order of every
// per-kind transfer — and returns the block
// evaluation falls out of. That is cur itself except when e contains a
// conditional expression, which needs blocks of its own.
func (b *builder) emitExpr(cur *Block, e ast.Expr) *Block {
	switch ex := e.(type) {
	case *ast.ParenExpr:
		// Transparent: never reaches the CFG as its own element.
		return b.emitExpr(cur, ex.Value)

	case *ast.ConditionalExpr:
		return b.emitConditional(cur, ex)

	case *ast.BinaryExpr:
		cur = b.emitExpr(cur, ex.Left)
		cur = b.emitExpr(cur, ex.Right)

	case *ast.UnaryExpr:
		cur = b.emitExpr(cur, ex.Value)

	case *ast.AssignExpr:
		cur = b.emitExpr(cur, ex.Target)
		cur = b.emitExpr(cur, ex.Value)

	case *ast.MethodInvocationExpr:
		if ex.Receiver != nil {
			cur = b.emitExpr(cur, ex.Receiver)
		} else {
			selectorName := ex.Qualifier
			if selectorName == "" {
				selectorName = "this"
			}
			cur.Elements = append(cur.Elements, &ast.Ident{Base: ex.Base, Name: selectorName})
		}
		for _, a := range ex.Args {
			cur = b.emitExpr(cur, a)
		}

	case *ast.FieldAccessExpr:
		if ex.Name != "class" {
			// The .class idiom has no receiver on the stack.
			cur = b.emitExpr(cur, ex.Target)
		}

	case *ast.ArrayAccessExpr:
		cur = b.emitExpr(cur, ex.Array)
		cur = b.emitExpr(cur, ex.Index)

	case *ast.NewArrayExpr:
		for _, init := range ex.Initializers {
			cur = b.emitExpr(cur, init)
		}

	case *ast.NewClassExpr:
		for _, a := range ex.Args {
			cur = b.emitExpr(cur, a)
		}

	case *ast.TypeCastExpr:
		cur = b.emitExpr(cur, ex.Value)

	case *ast.InstanceOfExpr:
		cur = b.emitExpr(cur, ex.Value)

		// Ident, LiteralExpr, LambdaExpr, MethodReferenceExpr: leaves that
		// consume no operands.
	}

	cur.Elements = append(cur.Elements, e)
	return cur
}

// emitConditional lowers `cond ? then : else` into a branch over the arms.
// The node itself is appended after the join as a stackless marker: the
// taken arm's value is already on top of the stack, so the transfer for
// ConditionalExpr is a no-op and the result simply flows through.
func (b *builder) emitConditional(cur *Block, ex *ast.ConditionalExpr) *Block {
	thenBlock := b.newBlock()
	elseBlock := b.newBlock()
	b.lowerCondition(ex.Cond, cur, thenBlock, elseBlock, func(c ast.Expr) Terminator {
		return &ConditionalTerminator{Cond: c}
	})

	thenEnd := b.emitExpr(thenBlock, ex.Then)
	elseEnd := b.emitExpr(elseBlock, ex.Else)

	join := b.newBlock()
	linkFallthrough(thenEnd, join)
	linkFallthrough(elseEnd, join)
	join.Elements = append(join.Elements, ex)
	return join
}
