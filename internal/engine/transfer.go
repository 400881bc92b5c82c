package engine

import (
	"fmt"
	"sort"

	"github.com/orimarko/sonar-java/internal/ast"
	"github.com/orimarko/sonar-java/internal/errors"
	"github.com/orimarko/sonar-java/internal/semantic"
	"github.com/orimarko/sonar-java/internal/state"
	"github.com/orimarko/sonar-java/internal/sv"
	"github.com/orimarko/sonar-java/internal/token"
)

// transferStatement runs the full per-statement protocol: dispatcher
// pre-statement (with sink), the kind-specific effect, dispatcher
// post-statement. A nil return (with nil error) means a checker sank this
// node. Stack-cleanup after an expression-statement's root is the
// caller's responsibility (engine.go checks block.ExprStmtRoots), since
// it depends on CFG-level context this function doesn't have. A panic
// raised while processing the element (an operand-stack underflow in
// Unstack, an infeasible SetSingleConstraint) is returned as an
// errors.InternalError for this procedure.
func (r *run) transferStatement(element ast.Node, ps *state.PS) (next *state.PS, err error) {
	defer func() {
		if p := recover(); p != nil {
			next, err = nil, &errors.EngineError{Kind: errors.InternalError, Procedure: r.procedure, Detail: fmt.Sprint(p)}
		}
	}()

	r.ctx.ps = ps

	if !r.dispatcher.PreStatement(element, r.ctx) {
		return nil, nil
	}

	next, err = r.applyEffect(element, r.ctx.ps)
	if err != nil {
		return nil, err
	}

	r.ctx.ps = next
	r.dispatcher.PostStatement(element, r.ctx)
	return r.ctx.ps, nil
}

// applyEffect is the kind-specific effect of a statement on the state.
// Pops are always deepest-to-top, matching the postorder emission in
// internal/cfg.
func (r *run) applyEffect(element ast.Node, ps *state.PS) (*state.PS, error) {
	switch n := element.(type) {

	case *ast.Ident:
		sym := r.oracle.Resolve(r.table, n.Name)
		if id, ok := ps.Get(sym); ok {
			return ps.StackValue(id), nil
		}
		id := r.svm.NewSV(n)
		return ps.Put(sym, id).StackValue(id), nil

	case *ast.LiteralExpr:
		return ps.StackValue(r.svm.EvalLiteral(n)), nil

	case *ast.BinaryExpr:
		ps2, popped := ps.Unstack(2)
		id := r.svm.NewSV(n)
		r.svm.ComputedFrom(id, popped[0], popped[1])
		return ps2.StackValue(id), nil

	case *ast.UnaryExpr:
		ps2, popped := ps.Unstack(1)
		id := r.svm.NewSV(n)
		r.svm.ComputedFrom(id, popped[0])
		return ps2.StackValue(id), nil

	case *ast.InstanceOfExpr:
		ps2, popped := ps.Unstack(1)
		id := r.svm.NewSV(n)
		r.svm.ComputedFrom(id, popped[0])
		return ps2.StackValue(id), nil

	case *ast.AssignExpr:
		ident, ok := n.Target.(*ast.Ident)
		if !ok {
			// Field/array-element assignment targets update no binding in
			// this version; the value was already evaluated, so just drop
			// the target slot and push the value through.
			ps2, popped := ps.Unstack(2)
			return ps2.StackValue(popped[len(popped)-1]), nil
		}
		sym := r.oracle.Resolve(r.table, ident.Name)
		ps2, popped := ps.Unstack(2)
		value := popped[len(popped)-1]
		return ps2.Put(sym, value).StackValue(value), nil

	case *ast.ArrayAccessExpr:
		ps2, _ := ps.Unstack(2)
		id := r.svm.NewSV(n)
		return ps2.StackValue(id), nil

	case *ast.NewArrayExpr:
		ps2, _ := ps.Unstack(len(n.Initializers))
		id := r.svm.NewSV(n)
		return sv.SetSingleConstraint(ps2, id, sv.ConstraintNotNull).StackValue(id), nil

	case *ast.NewClassExpr:
		ps2, _ := ps.Unstack(len(n.Args))
		id := r.svm.NewSV(n)
		return sv.SetSingleConstraint(ps2, id, sv.ConstraintNotNull).StackValue(id), nil

	case *ast.TypeCastExpr:
		if r.oracle.IsPrimitive(n.Type) {
			ps2, _ := ps.Unstack(1)
			id := r.svm.NewSV(n)
			return ps2.StackValue(id), nil
		}
		return ps, nil

	case *ast.MethodInvocationExpr:
		next := ps
		if n.IsLocal() {
			next = resetFields(next, r.svm)
		}
		next, _ = next.Unstack(len(n.Args) + 1)
		id := r.svm.NewSV(n)
		return next.StackValue(id), nil

	case *ast.FieldAccessExpr:
		if n.Name == "class" {
			return ps.StackValue(r.svm.NewSV(n)), nil
		}
		ps2, _ := ps.Unstack(1)
		return ps2.StackValue(r.svm.NewSV(n)), nil

	case *ast.ConditionalExpr:
		// Join marker after a lowered ternary: the taken arm's value is
		// already on top of the stack and IS the result. No stack effect;
		// pre/post hooks still fired around this.
		return ps, nil

	case *ast.LambdaExpr:
		return ps.StackValue(r.svm.NewSV(n)), nil

	case *ast.MethodReferenceExpr:
		return ps.StackValue(r.svm.NewSV(n)), nil

	case *ast.VarDeclStmt:
		return r.applyVarDecl(n, ps)

	default:
		return nil, &errors.EngineError{
			Kind:      errors.InternalError,
			Procedure: r.procedure,
			Detail:    "unexpected statement kind reached a CFG element",
		}
	}
}

// applyVarDecl binds a declared variable. Local symbols are cached
// per-declaration (not re-minted) so repeated visits across different
// explored paths bind the same *semantic.Symbol, which PS equality
// depends on.
func (r *run) applyVarDecl(n *ast.VarDeclStmt, ps *state.PS) (*state.PS, error) {
	sym := r.localSymbol(n)

	if n.Init != nil {
		ps2, popped := ps.Unstack(1)
		return ps2.Put(sym, popped[0]), nil
	}

	if n.ForEach {
		return ps.Put(sym, r.svm.NewSV(n)), nil
	}

	if r.oracle.IsExactlyBoolean(n.Type) {
		return ps.Put(sym, sv.FalseLiteral), nil
	}
	if !r.oracle.IsPrimitive(n.Type) {
		return ps.Put(sym, sv.NullLiteral), nil
	}
	// Primitive numeric type with no initializer: no binding is made.
	return ps, nil
}

func (r *run) localSymbol(decl *ast.VarDeclStmt) *semantic.Symbol {
	if sym, ok := r.locals[decl]; ok {
		return sym
	}
	// Defining the local in the scope table is what lets a later Ident
	// transfer resolve the same Symbol the declaration bound, instead of
	// falling through to the field path.
	sym := r.table.DefineLocal(decl.Name, decl.Type, decl)
	r.locals[decl] = sym
	return sym
}

// resetFields is the field haircut: every currently-bound field symbol
// is replaced with a fresh, unconstrained SV. Iteration is sorted by name
// for determinism.
func resetFields(ps *state.PS, svm *sv.Manager) *state.PS {
	fields := ps.Fields()
	var names []*semantic.Symbol
	for sym := range fields {
		if sym.IsField() {
			names = append(names, sym)
		}
	}
	sort.Slice(names, func(i, j int) bool { return names[i].Name < names[j].Name })

	next := ps
	for _, sym := range names {
		next = next.Put(sym, svm.SupersedeSV(sym.Decl))
	}
	return next
}

// isBooleanLiteral reports whether e is exactly the boolean literal
// `true` or `false`, used by handleBlockExit to decide checkPath for a
// while condition.
func isBooleanLiteral(e ast.Expr) bool {
	lit, ok := e.(*ast.LiteralExpr)
	return ok && lit.Kind == token.BoolLiteral
}
