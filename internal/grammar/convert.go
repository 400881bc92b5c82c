package grammar

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/orimarko/sonar-java/internal/ast"
	"github.com/orimarko/sonar-java/internal/token"
)

// converter walks a parsed grammar tree into internal/ast nodes, minting
// a fresh NodeID for every node it builds.
type converter struct {
	nextID ast.NodeID
}

func convertProgram(p *Program) []*ast.Function {
	c := &converter{nextID: 1}
	fns := make([]*ast.Function, 0, len(p.Functions))
	for _, fn := range p.Functions {
		fns = append(fns, c.convertFunction(fn))
	}
	return fns
}

func (c *converter) id() ast.NodeID {
	id := c.nextID
	c.nextID++
	return id
}

func pos(p lexer.Position) ast.Position {
	return ast.Position{Filename: p.Filename, Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func (c *converter) base(start, end lexer.Position) ast.Base {
	return ast.Base{Pos: pos(start), End: pos(end), Nid: c.id()}
}

var primitiveTypeNames = map[string]bool{
	"boolean": true, "int": true, "long": true, "double": true,
	"float": true, "byte": true, "short": true, "char": true, "void": true,
}

func (c *converter) convertType(t *TypeRef) *ast.TypeRef {
	if t == nil || t.Name == "var" {
		// `var` declares an inferred type; downstream type classification
		// treats a nil TypeRef as an unknown reference type.
		return nil
	}
	ref := &ast.TypeRef{Name: t.Name, Primitive: primitiveTypeNames[t.Name]}
	if t.Array {
		return &ast.TypeRef{ArrayOf: ref}
	}
	return ref
}

func (c *converter) convertFunction(fn *Function) *ast.Function {
	params := make([]*ast.Param, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, c.convertParam(p))
	}

	var returnType *ast.TypeRef
	if fn.ReturnType != nil && fn.ReturnType.Name != "void" {
		returnType = c.convertType(fn.ReturnType)
	}

	return &ast.Function{
		Base:       c.base(fn.Pos, fn.EndPos),
		Name:       fn.Name,
		Params:     params,
		ReturnType: returnType,
		Body:       c.convertBlock(fn.Body),
	}
}

func (c *converter) convertParam(p *Param) *ast.Param {
	annotations := make([]string, 0, len(p.Annotations))
	for _, a := range p.Annotations {
		annotations = append(annotations, strings.Join(a.Parts, "."))
	}
	return &ast.Param{
		Base:        c.base(p.Pos, p.EndPos),
		Name:        p.Name,
		Type:        c.convertType(p.Type),
		Annotations: annotations,
	}
}

func (c *converter) convertBlock(b *Block) *ast.BlockStmt {
	if b == nil {
		return nil
	}
	stmts := make([]ast.Stmt, 0, len(b.Stmts))
	for _, s := range b.Stmts {
		if conv := c.convertStmt(s); conv != nil {
			stmts = append(stmts, conv)
		}
	}
	return &ast.BlockStmt{Base: c.base(b.Pos, b.EndPos), Stmts: stmts}
}

func (c *converter) convertStmt(s *Stmt) ast.Stmt {
	switch {
	case s.VarDecl != nil:
		vd := s.VarDecl
		return &ast.VarDeclStmt{
			Base: c.base(vd.Pos, vd.EndPos),
			Name: vd.Name,
			Type: c.convertType(vd.Type),
			Init: c.convertExpr(vd.Init),
		}
	case s.If != nil:
		i := s.If
		return &ast.IfStmt{
			Base: c.base(i.Pos, i.EndPos),
			Cond: c.convertExpr(i.Cond),
			Then: c.convertBlock(i.Then),
			Else: c.convertBlock(i.Else),
		}
	case s.While != nil:
		w := s.While
		return &ast.WhileStmt{
			Base: c.base(w.Pos, w.EndPos),
			Cond: c.convertExpr(w.Cond),
			Body: c.convertBlock(w.Body),
		}
	case s.ForEach != nil:
		fe := s.ForEach
		return &ast.ForEachStmt{
			Base: c.base(fe.Pos, fe.EndPos),
			Decl: &ast.VarDeclStmt{
				Base:    c.base(fe.Pos, fe.EndPos),
				Name:    fe.Name,
				Type:    c.convertType(fe.VarType),
				ForEach: true,
			},
			Iterable: c.convertExpr(fe.Iter),
			Body:     c.convertBlock(fe.Body),
		}
	case s.For != nil:
		return c.convertFor(s.For)
	case s.Synchronized != nil:
		sy := s.Synchronized
		return &ast.SynchronizedStmt{
			Base: c.base(sy.Pos, sy.EndPos),
			Lock: c.convertExpr(sy.Lock),
			Body: c.convertBlock(sy.Body),
		}
	case s.Return != nil:
		r := s.Return
		return &ast.ReturnStmt{Base: c.base(r.Pos, r.EndPos), Value: c.convertExpr(r.Value)}
	case s.Break != nil:
		b := s.Break
		return &ast.BreakStmt{Base: c.base(b.Pos, b.EndPos)}
	case s.Continue != nil:
		cn := s.Continue
		return &ast.ContinueStmt{Base: c.base(cn.Pos, cn.EndPos)}
	case s.Throw != nil:
		t := s.Throw
		return &ast.ThrowStmt{Base: c.base(t.Pos, t.EndPos), Value: c.convertExpr(t.Value)}
	case s.Try != nil:
		t := s.Try
		return &ast.TryStmt{
			Base:    c.base(t.Pos, t.EndPos),
			Body:    c.convertBlock(t.Body),
			Finally: c.convertBlock(t.Finally),
		}
	case s.Nested != nil:
		return c.convertBlock(s.Nested)
	case s.ExprStmt != nil:
		e := s.ExprStmt
		return &ast.ExprStmt{Base: c.base(e.Pos, e.EndPos), Expr: c.convertExpr(e.Expr)}
	default:
		return nil
	}
}

// convertFor lowers the grammar's split ForInit (var-decl or bare
// expression) into the Stmt the ast.ForStmt.Init field expects.
func (c *converter) convertFor(f *ForStmt) *ast.ForStmt {
	var init ast.Stmt
	if f.Init != nil {
		if f.Init.VarName != nil {
			init = &ast.VarDeclStmt{
				Base: c.base(f.Init.Pos, f.Init.EndPos),
				Name: *f.Init.VarName,
				Type: c.convertType(f.Init.VarType),
				Init: c.convertExpr(f.Init.VarInit),
			}
		} else if f.Init.Expr != nil {
			init = &ast.ExprStmt{
				Base: c.base(f.Init.Pos, f.Init.EndPos),
				Expr: c.convertExpr(f.Init.Expr),
			}
		}
	}
	return &ast.ForStmt{
		Base:   c.base(f.Pos, f.EndPos),
		Init:   init,
		Cond:   c.convertExpr(f.Cond),
		Update: c.convertExpr(f.Update),
		Body:   c.convertBlock(f.Body),
	}
}

// convertExpr walks the precedence-chain grammar down to Primary, folding
// each level of left-associative binary operators into nested
// ast.BinaryExpr nodes and reducing parenthesised sub-expressions away per
// ast.ParenExpr's documented contract.

func (c *converter) convertExpr(e *Expr) ast.Expr {
	if e == nil {
		return nil
	}
	left := c.convertOr(e.Left)
	if e.Then != nil {
		left = &ast.ConditionalExpr{
			Base: c.base(e.Pos, e.EndPos),
			Cond: left,
			Then: c.convertExpr(e.Then),
			Else: c.convertExpr(e.Else),
		}
	}
	if e.Assign == nil {
		return left
	}
	return &ast.AssignExpr{
		Base:   c.base(e.Pos, e.EndPos),
		Target: left,
		Value:  c.convertExpr(e.Assign),
	}
}

func (c *converter) convertOr(e *OrExpr) ast.Expr {
	left := c.convertAnd(e.Left)
	for _, op := range e.Rest {
		left = &ast.BinaryExpr{
			Base:  c.base(e.Pos, op.EndPos),
			Op:    token.OpOrOr,
			Left:  left,
			Right: c.convertAnd(op.Right),
		}
	}
	return left
}

func (c *converter) convertAnd(e *AndExpr) ast.Expr {
	left := c.convertEquality(e.Left)
	for _, op := range e.Rest {
		left = &ast.BinaryExpr{
			Base:  c.base(e.Pos, op.EndPos),
			Op:    token.OpAndAnd,
			Left:  left,
			Right: c.convertEquality(op.Right),
		}
	}
	return left
}

func (c *converter) convertEquality(e *EqualityExpr) ast.Expr {
	left := c.convertRel(e.Left)
	for _, op := range e.Rest {
		left = &ast.BinaryExpr{
			Base:  c.base(e.Pos, op.EndPos),
			Op:    token.BinaryOp(op.Op),
			Left:  left,
			Right: c.convertRel(op.Right),
		}
	}
	return left
}

func (c *converter) convertRel(e *RelExpr) ast.Expr {
	left := c.convertAdd(e.Left)
	for _, op := range e.Rest {
		left = &ast.BinaryExpr{
			Base:  c.base(e.Pos, op.EndPos),
			Op:    token.BinaryOp(op.Op),
			Left:  left,
			Right: c.convertAdd(op.Right),
		}
	}
	return left
}

func (c *converter) convertAdd(e *AddExpr) ast.Expr {
	left := c.convertMul(e.Left)
	for _, op := range e.Rest {
		left = &ast.BinaryExpr{
			Base:  c.base(e.Pos, op.EndPos),
			Op:    token.BinaryOp(op.Op),
			Left:  left,
			Right: c.convertMul(op.Right),
		}
	}
	return left
}

func (c *converter) convertMul(e *MulExpr) ast.Expr {
	left := c.convertInstanceOf(e.Left)
	for _, op := range e.Rest {
		left = &ast.BinaryExpr{
			Base:  c.base(e.Pos, op.EndPos),
			Op:    token.BinaryOp(op.Op),
			Left:  left,
			Right: c.convertInstanceOf(op.Right),
		}
	}
	return left
}

func (c *converter) convertInstanceOf(e *InstanceOfExpr) ast.Expr {
	value := c.convertUnary(e.Value)
	if e.Type == nil {
		return value
	}
	return &ast.InstanceOfExpr{
		Base:  c.base(e.Pos, e.EndPos),
		Value: value,
		Type:  &ast.TypeRef{Name: *e.Type},
	}
}

func (c *converter) convertUnary(e *UnaryExpr) ast.Expr {
	switch {
	case e.Op != nil:
		op := token.OpNot
		if *e.Op == "-" {
			op = token.OpNeg
		}
		return &ast.UnaryExpr{Base: c.base(e.Pos, e.EndPos), Op: op, Value: c.convertUnary(e.Operand)}
	case e.Cast != nil:
		return &ast.TypeCastExpr{
			Base:  c.base(e.Cast.Pos, e.Cast.EndPos),
			Type:  &ast.TypeRef{Name: e.Cast.Type, Primitive: true},
			Value: c.convertUnary(e.Cast.Value),
		}
	default:
		return c.convertPostfix(e.Postfix)
	}
}

func (c *converter) convertPostfix(e *PostfixExpr) ast.Expr {
	result := c.convertPrimary(e.Primary)
	for _, op := range e.Ops {
		switch {
		case op.Field != nil:
			f := op.Field
			if f.Call != nil {
				args := make([]ast.Expr, 0, len(f.Call.Args))
				for _, a := range f.Call.Args {
					args = append(args, c.convertExpr(a))
				}
				qualifier := ""
				if id, ok := result.(*ast.Ident); ok && (id.Name == "this" || id.Name == "super") {
					qualifier = id.Name
					result = nil
				}
				result = &ast.MethodInvocationExpr{
					Base:      c.base(op.Pos, op.EndPos),
					Receiver:  result,
					Qualifier: qualifier,
					Method:    f.Name,
					Args:      args,
				}
			} else {
				result = &ast.FieldAccessExpr{Base: c.base(op.Pos, op.EndPos), Target: result, Name: f.Name}
			}
		case op.Index != nil:
			result = &ast.ArrayAccessExpr{
				Base:  c.base(op.Pos, op.EndPos),
				Array: result,
				Index: c.convertExpr(op.Index.Index),
			}
		case op.Method != nil:
			qualifier := ""
			if id, ok := result.(*ast.Ident); ok {
				qualifier = id.Name
			}
			result = &ast.MethodReferenceExpr{
				Base:      c.base(op.Pos, op.EndPos),
				Qualifier: qualifier,
				Method:    op.Method.Name,
			}
		}
	}
	return result
}

func (c *converter) convertPrimary(p *Primary) ast.Expr {
	switch {
	case p.New != nil:
		return c.convertNew(p.New)
	case p.Lambda != nil:
		return &ast.LambdaExpr{Base: c.base(p.Lambda.Pos, p.Lambda.EndPos), Params: []string{p.Lambda.Param}}
	case p.Call != nil:
		args := make([]ast.Expr, 0, len(p.Call.Args))
		for _, a := range p.Call.Args {
			args = append(args, c.convertExpr(a))
		}
		return &ast.MethodInvocationExpr{Base: c.base(p.Call.Pos, p.Call.EndPos), Method: p.Call.Name, Args: args}
	case p.Literal != nil:
		return c.convertLiteral(p.Literal)
	case p.This:
		return &ast.Ident{Base: c.base(p.Pos, p.EndPos), Name: "this"}
	case p.Super:
		return &ast.Ident{Base: c.base(p.Pos, p.EndPos), Name: "super"}
	case p.Ident != nil:
		return &ast.Ident{Base: c.base(p.Pos, p.EndPos), Name: *p.Ident}
	case p.Paren != nil:
		return c.convertExpr(p.Paren)
	default:
		return nil
	}
}

func (c *converter) convertNew(n *NewExpr) ast.Expr {
	if n.Array != nil {
		inits := make([]ast.Expr, 0, len(n.Array.Inits))
		for _, e := range n.Array.Inits {
			inits = append(inits, c.convertExpr(e))
		}
		return &ast.NewArrayExpr{
			Base:         c.base(n.Pos, n.EndPos),
			ElementType:  &ast.TypeRef{Name: n.Type, Primitive: primitiveTypeNames[n.Type]},
			Initializers: inits,
		}
	}
	args := make([]ast.Expr, 0)
	if n.Class != nil {
		for _, e := range n.Class.Args {
			args = append(args, c.convertExpr(e))
		}
	}
	return &ast.NewClassExpr{
		Base: c.base(n.Pos, n.EndPos),
		Type: &ast.TypeRef{Name: n.Type},
		Args: args,
	}
}

func (c *converter) convertLiteral(l *Literal) ast.Expr {
	base := c.base(l.Pos, l.EndPos)
	switch {
	case l.Null:
		return &ast.LiteralExpr{Base: base, Kind: token.NullLiteral, Value: "null"}
	case l.True:
		return &ast.LiteralExpr{Base: base, Kind: token.BoolLiteral, Value: "true"}
	case l.False:
		return &ast.LiteralExpr{Base: base, Kind: token.BoolLiteral, Value: "false"}
	case l.Int != nil:
		return &ast.LiteralExpr{Base: base, Kind: token.IntLiteral, Value: *l.Int}
	case l.Str != nil:
		unquoted, err := strconv.Unquote(*l.Str)
		if err != nil {
			unquoted = strings.Trim(*l.Str, `"`)
		}
		return &ast.LiteralExpr{Base: base, Kind: token.StringLiteral, Value: unquoted}
	default:
		return &ast.LiteralExpr{Base: base, Kind: token.NullLiteral, Value: "null"}
	}
}
