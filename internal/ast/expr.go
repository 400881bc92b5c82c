package ast

import "github.com/orimarko/sonar-java/internal/token"

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Ident is a bare identifier reference: a local, a parameter, or a field
// accessed without an explicit receiver.
type Ident struct {
	Base
	Name string
}

func (*Ident) NodeType() NodeType { return IDENT_EXPR }
func (*Ident) exprNode()          {}

// LiteralExpr is a literal: null, a boolean, an integer, or a string.
type LiteralExpr struct {
	Base
	Kind  token.LiteralKind
	Value string // textual value; "" / "null" for the null literal
}

func (*LiteralExpr) NodeType() NodeType { return LITERAL_EXPR }
func (*LiteralExpr) exprNode()          {}

// BinaryExpr is a binary arithmetic, comparison, or logical operation.
type BinaryExpr struct {
	Base
	Op    token.BinaryOp
	Left  Expr
	Right Expr
}

func (*BinaryExpr) NodeType() NodeType { return BINARY_EXPR }
func (*BinaryExpr) exprNode()          {}

// UnaryExpr is a prefix unary operation (!, -).
type UnaryExpr struct {
	Base
	Op    token.UnaryOp
	Value Expr
}

func (*UnaryExpr) NodeType() NodeType { return UNARY_EXPR }
func (*UnaryExpr) exprNode()          {}

// AssignExpr assigns Value to Target and evaluates to Value. Only an
// identifier target updates a binding in this version — field and
// array-element targets evaluate their operands and pass the value through
// without binding anything.
type AssignExpr struct {
	Base
	Target Expr
	Value  Expr
}

func (*AssignExpr) NodeType() NodeType { return ASSIGN_EXPR }
func (*AssignExpr) exprNode()          {}

// ParenExpr is a parenthesised expression. The parser never leaves one of
// these in the tree that reaches the CFG builder (see internal/grammar);
// it exists purely to keep the grammar itself simple.
type ParenExpr struct {
	Base
	Value Expr
}

func (*ParenExpr) NodeType() NodeType { return PAREN_EXPR }
func (*ParenExpr) exprNode()          {}

// MethodInvocationExpr is `target.method(args...)` or a bare `method(args...)`
// (receiver nil) or `this.method(...)`/`super.method(...)` (Qualifier set).
type MethodInvocationExpr struct {
	Base
	Receiver  Expr // nil for an unqualified call
	Qualifier string // "this" or "super" when explicitly qualified; "" otherwise
	Method    string
	Args      []Expr
}

func (*MethodInvocationExpr) NodeType() NodeType { return METHOD_INVOCATION_EXPR }
func (*MethodInvocationExpr) exprNode()          {}

// IsLocal reports whether the invocation targets the current instance:
// unqualified, or qualified by this/super. Such a call may have mutated
// any field, so the engine resets field bindings around it.
func (m *MethodInvocationExpr) IsLocal() bool {
	return m.Receiver == nil || m.Qualifier == "this" || m.Qualifier == "super"
}

// FieldAccessExpr is `target.name`. When Name is the pseudo-field "class"
// (the `.class` idiom) there is no receiver on the operand stack to pop.
type FieldAccessExpr struct {
	Base
	Target Expr
	Name   string
}

func (*FieldAccessExpr) NodeType() NodeType { return FIELD_ACCESS_EXPR }
func (*FieldAccessExpr) exprNode()          {}

// ArrayAccessExpr is `array[index]`.
type ArrayAccessExpr struct {
	Base
	Array Expr
	Index Expr
}

func (*ArrayAccessExpr) NodeType() NodeType { return ARRAY_ACCESS_EXPR }
func (*ArrayAccessExpr) exprNode()          {}

// NewClassExpr is `new Type(args...)`.
type NewClassExpr struct {
	Base
	Type *TypeRef
	Args []Expr
}

func (*NewClassExpr) NodeType() NodeType { return NEW_CLASS_EXPR }
func (*NewClassExpr) exprNode()          {}

// NewArrayExpr is `new Type[]{ initializers... }`.
type NewArrayExpr struct {
	Base
	ElementType  *TypeRef
	Initializers []Expr
}

func (*NewArrayExpr) NodeType() NodeType { return NEW_ARRAY_EXPR }
func (*NewArrayExpr) exprNode()          {}

// TypeCastExpr is `(Type) value`.
type TypeCastExpr struct {
	Base
	Type  *TypeRef
	Value Expr
}

func (*TypeCastExpr) NodeType() NodeType { return TYPE_CAST_EXPR }
func (*TypeCastExpr) exprNode()          {}

// InstanceOfExpr is `value instanceof Type`.
type InstanceOfExpr struct {
	Base
	Value Expr
	Type  *TypeRef
}

func (*InstanceOfExpr) NodeType() NodeType { return INSTANCE_OF_EXPR }
func (*InstanceOfExpr) exprNode()          {}

// ConditionalExpr is the ternary `cond ? then : else`. The CFG builder
// lowers it into its own conditional blocks (the arms must not both
// execute), so the node itself reaches the engine only as a stackless
// join marker after one arm has produced the result value.
type ConditionalExpr struct {
	Base
	Cond Expr
	Then Expr
	Else Expr
}

func (*ConditionalExpr) NodeType() NodeType { return CONDITIONAL_EXPR }
func (*ConditionalExpr) exprNode()          {}

// LambdaExpr is a lambda literal; its body is opaque to the engine — it
// consumes no operands and produces one fresh value.
type LambdaExpr struct {
	Base
	Params []string
}

func (*LambdaExpr) NodeType() NodeType { return LAMBDA_EXPR }
func (*LambdaExpr) exprNode()          {}

// MethodReferenceExpr is `Type::method` / `target::method`.
type MethodReferenceExpr struct {
	Base
	Qualifier string
	Method    string
}

func (*MethodReferenceExpr) NodeType() NodeType { return METHOD_REFERENCE_EXPR }
func (*MethodReferenceExpr) exprNode()          {}
