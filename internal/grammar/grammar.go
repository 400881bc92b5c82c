package grammar

import "github.com/alecthomas/participle/v2/lexer"

// Program is the top-level participle grammar entry point: a sequence of
// function declarations.
type Program struct {
	Pos       lexer.Position
	EndPos    lexer.Position
	Functions []*Function `@@*`
}

// Annotation is `@Name` or a dotted `@pkg.Name`, used to recognise
// nullable-parameter annotations.
type Annotation struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Parts  []string `"@" @Ident { "." @Ident }`
}

// TypeRef is a declared type: a bare name, or that name followed by `[]`
// for an array type. Only single-dimension arrays are supported.
type TypeRef struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string `@Ident`
	Array  bool   `@( "[" "]" )?`
}

// Param is one formal parameter: zero or more annotations, a type, a name.
type Param struct {
	Pos         lexer.Position
	EndPos      lexer.Position
	Annotations []*Annotation `{ @@ }`
	Type        *TypeRef      `@@`
	Name        string        `@Ident`
}

// Function is one analyzable procedure: a declared return
// type ("void" for none), a name, formal parameters, and a body.
type Function struct {
	Pos        lexer.Position
	EndPos     lexer.Position
	ReturnType *TypeRef `@@`
	Name       string   `@Ident "("`
	Params     []*Param `[ @@ { "," @@ } ] ")"`
	Body       *Block   `@@`
}

// Block is a brace-delimited statement sequence.
type Block struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Stmts  []*Stmt `"{" @@* "}"`
}

// Stmt is the ordered union of the statement kinds. Order matters: the
// keyword-led alternatives must come before VarDecl
// (statement keywords lex as plain Ident tokens, so `return x;` would
// otherwise match as a declaration of type `return`), and ExprStmt comes
// last as the catch-all.
type Stmt struct {
	Pos          lexer.Position
	EndPos       lexer.Position
	If           *IfStmt           `(  @@`
	While        *WhileStmt        ` | @@`
	ForEach      *ForEachStmt      ` | @@`
	For          *ForStmt          ` | @@`
	Synchronized *SynchronizedStmt ` | @@`
	Return       *ReturnStmt       ` | @@`
	Break        *BreakStmt        ` | @@`
	Continue     *ContinueStmt     ` | @@`
	Throw        *ThrowStmt        ` | @@`
	Try          *TryStmt          ` | @@`
	Nested       *Block            ` | @@`
	VarDecl      *VarDeclStmt      ` | @@`
	ExprStmt     *ExprStmt         ` | @@ )`
}

// VarDeclStmt is `Type name [= init];`. `var` is accepted in the type
// slot for an inferred-type declaration; the converter maps it to a nil
// TypeRef.
type VarDeclStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Type   *TypeRef `@@`
	Name   string   `@Ident`
	Init   *Expr    `[ "=" @@ ] ";"`
}

// IfStmt is `if (cond) then [else else_]`. Branches must be braced blocks;
// a bare single statement is not supported in this version.
type IfStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Cond   *Expr  `"if" "(" @@ ")"`
	Then   *Block `@@`
	Else   *Block `[ "else" @@ ]`
}

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Cond   *Expr  `"while" "(" @@ ")"`
	Body   *Block `@@`
}

// ForInit is a for-loop's init clause: a variable declaration or a bare
// expression, without the trailing semicolon (the ForStmt rule owns that).
type ForInit struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	VarType *TypeRef `(   @@`
	VarName *string  `    @Ident "="`
	VarInit *Expr    `    @@`
	Expr    *Expr    ` | @@ )`
}

// ForEachStmt is `for (Type name : iterable) body`, the enhanced for. It
// must be tried before ForStmt: the two are identical up to the token
// after the loop variable's name (`:` here, `=` or `;` there).
type ForEachStmt struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	VarType *TypeRef `"for" "(" @@`
	Name    string   `@Ident ":"`
	Iter    *Expr    `@@ ")"`
	Body    *Block   `@@`
}

// ForStmt is `for ([init]; [cond]; [update]) body`. Cond may be absent —
// an infinite loop with only an explicit break to exit.
type ForStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Init   *ForInit `"for" "(" [ @@ ] ";"`
	Cond   *Expr    `[ @@ ] ";"`
	Update *Expr    `[ @@ ] ")"`
	Body   *Block   `@@`
}

// SynchronizedStmt is `synchronized (lock) body`.
type SynchronizedStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Lock   *Expr  `"synchronized" "(" @@ ")"`
	Body   *Block `@@`
}

// ReturnStmt is `return [value];`.
type ReturnStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  *Expr `"return" [ @@ ] ";"`
}

type BreakStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Kw     string `@"break" ";"`
}

type ContinueStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Kw     string `@"continue" ";"`
}

// ThrowStmt is `throw value;`.
type ThrowStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  *Expr `"throw" @@ ";"`
}

// TryStmt is `try body [finally finallyBody]`. Catch clauses are not
// modeled, matching internal/ast.TryStmt.
type TryStmt struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Body    *Block `"try" @@`
	Finally *Block `[ "finally" @@ ]`
}

// ExprStmt is an expression evaluated for its side effect.
type ExprStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Expr   *Expr `@@ ";"`
}

// Expr is the top grammar level: the ternary conditional sits above ||,
// and assignment is right-associative and binds loosest, matching Java's
// own precedence.
type Expr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Left   *OrExpr `@@`
	Then   *Expr   `[ "?" @@`
	Else   *Expr   `  ":" @@ ]`
	Assign *Expr   `[ "=" @@ ]`
}

type OrExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Left   *AndExpr `@@`
	Rest   []*OrOp  `{ @@ }`
}

type OrOp struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Right  *AndExpr `"||" @@`
}

type AndExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Left   *EqualityExpr `@@`
	Rest   []*AndOp      `{ @@ }`
}

type AndOp struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Right  *EqualityExpr `"&&" @@`
}

type EqualityExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Left   *RelExpr        `@@`
	Rest   []*EqualityOp   `{ @@ }`
}

type EqualityOp struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Op     string   `@( "==" | "!=" )`
	Right  *RelExpr `@@`
}

type RelExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Left   *AddExpr `@@`
	Rest   []*RelOp `{ @@ }`
}

type RelOp struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Op     string   `@( "<=" | ">=" | "<" | ">" )`
	Right  *AddExpr `@@`
}

type AddExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Left   *MulExpr `@@`
	Rest   []*AddOp `{ @@ }`
}

type AddOp struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Op     string   `@( "+" | "-" )`
	Right  *MulExpr `@@`
}

type MulExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Left   *InstanceOfExpr `@@`
	Rest   []*MulOp        `{ @@ }`
}

type MulOp struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Op     string          `@( "*" | "/" | "%" )`
	Right  *InstanceOfExpr `@@`
}

// InstanceOfExpr is `value [instanceof Type]`.
type InstanceOfExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  *UnaryExpr `@@`
	Type   *string    `[ "instanceof" @Ident ]`
}

// UnaryExpr is `(!|-) value`, a primitive cast, or a postfix expression.
// Only primitive casts are grammar-recognised — they are the only casts
// with a semantic effect, and the closed keyword
// set sidesteps the classic cast-vs-parenthesized-expression ambiguity.
type UnaryExpr struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Op      *string      `(   @( "!" | "-" )`
	Operand *UnaryExpr   `    @@`
	Cast    *CastExpr    ` |  @@`
	Postfix *PostfixExpr ` |  @@ )`
}

// CastExpr is `(PrimitiveType) value`.
type CastExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Type   string     `"(" @( "boolean" | "int" | "long" | "double" | "float" | "byte" | "short" | "char" ) ")"`
	Value  *UnaryExpr `@@`
}

// PostfixExpr is a primary expression followed by any number of field
// accesses, method calls, and array indices.
type PostfixExpr struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Primary *Primary     `@@`
	Ops     []*PostfixOp `{ @@ }`
}

type PostfixOp struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Field  *FieldOp  `(  @@`
	Index  *IndexOp  ` | @@`
	Method *MethodOp ` | @@ )`
}

// FieldOp is `.name` or `.name(args)` — a field access or method call.
type FieldOp struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string    `"." @Ident`
	Call   *CallArgs `[ @@ ]`
}

type CallArgs struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Args   []*Expr `"(" [ @@ { "," @@ } ] ")"`
}

// IndexOp is `[index]`.
type IndexOp struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Index  *Expr `"[" @@ "]"`
}

// MethodOp is `::name` — a method reference on the preceding primary.
type MethodOp struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string `"::" @Ident`
}

// NewExpr is `new Type(args...)` or `new Type[]{ inits... }`.
type NewExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Type   string        `"new" @Ident`
	Class  *NewClassArgs `(  @@`
	Array  *NewArrayArgs ` | @@ )`
}

type NewClassArgs struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Args   []*Expr `"(" [ @@ { "," @@ } ] ")"`
}

type NewArrayArgs struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Inits  []*Expr `"[" "]" "{" [ @@ { "," @@ } ] "}"`
}

// CallExpr is an unqualified `name(args)` — a call with no explicit
// receiver.
type CallExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string  `@Ident "("`
	Args   []*Expr `[ @@ { "," @@ } ] ")"`
}

// LambdaExpr is `param -> body`. Only the single-bare-parameter form is
// supported; the body is parsed (so the grammar can skip over it) but its
// contents have no semantic effect, matching internal/ast.LambdaExpr.
type LambdaExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Param  string `@Ident "->"`
	Body   *Expr  `@@`
}

// Literal is null, a boolean, an integer, or a string literal.
type Literal struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Null   bool    `(  @"null"`
	True   bool    ` | @"true"`
	False  bool    ` | @"false"`
	Int    *string ` | @Integer`
	Str    *string ` | @String )`
}

// Primary is the innermost expression level.
type Primary struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	New     *NewExpr    `(  @@`
	Lambda  *LambdaExpr ` | @@`
	Call    *CallExpr   ` | @@`
	Literal *Literal    ` | @@`
	This    bool        ` | @"this"`
	Super   bool        ` | @"super"`
	Ident   *string     ` | @Ident`
	Paren   *Expr       ` | "(" @@ ")" )`
}
