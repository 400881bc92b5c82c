// Package semantic is the symbol/type/annotation oracle: given an
// identifier encountered during transfer, it resolves the program symbol
// it refers to (its kind, owner, declared type, and nullability), and it
// classifies declared types as primitive or reference.
package semantic

import "github.com/orimarko/sonar-java/internal/ast"

// SymbolKind classifies what declared an identifier.
type SymbolKind int

const (
	SymbolParameter SymbolKind = iota
	SymbolLocal
	SymbolField
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolParameter:
		return "parameter"
	case SymbolLocal:
		return "local"
	case SymbolField:
		return "field"
	default:
		return "unknown"
	}
}

// Symbol is what an identifier resolves to. Owner holds the enclosing
// function's name for parameters and locals, and is empty for fields. The
// engine's field reset tells fields apart by Kind (see IsField).
type Symbol struct {
	Name     string
	Kind     SymbolKind
	Owner    string
	Type     *ast.TypeRef
	Nullable bool
	Decl     ast.Node
}

// IsField reports whether sym is a field binding, per the Reset rule.
func (s *Symbol) IsField() bool {
	return s != nil && s.Kind == SymbolField
}

// SymbolTable resolves identifiers for a single function: its parameters
// and locals declared so far. Anything not found here is a free variable
// — a field of the enclosing class — and is resolved by the owning
// Oracle instead (see oracle.go), not by the table itself.
type SymbolTable struct {
	owner      string
	parameters map[string]*Symbol
	locals     map[string]*Symbol
}

// NewSymbolTable creates an empty table for the function named owner.
func NewSymbolTable(owner string) *SymbolTable {
	return &SymbolTable{
		owner:      owner,
		parameters: make(map[string]*Symbol),
		locals:     make(map[string]*Symbol),
	}
}

// DefineParameter registers a parameter symbol in the table.
func (st *SymbolTable) DefineParameter(name string, typ *ast.TypeRef, nullable bool, decl ast.Node) *Symbol {
	sym := &Symbol{Name: name, Kind: SymbolParameter, Owner: st.owner, Type: typ, Nullable: nullable, Decl: decl}
	st.parameters[name] = sym
	return sym
}

// DefineLocal registers a local-variable symbol in the table.
func (st *SymbolTable) DefineLocal(name string, typ *ast.TypeRef, decl ast.Node) *Symbol {
	sym := &Symbol{Name: name, Kind: SymbolLocal, Owner: st.owner, Type: typ, Decl: decl}
	st.locals[name] = sym
	return sym
}

// LookupLocal resolves name against parameters/locals only (no field
// fallback).
func (st *SymbolTable) LookupLocal(name string) *Symbol {
	if sym, ok := st.parameters[name]; ok {
		return sym
	}
	if sym, ok := st.locals[name]; ok {
		return sym
	}
	return nil
}

// Parameters returns the parameter symbols keyed by name. This map-backed
// table does not preserve declaration order; callers that need it (e.g.
// starting-state seeding) should iterate ast.Function.Params directly and
// look each one up here.
func (st *SymbolTable) Parameters() map[string]*Symbol {
	return st.parameters
}
