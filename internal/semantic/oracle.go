package semantic

import (
	"strings"

	"github.com/orimarko/sonar-java/internal/ast"
)

// DefaultNullableAnnotations is the nullable-annotation name set
// recognised when no override is configured.
var DefaultNullableAnnotations = []string{
	"javax.annotation.CheckForNull",
	"javax.annotation.Nullable",
}

// Oracle resolves symbols, types, and annotations. It wraps a
// per-function SymbolTable with field resolution — any identifier the
// table doesn't know about is a field of the enclosing class, minted and
// cached on first reference — and type classification.
type Oracle struct {
	nullableAnnotations map[string]bool
	fields              map[string]*Symbol
}

// NewOracle creates an oracle recognising the given nullable-annotation
// names (DefaultNullableAnnotations if nil/empty). The language has no
// import mechanism to expand a bare `@Nullable` to its fully qualified
// form, so each configured name is recognised both in full and by its
// final dotted segment.
func NewOracle(nullableAnnotations []string) *Oracle {
	if len(nullableAnnotations) == 0 {
		nullableAnnotations = DefaultNullableAnnotations
	}
	set := make(map[string]bool, 2*len(nullableAnnotations))
	for _, n := range nullableAnnotations {
		set[n] = true
		if i := strings.LastIndexByte(n, '.'); i >= 0 {
			set[n[i+1:]] = true
		}
	}
	return &Oracle{nullableAnnotations: set, fields: make(map[string]*Symbol)}
}

// IsNullable reports whether any of annotations names a recognised
// nullable annotation.
func (o *Oracle) IsNullable(annotations []string) bool {
	for _, a := range annotations {
		if o.nullableAnnotations[a] {
			return true
		}
	}
	return false
}

// NewScope builds a SymbolTable for fn, defining its parameters with
// their nullability resolved via IsNullable.
func (o *Oracle) NewScope(fn *ast.Function) *SymbolTable {
	table := NewSymbolTable(fn.Name)
	for _, p := range fn.Params {
		table.DefineParameter(p.Name, p.Type, o.IsNullable(p.Annotations), p)
	}
	return table
}

// Resolve resolves name within table, falling back to (and minting, on
// first reference) a field symbol shared across the whole oracle — fields
// live at the class level, not the function level, so the same name
// resolves to the same Symbol across every function analyzed by this
// oracle instance.
func (o *Oracle) Resolve(table *SymbolTable, name string) *Symbol {
	if sym := table.LookupLocal(name); sym != nil {
		return sym
	}
	if sym, ok := o.fields[name]; ok {
		return sym
	}
	sym := &Symbol{Name: name, Kind: SymbolField}
	o.fields[name] = sym
	return sym
}

// IsPrimitive reports whether t names a primitive (non-reference) type.
func (o *Oracle) IsPrimitive(t *ast.TypeRef) bool {
	if t == nil || t.ArrayOf != nil {
		return false
	}
	return t.Primitive
}

// IsExactlyBoolean reports whether t is precisely the boolean type, as
// opposed to merely primitive.
func (o *Oracle) IsExactlyBoolean(t *ast.TypeRef) bool {
	return t != nil && t.ArrayOf == nil && t.Primitive && t.Name == "boolean"
}
