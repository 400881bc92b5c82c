package ast

// Base carries the span and identity every node needs and is embedded by
// every concrete node type; each type only has to supply its own NodeType().
type Base struct {
	Pos Position
	End Position
	Nid NodeID
}

func (b *Base) NodePos() Position    { return b.Pos }
func (b *Base) NodeEndPos() Position { return b.End }
func (b *Base) ID() NodeID           { return b.Nid }

// TypeRef describes a declared type: a primitive (bool, int, and friends)
// or a reference type (a class/array name). The symbol/type oracle
// (internal/semantic) is what actually classifies a TypeRef as primitive
// vs reference; the AST only records what the source text said.
type TypeRef struct {
	Name      string
	ArrayOf   *TypeRef // non-nil for T[] style array types
	Primitive bool
}

func (t *TypeRef) String() string {
	if t == nil {
		return "<unknown>"
	}
	if t.ArrayOf != nil {
		return t.ArrayOf.String() + "[]"
	}
	return t.Name
}
