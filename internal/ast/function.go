package ast

// Param is a formal parameter declaration. Annotations holds the fully
// qualified annotation names attached to it (e.g.
// "javax.annotation.Nullable"); the semantic package's annotation oracle
// decides which of those mark it nullable.
type Param struct {
	Base
	Name        string
	Type        *TypeRef
	Annotations []string
}

func (*Param) NodeType() NodeType { return PARAM }

// Function is a single analyzable procedure: a name, its formal
// parameters, declared return type (nil for void), and body. The engine
// (internal/engine) analyzes one Function at a time.
type Function struct {
	Base
	Name       string
	Params     []*Param
	ReturnType *TypeRef // nil means void
	Body       *BlockStmt
}

func (*Function) NodeType() NodeType { return FUNCTION }
