// Package grammar parses source text for the procedure language the engine
// analyzes into internal/ast trees, using a participle v2 stateful lexer
// and struct-tag grammar. Every grammar struct carries Pos/EndPos
// lexer.Position fields that participle populates automatically.
package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// ProcLexer is the stateful lexer for the procedure language. Rule order
// matters: keywords are matched downstream as literal strings against
// Ident tokens, multi-character operators come before their
// single-character prefixes, punctuation after operators.
var ProcLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"DocComment", `///[^\n]*`, nil},
		{"Comment", `//[^\n]*`, nil},
		{"String", `"(\\.|[^"\\])*"`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Integer", `0x[0-9a-fA-F]+|[0-9]+`, nil},
		{"Operator", `(->|::|\|\||&&|==|!=|<=|>=|[-+*/%<>=!])`, nil},
		{"Punctuation", `[{}\[\]().,;@?:]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
