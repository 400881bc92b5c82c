// Package grammar parses source text for the procedure language the engine
// analyzes into internal/ast trees, using a participle v2 stateful lexer and
// struct-tag grammar.
package grammar

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"github.com/orimarko/sonar-java/internal/ast"
)

var astParser = participle.MustBuild[Program](
	participle.Lexer(ProcLexer),
	participle.Elide("Whitespace", "Comment", "DocComment"),
	// Enhanced-for and classic-for only diverge at the token after the
	// loop variable's name, which with an array-typed variable is the
	// seventh token of the statement.
	participle.UseLookahead(8),
)

// ParseFile reads path and parses it into the function declarations it
// contains.
func ParseFile(path string) ([]*ast.Function, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseString(path, string(source))
}

// ParseString parses source (named filename for diagnostics) into function
// declarations.
func ParseString(filename, source string) ([]*ast.Function, error) {
	program, err := astParser.ParseString(filename, source)
	if err != nil {
		reportParseError(source, err)
		return nil, err
	}
	return convertProgram(program), nil
}

// reportParseError prints a caret-style parse error message.
func reportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("syntax error at unknown location: %s", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", pos.Column-1) + "^"

	color.Red("syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("-> %s\n", pe.Message())
}
