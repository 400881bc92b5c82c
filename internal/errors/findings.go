package errors

import (
	"fmt"

	"github.com/orimarko/sonar-java/internal/ast"
)

// SemanticErrorBuilder is the fluent builder every finding constructor
// below goes through.
type SemanticErrorBuilder struct {
	err CompilerError
}

// NewSemanticError starts a builder for an error-level CompilerError.
func NewSemanticError(code, message string, pos ast.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{Level: Error, Code: code, Message: message, Position: pos, Length: 1},
	}
}

// NewSemanticWarning starts a builder for a warning-level CompilerError.
func NewSemanticWarning(code, message string, pos ast.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{Level: Warning, Code: code, Message: message, Position: pos, Length: 1},
	}
}

func (b *SemanticErrorBuilder) WithLength(length int) *SemanticErrorBuilder {
	b.err.Length = length
	return b
}

func (b *SemanticErrorBuilder) WithSuggestion(message string) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, message)
	return b
}

func (b *SemanticErrorBuilder) WithNote(note string) *SemanticErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

func (b *SemanticErrorBuilder) WithHelp(help string) *SemanticErrorBuilder {
	b.err.HelpText = help
	return b
}

func (b *SemanticErrorBuilder) Build() CompilerError {
	return b.err
}

// MissingReturn reports a function that declares a return type but has no
// return statement on some path (FlowAnalyzer).
func MissingReturn(functionName, returnType string, pos ast.Position) CompilerError {
	message := fmt.Sprintf("function '%s' declares return type '%s' but has no return statement on every path", functionName, returnType)
	return NewSemanticError(ErrorMissingReturn, message, pos).
		WithSuggestion(fmt.Sprintf("add a return statement that returns a value of type '%s' on every path", returnType)).
		WithHelp("functions with return types must return a value on all execution paths").
		Build()
}

// NewUnreachableCode reports code that can never execute (FlowAnalyzer).
func NewUnreachableCode(pos ast.Position) CompilerError {
	return NewSemanticWarning(ErrorUnreachableCode, "unreachable code", pos).
		WithSuggestion("remove this code").
		WithSuggestion("or move it before the return/throw that precedes it").
		Build()
}

// NullDereference reports a possible null dereference found by the
// NullDereference checker.
func NullDereference(pos ast.Position) CompilerError {
	return NewSemanticError(ErrorNullDereference, "dereference of a value that may be null on this path", pos).
		WithSuggestion("add a null check before this access").
		WithHelp("this value was reachable with a NULL constraint on at least one feasible path").
		Build()
}

// ConditionAlwaysConstant reports a condition found to evaluate to the same
// boolean value on every feasible path, by the ConditionAlwaysTrueOrFalse
// checker.
func ConditionAlwaysConstant(pos ast.Position, alwaysTrue bool) CompilerError {
	outcome := "false"
	if alwaysTrue {
		outcome = "true"
	}
	return NewSemanticWarning(ErrorConditionAlwaysConstant,
		fmt.Sprintf("condition always evaluates to %s", outcome), pos).
		WithSuggestion("simplify the condition or remove the unreachable branch").
		Build()
}
