package errors

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orimarko/sonar-java/internal/ast"
)

func formatPlain(t *testing.T, reporter *ErrorReporter, e CompilerError) string {
	t.Helper()
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()
	return reporter.FormatError(e)
}

func TestFormatErrorHeaderCarriesCodeAndCategory(t *testing.T) {
	source := "void f() {\n\tx.hashCode();\n}\n"
	reporter := NewErrorReporter("test.java", source)

	out := formatPlain(t, reporter, NullDereference(ast.Position{Filename: "test.java", Line: 2, Column: 2}))

	assert.Contains(t, out, "error[E0900] (Symbolic Execution):")
	assert.Contains(t, out, "--> test.java:2:2")
	assert.Contains(t, out, "x.hashCode();")
}

func TestFormatErrorUnderlinesReportedSpan(t *testing.T) {
	reporter := NewErrorReporter("test.java", "abcdef\n")

	e := NewSemanticError(ErrorNullDereference, "boom", ast.Position{Line: 1, Column: 3}).
		WithLength(2).
		Build()
	out := formatPlain(t, reporter, e)

	var marker string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "^") {
			marker = line
		}
	}
	require.NotEmpty(t, marker, "expected a caret marker line")
	assert.Contains(t, marker, "  ^^", "two carets starting under column 3")
}

func TestFormatErrorRendersSuggestionsNotesAndHelp(t *testing.T) {
	reporter := NewErrorReporter("test.java", "int x = 1;\n")

	e := NewSemanticWarning(ErrorConditionAlwaysConstant, "always true", ast.Position{Line: 1, Column: 1}).
		WithSuggestion("simplify the condition").
		WithSuggestion("or remove the branch").
		WithNote("observed on every feasible path").
		WithHelp("conditions should be able to go both ways").
		Build()
	out := formatPlain(t, reporter, e)

	assert.Contains(t, out, "warning[E0901] (Symbolic Execution):")
	assert.Contains(t, out, "help: try simplify the condition")
	assert.Contains(t, out, "or remove the branch")
	assert.Contains(t, out, "note: observed on every feasible path")
	assert.Contains(t, out, "help: conditions should be able to go both ways")
}

func TestFormatErrorWithoutCodeUsesBareHeader(t *testing.T) {
	reporter := NewErrorReporter("test.java", "int x = 1;\n")

	out := formatPlain(t, reporter, CompilerError{
		Level:    Error,
		Message:  "something broke",
		Position: ast.Position{Line: 1, Column: 1},
	})

	assert.True(t, strings.HasPrefix(out, "error: something broke\n"), out)
}
