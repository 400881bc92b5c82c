package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orimarko/sonar-java/internal/grammar"
)

func analyzeSource(t *testing.T, source string) []string {
	t.Helper()
	functions, err := grammar.ParseString("test.java", source)
	require.NoError(t, err)
	require.Len(t, functions, 1)

	fa := NewFlowAnalyzer()
	findings := fa.AnalyzeFunction(functions[0])

	messages := make([]string, 0, len(findings))
	for _, f := range findings {
		messages = append(messages, f.Message)
	}
	return messages
}

func TestFlowAnalyzerUnreachableAfterReturn(t *testing.T) {
	source := `int f() {
		int x = 42;
		return x;
		int y = 100;
	}`

	messages := analyzeSource(t, source)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "unreachable")
}

func TestFlowAnalyzerMissingReturn(t *testing.T) {
	source := `int f(boolean flag) {
		if (flag) {
			return 1;
		}
	}`

	messages := analyzeSource(t, source)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "no return statement")
}

func TestFlowAnalyzerNoFindingsWhenAllPathsReturn(t *testing.T) {
	source := `int f(boolean flag) {
		if (flag) {
			return 1;
		} else {
			return 0;
		}
	}`

	messages := analyzeSource(t, source)
	assert.Empty(t, messages)
}

func TestFlowAnalyzerVoidFunctionNeverRequiresReturn(t *testing.T) {
	source := `void f(boolean flag) {
		if (flag) {
			return;
		}
	}`

	messages := analyzeSource(t, source)
	assert.Empty(t, messages)
}

func TestFlowAnalyzerWhileDoesNotGuaranteeTermination(t *testing.T) {
	source := `int f(boolean flag) {
		while (flag) {
			return 1;
		}
	}`

	messages := analyzeSource(t, source)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "no return statement")
}
