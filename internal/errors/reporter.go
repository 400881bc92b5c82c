package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/orimarko/sonar-java/internal/ast"
)

// ErrorLevel is the severity of a diagnostic.
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// CompilerError is one rendered diagnostic: a parse or flow problem, or an
// analysis finding. Findings are data — they flow to the diagnostics sink
// and never interrupt the analysis that produced them.
type CompilerError struct {
	Level       ErrorLevel
	Code        string // reserved-range code, e.g. E0900
	Message     string
	Position    ast.Position
	Length      int // columns to underline, minimum 1
	Suggestions []string
	Notes       []string
	HelpText    string
}

// ErrorReporter renders diagnostics against one file's source text:
// a code-and-category header, the location, a snippet with the offending
// span underlined, then suggestions, notes, and help.
type ErrorReporter struct {
	filename string
	lines    []string
}

// NewErrorReporter creates a reporter for a file.
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatError renders one diagnostic as a multi-line string ending in a
// blank separator line.
func (er *ErrorReporter) FormatError(e CompilerError) string {
	var b strings.Builder

	// The gutter must fit the widest line number the snippet can show,
	// which is the context line after the reported one.
	gutter := len(fmt.Sprintf("%d", e.Position.Line+1))
	indent := strings.Repeat(" ", gutter)
	dim := color.New(color.Faint).SprintFunc()

	er.writeHeader(&b, e)
	fmt.Fprintf(&b, "%s %s %s:%d:%d\n", indent, dim("-->"), er.filename, e.Position.Line, e.Position.Column)
	fmt.Fprintf(&b, "%s %s\n", indent, dim("│"))
	er.writeSnippet(&b, e, gutter)
	er.writeFooter(&b, e, indent)

	b.WriteString("\n")
	return b.String()
}

// writeHeader emits `level[CODE] (Category): message`, or the bare
// `level: message` form for diagnostics without a code.
func (er *ErrorReporter) writeHeader(b *strings.Builder, e CompilerError) {
	level := levelColor(e.Level)(string(e.Level))
	if e.Code == "" {
		fmt.Fprintf(b, "%s: %s\n", level, e.Message)
		return
	}
	category := color.New(color.Faint).Sprintf("(%s)", GetErrorCategory(e.Code))
	fmt.Fprintf(b, "%s[%s] %s: %s\n", level, e.Code, category, e.Message)
}

// writeSnippet shows the reported line with one line of context on each
// side, underlining the reported span.
func (er *ErrorReporter) writeSnippet(b *strings.Builder, e CompilerError, gutter int) {
	dim := color.New(color.Faint).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	for n := e.Position.Line - 1; n <= e.Position.Line+1; n++ {
		if n < 1 || n > len(er.lines) {
			continue
		}
		number := fmt.Sprintf("%*d", gutter, n)
		if n != e.Position.Line {
			fmt.Fprintf(b, "%s %s %s\n", dim(number), dim("│"), er.lines[n-1])
			continue
		}
		fmt.Fprintf(b, "%s %s %s\n", bold(number), dim("│"), er.lines[n-1])
		fmt.Fprintf(b, "%s %s %s\n", strings.Repeat(" ", gutter), dim("│"), er.marker(e))
	}
}

// marker builds the caret underline for the reported span.
func (er *ErrorReporter) marker(e CompilerError) string {
	pad := strings.Repeat(" ", max(e.Position.Column-1, 0))
	return pad + levelColor(e.Level)(strings.Repeat("^", max(e.Length, 1)))
}

// writeFooter emits suggestions, notes, and help text under the snippet.
func (er *ErrorReporter) writeFooter(b *strings.Builder, e CompilerError, indent string) {
	dim := color.New(color.Faint).SprintFunc()

	if len(e.Suggestions) > 0 {
		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Fprintf(b, "%s %s\n", indent, dim("│"))
		for i, suggestion := range e.Suggestions {
			if i == 0 {
				fmt.Fprintf(b, "%s %s %s\n", indent, cyan("help: try"), suggestion)
			} else {
				fmt.Fprintf(b, "%s %s %s\n", indent, cyan("   or"), suggestion)
			}
		}
	}

	blue := color.New(color.FgBlue).SprintFunc()
	for _, note := range e.Notes {
		fmt.Fprintf(b, "%s %s %s %s\n", indent, dim("│"), blue("note:"), note)
	}

	if e.HelpText != "" {
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(b, "%s %s %s %s\n", indent, dim("│"), green("help:"), e.HelpText)
	}
}

// levelColor maps a severity to its display color.
func levelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}
