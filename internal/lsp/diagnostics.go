package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/orimarko/sonar-java/internal/errors"
)

// ConvertFindings transforms engine and flow-analyzer findings into LSP
// diagnostics for IDE display.
func ConvertFindings(findings []errors.CompilerError) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, len(findings))
	for _, f := range findings {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      uint32(max0(f.Position.Line - 1)),
					Character: uint32(max0(f.Position.Column - 1)),
				},
				End: protocol.Position{
					Line:      uint32(max0(f.Position.Line - 1)),
					Character: uint32(max0(f.Position.Column-1) + max(f.Length, 1)),
				},
			},
			Severity: ptrSeverity(severityFor(f.Level)),
			Source:   ptrString("symexec"),
			Message:  f.Code + ": " + f.Message,
		})
	}
	return diagnostics
}

// ConvertParseError turns a parser error into a single diagnostic
// anchored at the start of the file carrying the error's text. The
// position the parser error carries is not used for the range.
func ConvertParseError(err error) []protocol.Diagnostic {
	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: 0, Character: 1},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("symexec-parser"),
		Message:  err.Error(),
	}}
}

func severityFor(level errors.ErrorLevel) protocol.DiagnosticSeverity {
	switch level {
	case errors.Error:
		return protocol.DiagnosticSeverityError
	case errors.Warning:
		return protocol.DiagnosticSeverityWarning
	case errors.Note:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityHint
	}
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }
func ptrString(s string) *string                                            { return &s }
