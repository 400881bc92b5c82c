// Package driver wires the parser, flow analyzer, and symbolic execution
// engine into the single-file analysis pipeline both cmd/symexec and the
// root main.go expose, so the two entry points share one implementation
// instead of duplicating it.
package driver

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/orimarko/sonar-java/internal/checkers"
	"github.com/orimarko/sonar-java/internal/engine"
	"github.com/orimarko/sonar-java/internal/errors"
	"github.com/orimarko/sonar-java/internal/grammar"
	"github.com/orimarko/sonar-java/internal/semantic"
)

// AnalyzeFile parses path, flow-analyzes and symbolically executes every
// function it declares, prints every finding with Rust-style diagnostics,
// and returns an error only when analysis itself could not complete
// (parse failure or an internal engine error, as opposed to a bounded
// abort on one function, which is logged and skipped).
func AnalyzeFile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	functions, err := grammar.ParseString(path, string(source))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	reporter := errors.NewErrorReporter(path, string(source))
	oracle := semantic.NewOracle(nil)
	flow := semantic.NewFlowAnalyzer()
	walker := engine.New()

	var findings []errors.CompilerError
	var hadInternalError bool

	for _, fn := range functions {
		findings = append(findings, flow.AnalyzeFunction(fn)...)

		dispatcher := checkers.NewDispatcher(
			checkers.NewNullDereferenceChecker(),
			checkers.NewConditionAlwaysTrueOrFalseChecker(),
		)

		fnFindings, err := walker.VisitMethod(fn, dispatcher, oracle)
		findings = append(findings, fnFindings...)
		if err != nil {
			if errors.IsBoundedAbort(err) {
				color.Yellow("symexec: %s: %s", fn.Name, err)
				continue
			}
			hadInternalError = true
			color.Red("symexec: %s: %s", fn.Name, err)
		}
	}

	for _, f := range findings {
		fmt.Print(reporter.FormatError(f))
	}

	if hadInternalError {
		return fmt.Errorf("analysis aborted with an internal error")
	}
	color.Green("analyzed %d function(s) in %s, %d finding(s)", len(functions), path, len(findings))
	return nil
}
