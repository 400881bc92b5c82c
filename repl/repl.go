// Package repl is an interactive trace REPL: it parses one function at a
// time from stdin and prints the findings the engine produces for it.
// Input is read until a blank line rather than line-by-line, since the
// grammar is not line-oriented.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/orimarko/sonar-java/internal/checkers"
	"github.com/orimarko/sonar-java/internal/engine"
	"github.com/orimarko/sonar-java/internal/errors"
	"github.com/orimarko/sonar-java/internal/grammar"
	"github.com/orimarko/sonar-java/internal/semantic"
)

const prompt = ">> "

// Start runs the REPL loop against in, writing prompts and output to out.
// Each function, terminated by an empty line, is parsed and traced
// independently; the oracle and walker are shared across the session so
// resource bounds behave exactly as they would in a single-file run.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	oracle := semantic.NewOracle(nil)
	walker := engine.New()
	flow := semantic.NewFlowAnalyzer()

	for {
		fmt.Fprint(out, prompt)
		source, ok := readFunction(scanner)
		if !ok {
			return
		}
		if strings.TrimSpace(source) == "" {
			continue
		}

		traceOne(out, source, oracle, walker, flow)
	}
}

// readFunction accumulates lines from scanner until a blank line or EOF,
// returning the accumulated source and whether anything was read at all.
func readFunction(scanner *bufio.Scanner) (string, bool) {
	var b strings.Builder
	read := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if read {
				return b.String(), true
			}
			continue
		}
		read = true
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if read {
		return b.String(), true
	}
	return "", false
}

func traceOne(out io.Writer, source string, oracle *semantic.Oracle, walker *engine.Walker, flow *semantic.FlowAnalyzer) {
	functions, err := grammar.ParseString("<repl>", source)
	if err != nil {
		fmt.Fprintf(out, "parse error: %s\n", err)
		return
	}

	for _, fn := range functions {
		fmt.Fprintf(out, "function %s:\n", fn.Name)

		var findings []errors.CompilerError
		findings = append(findings, flow.AnalyzeFunction(fn)...)

		dispatcher := checkers.NewDispatcher(
			checkers.NewNullDereferenceChecker(),
			checkers.NewConditionAlwaysTrueOrFalseChecker(),
		)
		fnFindings, err := walker.VisitMethod(fn, dispatcher, oracle)
		findings = append(findings, fnFindings...)
		if err != nil {
			fmt.Fprintf(out, "  aborted: %s\n", err)
		}

		if len(findings) == 0 {
			fmt.Fprintln(out, "  no findings")
			continue
		}
		for _, f := range findings {
			fmt.Fprintf(out, "  [%s] %s at %s\n", f.Code, f.Message, f.Position)
		}
	}
}
