package errors

import "fmt"

// EngineErrorKind distinguishes the ways the walker can abort a single
// procedure without producing a CompilerError.
type EngineErrorKind int

const (
	// MaximumStepsReached is a bounded-abort: the worklist popped more than
	// MAX_STEPS nodes.
	MaximumStepsReached EngineErrorKind = iota
	// ExplodedGraphTooBig is a bounded-abort: the "too big" heuristic
	// (steps+worklist vs. constraint-store size) tripped.
	ExplodedGraphTooBig
	// InternalError is an unrecoverable bug: a stack underflow, an unknown
	// constraint kind, or a statement kind the CFG builder should never
	// have produced.
	InternalError
)

func (k EngineErrorKind) String() string {
	switch k {
	case MaximumStepsReached:
		return "MaximumStepsReached"
	case ExplodedGraphTooBig:
		return "ExplodedGraphTooBig"
	case InternalError:
		return "InternalError"
	default:
		return "UnknownEngineError"
	}
}

// EngineError is distinct from CompilerError: it never reaches the
// diagnostics sink. Bounded-abort kinds are expected on pathological input
// and only terminate the current procedure; InternalError signals a bug the
// driver should treat as a crash for that procedure.
type EngineError struct {
	Kind      EngineErrorKind
	Procedure string
	Detail    string
}

func (e *EngineError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Procedure)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Procedure, e.Detail)
}

// IsBoundedAbort reports whether err is an expected resource-limit abort
// rather than an internal invariant violation.
func IsBoundedAbort(err error) bool {
	ee, ok := err.(*EngineError)
	return ok && (ee.Kind == MaximumStepsReached || ee.Kind == ExplodedGraphTooBig)
}
