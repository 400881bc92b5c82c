// Package engine implements the walker: the worklist-driven traversal
// that builds the exploded graph for one procedure at a time, running the
// checker dispatcher's pre/post-statement hooks as it goes. The per-run
// scratch state lives on a single driver type, with its helper methods
// split across files by concern (main loop, transfer functions,
// branching).
package engine

import (
	"log"

	"github.com/orimarko/sonar-java/internal/ast"
	"github.com/orimarko/sonar-java/internal/cfg"
	"github.com/orimarko/sonar-java/internal/checkers"
	"github.com/orimarko/sonar-java/internal/errors"
	"github.com/orimarko/sonar-java/internal/graph"
	"github.com/orimarko/sonar-java/internal/semantic"
	"github.com/orimarko/sonar-java/internal/state"
	"github.com/orimarko/sonar-java/internal/sv"
)

// Default resource bounds.
const (
	DefaultMaxSteps            = 10000
	DefaultMaxExecProgramPoint = 2
	DefaultConstraintsSizeGate = 75
)

// Walker analyzes one procedure per VisitMethod call. A single Walker is
// reused across every procedure in a compilation unit; none of its fields
// carry state between calls.
type Walker struct {
	MaxSteps            int
	MaxExecProgramPoint int
	ConstraintsSizeGate int
}

// New returns a Walker configured with the default resource bounds.
func New() *Walker {
	return &Walker{
		MaxSteps:            DefaultMaxSteps,
		MaxExecProgramPoint: DefaultMaxExecProgramPoint,
		ConstraintsSizeGate: DefaultConstraintsSizeGate,
	}
}

// workItem is one entry in the LIFO worklist.
type workItem struct {
	point cfg.Point
	ps    *state.PS
}

// worklist is a depth-first stack: push and pop both act on the same end.
// Depth-first order interacts with the visit-count bound to produce a
// predictable path-sensitive exploration; breadth-first would change which
// diagnostics appear first.
type worklist []workItem

func (w *worklist) push(item workItem) { *w = append(*w, item) }

func (w *worklist) pop() (workItem, bool) {
	n := len(*w)
	if n == 0 {
		return workItem{}, false
	}
	item := (*w)[n-1]
	*w = (*w)[:n-1]
	return item, true
}

// execContext is the engine context passed to every checker hook: a
// narrow view onto the in-flight program state, constraint manager, and
// report sink, with no back-reference to the walker itself.
type execContext struct {
	ps       *state.PS
	svm      *sv.Manager
	findings *[]errors.CompilerError
}

func (c *execContext) ProgramState() *state.PS        { return c.ps }
func (c *execContext) SetProgramState(ps *state.PS)   { c.ps = ps }
func (c *execContext) ConstraintManager() *sv.Manager { return c.svm }
func (c *execContext) ReportIssue(f errors.CompilerError) {
	*c.findings = append(*c.findings, f)
}

// run holds the scratch state of one VisitMethod call: the exploded graph,
// the worklist, the step counter, and the symbol/constraint machinery the
// transfer functions consult. It is discarded when VisitMethod returns.
type run struct {
	walker     *Walker
	dispatcher *checkers.Dispatcher
	oracle     *semantic.Oracle
	table      *semantic.SymbolTable
	svm        *sv.Manager
	graph      *graph.Graph
	worklist   worklist
	steps      int
	locals     map[*ast.VarDeclStmt]*semantic.Symbol
	ctx        *execContext
	procedure  string
}

// VisitMethod is the Walker's entry point: build the CFG, seed the
// worklist with the starting states, run the main loop to completion, and
// notify the dispatcher of end-of-execution. MaximumStepsReached and
// ExplodedGraphTooBig terminate only this call; the Walker itself remains
// usable for the next procedure.
func (w *Walker) VisitMethod(fn *ast.Function, dispatcher *checkers.Dispatcher, oracle *semantic.Oracle) ([]errors.CompilerError, error) {
	if fn.Body == nil || len(fn.Body.Stmts) == 0 {
		return nil, nil
	}
	return w.execute(fn, cfg.Build(fn), dispatcher, oracle)
}

// execute runs the exploration over an already-built CFG. Split from
// VisitMethod so tests can drive hand-built graphs (dead-end blocks, exotic
// successor shapes) through the same loop.
func (w *Walker) execute(fn *ast.Function, g *cfg.CFG, dispatcher *checkers.Dispatcher, oracle *semantic.Oracle) ([]errors.CompilerError, error) {
	dispatcher.Init()

	var findings []errors.CompilerError
	r := &run{
		walker:     w,
		dispatcher: dispatcher,
		oracle:     oracle,
		table:      oracle.NewScope(fn),
		svm:        sv.NewManager(),
		graph:      graph.New(),
		locals:     make(map[*ast.VarDeclStmt]*semantic.Symbol),
		procedure:  fn.Name,
	}
	r.ctx = &execContext{svm: r.svm, findings: &findings}

	for _, ps := range r.startingStates(fn) {
		if err := r.enqueue(cfg.Point{Block: g.Entry, Index: 0}, ps); err != nil {
			return findings, err
		}
	}

	err := r.mainLoop()
	dispatcher.EndOfExecution(func(f errors.CompilerError) { findings = append(findings, f) })
	return findings, err
}

// startingStates seeds one PS per formal-parameter nullness combination:
// every parameter gets a fresh SV bound in every state, then each
// nullable parameter fans the current set of states out into its NULL and
// NOT_NULL successors, in declaration order.
func (r *run) startingStates(fn *ast.Function) []*state.PS {
	ps := state.New()
	type nullableBinding struct {
		symbol *semantic.Symbol
		id     sv.ID
	}
	var nullable []nullableBinding

	for _, p := range fn.Params {
		sym := r.table.LookupLocal(p.Name)
		id := r.svm.NewSV(p)
		ps = ps.Put(sym, id)
		if sym.Nullable {
			nullable = append(nullable, nullableBinding{symbol: sym, id: id})
		}
	}

	states := []*state.PS{ps}
	for _, nb := range nullable {
		var next []*state.PS
		for _, s := range states {
			next = append(next, sv.SetConstraint(s, nb.id, sv.ConstraintNull)...)
			next = append(next, sv.SetConstraint(s, nb.id, sv.ConstraintNotNull)...)
		}
		states = next
	}
	return states
}

// mainLoop drains the worklist, applying the transfer function for each
// element and handling block exits.
func (r *run) mainLoop() error {
	for {
		item, ok := r.worklist.pop()
		if !ok {
			return nil
		}

		r.steps++
		if r.steps > r.walker.MaxSteps {
			log.Printf("engine: %s: MaximumStepsReached after %d steps", r.procedure, r.steps)
			return &errors.EngineError{Kind: errors.MaximumStepsReached, Procedure: r.procedure}
		}

		block := item.point.Block
		i := item.point.Index

		if len(block.Successors) == 0 && block.Terminator == nil {
			// Dead end: e.g. a self-looping labelled goto.
			continue
		}

		if i < len(block.Elements) {
			element := block.Elements[i]
			ps, err := r.transferStatement(element, item.ps)
			if err != nil {
				return err
			}
			if ps == nil {
				// A checker sank this node; no successor is enqueued.
				continue
			}
			if block.ExprStmtRoots[element] {
				ps = ps.ClearStack()
			}
			if err := r.enqueue(cfg.Point{Block: block, Index: i + 1}, ps); err != nil {
				return err
			}
			continue
		}

		if block.Terminator == nil {
			if err := r.handleBlockExit(block, item.ps); err != nil {
				return err
			}
			continue
		}

		r.ctx.ps = item.ps
		r.dispatcher.PostStatement(terminatorNode(block.Terminator), r.ctx)
		if err := r.handleBlockExit(block, r.ctx.ps); err != nil {
			return err
		}
	}
}

// enqueue applies the visit-count bound and the too-big heuristic before
// interning (point, ps) into the exploded graph and pushing it.
func (r *run) enqueue(point cfg.Point, ps *state.PS) error {
	k := ps.NumberOfTimesVisited(point)
	if k > r.walker.MaxExecProgramPoint {
		return nil
	}

	if r.steps+len(r.worklist) > r.walker.MaxSteps/2 && ps.ConstraintsSize() > r.walker.ConstraintsSizeGate {
		log.Printf("engine: %s: ExplodedGraphTooBig at step %d", r.procedure, r.steps)
		return &errors.EngineError{Kind: errors.ExplodedGraphTooBig, Procedure: r.procedure}
	}

	next := ps.WithVisited(point, k+1)
	if _, isNew := r.graph.GetNode(point, next); !isNew {
		return nil
	}
	r.worklist.push(workItem{point: point, ps: next})
	return nil
}

// terminatorNode returns the ast node to pass to the dispatcher's
// post-statement hook for a block's terminator, or nil if the terminator
// carries none (e.g. break/continue/goto).
func terminatorNode(t cfg.Terminator) ast.Node {
	switch term := t.(type) {
	case *cfg.IfTerminator:
		return term.Cond
	case *cfg.CondAndTerminator:
		return term.Cond
	case *cfg.CondOrTerminator:
		return term.Cond
	case *cfg.ConditionalTerminator:
		return term.Cond
	case *cfg.WhileTerminator:
		return term.Cond
	case *cfg.ForTerminator:
		if term.Cond != nil {
			return term.Cond
		}
		return nil
	case *cfg.SynchronizedTerminator:
		return term.Lock
	case *cfg.ReturnTerminator:
		return term.Value
	case *cfg.ThrowTerminator:
		return term.Value
	default:
		return nil
	}
}
