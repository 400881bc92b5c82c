package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orimarko/sonar-java/internal/ast"
	"github.com/orimarko/sonar-java/internal/grammar"
)

func buildCFG(t *testing.T, source string) *CFG {
	t.Helper()
	functions, err := grammar.ParseString("test.java", source)
	require.NoError(t, err)
	require.Len(t, functions, 1)
	return Build(functions[0])
}

// follow walks unconditional fallthrough edges from block until it reaches
// one with elements or a terminator, so tests are not coupled to how many
// empty connector blocks the builder happens to thread.
func follow(block *Block) *Block {
	for block.Terminator == nil && len(block.Elements) == 0 && len(block.Successors) == 1 {
		block = block.Successors[0]
	}
	return block
}

func TestStraightLinePostorder(t *testing.T) {
	g := buildCFG(t, `int f() {
		int x = 1;
		return x;
	}`)

	entry := follow(g.Entry)
	require.Len(t, entry.Elements, 3)
	assert.Equal(t, ast.LITERAL_EXPR, entry.Elements[0].NodeType())
	assert.Equal(t, ast.VAR_DECL_STMT, entry.Elements[1].NodeType())
	assert.Equal(t, ast.IDENT_EXPR, entry.Elements[2].NodeType())
	require.NotNil(t, entry.Terminator)
	assert.Equal(t, TermReturn, entry.Terminator.Kind())
	assert.Empty(t, entry.Successors, "return has no successors")
}

func TestCallArgumentsFlattenDeepestFirst(t *testing.T) {
	g := buildCFG(t, `void f(Object a, int x, int y) {
		a.m(x, y);
	}`)

	entry := follow(g.Entry)
	require.Len(t, entry.Elements, 4)
	assert.Equal(t, ast.IDENT_EXPR, entry.Elements[0].NodeType())
	assert.Equal(t, ast.IDENT_EXPR, entry.Elements[1].NodeType())
	assert.Equal(t, ast.IDENT_EXPR, entry.Elements[2].NodeType())
	assert.Equal(t, ast.METHOD_INVOCATION_EXPR, entry.Elements[3].NodeType())
	assert.True(t, entry.ExprStmtRoots[entry.Elements[3]], "the invocation is the expression-statement root")
}

func TestIfShapesTrueAndFalseSuccessors(t *testing.T) {
	g := buildCFG(t, `int f(boolean c) {
		if (c) {
			return 1;
		} else {
			return 2;
		}
	}`)

	cond := follow(g.Entry)
	require.NotNil(t, cond.Terminator)
	assert.Equal(t, TermIf, cond.Terminator.Kind())
	require.NotNil(t, cond.TrueSuccessor)
	require.NotNil(t, cond.FalseSuccessor)
	assert.NotSame(t, cond.TrueSuccessor, cond.FalseSuccessor)
	assert.Equal(t, []*Block{cond.TrueSuccessor, cond.FalseSuccessor}, cond.Successors)
}

func TestWhileLoopsBackToHeader(t *testing.T) {
	g := buildCFG(t, `void f(boolean c) {
		while (c) {
			c = false;
		}
	}`)

	header := follow(g.Entry)
	require.NotNil(t, header.Terminator)
	assert.Equal(t, TermWhile, header.Terminator.Kind())

	body := follow(header.TrueSuccessor)
	require.Len(t, body.Successors, 1)
	assert.Same(t, header, follow(body.Successors[0]), "body falls back to the loop header")
}

func TestShortCircuitAndGetsOwnBlock(t *testing.T) {
	g := buildCFG(t, `void f(Object x) {
		if (x != null && x.hashCode() > 0) {
			x.toString();
		} else {
			return;
		}
	}`)

	left := follow(g.Entry)
	require.NotNil(t, left.Terminator)
	require.Equal(t, TermCondAnd, left.Terminator.Kind())
	leftCond := left.Terminator.(*CondAndTerminator).Cond
	assert.Equal(t, ast.BINARY_EXPR, leftCond.NodeType(), "the left operand is the CondAnd condition")

	right := left.TrueSuccessor
	require.NotNil(t, right.Terminator)
	assert.Equal(t, TermIf, right.Terminator.Kind(), "the rightmost operand takes the if's own terminator")
	assert.Same(t, left.FalseSuccessor, right.FalseSuccessor, "both false edges share the else target")
}

func TestShortCircuitOrSkipsRightOperandOnTrue(t *testing.T) {
	g := buildCFG(t, `void f(boolean a, boolean b) {
		if (a || b) {
			return;
		}
	}`)

	left := follow(g.Entry)
	require.NotNil(t, left.Terminator)
	require.Equal(t, TermCondOr, left.Terminator.Kind())

	right := left.FalseSuccessor
	require.NotNil(t, right.Terminator)
	assert.Equal(t, TermIf, right.Terminator.Kind())
	assert.Same(t, left.TrueSuccessor, right.TrueSuccessor, "both true edges share the then target")
}

func TestConditionalExpressionJoinCarriesNode(t *testing.T) {
	g := buildCFG(t, `int f(boolean c) {
		int x = c ? 1 : 2;
		return x;
	}`)

	cond := follow(g.Entry)
	require.NotNil(t, cond.Terminator)
	require.Equal(t, TermConditional, cond.Terminator.Kind())

	join := follow(cond.TrueSuccessor.Successors[0])
	assert.Same(t, join, follow(cond.FalseSuccessor.Successors[0]), "both arms meet at the join")
	require.NotEmpty(t, join.Elements)
	assert.Equal(t, ast.CONDITIONAL_EXPR, join.Elements[0].NodeType())
}

func TestForWithoutConditionIsUnconditional(t *testing.T) {
	g := buildCFG(t, `void f() {
		for (;;) {
			break;
		}
	}`)

	header := follow(g.Entry)
	require.NotNil(t, header.Terminator)
	term, ok := header.Terminator.(*ForTerminator)
	require.True(t, ok)
	assert.Nil(t, term.Cond)
	assert.Nil(t, header.TrueSuccessor)
	require.Len(t, header.Successors, 1)
}

func TestBreakTargetsLoopExit(t *testing.T) {
	g := buildCFG(t, `int f(boolean c) {
		while (c) {
			break;
		}
		return 0;
	}`)

	header := follow(g.Entry)
	after := header.FalseSuccessor
	body := follow(header.TrueSuccessor)
	require.NotNil(t, body.Terminator)
	assert.Equal(t, TermBreak, body.Terminator.Kind())
	require.Len(t, body.Successors, 1)
	assert.Same(t, after, body.Successors[0], "break jumps to the loop's after block")
}

func TestSynchronizedTerminatorFansOut(t *testing.T) {
	g := buildCFG(t, `void f(Object lock) {
		synchronized (lock) {
			lock.toString();
		}
	}`)

	sync := follow(g.Entry)
	require.NotNil(t, sync.Terminator)
	assert.Equal(t, TermSynchronized, sync.Terminator.Kind())
	assert.Nil(t, sync.TrueSuccessor, "synchronized is not a conditional branch")
	require.Len(t, sync.Successors, 1)
}

func TestForEachLoopShape(t *testing.T) {
	g := buildCFG(t, `void f(Object items) {
		for (Object item : items) {
			item.toString();
		}
	}`)

	entry := follow(g.Entry)
	require.Len(t, entry.Elements, 1, "the iterable is evaluated once, before the loop")
	require.Len(t, entry.Successors, 1)

	header := entry.Successors[0]
	assert.Nil(t, header.Terminator, "the header is an unconditional fan-out")
	require.Len(t, header.Successors, 2)

	body := header.Successors[0]
	require.NotEmpty(t, body.Elements)
	assert.Equal(t, ast.VAR_DECL_STMT, body.Elements[0].NodeType(), "each iteration re-declares the loop variable")
}
