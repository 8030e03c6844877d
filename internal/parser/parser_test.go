package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nosh-lang/nosh/internal/ast"
)

func TestParse_SimpleFunction(t *testing.T) {
	mod, errs := Parse("t.nosh", "fun add(a, b) a + b end")
	require.Empty(t, errs)
	require.Len(t, mod.Items, 1)

	item := mod.Items[0]
	require.NotNil(t, item.Func)
	assert.Equal(t, "add", item.Func.Proto.Name)
	require.Len(t, item.Func.Proto.Args, 2)
	assert.Equal(t, "a", item.Func.Proto.Args[0].Name)
	assert.Equal(t, "b", item.Func.Proto.Args[1].Name)

	body := item.Func.Body.(*ast.BlockExpr)
	require.Len(t, body.Body, 1)
	bin, ok := body.Body[0].(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, bin.Op)
}

func TestParse_Extern(t *testing.T) {
	mod, errs := Parse("t.nosh", "extern sin(x)")
	require.Empty(t, errs)
	require.Len(t, mod.Items, 1)
	require.NotNil(t, mod.Items[0].Extern)
	assert.Equal(t, "sin", mod.Items[0].Extern.Proto.Name)
}

func TestParse_BinaryPrecedence(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3)
	mod, errs := Parse("t.nosh", "fun f() 1 + 2 * 3 end")
	require.Empty(t, errs)

	body := mod.Items[0].Func.Body.(*ast.BlockExpr)
	top := body.Body[0].(*ast.BinaryExpr)
	assert.Equal(t, ast.OpAdd, top.Op)

	rhs, ok := top.Rhs.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, rhs.Op)

	_, lhsIsLit := top.Lhs.(*ast.LitExpr)
	assert.True(t, lhsIsLit)
}

func TestParse_LeftAssociativeSamePrecedence(t *testing.T) {
	// 1 - 2 - 3 should parse as (1 - 2) - 3
	mod, errs := Parse("t.nosh", "fun f() 1 - 2 - 3 end")
	require.Empty(t, errs)

	body := mod.Items[0].Func.Body.(*ast.BlockExpr)
	top := body.Body[0].(*ast.BinaryExpr)
	assert.Equal(t, ast.OpSub, top.Op)

	lhs, ok := top.Lhs.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpSub, lhs.Op)

	_, rhsIsLit := top.Rhs.(*ast.LitExpr)
	assert.True(t, rhsIsLit)
}

func TestParse_Decl(t *testing.T) {
	mod, errs := Parse("t.nosh", "fun f() mut x = 1 end")
	require.Empty(t, errs)

	body := mod.Items[0].Func.Body.(*ast.BlockExpr)
	decl, ok := body.Body[0].(*ast.DeclExpr)
	require.True(t, ok)
	require.Len(t, decl.Decls, 1)
	assert.Equal(t, ast.Mutable, decl.Decls[0].Mutability)
	assert.Equal(t, "x", decl.Decls[0].Bound)
}

func TestParse_LetIn(t *testing.T) {
	mod, errs := Parse("t.nosh", "fun f() let val x = 1 in x + 1 end")
	require.Empty(t, errs)

	body := mod.Items[0].Func.Body.(*ast.BlockExpr)
	let, ok := body.Body[0].(*ast.LetExpr)
	require.True(t, ok)
	require.Len(t, let.Decls, 1)
	assert.Equal(t, "x", let.Decls[0].Bound)
	_, inIsBinary := let.In.(*ast.BinaryExpr)
	assert.True(t, inIsBinary)
}

func TestParse_IfElseIfChainsRightAssociative(t *testing.T) {
	src := `fun f()
  if a
    1
  else if b
    2
  else
    3
  end
end`
	mod, errs := Parse("t.nosh", src)
	require.Empty(t, errs)

	body := mod.Items[0].Func.Body.(*ast.BlockExpr)
	outer, ok := body.Body[0].(*ast.IfExpr)
	require.True(t, ok)

	inner, ok := outer.Else.(*ast.IfExpr)
	require.True(t, ok, "else-if must nest as a right-hand IfExpr, not a block")
	assert.NotNil(t, inner.Else)
}

func TestParse_TrailingIf(t *testing.T) {
	mod, errs := Parse("t.nosh", "fun f(a) 1 if a else 2 end")
	require.Empty(t, errs)

	body := mod.Items[0].Func.Body.(*ast.BlockExpr)
	ifExpr, ok := body.Body[0].(*ast.IfExpr)
	require.True(t, ok, "`x if cond else y` must parse as an IfExpr, not a decl followed by a malformed block-if")

	_, condIsVar := ifExpr.Cond.(*ast.VarExpr)
	assert.True(t, condIsVar)
	thenLit, ok := ifExpr.Then.(*ast.LitExpr)
	require.True(t, ok)
	assert.Equal(t, "1", thenLit.Span)
	elseLit, ok := ifExpr.Else.(*ast.LitExpr)
	require.True(t, ok)
	assert.Equal(t, "2", elseLit.Span)
}

func TestParse_TrailingIfInDeclValue(t *testing.T) {
	mod, errs := Parse("t.nosh", "fun f(a) val y = 1 if a else 2 y end")
	require.Empty(t, errs)

	body := mod.Items[0].Func.Body.(*ast.BlockExpr)
	decl, ok := body.Body[0].(*ast.DeclExpr)
	require.True(t, ok)
	_, valueIsIf := decl.Decls[0].Value.(*ast.IfExpr)
	assert.True(t, valueIsIf, "trailing-if must be reachable from a decl's initializer expression")
}

func TestParse_TrailingIfChainsRightAssociative(t *testing.T) {
	// x if a else y if b else z == x if a else (y if b else z)
	mod, errs := Parse("t.nosh", "fun f(a, b) x if a else y if b else z end")
	require.Empty(t, errs)

	body := mod.Items[0].Func.Body.(*ast.BlockExpr)
	outer, ok := body.Body[0].(*ast.IfExpr)
	require.True(t, ok)

	_, outerThenIsVar := outer.Then.(*ast.VarExpr)
	assert.True(t, outerThenIsVar, "outer 'then' must be x, unconsumed by the inner chain")

	inner, ok := outer.Else.(*ast.IfExpr)
	require.True(t, ok, "outer 'else' must be the nested trailing-if, not a flat left-associative fold")
	_, innerThenIsVar := inner.Then.(*ast.VarExpr)
	assert.True(t, innerThenIsVar)
}

func TestParse_While(t *testing.T) {
	mod, errs := Parse("t.nosh", "fun f() mut i = 0 while i < 10 i = i + 1 end end")
	require.Empty(t, errs)

	body := mod.Items[0].Func.Body.(*ast.BlockExpr)
	require.Len(t, body.Body, 2)
	_, ok := body.Body[1].(*ast.WhileExpr)
	assert.True(t, ok)
}

func TestParse_Call(t *testing.T) {
	mod, errs := Parse("t.nosh", "fun f() g(1, 2) end")
	require.Empty(t, errs)

	body := mod.Items[0].Func.Body.(*ast.BlockExpr)
	call, ok := body.Body[0].(*ast.CallExpr)
	require.True(t, ok)
	assert.Equal(t, "g", call.Callee)
	assert.Len(t, call.Args, 2)
}

func TestParse_MultiElementTupleRejected(t *testing.T) {
	_, errs := Parse("t.nosh", "fun f() (1, 2) end")
	require.NotEmpty(t, errs, "a multi-element tuple must be a clean parse error")
}

func TestParse_EmptyParensIsEmptyBlock(t *testing.T) {
	mod, errs := Parse("t.nosh", "fun f() () end")
	require.Empty(t, errs)

	body := mod.Items[0].Func.Body.(*ast.BlockExpr)
	block, ok := body.Body[0].(*ast.BlockExpr)
	require.True(t, ok)
	assert.Empty(t, block.Body)
}

func TestParse_NewlineAfterOperatorContinuesExpression(t *testing.T) {
	mod, errs := Parse("t.nosh", "fun f() 1 +\n2 end")
	require.Empty(t, errs)

	body := mod.Items[0].Func.Body.(*ast.BlockExpr)
	require.Len(t, body.Body, 1, "the newline right after '+' must not split the statement")
	_, ok := body.Body[0].(*ast.BinaryExpr)
	assert.True(t, ok)
}

func TestParseLine_CompleteExpression(t *testing.T) {
	e, _, err := ParseLine("1 + 2")
	require.NoError(t, err)
	require.NotNil(t, e)
}

func TestParseLine_IncompleteReportsContinuation(t *testing.T) {
	_, _, err := ParseLine("if a")
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestParseLine_EmptyReturnsNilExpr(t *testing.T) {
	e, _, err := ParseLine("   ")
	require.NoError(t, err)
	assert.Nil(t, e)
}
