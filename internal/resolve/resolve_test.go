package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nosh-lang/nosh/internal/parser"
)

func TestResolve_ArgumentsAndCalls(t *testing.T) {
	mod, perrs := parser.Parse("t.nosh", "extern sin(x)\nfun f(a, b) sin(a) + b end")
	require.Empty(t, perrs)

	res, errs := Resolve(mod)
	require.Empty(t, errs)
	assert.Contains(t, res.Funcs, "sin")
	assert.Contains(t, res.Funcs, "f")
}

func TestResolve_UndefinedVariable(t *testing.T) {
	mod, perrs := parser.Parse("t.nosh", "fun f() x end")
	require.Empty(t, perrs)

	_, errs := Resolve(mod)
	require.NotEmpty(t, errs)
}

func TestResolve_UndefinedCall(t *testing.T) {
	mod, perrs := parser.Parse("t.nosh", "fun f() g() end")
	require.Empty(t, perrs)

	_, errs := Resolve(mod)
	require.NotEmpty(t, errs)
}

func TestResolve_DeclVisibleForRestOfBlock(t *testing.T) {
	mod, perrs := parser.Parse("t.nosh", "fun f() val x = 1 x + 1 end")
	require.Empty(t, perrs)

	_, errs := Resolve(mod)
	assert.Empty(t, errs)
}

func TestResolve_UseBeforeDeclIsError(t *testing.T) {
	mod, perrs := parser.Parse("t.nosh", "fun f() val x = x end")
	require.Empty(t, perrs)

	_, errs := Resolve(mod)
	require.NotEmpty(t, errs, "a decl's own value must not see its own binding")
}

func TestResolve_LaterLetBindingSeesEarlierOne(t *testing.T) {
	mod, perrs := parser.Parse("t.nosh", "fun f() let val x = 1, val y = x in y end")
	require.Empty(t, perrs)

	_, errs := Resolve(mod)
	assert.Empty(t, errs, "binding i's initializer may see binding j < i in the same let")
}

func TestResolve_EarlierLetBindingDoesNotSeeLaterOne(t *testing.T) {
	mod, perrs := parser.Parse("t.nosh", "fun f() let val x = y, val y = 1 in x end")
	require.Empty(t, perrs)

	_, errs := Resolve(mod)
	require.NotEmpty(t, errs, "binding i's initializer must not see binding j > i in the same let")
}

func TestResolve_LetBodySeesBindings(t *testing.T) {
	mod, perrs := parser.Parse("t.nosh", "fun f() let val x = 1 in x + 1 end")
	require.Empty(t, perrs)

	_, errs := Resolve(mod)
	assert.Empty(t, errs)
}

func TestResolve_NoShadowing(t *testing.T) {
	mod, perrs := parser.Parse("t.nosh", "fun f(a) val a = 1 a end")
	require.Empty(t, perrs)

	_, errs := Resolve(mod)
	require.NotEmpty(t, errs, "redefining a name already in an enclosing scope must be an error")
}

func TestResolve_RedefinedTopLevelFunction(t *testing.T) {
	mod, perrs := parser.Parse("t.nosh", "fun f() 1 end\nfun f() 2 end")
	require.Empty(t, perrs)

	_, errs := Resolve(mod)
	require.NotEmpty(t, errs)
}

func TestResolve_WhileBodySeesOuterMutable(t *testing.T) {
	mod, perrs := parser.Parse("t.nosh", "fun f() mut i = 0 while i < 3 i = i + 1 end end")
	require.Empty(t, perrs)

	_, errs := Resolve(mod)
	assert.Empty(t, errs)
}
