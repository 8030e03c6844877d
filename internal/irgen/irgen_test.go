package irgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nosh-lang/nosh/internal/parser"
	"github.com/nosh-lang/nosh/internal/resolve"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	mod, perrs := parser.Parse("t.nosh", src)
	require.Empty(t, perrs)

	res, rerrs := resolve.Resolve(mod)
	require.Empty(t, rerrs)

	irMod, ierrs := Generate(mod, res)
	require.Empty(t, ierrs)
	return irMod.String()
}

func TestGenerate_SimpleFunctionHasDoubleSignature(t *testing.T) {
	text := generate(t, "fun add(a, b) a + b end")
	assert.Contains(t, text, "define double @add(double %a, double %b)")
	assert.Contains(t, text, "fadd")
}

func TestGenerate_DeclEvaluatesAroundAlloca(t *testing.T) {
	text := generate(t, "fun f() mut x = 1 x end")
	assert.Contains(t, text, "alloca double")
	assert.Contains(t, text, "store double")
	assert.Contains(t, text, "load double")
}

func TestGenerate_IfLowersToBasicBlocksWithPhi(t *testing.T) {
	text := generate(t, "fun f(a) if a 1 else 2 end end")
	assert.Contains(t, text, "br i1")
	assert.Contains(t, text, "phi double")
}

func TestGenerate_WhileLowersToLoopBlocks(t *testing.T) {
	text := generate(t, "fun f() mut i = 0 while i < 3 i = i + 1 end end")
	assert.True(t, strings.Contains(text, "while.cond") || strings.Contains(text, "while.body"))
}

func TestGenerate_ExternDeclaresOnly(t *testing.T) {
	text := generate(t, "extern sin(x)\nfun f(a) sin(a) end")
	assert.Contains(t, text, "declare double @sin(double %x)")
	assert.Contains(t, text, "call double @sin")
}

func TestGenerate_BuiltinPrintIsAvailable(t *testing.T) {
	text := generate(t, "fun f(a) print(a) end")
	assert.Contains(t, text, "call double @print")
	assert.Contains(t, text, "declare i32 @printf")
}

func TestGenerate_EmptyBlockIsZero(t *testing.T) {
	text := generate(t, "fun f() () end")
	assert.Contains(t, text, "ret double 0")
}
