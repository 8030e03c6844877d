package irgen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

// defineBuiltins wires the small set of functions every Nosh program
// can call without an explicit extern declaration. Grounded directly
// on the teacher's pkg/builtin.go: a printf extern backing a Nosh
// "print" wrapper, built via the same global-string-constant + GEP
// pattern as defineBuiltinFunc/builtinPrint.
func defineBuiltins(b *Builder) {
	printfParam := ir.NewParam("fmt", types.NewPointer(types.I8))
	printf := b.mod.NewFunc("printf", types.I32, printfParam)
	printf.Sig.Variadic = true

	fmtGlobal := b.mod.NewGlobalDef(".nosh.print.fmt", constant.NewCharArrayFromString("%g\n\x00"))
	fmtGlobal.Immutable = true

	print := b.mod.NewFunc("print", types.Double, ir.NewParam("v", types.Double))
	entry := print.NewBlock("entry")

	zeroIdx := constant.NewInt(types.I32, 0)
	fmtPtr := constant.NewGetElementPtr(fmtGlobal.ContentType, fmtGlobal, zeroIdx, zeroIdx)

	entry.NewCall(printf, fmtPtr, print.Params[0])
	entry.NewRet(zero())

	b.llvmFns["print"] = print
}
