// Package driver wires the front end and IR builder together into the
// single pipeline the build and run commands share:
// lex -> parse -> resolve -> emit IR. It mirrors the teacher's
// pkg/compiler.go Compile method, generalized to Nosh's richer token
// set and multi-package layout.
package driver

import (
	"fmt"

	"github.com/llir/llvm/ir"

	"github.com/nosh-lang/nosh/internal/ast"
	"github.com/nosh-lang/nosh/internal/irgen"
	"github.com/nosh-lang/nosh/internal/parser"
	"github.com/nosh-lang/nosh/internal/resolve"
)

// Result carries every artifact the pipeline produced, even when it
// failed partway through, so a verbose driver can still print
// whatever AST/IR was built before the failure.
type Result struct {
	Module   *ast.Module
	Resolved *resolve.Result
	IR       *ir.Module
	Errors   []error
}

// Ok reports whether the pipeline ran to completion with no errors at
// any stage.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

// Compile runs the full pipeline over src. It stops after the first
// stage that reports errors and returns what that stage and the ones
// before it built, so verbose output still has the parsed AST to
// show. Resolution never runs after parse errors, and IR generation
// never runs after resolve errors (irgen assumes a fully resolved AST
// and would otherwise panic or emit nonsense).
func Compile(filename, src string) *Result {
	res := &Result{}

	mod, perrs := parser.Parse(filename, src)
	res.Module = mod
	res.Errors = append(res.Errors, perrs...)
	if len(perrs) > 0 {
		return res
	}

	resolved, rerrs := resolve.Resolve(mod)
	res.Resolved = resolved
	res.Errors = append(res.Errors, rerrs...)
	if len(rerrs) > 0 {
		return res
	}

	irMod, ierrs := irgen.Generate(mod, resolved)
	res.IR = irMod
	res.Errors = append(res.Errors, toErrors(ierrs)...)
	return res
}

func toErrors(errs []error) []error {
	out := make([]error, 0, len(errs))
	for _, e := range errs {
		out = append(out, fmt.Errorf("irgen: %w", e))
	}
	return out
}
