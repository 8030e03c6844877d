package driver

import (
	"fmt"
	"io"
	"strconv"

	"github.com/llir/llvm/ir"
)

// Build emits irMod to out according to opts.Emit, matching
// original_source's NoshEmit modes (Ast handled by the caller via
// internal/printer before Build is ever invoked) and the teacher's
// pkg/compiler.go default of producing a native object file.
func Build(irMod *ir.Module, opts Options, out io.Writer) error {
	irText := irMod.String()

	switch opts.Emit {
	case EmitLLVM:
		_, err := io.WriteString(out, irText)
		return err

	case EmitAsm:
		return pipeThrough(irText, out, "llc",
			"-O"+strconv.Itoa(opts.OptLevel),
			"-mtriple="+opts.Target.Triple(),
			"-filetype=asm",
			"-o", "-",
		)

	case EmitObject, "":
		return pipeThrough(irText, out, "clang",
			"-x", "ir", "-",
			"-O"+strconv.Itoa(opts.OptLevel),
			"-target", opts.Target.Triple(),
			"-c",
			"-o", "-",
		)

	default:
		return fmt.Errorf("unknown emit mode %q", opts.Emit)
	}
}
