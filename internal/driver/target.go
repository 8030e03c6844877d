package driver

import "fmt"

// Arch, Vendor, and OS name the components of a target triple, same
// three-part shape as the teacher's pkg/compiler.go Target.
type Arch string
type Vendor string
type OS string

const (
	ArchX86_64 Arch = "x86_64"
	ArchARM64  Arch = "arm64"
)

const (
	VendorUnknown Vendor = "unknown"
	VendorApple   Vendor = "apple"
)

const (
	OSLinux  OS = "linux-gnu"
	OSDarwin OS = "darwin"
)

// Target names the machine a build artifact is produced for.
type Target struct {
	Arch   Arch
	Vendor Vendor
	OS     OS
}

// Triple renders the target as a clang/llc-style triple string.
func (t Target) Triple() string {
	return fmt.Sprintf("%s-%s-%s", t.Arch, t.Vendor, t.OS)
}

// HostTarget is the default target used when the CLI is not given an
// explicit one: x86_64-unknown-linux-gnu, matching the teacher's
// zero-value Target behavior.
var HostTarget = Target{Arch: ArchX86_64, Vendor: VendorUnknown, OS: OSLinux}

// Emit selects what a build produces, mirroring original_source's
// NoshEmit enum (Ast/Asm/Llvm) plus the teacher's default object-file
// output.
type Emit string

const (
	EmitObject Emit = "object"
	EmitAsm    Emit = "asm"
	EmitLLVM   Emit = "llvm"
	EmitAST    Emit = "ast"
)

// Options configures a single build or run invocation.
type Options struct {
	Target   Target
	OptLevel int
	Emit     Emit
	Verbose  bool
}
