// Package printer renders a Nosh AST as an indented term tree, used by
// the `--emit ast` build mode and by the driver's verbose/diagnostic
// output. Grounded on original_source/src/ast_pass/debug.rs's
// AstTermPrinter.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/nosh-lang/nosh/internal/ast"
)

// Printer writes an indented term representation of a Module to an
// io.Writer. Tab controls the indentation unit per nesting level.
type Printer struct {
	w     io.Writer
	Tab   string
	depth int
}

// New constructs a Printer with the default two-space indentation
// unit.
func New(w io.Writer) *Printer {
	return &Printer{w: w, Tab: "  "}
}

func (p *Printer) dive()      { p.depth++ }
func (p *Printer) rise()      { p.depth-- }
func (p *Printer) indent() string {
	return strings.Repeat(p.Tab, p.depth)
}

func (p *Printer) line(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s\n", p.indent(), fmt.Sprintf(format, args...))
}

// PrintModule renders an entire module.
func (p *Printer) PrintModule(mod *ast.Module) {
	name := mod.Name
	if name == "" {
		name = "<anonymous>"
	}
	p.line("module %s", name)
	p.dive()
	for i := range mod.Items {
		p.PrintItem(&mod.Items[i])
	}
	p.rise()
}

// PrintItem renders a single top-level item.
func (p *Printer) PrintItem(item *ast.Item) {
	proto := item.Proto()
	args := make([]string, len(proto.Args))
	for i, a := range proto.Args {
		args[i] = a.Name
	}

	switch {
	case item.Func != nil:
		p.line("fun %s(%s)", proto.Name, strings.Join(args, ", "))
		p.dive()
		p.PrintExpr(item.Func.Body)
		p.rise()
	case item.Extern != nil:
		p.line("extern %s(%s)", proto.Name, strings.Join(args, ", "))
	}
}

// PrintExpr renders a single expression node and its children.
func (p *Printer) PrintExpr(e ast.Expr) {
	if e == nil {
		p.line("<nil>")
		return
	}

	switch n := e.(type) {
	case *ast.LitExpr:
		p.line("lit %s(%s)", n.Kind, n.Span)

	case *ast.VarExpr:
		p.line("var %s", n.Name)

	case *ast.BinaryExpr:
		p.line("binary %s", n.Op)
		p.dive()
		p.PrintExpr(n.Lhs)
		p.PrintExpr(n.Rhs)
		p.rise()

	case *ast.CallExpr:
		p.line("call %s", n.Callee)
		p.dive()
		for _, a := range n.Args {
			p.PrintExpr(a)
		}
		p.rise()

	case *ast.IfExpr:
		p.line("if")
		p.dive()
		p.PrintExpr(n.Cond)
		p.line("then")
		p.dive()
		p.PrintExpr(n.Then)
		p.rise()
		if n.Else != nil {
			p.line("else")
			p.dive()
			p.PrintExpr(n.Else)
			p.rise()
		}
		p.rise()

	case *ast.BlockExpr:
		p.line("block")
		p.dive()
		for _, stmt := range n.Body {
			p.PrintExpr(stmt)
		}
		p.rise()

	case *ast.DeclExpr:
		for _, d := range n.Decls {
			p.line("decl %s %s", mutSpelling(d.Mutability), d.Bound)
			p.dive()
			p.PrintExpr(d.Value)
			p.rise()
		}

	case *ast.LetExpr:
		p.line("let")
		p.dive()
		for _, d := range n.Decls {
			p.line("%s %s", mutSpelling(d.Mutability), d.Bound)
			p.dive()
			p.PrintExpr(d.Value)
			p.rise()
		}
		p.line("in")
		p.dive()
		p.PrintExpr(n.In)
		p.rise()
		p.rise()

	case *ast.WhileExpr:
		p.line("while")
		p.dive()
		p.PrintExpr(n.Cond)
		p.PrintExpr(n.Body)
		p.rise()

	default:
		p.line("<unknown %T>", e)
	}
}

func mutSpelling(m ast.MutKind) string {
	if m == ast.Mutable {
		return "mut"
	}
	return "val"
}
