// Package resolve performs Nosh's two-phase name resolution: first
// every top-level item is registered into the module scope, then each
// function body is resolved against a scope stack seeded with its
// arguments. The result is a flat NodeId -> SymId map the IR builder
// consults instead of re-walking scopes.
package resolve

import (
	"fmt"

	"github.com/nosh-lang/nosh/internal/ast"
)

// SymId is a monotonic identifier assigned to every resolved binding
// (function, argument, val/mut/let binding). Grounded on
// original_source/src/ast/symbol.rs's SymId.
type SymId uint32

// Result is the output of resolving a module: the function symbol
// table and the NodeId -> SymId map recording what every Var/Call node
// resolved to.
type Result struct {
	Funcs   map[string]SymId
	NodeSym map[ast.NodeId]SymId
}

type scope map[string]SymId

// Resolver walks a parsed module and produces a Result, accumulating
// errors rather than aborting at the first one.
type Resolver struct {
	scopes  []scope
	next    SymId
	nodeSym map[ast.NodeId]SymId
	funcs   map[string]SymId
	errors  []error
}

// New constructs a ready-to-use Resolver.
func New() *Resolver {
	return &Resolver{
		nodeSym: make(map[ast.NodeId]SymId),
		funcs:   make(map[string]SymId),
	}
}

// Resolve runs both resolution phases over mod.
func Resolve(mod *ast.Module) (*Result, []error) {
	r := New()
	r.resolveTopLevel(mod)
	for i := range mod.Items {
		item := &mod.Items[i]
		if item.Func != nil {
			r.resolveFunctionBody(item.Func)
		}
	}
	return &Result{Funcs: r.funcs, NodeSym: r.nodeSym}, r.errors
}

func (r *Resolver) newSym() SymId {
	id := r.next
	r.next++
	return id
}

func (r *Resolver) errorf(format string, args ...interface{}) {
	r.errors = append(r.errors, fmt.Errorf(format, args...))
}

// resolveTopLevel registers every item's name into the module's
// function table. Grounded on
// original_source/src/ast_pass/name_resolve.rs's resolve_top_level_names.
func (r *Resolver) resolveTopLevel(mod *ast.Module) {
	// internal/irgen defines print in every module, so calls to it
	// resolve without an extern declaration.
	r.funcs["print"] = r.newSym()
	for i := range mod.Items {
		item := &mod.Items[i]
		name := item.Name()
		if _, exists := r.funcs[name]; exists {
			r.errorf("redefined function %q", name)
			continue
		}
		sym := r.newSym()
		r.funcs[name] = sym
		r.nodeSym[item.Id] = sym
	}
}

// pushScope starts a new lexical scope.
func (r *Resolver) pushScope() {
	r.scopes = append(r.scopes, scope{})
}

// popScope discards the innermost lexical scope.
func (r *Resolver) popScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// lookup searches from the innermost scope outward.
func (r *Resolver) lookup(name string) (SymId, bool) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if sym, ok := r.scopes[i][name]; ok {
			return sym, true
		}
	}
	return 0, false
}

// insertLocal binds name to a fresh symbol in the innermost scope.
// Nosh disallows shadowing, so a name already visible in any
// enclosing scope is a RedefinedLocal error, mirroring
// original_source/src/ast/symbol.rs's ScopedInsertErr::RedefinedLocal.
func (r *Resolver) insertLocal(name string) SymId {
	if _, exists := r.lookup(name); exists {
		r.errorf("%q redefines a binding already in scope", name)
	}
	sym := r.newSym()
	r.scopes[len(r.scopes)-1][name] = sym
	return sym
}

func (r *Resolver) resolveFunctionBody(fn *ast.Function) {
	r.pushScope()
	for _, arg := range fn.Proto.Args {
		sym := r.insertLocal(arg.Name)
		r.nodeSym[arg.Id] = sym
	}
	r.resolveExpr(fn.Body)
	r.popScope()
}

// resolveExpr resolves e and every expression it contains. Grounded
// on original_source/src/ast_pass/name_resolve.rs's resolve_expr match
// over ExprKind.
func (r *Resolver) resolveExpr(e ast.Expr) {
	if e == nil {
		return
	}

	switch n := e.(type) {
	case *ast.VarExpr:
		sym, ok := r.lookup(n.Name)
		if !ok {
			r.errorf("use of undefined name %q", n.Name)
			return
		}
		r.nodeSym[n.NodeID()] = sym

	case *ast.LitExpr:
		// literals bind no names

	case *ast.BinaryExpr:
		r.resolveExpr(n.Lhs)
		r.resolveExpr(n.Rhs)

	case *ast.CallExpr:
		// Arguments resolve before the callee, per spec.md §4.3's Call
		// row, so diagnostics accumulate in argument-then-callee order.
		for _, a := range n.Args {
			r.resolveExpr(a)
		}
		if sym, ok := r.funcs[n.Callee]; ok {
			r.nodeSym[n.NodeID()] = sym
		} else {
			r.errorf("call to undefined function %q", n.Callee)
		}

	case *ast.IfExpr:
		r.resolveExpr(n.Cond)
		r.resolveExpr(n.Then)
		r.resolveExpr(n.Else)

	case *ast.BlockExpr:
		r.pushScope()
		for _, stmt := range n.Body {
			r.resolveExpr(stmt)
		}
		r.popScope()

	case *ast.DeclExpr:
		// Decl bindings are inserted into whatever scope is currently
		// innermost (the enclosing block), and stay visible for the
		// rest of that block. Each binding's value is resolved before
		// the binding itself becomes visible, so `val x = x` is
		// always a use-before-def error.
		for _, d := range n.Decls {
			r.resolveExpr(d.Value)
			sym := r.insertLocal(d.Bound)
			r.nodeSym[d.Id] = sym
		}

	case *ast.LetExpr:
		// The scope pushes once, before any binding is inserted, and
		// each binding's value resolves immediately before that binding
		// is inserted: binding i's initializer can see bindings
		// j < i (already inserted) but never j > i (not yet inserted),
		// per spec.md §4.3 and original_source's ExprKind::Let handling
		// in ast_pass/name_resolve.rs. Resolution is sequential, not
		// mutual — it is not a letrec.
		r.pushScope()
		for _, d := range n.Decls {
			r.resolveExpr(d.Value)
			sym := r.insertLocal(d.Bound)
			r.nodeSym[d.Id] = sym
		}
		r.resolveExpr(n.In)
		r.popScope()

	case *ast.WhileExpr:
		r.resolveExpr(n.Cond)
		r.resolveExpr(n.Body)

	default:
		r.errorf("internal error: resolve: unhandled expression type %T", e)
	}
}
