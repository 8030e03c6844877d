// Package irgen lowers a resolved Nosh AST into an LLVM IR module via
// github.com/llir/llvm, following the structure of the teacher's
// pkg/ir.go: one Builder per module, one block-tracking context per
// function, and a value lookup table keyed by resolved symbol rather
// than by name.
package irgen

import (
	"fmt"
	"math"
	"strconv"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/nosh-lang/nosh/internal/ast"
	"github.com/nosh-lang/nosh/internal/resolve"
	"github.com/nosh-lang/nosh/internal/token"
)

// Builder lowers a whole module. Every Nosh value is an LLVM double;
// spec.md's "no type system" is realized literally as this single
// scalar type.
type Builder struct {
	mod     *ir.Module
	syms    *resolve.Result
	llvmFns map[string]*ir.Func
}

func zero() *constant.Float { return constant.NewFloat(types.Double, 0.0) }
func nan() *constant.Float  { return constant.NewFloat(types.Double, math.NaN()) }

// Generate builds a complete *ir.Module from a resolved Nosh module.
// It returns every error encountered rather than stopping at the
// first; a non-empty error slice means the module is not safe to
// assemble.
func Generate(mod *ast.Module, syms *resolve.Result) (*ir.Module, []error) {
	b := &Builder{mod: ir.NewModule(), syms: syms, llvmFns: make(map[string]*ir.Func)}
	var errs []error

	defineBuiltins(b)

	for i := range mod.Items {
		item := &mod.Items[i]
		proto := item.Proto()
		params := make([]*ir.Param, len(proto.Args))
		for i, a := range proto.Args {
			params[i] = ir.NewParam(a.Name, types.Double)
		}
		b.llvmFns[proto.Name] = b.mod.NewFunc(proto.Name, types.Double, params...)
	}

	for i := range mod.Items {
		item := &mod.Items[i]
		if item.Func == nil {
			continue
		}
		if err := b.buildFunction(item.Func); err != nil {
			errs = append(errs, err)
		}
	}

	return b.mod, errs
}

// fnCtx tracks per-function codegen state: the current insertion
// block and the alloca backing each resolved local symbol. Grounded
// on the teacher's LLVMIRBuilder, which plays the same role with a
// simpler (non-alloca) ValueLookup; Nosh needs allocas because `mut`
// bindings are reassigned from inside while-loop bodies, which plain
// SSA values can't represent without the builder itself doing
// mem2reg-style phi placement.
type fnCtx struct {
	b       *Builder
	fn      *ir.Func
	block   *ir.Block
	allocas map[resolve.SymId]*ir.InstAlloca
}

func (b *Builder) buildFunction(fn *ast.Function) error {
	llvmFn := b.llvmFns[fn.Proto.Name]
	entry := llvmFn.NewBlock("entry")

	fc := &fnCtx{b: b, fn: llvmFn, block: entry, allocas: make(map[resolve.SymId]*ir.InstAlloca)}

	for i, arg := range fn.Proto.Args {
		sym, ok := b.syms.NodeSym[arg.Id]
		if !ok {
			return fmt.Errorf("internal error: argument %q has no resolved symbol", arg.Name)
		}
		a := fc.allocaFor(sym)
		fc.block.NewStore(llvmFn.Params[i], a)
	}

	result, err := fc.emit(fn.Body)
	if err != nil {
		return err
	}
	fc.block.NewRet(result)
	return nil
}

func (fc *fnCtx) allocaFor(sym resolve.SymId) *ir.InstAlloca {
	if a, ok := fc.allocas[sym]; ok {
		return a
	}
	a := fc.block.NewAlloca(types.Double)
	fc.allocas[sym] = a
	return a
}

func (fc *fnCtx) newBlock(name string) *ir.Block {
	return fc.fn.NewBlock(name)
}

// emit lowers a single expression, returning the SSA value it
// evaluates to (every Nosh expression has a value, per spec.md §3).
func (fc *fnCtx) emit(e ast.Expr) (value.Value, error) {
	switch n := e.(type) {
	case *ast.LitExpr:
		return fc.emitLit(n)
	case *ast.VarExpr:
		return fc.emitVar(n)
	case *ast.BinaryExpr:
		return fc.emitBinary(n)
	case *ast.CallExpr:
		return fc.emitCall(n)
	case *ast.BlockExpr:
		return fc.emitBlock(n)
	case *ast.DeclExpr:
		return fc.emitDecl(n)
	case *ast.LetExpr:
		return fc.emitLet(n)
	case *ast.IfExpr:
		return fc.emitIf(n)
	case *ast.WhileExpr:
		return fc.emitWhile(n)
	default:
		return nil, fmt.Errorf("internal error: irgen: unhandled expression type %T", e)
	}
}

func (fc *fnCtx) emitLit(n *ast.LitExpr) (value.Value, error) {
	switch n.Kind {
	case token.LitInt, token.LitFloat:
		f, err := strconv.ParseFloat(n.Span, 64)
		if err != nil {
			return nil, fmt.Errorf("internal error: malformed numeric literal %q: %w", n.Span, err)
		}
		return constant.NewFloat(types.Double, f), nil
	default:
		return nil, fmt.Errorf("literal kind of %q is not representable as a float value", n.Span)
	}
}

func (fc *fnCtx) emitVar(n *ast.VarExpr) (value.Value, error) {
	sym, ok := fc.b.syms.NodeSym[n.NodeID()]
	if !ok {
		return nil, fmt.Errorf("internal error: variable %q has no resolved symbol", n.Name)
	}
	a, ok := fc.allocas[sym]
	if !ok {
		return nil, fmt.Errorf("internal error: variable %q read before its storage was allocated", n.Name)
	}
	return fc.block.NewLoad(types.Double, a), nil
}

func (fc *fnCtx) emitBinary(n *ast.BinaryExpr) (value.Value, error) {
	if n.Op == ast.OpAssign {
		lhs, ok := n.Lhs.(*ast.VarExpr)
		if !ok {
			return nil, fmt.Errorf("left-hand side of '=' must be a variable")
		}
		rhs, err := fc.emit(n.Rhs)
		if err != nil {
			return nil, err
		}
		sym, ok := fc.b.syms.NodeSym[lhs.NodeID()]
		if !ok {
			return nil, fmt.Errorf("internal error: assignment target %q has no resolved symbol", lhs.Name)
		}
		a, ok := fc.allocas[sym]
		if !ok {
			return nil, fmt.Errorf("cannot assign to %q before it is declared", lhs.Name)
		}
		fc.block.NewStore(rhs, a)
		return rhs, nil
	}

	lhs, err := fc.emit(n.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := fc.emit(n.Rhs)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case ast.OpAdd:
		return fc.block.NewFAdd(lhs, rhs), nil
	case ast.OpSub:
		return fc.block.NewFSub(lhs, rhs), nil
	case ast.OpMul:
		return fc.block.NewFMul(lhs, rhs), nil
	case ast.OpDiv:
		return fc.block.NewFDiv(lhs, rhs), nil
	case ast.OpEt:
		return fc.boolToFloat(fc.block.NewFCmp(enum.FPredOEQ, lhs, rhs)), nil
	case ast.OpLt:
		return fc.boolToFloat(fc.block.NewFCmp(enum.FPredOLT, lhs, rhs)), nil
	case ast.OpLtEt:
		return fc.boolToFloat(fc.block.NewFCmp(enum.FPredOLE, lhs, rhs)), nil
	case ast.OpLogicalAnd:
		return fc.boolToFloat(fc.block.NewAnd(fc.truthy(lhs), fc.truthy(rhs))), nil
	case ast.OpLogicalOr:
		return fc.boolToFloat(fc.block.NewOr(fc.truthy(lhs), fc.truthy(rhs))), nil
	default:
		return nil, fmt.Errorf("internal error: irgen: unhandled binary operator %v", n.Op)
	}
}

// truthy converts a double to an i1 by comparing it against 0.0.
func (fc *fnCtx) truthy(v value.Value) value.Value {
	return fc.block.NewFCmp(enum.FPredONE, v, zero())
}

// boolToFloat widens an i1 back to Nosh's only value type.
func (fc *fnCtx) boolToFloat(v value.Value) value.Value {
	return fc.block.NewUIToFP(v, types.Double)
}

func (fc *fnCtx) emitCall(n *ast.CallExpr) (value.Value, error) {
	fn, ok := fc.b.llvmFns[n.Callee]
	if !ok {
		return nil, fmt.Errorf("call to undefined function %q", n.Callee)
	}
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := fc.emit(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return fc.block.NewCall(fn, args...), nil
}

func (fc *fnCtx) emitBlock(n *ast.BlockExpr) (value.Value, error) {
	if len(n.Body) == 0 {
		return zero(), nil
	}
	var last value.Value
	for _, stmt := range n.Body {
		v, err := fc.emit(stmt)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

func (fc *fnCtx) emitDecl(n *ast.DeclExpr) (value.Value, error) {
	for _, d := range n.Decls {
		v, err := fc.emit(d.Value)
		if err != nil {
			return nil, err
		}
		sym, ok := fc.symForDecl(d)
		if !ok {
			return nil, fmt.Errorf("internal error: binding %q has no resolved symbol", d.Bound)
		}
		a := fc.allocaFor(sym)
		fc.block.NewStore(v, a)
	}
	return nan(), nil
}

// symForDecl recovers the resolved symbol for a VarDecl, recorded by
// internal/resolve under the binding's own NodeId.
func (fc *fnCtx) symForDecl(d ast.VarDecl) (resolve.SymId, bool) {
	sym, ok := fc.b.syms.NodeSym[d.Id]
	return sym, ok
}

func (fc *fnCtx) emitLet(n *ast.LetExpr) (value.Value, error) {
	for _, d := range n.Decls {
		v, err := fc.emit(d.Value)
		if err != nil {
			return nil, err
		}
		sym, ok := fc.symForDecl(d)
		if !ok {
			return nil, fmt.Errorf("internal error: let-binding %q has no resolved symbol", d.Bound)
		}
		a := fc.allocaFor(sym)
		fc.block.NewStore(v, a)
	}
	return fc.emit(n.In)
}

func (fc *fnCtx) emitIf(n *ast.IfExpr) (value.Value, error) {
	cond, err := fc.emit(n.Cond)
	if err != nil {
		return nil, err
	}
	condBool := fc.truthy(cond)

	thenBlock := fc.newBlock("if.then")
	elseBlock := fc.newBlock("if.else")
	mergeBlock := fc.newBlock("if.merge")

	fc.block.NewCondBr(condBool, thenBlock, elseBlock)

	fc.block = thenBlock
	thenVal, err := fc.emit(n.Then)
	if err != nil {
		return nil, err
	}
	thenEnd := fc.block
	thenEnd.NewBr(mergeBlock)

	fc.block = elseBlock
	var elseVal value.Value = zero()
	if n.Else != nil {
		elseVal, err = fc.emit(n.Else)
		if err != nil {
			return nil, err
		}
	}
	elseEnd := fc.block
	elseEnd.NewBr(mergeBlock)

	fc.block = mergeBlock
	phi := mergeBlock.NewPhi(
		ir.NewIncoming(thenVal, thenEnd),
		ir.NewIncoming(elseVal, elseEnd),
	)
	return phi, nil
}

func (fc *fnCtx) emitWhile(n *ast.WhileExpr) (value.Value, error) {
	condBlock := fc.newBlock("while.cond")
	bodyBlock := fc.newBlock("while.body")
	afterBlock := fc.newBlock("while.after")

	fc.block.NewBr(condBlock)

	fc.block = condBlock
	cond, err := fc.emit(n.Cond)
	if err != nil {
		return nil, err
	}
	condBlock.NewCondBr(fc.truthy(cond), bodyBlock, afterBlock)

	fc.block = bodyBlock
	if _, err := fc.emit(n.Body); err != nil {
		return nil, err
	}
	fc.block.NewBr(condBlock)

	fc.block = afterBlock
	return nan(), nil
}
