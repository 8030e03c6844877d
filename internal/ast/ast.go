// Package ast defines Nosh's abstract syntax tree: expressions, items,
// and the monotonic node identifiers the resolver and IR builder key
// their side tables on.
package ast

import "github.com/nosh-lang/nosh/internal/token"

// NodeId is a monotonically increasing identifier assigned to every
// AST node as it is constructed. The resolver's symbol map and the IR
// builder's value lookup both key off NodeId rather than pointer
// identity, so trees can be copied or printed without losing the
// association.
type NodeId uint32

// IdGen hands out increasing NodeIds. The zero value is ready to use.
type IdGen struct {
	next NodeId
}

// Next returns the next unused NodeId.
func (g *IdGen) Next() NodeId {
	id := g.next
	g.next++
	return id
}

// Peek returns the next NodeId Next would hand out, without
// consuming it. Useful for a caller that wants to seed a second
// IdGen past everything an earlier pass already allocated.
func (g *IdGen) Peek() NodeId {
	return g.next
}

// Seed advances the generator so its next Next() call returns at
// least id.
func (g *IdGen) Seed(id NodeId) {
	if id > g.next {
		g.next = id
	}
}

// BinaryOp enumerates Nosh's binary operators, ordered to match their
// source spellings; precedence lives in the parser, not here.
type BinaryOp uint8

const (
	OpAssign BinaryOp = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpLogicalAnd
	OpLogicalOr
	OpEt
	OpLt
	OpLtEt
)

func (op BinaryOp) String() string {
	switch op {
	case OpAssign:
		return "="
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpLogicalAnd:
		return "&&"
	case OpLogicalOr:
		return "||"
	case OpEt:
		return "=="
	case OpLt:
		return "<"
	case OpLtEt:
		return "<="
	default:
		return "BinaryOp(?)"
	}
}

// MutKind distinguishes a val binding (Const) from a mut binding
// (Mutable). The IR builder does not consult it when lowering Assign,
// so assignment to a Const binding is not rejected.
type MutKind uint8

const (
	Const MutKind = iota
	Mutable
)

// VarDecl names a single binding introduced by a Decl or one clause of
// a Let expression. Id identifies the binding itself (distinct from
// any NodeId of its Value), so the resolver can record which symbol
// this particular binding introduces.
type VarDecl struct {
	Id         NodeId
	Mutability MutKind
	Bound      string
	Value      Expr
}

// Expr is the common interface implemented by every expression node.
// Nosh has no statements distinct from expressions; everything that
// appears in a block is an Expr.
type Expr interface {
	NodeID() NodeId
	exprNode()
}

type exprBase struct {
	Id NodeId
}

func (e exprBase) NodeID() NodeId { return e.Id }
func (exprBase) exprNode()        {}

// VarExpr references a previously bound name.
type VarExpr struct {
	exprBase
	Name string
}

// LitExpr is a literal value carried verbatim from its token span;
// the IR builder parses Span according to Kind when it lowers the
// literal to a constant.
type LitExpr struct {
	exprBase
	Kind token.LitKind
	Span string
}

// BinaryExpr applies Op to Lhs and Rhs. When Op is OpAssign, Lhs must
// be a VarExpr; this is enforced during IR emission, not by the
// resolver (spec.md leaves it to the backend). The binding's
// mutability is not checked.
type BinaryExpr struct {
	exprBase
	Op       BinaryOp
	Lhs, Rhs Expr
}

// CallExpr invokes Callee (an identifier) with Args.
type CallExpr struct {
	exprBase
	Callee string
	Args   []Expr
}

// IfExpr is a conditional expression. Else is nil when the `if` has no
// else clause, in which case it behaves as an empty Block (evaluates
// to 0.0). Trailing "if ... else if ..." chains parse as a right
// nested IfExpr in Else.
type IfExpr struct {
	exprBase
	Cond       Expr
	Then, Else Expr
}

// BlockExpr is a `do ... end` sequence. An empty block evaluates to
// the constant 0.0.
type BlockExpr struct {
	exprBase
	Body []Expr
}

// DeclExpr introduces one or more bindings that remain visible for the
// rest of the enclosing block. DeclExpr itself evaluates to NaN.
type DeclExpr struct {
	exprBase
	Decls []VarDecl
}

// LetExpr introduces bindings visible only within In, evaluating to
// In's value. Bindings resolve sequentially: a later binding may see
// an earlier one in the same LetExpr, but not the other way round.
type LetExpr struct {
	exprBase
	Decls []VarDecl
	In    Expr
}

// WhileExpr loops while Cond holds, evaluating Body each iteration.
// WhileExpr itself evaluates to NaN.
type WhileExpr struct {
	exprBase
	Cond Expr
	Body Expr
}

func NewVar(id NodeId, name string) *VarExpr {
	return &VarExpr{exprBase{id}, name}
}

func NewLit(id NodeId, kind token.LitKind, span string) *LitExpr {
	return &LitExpr{exprBase{id}, kind, span}
}

func NewBinary(id NodeId, op BinaryOp, lhs, rhs Expr) *BinaryExpr {
	return &BinaryExpr{exprBase{id}, op, lhs, rhs}
}

func NewCall(id NodeId, callee string, args []Expr) *CallExpr {
	return &CallExpr{exprBase{id}, callee, args}
}

func NewIf(id NodeId, cond, then, els Expr) *IfExpr {
	return &IfExpr{exprBase{id}, cond, then, els}
}

func NewBlock(id NodeId, body []Expr) *BlockExpr {
	return &BlockExpr{exprBase{id}, body}
}

func NewDecl(id NodeId, decls []VarDecl) *DeclExpr {
	return &DeclExpr{exprBase{id}, decls}
}

func NewLet(id NodeId, decls []VarDecl, in Expr) *LetExpr {
	return &LetExpr{exprBase{id}, decls, in}
}

func NewWhile(id NodeId, cond, body Expr) *WhileExpr {
	return &WhileExpr{exprBase{id}, cond, body}
}

// FuncArg is one formal parameter of a function prototype.
type FuncArg struct {
	Id   NodeId
	Name string
}

// FuncProto is a function's name and parameter list, shared between a
// full Function definition and an Extern declaration.
type FuncProto struct {
	Name string
	Args []FuncArg
}

// Function is a top-level `fun ... end` definition.
type Function struct {
	Proto FuncProto
	Body  Expr
}

// Extern is an `extern name(args)` foreign function declaration; it
// has a prototype but no body.
type Extern struct {
	Proto FuncProto
}

// Item is a top-level declaration: either a Function or an Extern.
// Exactly one of Func/Extern is non-nil.
type Item struct {
	Id     NodeId
	Func   *Function
	Extern *Extern
}

// Name returns the item's function name regardless of which kind it is.
func (it *Item) Name() string {
	if it.Func != nil {
		return it.Func.Proto.Name
	}
	return it.Extern.Proto.Name
}

// Proto returns the item's prototype regardless of which kind it is.
func (it *Item) Proto() FuncProto {
	if it.Func != nil {
		return it.Func.Proto
	}
	return it.Extern.Proto
}

// Module is a complete parsed source file: an optional declared name
// and its top-level items in source order.
type Module struct {
	Name  string
	Items []Item
}
