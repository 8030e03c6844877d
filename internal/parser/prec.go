package parser

import (
	"github.com/nosh-lang/nosh/internal/ast"
	"github.com/nosh-lang/nosh/internal/token"
)

// opEntry pairs a binary operator spelling with its semantic operator
// and binding precedence. Grounded on original_source's
// src/parse/op_prec.rs BinOpPrec table; all operators here are
// left-associative.
type opEntry struct {
	op   ast.BinaryOp
	prec int
}

var opTable = map[string]opEntry{
	"=":  {ast.OpAssign, 1},
	"&&": {ast.OpLogicalAnd, 2},
	"||": {ast.OpLogicalOr, 2},
	"==": {ast.OpEt, 3},
	"<":  {ast.OpLt, 3},
	"<=": {ast.OpLtEt, 3},
	"+":  {ast.OpAdd, 4},
	"-":  {ast.OpSub, 4},
	"*":  {ast.OpMul, 5},
	"/":  {ast.OpDiv, 5},
}

// peekOperator reports the operator at the cursor, if any. Only Sigil
// and Assigner tokens are ever operators (spec.md's Assigner gap is
// resolved by accepting both kinds here, same as original_source's
// parse_binary_op: AnyOf(Token::Sigil, Token::Assigner)).
func (p *Parser) peekOperator() (opEntry, bool) {
	t, ok := p.peek()
	if !ok {
		return opEntry{}, false
	}
	if t.Kind != token.KindSigil && t.Kind != token.KindAssigner {
		return opEntry{}, false
	}
	e, ok := opTable[t.Span]
	return e, ok
}

// parseBinaryExpr implements iterative precedence climbing: parse one
// primary/call expression, repeatedly fold in higher-or-equal-precedence
// operators, then check for a Python-style trailing-if clause on the
// resulting expression. Grounded on original_source/src/parse/gram.rs's
// parse_binary_expr/parse_binary_lhs/parse_binary_rhs for the climb, and
// on src/parse/syntax/stmt.rs's BinaryExpr Syntax impl (which wraps
// PlainBinaryExpr with exactly this trailing-if loop) for the rest.
func (p *Parser) parseBinaryExpr(minPrec int) ast.Expr {
	lhs := p.parseUnaryLevel()
	if lhs == nil {
		return nil
	}
	lhs = p.parseBinaryRHS(minPrec, lhs)
	if lhs == nil {
		return nil
	}
	return p.parseTrailingIf(lhs)
}

// parseTrailingIf implements spec.md §4.2/§6's trailing-if production
// (expr ::= binexpr ('if' binexpr 'else' binexpr)*): "body if cond else
// elseBody", distinct from the block-form IfExpr. Chains
// right-associatively — "x if a else y if b else z" parses as
// "x if a else (y if b else z)" — because elseBody is itself parsed via
// parseBinaryExpr, which recurses into parseTrailingIf before returning,
// consuming any further chain before the outer loop gets a chance to see
// it. Grounded on original_source/src/parse/syntax/stmt.rs's
// parse_trailing_if_expr, looped by the BinaryExpr Syntax impl.
func (p *Parser) parseTrailingIf(body ast.Expr) ast.Expr {
	for p.checkKw(token.KwIf) {
		id := p.nextID()
		p.expectKw(token.KwIf)
		cond := p.parseBinaryExpr(1)
		p.expectKw(token.KwElse)
		elseBody := p.parseBinaryExpr(1)
		body = ast.NewIf(id, cond, body, elseBody)
	}
	return body
}

func (p *Parser) parseBinaryRHS(minPrec int, lhs ast.Expr) ast.Expr {
	for {
		entry, ok := p.peekOperator()
		if !ok || entry.prec < minPrec {
			return lhs
		}

		opTok, _ := p.advance()
		p.skipAfterOperator()

		rhs := p.parseUnaryLevel()
		if rhs == nil {
			return lhs
		}

		for {
			next, ok := p.peekOperator()
			if !ok || next.prec <= entry.prec {
				break
			}
			rhs = p.parseBinaryRHS(entry.prec+1, rhs)
		}

		lhs = ast.NewBinary(p.nextID(), entry.op, lhs, rhs)
		_ = opTok
	}
}

// parseUnaryLevel parses a single operand of a binary expression.
// original_source's UnaryExpr grammar rule is left unimplemented
// (`unimplemented!()`); Nosh has no prefix operators, so this is just
// the keyword-led/call/primary level (parseTrailingExpr), with no
// trailing-if clause of its own — that only attaches to the fully
// climbed result, in parseBinaryExpr.
func (p *Parser) parseUnaryLevel() ast.Expr {
	return p.parseTrailingExpr()
}
