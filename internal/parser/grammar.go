package parser

import (
	"github.com/nosh-lang/nosh/internal/ast"
	"github.com/nosh-lang/nosh/internal/token"
)

// ParseModule parses a full source file: an optional `mod NAME` header
// followed by a sequence of top-level function and extern items.
// Grounded on original_source/src/parse/gram.rs's
// parse_module/parse_module_body.
func (p *Parser) ParseModule() *ast.Module {
	mod := &ast.Module{}
	p.skipNewlines()
	if p.checkKw(token.KwMod) {
		p.advance()
		if nameTok, ok := p.expect(token.KindIdent); ok {
			mod.Name = nameTok.Span
		}
		p.skipNewlines()
	}
	for !p.atEOF() {
		item, ok := p.parseItem()
		if ok {
			mod.Items = append(mod.Items, item)
		} else if !p.atEOF() {
			bad, _ := p.peek()
			p.errorf(bad, "unexpected token %s at top level", bad.String())
			p.pos++
		}
		p.skipNewlines()
	}
	return mod
}

func (p *Parser) parseItem() (ast.Item, bool) {
	switch {
	case p.checkKw(token.KwFun):
		return p.parseFunction(), true
	case p.checkKw(token.KwExtern):
		return p.parseExtern(), true
	default:
		return ast.Item{}, false
	}
}

func (p *Parser) parseFunction() ast.Item {
	id := p.nextID()
	p.expectKw(token.KwFun)
	proto := p.parseProto()
	body := p.parseBlockUntil(token.KwEnd)
	p.expectKw(token.KwEnd)
	return ast.Item{
		Id: id,
		Func: &ast.Function{
			Proto: proto,
			Body:  ast.NewBlock(p.nextID(), body),
		},
	}
}

func (p *Parser) parseExtern() ast.Item {
	id := p.nextID()
	p.expectKw(token.KwExtern)
	proto := p.parseProto()
	p.skipNewlines()
	return ast.Item{Id: id, Extern: &ast.Extern{Proto: proto}}
}

func (p *Parser) parseProto() ast.FuncProto {
	nameTok, _ := p.expect(token.KindIdent)
	p.expect(token.KindOpenParen)

	var args []ast.FuncArg
	if !p.check(token.KindClosedParen) {
		for {
			argTok, ok := p.expect(token.KindIdent)
			if ok {
				args = append(args, ast.FuncArg{Id: p.nextID(), Name: argTok.Span})
			}
			if p.check(token.KindComma) {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(token.KindClosedParen)
	return ast.FuncProto{Name: nameTok.Span, Args: args}
}

// parseBlockUntil parses statements separated by line ends until a
// keyword in stops is seen or input is exhausted.
func (p *Parser) parseBlockUntil(stops ...token.KwKind) []ast.Expr {
	var body []ast.Expr
	p.skipNewlines()
	for {
		if p.atEOF() || p.atAnyKw(stops...) {
			break
		}
		if e := p.parseStatement(); e != nil {
			body = append(body, e)
		}
		p.skipNewlines()
	}
	return body
}

func (p *Parser) atAnyKw(kws ...token.KwKind) bool {
	for _, kw := range kws {
		if p.checkKw(kw) {
			return true
		}
	}
	return false
}

// parseStatement parses one expression and guarantees forward
// progress, recovering past an unrecognized token rather than looping.
func (p *Parser) parseStatement() ast.Expr {
	start := p.pos
	e := p.parseExpr()
	if p.pos == start {
		if !p.atEOF() {
			bad, _ := p.peek()
			p.errorf(bad, "unexpected token %s", bad.String())
			p.pos++
		}
		return nil
	}
	return e
}

// parseExpr is the grammar's entry point for any expression position:
// the full binary-operator precedence climb, bottomed out at
// parseTrailingExpr for keyword-led constructs and atoms.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseBinaryExpr(1)
}

// parseTrailingExpr dispatches to the keyword-led expression forms,
// falling back to a call or primary atom. Named for
// original_source/src/parse/syntax/stmt.rs's parse_trailing_expr.
func (p *Parser) parseTrailingExpr() ast.Expr {
	switch {
	case p.checkKw(token.KwIf):
		return p.parseIf()
	case p.checkKw(token.KwLet):
		return p.parseLet()
	case p.checkKw(token.KwWhile):
		return p.parseWhile()
	case p.checkKw(token.KwDo):
		return p.parseDoBlock()
	case p.checkKw(token.KwVal) || p.checkKw(token.KwMut):
		return p.parseDecl()
	default:
		return p.parseCallOrPrimary()
	}
}

// parseIf parses `if cond <block> [else <block> | else if ...] end`.
// A trailing `else if` recurses directly rather than wrapping another
// block, so chains right-associate: grounded on
// original_source/src/parse/gram.rs's parse_if_expr_rec, which
// recurses the same way via a depth parameter.
func (p *Parser) parseIf() ast.Expr {
	id := p.nextID()
	p.expectKw(token.KwIf)
	cond := p.parseBinaryExpr(1)
	thenBody := p.parseBlockUntil(token.KwElse, token.KwEnd)
	thenExpr := ast.NewBlock(p.nextID(), thenBody)

	var elseExpr ast.Expr
	if p.checkKw(token.KwElse) {
		p.expectKw(token.KwElse)
		if p.checkKw(token.KwIf) {
			return ast.NewIf(id, cond, thenExpr, p.parseIf())
		}
		elseBody := p.parseBlockUntil(token.KwEnd)
		elseExpr = ast.NewBlock(p.nextID(), elseBody)
	}
	p.expectKw(token.KwEnd)
	return ast.NewIf(id, cond, thenExpr, elseExpr)
}

func (p *Parser) parseWhile() ast.Expr {
	id := p.nextID()
	p.expectKw(token.KwWhile)
	cond := p.parseBinaryExpr(1)
	body := p.parseBlockUntil(token.KwEnd)
	p.expectKw(token.KwEnd)
	return ast.NewWhile(id, cond, ast.NewBlock(p.nextID(), body))
}

func (p *Parser) parseDoBlock() ast.Expr {
	id := p.nextID()
	p.expectKw(token.KwDo)
	body := p.parseBlockUntil(token.KwEnd)
	p.expectKw(token.KwEnd)
	return ast.NewBlock(id, body)
}

// parseDecl parses a single `val NAME = expr` or `mut NAME = expr`
// binding. The Assigner token is required here, distinguishing a
// binding from the binary Assign operator used on an existing Var.
func (p *Parser) parseDecl() ast.Expr {
	id := p.nextID()
	mut := ast.Const
	if p.checkKw(token.KwMut) {
		mut = ast.Mutable
	}
	p.advance()

	nameTok, _ := p.expect(token.KindIdent)
	p.expect(token.KindAssigner)
	val := p.parseBinaryExpr(1)

	return ast.NewDecl(id, []ast.VarDecl{{Id: p.nextID(), Mutability: mut, Bound: nameTok.Span, Value: val}})
}

// parseLet parses `let NAME = expr [, NAME = expr ...] in expr`.
// Bindings are collected left to right but resolved sequentially by
// internal/resolve, not made visible to each other while parsing.
func (p *Parser) parseLet() ast.Expr {
	id := p.nextID()
	p.expectKw(token.KwLet)

	var decls []ast.VarDecl
	for {
		mut := ast.Const
		switch {
		case p.checkKw(token.KwMut):
			mut = ast.Mutable
			p.advance()
		case p.checkKw(token.KwVal):
			p.advance()
		}

		nameTok, _ := p.expect(token.KindIdent)
		p.expect(token.KindAssigner)
		val := p.parseBinaryExpr(1)
		decls = append(decls, ast.VarDecl{Id: p.nextID(), Mutability: mut, Bound: nameTok.Span, Value: val})

		if p.check(token.KindComma) {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}

	p.expectKw(token.KwIn)
	body := p.parseExpr()
	return ast.NewLet(id, decls, body)
}

// parseCallOrPrimary parses a literal, a variable reference, a call,
// or a parenthesized expression. Multi-element tuples are rejected
// with a diagnostic rather than a panic, per
// original_source/src/parse/syntax/stmt.rs's TupleExpr.
func (p *Parser) parseCallOrPrimary() ast.Expr {
	t, ok := p.peek()
	if !ok {
		p.errorf(t, "unexpected end of input")
		return nil
	}

	switch t.Kind {
	case token.KindLiteral:
		p.advance()
		return ast.NewLit(p.nextID(), t.Lit, t.Span)

	case token.KindIdent:
		p.advance()
		if p.check(token.KindOpenParen) {
			return p.parseCallArgs(t.Span)
		}
		return ast.NewVar(p.nextID(), t.Span)

	case token.KindOpenParen:
		return p.parseParenOrTuple()

	default:
		p.errorf(t, "unexpected token %s", t.String())
		p.advance()
		return nil
	}
}

func (p *Parser) parseParenOrTuple() ast.Expr {
	p.advance() // '('
	if p.check(token.KindClosedParen) {
		p.advance()
		return ast.NewBlock(p.nextID(), nil)
	}

	inner := p.parseExpr()
	if p.check(token.KindComma) {
		bad, _ := p.peek()
		p.errorf(bad, "tuples with more than one element are not supported")
		for !p.atEOF() && !p.check(token.KindClosedParen) {
			p.advance()
		}
	}
	p.expect(token.KindClosedParen)
	return inner
}

func (p *Parser) parseCallArgs(callee string) ast.Expr {
	id := p.nextID()
	p.expect(token.KindOpenParen)

	var args []ast.Expr
	if !p.check(token.KindClosedParen) {
		for {
			if arg := p.parseExpr(); arg != nil {
				args = append(args, arg)
			}
			if p.check(token.KindComma) {
				p.advance()
				p.skipNewlines()
				continue
			}
			break
		}
	}
	p.expect(token.KindClosedParen)
	return ast.NewCall(id, callee, args)
}
