// Package parser turns a Nosh token stream into an ast.Module. The
// driver is a small buffered cursor with one token of lookahead beyond
// the current position; grammar rules live in grammar.go and the
// binary-operator precedence climb lives in prec.go.
package parser

import (
	"fmt"

	"github.com/nosh-lang/nosh/internal/ast"
	"github.com/nosh-lang/nosh/internal/lexer"
	"github.com/nosh-lang/nosh/internal/token"
)

// Parser consumes a filtered token stream (whitespace and comments
// already dropped) and builds an ast.Module, accumulating diagnostics
// rather than aborting on the first bad construct.
type Parser struct {
	filename string
	toks     []token.Data
	pos      int

	ids    ast.IdGen
	errors []error
}

// New constructs a Parser from already-lexed, unfiltered tokens.
func New(filename string, toks []token.Data) *Parser {
	filtered := make([]token.Data, 0, len(toks))
	for _, t := range toks {
		if t.IsSkippable() {
			continue
		}
		filtered = append(filtered, t)
	}
	return &Parser{filename: filename, toks: filtered}
}

// Parse lexes src and parses it as a complete module.
func Parse(filename, src string) (*ast.Module, []error) {
	toks := lexer.New(src).Run()
	p := New(filename, toks)
	mod := p.ParseModule()
	return mod, p.errors
}

// ParseLine parses a single REPL line as one expression. Top-level
// items (`fun`/`extern`) are not accepted here; such a line is
// reported as a parse error. It reports ErrIncomplete when the line looks
// like the start of a construct that is still open (e.g. an
// unterminated `do` block), so the REPL can prompt for a continuation
// instead of reporting a hard error. nextID is the first NodeId not
// used while parsing this line, so a caller that wraps the result in
// more AST (the REPL's anonymous-function wrapper) can keep
// allocating IDs without risking a collision with IDs inside the
// parsed expression.
func ParseLine(src string) (result ast.Expr, nextID ast.NodeId, err error) {
	toks := lexer.New(src).Run()
	p := New("<repl>", toks)
	p.skipNewlines()
	if p.atEOF() {
		return nil, p.ids.Peek(), nil
	}
	e := p.parseExpr()
	if len(p.errors) > 0 {
		if p.atEOF() {
			return nil, p.ids.Peek(), ErrIncomplete
		}
		return nil, p.ids.Peek(), p.errors[0]
	}
	return e, p.ids.Peek(), nil
}

// ErrIncomplete signals a REPL line that ended mid-construct and
// should be completed by appending another line rather than reported
// as an error, mirroring original_source's RecoveryInfo::EarlyEOF.
var ErrIncomplete = fmt.Errorf("incomplete input")

func (p *Parser) nextID() ast.NodeId { return p.ids.Next() }

func (p *Parser) atEOF() bool { return p.pos >= len(p.toks) }

func (p *Parser) peek() (token.Data, bool) {
	if p.atEOF() {
		return token.Data{}, false
	}
	return p.toks[p.pos], true
}

func (p *Parser) peekAt(n int) (token.Data, bool) {
	i := p.pos + n
	if i < 0 || i >= len(p.toks) {
		return token.Data{}, false
	}
	return p.toks[i], true
}

func (p *Parser) advance() (token.Data, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

// skipAfterOperator implements original_source's parser rule that a
// newline immediately following a Sigil/Assigner token is insignificant,
// so a binary expression may continue on the next source line right
// after its operator.
func (p *Parser) skipAfterOperator() {
	for {
		t, ok := p.peek()
		if !ok || t.Kind != token.KindNewline {
			return
		}
		p.pos++
	}
}

func (p *Parser) skipNewlines() {
	for {
		t, ok := p.peek()
		if !ok || (t.Kind != token.KindNewline && t.Kind != token.KindSemiColon) {
			return
		}
		p.pos++
	}
}

func (p *Parser) check(k token.Kind) bool {
	t, ok := p.peek()
	return ok && t.Kind == k
}

func (p *Parser) checkKw(kw token.KwKind) bool {
	t, ok := p.peek()
	return ok && t.Kind == token.KindKeyword && t.Kw == kw
}

func (p *Parser) expect(k token.Kind) (token.Data, bool) {
	t, ok := p.peek()
	if !ok || t.Kind != k {
		p.errorf(t, "expected %s, found %s", k, describe(t, ok))
		return token.Data{}, false
	}
	p.pos++
	return t, true
}

func (p *Parser) expectKw(kw token.KwKind) bool {
	t, ok := p.peek()
	if !ok || t.Kind != token.KindKeyword || t.Kw != kw {
		p.errorf(t, "expected keyword %v, found %s", kw, describe(t, ok))
		return false
	}
	p.pos++
	return true
}

func describe(t token.Data, ok bool) string {
	if !ok {
		return "end of input"
	}
	return t.String()
}

func (p *Parser) errorf(t token.Data, format string, args ...interface{}) {
	loc := t.Loc
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, fmt.Errorf("%s:%s: %s", p.filename, loc, msg))
}

// recoverToLineEnd advances past tokens until the next newline,
// semicolon, or EOF, so a single malformed statement doesn't cascade
// into spurious errors for the rest of the block.
func (p *Parser) recoverToLineEnd() {
	for {
		t, ok := p.peek()
		if !ok || t.Kind == token.KindNewline || t.Kind == token.KindSemiColon {
			return
		}
		p.pos++
	}
}
