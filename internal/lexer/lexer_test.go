package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nosh-lang/nosh/internal/token"
)

func TestLexer_ConcatenatedSpansReproduceSource(t *testing.T) {
	cases := []string{
		"fun add(a, b) a + b end",
		"val x := 1.5\nmut y = 2\nwhile y < 10 do y = y + 1 end",
		"// a comment\nfun f() 1 end",
	}
	for _, src := range cases {
		toks := New(src).Run()
		var rebuilt string
		for _, tok := range toks {
			rebuilt += tok.Span
		}
		assert.Equal(t, src, rebuilt, "spans must reconstruct the source exactly")
	}
}

func TestLexer_Keywords(t *testing.T) {
	var kws []token.Data
	for _, tok := range New("fun extern end mod do if else val let in mut while").Run() {
		if tok.Kind != token.KindWhitespace {
			kws = append(kws, tok)
		}
	}
	require.Len(t, kws, 12)
	for _, tok := range kws {
		assert.Equal(t, token.KindKeyword, tok.Kind)
	}
}

func TestLexer_IdentVsKeyword(t *testing.T) {
	toks := New("funky").Run()
	require.Len(t, toks, 1)
	assert.Equal(t, token.KindIdent, toks[0].Kind)
}

func TestLexer_Reserved(t *testing.T) {
	toks := New("class").Run()
	require.Len(t, toks, 1)
	assert.Equal(t, token.KindReserved, toks[0].Kind)
}

func TestLexer_IntAndFloat(t *testing.T) {
	toks := New("42 3.14 5.").Run()
	var lits []token.Data
	for _, tok := range toks {
		if tok.Kind == token.KindLiteral {
			lits = append(lits, tok)
		}
	}
	require.Len(t, lits, 3)
	assert.Equal(t, token.LitInt, lits[0].Lit)
	assert.Equal(t, "42", lits[0].Span)
	assert.Equal(t, token.LitFloat, lits[1].Lit)
	assert.Equal(t, "3.14", lits[1].Span)
	// a trailing dot not followed by a digit does not start a float
	assert.Equal(t, token.LitInt, lits[2].Lit)
	assert.Equal(t, "5", lits[2].Span)
}

func TestLexer_SigilRuns(t *testing.T) {
	toks := New("a <= b && c").Run()
	var sigils []string
	for _, tok := range toks {
		if tok.Kind == token.KindSigil {
			sigils = append(sigils, tok.Span)
		}
	}
	assert.Equal(t, []string{"<=", "&&"}, sigils)
}

func TestLexer_BareEqualsIsAssigner(t *testing.T) {
	toks := New("=").Run()
	require.Len(t, toks, 1)
	assert.Equal(t, token.KindAssigner, toks[0].Kind)
}

func TestLexer_MultiCharEqualsRunStaysSigil(t *testing.T) {
	toks := New("==").Run()
	require.Len(t, toks, 1)
	assert.Equal(t, token.KindSigil, toks[0].Kind)
	assert.Equal(t, "==", toks[0].Span)
}

func TestLexer_ColonVsWalrus(t *testing.T) {
	toks := New(": :=").Run()
	require.Len(t, toks, 3) // ColonSingle, Whitespace, Sigil
	assert.Equal(t, token.KindColonSingle, toks[0].Kind)
	assert.Equal(t, token.KindSigil, toks[2].Kind)
	assert.Equal(t, ":=", toks[2].Span)
}

func TestLexer_Comments(t *testing.T) {
	toks := New("a / b // trailing comment\nc").Run()
	var eolComments []string
	for _, tok := range toks {
		if tok.Kind == token.KindEOLComment {
			eolComments = append(eolComments, tok.Span)
		}
	}
	require.Len(t, eolComments, 1)
	assert.Equal(t, "// trailing comment", eolComments[0])
}

func TestLexer_UnknownChunkNeverFails(t *testing.T) {
	toks := New("a # $ b").Run()
	var unknown []string
	for _, tok := range toks {
		if tok.Kind == token.KindUnknownChunk {
			unknown = append(unknown, tok.Span)
		}
	}
	assert.NotEmpty(t, unknown)
}

func TestLexer_LineAndColumnTracking(t *testing.T) {
	toks := New("a\nbb").Run()
	var idents []token.Data
	for _, tok := range toks {
		if tok.Kind == token.KindIdent {
			idents = append(idents, tok)
		}
	}
	require.Len(t, idents, 2)
	assert.Equal(t, uint32(1), idents[0].Loc.Line)
	assert.Equal(t, uint32(1), idents[0].Loc.Column)
	assert.Equal(t, uint32(2), idents[1].Loc.Line)
	assert.Equal(t, uint32(1), idents[1].Loc.Column)
}
