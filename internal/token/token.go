// Package token defines the lexical vocabulary of Nosh: token kinds,
// source locations, and the keyword/reserved-word tables consulted by
// the lexer's post-processing step.
package token

import "fmt"

// Kind is an ID that correlates to the symbol a Token signifies.
type Kind uint16

//go:generate stringer -type=Kind -trimprefix=Kind
const (
	// KindUnknownChunk denotes a run of characters the lexer could not
	// classify. The lexer never fails outright; unrecognized input is
	// coalesced into chunks of this kind and left for the parser to reject.
	KindUnknownChunk Kind = iota

	// Structural
	KindEOLComment
	KindWhitespace
	KindNewline
	KindSemiColon
	KindOpenParen
	KindClosedParen
	KindComma
	KindColonSingle
	KindDot

	// Lexical
	KindIdent
	KindLiteral
	KindSigil
	KindAssigner

	// Keywords and reserved words
	KindKeyword
	KindReserved
)

// LitKind distinguishes the sub-kind of a KindLiteral token.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitChar
	LitStr
)

func (l LitKind) String() string {
	switch l {
	case LitInt:
		return "Int"
	case LitFloat:
		return "Float"
	case LitChar:
		return "Char"
	case LitStr:
		return "Str"
	default:
		return "LitKind(?)"
	}
}

// KwKind enumerates the active keywords of the language.
type KwKind uint8

const (
	KwFun KwKind = iota
	KwExtern
	KwEnd
	KwMod
	KwDo
	KwIf
	KwElse
	KwVal
	KwLet
	KwIn
	KwMut
	KwWhile
)

var kwSpellings = map[string]KwKind{
	"fun":    KwFun,
	"extern": KwExtern,
	"end":    KwEnd,
	"mod":    KwMod,
	"do":     KwDo,
	"if":     KwIf,
	"else":   KwElse,
	"val":    KwVal,
	"let":    KwLet,
	"in":     KwIn,
	"mut":    KwMut,
	"while":  KwWhile,
}

// reservedSpellings recognizes identifiers that collide with
// forward-compatibility keywords. They lex fine but the parser rejects
// their use with a targeted diagnostic.
var reservedSpellings = map[string]struct{}{
	"this": {}, "self": {}, "enum": {}, "struct": {}, "class": {}, "rec": {},
	"data": {}, "type": {}, "alias": {}, "use": {}, "using": {}, "as": {},
	"pub": {}, "from": {}, "import": {}, "export": {}, "exposing": {},
	"async": {}, "await": {}, "for": {}, "loop": {}, "match": {}, "case": {},
	"switch": {}, "and": {}, "or": {}, "xor": {}, "ref": {}, "var": {},
	"const": {}, "global": {}, "local": {}, "new": {}, "del": {}, "delete": {},
	"assert": {}, "defer": {}, "move": {}, "go": {}, "try": {}, "catch": {},
	"break": {}, "continue": {}, "goto": {}, "impl": {}, "fn": {}, "def": {},
	"return": {}, "yield": {}, "throw": {}, "raise": {}, "static": {},
	"trait": {}, "super": {}, "unsafe": {}, "where": {}, "final": {},
	"virtual": {}, "override": {}, "except": {}, "dyn": {}, "bit": {},
	"flag": {},
}

// Loc is a 1-based line/column pair, advanced as the lexer consumes
// characters. Column resets to 1 on every newline.
type Loc struct {
	Line   uint32
	Column uint32
}

// DefaultLoc is the location a lexer starts at.
func DefaultLoc() Loc {
	return Loc{Line: 1, Column: 1}
}

// NextLine returns the location at the start of the following line.
func (l Loc) NextLine() Loc {
	return Loc{Line: l.Line + 1, Column: 1}
}

// NextCol returns the location one column to the right.
func (l Loc) NextCol() Loc {
	return Loc{Line: l.Line, Column: l.Column + 1}
}

func (l Loc) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Data carries a token's kind, its exact source substring (its span),
// the sub-kind for keyword/reserved/literal tokens, and the location
// of its first character. Data is valid only for the lifetime of the
// source buffer its Span slices into.
type Data struct {
	Kind    Kind
	Span    string
	Loc     Loc
	Lit     LitKind
	Kw      KwKind
	Reserve string
}

// New constructs a Data value for a plain structural/lexical token.
func New(k Kind, span string, loc Loc) Data {
	return Data{Kind: k, Span: span, Loc: loc}
}

// NewLit constructs a Data value for a literal token.
func NewLit(lit LitKind, span string, loc Loc) Data {
	return Data{Kind: KindLiteral, Span: span, Loc: loc, Lit: lit}
}

// ClassifyIdent maps an identifier span to a keyword/reserved token if
// its spelling matches one, leaving it as KindIdent otherwise. Called
// by the lexer's post-processing step after the character-level state
// machine emits a raw KindIdent token.
func ClassifyIdent(d Data) Data {
	if d.Kind != KindIdent {
		return d
	}

	if kw, ok := kwSpellings[d.Span]; ok {
		d.Kind = KindKeyword
		d.Kw = kw
		return d
	}

	if _, ok := reservedSpellings[d.Span]; ok {
		d.Kind = KindReserved
		d.Reserve = d.Span
		return d
	}

	return d
}

// IsSkippable reports whether this token kind is always skipped by the
// parser regardless of context (whitespace and comments never carry
// grammatical meaning).
func (d Data) IsSkippable() bool {
	return d.Kind == KindWhitespace || d.Kind == KindEOLComment
}

func (k Kind) String() string {
	switch k {
	case KindUnknownChunk:
		return "UnknownChunk"
	case KindEOLComment:
		return "EOLComment"
	case KindWhitespace:
		return "Whitespace"
	case KindNewline:
		return "Newline"
	case KindSemiColon:
		return "SemiColon"
	case KindOpenParen:
		return "OpenParen"
	case KindClosedParen:
		return "ClosedParen"
	case KindComma:
		return "Comma"
	case KindColonSingle:
		return "ColonSingle"
	case KindDot:
		return "Dot"
	case KindIdent:
		return "Ident"
	case KindLiteral:
		return "Literal"
	case KindSigil:
		return "Sigil"
	case KindAssigner:
		return "Assigner"
	case KindKeyword:
		return "Keyword"
	case KindReserved:
		return "Reserved"
	default:
		return "Kind(?)"
	}
}

func (d Data) String() string {
	switch d.Kind {
	case KindLiteral:
		return fmt.Sprintf("%s(%s)@%s", d.Lit, d.Span, d.Loc)
	case KindKeyword:
		return fmt.Sprintf("Kw(%s)@%s", d.Span, d.Loc)
	case KindReserved:
		return fmt.Sprintf("Reserved(%s)@%s", d.Span, d.Loc)
	default:
		return fmt.Sprintf("%s(%q)@%s", d.Kind, d.Span, d.Loc)
	}
}
