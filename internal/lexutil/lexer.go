// Package lexutil implements the whitespace-sensitive tokenizer for the
// read-only Cypher subset (spec.md §4.1). It is a hand-rolled
// lexer.Definition/lexer.Lexer, adapted from the teacher repo's DSL lexer
// (a plain character-by-character state machine), extended with the one
// thing that DSL never needed: keyword tokens that only fire when the
// literal keyword text is followed by the right kind of boundary
// character, not merely a non-identifier one.
package lexutil

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

// Token type constants, participle convention: EOF is the library sentinel,
// everything else is a distinct negative TokenType.
//
// Each keyword gets its own token type (KwMatch, KwWhere, ...) rather than
// sharing one "Keyword" type matched by literal value: participle's
// grammar tags reference token *types* unambiguously (`@KwMatch`), whereas
// matching by literal *value* alone would not let us distinguish a
// keyword that failed its whitespace-boundary check (which we still want
// to surface as a plain Ident) from one that passed.
const (
	EOF lexer.TokenType = lexer.EOF

	Whitespace lexer.TokenType = -(iota + 2)
	Ident
	Integer
	Float
	String

	NotEqual     // <>
	LessEqual    // <=
	GreaterEqual // >=
	RegexOp      // =~
	Eq           // =
	Less         // <
	Greater      // >

	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Colon
	Dot
	Range // ..
	Star
	Minus

	KwMatch
	KwOptional
	KwWhere
	KwWith
	KwAs
	KwAnd
	KwOr
	KwXor
	KwNot
	KwReturn
	KwDistinct
	KwHas
	KwIn
	KwIs
	KwOrder
	KwBy
	KwSkip
	KwLimit
	KwNull
	KwAsc
	KwDesc
)

var symbols = map[string]lexer.TokenType{
	"EOF":          EOF,
	"Whitespace":   Whitespace,
	"Ident":        Ident,
	"Integer":      Integer,
	"Float":        Float,
	"String":       String,
	"NotEqual":     NotEqual,
	"LessEqual":    LessEqual,
	"GreaterEqual": GreaterEqual,
	"RegexOp":      RegexOp,
	"Eq":           Eq,
	"Less":         Less,
	"Greater":      Greater,
	"LParen":       LParen,
	"RParen":       RParen,
	"LBrace":       LBrace,
	"RBrace":       RBrace,
	"LBracket":     LBracket,
	"RBracket":     RBracket,
	"Comma":        Comma,
	"Colon":        Colon,
	"Dot":          Dot,
	"Range":        Range,
	"Star":         Star,
	"Minus":        Minus,
	"KwMatch":      KwMatch,
	"KwOptional":   KwOptional,
	"KwWhere":      KwWhere,
	"KwWith":       KwWith,
	"KwAs":         KwAs,
	"KwAnd":        KwAnd,
	"KwOr":         KwOr,
	"KwXor":        KwXor,
	"KwNot":        KwNot,
	"KwReturn":     KwReturn,
	"KwDistinct":   KwDistinct,
	"KwHas":        KwHas,
	"KwIn":         KwIn,
	"KwIs":         KwIs,
	"KwOrder":      KwOrder,
	"KwBy":         KwBy,
	"KwSkip":       KwSkip,
	"KwLimit":      KwLimit,
	"KwNull":       KwNull,
	"KwAsc":        KwAsc,
	"KwDesc":       KwDesc,
}

// keywordBoundary describes what may legally follow a keyword's literal
// text for it to be recognized as that keyword rather than a plain
// identifier (spec.md §4.1).
type keywordBoundary int

const (
	// boundaryWhitespace requires an actual whitespace character next.
	boundaryWhitespace keywordBoundary = iota
	// boundaryWhitespaceOrParen additionally allows '(' (HAS, spec.md §9 Q2).
	boundaryWhitespaceOrParen
	// boundaryAny accepts end-of-word with no further requirement (NULL/ASC/DESC).
	boundaryAny
)

type keywordRule struct {
	typ      lexer.TokenType
	boundary keywordBoundary
}

var keywords = map[string]keywordRule{
	"match":    {KwMatch, boundaryWhitespace},
	"optional": {KwOptional, boundaryWhitespace},
	"where":    {KwWhere, boundaryWhitespace},
	"with":     {KwWith, boundaryWhitespace},
	"as":       {KwAs, boundaryWhitespace},
	"and":      {KwAnd, boundaryWhitespace},
	"or":       {KwOr, boundaryWhitespace},
	"xor":      {KwXor, boundaryWhitespace},
	"not":      {KwNot, boundaryWhitespace},
	"return":   {KwReturn, boundaryWhitespace},
	"distinct": {KwDistinct, boundaryWhitespace},
	"has":      {KwHas, boundaryWhitespaceOrParen},
	"in":       {KwIn, boundaryWhitespace},
	"is":       {KwIs, boundaryWhitespace},
	"order":    {KwOrder, boundaryWhitespace},
	"by":       {KwBy, boundaryWhitespace},
	"skip":     {KwSkip, boundaryWhitespace},
	"limit":    {KwLimit, boundaryWhitespace},
	"null":     {KwNull, boundaryAny},
	"asc":      {KwAsc, boundaryAny},
	"desc":     {KwDesc, boundaryAny},
}

// Definition implements participle's lexer.Definition for the Cypher
// subset's custom tokenizer.
type Definition struct{}

// Lexer is the shared Definition instance wired into every participle
// parser the grammar package builds.
var Lexer = &Definition{}

func (d *Definition) Symbols() map[string]lexer.TokenType { return symbols }

//nolint:ireturn // required by participle's lexer.Definition interface.
func (d *Definition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return newState(filename, string(data)), nil
}

//nolint:ireturn // required by participle's lexer.StringDefinition interface.
func (d *Definition) LexString(filename, input string) (lexer.Lexer, error) {
	return newState(filename, input), nil
}

// LexerError reports a tokenization failure with position.
type LexerError struct {
	Pos lexer.Position
	Msg string
}

func (e *LexerError) Error() string { return e.Pos.String() + ": " + e.Msg }

type state struct {
	filename string
	input    string
	offset   int
	line     int
	col      int
}

func newState(filename, input string) *state {
	return &state{filename: filename, input: input, line: 1, col: 1}
}

// Next implements lexer.Lexer.
func (s *state) Next() (lexer.Token, error) {
	for {
		if s.eof() {
			return lexer.EOFToken(s.pos()), nil
		}

		start := s.pos()
		r := s.peek()

		if isSpace(r) {
			for !s.eof() && isSpace(s.peek()) {
				s.advance()
			}
			// Whitespace is elided by the parser (participle.Elide), but we
			// still hand it back as a token rather than looping silently so
			// position tracking in error messages stays accurate.
			return s.token(Whitespace, start), nil
		}

		if r == '\'' {
			return s.scanString(start)
		}

		if isDigit(r) {
			return s.scanNumberOrIdent(start), nil
		}

		if isIdentStart(r) {
			return s.scanIdentOrKeyword(start), nil
		}

		if tok, ok := s.scanOperator(start); ok {
			return tok, nil
		}

		return lexer.Token{}, &LexerError{Pos: start, Msg: "unexpected character: " + string(r)}
	}
}

func (s *state) pos() lexer.Position {
	return lexer.Position{Filename: s.filename, Offset: s.offset, Line: s.line, Column: s.col}
}

func (s *state) eof() bool { return s.offset >= len(s.input) }

func (s *state) peek() rune {
	if s.eof() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.offset:])
	return r
}

func (s *state) peekAt(n int) rune {
	off := s.offset + n
	if off >= len(s.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.input[off:])
	return r
}

func (s *state) advance() rune {
	if s.eof() {
		return 0
	}
	r, size := utf8.DecodeRuneInString(s.input[s.offset:])
	s.offset += size
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return r
}

func (s *state) token(typ lexer.TokenType, start lexer.Position) lexer.Token {
	return lexer.Token{Type: typ, Value: s.input[start.Offset:s.offset], Pos: start}
}

func (s *state) scanString(start lexer.Position) (lexer.Token, error) {
	s.advance() // opening '
	for !s.eof() {
		ch := s.peek()
		if ch == '\\' && s.peekAt(1) != 0 {
			s.advance()
			s.advance()
			continue
		}
		if ch == '\'' {
			s.advance()
			return s.token(String, start), nil
		}
		if ch == '\n' {
			return lexer.Token{}, &LexerError{Pos: start, Msg: "unterminated string (newline before closing quote)"}
		}
		s.advance()
	}
	return lexer.Token{}, &LexerError{Pos: start, Msg: "unterminated string"}
}

// scanNumberOrIdent resolves the Integer-vs-Identifier ambiguity created by
// identifiers being allowed to start with a digit (spec.md §9 Open
// Question 1): it performs maximal munch over the identifier character
// class first, then classifies the run.
func (s *state) scanNumberOrIdent(start lexer.Position) lexer.Token {
	hasLetterOrUnderscore := false
	for !s.eof() && isIdentContinue(s.peek()) {
		if r := s.peek(); r == '_' || !isDigit(r) {
			hasLetterOrUnderscore = true
		}
		s.advance()
	}

	if hasLetterOrUnderscore {
		return s.maybeKeyword(s.token(Ident, start), start)
	}

	// Pure digit run: may extend into a Float if followed by '.' then a digit.
	if s.peek() == '.' && isDigit(s.peekAt(1)) {
		s.advance() // .
		for !s.eof() && isDigit(s.peek()) {
			s.advance()
		}
		return s.token(Float, start)
	}

	return s.token(Integer, start)
}

func (s *state) scanIdentOrKeyword(start lexer.Position) lexer.Token {
	for !s.eof() && isIdentContinue(s.peek()) {
		s.advance()
	}
	return s.maybeKeyword(s.token(Ident, start), start)
}

// maybeKeyword reclassifies an Ident token as a Keyword token if its text
// matches a keyword and the following raw character satisfies that
// keyword's boundary rule.
func (s *state) maybeKeyword(tok lexer.Token, start lexer.Position) lexer.Token {
	rule, ok := keywords[strings.ToLower(tok.Value)]
	if !ok {
		return tok
	}

	switch rule.boundary {
	case boundaryAny:
		tok.Type = rule.typ
		return tok
	case boundaryWhitespaceOrParen:
		if s.peek() == '(' {
			tok.Type = rule.typ
			return tok
		}
		fallthrough
	case boundaryWhitespace:
		if isSpace(s.peek()) {
			tok.Type = rule.typ
			return tok
		}
	}
	return tok
}

func (s *state) scanOperator(start lexer.Position) (lexer.Token, bool) {
	// Longest match first: two-character operators before their one-char
	// prefixes (spec.md §4.1: "<=" before "<", ">=" before ">", "<>" before "<").
	twoChar := []struct {
		text string
		typ  lexer.TokenType
	}{
		{"<>", NotEqual},
		{"<=", LessEqual},
		{">=", GreaterEqual},
		{"=~", RegexOp},
		{"..", Range},
	}
	for _, op := range twoChar {
		if strings.HasPrefix(s.input[s.offset:], op.text) {
			s.advance()
			s.advance()
			return s.token(op.typ, start), true
		}
	}

	r := s.peek()
	oneChar := map[rune]lexer.TokenType{
		'=': Eq,
		'<': Less,
		'>': Greater,
		'(': LParen,
		')': RParen,
		'{': LBrace,
		'}': RBrace,
		'[': LBracket,
		']': RBracket,
		',': Comma,
		':': Colon,
		'.': Dot,
		'*': Star,
		'-': Minus,
	}
	if typ, ok := oneChar[r]; ok {
		s.advance()
		return s.token(typ, start), true
	}
	return lexer.Token{}, false
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
func isIdentStart(r rune) bool    { return isLetter(r) || isDigit(r) }
func isIdentContinue(r rune) bool { return isLetter(r) || isDigit(r) || r == '_' }
