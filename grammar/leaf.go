package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/davebshow/cypher-ro/ast"
	"github.com/davebshow/cypher-ro/internal/lexutil"
)

// leafRule implements Rule directly against the lexer for the lexical
// primitives (Identifier, Integer, Float, StringLiteral, Operator,
// Keyword): each of these is a single token, so building a whole
// participle parser around one is unnecessary ceremony — the lexer's
// classification already is the recognizer for these rules.
type leafRule struct {
	name      string
	tag       ast.RuleTag
	types     map[lexer.TokenType]bool
	transform func(string) string
}

func oneType(t lexer.TokenType) map[lexer.TokenType]bool {
	return map[lexer.TokenType]bool{t: true}
}

func manyTypes(ts ...lexer.TokenType) map[lexer.TokenType]bool {
	m := make(map[lexer.TokenType]bool, len(ts))
	for _, t := range ts {
		m[t] = true
	}
	return m
}

func (r *leafRule) Name() string { return r.name }

func (r *leafRule) Parse(text string) (*ast.Node, error) {
	lx, err := lexutil.Lexer.LexString("", text)
	if err != nil {
		return nil, err
	}
	tok, err := lx.Next()
	if err != nil {
		return nil, err
	}
	if !r.types[tok.Type] {
		return nil, &SyntaxError{Pos: tok.Pos, Found: tok.Value, Expected: []string{r.name}}
	}

	// Keywords such as MATCH classify as a keyword token only when
	// followed by whitespace (internal/lexutil's boundaryWhitespace
	// rule), so a lone trailing Whitespace token here is part of the
	// boundary that made the match possible, not leftover input.
	trailing, err := lx.Next()
	if err != nil {
		return nil, err
	}
	if trailing.Type == lexutil.Whitespace {
		trailing, err = lx.Next()
		if err != nil {
			return nil, err
		}
	}
	if trailing.Type != lexutil.EOF {
		return nil, &SyntaxError{Pos: trailing.Pos, Found: trailing.Value, Expected: []string{"end of input"}}
	}

	value := tok.Value
	if r.transform != nil {
		value = r.transform(value)
	}
	span := ast.Span{Start: tok.Pos.Offset, End: tok.Pos.Offset + len(tok.Value)}
	return leafNode(r.tag, span, value), nil
}

var (
	identifierRule = &leafRule{name: "Identifier", tag: ast.RuleIdentifier, types: oneType(lexutil.Ident)}
	integerRule    = &leafRule{name: "Integer", tag: ast.RuleInteger, types: oneType(lexutil.Integer)}
	floatRule      = &leafRule{name: "Float", tag: ast.RuleFloat, types: oneType(lexutil.Float)}
	stringRule     = &leafRule{
		name: "StringLiteral", tag: ast.RuleStringLiteral,
		types: oneType(lexutil.String), transform: unquoteSingle,
	}
	operatorRule = &leafRule{
		name: "Operator", tag: ast.RuleOperator,
		types: manyTypes(
			lexutil.NotEqual, lexutil.LessEqual, lexutil.GreaterEqual,
			lexutil.RegexOp, lexutil.Eq, lexutil.Less, lexutil.Greater,
		),
	}
	keywordRule = &leafRule{
		name: "Keyword", tag: ast.RuleKeyword,
		types: manyTypes(
			lexutil.KwMatch, lexutil.KwOptional, lexutil.KwWhere, lexutil.KwWith,
			lexutil.KwAs, lexutil.KwAnd, lexutil.KwOr, lexutil.KwXor, lexutil.KwNot,
			lexutil.KwReturn, lexutil.KwDistinct, lexutil.KwHas, lexutil.KwIn,
			lexutil.KwIs, lexutil.KwOrder, lexutil.KwBy, lexutil.KwSkip,
			lexutil.KwLimit, lexutil.KwNull, lexutil.KwAsc, lexutil.KwDesc,
		),
	}
)
