package lexutil_test

import (
	"testing"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davebshow/cypher-ro/internal/lexutil"
)

func tokenize(t *testing.T, input string) []lexer.Token {
	t.Helper()
	lx, err := lexutil.Lexer.LexString("", input)
	require.NoError(t, err)

	var toks []lexer.Token
	for {
		tok, err := lx.Next()
		require.NoError(t, err)
		if tok.Type == lexutil.EOF {
			break
		}
		if tok.Type == lexutil.Whitespace {
			continue
		}
		toks = append(toks, tok)
	}
	return toks
}

func types(toks []lexer.Token) []lexer.TokenType {
	out := make([]lexer.TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestKeywordBoundary_RequiresWhitespace(t *testing.T) {
	// "MATCH(n)" — no whitespace after the keyword, so MATCH stays an Ident.
	toks := tokenize(t, "MATCH(n)")
	require.NotEmpty(t, toks)
	assert.Equal(t, lexutil.Ident, toks[0].Type)
	assert.Equal(t, "MATCH", toks[0].Value)
}

func TestKeywordBoundary_AcceptsWhitespace(t *testing.T) {
	toks := tokenize(t, "MATCH (n)")
	require.NotEmpty(t, toks)
	assert.Equal(t, lexutil.KwMatch, toks[0].Type)
}

func TestKeywordBoundary_MultipleSpacesStillAccepted(t *testing.T) {
	toks := tokenize(t, "MATCH   (n)")
	require.NotEmpty(t, toks)
	assert.Equal(t, lexutil.KwMatch, toks[0].Type)
}

func TestKeywordBoundary_HasAcceptsBothParenForms(t *testing.T) {
	toks := tokenize(t, "has(n.name)")
	require.NotEmpty(t, toks)
	assert.Equal(t, lexutil.KwHas, toks[0].Type)

	toks = tokenize(t, "has (n.name)")
	require.NotEmpty(t, toks)
	assert.Equal(t, lexutil.KwHas, toks[0].Type)
}

func TestKeywordBoundary_NullAscDescAcceptEndOfInput(t *testing.T) {
	for _, word := range []string{"NULL", "ASC", "DESC"} {
		toks := tokenize(t, word)
		require.Len(t, toks, 1)
		assert.NotEqual(t, lexutil.Ident, toks[0].Type, "%s should classify as a keyword with nothing following", word)
	}
}

func TestCaseInsensitiveKeywordMatch(t *testing.T) {
	toks := tokenize(t, "match (n) return n")
	require.NotEmpty(t, toks)
	assert.Equal(t, lexutil.KwMatch, toks[0].Type)
}

func TestLeadingDigitIdentifier(t *testing.T) {
	toks := tokenize(t, "123abc")
	require.Len(t, toks, 1)
	assert.Equal(t, lexutil.Ident, toks[0].Type)
	assert.Equal(t, "123abc", toks[0].Value)
}

func TestIntegerVsFloat(t *testing.T) {
	toks := tokenize(t, "42")
	require.Len(t, toks, 1)
	assert.Equal(t, lexutil.Integer, toks[0].Type)

	toks = tokenize(t, "3.14")
	require.Len(t, toks, 1)
	assert.Equal(t, lexutil.Float, toks[0].Type)
}

func TestIntegerDotDotIsRangeNotFloat(t *testing.T) {
	toks := tokenize(t, "1..5")
	assert.Equal(t, []lexer.TokenType{lexutil.Integer, lexutil.Range, lexutil.Integer}, types(toks))
}

func TestStringLiteralWithEscapes(t *testing.T) {
	toks := tokenize(t, `'it\'s here'`)
	require.Len(t, toks, 1)
	assert.Equal(t, lexutil.String, toks[0].Type)
}

func TestStringLiteral_UnterminatedByNewline(t *testing.T) {
	// The error surfaces from Next(), not LexString, since this is a
	// streaming lexer.
	lx, err := lexutil.Lexer.LexString("", "'abc\ndef'")
	require.NoError(t, err)
	_, err = lx.Next()
	assert.Error(t, err)
}

func TestOperatorLongestMatch(t *testing.T) {
	cases := map[string]lexer.TokenType{
		"<>": lexutil.NotEqual,
		"<=": lexutil.LessEqual,
		">=": lexutil.GreaterEqual,
		"=~": lexutil.RegexOp,
		"=":  lexutil.Eq,
		"<":  lexutil.Less,
		">":  lexutil.Greater,
	}
	for text, want := range cases {
		toks := tokenize(t, text)
		require.Len(t, toks, 1, "input %q", text)
		assert.Equal(t, want, toks[0].Type, "input %q", text)
	}
}

func TestDirectedEdgeTokensAreThreeSeparateTokens(t *testing.T) {
	toks := tokenize(t, "-->")
	assert.Equal(t, []lexer.TokenType{lexutil.Minus, lexutil.Minus, lexutil.Greater}, types(toks))
}

func TestUnexpectedCharacterIsLexerError(t *testing.T) {
	lx, err := lexutil.Lexer.LexString("", "@")
	require.NoError(t, err)
	_, err = lx.Next()
	require.Error(t, err)
	var lerr *lexutil.LexerError
	require.ErrorAs(t, err, &lerr)
}
