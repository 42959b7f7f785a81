// Package grammar implements the read-only Cypher subset as a
// participle-driven, struct-tag grammar (spec.md §4), narrowed from the
// teacher's full openCypher grammar down to the MATCH/OPTIONAL MATCH/
// WHERE/WITH/ORDER BY/SKIP/LIMIT/RETURN subset — no clause capable of
// mutating graph state exists here at all; that absence is the safety
// contract (spec.md §1).
package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/davebshow/cypher-ro/ast"
)

// NodeMeta is embedded in every grammar struct. Participle auto-populates
// Pos (the position of the first consumed token) and Tokens (every token
// the node consumed) by field name/type convention, the same idiom the
// teacher's DSL lexer/parser pair uses for its own AST nodes.
type NodeMeta struct {
	Pos    lexer.Position `parser:""`
	Tokens []lexer.Token  `parser:""`
}

// Span computes the byte-offset span of the node from its captured tokens.
func (m NodeMeta) Span() ast.Span {
	start := m.Pos.Offset
	end := start
	if n := len(m.Tokens); n > 0 {
		last := m.Tokens[n-1]
		end = last.Pos.Offset + len(last.Value)
	}
	return ast.Span{Start: start, End: end}
}
