package grammar

import (
	"errors"

	"github.com/alecthomas/participle/v2"

	"github.com/davebshow/cypher-ro/ast"
	"github.com/davebshow/cypher-ro/internal/lexutil"
)

// Rule is a single named production, lexical or structural, reachable
// through NamedRule (spec.md §4.6). It is deliberately this small — just
// enough to parse one rule's worth of input in isolation, which is all
// named_rule promises.
type Rule interface {
	Name() string
	Parse(text string) (*ast.Node, error)
}

var buildOpts = []participle.Option{
	participle.Lexer(lexutil.Lexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(8),
}

// compositeRule adapts a participle.Parser[T] plus its ast-conversion
// function into a Rule.
type compositeRule[T any] struct {
	name   string
	parser *participle.Parser[T]
	toAST  func(*T) (*ast.Node, error)
}

func (r *compositeRule[T]) Name() string { return r.name }

func (r *compositeRule[T]) Parse(text string) (*ast.Node, error) {
	v, err := r.parser.ParseString("", text)
	if err != nil {
		return nil, convertParticipleError(err)
	}
	return r.toAST(v)
}

func newRule[T any](name string, build func(*treeBuilder, *T) *ast.Node) *compositeRule[T] {
	return &compositeRule[T]{
		name:   name,
		parser: participle.MustBuild[T](buildOpts...),
		toAST: func(v *T) (*ast.Node, error) {
			b := &treeBuilder{}
			n := build(b, v)
			if b.err != nil {
				return nil, b.err
			}
			return n, nil
		},
	}
}

// convertParticipleError turns a participle parse failure into our one
// error kind (spec.md §7). participle.Error carries the farthest-failure
// position participle's own ordered-choice backtracking already computed;
// we fold its message into Found rather than attempting to reconstruct an
// independent expected-token set from library internals we don't control.
func convertParticipleError(err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		return &SyntaxError{Pos: perr.Position(), Found: perr.Message()}
	}
	return err
}

var registry = buildRegistry()

func buildRegistry() map[string]Rule {
	m := map[string]Rule{
		"Identifier":    identifierRule,
		"Integer":       integerRule,
		"Float":         floatRule,
		"StringLiteral": stringRule,
		"Operator":      operatorRule,
		"Keyword":       keywordRule,
	}
	add := func(r Rule) { m[r.Name()] = r }

	add(newRule[PropertyAccess]("PropertyAccess", (*treeBuilder).buildPropertyAccess))
	add(newRule[List]("List", (*treeBuilder).buildList))
	add(newRule[FunctionCall]("FunctionCall", (*treeBuilder).buildFunctionCall))
	add(newRule[Node]("Node", (*treeBuilder).buildNode))
	add(newRule[Edge]("Edge", (*treeBuilder).buildEdge))
	add(newRule[Traversal]("Traversal", (*treeBuilder).buildTraversal))
	add(newRule[PatternList]("PatternList", (*treeBuilder).buildPatternList))
	add(newRule[BoolExpr]("BoolExpr", (*treeBuilder).buildBoolExpr))
	add(newRule[MatchClause]("MatchClause", (*treeBuilder).buildMatchClause))
	add(newRule[WhereClause]("WhereClause", (*treeBuilder).buildWhereClause))
	add(newRule[WithClause]("WithClause", (*treeBuilder).buildWithClause))
	add(newRule[OrderByClause]("OrderByClause", (*treeBuilder).buildOrderByClause))
	add(newRule[ReturnClause]("ReturnClause", (*treeBuilder).buildReturnClause))
	add(newRule[Query]("Query", (*treeBuilder).buildQuery))

	return m
}

// NamedRule looks up a production by name (spec.md §4.6's named_rule).
func NamedRule(name string) (Rule, bool) {
	r, ok := registry[name]
	return r, ok
}

// RuleNames lists every rule reachable through NamedRule, for diagnostics
// and the CLI's `--rule` flag validation.
func RuleNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
