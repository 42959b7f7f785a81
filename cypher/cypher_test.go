package cypher_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davebshow/cypher-ro/ast"
	"github.com/davebshow/cypher-ro/cypher"
)

func TestParse_Accepts(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"simple traversal", "MATCH (n:Person)-[:KNOWS]->(m:Person) RETURN n.name"},
		{"optional match with where", "OPTIONAL MATCH (n:Person {name: 'Dave'})-[k:LIVED_IN]-(m:Place {name: 'Iowa City'}) WHERE n.age > 30 RETURN n, m"},
		{"nested bool expr with count distinct", "MATCH (n) WHERE n.name = 'Peter' OR (n.age < 30 AND n.name = 'Tobias') OR NOT (n.name = 'Tobias' OR n.name='Peter') RETURN count(DISTINCT n) AS c"},
		{"with order skip limit", "WITH type(n) AS t, count(*) AS k ORDER BY t DESC SKIP 5 LIMIT 10 RETURN t, k"},
		{"undirected edge", "MATCH (n)--(m) RETURN n"},
		{"self loop", "MATCH (n)--(n) RETURN n"},
		{"unbounded cardinality", "MATCH (n)-[*]-(m) RETURN n"},
		{"bounded cardinality", "MATCH (n)-[*1..5]-(m) RETURN n"},
		{"path binding", "MATCH p = (n)-->(m) RETURN p"},
		{"where with bare traversal", "MATCH (n) WHERE (n)-->(m) RETURN n"},
		{"is null", "MATCH (n) WHERE n.email IS NULL RETURN n"},
		{"regex", "MATCH (n) WHERE n.name =~ 'Da.*' RETURN n"},
		{"in list", "MATCH (n) WHERE n.age IN [1, 2, 3] RETURN n"},
		{"label assertion", "MATCH (n) WHERE n:Person RETURN n"},
		{"has", "MATCH (n) WHERE has(n.name) RETURN n"},
		{"has with space", "MATCH (n) WHERE has (n.name) RETURN n"},
		{"multiple spaces after match", "MATCH  (n) RETURN n"},
		{"multiple match clauses", "MATCH (n) MATCH (m) RETURN n, m"},
		{"cardinality zero bounds", "MATCH (n)-[*0..0]-(m) RETURN n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := cypher.Parse(tt.query, "Query")
			require.NoError(t, err, "Parse(%q)", tt.query)
			require.NotNil(t, tree)
			assert.Equal(t, ast.RuleQuery, tree.Tag)
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"missing whitespace after match", "MATCH(n) RETURN n"},
		{"triple dash edge", "MATCH (n:Node)---(m) RETURN n"},
		{"bidirectional edge", "MATCH (n:Person)<-[:BORN_IN]->(m:Place) RETURN n"},
		{"inverted cardinality", "MATCH (n)-[*2..1]-(m) RETURN n"},
		{"empty list in in-comp", "MATCH (n) WHERE n.age IN [] RETURN n"},
		{"unbounded lower cardinality", "MATCH (n)-[*..5]-(m) RETURN n"},
		{"unbounded upper cardinality", "MATCH (n)-[*1..]-(m) RETURN n"},
		{"create clause", "CREATE (n:Person {name: 'Alice'}) RETURN n"},
		{"set clause", "MATCH (n) SET n.name = 'x' RETURN n"},
		{"delete clause", "MATCH (n) DELETE n RETURN n"},
		{"merge clause", "MERGE (n:Person {id: 1}) RETURN n"},
		{"no return clause", "MATCH (n)"},
		{"float as generic value", "MATCH (n) WHERE n.age = 3.14 RETURN n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cypher.Parse(tt.query, "Query")
			require.Error(t, err, "Parse(%q) should have been rejected", tt.query)
			var syn *cypher.SyntaxError
			assert.ErrorAs(t, err, &syn)
		})
	}
}

func TestParse_WhitespaceVariantsProduceIdenticalTrees(t *testing.T) {
	tight := "MATCH (n:Person)-[:KNOWS]->(m:Person) WHERE n.age > 30 RETURN n, m"
	loose := "MATCH   (n:Person)-[:KNOWS]->(m:Person)   WHERE   n.age > 30   RETURN n,   m"

	a, err := cypher.Parse(tight, "Query")
	require.NoError(t, err)
	b, err := cypher.Parse(loose, "Query")
	require.NoError(t, err)

	// Spans differ with the extra whitespace; everything else about the
	// tree shape must not.
	if diff := cmp.Diff(a, b, cmpopts.IgnoreFields(ast.Node{}, "Span")); diff != "" {
		t.Errorf("trees differ beyond source position (-tight +loose):\n%s", diff)
	}
}

func TestNamedRule_UnknownName(t *testing.T) {
	_, ok := cypher.NamedRule("NoSuchRule")
	assert.False(t, ok)

	_, err := cypher.Parse("RETURN 1", "NoSuchRule")
	assert.Error(t, err)
}

func TestNamedRule_ListsEveryReachableRule(t *testing.T) {
	names := cypher.RuleNames()
	assert.Contains(t, names, "Query")
	assert.Contains(t, names, "Identifier")
	assert.Contains(t, names, "BoolExpr")
}

func TestDriver_AttachActionRewritesTree(t *testing.T) {
	d := cypher.NewDriver()

	calls := 0
	handle, err := d.AttachAction("Integer", func(n *ast.Node) (*ast.Node, error) {
		calls++
		return n.WithAttr("seen", true), nil
	})
	require.NoError(t, err)

	tree, err := d.Parse("RETURN 42", "Query")
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	var found bool
	ast.Walk(tree, func(n *ast.Node) {
		if n.Tag == ast.RuleInteger {
			v, ok := n.Attr("seen")
			found = found || (ok && v == true)
		}
	})
	assert.True(t, found, "expected the attached action to have tagged the Integer node")

	d.Detach(handle)
	calls = 0
	_, err = d.Parse("RETURN 7", "Query")
	require.NoError(t, err)
	assert.Equal(t, 0, calls, "detached action should not run again")
}

func TestDriver_AttachAction_UnknownRule(t *testing.T) {
	d := cypher.NewDriver()
	_, err := d.AttachAction("NotARule", func(n *ast.Node) (*ast.Node, error) { return n, nil })
	assert.Error(t, err)
}
