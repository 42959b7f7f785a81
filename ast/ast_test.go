package ast_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davebshow/cypher-ro/ast"
)

func TestRuleTagByName_RoundTrips(t *testing.T) {
	for tag := ast.RuleIdentifier; tag <= ast.RuleQuery; tag++ {
		name := tag.String()
		got, ok := ast.RuleTagByName(name)
		require.True(t, ok, "RuleTagByName(%q)", name)
		assert.Equal(t, tag, got)
	}
}

func TestRuleTagByName_Unknown(t *testing.T) {
	_, ok := ast.RuleTagByName("NotARealRule")
	assert.False(t, ok)
}

func TestNode_ChildNodesSkipsLiteralStrings(t *testing.T) {
	child := ast.NewNode(ast.RuleIdentifier, ast.Span{Start: 0, End: 1}, "n")
	n := ast.NewNode(ast.RulePropertyAccess, ast.Span{Start: 0, End: 3}, child, ".", "prop")

	nodes := n.ChildNodes()
	require.Len(t, nodes, 1)
	assert.Same(t, child, nodes[0])
}

func TestNode_WithAttrAndAttr(t *testing.T) {
	n := ast.NewNode(ast.RuleFunctionCall, ast.Span{}).WithAttr("name", "count").WithAttr("distinct", true)

	name, ok := n.Attr("name")
	require.True(t, ok)
	assert.Equal(t, "count", name)

	_, ok = n.Attr("missing")
	assert.False(t, ok)
}

func TestNode_Text(t *testing.T) {
	child := ast.NewNode(ast.RuleIdentifier, ast.Span{}, "n")
	n := ast.NewNode(ast.RulePropertyAccess, ast.Span{}, child, ".", "name")
	assert.Equal(t, "n . name", n.Text())
}

func TestNode_MarshalJSON(t *testing.T) {
	leaf := ast.NewNode(ast.RuleInteger, ast.Span{Start: 7, End: 9}, "42")
	n := ast.NewNode(ast.RuleSkipClause, ast.Span{Start: 0, End: 9}, leaf).WithAttr("n", int64(42))

	data, err := json.Marshal(n)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "SkipClause", decoded["rule"])
	assert.Equal(t, float64(0), decoded["start"])
	assert.Equal(t, float64(9), decoded["end"])
}

func TestNode_MarshalJSON_Nil(t *testing.T) {
	var n *ast.Node
	data, err := json.Marshal(n)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestWalk_VisitsPreOrder(t *testing.T) {
	leaf1 := ast.NewNode(ast.RuleIdentifier, ast.Span{}, "a")
	leaf2 := ast.NewNode(ast.RuleIdentifier, ast.Span{}, "b")
	root := ast.NewNode(ast.RuleList, ast.Span{}, leaf1, ",", leaf2)

	var visited []ast.RuleTag
	ast.Walk(root, func(n *ast.Node) { visited = append(visited, n.Tag) })

	assert.Equal(t, []ast.RuleTag{ast.RuleList, ast.RuleIdentifier, ast.RuleIdentifier}, visited)
}
