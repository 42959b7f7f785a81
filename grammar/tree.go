package grammar

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/davebshow/cypher-ro/ast"
)

// treeBuilder converts participle's concrete struct tree into the generic
// ast.Node shape (spec.md §3). It carries a sticky error so the one
// structural invariant that cannot be expressed in the grammar itself —
// Cardinality's min<=max bound — can reject a parse without a second
// error type (spec.md §7: SyntaxError is the only kind).
type treeBuilder struct {
	err *SyntaxError
}

func (b *treeBuilder) fail(span ast.Span, msg string) {
	if b.err != nil {
		return
	}
	b.err = &SyntaxError{
		Pos:      lexer.Position{Offset: span.Start},
		Expected: []string{msg},
	}
}

func leafNode(tag ast.RuleTag, span ast.Span, text string) *ast.Node {
	return &ast.Node{Tag: tag, Span: span, Children: []any{text}}
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// unquoteSingle strips the delimiting single quotes from a raw String
// token and resolves the two escapes the lexer accepted while scanning it
// (\' and \\); any other backslash sequence passes through unchanged.
func unquoteSingle(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	inner := raw[1 : len(raw)-1]
	var sb strings.Builder
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '\\' && i+1 < len(inner) {
			i++
			switch inner[i] {
			case '\'':
				sb.WriteByte('\'')
			case '\\':
				sb.WriteByte('\\')
			default:
				sb.WriteByte('\\')
				sb.WriteByte(inner[i])
			}
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func (b *treeBuilder) buildPropertyAccess(p *PropertyAccess) *ast.Node {
	n := &ast.Node{Tag: ast.RulePropertyAccess, Span: p.Span(), Children: []any{p.Base, ".", p.Prop}}
	return n.WithAttr("base", p.Base).WithAttr("prop", p.Prop)
}

func (b *treeBuilder) buildValueExpr(v *ValueExpr) *ast.Node {
	switch {
	case v.Property != nil:
		return b.buildPropertyAccess(v.Property)
	case v.String != nil:
		return leafNode(ast.RuleStringLiteral, v.Span(), unquoteSingle(*v.String))
	case v.Int != nil:
		return leafNode(ast.RuleInteger, v.Span(), strconv.FormatInt(*v.Int, 10))
	}
	return nil
}

func (b *treeBuilder) buildList(l *List) *ast.Node {
	children := []any{"["}
	for i, item := range l.Items {
		if i > 0 {
			children = append(children, ",")
		}
		children = append(children, b.buildValueExpr(item))
	}
	children = append(children, "]")
	return &ast.Node{Tag: ast.RuleList, Span: l.Span(), Children: children}
}

func (b *treeBuilder) buildTypeCall(t *TypeCall) *ast.Node {
	n := &ast.Node{Tag: ast.RuleFunctionCall, Span: t.Span(), Children: []any{leafNode(ast.RuleIdentifier, t.Span(), t.Arg)}}
	return n.WithAttr("name", "type")
}

func (b *treeBuilder) buildFunctionCall(f *FunctionCall) *ast.Node {
	switch {
	case f.Type != nil:
		return b.buildTypeCall(f.Type)
	case f.Count != nil:
		arg := f.Count.Arg
		var argNode any
		switch {
		case arg.Property != nil:
			argNode = b.buildPropertyAccess(arg.Property)
		case arg.Ident != nil:
			argNode = leafNode(ast.RuleIdentifier, arg.Span(), *arg.Ident)
		case arg.Star:
			argNode = "*"
		}
		n := &ast.Node{Tag: ast.RuleFunctionCall, Span: f.Count.Span(), Children: []any{argNode}}
		return n.WithAttr("name", "count").WithAttr("distinct", arg.Distinct)
	case f.Sum != nil:
		n := &ast.Node{Tag: ast.RuleFunctionCall, Span: f.Sum.Span(), Children: []any{b.buildPropertyAccess(f.Sum.Arg)}}
		return n.WithAttr("name", "sum")
	case f.PercentileDisc != nil:
		n := &ast.Node{
			Tag:  ast.RuleFunctionCall,
			Span: f.PercentileDisc.Span(),
			Children: []any{
				b.buildPropertyAccess(f.PercentileDisc.Prop),
				formatFloat(f.PercentileDisc.Percentile),
			},
		}
		return n.WithAttr("name", "percentileDisc").WithAttr("percentile", f.PercentileDisc.Percentile)
	case f.Stdev != nil:
		n := &ast.Node{Tag: ast.RuleFunctionCall, Span: f.Stdev.Span(), Children: []any{b.buildPropertyAccess(f.Stdev.Arg)}}
		return n.WithAttr("name", "stdev")
	}
	return nil
}

func (b *treeBuilder) buildLabel(l *Label) *ast.Node {
	return leafNode(ast.RuleLabel, l.Span(), l.Name).WithAttr("name", l.Name)
}

func (b *treeBuilder) buildAliasLabel(a *AliasLabel) *ast.Node {
	var children []any
	if a.Variable != "" {
		children = append(children, a.Variable)
	}
	for _, l := range a.Labels {
		children = append(children, b.buildLabel(l))
	}
	n := &ast.Node{Tag: ast.RuleAliasLabel, Span: a.Span(), Children: children}
	if a.Variable != "" {
		n.WithAttr("variable", a.Variable)
	}
	return n
}

func (b *treeBuilder) buildPropertyMap(p *PropertyMap) *ast.Node {
	children := []any{"{"}
	for i, kv := range p.Pairs {
		if i > 0 {
			children = append(children, ",")
		}
		children = append(children, kv.Key, ":", b.buildValueExpr(kv.Value))
	}
	children = append(children, "}")
	return &ast.Node{Tag: ast.RulePropertyMap, Span: p.Span(), Children: children}
}

func (b *treeBuilder) buildNode(nd *Node) *ast.Node {
	children := []any{"("}
	if nd.Alias != nil {
		children = append(children, b.buildAliasLabel(nd.Alias))
	}
	if nd.Properties != nil {
		children = append(children, b.buildPropertyMap(nd.Properties))
	}
	children = append(children, ")")
	return &ast.Node{Tag: ast.RuleNode, Span: nd.Span(), Children: children}
}

func (b *treeBuilder) buildCardinality(c *Cardinality) *ast.Node {
	n := &ast.Node{Tag: ast.RuleCardinality, Span: c.Span(), Children: []any{"*"}}
	if c.Bounds != nil {
		if c.Bounds.Min > c.Bounds.Max {
			b.fail(c.Bounds.Span(), "cardinality lower bound must not exceed upper bound")
		}
		n.Children = append(n.Children,
			strconv.FormatInt(c.Bounds.Min, 10), "..", strconv.FormatInt(c.Bounds.Max, 10))
		n.WithAttr("min", c.Bounds.Min).WithAttr("max", c.Bounds.Max)
	}
	return n
}

func (b *treeBuilder) buildEdgeContent(e *EdgeContent) *ast.Node {
	var children []any
	if e.Alias != nil {
		children = append(children, b.buildAliasLabel(e.Alias))
	}
	if e.Properties != nil {
		children = append(children, b.buildPropertyMap(e.Properties))
	}
	if e.Cardinality != nil {
		children = append(children, b.buildCardinality(e.Cardinality))
	}
	return &ast.Node{Tag: ast.RuleEdgeContent, Span: e.Span(), Children: children}
}

func (b *treeBuilder) buildEdge(e *Edge) *ast.Node {
	var und *UndirectedEdge
	direction := "none"
	switch {
	case e.In != nil:
		und, direction = e.In, "in"
	case e.Out != nil:
		und, direction = e.Out, "out"
	case e.Plain != nil:
		und, direction = e.Plain, "none"
	}

	children := []any{"-"}
	if und.Content != nil {
		children = append(children, "[", b.buildEdgeContent(und.Content), "]")
	}
	children = append(children, "-")
	switch direction {
	case "in":
		children = append([]any{"<"}, children...)
	case "out":
		children = append(children, ">")
	}

	n := &ast.Node{Tag: ast.RuleEdge, Span: e.Span(), Children: children}
	return n.WithAttr("direction", direction)
}

func (b *treeBuilder) buildTraversal(t *Traversal) *ast.Node {
	children := []any{b.buildNode(t.Node)}
	if t.Next != nil {
		children = append(children, b.buildEdge(t.Next.Edge), b.buildTraversal(t.Next.Traversal))
	}
	return &ast.Node{Tag: ast.RuleTraversal, Span: t.Span(), Children: children}
}

func (b *treeBuilder) buildPatternList(p *PatternList) *ast.Node {
	var children []any
	for i, tr := range p.Traversals {
		if i > 0 {
			children = append(children, ",")
		}
		children = append(children, b.buildTraversal(tr))
	}
	return &ast.Node{Tag: ast.RulePatternList, Span: p.Span(), Children: children}
}

func (b *treeBuilder) buildLabelAssertion(l *LabelAssertion) *ast.Node {
	children := []any{l.Variable}
	for _, lab := range l.Labels {
		children = append(children, b.buildLabel(lab))
	}
	return &ast.Node{Tag: ast.RuleLabelAssertion, Span: l.Span(), Children: children}
}

func (b *treeBuilder) buildLeftExpr(l *LeftExpr) *ast.Node {
	switch {
	case l.Property != nil:
		return b.buildPropertyAccess(l.Property)
	case l.TypeCall != nil:
		return b.buildTypeCall(l.TypeCall)
	case l.Ident != nil:
		return leafNode(ast.RuleIdentifier, l.Span(), *l.Ident)
	}
	return nil
}

func (b *treeBuilder) buildLeftOpRight(lr *LeftOpRight) *ast.Node {
	left := b.buildLeftExpr(lr.Left)
	switch {
	case lr.IsNull:
		return &ast.Node{Tag: ast.RuleIsNull, Span: lr.Span(), Children: []any{left}}
	case lr.Simple != nil:
		right := b.buildValueExpr(lr.Simple.Value)
		n := &ast.Node{Tag: ast.RuleBinaryOp, Span: lr.Span(), Children: []any{left, lr.Simple.Op, right}}
		return n.WithAttr("op", lr.Simple.Op)
	case lr.In != nil:
		return &ast.Node{Tag: ast.RuleIn, Span: lr.Span(), Children: []any{left, b.buildList(lr.In.List)}}
	case lr.Regex != nil:
		return &ast.Node{Tag: ast.RuleRegex, Span: lr.Span(), Children: []any{left, unquoteSingle(lr.Regex.Pattern)}}
	}
	return left
}

func (b *treeBuilder) buildComparison(c *Comparison) *ast.Node {
	switch {
	case c.Has != nil:
		return &ast.Node{Tag: ast.RuleHas, Span: c.Has.Span(), Children: []any{b.buildPropertyAccess(c.Has.Prop)}}
	case c.BinaryOp != nil:
		return b.buildLeftOpRight(c.BinaryOp)
	case c.LabelAssertion != nil:
		return b.buildLabelAssertion(c.LabelAssertion)
	}
	return nil
}

func (b *treeBuilder) buildNotLeaf(nl *NotLeaf) *ast.Node {
	var inner *ast.Node
	switch {
	case nl.Comparison != nil:
		inner = b.buildComparison(nl.Comparison)
	case nl.Traversal != nil:
		inner = b.buildTraversal(nl.Traversal)
	}
	if nl.Not {
		return &ast.Node{Tag: ast.RuleNot, Span: nl.Span(), Children: []any{inner}}
	}
	return inner
}

type connectiveKind struct {
	tag         ast.RuleTag
	negateRight bool
}

func resolveConnective(c *Connective) connectiveKind {
	switch {
	case c.AndNot:
		return connectiveKind{ast.RuleAnd, true}
	case c.OrNot:
		return connectiveKind{ast.RuleOr, true}
	case c.XorNot:
		return connectiveKind{ast.RuleXor, true}
	case c.And:
		return connectiveKind{ast.RuleAnd, false}
	case c.Or:
		return connectiveKind{ast.RuleOr, false}
	case c.Xor:
		return connectiveKind{ast.RuleXor, false}
	default: // bare NOT used as a connective: treated as an implicit AND NOT
		return connectiveKind{ast.RuleAnd, true}
	}
}

// combineConnective joins left and right under tag, splicing either
// operand's own children in directly when it already carries the same
// tag — this flattens runs of the same connective ("a AND b AND c")
// into one n-ary node instead of nesting a nested binary tree one level
// per operand.
func combineConnective(tag ast.RuleTag, left, right *ast.Node, span ast.Span) *ast.Node {
	var children []any
	if left.Tag == tag {
		children = append(children, left.Children...)
	} else {
		children = append(children, left)
	}
	if right.Tag == tag {
		children = append(children, right.Children...)
	} else {
		children = append(children, right)
	}
	return &ast.Node{Tag: tag, Span: span, Children: children}
}

func (b *treeBuilder) buildBoolExpr(be *BoolExpr) *ast.Node {
	var base *ast.Node
	switch {
	case be.Paren != nil:
		base = b.buildBoolExpr(be.Paren)
	case be.Leaf != nil:
		base = b.buildNotLeaf(be.Leaf)
	}
	for _, t := range be.Tail {
		kind := resolveConnective(t.Conn)
		right := b.buildBoolExpr(t.Expr)
		if kind.negateRight {
			right = &ast.Node{Tag: ast.RuleNot, Span: right.Span, Children: []any{right}}
		}
		base = combineConnective(kind.tag, base, right, be.Span())
	}
	return base
}

func (b *treeBuilder) buildMatchClause(m *MatchClause) *ast.Node {
	n := &ast.Node{Tag: ast.RuleMatchClause, Span: m.Span()}
	switch {
	case m.Patterns != nil:
		n.Children = []any{b.buildPatternList(m.Patterns)}
	case m.Path != nil:
		n.Children = []any{m.Path.Name, "=", b.buildTraversal(m.Path.Traversal)}
		n.WithAttr("pathName", m.Path.Name)
	}
	n.WithAttr("optional", m.Optional)
	return n
}

func (b *treeBuilder) buildWhereClause(w *WhereClause) *ast.Node {
	return &ast.Node{Tag: ast.RuleWhereClause, Span: w.Span(), Children: []any{b.buildBoolExpr(w.Expr)}}
}

func (b *treeBuilder) buildWithProjectionExpr(e *WithProjectionExpr) *ast.Node {
	switch {
	case e.FunctionCall != nil:
		return b.buildFunctionCall(e.FunctionCall)
	case e.PropertyAccess != nil:
		return b.buildPropertyAccess(e.PropertyAccess)
	case e.Ident != nil:
		return leafNode(ast.RuleIdentifier, e.Span(), *e.Ident)
	}
	return nil
}

func (b *treeBuilder) buildWithProjection(p *WithProjection) *ast.Node {
	expr := b.buildWithProjectionExpr(p.Expr)
	if p.Alias == "" {
		return &ast.Node{Tag: ast.RuleProjection, Span: p.Span(), Children: []any{expr}}
	}
	n := &ast.Node{Tag: ast.RuleAsBinding, Span: p.Span(), Children: []any{expr, "AS", p.Alias}}
	return n.WithAttr("alias", p.Alias)
}

func (b *treeBuilder) buildWithClause(w *WithClause) *ast.Node {
	children := make([]any, 0, len(w.Items))
	for _, item := range w.Items {
		children = append(children, b.buildWithProjection(item))
	}
	return &ast.Node{Tag: ast.RuleWithClause, Span: w.Span(), Children: children}
}

func (b *treeBuilder) buildOrderKey(k *OrderKey) *ast.Node {
	var expr *ast.Node
	switch {
	case k.Property != nil:
		expr = b.buildPropertyAccess(k.Property)
	case k.Ident != nil:
		expr = leafNode(ast.RuleIdentifier, k.Span(), *k.Ident)
	}
	dir := "asc"
	if k.Desc {
		dir = "desc"
	}
	n := &ast.Node{Tag: ast.RuleOrderKey, Span: k.Span(), Children: []any{expr}}
	return n.WithAttr("direction", dir)
}

func (b *treeBuilder) buildOrderByClause(o *OrderByClause) *ast.Node {
	children := make([]any, 0, len(o.Keys))
	for _, k := range o.Keys {
		children = append(children, b.buildOrderKey(k))
	}
	return &ast.Node{Tag: ast.RuleOrderByClause, Span: o.Span(), Children: children}
}

func (b *treeBuilder) buildSkipClause(s *SkipClause) *ast.Node {
	n := &ast.Node{Tag: ast.RuleSkipClause, Span: s.Span(), Children: []any{strconv.FormatInt(s.N, 10)}}
	return n.WithAttr("n", s.N)
}

func (b *treeBuilder) buildLimitClause(l *LimitClause) *ast.Node {
	n := &ast.Node{Tag: ast.RuleLimitClause, Span: l.Span(), Children: []any{strconv.FormatInt(l.N, 10)}}
	return n.WithAttr("n", l.N)
}

func (b *treeBuilder) buildAsBinding(a *AsBinding) *ast.Node {
	var expr *ast.Node
	switch {
	case a.FunctionCall != nil:
		expr = b.buildFunctionCall(a.FunctionCall)
	case a.PropertyAccess != nil:
		expr = b.buildPropertyAccess(a.PropertyAccess)
	case a.Ident != nil:
		expr = leafNode(ast.RuleIdentifier, a.Span(), *a.Ident)
	}
	n := &ast.Node{Tag: ast.RuleAsBinding, Span: a.Span(), Children: []any{expr, "AS", a.Alias}}
	return n.WithAttr("alias", a.Alias)
}

func (b *treeBuilder) buildReturnProjection(p *ReturnProjection) *ast.Node {
	switch {
	case p.String != nil:
		return leafNode(ast.RuleStringLiteral, p.Span(), unquoteSingle(*p.String))
	case p.AsBind != nil:
		return b.buildAsBinding(p.AsBind)
	case p.FunctionCall != nil:
		return b.buildFunctionCall(p.FunctionCall)
	case p.Bool != nil:
		return b.buildBoolExpr(p.Bool)
	case p.Float != nil:
		return leafNode(ast.RuleFloat, p.Span(), formatFloat(*p.Float))
	case p.Ident != nil:
		return leafNode(ast.RuleIdentifier, p.Span(), *p.Ident)
	}
	return nil
}

func (b *treeBuilder) buildReturnClause(r *ReturnClause) *ast.Node {
	children := make([]any, 0, len(r.Items))
	for _, item := range r.Items {
		children = append(children, b.buildReturnProjection(item))
	}
	return &ast.Node{Tag: ast.RuleReturnClause, Span: r.Span(), Children: children}
}

func (b *treeBuilder) buildQuery(q *Query) *ast.Node {
	var children []any
	for _, mg := range q.Matches {
		children = append(children, b.buildMatchClause(mg.Match))
		if mg.Where != nil {
			children = append(children, b.buildWhereClause(mg.Where))
		}
	}
	if q.With != nil {
		children = append(children, b.buildWithClause(q.With.With))
		if q.With.OrderBy != nil {
			children = append(children, b.buildOrderByClause(q.With.OrderBy))
		}
		if q.With.Skip != nil {
			children = append(children, b.buildSkipClause(q.With.Skip))
		}
		if q.With.Limit != nil {
			children = append(children, b.buildLimitClause(q.With.Limit))
		}
	}
	children = append(children, b.buildReturnClause(q.Return.Return))
	if q.Return.OrderBy != nil {
		children = append(children, b.buildOrderByClause(q.Return.OrderBy))
	}
	if q.Return.Skip != nil {
		children = append(children, b.buildSkipClause(q.Return.Skip))
	}
	if q.Return.Limit != nil {
		children = append(children, b.buildLimitClause(q.Return.Limit))
	}
	return &ast.Node{Tag: ast.RuleQuery, Span: q.Span(), Children: children}
}
