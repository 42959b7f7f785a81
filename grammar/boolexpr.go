package grammar

// Has is "HAS" "(" PropertyAccess ")".
type Has struct {
	NodeMeta
	Prop *PropertyAccess `KwHas LParen @@ RParen`
}

// LeftExpr is the narrow left-hand-side grammar for a comparison:
// PropertyAccess, the single-argument `type(...)` call, or a bare
// identifier — never the full FunctionCall union (spec.md §4.4 scopes
// count/sum/percentileDisc/stdev out of comparison left-hand sides).
// PropertyAccess and TypeCall must be tried before the bare-identifier
// fallback, or a leading "n" in "n.name" / "type(x)" would be consumed on
// its own and strand the rest of the expression.
type LeftExpr struct {
	NodeMeta
	Property *PropertyAccess `(  @@`
	TypeCall *TypeCall       `|  @@`
	Ident    *string         `|  @Ident )`
}

// SimpleCompOp is one comparison operator followed by a ValueExpr.
type SimpleCompOp struct {
	NodeMeta
	Op    string     `@(NotEqual | LessEqual | GreaterEqual | Eq | Less | Greater)`
	Value *ValueExpr `@@`
}

// InOp is "IN" List.
type InOp struct {
	NodeMeta
	List *List `KwIn @@`
}

// RegexOpNode is "=~" StringLiteral.
type RegexOpNode struct {
	NodeMeta
	Pattern string `RegexOp @String`
}

// LeftOpRight is LeftExpr followed by exactly one of the four right-hand
// operator shapes.
type LeftOpRight struct {
	NodeMeta
	Left   *LeftExpr     `@@`
	IsNull bool          `(  @(KwIs KwNull)`
	Simple *SimpleCompOp `|  @@`
	In     *InOp         `|  @@`
	Regex  *RegexOpNode  `|  @@ )`
}

// LabelAssertion is Identifier Label+ — a variable asserted to carry one
// or more labels, with no comparison operator involved.
type LabelAssertion struct {
	NodeMeta
	Variable string   `@Ident`
	Labels   []*Label `@@+`
}

// Comparison is the three mutually exclusive leaf-comparison shapes:
// HAS(...), a left/op/right triple, or a label assertion.
type Comparison struct {
	NodeMeta
	Has            *Has            `(  @@`
	BinaryOp       *LeftOpRight    `|  @@`
	LabelAssertion *LabelAssertion `|  @@ )`
}

// NotLeaf is an optional leading NOT over a Comparison or a bare
// Traversal (the latter used to assert pattern existence inside a WHERE,
// e.g. "WHERE (n)-->(m)").
type NotLeaf struct {
	NodeMeta
	Not        bool        `@KwNot?`
	Comparison *Comparison `(  @@`
	Traversal  *Traversal  `|  @@ )`
}

// Connective is one of the seven legal boolean connectives: AND, OR, XOR,
// a bare NOT, or any of those three combined with a trailing NOT
// negating the right-hand operand (spec.md §4.4; grounded in
// original_source's `where_opts` alternative set).
type Connective struct {
	NodeMeta
	AndNot bool `(  @(KwAnd KwNot)`
	OrNot  bool `|  @(KwOr KwNot)`
	XorNot bool `|  @(KwXor KwNot)`
	And    bool `|  @KwAnd`
	Or     bool `|  @KwOr`
	Xor    bool `|  @KwXor`
	Not    bool `|  @KwNot )`
}

// BoolExprTail is a single "Connective BoolExpr" continuation, captured
// as one unit so a failed continuation backtracks cleanly (see
// TraversalTail for the same reasoning).
type BoolExprTail struct {
	NodeMeta
	Conn *Connective `@@`
	Expr *BoolExpr   `@@`
}

// BoolExpr is an optionally parenthesized NotLeaf followed by zero or
// more connective-joined continuations (spec.md §4.4). Associativity is
// left to the tree-building pass (tree.go), which flattens same-kind
// runs per the spec's "permissive about associativity" instruction.
type BoolExpr struct {
	NodeMeta
	Paren *BoolExpr       `(  LParen @@ RParen`
	Leaf  *NotLeaf        `|  @@ )`
	Tail  []*BoolExprTail `@@*`
}
