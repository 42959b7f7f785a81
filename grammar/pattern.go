package grammar

// Label is ":" Identifier.
type Label struct {
	NodeMeta
	Name string `Colon @Ident`
}

// AliasLabel is Identifier? Label* — the union of the spec's two
// alternatives ("Identifier Label*" and "Label*") collapses to this
// equivalent, simpler shape, since either branch independently allows
// zero-or-more labels and differs only in whether the leading identifier
// is present (spec.md §9 Open Question 3; see DESIGN.md).
type AliasLabel struct {
	NodeMeta
	Variable string   `@Ident?`
	Labels   []*Label `@@*`
}

// KeyVal is Identifier ":" ValueExpr, a single property-map entry.
type KeyVal struct {
	NodeMeta
	Key   string     `@Ident Colon`
	Value *ValueExpr `@@`
}

// PropertyMap is "{" KeyVal ("," KeyVal)* "}".
type PropertyMap struct {
	NodeMeta
	Pairs []*KeyVal `LBrace @@ (Comma @@)* RBrace`
}

// Node is "(" AliasLabel? PropertyMap? ")".
type Node struct {
	NodeMeta
	Alias      *AliasLabel  `LParen @@?`
	Properties *PropertyMap `@@? RParen`
}

// CardinalityBounds is the optional "Integer '..' Integer" tail of a
// bounded cardinality, e.g. "*2..4".
type CardinalityBounds struct {
	NodeMeta
	Min int64 `@Integer Range`
	Max int64 `@Integer`
}

// Cardinality is "*" optionally followed by a min..max bound. Min<=Max is
// a semantic invariant checked during tree-building (see tree.go), not
// structurally expressible here.
type Cardinality struct {
	NodeMeta
	Bounds *CardinalityBounds `Star @@?`
}

// EdgeContent is the optional "[" ... "]" body of an edge: an alias/label,
// a property map, and a cardinality, each optional and in any combination.
type EdgeContent struct {
	NodeMeta
	Alias       *AliasLabel  `@@?`
	Properties  *PropertyMap `@@?`
	Cardinality *Cardinality `@@?`
}

// UndirectedEdge is "-" ("[" EdgeContent "]")? "-", the core dash pair
// every directed form wraps.
type UndirectedEdge struct {
	NodeMeta
	Content *EdgeContent `Minus (LBracket @@ RBracket)? Minus`
}

// Edge is one of three mutually exclusive shapes: a left-pointing edge
// ("<" UndirectedEdge), a right-pointing edge (UndirectedEdge ">"), or a
// plain undirected edge. The three are modeled as distinct alternative
// branches — rather than independently-optional leading/trailing arrow
// flags — specifically so that an edge written with arrows on both ends
// ("<-...->") is not representable at all: neither branch captures it,
// so the surrounding Traversal backtracks and the overall parse fails,
// per spec.md §8 scenario 5.
type Edge struct {
	NodeMeta
	In    *UndirectedEdge `(  Less @@`
	Out   *UndirectedEdge `|  @@ Greater`
	Plain *UndirectedEdge `|  @@ )`
}

// TraversalTail is the optional "Edge Traversal" continuation of a
// Traversal. It is captured as a single unit so that if the nested
// Traversal fails to match after a successful Edge, the whole tail
// backtracks out together — the Edge is not left dangling half-consumed
// (this is what makes a malformed "---" correctly fail the entire
// pattern rather than silently absorbing two of the three dashes).
type TraversalTail struct {
	NodeMeta
	Edge      *Edge      `@@`
	Traversal *Traversal `@@`
}

// Traversal is "Node (Edge Traversal)?", right-recursive per spec.md §4.3.
type Traversal struct {
	NodeMeta
	Node *Node          `@@`
	Next *TraversalTail `@@?`
}

// PatternList is one or more comma-separated Traversals.
type PatternList struct {
	NodeMeta
	Traversals []*Traversal `@@ (Comma @@)*`
}
